package builtin

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/mwantia/ossfm/command"
	"github.com/mwantia/ossfm/store"
)

type PingCommand struct {
}

func (pc *PingCommand) Name() string {
	return "ping"
}

func (pc *PingCommand) Description() string {
	return "Test the connection to the configured store"
}

func (pc *PingCommand) Usage() string {
	return "ping [-v]"
}

func (pc *PingCommand) Execute(ctx context.Context, api command.API, args *command.CommandArgs, writer io.Writer) (int, error) {
	if err := api.TestConnection(ctx); err != nil {
		return 1, err
	}

	fmt.Fprintln(writer, "connection ok")
	if !args.Bool("verbose") {
		return 0, nil
	}

	info, err := api.StoreInfo(ctx)
	if err != nil {
		return 1, err
	}
	writeStoreInfo(writer, info.Name, info.Capabilities)
	return 0, nil
}

func writeStoreInfo(writer io.Writer, name string, caps *store.BackendCapabilities) {
	fmt.Fprintf(writer, "store:           %s\n", name)
	if caps == nil {
		return
	}

	names := make([]string, 0, len(caps.Capabilities))
	for _, capability := range caps.Capabilities {
		names = append(names, string(capability))
	}
	fmt.Fprintf(writer, "capabilities:    %s\n", strings.Join(names, ", "))
	fmt.Fprintf(writer, "server copy:     %t\n", caps.Contains(store.CapabilityServerCopy))
	fmt.Fprintf(writer, "max keys:        %d\n", caps.MaxKeys)

	limit := "unlimited"
	if caps.MaxObjectSize > 0 {
		limit = humanize.IBytes(uint64(caps.MaxObjectSize))
	}
	fmt.Fprintf(writer, "max object size: %s\n", limit)
}

func (pc *PingCommand) GetFlags() *command.CommandFlagSet {
	return &command.CommandFlagSet{
		Flags: map[string]*command.CommandFlag{
			"verbose": {
				Name:        "verbose",
				Short:       "v",
				Type:        "bool",
				Description: "Print store name and capabilities",
			},
		},
	}
}
