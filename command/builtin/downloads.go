package builtin

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/mwantia/ossfm/command"
	"github.com/mwantia/ossfm/data/errors"
)

type GetCommand struct {
}

func (gc *GetCommand) Name() string {
	return "get"
}

func (gc *GetCommand) Description() string {
	return "Download a text file for offline reading"
}

func (gc *GetCommand) Usage() string {
	return "get <key>"
}

func (gc *GetCommand) Execute(ctx context.Context, api command.API, args *command.CommandArgs, writer io.Writer) (int, error) {
	if err := requireArgs(args, 1, gc.Usage()); err != nil {
		return 2, err
	}

	download, err := api.Download(ctx, args.Arg(0, ""))
	if err != nil {
		return 1, err
	}

	fmt.Fprintf(writer, "downloaded %s as %s (%s)\n", download.Key, download.ID, download.Encoding)
	return 0, nil
}

func (gc *GetCommand) GetFlags() *command.CommandFlagSet {
	return nil
}

type DownloadsCommand struct {
}

func (dc *DownloadsCommand) Name() string {
	return "downloads"
}

func (dc *DownloadsCommand) Description() string {
	return "List, remove or clear offline downloads"
}

func (dc *DownloadsCommand) Usage() string {
	return "downloads [-p] [--remove <id>] [--clear]"
}

func (dc *DownloadsCommand) Execute(ctx context.Context, api command.API, args *command.CommandArgs, writer io.Writer) (int, error) {
	if raw := args.String("remove"); raw != "" {
		id, err := parseID(raw)
		if err != nil {
			return 2, err
		}
		if err := api.RemoveDownload(ctx, id); err != nil {
			return 1, err
		}

		fmt.Fprintf(writer, "removed %s\n", id)
		return 0, nil
	}

	if args.Bool("clear") {
		if err := api.ClearDownloads(ctx); err != nil {
			return 1, err
		}

		fmt.Fprintln(writer, "cleared all downloads")
		return 0, nil
	}

	downloads, err := api.Downloads(ctx)
	if err != nil {
		return 1, err
	}

	renderDownloads(writer, downloads, args.Bool("plain"))
	return 0, nil
}

func (dc *DownloadsCommand) GetFlags() *command.CommandFlagSet {
	return &command.CommandFlagSet{
		Flags: map[string]*command.CommandFlag{
			"plain": plainFlag(),
			"remove": {
				Name:        "remove",
				Short:       "r",
				Type:        "string",
				Description: "Remove the download with this ID",
			},
			"clear": {
				Name:        "clear",
				Type:        "bool",
				Description: "Remove every download",
			},
		},
	}
}

func parseID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, errors.Invalid("malformed download id", raw)
	}
	return id, nil
}
