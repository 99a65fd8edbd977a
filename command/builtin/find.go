package builtin

import (
	"context"
	"fmt"
	"io"

	"github.com/mwantia/ossfm/command"
)

type FindCommand struct {
}

func (fc *FindCommand) Name() string {
	return "find"
}

func (fc *FindCommand) Description() string {
	return "Search file names below a path, ignoring case"
}

func (fc *FindCommand) Usage() string {
	return "find [-p] <term> [path]"
}

func (fc *FindCommand) Execute(ctx context.Context, api command.API, args *command.CommandArgs, writer io.Writer) (int, error) {
	if err := requireArgs(args, 1, fc.Usage()); err != nil {
		return 2, err
	}

	result, err := api.Search(ctx, args.Arg(0, ""), args.Arg(1, ""))
	if err != nil {
		return 1, err
	}

	plain := args.Bool("plain")
	renderEntries(writer, result.Entries, plain)
	if result.Truncated && !plain {
		fmt.Fprintln(writer, dimStyle.Render(fmt.Sprintf("showing the first %d matches", len(result.Entries))))
	}
	return 0, nil
}

func (fc *FindCommand) GetFlags() *command.CommandFlagSet {
	return &command.CommandFlagSet{
		Flags: map[string]*command.CommandFlag{
			"plain": plainFlag(),
		},
	}
}
