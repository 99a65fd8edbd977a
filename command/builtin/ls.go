package builtin

import (
	"context"
	"fmt"
	"io"

	"github.com/mwantia/ossfm/command"
)

type LsCommand struct {
}

// Name returns the command identifier
func (ls *LsCommand) Name() string {
	return "ls"
}

// Description returns human-readable help text
func (ls *LsCommand) Description() string {
	return "List folders and files below a path"
}

// Usage returns a usage string for help (e.g. "ls -p [path]")
func (ls *LsCommand) Usage() string {
	return "ls [-p] [path]"
}

// Execute runs the command with parsed arguments
// Returns exit code (0 = success) and error message
func (ls *LsCommand) Execute(ctx context.Context, api command.API, args *command.CommandArgs, writer io.Writer) (int, error) {
	entries, err := api.List(ctx, args.Arg(0, ""))
	if err != nil {
		return 1, err
	}

	renderEntries(writer, entries, args.Bool("plain"))
	return 0, nil
}

// GetFlags returns the flag set for this command (this is optional)
func (ls *LsCommand) GetFlags() *command.CommandFlagSet {
	return &command.CommandFlagSet{
		Flags: map[string]*command.CommandFlag{
			"plain": plainFlag(),
		},
	}
}

type TrashCommand struct {
}

func (tc *TrashCommand) Name() string {
	return "trash"
}

func (tc *TrashCommand) Description() string {
	return "List trashed files, bounded to the trash folder"
}

func (tc *TrashCommand) Usage() string {
	return "trash [-p] [--parent] [path]"
}

// Execute lists the trash, or prints the parent of path when --parent is set.
func (tc *TrashCommand) Execute(ctx context.Context, api command.API, args *command.CommandArgs, writer io.Writer) (int, error) {
	path := args.Arg(0, "")

	if args.Bool("parent") {
		parent, err := api.TrashParent(ctx, path)
		if err != nil {
			return 1, err
		}

		fmt.Fprintln(writer, parent)
		return 0, nil
	}

	entries, err := api.ListTrash(ctx, path)
	if err != nil {
		return 1, err
	}

	renderEntries(writer, entries, args.Bool("plain"))
	return 0, nil
}

func (tc *TrashCommand) GetFlags() *command.CommandFlagSet {
	return &command.CommandFlagSet{
		Flags: map[string]*command.CommandFlag{
			"plain": plainFlag(),
			"parent": {
				Name:        "parent",
				Type:        "bool",
				Description: "Print the parent folder of path within the trash",
			},
		},
	}
}
