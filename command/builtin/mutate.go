package builtin

import (
	"context"
	"fmt"
	"io"

	"github.com/mwantia/ossfm/command"
	"github.com/mwantia/ossfm/data"
)

type MkdirCommand struct {
}

func (mc *MkdirCommand) Name() string {
	return "mkdir"
}

func (mc *MkdirCommand) Description() string {
	return "Create an empty folder"
}

func (mc *MkdirCommand) Usage() string {
	return "mkdir <name> [path]"
}

func (mc *MkdirCommand) Execute(ctx context.Context, api command.API, args *command.CommandArgs, writer io.Writer) (int, error) {
	if err := requireArgs(args, 1, mc.Usage()); err != nil {
		return 2, err
	}

	plan, err := api.CreateFolder(ctx, args.Arg(1, ""), args.Arg(0, ""))
	if err != nil {
		return 1, err
	}

	renderPlans(writer, plan)
	return 0, nil
}

func (mc *MkdirCommand) GetFlags() *command.CommandFlagSet {
	return nil
}

type MvCommand struct {
}

func (mc *MvCommand) Name() string {
	return "mv"
}

func (mc *MvCommand) Description() string {
	return "Move a file into another folder"
}

func (mc *MvCommand) Usage() string {
	return "mv <key> <folder>"
}

func (mc *MvCommand) Execute(ctx context.Context, api command.API, args *command.CommandArgs, writer io.Writer) (int, error) {
	if err := requireArgs(args, 2, mc.Usage()); err != nil {
		return 2, err
	}

	plan, err := api.Move(ctx, args.Arg(0, ""), args.Arg(1, ""))
	if err != nil {
		return 1, err
	}

	renderPlans(writer, plan)
	return 0, nil
}

func (mc *MvCommand) GetFlags() *command.CommandFlagSet {
	return nil
}

type RenameCommand struct {
}

func (rc *RenameCommand) Name() string {
	return "rename"
}

func (rc *RenameCommand) Description() string {
	return "Rename a file within its folder"
}

func (rc *RenameCommand) Usage() string {
	return "rename <key> <new-name>"
}

func (rc *RenameCommand) Execute(ctx context.Context, api command.API, args *command.CommandArgs, writer io.Writer) (int, error) {
	if err := requireArgs(args, 2, rc.Usage()); err != nil {
		return 2, err
	}

	plan, err := api.Rename(ctx, args.Arg(0, ""), args.Arg(1, ""))
	if err != nil {
		return 1, err
	}

	renderPlans(writer, plan)
	return 0, nil
}

func (rc *RenameCommand) GetFlags() *command.CommandFlagSet {
	return nil
}

type RmCommand struct {
}

func (rc *RmCommand) Name() string {
	return "rm"
}

func (rc *RmCommand) Description() string {
	return "Move files into the trash"
}

func (rc *RmCommand) Usage() string {
	return "rm <key>..."
}

// Execute reports every completed plan, even when other keys failed.
func (rc *RmCommand) Execute(ctx context.Context, api command.API, args *command.CommandArgs, writer io.Writer) (int, error) {
	if err := requireArgs(args, 1, rc.Usage()); err != nil {
		return 2, err
	}

	plans, err := api.Delete(ctx, args.Args...)
	renderPlans(writer, plans...)
	if err != nil {
		return 1, err
	}
	return 0, nil
}

func (rc *RmCommand) GetFlags() *command.CommandFlagSet {
	return nil
}

type RestoreCommand struct {
}

func (rc *RestoreCommand) Name() string {
	return "restore"
}

func (rc *RestoreCommand) Description() string {
	return "Move trashed files back to their original folder"
}

func (rc *RestoreCommand) Usage() string {
	return "restore <key>..."
}

func (rc *RestoreCommand) Execute(ctx context.Context, api command.API, args *command.CommandArgs, writer io.Writer) (int, error) {
	if err := requireArgs(args, 1, rc.Usage()); err != nil {
		return 2, err
	}

	plans, err := api.Restore(ctx, args.Args...)
	renderPlans(writer, plans...)
	if err != nil {
		return 1, err
	}
	return 0, nil
}

func (rc *RestoreCommand) GetFlags() *command.CommandFlagSet {
	return nil
}

type PurgeCommand struct {
}

func (pc *PurgeCommand) Name() string {
	return "purge"
}

func (pc *PurgeCommand) Description() string {
	return "Permanently delete trashed files"
}

func (pc *PurgeCommand) Usage() string {
	return "purge -y <key>..."
}

func (pc *PurgeCommand) Execute(ctx context.Context, api command.API, args *command.CommandArgs, writer io.Writer) (int, error) {
	if err := requireArgs(args, 1, pc.Usage()); err != nil {
		return 2, err
	}
	if !args.Bool("yes") {
		return 2, fmt.Errorf("purge cannot be undone, confirm with --yes: %w", data.ErrInvalid)
	}

	plans, err := api.Purge(ctx, args.Args...)
	renderPlans(writer, plans...)
	if err != nil {
		return 1, err
	}
	return 0, nil
}

func (pc *PurgeCommand) GetFlags() *command.CommandFlagSet {
	return &command.CommandFlagSet{
		Flags: map[string]*command.CommandFlag{
			"yes": {
				Name:        "yes",
				Short:       "y",
				Type:        "bool",
				Description: "Confirm permanent deletion",
			},
		},
	}
}
