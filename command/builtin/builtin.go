package builtin

import (
	"fmt"

	"github.com/mwantia/ossfm/command"
	"github.com/mwantia/ossfm/data"
)

// Commands returns a new instance of every builtin command.
func Commands() []command.Command {
	return []command.Command{
		&LsCommand{},
		&TrashCommand{},
		&FindCommand{},
		&MkdirCommand{},
		&MvCommand{},
		&RenameCommand{},
		&RmCommand{},
		&RestoreCommand{},
		&PurgeCommand{},
		&GetCommand{},
		&DownloadsCommand{},
		&ReadCommand{},
		&PingCommand{},
	}
}

// InitBuiltin registers every builtin command at the command center.
func InitBuiltin(cc *command.CommandCenter) error {
	errs := data.Errors{}
	for _, cmd := range Commands() {
		errs.Add(cc.Register(cmd))
	}

	if err := errs.Errors(); err != nil {
		return fmt.Errorf("failed to register builtin commands: %w", err)
	}
	return nil
}

func plainFlag() *command.CommandFlag {
	return &command.CommandFlag{
		Name:        "plain",
		Short:       "p",
		Type:        "bool",
		Description: "Print tab separated rows without styling",
	}
}

func requireArgs(args *command.CommandArgs, count int, usage string) error {
	if len(args.Args) < count {
		return fmt.Errorf("usage: %s: %w", usage, data.ErrInvalid)
	}
	return nil
}
