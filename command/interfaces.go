package command

import (
	"context"
	"io"

	"github.com/mwantia/ossfm"
)

// API is the file manager surface available to commands.
type API interface {
	ossfm.Operations
}

// Command represents an executable file manager command.
type Command interface {
	// Name returns the command identifier
	Name() string

	// Description returns human-readable help text
	Description() string

	// Usage returns a usage string for help (e.g. "ls [path]")
	Usage() string

	// Execute runs the command with parsed arguments and writes its output to writer.
	// Returns exit code (0 = success) and error
	Execute(ctx context.Context, api API, args *CommandArgs, writer io.Writer) (int, error)

	// GetFlags returns the flag set for this command (this is optional)
	GetFlags() *CommandFlagSet
}
