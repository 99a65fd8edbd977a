package cli

import (
	"github.com/mwantia/ossfm/command"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// ExitError carries the exit code of a failed builtin.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// wrapCommand exposes a builtin as cobra subcommand. Cobra parses the builtin flags for
// help and validation; the changed flags are passed on to the command center unchanged.
func wrapCommand(center *command.CommandCenter, builtin command.Command) *cobra.Command {
	cmd := &cobra.Command{
		Use:   builtin.Usage(),
		Short: builtin.Description(),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			defer closeApp(cmd, &err)

			app := GetApp(cmd)
			fm, err := app.FileManager(cmd.Context())
			if err != nil {
				return err
			}

			raw := []string{builtin.Name()}
			cmd.LocalNonPersistentFlags().Visit(func(f *pflag.Flag) {
				raw = append(raw, "--"+f.Name+"="+f.Value.String())
			})
			raw = append(raw, "--")
			raw = append(raw, args...)

			code, err := center.Execute(cmd.Context(), fm, cmd.OutOrStdout(), raw...)
			if err != nil {
				return &ExitError{Code: code, Err: err}
			}
			return nil
		},
	}

	flagSet := builtin.GetFlags()
	if flagSet == nil {
		return cmd
	}

	for _, flag := range flagSet.Flags {
		switch flag.Type {
		case "bool":
			cmd.Flags().BoolP(flag.Name, flag.Short, false, flag.Description)
		case "int":
			value, _ := flag.Default.(int64)
			cmd.Flags().Int64P(flag.Name, flag.Short, value, flag.Description)
		default:
			value, _ := flag.Default.(string)
			cmd.Flags().StringP(flag.Name, flag.Short, value, flag.Description)
		}
	}
	return cmd
}
