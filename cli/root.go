package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/mwantia/ossfm/command"
	"github.com/mwantia/ossfm/command/builtin"
	"github.com/mwantia/ossfm/config"
	"github.com/spf13/cobra"
)

type ctxKey string

const appCtxKey ctxKey = "app"

func NewRootCommand() *cobra.Command {
	var appConfigPath string
	var logLevel string

	rootCmd := &cobra.Command{
		Use:           "ossfm",
		Short:         "ossfm manages files in an object storage bucket",
		Long:          `ossfm browses, moves, trashes and restores objects of an S3 compatible bucket as if it were a file system, and keeps text files for offline reading.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadAppConfig(appConfigPath)
			if err != nil {
				return fmt.Errorf("failed to load app config: %w", err)
			}

			app, err := NewApp(cfg, logLevel)
			if err != nil {
				return err
			}

			cmd.SetContext(context.WithValue(cmd.Context(), appCtxKey, app))
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVar(&appConfigPath, "config", "", "Path to app config file (TOML)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Override the configured log level")

	center := command.NewCommandCenter()
	for _, cmd := range builtin.Commands() {
		// Registering fresh instances on an empty center cannot collide
		_ = center.Register(cmd)
		rootCmd.AddCommand(wrapCommand(center, cmd))
	}
	rootCmd.AddCommand(ConfigureCommand())

	return rootCmd
}

// closeApp closes the app of cmd once its command returned, successful or not, and
// joins a close failure into err.
func closeApp(cmd *cobra.Command, err *error) {
	app := GetApp(cmd)
	if app == nil {
		return
	}
	if closeErr := app.Close(cmd.Context()); closeErr != nil {
		*err = errors.Join(*err, closeErr)
	}
}

// GetApp returns the app stored by the root command.
func GetApp(cmd *cobra.Command) *App {
	if v := cmd.Context().Value(appCtxKey); v != nil {
		if app, ok := v.(*App); ok {
			return app
		}
	}
	return nil
}
