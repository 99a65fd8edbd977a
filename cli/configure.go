package cli

import (
	"errors"
	"fmt"

	"github.com/mwantia/ossfm/config"
	"github.com/mwantia/ossfm/data"
	"github.com/spf13/cobra"
)

func ConfigureCommand() *cobra.Command {
	var passphrase string
	var remember bool
	var show bool
	var test bool

	update := &config.StoreConfig{}

	cmd := &cobra.Command{
		Use:   "configure",
		Short: "Write the store configuration into the encrypted vault",
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			defer closeApp(cmd, &err)

			app := GetApp(cmd)
			if passphrase == "" {
				passphrase = config.Passphrase()
			}
			if passphrase == "" {
				return fmt.Errorf("no passphrase, set %s or pass --passphrase: %w", config.PassphraseEnv, data.ErrConfigMissing)
			}

			vault := config.NewVaultSource(app.Vault.Path(), func() string { return passphrase })
			app.Vault = vault

			current, err := vault.Load(cmd.Context())
			if err != nil {
				if !errors.Is(err, data.ErrConfigMissing) {
					return err
				}
				current = &config.StoreConfig{}
			}

			if show {
				printStoreConfig(cmd, current)
				return nil
			}

			merged := mergeStoreConfig(cmd, current, update)
			if err := merged.Validate(); err != nil {
				return err
			}
			if err := vault.Save(cmd.Context(), merged); err != nil {
				return err
			}
			app.Log.Info("Saved store configuration to '%s'", vault.Path())
			fmt.Fprintf(cmd.OutOrStdout(), "saved configuration to %s\n", vault.Path())

			if remember {
				if err := config.RememberPassphrase(passphrase); err != nil {
					return err
				}
			}

			if test {
				fm, err := app.FileManager(cmd.Context())
				if err != nil {
					return err
				}
				if err := fm.TestConnection(cmd.Context()); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "connection ok")
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&update.Provider, "provider", "", "Store provider: minio, s3, consul or ephemeral")
	flags.StringVar(&update.Endpoint, "endpoint", "", "Service endpoint (host:port or URL)")
	flags.StringVar(&update.Region, "region", "", "Bucket region")
	flags.StringVar(&update.Bucket, "bucket", "", "Bucket name")
	flags.StringVar(&update.AccessKeyID, "access-key-id", "", "Access key ID")
	flags.StringVar(&update.AccessKeySecret, "access-key-secret", "", "Access key secret")
	flags.BoolVar(&update.Secure, "secure", false, "Use TLS")
	flags.StringVar(&update.RootPath, "root", "", "Folder shown as root")
	flags.StringVar(&update.TrashPath, "trash", "", "Folder receiving deleted files (default \"trash/\")")

	flags.StringVar(&passphrase, "passphrase", "", "Vault passphrase, defaults to "+config.PassphraseEnv+" or the OS keyring")
	flags.BoolVar(&remember, "remember", false, "Store the passphrase in the OS keyring")
	flags.BoolVar(&show, "show", false, "Print the current configuration without secrets")
	flags.BoolVar(&test, "test", false, "Test the connection after saving")

	return cmd
}

// mergeStoreConfig applies every flag that was set on the command line to current.
func mergeStoreConfig(cmd *cobra.Command, current, update *config.StoreConfig) *config.StoreConfig {
	merged := *current
	flags := cmd.Flags()

	fields := map[string]func(){
		"provider":          func() { merged.Provider = update.Provider },
		"endpoint":          func() { merged.Endpoint = update.Endpoint },
		"region":            func() { merged.Region = update.Region },
		"bucket":            func() { merged.Bucket = update.Bucket },
		"access-key-id":     func() { merged.AccessKeyID = update.AccessKeyID },
		"access-key-secret": func() { merged.AccessKeySecret = update.AccessKeySecret },
		"secure":            func() { merged.Secure = update.Secure },
		"root":              func() { merged.RootPath = update.RootPath },
		"trash":             func() { merged.TrashPath = update.TrashPath },
	}
	for name, apply := range fields {
		if flags.Changed(name) {
			apply()
		}
	}

	return &merged
}

func printStoreConfig(cmd *cobra.Command, cfg *config.StoreConfig) {
	ns := cfg.Namespace()
	secret := ""
	if cfg.AccessKeySecret != "" {
		secret = "********"
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "provider:          %s\n", cfg.Provider)
	fmt.Fprintf(out, "endpoint:          %s\n", cfg.Endpoint)
	fmt.Fprintf(out, "region:            %s\n", cfg.Region)
	fmt.Fprintf(out, "bucket:            %s\n", cfg.Bucket)
	fmt.Fprintf(out, "access_key_id:     %s\n", cfg.AccessKeyID)
	fmt.Fprintf(out, "access_key_secret: %s\n", secret)
	fmt.Fprintf(out, "secure:            %t\n", cfg.Secure)
	fmt.Fprintf(out, "root_path:         %s\n", ns.RootPath)
	fmt.Fprintf(out, "trash_path:        %s\n", ns.TrashPath)
}
