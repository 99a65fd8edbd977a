package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// AppConfig holds the local settings of the command line client.
type AppConfig struct {
	LogLevel string `mapstructure:"log_level"`
	LogFile  string `mapstructure:"log_file"`
	LogJSON  bool   `mapstructure:"log_json"`

	VaultFile string `mapstructure:"vault_file"`

	DownloadsDriver string `mapstructure:"downloads_driver"`
	DownloadsDSN    string `mapstructure:"downloads_dsn"`

	SearchLimit int `mapstructure:"search_limit"`
	PageRunes   int `mapstructure:"page_runes"`

	// MetricsFile receives the collected metrics in text format after every command
	MetricsFile string `mapstructure:"metrics_file"`
}

// LoadAppConfig reads the TOML config at configPath, or app.toml from ~/.ossfm and the
// working directory. OSSFM_ prefixed environment variables override file values.
func LoadAppConfig(configPath string) (*AppConfig, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	dir := filepath.Join(home, ".ossfm")
	v, err := initViper(configPath, dir, "app", "toml", "OSSFM")
	if err != nil {
		return nil, err
	}

	v.SetDefault("log_level", "warn")
	v.SetDefault("log_file", "")
	v.SetDefault("log_json", false)
	v.SetDefault("vault_file", filepath.Join(dir, "vault.json"))
	v.SetDefault("downloads_driver", "sqlite")
	v.SetDefault("downloads_dsn", filepath.Join(dir, "downloads.db"))
	v.SetDefault("search_limit", 0)
	v.SetDefault("page_runes", 2000)
	v.SetDefault("metrics_file", "")

	var cfg AppConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	cfg.LogFile = expandPath(cfg.LogFile)
	cfg.VaultFile = expandPath(cfg.VaultFile)
	cfg.MetricsFile = expandPath(cfg.MetricsFile)
	if cfg.DownloadsDriver == "sqlite" {
		cfg.DownloadsDSN = expandPath(cfg.DownloadsDSN)
	}

	return &cfg, nil
}

func initViper(configPath, defaultDir, defaultName, defaultType, envPrefix string) (*viper.Viper, error) {
	v := viper.New()
	v.SetConfigType(defaultType)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.AddConfigPath(defaultDir)
		v.AddConfigPath(".")
		v.SetConfigName(defaultName)
	}

	if err := v.ReadInConfig(); err != nil {
		_, notFound := err.(viper.ConfigFileNotFoundError)
		if !notFound {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}
	return v, nil
}

func expandPath(p string) string {
	if p == "" {
		return p
	}

	p = os.ExpandEnv(p)
	if strings.HasPrefix(p, "~") {
		if home, err := os.UserHomeDir(); err == nil {
			p = filepath.Join(home, strings.TrimPrefix(p, "~"))
		}
	}
	return p
}
