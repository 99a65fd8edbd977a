package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mwantia/ossfm"
	"github.com/mwantia/ossfm/config"
	"github.com/mwantia/ossfm/log"
	"github.com/mwantia/ossfm/metrics"
	"github.com/mwantia/ossfm/offline"
	"github.com/mwantia/ossfm/offline/postgres"
	"github.com/mwantia/ossfm/offline/sqlite"
	"github.com/mwantia/ossfm/reader"
	"github.com/mwantia/ossfm/store/provider"
	"github.com/prometheus/client_golang/prometheus"
)

// App bundles everything a command needs. The file manager is created on first use,
// so commands like configure work without a valid vault.
type App struct {
	Config *config.AppConfig
	Log    *log.Logger
	Vault  *config.VaultSource

	registry *prometheus.Registry
	fm       *ossfm.FileManager
}

func NewApp(cfg *config.AppConfig, level string) (*App, error) {
	if level == "" {
		level = cfg.LogLevel
	}

	logLevel, err := log.Parse(level)
	if err != nil {
		return nil, err
	}

	opts := []log.LoggerOption{log.WithJSON(cfg.LogJSON)}
	if cfg.LogFile != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		opts = append(opts, log.WithFile(cfg.LogFile))
	}

	return &App{
		Config:   cfg,
		Log:      log.NewLogger("ossfm", logLevel, opts...),
		Vault:    config.NewVaultSource(cfg.VaultFile, nil),
		registry: prometheus.NewRegistry(),
	}, nil
}

// FileManager returns the file manager, creating it and its offline store on first use.
func (a *App) FileManager(ctx context.Context) (*ossfm.FileManager, error) {
	if a.fm != nil {
		return a.fm, nil
	}

	downloads, err := a.openOffline(ctx)
	if err != nil {
		return nil, err
	}

	fm, err := ossfm.New(a.Vault, provider.Open,
		ossfm.WithLogger(a.Log.Named("fm")),
		ossfm.WithOfflineStore(downloads),
		ossfm.WithMetrics(metrics.New(a.registry)),
		ossfm.WithSearchLimit(a.Config.SearchLimit),
		ossfm.WithReaderOptions(&reader.Options{RunesPerPage: a.Config.PageRunes}),
	)
	if err != nil {
		downloads.Close()
		return nil, err
	}

	a.fm = fm
	return fm, nil
}

func (a *App) openOffline(ctx context.Context) (offline.Store, error) {
	switch a.Config.DownloadsDriver {
	case "", "sqlite":
		if err := os.MkdirAll(filepath.Dir(a.Config.DownloadsDSN), 0o700); err != nil {
			return nil, fmt.Errorf("failed to create downloads directory: %w", err)
		}
		return sqlite.NewSQLiteStore(a.Config.DownloadsDSN)
	case "postgres":
		return postgres.NewPostgresStore(ctx, a.Config.DownloadsDSN)
	case "memory":
		return offline.NewMemoryStore(), nil
	}

	return nil, fmt.Errorf("unknown downloads driver '%s'", a.Config.DownloadsDriver)
}

// Close releases the file manager and writes collected metrics when configured.
func (a *App) Close(ctx context.Context) error {
	if a.fm != nil {
		if err := a.fm.Close(ctx); err != nil {
			a.Log.Warn("Failed to close file manager: %v", err)
		}
		a.fm = nil
	}

	if a.Config.MetricsFile == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(a.Config.MetricsFile, a.registry); err != nil {
		return fmt.Errorf("failed to write metrics to '%s': %w", a.Config.MetricsFile, err)
	}
	return nil
}
