package ossfm

import (
	"fmt"

	"github.com/mwantia/ossfm/data"
	"github.com/mwantia/ossfm/log"
	"github.com/mwantia/ossfm/metrics"
	"github.com/mwantia/ossfm/offline"
	"github.com/mwantia/ossfm/reader"
	"github.com/mwantia/ossfm/store"
)

type FileManagerOptions struct {
	Logger   *log.Logger
	LogLevel log.LogLevel

	Offline offline.Store
	Metrics *metrics.Metrics

	// Keys requested per listing page
	PageSize int
	// Maximum number of search matches (0 = unlimited)
	SearchLimit int

	Reader *reader.Options
}

type FileManagerOption func(*FileManagerOptions) error

func newDefaultFileManagerOptions() *FileManagerOptions {
	return &FileManagerOptions{
		LogLevel: log.Info,
		PageSize: store.DefaultMaxKeys,
		Reader: &reader.Options{
			RunesPerPage: reader.DefaultRunesPerPage,
		},
	}
}

func WithLogger(logger *log.Logger) FileManagerOption {
	return func(opts *FileManagerOptions) error {
		opts.Logger = logger
		return nil
	}
}

func WithLogLevel(logLevel log.LogLevel) FileManagerOption {
	return func(opts *FileManagerOptions) error {
		opts.LogLevel = logLevel
		return nil
	}
}

// WithOfflineStore enables downloads for offline reading.
func WithOfflineStore(store offline.Store) FileManagerOption {
	return func(opts *FileManagerOptions) error {
		opts.Offline = store
		return nil
	}
}

func WithMetrics(m *metrics.Metrics) FileManagerOption {
	return func(opts *FileManagerOptions) error {
		opts.Metrics = m
		return nil
	}
}

func WithPageSize(size int) FileManagerOption {
	return func(opts *FileManagerOptions) error {
		if size <= 0 || size > store.DefaultMaxKeys {
			return fmt.Errorf("page size must be between 1 and %d: %w", store.DefaultMaxKeys, data.ErrInvalid)
		}

		opts.PageSize = size
		return nil
	}
}

func WithSearchLimit(limit int) FileManagerOption {
	return func(opts *FileManagerOptions) error {
		if limit < 0 {
			return fmt.Errorf("search limit must not be negative: %w", data.ErrInvalid)
		}

		opts.SearchLimit = limit
		return nil
	}
}

func WithReaderOptions(ro *reader.Options) FileManagerOption {
	return func(opts *FileManagerOptions) error {
		opts.Reader = ro
		return nil
	}
}
