package ossfm

import (
	"context"
	"fmt"
	"sync"

	"github.com/mwantia/ossfm/config"
	"github.com/mwantia/ossfm/data"
	"github.com/mwantia/ossfm/log"
	"github.com/mwantia/ossfm/metrics"
	"github.com/mwantia/ossfm/namespace"
	"github.com/mwantia/ossfm/offline"
	"github.com/mwantia/ossfm/reader"
	"github.com/mwantia/ossfm/store"
)

// FileManager implements Operations on top of a remote store. It is safe for concurrent
// use; a store replaced after a configuration change stays open until Close.
type FileManager struct {
	mu sync.Mutex

	log     *log.Logger
	source  config.Source
	opener  store.Opener
	offline offline.Store
	metrics *metrics.Metrics

	pageSize    int
	searchLimit int
	reader      *reader.Options

	// Store opened for the configuration seen last
	current    store.RemoteStore
	currentCfg config.StoreConfig
	// Stores replaced after a configuration change, closed with the file manager
	retired []store.RemoteStore
}

var _ Operations = (*FileManager)(nil)

// New creates a file manager. The configuration is loaded from source on every call;
// opener creates the store whenever that configuration changes.
func New(source config.Source, opener store.Opener, opts ...FileManagerOption) (*FileManager, error) {
	if source == nil || opener == nil {
		return nil, fmt.Errorf("failed to create file manager: %w", data.ErrInvalid)
	}

	options := newDefaultFileManagerOptions()
	for _, opt := range opts {
		if err := opt(options); err != nil {
			return nil, err
		}
	}

	logger := options.Logger
	if logger == nil {
		logger = log.NewLogger("ossfm", options.LogLevel)
	}

	return &FileManager{
		log:         logger,
		source:      source,
		opener:      opener,
		offline:     options.Offline,
		metrics:     options.Metrics,
		pageSize:    options.PageSize,
		searchLimit: options.SearchLimit,
		reader:      options.Reader,
	}, nil
}

// session is the store and namespace configuration valid for a single operation.
type session struct {
	store store.RemoteStore
	ns    config.NamespaceConfig
}

// open loads the current configuration and returns a store for it. The previously
// opened store is reused while the configuration is unchanged.
func (fm *FileManager) open(ctx context.Context) (*session, error) {
	cfg, err := fm.source.Load(ctx)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	fm.mu.Lock()
	defer fm.mu.Unlock()

	if fm.current == nil || fm.currentCfg != *cfg {
		// Calls that are still running keep using the replaced store
		if fm.current != nil {
			fm.log.Debug("Retiring store '%s' after configuration change", fm.current.Name())
			fm.retired = append(fm.retired, fm.current)
			fm.current = nil
		}

		s, err := fm.opener(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to create store: %w", err)
		}
		if err := s.Open(ctx); err != nil {
			return nil, fmt.Errorf("failed to open store '%s': %w", s.Name(), err)
		}

		fm.log.Debug("Opened store '%s' for bucket '%s'", s.Name(), cfg.Bucket)
		fm.current = s
		fm.currentCfg = *cfg
	}

	return &session{
		store: fm.current,
		ns:    cfg.Namespace(),
	}, nil
}

// listPageSize clamps the configured page size to the page cap of s.
func (fm *FileManager) listPageSize(s store.RemoteStore) int {
	size := fm.pageSize
	caps := s.GetCapabilities()
	if caps != nil && caps.MaxKeys > 0 && (size <= 0 || size > caps.MaxKeys) {
		size = caps.MaxKeys
	}
	return size
}

// lister observes every listing page when metrics are enabled.
func (fm *FileManager) lister(s store.RemoteStore) store.Lister {
	if fm.metrics == nil {
		return s
	}
	return &observedLister{store: s, metrics: fm.metrics}
}

func (fm *FileManager) executor(s store.Mutator) *namespace.Executor {
	if fm.metrics == nil {
		return namespace.NewExecutor(s, nil)
	}
	return namespace.NewExecutor(s, fm.metrics)
}

// Close releases every store opened by the file manager and the offline store.
func (fm *FileManager) Close(ctx context.Context) error {
	fm.mu.Lock()
	defer fm.mu.Unlock()

	errs := data.Errors{}
	for _, s := range fm.retired {
		errs.Add(s.Close(ctx))
	}
	fm.retired = nil

	if fm.current != nil {
		errs.Add(fm.current.Close(ctx))
		fm.current = nil
	}
	if fm.offline != nil {
		errs.Add(fm.offline.Close())
	}

	return errs.Errors()
}

type observedLister struct {
	store   store.RemoteStore
	metrics *metrics.Metrics
}

func (ol *observedLister) List(ctx context.Context, query *store.ListQuery) (*data.ListResult, error) {
	result, err := ol.store.List(ctx, query)
	ol.metrics.ObserveList(ol.store.Name(), err)
	return result, err
}
