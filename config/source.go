package config

import (
	"context"
	"sync"

	"github.com/mwantia/ossfm/data/errors"
)

// Source yields the current store configuration. Implementations must return the
// latest persisted value on every call.
type Source interface {
	Load(ctx context.Context) (*StoreConfig, error)
}

// StaticSource serves a configuration held in memory. Store replaces it, and later
// calls to Load observe the new value.
type StaticSource struct {
	mu  sync.RWMutex
	cfg *StoreConfig
}

func NewStaticSource(cfg *StoreConfig) *StaticSource {
	return &StaticSource{cfg: cfg}
}

func (s *StaticSource) Load(ctx context.Context) (*StoreConfig, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.cfg == nil {
		return nil, errors.ConfigMissing("no store configuration")
	}

	cfg := *s.cfg
	return &cfg, nil
}

func (s *StaticSource) Store(cfg *StoreConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cfg = cfg
}
