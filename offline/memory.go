package offline

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/mwantia/ossfm/data/errors"
)

// MemoryStore keeps downloads for the lifetime of the process.
type MemoryStore struct {
	mu        sync.RWMutex
	downloads map[uuid.UUID]*Download
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		downloads: make(map[uuid.UUID]*Download),
	}
}

func (*MemoryStore) Name() string {
	return "memory"
}

func (ms *MemoryStore) Save(ctx context.Context, download *Download) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	for id, existing := range ms.downloads {
		if existing.Key == download.Key {
			download.ID = id
			break
		}
	}

	stored := *download
	ms.downloads[download.ID] = &stored
	return nil
}

func (ms *MemoryStore) Get(ctx context.Context, id uuid.UUID) (*Download, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	download, exists := ms.downloads[id]
	if !exists {
		return nil, errors.NotExist(nil, id.String())
	}

	result := *download
	return &result, nil
}

func (ms *MemoryStore) List(ctx context.Context) ([]*Download, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	result := make([]*Download, 0, len(ms.downloads))
	for _, download := range ms.downloads {
		summary := *download
		summary.Content = ""
		result = append(result, &summary)
	}

	sort.Slice(result, func(i, j int) bool {
		if !result[i].DownloadTime.Equal(result[j].DownloadTime) {
			return result[i].DownloadTime.After(result[j].DownloadTime)
		}
		return result[i].Key < result[j].Key
	})
	return result, nil
}

func (ms *MemoryStore) Remove(ctx context.Context, id uuid.UUID) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	if _, exists := ms.downloads[id]; !exists {
		return errors.NotExist(nil, id.String())
	}

	delete(ms.downloads, id)
	return nil
}

func (ms *MemoryStore) Clear(ctx context.Context) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	clear(ms.downloads)
	return nil
}

func (ms *MemoryStore) Close() error {
	return nil
}
