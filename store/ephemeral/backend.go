package ephemeral

import (
	"context"
	"sync"
	"time"

	"github.com/mwantia/ossfm/store"
	"github.com/tidwall/btree"
)

type object struct {
	content      []byte
	lastModified time.Time
}

// EphemeralBackend keeps every object in memory, ordered by key. Used by tests and
// as a scratch store.
type EphemeralBackend struct {
	mu sync.RWMutex

	objects *btree.Map[string, *object]
	now     func() time.Time
}

func NewEphemeralBackend() *EphemeralBackend {
	return &EphemeralBackend{
		objects: btree.NewMap[string, *object](0),
		now:     time.Now,
	}
}

// Returns the identifier name defined for this backend
func (*EphemeralBackend) Name() string {
	return "ephemeral"
}

// Open is part of the lifecycle behaviour and gets called when opening this backend.
func (eb *EphemeralBackend) Open(ctx context.Context) error {
	// No initialization needed - backend is ready to use
	return nil
}

// Close is part of the lifecycle behaviour and gets called when closing this backend.
func (eb *EphemeralBackend) Close(ctx context.Context) error {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	eb.objects.Clear()
	return nil
}

// GetCapabilities returns a list of capabilities supported by this backend.
func (eb *EphemeralBackend) GetCapabilities() *store.BackendCapabilities {
	return &store.BackendCapabilities{
		Capabilities: []store.BackendCapability{
			store.CapabilityList,
			store.CapabilityServerCopy,
			store.CapabilityModifyTime,
		},
		MaxObjectSize: 10485760, // 10 MB
		MaxKeys:       store.DefaultMaxKeys,
	}
}

// Keys returns every stored key in order.
func (eb *EphemeralBackend) Keys() []string {
	eb.mu.RLock()
	defer eb.mu.RUnlock()

	return eb.objects.Keys()
}
