package store

import (
	"context"

	"github.com/mwantia/ossfm/config"
	"github.com/mwantia/ossfm/data"
)

// Lister issues prefix listings against a remote store.
type Lister interface {
	// List returns one page of keys below query.Prefix.
	List(ctx context.Context, query *ListQuery) (*data.ListResult, error)
}

// Reader fetches object content.
type Reader interface {
	// Get returns the full object content, or data.ErrNotExist if absent.
	Get(ctx context.Context, key string) ([]byte, error)
}

// Mutator changes objects on a remote store.
type Mutator interface {
	// Put writes content at key, replacing any existing object.
	Put(ctx context.Context, key string, content []byte) error
	// Copy duplicates sourceKey to destinationKey, or fails with data.ErrNotExist.
	Copy(ctx context.Context, destinationKey, sourceKey string) error
	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}

// RemoteStore is the flat key-value bucket the namespace is projected from.
type RemoteStore interface {
	Backend
	Lister
	Reader
	Mutator
}

// Opener creates a remote store for the given configuration.
type Opener func(ctx context.Context, cfg *config.StoreConfig) (RemoteStore, error)
