package ossfm

import (
	"context"

	"github.com/google/uuid"
	"github.com/mwantia/ossfm/data"
	"github.com/mwantia/ossfm/namespace"
	"github.com/mwantia/ossfm/offline"
	"github.com/mwantia/ossfm/reader"
)

// Operations defines everything a client can do with the managed bucket.
// Every call loads the current store configuration before touching the store.
type Operations interface {
	// List returns the folders and files directly below path. An empty path lists the
	// configured root.
	List(ctx context.Context, path string) ([]*data.Entry, error)

	// ListTrash works like List but never leaves the trash root.
	ListTrash(ctx context.Context, path string) ([]*data.Entry, error)

	// TrashParent returns the parent of a trash path, bounded at the trash root.
	TrashParent(ctx context.Context, path string) (string, error)

	// Search finds files below path whose name contains term.
	Search(ctx context.Context, term, path string) (*namespace.SearchResult, error)

	// CreateFolder writes an empty directory marker for name below path.
	CreateFolder(ctx context.Context, path, name string) (*namespace.Plan, error)

	// Rename gives a file a new base name within its folder.
	Rename(ctx context.Context, key, newName string) (*namespace.Plan, error)

	// Move relocates a file to another folder.
	Move(ctx context.Context, key, folder string) (*namespace.Plan, error)

	// Delete moves files into the trash. Every key is attempted; failures are joined.
	Delete(ctx context.Context, keys ...string) ([]*namespace.Plan, error)

	// Restore moves trashed files back below the root.
	Restore(ctx context.Context, keys ...string) ([]*namespace.Plan, error)

	// Purge permanently deletes trashed files.
	Purge(ctx context.Context, keys ...string) ([]*namespace.Plan, error)

	// TestConnection issues a single one-key listing against the configured store.
	TestConnection(ctx context.Context) error

	// StoreInfo reports the name and capabilities of the configured store.
	StoreInfo(ctx context.Context) (*StoreInfo, error)

	// Download fetches and decodes a text file and keeps it for offline reading.
	Download(ctx context.Context, key string) (*offline.Download, error)

	Downloads(ctx context.Context) ([]*offline.Download, error)
	RemoveDownload(ctx context.Context, id uuid.UUID) error
	ClearDownloads(ctx context.Context) error

	// Read fetches a text file and splits it into chapters and pages.
	Read(ctx context.Context, key string) (*reader.Document, error)

	// ReadDownload opens a previously downloaded file without contacting the store.
	ReadDownload(ctx context.Context, id uuid.UUID) (*reader.Document, error)
}
