package offline

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/mwantia/ossfm/data"
)

// Download is the decoded text of a remote object kept for offline reading.
type Download struct {
	ID           uuid.UUID `json:"id"`
	Key          string    `json:"key"`
	Name         string    `json:"name"`
	Content      string    `json:"content,omitempty"`
	Encoding     string    `json:"encoding"`
	Size         int64     `json:"size"`
	DownloadTime time.Time `json:"download_time"`
}

// NewDownload creates a download record for key, stamped with the current time.
func NewDownload(key, content, encoding string, size int64) *Download {
	return &Download{
		ID:           uuid.Must(uuid.NewV7()),
		Key:          key,
		Name:         data.BaseName(key),
		Content:      content,
		Encoding:     encoding,
		Size:         size,
		DownloadTime: time.Now().UTC(),
	}
}

// Store persists downloads. Saving a key that was downloaded before replaces the
// previous record and keeps its ID.
type Store interface {
	// Name returns the identifier name defined for this store
	Name() string

	Save(ctx context.Context, download *Download) error
	// Get returns data.ErrNotExist for unknown IDs.
	Get(ctx context.Context, id uuid.UUID) (*Download, error)
	// List returns every download without content, newest first.
	List(ctx context.Context) ([]*Download, error)
	// Remove returns data.ErrNotExist for unknown IDs.
	Remove(ctx context.Context, id uuid.UUID) error
	Clear(ctx context.Context) error

	Close() error
}
