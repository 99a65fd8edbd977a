package ossfm

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/mwantia/ossfm/data"
	"github.com/mwantia/ossfm/data/errors"
	"github.com/mwantia/ossfm/offline"
	"github.com/mwantia/ossfm/reader"
	"github.com/mwantia/ossfm/store"
)

func (fm *FileManager) offlineStore() (offline.Store, error) {
	if fm.offline == nil {
		return nil, errors.Unsupported(nil, "downloads", "no offline store")
	}
	return fm.offline, nil
}

// fetchText loads a readable object and decodes it.
func (fm *FileManager) fetchText(ctx context.Context, key string) ([]byte, error) {
	if data.IsFolderKey(key) {
		return nil, errors.Unsupported(nil, "read folder", key)
	}
	if !data.IsReadable(key) {
		return nil, fmt.Errorf("failed to read '%s': %w", key, data.ErrNotReadable)
	}

	sess, err := fm.open(ctx)
	if err != nil {
		return nil, err
	}

	if caps := sess.store.GetCapabilities(); caps != nil && caps.MaxObjectSize > 0 {
		size, err := fm.objectSize(ctx, sess, key)
		if err != nil {
			return nil, fmt.Errorf("failed to read '%s': %w", key, err)
		}
		if size > caps.MaxObjectSize {
			return nil, errors.Unsupported(nil, "read object above the store size limit", key)
		}
	}

	raw, err := sess.store.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to read '%s': %w", key, err)
	}

	if fm.metrics != nil {
		fm.metrics.ObserveDownload(len(raw))
	}
	return raw, nil
}

// objectSize looks key up with a single one-key listing.
func (fm *FileManager) objectSize(ctx context.Context, sess *session, key string) (int64, error) {
	page, err := fm.lister(sess.store).List(ctx, &store.ListQuery{
		Prefix:  key,
		MaxKeys: 1,
	})
	if err != nil {
		return 0, err
	}
	if len(page.Objects) == 0 || page.Objects[0].Key != key {
		return 0, errors.NotExist(nil, key)
	}
	return page.Objects[0].Size, nil
}

// Download fetches and decodes a text file and keeps it for offline reading.
// Downloading the same key again replaces the stored copy.
func (fm *FileManager) Download(ctx context.Context, key string) (*offline.Download, error) {
	downloads, err := fm.offlineStore()
	if err != nil {
		return nil, err
	}

	raw, err := fm.fetchText(ctx, key)
	if err != nil {
		return nil, err
	}

	text, encoding, err := reader.Decode(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to decode '%s': %w", key, err)
	}

	download := offline.NewDownload(key, text, encoding, int64(len(raw)))
	if err := downloads.Save(ctx, download); err != nil {
		return nil, err
	}

	fm.log.Info("Downloaded '%s' (%d bytes, %s)", key, len(raw), encoding)
	return download, nil
}

func (fm *FileManager) Downloads(ctx context.Context) ([]*offline.Download, error) {
	downloads, err := fm.offlineStore()
	if err != nil {
		return nil, err
	}
	return downloads.List(ctx)
}

func (fm *FileManager) RemoveDownload(ctx context.Context, id uuid.UUID) error {
	downloads, err := fm.offlineStore()
	if err != nil {
		return err
	}
	return downloads.Remove(ctx, id)
}

func (fm *FileManager) ClearDownloads(ctx context.Context) error {
	downloads, err := fm.offlineStore()
	if err != nil {
		return err
	}

	fm.log.Info("Clearing all downloads from '%s'", downloads.Name())
	return downloads.Clear(ctx)
}

// Read fetches a text file and splits it into chapters and pages.
func (fm *FileManager) Read(ctx context.Context, key string) (*reader.Document, error) {
	raw, err := fm.fetchText(ctx, key)
	if err != nil {
		return nil, err
	}

	return reader.Open(key, raw, fm.reader)
}

// ReadDownload opens a previously downloaded file without contacting the store.
func (fm *FileManager) ReadDownload(ctx context.Context, id uuid.UUID) (*reader.Document, error) {
	downloads, err := fm.offlineStore()
	if err != nil {
		return nil, err
	}

	download, err := downloads.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	return reader.NewDocument(download.Key, download.Content, download.Encoding, fm.reader)
}
