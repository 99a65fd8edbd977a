package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	ossfmerrors "github.com/mwantia/ossfm/data/errors"
	"github.com/mwantia/ossfm/offline"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// SQLiteStore persists offline downloads in a single SQLite table.
type SQLiteStore struct {
	mu sync.RWMutex
	db *sql.DB
}

// NewSQLiteStore opens the database at dbPath.
// The dbPath can be ":memory:" for an in-memory database or a file path.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}

	// Every connection to ":memory:" would open a new, empty database
	db.SetMaxOpenConns(1)

	if dbPath != ":memory:" {
		// Enable WAL mode for better concurrency
		if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
			db.Close()
			return nil, err
		}
	}

	store := &SQLiteStore{
		db: db,
	}

	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, err
	}

	return store, nil
}

// initSchema creates the database schema.
func (ss *SQLiteStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS ossfm_downloads (
		id TEXT PRIMARY KEY,
		key TEXT NOT NULL UNIQUE,
		name TEXT NOT NULL,
		content TEXT NOT NULL,
		encoding TEXT NOT NULL,
		size INTEGER NOT NULL CHECK(size >= 0),
		download_time INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_ossfm_downloads_time ON ossfm_downloads(download_time);
	`

	_, err := ss.db.Exec(schema)
	return err
}

func (*SQLiteStore) Name() string {
	return "sqlite"
}

func (ss *SQLiteStore) Save(ctx context.Context, download *offline.Download) error {
	ss.mu.Lock()
	defer ss.mu.Unlock()

	var id string
	err := ss.db.QueryRowContext(ctx, `
		INSERT INTO ossfm_downloads (id, key, name, content, encoding, size, download_time)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			name = excluded.name,
			content = excluded.content,
			encoding = excluded.encoding,
			size = excluded.size,
			download_time = excluded.download_time
		RETURNING id`,
		download.ID.String(), download.Key, download.Name, download.Content,
		download.Encoding, download.Size, download.DownloadTime.UnixNano(),
	).Scan(&id)
	if err != nil {
		return fmt.Errorf("failed to save download '%s': %w", download.Key, err)
	}

	parsed, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("failed to parse download id '%s': %w", id, err)
	}

	download.ID = parsed
	return nil
}

func (ss *SQLiteStore) Get(ctx context.Context, id uuid.UUID) (*offline.Download, error) {
	ss.mu.RLock()
	defer ss.mu.RUnlock()

	row := ss.db.QueryRowContext(ctx, `
		SELECT id, key, name, content, encoding, size, download_time
		FROM ossfm_downloads WHERE id = ?`, id.String())

	download, err := scanDownload(row, true)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ossfmerrors.NotExist(nil, id.String())
		}
		return nil, fmt.Errorf("failed to read download '%s': %w", id, err)
	}

	return download, nil
}

func (ss *SQLiteStore) List(ctx context.Context) ([]*offline.Download, error) {
	ss.mu.RLock()
	defer ss.mu.RUnlock()

	rows, err := ss.db.QueryContext(ctx, `
		SELECT id, key, name, encoding, size, download_time
		FROM ossfm_downloads ORDER BY download_time DESC, key ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list downloads: %w", err)
	}
	defer rows.Close()

	result := make([]*offline.Download, 0)
	for rows.Next() {
		download, err := scanDownload(rows, false)
		if err != nil {
			return nil, fmt.Errorf("failed to scan download: %w", err)
		}
		result = append(result, download)
	}

	return result, rows.Err()
}

func (ss *SQLiteStore) Remove(ctx context.Context, id uuid.UUID) error {
	ss.mu.Lock()
	defer ss.mu.Unlock()

	res, err := ss.db.ExecContext(ctx, "DELETE FROM ossfm_downloads WHERE id = ?", id.String())
	if err != nil {
		return fmt.Errorf("failed to remove download '%s': %w", id, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ossfmerrors.NotExist(nil, id.String())
	}
	return nil
}

func (ss *SQLiteStore) Clear(ctx context.Context) error {
	ss.mu.Lock()
	defer ss.mu.Unlock()

	if _, err := ss.db.ExecContext(ctx, "DELETE FROM ossfm_downloads"); err != nil {
		return fmt.Errorf("failed to clear downloads: %w", err)
	}
	return nil
}

func (ss *SQLiteStore) Close() error {
	ss.mu.Lock()
	defer ss.mu.Unlock()

	return ss.db.Close()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanDownload(row scanner, withContent bool) (*offline.Download, error) {
	var (
		id           string
		download     offline.Download
		downloadTime int64
	)

	dest := []any{&id, &download.Key, &download.Name}
	if withContent {
		dest = append(dest, &download.Content)
	}
	dest = append(dest, &download.Encoding, &download.Size, &downloadTime)

	if err := row.Scan(dest...); err != nil {
		return nil, err
	}

	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}

	download.ID = parsed
	download.DownloadTime = time.Unix(0, downloadTime).UTC()
	return &download, nil
}
