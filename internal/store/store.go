package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

// ErrNotFound is returned by BlobStore.Get when no value exists for a key.
var ErrNotFound = errors.New("blob not found")

// BlobStore is a small durable key/blob capability scoped to one user's
// configuration directory.
type BlobStore interface {
	// Get returns the value stored under key, or ErrNotFound.
	Get(key string) ([]byte, error)
	// Put replaces the value stored under key wholesale.
	Put(key string, value []byte) error
	// Location describes where values live, for display.
	Location(key string) string
	// Close releases resources.
	Close() error
}

// Backend names accepted by OpenBlobStore.
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

// OpenBlobStore opens the named backend rooted at dir.
func OpenBlobStore(backend, dir string) (BlobStore, error) {
	switch backend {
	case "", BackendJSON:
		return NewFileBlobStore(dir), nil
	case BackendSQLite:
		return OpenSQLite(filepath.Join(dir, "index.db"))
	default:
		return nil, fmt.Errorf("unknown store backend %q", backend)
	}
}

// SQLiteStore implements BlobStore backed by a single SQLite table.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

// OpenSQLite creates or opens a SQLite database at the given path and initializes the schema.
func OpenSQLite(dbPath string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if err := Init(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return &SQLiteStore{db: db, path: dbPath}, nil
}

func (s *SQLiteStore) Get(key string) ([]byte, error) {
	var value []byte
	err := s.db.QueryRow("SELECT value FROM blobs WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", key, err)
	}
	return value, nil
}

func (s *SQLiteStore) Put(key string, value []byte) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO blobs (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("put %s: %w", key, err)
	}
	return tx.Commit()
}

func (s *SQLiteStore) Location(key string) string {
	return s.path + "#" + key
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
