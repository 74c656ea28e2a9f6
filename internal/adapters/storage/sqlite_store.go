package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	_ "modernc.org/sqlite" // register sqlite driver

	"github.com/comitanigiacomo/kanso-habits/internal/core/domain"
)

var (
	_ domain.KeyValueStore = (*SQLiteStore)(nil)
	_ domain.Locker        = (*SQLiteStore)(nil)
)

const kvSchema = `
CREATE TABLE IF NOT EXISTS kv (
	key        TEXT PRIMARY KEY,
	value      BLOB NOT NULL,
	updated_at TEXT NOT NULL
)`

type SQLiteStore struct {
	db     *sqlx.DB
	path   string
	logger *zap.Logger
}

// OpenSQLite opens or creates the database at path and makes sure the kv
// table exists.
func OpenSQLite(path string, logger *zap.Logger) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("sqlite store: creating dir: %w", err)
	}

	db, err := sqlx.Open("sqlite", path+"?_pragma=journal_mode(wal)&_pragma=synchronous(full)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("sqlite store: open: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(kvSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite store: creating schema: %w", err)
	}

	if logger == nil {
		logger = zap.NewNop()
	}
	return &SQLiteStore{db: db, path: path, logger: logger}, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Lock uses a sidecar file next to the database. SQLite's own locking only
// covers single statements, while a habit update reads and writes two keys.
func (s *SQLiteStore) Lock(ctx context.Context) (func() error, error) {
	return lockFile(ctx, s.path+".lock")
}

func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *SQLiteStore) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.db.GetContext(ctx, &value, `SELECT value FROM kv WHERE key = ?`, key)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrKeyNotFound
		}
		return nil, fmt.Errorf("sqlite store: get %s: %w", key, err)
	}
	return value, nil
}

func (s *SQLiteStore) Set(ctx context.Context, key string, value []byte) error {
	query := `
		INSERT INTO kv (key, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at`

	now := time.Now().UTC().Format(time.RFC3339Nano)
	if _, err := s.db.ExecContext(ctx, query, key, value, now); err != nil {
		s.logger.Error("SQLite write failed", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("sqlite store: set %s: %w", key, err)
	}
	return nil
}
