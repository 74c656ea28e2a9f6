package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"go.uber.org/zap"

	"github.com/comitanigiacomo/kanso-habits/internal/core/domain"
)

var (
	_ domain.KeyValueStore = (*FileStore)(nil)
	_ domain.Locker        = (*FileStore)(nil)
)

// lockName cannot collide with a key file: keys never contain a dot.
const lockName = ".kanso.lock"

var keyRegex = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

var ErrInvalidKey = errors.New("invalid storage key")

// FileStore keeps each key in its own <key>.json file under dir. Writes go
// to a temporary file that is synced and renamed over the old one, so a
// crash leaves either the old or the new value.
type FileStore struct {
	dir    string
	logger *zap.Logger
}

func NewFileStore(dir string, logger *zap.Logger) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("file store: creating data dir: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FileStore{dir: dir, logger: logger}, nil
}

// Lock serialises writers sharing dir, such as `kanso serve` and a
// concurrent `kanso record`.
func (s *FileStore) Lock(ctx context.Context) (func() error, error) {
	return lockFile(ctx, filepath.Join(s.dir, lockName))
}

func (s *FileStore) path(key string) (string, error) {
	if !keyRegex.MatchString(key) {
		return "", fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return filepath.Join(s.dir, key+".json"), nil
}

func (s *FileStore) Get(ctx context.Context, key string) ([]byte, error) {
	path, err := s.path(key)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path) //nolint:gosec // key is restricted by keyRegex
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, domain.ErrKeyNotFound
		}
		return nil, fmt.Errorf("file store: read %s: %w", key, err)
	}
	return data, nil
}

func (s *FileStore) Set(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	path, err := s.path(key)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(s.dir, key+".*.tmp")
	if err != nil {
		return fmt.Errorf("file store: create temp for %s: %w", key, err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(value); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("file store: write %s: %w", key, err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("file store: sync %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("file store: close %s: %w", key, err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("file store: replace %s: %w", key, err)
	}

	s.logger.Debug("Value written", zap.String("key", key), zap.Int("bytes", len(value)))
	return nil
}
