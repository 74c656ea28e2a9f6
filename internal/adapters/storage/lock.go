package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/gofrs/flock"
)

const lockRetryDelay = 25 * time.Millisecond

// lockFile takes an advisory lock on path, creating the file if needed.
// Each call opens its own handle, so two stores in one process exclude
// each other the same way two processes do.
func lockFile(ctx context.Context, path string) (func() error, error) {
	fl := flock.New(path)

	ok, err := fl.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		return nil, fmt.Errorf("lock %s: %w", path, err)
	}
	if !ok {
		return nil, fmt.Errorf("lock %s: %w", path, ctx.Err())
	}
	return fl.Unlock, nil
}
