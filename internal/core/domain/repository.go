package domain

import (
	"context"
	"errors"
)

var (
	ErrKeyNotFound        = errors.New("key not found")
	ErrStorageUnavailable = errors.New("storage unavailable")
)

const (
	HabitsKey    = "habits"
	HabitDataKey = "habitData"
)

// KeyValueStore is the durable storage port of the habit store. The store
// keeps two independent entries, HabitsKey and HabitDataKey, each holding a
// JSON document.
type KeyValueStore interface {
	// Get returns the raw value stored under key, or ErrKeyNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set replaces the value stored under key. It must not return before the
	// write is durable.
	Set(ctx context.Context, key string, value []byte) error
}

// Locker is implemented by durable stores that several processes can open
// at once. The habit store holds the lock across read, change and write.
type Locker interface {
	// Lock blocks until the caller holds the store exclusively or ctx is
	// done. The returned func releases the lock.
	Lock(ctx context.Context) (unlock func() error, err error)
}
