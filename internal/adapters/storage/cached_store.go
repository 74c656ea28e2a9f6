package storage

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/comitanigiacomo/kanso-habits/internal/core/domain"
	"github.com/comitanigiacomo/kanso-habits/internal/platform/metrics"
)

var (
	_ domain.KeyValueStore = (*CachedStore)(nil)
	_ domain.Locker        = (*CachedStore)(nil)
)

// CachedStore fronts a durable store with Redis. Reads fall through to the
// durable store on a miss or any Redis error. Writes go to the durable store
// first and then replace the cached copy; if Redis refuses both the new value
// and the delete, the key is read from the durable store until a later write
// to the cache succeeds.
type CachedStore struct {
	next   domain.KeyValueStore
	cache  *redis.Client
	ttl    time.Duration
	logger *zap.Logger

	mu      sync.Mutex
	suspect map[string]struct{}
}

func NewCachedStore(next domain.KeyValueStore, cache *redis.Client, ttl time.Duration, logger *zap.Logger) *CachedStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CachedStore{
		next:    next,
		cache:   cache,
		ttl:     ttl,
		logger:  logger,
		suspect: make(map[string]struct{}),
	}
}

func (s *CachedStore) cacheKey(key string) string {
	return fmt.Sprintf("kanso:kv:%s", key)
}

func (s *CachedStore) isSuspect(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.suspect[key]
	return ok
}

func (s *CachedStore) markSuspect(key string, suspect bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if suspect {
		s.suspect[key] = struct{}{}
	} else {
		delete(s.suspect, key)
	}
}

// fill stores value in Redis and reports whether it got there.
func (s *CachedStore) fill(ctx context.Context, key string, value []byte) bool {
	if err := s.cache.Set(ctx, s.cacheKey(key), value, s.ttl).Err(); err != nil {
		s.logger.Warn("[CACHE] Redis set error", zap.String("key", key), zap.Error(err))
		return false
	}
	s.markSuspect(key, false)
	return true
}

// Lock delegates to the durable store, which owns cross-process locking.
func (s *CachedStore) Lock(ctx context.Context) (func() error, error) {
	if l, ok := s.next.(domain.Locker); ok {
		return l.Lock(ctx)
	}
	return func() error { return nil }, nil
}

func (s *CachedStore) Get(ctx context.Context, key string) ([]byte, error) {
	if s.isSuspect(key) {
		metrics.IncrementCacheLookup("bypass")
		value, err := s.next.Get(ctx, key)
		if err != nil {
			return nil, err
		}
		s.fill(ctx, key, value)
		return value, nil
	}

	ck := s.cacheKey(key)

	val, err := s.cache.Get(ctx, ck).Bytes()
	if err == nil {
		metrics.IncrementCacheLookup("hit")
		return val, nil
	}
	if errors.Is(err, redis.Nil) {
		metrics.IncrementCacheLookup("miss")
	} else {
		metrics.IncrementCacheLookup("error")
		s.logger.Warn("[CACHE] Redis read error", zap.String("key", key), zap.Error(err))
	}

	value, err := s.next.Get(ctx, key)
	if err != nil {
		return nil, err
	}

	s.fill(ctx, key, value)
	return value, nil
}

func (s *CachedStore) Set(ctx context.Context, key string, value []byte) error {
	if err := s.next.Set(ctx, key, value); err != nil {
		return err
	}
	if s.fill(ctx, key, value) {
		return nil
	}

	if err := s.cache.Del(ctx, s.cacheKey(key)).Err(); err != nil {
		s.logger.Error("[CACHE] Cached copy may be stale, bypassing it", zap.String("key", key), zap.Error(err))
		s.markSuspect(key, true)
		return nil
	}
	s.markSuspect(key, false)
	return nil
}
