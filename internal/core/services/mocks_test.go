package services_test

import (
	"context"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/comitanigiacomo/kanso-habits/internal/core/domain"
	"github.com/comitanigiacomo/kanso-habits/internal/core/services"
)

type MapKV struct {
	mu   sync.Mutex
	data map[string][]byte
}

func NewMapKV() *MapKV {
	return &MapKV{data: make(map[string][]byte)}
}

func (m *MapKV) Get(ctx context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	v, ok := m.data[key]
	if !ok {
		return nil, domain.ErrKeyNotFound
	}
	return append([]byte(nil), v...), nil
}

func (m *MapKV) Set(ctx context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.data[key] = append([]byte(nil), value...)
	return nil
}

type MockKV struct {
	mock.Mock
}

func (m *MockKV) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockKV) Set(ctx context.Context, key string, value []byte) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

// FlakyKV is a MapKV whose writes can be made to fail.
type FlakyKV struct {
	*MapKV
	setErr error
}

func (f *FlakyKV) failSets(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.setErr = err
}

func (f *FlakyKV) Set(ctx context.Context, key string, value []byte) error {
	f.mu.Lock()
	err := f.setErr
	f.mu.Unlock()
	if err != nil {
		return err
	}
	return f.MapKV.Set(ctx, key, value)
}

// LockingKV is a MapKV that implements domain.Locker and counts accesses
// made without holding the lock.
type LockingKV struct {
	*MapKV
	lockErr        error
	held           bool
	locks          int
	unlockedAccess int
}

func (l *LockingKV) Lock(ctx context.Context) (func() error, error) {
	if l.lockErr != nil {
		return nil, l.lockErr
	}
	l.held = true
	l.locks++
	return func() error {
		l.held = false
		return nil
	}, nil
}

func (l *LockingKV) Get(ctx context.Context, key string) ([]byte, error) {
	if !l.held {
		l.unlockedAccess++
	}
	return l.MapKV.Get(ctx, key)
}

func (l *LockingKV) Set(ctx context.Context, key string, value []byte) error {
	if !l.held {
		l.unlockedAccess++
	}
	return l.MapKV.Set(ctx, key, value)
}

func fixedClock(y int, m time.Month, d int) services.Clock {
	return func() time.Time {
		return time.Date(y, m, d, 20, 15, 0, 0, time.UTC)
	}
}

func exercise() domain.Habit {
	return domain.Habit{Name: "Exercise", Reason: "health", TargetDays: 10, RewardMilestone: 3, Reward: "treat"}
}
