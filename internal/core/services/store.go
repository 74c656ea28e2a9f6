package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/comitanigiacomo/kanso-habits/internal/core/domain"
	"github.com/comitanigiacomo/kanso-habits/internal/platform/metrics"
)

// Clock returns the current time in the user's local time zone. The date
// part of its result decides which day "today" is.
type Clock func() time.Time

func SystemClock(loc *time.Location) Clock {
	if loc == nil {
		loc = time.Local
	}
	return func() time.Time {
		return time.Now().In(loc)
	}
}

type Snapshot struct {
	Habits  []domain.Habit `json:"habits"`
	Records domain.Records `json:"records"`
}

// Store owns the habit list and the daily records of one installation and
// writes both to the key-value store after every change. A failed write
// keeps the in-memory state and is reported as ErrStorageUnavailable.
//
// Several processes may share one key-value store. Every change rereads
// both keys first, holding the store's lock when it implements
// domain.Locker, so a write never discards another process's changes.
// After a failed write the in-memory state is newer than storage and the
// reread is skipped until a write succeeds.
type Store struct {
	kv     domain.KeyValueStore
	now    Clock
	logger *zap.Logger

	mu      sync.RWMutex
	habits  []domain.Habit
	records domain.Records
	dirty   bool
}

func NewStore(kv domain.KeyValueStore, now Clock, logger *zap.Logger) *Store {
	if now == nil {
		now = SystemClock(nil)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Store{
		kv:      kv,
		now:     now,
		logger:  logger,
		habits:  []domain.Habit{},
		records: domain.Records{},
	}
}

func (s *Store) Today() time.Time {
	return s.now()
}

// Load replaces the in-memory state with what the key-value store holds.
// Missing, unreadable or malformed entries load as empty. A stored habit
// list that breaks the setup rules is kept as is, because records refer to
// habits by position, and logged as a warning.
func (s *Store) Load(ctx context.Context) Snapshot {
	habits := []domain.Habit{}
	var storedHabits []domain.Habit
	if s.loadValue(ctx, domain.HabitsKey, &storedHabits) && storedHabits != nil {
		habits = storedHabits
	}
	s.checkStoredHabits(habits)

	records := domain.Records{}
	var storedRecords domain.Records
	if s.loadValue(ctx, domain.HabitDataKey, &storedRecords) && storedRecords != nil {
		records = storedRecords
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.habits = habits
	s.records = records
	s.dirty = false

	s.logger.Info("Habit data loaded",
		zap.Int("habits", len(habits)),
		zap.Int("days", len(records)),
	)
	return s.snapshotLocked()
}

func (s *Store) checkStoredHabits(habits []domain.Habit) {
	if len(habits) > domain.MaxHabits {
		s.logger.Warn("Stored habit list is longer than allowed",
			zap.Int("habits", len(habits)),
			zap.Int("max", domain.MaxHabits),
		)
	}
	for i, h := range habits {
		if err := h.Validate(); err != nil {
			s.logger.Warn("Stored habit is invalid", zap.Int("index", i), zap.String("name", h.Name), zap.Error(err))
		}
	}
}

func (s *Store) loadValue(ctx context.Context, key string, dst any) bool {
	found, err := s.readValue(ctx, key, dst)
	if err != nil {
		s.logger.Warn("Stored value unusable, starting empty", zap.String("key", key), zap.Error(err))
		return false
	}
	return found
}

// readValue decodes key into dst. A missing key is (false, nil).
func (s *Store) readValue(ctx context.Context, key string, dst any) (bool, error) {
	raw, err := s.kv.Get(ctx, key)
	if errors.Is(err, domain.ErrKeyNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read %s: %w", key, err)
	}

	if err := json.Unmarshal(raw, dst); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

// lockStorage takes the cross-process lock when the key-value store has
// one. Without it the change still goes ahead.
func (s *Store) lockStorage(ctx context.Context) func() {
	l, ok := s.kv.(domain.Locker)
	if !ok {
		return func() {}
	}

	unlock, err := l.Lock(ctx)
	if err != nil {
		s.logger.Warn("Storage lock unavailable, writing without it", zap.Error(err))
		return func() {}
	}
	return func() {
		if err := unlock(); err != nil {
			s.logger.Warn("Releasing storage lock failed", zap.Error(err))
		}
	}
}

// refreshLocked picks up changes other processes wrote since the last read.
// A key that cannot be read keeps its in-memory value.
func (s *Store) refreshLocked(ctx context.Context) {
	if s.dirty {
		s.logger.Debug("Unsaved changes in memory, skipping reload")
		return
	}

	var habits []domain.Habit
	switch found, err := s.readValue(ctx, domain.HabitsKey, &habits); {
	case err != nil:
		s.logger.Warn("Reload failed, keeping habits in memory", zap.Error(err))
	case !found || habits == nil:
		s.habits = []domain.Habit{}
	default:
		s.habits = habits
	}

	var records domain.Records
	switch found, err := s.readValue(ctx, domain.HabitDataKey, &records); {
	case err != nil:
		s.logger.Warn("Reload failed, keeping records in memory", zap.Error(err))
	case !found || records == nil:
		s.records = domain.Records{}
	default:
		s.records = records
	}
}

func (s *Store) Save(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	unlock := s.lockStorage(ctx)
	defer unlock()

	return s.persistLocked(ctx)
}

func (s *Store) persistLocked(ctx context.Context) error {
	habitsJSON, err := json.Marshal(s.habits)
	if err != nil {
		return fmt.Errorf("store: encode habits: %w", err)
	}
	recordsJSON, err := json.Marshal(s.records)
	if err != nil {
		return fmt.Errorf("store: encode habit data: %w", err)
	}

	var errs []error
	if err := s.kv.Set(ctx, domain.HabitsKey, habitsJSON); err != nil {
		errs = append(errs, err)
	}
	if err := s.kv.Set(ctx, domain.HabitDataKey, recordsJSON); err != nil {
		errs = append(errs, err)
	}

	s.dirty = len(errs) > 0
	if s.dirty {
		metrics.IncrementStorageWriteFailure()
		s.logger.Warn("Persisting habit data failed, continuing in memory", zap.Errors("errors", errs))
		return fmt.Errorf("%w: %w", domain.ErrStorageUnavailable, errors.Join(errs...))
	}
	return nil
}

// RecordToday stores the completion flags for the current local date,
// replacing any earlier submission for the same day, and returns that date.
func (s *Store) RecordToday(ctx context.Context, flags []bool) (string, Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	unlock := s.lockStorage(ctx)
	defer unlock()
	s.refreshLocked(ctx)

	today := domain.DateKey(s.now())

	if len(s.habits) == 0 {
		return today, s.snapshotLocked(), domain.ErrSetupRequired
	}
	if len(flags) != len(s.habits) {
		return today, s.snapshotLocked(), fmt.Errorf("%w: got %d, want %d", domain.ErrFlagCountMismatch, len(flags), len(s.habits))
	}

	stored := make([]bool, len(flags))
	copy(stored, flags)
	s.records[today] = stored

	s.logger.Debug("Day recorded", zap.String("date", today), zap.Bools("completed", stored))

	return today, s.snapshotLocked(), s.persistLocked(ctx)
}

// DefineHabits commits the first-run habit list. Invalid entries are dropped
// before committing.
func (s *Store) DefineHabits(ctx context.Context, habits []domain.Habit) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	unlock := s.lockStorage(ctx)
	defer unlock()
	s.refreshLocked(ctx)

	valid, err := domain.PrepareSetup(s.habits, habits)
	if err != nil {
		return s.snapshotLocked(), err
	}

	s.habits = valid
	s.logger.Info("Habits defined", zap.Int("submitted", len(habits)), zap.Int("committed", len(valid)))

	return s.snapshotLocked(), s.persistLocked(ctx)
}

func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() Snapshot {
	return Snapshot{
		Habits:  domain.CloneHabits(s.habits),
		Records: s.records.Clone(),
	}
}
