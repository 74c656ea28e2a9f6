package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/comitanigiacomo/kanso-habits/internal/core/domain"
	"github.com/comitanigiacomo/kanso-habits/internal/core/services"
)

func TestStore_Load(t *testing.T) {
	ctx := context.Background()

	t.Run("Empty storage loads empty state", func(t *testing.T) {
		store := services.NewStore(NewMapKV(), fixedClock(2024, 6, 3), zap.NewNop())

		snap := store.Load(ctx)

		assert.NotNil(t, snap.Habits)
		assert.Empty(t, snap.Habits)
		assert.NotNil(t, snap.Records)
		assert.Empty(t, snap.Records)
	})

	t.Run("Malformed values are treated as absent", func(t *testing.T) {
		kv := NewMapKV()
		_ = kv.Set(ctx, domain.HabitsKey, []byte(`[{"name": "Read",`))
		_ = kv.Set(ctx, domain.HabitDataKey, []byte(`{"2024-06-01":[true]}`))

		snap := services.NewStore(kv, fixedClock(2024, 6, 3), zap.NewNop()).Load(ctx)

		assert.Empty(t, snap.Habits)
		assert.Equal(t, domain.Records{"2024-06-01": {true}}, snap.Records, "Each key fails soft on its own")
	})

	t.Run("Null values load as empty", func(t *testing.T) {
		kv := NewMapKV()
		_ = kv.Set(ctx, domain.HabitsKey, []byte(`null`))
		_ = kv.Set(ctx, domain.HabitDataKey, []byte(`null`))

		snap := services.NewStore(kv, fixedClock(2024, 6, 3), zap.NewNop()).Load(ctx)

		assert.NotNil(t, snap.Habits)
		assert.NotNil(t, snap.Records)
	})

	t.Run("Read errors are treated as absent", func(t *testing.T) {
		kv := new(MockKV)
		kv.On("Get", ctx, mock.Anything).Return(nil, errors.New("disk on fire"))

		snap := services.NewStore(kv, fixedClock(2024, 6, 3), zap.NewNop()).Load(ctx)

		assert.Empty(t, snap.Habits)
		kv.AssertNumberOfCalls(t, "Get", 2)
	})
}

func TestStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	kv := NewMapKV()

	habitsJSON := []byte(`[{"name":"Read","reason":"focus","targetDays":30,"rewardMilestone":7,"reward":"book"}]`)
	dataJSON := []byte(`{"2024-06-01":[true],"2024-06-02":[false],"2024-06-03":[]}`)
	_ = kv.Set(ctx, domain.HabitsKey, habitsJSON)
	_ = kv.Set(ctx, domain.HabitDataKey, dataJSON)

	store := services.NewStore(kv, fixedClock(2024, 6, 3), zap.NewNop())
	store.Load(ctx)
	require.NoError(t, store.Save(ctx))

	gotHabits, _ := kv.Get(ctx, domain.HabitsKey)
	gotData, _ := kv.Get(ctx, domain.HabitDataKey)
	assert.Equal(t, string(habitsJSON), string(gotHabits))
	assert.Equal(t, string(dataJSON), string(gotData))
}

func TestStore_DefineHabits(t *testing.T) {
	ctx := context.Background()

	t.Run("Commits only valid habits and persists", func(t *testing.T) {
		kv := NewMapKV()
		store := services.NewStore(kv, fixedClock(2024, 6, 3), zap.NewNop())

		blank := exercise()
		blank.Name = ""
		snap, err := store.DefineHabits(ctx, []domain.Habit{blank, exercise()})

		require.NoError(t, err)
		require.Len(t, snap.Habits, 1)
		assert.Equal(t, "Exercise", snap.Habits[0].Name)

		raw, err := kv.Get(ctx, domain.HabitsKey)
		require.NoError(t, err)
		assert.Contains(t, string(raw), `"name":"Exercise"`)
	})

	t.Run("Second setup is rejected", func(t *testing.T) {
		store := services.NewStore(NewMapKV(), fixedClock(2024, 6, 3), zap.NewNop())
		_, err := store.DefineHabits(ctx, []domain.Habit{exercise()})
		require.NoError(t, err)

		snap, err := store.DefineHabits(ctx, []domain.Habit{exercise(), exercise()})
		assert.ErrorIs(t, err, domain.ErrHabitsAlreadyDefined)
		assert.Len(t, snap.Habits, 1)
	})

	t.Run("Nothing valid leaves setup pending", func(t *testing.T) {
		kv := new(MockKV)
		kv.On("Get", ctx, mock.Anything).Return(nil, domain.ErrKeyNotFound)
		store := services.NewStore(kv, fixedClock(2024, 6, 3), zap.NewNop())

		_, err := store.DefineHabits(ctx, []domain.Habit{{Name: "x"}})

		assert.ErrorIs(t, err, domain.ErrNoValidHabits)
		assert.Empty(t, store.Snapshot().Habits)
		kv.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Write failure keeps state in memory", func(t *testing.T) {
		kv := new(MockKV)
		kv.On("Get", ctx, mock.Anything).Return(nil, domain.ErrKeyNotFound)
		kv.On("Set", ctx, mock.Anything, mock.Anything).Return(errors.New("read-only filesystem"))
		store := services.NewStore(kv, fixedClock(2024, 6, 3), zap.NewNop())

		snap, err := store.DefineHabits(ctx, []domain.Habit{exercise()})

		assert.ErrorIs(t, err, domain.ErrStorageUnavailable)
		assert.Len(t, snap.Habits, 1)
		assert.Len(t, store.Snapshot().Habits, 1)
	})
}

func TestStore_RecordToday(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T, kv domain.KeyValueStore, clock services.Clock) *services.Store {
		t.Helper()
		store := services.NewStore(kv, clock, zap.NewNop())
		_, err := store.DefineHabits(ctx, []domain.Habit{exercise(), exercise()})
		require.NoError(t, err)
		return store
	}

	t.Run("Writes today's key", func(t *testing.T) {
		kv := NewMapKV()
		store := setup(t, kv, fixedClock(2024, 6, 3))

		date, snap, err := store.RecordToday(ctx, []bool{true, false})

		require.NoError(t, err)
		assert.Equal(t, "2024-06-03", date)
		assert.Equal(t, []bool{true, false}, snap.Records["2024-06-03"])

		raw, _ := kv.Get(ctx, domain.HabitDataKey)
		assert.JSONEq(t, `{"2024-06-03":[true,false]}`, string(raw))
	})

	t.Run("Overwrites the same day", func(t *testing.T) {
		store := setup(t, NewMapKV(), fixedClock(2024, 6, 3))

		_, _, err := store.RecordToday(ctx, []bool{true, true})
		require.NoError(t, err)
		_, snap, err := store.RecordToday(ctx, []bool{false, true})
		require.NoError(t, err)

		assert.Len(t, snap.Records, 1)
		assert.Equal(t, []bool{false, true}, snap.Records["2024-06-03"])
	})

	t.Run("Uses the clock's local date", func(t *testing.T) {
		tokyo := time.FixedZone("JST", 9*60*60)
		clock := func() time.Time { return time.Date(2024, 6, 3, 1, 0, 0, 0, tokyo) }
		store := setup(t, NewMapKV(), clock)

		date, _, err := store.RecordToday(ctx, []bool{true, true})

		require.NoError(t, err)
		assert.Equal(t, "2024-06-03", date, "01:00 JST is still June 2nd in UTC")
	})

	t.Run("Requires setup", func(t *testing.T) {
		store := services.NewStore(NewMapKV(), fixedClock(2024, 6, 3), zap.NewNop())

		_, _, err := store.RecordToday(ctx, []bool{true})
		assert.ErrorIs(t, err, domain.ErrSetupRequired)
	})

	t.Run("Rejects wrong flag count", func(t *testing.T) {
		store := setup(t, NewMapKV(), fixedClock(2024, 6, 3))

		_, snap, err := store.RecordToday(ctx, []bool{true})
		assert.ErrorIs(t, err, domain.ErrFlagCountMismatch)
		assert.Empty(t, snap.Records)
	})

	t.Run("Caller's slice is copied", func(t *testing.T) {
		store := setup(t, NewMapKV(), fixedClock(2024, 6, 3))
		flags := []bool{true, true}

		_, _, err := store.RecordToday(ctx, flags)
		require.NoError(t, err)
		flags[0] = false

		assert.True(t, store.Snapshot().Records["2024-06-03"][0])
	})

	t.Run("Write failure is a warning", func(t *testing.T) {
		kv := &FlakyKV{MapKV: NewMapKV()}
		store := setup(t, kv, fixedClock(2024, 6, 3))
		kv.failSets(errors.New("quota exceeded"))

		_, snap, err := store.RecordToday(ctx, []bool{true, false})

		assert.ErrorIs(t, err, domain.ErrStorageUnavailable)
		assert.Equal(t, []bool{true, false}, snap.Records["2024-06-03"])
	})

	t.Run("Unsaved day survives until storage recovers", func(t *testing.T) {
		kv := &FlakyKV{MapKV: NewMapKV()}
		day := 3
		clock := func() time.Time { return time.Date(2024, 6, day, 20, 0, 0, 0, time.UTC) }
		store := services.NewStore(kv, clock, zap.NewNop())
		_, err := store.DefineHabits(ctx, []domain.Habit{exercise()})
		require.NoError(t, err)

		kv.failSets(errors.New("quota exceeded"))
		_, _, err = store.RecordToday(ctx, []bool{true})
		require.ErrorIs(t, err, domain.ErrStorageUnavailable)

		kv.failSets(nil)
		day = 4
		_, snap, err := store.RecordToday(ctx, []bool{false})
		require.NoError(t, err)

		assert.Equal(t, domain.Records{"2024-06-03": {true}, "2024-06-04": {false}}, snap.Records)
		raw, _ := kv.Get(ctx, domain.HabitDataKey)
		assert.JSONEq(t, `{"2024-06-03":[true],"2024-06-04":[false]}`, string(raw))
	})
}

func TestStore_SnapshotIsACopy(t *testing.T) {
	store := services.NewStore(NewMapKV(), fixedClock(2024, 6, 3), zap.NewNop())
	_, err := store.DefineHabits(context.Background(), []domain.Habit{exercise()})
	require.NoError(t, err)

	snap := store.Snapshot()
	snap.Habits[0].Name = "Changed"
	snap.Records["2024-01-01"] = []bool{true}

	fresh := store.Snapshot()
	assert.Equal(t, "Exercise", fresh.Habits[0].Name)
	assert.Empty(t, fresh.Records)
}

func TestStore_SharedStorage(t *testing.T) {
	ctx := context.Background()

	t.Run("Setup in another store is seen before defining", func(t *testing.T) {
		kv := NewMapKV()
		first := services.NewStore(kv, fixedClock(2024, 6, 3), zap.NewNop())
		second := services.NewStore(kv, fixedClock(2024, 6, 3), zap.NewNop())
		first.Load(ctx)
		second.Load(ctx)

		_, err := first.DefineHabits(ctx, []domain.Habit{exercise()})
		require.NoError(t, err)

		run := exercise()
		run.Name = "Run"
		snap, err := second.DefineHabits(ctx, []domain.Habit{run})

		assert.ErrorIs(t, err, domain.ErrHabitsAlreadyDefined)
		require.Len(t, snap.Habits, 1)
		assert.Equal(t, "Exercise", snap.Habits[0].Name)
	})

	t.Run("Records from another store are kept", func(t *testing.T) {
		kv := NewMapKV()
		first := services.NewStore(kv, fixedClock(2024, 6, 3), zap.NewNop())
		_, err := first.DefineHabits(ctx, []domain.Habit{exercise()})
		require.NoError(t, err)

		second := services.NewStore(kv, fixedClock(2024, 6, 4), zap.NewNop())
		second.Load(ctx)

		_, _, err = first.RecordToday(ctx, []bool{true})
		require.NoError(t, err)
		_, snap, err := second.RecordToday(ctx, []bool{false})
		require.NoError(t, err)

		assert.Equal(t, domain.Records{"2024-06-03": {true}, "2024-06-04": {false}}, snap.Records)
		reloaded := services.NewStore(kv, fixedClock(2024, 6, 4), zap.NewNop()).Load(ctx)
		assert.Len(t, reloaded.Records, 2)
	})

	t.Run("Storage lock is held across the change", func(t *testing.T) {
		kv := &LockingKV{MapKV: NewMapKV()}
		store := services.NewStore(kv, fixedClock(2024, 6, 3), zap.NewNop())

		_, err := store.DefineHabits(ctx, []domain.Habit{exercise()})
		require.NoError(t, err)
		_, _, err = store.RecordToday(ctx, []bool{true})
		require.NoError(t, err)

		assert.Equal(t, 2, kv.locks)
		assert.False(t, kv.held)
		assert.Zero(t, kv.unlockedAccess, "Every read and write happens under the lock")
	})

	t.Run("Lock failure does not block the change", func(t *testing.T) {
		kv := &LockingKV{MapKV: NewMapKV(), lockErr: errors.New("permission denied")}
		store := services.NewStore(kv, fixedClock(2024, 6, 3), zap.NewNop())

		_, err := store.DefineHabits(ctx, []domain.Habit{exercise()})
		assert.NoError(t, err)
	})
}

func TestStore_LoadWarnsAboutInvalidHabits(t *testing.T) {
	ctx := context.Background()
	kv := NewMapKV()
	_ = kv.Set(ctx, domain.HabitsKey, []byte(`[
		{"name":"A","reason":"r","targetDays":1,"rewardMilestone":1,"reward":"x"},
		{"name":"","reason":"r","targetDays":1,"rewardMilestone":1,"reward":"x"},
		{"name":"C","reason":"r","targetDays":1,"rewardMilestone":1,"reward":"x"},
		{"name":"D","reason":"r","targetDays":1,"rewardMilestone":1,"reward":"x"},
		{"name":"E","reason":"r","targetDays":1,"rewardMilestone":1,"reward":"x"}
	]`))

	core, logs := observer.New(zap.WarnLevel)
	snap := services.NewStore(kv, fixedClock(2024, 6, 3), zap.New(core)).Load(ctx)

	assert.Len(t, snap.Habits, 5, "Positions stay aligned with stored records")
	assert.Equal(t, 1, logs.FilterMessage("Stored habit list is longer than allowed").Len())

	invalid := logs.FilterMessage("Stored habit is invalid").All()
	require.Len(t, invalid, 1)
	assert.Equal(t, int64(1), invalid[0].ContextMap()["index"])
}
