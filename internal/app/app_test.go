package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/kanso-habits/internal/core/domain"
	"github.com/comitanigiacomo/kanso-habits/internal/core/services"
	"github.com/comitanigiacomo/kanso-habits/internal/platform/config"
)

func testConfig(t *testing.T, backend string) config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Storage.Backend = backend
	cfg.Storage.DataDir = filepath.Join(t.TempDir(), "data")
	cfg.Timezone = "UTC"
	return cfg
}

func setup() services.SetupInput {
	return services.SetupInput{Habits: []services.SetupHabitInput{
		{Name: "Read", Reason: "Learn", TargetDays: 10, RewardMilestone: 3, Reward: "Book"},
	}}
}

func TestNew_PersistsAcrossRestarts(t *testing.T) {
	for _, backend := range []string{config.BackendFile, config.BackendSQLite} {
		t.Run(backend, func(t *testing.T) {
			ctx := context.Background()
			cfg := testConfig(t, backend)

			a, err := New(ctx, cfg, nil)
			require.NoError(t, err)

			_, err = a.Habits.Setup(ctx, setup())
			require.NoError(t, err)
			_, err = a.Entries.RecordToday(ctx, services.RecordTodayInput{Completed: []bool{true}})
			require.NoError(t, err)
			require.NoError(t, a.Close())

			b, err := New(ctx, cfg, nil)
			require.NoError(t, err)
			defer b.Close()

			assert.Len(t, b.Habits.List(), 1)
			assert.Len(t, b.Entries.List(), 1)
		})
	}
}

// TestNew_SharedDataDir runs a command-line instance and a server instance
// on one data directory, both opened before either writes.
func TestNew_SharedDataDir(t *testing.T) {
	for _, backend := range []string{config.BackendFile, config.BackendSQLite} {
		t.Run(backend, func(t *testing.T) {
			ctx := context.Background()
			cfg := testConfig(t, backend)

			cli, err := New(ctx, cfg, nil)
			require.NoError(t, err)
			defer cli.Close()
			server, err := New(ctx, cfg, nil)
			require.NoError(t, err)
			defer server.Close()

			_, err = cli.Habits.Setup(ctx, setup())
			require.NoError(t, err)
			_, err = cli.Entries.RecordToday(ctx, services.RecordTodayInput{Completed: []bool{true}})
			require.NoError(t, err)

			_, err = server.Habits.Setup(ctx, services.SetupInput{Habits: []services.SetupHabitInput{
				{Name: "Run", Reason: "r", TargetDays: 3, RewardMilestone: 2, Reward: "x"},
			}})
			assert.ErrorIs(t, err, domain.ErrHabitsAlreadyDefined)

			res, err := server.Entries.RecordToday(ctx, services.RecordTodayInput{Completed: []bool{false}})
			require.NoError(t, err, "Server sees the habits the command line defined")
			assert.Equal(t, []bool{false}, res.Completed)

			reopened, err := New(ctx, cfg, nil)
			require.NoError(t, err)
			defer reopened.Close()

			habits := reopened.Habits.List()
			require.Len(t, habits, 1)
			assert.Equal(t, "Read", habits[0].Name)
			assert.Equal(t, []bool{false}, reopened.Entries.List()[res.Date])
		})
	}
}

func TestNew_MemoryBackend(t *testing.T) {
	a, err := New(context.Background(), testConfig(t, config.BackendMemory), nil)
	require.NoError(t, err)
	defer a.Close()

	assert.False(t, a.Habits.IsSetUp())
}

func TestNew_UnknownBackend(t *testing.T) {
	_, err := New(context.Background(), testConfig(t, "etcd"), nil)
	assert.ErrorIs(t, err, config.ErrUnknownBackend)
}

func TestNew_CacheUnreachableFallsBack(t *testing.T) {
	cfg := testConfig(t, config.BackendMemory)
	cfg.Cache.Enabled = true
	cfg.Cache.Host = "127.0.0.1"
	cfg.Cache.Port = "1"

	a, err := New(context.Background(), cfg, nil)
	require.NoError(t, err)
	defer a.Close()

	assert.Nil(t, a.redis)
}

func TestRouter_Health(t *testing.T) {
	a, err := New(context.Background(), testConfig(t, config.BackendSQLite), nil)
	require.NoError(t, err)
	defer a.Close()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/health", nil)
	a.Router().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"storage":"connected"`)
}
