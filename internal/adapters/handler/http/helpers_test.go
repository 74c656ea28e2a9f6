package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	adapterHTTP "github.com/comitanigiacomo/kanso-habits/internal/adapters/handler/http"
	"github.com/comitanigiacomo/kanso-habits/internal/adapters/storage"
	"github.com/comitanigiacomo/kanso-habits/internal/core/domain"
	"github.com/comitanigiacomo/kanso-habits/internal/core/services"
)

type brokenKV struct{}

func (brokenKV) Get(ctx context.Context, key string) ([]byte, error) {
	return nil, domain.ErrKeyNotFound
}

func (brokenKV) Set(ctx context.Context, key string, value []byte) error {
	return errors.New("disk full")
}

type brokenPinger struct{}

func (brokenPinger) Ping(ctx context.Context) error { return errors.New("gone") }

type testEnv struct {
	router *gin.Engine
	store  *services.Store
}

func newTestEnv(t *testing.T, kv domain.KeyValueStore, today time.Time) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	if kv == nil {
		kv = storage.NewMemoryStore()
	}
	store := services.NewStore(kv, func() time.Time { return today }, nil)
	store.Load(context.Background())

	router := adapterHTTP.NewRouter(adapterHTTP.RouterDependencies{
		HabitHandler:    adapterHTTP.NewHabitHandler(services.NewHabitService(store), nil),
		EntryHandler:    adapterHTTP.NewEntryHandler(services.NewEntryService(store), nil),
		ProgressHandler: adapterHTTP.NewProgressHandler(services.NewProgressService(store, nil), nil),
		StartTime:       time.Now(),
	})
	return &testEnv{router: router, store: store}
}

func (e *testEnv) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Buffer
	if body != "" {
		reader = bytes.NewBufferString(body)
	} else {
		reader = &bytes.Buffer{}
	}

	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func june(day int) time.Time {
	return time.Date(2024, time.June, day, 9, 30, 0, 0, time.UTC)
}

const twoHabits = `{"habits":[
	{"name":"Read","reason":"Learn","targetDays":10,"rewardMilestone":3,"reward":"Book"},
	{"name":"Run","reason":"Health","targetDays":30,"rewardMilestone":7,"reward":"Shoes"}
]}`
