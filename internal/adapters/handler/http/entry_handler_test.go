package http_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordBody struct {
	Date      string `json:"date"`
	Completed []bool `json:"completed"`
	Warning   string `json:"warning"`
}

func TestRecordToday(t *testing.T) {
	t.Run("Fail: 409 before setup", func(t *testing.T) {
		env := newTestEnv(t, nil, june(5))

		w := env.do(t, "POST", "/api/v1/entries/today", `{"completed":[true]}`)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Empty(t, env.store.Snapshot().Records)
	})

	t.Run("Fail: 400 on length mismatch", func(t *testing.T) {
		env := newTestEnv(t, nil, june(5))
		env.do(t, "POST", "/api/v1/habits", twoHabits)

		w := env.do(t, "POST", "/api/v1/entries/today", `{"completed":[true]}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Fail: 400 on missing field", func(t *testing.T) {
		env := newTestEnv(t, nil, june(5))
		env.do(t, "POST", "/api/v1/habits", twoHabits)

		w := env.do(t, "POST", "/api/v1/entries/today", `{}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Success and resubmission replaces", func(t *testing.T) {
		env := newTestEnv(t, nil, june(5))
		env.do(t, "POST", "/api/v1/habits", twoHabits)

		w := env.do(t, "POST", "/api/v1/entries/today", `{"completed":[true,false]}`)
		require.Equal(t, http.StatusOK, w.Code)
		body := decode[recordBody](t, w)
		assert.Equal(t, "2024-06-05", body.Date)
		assert.Equal(t, []bool{true, false}, body.Completed)

		env.do(t, "POST", "/api/v1/entries/today", `{"completed":[false,true]}`)

		w = env.do(t, "GET", "/api/v1/entries/today", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, []bool{false, true}, decode[recordBody](t, w).Completed)

		w = env.do(t, "GET", "/api/v1/entries", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"records":{"2024-06-05":[false,true]}}`, w.Body.String())
	})

	t.Run("Storage failure returns a warning", func(t *testing.T) {
		env := newTestEnv(t, brokenKV{}, june(5))
		env.do(t, "POST", "/api/v1/habits", twoHabits)

		w := env.do(t, "POST", "/api/v1/entries/today", `{"completed":[true,true]}`)

		require.Equal(t, http.StatusOK, w.Code)
		body := decode[recordBody](t, w)
		assert.NotEmpty(t, body.Warning)
		assert.Equal(t, []bool{true, true}, env.store.Snapshot().Records["2024-06-05"])
	})
}

func TestTodayNotRecorded(t *testing.T) {
	env := newTestEnv(t, nil, june(5))

	w := env.do(t, "GET", "/api/v1/entries/today", "")

	assert.Equal(t, http.StatusNotFound, w.Code)
}
