package storage

import (
	"context"
	"errors"
	"sync"

	"github.com/redis/go-redis/v9"
)

// scriptedRedis answers GET, SET and DEL from a map instead of a server.
// Commands named in fail return an error. Nothing ever dials out.
type scriptedRedis struct {
	mu   sync.Mutex
	data map[string]string
	fail map[string]bool
}

func newScriptedRedis() (*redis.Client, *scriptedRedis) {
	h := &scriptedRedis{data: map[string]string{}, fail: map[string]bool{}}
	rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", MaxRetries: -1})
	rdb.AddHook(h)
	return rdb, h
}

func (h *scriptedRedis) failing(cmds ...string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.fail = map[string]bool{}
	for _, c := range cmds {
		h.fail[c] = true
	}
}

func (h *scriptedRedis) value(key string) (string, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	v, ok := h.data[key]
	return v, ok
}

func (h *scriptedRedis) DialHook(next redis.DialHook) redis.DialHook {
	return next
}

func (h *scriptedRedis) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return next
}

func (h *scriptedRedis) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		h.mu.Lock()
		defer h.mu.Unlock()

		name := cmd.Name()
		if h.fail[name] {
			err := errors.New("scripted failure: " + name)
			cmd.SetErr(err)
			return err
		}

		args := cmd.Args()
		switch c := cmd.(type) {
		case *redis.StringCmd: // GET
			v, ok := h.data[asString(args[1])]
			if !ok {
				c.SetErr(redis.Nil)
				return redis.Nil
			}
			c.SetVal(v)
		case *redis.StatusCmd: // SET
			h.data[asString(args[1])] = asString(args[2])
			c.SetVal("OK")
		case *redis.IntCmd: // DEL
			var n int64
			for _, k := range args[1:] {
				if _, ok := h.data[asString(k)]; ok {
					delete(h.data, asString(k))
					n++
				}
			}
			c.SetVal(n)
		default:
			return next(ctx, cmd)
		}
		return nil
	}
}

func asString(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case []byte:
		return string(s)
	default:
		return ""
	}
}
