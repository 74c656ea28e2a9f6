package middleware

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RateLimit holds per-client budgets for one window. Reads cover the
// progress, summary and calendar views; writes cover habit setup and the
// daily record, which a client legitimately sends a handful of times a day.
// A zero budget leaves that kind of request unlimited.
type RateLimit struct {
	Reads  int
	Writes int
	Window time.Duration
}

func (r RateLimit) Enabled() bool {
	return r.Window > 0 && (r.Reads > 0 || r.Writes > 0)
}

const (
	bucketRead  = "read"
	bucketWrite = "write"
)

func bucketFor(method string) string {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return bucketWrite
	default:
		return bucketRead
	}
}

func rateKey(bucket, clientIP string) string {
	return fmt.Sprintf("kanso:rate:%s:%s", bucket, clientIP)
}

// RateLimiter counts requests per client IP in fixed windows, with reads
// and writes in separate buckets. Redis errors let the request through.
func RateLimiter(rdb *redis.Client, limits RateLimit, logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		bucket := bucketFor(c.Request.Method)
		limit := limits.Reads
		if bucket == bucketWrite {
			limit = limits.Writes
		}
		if limit <= 0 {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		key := rateKey(bucket, c.ClientIP())

		var incr *redis.IntCmd
		var ttlCmd *redis.DurationCmd
		_, err := rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			incr = pipe.Incr(ctx, key)
			ttlCmd = pipe.PTTL(ctx, key)
			return nil
		})
		if err != nil {
			logger.Warn("Redis error, rate limiter skipped", zap.String("bucket", bucket), zap.Error(err))
			c.Next()
			return
		}

		count := incr.Val()
		ttl := ttlCmd.Val()
		if ttl < 0 {
			// New window, or a counter that lost its expiry.
			if err := rdb.Expire(ctx, key, limits.Window).Err(); err != nil {
				logger.Warn("Redis expire error, deleting counter", zap.String("key", key), zap.Error(err))
				rdb.Del(ctx, key)
				c.Next()
				return
			}
			ttl = limits.Window
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(limit))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(max(0, int64(limit)-count), 10))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(time.Now().Add(ttl).Unix(), 10))

		if count > int64(limit) {
			retry := int(ttl.Round(time.Second).Seconds())
			c.Header("Retry-After", strconv.Itoa(max(1, retry)))
			logger.Info("Rate limit reached",
				zap.String("bucket", bucket),
				zap.String("client_ip", c.ClientIP()),
				zap.Int64("count", count),
			)
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":      fmt.Sprintf("too many %s requests", bucket),
				"retry_in_s": max(1, retry),
			})
			return
		}

		c.Next()
	}
}
