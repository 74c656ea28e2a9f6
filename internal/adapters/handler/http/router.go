package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/comitanigiacomo/kanso-habits/docs" // register OpenAPI docs
	"github.com/comitanigiacomo/kanso-habits/internal/adapters/handler/http/middleware"
)

// Pinger is implemented by storage backends that can report reachability.
type Pinger interface {
	Ping(ctx context.Context) error
}

type RouterDependencies struct {
	HabitHandler    *HabitHandler
	EntryHandler    *EntryHandler
	ProgressHandler *ProgressHandler
	Storage         Pinger
	Redis           *redis.Client
	Logger          *zap.Logger
	RateLimit       middleware.RateLimit
	StartTime       time.Time
}

func NewRouter(deps RouterDependencies) *gin.Engine {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}

	router := gin.New()
	router.Use(middleware.RequestID(), middleware.RequestLogger(deps.Logger), gin.Recovery())

	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-Request-ID")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})

	if deps.Redis != nil && deps.RateLimit.Enabled() {
		router.Use(middleware.RateLimiter(deps.Redis, deps.RateLimit, deps.Logger))
	}

	router.GET("/health", healthHandler(deps))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	apiV1 := router.Group("/api/v1")
	{
		deps.HabitHandler.RegisterRoutes(apiV1)
		deps.EntryHandler.RegisterRoutes(apiV1)
		deps.ProgressHandler.RegisterRoutes(apiV1)
	}

	return router
}

// healthHandler reports "disabled" for dependencies that are not
// configured; only configured ones that fail make the check unhealthy.
func healthHandler(deps RouterDependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		storageStatus := "disabled"
		if deps.Storage != nil {
			storageStatus = "connected"
			if err := deps.Storage.Ping(ctx); err != nil {
				deps.Logger.Warn("Health check: storage unreachable", zap.Error(err))
				storageStatus = "unreachable"
			}
		}

		redisStatus := "disabled"
		if deps.Redis != nil {
			redisStatus = "connected"
			if err := deps.Redis.Ping(ctx).Err(); err != nil {
				deps.Logger.Warn("Health check: redis unreachable", zap.Error(err))
				redisStatus = "unreachable"
			}
		}

		status, statusCode := "ok", http.StatusOK
		if storageStatus == "unreachable" || redisStatus == "unreachable" {
			status, statusCode = "degraded", http.StatusServiceUnavailable
		}

		c.JSON(statusCode, gin.H{
			"status":  status,
			"storage": storageStatus,
			"redis":   redisStatus,
			"uptime":  time.Since(deps.StartTime).String(),
		})
	}
}
