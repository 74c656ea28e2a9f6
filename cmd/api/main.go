// @title       Kanso Habits API
// @version     1.0
// @description Track up to four habits, daily completions, streaks and reward milestones.
// @BasePath    /api/v1
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/comitanigiacomo/kanso-habits/internal/app"
	"github.com/comitanigiacomo/kanso-habits/internal/platform/config"
	"github.com/comitanigiacomo/kanso-habits/internal/platform/logger"
)

func main() {
	boot, err := config.BootstrapFromEnv()
	if err != nil {
		log.Fatalf("Critical: invalid environment: %v", err)
	}

	cfg, err := config.Load(boot.ConfigPath)
	if err != nil {
		log.Fatalf("Critical: invalid configuration: %v", err)
	}

	zl, err := logger.New(cfg.Log.Level, cfg.Log.Development)
	if err != nil {
		log.Fatalf("Critical: failed to build logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	if !cfg.Log.Development {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg, zl)
	if err != nil {
		zl.Fatal("Failed to start", zap.Error(err))
	}
	defer func() {
		if err := a.Close(); err != nil {
			zl.Warn("Closing resources failed", zap.Error(err))
		}
	}()

	if err := a.Serve(ctx); err != nil {
		zl.Error("Server stopped with error", zap.Error(err))
	}
}
