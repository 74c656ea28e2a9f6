// Package app wires configuration, storage and services into a running
// kanso instance.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/comitanigiacomo/kanso-habits/internal/adapters/cache"
	adapterHTTP "github.com/comitanigiacomo/kanso-habits/internal/adapters/handler/http"
	"github.com/comitanigiacomo/kanso-habits/internal/adapters/handler/http/middleware"
	"github.com/comitanigiacomo/kanso-habits/internal/adapters/storage"
	"github.com/comitanigiacomo/kanso-habits/internal/core/domain"
	"github.com/comitanigiacomo/kanso-habits/internal/core/services"
	"github.com/comitanigiacomo/kanso-habits/internal/platform/config"
)

type App struct {
	Config config.Config
	Logger *zap.Logger

	Store    *services.Store
	Habits   *services.HabitService
	Entries  *services.EntryService
	Progress *services.ProgressService

	redis   *redis.Client
	pinger  adapterHTTP.Pinger
	closers []func() error
	started time.Time
}

// New opens the configured storage backend, loads the saved habit data and
// builds the services. An unreachable cache is logged and skipped.
func New(ctx context.Context, cfg config.Config, logger *zap.Logger) (*App, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	a := &App{
		Config:  cfg,
		Logger:  logger,
		started: time.Now(),
	}

	kv, err := a.openStorage()
	if err != nil {
		return nil, err
	}

	if cfg.Cache.Enabled {
		rdb, err := cache.NewRedisClient(ctx, cfg.Cache)
		if err != nil {
			logger.Warn("Redis unavailable, running without cache", zap.Error(err))
		} else {
			a.redis = rdb
			a.closers = append(a.closers, rdb.Close)
			kv = storage.NewCachedStore(kv, rdb, cfg.Cache.TTL, logger)
			logger.Info("Redis cache enabled", zap.String("host", cfg.Cache.Host), zap.String("port", cfg.Cache.Port))
		}
	}

	loc, err := cfg.Location()
	if err != nil {
		_ = a.Close()
		return nil, err
	}

	a.Store = services.NewStore(kv, services.SystemClock(loc), logger)
	a.Store.Load(ctx)

	a.Habits = services.NewHabitService(a.Store)
	a.Entries = services.NewEntryService(a.Store)
	a.Progress = services.NewProgressService(a.Store, services.NewMotivator(nil))

	return a, nil
}

func (a *App) openStorage() (domain.KeyValueStore, error) {
	switch a.Config.Storage.Backend {
	case config.BackendMemory:
		a.Logger.Warn("Using in-memory storage, habit data will not survive a restart")
		return storage.NewMemoryStore(), nil

	case config.BackendSQLite:
		path := a.Config.SQLiteFile()
		db, err := storage.OpenSQLite(path, a.Logger)
		if err != nil {
			return nil, err
		}
		a.pinger = db
		a.closers = append(a.closers, db.Close)
		a.Logger.Info("SQLite storage opened", zap.String("path", path))
		return db, nil

	case config.BackendFile:
		fs, err := storage.NewFileStore(a.Config.Storage.DataDir, a.Logger)
		if err != nil {
			return nil, err
		}
		a.Logger.Info("File storage opened", zap.String("dir", a.Config.Storage.DataDir))
		return fs, nil

	default:
		return nil, fmt.Errorf("%w: %q", config.ErrUnknownBackend, a.Config.Storage.Backend)
	}
}

func (a *App) Router() *gin.Engine {
	return adapterHTTP.NewRouter(adapterHTTP.RouterDependencies{
		HabitHandler:    adapterHTTP.NewHabitHandler(a.Habits, a.Logger),
		EntryHandler:    adapterHTTP.NewEntryHandler(a.Entries, a.Logger),
		ProgressHandler: adapterHTTP.NewProgressHandler(a.Progress, a.Logger),
		Storage:         a.pinger,
		Redis:           a.redis,
		Logger:          a.Logger,
		StartTime:       a.started,
		RateLimit: middleware.RateLimit{
			Reads:  a.Config.Server.RateLimit,
			Writes: a.Config.Server.WriteRateLimit,
			Window: a.Config.Server.RateWindow,
		},
	})
}

// Serve runs the HTTP API until ctx is cancelled, then shuts down gracefully.
func (a *App) Serve(ctx context.Context) error {
	srv := &http.Server{
		Addr:         ":" + a.Config.Server.Port,
		Handler:      a.Router(),
		ReadTimeout:  a.Config.Server.ReadTimeout,
		WriteTimeout: a.Config.Server.WriteTimeout,
		IdleTimeout:  a.Config.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		a.Logger.Info("Kanso API running", zap.String("addr", "http://localhost:"+a.Config.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	a.Logger.Info("Stop signal received. Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("forced shutdown: %w", err)
	}

	a.Logger.Info("Server stopped gracefully.")
	return nil
}

func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
