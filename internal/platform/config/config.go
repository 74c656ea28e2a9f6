// Package config loads kanso settings from defaults, an optional TOML file,
// a .env file and the process environment, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

var (
	ErrUnknownBackend = errors.New("unknown storage backend (use file, sqlite or memory)")
	ErrConfigNotFound = errors.New("config file not found")
)

// Bootstrap holds the settings that locate the rest of the configuration.
type Bootstrap struct {
	ConfigPath string `env:"KANSO_CONFIG"`
}

// BootstrapFromEnv reads the bootstrap settings from .env and the process
// environment.
func BootstrapFromEnv() (Bootstrap, error) {
	_ = godotenv.Load()

	var b Bootstrap
	if err := ParseEnv(&b); err != nil {
		return b, err
	}
	return b, nil
}

type Config struct {
	Storage  StorageConfig `toml:"storage"`
	Cache    CacheConfig   `toml:"cache"`
	Server   ServerConfig  `toml:"server"`
	Log      LogConfig     `toml:"log"`
	Timezone string        `toml:"timezone" env:"KANSO_TIMEZONE"`
}

type StorageConfig struct {
	Backend    string `toml:"backend" env:"KANSO_STORAGE_BACKEND"`
	DataDir    string `toml:"data_dir" env:"KANSO_DATA_DIR"`
	SQLitePath string `toml:"sqlite_path,omitempty" env:"KANSO_SQLITE_PATH"`
}

// CacheConfig configures the optional Redis read-through cache. The API
// also uses the same client for rate limiting.
type CacheConfig struct {
	Enabled  bool          `toml:"enabled" env:"KANSO_CACHE_ENABLED"`
	Host     string        `toml:"host" env:"REDIS_HOST"`
	Port     string        `toml:"port" env:"REDIS_PORT"`
	Password string        `toml:"password,omitempty" env:"REDIS_PASSWORD"`
	DB       int           `toml:"db" env:"REDIS_DB"`
	TTL      time.Duration `toml:"ttl" env:"KANSO_CACHE_TTL"`
}

type ServerConfig struct {
	Port         string        `toml:"port" env:"PORT"`
	ReadTimeout  time.Duration `toml:"read_timeout" env:"KANSO_READ_TIMEOUT"`
	WriteTimeout time.Duration `toml:"write_timeout" env:"KANSO_WRITE_TIMEOUT"`
	IdleTimeout  time.Duration `toml:"idle_timeout" env:"KANSO_IDLE_TIMEOUT"`

	// RateLimit budgets GET requests, WriteRateLimit setup and daily
	// records, both per client and per RateWindow.
	RateLimit      int           `toml:"rate_limit" env:"KANSO_RATE_LIMIT"`
	WriteRateLimit int           `toml:"write_rate_limit" env:"KANSO_WRITE_RATE_LIMIT"`
	RateWindow     time.Duration `toml:"rate_window" env:"KANSO_RATE_WINDOW"`
}

type LogConfig struct {
	Level       string `toml:"level" env:"KANSO_LOG_LEVEL"`
	Development bool   `toml:"development" env:"KANSO_LOG_DEVELOPMENT"`
}

func Default() Config {
	return Config{
		Storage: StorageConfig{
			Backend: BackendFile,
			DataDir: DataDir(),
		},
		Cache: CacheConfig{
			Host: "localhost",
			Port: "6379",
			TTL:  30 * time.Minute,
		},
		Server: ServerConfig{
			Port:           "8080",
			ReadTimeout:    10 * time.Second,
			WriteTimeout:   10 * time.Second,
			IdleTimeout:    120 * time.Second,
			RateLimit:      100,
			WriteRateLimit: 10,
			RateWindow:     time.Minute,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Dir returns the XDG config directory for kanso.
func Dir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "kanso")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "kanso")
}

func Path() string {
	return filepath.Join(Dir(), "config.toml")
}

// DataDir returns the XDG data directory where habit data lives by default.
func DataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "kanso")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "kanso")
}

// Load builds the configuration. An empty path means the default config
// file location, which may be missing; an explicit path must exist.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = Path()
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config %s: %w", path, err)
		}
	case os.IsNotExist(err) && explicit:
		return cfg, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
	case !os.IsNotExist(err):
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	_ = godotenv.Load()

	if err := ParseEnv(&cfg); err != nil {
		return cfg, err
	}

	return cfg, cfg.Validate()
}

func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

func (c Config) Validate() error {
	switch c.Storage.Backend {
	case BackendFile, BackendSQLite, BackendMemory:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownBackend, c.Storage.Backend)
	}

	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// Location resolves Timezone; empty means the system local zone.
func (c Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// SQLiteFile is the database path for the sqlite backend.
func (c Config) SQLiteFile() string {
	if c.Storage.SQLitePath != "" {
		return c.Storage.SQLitePath
	}
	return filepath.Join(c.Storage.DataDir, "kanso.db")
}
