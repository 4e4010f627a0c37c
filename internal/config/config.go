package config

import (
	crand "crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"trash-alchemy/internal/catalog"
)

// AppName names the data directory and the default log file.
const AppName = "trash-alchemy"

var ErrInvalidConfig = errors.New("invalid config")

// Config is the process configuration.
type Config struct {
	CatalogPath   string `env:"TRASH_ALCHEMY_CATALOG"`
	Seed          int64  `env:"TRASH_ALCHEMY_SEED"           envDefault:"0"`
	LogLevel      string `env:"TRASH_ALCHEMY_LOG_LEVEL"      envDefault:"info"`
	LogFile       string `env:"TRASH_ALCHEMY_LOG_FILE"`
	SpawnInterval int    `env:"TRASH_ALCHEMY_SPAWN_INTERVAL" envDefault:"10"`
	MaxTrash      int    `env:"TRASH_ALCHEMY_MAX_TRASH"      envDefault:"10"`
}

// Load reads Config from the environment and validates it.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if _, err := cfg.Level(); err != nil {
		return Config{}, err
	}
	if cfg.SpawnInterval < 0 {
		return Config{}, fmt.Errorf("%w: spawn interval %d is negative", ErrInvalidConfig, cfg.SpawnInterval)
	}
	if cfg.MaxTrash < 0 {
		return Config{}, fmt.Errorf("%w: max trash %d is negative", ErrInvalidConfig, cfg.MaxTrash)
	}
	return cfg, nil
}

// Level parses LogLevel (debug, info, warn, error).
func (c Config) Level() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("%w: log level %q", ErrInvalidConfig, c.LogLevel)
	}
	return lvl, nil
}

// LoadCatalog returns the catalog file named by CatalogPath, or the
// embedded default when it is empty.
func (c Config) LoadCatalog() (*catalog.Catalog, error) {
	if c.CatalogPath == "" {
		return catalog.Default()
	}
	return catalog.LoadFile(c.CatalogPath)
}

// NewSeed returns Seed, or a fresh random seed when Seed is zero.
func (c Config) NewSeed() int64 {
	if c.Seed != 0 {
		return c.Seed
	}
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 1
	}
	return int64(binary.LittleEndian.Uint64(b[:]) >> 1)
}

// OpenLogger creates a text logger writing to LogFile, or to
// trash-alchemy.log in the data directory. The terminal belongs to the
// game, so nothing is logged to stdout or stderr. Close the returned
// io.Closer on exit.
func (c Config) OpenLogger() (*slog.Logger, io.Closer, error) {
	lvl, err := c.Level()
	if err != nil {
		return nil, nil, err
	}
	path := c.LogFile
	if path == "" {
		dir, err := DataDir()
		if err != nil {
			return nil, nil, fmt.Errorf("log dir: %w", err)
		}
		path = filepath.Join(dir, AppName+".log")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	logger := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: lvl}))
	return logger, f, nil
}

// DataDir returns the directory for logs and run history.
// Uses $XDG_DATA_HOME/trash-alchemy,
// defaulting to ~/.local/share/trash-alchemy.
func DataDir() (string, error) {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, AppName), nil
}
