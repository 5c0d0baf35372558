package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/anchorage/pkg/pipeline"
)

// Config holds user defaults read from config.toml. Command-line flags
// override every field.
type Config struct {
	// Formats are the default output formats for solve.
	Formats []string `toml:"formats"`

	// CacheDir overrides the XDG cache directory.
	CacheDir string `toml:"cache_dir"`

	// Redis, when Addr is set, replaces the file cache.
	Redis RedisConfig `toml:"redis"`

	// Store configures where serve keeps solved layouts.
	Store StoreConfig `toml:"store"`

	// Listen is the default serve address.
	Listen string `toml:"listen"`
}

// RedisConfig is the [redis] table.
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
	Prefix   string `toml:"prefix"`
}

// StoreConfig is the [store] table.
type StoreConfig struct {
	// Backend is one of "file", "mongo", "memory" or "none".
	Backend string `toml:"backend"`

	// Dir overrides the file store directory.
	Dir string `toml:"dir"`

	MongoURI        string `toml:"mongo_uri"`
	MongoDatabase   string `toml:"mongo_database"`
	MongoCollection string `toml:"mongo_collection"`
}

// Store backends.
const (
	storeFile   = "file"
	storeMongo  = "mongo"
	storeMemory = "memory"
	storeNone   = "none"
)

const defaultListen = ":8080"

func defaultConfig() Config {
	return Config{
		Formats: []string{pipeline.FormatSVG},
		Listen:  defaultListen,
		Store:   StoreConfig{Backend: storeFile},
	}
}

// loadConfig reads path over the defaults. A missing file is not an error.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := pipeline.ValidateFormats(cfg.Formats); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	switch cfg.Store.Backend {
	case "":
		cfg.Store.Backend = storeFile
	case storeFile, storeMongo, storeMemory, storeNone:
	default:
		return cfg, fmt.Errorf("config %s: unknown store backend %q", path, cfg.Store.Backend)
	}
	if cfg.Listen == "" {
		cfg.Listen = defaultListen
	}
	return cfg, nil
}

// configPath returns the config file location using XDG
// (~/.config/anchorage/config.toml).
func configPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// cacheDir returns the cache directory: the configured one, else XDG
// (~/.cache/anchorage/).
func (c Config) cacheDir() (string, error) {
	if c.CacheDir != "" {
		return c.CacheDir, nil
	}
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
