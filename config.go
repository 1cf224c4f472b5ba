package ebf

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/MuhammadImtananWali/ebf/raster"
)

// DefaultDB is the catalog filename used when none is configured.
const DefaultDB = "ebf.db"

// Config holds the runtime settings.
type Config struct {
	// DB is the path to the sqlite catalog
	DB string
	// Workers is the number of files decoded concurrently by Scan
	Workers int
	// MaxPixels bounds the size of any decoded grid
	MaxPixels int
	// LogLevel is one of trace, debug, info, warn, error or disabled
	LogLevel string
}

// DefaultConfig returns the settings used when no config file is given.
func DefaultConfig() Config {
	return Config{
		DB:        DefaultDB,
		Workers:   10,
		MaxPixels: raster.DefaultMaxPixels,
		LogLevel:  "disabled",
	}
}

// config.toml key mapping.
type fileConfig struct {
	DB        string `toml:"db"`
	Workers   int    `toml:"workers"`
	MaxPixels int    `toml:"max_pixels"`
	LogLevel  string `toml:"log_level"`
}

// LoadConfig reads a TOML config file, keeping the defaults for any key
// that is not present.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}

	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("load config: unknown key %q", undecoded[0].String())
	}

	if meta.IsDefined("db") {
		cfg.DB = strings.TrimSpace(raw.DB)
	}
	if meta.IsDefined("workers") {
		cfg.Workers = raw.Workers
	}
	if meta.IsDefined("max_pixels") {
		cfg.MaxPixels = raw.MaxPixels
	}
	if meta.IsDefined("log_level") {
		cfg.LogLevel = strings.TrimSpace(raw.LogLevel)
	}

	if cfg.DB == "" {
		return Config{}, fmt.Errorf("load config: db must not be empty")
	}
	if cfg.Workers < 1 {
		return Config{}, fmt.Errorf("load config: workers must be at least 1, got %d", cfg.Workers)
	}
	if cfg.MaxPixels < 1 {
		return Config{}, fmt.Errorf("load config: max_pixels must be at least 1, got %d", cfg.MaxPixels)
	}
	if _, err := ParseLevel(cfg.LogLevel); err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}

	return cfg, nil
}
