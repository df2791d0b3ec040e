// Package config loads brandpilot settings from BRANDPILOT_* environment
// variables. Command-line flags override what is loaded here.
package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/sethvargo/go-envconfig"
	"github.com/stefanpenner/brandpilot/pkg/catalog"
)

// EnvPrefix is prepended to every variable name below.
const EnvPrefix = "BRANDPILOT_"

// Config holds all application configuration.
type Config struct {
	// Data directory holding the catalogue and log file
	DataDir string `env:"DIR"`

	// Catalogue file; defaults to <DataDir>/catalog.yaml
	Catalog string `env:"CATALOG"`

	LogLevel string `env:"LOG_LEVEL,default=info"`
	LogFile  string `env:"LOG_FILE"` // defaults to <DataDir>/brandpilot.log

	// Quiet period before the form recomputes the estimated reward
	RewardDebounce time.Duration `env:"REWARD_DEBOUNCE,default=500ms"`
}

// LoadFrom reads configuration through the given lookuper.
func LoadFrom(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: envconfig.PrefixLookuper(EnvPrefix, l),
	}); err != nil {
		return nil, fmt.Errorf("failed to process environment config: %w", err)
	}
	if cfg.DataDir == "" {
		cfg.DataDir = defaultDataDir(runtime.GOOS, func(key string) string {
			v, _ := l.Lookup(key)
			return v
		})
	}
	if cfg.RewardDebounce < 0 {
		return nil, fmt.Errorf("%sREWARD_DEBOUNCE must not be negative", EnvPrefix)
	}
	return &cfg, nil
}

// CatalogPath returns the catalogue file to load.
func (c *Config) CatalogPath() string {
	if c.Catalog != "" {
		return c.Catalog
	}
	return filepath.Join(c.DataDir, catalog.FileName)
}

// LogPath returns the file the interactive dashboard logs to.
func (c *Config) LogPath() string {
	if c.LogFile != "" {
		return c.LogFile
	}
	return filepath.Join(c.DataDir, "brandpilot.log")
}

// defaultDataDir picks the per-user data directory for goos:
// ~/Library/Application Support on macOS, %LOCALAPPDATA% (then %APPDATA%) on
// Windows, and $XDG_DATA_HOME (then ~/.local/share) elsewhere.
func defaultDataDir(goos string, getenv func(string) string) string {
	home, _ := os.UserHomeDir()

	var candidates []string
	switch goos {
	case "darwin":
		candidates = []string{filepath.Join(home, "Library", "Application Support")}
	case "windows":
		candidates = []string{getenv("LOCALAPPDATA"), getenv("APPDATA"), home}
	default:
		candidates = []string{getenv("XDG_DATA_HOME"), filepath.Join(home, ".local", "share")}
	}

	for _, base := range candidates {
		if base != "" {
			return filepath.Join(base, "brandpilot")
		}
	}
	return "brandpilot"
}
