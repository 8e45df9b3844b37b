// Package config loads chartweb's TOML configuration.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"go.uber.org/zap/zapcore"
)

// Config is the top-level configuration.
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Session  SessionConfig  `toml:"session"`
	Charts   ChartsConfig   `toml:"charts"`
	Fixtures FixturesConfig `toml:"fixtures"`
	Log      LogConfig      `toml:"log"`
}

// ServerConfig controls the HTTP listener.
type ServerConfig struct {
	Addr              string   `toml:"addr"`
	ReadHeaderTimeout Duration `toml:"read_header_timeout"`
	ShutdownTimeout   Duration `toml:"shutdown_timeout"`
}

// SessionConfig controls category editor sessions.
type SessionConfig struct {
	IdleTTL       Duration `toml:"idle_ttl"`
	PruneInterval Duration `toml:"prune_interval"`
}

// ChartsConfig sets the size of rendered charts in pixels.
type ChartsConfig struct {
	Width  int `toml:"width"`
	Height int `toml:"height"`
}

// FixturesConfig points at optional data files. An empty path selects the
// built-in data.
type FixturesConfig struct {
	Demographics string `toml:"demographics"`
}

// LogConfig controls the zap logger.
type LogConfig struct {
	Level       string `toml:"level"` // debug, info, warn, error
	Development bool   `toml:"development"`
}

// Duration is a time.Duration written as a string such as "30s" or "15m".
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// EnvAddr overrides server.addr when set.
const EnvAddr = "CHARTWEB_ADDR"

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:              ":8050",
			ReadHeaderTimeout: Duration{5 * time.Second},
			ShutdownTimeout:   Duration{10 * time.Second},
		},
		Session: SessionConfig{
			IdleTTL:       Duration{30 * time.Minute},
			PruneInterval: Duration{time.Minute},
		},
		Charts: ChartsConfig{Width: 800, Height: 450},
		Log:    LogConfig{Level: "info"},
	}
}

// DefaultPath returns the default config file path using XDG conventions.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = filepath.Join(os.Getenv("HOME"), ".config")
	}
	return filepath.Join(dir, "chartweb", "config.toml")
}

// LoadFrom reads the config file at path on top of the defaults. A missing
// file is only accepted when allowMissing is set, which is how the default
// path is treated.
func LoadFrom(path string, allowMissing bool) (*Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		if !(allowMissing && errors.Is(err, fs.ErrNotExist)) {
			return nil, fmt.Errorf("loading config from %s: %w", path, err)
		}
	}
	if addr := os.Getenv(EnvAddr); addr != "" {
		cfg.Server.Addr = addr
	}
	cfg.Fixtures.Demographics = expandPath(cfg.Fixtures.Demographics)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks values that have no usable zero value.
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return errors.New("server.addr is empty")
	}
	if c.Charts.Width <= 0 || c.Charts.Height <= 0 {
		return fmt.Errorf("charts size %dx%d must be positive", c.Charts.Width, c.Charts.Height)
	}
	if c.Session.IdleTTL.Duration <= 0 {
		return errors.New("session.idle_ttl must be positive")
	}
	if c.Session.PruneInterval.Duration <= 0 {
		return errors.New("session.prune_interval must be positive")
	}
	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	return nil
}

// expandPath expands ~ to $HOME and then expands all environment variables.
func expandPath(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		path = "$HOME" + path[1:]
	}
	return os.ExpandEnv(path)
}
