// Package config loads the optional YAML configuration file. A missing or
// malformed file degrades to defaults with a log line; configuration can
// never prevent the application from starting.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	StoreJSON   = "json"
	StoreSQLite = "sqlite"
)

// Config is the on-disk configuration shape. Durations are strings in
// time.ParseDuration syntax ("1s", "500ms").
type Config struct {
	Store   string `yaml:"store"`
	DataDir string `yaml:"data_dir"`
	Tick    string `yaml:"tick"`
	Alert   struct {
		Repeat      string `yaml:"repeat"`
		AutoDismiss string `yaml:"auto_dismiss"`
		Sound       *bool  `yaml:"sound"`
	} `yaml:"alert"`
}

// Settings is the parsed, defaulted configuration the rest of the app uses.
type Settings struct {
	Store       string
	DataDir     string
	Tick        time.Duration
	Repeat      time.Duration
	AutoDismiss time.Duration
	Sound       bool
}

func defaults() Settings {
	return Settings{
		Store:       StoreJSON,
		DataDir:     DefaultDataDir(),
		Tick:        time.Second,
		Repeat:      3 * time.Second,
		AutoDismiss: 5 * time.Second,
		Sound:       true,
	}
}

// DefaultDataDir returns the data directory used when neither the config
// file nor the -data flag names one.
func DefaultDataDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "timers")
	}
	// Last resort: current directory, like a portable install.
	return "."
}

// DefaultPath returns the conventional config file location.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "timers", "config.yaml")
}

// Load reads path and merges it over the defaults. An empty or missing
// path yields pure defaults.
func Load(path string) Settings {
	s := defaults()
	if path == "" {
		return s
	}

	b, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			slog.Warn("read config", "path", path, "err", err)
		}
		return s
	}

	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		slog.Warn("malformed config, using defaults", "path", path, "err", err)
		return s
	}
	return merge(s, c)
}

func merge(s Settings, c Config) Settings {
	switch c.Store {
	case "", StoreJSON:
		// keep default
	case StoreSQLite:
		s.Store = StoreSQLite
	default:
		slog.Warn("unknown store backend, using json", "store", c.Store)
	}
	if c.DataDir != "" {
		s.DataDir = c.DataDir
	}
	s.Tick = parseDuration("tick", c.Tick, s.Tick)
	s.Repeat = parseDuration("alert.repeat", c.Alert.Repeat, s.Repeat)
	s.AutoDismiss = parseDuration("alert.auto_dismiss", c.Alert.AutoDismiss, s.AutoDismiss)
	if c.Alert.Sound != nil {
		s.Sound = *c.Alert.Sound
	}
	return s
}

func parseDuration(field, raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		slog.Warn("bad duration in config", "field", field, "value", raw, "err", err)
		return fallback
	}
	if d < 0 {
		slog.Warn(fmt.Sprintf("negative duration for %s, using default", field), "value", raw)
		return fallback
	}
	return d
}
