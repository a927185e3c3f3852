// Package config loads the Terminal Engine's environment-derived
// settings once at startup, following the teacher's global-then-local
// .env.local layering.
package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	defaultShell           = "/bin/sh"
	defaultScrollbackLimit = 10000
	defaultLogLevel        = "info"
)

// Config is the resolved set of engine-wide settings, read once at
// process startup.
type Config struct {
	Shell           string
	ScrollbackLimit int
	LogLevel        string
	Debug           bool
}

// Load reads ~/.climux/.env.local first, then a local .env.local,
// then resolves CLIMUX_SHELL, CLIMUX_SCROLLBACK_LIMIT, and
// CLIMUX_LOG_LEVEL from the resulting environment. Neither file
// replaces a variable that is already set, so the local file only
// adds keys the global file and the process environment leave unset;
// it does not override them. Missing env files are not an error.
func Load(debug bool) Config {
	if homeDir, err := os.UserHomeDir(); err == nil {
		_ = godotenv.Load(filepath.Join(homeDir, ".climux", ".env.local"))
	}
	_ = godotenv.Load(".env.local")

	cfg := Config{
		Shell:           defaultShell,
		ScrollbackLimit: defaultScrollbackLimit,
		LogLevel:        defaultLogLevel,
		Debug:           debug,
	}

	if shell := os.Getenv("CLIMUX_SHELL"); shell != "" {
		cfg.Shell = shell
	} else if shell := os.Getenv("SHELL"); shell != "" {
		cfg.Shell = shell
	}

	if limit := os.Getenv("CLIMUX_SCROLLBACK_LIMIT"); limit != "" {
		if n, err := strconv.Atoi(limit); err == nil && n > 0 {
			cfg.ScrollbackLimit = n
		}
	}

	if level := os.Getenv("CLIMUX_LOG_LEVEL"); level != "" {
		cfg.LogLevel = level
	}
	if debug {
		cfg.LogLevel = "debug"
	}

	return cfg
}

// LogDir returns the directory the rotating log file lives in,
// creating it if necessary: $XDG_CACHE_HOME/climux, or
// ~/.cache/climux as a fallback.
func LogDir() (string, error) {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	dir = filepath.Join(dir, "climux")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return dir, nil
}
