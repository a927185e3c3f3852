// Package logging wires the engine's structured logger: a slog.Logger
// over a rotating file in the user's cache directory, with level
// controlled by config.Config.LogLevel.
package logging

import (
	"io"
	"log/slog"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/climux/climux/internal/config"
)

const (
	maxSizeMB  = 10
	maxBackups = 3
	maxAgeDays = 28
)

// Init opens the rotating log file under cfg's log directory and
// installs it as the default slog logger, returning the io.Closer the
// caller must close on shutdown. The TUI owns the terminal, so logs
// never go to stdout or stderr.
func Init(cfg config.Config) (io.Closer, error) {
	dir, err := config.LogDir()
	if err != nil {
		return nil, err
	}

	rotator := &lumberjack.Logger{
		Filename:   filepath.Join(dir, "climux.log"),
		MaxSize:    maxSizeMB,
		MaxBackups: maxBackups,
		MaxAge:     maxAgeDays,
	}

	handler := slog.NewJSONHandler(rotator, &slog.HandlerOptions{
		Level: levelFor(cfg.LogLevel),
	})
	slog.SetDefault(slog.New(handler))

	return rotator, nil
}

func levelFor(name string) slog.Level {
	switch name {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
