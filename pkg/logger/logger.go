// Package logger provides the structured logging used across the solver
// CLI and its supporting packages: a process-wide slog.Logger configured
// once at startup, writing JSON or text to stdout/stderr/a rotated file.
package logger

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Log is the process-wide logger. Init or InitWithConfig must run before
// any package logs through it; until then Log is nil.
var Log *slog.Logger

// Config controls level, format, and destination of the process logger.
type Config struct {
	Level      string
	Format     string // json, text
	Output     string // stdout, stderr, file
	FilePath   string
	MaxSize    int // MB
	MaxBackups int
	MaxAge     int // days
	Compress   bool
}

// Init initializes the logger with JSON output to stdout at the given
// level — the default for `espprc-cli` when no config file is supplied.
func Init(level string) {
	InitWithConfig(Config{
		Level:  level,
		Format: "json",
		Output: "stdout",
	})
}

// InitWithConfig initializes the logger from a full Config, as loaded by
// pkg/config.
func InitWithConfig(cfg Config) {
	var lvl slog.Level
	switch cfg.Level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}

	var writer io.Writer
	switch cfg.Output {
	case "stderr":
		writer = os.Stderr
	case "file":
		if cfg.FilePath == "" {
			cfg.FilePath = "logs/espprc.log"
		}
		dir := filepath.Dir(cfg.FilePath)
		if err := os.MkdirAll(dir, 0755); err != nil {
			writer = os.Stdout
		} else {
			writer = &lumberjack.Logger{
				Filename:   cfg.FilePath,
				MaxSize:    cfg.MaxSize,
				MaxBackups: cfg.MaxBackups,
				MaxAge:     cfg.MaxAge,
				Compress:   cfg.Compress,
			}
		}
	default:
		writer = os.Stdout
	}

	opts := &slog.HandlerOptions{
		Level:     lvl,
		AddSource: lvl == slog.LevelDebug,
	}

	var handler slog.Handler
	switch cfg.Format {
	case "text":
		handler = slog.NewTextHandler(writer, opts)
	default:
		handler = slog.NewJSONHandler(writer, opts)
	}

	Log = slog.New(handler)
}

// WithComponent tags log lines with the emitting component (e.g. "engine",
// "cache", "bench").
func WithComponent(component string) *slog.Logger {
	return Log.With("component", component)
}

// WithSolve tags log lines with a solve sequence number, useful when the
// CLI drives the engine over a batch of dual vectors in one run.
func WithSolve(seq int) *slog.Logger {
	return Log.With("solve_seq", seq)
}

// Debug logs at debug level through the process logger.
func Debug(msg string, args ...any) { Log.Debug(msg, args...) }

// Info logs at info level through the process logger.
func Info(msg string, args ...any) { Log.Info(msg, args...) }

// Warn logs at warn level through the process logger.
func Warn(msg string, args ...any) { Log.Warn(msg, args...) }

// Error logs at error level through the process logger.
func Error(msg string, args ...any) { Log.Error(msg, args...) }

// Fatal logs at error level then terminates the process with status 1.
func Fatal(msg string, args ...any) {
	Log.Error(msg, args...)
	os.Exit(1)
}
