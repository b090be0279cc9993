// Package logging wraps log/slog for nodedash. Output goes to a rotated
// file because the terminal belongs to the UI; with no file configured every
// call is discarded.
package logging

import (
	"io"
	"log/slog"
	"strings"
	"sync"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger wraps slog.Logger with the handful of helpers the UI needs
type Logger struct {
	logger *slog.Logger
}

// LogFormat represents the output format for logs
type LogFormat string

const (
	FormatText LogFormat = "text"
	FormatJSON LogFormat = "json"
)

// Config holds configuration for logger initialization
type Config struct {
	// FilePath is the path to the log file (empty = no logging)
	FilePath   string
	Level      slog.Level
	Format     LogFormat
	MaxSizeMB  int
	MaxBackups int
}

var (
	mu           sync.RWMutex
	globalLogger *Logger
	writer       *lumberjack.Logger
	noopLogger   = &Logger{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
)

// Init replaces the global logger. An empty FilePath disables logging.
func Init(config Config) error {
	mu.Lock()
	defer mu.Unlock()

	closeWriterLocked()

	if config.FilePath == "" {
		globalLogger = noopLogger
		return nil
	}

	writer = &lumberjack.Logger{
		Filename:   config.FilePath,
		MaxSize:    config.MaxSizeMB,
		MaxBackups: config.MaxBackups,
		Compress:   true,
	}

	opts := &slog.HandlerOptions{Level: config.Level}

	var handler slog.Handler
	switch config.Format {
	case FormatJSON:
		handler = slog.NewJSONHandler(writer, opts)
	default:
		handler = slog.NewTextHandler(writer, opts)
	}

	globalLogger = &Logger{logger: slog.New(handler)}
	return nil
}

// Get returns the global logger, or a noop logger before Init
func Get() *Logger {
	mu.RLock()
	defer mu.RUnlock()
	if globalLogger == nil {
		return noopLogger
	}
	return globalLogger
}

func (l *Logger) Debug(msg string, args ...any) { l.logger.Debug(msg, args...) }
func (l *Logger) Info(msg string, args ...any)  { l.logger.Info(msg, args...) }
func (l *Logger) Warn(msg string, args ...any)  { l.logger.Warn(msg, args...) }
func (l *Logger) Error(msg string, args ...any) { l.logger.Error(msg, args...) }

// With returns a Logger that adds the given key-value pairs to every record
func (l *Logger) With(args ...any) *Logger {
	if l == noopLogger {
		return l
	}
	return &Logger{logger: l.logger.With(args...)}
}

// Component is shorthand for With("component", name)
func Component(name string) *Logger {
	return Get().With("component", name)
}

// IsEnabled returns true if logging is enabled (not noop)
func (l *Logger) IsEnabled() bool {
	return l != noopLogger
}

func Debug(msg string, args ...any) { Get().Debug(msg, args...) }
func Info(msg string, args ...any)  { Get().Info(msg, args...) }
func Warn(msg string, args ...any)  { Get().Warn(msg, args...) }
func Error(msg string, args ...any) { Get().Error(msg, args...) }

func IsEnabled() bool {
	return Get().IsEnabled()
}

// ParseLevel converts a string to slog.Level, defaulting to info
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// ParseFormat converts a string to LogFormat, defaulting to text
func ParseFormat(format string) LogFormat {
	if strings.ToLower(strings.TrimSpace(format)) == "json" {
		return FormatJSON
	}
	return FormatText
}

// Shutdown closes the rotating file writer and disables logging
func Shutdown() error {
	mu.Lock()
	defer mu.Unlock()
	err := closeWriterLocked()
	globalLogger = noopLogger
	return err
}

func closeWriterLocked() error {
	if writer == nil {
		return nil
	}
	err := writer.Close()
	writer = nil
	return err
}
