// Package logging provides the logging interface and default
// implementation the sstable writer uses for diagnostic output.
//
// Design: five-level interface (Error, Warn, Info, Debug, Fatal)
// inspired by Badger, Pebble, and RocksDB. Users can wrap their own
// structured loggers (slog, zap) if needed.
//
// Log format: YYYY/MM/DD HH:MM:SS LEVEL message
//
// Example: 2025/12/30 18:45:13 INFO [sstable] flushed data block
//
// Reference: RocksDB v10.7.5 include/rocksdb/env.h (Logger class)
package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"reflect"
)

// Level represents the logging level.
type Level int

const (
	// LevelError logs only errors.
	LevelError Level = iota
	// LevelWarn logs warnings and errors.
	LevelWarn
	// LevelInfo logs info, warnings, and errors.
	LevelInfo
	// LevelDebug logs everything including debug messages.
	LevelDebug
)

// String returns the string representation of the level.
func (l Level) String() string {
	switch l {
	case LevelError:
		return "ERROR"
	case LevelWarn:
		return "WARN"
	case LevelInfo:
		return "INFO"
	case LevelDebug:
		return "DEBUG"
	default:
		return "UNKNOWN"
	}
}

// Logger defines the interface for sstable writer logging.
//
// Concurrency: DefaultLogger and Discard are safe for concurrent use.
// User-provided Logger implementations MUST be safe for concurrent use,
// as logging may occur from multiple goroutines simultaneously.
type Logger interface {
	// Errorf logs a formatted error message.
	Errorf(format string, args ...any)

	// Warnf logs a formatted warning message.
	Warnf(format string, args ...any)

	// Infof logs a formatted informational message.
	Infof(format string, args ...any)

	// Debugf logs a formatted debug message.
	Debugf(format string, args ...any)

	// Fatalf logs a fatal error unconditionally, regardless of level.
	Fatalf(format string, args ...any)
}

// DefaultLogger is the default logger that writes to a specified output.
// It is stateless and safe for concurrent use (log.Logger is thread-safe).
// Level is read-only after construction — create a new logger to change level.
type DefaultLogger struct {
	logger *log.Logger
	level  Level
}

// NewDefaultLogger creates a new default logger with the specified level.
// It writes to stderr.
// Output format: YYYY/MM/DD HH:MM:SS LEVEL [component] message
func NewDefaultLogger(level Level) *DefaultLogger {
	return &DefaultLogger{
		logger: log.New(os.Stderr, "", log.LstdFlags),
		level:  level,
	}
}

// NewLogger creates a new logger with the specified output and level.
// Output format: YYYY/MM/DD HH:MM:SS LEVEL [component] message
func NewLogger(w io.Writer, level Level) *DefaultLogger {
	return &DefaultLogger{
		logger: log.New(w, "", log.LstdFlags),
		level:  level,
	}
}

// Level returns the logging level.
func (l *DefaultLogger) Level() Level {
	return l.level
}

// Errorf logs a formatted error message.
func (l *DefaultLogger) Errorf(format string, args ...any) {
	if l.level >= LevelError {
		_ = l.logger.Output(2, "ERROR "+fmt.Sprintf(format, args...))
	}
}

// Warnf logs a formatted warning message.
func (l *DefaultLogger) Warnf(format string, args ...any) {
	if l.level >= LevelWarn {
		_ = l.logger.Output(2, "WARN "+fmt.Sprintf(format, args...))
	}
}

// Infof logs a formatted informational message.
func (l *DefaultLogger) Infof(format string, args ...any) {
	if l.level >= LevelInfo {
		_ = l.logger.Output(2, "INFO "+fmt.Sprintf(format, args...))
	}
}

// Debugf logs a formatted debug message.
func (l *DefaultLogger) Debugf(format string, args ...any) {
	if l.level >= LevelDebug {
		_ = l.logger.Output(2, "DEBUG "+fmt.Sprintf(format, args...))
	}
}

// Fatalf logs a fatal error. Unlike a database with background state to
// stop, the sstable writer has nowhere to route a fatal transition to;
// Fatalf is always logged regardless of level and otherwise behaves
// like Errorf.
func (l *DefaultLogger) Fatalf(format string, args ...any) {
	_ = l.logger.Output(2, "FATAL "+fmt.Sprintf(format, args...))
}

// NSTable namespaces log messages emitted by the table builder.
const NSTable = "[sstable] "

// IsNil returns true if the logger is nil or a typed-nil.
// A typed-nil occurs when a nil pointer is assigned to an interface:
//
//	var l *MyLogger = nil
//	opts.Logger = l  // Interface is not nil, but underlying pointer is
//
// Calling methods on a typed-nil panics, so this function detects both cases.
func IsNil(l Logger) bool {
	if l == nil {
		return true
	}
	v := reflect.ValueOf(l)
	// Check if the underlying value is a nil pointer
	return v.Kind() == reflect.Ptr && v.IsNil()
}

// OrDefault returns the provided logger if it is valid (non-nil and not
// typed-nil), otherwise returns a default WARN-level logger. This
// ensures the table builder's logger is never nil after defaulting.
func OrDefault(l Logger) Logger {
	if IsNil(l) {
		return NewDefaultLogger(LevelWarn)
	}
	return l
}
