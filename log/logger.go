package log

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var (
	logger     zerolog.Logger
	loggerLock sync.RWMutex
)

func init() {
	// Console output until Configure is called; stdout is reserved for
	// the user-facing report lines.
	logger = zerolog.New(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.Kitchen,
	}).
		Level(zerolog.InfoLevel).
		With().
		Timestamp().
		Logger()
}

// Configure rebuilds the logger for the given environment and level.
// Production gets JSON lines, anything else the pretty console writer.
func Configure(env, levelStr string) {
	var output io.Writer
	if env == "production" {
		output = os.Stderr
	} else {
		output = zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.Kitchen,
		}
	}

	loggerLock.Lock()
	logger = zerolog.New(output).
		Level(parseLogLevel(levelStr)).
		With().
		Timestamp().
		Logger()
	loggerLock.Unlock()
}

// SetOutput redirects all log output, mainly for tests.
func SetOutput(w io.Writer) {
	loggerLock.Lock()
	logger = logger.Output(w)
	loggerLock.Unlock()
}

// SetLevel sets the global log level at runtime
func SetLevel(levelStr string) {
	level := parseLogLevel(levelStr)
	loggerLock.Lock()
	logger = logger.Level(level)
	loggerLock.Unlock()
}

// parseLogLevel converts a string log level to zerolog.Level
func parseLogLevel(levelStr string) zerolog.Level {
	switch strings.ToLower(levelStr) {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "fatal":
		return zerolog.FatalLevel
	case "disabled", "off":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}

func current() zerolog.Logger {
	loggerLock.RLock()
	defer loggerLock.RUnlock()
	return logger
}

// Debug logs a debug message
func Debug() *zerolog.Event {
	l := current()
	return l.Debug()
}

// Info logs an info message
func Info() *zerolog.Event {
	l := current()
	return l.Info()
}

// Warn logs a warning message
func Warn() *zerolog.Event {
	l := current()
	return l.Warn()
}

// Error logs an error message
func Error() *zerolog.Event {
	l := current()
	return l.Error()
}

// Fatal logs a fatal message and exits
func Fatal() *zerolog.Event {
	l := current()
	return l.Fatal()
}

// Logger returns the underlying zerolog.Logger for integrations
func Logger() zerolog.Logger {
	return current()
}

// GetLogger returns a logger tagged with a component name.
func GetLogger(component string) zerolog.Logger {
	return current().With().Str("component", component).Logger()
}
