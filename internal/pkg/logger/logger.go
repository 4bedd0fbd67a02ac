package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// defaultLogger is the process-wide logger instance.
var defaultLogger zerolog.Logger

// Config represents logger configuration.
type Config struct {
	// Level is one of debug, info, warn, error, fatal.
	Level string
	// Format is "json" or "console".
	Format string
	// Output defaults to os.Stdout.
	Output io.Writer
}

// Configure sets up the global logger.
func Configure(config Config) {
	if config.Output == nil {
		config.Output = os.Stdout
	}

	zerolog.TimeFieldFormat = time.RFC3339

	level := zerolog.InfoLevel
	switch strings.ToLower(config.Level) {
	case "debug":
		level = zerolog.DebugLevel
	case "info":
		level = zerolog.InfoLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	case "fatal":
		level = zerolog.FatalLevel
	}
	zerolog.SetGlobalLevel(level)

	writer := config.Output
	if strings.ToLower(config.Format) == "console" {
		writer = zerolog.ConsoleWriter{Out: config.Output, TimeFormat: time.RFC3339}
	}

	defaultLogger = zerolog.New(writer).With().Timestamp().Logger()
	log.Logger = defaultLogger
}

// Get returns the configured logger for components that carry their own
// logger field.
func Get() zerolog.Logger {
	return defaultLogger
}

// Debug logs a debug message.
func Debug() *zerolog.Event { return defaultLogger.Debug() }

// Info logs an informational message.
func Info() *zerolog.Event { return defaultLogger.Info() }

// Warn logs a warning message.
func Warn() *zerolog.Event { return defaultLogger.Warn() }

// Error logs an error message.
func Error() *zerolog.Event { return defaultLogger.Error() }

// Fatal logs a fatal message and exits.
func Fatal() *zerolog.Event { return defaultLogger.Fatal() }

func init() {
	Configure(Config{Level: "info", Format: "json"})
}
