// Package logger configures the process-wide zerolog instance. Every log
// line carries a service tag so aggregated output can be filtered by origin.
package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const serviceName = "unilink"

var defaultLogger zerolog.Logger

// LogLevel represents the log level
type LogLevel string

const (
	DebugLevel LogLevel = "debug"
	InfoLevel  LogLevel = "info"
	WarnLevel  LogLevel = "warn"
	ErrorLevel LogLevel = "error"
	FatalLevel LogLevel = "fatal"
)

// Config represents logger configuration
type Config struct {
	// Level is the minimum level that gets emitted
	Level LogLevel
	// Pretty switches from JSON to a human-readable console format
	Pretty bool
	// Output is the output writer (defaults to os.Stdout)
	Output io.Writer
}

// Configure rebuilds the default logger and the zerolog global from the
// provided config. Unknown levels fall back to info.
func Configure(config Config) {
	if config.Output == nil {
		config.Output = os.Stdout
	}

	zerolog.TimeFieldFormat = time.RFC3339

	switch config.Level {
	case DebugLevel:
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case InfoLevel:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case WarnLevel:
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case ErrorLevel:
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	case FatalLevel:
		zerolog.SetGlobalLevel(zerolog.FatalLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	var writer io.Writer = config.Output
	if config.Pretty {
		writer = zerolog.ConsoleWriter{
			Out:        config.Output,
			TimeFormat: time.RFC3339,
		}
	}

	defaultLogger = zerolog.New(writer).With().
		Timestamp().
		Str("service", serviceName).
		Logger()
	log.Logger = defaultLogger
}

// Debug starts a debug-level event on the default logger
func Debug() *zerolog.Event {
	return defaultLogger.Debug()
}

// Info starts an info-level event on the default logger
func Info() *zerolog.Event {
	return defaultLogger.Info()
}

// Warn starts a warn-level event on the default logger
func Warn() *zerolog.Event {
	return defaultLogger.Warn()
}

// Error starts an error-level event on the default logger
func Error() *zerolog.Event {
	return defaultLogger.Error()
}

func init() {
	// JSON at info until the config file says otherwise
	Configure(Config{
		Level:  InfoLevel,
		Pretty: false,
		Output: os.Stdout,
	})
}
