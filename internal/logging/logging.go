package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

var (
	// Logger is the process-wide structured logger. Setup replaces it.
	Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()

	// Verbose reports whether debug logging is enabled.
	Verbose bool
)

// Setup configures the global logger.
//
// verbose lowers the level to debug. jsonOutput switches from the console
// writer to raw JSON lines. A nil writer means os.Stderr.
func Setup(verbose, jsonOutput bool, w io.Writer) {
	if w == nil {
		w = os.Stderr
	}
	Verbose = verbose

	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}

	out := w
	if !jsonOutput {
		out = zerolog.ConsoleWriter{
			Out:        w,
			NoColor:    true,
			TimeFormat: time.TimeOnly,
		}
	}

	Logger = zerolog.New(out).Level(level).With().Timestamp().Logger()
}

// Debug logs at debug level. kv is a flat list of key/value pairs.
func Debug(msg string, kv ...interface{}) {
	Logger.Debug().Fields(kv).Msg(msg)
}

// Info logs at info level.
func Info(msg string, kv ...interface{}) {
	Logger.Info().Fields(kv).Msg(msg)
}

// Warn logs at warn level.
func Warn(msg string, kv ...interface{}) {
	Logger.Warn().Fields(kv).Msg(msg)
}

// Error logs at error level.
func Error(msg string, kv ...interface{}) {
	Logger.Error().Fields(kv).Msg(msg)
}

// With returns a child logger carrying the given key/value pairs.
func With(kv ...interface{}) *zerolog.Logger {
	l := Logger.With().Fields(kv).Logger()
	return &l
}
