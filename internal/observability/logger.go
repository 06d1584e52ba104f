package observability

import (
	"log/slog"
	"os"
)

var level = new(slog.LevelVar)

// basic global logger, JSON to stderr so it never mixes with transcript output.
var logger = slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

func init() {
	level.Set(slog.LevelWarn)
}

func Logger() *slog.Logger {
	return logger
}

// WithFields returns a logger with additional fields.
func WithFields(kv ...any) *slog.Logger {
	return logger.With(kv...)
}

// SetVerbose lowers the log level so debug and info records are emitted.
func SetVerbose(verbose bool) {
	if verbose {
		level.Set(slog.LevelDebug)
		return
	}
	level.Set(slog.LevelWarn)
}
