// Package observability provides structured logging for the client.
package observability

import (
	"log/slog"
	"os"
)

// Logger wraps slog.Logger so callers depend on a local type.
type Logger struct {
	*slog.Logger
}

// GlobalLogger is the default logger instance for the application.
var GlobalLogger *Logger

func init() {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	GlobalLogger = &Logger{Logger: slog.New(handler)}
}

// NewLogger builds a Logger around an existing slog.Logger. Components fall
// back to GlobalLogger when given nil.
func NewLogger(l *slog.Logger) *Logger {
	if l == nil {
		return GlobalLogger
	}
	return &Logger{Logger: l}
}
