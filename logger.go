package codemode

import (
	"fmt"
	"log/slog"
)

// Logger is an optional interface for observability during execution.
// Implementations can log capability calls, timing, and run outcomes.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Errors: logging must be best-effort; Logf should not panic.
// - Ownership: format/args are read-only.
type Logger interface {
	// Logf logs a formatted message.
	Logf(format string, args ...any)
}

// NewSlogLogger adapts a *slog.Logger to the Logger interface, emitting at
// info level. A nil argument uses slog.Default.
func NewSlogLogger(l *slog.Logger) Logger {
	if l == nil {
		l = slog.Default()
	}
	return slogLogger{l: l}
}

type slogLogger struct {
	l *slog.Logger
}

func (s slogLogger) Logf(format string, args ...any) {
	s.l.Info(fmt.Sprintf(format, args...))
}
