package microlens

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
)

// loggerPtr holds the active logger; it discards everything until SetLogger.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(slog.New(slog.DiscardHandler))
}

// SetLogger installs l for the package. nil restores the silent default.
// Safe to call while searches run.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(slog.DiscardHandler)
	}
	loggerPtr.Store(l)
}

// Logger returns the current package logger.
func Logger() *slog.Logger { return loggerPtr.Load() }

// DebugLog formats a debug message; formatting is skipped when debug output
// is disabled.
func DebugLog(format string, args ...any) {
	l := loggerPtr.Load()
	if !l.Enabled(context.Background(), slog.LevelDebug) {
		return
	}
	l.Debug(fmt.Sprintf(format, args...))
}
