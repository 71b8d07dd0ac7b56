package fsdf

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler is a slog.Handler that discards all records. Enabled reports
// false so callers skip formatting.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger configures the logger for fsdf and its sub-packages.
// By default fsdf produces no log output. Pass nil to restore silence.
// SetLogger is safe for concurrent use.
//
// Log levels used by fsdf:
//   - [slog.LevelDebug]: construction diagnostics (registry sealing, degenerate rotation branches)
//   - [slog.LevelInfo]: script evaluation lifecycle
//
// Field evaluation never logs.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
}

// Logger returns the current logger. Sub-packages call it to share configuration.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
