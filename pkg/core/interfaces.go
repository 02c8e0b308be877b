package core

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// discardHandler drops every record; Enabled returns false so callers skip
// formatting entirely.
type discardHandler struct{}

func (discardHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (discardHandler) WithAttrs([]slog.Attr) slog.Handler        { return discardHandler{} }
func (discardHandler) WithGroup(string) slog.Handler             { return discardHandler{} }

var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(slog.New(discardHandler{}))
}

// SetLogger configures the logger shared by the raytracer packages.
// By default nothing is logged. Passing nil restores the silent default.
// Safe for concurrent use.
//
// Levels used:
//   - slog.LevelDebug: worker pool sizing, per-render internals
//   - slog.LevelInfo: render start and completion
//   - slog.LevelWarn: suspicious but non-fatal input (e.g. non-finite colors)
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(discardHandler{})
	}
	loggerPtr.Store(l)
}

// Logger returns the current logger
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
