package glx

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// discard drops every record. Enabled is false, so attributes are never
// evaluated.
type discard struct{}

func (discard) Enabled(context.Context, slog.Level) bool  { return false }
func (discard) Handle(context.Context, slog.Record) error { return nil }
func (discard) WithAttrs([]slog.Attr) slog.Handler        { return discard{} }
func (discard) WithGroup(string) slog.Handler             { return discard{} }

var silent = slog.New(discard{})

// pkgLogger is read by texture loads on their own goroutines.
var pkgLogger atomic.Pointer[slog.Logger]

func init() { pkgLogger.Store(silent) }

// SetLogger sets the logger shared by glx and the backend packages; nil
// silences them again, which is also the initial state. A Context created
// with WithLogger logs to its own logger instead.
//
// glx logs skipped context types and failed texture loads at Debug and
// Warn, and the acquired context type at Info:
//
//	glx.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//		Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = silent
	}
	pkgLogger.Store(l)
}

// Logger returns the logger set with SetLogger. Backends log through it
// since they have no Context of their own.
func Logger() *slog.Logger {
	return pkgLogger.Load()
}
