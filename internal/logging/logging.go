// Package logging builds the wrapper's zerolog logger and carries it
// through context.
//
// Everything is written to stderr: stdout belongs to the tool the wrapper
// launches.
package logging

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/term"
)

// New returns a console-format logger writing to w. Debug enables
// debug-level output; the default level is info. Color is used only when w
// is a terminal.
func New(w io.Writer, debug bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}

	console := zerolog.ConsoleWriter{Out: w, TimeFormat: time.TimeOnly, NoColor: true}
	if f, ok := w.(*os.File); ok {
		console.NoColor = !term.IsTerminal(int(f.Fd()))
	}

	return zerolog.New(console).Level(level).With().Timestamp().Logger()
}

// NewStderr returns New against os.Stderr.
func NewStderr(debug bool) zerolog.Logger {
	return New(os.Stderr, debug)
}

// WithContext attaches log to ctx.
func WithContext(ctx context.Context, log zerolog.Logger) context.Context {
	return log.WithContext(ctx)
}

// FromContext returns the logger attached to ctx, or a disabled logger when
// none is.
func FromContext(ctx context.Context) *zerolog.Logger {
	return zerolog.Ctx(ctx)
}
