// Package logger configures the process-wide slog logger with colored,
// human-readable terminal output.
package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// ANSI color codes.
const (
	reset     = "\033[0m"
	red       = "\033[31m"
	green     = "\033[32m"
	yellow    = "\033[33m"
	cyan      = "\033[36m"
	white     = "\033[37m"
	magenta   = "\033[35m"
	boldBlue  = "\033[1;34m"
	boldWhite = "\033[1;37m"
)

var levelColors = map[slog.Level]string{
	slog.LevelDebug: cyan,
	slog.LevelInfo:  green,
	slog.LevelWarn:  yellow,
	slog.LevelError: red,
}

// Handler renders records as colored single lines; the session attribute is
// highlighted so interleaved chat sessions stay readable.
type Handler struct {
	inner slog.Handler
	out   io.Writer
}

// NewHandler wraps a text handler with colored rendering.
func NewHandler(w io.Writer, opts *slog.HandlerOptions) (h *Handler) {
	if opts == nil {
		opts = &slog.HandlerOptions{}
	}
	h = &Handler{
		inner: slog.NewTextHandler(w, opts),
		out:   w,
	}
	return h
}

// Enabled implements slog.Handler.
func (h *Handler) Enabled(ctx context.Context, level slog.Level) (enabled bool) {
	enabled = h.inner.Enabled(ctx, level)
	return enabled
}

// Handle implements slog.Handler.
func (h *Handler) Handle(_ context.Context, r slog.Record) (err error) {
	levelColor, ok := levelColors[r.Level]
	if !ok {
		levelColor = white
	}

	var line strings.Builder
	fmt.Fprintf(&line, "%s%s%s ", magenta, r.Time.Format("15:04:05.000"), reset)
	fmt.Fprintf(&line, "%s%-6s%s ", levelColor, strings.ToUpper(r.Level.String()), reset)

	r.Attrs(func(a slog.Attr) bool {
		if a.Key == "session" {
			fmt.Fprintf(&line, "%s[%s]%s ", boldBlue, a.Value.String(), reset)
			return false
		}
		return true
	})

	fmt.Fprintf(&line, "%s%s%s ", boldWhite, r.Message, reset)

	r.Attrs(func(a slog.Attr) bool {
		if a.Key == "session" {
			return true
		}
		value := a.Value.String()
		if a.Value.Kind() == slog.KindString {
			value = fmt.Sprintf("%q", value)
		}
		fmt.Fprintf(&line, "%s%s%s=%s ", yellow, a.Key, reset, value)
		return true
	})

	_, err = fmt.Fprintln(h.out, strings.TrimRight(line.String(), " "))
	return err
}

// WithAttrs implements slog.Handler.
func (h *Handler) WithAttrs(attrs []slog.Attr) (out slog.Handler) {
	out = &Handler{inner: h.inner.WithAttrs(attrs), out: h.out}
	return out
}

// WithGroup implements slog.Handler.
func (h *Handler) WithGroup(name string) (out slog.Handler) {
	out = &Handler{inner: h.inner.WithGroup(name), out: h.out}
	return out
}

// Setup installs the colored handler as the default logger. Verbose enables
// debug records.
func Setup(verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	handler := NewHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}
