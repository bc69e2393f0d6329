package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
)

const (
	reset  = "\033[0m"
	red    = "\033[31m"
	green  = "\033[32m"
	yellow = "\033[33m"
	purple = "\033[35m"
	cyan   = "\033[36m"
	gray   = "\033[37m"
)

// PrettyHandler is a human-oriented slog handler used by all three service
// binaries: timestamp, colored level, message, key=value attributes.
type PrettyHandler struct {
	level slog.Leveler
	w     io.Writer
	mu    *sync.Mutex
	attrs []slog.Attr
}

func NewPrettyHandler(w io.Writer, level slog.Leveler) *PrettyHandler {
	if level == nil {
		level = slog.LevelInfo
	}
	return &PrettyHandler{level: level, w: w, mu: &sync.Mutex{}}
}

func (h *PrettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *PrettyHandler) Handle(_ context.Context, r slog.Record) error {
	color := green
	switch r.Level {
	case slog.LevelDebug:
		color = purple
	case slog.LevelWarn:
		color = yellow
	case slog.LevelError:
		color = red
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	fmt.Fprintf(h.w, "%s%s%s %s%-5s%s %s",
		gray, r.Time.Format("15:04:05.000"), reset,
		color, r.Level.String(), reset,
		r.Message)

	for _, a := range h.attrs {
		fmt.Fprintf(h.w, " %s%s%s=%v", cyan, a.Key, reset, a.Value.Any())
	}
	r.Attrs(func(a slog.Attr) bool {
		fmt.Fprintf(h.w, " %s%s%s=%v", cyan, a.Key, reset, a.Value.Any())
		return true
	})

	fmt.Fprintln(h.w)
	return nil
}

func (h *PrettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	merged = append(merged, h.attrs...)
	merged = append(merged, attrs...)

	return &PrettyHandler{level: h.level, w: h.w, mu: h.mu, attrs: merged}
}

func (h *PrettyHandler) WithGroup(string) slog.Handler {
	return h
}

// Setup installs the pretty handler as the default slog logger with a fixed
// service attribute, so lines from the three binaries are distinguishable
// when interleaved.
func Setup(w io.Writer, service string) {
	handler := NewPrettyHandler(w, slog.LevelInfo).
		WithAttrs([]slog.Attr{slog.String("service", service)})
	slog.SetDefault(slog.New(handler))
}
