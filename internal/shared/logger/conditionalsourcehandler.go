package logger

import (
	"context"
	"log/slog"
	"runtime"
)

type conditionalSourceHandler struct {
	handler slog.Handler
	levels  map[slog.Level]struct{}
}

// NewConditionalSourceHandler attaches the caller's source location to
// records whose level is listed in levels. The wrapped handler must be
// built with AddSource disabled.
func NewConditionalSourceHandler(handler slog.Handler, levels ...slog.Level) slog.Handler {
	set := make(map[slog.Level]struct{}, len(levels))
	for _, level := range levels {
		set[level] = struct{}{}
	}
	return &conditionalSourceHandler{handler: handler, levels: set}
}

func (h *conditionalSourceHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

func (h *conditionalSourceHandler) Handle(ctx context.Context, r slog.Record) error {
	if _, ok := h.levels[r.Level]; ok {
		if src := sourceOf(r); src != nil {
			r.AddAttrs(slog.Any(slog.SourceKey, src))
		}
	}
	return h.handler.Handle(ctx, r)
}

func (h *conditionalSourceHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &conditionalSourceHandler{handler: h.handler.WithAttrs(attrs), levels: h.levels}
}

func (h *conditionalSourceHandler) WithGroup(name string) slog.Handler {
	return &conditionalSourceHandler{handler: h.handler.WithGroup(name), levels: h.levels}
}

// sourceOf prefers the PC captured by slog; records built by hand have none,
// so fall back to walking the stack.
func sourceOf(r slog.Record) *slog.Source {
	pc := r.PC
	if pc == 0 {
		var pcs [1]uintptr
		if runtime.Callers(4, pcs[:]) == 0 {
			return nil
		}
		pc = pcs[0]
	}
	frame, _ := runtime.CallersFrames([]uintptr{pc}).Next()
	return &slog.Source{Function: frame.Function, File: frame.File, Line: frame.Line}
}
