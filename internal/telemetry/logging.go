package telemetry

import (
	"context"
	"log/slog"
	"os"
)

// NewLogger returns a JSON slog logger that stamps every record with the
// trace and span ids of the active span, so log lines can be joined with
// traces in the backend.
func NewLogger(level slog.Level) *slog.Logger {
	base := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	})
	return slog.New(&correlatedHandler{base: base})
}

// correlatedHandler decorates another slog.Handler with trace correlation
// attributes pulled off the record's context.
type correlatedHandler struct {
	base   slog.Handler
	groups []string
	attrs  []slog.Attr
}

func (h *correlatedHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.base.Enabled(ctx, level)
}

func (h *correlatedHandler) Handle(ctx context.Context, r slog.Record) error {
	handler := h.base

	var traceAttrs []slog.Attr
	if traceID := TraceID(ctx); traceID != "" {
		traceAttrs = append(traceAttrs, slog.String("trace_id", traceID))
	}
	if spanID := SpanID(ctx); spanID != "" {
		traceAttrs = append(traceAttrs, slog.String("span_id", spanID))
	}
	if len(traceAttrs) > 0 {
		handler = handler.WithAttrs(traceAttrs)
	}

	if len(h.attrs) > 0 {
		handler = handler.WithAttrs(h.attrs)
	}
	for _, group := range h.groups {
		handler = handler.WithGroup(group)
	}

	return handler.Handle(ctx, r)
}

// WithAttrs defers attaching attributes until Handle so the correlation
// attributes always land outside any group.
func (h *correlatedHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	merged = append(merged, h.attrs...)
	merged = append(merged, attrs...)

	return &correlatedHandler{base: h.base, groups: h.groups, attrs: merged}
}

func (h *correlatedHandler) WithGroup(name string) slog.Handler {
	groups := make([]string, 0, len(h.groups)+1)
	groups = append(groups, h.groups...)
	groups = append(groups, name)

	return &correlatedHandler{base: h.base, groups: groups, attrs: h.attrs}
}
