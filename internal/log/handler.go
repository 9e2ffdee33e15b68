package log

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/trace"

	"github.com/tuanvumaihuynh/product-report/pkg/correlationid"
)

var _ slog.Handler = enrichedHandler{}

// contextAttrs derives record attributes from the logging context.
type contextAttrs func(ctx context.Context) []slog.Attr

// enrichedHandler adds the run correlation id and the active span to every record.
type enrichedHandler struct {
	h       slog.Handler
	sources []contextAttrs
}

func newEnrichedHandler(h slog.Handler) enrichedHandler {
	return enrichedHandler{
		h:       h,
		sources: []contextAttrs{correlationAttrs, spanAttrs},
	}
}

func (eh enrichedHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return eh.h.Enabled(ctx, level)
}

func (eh enrichedHandler) Handle(ctx context.Context, r slog.Record) error {
	for _, source := range eh.sources {
		r.AddAttrs(source(ctx)...)
	}
	return eh.h.Handle(ctx, r)
}

func (eh enrichedHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return enrichedHandler{h: eh.h.WithAttrs(attrs), sources: eh.sources}
}

func (eh enrichedHandler) WithGroup(name string) slog.Handler {
	return enrichedHandler{h: eh.h.WithGroup(name), sources: eh.sources}
}

func correlationAttrs(ctx context.Context) []slog.Attr {
	id, ok := correlationid.FromContext(ctx)
	if !ok {
		return nil
	}
	return []slog.Attr{slog.String("correlation_id", id)}
}

func spanAttrs(ctx context.Context) []slog.Attr {
	spanCtx := trace.SpanContextFromContext(ctx)
	if !spanCtx.IsValid() {
		return nil
	}
	return []slog.Attr{
		slog.String("trace_id", spanCtx.TraceID().String()),
		slog.String("span_id", spanCtx.SpanID().String()),
	}
}
