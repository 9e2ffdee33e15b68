package cmdutil

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/tuanvumaihuynh/product-report/pkg/correlationid"
)

// SignalContext returns a context cancelled on SIGINT or SIGTERM.
func SignalContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}

// WithCorrelationID attaches a fresh correlation ID to ctx so every log line of
// one run can be grouped.
func WithCorrelationID(ctx context.Context) (context.Context, error) {
	id, err := correlationid.New()
	if err != nil {
		return ctx, fmt.Errorf("new correlation id: %w", err)
	}
	return correlationid.NewContext(ctx, id), nil
}
