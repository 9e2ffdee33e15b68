package seed

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/tuanvumaihuynh/product-report/internal/model"
	"github.com/tuanvumaihuynh/product-report/internal/repository"
)

var tracer = otel.Tracer("internal/seed")

const loadedMessage = "Sample products loaded into database."

// Loader inserts sample products.
type Loader struct {
	logger      *slog.Logger
	productRepo repository.ProductRepository
	out         io.Writer
}

func NewLoader(logger *slog.Logger, productRepo repository.ProductRepository, out io.Writer) *Loader {
	return &Loader{
		logger:      logger.With(slog.String("service", "seed")),
		productRepo: productRepo,
		out:         out,
	}
}

// Load inserts all products in a single transaction and prints a confirmation.
// Either every product is stored or none is. The input slice is left untouched;
// the returned copy carries the assigned IDs. Loading twice duplicates rows.
func (l *Loader) Load(ctx context.Context, products []model.Product) (_ []model.Product, err error) {
	ctx, span := tracer.Start(ctx, "Loader.Load", trace.WithAttributes(
		attribute.Int("product.count", len(products)),
	))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "failed to load products")
		}
		span.End()
	}()

	created := make([]model.Product, len(products))
	copy(created, products)

	if err := l.productRepo.WithTx(ctx, func(repo repository.ProductRepository) error {
		for i := range created {
			if err := repo.CreateProduct(ctx, &created[i]); err != nil {
				return fmt.Errorf("create product %q: %w", created[i].Name, err)
			}
		}
		return nil
	}); err != nil {
		return nil, fmt.Errorf("product repository with tx: %w", err)
	}

	l.logger.InfoContext(ctx, "sample products loaded", slog.Int("count", len(created)))

	if _, err := fmt.Fprintln(l.out, loadedMessage); err != nil {
		return nil, fmt.Errorf("write confirmation: %w", err)
	}

	return created, nil
}
