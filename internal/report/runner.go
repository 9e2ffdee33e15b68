package report

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"

	"github.com/tuanvumaihuynh/product-report/internal/apperr"
	"github.com/tuanvumaihuynh/product-report/internal/config"
	"github.com/tuanvumaihuynh/product-report/internal/model"
	"github.com/tuanvumaihuynh/product-report/internal/repository"
)

var tracer = otel.Tracer("internal/report")

// Runner prints read-only product reports.
type Runner struct {
	logger      *slog.Logger
	productRepo repository.ProductRepository
	out         io.Writer
}

func NewRunner(logger *slog.Logger, productRepo repository.ProductRepository, out io.Writer) *Runner {
	return &Runner{
		logger:      logger.With(slog.String("service", "report")),
		productRepo: productRepo,
		out:         out,
	}
}

// Run prints every report in a fixed order and stops at the first failure.
func (r *Runner) Run(ctx context.Context, params config.Report) error {
	steps := []func(ctx context.Context) error{
		r.PriceAscending,
		r.PriceDescending,
		r.QuantityDescending,
		func(ctx context.Context) error { return r.FirstPage(ctx, params.PageSize) },
		func(ctx context.Context) error { return r.SecondPage(ctx, params.PageSize) },
		r.TotalCount,
		r.InStockCount,
		r.CountByCategory,
		r.PriceRange,
		r.GroupedByCategory,
		r.CategoryStats,
		func(ctx context.Context) error { return r.PriceBetween(ctx, params.PriceMin, params.PriceMax) },
		func(ctx context.Context) error { return r.NameStartsWith(ctx, params.Prefix) },
		func(ctx context.Context) error { return r.NameEndsWith(ctx, params.Suffix) },
		func(ctx context.Context) error { return r.NameContains(ctx, params.Substring) },
		func(ctx context.Context) error { return r.NameLength(ctx, params.NameLength) },
		func(ctx context.Context) error { return r.NameLengthPattern(ctx, params.PatternLength) },
	}

	for _, step := range steps {
		if err := step(ctx); err != nil {
			return err
		}
	}

	r.logger.InfoContext(ctx, "reports completed", slog.Int("count", len(steps)))
	return nil
}

func (r *Runner) PriceAscending(ctx context.Context) error {
	return r.sorted(ctx, "PriceAscending", "Products by Price Ascending",
		repository.ListProductsParams{OrderBy: model.ProductFieldPrice}, priceLine)
}

func (r *Runner) PriceDescending(ctx context.Context) error {
	return r.sorted(ctx, "PriceDescending", "Products by Price Descending",
		repository.ListProductsParams{OrderBy: model.ProductFieldPrice, Desc: true}, priceLine)
}

func (r *Runner) QuantityDescending(ctx context.Context) error {
	return r.sorted(ctx, "QuantityDescending", "Products by Quantity Descending",
		repository.ListProductsParams{OrderBy: model.ProductFieldQuantity, Desc: true}, quantityLine)
}

// FirstPage prints the first pageSize products in insertion order.
func (r *Runner) FirstPage(ctx context.Context, pageSize int) error {
	return r.sorted(ctx, "FirstPage", fmt.Sprintf("First %d Products", pageSize),
		repository.ListProductsParams{OrderBy: model.ProductFieldID, Limit: pageSize}, nameLine)
}

// SecondPage prints the pageSize products following the first page.
func (r *Runner) SecondPage(ctx context.Context, pageSize int) error {
	return r.sorted(ctx, "SecondPage", fmt.Sprintf("Next %d Products", pageSize),
		repository.ListProductsParams{OrderBy: model.ProductFieldID, Limit: pageSize, Offset: pageSize}, nameLine)
}

func (r *Runner) TotalCount(ctx context.Context) error {
	return r.report(ctx, "TotalCount", func(ctx context.Context, p *printer) error {
		count, err := r.productRepo.CountProducts(ctx, repository.CountProductsParams{})
		if err != nil {
			return err
		}
		p.printf("\nTotal Products: %d\n", count)
		return nil
	})
}

func (r *Runner) InStockCount(ctx context.Context) error {
	return r.report(ctx, "InStockCount", func(ctx context.Context, p *printer) error {
		count, err := r.productRepo.CountProducts(ctx, repository.CountProductsParams{InStockOnly: true})
		if err != nil {
			return err
		}
		p.printf("\nProducts in Stock: %d\n", count)
		return nil
	})
}

func (r *Runner) CountByCategory(ctx context.Context) error {
	return r.report(ctx, "CountByCategory", func(ctx context.Context, p *printer) error {
		counts, err := r.productRepo.CountProductsByCategory(ctx)
		if err != nil {
			return err
		}
		p.title("Products by Category")
		for _, c := range counts {
			p.line("%s - %d products", c.Category, c.Count)
		}
		return nil
	})
}

func (r *Runner) PriceRange(ctx context.Context) error {
	return r.report(ctx, "PriceRange", func(ctx context.Context, p *printer) error {
		priceRange, err := r.productRepo.GetPriceRange(ctx)
		if err != nil {
			return err
		}
		p.title("Price Range")
		p.line("Min: %s, Max: %s", optionalMoney(priceRange.Min), optionalMoney(priceRange.Max))
		return nil
	})
}

// GroupedByCategory prints a category header each time the category changes
// between consecutive rows. Rows must arrive ordered by category; unordered
// input would print the same header more than once.
func (r *Runner) GroupedByCategory(ctx context.Context) error {
	return r.report(ctx, "GroupedByCategory", func(ctx context.Context, p *printer) error {
		items, err := r.productRepo.ListCategoryItems(ctx)
		if err != nil {
			return err
		}
		p.title("Products Grouped by Category")
		var current string
		for i, item := range items {
			if i == 0 || item.Category != current {
				p.title("%s", item.Category)
				current = item.Category
			}
			p.line("  - %s (%s)", item.Name, money(item.Price))
		}
		return nil
	})
}

func (r *Runner) CategoryStats(ctx context.Context) error {
	return r.report(ctx, "CategoryStats", func(ctx context.Context, p *printer) error {
		stats, err := r.productRepo.ListCategoryStats(ctx)
		if err != nil {
			return err
		}
		p.title("Product Stats by Category")
		for _, s := range stats {
			p.line("%s: Count=%d, Avg=%s, TotalQty=%d", s.Category, s.Count, money(s.AvgPrice), s.TotalQuantity)
		}
		return nil
	})
}

// PriceBetween prints products priced within [minPrice, maxPrice].
func (r *Runner) PriceBetween(ctx context.Context, minPrice, maxPrice float64) error {
	return r.filtered(ctx, "PriceBetween",
		fmt.Sprintf("Products Between %s and %s", money(minPrice), money(maxPrice)),
		func(ctx context.Context) ([]model.Product, error) {
			return r.productRepo.ListProductsByPriceRange(ctx, repository.PriceRangeParams{Min: minPrice, Max: maxPrice})
		}, priceLine)
}

func (r *Runner) NameStartsWith(ctx context.Context, prefix string) error {
	return r.namePattern(ctx, "NameStartsWith", fmt.Sprintf("Products starting with '%s'", prefix),
		repository.PrefixPattern(prefix))
}

func (r *Runner) NameEndsWith(ctx context.Context, suffix string) error {
	return r.namePattern(ctx, "NameEndsWith", fmt.Sprintf("Products ending with '%s'", suffix),
		repository.SuffixPattern(suffix))
}

func (r *Runner) NameContains(ctx context.Context, substring string) error {
	return r.namePattern(ctx, "NameContains", fmt.Sprintf("Products containing '%s'", substring),
		repository.ContainsPattern(substring))
}

// NameLength prints products whose name is exactly length characters long.
func (r *Runner) NameLength(ctx context.Context, length int) error {
	return r.filtered(ctx, "NameLength", fmt.Sprintf("Products with Name Length %d", length),
		func(ctx context.Context) ([]model.Product, error) {
			return r.productRepo.ListProductsByNameLength(ctx, length)
		}, nameLine)
}

// NameLengthPattern selects the same rows as NameLength using a pattern of
// single-character wildcards.
func (r *Runner) NameLengthPattern(ctx context.Context, length int) error {
	return r.namePattern(ctx, "NameLengthPattern", fmt.Sprintf("Products with exactly %d characters", length),
		repository.FixedLengthPattern(length))
}

func (r *Runner) namePattern(ctx context.Context, name, title, pattern string) error {
	return r.filtered(ctx, name, title, func(ctx context.Context) ([]model.Product, error) {
		return r.productRepo.ListProductsByNamePattern(ctx, pattern)
	}, nameLine)
}

func (r *Runner) sorted(ctx context.Context, name, title string, params repository.ListProductsParams, format func(*printer, model.Product)) error {
	return r.filtered(ctx, name, title, func(ctx context.Context) ([]model.Product, error) {
		return r.productRepo.ListProducts(ctx, params)
	}, format)
}

func (r *Runner) filtered(
	ctx context.Context,
	name, title string,
	query func(context.Context) ([]model.Product, error),
	format func(*printer, model.Product),
) error {
	return r.report(ctx, name, func(ctx context.Context, p *printer) error {
		products, err := query(ctx)
		if err != nil {
			return err
		}
		p.title("%s", title)
		for _, product := range products {
			format(p, product)
		}
		return nil
	})
}

// report runs one report. Query failures are wrapped as apperr.QueryFailedErr.
func (r *Runner) report(ctx context.Context, name string, render func(context.Context, *printer) error) error {
	ctx, span := tracer.Start(ctx, "Runner."+name)
	defer span.End()

	r.logger.DebugContext(ctx, "running report", slog.String("report", name))

	p := newPrinter(r.out)
	if err := render(ctx, p); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "report query failed")
		r.logger.ErrorContext(ctx, "report failed", slog.String("report", name), slog.Any("error", err))
		return apperr.QueryFailedErr.WrapParent(fmt.Errorf("%s: %w", name, err))
	}

	if p.err != nil {
		span.RecordError(p.err)
		span.SetStatus(codes.Error, "write report failed")
		return fmt.Errorf("write %s report: %w", name, p.err)
	}

	span.SetStatus(codes.Ok, "")
	return nil
}

func priceLine(p *printer, product model.Product) {
	p.line("%s - %s", product.Name, money(product.Price))
}

func quantityLine(p *printer, product model.Product) {
	p.line("%s - Qty: %d", product.Name, product.Quantity)
}

func nameLine(p *printer, product model.Product) {
	p.line("%s", product.Name)
}
