package repository

import (
	"context"
	"fmt"

	"github.com/tuanvumaihuynh/product-report/internal/model"
)

// productsTable is the table that stores model.Product rows.
const productsTable = "products"

// productColumns maps each product field to its column in productsTable.
// Both adapters read and order through this table only.
var productColumns = map[model.ProductField]string{
	model.ProductFieldID:       "id",
	model.ProductFieldName:     "name",
	model.ProductFieldPrice:    "price",
	model.ProductFieldQuantity: "quantity",
	model.ProductFieldCategory: "category",
}

func productColumn(field model.ProductField) (string, error) {
	col, ok := productColumns[field]
	if !ok {
		return "", fmt.Errorf("unknown product field: %d", field)
	}
	return col, nil
}

type ListProductsParams struct {
	OrderBy model.ProductField
	Desc    bool
	// Limit caps the number of rows; zero means no limit.
	Limit  int
	Offset int
}

func (p ListProductsParams) validate() error {
	if p.Limit < 0 {
		return fmt.Errorf("negative limit: %d", p.Limit)
	}
	if p.Offset < 0 {
		return fmt.Errorf("negative offset: %d", p.Offset)
	}
	return nil
}

type CountProductsParams struct {
	InStockOnly bool
}

// PriceRangeParams bounds a price filter; both ends are inclusive.
type PriceRangeParams struct {
	Min float64
	Max float64
}

// ProductRepository is the query surface over the products table. Unless an
// ordering is requested, rows come back in insertion (id) order.
type ProductRepository interface {
	// WithTx runs txFunc with a repository bound to a single transaction. The
	// transaction commits when txFunc returns nil and rolls back otherwise.
	WithTx(ctx context.Context, txFunc func(ProductRepository) error) error

	// CreateProduct inserts the product and sets its ID.
	CreateProduct(ctx context.Context, product *model.Product) error
	ListProducts(ctx context.Context, params ListProductsParams) ([]model.Product, error)
	CountProducts(ctx context.Context, params CountProductsParams) (int64, error)
	CountProductsByCategory(ctx context.Context) ([]model.CategoryCount, error)
	GetPriceRange(ctx context.Context) (model.PriceRange, error)
	// ListCategoryItems returns (category, name, price) rows ordered by category.
	ListCategoryItems(ctx context.Context) ([]model.CategoryItem, error)
	ListCategoryStats(ctx context.Context) ([]model.CategoryStats, error)
	ListProductsByPriceRange(ctx context.Context, params PriceRangeParams) ([]model.Product, error)
	// ListProductsByNamePattern matches names with a LIKE pattern using '\' as the escape character.
	ListProductsByNamePattern(ctx context.Context, pattern string) ([]model.Product, error)
	ListProductsByNameLength(ctx context.Context, length int) ([]model.Product, error)
}
