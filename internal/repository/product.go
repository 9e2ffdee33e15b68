package repository

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/tuanvumaihuynh/product-report/internal/model"
	"github.com/tuanvumaihuynh/product-report/internal/storage/db"
)

type productRecord struct {
	ID       int64   `db:"id"`
	Name     string  `db:"name"`
	Price    float64 `db:"price"`
	Quantity int32   `db:"quantity"`
	Category string  `db:"category"`
}

type categoryCountRecord struct {
	Category     string `db:"category"`
	ProductCount int64  `db:"product_count"`
}

type categoryItemRecord struct {
	Category string  `db:"category"`
	Name     string  `db:"name"`
	Price    float64 `db:"price"`
}

type categoryStatsRecord struct {
	Category      string  `db:"category"`
	ProductCount  int64   `db:"product_count"`
	AvgPrice      float64 `db:"avg_price"`
	TotalQuantity int64   `db:"total_quantity"`
}

var selectProducts = fmt.Sprintf("SELECT %s FROM %s", strings.Join([]string{
	productColumns[model.ProductFieldID],
	productColumns[model.ProductFieldName],
	productColumns[model.ProductFieldPrice],
	productColumns[model.ProductFieldQuantity],
	productColumns[model.ProductFieldCategory],
}, ", "), productsTable)

type productRepository struct {
	db db.DB
}

// NewProductRepository creates a product repository backed by pgx.
func NewProductRepository(db db.DB) ProductRepository {
	return &productRepository{
		db: db,
	}
}

func (r productRepository) withDB(db db.DB) ProductRepository {
	return &productRepository{
		db: db,
	}
}

func (r productRepository) WithTx(ctx context.Context, txFunc func(ProductRepository) error) error {
	return r.db.WithTx(ctx, func(tx db.DB) error {
		return txFunc(r.withDB(tx))
	})
}

func (r productRepository) CreateProduct(ctx context.Context, product *model.Product) error {
	if product.Quantity > math.MaxInt32 || product.Quantity < math.MinInt32 {
		return fmt.Errorf("quantity out of range: %d", product.Quantity)
	}

	if err := r.db.QueryRow(ctx, `
		INSERT INTO products (name, price, quantity, category)
		VALUES (@name, @price, @quantity, @category)
		RETURNING id
	`, pgx.NamedArgs{
		"name":     product.Name,
		"price":    product.Price,
		"quantity": int32(product.Quantity),
		"category": product.Category,
	}).Scan(&product.ID); err != nil {
		return fmt.Errorf("create product: %w", err)
	}

	return nil
}

func (r productRepository) ListProducts(ctx context.Context, params ListProductsParams) ([]model.Product, error) {
	if err := params.validate(); err != nil {
		return nil, fmt.Errorf("validate params: %w", err)
	}

	col, err := productColumn(params.OrderBy)
	if err != nil {
		return nil, err
	}

	dir := "ASC"
	if params.Desc {
		dir = "DESC"
	}
	orderBy := fmt.Sprintf("%s %s", col, dir)
	if params.OrderBy != model.ProductFieldID {
		orderBy += fmt.Sprintf(", %s %s", productColumns[model.ProductFieldID], dir)
	}

	// A NULL limit is treated by Postgres as LIMIT ALL.
	var limit any
	if params.Limit > 0 {
		limit = params.Limit
	}

	query := fmt.Sprintf("%s ORDER BY %s LIMIT @limit OFFSET @offset", selectProducts, orderBy)
	products, err := r.listProducts(ctx, query, pgx.NamedArgs{
		"limit":  limit,
		"offset": params.Offset,
	})
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	return products, nil
}

func (r productRepository) CountProducts(ctx context.Context, params CountProductsParams) (int64, error) {
	query := "SELECT COUNT(*) FROM products"
	if params.InStockOnly {
		query += " WHERE quantity > 0"
	}

	var count int64
	if err := r.db.QueryRow(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}

	return count, nil
}

func (r productRepository) CountProductsByCategory(ctx context.Context) ([]model.CategoryCount, error) {
	rows, err := r.db.Query(ctx, `
		SELECT category, COUNT(*) AS product_count
		FROM products
		GROUP BY category
		ORDER BY category
	`)
	if err != nil {
		return nil, fmt.Errorf("count products by category: %w", err)
	}

	records, err := pgx.CollectRows(rows, pgx.RowToStructByName[categoryCountRecord])
	if err != nil {
		return nil, fmt.Errorf("collect category counts: %w", err)
	}

	counts := make([]model.CategoryCount, 0, len(records))
	for _, rec := range records {
		counts = append(counts, model.CategoryCount{
			Category: rec.Category,
			Count:    rec.ProductCount,
		})
	}

	return counts, nil
}

func (r productRepository) GetPriceRange(ctx context.Context) (model.PriceRange, error) {
	var priceRange model.PriceRange
	if err := r.db.QueryRow(ctx, "SELECT MIN(price), MAX(price) FROM products").
		Scan(&priceRange.Min, &priceRange.Max); err != nil {
		return model.PriceRange{}, fmt.Errorf("get price range: %w", err)
	}

	return priceRange, nil
}

func (r productRepository) ListCategoryItems(ctx context.Context) ([]model.CategoryItem, error) {
	rows, err := r.db.Query(ctx, `
		SELECT category, name, price
		FROM products
		ORDER BY category, id
	`)
	if err != nil {
		return nil, fmt.Errorf("list category items: %w", err)
	}

	records, err := pgx.CollectRows(rows, pgx.RowToStructByName[categoryItemRecord])
	if err != nil {
		return nil, fmt.Errorf("collect category items: %w", err)
	}

	items := make([]model.CategoryItem, 0, len(records))
	for _, rec := range records {
		items = append(items, model.CategoryItem(rec))
	}

	return items, nil
}

func (r productRepository) ListCategoryStats(ctx context.Context) ([]model.CategoryStats, error) {
	rows, err := r.db.Query(ctx, `
		SELECT
			category,
			COUNT(*)      AS product_count,
			AVG(price)    AS avg_price,
			SUM(quantity) AS total_quantity
		FROM products
		GROUP BY category
		ORDER BY category
	`)
	if err != nil {
		return nil, fmt.Errorf("list category stats: %w", err)
	}

	records, err := pgx.CollectRows(rows, pgx.RowToStructByName[categoryStatsRecord])
	if err != nil {
		return nil, fmt.Errorf("collect category stats: %w", err)
	}

	stats := make([]model.CategoryStats, 0, len(records))
	for _, rec := range records {
		stats = append(stats, model.CategoryStats{
			Category:      rec.Category,
			Count:         rec.ProductCount,
			AvgPrice:      rec.AvgPrice,
			TotalQuantity: rec.TotalQuantity,
		})
	}

	return stats, nil
}

func (r productRepository) ListProductsByPriceRange(ctx context.Context, params PriceRangeParams) ([]model.Product, error) {
	products, err := r.listProducts(ctx, selectProducts+` WHERE price BETWEEN @min AND @max ORDER BY id`, pgx.NamedArgs{
		"min": params.Min,
		"max": params.Max,
	})
	if err != nil {
		return nil, fmt.Errorf("list products by price range: %w", err)
	}

	return products, nil
}

func (r productRepository) ListProductsByNamePattern(ctx context.Context, pattern string) ([]model.Product, error) {
	products, err := r.listProducts(ctx, selectProducts+` WHERE name LIKE @pattern ESCAPE '\' ORDER BY id`, pgx.NamedArgs{
		"pattern": pattern,
	})
	if err != nil {
		return nil, fmt.Errorf("list products by name pattern: %w", err)
	}

	return products, nil
}

func (r productRepository) ListProductsByNameLength(ctx context.Context, length int) ([]model.Product, error) {
	products, err := r.listProducts(ctx, selectProducts+` WHERE length(name) = @length ORDER BY id`, pgx.NamedArgs{
		"length": length,
	})
	if err != nil {
		return nil, fmt.Errorf("list products by name length: %w", err)
	}

	return products, nil
}

func (r productRepository) listProducts(ctx context.Context, query string, args pgx.NamedArgs) ([]model.Product, error) {
	rows, err := r.db.Query(ctx, query, args)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}

	records, err := pgx.CollectRows(rows, pgx.RowToStructByName[productRecord])
	if err != nil {
		return nil, fmt.Errorf("collect products: %w", err)
	}

	products := make([]model.Product, 0, len(records))
	for _, rec := range records {
		products = append(products, recordToModelProduct(rec))
	}

	return products, nil
}

func recordToModelProduct(rec productRecord) model.Product {
	return model.Product{
		ID:       rec.ID,
		Name:     rec.Name,
		Price:    rec.Price,
		Quantity: int(rec.Quantity),
		Category: rec.Category,
	}
}
