package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tuanvumaihuynh/product-report/internal/model"
)

// productRow is the gorm mapping of model.Product onto productsTable.
type productRow struct {
	ID       int64   `gorm:"column:id;primaryKey;autoIncrement"`
	Name     string  `gorm:"column:name;not null"`
	Price    float64 `gorm:"column:price;not null"`
	Quantity int     `gorm:"column:quantity;not null"`
	Category string  `gorm:"column:category;not null;index:idx_products_category"`
}

// TableName returns the table name for the product row.
func (productRow) TableName() string {
	return productsTable
}

type categoryCountRow struct {
	Category     string
	ProductCount int64
}

type categoryStatsRow struct {
	Category      string
	ProductCount  int64
	AvgPrice      float64
	TotalQuantity int64
}

type priceRangeRow struct {
	MinPrice *float64
	MaxPrice *float64
}

// MigrateGormProducts creates or updates the products table for a gorm-backed store.
func MigrateGormProducts(ctx context.Context, db *gorm.DB) error {
	if err := db.WithContext(ctx).AutoMigrate(&productRow{}); err != nil {
		return fmt.Errorf("auto migrate products: %w", err)
	}
	return nil
}

type gormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a product repository backed by gorm.
func NewGormProductRepository(db *gorm.DB) ProductRepository {
	return &gormProductRepository{db: db}
}

func (r *gormProductRepository) WithTx(ctx context.Context, txFunc func(ProductRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return txFunc(&gormProductRepository{db: tx})
	})
}

func (r *gormProductRepository) CreateProduct(ctx context.Context, product *model.Product) error {
	row := productRow{
		Name:     product.Name,
		Price:    product.Price,
		Quantity: product.Quantity,
		Category: product.Category,
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("create product: %w", err)
	}

	product.ID = row.ID
	return nil
}

func (r *gormProductRepository) ListProducts(ctx context.Context, params ListProductsParams) ([]model.Product, error) {
	if err := params.validate(); err != nil {
		return nil, fmt.Errorf("validate params: %w", err)
	}

	col, err := productColumn(params.OrderBy)
	if err != nil {
		return nil, err
	}

	q := r.products(ctx).Order(clause.OrderByColumn{Column: clause.Column{Name: col}, Desc: params.Desc})
	if params.OrderBy != model.ProductFieldID {
		q = q.Order(clause.OrderByColumn{Column: clause.Column{Name: productColumns[model.ProductFieldID]}, Desc: params.Desc})
	}
	if params.Limit > 0 {
		q = q.Limit(params.Limit)
	}
	if params.Offset > 0 {
		q = q.Offset(params.Offset)
	}

	products, err := findProducts(q)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	return products, nil
}

func (r *gormProductRepository) CountProducts(ctx context.Context, params CountProductsParams) (int64, error) {
	q := r.products(ctx)
	if params.InStockOnly {
		q = q.Where("quantity > ?", 0)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}

	return count, nil
}

func (r *gormProductRepository) CountProductsByCategory(ctx context.Context) ([]model.CategoryCount, error) {
	var rows []categoryCountRow
	if err := r.products(ctx).
		Select("category, COUNT(*) AS product_count").
		Group("category").
		Order("category").
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("count products by category: %w", err)
	}

	counts := make([]model.CategoryCount, 0, len(rows))
	for _, row := range rows {
		counts = append(counts, model.CategoryCount{
			Category: row.Category,
			Count:    row.ProductCount,
		})
	}

	return counts, nil
}

func (r *gormProductRepository) GetPriceRange(ctx context.Context) (model.PriceRange, error) {
	var row priceRangeRow
	if err := r.products(ctx).
		Select("MIN(price) AS min_price, MAX(price) AS max_price").
		Scan(&row).Error; err != nil {
		return model.PriceRange{}, fmt.Errorf("get price range: %w", err)
	}

	return model.PriceRange{Min: row.MinPrice, Max: row.MaxPrice}, nil
}

func (r *gormProductRepository) ListCategoryItems(ctx context.Context) ([]model.CategoryItem, error) {
	var rows []productRow
	if err := r.products(ctx).
		Select("id", "category", "name", "price").
		Order("category").
		Order("id").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list category items: %w", err)
	}

	items := make([]model.CategoryItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, model.CategoryItem{
			Category: row.Category,
			Name:     row.Name,
			Price:    row.Price,
		})
	}

	return items, nil
}

func (r *gormProductRepository) ListCategoryStats(ctx context.Context) ([]model.CategoryStats, error) {
	var rows []categoryStatsRow
	if err := r.products(ctx).
		Select("category, COUNT(*) AS product_count, AVG(price) AS avg_price, SUM(quantity) AS total_quantity").
		Group("category").
		Order("category").
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("list category stats: %w", err)
	}

	stats := make([]model.CategoryStats, 0, len(rows))
	for _, row := range rows {
		stats = append(stats, model.CategoryStats{
			Category:      row.Category,
			Count:         row.ProductCount,
			AvgPrice:      row.AvgPrice,
			TotalQuantity: row.TotalQuantity,
		})
	}

	return stats, nil
}

func (r *gormProductRepository) ListProductsByPriceRange(ctx context.Context, params PriceRangeParams) ([]model.Product, error) {
	products, err := findProducts(r.products(ctx).
		Where("price BETWEEN ? AND ?", params.Min, params.Max).
		Order("id"))
	if err != nil {
		return nil, fmt.Errorf("list products by price range: %w", err)
	}

	return products, nil
}

func (r *gormProductRepository) ListProductsByNamePattern(ctx context.Context, pattern string) ([]model.Product, error) {
	products, err := findProducts(r.products(ctx).
		Where(`name LIKE ? ESCAPE '\'`, pattern).
		Order("id"))
	if err != nil {
		return nil, fmt.Errorf("list products by name pattern: %w", err)
	}

	return products, nil
}

func (r *gormProductRepository) ListProductsByNameLength(ctx context.Context, length int) ([]model.Product, error) {
	products, err := findProducts(r.products(ctx).
		Where("length(name) = ?", length).
		Order("id"))
	if err != nil {
		return nil, fmt.Errorf("list products by name length: %w", err)
	}

	return products, nil
}

func (r *gormProductRepository) products(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Model(&productRow{})
}

func findProducts(q *gorm.DB) ([]model.Product, error) {
	var rows []productRow
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}

	products := make([]model.Product, 0, len(rows))
	for _, row := range rows {
		products = append(products, model.Product(row))
	}

	return products, nil
}
