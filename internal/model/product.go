package model

type Product struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
	Category string  `json:"category"`
}

// ProductField names a Product attribute independently of how a store lays it out.
type ProductField uint8

const (
	ProductFieldID ProductField = iota
	ProductFieldName
	ProductFieldPrice
	ProductFieldQuantity
	ProductFieldCategory
)

func (f ProductField) String() string {
	return []string{"id", "name", "price", "quantity", "category"}[f]
}

// CategoryCount is one row of a count grouped by category.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int64  `json:"count"`
}

// CategoryStats is one row of the per-category aggregate.
type CategoryStats struct {
	Category      string  `json:"category"`
	Count         int64   `json:"count"`
	AvgPrice      float64 `json:"avg_price"`
	TotalQuantity int64   `json:"total_quantity"`
}

// CategoryItem is a (category, name, price) projection of a product.
type CategoryItem struct {
	Category string  `json:"category"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
}

// PriceRange holds the lowest and highest price. Both are nil when there are no products.
type PriceRange struct {
	Min *float64 `json:"min"`
	Max *float64 `json:"max"`
}
