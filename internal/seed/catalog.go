package seed

import (
	"fmt"

	"github.com/tuanvumaihuynh/product-report/internal/config"
	"github.com/tuanvumaihuynh/product-report/internal/model"
)

// DemoProducts is the sample catalog the reports are written against.
func DemoProducts() []model.Product {
	return []model.Product{
		{Name: "Laptop", Price: 899.99, Quantity: 10, Category: "Electronics"},
		{Name: "Mouse", Price: 25.50, Quantity: 50, Category: "Electronics"},
		{Name: "Monitor", Price: 179.99, Quantity: 15, Category: "Electronics"},
		{Name: "Desk Chair", Price: 85.00, Quantity: 5, Category: "Furniture"},
		{Name: "Desk Lamp", Price: 45.75, Quantity: 20, Category: "Furniture"},
		{Name: "Notebook", Price: 5.99, Quantity: 100, Category: "Stationery"},
		{Name: "Pen Set", Price: 12.50, Quantity: 75, Category: "Stationery"},
		{Name: "Keyboard", Price: 49.99, Quantity: 25, Category: "Electronics"},
	}
}

// InventoryProducts is the stock-taking catalog; the desk chair is out of stock.
func InventoryProducts() []model.Product {
	return []model.Product{
		{Name: "Laptop", Price: 899.99, Quantity: 15, Category: "Electronics"},
		{Name: "Mouse", Price: 25.50, Quantity: 50, Category: "Electronics"},
		{Name: "Keyboard", Price: 45.00, Quantity: 30, Category: "Electronics"},
		{Name: "Monitor", Price: 299.99, Quantity: 20, Category: "Electronics"},
		{Name: "Desk Chair", Price: 150.00, Quantity: 0, Category: "Furniture"},
		{Name: "Desk Lamp", Price: 35.75, Quantity: 25, Category: "Furniture"},
		{Name: "Notebook", Price: 5.99, Quantity: 100, Category: "Stationery"},
		{Name: "Pen Set", Price: 12.50, Quantity: 75, Category: "Stationery"},
	}
}

// Products returns the catalog for the given seed set.
func Products(set config.SeedSet) ([]model.Product, error) {
	switch set {
	case config.SeedSetDemo:
		return DemoProducts(), nil
	case config.SeedSetInventory:
		return InventoryProducts(), nil
	default:
		return nil, fmt.Errorf("unknown seed set: %q", string(set))
	}
}
