package repository_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuanvumaihuynh/product-report/internal/config"
	"github.com/tuanvumaihuynh/product-report/internal/model"
	"github.com/tuanvumaihuynh/product-report/internal/repository"
	"github.com/tuanvumaihuynh/product-report/internal/seed"
	"github.com/tuanvumaihuynh/product-report/internal/storage/db"
	"github.com/tuanvumaihuynh/product-report/internal/storage/orm"
)

type newRepoFunc func(t *testing.T) repository.ProductRepository

// stores returns every engine the contract runs against. Postgres is included
// only when TEST_DATABASE_URL is set.
func stores() map[string]newRepoFunc {
	return map[string]newRepoFunc{
		"sqlite":   newSQLiteRepo,
		"postgres": newPostgresRepo,
	}
}

func newSQLiteRepo(t *testing.T) repository.ProductRepository {
	t.Helper()

	ctx := context.Background()
	gormDB, err := orm.Open(ctx, config.SQLite{Path: ":memory:"}, slog.New(slog.DiscardHandler))
	require.NoError(t, err)
	t.Cleanup(func() { _ = orm.Close(gormDB) })

	require.NoError(t, repository.MigrateGormProducts(ctx, gormDB))

	return repository.NewGormProductRepository(gormDB)
}

func newPostgresRepo(t *testing.T) repository.ProductRepository {
	t.Helper()

	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("Skipping test: TEST_DATABASE_URL is not set")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		t.Skipf("Skipping test: database not available: %v", err)
	}
	t.Cleanup(pool.Close)

	if err := pool.Ping(ctx); err != nil {
		t.Skipf("Skipping test: database ping failed: %v", err)
	}

	require.NoError(t, db.Migrate(ctx, pool, slog.New(slog.DiscardHandler)))

	_, err = pool.Exec(ctx, "TRUNCATE products RESTART IDENTITY")
	require.NoError(t, err)

	return repository.NewProductRepository(db.NewClient(pool))
}

func seedDemo(t *testing.T, repo repository.ProductRepository) []model.Product {
	t.Helper()

	products := seed.DemoProducts()
	err := repo.WithTx(context.Background(), func(tx repository.ProductRepository) error {
		for i := range products {
			if err := tx.CreateProduct(context.Background(), &products[i]); err != nil {
				return err
			}
		}
		return nil
	})
	require.NoError(t, err)

	return products
}

func price(v float64) *float64 { return &v }

func names(products []model.Product) []string {
	out := make([]string, 0, len(products))
	for _, p := range products {
		out = append(out, p.Name)
	}
	return out
}

func TestProductRepository(t *testing.T) {
	for name, newRepo := range stores() {
		t.Run(name, func(t *testing.T) {
			t.Run("Should assign increasing ids on create", func(t *testing.T) {
				repo := newRepo(t)
				products := seedDemo(t, repo)

				for i := 1; i < len(products); i++ {
					assert.Greater(t, products[i].ID, products[i-1].ID)
				}
			})

			t.Run("Should count all and in stock products", func(t *testing.T) {
				repo := newRepo(t)
				seedDemo(t, repo)
				ctx := context.Background()

				total, err := repo.CountProducts(ctx, repository.CountProductsParams{})
				require.NoError(t, err)
				assert.Equal(t, int64(8), total)

				all, err := repo.ListProducts(ctx, repository.ListProductsParams{})
				require.NoError(t, err)
				assert.Len(t, all, int(total))

				inStock, err := repo.CountProducts(ctx, repository.CountProductsParams{InStockOnly: true})
				require.NoError(t, err)
				assert.Equal(t, int64(8), inStock)
			})

			t.Run("Should order by price ascending as the reverse of descending", func(t *testing.T) {
				repo := newRepo(t)
				seedDemo(t, repo)
				ctx := context.Background()

				asc, err := repo.ListProducts(ctx, repository.ListProductsParams{OrderBy: model.ProductFieldPrice})
				require.NoError(t, err)
				desc, err := repo.ListProducts(ctx, repository.ListProductsParams{OrderBy: model.ProductFieldPrice, Desc: true})
				require.NoError(t, err)

				assert.Equal(t, []string{
					"Notebook", "Pen Set", "Mouse", "Desk Lamp", "Keyboard", "Desk Chair", "Monitor", "Laptop",
				}, names(asc))

				require.Len(t, desc, len(asc))
				for i := range asc {
					assert.Equal(t, asc[i], desc[len(desc)-1-i])
				}
				for i := 1; i < len(asc); i++ {
					assert.LessOrEqual(t, asc[i-1].Price, asc[i].Price)
				}
			})

			t.Run("Should order by quantity descending", func(t *testing.T) {
				repo := newRepo(t)
				seedDemo(t, repo)

				got, err := repo.ListProducts(context.Background(), repository.ListProductsParams{
					OrderBy: model.ProductFieldQuantity,
					Desc:    true,
				})
				require.NoError(t, err)
				assert.Equal(t, []string{
					"Notebook", "Pen Set", "Mouse", "Keyboard", "Desk Lamp", "Monitor", "Laptop", "Desk Chair",
				}, names(got))
			})

			t.Run("Should return disjoint pages covering the first rows", func(t *testing.T) {
				repo := newRepo(t)
				products := seedDemo(t, repo)
				ctx := context.Background()

				first, err := repo.ListProducts(ctx, repository.ListProductsParams{Limit: 3})
				require.NoError(t, err)
				second, err := repo.ListProducts(ctx, repository.ListProductsParams{Limit: 3, Offset: 3})
				require.NoError(t, err)

				assert.Equal(t, []string{"Laptop", "Mouse", "Monitor"}, names(first))
				assert.Equal(t, []string{"Desk Chair", "Desk Lamp", "Notebook"}, names(second))
				assert.Equal(t, products[:6], append(first, second...))

				beyond, err := repo.ListProducts(ctx, repository.ListProductsParams{Limit: 3, Offset: 9})
				require.NoError(t, err)
				assert.Empty(t, beyond)
			})

			t.Run("Should reject negative paging", func(t *testing.T) {
				repo := newRepo(t)

				_, err := repo.ListProducts(context.Background(), repository.ListProductsParams{Limit: -1})
				assert.Error(t, err)
				_, err = repo.ListProducts(context.Background(), repository.ListProductsParams{Offset: -1})
				assert.Error(t, err)
			})

			t.Run("Should aggregate per category", func(t *testing.T) {
				repo := newRepo(t)
				seedDemo(t, repo)
				ctx := context.Background()

				counts, err := repo.CountProductsByCategory(ctx)
				require.NoError(t, err)
				assert.Equal(t, []model.CategoryCount{
					{Category: "Electronics", Count: 4},
					{Category: "Furniture", Count: 2},
					{Category: "Stationery", Count: 2},
				}, counts)

				stats, err := repo.ListCategoryStats(ctx)
				require.NoError(t, err)
				require.Len(t, stats, 3)

				var count, quantity int64
				for _, s := range stats {
					count += s.Count
					quantity += s.TotalQuantity
				}
				assert.Equal(t, int64(8), count)
				assert.Equal(t, int64(300), quantity)

				assert.Equal(t, "Electronics", stats[0].Category)
				assert.InDelta(t, 288.8675, stats[0].AvgPrice, 1e-6)
				assert.Equal(t, int64(100), stats[0].TotalQuantity)
				assert.InDelta(t, 65.375, stats[1].AvgPrice, 1e-6)
				assert.Equal(t, int64(25), stats[1].TotalQuantity)
				assert.InDelta(t, 9.245, stats[2].AvgPrice, 1e-6)
				assert.Equal(t, int64(175), stats[2].TotalQuantity)
			})

			t.Run("Should list category items ordered by category", func(t *testing.T) {
				repo := newRepo(t)
				seedDemo(t, repo)

				items, err := repo.ListCategoryItems(context.Background())
				require.NoError(t, err)

				got := make([]string, 0, len(items))
				for _, item := range items {
					got = append(got, item.Category+"/"+item.Name)
				}
				assert.Equal(t, []string{
					"Electronics/Laptop", "Electronics/Mouse", "Electronics/Monitor", "Electronics/Keyboard",
					"Furniture/Desk Chair", "Furniture/Desk Lamp",
					"Stationery/Notebook", "Stationery/Pen Set",
				}, got)
			})

			t.Run("Should bound every price by the price range", func(t *testing.T) {
				repo := newRepo(t)
				products := seedDemo(t, repo)

				got, err := repo.GetPriceRange(context.Background())
				require.NoError(t, err)
				assert.Equal(t, model.PriceRange{Min: price(5.99), Max: price(899.99)}, got)

				for _, p := range products {
					assert.GreaterOrEqual(t, p.Price, *got.Min)
					assert.LessOrEqual(t, p.Price, *got.Max)
				}
			})

			t.Run("Should return an empty price range on an empty table", func(t *testing.T) {
				repo := newRepo(t)

				got, err := repo.GetPriceRange(context.Background())
				require.NoError(t, err)
				assert.Nil(t, got.Min)
				assert.Nil(t, got.Max)

				counts, err := repo.CountProductsByCategory(context.Background())
				require.NoError(t, err)
				assert.Empty(t, counts)
			})

			t.Run("Should filter price range inclusively", func(t *testing.T) {
				repo := newRepo(t)
				seedDemo(t, repo)
				ctx := context.Background()

				got, err := repo.ListProductsByPriceRange(ctx, repository.PriceRangeParams{Min: 20, Max: 100})
				require.NoError(t, err)
				assert.Equal(t, []string{"Mouse", "Desk Chair", "Desk Lamp", "Keyboard"}, names(got))

				got, err = repo.ListProductsByPriceRange(ctx, repository.PriceRangeParams{Min: 25.50, Max: 85})
				require.NoError(t, err)
				assert.Equal(t, []string{"Mouse", "Desk Chair", "Desk Lamp", "Keyboard"}, names(got))

				got, err = repo.ListProductsByPriceRange(ctx, repository.PriceRangeParams{Min: 100, Max: 20})
				require.NoError(t, err)
				assert.Empty(t, got)
			})

			t.Run("Should match name patterns", func(t *testing.T) {
				repo := newRepo(t)
				seedDemo(t, repo)
				ctx := context.Background()

				prefix, err := repo.ListProductsByNamePattern(ctx, repository.PrefixPattern("D"))
				require.NoError(t, err)
				assert.Equal(t, []string{"Desk Chair", "Desk Lamp"}, names(prefix))

				suffix, err := repo.ListProductsByNamePattern(ctx, repository.SuffixPattern("p"))
				require.NoError(t, err)
				assert.Equal(t, []string{"Laptop", "Desk Lamp"}, names(suffix))

				contains, err := repo.ListProductsByNamePattern(ctx, repository.ContainsPattern("Desk"))
				require.NoError(t, err)
				assert.Equal(t, []string{"Desk Chair", "Desk Lamp"}, names(contains))
				assert.Subset(t, names(contains), names(prefix))

				lower, err := repo.ListProductsByNamePattern(ctx, repository.PrefixPattern("d"))
				require.NoError(t, err)
				assert.Empty(t, lower)
			})

			t.Run("Should select the same rows by length and by pattern", func(t *testing.T) {
				repo := newRepo(t)
				seedDemo(t, repo)
				ctx := context.Background()

				for n := 0; n <= 20; n++ {
					byLength, err := repo.ListProductsByNameLength(ctx, n)
					require.NoError(t, err)
					byPattern, err := repo.ListProductsByNamePattern(ctx, repository.FixedLengthPattern(n))
					require.NoError(t, err)
					assert.Equal(t, byLength, byPattern, "length %d", n)
				}

				five, err := repo.ListProductsByNameLength(ctx, 5)
				require.NoError(t, err)
				assert.Equal(t, []string{"Mouse"}, names(five))

				seven, err := repo.ListProductsByNameLength(ctx, 7)
				require.NoError(t, err)
				assert.Equal(t, []string{"Monitor", "Pen Set"}, names(seven))
			})

			t.Run("Should treat wildcard characters in operands literally", func(t *testing.T) {
				repo := newRepo(t)
				ctx := context.Background()

				for _, p := range []model.Product{
					{Name: "50% Off Bundle", Price: 10, Quantity: 1, Category: "Promo"},
					{Name: "Item_1", Price: 10, Quantity: 1, Category: "Promo"},
					{Name: "Item21", Price: 10, Quantity: 1, Category: "Promo"},
				} {
					require.NoError(t, repo.CreateProduct(ctx, &p))
				}

				got, err := repo.ListProductsByNamePattern(ctx, repository.ContainsPattern("%"))
				require.NoError(t, err)
				assert.Equal(t, []string{"50% Off Bundle"}, names(got))

				got, err = repo.ListProductsByNamePattern(ctx, repository.PrefixPattern("Item_"))
				require.NoError(t, err)
				assert.Equal(t, []string{"Item_1"}, names(got))
			})

			t.Run("Should roll back every insert when the transaction fails", func(t *testing.T) {
				repo := newRepo(t)
				ctx := context.Background()
				errAbort := errors.New("abort")

				err := repo.WithTx(ctx, func(tx repository.ProductRepository) error {
					for _, p := range seed.DemoProducts() {
						if err := tx.CreateProduct(ctx, &p); err != nil {
							return err
						}
					}
					return errAbort
				})
				require.ErrorIs(t, err, errAbort)

				total, err := repo.CountProducts(ctx, repository.CountProductsParams{})
				require.NoError(t, err)
				assert.Zero(t, total)
			})
		})
	}
}
