package session_test

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuanvumaihuynh/product-report/internal/config"
	"github.com/tuanvumaihuynh/product-report/internal/repository"
	"github.com/tuanvumaihuynh/product-report/internal/session"
)

var discard = slog.New(slog.DiscardHandler)

func TestOpenSQLite(t *testing.T) {
	ctx := context.Background()

	t.Run("Should open a migrated session", func(t *testing.T) {
		sess, err := session.OpenSQLite(ctx, config.SQLite{Path: ":memory:"}, true, discard)
		require.NoError(t, err)
		defer sess.Close()

		assert.Equal(t, config.StoreDriverSQLite, sess.Driver())

		total, err := sess.Products().CountProducts(ctx, repository.CountProductsParams{})
		require.NoError(t, err)
		assert.Zero(t, total)
	})

	t.Run("Should fail queries without migration", func(t *testing.T) {
		sess, err := session.OpenSQLite(ctx, config.SQLite{Path: ":memory:"}, false, discard)
		require.NoError(t, err)
		defer sess.Close()

		_, err = sess.Products().CountProducts(ctx, repository.CountProductsParams{})
		assert.Error(t, err)
	})

	t.Run("Should be safe to close twice", func(t *testing.T) {
		sess, err := session.OpenSQLite(ctx, config.SQLite{Path: ":memory:"}, true, discard)
		require.NoError(t, err)

		assert.NoError(t, sess.Close())
		assert.NoError(t, sess.Close())
		assert.Nil(t, sess.Products())
	})

	t.Run("Should keep data in a file database across sessions", func(t *testing.T) {
		cfg := config.SQLite{Path: filepath.Join(t.TempDir(), "products.db")}

		sess, err := session.OpenSQLite(ctx, cfg, true, discard)
		require.NoError(t, err)
		_, err = sess.Products().CountProducts(ctx, repository.CountProductsParams{})
		require.NoError(t, err)
		require.NoError(t, sess.Close())

		sess, err = session.OpenSQLite(ctx, cfg, false, discard)
		require.NoError(t, err)
		defer sess.Close()

		total, err := sess.Products().CountProducts(ctx, repository.CountProductsParams{})
		require.NoError(t, err)
		assert.Zero(t, total)
	})
}

func TestOpen(t *testing.T) {
	t.Run("Should open the driver from config", func(t *testing.T) {
		t.Chdir(t.TempDir())
		t.Setenv("SQLITE_PATH", ":memory:")

		sess, err := session.Open(context.Background(), config.Store{Driver: config.StoreDriverSQLite, AutoMigrate: true}, discard)
		require.NoError(t, err)
		defer sess.Close()

		assert.Equal(t, config.StoreDriverSQLite, sess.Driver())
	})

	t.Run("Should fail without postgres settings", func(t *testing.T) {
		t.Chdir(t.TempDir())
		t.Setenv("POSTGRES_HOST", "")
		require.NoError(t, os.Unsetenv("POSTGRES_HOST"))

		_, err := session.Open(context.Background(), config.Store{Driver: config.StoreDriverPostgres}, discard)
		assert.Error(t, err)
	})
}
