package config_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuanvumaihuynh/product-report/internal/config"
)

func TestNew(t *testing.T) {
	t.Run("Should apply defaults", func(t *testing.T) {
		t.Chdir(t.TempDir())

		type Config struct {
			Log    config.Log
			Store  config.Store
			Seed   config.Seed
			Report config.Report
		}
		cfg, err := config.New[Config]()
		require.NoError(t, err)

		assert.Equal(t, config.Log{Format: config.LogFormatText, Level: slog.LevelWarn}, cfg.Log)
		assert.Equal(t, config.Store{Driver: config.StoreDriverSQLite, AutoMigrate: true}, cfg.Store)
		assert.Equal(t, config.Seed{Set: config.SeedSetDemo}, cfg.Seed)
		assert.Equal(t, config.Report{
			PriceMin:      20,
			PriceMax:      100,
			Prefix:        "D",
			Suffix:        "p",
			Substring:     "Desk",
			NameLength:    5,
			PatternLength: 7,
			PageSize:      3,
		}, cfg.Report)
	})

	t.Run("Should read environment variables", func(t *testing.T) {
		t.Chdir(t.TempDir())
		t.Setenv("STORE_DRIVER", "postgresql")
		t.Setenv("LOG_FORMAT", "json")
		t.Setenv("LOG_LEVEL", "debug")
		t.Setenv("REPORT_PAGE_SIZE", "4")

		type Config struct {
			Log    config.Log
			Store  config.Store
			Report config.Report
		}
		cfg, err := config.New[Config]()
		require.NoError(t, err)

		assert.Equal(t, config.StoreDriverPostgres, cfg.Store.Driver)
		assert.Equal(t, config.LogFormatJSON, cfg.Log.Format)
		assert.Equal(t, slog.LevelDebug, cfg.Log.Level)
		assert.Equal(t, 4, cfg.Report.PageSize)
	})

	t.Run("Should load a .env file without overriding the environment", func(t *testing.T) {
		dir := t.TempDir()
		t.Chdir(dir)
		require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("SQLITE_PATH=from-file.db\nSQLITE_DEBUG=true\n"), 0o600))
		t.Setenv("SQLITE_PATH", "from-env.db")
		t.Cleanup(func() { _ = os.Unsetenv("SQLITE_DEBUG") })

		cfg, err := config.New[config.SQLite]()
		require.NoError(t, err)

		assert.Equal(t, "from-env.db", cfg.Path)
		assert.True(t, cfg.Debug)
	})

	t.Run("Should fail on a missing required variable", func(t *testing.T) {
		t.Chdir(t.TempDir())
		t.Setenv("POSTGRES_HOST", "")
		require.NoError(t, os.Unsetenv("POSTGRES_HOST"))

		_, err := config.New[config.Postgres]()
		assert.Error(t, err)
	})

	t.Run("Should fail on an unknown driver", func(t *testing.T) {
		t.Chdir(t.TempDir())
		t.Setenv("STORE_DRIVER", "oracle")

		_, err := config.New[config.Store]()
		assert.Error(t, err)
	})
}

func TestSeedSetValidate(t *testing.T) {
	assert.NoError(t, config.SeedSetDemo.Validate())
	assert.NoError(t, config.SeedSetInventory.Validate())
	assert.Error(t, config.SeedSet("demo").Validate())
}

func TestStoreDriverText(t *testing.T) {
	var d config.StoreDriver
	require.NoError(t, d.UnmarshalText([]byte("Postgres")))
	assert.Equal(t, config.StoreDriverPostgres, d)

	text, err := d.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "POSTGRES", string(text))
}
