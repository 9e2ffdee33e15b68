package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/tuanvumaihuynh/product-report/internal/apperr"
	"github.com/tuanvumaihuynh/product-report/internal/config"
	"github.com/tuanvumaihuynh/product-report/internal/log"
	"github.com/tuanvumaihuynh/product-report/internal/repository"
	"github.com/tuanvumaihuynh/product-report/internal/storage/db"
	"github.com/tuanvumaihuynh/product-report/internal/storage/orm"
	"github.com/tuanvumaihuynh/product-report/pkg/cmdutil"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error running migrate application: %v\n", err)
		os.Exit(apperr.ExitCode(err))
	}
}

func run() error {
	ctx, cancel := cmdutil.SignalContext(context.Background())
	defer cancel()

	time.Local = time.UTC

	command := "up"
	if len(os.Args) > 1 {
		command = os.Args[1]
	}

	type Config struct {
		Log   config.Log
		Store config.Store
	}
	cfg, err := config.New[Config]()
	if err != nil {
		return apperr.ValidationErr.WrapParent(fmt.Errorf("error loading config: %w", err))
	}

	logger := log.NewSlogLogger(cfg.Log)

	logger.InfoContext(ctx, "starting database migration")

	switch cfg.Store.Driver {
	case config.StoreDriverPostgres:
		pgCfg, err := config.New[config.Postgres]()
		if err != nil {
			return apperr.ValidationErr.WrapParent(fmt.Errorf("error loading postgres config: %w", err))
		}

		pgxPool, err := db.NewPgxPool(ctx, pgCfg, logger)
		if err != nil {
			return apperr.StoreUnavailableErr.WrapParent(fmt.Errorf("error creating pgx pool: %w", err))
		}
		defer pgxPool.Close()

		if err := db.RunMigrations(ctx, pgxPool, logger, command, os.Args[min(len(os.Args), 2):]...); err != nil {
			return fmt.Errorf("error migrating database: %w", err)
		}
	case config.StoreDriverSQLite:
		if command != "up" {
			return apperr.ValidationErr.WrapParent(fmt.Errorf("sqlite store only supports the up command, got %q", command))
		}

		sqliteCfg, err := config.New[config.SQLite]()
		if err != nil {
			return apperr.ValidationErr.WrapParent(fmt.Errorf("error loading sqlite config: %w", err))
		}

		gormDB, err := orm.Open(ctx, sqliteCfg, logger)
		if err != nil {
			return apperr.StoreUnavailableErr.WrapParent(fmt.Errorf("error opening sqlite database: %w", err))
		}
		defer func() { _ = orm.Close(gormDB) }()

		if err := repository.MigrateGormProducts(ctx, gormDB); err != nil {
			return fmt.Errorf("error migrating database: %w", err)
		}
	default:
		return apperr.ValidationErr.WrapParent(fmt.Errorf("unsupported store driver: %s", cfg.Store.Driver))
	}

	logger.InfoContext(ctx, "database migration completed successfully", slog.String("command", command))

	return nil
}
