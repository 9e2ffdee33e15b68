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
	"github.com/tuanvumaihuynh/product-report/internal/seed"
	"github.com/tuanvumaihuynh/product-report/internal/session"
	"github.com/tuanvumaihuynh/product-report/pkg/cmdutil"
	"github.com/tuanvumaihuynh/product-report/pkg/validator"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error running seed application: %v\n", err)
		os.Exit(apperr.ExitCode(err))
	}
}

func run() error {
	ctx, cancel := cmdutil.SignalContext(context.Background())
	defer cancel()

	time.Local = time.UTC

	type Config struct {
		Log   config.Log
		Store config.Store
		Seed  config.Seed
	}
	cfg, err := config.New[Config]()
	if err != nil {
		return apperr.ValidationErr.WrapParent(fmt.Errorf("error loading config: %w", err))
	}

	v, err := validator.NewDefaultValidator()
	if err != nil {
		return fmt.Errorf("error creating validator: %w", err)
	}
	if err := v.Validate(cfg.Seed); err != nil {
		return apperr.ValidationErr.WrapParent(fmt.Errorf("invalid seed config: %s", validator.Describe(err)))
	}

	logger := log.NewSlogLogger(cfg.Log)

	ctx, err = cmdutil.WithCorrelationID(ctx)
	if err != nil {
		return err
	}

	products, err := seed.Products(cfg.Seed.Set)
	if err != nil {
		return apperr.ValidationErr.WrapParent(err)
	}

	sess, err := session.Open(ctx, cfg.Store, logger)
	if err != nil {
		return apperr.StoreUnavailableErr.WrapParent(fmt.Errorf("error opening session: %w", err))
	}
	defer func() {
		if err := sess.Close(); err != nil {
			logger.ErrorContext(ctx, "error closing session", slog.Any("error", err))
		}
	}()

	loader := seed.NewLoader(logger, sess.Products(), os.Stdout)
	if _, err := loader.Load(ctx, products); err != nil {
		return apperr.SeedFailedErr.WrapParent(fmt.Errorf("error loading sample products: %w", err))
	}

	return nil
}
