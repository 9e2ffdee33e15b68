package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/tuanvumaihuynh/product-report/internal/config"
	"github.com/tuanvumaihuynh/product-report/internal/repository"
	"github.com/tuanvumaihuynh/product-report/internal/storage/db"
	"github.com/tuanvumaihuynh/product-report/internal/storage/orm"
)

// Session is one unit of work against the store. It owns both the session
// handle and the factory that produced it.
type Session struct {
	logger      *slog.Logger
	driver      config.StoreDriver
	productRepo repository.ProductRepository

	// closers run in reverse order: session first, factory last.
	closers []func() error
	closed  bool
}

// Open opens a session on the configured driver. Driver specific settings are
// read from the environment.
func Open(ctx context.Context, cfg config.Store, logger *slog.Logger) (*Session, error) {
	switch cfg.Driver {
	case config.StoreDriverPostgres:
		pgCfg, err := config.New[config.Postgres]()
		if err != nil {
			return nil, fmt.Errorf("load postgres config: %w", err)
		}
		return OpenPostgres(ctx, pgCfg, cfg.AutoMigrate, logger)
	case config.StoreDriverSQLite:
		sqliteCfg, err := config.New[config.SQLite]()
		if err != nil {
			return nil, fmt.Errorf("load sqlite config: %w", err)
		}
		return OpenSQLite(ctx, sqliteCfg, cfg.AutoMigrate, logger)
	default:
		return nil, fmt.Errorf("unsupported store driver: %s", cfg.Driver)
	}
}

// OpenPostgres creates a pgx pool and acquires the single connection the
// session runs on.
func OpenPostgres(ctx context.Context, cfg config.Postgres, migrate bool, logger *slog.Logger) (_ *Session, err error) {
	s := newSession(logger, config.StoreDriverPostgres)
	defer func() {
		if err != nil {
			if closeErr := s.Close(); closeErr != nil {
				err = errors.Join(err, closeErr)
			}
		}
	}()

	pool, err := db.NewPgxPool(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("create pgx pool: %w", err)
	}
	s.closers = append(s.closers, func() error {
		pool.Close()
		return nil
	})

	if migrate {
		if err := db.Migrate(ctx, pool, logger); err != nil {
			return nil, fmt.Errorf("migrate database: %w", err)
		}
	}

	conn, err := pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}
	s.closers = append(s.closers, func() error {
		conn.Release()
		return nil
	})

	s.productRepo = repository.NewProductRepository(db.NewClient(conn))
	s.logger.InfoContext(ctx, "session opened")

	return s, nil
}

// OpenSQLite opens the SQLite database through gorm.
func OpenSQLite(ctx context.Context, cfg config.SQLite, migrate bool, logger *slog.Logger) (_ *Session, err error) {
	s := newSession(logger, config.StoreDriverSQLite)
	defer func() {
		if err != nil {
			if closeErr := s.Close(); closeErr != nil {
				err = errors.Join(err, closeErr)
			}
		}
	}()

	gormDB, err := orm.Open(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("open orm: %w", err)
	}
	s.closers = append(s.closers, func() error {
		return orm.Close(gormDB)
	})

	if migrate {
		if err := repository.MigrateGormProducts(ctx, gormDB); err != nil {
			return nil, fmt.Errorf("migrate database: %w", err)
		}
	}

	s.productRepo = repository.NewGormProductRepository(gormDB)
	s.logger.InfoContext(ctx, "session opened", slog.String("path", cfg.Path))

	return s, nil
}

func newSession(logger *slog.Logger, driver config.StoreDriver) *Session {
	return &Session{
		logger: logger.With(slog.String("service", "session"), slog.String("driver", driver.String())),
		driver: driver,
	}
}

// Products returns the product repository bound to this session.
func (s *Session) Products() repository.ProductRepository {
	return s.productRepo
}

func (s *Session) Driver() config.StoreDriver {
	return s.driver
}

// Close releases the session and then its factory. Calling Close again is a no-op.
func (s *Session) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true

	var errs []error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	s.closers = nil
	s.productRepo = nil

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("close session: %w", err)
	}

	s.logger.Info("session closed")
	return nil
}
