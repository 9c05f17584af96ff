package persistence

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/spec-kit/support-dashboard/internal/config"
	"github.com/spec-kit/support-dashboard/internal/repository"
)

// Scope exposes transaction-bound operations to a WithTx callback.
type Scope interface {
	ApplyMigrations(ctx context.Context) error
	Staff() repository.StaffRepository
}

// TxFunc runs inside a transaction. Returning an error rolls the transaction back.
type TxFunc func(ctx context.Context, scope Scope) error

// Database is a persistence backend able to run all-or-nothing units of work.
type Database interface {
	WithTx(ctx context.Context, fn TxFunc) error
	Ping(ctx context.Context) error
	Driver() string
	Close()
}

// Open connects to the backend selected by cfg.Driver.
func Open(ctx context.Context, cfg config.DatabaseConfig, logger *zap.Logger) (Database, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		pg, err := NewPostgres(ctx, cfg.Postgres, logger)
		if err != nil {
			return nil, err
		}
		return pg, nil
	case config.DriverSQLite:
		lite, err := NewSQLite(ctx, cfg.SQLite, logger)
		if err != nil {
			return nil, err
		}
		return lite, nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}
