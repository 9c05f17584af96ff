package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/spec-kit/support-dashboard/internal/config"
	"github.com/spec-kit/support-dashboard/internal/repository"
)

// Postgres wraps access to a pgx connection pool.
type Postgres struct {
	Pool   *pgxpool.Pool
	logger *zap.Logger
}

// NewPostgres establishes a connection pool for cfg.DSN.
func NewPostgres(ctx context.Context, cfg config.PostgresConfig, logger *zap.Logger) (*Postgres, error) {
	if cfg.DSN == "" {
		return nil, errors.New("postgres DSN not provided")
	}

	poolCfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("parse postgres dsn: %w", err)
	}

	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}
	if cfg.MinConns > 0 {
		poolCfg.MinConns = cfg.MinConns
	}
	if cfg.ConnMaxIdleSec > 0 {
		poolCfg.MaxConnIdleTime = time.Duration(cfg.ConnMaxIdleSec) * time.Second
	}
	if cfg.ConnMaxLifeSec > 0 {
		poolCfg.MaxConnLifetime = time.Duration(cfg.ConnMaxLifeSec) * time.Second
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("open postgres pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	logger.Info("connected to postgres")
	return &Postgres{Pool: pool, logger: logger}, nil
}

// WithTx runs fn inside a single Postgres transaction. DDL is transactional
// in Postgres, so schema changes roll back together with seed rows.
func (p *Postgres) WithTx(ctx context.Context, fn TxFunc) (err error) {
	tx, err := p.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	defer func() {
		if r := recover(); r != nil {
			_ = tx.Rollback(context.Background())
			panic(r)
		}
		if err != nil {
			if rbErr := tx.Rollback(context.Background()); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
				p.logger.Error("rollback failed", zap.Error(rbErr))
			} else {
				p.logger.Warn("transaction rolled back")
			}
		}
	}()

	if err = fn(ctx, &pgxScope{tx: tx, logger: p.logger}); err != nil {
		return err
	}
	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// Ping verifies Postgres connectivity.
func (p *Postgres) Ping(ctx context.Context) error {
	if p == nil || p.Pool == nil {
		return errors.New("postgres pool not configured")
	}
	return p.Pool.Ping(ctx)
}

// Driver names the backend.
func (p *Postgres) Driver() string {
	return config.DriverPostgres
}

// Close releases pool resources.
func (p *Postgres) Close() {
	if p != nil && p.Pool != nil {
		p.Pool.Close()
	}
}

type pgxScope struct {
	tx     pgx.Tx
	logger *zap.Logger
}

func (s *pgxScope) ApplyMigrations(ctx context.Context) error {
	return runMigrations(ctx, config.DriverPostgres, func(ctx context.Context, script string) error {
		_, err := s.tx.Exec(ctx, script)
		return err
	}, s.logger)
}

func (s *pgxScope) Staff() repository.StaffRepository {
	return repository.NewStaffRepository(s.tx)
}
