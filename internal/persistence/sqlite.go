package persistence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/spec-kit/support-dashboard/internal/config"
	"github.com/spec-kit/support-dashboard/internal/repository"
)

// SQLite wraps a database/sql handle opened with the modernc driver.
type SQLite struct {
	DB     *sql.DB
	path   string
	logger *zap.Logger
}

// NewSQLite creates (if needed) and opens the SQLite database at cfg.Path.
func NewSQLite(ctx context.Context, cfg config.SQLiteConfig, logger *zap.Logger) (*SQLite, error) {
	if cfg.Path == "" {
		return nil, errors.New("sqlite path not provided")
	}
	if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
		return nil, fmt.Errorf("ensure data dir: %w", err)
	}

	db, err := sql.Open("sqlite", cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// All statements share one connection; the transaction holds it for the run.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	logger.Info("opened sqlite database", zap.String("path", cfg.Path))
	return &SQLite{DB: db, path: cfg.Path, logger: logger}, nil
}

// WithTx runs fn inside a single SQLite transaction.
func (s *SQLite) WithTx(ctx context.Context, fn TxFunc) (err error) {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	defer func() {
		if r := recover(); r != nil {
			_ = tx.Rollback()
			panic(r)
		}
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
				s.logger.Error("rollback failed", zap.Error(rbErr))
			} else {
				s.logger.Warn("transaction rolled back")
			}
		}
	}()

	if err = fn(ctx, &sqliteScope{tx: tx, logger: s.logger}); err != nil {
		return err
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// Ping verifies the database file is reachable.
func (s *SQLite) Ping(ctx context.Context) error {
	if s == nil || s.DB == nil {
		return errors.New("sqlite database not configured")
	}
	return s.DB.PingContext(ctx)
}

// Driver names the backend.
func (s *SQLite) Driver() string {
	return config.DriverSQLite
}

// Path returns the file backing the database.
func (s *SQLite) Path() string {
	return s.path
}

// Close releases the database handle.
func (s *SQLite) Close() {
	if s != nil && s.DB != nil {
		_ = s.DB.Close()
	}
}

type sqliteScope struct {
	tx     *sql.Tx
	logger *zap.Logger
}

func (s *sqliteScope) ApplyMigrations(ctx context.Context) error {
	return runMigrations(ctx, config.DriverSQLite, func(ctx context.Context, script string) error {
		_, err := s.tx.ExecContext(ctx, script)
		return err
	}, s.logger)
}

func (s *sqliteScope) Staff() repository.StaffRepository {
	return repository.NewSQLiteStaffRepository(s.tx)
}
