package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/support-dashboard/internal/domain"
)

const sqliteTimeLayout = time.RFC3339Nano

// SQLQuerier is satisfied by *sql.DB, *sql.Conn and *sql.Tx.
type SQLQuerier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type sqliteStaffRepository struct {
	db SQLQuerier
}

// NewSQLiteStaffRepository returns a SQLite-backed implementation.
func NewSQLiteStaffRepository(db SQLQuerier) StaffRepository {
	return &sqliteStaffRepository{db: db}
}

func (r *sqliteStaffRepository) Create(ctx context.Context, staff *domain.StaffMember) error {
	const query = `
        INSERT INTO staff_members (id, username, email, password_hash, role, active_flag, created_at, updated_at)
        VALUES (?,?,?,?,?,?,?,?)`

	if staff.ID == "" {
		staff.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	stamp := now.Format(sqliteTimeLayout)

	if _, err := r.db.ExecContext(ctx, query,
		staff.ID,
		staff.Username,
		staff.Email,
		staff.PasswordHash,
		string(staff.Role),
		staff.Active,
		stamp,
		stamp,
	); err != nil {
		return err
	}
	staff.CreatedAt = now
	staff.UpdatedAt = now
	return nil
}

func (r *sqliteStaffRepository) GetByUsername(ctx context.Context, username string) (*domain.StaffMember, error) {
	const query = `
        SELECT id, username, email, password_hash, role, active_flag, created_at, updated_at
        FROM staff_members WHERE username=?`

	staff, err := scanSQLiteStaff(r.db.QueryRowContext(ctx, query, username))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrStaffNotFound
		}
		return nil, err
	}
	return staff, nil
}

func (r *sqliteStaffRepository) List(ctx context.Context, filter StaffFilter) ([]domain.StaffMember, error) {
	query := `
        SELECT id, username, email, password_hash, role, active_flag, created_at, updated_at
        FROM staff_members`
	args := []any{}

	if filter.Role != nil {
		args = append(args, string(*filter.Role))
		query += " WHERE role=?"
	}

	limit, offset := filter.window()
	query += fmt.Sprintf(" ORDER BY username LIMIT %d OFFSET %d", limit, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.StaffMember
	for rows.Next() {
		staff, err := scanSQLiteStaff(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *staff)
	}
	return result, rows.Err()
}

func (r *sqliteStaffRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM staff_members`).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSQLiteStaff(row rowScanner) (*domain.StaffMember, error) {
	var (
		staff     domain.StaffMember
		role      string
		createdAt string
		updatedAt string
	)
	if err := row.Scan(
		&staff.ID,
		&staff.Username,
		&staff.Email,
		&staff.PasswordHash,
		&role,
		&staff.Active,
		&createdAt,
		&updatedAt,
	); err != nil {
		return nil, err
	}
	staff.Role = domain.StaffRole(role)

	var err error
	if staff.CreatedAt, err = time.Parse(sqliteTimeLayout, createdAt); err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}
	if staff.UpdatedAt, err = time.Parse(sqliteTimeLayout, updatedAt); err != nil {
		return nil, fmt.Errorf("parse updated_at: %w", err)
	}
	return &staff, nil
}
