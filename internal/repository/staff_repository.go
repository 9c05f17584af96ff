package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/spec-kit/support-dashboard/internal/domain"
)

// StaffRepository handles persistence for staff members.
type StaffRepository interface {
	Create(ctx context.Context, staff *domain.StaffMember) error
	GetByUsername(ctx context.Context, username string) (*domain.StaffMember, error)
	List(ctx context.Context, filter StaffFilter) ([]domain.StaffMember, error)
	Count(ctx context.Context) (int, error)
}

// StaffFilter defines query params for staff listing.
type StaffFilter struct {
	Role   *domain.StaffRole
	Limit  int
	Offset int
}

func (f StaffFilter) window() (int, int) {
	limit := f.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := f.Offset
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

// PgxQuerier is satisfied by *pgxpool.Pool, *pgx.Conn and pgx.Tx.
type PgxQuerier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type staffRepository struct {
	db PgxQuerier
}

// NewStaffRepository returns a Postgres-backed implementation.
func NewStaffRepository(db PgxQuerier) StaffRepository {
	return &staffRepository{db: db}
}

func (r *staffRepository) Create(ctx context.Context, staff *domain.StaffMember) error {
	const query = `
        INSERT INTO staff_members (id, username, email, password_hash, role, active_flag)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING created_at, updated_at`

	if staff.ID == "" {
		staff.ID = uuid.NewString()
	}
	return r.db.QueryRow(ctx, query,
		staff.ID,
		staff.Username,
		staff.Email,
		staff.PasswordHash,
		staff.Role,
		staff.Active,
	).Scan(&staff.CreatedAt, &staff.UpdatedAt)
}

func (r *staffRepository) GetByUsername(ctx context.Context, username string) (*domain.StaffMember, error) {
	const query = `
        SELECT id, username, email, password_hash, role, active_flag, created_at, updated_at
        FROM staff_members WHERE username=$1`

	var staff domain.StaffMember
	if err := r.db.QueryRow(ctx, query, username).Scan(
		&staff.ID,
		&staff.Username,
		&staff.Email,
		&staff.PasswordHash,
		&staff.Role,
		&staff.Active,
		&staff.CreatedAt,
		&staff.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrStaffNotFound
		}
		return nil, err
	}
	return &staff, nil
}

func (r *staffRepository) List(ctx context.Context, filter StaffFilter) ([]domain.StaffMember, error) {
	query := `
        SELECT id, username, email, password_hash, role, active_flag, created_at, updated_at
        FROM staff_members`
	args := []any{}

	if filter.Role != nil {
		args = append(args, *filter.Role)
		query += fmt.Sprintf(" WHERE role=$%d", len(args))
	}

	limit, offset := filter.window()
	query += fmt.Sprintf(" ORDER BY username LIMIT %d OFFSET %d", limit, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.StaffMember
	for rows.Next() {
		var staff domain.StaffMember
		if err := rows.Scan(
			&staff.ID,
			&staff.Username,
			&staff.Email,
			&staff.PasswordHash,
			&staff.Role,
			&staff.Active,
			&staff.CreatedAt,
			&staff.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, staff)
	}
	return result, rows.Err()
}

func (r *staffRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM staff_members`).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}
