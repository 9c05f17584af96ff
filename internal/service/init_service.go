package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/support-dashboard/internal/auth"
	"github.com/spec-kit/support-dashboard/internal/config"
	"github.com/spec-kit/support-dashboard/internal/domain"
	"github.com/spec-kit/support-dashboard/internal/persistence"
	apperrors "github.com/spec-kit/support-dashboard/pkg/util/errorutil"
)

// AdminUsername marks a database as already seeded.
const AdminUsername = "admin"

// SeedAccount describes a default staff account and its initial password.
type SeedAccount struct {
	Username string
	Email    string
	Role     domain.StaffRole
	Password string
}

// DefaultAccounts are inserted on first initialization.
var DefaultAccounts = []SeedAccount{
	{Username: AdminUsername, Email: "admin@support.com", Role: domain.StaffRoleManager, Password: "admin123"},
	{Username: "agent1", Email: "agent1@support.com", Role: domain.StaffRoleAgent, Password: "agent123"},
	{Username: "agent2", Email: "agent2@support.com", Role: domain.StaffRoleAgent, Password: "agent123"},
}

// Locker serializes initialization runs across processes.
type Locker interface {
	AcquireLock(ctx context.Context, key string, ttl time.Duration) (func(context.Context) error, error)
}

// SeedResult reports what a run did.
type SeedResult struct {
	AlreadySeeded bool
	Created       []domain.StaffMember
}

// InitService creates the schema and seeds default staff accounts.
type InitService struct {
	db         persistence.Database
	locker     Locker
	logger     *zap.Logger
	accounts   []SeedAccount
	bcryptCost int
	lockKey    string
	lockTTL    time.Duration
}

// InitDependencies encapsulates collaborators for the init service.
// Locker may be nil, in which case runs are not serialized.
type InitDependencies struct {
	Database persistence.Database
	Locker   Locker
	Logger   *zap.Logger
}

// NewInitService builds the service.
func NewInitService(cfg config.Config, deps InitDependencies) *InitService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InitService{
		db:         deps.Database,
		locker:     deps.Locker,
		logger:     logger,
		accounts:   DefaultAccounts,
		bcryptCost: cfg.Auth.BcryptCost,
		lockKey:    cfg.Init.LockKey,
		lockTTL:    cfg.Init.LockTTL(),
	}
}

// InitDatabase runs Seed and reports success. Failures are logged, never returned.
func (s *InitService) InitDatabase(ctx context.Context) bool {
	result, err := s.Seed(ctx)
	if err != nil {
		s.logger.Error("error initializing database",
			zap.String("code", apperrors.Code(err)),
			zap.Error(err),
		)
		return false
	}

	if result.AlreadySeeded {
		s.logger.Info("default users already exist")
		return true
	}

	s.logger.Info("default support staff created successfully", zap.Int("count", len(result.Created)))
	for _, acct := range s.accounts {
		s.logger.Info("default account",
			zap.String("role", string(acct.Role)),
			zap.String("username", acct.Username),
			zap.String("password", acct.Password),
		)
	}
	s.logger.Warn("IMPORTANT: change these default passwords immediately")
	return true
}

// Seed applies the schema and inserts the default accounts in one transaction.
// A database that already holds the admin account is left untouched.
func (s *InitService) Seed(ctx context.Context) (*SeedResult, error) {
	if s.locker != nil {
		release, err := s.locker.AcquireLock(ctx, s.lockKey, s.lockTTL)
		if err != nil {
			return nil, apperrors.NewLocked("another initialization is running", err)
		}
		defer func() {
			if err := release(context.Background()); err != nil {
				s.logger.Warn("failed to release init lock", zap.Error(err))
			}
		}()
	}

	result := &SeedResult{}
	err := s.db.WithTx(ctx, func(ctx context.Context, scope persistence.Scope) error {
		if err := scope.ApplyMigrations(ctx); err != nil {
			return apperrors.NewSchemaError(err)
		}

		staff := scope.Staff()
		if _, err := staff.GetByUsername(ctx, AdminUsername); err == nil {
			result.AlreadySeeded = true
			return nil
		} else if !errors.Is(err, domain.ErrStaffNotFound) {
			return fmt.Errorf("look up %s: %w", AdminUsername, err)
		}

		members, err := s.buildMembers()
		if err != nil {
			return err
		}
		for i := range members {
			if err := staff.Create(ctx, &members[i]); err != nil {
				if apperrors.IsUniqueViolation(err) {
					return apperrors.NewConflict("staff member already exists",
						map[string]any{"username": members[i].Username}, err)
				}
				return fmt.Errorf("create staff %s: %w", members[i].Username, err)
			}
		}
		result.Created = members
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *InitService) buildMembers() ([]domain.StaffMember, error) {
	members := make([]domain.StaffMember, 0, len(s.accounts))
	for _, acct := range s.accounts {
		if !acct.Role.Valid() {
			return nil, fmt.Errorf("seed account %s: unknown role %q", acct.Username, acct.Role)
		}
		hash, err := auth.HashPassword(acct.Password, s.bcryptCost)
		if err != nil {
			return nil, apperrors.NewInternalError(fmt.Errorf("hash password for %s: %w", acct.Username, err))
		}
		members = append(members, domain.StaffMember{
			Username:     acct.Username,
			Email:        acct.Email,
			PasswordHash: hash,
			Role:         acct.Role,
			Active:       true,
		})
	}
	return members, nil
}
