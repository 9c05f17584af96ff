package domain

import (
	"errors"
	"time"
)

// StaffRole enumerates support dashboard operator roles.
type StaffRole string

const (
	StaffRoleManager StaffRole = "manager"
	StaffRoleAgent   StaffRole = "agent"
)

// ErrStaffNotFound is returned when a staff lookup matches no record.
var ErrStaffNotFound = errors.New("staff member not found")

// Valid reports whether r is a known role.
func (r StaffRole) Valid() bool {
	switch r {
	case StaffRoleManager, StaffRoleAgent:
		return true
	}
	return false
}

// StaffMember models a support agent or manager account.
type StaffMember struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	Role         StaffRole
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
