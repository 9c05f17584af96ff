package errorutil

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestIsUniqueViolation(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"postgres unique", &pgconn.PgError{Code: "23505"}, true},
		{"postgres wrapped", fmt.Errorf("create staff: %w", &pgconn.PgError{Code: "23505"}), true},
		{"postgres other", &pgconn.PgError{Code: "23503"}, false},
		{"sqlite unique", errors.New("constraint failed: UNIQUE constraint failed: staff_members.username (2067)"), true},
		{"plain", errors.New("boom"), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsUniqueViolation(tc.err); got != tc.want {
				t.Fatalf("IsUniqueViolation(%v) = %v, want %v", tc.err, got, tc.want)
			}
		})
	}
}

func TestToDomainError_PreservesExisting(t *testing.T) {
	inner := errors.New("dial tcp: refused")
	err := fmt.Errorf("init: %w", NewSchemaError(inner))

	de := ToDomainError(err)
	if de.Code != CodeSchemaFailed {
		t.Fatalf("unexpected code: %s", de.Code)
	}
	if !errors.Is(err, inner) {
		t.Fatalf("expected wrapped error to unwrap to inner cause")
	}
}

func TestCode(t *testing.T) {
	if got := Code(nil); got != "" {
		t.Fatalf("Code(nil) = %q, want empty", got)
	}
	if got := Code(&pgconn.PgError{Code: "23505"}); got != CodeConflict {
		t.Fatalf("Code(unique) = %q, want %q", got, CodeConflict)
	}
	if got := Code(NewLocked("busy", nil)); got != CodeLocked {
		t.Fatalf("Code(locked) = %q, want %q", got, CodeLocked)
	}
	if got := Code(errors.New("boom")); got != CodeInternal {
		t.Fatalf("Code(plain) = %q, want %q", got, CodeInternal)
	}
}

func TestDomainError_Error(t *testing.T) {
	err := NewConflict("duplicate username", map[string]any{"username": "admin"}, errors.New("unique"))
	if err.Error() != "duplicate username: unique" {
		t.Fatalf("unexpected message: %s", err.Error())
	}
	if NewLocked("busy", nil).Error() != "busy" {
		t.Fatalf("expected bare message without cause")
	}
}
