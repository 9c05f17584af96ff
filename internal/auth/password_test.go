package auth

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHashPassword_RoundTrip(t *testing.T) {
	hash, err := HashPassword("agent123", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("HashPassword returned error: %v", err)
	}
	if hash == "agent123" {
		t.Fatalf("expected password to be hashed")
	}
	if err := ComparePassword(hash, "agent123"); err != nil {
		t.Fatalf("ComparePassword rejected correct password: %v", err)
	}
	if err := ComparePassword(hash, "wrong"); err == nil {
		t.Fatalf("ComparePassword accepted wrong password")
	}
}

func TestHashPassword_OutOfRangeCostFallsBack(t *testing.T) {
	hash, err := HashPassword("admin123", 99)
	if err != nil {
		t.Fatalf("HashPassword returned error: %v", err)
	}
	cost, err := bcrypt.Cost([]byte(hash))
	if err != nil {
		t.Fatalf("bcrypt.Cost returned error: %v", err)
	}
	if cost != bcrypt.DefaultCost {
		t.Fatalf("expected default cost %d, got %d", bcrypt.DefaultCost, cost)
	}
}
