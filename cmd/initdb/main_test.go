package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/support-dashboard/internal/config"
)

func sqliteConfig(path string) *config.Config {
	return &config.Config{
		Database: config.DatabaseConfig{
			Driver: config.DriverSQLite,
			SQLite: config.SQLiteConfig{Path: path},
		},
		Auth: config.AuthConfig{BcryptCost: bcrypt.MinCost},
		Init: config.InitConfig{TimeoutSeconds: 30, LockKey: "test:init-db"},
	}
}

func TestRun_SuccessExitsZero(t *testing.T) {
	cfg := sqliteConfig(filepath.Join(t.TempDir(), "support.db"))

	for i := 0; i < 2; i++ {
		var out bytes.Buffer
		if code := run(context.Background(), cfg, zap.NewNop(), &out); code != 0 {
			t.Fatalf("run %d: exit code = %d, want 0", i+1, code)
		}
		if !strings.Contains(out.String(), successMessage) {
			t.Fatalf("run %d: unexpected output %q", i+1, out.String())
		}
	}
}

func TestRun_FailureExitsOne(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "not-a-dir")
	if err := os.WriteFile(blocker, []byte("x"), 0o600); err != nil {
		t.Fatalf("write blocker: %v", err)
	}
	cfg := sqliteConfig(filepath.Join(blocker, "support.db"))

	var out bytes.Buffer
	if code := run(context.Background(), cfg, zap.NewNop(), &out); code != 1 {
		t.Fatalf("exit code = %d, want 1", code)
	}
	if !strings.Contains(out.String(), failureMessage) {
		t.Fatalf("unexpected output %q", out.String())
	}
}

func TestRun_CancelledContextFails(t *testing.T) {
	cfg := sqliteConfig(filepath.Join(t.TempDir(), "support.db"))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	if code := run(ctx, cfg, zap.NewNop(), &out); code != 1 {
		t.Fatalf("exit code = %d, want 1", code)
	}
}
