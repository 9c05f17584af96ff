package persistence

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/support-dashboard/internal/config"
)

func TestRedis_NotConfigured(t *testing.T) {
	var r *Redis
	if _, err := r.AcquireLock(context.Background(), "k", time.Second); err == nil {
		t.Fatalf("expected error from unconfigured client")
	}
	if err := r.Ping(context.Background()); err == nil {
		t.Fatalf("expected ping error from unconfigured client")
	}
	r.Close()
}

func TestNewRedis_Unreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if _, err := NewRedis(ctx, config.RedisConfig{Addr: "127.0.0.1:1"}, zap.NewNop()); err == nil {
		t.Fatalf("expected error for unreachable redis")
	}
}
