package config

import (
	"testing"
	"time"
)

func TestLoad_SQLiteDefaults(t *testing.T) {
	t.Setenv("DATABASE_DRIVER", DriverSQLite)
	t.Setenv("SQLITE_PATH", "")
	t.Setenv("AUTH_BCRYPT_COST", "")
	t.Setenv("REDIS_ADDR", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Database.SQLite.Path != "data/support.db" {
		t.Fatalf("unexpected sqlite path: %s", cfg.Database.SQLite.Path)
	}
	if cfg.Auth.BcryptCost != 12 {
		t.Fatalf("unexpected bcrypt cost: %d", cfg.Auth.BcryptCost)
	}
	if cfg.Redis.Addr != "" {
		t.Fatalf("expected redis lock to be disabled by default, got %q", cfg.Redis.Addr)
	}
	if cfg.Init.Timeout() != 30*time.Second {
		t.Fatalf("unexpected init timeout: %s", cfg.Init.Timeout())
	}
}

func TestLoad_PostgresRequiresDSN(t *testing.T) {
	t.Setenv("DATABASE_DRIVER", DriverPostgres)
	t.Setenv("POSTGRES_DSN", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when POSTGRES_DSN is missing")
	}
}

func TestLoad_InvalidRedisDB(t *testing.T) {
	t.Setenv("DATABASE_DRIVER", DriverSQLite)
	t.Setenv("REDIS_DB", "not-a-number")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid REDIS_DB")
	}
}

func TestValidate_UnknownDriver(t *testing.T) {
	cfg := &Config{Database: DatabaseConfig{Driver: "mysql"}}
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected error for unsupported driver")
	}
}

func TestInitConfig_Durations(t *testing.T) {
	cases := []struct {
		name        string
		cfg         InitConfig
		wantTimeout time.Duration
		wantTTL     time.Duration
	}{
		{"explicit", InitConfig{TimeoutSeconds: 5, LockTTLSeconds: 10}, 5 * time.Second, 10 * time.Second},
		{"zero", InitConfig{}, 0, time.Minute},
		{"negative", InitConfig{TimeoutSeconds: -1, LockTTLSeconds: -1}, 0, time.Minute},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.cfg.Timeout(); got != tc.wantTimeout {
				t.Fatalf("Timeout() = %s, want %s", got, tc.wantTimeout)
			}
			if got := tc.cfg.LockTTL(); got != tc.wantTTL {
				t.Fatalf("LockTTL() = %s, want %s", got, tc.wantTTL)
			}
		})
	}
}
