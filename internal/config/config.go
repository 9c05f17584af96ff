package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Supported database drivers.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config aggregates runtime configuration for the initializer.
type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Logger   LoggerConfig
	Auth     AuthConfig
	Init     InitConfig
}

// AppConfig identifies the deployment being initialized.
type AppConfig struct {
	Name string
	Env  string
}

// DatabaseConfig selects the backend and carries its connection values.
type DatabaseConfig struct {
	Driver   string
	Postgres PostgresConfig
	SQLite   SQLiteConfig
}

// PostgresConfig holds DB connection values.
type PostgresConfig struct {
	DSN            string
	MaxConns       int32
	MinConns       int32
	ConnMaxIdleSec int32
	ConnMaxLifeSec int32
}

// SQLiteConfig holds the on-disk database location.
type SQLiteConfig struct {
	Path string
}

// RedisConfig holds Redis connection values. An empty Addr disables the init lock.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level    string
	Encoding string
}

// AuthConfig defines password hashing parameters.
type AuthConfig struct {
	BcryptCost int
}

// InitConfig bounds a single initialization run.
type InitConfig struct {
	TimeoutSeconds int
	LockTTLSeconds int
	LockKey        string
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	cfg := &Config{
		App: AppConfig{
			Name: getEnv("APP_NAME", "support-dashboard"),
			Env:  getEnv("APP_ENV", "development"),
		},
		Database: DatabaseConfig{
			Driver: getEnv("DATABASE_DRIVER", DriverPostgres),
			Postgres: PostgresConfig{
				DSN:            os.Getenv("POSTGRES_DSN"),
				MaxConns:       int32(getEnvAsInt("POSTGRES_MAX_CONNS", 4)),
				MinConns:       int32(getEnvAsInt("POSTGRES_MIN_CONNS", 1)),
				ConnMaxIdleSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_IDLE_SECONDS", 30)),
				ConnMaxLifeSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_LIFE_SECONDS", 300)),
			},
			SQLite: SQLiteConfig{
				Path: getEnv("SQLITE_PATH", "data/support.db"),
			},
		},
		Redis: RedisConfig{
			Addr:     os.Getenv("REDIS_ADDR"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Logger: LoggerConfig{
			Level:    getEnv("LOG_LEVEL", "info"),
			Encoding: getEnv("LOG_ENCODING", "json"),
		},
		Auth: AuthConfig{
			BcryptCost: getEnvAsInt("AUTH_BCRYPT_COST", 12),
		},
		Init: InitConfig{
			TimeoutSeconds: getEnvAsInt("INIT_TIMEOUT_SECONDS", 30),
			LockTTLSeconds: getEnvAsInt("INIT_LOCK_TTL_SECONDS", 60),
			LockKey:        getEnv("INIT_LOCK_KEY", "support-dashboard:init-db"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects configurations the initializer cannot run with.
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case DriverPostgres:
		if c.Database.Postgres.DSN == "" {
			return fmt.Errorf("POSTGRES_DSN is required when DATABASE_DRIVER=%s", DriverPostgres)
		}
	case DriverSQLite:
		if c.Database.SQLite.Path == "" {
			return fmt.Errorf("SQLITE_PATH is required when DATABASE_DRIVER=%s", DriverSQLite)
		}
	default:
		return fmt.Errorf("unsupported DATABASE_DRIVER %q", c.Database.Driver)
	}
	return nil
}

// Timeout returns the deadline for one initialization run.
func (i InitConfig) Timeout() time.Duration {
	if i.TimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(i.TimeoutSeconds) * time.Second
}

// LockTTL returns how long the init lock is held before it expires on its own.
func (i InitConfig) LockTTL() time.Duration {
	if i.LockTTLSeconds <= 0 {
		return time.Minute
	}
	return time.Duration(i.LockTTLSeconds) * time.Second
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}
