// Command initdb creates the support dashboard tables and seeds the default
// staff accounts. Run it once after deploying; re-running is harmless.
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/spec-kit/support-dashboard/internal/config"
	"github.com/spec-kit/support-dashboard/internal/observability"
	"github.com/spec-kit/support-dashboard/internal/persistence"
	"github.com/spec-kit/support-dashboard/internal/service"
)

const (
	successMessage = "You can now start the support dashboard!"
	failureMessage = "Failed to initialize support database."
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Printf("failed to load config: %v", err)
		fmt.Fprintln(os.Stdout, "\n"+failureMessage)
		os.Exit(1)
	}

	logger, err := observability.NewLogger(cfg.Logger, cfg.App)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, cfg, logger, os.Stdout)
	stop()
	_ = logger.Sync()
	os.Exit(code)
}

// run initializes the database and prints the final status line. It returns the process exit code.
func run(ctx context.Context, cfg *config.Config, logger *zap.Logger, out io.Writer) int {
	if initDatabase(ctx, cfg, logger) {
		fmt.Fprintln(out, "\n"+successMessage)
		return 0
	}
	fmt.Fprintln(out, "\n"+failureMessage)
	return 1
}

func initDatabase(ctx context.Context, cfg *config.Config, logger *zap.Logger) bool {
	if timeout := cfg.Init.Timeout(); timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	db, err := persistence.Open(ctx, cfg.Database, logger)
	if err != nil {
		logger.Error("failed to connect database", zap.String("driver", cfg.Database.Driver), zap.Error(err))
		return false
	}
	defer db.Close()

	deps := service.InitDependencies{Database: db, Logger: logger}
	if cfg.Redis.Addr != "" {
		redis, err := persistence.NewRedis(ctx, cfg.Redis, logger)
		if err != nil {
			logger.Error("failed to connect redis", zap.Error(err))
			return false
		}
		defer redis.Close()
		deps.Locker = redis
	}

	return service.NewInitService(*cfg, deps).InitDatabase(ctx)
}
