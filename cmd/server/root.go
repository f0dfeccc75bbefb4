package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/keyxmakerx/mesto/internal/app"
	"github.com/keyxmakerx/mesto/internal/config"
	"github.com/keyxmakerx/mesto/internal/database"
	"github.com/keyxmakerx/mesto/internal/plugins/auth"
)

// shutdownTimeout is how long in-flight requests get to finish on SIGTERM.
const shutdownTimeout = 10 * time.Second

// NewRootCmd creates the root command. Running it without a subcommand
// applies pending migrations and serves the API.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mesto",
		Short: "Mesto API server",
		Long: `Mesto is the API of a photo-sharing service: registration, login and
user profiles behind bearer-token authentication.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context())
		},
	}

	cmd.AddCommand(NewMigrateCmd())

	return cmd
}

// loadConfig loads configuration and installs the global logger.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.Any("error", err))
		return nil, err
	}
	setupLogging(cfg)
	return cfg, nil
}

func runServe(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	slog.Info("starting Mesto",
		slog.String("env", cfg.Env),
		slog.Int("port", cfg.Port),
	)
	if cfg.Auth.UsingDevSecret {
		slog.Warn("JWT_SECRET not set, signing tokens with the development secret")
	}

	// --- Connect to MariaDB ---
	db, err := database.NewMariaDB(ctx, cfg.Database)
	if err != nil {
		slog.Error("failed to connect to MariaDB", slog.Any("error", err))
		return err
	}
	defer db.Close()
	slog.Info("connected to MariaDB")

	if err := database.RunMigrations(db, cfg.MigrationsPath); err != nil {
		slog.Error("failed to run migrations", slog.Any("error", err))
		return err
	}

	// --- Connect to Redis (optional) ---
	rdb, err := database.NewRedis(ctx, cfg.Redis)
	if err != nil {
		slog.Error("failed to connect to Redis", slog.Any("error", err))
		return err
	}
	if rdb != nil {
		defer rdb.Close()
		slog.Info("connected to Redis")
	} else {
		slog.Info("REDIS_URL not set, rate limiting per process")
	}

	tokens, err := auth.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	if err != nil {
		return fmt.Errorf("creating token service: %w", err)
	}

	// --- Create Application ---
	application := app.New(cfg, db, rdb)
	application.RegisterRoutes(app.Plugins{
		Users:  auth.NewUserRepository(db),
		Hasher: auth.NewBcryptHasher(),
		Tokens: tokens,
	})

	// --- Graceful Shutdown ---
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit

		slog.Info("shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := application.Echo.Shutdown(shutdownCtx); err != nil {
			slog.Error("server forced shutdown", slog.Any("error", err))
		}
	}()

	// --- Start Server ---
	if err := application.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server stopped", slog.Any("error", err))
		return err
	}
	slog.Info("server stopped")
	return nil
}
