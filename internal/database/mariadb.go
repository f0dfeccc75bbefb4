// Package database provides connection setup for MariaDB and Redis.
// Both connections are created once at startup and shared across the
// application via dependency injection. This package owns the connection
// lifecycle (open, configure pool, ping, close).
package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/sethvargo/go-retry"

	// MariaDB driver -- imported for side effect of registering the driver.
	_ "github.com/go-sql-driver/mysql"

	"github.com/keyxmakerx/mesto/internal/config"
)

// Connection retry schedule for a database that is still starting.
const (
	maxPingAttempts = 10
	maxPingBackoff  = 30 * time.Second
	pingTimeout     = 5 * time.Second
)

// NewMariaDB opens a MariaDB pool configured from cfg and waits for the
// server to answer a ping. ctx bounds the whole wait, so SIGINT during a
// cold start aborts cleanly.
func NewMariaDB(ctx context.Context, cfg config.DatabaseConfig) (*sql.DB, error) {
	db, err := sql.Open("mysql", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("opening mariadb connection: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := pingWithBackoff(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// pingWithBackoff retries PingContext with capped exponential backoff.
func pingWithBackoff(ctx context.Context, db *sql.DB) error {
	backoff := retry.NewExponential(time.Second)
	backoff = retry.WithCappedDuration(maxPingBackoff, backoff)
	backoff = retry.WithMaxRetries(maxPingAttempts-1, backoff)

	attempt := 0
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++
		pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
		defer cancel()

		if err := db.PingContext(pingCtx); err != nil {
			slog.Warn("mariadb not ready",
				slog.Int("attempt", attempt),
				slog.Any("error", err),
			)
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("pinging mariadb after %d attempts: %w", attempt, err)
	}
	return nil
}
