package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Pinger is anything that can report whether its backend is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// SQLPinger adapts a *sql.DB to Pinger.
type SQLPinger struct {
	DB *sql.DB
}

// Ping implements Pinger.
func (p SQLPinger) Ping(ctx context.Context) error {
	if err := p.DB.PingContext(ctx); err != nil {
		return fmt.Errorf("mariadb: %w", err)
	}
	return nil
}

// RedisPinger adapts a Redis client to Pinger.
type RedisPinger struct {
	Client redis.Cmdable
}

// Ping implements Pinger.
func (p RedisPinger) Ping(ctx context.Context) error {
	if err := p.Client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis: %w", err)
	}
	return nil
}
