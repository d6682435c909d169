// Package redis holds the Redis-backed summary cache and ticket dedup.
// Neither is on the critical path: callers log and continue on errors.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultDialTimeout = 5 * time.Second
	commandTimeout     = 500 * time.Millisecond
	clientName         = "erp-api"
)

type Config struct {
	Addr     string
	Password string
	DB       int
	// Timeout bounds dialing and the startup ping.
	Timeout time.Duration
}

// options keeps command timeouts short so a slow Redis degrades into cache
// misses instead of slow requests.
func (c Config) options() *redis.Options {
	dial := c.Timeout
	if dial <= 0 {
		dial = defaultDialTimeout
	}
	return &redis.Options{
		Addr:         c.Addr,
		Password:     c.Password,
		DB:           c.DB,
		ClientName:   clientName,
		DialTimeout:  dial,
		ReadTimeout:  commandTimeout,
		WriteTimeout: commandTimeout,
	}
}

// Connect returns a client that answered a ping within the dial timeout.
func Connect(ctx context.Context, cfg Config) (*redis.Client, error) {
	opts := cfg.options()
	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, opts.DialTimeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", cfg.Addr, err)
	}
	return client, nil
}

// Ready reports whether the client still answers, for the readiness probe.
func Ready(client *redis.Client) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		return client.Ping(ctx).Err()
	}
}
