package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const dedupTTL = 24 * time.Hour

// TicketDedup implements ports.TicketDedup backed by Redis.
// Key format: ticket:idem:<reporter_id>:<idempotency_key>
type TicketDedup struct {
	client *redis.Client
	ttl    time.Duration
}

// NewTicketDedup creates a TicketDedup wrapping the given Redis client.
func NewTicketDedup(client *redis.Client) *TicketDedup {
	return &TicketDedup{client: client, ttl: dedupTTL}
}

// Lookup returns the ticket created by an earlier submission with the same key.
func (d *TicketDedup) Lookup(ctx context.Context, reporterID, key string) (int64, bool, error) {
	id, err := d.client.Get(ctx, dedupKey(reporterID, key)).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("dedup lookup: %w", err)
	}
	return id, true, nil
}

// Remember records the ticket for this key. The first writer wins.
func (d *TicketDedup) Remember(ctx context.Context, reporterID, key string, ticketID int64) error {
	if err := d.client.SetNX(ctx, dedupKey(reporterID, key), ticketID, d.ttl).Err(); err != nil {
		return fmt.Errorf("dedup remember: %w", err)
	}
	return nil
}

// Replace points the key at ticketID and restarts its TTL.
func (d *TicketDedup) Replace(ctx context.Context, reporterID, key string, ticketID int64) error {
	if err := d.client.Set(ctx, dedupKey(reporterID, key), ticketID, d.ttl).Err(); err != nil {
		return fmt.Errorf("dedup replace: %w", err)
	}
	return nil
}

func dedupKey(reporterID, key string) string {
	return fmt.Sprintf("ticket:idem:%s:%s", reporterID, key)
}
