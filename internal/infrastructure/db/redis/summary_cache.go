package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/cuenca-resiliencia/erp-api/internal/core/domain"
)

const defaultSummaryTTL = 5 * time.Minute

// SummaryCache implements ports.SummaryCache. Entries are JSON encoded and
// expire after ttl even when no write invalidates them.
// Key format: finance:summary:<org_id>
type SummaryCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewSummaryCache(client *redis.Client, ttl time.Duration) *SummaryCache {
	if ttl <= 0 {
		ttl = defaultSummaryTTL
	}
	return &SummaryCache{client: client, ttl: ttl}
}

func (c *SummaryCache) Get(ctx context.Context, orgID int64) (*domain.FinancialSummary, bool, error) {
	raw, err := c.client.Get(ctx, summaryKey(orgID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("summary cache get: %w", err)
	}
	var s domain.FinancialSummary
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, false, fmt.Errorf("summary cache decode: %w", err)
	}
	return &s, true, nil
}

func (c *SummaryCache) Set(ctx context.Context, orgID int64, s domain.FinancialSummary) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("summary cache encode: %w", err)
	}
	if err := c.client.Set(ctx, summaryKey(orgID), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("summary cache set: %w", err)
	}
	return nil
}

func (c *SummaryCache) Invalidate(ctx context.Context, orgID int64) error {
	if err := c.client.Del(ctx, summaryKey(orgID)).Err(); err != nil {
		return fmt.Errorf("summary cache invalidate: %w", err)
	}
	return nil
}

func summaryKey(orgID int64) string {
	return fmt.Sprintf("finance:summary:%d", orgID)
}
