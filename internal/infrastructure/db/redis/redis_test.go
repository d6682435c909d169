package redis

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeys(t *testing.T) {
	assert.Equal(t, "ticket:idem:device-1:abc", dedupKey("device-1", "abc"))
	assert.Equal(t, "finance:summary:42", summaryKey(42))
}

func TestNewSummaryCache_DefaultTTL(t *testing.T) {
	c := NewSummaryCache(nil, 0)
	assert.Equal(t, defaultSummaryTTL, c.ttl)

	c = NewSummaryCache(nil, time.Minute)
	assert.Equal(t, time.Minute, c.ttl)
}

func TestConnect_Unreachable(t *testing.T) {
	_, err := Connect(context.Background(), Config{Addr: "127.0.0.1:1", Timeout: 200 * time.Millisecond})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "redis ping")
}

func TestConfig_Options(t *testing.T) {
	opts := Config{Addr: "cache:6379", DB: 2}.options()
	assert.Equal(t, "cache:6379", opts.Addr)
	assert.Equal(t, 2, opts.DB)
	assert.Equal(t, clientName, opts.ClientName)
	assert.Equal(t, defaultDialTimeout, opts.DialTimeout)
	assert.Equal(t, commandTimeout, opts.ReadTimeout)

	opts = Config{Timeout: time.Second}.options()
	assert.Equal(t, time.Second, opts.DialTimeout)
}

func TestSummaryCache_ErrorsWrapped(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", DialTimeout: 100 * time.Millisecond, MaxRetries: -1})
	defer client.Close()

	c := NewSummaryCache(client, time.Minute)
	_, found, err := c.Get(context.Background(), 1)
	require.Error(t, err)
	assert.False(t, found)
	assert.Contains(t, err.Error(), "summary cache get")

	d := NewTicketDedup(client)
	_, found, err = d.Lookup(context.Background(), "r", "k")
	require.Error(t, err)
	assert.False(t, found)
}
