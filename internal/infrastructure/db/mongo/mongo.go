// Package mongo hosts the GridFS evidence store.
package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	defaultTimeout  = 10 * time.Second
	defaultDatabase = "evidencias"
	appName         = "erp-api"
)

type Config struct {
	URI           string
	Database      string
	Bucket        string
	PublicBaseURL string
	Timeout       time.Duration
}

// Evidence owns the client behind a GridFSStore.
type Evidence struct {
	*GridFSStore
	client *mongo.Client
}

// Open connects, checks the primary is reachable and opens the evidence
// bucket.
func Open(ctx context.Context, cfg Config) (*Evidence, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("mongo: bucket name is required")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	dbName := cfg.Database
	if dbName == "" {
		dbName = defaultDatabase
	}

	opts := options.Client().
		ApplyURI(cfg.URI).
		SetAppName(appName).
		SetServerSelectionTimeout(timeout)

	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, opts)
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	store, err := NewGridFSStore(client.Database(dbName), cfg.Bucket, cfg.PublicBaseURL)
	if err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	return &Evidence{GridFSStore: store, client: client}, nil
}

// Ping backs the readiness probe.
func (e *Evidence) Ping(ctx context.Context) error {
	return e.client.Ping(ctx, readpref.Primary())
}

func (e *Evidence) Close(ctx context.Context) error {
	return e.client.Disconnect(ctx)
}
