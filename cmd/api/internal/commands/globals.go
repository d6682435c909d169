package commands

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/cuenca-resiliencia/erp-api/internal/infrastructure/db/postgres"
	"github.com/cuenca-resiliencia/erp-api/pkg/logger"
)

type Globals struct {
	Version string
}

// DatabaseFlags are shared by commands that only need Postgres.
type DatabaseFlags struct {
	DatabaseURL string `help:"PostgreSQL connection string." env:"DATABASE_URL" required:""`
	LogLevel    string `help:"Log level." env:"LOG_LEVEL" default:"info"`
}

func (f DatabaseFlags) open(ctx context.Context) (*pgxpool.Pool, zerolog.Logger, error) {
	log := logger.Init(logger.Options{Level: f.LogLevel, Pretty: true, Output: os.Stderr})
	pool, err := postgres.NewPool(ctx, &postgres.PoolConfig{ConnString: f.DatabaseURL})
	if err != nil {
		return nil, log, fmt.Errorf("connect database: %w", err)
	}
	return pool, log, nil
}

func configureHTTPServer(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       2 * time.Minute,
		WriteTimeout:      2 * time.Minute,
		IdleTimeout:       2 * time.Minute,
		MaxHeaderBytes:    8 * 1024, // 8KiB
	}
}
