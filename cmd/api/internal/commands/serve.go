package commands

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/cuenca-resiliencia/erp-api/internal/api"
	"github.com/cuenca-resiliencia/erp-api/internal/api/handler"
	"github.com/cuenca-resiliencia/erp-api/internal/api/metrics"
	"github.com/cuenca-resiliencia/erp-api/internal/core/ports"
	"github.com/cuenca-resiliencia/erp-api/internal/core/service"
	s3store "github.com/cuenca-resiliencia/erp-api/internal/infrastructure/blob/s3"
	mongostore "github.com/cuenca-resiliencia/erp-api/internal/infrastructure/db/mongo"
	"github.com/cuenca-resiliencia/erp-api/internal/infrastructure/db/postgres"
	redisstore "github.com/cuenca-resiliencia/erp-api/internal/infrastructure/db/redis"
	"github.com/cuenca-resiliencia/erp-api/internal/pkg/config"
	"github.com/cuenca-resiliencia/erp-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

// ServeCmd reads its settings from the environment (see internal/pkg/config).
type ServeCmd struct{}

func (s *ServeCmd) Run(ctx context.Context, globals *Globals) error {
	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Output:  os.Stdout,
		Version: globals.Version,
	})
	log.Info().Str("env", cfg.Env).Msg("starting ERP API")

	pool, err := postgres.NewPool(ctx, &postgres.PoolConfig{ConnString: cfg.Database.URL})
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer pool.Close()
	if cfg.Database.AutoMigrate {
		if err := runMigrations(ctx, pool, log); err != nil {
			return err
		}
	}
	stores := postgres.NewStores(pool, log)
	health := map[string]handler.Pinger{"postgres": stores}

	var (
		cache ports.SummaryCache
		dedup ports.TicketDedup
	)
	rdb, err := redisstore.Connect(ctx, redisstore.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
	if err != nil {
		log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("redis unavailable, running without summary cache and ticket dedup")
	} else {
		defer rdb.Close()
		cache = redisstore.NewSummaryCache(rdb, cfg.Redis.CacheTTL)
		dedup = redisstore.NewTicketDedup(rdb)
		health["redis"] = handler.PingFunc(redisstore.Ready(rdb))
	}

	blobs, closeBlobs, err := openBlobStore(ctx, cfg.Blob, health)
	if err != nil {
		return err
	}
	defer closeBlobs()

	tokens, err := service.NewTokenService(cfg.Auth.SecretKey, cfg.Auth.Algorithm, cfg.Auth.TokenTTL())
	if err != nil {
		return err
	}
	creds := service.NewCredentials(0)
	recorder := metrics.Recorder{}

	e := api.NewRouter(api.Dependencies{
		Log:   log,
		Guard: service.NewAccessGuard(tokens, stores.Users, log),
		Auth:  service.NewAuthService(stores.Users, stores.Organizations, creds, tokens, log),
		Tickets: service.NewTicketService(service.TicketDeps{
			Tickets:  stores.Tickets,
			Projects: stores.Projects,
			Orgs:     stores.Organizations,
			Zones:    stores.Zones,
			Finance:  stores.Finance,
			Cache:    cache,
			Dedup:    dedup,
			Metrics:  recorder,
		}, log),
		Scorecard: service.NewScorecardService(service.ScorecardDeps{
			Objectives:   stores.Objectives,
			Projects:     stores.Projects,
			Finance:      stores.Finance,
			Tickets:      stores.Tickets,
			Measurements: stores.Measurements,
			Cache:        cache,
		}, log),
		Media:    service.NewMediaService(blobs, cfg.Blob.UploadTimeout, log),
		Chatbot:  service.NewChatbotService(stores.Zones, log),
		Uploads:  recorder,
		Health:   health,
		Registry: prometheus.DefaultRegisterer,
		Gatherer: prometheus.DefaultGatherer,
	})

	srv := configureHTTPServer(net.JoinHostPort("", cfg.Port), e)
	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// openBlobStore builds the configured evidence backend and registers its
// readiness check.
func openBlobStore(ctx context.Context, cfg config.BlobConfig, health map[string]handler.Pinger) (ports.BlobStore, func(), error) {
	switch cfg.Backend {
	case "gridfs":
		evidence, err := mongostore.Open(ctx, mongostore.Config{
			URI:           cfg.ConnectionString,
			Database:      cfg.Database,
			Bucket:        cfg.ContainerName,
			PublicBaseURL: cfg.PublicBaseURL,
		})
		if err != nil {
			return nil, nil, err
		}
		health["mongodb"] = evidence
		return evidence, func() { _ = evidence.Close(context.Background()) }, nil
	default:
		store, err := s3store.New(ctx, s3store.Config{
			Bucket:        cfg.ContainerName,
			Region:        cfg.Region,
			Endpoint:      cfg.ConnectionString,
			PublicBaseURL: cfg.PublicBaseURL,
		})
		if err != nil {
			return nil, nil, err
		}
		return store, func() {}, nil
	}
}

func runMigrations(ctx context.Context, pool *pgxpool.Pool, log zerolog.Logger) error {
	if err := postgres.RunMigrations(ctx, pool, log); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}
