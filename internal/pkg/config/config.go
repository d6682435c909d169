package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Database DatabaseConfig
	Auth     AuthConfig
	Blob     BlobConfig
	Redis    RedisConfig
}

type DatabaseConfig struct {
	URL         string `env:"DATABASE_URL, required"`
	AutoMigrate bool   `env:"DB_AUTO_MIGRATE, default=true"`
}

type AuthConfig struct {
	SecretKey            string `env:"SECRET_KEY, required"`
	Algorithm            string `env:"ALGORITHM, default=HS256"`
	AccessTokenExpireMin int    `env:"ACCESS_TOKEN_EXPIRE_MINUTES, default=30"`
}

// TokenTTL is the access token lifetime.
func (a AuthConfig) TokenTTL() time.Duration {
	return time.Duration(a.AccessTokenExpireMin) * time.Minute
}

// BlobConfig selects the evidence backend. For s3 the connection string is
// an optional endpoint (MinIO, LocalStack) and AWS is used when it is empty;
// for gridfs it is the MongoDB URI and must be set.
type BlobConfig struct {
	Backend          string        `env:"BLOB_BACKEND, default=s3"`
	ConnectionString string        `env:"BLOB_CONNECTION_STRING"`
	ContainerName    string        `env:"BLOB_CONTAINER_NAME, required"`
	Database         string        `env:"BLOB_DATABASE, default=evidencias"`
	Region           string        `env:"BLOB_REGION, default=us-east-1"`
	PublicBaseURL    string        `env:"BLOB_PUBLIC_BASE_URL"`
	UploadTimeout    time.Duration `env:"BLOB_UPLOAD_TIMEOUT, default=60s"`
}

type RedisConfig struct {
	Addr     string        `env:"REDIS_ADDR, default=localhost:6379"`
	Password string        `env:"REDIS_PASSWORD"`
	DB       int           `env:"REDIS_DB,   default=0"`
	CacheTTL time.Duration `env:"SUMMARY_CACHE_TTL, default=5m"`
}

// IsDevelopment enables the console log writer.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	return LoadWith(ctx, envconfig.OsLookuper())
}

// LoadWith reads configuration through an arbitrary lookuper.
func LoadWith(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, fmt.Errorf("config: failed to load configuration: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Blob.Backend {
	case "s3", "gridfs":
	default:
		return fmt.Errorf("config: BLOB_BACKEND must be s3 or gridfs, got %q", c.Blob.Backend)
	}
	if c.Blob.Backend == "gridfs" && c.Blob.ConnectionString == "" {
		return fmt.Errorf("config: BLOB_CONNECTION_STRING is required for the gridfs backend")
	}
	if c.Auth.AccessTokenExpireMin <= 0 {
		return fmt.Errorf("config: ACCESS_TOKEN_EXPIRE_MINUTES must be positive")
	}
	return nil
}
