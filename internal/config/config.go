package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Config holds all environmentally dependent settings for the CineGraph API.
// Callers own the handle; there is no package-level instance.
type Config struct {
	HTTPPort int    `env:"CINE_PORT" envDefault:"8080"`
	LogLevel string `env:"CINE_LOG_LEVEL" envDefault:"info"`

	// Neo4j Graph DB
	Neo4jURI      string `env:"CINE_NEO4J_URI" envDefault:"neo4j://localhost:7687"`
	Neo4jUser     string `env:"CINE_NEO4J_USER" envDefault:"neo4j"`
	Neo4jPassword string `env:"CINE_NEO4J_PASSWORD" envDefault:"cinegraph_dev"`

	// Per-request deadline for graph queries
	RequestTimeout time.Duration `env:"CINE_REQUEST_TIMEOUT" envDefault:"15s"`

	// Recommendation policy
	DefaultLimit int `env:"CINE_DEFAULT_LIMIT" envDefault:"5"`
	GenreWeight  int `env:"CINE_GENRE_WEIGHT" envDefault:"2"`
	CastWeight   int `env:"CINE_CAST_WEIGHT" envDefault:"3"`

	// Circuit breaker around the graph store
	BreakerThreshold int           `env:"CINE_BREAKER_THRESHOLD" envDefault:"5"`
	BreakerCooldown  time.Duration `env:"CINE_BREAKER_COOLDOWN" envDefault:"30s"`

	// Import ledger (SQLite)
	LedgerDSN string `env:"CINE_LEDGER_DSN" envDefault:"file:cinegraph.db"`

	SeedBatchSize int `env:"CINE_SEED_BATCH_SIZE" envDefault:"100"`

	// Catalog feed
	FeedURL      string `env:"CINE_FEED_URL"`
	FeedUsername string `env:"CINE_FEED_USERNAME"`
	FeedPassword string `env:"CINE_FEED_PASSWORD"`

	ImportSinceTimestamp int64 `env:"CINE_IMPORT_SINCE_TIMESTAMP" envDefault:"0"`
	ImportConcurrency    int   `env:"CINE_IMPORT_CONCURRENCY" envDefault:"4"`
	ImportBatchSize      int   `env:"CINE_IMPORT_BATCH_SIZE" envDefault:"0"`
}

// Validate ensures that all required configuration is present and valid.
func (c *Config) Validate() error {
	if c.HTTPPort <= 0 || c.HTTPPort > 65535 {
		return fmt.Errorf("CINE_PORT must be between 1 and 65535")
	}

	if c.Neo4jURI == "" {
		return fmt.Errorf("CINE_NEO4J_URI is required")
	}

	if c.RequestTimeout <= 0 {
		return fmt.Errorf("CINE_REQUEST_TIMEOUT must be positive")
	}

	if c.DefaultLimit < 1 {
		return fmt.Errorf("CINE_DEFAULT_LIMIT must be at least 1")
	}

	if c.GenreWeight < 0 || c.CastWeight < 0 {
		return fmt.Errorf("CINE_GENRE_WEIGHT and CINE_CAST_WEIGHT cannot be negative")
	}

	if c.ImportConcurrency < 1 {
		return fmt.Errorf("CINE_IMPORT_CONCURRENCY must be at least 1")
	}

	if c.ImportBatchSize < 0 {
		return fmt.Errorf("CINE_IMPORT_BATCH_SIZE cannot be negative")
	}

	if c.ImportSinceTimestamp < 0 {
		return fmt.Errorf("CINE_IMPORT_SINCE_TIMESTAMP cannot be negative")
	}

	return nil
}

// Load reads settings from the environment, consulting a .env file when
// present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}
