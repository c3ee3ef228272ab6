package newstag

import (
	"log/slog"

	"github.com/newsroomhq/newstag/domain/classify"
	"github.com/newsroomhq/newstag/infrastructure/provider"
	"github.com/newsroomhq/newstag/internal/config"
)

// databaseType identifies the database.
type databaseType int

const (
	databaseUnset databaseType = iota
	databaseSQLite
	databasePostgres
)

// clientConfig holds configuration for Client construction.
// Use newClientConfig() to create with defaults from internal/config.
type clientConfig struct {
	database     databaseType
	dbPath       string
	dbDSN        string
	embedder     classify.Embedder
	logger       *slog.Logger
	apiKeys      []string
	seedTagsPath string
	scheduler    config.SchedulerConfig
}

// newClientConfig creates a clientConfig with defaults from internal/config.
func newClientConfig() *clientConfig {
	return &clientConfig{
		scheduler: config.NewSchedulerConfig(),
	}
}

// Option configures the Client.
type Option func(*clientConfig)

// WithSQLite configures SQLite as the database.
func WithSQLite(path string) Option {
	return func(c *clientConfig) {
		c.database = databaseSQLite
		c.dbPath = path
	}
}

// WithPostgres configures PostgreSQL as the database. The claim primitive
// uses row locks with skip-locked reads on this backend.
func WithPostgres(dsn string) Option {
	return func(c *clientConfig) {
		c.database = databasePostgres
		c.dbDSN = dsn
	}
}

// WithOpenAI sets the OpenAI embeddings API as the embedding provider.
func WithOpenAI(apiKey string) Option {
	return func(c *clientConfig) {
		c.embedder = provider.NewOpenAIEmbedder(provider.OpenAIConfig{
			APIKey:     apiKey,
			Dimensions: config.DefaultEmbedDimensions,
		})
	}
}

// WithOpenAIConfig sets a fully configured OpenAI-compatible embedding
// provider (custom base URL, model, dimensions, cache directory).
func WithOpenAIConfig(cfg provider.OpenAIConfig) Option {
	return func(c *clientConfig) {
		c.embedder = provider.NewOpenAIEmbedder(cfg)
	}
}

// WithEmbedder sets a custom embedding provider.
func WithEmbedder(e classify.Embedder) Option {
	return func(c *clientConfig) {
		c.embedder = e
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *clientConfig) {
		c.logger = logger
	}
}

// WithAPIKeys sets the API keys protecting mutating HTTP endpoints.
func WithAPIKeys(keys []string) Option {
	return func(c *clientConfig) {
		c.apiKeys = keys
	}
}

// WithSeedTags sets a YAML vocabulary file seeded into the catalog at
// startup.
func WithSeedTags(path string) Option {
	return func(c *clientConfig) {
		c.seedTagsPath = path
	}
}

// WithScheduler sets the scheduler configuration.
func WithScheduler(cfg config.SchedulerConfig) Option {
	return func(c *clientConfig) {
		c.scheduler = cfg
	}
}
