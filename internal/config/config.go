// Package config provides application configuration.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Default configuration values.
const (
	DefaultHost            = "0.0.0.0"
	DefaultPort            = 8080
	DefaultLogLevel        = "INFO"
	DefaultWorkerCount     = 1
	DefaultBatchSize       = 10
	DefaultInterval        = time.Minute
	DefaultReclaimTimeout  = 15 * time.Minute
	DefaultEmbedTimeout    = 60 * time.Second
	DefaultEmbedMaxRetries = 5
	DefaultEmbedModel      = "text-embedding-3-small"
	DefaultEmbedDimensions = 384
)

// LogFormat represents the log output format.
type LogFormat string

// LogFormat values.
const (
	LogFormatPretty LogFormat = "pretty"
	LogFormatJSON   LogFormat = "json"
)

// EmbeddingConfig configures the embedding provider endpoint.
type EmbeddingConfig struct {
	baseURL    string
	model      string
	apiKey     string
	dimensions int
	timeout    time.Duration
	maxRetries int
	cacheDir   string
}

// NewEmbeddingConfig creates an EmbeddingConfig with defaults.
func NewEmbeddingConfig() EmbeddingConfig {
	return EmbeddingConfig{
		model:      DefaultEmbedModel,
		dimensions: DefaultEmbedDimensions,
		timeout:    DefaultEmbedTimeout,
		maxRetries: DefaultEmbedMaxRetries,
	}
}

// BaseURL returns the endpoint base URL.
func (e EmbeddingConfig) BaseURL() string { return e.baseURL }

// Model returns the embedding model identifier.
func (e EmbeddingConfig) Model() string { return e.model }

// APIKey returns the API key.
func (e EmbeddingConfig) APIKey() string { return e.apiKey }

// Dimensions returns the requested embedding dimension.
func (e EmbeddingConfig) Dimensions() int { return e.dimensions }

// Timeout returns the request timeout.
func (e EmbeddingConfig) Timeout() time.Duration { return e.timeout }

// MaxRetries returns the maximum retry count.
func (e EmbeddingConfig) MaxRetries() int { return e.maxRetries }

// CacheDir returns the HTTP response cache directory ("" disables caching).
func (e EmbeddingConfig) CacheDir() string { return e.cacheDir }

// IsConfigured returns true when an API key is present.
func (e EmbeddingConfig) IsConfigured() bool { return e.apiKey != "" }

// SchedulerConfig configures the periodic classification scheduler.
type SchedulerConfig struct {
	enabled        bool
	interval       time.Duration
	batchSize      int
	workerCount    int
	reclaimTimeout time.Duration
}

// NewSchedulerConfig creates a SchedulerConfig with defaults.
func NewSchedulerConfig() SchedulerConfig {
	return SchedulerConfig{
		enabled:        true,
		interval:       DefaultInterval,
		batchSize:      DefaultBatchSize,
		workerCount:    DefaultWorkerCount,
		reclaimTimeout: DefaultReclaimTimeout,
	}
}

// Enabled returns whether the scheduler runs.
func (s SchedulerConfig) Enabled() bool { return s.enabled }

// Interval returns the tick interval.
func (s SchedulerConfig) Interval() time.Duration { return s.interval }

// BatchSize returns the claim batch size per tick.
func (s SchedulerConfig) BatchSize() int { return s.batchSize }

// WorkerCount returns the number of concurrent workers per tick.
func (s SchedulerConfig) WorkerCount() int { return s.workerCount }

// ReclaimTimeout returns how long a processing item may sit before the
// sweep resets it to pending.
func (s SchedulerConfig) ReclaimTimeout() time.Duration { return s.reclaimTimeout }

// WithInterval returns a copy with the given tick interval.
func (s SchedulerConfig) WithInterval(d time.Duration) SchedulerConfig {
	s.interval = d
	return s
}

// WithBatchSize returns a copy with the given batch size.
func (s SchedulerConfig) WithBatchSize(n int) SchedulerConfig {
	s.batchSize = n
	return s
}

// WithWorkerCount returns a copy with the given worker count.
func (s SchedulerConfig) WithWorkerCount(n int) SchedulerConfig {
	s.workerCount = n
	return s
}

// WithReclaimTimeout returns a copy with the given reclaim timeout.
func (s SchedulerConfig) WithReclaimTimeout(d time.Duration) SchedulerConfig {
	s.reclaimTimeout = d
	return s
}

// WithEnabled returns a copy with the given enabled state.
func (s SchedulerConfig) WithEnabled(enabled bool) SchedulerConfig {
	s.enabled = enabled
	return s
}

// AppConfig is the normalized application configuration.
type AppConfig struct {
	host         string
	port         int
	dataDir      string
	dbURL        string
	logLevel     string
	logFormat    LogFormat
	apiKeys      []string
	seedTagsPath string
	embedding    EmbeddingConfig
	scheduler    SchedulerConfig
}

// NewAppConfig creates an AppConfig with defaults.
func NewAppConfig() AppConfig {
	return AppConfig{
		host:      DefaultHost,
		port:      DefaultPort,
		dataDir:   DefaultDataDir(),
		logLevel:  DefaultLogLevel,
		logFormat: LogFormatPretty,
		embedding: NewEmbeddingConfig(),
		scheduler: NewSchedulerConfig(),
	}
}

// Host returns the server bind host.
func (c AppConfig) Host() string { return c.host }

// Port returns the server port.
func (c AppConfig) Port() int { return c.port }

// Addr returns "host:port".
func (c AppConfig) Addr() string { return fmt.Sprintf("%s:%d", c.host, c.port) }

// DataDir returns the data directory.
func (c AppConfig) DataDir() string { return c.dataDir }

// DBURL returns the database connection URL. Defaults to a SQLite file
// under the data directory when unset.
func (c AppConfig) DBURL() string {
	if c.dbURL != "" {
		return c.dbURL
	}
	return "sqlite:///" + filepath.Join(c.dataDir, "newstag.db")
}

// LogLevel returns the log level string.
func (c AppConfig) LogLevel() string { return c.logLevel }

// LogFormat returns the log output format.
func (c AppConfig) LogFormat() LogFormat { return c.logFormat }

// APIKeys returns the configured API keys (empty disables write protection).
func (c AppConfig) APIKeys() []string {
	keys := make([]string, len(c.apiKeys))
	copy(keys, c.apiKeys)
	return keys
}

// SeedTagsPath returns the path to the YAML vocabulary seed file, if any.
func (c AppConfig) SeedTagsPath() string { return c.seedTagsPath }

// Embedding returns the embedding provider configuration.
func (c AppConfig) Embedding() EmbeddingConfig { return c.embedding }

// Scheduler returns the scheduler configuration.
func (c AppConfig) Scheduler() SchedulerConfig { return c.scheduler }

// EnsureDataDir creates the data directory if it does not exist.
func (c AppConfig) EnsureDataDir() error {
	return os.MkdirAll(c.dataDir, 0o755)
}

// LogAttrs returns startup log attributes describing the effective config,
// with secrets omitted.
func (c AppConfig) LogAttrs() []slog.Attr {
	return []slog.Attr{
		slog.String("addr", c.Addr()),
		slog.String("db_url", redactURL(c.DBURL())),
		slog.String("log_level", c.logLevel),
		slog.String("embedding_model", c.embedding.Model()),
		slog.Int("embedding_dimensions", c.embedding.Dimensions()),
		slog.Bool("scheduler_enabled", c.scheduler.Enabled()),
		slog.Duration("scheduler_interval", c.scheduler.Interval()),
	}
}

// AppConfigOption mutates an AppConfig.
type AppConfigOption func(*AppConfig)

// WithHost sets the bind host.
func WithHost(host string) AppConfigOption {
	return func(c *AppConfig) { c.host = host }
}

// WithPort sets the port.
func WithPort(port int) AppConfigOption {
	return func(c *AppConfig) { c.port = port }
}

// WithDBURL sets the database URL.
func WithDBURL(url string) AppConfigOption {
	return func(c *AppConfig) { c.dbURL = url }
}

// WithSeedTagsPath sets the vocabulary seed file path.
func WithSeedTagsPath(path string) AppConfigOption {
	return func(c *AppConfig) { c.seedTagsPath = path }
}

// WithSchedulerConfig sets the scheduler configuration.
func WithSchedulerConfig(s SchedulerConfig) AppConfigOption {
	return func(c *AppConfig) { c.scheduler = s }
}

// Apply returns a copy of the config with the given options applied.
func (c AppConfig) Apply(opts ...AppConfigOption) AppConfig {
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// DefaultDataDir returns the default data directory (~/.newstag, falling
// back to ".newstag" when the home directory cannot be determined).
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".newstag"
	}
	return filepath.Join(home, ".newstag")
}

// DefaultLogger returns a plain text slog logger at Info level, used when
// the caller supplies none.
func DefaultLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, nil))
}

// redactURL strips the userinfo portion from a connection URL for logging.
func redactURL(url string) string {
	at := strings.LastIndex(url, "@")
	if at < 0 {
		return url
	}
	scheme := strings.Index(url, "://")
	if scheme < 0 {
		return url
	}
	return url[:scheme+3] + "***" + url[at:]
}
