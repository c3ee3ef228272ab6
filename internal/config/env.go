package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// envConfig is the raw environment-variable schema. It is normalized into
// an AppConfig by FromEnv.
type envConfig struct {
	Host      string `envconfig:"HOST" default:"0.0.0.0"`
	Port      int    `envconfig:"PORT" default:"8080"`
	DataDir   string `envconfig:"DATA_DIR"`
	DBURL     string `envconfig:"DB_URL"`
	LogLevel  string `envconfig:"LOG_LEVEL" default:"INFO"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"pretty"`
	APIKeys   string `envconfig:"API_KEYS"`
	SeedTags  string `envconfig:"SEED_TAGS_PATH"`

	EmbeddingBaseURL    string        `envconfig:"EMBEDDING_ENDPOINT_BASE_URL"`
	EmbeddingModel      string        `envconfig:"EMBEDDING_ENDPOINT_MODEL" default:"text-embedding-3-small"`
	EmbeddingAPIKey     string        `envconfig:"EMBEDDING_ENDPOINT_API_KEY"`
	EmbeddingDimensions int           `envconfig:"EMBEDDING_ENDPOINT_DIMENSIONS" default:"384"`
	EmbeddingTimeout    time.Duration `envconfig:"EMBEDDING_ENDPOINT_TIMEOUT" default:"60s"`
	EmbeddingMaxRetries int           `envconfig:"EMBEDDING_ENDPOINT_MAX_RETRIES" default:"5"`
	HTTPCacheDir        string        `envconfig:"HTTP_CACHE_DIR"`

	SchedulerEnabled  bool          `envconfig:"SCHEDULER_ENABLED" default:"true"`
	SchedulerInterval time.Duration `envconfig:"SCHEDULER_INTERVAL" default:"1m"`
	BatchSize         int           `envconfig:"BATCH_SIZE" default:"10"`
	WorkerCount       int           `envconfig:"WORKER_COUNT" default:"1"`
	ReclaimTimeout    time.Duration `envconfig:"RECLAIM_TIMEOUT" default:"15m"`
}

// FromEnv builds an AppConfig from environment variables, loading a .env
// file first when present.
func FromEnv() (AppConfig, error) {
	// Missing .env is fine, the environment alone is enough.
	_ = godotenv.Load()

	var raw envConfig
	if err := envconfig.Process("", &raw); err != nil {
		return AppConfig{}, fmt.Errorf("failed to process environment: %w", err)
	}
	return fromRaw(raw)
}

func fromRaw(raw envConfig) (AppConfig, error) {
	cfg := NewAppConfig()
	cfg.host = raw.Host
	cfg.port = raw.Port
	if raw.DataDir != "" {
		cfg.dataDir = raw.DataDir
	}
	cfg.dbURL = raw.DBURL
	cfg.logLevel = raw.LogLevel
	cfg.seedTagsPath = raw.SeedTags

	switch LogFormat(strings.ToLower(raw.LogFormat)) {
	case LogFormatPretty, LogFormat(""):
		cfg.logFormat = LogFormatPretty
	case LogFormatJSON:
		cfg.logFormat = LogFormatJSON
	default:
		return AppConfig{}, fmt.Errorf("invalid LOG_FORMAT %q", raw.LogFormat)
	}

	cfg.apiKeys = splitKeys(raw.APIKeys)

	cfg.embedding = EmbeddingConfig{
		baseURL:    raw.EmbeddingBaseURL,
		model:      raw.EmbeddingModel,
		apiKey:     raw.EmbeddingAPIKey,
		dimensions: raw.EmbeddingDimensions,
		timeout:    raw.EmbeddingTimeout,
		maxRetries: raw.EmbeddingMaxRetries,
		cacheDir:   raw.HTTPCacheDir,
	}
	if cfg.embedding.dimensions <= 0 {
		return AppConfig{}, fmt.Errorf("invalid EMBEDDING_ENDPOINT_DIMENSIONS %d", raw.EmbeddingDimensions)
	}

	cfg.scheduler = SchedulerConfig{
		enabled:        raw.SchedulerEnabled,
		interval:       raw.SchedulerInterval,
		batchSize:      raw.BatchSize,
		workerCount:    raw.WorkerCount,
		reclaimTimeout: raw.ReclaimTimeout,
	}
	if cfg.scheduler.batchSize <= 0 {
		return AppConfig{}, fmt.Errorf("invalid BATCH_SIZE %d", raw.BatchSize)
	}
	if cfg.scheduler.workerCount <= 0 {
		return AppConfig{}, fmt.Errorf("invalid WORKER_COUNT %d", raw.WorkerCount)
	}

	return cfg, nil
}

func splitKeys(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	keys := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			keys = append(keys, p)
		}
	}
	return keys
}
