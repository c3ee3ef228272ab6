package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/newsroomhq/newstag"
	"github.com/newsroomhq/newstag/infrastructure/api"
	apimiddleware "github.com/newsroomhq/newstag/infrastructure/api/middleware"
	v1 "github.com/newsroomhq/newstag/infrastructure/api/v1"
	"github.com/newsroomhq/newstag/infrastructure/provider"
	"github.com/newsroomhq/newstag/internal/config"
	"github.com/newsroomhq/newstag/internal/log"
	"github.com/spf13/cobra"
)

func serveCmd() *cobra.Command {
	var (
		host string
		port int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		Long: `Start the HTTP API server.

Configuration is loaded from the environment (and a .env file when
present); command line flags override it.

Environment variables:
  HOST                           Server host to bind to (default: 0.0.0.0)
  PORT                           Server port to listen on (default: 8080)
  DATA_DIR                       Data directory (default: ~/.newstag)
  DB_URL                         Database URL (default: sqlite:///{data_dir}/newstag.db)
  LOG_LEVEL                      Log level: DEBUG, INFO, WARN, ERROR (default: INFO)
  LOG_FORMAT                     Log format: pretty, json (default: pretty)
  API_KEYS                       Comma-separated list of valid API keys
  SEED_TAGS_PATH                 YAML vocabulary file seeded at startup

  EMBEDDING_ENDPOINT_*           Embedding service configuration
    BASE_URL                     Base URL (e.g., https://api.openai.com/v1)
    MODEL                        Model identifier (default: text-embedding-3-small)
    API_KEY                      API key for authentication
    DIMENSIONS                   Embedding dimension (default: 384)
    TIMEOUT                      Request timeout (default: 60s)
    MAX_RETRIES                  Retry attempts (default: 5)
  HTTP_CACHE_DIR                 Cache embedding responses on disk

  SCHEDULER_ENABLED              Enable the classification scheduler (default: true)
  SCHEDULER_INTERVAL             Tick interval (default: 1m)
  BATCH_SIZE                     Items claimed per worker per tick (default: 10)
  WORKER_COUNT                   Concurrent workers per tick (default: 1)
  RECLAIM_TIMEOUT                Stale processing reclaim cutoff (default: 15m)`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(host, port)
		},
	}

	cmd.Flags().StringVar(&host, "host", "", "Server host to bind to (default: 0.0.0.0)")
	cmd.Flags().IntVar(&port, "port", 0, "Server port to listen on (default: 8080)")

	return cmd
}

func runServe(host string, port int) error {
	cfg, err := config.FromEnv()
	if err != nil {
		return err
	}

	var overrides []config.AppConfigOption
	if host != "" {
		overrides = append(overrides, config.WithHost(host))
	}
	if port != 0 {
		overrides = append(overrides, config.WithPort(port))
	}
	cfg = cfg.Apply(overrides...)

	if err := cfg.EnsureDataDir(); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}

	slogger := log.Configure(cfg)

	attrs := append([]slog.Attr{slog.String("version", version)}, cfg.LogAttrs()...)
	slogger.LogAttrs(context.Background(), slog.LevelInfo, "starting newstag", attrs...)

	client, err := buildClient(cfg, slogger)
	if err != nil {
		return fmt.Errorf("create newstag client: %w", err)
	}
	defer func() {
		if err := client.Close(); err != nil {
			slogger.Error("failed to close newstag client", slog.Any("error", err))
		}
	}()

	server := api.NewServer(cfg.Addr(), slogger)
	v1.Mount(server.Router(), v1.Deps{
		Articles:    client.Articles,
		Classifier:  client.Classifier,
		Vocabulary:  client.Vocabulary,
		Queue:       client.Queue(),
		Assignments: client.Assignments(),
		Logger:      slogger,
	}, apimiddleware.NewAuthConfigWithKeys(cfg.APIKeys()))

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		slogger.Info("shutting down server")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			slogger.Error("shutdown error", slog.Any("error", err))
		}
	}()

	if err := server.Start(); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// buildClient translates an AppConfig into client options.
func buildClient(cfg config.AppConfig, slogger *slog.Logger) (*newstag.Client, error) {
	opts := []newstag.Option{
		newstag.WithLogger(slogger),
		newstag.WithScheduler(cfg.Scheduler()),
	}

	dbURL := cfg.DBURL()
	if strings.HasPrefix(dbURL, "sqlite:///") {
		opts = append(opts, newstag.WithSQLite(strings.TrimPrefix(dbURL, "sqlite:///")))
	} else {
		opts = append(opts, newstag.WithPostgres(dbURL))
	}

	emb := cfg.Embedding()
	if !emb.IsConfigured() {
		return nil, fmt.Errorf("EMBEDDING_ENDPOINT_API_KEY is required")
	}
	opts = append(opts, newstag.WithOpenAIConfig(provider.OpenAIConfig{
		APIKey:     emb.APIKey(),
		BaseURL:    emb.BaseURL(),
		Model:      emb.Model(),
		Dimensions: emb.Dimensions(),
		Timeout:    emb.Timeout(),
		MaxRetries: emb.MaxRetries(),
		CacheDir:   emb.CacheDir(),
	}))

	if keys := cfg.APIKeys(); len(keys) > 0 {
		opts = append(opts, newstag.WithAPIKeys(keys))
	}
	if cfg.SeedTagsPath() != "" {
		opts = append(opts, newstag.WithSeedTags(cfg.SeedTagsPath()))
	}

	return newstag.New(opts...)
}
