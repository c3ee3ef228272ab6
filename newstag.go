// Package newstag provides an asynchronous article auto-tagging pipeline.
//
// Articles are classified by embedding their text and ranking a catalog of
// pre-embedded tags by L2 distance. Ingestion and classification are
// decoupled by a durable work queue with atomic claim semantics, so any
// number of workers can process concurrently without double-handling items.
//
// Basic usage:
//
//	client, err := newstag.New(
//	    newstag.WithSQLite(".newstag/newstag.db"),
//	    newstag.WithOpenAI(os.Getenv("OPENAI_API_KEY")),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	// Ingest an article; it is enqueued for classification.
//	a, err := client.Articles.Create(ctx, article.New("a1", "Typhoon hits Luzon", "", body))
//
//	// Or classify immediately, without applying assignments (dry run).
//	suggestions, err := client.Classifier.ClassifyArticle(ctx, "a1", false)
package newstag

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/newsroomhq/newstag/application/service"
	"github.com/newsroomhq/newstag/domain/classify"
	"github.com/newsroomhq/newstag/domain/queue"
	"github.com/newsroomhq/newstag/domain/tag"
	"github.com/newsroomhq/newstag/infrastructure/persistence"
	"github.com/newsroomhq/newstag/internal/config"
	"github.com/newsroomhq/newstag/internal/database"
)

// Construction errors.
var (
	ErrNoDatabase = errors.New("newstag: no database configured")
	ErrNoEmbedder = errors.New("newstag: no embedding provider configured")
)

// Client is the main entry point for the newstag library. The scheduler
// starts automatically on creation unless disabled in its config.
type Client struct {
	Articles   *service.Articles
	Classifier *service.Classifier
	Vocabulary *service.Vocabulary
	Scheduler  *service.Scheduler

	db          database.Database
	queueStore  persistence.QueueItemStore
	tagStore    persistence.TagStore
	assignments persistence.AssignmentStore
	records     persistence.RecordStore

	logger  *slog.Logger
	apiKeys []string
	closed  atomic.Bool
	mu      sync.Mutex
}

// New creates a new Client with the given options.
func New(opts ...Option) (*Client, error) {
	cfg := newClientConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.database == databaseUnset {
		return nil, ErrNoDatabase
	}
	if cfg.embedder == nil {
		return nil, ErrNoEmbedder
	}

	logger := cfg.logger
	if logger == nil {
		logger = config.DefaultLogger()
	}

	ctx := context.Background()
	dbURL, err := buildDatabaseURL(cfg)
	if err != nil {
		return nil, err
	}

	db, err := database.NewDatabase(ctx, dbURL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := persistence.AutoMigrate(db); err != nil {
		errClose := db.Close()
		return nil, errors.Join(fmt.Errorf("auto migrate: %w", err), errClose)
	}

	articleStore := persistence.NewArticleStore(db)
	tagStore := persistence.NewTagStore(db)
	queueStore := persistence.NewQueueItemStore(db)
	recordStore := persistence.NewRecordStore(db)
	assignmentStore := persistence.NewAssignmentStore(db)

	articles := service.NewArticles(articleStore, queueStore, logger)
	classifier := service.NewClassifier(
		articleStore, tagStore, queueStore, recordStore, assignmentStore, cfg.embedder, logger,
	)
	vocabulary := service.NewVocabulary(tagStore, cfg.embedder, logger)
	scheduler := service.NewScheduler(cfg.scheduler, classifier, queueStore, logger)

	c := &Client{
		Articles:    articles,
		Classifier:  classifier,
		Vocabulary:  vocabulary,
		Scheduler:   scheduler,
		db:          db,
		queueStore:  queueStore,
		tagStore:    tagStore,
		assignments: assignmentStore,
		records:     recordStore,
		logger:      logger,
		apiKeys:     cfg.apiKeys,
	}

	if cfg.seedTagsPath != "" {
		seeded, err := vocabulary.SeedFromFile(ctx, cfg.seedTagsPath)
		if err != nil {
			errClose := db.Close()
			return nil, errors.Join(fmt.Errorf("seed vocabulary: %w", err), errClose)
		}
		logger.Info("vocabulary seeded", slog.Int("tags", seeded), slog.String("path", cfg.seedTagsPath))
	}

	scheduler.Start(ctx)

	return c, nil
}

// buildDatabaseURL translates the configured database into a connection URL.
func buildDatabaseURL(cfg *clientConfig) (string, error) {
	switch cfg.database {
	case databaseSQLite:
		return "sqlite:///" + cfg.dbPath, nil
	case databasePostgres:
		return cfg.dbDSN, nil
	default:
		return "", ErrNoDatabase
	}
}

// Queue returns the queue item store for direct inspection.
func (c *Client) Queue() queue.ItemStore {
	return c.queueStore
}

// Tags returns the tag catalog store.
func (c *Client) Tags() tag.Store {
	return c.tagStore
}

// Assignments returns the assignment store.
func (c *Client) Assignments() classify.AssignmentStore {
	return c.assignments
}

// Records returns the classification audit store.
func (c *Client) Records() classify.RecordStore {
	return c.records
}

// Logger returns the client's logger.
func (c *Client) Logger() *slog.Logger {
	return c.logger
}

// APIKeys returns the configured API keys.
func (c *Client) APIKeys() []string {
	return c.apiKeys
}

// Close stops the scheduler and releases the database connection.
// Subsequent calls are no-ops.
func (c *Client) Close() error {
	if !c.closed.CompareAndSwap(false, true) {
		return service.ErrClientClosed
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.Scheduler.Stop()
	return c.db.Close()
}
