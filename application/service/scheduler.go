package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/newsroomhq/newstag/domain/queue"
	"github.com/newsroomhq/newstag/internal/config"
	"golang.org/x/sync/errgroup"
)

// Scheduler drives the classification pipeline: on every tick it reclaims
// stale processing items and runs a pool of workers that each claim and
// process a batch. Overlapping ticks are safe because claim hands out
// disjoint rows.
type Scheduler struct {
	classifier *Classifier
	queue      queue.ItemStore
	logger     *slog.Logger
	cfg        config.SchedulerConfig

	cancel context.CancelFunc
	wg     sync.WaitGroup
	mu     sync.Mutex
}

// NewScheduler creates a new Scheduler from config and dependencies.
func NewScheduler(
	cfg config.SchedulerConfig,
	classifier *Classifier,
	queueStore queue.ItemStore,
	logger *slog.Logger,
) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{
		classifier: classifier,
		queue:      queueStore,
		logger:     logger,
		cfg:        cfg,
	}
}

// Start begins the scheduling loop in a background goroutine.
// If disabled, this is a no-op.
func (s *Scheduler) Start(ctx context.Context) {
	if !s.cfg.Enabled() {
		s.logger.Info("scheduler disabled")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ctx, s.cancel = context.WithCancel(ctx)
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.run(ctx)
	}()

	s.logger.Info("scheduler started",
		slog.Duration("interval", s.cfg.Interval()),
		slog.Int("workers", s.cfg.WorkerCount()),
		slog.Int("batch_size", s.cfg.BatchSize()),
	)
}

// Stop cancels the background goroutine and waits for in-flight work.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	cancel := s.cancel
	s.cancel = nil
	s.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	s.wg.Wait()
	s.logger.Info("scheduler stopped")
}

func (s *Scheduler) run(ctx context.Context) {
	// Process immediately on startup.
	s.tick(ctx)

	ticker := time.NewTicker(s.cfg.Interval())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

// tick runs one scheduling round: the reclaim sweep, then the worker pool.
func (s *Scheduler) tick(ctx context.Context) {
	cutoff := time.Now().Add(-s.cfg.ReclaimTimeout())
	reclaimed, err := s.queue.ReclaimStale(ctx, cutoff)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		s.logger.Error("reclaim sweep failed", slog.String("error", err.Error()))
	} else if reclaimed > 0 {
		s.logger.Warn("reclaimed stale processing items", slog.Int64("count", reclaimed))
	}

	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < s.cfg.WorkerCount(); i++ {
		g.Go(func() error {
			result, err := s.classifier.ProcessBatch(gctx, s.cfg.BatchSize())
			if err != nil {
				return err
			}
			for _, d := range result.Details {
				if d.Status == ItemStatusFailed {
					s.logger.Warn("item failed in scheduled batch",
						slog.String("article_id", d.ArticleID),
						slog.String("error", d.Error),
					)
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil && ctx.Err() == nil {
		s.logger.Error("scheduled batch failed", slog.String("error", err.Error()))
	}
}
