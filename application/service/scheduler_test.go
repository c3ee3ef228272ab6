package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/newsroomhq/newstag/application/service"
	"github.com/newsroomhq/newstag/domain/queue"
	"github.com/newsroomhq/newstag/internal/config"
)

func TestScheduler_ProcessesPendingItems(t *testing.T) {
	ctx := context.Background()
	f := newClassifierFixture(t, fixedEmbedder([]float64{1, 0}))
	f.seedTag(t, "weather", []float64{1, 0})
	f.addArticle(t, "a1", "Title", "Body.")
	f.enqueue(t, "a1")

	cfg := config.NewSchedulerConfig().
		WithInterval(10 * time.Millisecond).
		WithWorkerCount(2)
	sched := service.NewScheduler(cfg, f.classifier, f.queue, nil)
	sched.Start(ctx)
	defer sched.Stop()

	require.Eventually(t, func() bool {
		n, err := f.queue.Count(ctx, queue.WithStatus(queue.StatusCompleted))
		return err == nil && n == 1
	}, 2*time.Second, 10*time.Millisecond)
}

func TestScheduler_ReclaimsStaleItems(t *testing.T) {
	ctx := context.Background()
	f := newClassifierFixture(t, fixedEmbedder([]float64{1, 0}))
	f.seedTag(t, "weather", []float64{1, 0})
	f.addArticle(t, "a1", "Title", "Body.")
	f.enqueue(t, "a1")

	// Simulate a crashed worker by claiming and never finishing.
	claimed, err := f.queue.Claim(ctx, 1)
	require.NoError(t, err)
	require.Len(t, claimed, 1)

	cfg := config.NewSchedulerConfig().
		WithInterval(10 * time.Millisecond).
		WithReclaimTimeout(-time.Second)
	sched := service.NewScheduler(cfg, f.classifier, f.queue, nil)
	sched.Start(ctx)
	defer sched.Stop()

	require.Eventually(t, func() bool {
		n, err := f.queue.Count(ctx, queue.WithStatus(queue.StatusCompleted))
		return err == nil && n == 1
	}, 2*time.Second, 10*time.Millisecond)
}

func TestScheduler_DisabledDoesNothing(t *testing.T) {
	ctx := context.Background()
	f := newClassifierFixture(t, fixedEmbedder([]float64{1, 0}))
	f.enqueue(t, "a1")

	cfg := config.NewSchedulerConfig().
		WithEnabled(false).
		WithInterval(10 * time.Millisecond)
	sched := service.NewScheduler(cfg, f.classifier, f.queue, nil)
	sched.Start(ctx)
	defer sched.Stop()

	time.Sleep(50 * time.Millisecond)
	n, err := f.queue.Count(ctx, queue.WithStatus(queue.StatusPending))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestScheduler_StopIsIdempotent(t *testing.T) {
	f := newClassifierFixture(t, fixedEmbedder([]float64{1, 0}))

	cfg := config.NewSchedulerConfig().WithInterval(10 * time.Millisecond)
	sched := service.NewScheduler(cfg, f.classifier, f.queue, nil)
	sched.Start(context.Background())
	sched.Stop()
	sched.Stop()
}
