package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/newsroomhq/newstag/internal/config"
	"github.com/newsroomhq/newstag/internal/log"
	"github.com/spf13/cobra"
)

func backfillCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "backfill",
		Short: "Embed vocabulary tags that lack a vector",
		Long: `Embed vocabulary tags that lack a vector.

Only tags with a null embedding are touched, so the command is safe to
re-run at any time. Configuration comes from the same environment
variables as serve; the scheduler is not started.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBackfill()
		},
	}
}

func runBackfill() error {
	cfg, err := config.FromEnv()
	if err != nil {
		return err
	}
	// One-off maintenance run, no background processing wanted.
	cfg = cfg.Apply(config.WithSchedulerConfig(cfg.Scheduler().WithEnabled(false)))

	slogger := log.Configure(cfg)

	client, err := buildClient(cfg, slogger)
	if err != nil {
		return fmt.Errorf("create newstag client: %w", err)
	}
	defer func() { _ = client.Close() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	result, err := client.Vocabulary.Backfill(ctx)
	if err != nil {
		return fmt.Errorf("backfill: %w", err)
	}

	fmt.Printf("backfill complete: %d embedded, %d failed\n", result.Embedded, result.Failed)
	return nil
}
