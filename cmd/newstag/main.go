// Package main is the entry point for the newstag CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information set via ldflags during build.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "newstag",
		Short: "Newstag article auto-tagging server",
		Long:  `Newstag classifies articles against a tag vocabulary using text embeddings, driven by a durable work queue.`,
	}

	cmd.AddCommand(serveCmd())
	cmd.AddCommand(backfillCmd())
	cmd.AddCommand(versionCmd())

	return cmd
}
