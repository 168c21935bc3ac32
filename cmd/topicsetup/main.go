// Package main provides the topicsetup CLI tool for provisioning the
// marketplace topic registry on a Kafka cluster.
//
// Usage:
//
//	topicsetup run --brokers localhost:9092 --environment development
//
// The tool waits for the broker to become reachable, then creates every
// registry topic (main and dead-letter) that does not exist yet. Existing
// topics are never modified.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lokalmarket/marketplace-commons/internal/topicsetup"
	"github.com/lokalmarket/marketplace-commons/pkg/topics"
)

var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "topicsetup",
		Short:   "Provision marketplace Kafka topics",
		Long:    `topicsetup creates the marketplace event topics and their dead-letter counterparts with registry-defined partitioning and retention.`,
		Version: version,
	}

	rootCmd.AddCommand(newRunCmd())

	return rootCmd
}

func newRunCmd() *cobra.Command {
	cfg := &topicsetup.Config{}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Create missing registry topics on a cluster",
		Long: `Create missing registry topics on a cluster.

The command is idempotent: topics that already exist are left untouched,
so it is safe to run on every deployment.

Example:
  topicsetup run --brokers localhost:9092 --environment development`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSetup(cmd, cfg)
		},
	}

	cmd.Flags().StringVarP(&cfg.Brokers, "brokers", "b", "", "Comma-separated broker addresses (required)")
	cmd.Flags().StringVarP(&cfg.Environment, "environment", "e", topics.EnvProduction, "Deployment environment used as topic prefix")
	cmd.Flags().DurationVar(&cfg.WaitTimeout, "wait-timeout", 60*time.Second, "How long to wait for the broker to become reachable")

	_ = cmd.MarkFlagRequired("brokers")

	return cmd
}

func runSetup(cmd *cobra.Command, cfg *topicsetup.Config) error {
	log, err := zap.NewProduction()
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	runner, err := topicsetup.New(*cfg, log)
	if err != nil {
		return fmt.Errorf("failed to create topic setup runner: %w", err)
	}

	return runner.Run(cmd.Context())
}
