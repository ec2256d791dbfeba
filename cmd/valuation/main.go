package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/homevalue/backend/internal/logging"
)

const (
	defaultModelPath = "house_price_model.json"
	defaultSeed      = 42
)

func newRootCmd() *cobra.Command {
	var logLevel, logFormat string

	cmd := &cobra.Command{
		Use:   "valuation",
		Short: "House price model tooling",
		Long: `valuation fits the local house price model and runs one-off
predictions through the same pipeline the API serves.`,
		SilenceUsage: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			logging.Init(logging.Config{Level: logLevel, Format: logFormat, Output: os.Stderr})
		},
	}

	// Global flags
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	cmd.PersistentFlags().StringVar(&logFormat, "log-format", "console", "log format (console, json)")

	cmd.AddCommand(bootstrapCmd())
	cmd.AddCommand(predictCmd())

	return cmd
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	cancel()

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
