// Package main provides the entry point for the txextract CLI application.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"finize/txextract/cmd/batch"
	"finize/txextract/cmd/categorize"
	"finize/txextract/cmd/extract"
	"finize/txextract/cmd/root"
	"finize/txextract/cmd/summary"
	"finize/txextract/cmd/taxonomy"
	"finize/txextract/internal/config"
	"finize/txextract/internal/logging"

	"github.com/sirupsen/logrus"
)

func init() {
	// 1. Load environment variables silently first (no logging yet)
	config.LoadEnv()

	// 2. Honour LOG_LEVEL and LOG_FORMAT for messages logged before the
	// configuration is read
	logger := logrus.New()
	logger.SetLevel(config.LogLevelFromEnv())
	if config.LogFormatFromEnv() == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	root.Log = logging.NewLogrusAdapterFromLogger(logger)
	logging.SetLogger(root.Log)

	// 3. Initialize root command and add all subcommands
	root.Init()
	root.Cmd.AddCommand(extract.Cmd)
	root.Cmd.AddCommand(categorize.Cmd)
	root.Cmd.AddCommand(batch.Cmd)
	root.Cmd.AddCommand(summary.Cmd)
	root.Cmd.AddCommand(taxonomy.Cmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := root.Cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
