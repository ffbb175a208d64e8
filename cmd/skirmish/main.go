// Package main is the entry point for Skirmish.
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/samdwyer/skirmish/internal/game"
	"github.com/samdwyer/skirmish/internal/logging"
	"github.com/samdwyer/skirmish/internal/telemetry"
)

func main() {
	os.Exit(run())
}

// run wires and plays the game and returns the process exit code. Fatal
// paths return instead of exiting so the deferred log and telemetry
// shutdowns still flush.
func run() int {
	// Load .env file for local development
	// This makes SKIRMISH_* and SKIRMISH_HONEYCOMB_API_KEY available
	if err := godotenv.Load(); err != nil {
		// Not fatal - env vars might be set directly
		log.Printf("Note: .env file not loaded: %v", err)
	}

	// Set up OTEL environment variables from our .env variables
	setupOTelEnv()

	cfg, err := game.LoadConfig()
	if err != nil {
		log.Printf("Invalid configuration: %v", err)
		return 1
	}

	// The terminal owns stdout, so only headless runs log to stderr
	out, closeLog, err := openLog(cfg)
	if err != nil {
		log.Printf("Failed to open log: %v", err)
		return 1
	}
	defer closeLog()
	logger := logging.New(out, cfg.LogVerbosity)
	logging.Install(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize telemetry
	shutdown, err := telemetry.Setup(ctx)
	if err != nil {
		logger.Error(err, "telemetry setup failed, running without observability")
		// Continue without telemetry - game still works
	} else {
		defer func() {
			if err := shutdown(context.Background()); err != nil {
				logger.Error(err, "telemetry shutdown failed")
			}
		}()
	}

	// Create and run game
	g, err := game.New(cfg, logger)
	if err != nil {
		logger.Error(err, "failed to initialize game")
		log.Printf("Failed to initialize game: %v", err)
		return 1
	}

	// Run closes the screen before returning, so stderr is usable here
	if err := g.Run(ctx); err != nil {
		logger.Error(err, "game error")
		log.Printf("Game error: %v", err)
		return 1
	}
	return 0
}

// openLog returns where log lines go for cfg.
func openLog(cfg game.Config) (io.Writer, func(), error) {
	if cfg.Mode() == game.ModeHeadless || cfg.LogFile == "" {
		return os.Stderr, func() {}, nil
	}
	f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { f.Close() }, nil
}

// setupOTelEnv configures OTEL environment variables from our custom env vars.
// Nothing is exported unless an API key is present.
func setupOTelEnv() {
	apiKey := os.Getenv("SKIRMISH_HONEYCOMB_API_KEY")
	if apiKey == "" {
		return
	}
	dataset := os.Getenv("SKIRMISH_HONEYCOMB_DATASET")
	if dataset == "" {
		dataset = "skirmish" // default dataset name
	}

	if os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT") == "" {
		os.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "https://api.honeycomb.io")
	}
	// Construct the headers here; a .env file may hold an unexpanded reference
	os.Setenv("OTEL_EXPORTER_OTLP_HEADERS",
		fmt.Sprintf("x-honeycomb-team=%s,x-honeycomb-dataset=%s", apiKey, dataset))
}
