// MoodCast - Mood-Aware Podcast Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodcast

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/moodcast/internal/api"
	"github.com/tomtom215/moodcast/internal/catalog"
	"github.com/tomtom215/moodcast/internal/config"
	"github.com/tomtom215/moodcast/internal/corpus"
	"github.com/tomtom215/moodcast/internal/history"
	"github.com/tomtom215/moodcast/internal/ingest"
	"github.com/tomtom215/moodcast/internal/logging"
	"github.com/tomtom215/moodcast/internal/recommend"
	"github.com/tomtom215/moodcast/internal/storage"
	"github.com/tomtom215/moodcast/internal/supervisor"
	"github.com/tomtom215/moodcast/internal/supervisor/services"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	// Load configuration first to get logging settings
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	if err := run(cfg); err != nil {
		logging.Fatal().Err(err).Msg("MoodCast exited with error")
	}
	logging.Info().Msg("Application stopped gracefully")
}

//nolint:gocyclo // Sequential setup steps
func run(cfg *config.Config) error {
	logger := logging.Logger()

	logger.Info().
		Str("version", version).
		Str("db_path", cfg.Database.Path).
		Bool("db_in_memory", cfg.Database.InMemory).
		Bool("ingest_enabled", cfg.Ingest.Enabled).
		Msg("Starting MoodCast with supervisor tree")

	db, err := storage.Open(cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error().Err(err).Msg("Error closing storage")
		}
	}()

	podcasts := corpus.NewStore(db)
	listening := history.NewStore(db, cfg.Recommend.HistoryCapacity)

	// No component in the server calls the engine; building it here only
	// validates the recommendation settings at startup.
	if _, err := recommend.NewEngine(recommend.ConfigFromApp(&cfg.Recommend), podcasts, listening, logger); err != nil {
		return fmt.Errorf("create recommendation engine: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		FailureThreshold: 5,
		FailureBackoff:   15 * time.Second,
		ShutdownTimeout:  cfg.Server.ShutdownTimeout,
	})
	if err != nil {
		return fmt.Errorf("create supervisor tree: %w", err)
	}

	// Data layer
	tree.AddDataService(services.NewStorageGCService(db, time.Hour, logger))

	// Ingest layer
	if cfg.Ingest.Enabled {
		svc, err := newIngestService(cfg, podcasts)
		if err != nil {
			return err
		}
		tree.AddIngestService(svc)
		logger.Info().
			Str("schedule", cfg.Ingest.Schedule).
			Strs("keywords", cfg.Ingest.Keywords).
			Msg("Ingest service added to supervisor tree")
	} else {
		logger.Info().Msg("Scheduled ingestion disabled (INGEST_ENABLED=false)")
	}

	// API layer
	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           api.NewRouter(podcasts, api.Options{Version: version}, logger),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout, logger))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case sig := <-sigCh:
			logger.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
			cancel()
		case <-ctx.Done():
		}
	}()

	logger.Info().Msg("Starting supervisor tree...")
	errCh := tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
		logger.Info().Msg("Context canceled, waiting for supervisor to finish...")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logger.Error().Err(err).Msg("Supervisor tree error")
		}
		cancel()
	}

	// Wait for the error channel to close (supervisor finished)
	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logger.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	if len(unstopped) > 0 {
		logger.Warn().Int("count", len(unstopped)).Msg("Services failed to stop within timeout")
		for _, svc := range unstopped {
			logger.Warn().Str("service", svc.Name).Msg("Service failed to stop")
		}
	}
	return nil
}

// newIngestService wires the catalog client and pipeline into a scheduled
// supervisor service.
func newIngestService(cfg *config.Config, podcasts *corpus.Store) (*services.IngestService, error) {
	logger := logging.Logger()

	schedule, err := services.ParseSchedule(cfg.Ingest.Schedule)
	if err != nil {
		return nil, err
	}

	client := catalog.NewClient(&cfg.Catalog, logger)
	pipeline := ingest.NewPipeline(client, podcasts, ingest.OptionsFromConfig(&cfg.Ingest), logger)

	svc, err := services.NewIngestService(pipeline, services.IngestServiceConfig{
		Keywords:     cfg.Ingest.Keywords,
		Schedule:     schedule,
		RunOnStartup: cfg.Ingest.RunOnStartup,
		RunTimeout:   cfg.Ingest.RunTimeout,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("create ingest service: %w", err)
	}
	return svc, nil
}
