// MoodCast - Mood-Aware Podcast Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodcast

package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/tomtom215/moodcast/internal/ingest"
)

// IngestRunner runs one ingestion pass over the given keywords.
// Satisfied by *ingest.Pipeline.
type IngestRunner interface {
	Ingest(ctx context.Context, keywords []string) (*ingest.Report, error)
}

// IngestServiceConfig holds configuration for the ingestion service.
type IngestServiceConfig struct {
	// Keywords are passed to every run.
	Keywords []string

	// Schedule decides when the next run starts.
	Schedule cron.Schedule

	// RunOnStartup triggers a run as soon as the service starts.
	RunOnStartup bool

	// RunTimeout bounds a single run. Zero means no limit beyond shutdown.
	RunTimeout time.Duration
}

// ParseSchedule parses a standard five-field cron expression.
func ParseSchedule(spec string) (cron.Schedule, error) {
	schedule, err := cron.ParseStandard(spec)
	if err != nil {
		return nil, fmt.Errorf("parse ingest schedule %q: %w", spec, err)
	}
	return schedule, nil
}

// IngestService runs corpus ingestion on a cron schedule under supervision.
// Runs never overlap; a run that is still going when the next slot arrives
// delays that slot.
type IngestService struct {
	runner IngestRunner
	config IngestServiceConfig
	logger zerolog.Logger
	now    func() time.Time
	name   string
}

// NewIngestService creates a new ingestion service.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewIngestService(runner IngestRunner, cfg IngestServiceConfig, logger zerolog.Logger) (*IngestService, error) {
	if runner == nil {
		return nil, errors.New("ingest runner is required")
	}
	if cfg.Schedule == nil {
		return nil, errors.New("ingest schedule is required")
	}
	return &IngestService{
		runner: runner,
		config: cfg,
		logger: logger.With().Str("service", "ingest").Logger(),
		now:    time.Now,
		name:   "ingest-service",
	}, nil
}

// Serve implements the suture.Service interface.
func (s *IngestService) Serve(ctx context.Context) error {
	s.logger.Info().
		Bool("run_on_startup", s.config.RunOnStartup).
		Strs("keywords", s.config.Keywords).
		Msg("ingest service starting")

	if s.config.RunOnStartup {
		s.run(ctx, "startup")
	}

	for {
		now := s.now()
		next := s.config.Schedule.Next(now)
		if next.IsZero() {
			return errors.New("ingest schedule has no future activation")
		}

		s.logger.Debug().Time("next_run", next).Msg("next ingestion scheduled")
		timer := time.NewTimer(next.Sub(now))

		select {
		case <-ctx.Done():
			timer.Stop()
			s.logger.Info().Msg("ingest service shutting down")
			return ctx.Err()

		case <-timer.C:
			s.run(ctx, "schedule")
		}
	}
}

// run performs one ingestion pass. Failures are logged and the schedule
// continues; the pipeline already records per-keyword errors.
func (s *IngestService) run(ctx context.Context, trigger string) {
	runCtx := ctx
	if s.config.RunTimeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, s.config.RunTimeout)
		defer cancel()
	}

	s.logger.Info().Str("trigger", trigger).Msg("starting ingestion run")

	report, err := s.runner.Ingest(runCtx, s.config.Keywords)
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		s.logger.Warn().Err(err).Str("trigger", trigger).Msg("ingestion run interrupted")
	case err != nil:
		s.logger.Error().Err(err).Str("trigger", trigger).Msg("ingestion run failed")
	}

	if report != nil {
		s.logger.Info().
			Str("trigger", trigger).
			Int("processed", report.Processed).
			Int("upserted", report.Upserted).
			Int("errors", report.Errors).
			Strs("rate_limited", report.RateLimited).
			Dur("duration", report.Duration).
			Msg("ingestion run finished")
	}
}

// String returns the service name for logging.
func (s *IngestService) String() string {
	return s.name
}
