// MoodCast - Mood-Aware Podcast Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodcast

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/tomtom215/moodcast/internal/middleware"
)

// CorpusCounter reports the number of podcasts in the corpus.
// Satisfied by *corpus.Store.
type CorpusCounter interface {
	Count(ctx context.Context) (int, error)
}

// Options configures the ops router.
type Options struct {
	// Version is reported by /healthz.
	Version string

	// HealthTimeout bounds the storage probe. Default: 2s.
	HealthTimeout time.Duration

	// Gatherer serves /metrics. Default: prometheus.DefaultGatherer.
	Gatherer prometheus.Gatherer
}

// Handler holds the dependencies of the ops endpoints.
type Handler struct {
	corpus    CorpusCounter
	version   string
	timeout   time.Duration
	startTime time.Time
	logger    zerolog.Logger
}

// NewRouter builds the chi router serving /healthz and /metrics.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewRouter(counter CorpusCounter, opts Options, logger zerolog.Logger) http.Handler {
	if opts.Version == "" {
		opts.Version = "dev"
	}
	if opts.HealthTimeout <= 0 {
		opts.HealthTimeout = 2 * time.Second
	}
	if opts.Gatherer == nil {
		opts.Gatherer = prometheus.DefaultGatherer
	}

	h := &Handler{
		corpus:    counter,
		version:   opts.Version,
		timeout:   opts.HealthTimeout,
		startTime: time.Now(),
		logger:    logger.With().Str("component", "api").Logger(),
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.PrometheusMetrics)

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		h.respondError(w, http.StatusNotFound, "NOT_FOUND", "Not found", nil)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		h.respondError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed", nil)
	})

	r.Get("/healthz", h.Health)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{}))

	return r
}
