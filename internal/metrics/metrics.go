// MoodCast - Mood-Aware Podcast Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodcast

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Ingestion Metrics
	IngestRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "moodcast_ingest_runs_total",
			Help: "Total number of ingestion runs",
		},
		[]string{"result"}, // "success", "partial", "canceled"
	)

	IngestDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "moodcast_ingest_duration_seconds",
			Help:    "Duration of ingestion runs in seconds",
			Buckets: []float64{1, 5, 15, 30, 60, 120, 300, 600},
		},
	)

	IngestLastSuccess = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "moodcast_ingest_last_success_timestamp",
			Help: "Unix timestamp of the last ingestion run without errors",
		},
	)

	CandidatesUpserted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "moodcast_candidates_upserted_total",
			Help: "Total number of podcast candidates merged into the corpus",
		},
		[]string{"keyword"},
	)

	CandidatesFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "moodcast_candidates_failed_total",
			Help: "Total number of candidates or pages that failed to ingest",
		},
		[]string{"keyword", "stage"}, // stage: "search", "merge"
	)

	RateLimitStops = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "moodcast_rate_limit_stops_total",
			Help: "Total number of keywords whose pagination stopped on HTTP 429",
		},
		[]string{"keyword"},
	)

	EpisodeFetchFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "moodcast_episode_fetch_failures_total",
			Help: "Total number of podcasts persisted without episodes after a detail fetch failure",
		},
	)

	PagesFetched = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "moodcast_search_pages_fetched_total",
			Help: "Total number of catalog search pages fetched",
		},
		[]string{"keyword"},
	)

	// Catalog Client Metrics
	CatalogRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "moodcast_catalog_request_duration_seconds",
			Help:    "Duration of outbound catalog API requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint", "status"}, // endpoint: "search", "podcast"
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// Recommendation Metrics
	RecommendationsServed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "moodcast_recommendations_served_total",
			Help: "Total number of recommendation requests answered",
		},
		[]string{"mood"}, // mood name or "none"
	)

	RecommendationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "moodcast_recommendation_duration_seconds",
			Help:    "Duration of recommendation requests in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
	)

	ProfileRecomputes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "moodcast_profile_recomputes_total",
			Help: "Total number of profile recomputations",
		},
		[]string{"reason"}, // "stale", "explicit"
	)

	EventsTracked = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "moodcast_events_tracked_total",
			Help: "Total number of listening events appended",
		},
	)

	// Ops HTTP Metrics
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "moodcast_http_request_duration_seconds",
			Help:    "Duration of ops HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)

	HTTPActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "moodcast_http_active_requests",
			Help: "Number of ops HTTP requests currently being served",
		},
	)

	// Storage Metrics
	StoreConflictRetries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "moodcast_store_conflict_retries_total",
			Help: "Total number of BadgerDB transactions retried after a write conflict",
		},
		[]string{"store"},
	)
)

// RecordIngestRun records the outcome of an ingestion run.
func RecordIngestRun(duration time.Duration, errorCount int, canceled bool) {
	IngestDuration.Observe(duration.Seconds())

	switch {
	case canceled:
		IngestRuns.WithLabelValues("canceled").Inc()
	case errorCount > 0:
		IngestRuns.WithLabelValues("partial").Inc()
	default:
		IngestRuns.WithLabelValues("success").Inc()
		IngestLastSuccess.Set(float64(time.Now().Unix()))
	}
}

// RecordCatalogRequest records an outbound catalog request.
func RecordCatalogRequest(endpoint, status string, duration time.Duration) {
	CatalogRequestDuration.WithLabelValues(endpoint, status).Observe(duration.Seconds())
}

// RecordRecommendation records a served recommendation request.
func RecordRecommendation(mood string, duration time.Duration) {
	if mood == "" {
		mood = "none"
	}
	RecommendationsServed.WithLabelValues(mood).Inc()
	RecommendationDuration.Observe(duration.Seconds())
}

// TrackActiveRequest adjusts the in-flight HTTP request gauge.
func TrackActiveRequest(start bool) {
	if start {
		HTTPActiveRequests.Inc()
		return
	}
	HTTPActiveRequests.Dec()
}

// RecordHTTPRequest records a completed ops HTTP request.
func RecordHTTPRequest(method, route, status string, duration time.Duration) {
	HTTPRequestDuration.WithLabelValues(method, route, status).Observe(duration.Seconds())
}
