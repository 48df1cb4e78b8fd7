// MoodCast - Mood-Aware Podcast Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodcast

/*
Package api provides the operational HTTP router.

MoodCast has no public REST surface; recommendation operations are called
in-process through recommend.Engine. The router exposes only what an
operator or orchestrator needs:

	GET /healthz   JSON health envelope; 503 when the corpus store is unreadable
	GET /metrics   Prometheus exposition (promhttp)

Middleware stack (outermost first):

	RequestID -> RealIP -> Recoverer -> PrometheusMetrics

Usage:

	handler := api.NewRouter(corpusStore, api.Options{Version: "1.2.0"}, logger)
	srv := &http.Server{Addr: ":8080", Handler: handler}
*/
package api
