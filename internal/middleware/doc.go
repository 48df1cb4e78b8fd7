// MoodCast - Mood-Aware Podcast Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodcast

/*
Package middleware provides net/http middleware for the ops router.

  - RequestID: accepts or generates X-Request-ID and stores it as the
    logging correlation ID
  - PrometheusMetrics: records moodcast_http_request_duration_seconds by
    method, chi route pattern and status, plus the in-flight gauge

Both have the func(http.Handler) http.Handler shape and plug into chi:

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.PrometheusMetrics)
*/
package middleware
