// MoodCast - Mood-Aware Podcast Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodcast

/*
Package metrics provides Prometheus metrics collection and export for observability.

All collectors are registered on the default registry through promauto and
exposed by the ops listener at /metrics:

	curl http://localhost:8080/metrics

# Available Metrics

Ingestion:
  - moodcast_ingest_runs_total{result}
  - moodcast_ingest_duration_seconds
  - moodcast_candidates_upserted_total{keyword}
  - moodcast_candidates_failed_total{keyword,stage}
  - moodcast_rate_limit_stops_total{keyword}
  - moodcast_episode_fetch_failures_total
  - moodcast_search_pages_fetched_total{keyword}

Catalog client:
  - moodcast_catalog_request_duration_seconds{endpoint,status}
  - circuit_breaker_state{name}, circuit_breaker_requests_total{name,result}

Personalization:
  - moodcast_recommendations_served_total{mood}
  - moodcast_profile_recomputes_total{reason}
  - moodcast_events_tracked_total

Storage:
  - moodcast_store_conflict_retries_total{store}
*/
package metrics
