// MoodCast - Mood-Aware Podcast Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodcast

/*
Package services provides suture.Service wrappers for MoodCast components.

Each wrapper translates a component's lifecycle into suture's context-aware
Serve pattern and implements fmt.Stringer so suture can name it in logs.

# Available Services

IngestService:
  - Runs ingest.Pipeline on a robfig/cron schedule (INGEST_SCHEDULE)
  - Optionally runs once on startup (INGEST_RUN_ON_STARTUP)
  - Run failures are logged; the schedule keeps going

StorageGCService:
  - Calls storage.DB.RunGC on a fixed interval
  - No-op for in-memory databases

HTTPServerService:
  - Wraps *http.Server with graceful shutdown
  - Serves the ops router (/healthz, /metrics)

# Error Handling

Return values determine supervisor behavior:

	nil         -> Service stopped cleanly, will not restart
	error       -> Service crashed, supervisor will restart
	ctx.Err()   -> Shutdown requested, normal termination
*/
package services
