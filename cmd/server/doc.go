// MoodCast - Mood-Aware Podcast Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodcast

/*
Package main is the entry point for the MoodCast server.

MoodCast keeps a local corpus of podcasts harvested from the Listen Notes
catalog and turns per-user listening history into mood-aware, explainable
recommendations.

# Application Architecture

	RootSupervisor ("moodcast")
	├── DataSupervisor ("data-layer")
	│   └── Storage GC (BadgerDB value log)
	├── IngestSupervisor ("ingest-layer")
	│   └── Ingest service (cron schedule, optional startup run)
	└── APISupervisor ("api-layer")
	    └── Ops HTTP server (/healthz, /metrics)

Startup order:

 1. Configuration: koanf v2 (defaults, config.yaml, environment)
 2. Logging: zerolog, JSON or console
 3. Storage: BadgerDB at BADGER_PATH (or in memory)
 4. Corpus and listening-history stores
 5. Recommendation engine settings check
 6. Supervisor tree

# Configuration

	LISTENNOTES_API_KEY=...        # required when ingestion is enabled
	INGEST_KEYWORDS=happy,calm,focus
	INGEST_SCHEDULE="0 3 * * *"
	INGEST_RUN_ON_STARTUP=true
	BADGER_PATH=/data/moodcast
	HTTP_PORT=8080
	LOG_LEVEL=info

# Signal Handling

SIGINT and SIGTERM cancel the root context. The supervisor stops every
service within SHUTDOWN_TIMEOUT, reports the ones that did not stop, and
the store is closed last.
*/
package main
