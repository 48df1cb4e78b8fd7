// MoodCast - Mood-Aware Podcast Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodcast

/*
Package supervisor provides process supervision for MoodCast using suture v4.

All long-running services live in a three-layer tree:

	RootSupervisor ("moodcast")
	├── DataSupervisor ("data-layer")
	│   └── StorageGCService
	├── IngestSupervisor ("ingest-layer")
	│   └── IngestService (if INGEST_ENABLED)
	└── APISupervisor ("api-layer")
	    └── HTTPServerService (/healthz, /metrics)

Each layer restarts independently. A panicking ingestion run is restarted
with backoff inside the ingest layer while the ops endpoints keep serving.

# Usage Example

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
	    return err
	}

	tree.AddDataService(services.NewStorageGCService(db, time.Hour, logger))
	tree.AddIngestService(services.NewIngestService(pipeline, ingestCfg, logger))
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second, logger))

	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
	    logger.Error().Err(err).Msg("supervisor stopped")
	}

# Failure Handling

Suture keeps a decaying failure counter per supervisor. When it exceeds
FailureThreshold the supervisor waits FailureBackoff before the next restart.
Defaults match suture's own: 5 failures, 30s decay, 15s backoff, 10s
shutdown timeout.

Services return:
  - nil: stopped cleanly, not restarted
  - an error: crashed, restarted
  - ctx.Err(): shutdown requested

# What Is NOT Supervised

BadgerDB is an embedded library. It is opened before the tree starts and
closed after the tree returns; only its periodic GC runs as a service.

# Debugging Shutdown Issues

	report, _ := tree.UnstoppedServiceReport()
	for _, svc := range report {
	    logger.Warn().Str("service", svc.Name).Msg("service did not stop")
	}
*/
package supervisor
