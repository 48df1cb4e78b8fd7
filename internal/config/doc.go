// MoodCast - Mood-Aware Podcast Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodcast

/*
Package config provides centralized configuration management for MoodCast.

Configuration is layered with Koanf v2. Built-in defaults are loaded first,
then an optional YAML file, then environment variables. The merged result is
unmarshaled into Config and checked by Config.Validate.

# Config File

The file is located through CONFIG_PATH, falling back to config.yaml,
config.yml, /etc/moodcast/config.yaml and /etc/moodcast/config.yml.
Keys mirror the koanf struct tags:

	catalog:
	  api_key: "..."
	  requests_per_second: 2
	ingest:
	  keywords: [calm, happy]
	  schedule: "0 3 * * *"
	database:
	  path: /data/moodcast

# Environment Variables

Only variables listed in the mapping table are read. Unknown variables are
ignored.

Catalog:
  - LISTENNOTES_BASE_URL, LISTENNOTES_API_KEY, LISTENNOTES_TIMEOUT
  - LISTENNOTES_REQUESTS_PER_SECOND, LISTENNOTES_BURST

Ingestion:
  - INGEST_ENABLED, INGEST_KEYWORDS (comma-separated), INGEST_SCHEDULE
  - INGEST_PAGE_SIZE, INGEST_MAX_PAGES, INGEST_MAX_EPISODES
  - INGEST_CONCURRENCY, INGEST_EPISODE_CONCURRENCY, INGEST_RUN_ON_STARTUP
  - INGEST_RUN_TIMEOUT

Storage and recommendations:
  - BADGER_PATH, BADGER_IN_MEMORY
  - RECOMMEND_POOL_SIZE, RECOMMEND_MAX_RESULTS
  - RECOMMEND_HISTORY_CAPACITY, RECOMMEND_PROFILE_TTL

Server and logging:
  - HTTP_HOST, HTTP_PORT, SHUTDOWN_TIMEOUT
  - LOG_LEVEL, LOG_FORMAT, LOG_CALLER

# Thread Safety

Config is immutable after Load and safe for concurrent reads.
*/
package config
