// MoodCast - Mood-Aware Podcast Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodcast

package config

import (
	"time"
)

// Config holds all application configuration loaded from defaults, an optional
// config file and environment variables.
//
// Configuration Loading Order (Koanf v2):
//  1. Defaults: Built-in sensible defaults for all optional settings
//  2. Config File: Optional YAML config file (config.yaml) for persistent settings
//  3. Environment Variables: Override any setting via environment variables
//
// Example - Load configuration:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal("Failed to load config:", err)
//	}
//	// cfg.Catalog.APIKey, cfg.Database.Path, etc. are now populated
//
// Thread Safety:
// Config is immutable after Load() and safe for concurrent read access from multiple goroutines.
type Config struct {
	Catalog   CatalogConfig   `koanf:"catalog"`
	Ingest    IngestConfig    `koanf:"ingest"`
	Database  DatabaseConfig  `koanf:"database"`
	Recommend RecommendConfig `koanf:"recommend"`
	Server    ServerConfig    `koanf:"server"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// CatalogConfig configures the Listen Notes catalog client.
//
// Environment Variables:
//   - LISTENNOTES_BASE_URL: API base URL (default: https://listen-api.listennotes.com/api/v2)
//   - LISTENNOTES_API_KEY: API key sent as X-ListenAPI-Key (required when ingestion is enabled)
//   - LISTENNOTES_TIMEOUT: Per-request timeout (default: 15s)
//   - LISTENNOTES_REQUESTS_PER_SECOND: Outbound request rate (default: 2)
//   - LISTENNOTES_BURST: Outbound burst size (default: 4)
type CatalogConfig struct {
	BaseURL           string        `koanf:"base_url"`
	APIKey            string        `koanf:"api_key"`
	Timeout           time.Duration `koanf:"timeout"`
	RequestsPerSecond float64       `koanf:"requests_per_second"`
	Burst             int           `koanf:"burst"`
}

// IngestConfig configures the corpus ingestion pipeline and its schedule.
//
// Environment Variables:
//   - INGEST_ENABLED: Run scheduled ingestion (default: true)
//   - INGEST_KEYWORDS: Comma-separated search keywords
//   - INGEST_PAGE_SIZE: Results per search page (default: 10)
//   - INGEST_MAX_PAGES: Pages fetched per keyword (default: 5)
//   - INGEST_MAX_EPISODES: Episodes kept per podcast (default: 5)
//   - INGEST_CONCURRENCY: Keywords processed in parallel (default: 2)
//   - INGEST_EPISODE_CONCURRENCY: Episode fetches in parallel per page (default: 4)
//   - INGEST_SCHEDULE: Standard 5-field cron expression (default: "0 3 * * *")
//   - INGEST_RUN_ON_STARTUP: Run once when the service starts (default: false)
//   - INGEST_RUN_TIMEOUT: Upper bound for one run, 0 disables (default: 30m)
type IngestConfig struct {
	Enabled            bool          `koanf:"enabled"`
	Keywords           []string      `koanf:"keywords"`
	PageSize           int           `koanf:"page_size"`
	MaxPages           int           `koanf:"max_pages"`
	MaxEpisodes        int           `koanf:"max_episodes"`
	Concurrency        int           `koanf:"concurrency"`
	EpisodeConcurrency int           `koanf:"episode_concurrency"`
	Schedule           string        `koanf:"schedule"`
	RunOnStartup       bool          `koanf:"run_on_startup"`
	RunTimeout         time.Duration `koanf:"run_timeout"`
}

// DatabaseConfig configures the embedded BadgerDB store.
type DatabaseConfig struct {
	// Path is the BadgerDB directory.
	// Default: /data/moodcast
	Path string `koanf:"path"`

	// InMemory runs BadgerDB without touching disk. Data is lost on restart.
	// Default: false
	InMemory bool `koanf:"in_memory"`
}

// RecommendConfig tunes the personalization engine.
type RecommendConfig struct {
	// PoolSize caps the candidate pool before scoring.
	PoolSize int `koanf:"pool_size"`

	// MaxResults is the number of recommendations returned.
	MaxResults int `koanf:"max_results"`

	// HistoryCapacity bounds each user's listening log (FIFO).
	HistoryCapacity int `koanf:"history_capacity"`

	// ProfileTTL is how long a computed profile stays fresh.
	ProfileTTL time.Duration `koanf:"profile_ttl"`
}

// ServerConfig configures the operational HTTP listener (/healthz, /metrics).
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	// Default: info
	Level string `koanf:"level"`

	// Format is the output format: json or console.
	// JSON is recommended for production (structured, machine-parseable).
	// Console is human-readable for development.
	// Default: json
	Format string `koanf:"format"`

	// Caller includes caller file and line number in logs.
	// Default: false
	Caller bool `koanf:"caller"`
}

// Load reads configuration using the layered Koanf loader and validates it.
func Load() (*Config, error) {
	return LoadWithKoanf()
}
