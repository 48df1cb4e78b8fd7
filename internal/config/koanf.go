// MoodCast - Mood-Aware Podcast Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodcast

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
// The first file found will be used.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/moodcast/config.yaml",
	"/etc/moodcast/config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// DefaultKeywords are the mood-flavoured search terms used to seed the corpus.
var DefaultKeywords = []string{
	"sad", "surprised", "confident", "thoughtful",
	"happy", "angry", "calm", "tired",
}

// defaultConfig returns a Config struct with all sensible default values.
// These defaults are applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	keywords := make([]string, len(DefaultKeywords))
	copy(keywords, DefaultKeywords)

	return &Config{
		Catalog: CatalogConfig{
			BaseURL:           "https://listen-api.listennotes.com/api/v2",
			Timeout:           15 * time.Second,
			RequestsPerSecond: 2,
			Burst:             4,
		},
		Ingest: IngestConfig{
			Enabled:            true,
			Keywords:           keywords,
			PageSize:           10,
			MaxPages:           5,
			MaxEpisodes:        5,
			Concurrency:        2,
			EpisodeConcurrency: 4,
			Schedule:           "0 3 * * *",
			RunTimeout:         30 * time.Minute,
		},
		Database: DatabaseConfig{
			Path: "/data/moodcast",
		},
		Recommend: RecommendConfig{
			PoolSize:        20,
			MaxResults:      10,
			HistoryCapacity: 100,
			ProfileTTL:      24 * time.Hour,
		},
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8080,
			ShutdownTimeout: 10 * time.Second,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// LoadWithKoanf loads configuration using Koanf v2 with layered sources:
//  1. Defaults: Built-in sensible defaults
//  2. Config File: Optional YAML config file (if exists)
//  3. Environment Variables: Override any setting
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	// Layer 1: Load defaults from struct
	defaults := defaultConfig()
	if err := k.Load(structs.Provider(defaults, "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: Load config file (optional)
	configPath := findConfigFile()
	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: Load environment variables (highest priority)
	// LISTENNOTES_API_KEY -> catalog.api_key
	// INGEST_KEYWORDS -> ingest.keywords
	envProvider := env.Provider("", ".", envTransformFunc)
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile searches for a config file in the default paths.
// Returns the path to the first file found, or empty string if none found.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// sliceConfigPaths defines which config paths should be parsed as comma-separated slices
var sliceConfigPaths = []string{
	"ingest.keywords",
}

// processSliceFields converts comma-separated string values to slices for known slice fields.
// Env vars come in as strings, but the config expects slices.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok {
			// Already a slice (defaults or YAML) or unset.
			continue
		}

		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if err := k.Set(path, trimmed); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

// envMappings maps environment variable names (lowercased) to koanf config paths.
var envMappings = map[string]string{
	"listennotes_base_url":            "catalog.base_url",
	"listennotes_api_key":             "catalog.api_key",
	"listennotes_timeout":             "catalog.timeout",
	"listennotes_requests_per_second": "catalog.requests_per_second",
	"listennotes_burst":               "catalog.burst",

	"ingest_enabled":             "ingest.enabled",
	"ingest_keywords":            "ingest.keywords",
	"ingest_page_size":           "ingest.page_size",
	"ingest_max_pages":           "ingest.max_pages",
	"ingest_max_episodes":        "ingest.max_episodes",
	"ingest_concurrency":         "ingest.concurrency",
	"ingest_episode_concurrency": "ingest.episode_concurrency",
	"ingest_schedule":            "ingest.schedule",
	"ingest_run_on_startup":      "ingest.run_on_startup",
	"ingest_run_timeout":         "ingest.run_timeout",

	"badger_path":      "database.path",
	"badger_in_memory": "database.in_memory",

	"recommend_pool_size":        "recommend.pool_size",
	"recommend_max_results":      "recommend.max_results",
	"recommend_history_capacity": "recommend.history_capacity",
	"recommend_profile_ttl":      "recommend.profile_ttl",

	"http_host":        "server.host",
	"http_port":        "server.port",
	"shutdown_timeout": "server.shutdown_timeout",

	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",
}

// envTransformFunc transforms environment variable names to koanf config paths.
//
// Examples:
//   - LISTENNOTES_API_KEY -> catalog.api_key
//   - INGEST_SCHEDULE -> ingest.schedule
//   - BADGER_PATH -> database.path
//   - HTTP_PORT -> server.port
func envTransformFunc(key string) string {
	if mapped, ok := envMappings[strings.ToLower(key)]; ok {
		return mapped
	}

	// Unmapped keys are skipped so unrelated environment variables
	// never pollute the config.
	return ""
}
