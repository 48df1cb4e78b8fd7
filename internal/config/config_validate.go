// MoodCast - Mood-Aware Podcast Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodcast

package config

import (
	"fmt"
	"strings"

	"github.com/robfig/cron/v3"
)

var validLogLevels = map[string]bool{
	"trace": true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

var validLogFormats = map[string]bool{
	"json":    true,
	"console": true,
}

// Validate checks that required configuration is present and valid
func (c *Config) Validate() error {
	if err := c.validateCatalog(); err != nil {
		return err
	}

	if err := c.validateIngest(); err != nil {
		return err
	}

	if err := c.validateDatabase(); err != nil {
		return err
	}

	if err := c.validateRecommend(); err != nil {
		return err
	}

	if err := c.validateServer(); err != nil {
		return err
	}

	return c.validateLogging()
}

// validateCatalog validates the catalog client. The API key is only
// required when scheduled ingestion is enabled.
func (c *Config) validateCatalog() error {
	if err := validateBaseURL(c.Catalog.BaseURL, "LISTENNOTES_BASE_URL"); err != nil {
		return err
	}
	if c.Ingest.Enabled && strings.TrimSpace(c.Catalog.APIKey) == "" {
		return fmt.Errorf("LISTENNOTES_API_KEY is required when INGEST_ENABLED=true")
	}
	if c.Catalog.Timeout <= 0 {
		return fmt.Errorf("LISTENNOTES_TIMEOUT must be positive")
	}
	if c.Catalog.RequestsPerSecond <= 0 {
		return fmt.Errorf("LISTENNOTES_REQUESTS_PER_SECOND must be positive")
	}
	if c.Catalog.Burst < 1 {
		return fmt.Errorf("LISTENNOTES_BURST must be at least 1")
	}
	return nil
}

func (c *Config) validateIngest() error {
	if c.Ingest.PageSize < 1 {
		return fmt.Errorf("INGEST_PAGE_SIZE must be at least 1")
	}
	if c.Ingest.MaxPages < 1 {
		return fmt.Errorf("INGEST_MAX_PAGES must be at least 1")
	}
	if c.Ingest.MaxEpisodes < 0 {
		return fmt.Errorf("INGEST_MAX_EPISODES must not be negative")
	}
	if c.Ingest.Concurrency < 1 {
		return fmt.Errorf("INGEST_CONCURRENCY must be at least 1")
	}
	if c.Ingest.EpisodeConcurrency < 1 {
		return fmt.Errorf("INGEST_EPISODE_CONCURRENCY must be at least 1")
	}
	if c.Ingest.RunTimeout < 0 {
		return fmt.Errorf("INGEST_RUN_TIMEOUT must not be negative")
	}
	if !c.Ingest.Enabled {
		return nil
	}
	if len(c.Ingest.Keywords) == 0 {
		return fmt.Errorf("INGEST_KEYWORDS must not be empty when INGEST_ENABLED=true")
	}
	if _, err := cron.ParseStandard(c.Ingest.Schedule); err != nil {
		return fmt.Errorf("INGEST_SCHEDULE is invalid: %w", err)
	}
	return nil
}

func (c *Config) validateDatabase() error {
	if !c.Database.InMemory && strings.TrimSpace(c.Database.Path) == "" {
		return fmt.Errorf("BADGER_PATH is required unless BADGER_IN_MEMORY=true")
	}
	return nil
}

func (c *Config) validateRecommend() error {
	if c.Recommend.PoolSize < 1 {
		return fmt.Errorf("RECOMMEND_POOL_SIZE must be at least 1")
	}
	if c.Recommend.MaxResults < 1 {
		return fmt.Errorf("RECOMMEND_MAX_RESULTS must be at least 1")
	}
	if c.Recommend.HistoryCapacity < 1 {
		return fmt.Errorf("RECOMMEND_HISTORY_CAPACITY must be at least 1")
	}
	if c.Recommend.ProfileTTL <= 0 {
		return fmt.Errorf("RECOMMEND_PROFILE_TTL must be positive")
	}
	return nil
}

// validateServer validates server configuration
func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535")
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("SHUTDOWN_TIMEOUT must be positive")
	}
	return nil
}

// validateLogging validates logging configuration
func (c *Config) validateLogging() error {
	if err := c.validateLogLevel(); err != nil {
		return err
	}
	return c.validateLogFormat()
}

// validateLogLevel validates the log level configuration
func (c *Config) validateLogLevel() error {
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error")
	}
	return nil
}

// validateLogFormat validates the log format configuration
func (c *Config) validateLogFormat() error {
	if c.Logging.Format == "" {
		return nil
	}
	if !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console")
	}
	return nil
}
