// MoodCast - Mood-Aware Podcast Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodcast

package recommend

import (
	"fmt"
	"time"

	"github.com/tomtom215/moodcast/internal/config"
)

// Config contains all configuration for the recommendation engine.
type Config struct {
	// PoolSize caps the candidate pool before scoring.
	// Default: 20.
	PoolSize int `json:"pool_size"`

	// MaxResults is the number of ranked recommendations returned.
	// Default: 10.
	MaxResults int `json:"max_results"`

	// ProfileTTL is how long a cached profile is considered fresh.
	// Default: 24h.
	ProfileTTL time.Duration `json:"profile_ttl"`

	// RecentWindow is how many of the newest events feed the diversity check.
	// Default: 5.
	RecentWindow int `json:"recent_window"`

	// Weights are the heuristic point values.
	Weights Weights `json:"weights"`
}

// Weights defines the points awarded by HeuristicStrategy for each rule.
type Weights struct {
	PreferenceTag   int `json:"preference_tag"`
	PreferenceTitle int `json:"preference_title"`
	MoodTag         int `json:"mood_tag"`
	MoodTitle       int `json:"mood_title"`
	MoodDescription int `json:"mood_description"`
	Diversity       int `json:"diversity"`
	Popularity      int `json:"popularity"`

	// PopularityThreshold is the episode count a podcast must exceed to earn
	// the popularity bonus.
	PopularityThreshold int `json:"popularity_threshold"`
}

// DefaultWeights returns the standard point table.
func DefaultWeights() Weights {
	return Weights{
		PreferenceTag:       10,
		PreferenceTitle:     5,
		MoodTag:             20,
		MoodTitle:           10,
		MoodDescription:     5,
		Diversity:           3,
		Popularity:          2,
		PopularityThreshold: 50,
	}
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		PoolSize:     20,
		MaxResults:   10,
		ProfileTTL:   24 * time.Hour,
		RecentWindow: 5,
		Weights:      DefaultWeights(),
	}
}

// ConfigFromApp builds an engine configuration from the application's
// recommend section, keeping defaults for the values it does not carry.
func ConfigFromApp(app *config.RecommendConfig) *Config {
	cfg := DefaultConfig()
	if app == nil {
		return cfg
	}
	if app.PoolSize > 0 {
		cfg.PoolSize = app.PoolSize
	}
	if app.MaxResults > 0 {
		cfg.MaxResults = app.MaxResults
	}
	if app.ProfileTTL > 0 {
		cfg.ProfileTTL = app.ProfileTTL
	}
	return cfg
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.PoolSize < 1 {
		return fmt.Errorf("pool_size must be positive, got %d", c.PoolSize)
	}
	if c.MaxResults < 1 {
		return fmt.Errorf("max_results must be positive, got %d", c.MaxResults)
	}
	if c.ProfileTTL <= 0 {
		return fmt.Errorf("profile_ttl must be positive, got %s", c.ProfileTTL)
	}
	if c.RecentWindow < 0 {
		return fmt.Errorf("recent_window must be non-negative, got %d", c.RecentWindow)
	}
	if c.Weights.PopularityThreshold < 0 {
		return fmt.Errorf("weights.popularity_threshold must be non-negative, got %d", c.Weights.PopularityThreshold)
	}
	return nil
}
