// MoodCast - Mood-Aware Podcast Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodcast

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// TestDefaultConfig verifies that defaultConfig() returns proper defaults
func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()

	if cfg.Catalog.BaseURL != "https://listen-api.listennotes.com/api/v2" {
		t.Errorf("Catalog.BaseURL = %q", cfg.Catalog.BaseURL)
	}
	if cfg.Catalog.APIKey != "" {
		t.Errorf("Catalog.APIKey should be empty by default, got %q", cfg.Catalog.APIKey)
	}
	if len(cfg.Ingest.Keywords) != 8 {
		t.Errorf("Ingest.Keywords = %v, want 8 default keywords", cfg.Ingest.Keywords)
	}
	if cfg.Ingest.PageSize != 10 || cfg.Ingest.MaxPages != 5 || cfg.Ingest.MaxEpisodes != 5 {
		t.Errorf("Ingest paging = %d/%d/%d, want 10/5/5",
			cfg.Ingest.PageSize, cfg.Ingest.MaxPages, cfg.Ingest.MaxEpisodes)
	}
	if cfg.Recommend.PoolSize != 20 {
		t.Errorf("Recommend.PoolSize = %d, want 20", cfg.Recommend.PoolSize)
	}
	if cfg.Recommend.MaxResults != 10 {
		t.Errorf("Recommend.MaxResults = %d, want 10", cfg.Recommend.MaxResults)
	}
	if cfg.Recommend.HistoryCapacity != 100 {
		t.Errorf("Recommend.HistoryCapacity = %d, want 100", cfg.Recommend.HistoryCapacity)
	}
	if cfg.Ingest.RunTimeout != 30*time.Minute {
		t.Errorf("Ingest.RunTimeout = %v, want 30m", cfg.Ingest.RunTimeout)
	}
	if cfg.Recommend.ProfileTTL != 24*time.Hour {
		t.Errorf("Recommend.ProfileTTL = %v, want 24h", cfg.Recommend.ProfileTTL)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %q, want info", cfg.Logging.Level)
	}

	// Mutating the copy must not leak into the package default.
	cfg.Ingest.Keywords[0] = "mutated"
	if DefaultKeywords[0] != "sad" {
		t.Errorf("DefaultKeywords mutated through defaultConfig()")
	}
}

func TestEnvTransformFunc(t *testing.T) {
	tests := []struct {
		env  string
		want string
	}{
		{"LISTENNOTES_API_KEY", "catalog.api_key"},
		{"INGEST_KEYWORDS", "ingest.keywords"},
		{"INGEST_SCHEDULE", "ingest.schedule"},
		{"INGEST_RUN_TIMEOUT", "ingest.run_timeout"},
		{"BADGER_IN_MEMORY", "database.in_memory"},
		{"RECOMMEND_PROFILE_TTL", "recommend.profile_ttl"},
		{"HTTP_PORT", "server.port"},
		{"LOG_LEVEL", "logging.level"},
		{"PATH", ""},
		{"HOME", ""},
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			if got := envTransformFunc(tt.env); got != tt.want {
				t.Errorf("envTransformFunc(%q) = %q, want %q", tt.env, got, tt.want)
			}
		})
	}
}

func TestLoadWithKoanf_EnvOverrides(t *testing.T) {
	t.Setenv(ConfigPathEnvVar, filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("LISTENNOTES_API_KEY", "test-key")
	t.Setenv("INGEST_KEYWORDS", "Calm, happy ,,tired")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("RECOMMEND_PROFILE_TTL", "12h")
	t.Setenv("LISTENNOTES_REQUESTS_PER_SECOND", "0.5")
	t.Setenv("BADGER_IN_MEMORY", "true")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}

	if cfg.Catalog.APIKey != "test-key" {
		t.Errorf("Catalog.APIKey = %q, want test-key", cfg.Catalog.APIKey)
	}
	want := []string{"Calm", "happy", "tired"}
	if len(cfg.Ingest.Keywords) != len(want) {
		t.Fatalf("Ingest.Keywords = %v, want %v", cfg.Ingest.Keywords, want)
	}
	for i := range want {
		if cfg.Ingest.Keywords[i] != want[i] {
			t.Errorf("Ingest.Keywords[%d] = %q, want %q", i, cfg.Ingest.Keywords[i], want[i])
		}
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Recommend.ProfileTTL != 12*time.Hour {
		t.Errorf("Recommend.ProfileTTL = %v, want 12h", cfg.Recommend.ProfileTTL)
	}
	if cfg.Catalog.RequestsPerSecond != 0.5 {
		t.Errorf("Catalog.RequestsPerSecond = %v, want 0.5", cfg.Catalog.RequestsPerSecond)
	}
	if !cfg.Database.InMemory {
		t.Error("Database.InMemory should be true")
	}
}

func TestLoadWithKoanf_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
catalog:
  api_key: file-key
  burst: 8
ingest:
  keywords:
    - calm
    - sad
  schedule: "*/30 * * * *"
recommend:
  pool_size: 40
logging:
  level: debug
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv(ConfigPathEnvVar, path)
	// Environment wins over the file.
	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}

	if cfg.Catalog.APIKey != "file-key" {
		t.Errorf("Catalog.APIKey = %q, want file-key", cfg.Catalog.APIKey)
	}
	if cfg.Catalog.Burst != 8 {
		t.Errorf("Catalog.Burst = %d, want 8", cfg.Catalog.Burst)
	}
	if len(cfg.Ingest.Keywords) != 2 || cfg.Ingest.Keywords[0] != "calm" {
		t.Errorf("Ingest.Keywords = %v, want [calm sad]", cfg.Ingest.Keywords)
	}
	if cfg.Ingest.Schedule != "*/30 * * * *" {
		t.Errorf("Ingest.Schedule = %q", cfg.Ingest.Schedule)
	}
	if cfg.Recommend.PoolSize != 40 {
		t.Errorf("Recommend.PoolSize = %d, want 40", cfg.Recommend.PoolSize)
	}
	if cfg.Recommend.MaxResults != 10 {
		t.Errorf("Recommend.MaxResults = %d, want default 10", cfg.Recommend.MaxResults)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("Logging.Level = %q, want warn", cfg.Logging.Level)
	}
}

func TestLoadWithKoanf_MissingAPIKey(t *testing.T) {
	t.Setenv(ConfigPathEnvVar, filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("LISTENNOTES_API_KEY", "")

	if _, err := LoadWithKoanf(); err == nil {
		t.Fatal("expected error when ingestion is enabled without an API key")
	}

	t.Setenv("INGEST_ENABLED", "false")
	if _, err := LoadWithKoanf(); err != nil {
		t.Fatalf("LoadWithKoanf() with ingestion disabled error = %v", err)
	}
}
