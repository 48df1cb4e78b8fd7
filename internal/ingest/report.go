// MoodCast - Mood-Aware Podcast Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodcast

package ingest

import "time"

// KeywordReport summarizes one keyword's pagination.
type KeywordReport struct {
	Pages           int  `json:"pages"`
	Processed       int  `json:"processed"`
	Upserted        int  `json:"upserted"`
	Errors          int  `json:"errors"`
	EpisodeFailures int  `json:"episode_failures"`
	RateLimited     bool `json:"rate_limited"`
}

// Report summarizes an ingestion run. Keywords skipped because of
// cancellation have no entry in Keywords.
type Report struct {
	StartedAt       time.Time                `json:"started_at"`
	Duration        time.Duration            `json:"duration"`
	Processed       int                      `json:"processed"`
	Upserted        int                      `json:"upserted"`
	Errors          int                      `json:"errors"`
	EpisodeFailures int                      `json:"episode_failures"`
	RateLimited     []string                 `json:"rate_limited"`
	Keywords        map[string]KeywordReport `json:"keywords"`
}

func (r *Report) add(keyword string, kr KeywordReport) {
	r.Keywords[keyword] = kr
	r.Processed += kr.Processed
	r.Upserted += kr.Upserted
	r.Errors += kr.Errors
	r.EpisodeFailures += kr.EpisodeFailures
	if kr.RateLimited {
		r.RateLimited = append(r.RateLimited, keyword)
	}
}
