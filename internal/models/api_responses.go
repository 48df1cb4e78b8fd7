// MoodCast - Mood-Aware Podcast Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodcast

package models

import (
	"time"
)

// APIResponse is the envelope for every ops endpoint that returns JSON.
//
// Status is "success" or "error". Error is set only for "error".
//
//	{
//	  "status": "success",
//	  "data": {"status": "healthy", "podcasts": 412},
//	  "metadata": {"timestamp": "2026-03-01T12:00:00Z", "query_time_ms": 3}
//	}
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata contains response metadata.
type Metadata struct {
	Timestamp   time.Time `json:"timestamp"`
	QueryTimeMS int64     `json:"query_time_ms,omitempty"`
}

// APIError carries a machine-readable code and a message.
//
// Codes used by the ops router:
//   - STORAGE_UNAVAILABLE: the corpus store could not be read
//   - NOT_FOUND: unknown route
//   - METHOD_NOT_ALLOWED: route exists for another method
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// HealthStatus is the /healthz payload.
type HealthStatus struct {
	Status    string  `json:"status"` // "healthy" or "degraded"
	Version   string  `json:"version"`
	StorageOK bool    `json:"storage_ok"`
	Podcasts  int     `json:"podcasts"`
	Uptime    float64 `json:"uptime_seconds"`
}
