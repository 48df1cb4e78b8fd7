// MoodCast - Mood-Aware Podcast Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodcast

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/tomtom215/moodcast/internal/logging"
	"github.com/tomtom215/moodcast/internal/models"
)

// Health reports liveness plus storage readability. It answers 503 when the
// corpus cannot be counted so orchestrators can stop routing to the pod.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	start := time.Now()
	count, err := h.countPodcasts(ctx)
	queryTime := time.Since(start)

	if err != nil {
		logger := logging.Attach(r.Context(), h.logger)
		logger.Warn().Err(err).Msg("health check: corpus store unavailable")

		h.respondJSON(w, http.StatusServiceUnavailable, &models.APIResponse{
			Status: "error",
			Data: models.HealthStatus{
				Status:  "degraded",
				Version: h.version,
				Uptime:  time.Since(h.startTime).Seconds(),
			},
			Metadata: models.Metadata{Timestamp: time.Now().UTC()},
			Error: &models.APIError{
				Code:    "STORAGE_UNAVAILABLE",
				Message: "Corpus store is not readable",
			},
		})
		return
	}

	h.respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data: models.HealthStatus{
			Status:    "healthy",
			Version:   h.version,
			StorageOK: true,
			Podcasts:  count,
			Uptime:    time.Since(h.startTime).Seconds(),
		},
		Metadata: models.Metadata{
			Timestamp:   time.Now().UTC(),
			QueryTimeMS: queryTime.Milliseconds(),
		},
	})
}

func (h *Handler) countPodcasts(ctx context.Context) (int, error) {
	if h.corpus == nil {
		return 0, errNoCorpus
	}
	return h.corpus.Count(ctx)
}
