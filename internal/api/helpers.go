// MoodCast - Mood-Aware Podcast Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodcast

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/moodcast/internal/models"
)

var errNoCorpus = errors.New("corpus store not configured")

func (h *Handler) respondJSON(w http.ResponseWriter, status int, response *models.APIResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")

	data, err := json.Marshal(response)
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to marshal JSON response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		h.logger.Error().Err(err).Msg("Failed to write JSON response")
	}
}

func (h *Handler) respondError(w http.ResponseWriter, status int, code, message string, err error) {
	if err != nil {
		h.logger.Error().Str("code", code).Err(err).Msg("API Error")
	}

	h.respondJSON(w, status, &models.APIResponse{
		Status:   "error",
		Metadata: models.Metadata{Timestamp: time.Now().UTC()},
		Error: &models.APIError{
			Code:    code,
			Message: message,
		},
	})
}
