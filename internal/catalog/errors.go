// MoodCast - Mood-Aware Podcast Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodcast

package catalog

import (
	"errors"
	"fmt"
)

var (
	// ErrRateLimited is returned when the catalog answers HTTP 429.
	ErrRateLimited = errors.New("catalog rate limit exceeded")

	// ErrUnexpectedStatus is wrapped by every StatusError.
	ErrUnexpectedStatus = errors.New("unexpected catalog response status")

	// ErrCircuitOpen is returned when the detail endpoint breaker rejects a call.
	ErrCircuitOpen = errors.New("catalog circuit breaker open")
)

// StatusError reports a non-200, non-429 response.
type StatusError struct {
	Endpoint   string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("catalog %s returned status %d", e.Endpoint, e.StatusCode)
	}
	return fmt.Sprintf("catalog %s returned status %d: %s", e.Endpoint, e.StatusCode, e.Body)
}

func (e *StatusError) Unwrap() error {
	return ErrUnexpectedStatus
}
