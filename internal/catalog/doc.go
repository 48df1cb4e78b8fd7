// MoodCast - Mood-Aware Podcast Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodcast

/*
Package catalog is the client for the external podcast catalog (Listen Notes).

Two endpoints are used:

	GET {base}/search?q=<keyword>&type=podcast&offset=<n>&...
	GET {base}/podcasts/<id>?sort=recent_first

Error taxonomy (check with errors.Is / errors.As):
  - ErrRateLimited: HTTP 429. Never retried by the client.
  - *StatusError: any other non-200 status, wraps ErrUnexpectedStatus.
  - ErrCircuitOpen: the detail endpoint breaker rejected the call.
*/
package catalog
