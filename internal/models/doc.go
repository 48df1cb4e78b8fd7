// MoodCast - Mood-Aware Podcast Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodcast

/*
Package models defines the data structures shared across MoodCast.

Key Components:

  - Podcast: one catalog candidate in the corpus, with its keyword-tag set and
    the most recent episodes
  - ListeningEvent: one user-scoped, append-only listening record
  - Profile: derived personalization summary (traits, preferences, mood histogram)
  - Insights: summary derived from a Profile
  - Mood: the fixed mood enumeration used by events and recommendation requests

Ownership:

The corpus and the per-user event logs are the only durable sources of truth.
Profile is a cache that can always be rebuilt from them.
*/
package models
