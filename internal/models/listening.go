// MoodCast - Mood-Aware Podcast Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodcast

package models

import "time"

// User is a registered listener. The core only needs identity.
type User struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}

// ListeningEvent is one recorded listening activity. Events are never mutated.
//
// PodcastID is a weak reference: the podcast may have been removed from the
// corpus since the event was recorded.
type ListeningEvent struct {
	ID             string    `json:"id"`
	PodcastID      string    `json:"podcast_id"`
	PodcastTitle   string    `json:"podcast_title"`
	EpisodeID      string    `json:"episode_id,omitempty"`
	EpisodeTitle   string    `json:"episode_title,omitempty"`
	ListenDuration int       `json:"listen_duration"` // seconds
	Completed      bool      `json:"completed"`
	ListenedAt     time.Time `json:"listened_at"`
	Mood           Mood      `json:"mood,omitempty"`
}
