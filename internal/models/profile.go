// MoodCast - Mood-Aware Podcast Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodcast

package models

import "time"

// Personality traits inferred from listening behavior.
const (
	TraitFocused       = "focused"
	TraitExplorer      = "explorer"
	TraitDeepListener  = "deep-listener"
	TraitQuickConsumer = "quick-consumer"
	TraitConsistent    = "consistent"
	TraitAvidListener  = "avid-listener"
)

// MoodPattern is one histogram bucket.
type MoodPattern struct {
	Count        int        `json:"count"`
	LastListened *time.Time `json:"last_listened"`
}

// Profile is the derived personalization summary for one user.
type Profile struct {
	PersonalityTraits  []string             `json:"personality_traits"`
	ContentPreferences []string             `json:"content_preferences"`
	MoodPatterns       map[Mood]MoodPattern `json:"mood_patterns"`
	LastUpdated        time.Time            `json:"last_updated"`
}

// NewMoodPatterns returns a histogram with a zero bucket for every mood.
func NewMoodPatterns() map[Mood]MoodPattern {
	patterns := make(map[Mood]MoodPattern, len(Moods))
	for _, m := range Moods {
		patterns[m] = MoodPattern{}
	}
	return patterns
}

// DefaultProfile is the profile of a user with no listening history.
func DefaultProfile(now time.Time) *Profile {
	return &Profile{
		PersonalityTraits:  []string{TraitExplorer},
		ContentPreferences: []string{},
		MoodPatterns:       NewMoodPatterns(),
		LastUpdated:        now,
	}
}

// IsStale reports whether the profile must be recomputed before use.
// A nil profile, a zero timestamp, a timestamp in the future and a timestamp
// older than ttl are all stale.
func (p *Profile) IsStale(now time.Time, ttl time.Duration) bool {
	if p == nil || p.LastUpdated.IsZero() {
		return true
	}
	if p.LastUpdated.After(now) {
		return true
	}
	return now.Sub(p.LastUpdated) > ttl
}

// FavoriteMood returns the mood with the highest count.
// Ties resolve to the earliest mood in Moods; nil when every count is zero.
func (p *Profile) FavoriteMood() *Mood {
	var best *Mood
	bestCount := 0
	for _, m := range Moods {
		if c := p.MoodPatterns[m].Count; c > bestCount {
			mood := m
			best = &mood
			bestCount = c
		}
	}
	return best
}

// Insights is a summary derived from a profile and its event log.
type Insights struct {
	FavoriteMood       *Mood    `json:"favorite_mood"`
	PersonalityTraits  []string `json:"personality_traits"`
	ContentPreferences []string `json:"content_preferences"`
	TotalListeningTime int      `json:"total_listening_time"` // seconds
	EventCount         int      `json:"event_count"`
}
