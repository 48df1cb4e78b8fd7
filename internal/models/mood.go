// MoodCast - Mood-Aware Podcast Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodcast

package models

import "strings"

// Mood is a listening mood drawn from a fixed enumeration.
type Mood string

// Recognized moods.
const (
	MoodHappy     Mood = "happy"
	MoodSad       Mood = "sad"
	MoodStressed  Mood = "stressed"
	MoodMotivated Mood = "motivated"
	MoodRelaxed   Mood = "relaxed"
)

// Moods lists every recognized mood in canonical order.
// Histogram iteration and favorite-mood tie-breaks follow this order.
var Moods = []Mood{MoodHappy, MoodSad, MoodStressed, MoodMotivated, MoodRelaxed}

// Valid reports whether m is one of the recognized moods.
func (m Mood) Valid() bool {
	for _, known := range Moods {
		if m == known {
			return true
		}
	}
	return false
}

// String returns the mood token.
func (m Mood) String() string {
	return string(m)
}

// ParseMood normalizes s and returns the matching mood.
// The second return value is false for empty or unrecognized input.
func ParseMood(s string) (Mood, bool) {
	m := Mood(strings.ToLower(strings.TrimSpace(s)))
	if !m.Valid() {
		return "", false
	}
	return m, true
}
