// MoodCast - Mood-Aware Podcast Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodcast

package recommend

import (
	"context"
	"fmt"
	"time"

	"github.com/tomtom215/moodcast/internal/models"
)

// Trait thresholds.
const (
	focusedCompletionRate  = 0.8
	explorerCompletionRate = 0.3
	deepListenerSeconds    = 1800
	quickConsumerSeconds   = 600
	consistentMoodShare    = 0.6
	avidListenerMoodCount  = 20
)

// PodcastResolver resolves podcast IDs to corpus records. Missing IDs are
// skipped rather than reported.
type PodcastResolver interface {
	FindByKeys(ctx context.Context, ids []string) ([]models.Podcast, error)
}

// ProfileBuilder derives a listener profile from a listening log.
// Build reads the corpus but never writes anything.
type ProfileBuilder struct {
	corpus PodcastResolver
	now    func() time.Time
}

// NewProfileBuilder creates a builder that resolves preferences through corpus.
func NewProfileBuilder(corpus PodcastResolver) *ProfileBuilder {
	return &ProfileBuilder{corpus: corpus, now: time.Now}
}

// Build computes a profile from events. An empty log yields the default profile.
func (b *ProfileBuilder) Build(ctx context.Context, events []models.ListeningEvent) (*models.Profile, error) {
	now := b.now().UTC()
	if len(events) == 0 {
		return models.DefaultProfile(now), nil
	}

	patterns := moodHistogram(events)

	preferences, err := b.preferences(ctx, events)
	if err != nil {
		return nil, err
	}

	return &models.Profile{
		PersonalityTraits:  traits(events, patterns),
		ContentPreferences: preferences,
		MoodPatterns:       patterns,
		LastUpdated:        now,
	}, nil
}

// preferences is the sorted union of keyword tags across the distinct
// podcasts in the log.
func (b *ProfileBuilder) preferences(ctx context.Context, events []models.ListeningEvent) ([]string, error) {
	seen := make(map[string]struct{}, len(events))
	ids := make([]string, 0, len(events))
	for i := range events {
		id := events[i].PodcastID
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}

	podcasts, err := b.corpus.FindByKeys(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("resolve listened podcasts: %w", err)
	}

	preferences := []string{}
	for i := range podcasts {
		preferences = models.UnionKeywords(preferences, podcasts[i].Keywords...)
	}
	return preferences, nil
}

func moodHistogram(events []models.ListeningEvent) map[models.Mood]models.MoodPattern {
	patterns := models.NewMoodPatterns()
	for i := range events {
		e := &events[i]
		if !e.Mood.Valid() {
			continue
		}
		p := patterns[e.Mood]
		p.Count++
		if p.LastListened == nil || e.ListenedAt.After(*p.LastListened) {
			ts := e.ListenedAt
			p.LastListened = &ts
		}
		patterns[e.Mood] = p
	}
	return patterns
}

func traits(events []models.ListeningEvent, patterns map[models.Mood]models.MoodPattern) []string {
	total := len(events)
	completed := 0
	duration := 0
	for i := range events {
		if events[i].Completed {
			completed++
		}
		duration += events[i].ListenDuration
	}

	out := []string{}

	completionRate := float64(completed) / float64(total)
	switch {
	case completionRate > focusedCompletionRate:
		out = append(out, models.TraitFocused)
	case completionRate < explorerCompletionRate:
		out = append(out, models.TraitExplorer)
	}

	avgDuration := float64(duration) / float64(total)
	switch {
	case avgDuration > deepListenerSeconds:
		out = append(out, models.TraitDeepListener)
	case avgDuration < quickConsumerSeconds:
		out = append(out, models.TraitQuickConsumer)
	}

	moodTotal, moodMax := 0, 0
	for _, p := range patterns {
		moodTotal += p.Count
		if p.Count > moodMax {
			moodMax = p.Count
		}
	}
	if moodTotal > 0 && float64(moodMax)/float64(moodTotal) > consistentMoodShare {
		out = append(out, models.TraitConsistent)
	}

	if moodTotal > avidListenerMoodCount {
		out = append(out, models.TraitAvidListener)
	}

	return out
}
