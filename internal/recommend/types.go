// MoodCast - Mood-Aware Podcast Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodcast

package recommend

import (
	"context"
	"errors"
	"fmt"

	"github.com/tomtom215/moodcast/internal/history"
	"github.com/tomtom215/moodcast/internal/models"
)

var (
	// ErrUserNotFound is returned for operations on an unregistered user.
	ErrUserNotFound = fmt.Errorf("recommend: %w", history.ErrUserNotFound)

	// ErrInvalidRequest wraps input validation failures.
	ErrInvalidRequest = errors.New("recommend: invalid request")
)

// Reason rule names reported in ScoredPodcast.Reasons.
const (
	RulePreferenceTag   = "preference_tag"
	RulePreferenceTitle = "preference_title"
	RuleMoodTag         = "mood_tag"
	RuleMoodTitle       = "mood_title"
	RuleMoodDescription = "mood_description"
	RuleDiversity       = "diversity"
	RulePopularity      = "popularity"
)

// Reason is one scoring rule that contributed points to a candidate.
type Reason struct {
	Rule   string `json:"rule"`
	Points int    `json:"points"`

	// Detail names the matched preference or mood, when there is one.
	Detail string `json:"detail,omitempty"`
}

// ScoredPodcast is a ranked candidate with its score breakdown.
type ScoredPodcast struct {
	Podcast models.Podcast `json:"podcast"`
	Score   int            `json:"score"`
	Reasons []Reason       `json:"reasons"`
}

// Criteria is everything a Strategy needs to score one candidate against a user.
type Criteria struct {
	Profile *models.Profile

	// Mood is the validated context mood, or nil.
	Mood *models.Mood

	// RecentTitles are the lowercased podcast titles of the newest events.
	RecentTitles []string
}

// Strategy scores a single candidate for the given criteria.
type Strategy interface {
	Score(c *Criteria, p *models.Podcast) ScoredPodcast
}

// StrategyFunc adapts an ordinary function to the Strategy interface.
type StrategyFunc func(c *Criteria, p *models.Podcast) ScoredPodcast

// Score calls f(c, p).
func (f StrategyFunc) Score(c *Criteria, p *models.Podcast) ScoredPodcast {
	return f(c, p)
}

// TrackRequest is a single listening activity reported by a client.
type TrackRequest struct {
	PodcastID    string      `json:"podcast_id" validate:"required,max=128"`
	PodcastTitle string      `json:"podcast_title" validate:"max=1024"`
	EpisodeID    string      `json:"episode_id,omitempty" validate:"omitempty,max=128"`
	EpisodeTitle string      `json:"episode_title,omitempty" validate:"omitempty,max=1024"`
	Duration     int         `json:"listen_duration" validate:"min=0"`
	Completed    bool        `json:"completed"`
	Mood         models.Mood `json:"mood,omitempty" validate:"omitempty,mood"`
}

// CorpusReader is the read side of the podcast corpus used by the engine.
type CorpusReader interface {
	FindByKeys(ctx context.Context, ids []string) ([]models.Podcast, error)
	Find(ctx context.Context, match func(*models.Podcast) bool, limit int) ([]models.Podcast, error)
	PodcastsByKeyword(ctx context.Context, keyword string, limit int) ([]models.Podcast, error)
	Search(ctx context.Context, q string, limit int) ([]models.Podcast, error)
}

// HistoryStore persists users, their listening logs and cached profiles.
type HistoryStore interface {
	CreateUser(ctx context.Context, username string) (*models.User, error)
	GetUser(ctx context.Context, userID string) (*models.User, error)
	Append(ctx context.Context, userID string, event models.ListeningEvent) (*models.ListeningEvent, error)
	Events(ctx context.Context, userID string) ([]models.ListeningEvent, error)
	Profile(ctx context.Context, userID string) (*models.Profile, error)
	SaveProfile(ctx context.Context, userID string, profile *models.Profile) error
}
