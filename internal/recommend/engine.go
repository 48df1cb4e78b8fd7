// MoodCast - Mood-Aware Podcast Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodcast

package recommend

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/moodcast/internal/corpus"
	"github.com/tomtom215/moodcast/internal/history"
	"github.com/tomtom215/moodcast/internal/logging"
	"github.com/tomtom215/moodcast/internal/metrics"
	"github.com/tomtom215/moodcast/internal/models"
	"github.com/tomtom215/moodcast/internal/validation"
)

// Engine serves profiles and mood-aware recommendations.
// It is safe for concurrent use once constructed.
type Engine struct {
	config   *Config
	corpus   CorpusReader
	history  HistoryStore
	builder  *ProfileBuilder
	strategy Strategy
	now      func() time.Time
	logger   zerolog.Logger
}

// registerInput is validated before a user is created.
type registerInput struct {
	Username string `validate:"required,username"`
}

// NewEngine creates a recommendation engine over the given stores.
// A nil cfg uses DefaultConfig.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg *Config, podcasts CorpusReader, hist HistoryStore, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if podcasts == nil || hist == nil {
		return nil, errors.New("corpus and history stores are required")
	}

	return &Engine{
		config:   cfg,
		corpus:   podcasts,
		history:  hist,
		builder:  NewProfileBuilder(podcasts),
		strategy: NewHeuristicStrategy(cfg.Weights),
		now:      time.Now,
		logger:   logger.With().Str("component", "recommend").Logger(),
	}, nil
}

// SetStrategy replaces the scoring strategy. Call before serving requests.
func (e *Engine) SetStrategy(s Strategy) {
	if s != nil {
		e.strategy = s
	}
}

// RegisterUser creates a user with a unique username.
func (e *Engine) RegisterUser(ctx context.Context, username string) (*models.User, error) {
	username = strings.TrimSpace(username)
	if err := validation.ValidateStruct(&registerInput{Username: username}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}

	user, err := e.history.CreateUser(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("register user: %w", err)
	}

	logger := logging.Attach(ctx, e.logger)
	logger.Info().
		Str("user_id", user.ID).
		Str("username", user.Username).
		Msg("registered user")
	return user, nil
}

// TrackActivity appends a listening event to the user's log. The cached
// profile is left alone and goes stale on its own schedule.
func (e *Engine) TrackActivity(ctx context.Context, userID string, req TrackRequest) (*models.ListeningEvent, error) {
	req.Mood = models.Mood(strings.ToLower(strings.TrimSpace(string(req.Mood))))
	if err := validation.ValidateStruct(&req); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}

	event, err := e.history.Append(ctx, userID, models.ListeningEvent{
		PodcastID:      req.PodcastID,
		PodcastTitle:   req.PodcastTitle,
		EpisodeID:      req.EpisodeID,
		EpisodeTitle:   req.EpisodeTitle,
		ListenDuration: req.Duration,
		Completed:      req.Completed,
		ListenedAt:     e.now().UTC(),
		Mood:           req.Mood,
	})
	if err != nil {
		return nil, userError(err, userID)
	}

	metrics.EventsTracked.Inc()
	logger := logging.Attach(ctx, e.logger)
	logger.Debug().
		Str("user_id", userID).
		Str("podcast_id", event.PodcastID).
		Str("mood", string(event.Mood)).
		Msg("tracked listening activity")
	return event, nil
}

// GenerateProfile recomputes the user's profile from the full log and stores it.
func (e *Engine) GenerateProfile(ctx context.Context, userID string) (*models.Profile, error) {
	events, err := e.history.Events(ctx, userID)
	if err != nil {
		return nil, userError(err, userID)
	}
	return e.recompute(ctx, userID, events, "explicit")
}

// GetProfile returns the cached profile when it is fresh, otherwise it
// recomputes and stores a new one.
func (e *Engine) GetProfile(ctx context.Context, userID string) (*models.Profile, error) {
	cached, err := e.history.Profile(ctx, userID)
	if err != nil {
		return nil, userError(err, userID)
	}
	if !cached.IsStale(e.now(), e.config.ProfileTTL) {
		return cached, nil
	}

	events, err := e.history.Events(ctx, userID)
	if err != nil {
		return nil, userError(err, userID)
	}
	return e.recompute(ctx, userID, events, "stale")
}

// Insights summarizes the user's listening from a freshly generated profile.
func (e *Engine) Insights(ctx context.Context, userID string) (*models.Insights, error) {
	events, err := e.history.Events(ctx, userID)
	if err != nil {
		return nil, userError(err, userID)
	}

	profile, err := e.recompute(ctx, userID, events, "explicit")
	if err != nil {
		return nil, err
	}

	total := 0
	for i := range events {
		total += events[i].ListenDuration
	}

	return &models.Insights{
		FavoriteMood:       profile.FavoriteMood(),
		PersonalityTraits:  profile.PersonalityTraits,
		ContentPreferences: profile.ContentPreferences,
		TotalListeningTime: total,
		EventCount:         len(events),
	}, nil
}

// Recommend returns the best-scoring podcasts the user has not listened to.
// mood biases the pool and the score; a nil or unknown mood is ignored.
func (e *Engine) Recommend(ctx context.Context, userID string, mood *models.Mood) ([]ScoredPodcast, error) {
	start := time.Now()
	logger := logging.Attach(ctx, e.logger).With().Str("user_id", userID).Logger()

	events, err := e.history.Events(ctx, userID)
	if err != nil {
		return nil, userError(err, userID)
	}

	profile, err := e.freshProfile(ctx, userID, events)
	if err != nil {
		return nil, err
	}

	criteria := &Criteria{
		Profile:      profile,
		Mood:         contextMood(mood),
		RecentTitles: recentTitles(events, e.config.RecentWindow),
	}

	pool, err := e.corpus.Find(ctx, poolFilter(criteria, listenedIDs(events)), e.config.PoolSize)
	if err != nil {
		return nil, fmt.Errorf("build candidate pool: %w", err)
	}

	results := rank(e.strategy, criteria, pool, e.config.MaxResults)

	moodLabel := ""
	if criteria.Mood != nil {
		moodLabel = criteria.Mood.String()
	}
	metrics.RecordRecommendation(moodLabel, time.Since(start))

	logger.Debug().
		Str("mood", moodLabel).
		Int("pool", len(pool)).
		Int("results", len(results)).
		Dur("duration", time.Since(start)).
		Msg("served recommendations")

	return results, nil
}

// PodcastsByKeyword lists corpus podcasts tagged with keyword.
func (e *Engine) PodcastsByKeyword(ctx context.Context, keyword string, limit int) ([]models.Podcast, error) {
	if limit <= 0 {
		limit = corpus.DefaultListLimit
	}
	return e.corpus.PodcastsByKeyword(ctx, keyword, limit)
}

// SearchPodcasts finds corpus podcasts whose title or description contains q.
func (e *Engine) SearchPodcasts(ctx context.Context, q string, limit int) ([]models.Podcast, error) {
	if limit <= 0 {
		limit = corpus.DefaultListLimit
	}
	return e.corpus.Search(ctx, q, limit)
}

func (e *Engine) freshProfile(ctx context.Context, userID string, events []models.ListeningEvent) (*models.Profile, error) {
	cached, err := e.history.Profile(ctx, userID)
	if err != nil {
		return nil, userError(err, userID)
	}
	if !cached.IsStale(e.now(), e.config.ProfileTTL) {
		return cached, nil
	}
	return e.recompute(ctx, userID, events, "stale")
}

func (e *Engine) recompute(ctx context.Context, userID string, events []models.ListeningEvent, reason string) (*models.Profile, error) {
	profile, err := e.builder.Build(ctx, events)
	if err != nil {
		return nil, fmt.Errorf("build profile for %s: %w", userID, err)
	}
	if err := e.history.SaveProfile(ctx, userID, profile); err != nil {
		return nil, userError(err, userID)
	}

	metrics.ProfileRecomputes.WithLabelValues(reason).Inc()
	logger := logging.Attach(ctx, e.logger)
	logger.Debug().
		Str("user_id", userID).
		Str("reason", reason).
		Strs("traits", profile.PersonalityTraits).
		Int("events", len(events)).
		Msg("recomputed profile")
	return profile, nil
}

// contextMood returns mood when it names a known mood, otherwise nil.
func contextMood(mood *models.Mood) *models.Mood {
	if mood == nil {
		return nil
	}
	m, ok := models.ParseMood(string(*mood))
	if !ok {
		return nil
	}
	return &m
}

func userError(err error, userID string) error {
	if errors.Is(err, history.ErrUserNotFound) {
		return fmt.Errorf("%w: %s", ErrUserNotFound, userID)
	}
	return err
}
