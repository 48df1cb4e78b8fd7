// MoodCast - Mood-Aware Podcast Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodcast

// Package recommend builds listener profiles and ranks podcasts for them.
//
// # Profiles
//
// A profile is derived from the user's listening log by ProfileBuilder:
//
//   - a per-mood histogram with the latest listen time for each mood
//   - content preferences, the union of the corpus tags of every podcast listened to
//   - personality traits from completion rate, average duration, mood spread and volume
//
// Profiles are cached and recomputed lazily once they are older than
// Config.ProfileTTL. GenerateProfile forces a recompute.
//
// # Ranking
//
// Recommend selects a pool of at most Config.PoolSize unheard podcasts from
// the corpus, scores each one with the configured Strategy and returns the
// top Config.MaxResults ordered by score, then podcast ID.
//
// The default HeuristicStrategy awards points per matched rule and records
// each award in ScoredPodcast.Reasons:
//
//	recs, err := engine.Recommend(ctx, userID, &mood)
//	for _, r := range recs {
//	    fmt.Println(r.Podcast.Title, r.Score, r.Reasons)
//	}
//
// Scoring can be replaced without touching the pool or the sort:
//
//	engine.SetStrategy(recommend.StrategyFunc(func(c *recommend.Criteria, p *models.Podcast) recommend.ScoredPodcast {
//	    return recommend.ScoredPodcast{Podcast: *p, Score: p.TotalEpisodes}
//	}))
//
// # Thread Safety
//
// Engine is safe for concurrent use. Concurrent profile recomputes for the
// same user are resolved last writer wins.
package recommend
