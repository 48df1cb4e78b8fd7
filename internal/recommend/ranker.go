// MoodCast - Mood-Aware Podcast Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodcast

package recommend

import (
	"sort"
	"strings"

	"github.com/tomtom215/moodcast/internal/models"
)

// poolFilter returns the corpus predicate that selects scoring candidates.
// Podcasts in exclude never qualify. With a mood, candidates must mention it
// in their tags, title or description. Without one, they must share a
// preference tag or carry a preference in the title. An empty preference list
// leaves the pool unrestricted.
func poolFilter(c *Criteria, exclude map[string]struct{}) func(*models.Podcast) bool {
	var preferences []string
	if c.Profile != nil {
		for _, pref := range c.Profile.ContentPreferences {
			if pref != "" {
				preferences = append(preferences, strings.ToLower(pref))
			}
		}
	}

	return func(p *models.Podcast) bool {
		if _, seen := exclude[p.ID]; seen {
			return false
		}

		title := strings.ToLower(p.Title)
		tags := tagSet(p)

		if c.Mood != nil {
			mood := strings.ToLower(c.Mood.String())
			if _, ok := tags[mood]; ok {
				return true
			}
			return strings.Contains(title, mood) ||
				strings.Contains(strings.ToLower(p.Description), mood)
		}

		if len(preferences) == 0 {
			return true
		}
		for _, pref := range preferences {
			if _, ok := tags[pref]; ok {
				return true
			}
			if strings.Contains(title, pref) {
				return true
			}
		}
		return false
	}
}

// rank scores every candidate and returns the best limit of them, ordered by
// score descending and podcast ID ascending.
func rank(strategy Strategy, c *Criteria, pool []models.Podcast, limit int) []ScoredPodcast {
	scored := make([]ScoredPodcast, 0, len(pool))
	for i := range pool {
		scored = append(scored, strategy.Score(c, &pool[i]))
	}

	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		return scored[i].Podcast.ID < scored[j].Podcast.ID
	})

	if limit > 0 && len(scored) > limit {
		scored = scored[:limit]
	}
	return scored
}

// recentTitles returns the lowercased podcast titles of the newest window
// events. events are ordered oldest first.
func recentTitles(events []models.ListeningEvent, window int) []string {
	start := len(events) - window
	if start < 0 {
		start = 0
	}
	titles := make([]string, 0, len(events)-start)
	for i := len(events) - 1; i >= start; i-- {
		titles = append(titles, strings.ToLower(events[i].PodcastTitle))
	}
	return titles
}

func listenedIDs(events []models.ListeningEvent) map[string]struct{} {
	ids := make(map[string]struct{}, len(events))
	for i := range events {
		ids[events[i].PodcastID] = struct{}{}
	}
	return ids
}
