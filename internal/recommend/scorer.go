// MoodCast - Mood-Aware Podcast Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodcast

package recommend

import (
	"strings"

	"github.com/tomtom215/moodcast/internal/models"
)

// HeuristicStrategy scores candidates with fixed points for preference,
// mood, diversity and popularity matches.
type HeuristicStrategy struct {
	weights Weights
}

// NewHeuristicStrategy creates a heuristic scorer with the given point table.
func NewHeuristicStrategy(w Weights) *HeuristicStrategy {
	return &HeuristicStrategy{weights: w}
}

// Score implements Strategy.
func (h *HeuristicStrategy) Score(c *Criteria, p *models.Podcast) ScoredPodcast {
	sp := ScoredPodcast{Podcast: *p, Reasons: []Reason{}}
	award := func(rule string, points int, detail string) {
		sp.Score += points
		sp.Reasons = append(sp.Reasons, Reason{Rule: rule, Points: points, Detail: detail})
	}

	title := strings.ToLower(p.Title)
	description := strings.ToLower(p.Description)
	tags := tagSet(p)

	var preferences []string
	if c.Profile != nil {
		preferences = c.Profile.ContentPreferences
	}

	for _, pref := range preferences {
		if _, ok := tags[strings.ToLower(pref)]; ok {
			award(RulePreferenceTag, h.weights.PreferenceTag, pref)
		}
	}
	for _, pref := range preferences {
		if pref != "" && strings.Contains(title, strings.ToLower(pref)) {
			award(RulePreferenceTitle, h.weights.PreferenceTitle, pref)
			break
		}
	}

	if c.Mood != nil {
		mood := strings.ToLower(c.Mood.String())
		if _, ok := tags[mood]; ok {
			award(RuleMoodTag, h.weights.MoodTag, mood)
		}
		if strings.Contains(title, mood) {
			award(RuleMoodTitle, h.weights.MoodTitle, mood)
		}
		if strings.Contains(description, mood) {
			award(RuleMoodDescription, h.weights.MoodDescription, mood)
		}
	}

	if !diversityCollision(title, c.RecentTitles) {
		award(RuleDiversity, h.weights.Diversity, "")
	}

	if p.TotalEpisodes > h.weights.PopularityThreshold {
		award(RulePopularity, h.weights.Popularity, "")
	}

	return sp
}

// diversityCollision reports whether the first word of title appears in any
// recently listened title.
func diversityCollision(title string, recent []string) bool {
	first := ""
	if fields := strings.Fields(title); len(fields) > 0 {
		first = fields[0]
	}
	for _, t := range recent {
		if strings.Contains(t, first) {
			return true
		}
	}
	return false
}

func tagSet(p *models.Podcast) map[string]struct{} {
	tags := make(map[string]struct{}, len(p.Keywords))
	for _, kw := range p.Keywords {
		tags[strings.ToLower(kw)] = struct{}{}
	}
	return tags
}
