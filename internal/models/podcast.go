// MoodCast - Mood-Aware Podcast Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodcast

package models

import (
	"sort"
	"time"
)

// MaxEpisodes is the number of most recent episodes kept per podcast.
const MaxEpisodes = 5

// Episode is a summary of one podcast episode.
type Episode struct {
	ID             string `json:"id"`
	Title          string `json:"title"`
	Description    string `json:"description"`
	Audio          string `json:"audio"`
	PubDateMS      int64  `json:"pub_date_ms"`
	ListenNotesURL string `json:"listennotes_url"`
}

// Podcast is a candidate stored in the corpus, keyed by its external ID.
//
// Keywords is a set (sorted, unique) that only ever grows: every ingestion run
// unions the keyword that surfaced the podcast into it. All other catalog fields
// are snapshots replaced by the latest fetch.
type Podcast struct {
	ID             string    `json:"podcast_id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	Image          string    `json:"image"`
	Publisher      string    `json:"publisher"`
	Language       string    `json:"language"`
	TotalEpisodes  int       `json:"total_episodes"`
	ListenNotesURL string    `json:"listennotes_url"`
	Genres         []int     `json:"genres"`
	Keywords       []string  `json:"keywords"`
	Episodes       []Episode `json:"episodes"`
	LastFetched    time.Time `json:"last_fetched"`

	// Version increments on every merge.
	Version int64 `json:"version"`
}

// HasKeyword reports whether kw is in the podcast's keyword-tag set.
// The comparison is exact; keywords are stored normalized.
func (p *Podcast) HasKeyword(kw string) bool {
	i := sort.SearchStrings(p.Keywords, kw)
	return i < len(p.Keywords) && p.Keywords[i] == kw
}

// UnionKeywords returns the sorted, de-duplicated union of existing and add.
// The input slices are not modified.
func UnionKeywords(existing []string, add ...string) []string {
	seen := make(map[string]struct{}, len(existing)+len(add))
	out := make([]string, 0, len(existing)+len(add))
	for _, set := range [][]string{existing, add} {
		for _, kw := range set {
			if kw == "" {
				continue
			}
			if _, dup := seen[kw]; dup {
				continue
			}
			seen[kw] = struct{}{}
			out = append(out, kw)
		}
	}
	sort.Strings(out)
	return out
}

// RecentEpisodes returns at most limit episodes ordered newest first.
// Ordering is by publish time, then by ID for a stable result.
func RecentEpisodes(episodes []Episode, limit int) []Episode {
	out := make([]Episode, len(episodes))
	copy(out, episodes)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].PubDateMS != out[j].PubDateMS {
			return out[i].PubDateMS > out[j].PubDateMS
		}
		return out[i].ID < out[j].ID
	})
	if limit >= 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
