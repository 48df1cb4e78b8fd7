// MoodCast - Mood-Aware Podcast Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodcast

package catalog

import "github.com/tomtom215/moodcast/internal/models"

// SearchResult is one podcast in a search page, as returned by the catalog.
type SearchResult struct {
	ID             string `json:"id"`
	Title          string `json:"title_original"`
	Description    string `json:"description_original"`
	Image          string `json:"image"`
	Publisher      string `json:"publisher_original"`
	Language       string `json:"language"`
	TotalEpisodes  int    `json:"total_episodes"`
	ListenNotesURL string `json:"listennotes_url"`
	GenreIDs       []int  `json:"genre_ids"`
}

// SearchPage is one page of search results.
type SearchPage struct {
	Results    []SearchResult `json:"results"`
	Count      int            `json:"count"`
	Total      int            `json:"total"`
	NextOffset int            `json:"next_offset"`
}

type podcastResponse struct {
	ID       string           `json:"id"`
	Episodes []models.Episode `json:"episodes"`
}
