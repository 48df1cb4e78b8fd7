// MoodCast - Mood-Aware Podcast Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodcast

package corpus

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/tomtom215/moodcast/internal/models"
	"github.com/tomtom215/moodcast/internal/storage"
)

// Key prefixes for BadgerDB storage
const (
	podcastKeyPrefix = "podcast:"
)

// Default result caps for corpus queries.
const (
	DefaultListLimit = 50
)

var (
	// ErrPersistence wraps any failure to read or write the corpus.
	ErrPersistence = errors.New("corpus persistence failure")

	// ErrInvalidPodcast is returned when a patch has no ID.
	ErrInvalidPodcast = errors.New("podcast ID is required")
)

// Store is the durable podcast corpus.
//
// Candidates are keyed by catalog podcast ID. Merge is the only writer and is
// idempotent apart from LastFetched and Version.
type Store struct {
	db  *storage.DB
	now func() time.Time
}

// NewStore creates a corpus store on an open database.
func NewStore(db *storage.DB) *Store {
	return &Store{db: db, now: time.Now}
}

// Patch carries the catalog-provided fields of a candidate.
type Patch struct {
	ID             string
	Title          string
	Description    string
	Image          string
	Publisher      string
	Language       string
	TotalEpisodes  int
	ListenNotesURL string
	Genres         []int
	Episodes       []models.Episode
	FetchedAt      time.Time
}

func podcastKey(id string) []byte {
	return []byte(podcastKeyPrefix + id)
}

// Merge upserts a candidate. Scalar fields and episodes are replaced, the
// keyword is unioned into the existing tag set, and Version is incremented.
// Concurrent merges of the same ID never lose a keyword.
func (s *Store) Merge(ctx context.Context, patch *Patch, keyword string) (*models.Podcast, error) {
	if patch == nil || patch.ID == "" {
		return nil, ErrInvalidPodcast
	}

	keyword = strings.ToLower(strings.TrimSpace(keyword))
	fetchedAt := patch.FetchedAt
	if fetchedAt.IsZero() {
		fetchedAt = s.now()
	}

	var merged models.Podcast
	err := s.db.Update(ctx, "corpus", func(txn *badger.Txn) error {
		var existing models.Podcast
		found, err := getPodcast(txn, patch.ID, &existing)
		if err != nil {
			return err
		}

		merged = models.Podcast{
			ID:             patch.ID,
			Title:          patch.Title,
			Description:    patch.Description,
			Image:          patch.Image,
			Publisher:      patch.Publisher,
			Language:       patch.Language,
			TotalEpisodes:  patch.TotalEpisodes,
			ListenNotesURL: patch.ListenNotesURL,
			Genres:         patch.Genres,
			Episodes:       patch.Episodes,
			LastFetched:    fetchedAt.UTC(),
			Version:        1,
		}
		if merged.Genres == nil {
			merged.Genres = []int{}
		}
		if merged.Episodes == nil {
			merged.Episodes = []models.Episode{}
		}
		if found {
			merged.Keywords = models.UnionKeywords(existing.Keywords, keyword)
			merged.Version = existing.Version + 1
		} else {
			merged.Keywords = models.UnionKeywords(nil, keyword)
		}

		data, err := json.Marshal(&merged)
		if err != nil {
			return fmt.Errorf("marshal podcast: %w", err)
		}
		return txn.Set(podcastKey(patch.ID), data)
	})
	if err != nil {
		return nil, fmt.Errorf("%w: merge podcast %s: %w", ErrPersistence, patch.ID, err)
	}

	return &merged, nil
}

// FindByKey returns the candidate with the given ID, or nil when absent.
func (s *Store) FindByKey(ctx context.Context, id string) (*models.Podcast, error) {
	var podcast models.Podcast
	var found bool

	err := s.db.View(func(txn *badger.Txn) error {
		var err error
		found, err = getPodcast(txn, id, &podcast)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("%w: get podcast %s: %w", ErrPersistence, id, err)
	}
	if !found {
		return nil, nil
	}
	return &podcast, nil
}

// FindByKeys resolves a set of IDs in one read transaction. Missing IDs are
// skipped; the result follows the order of ids.
func (s *Store) FindByKeys(ctx context.Context, ids []string) ([]models.Podcast, error) {
	out := make([]models.Podcast, 0, len(ids))

	err := s.db.View(func(txn *badger.Txn) error {
		for _, id := range ids {
			if err := ctx.Err(); err != nil {
				return err
			}
			var podcast models.Podcast
			found, err := getPodcast(txn, id, &podcast)
			if err != nil {
				return err
			}
			if found {
				out = append(out, podcast)
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: get podcasts: %w", ErrPersistence, err)
	}
	return out, nil
}

// Find scans the corpus in key order and returns up to limit candidates that
// satisfy match. A limit <= 0 means no cap.
func (s *Store) Find(ctx context.Context, match func(*models.Podcast) bool, limit int) ([]models.Podcast, error) {
	var out []models.Podcast

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(podcastKeyPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}

			var podcast models.Podcast
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &podcast)
			}); err != nil {
				return fmt.Errorf("decode %s: %w", it.Item().Key(), err)
			}

			if match != nil && !match(&podcast) {
				continue
			}
			out = append(out, podcast)
			if limit > 0 && len(out) >= limit {
				return nil
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: scan podcasts: %w", ErrPersistence, err)
	}
	if out == nil {
		out = []models.Podcast{}
	}
	return out, nil
}

// PodcastsByKeyword lists candidates tagged with keyword in key order. An
// empty keyword lists the whole corpus. A limit <= 0 uses DefaultListLimit.
func (s *Store) PodcastsByKeyword(ctx context.Context, keyword string, limit int) ([]models.Podcast, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	keyword = strings.ToLower(strings.TrimSpace(keyword))

	var match func(*models.Podcast) bool
	if keyword != "" {
		match = func(p *models.Podcast) bool { return p.HasKeyword(keyword) }
	}
	return s.Find(ctx, match, limit)
}

// Search returns candidates whose title or description contains q,
// case-insensitively. A blank query returns no results.
func (s *Store) Search(ctx context.Context, q string, limit int) ([]models.Podcast, error) {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return []models.Podcast{}, nil
	}
	if limit <= 0 {
		limit = DefaultListLimit
	}

	return s.Find(ctx, func(p *models.Podcast) bool {
		return strings.Contains(strings.ToLower(p.Title), q) ||
			strings.Contains(strings.ToLower(p.Description), q)
	}, limit)
}

// Count returns the number of candidates in the corpus.
func (s *Store) Count(ctx context.Context) (int, error) {
	count := 0
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = []byte(podcastKeyPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			count++
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("%w: count podcasts: %w", ErrPersistence, err)
	}
	return count, nil
}

func getPodcast(txn *badger.Txn, id string, dst *models.Podcast) (bool, error) {
	item, err := txn.Get(podcastKey(id))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("get podcast: %w", err)
	}

	if err := item.Value(func(val []byte) error {
		return json.Unmarshal(val, dst)
	}); err != nil {
		return false, fmt.Errorf("decode podcast: %w", err)
	}
	return true, nil
}
