// MoodCast - Mood-Aware Podcast Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodcast

package corpus

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/tomtom215/moodcast/internal/models"
	"github.com/tomtom215/moodcast/internal/storage"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := storage.OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory() error = %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return NewStore(db)
}

func testPatch(id, title string) *Patch {
	return &Patch{
		ID:            id,
		Title:         title,
		Description:   "A show about " + title,
		Publisher:     "Test FM",
		Language:      "English",
		TotalEpisodes: 12,
		Genres:        []int{68, 127},
		Episodes: []models.Episode{
			{ID: id + "-e1", Title: "Pilot", PubDateMS: 1000},
		},
		FetchedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

func TestMerge_Insert(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	got, err := store.Merge(ctx, testPatch("p1", "Calm Mornings"), "Calm")
	if err != nil {
		t.Fatalf("Merge() error = %v", err)
	}
	if got.Version != 1 {
		t.Errorf("Version = %d, want 1", got.Version)
	}
	if !reflect.DeepEqual(got.Keywords, []string{"calm"}) {
		t.Errorf("Keywords = %v, want [calm]", got.Keywords)
	}

	stored, err := store.FindByKey(ctx, "p1")
	if err != nil {
		t.Fatalf("FindByKey() error = %v", err)
	}
	if stored == nil {
		t.Fatal("FindByKey() = nil, want candidate")
	}
	if stored.Title != "Calm Mornings" || stored.Publisher != "Test FM" {
		t.Errorf("stored = %+v", stored)
	}
	if len(stored.Episodes) != 1 {
		t.Errorf("Episodes = %v, want 1 episode", stored.Episodes)
	}
}

func TestMerge_Idempotent(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	first, err := store.Merge(ctx, testPatch("p1", "Calm Mornings"), "calm")
	if err != nil {
		t.Fatalf("Merge() error = %v", err)
	}

	again := testPatch("p1", "Calm Mornings")
	again.FetchedAt = first.LastFetched.Add(time.Hour)
	second, err := store.Merge(ctx, again, "calm")
	if err != nil {
		t.Fatalf("Merge() error = %v", err)
	}

	if second.Version != first.Version+1 {
		t.Errorf("Version = %d, want %d", second.Version, first.Version+1)
	}
	if !second.LastFetched.After(first.LastFetched) {
		t.Errorf("LastFetched did not advance: %v -> %v", first.LastFetched, second.LastFetched)
	}

	// Apart from LastFetched and Version the record is unchanged.
	a, b := *first, *second
	a.LastFetched, b.LastFetched = time.Time{}, time.Time{}
	a.Version, b.Version = 0, 0
	if !reflect.DeepEqual(a, b) {
		t.Errorf("re-merge changed the record:\n first: %+v\nsecond: %+v", a, b)
	}

	count, err := store.Count(ctx)
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if count != 1 {
		t.Errorf("Count() = %d, want 1", count)
	}
}

func TestMerge_KeywordsMonotonic(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	var prev []string
	for _, kw := range []string{"happy", "calm", "happy", "", "sad"} {
		p := testPatch("p1", "Changing Title "+kw)
		got, err := store.Merge(ctx, p, kw)
		if err != nil {
			t.Fatalf("Merge(%q) error = %v", kw, err)
		}
		for _, old := range prev {
			if !got.HasKeyword(old) {
				t.Errorf("keyword %q lost after merging %q: %v", old, kw, got.Keywords)
			}
		}
		prev = got.Keywords
	}

	want := []string{"calm", "happy", "sad"}
	if !reflect.DeepEqual(prev, want) {
		t.Errorf("Keywords = %v, want %v", prev, want)
	}
}

func TestMerge_ScalarsReplaced(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if _, err := store.Merge(ctx, testPatch("p1", "Old"), "calm"); err != nil {
		t.Fatalf("Merge() error = %v", err)
	}
	updated := testPatch("p1", "New")
	updated.TotalEpisodes = 99
	updated.Episodes = nil

	got, err := store.Merge(ctx, updated, "calm")
	if err != nil {
		t.Fatalf("Merge() error = %v", err)
	}
	if got.Title != "New" || got.TotalEpisodes != 99 {
		t.Errorf("scalars not replaced: %+v", got)
	}
	if len(got.Episodes) != 0 {
		t.Errorf("Episodes = %v, want empty", got.Episodes)
	}
}

func TestMerge_ConcurrentKeywords(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	keywords := []string{"sad", "surprised", "confident", "thoughtful", "happy", "angry", "calm", "tired"}
	var wg sync.WaitGroup
	errs := make(chan error, len(keywords))
	for _, kw := range keywords {
		wg.Add(1)
		go func(kw string) {
			defer wg.Done()
			if _, err := store.Merge(ctx, testPatch("shared", "Shared"), kw); err != nil {
				errs <- err
			}
		}(kw)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Errorf("concurrent Merge() error = %v", err)
	}

	got, err := store.FindByKey(ctx, "shared")
	if err != nil || got == nil {
		t.Fatalf("FindByKey() = %v, %v", got, err)
	}
	if len(got.Keywords) != len(keywords) {
		t.Errorf("Keywords = %v, want all %d keywords", got.Keywords, len(keywords))
	}
	if got.Version != int64(len(keywords)) {
		t.Errorf("Version = %d, want %d", got.Version, len(keywords))
	}
}

func TestMerge_InvalidPatch(t *testing.T) {
	store := newTestStore(t)
	if _, err := store.Merge(context.Background(), &Patch{}, "calm"); !errors.Is(err, ErrInvalidPodcast) {
		t.Errorf("Merge() error = %v, want ErrInvalidPodcast", err)
	}
}

func TestMerge_ClosedStore(t *testing.T) {
	db, err := storage.OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory() error = %v", err)
	}
	store := NewStore(db)
	_ = db.Close()

	if _, err := store.Merge(context.Background(), testPatch("p1", "x"), "calm"); !errors.Is(err, ErrPersistence) {
		t.Errorf("Merge() error = %v, want ErrPersistence", err)
	}
}

func TestFindByKeys_SkipsMissing(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for _, id := range []string{"a", "b"} {
		if _, err := store.Merge(ctx, testPatch(id, id), "calm"); err != nil {
			t.Fatalf("Merge() error = %v", err)
		}
	}

	got, err := store.FindByKeys(ctx, []string{"b", "missing", "a"})
	if err != nil {
		t.Fatalf("FindByKeys() error = %v", err)
	}
	if len(got) != 2 || got[0].ID != "b" || got[1].ID != "a" {
		t.Errorf("FindByKeys() = %v, want [b a]", got)
	}

	missing, err := store.FindByKey(ctx, "missing")
	if err != nil || missing != nil {
		t.Errorf("FindByKey(missing) = %v, %v, want nil, nil", missing, err)
	}
}

func TestFind_KeyOrderAndLimit(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for _, id := range []string{"c", "a", "d", "b"} {
		if _, err := store.Merge(ctx, testPatch(id, id), "calm"); err != nil {
			t.Fatalf("Merge() error = %v", err)
		}
	}

	got, err := store.Find(ctx, nil, 3)
	if err != nil {
		t.Fatalf("Find() error = %v", err)
	}
	var ids []string
	for _, p := range got {
		ids = append(ids, p.ID)
	}
	if !reflect.DeepEqual(ids, []string{"a", "b", "c"}) {
		t.Errorf("Find() ids = %v, want [a b c]", ids)
	}
}

func TestPodcastsByKeyword(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for i := 0; i < 60; i++ {
		kw := "calm"
		if i%2 == 0 {
			kw = "happy"
		}
		if _, err := store.Merge(ctx, testPatch(fmt.Sprintf("p%02d", i), "Show"), kw); err != nil {
			t.Fatalf("Merge() error = %v", err)
		}
	}

	calm, err := store.PodcastsByKeyword(ctx, "Calm", 0)
	if err != nil {
		t.Fatalf("PodcastsByKeyword() error = %v", err)
	}
	if len(calm) != 30 {
		t.Errorf("len(calm) = %d, want 30", len(calm))
	}
	for _, p := range calm {
		if !p.HasKeyword("calm") {
			t.Errorf("%s lacks keyword calm", p.ID)
		}
	}

	all, err := store.PodcastsByKeyword(ctx, "", 0)
	if err != nil {
		t.Fatalf("PodcastsByKeyword() error = %v", err)
	}
	if len(all) != DefaultListLimit {
		t.Errorf("len(all) = %d, want %d", len(all), DefaultListLimit)
	}
}

func TestSearch(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	fixtures := []*Patch{
		{ID: "p1", Title: "The Happy Hour", Description: "Jokes"},
		{ID: "p2", Title: "Deep Focus", Description: "a HAPPY place to work"},
		{ID: "p3", Title: "Night Shift", Description: "Quiet"},
	}
	for _, p := range fixtures {
		if _, err := store.Merge(ctx, p, "happy"); err != nil {
			t.Fatalf("Merge() error = %v", err)
		}
	}

	tests := []struct {
		q    string
		want []string
	}{
		{q: "happy", want: []string{"p1", "p2"}},
		{q: "  NIGHT ", want: []string{"p3"}},
		{q: "", want: nil},
		{q: "   ", want: nil},
		{q: "absent", want: nil},
	}
	for _, tt := range tests {
		t.Run(tt.q, func(t *testing.T) {
			got, err := store.Search(ctx, tt.q, 0)
			if err != nil {
				t.Fatalf("Search() error = %v", err)
			}
			var ids []string
			for _, p := range got {
				ids = append(ids, p.ID)
			}
			if !reflect.DeepEqual(ids, tt.want) {
				t.Errorf("Search(%q) = %v, want %v", tt.q, ids, tt.want)
			}
		})
	}
}
