// MoodCast - Mood-Aware Podcast Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodcast

package ingest

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/moodcast/internal/catalog"
	"github.com/tomtom215/moodcast/internal/corpus"
	"github.com/tomtom215/moodcast/internal/models"
	"github.com/tomtom215/moodcast/internal/storage"
)

// fakeCatalog serves canned results per keyword in pages of pageSize.
type fakeCatalog struct {
	mu       sync.Mutex
	pageSize int
	results  map[string][]catalog.SearchResult
	episodes map[string][]models.Episode

	// rateLimitAt makes a keyword return ErrRateLimited at the given offset.
	rateLimitAt map[string]int
	// failSearch makes a keyword's search fail with a status error.
	failSearch map[string]bool
	// failEpisodes makes the detail call fail for a podcast ID.
	failEpisodes map[string]bool
	// onSearch runs before every search.
	onSearch func(keyword string, offset int)

	searches []string
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{
		pageSize:     10,
		results:      map[string][]catalog.SearchResult{},
		episodes:     map[string][]models.Episode{},
		rateLimitAt:  map[string]int{},
		failSearch:   map[string]bool{},
		failEpisodes: map[string]bool{},
	}
}

// addResults registers n results for keyword. Fields depend only on the ID so
// a podcast found under several keywords carries identical catalog data.
func (f *fakeCatalog) addResults(keyword string, n int, prefix string) {
	for i := 0; i < n; i++ {
		id := fmt.Sprintf("%s%02d", prefix, i)
		f.results[keyword] = append(f.results[keyword], catalog.SearchResult{
			ID:            id,
			Title:         "Podcast " + id,
			Description:   "About " + id,
			TotalEpisodes: 10 + i,
			GenreIDs:      []int{i},
		})
	}
}

func (f *fakeCatalog) Search(ctx context.Context, keyword string, offset int) (*catalog.SearchPage, error) {
	if f.onSearch != nil {
		f.onSearch(keyword, offset)
	}

	f.mu.Lock()
	f.searches = append(f.searches, fmt.Sprintf("%s@%d", keyword, offset))
	f.mu.Unlock()

	if at, ok := f.rateLimitAt[keyword]; ok && offset >= at {
		return nil, fmt.Errorf("catalog search: %w", catalog.ErrRateLimited)
	}
	if f.failSearch[keyword] {
		return nil, &catalog.StatusError{Endpoint: "search", StatusCode: 500}
	}

	all := f.results[keyword]
	page := &catalog.SearchPage{Results: []catalog.SearchResult{}}
	if offset < len(all) {
		end := offset + f.pageSize
		if end > len(all) {
			end = len(all)
		}
		page.Results = all[offset:end]
	}
	return page, nil
}

func (f *fakeCatalog) Episodes(ctx context.Context, podcastID string) ([]models.Episode, error) {
	if f.failEpisodes[podcastID] {
		return nil, catalog.ErrCircuitOpen
	}
	return f.episodes[podcastID], nil
}

func (f *fakeCatalog) searchCalls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.searches))
	copy(out, f.searches)
	return out
}

func newTestCorpus(t *testing.T) *corpus.Store {
	t.Helper()
	db, err := storage.OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory() error = %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return corpus.NewStore(db)
}

func newTestPipeline(cat Catalog, store Corpus, opts Options) *Pipeline {
	return NewPipeline(cat, store, opts, zerolog.Nop())
}

func TestIngest_TwoPagesStopsOnShortPage(t *testing.T) {
	cat := newFakeCatalog()
	cat.addResults("calm", 12, "c")
	store := newTestCorpus(t)

	report, err := newTestPipeline(cat, store, DefaultOptions()).Ingest(context.Background(), []string{"calm"})
	if err != nil {
		t.Fatalf("Ingest() error = %v", err)
	}

	if got, want := cat.searchCalls(), []string{"calm@0", "calm@10"}; !reflect.DeepEqual(got, want) {
		t.Errorf("search calls = %v, want %v", got, want)
	}
	if report.Upserted != 12 || report.Processed != 12 {
		t.Errorf("Upserted/Processed = %d/%d, want 12/12", report.Upserted, report.Processed)
	}
	if kr := report.Keywords["calm"]; kr.Pages != 2 {
		t.Errorf("calm pages = %d, want 2", kr.Pages)
	}

	count, err := store.Count(context.Background())
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if count != 12 {
		t.Errorf("corpus size = %d, want 12", count)
	}
}

func TestIngest_StopsOnEmptyPage(t *testing.T) {
	cat := newFakeCatalog()
	cat.addResults("calm", 20, "c")

	report, err := newTestPipeline(cat, newTestCorpus(t), DefaultOptions()).Ingest(context.Background(), []string{"calm"})
	if err != nil {
		t.Fatalf("Ingest() error = %v", err)
	}
	if got, want := cat.searchCalls(), []string{"calm@0", "calm@10", "calm@20"}; !reflect.DeepEqual(got, want) {
		t.Errorf("search calls = %v, want %v", got, want)
	}
	if report.Upserted != 20 {
		t.Errorf("Upserted = %d, want 20", report.Upserted)
	}
}

func TestIngest_MaxPages(t *testing.T) {
	cat := newFakeCatalog()
	cat.addResults("calm", 80, "c")

	report, err := newTestPipeline(cat, newTestCorpus(t), DefaultOptions()).Ingest(context.Background(), []string{"calm"})
	if err != nil {
		t.Fatalf("Ingest() error = %v", err)
	}
	if n := len(cat.searchCalls()); n != 5 {
		t.Errorf("search calls = %d, want 5", n)
	}
	if report.Upserted != 50 {
		t.Errorf("Upserted = %d, want 50", report.Upserted)
	}
}

func TestIngest_RateLimitIsolatedToKeyword(t *testing.T) {
	cat := newFakeCatalog()
	cat.addResults("sad", 30, "s")
	cat.addResults("calm", 12, "c")
	cat.rateLimitAt["sad"] = 10

	opts := DefaultOptions()
	opts.Concurrency = 1
	report, err := newTestPipeline(cat, newTestCorpus(t), opts).Ingest(context.Background(), []string{"sad", "calm"})
	if err != nil {
		t.Fatalf("Ingest() error = %v", err)
	}

	if !reflect.DeepEqual(report.RateLimited, []string{"sad"}) {
		t.Errorf("RateLimited = %v, want [sad]", report.RateLimited)
	}
	if kr := report.Keywords["sad"]; kr.Upserted != 10 || !kr.RateLimited {
		t.Errorf("sad report = %+v, want 10 upserts and rate limited", kr)
	}
	if kr := report.Keywords["calm"]; kr.Upserted != 12 || kr.RateLimited {
		t.Errorf("calm report = %+v, want 12 upserts", kr)
	}
	if report.Errors != 0 {
		t.Errorf("Errors = %d, want 0 (rate limit is not an error)", report.Errors)
	}

	for _, call := range cat.searchCalls() {
		if call == "sad@20" {
			t.Error("sad pagination should stop after the rate limit")
		}
	}
}

func TestIngest_SearchFailureCounted(t *testing.T) {
	cat := newFakeCatalog()
	cat.addResults("calm", 5, "c")
	cat.failSearch["angry"] = true

	report, err := newTestPipeline(cat, newTestCorpus(t), DefaultOptions()).Ingest(context.Background(), []string{"angry", "calm"})
	if err != nil {
		t.Fatalf("Ingest() error = %v", err)
	}
	if report.Errors != 1 {
		t.Errorf("Errors = %d, want 1", report.Errors)
	}
	if report.Upserted != 5 {
		t.Errorf("Upserted = %d, want 5", report.Upserted)
	}
	if len(report.RateLimited) != 0 {
		t.Errorf("RateLimited = %v, want empty", report.RateLimited)
	}
}

func TestIngest_EpisodeFailureStoresEmptyEpisodes(t *testing.T) {
	cat := newFakeCatalog()
	cat.addResults("calm", 2, "c")
	cat.episodes["c00"] = []models.Episode{{ID: "e1", PubDateMS: 1}}
	cat.episodes["c01"] = []models.Episode{{ID: "e2", PubDateMS: 2}}
	cat.failEpisodes["c01"] = true
	store := newTestCorpus(t)

	report, err := newTestPipeline(cat, store, DefaultOptions()).Ingest(context.Background(), []string{"calm"})
	if err != nil {
		t.Fatalf("Ingest() error = %v", err)
	}
	if report.EpisodeFailures != 1 {
		t.Errorf("EpisodeFailures = %d, want 1", report.EpisodeFailures)
	}
	if report.Upserted != 2 {
		t.Errorf("Upserted = %d, want 2", report.Upserted)
	}

	failed, err := store.FindByKey(context.Background(), "c01")
	if err != nil || failed == nil {
		t.Fatalf("FindByKey(c01) = %v, %v", failed, err)
	}
	if failed.Episodes == nil || len(failed.Episodes) != 0 {
		t.Errorf("c01 Episodes = %#v, want empty list", failed.Episodes)
	}

	ok, _ := store.FindByKey(context.Background(), "c00")
	if ok == nil || len(ok.Episodes) != 1 {
		t.Errorf("c00 Episodes = %v, want 1 episode", ok)
	}
}

func TestIngest_EpisodesTruncatedToMostRecent(t *testing.T) {
	cat := newFakeCatalog()
	cat.addResults("calm", 1, "c")
	for i := 0; i < 8; i++ {
		// Deliberately out of order.
		ms := int64((i*5)%8) * 1000
		cat.episodes["c00"] = append(cat.episodes["c00"], models.Episode{ID: fmt.Sprintf("e%d", ms), PubDateMS: ms})
	}
	store := newTestCorpus(t)

	if _, err := newTestPipeline(cat, store, DefaultOptions()).Ingest(context.Background(), []string{"calm"}); err != nil {
		t.Fatalf("Ingest() error = %v", err)
	}

	got, _ := store.FindByKey(context.Background(), "c00")
	if got == nil {
		t.Fatal("c00 missing from corpus")
	}
	if len(got.Episodes) != 5 {
		t.Fatalf("len(Episodes) = %d, want 5", len(got.Episodes))
	}
	for i, want := range []int64{7000, 6000, 5000, 4000, 3000} {
		if got.Episodes[i].PubDateMS != want {
			t.Errorf("Episodes[%d].PubDateMS = %d, want %d", i, got.Episodes[i].PubDateMS, want)
		}
	}
}

func TestIngest_IdempotentAcrossRuns(t *testing.T) {
	cat := newFakeCatalog()
	cat.addResults("calm", 12, "x")
	cat.addResults("happy", 7, "x")
	store := newTestCorpus(t)
	ctx := context.Background()

	snapshot := func() []models.Podcast {
		all, err := store.Find(ctx, nil, 0)
		if err != nil {
			t.Fatalf("Find() error = %v", err)
		}
		for i := range all {
			all[i].LastFetched = time.Time{}
			all[i].Version = 0
		}
		return all
	}

	p := newTestPipeline(cat, store, DefaultOptions())
	if _, err := p.Ingest(ctx, []string{"calm", "happy"}); err != nil {
		t.Fatalf("first Ingest() error = %v", err)
	}
	first := snapshot()

	// Different order, duplicates and casing must converge to the same corpus.
	if _, err := p.Ingest(ctx, []string{"HAPPY", "calm", " calm "}); err != nil {
		t.Fatalf("second Ingest() error = %v", err)
	}
	second := snapshot()

	if len(first) != 12 {
		t.Fatalf("corpus size = %d, want 12", len(first))
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("corpus changed between runs:\n first: %+v\nsecond: %+v", first, second)
	}

	overlap, _ := store.FindByKey(ctx, "x00")
	if overlap == nil || !reflect.DeepEqual(overlap.Keywords, []string{"calm", "happy"}) {
		t.Errorf("x00 keywords = %v, want [calm happy]", overlap)
	}
	if overlap != nil && overlap.Description != "About x00" {
		t.Errorf("x00 description = %q, want About x00", overlap.Description)
	}
}

type failingCorpus struct {
	failID string
	inner  Corpus
}

func (f *failingCorpus) Merge(ctx context.Context, patch *corpus.Patch, keyword string) (*models.Podcast, error) {
	if patch.ID == f.failID {
		return nil, fmt.Errorf("%w: disk full", corpus.ErrPersistence)
	}
	return f.inner.Merge(ctx, patch, keyword)
}

func TestIngest_MergeFailureCountedAndContinues(t *testing.T) {
	cat := newFakeCatalog()
	cat.addResults("calm", 4, "c")
	store := newTestCorpus(t)

	report, err := newTestPipeline(cat, &failingCorpus{failID: "c01", inner: store}, DefaultOptions()).
		Ingest(context.Background(), []string{"calm"})
	if err != nil {
		t.Fatalf("Ingest() error = %v", err)
	}
	if report.Errors != 1 {
		t.Errorf("Errors = %d, want 1", report.Errors)
	}
	if report.Upserted != 3 {
		t.Errorf("Upserted = %d, want 3", report.Upserted)
	}
}

func TestIngest_CanceledBeforeStart(t *testing.T) {
	cat := newFakeCatalog()
	cat.addResults("calm", 3, "c")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report, err := newTestPipeline(cat, newTestCorpus(t), DefaultOptions()).Ingest(ctx, []string{"calm"})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Ingest() error = %v, want context.Canceled", err)
	}
	if report == nil {
		t.Fatal("Ingest() should return a partial report")
	}
	if len(cat.searchCalls()) != 0 {
		t.Errorf("search calls = %v, want none", cat.searchCalls())
	}
}

func TestIngest_CancelAtKeywordBoundary(t *testing.T) {
	cat := newFakeCatalog()
	cat.addResults("calm", 25, "c")
	cat.addResults("happy", 5, "h")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	cat.onSearch = func(keyword string, offset int) {
		if keyword == "calm" && offset == 0 {
			cancel()
		}
	}

	opts := DefaultOptions()
	opts.Concurrency = 1
	report, err := newTestPipeline(cat, newTestCorpus(t), opts).Ingest(ctx, []string{"calm", "happy"})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Ingest() error = %v, want context.Canceled", err)
	}

	// The started keyword runs to completion; the next one never starts.
	if kr := report.Keywords["calm"]; kr.Upserted != 25 {
		t.Errorf("calm upserted = %d, want 25", kr.Upserted)
	}
	if _, ok := report.Keywords["happy"]; ok {
		t.Error("happy should not have started after cancellation")
	}
	for _, call := range cat.searchCalls() {
		if call == "happy@0" {
			t.Error("happy search issued after cancellation")
		}
	}
}

func TestIngest_ParallelKeywords(t *testing.T) {
	cat := newFakeCatalog()
	keywords := []string{"sad", "surprised", "confident", "thoughtful", "happy", "angry", "calm", "tired"}
	for _, kw := range keywords {
		// Shared IDs across keywords exercise concurrent tag unions.
		cat.addResults(kw, 10, "shared")
	}
	store := newTestCorpus(t)

	opts := DefaultOptions()
	opts.Concurrency = 4
	report, err := newTestPipeline(cat, store, opts).Ingest(context.Background(), keywords)
	if err != nil {
		t.Fatalf("Ingest() error = %v", err)
	}
	if report.Errors != 0 {
		t.Fatalf("Errors = %d, want 0", report.Errors)
	}

	got, _ := store.FindByKey(context.Background(), "shared00")
	if got == nil {
		t.Fatal("shared00 missing from corpus")
	}
	want := append([]string(nil), keywords...)
	sort.Strings(want)
	if !reflect.DeepEqual(got.Keywords, want) {
		t.Errorf("Keywords = %v, want %v", got.Keywords, want)
	}
}

func TestNormalizeKeywords(t *testing.T) {
	got := NormalizeKeywords([]string{" Calm", "calm", "", "HAPPY", "  ", "sad"})
	want := []string{"calm", "happy", "sad"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("NormalizeKeywords() = %v, want %v", got, want)
	}
}
