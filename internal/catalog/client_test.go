// MoodCast - Mood-Aware Podcast Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodcast

package catalog

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/moodcast/internal/config"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewClient(&config.CatalogConfig{
		BaseURL:           server.URL + "/api/v2",
		APIKey:            "test-key",
		Timeout:           5 * time.Second,
		RequestsPerSecond: 1000,
		Burst:             100,
	}, zerolog.Nop())
}

func TestSearch_RequestParameters(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v2/search" {
			t.Errorf("path = %q, want /api/v2/search", r.URL.Path)
		}
		if got := r.Header.Get("X-ListenAPI-Key"); got != "test-key" {
			t.Errorf("X-ListenAPI-Key = %q, want test-key", got)
		}

		want := map[string]string{
			"q":            "calm",
			"type":         "podcast",
			"offset":       "20",
			"len_min":      "10",
			"len_max":      "300",
			"sort_by_date": "0",
			"only_in":      "title,description",
			"language":     "English",
			"safe_mode":    "1",
		}
		q := r.URL.Query()
		for key, value := range want {
			if got := q.Get(key); got != value {
				t.Errorf("query %s = %q, want %q", key, got, value)
			}
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"count":1,"total":1,"next_offset":30,"results":[{
			"id":"abc","title_original":"Calm Minds","description_original":"Breathe",
			"image":"https://img/abc.jpg","publisher_original":"Quiet FM","language":"English",
			"total_episodes":64,"listennotes_url":"https://ln/abc","genre_ids":[88,111]}]}`))
	}))

	page, err := client.Search(context.Background(), "calm", 20)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(page.Results) != 1 {
		t.Fatalf("len(Results) = %d, want 1", len(page.Results))
	}

	got := page.Results[0]
	if got.ID != "abc" || got.Title != "Calm Minds" || got.Description != "Breathe" {
		t.Errorf("result = %+v", got)
	}
	if got.Publisher != "Quiet FM" || got.TotalEpisodes != 64 || len(got.GenreIDs) != 2 {
		t.Errorf("result = %+v", got)
	}
	if page.NextOffset != 30 {
		t.Errorf("NextOffset = %d, want 30", page.NextOffset)
	}
}

func TestSearch_MissingResults(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"count":0}`))
	}))

	page, err := client.Search(context.Background(), "calm", 0)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if page.Results == nil || len(page.Results) != 0 {
		t.Errorf("Results = %#v, want empty non-nil slice", page.Results)
	}
}

func TestSearch_StatusHandling(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		wantLimited bool
	}{
		{name: "rate limited", status: http.StatusTooManyRequests, wantLimited: true},
		{name: "unauthorized", status: http.StatusUnauthorized},
		{name: "server error", status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls atomic.Int32
			client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				calls.Add(1)
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte("nope"))
			}))

			_, err := client.Search(context.Background(), "calm", 0)
			if err == nil {
				t.Fatal("Search() error = nil")
			}
			if calls.Load() != 1 {
				t.Errorf("calls = %d, want 1 (no retry)", calls.Load())
			}

			if tt.wantLimited {
				if !errors.Is(err, ErrRateLimited) {
					t.Errorf("error = %v, want ErrRateLimited", err)
				}
				return
			}

			var statusErr *StatusError
			if !errors.As(err, &statusErr) {
				t.Fatalf("error = %v, want *StatusError", err)
			}
			if statusErr.StatusCode != tt.status {
				t.Errorf("StatusCode = %d, want %d", statusErr.StatusCode, tt.status)
			}
			if !errors.Is(err, ErrUnexpectedStatus) {
				t.Error("StatusError should wrap ErrUnexpectedStatus")
			}
			if errors.Is(err, ErrRateLimited) {
				t.Error("StatusError must not match ErrRateLimited")
			}
		})
	}
}

func TestEpisodes(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v2/podcasts/abc" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if r.URL.Query().Get("sort") != "recent_first" {
			t.Errorf("sort = %q, want recent_first", r.URL.Query().Get("sort"))
		}
		_, _ = w.Write([]byte(`{"id":"abc","episodes":[
			{"id":"e2","title":"Two","description":"d2","audio":"https://a/2.mp3","pub_date_ms":2000,"listennotes_url":"https://ln/e2"},
			{"id":"e1","title":"One","description":"d1","audio":"https://a/1.mp3","pub_date_ms":1000,"listennotes_url":"https://ln/e1"}]}`))
	}))

	episodes, err := client.Episodes(context.Background(), "abc")
	if err != nil {
		t.Fatalf("Episodes() error = %v", err)
	}
	if len(episodes) != 2 {
		t.Fatalf("len(episodes) = %d, want 2", len(episodes))
	}
	if episodes[0].ID != "e2" || episodes[0].PubDateMS != 2000 || episodes[0].Audio != "https://a/2.mp3" {
		t.Errorf("episodes[0] = %+v", episodes[0])
	}
}

func TestEpisodes_BreakerOpens(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		if _, err := client.Episodes(ctx, "abc"); !errors.Is(err, ErrUnexpectedStatus) {
			t.Fatalf("call %d error = %v, want ErrUnexpectedStatus", i, err)
		}
	}

	_, err := client.Episodes(ctx, "abc")
	if !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("error = %v, want ErrCircuitOpen", err)
	}
	if calls.Load() != 10 {
		t.Errorf("server calls = %d, want 10", calls.Load())
	}
}

func TestEpisodes_RateLimitDoesNotTrip(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	ctx := context.Background()

	for i := 0; i < 15; i++ {
		_, err := client.Episodes(ctx, "abc")
		if !errors.Is(err, ErrRateLimited) {
			t.Fatalf("call %d error = %v, want ErrRateLimited", i, err)
		}
	}
}

func TestSearch_CanceledContext(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"results":[]}`))
	}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := client.Search(ctx, "calm", 0); !errors.Is(err, context.Canceled) {
		t.Errorf("Search() error = %v, want context.Canceled", err)
	}
}
