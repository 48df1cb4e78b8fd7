// MoodCast - Mood-Aware Podcast Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodcast

/*
client.go - Listen Notes catalog client

Client Features:
  - HTTP client with configurable timeout
  - API key authentication via the X-ListenAPI-Key header
  - Outbound token-bucket rate limiting (golang.org/x/time/rate)
  - Circuit breaker on the podcast detail endpoint (breaker.go)
  - JSON response parsing with goccy/go-json
  - Context support for cancellation and timeouts

HTTP 429 is surfaced as ErrRateLimited and never retried; the ingestion
pipeline decides what to do with it.
*/

//nolint:staticcheck // File documentation, not package doc
package catalog

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/tomtom215/moodcast/internal/config"
	"github.com/tomtom215/moodcast/internal/metrics"
	"github.com/tomtom215/moodcast/internal/models"
)

// maxErrorBodySize limits the amount of response body read for error reporting.
const maxErrorBodySize = 4 * 1024

// apiKeyHeader carries the catalog API key.
const apiKeyHeader = "X-ListenAPI-Key"

// Fixed search filters.
const (
	SearchLenMin   = 10
	SearchLenMax   = 300
	SearchLanguage = "English"
	SearchOnlyIn   = "title,description"
)

// readBodyForError reads the response body for error reporting.
func readBodyForError(r io.Reader) string {
	body, err := io.ReadAll(io.LimitReader(r, maxErrorBodySize))
	if err != nil {
		return "(failed to read response body)"
	}
	return strings.TrimSpace(string(body))
}

// Client talks to the Listen Notes API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	limiter    *rate.Limiter
	breaker    *gobreaker.CircuitBreaker[interface{}]
	logger     zerolog.Logger
}

// NewClient creates a catalog client from configuration.
//
//nolint:gocritic // zerolog.Logger passed by value
func NewClient(cfg *config.CatalogConfig, logger zerolog.Logger) *Client {
	logger = logger.With().Str("component", "catalog").Logger()

	burst := cfg.Burst
	if burst < 1 {
		burst = 1
	}

	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		limiter:    rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), burst),
		breaker:    newDetailBreaker("listennotes-podcast", logger),
		logger:     logger,
	}
}

// Search fetches one page of podcast results for keyword starting at offset.
func (c *Client) Search(ctx context.Context, keyword string, offset int) (*SearchPage, error) {
	params := url.Values{}
	params.Set("q", keyword)
	params.Set("type", "podcast")
	params.Set("offset", strconv.Itoa(offset))
	params.Set("len_min", strconv.Itoa(SearchLenMin))
	params.Set("len_max", strconv.Itoa(SearchLenMax))
	params.Set("sort_by_date", "0")
	params.Set("only_in", SearchOnlyIn)
	params.Set("language", SearchLanguage)
	params.Set("safe_mode", "1")

	var page SearchPage
	if err := c.getJSON(ctx, "search", "/search?"+params.Encode(), &page); err != nil {
		return nil, err
	}
	if page.Results == nil {
		page.Results = []SearchResult{}
	}
	return &page, nil
}

// Episodes fetches a podcast's episodes, most recent first, through the
// detail endpoint circuit breaker.
func (c *Client) Episodes(ctx context.Context, podcastID string) ([]models.Episode, error) {
	result, err := c.breaker.Execute(func() (interface{}, error) {
		var resp podcastResponse
		path := "/podcasts/" + url.PathEscape(podcastID) + "?sort=recent_first"
		if err := c.getJSON(ctx, "podcast", path, &resp); err != nil {
			return nil, err
		}
		return resp.Episodes, nil
	})
	if err != nil {
		return nil, breakerError(c.breaker.Name(), err)
	}
	metrics.CircuitBreakerRequests.WithLabelValues(c.breaker.Name(), "success").Inc()

	episodes, _ := result.([]models.Episode)
	if episodes == nil {
		episodes = []models.Episode{}
	}
	return episodes, nil
}

// getJSON performs a rate-limited GET and decodes a 200 response into dst.
func (c *Client) getJSON(ctx context.Context, endpoint, path string, dst interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("catalog rate limiter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, http.NoBody)
	if err != nil {
		return fmt.Errorf("create %s request: %w", endpoint, err)
	}
	req.Header.Set(apiKeyHeader, c.apiKey)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.RecordCatalogRequest(endpoint, "error", time.Since(start))
		return fmt.Errorf("catalog %s request failed: %w", endpoint, err)
	}
	defer resp.Body.Close()
	metrics.RecordCatalogRequest(endpoint, strconv.Itoa(resp.StatusCode), time.Since(start))

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusTooManyRequests:
		c.logger.Warn().Str("endpoint", endpoint).Msg("Catalog rate limit hit")
		return fmt.Errorf("catalog %s: %w", endpoint, ErrRateLimited)
	default:
		return &StatusError{
			Endpoint:   endpoint,
			StatusCode: resp.StatusCode,
			Body:       readBodyForError(resp.Body),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("decode %s response: %w", endpoint, err)
	}
	return nil
}
