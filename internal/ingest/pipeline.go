// MoodCast - Mood-Aware Podcast Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodcast

package ingest

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/moodcast/internal/catalog"
	"github.com/tomtom215/moodcast/internal/config"
	"github.com/tomtom215/moodcast/internal/corpus"
	"github.com/tomtom215/moodcast/internal/metrics"
	"github.com/tomtom215/moodcast/internal/models"
)

// Catalog is the external search and detail API.
type Catalog interface {
	Search(ctx context.Context, keyword string, offset int) (*catalog.SearchPage, error)
	Episodes(ctx context.Context, podcastID string) ([]models.Episode, error)
}

// Corpus is the merge side of the corpus store.
type Corpus interface {
	Merge(ctx context.Context, patch *corpus.Patch, keyword string) (*models.Podcast, error)
}

// Options bounds a run.
type Options struct {
	PageSize           int
	MaxPages           int
	MaxEpisodes        int
	Concurrency        int
	EpisodeConcurrency int
}

// DefaultOptions returns the catalog's page size of 10, five pages per
// keyword and the five most recent episodes.
func DefaultOptions() Options {
	return Options{
		PageSize:           10,
		MaxPages:           5,
		MaxEpisodes:        models.MaxEpisodes,
		Concurrency:        2,
		EpisodeConcurrency: 4,
	}
}

// OptionsFromConfig maps ingestion configuration to pipeline options.
func OptionsFromConfig(cfg *config.IngestConfig) Options {
	return Options{
		PageSize:           cfg.PageSize,
		MaxPages:           cfg.MaxPages,
		MaxEpisodes:        cfg.MaxEpisodes,
		Concurrency:        cfg.Concurrency,
		EpisodeConcurrency: cfg.EpisodeConcurrency,
	}
}

func (o Options) withDefaults() Options {
	def := DefaultOptions()
	if o.PageSize <= 0 {
		o.PageSize = def.PageSize
	}
	if o.MaxPages <= 0 {
		o.MaxPages = def.MaxPages
	}
	if o.MaxEpisodes < 0 {
		o.MaxEpisodes = def.MaxEpisodes
	}
	if o.Concurrency <= 0 {
		o.Concurrency = 1
	}
	if o.EpisodeConcurrency <= 0 {
		o.EpisodeConcurrency = 1
	}
	return o
}

// Pipeline pages through the catalog for each keyword and merges every
// result into the corpus.
type Pipeline struct {
	catalog Catalog
	corpus  Corpus
	opts    Options
	logger  zerolog.Logger
	now     func() time.Time
}

// NewPipeline creates an ingestion pipeline.
//
//nolint:gocritic // zerolog.Logger passed by value
func NewPipeline(cat Catalog, store Corpus, opts Options, logger zerolog.Logger) *Pipeline {
	return &Pipeline{
		catalog: cat,
		corpus:  store,
		opts:    opts.withDefaults(),
		logger:  logger.With().Str("component", "ingest").Logger(),
		now:     time.Now,
	}
}

// Ingest runs one ingestion pass over keywords.
//
// Failures never abort the run. A rate-limited keyword stops paginating,
// a failed episode fetch stores the podcast without episodes and a failed
// merge is counted. Cancellation is honored between keywords only: a keyword
// that already started finishes its pages. When ctx is canceled the partial
// report is returned together with ctx.Err().
func (p *Pipeline) Ingest(ctx context.Context, keywords []string) (*Report, error) {
	start := p.now()
	keywords = NormalizeKeywords(keywords)

	report := &Report{
		StartedAt:   start,
		RateLimited: []string{},
		Keywords:    make(map[string]KeywordReport, len(keywords)),
	}

	p.logger.Info().Strs("keywords", keywords).Msg("Ingestion run starting")

	var mu sync.Mutex
	results := make(map[string]KeywordReport, len(keywords))

	var g errgroup.Group
	g.SetLimit(p.opts.Concurrency)

	for _, kw := range keywords {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			// The slot may have been granted after cancellation.
			if ctx.Err() != nil {
				return nil
			}
			kr := p.ingestKeyword(context.WithoutCancel(ctx), kw, start)

			mu.Lock()
			results[kw] = kr
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	for _, kw := range keywords {
		kr, ok := results[kw]
		if !ok {
			continue
		}
		report.add(kw, kr)
	}
	report.Duration = p.now().Sub(start)

	canceled := ctx.Err() != nil
	metrics.RecordIngestRun(report.Duration, report.Errors, canceled)

	event := p.logger.Info()
	if report.Errors > 0 || len(report.RateLimited) > 0 {
		event = p.logger.Warn()
	}
	event.
		Int("processed", report.Processed).
		Int("upserted", report.Upserted).
		Int("errors", report.Errors).
		Int("episode_failures", report.EpisodeFailures).
		Strs("rate_limited", report.RateLimited).
		Bool("canceled", canceled).
		Dur("duration", report.Duration).
		Msg("Ingestion run finished")

	if canceled {
		return report, ctx.Err()
	}
	return report, nil
}

// ingestKeyword paginates one keyword sequentially.
func (p *Pipeline) ingestKeyword(ctx context.Context, keyword string, fetchedAt time.Time) KeywordReport {
	logger := p.logger.With().Str("keyword", keyword).Logger()
	var kr KeywordReport

	for page := 0; page < p.opts.MaxPages; page++ {
		offset := page * p.opts.PageSize

		res, err := p.catalog.Search(ctx, keyword, offset)
		if errors.Is(err, catalog.ErrRateLimited) {
			kr.RateLimited = true
			metrics.RateLimitStops.WithLabelValues(keyword).Inc()
			logger.Warn().Int("offset", offset).Msg("Rate limited, skipping remaining pages")
			break
		}
		if err != nil {
			kr.Errors++
			metrics.CandidatesFailed.WithLabelValues(keyword, "search").Inc()
			logger.Error().Err(err).Int("offset", offset).Msg("Search failed, skipping remaining pages")
			break
		}

		kr.Pages++
		metrics.PagesFetched.WithLabelValues(keyword).Inc()
		if len(res.Results) == 0 {
			break
		}

		p.processPage(ctx, logger, keyword, res.Results, fetchedAt, &kr)

		if len(res.Results) < p.opts.PageSize {
			break
		}
	}

	logger.Debug().
		Int("pages", kr.Pages).
		Int("upserted", kr.Upserted).
		Bool("rate_limited", kr.RateLimited).
		Msg("Keyword finished")
	return kr
}

// processPage fetches episodes for a page in parallel, then merges results
// in page order.
//
//nolint:gocritic // zerolog.Logger passed by value
func (p *Pipeline) processPage(ctx context.Context, logger zerolog.Logger, keyword string, results []catalog.SearchResult, fetchedAt time.Time, kr *KeywordReport) {
	episodes := make([][]models.Episode, len(results))
	failed := make([]bool, len(results))

	var g errgroup.Group
	g.SetLimit(p.opts.EpisodeConcurrency)
	for i := range results {
		g.Go(func() error {
			eps, err := p.catalog.Episodes(ctx, results[i].ID)
			if err != nil {
				failed[i] = true
				logger.Warn().Err(err).Str("podcast_id", results[i].ID).Msg("Episode fetch failed, storing without episodes")
				return nil
			}
			episodes[i] = models.RecentEpisodes(eps, p.opts.MaxEpisodes)
			return nil
		})
	}
	_ = g.Wait()

	for i, result := range results {
		kr.Processed++
		if failed[i] {
			kr.EpisodeFailures++
			metrics.EpisodeFetchFailures.Inc()
		}

		patch := patchFromResult(&result, episodes[i], fetchedAt)
		if _, err := p.corpus.Merge(ctx, patch, keyword); err != nil {
			kr.Errors++
			metrics.CandidatesFailed.WithLabelValues(keyword, "merge").Inc()
			logger.Error().Err(err).Str("podcast_id", result.ID).Msg("Merge failed")
			continue
		}
		kr.Upserted++
		metrics.CandidatesUpserted.WithLabelValues(keyword).Inc()
	}
}

func patchFromResult(r *catalog.SearchResult, episodes []models.Episode, fetchedAt time.Time) *corpus.Patch {
	if episodes == nil {
		episodes = []models.Episode{}
	}
	genres := r.GenreIDs
	if genres == nil {
		genres = []int{}
	}
	return &corpus.Patch{
		ID:             r.ID,
		Title:          r.Title,
		Description:    r.Description,
		Image:          r.Image,
		Publisher:      r.Publisher,
		Language:       r.Language,
		TotalEpisodes:  r.TotalEpisodes,
		ListenNotesURL: r.ListenNotesURL,
		Genres:         genres,
		Episodes:       episodes,
		FetchedAt:      fetchedAt,
	}
}

// NormalizeKeywords trims and lowercases keywords, dropping empties and
// duplicates while keeping first-seen order.
func NormalizeKeywords(keywords []string) []string {
	seen := make(map[string]struct{}, len(keywords))
	out := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw == "" {
			continue
		}
		if _, dup := seen[kw]; dup {
			continue
		}
		seen[kw] = struct{}{}
		out = append(out, kw)
	}
	return out
}
