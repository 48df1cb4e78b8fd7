// MoodCast - Mood-Aware Podcast Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodcast

/*
Package ingest builds the podcast corpus from catalog searches.

For every keyword the pipeline requests up to MaxPages pages of PageSize
results. Pagination stops early on an empty or short page, on HTTP 429
(recorded in Report.RateLimited) and on any other search error. Each result
is enriched with its most recent episodes and merged into the corpus under
that keyword.

Keywords run in parallel up to Options.Concurrency. Episode fetches within
a page run in parallel up to Options.EpisodeConcurrency. Pages of one keyword
are always sequential.

Re-running with the same keywords is safe: merges replace snapshot fields and
only ever add keywords.
*/
package ingest
