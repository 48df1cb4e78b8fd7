// MoodCast - Mood-Aware Podcast Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodcast

/*
Package corpus stores the podcast candidates gathered by ingestion.

Each candidate lives under "podcast:<id>" as JSON. The tag set (Keywords) is
a sorted, duplicate-free union of every search keyword that surfaced the
candidate. It only grows.

Merge runs in a single read-modify-write transaction that is replayed on
badger.ErrConflict, so two keywords merging the same candidate at the same
time both end up in its tag set.

All failures are wrapped with ErrPersistence:

	if _, err := store.Merge(ctx, patch, "calm"); errors.Is(err, corpus.ErrPersistence) {
	    // counted and skipped by the pipeline
	}
*/
package corpus
