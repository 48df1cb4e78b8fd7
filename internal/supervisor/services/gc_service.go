// MoodCast - Mood-Aware Podcast Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodcast

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// GarbageCollector reclaims space in the embedded store.
// Satisfied by *storage.DB.
type GarbageCollector interface {
	RunGC() error
}

// StorageGCService periodically runs BadgerDB value log GC.
//
//	tree.AddDataService(services.NewStorageGCService(db, time.Hour, logger))
type StorageGCService struct {
	gc       GarbageCollector
	interval time.Duration
	logger   zerolog.Logger
	name     string
}

// NewStorageGCService creates a GC service. A non-positive interval uses 1h.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewStorageGCService(gc GarbageCollector, interval time.Duration, logger zerolog.Logger) *StorageGCService {
	if interval <= 0 {
		interval = time.Hour
	}
	return &StorageGCService{
		gc:       gc,
		interval: interval,
		logger:   logger.With().Str("service", "storage-gc").Logger(),
		name:     "storage-gc",
	}
}

// Serve implements suture.Service. GC errors are logged and retried on the
// next tick.
func (s *StorageGCService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case <-ticker.C:
			start := time.Now()
			if err := s.gc.RunGC(); err != nil {
				s.logger.Warn().Err(err).Msg("value log GC failed")
				continue
			}
			s.logger.Debug().Dur("duration", time.Since(start)).Msg("value log GC complete")
		}
	}
}

// String implements fmt.Stringer for suture's log messages.
func (s *StorageGCService) String() string {
	return s.name
}
