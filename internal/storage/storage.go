// MoodCast - Mood-Aware Podcast Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodcast

// Package storage opens and maintains the embedded BadgerDB database shared
// by the corpus store and the listening history store.
package storage

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/rs/zerolog"

	"github.com/tomtom215/moodcast/internal/config"
	"github.com/tomtom215/moodcast/internal/metrics"
)

// MaxConflictRetries bounds how often a read-modify-write transaction is
// replayed after badger.ErrConflict.
const MaxConflictRetries = 8

// ErrClosed is returned when the database has been closed.
var ErrClosed = errors.New("storage is closed")

// DB wraps a BadgerDB handle with lifecycle helpers.
type DB struct {
	db           *badger.DB
	logger       zerolog.Logger
	gcRatio      float64
	closeTimeout time.Duration

	mu     sync.RWMutex
	closed bool
}

// Open opens (or creates) the BadgerDB database described by cfg.
//
//nolint:gocritic // zerolog.Logger passed by value
func Open(cfg config.DatabaseConfig, logger zerolog.Logger) (*DB, error) {
	logger = logger.With().Str("component", "storage").Logger()

	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		opts = badger.DefaultOptions(cfg.Path)
	}
	opts.Logger = newBadgerLogger(logger)

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open BadgerDB: %w", err)
	}

	logger.Info().
		Str("path", cfg.Path).
		Bool("in_memory", cfg.InMemory).
		Msg("Storage opened")

	return &DB{
		db:           db,
		logger:       logger,
		gcRatio:      0.5,
		closeTimeout: 30 * time.Second,
	}, nil
}

// OpenInMemory opens a throwaway in-memory database. Used by tests.
func OpenInMemory() (*DB, error) {
	return Open(config.DatabaseConfig{InMemory: true}, zerolog.Nop())
}

// Badger returns the underlying BadgerDB handle.
func (d *DB) Badger() *badger.DB {
	return d.db
}

// View runs fn in a read-only transaction.
func (d *DB) View(fn func(txn *badger.Txn) error) error {
	if d.isClosed() {
		return ErrClosed
	}
	return d.db.View(fn)
}

// Update runs fn in a read-write transaction, replaying it when another
// writer committed a conflicting change first. The store label is used for
// metrics only.
func (d *DB) Update(ctx context.Context, store string, fn func(txn *badger.Txn) error) error {
	if d.isClosed() {
		return ErrClosed
	}

	var err error
	for attempt := 0; attempt <= MaxConflictRetries; attempt++ {
		if attempt > 0 {
			metrics.StoreConflictRetries.WithLabelValues(store).Inc()
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		err = d.db.Update(fn)
		if !errors.Is(err, badger.ErrConflict) {
			return err
		}
	}

	return fmt.Errorf("transaction conflicted %d times: %w", MaxConflictRetries+1, err)
}

// RunGC triggers value log garbage collection until nothing is left to
// rewrite. In-memory databases have no value log and return immediately.
func (d *DB) RunGC() error {
	if d.isClosed() {
		return ErrClosed
	}
	if d.db.Opts().InMemory {
		return nil
	}

	for {
		err := d.db.RunValueLogGC(d.gcRatio)
		if errors.Is(err, badger.ErrNoRewrite) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("run GC: %w", err)
		}
	}
}

// Close closes the database, giving up after the close timeout.
func (d *DB) Close() error {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return nil
	}
	d.closed = true
	d.mu.Unlock()

	done := make(chan error, 1)
	go func() {
		done <- d.db.Close()
	}()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("close BadgerDB: %w", err)
		}
		d.logger.Info().Msg("Storage closed")
		return nil
	case <-time.After(d.closeTimeout):
		d.logger.Warn().Dur("timeout", d.closeTimeout).Msg("BadgerDB close timed out")
		return fmt.Errorf("badgerdb close timeout after %v", d.closeTimeout)
	}
}

func (d *DB) isClosed() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.closed
}
