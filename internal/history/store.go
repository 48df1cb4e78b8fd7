// MoodCast - Mood-Aware Podcast Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodcast

// Package history persists users, their bounded listening logs and their
// cached behavioral profiles.
package history

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/tomtom215/moodcast/internal/models"
	"github.com/tomtom215/moodcast/internal/storage"
)

// Key prefixes for BadgerDB storage
const (
	userKeyPrefix     = "user:"
	usernameKeyPrefix = "username:"
	eventsKeyPrefix   = "events:"
	profileKeyPrefix  = "profile:"
)

// DefaultCapacity is the number of events kept per user.
const DefaultCapacity = 100

var (
	// ErrUserNotFound is returned for operations on an unknown user ID.
	ErrUserNotFound = errors.New("user not found")

	// ErrUsernameTaken is returned when registering a duplicate username.
	ErrUsernameTaken = errors.New("username already taken")
)

// Store holds per-user state. Each user's log is a single JSON array, newest
// last, trimmed to Capacity on every append.
type Store struct {
	db       *storage.DB
	capacity int
	now      func() time.Time
}

// NewStore creates a history store. A capacity <= 0 uses DefaultCapacity.
func NewStore(db *storage.DB, capacity int) *Store {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Store{db: db, capacity: capacity, now: time.Now}
}

// Capacity returns the per-user event bound.
func (s *Store) Capacity() int {
	return s.capacity
}

// CreateUser registers a new user. Usernames are unique case-insensitively.
func (s *Store) CreateUser(ctx context.Context, username string) (*models.User, error) {
	user := &models.User{
		ID:        uuid.New().String(),
		Username:  username,
		CreatedAt: s.now().UTC(),
	}
	data, err := json.Marshal(user)
	if err != nil {
		return nil, fmt.Errorf("marshal user: %w", err)
	}
	nameKey := []byte(usernameKeyPrefix + strings.ToLower(username))

	err = s.db.Update(ctx, "history", func(txn *badger.Txn) error {
		_, err := txn.Get(nameKey)
		if err == nil {
			return ErrUsernameTaken
		}
		if !errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("check username: %w", err)
		}

		if err := txn.Set([]byte(userKeyPrefix+user.ID), data); err != nil {
			return fmt.Errorf("set user: %w", err)
		}
		return txn.Set(nameKey, []byte(user.ID))
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// GetUser returns the user with the given ID.
func (s *Store) GetUser(ctx context.Context, userID string) (*models.User, error) {
	var user models.User
	err := s.db.View(func(txn *badger.Txn) error {
		return getUser(txn, userID, &user)
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByUsername resolves a username to its user.
func (s *Store) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(usernameKeyPrefix + strings.ToLower(username)))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrUserNotFound
		}
		if err != nil {
			return fmt.Errorf("get username: %w", err)
		}
		id, err := item.ValueCopy(nil)
		if err != nil {
			return fmt.Errorf("read username: %w", err)
		}
		return getUser(txn, string(id), &user)
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Append adds an event to the user's log and drops the oldest entries beyond
// capacity. The event ID and timestamp are filled in when empty.
func (s *Store) Append(ctx context.Context, userID string, event models.ListeningEvent) (*models.ListeningEvent, error) {
	if event.ID == "" {
		event.ID = uuid.New().String()
	}
	if event.ListenedAt.IsZero() {
		event.ListenedAt = s.now().UTC()
	}

	err := s.db.Update(ctx, "history", func(txn *badger.Txn) error {
		var user models.User
		if err := getUser(txn, userID, &user); err != nil {
			return err
		}

		events, err := getEvents(txn, userID)
		if err != nil {
			return err
		}
		events = append(events, event)
		if over := len(events) - s.capacity; over > 0 {
			events = events[over:]
		}

		data, err := json.Marshal(events)
		if err != nil {
			return fmt.Errorf("marshal events: %w", err)
		}
		return txn.Set([]byte(eventsKeyPrefix+userID), data)
	})
	if err != nil {
		return nil, err
	}
	return &event, nil
}

// Events returns the user's log, oldest first.
func (s *Store) Events(ctx context.Context, userID string) ([]models.ListeningEvent, error) {
	var events []models.ListeningEvent
	err := s.db.View(func(txn *badger.Txn) error {
		var user models.User
		if err := getUser(txn, userID, &user); err != nil {
			return err
		}
		var err error
		events, err = getEvents(txn, userID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return events, nil
}

// Profile returns the cached profile, or nil when none was stored yet.
func (s *Store) Profile(ctx context.Context, userID string) (*models.Profile, error) {
	var profile *models.Profile
	err := s.db.View(func(txn *badger.Txn) error {
		var user models.User
		if err := getUser(txn, userID, &user); err != nil {
			return err
		}

		item, err := txn.Get([]byte(profileKeyPrefix + userID))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("get profile: %w", err)
		}
		profile = &models.Profile{}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, profile)
		})
	})
	if err != nil {
		return nil, err
	}
	return profile, nil
}

// SaveProfile overwrites the cached profile. Last writer wins.
func (s *Store) SaveProfile(ctx context.Context, userID string, profile *models.Profile) error {
	data, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("marshal profile: %w", err)
	}

	return s.db.Update(ctx, "history", func(txn *badger.Txn) error {
		var user models.User
		if err := getUser(txn, userID, &user); err != nil {
			return err
		}
		return txn.Set([]byte(profileKeyPrefix+userID), data)
	})
}

func getUser(txn *badger.Txn, userID string, dst *models.User) error {
	if userID == "" {
		return ErrUserNotFound
	}
	item, err := txn.Get([]byte(userKeyPrefix + userID))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return ErrUserNotFound
	}
	if err != nil {
		return fmt.Errorf("get user: %w", err)
	}
	return item.Value(func(val []byte) error {
		return json.Unmarshal(val, dst)
	})
}

func getEvents(txn *badger.Txn, userID string) ([]models.ListeningEvent, error) {
	item, err := txn.Get([]byte(eventsKeyPrefix + userID))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return []models.ListeningEvent{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get events: %w", err)
	}

	var events []models.ListeningEvent
	if err := item.Value(func(val []byte) error {
		return json.Unmarshal(val, &events)
	}); err != nil {
		return nil, fmt.Errorf("decode events: %w", err)
	}
	return events, nil
}
