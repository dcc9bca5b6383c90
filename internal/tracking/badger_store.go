// Otto - Vehicle Comparison and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/otto

package tracking

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
)

// Key prefixes for BadgerDB storage
const (
	sessionKeyPrefix     = "session:"
	sessionUserKeyPrefix = "session_user:"
	profileKeyPrefix     = "profile:"
)

// BadgerSessionStore implements SessionStore on BadgerDB. Entries carry a
// retention TTL so sessions orphaned by a crash still disappear.
type BadgerSessionStore struct {
	db        *badger.DB
	namespace string
	retention time.Duration
}

// NewBadgerSessionStore creates a session store. A zero retention stores
// entries without TTL.
func NewBadgerSessionStore(db *badger.DB, retention time.Duration) *BadgerSessionStore {
	return &BadgerSessionStore{db: db, retention: retention}
}

// WithNamespace returns a store sharing the same database whose keys are
// prefixed with ns, e.g. "archive:" for ended sessions.
func (s *BadgerSessionStore) WithNamespace(ns string) *BadgerSessionStore {
	return &BadgerSessionStore{db: s.db, namespace: ns, retention: s.retention}
}

func (s *BadgerSessionStore) sessionKey(id string) []byte {
	return []byte(s.namespace + sessionKeyPrefix + id)
}

// userPrefix hex-encodes the user id so no id is a key prefix of another.
func (s *BadgerSessionStore) userPrefix(userID string) string {
	return s.namespace + sessionUserKeyPrefix + hex.EncodeToString([]byte(userID)) + ":"
}

func (s *BadgerSessionStore) userKey(userID, id string) []byte {
	return []byte(s.userPrefix(userID) + id)
}

// Get retrieves a session by ID.
func (s *BadgerSessionStore) Get(_ context.Context, sessionID string) (*Session, error) {
	var session Session

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(s.sessionKey(sessionID))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrSessionNotFound
		}
		if err != nil {
			return fmt.Errorf("get session: %w", err)
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &session)
		})
	})
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// Put creates or replaces a session and its user index entry.
func (s *BadgerSessionStore) Put(_ context.Context, session *Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	return s.db.Update(func(txn *badger.Txn) error {
		if err := txn.SetEntry(s.entry(s.sessionKey(session.SessionID), data)); err != nil {
			return fmt.Errorf("set session: %w", err)
		}
		userKey := s.userKey(session.UserID, session.SessionID)
		if err := txn.SetEntry(s.entry(userKey, []byte(session.SessionID))); err != nil {
			return fmt.Errorf("set user mapping: %w", err)
		}
		return nil
	})
}

func (s *BadgerSessionStore) entry(key, value []byte) *badger.Entry {
	e := badger.NewEntry(key, value)
	if s.retention > 0 {
		e = e.WithTTL(s.retention)
	}
	return e
}

// Delete removes a session and its user index entry.
func (s *BadgerSessionStore) Delete(ctx context.Context, sessionID string) error {
	session, err := s.Get(ctx, sessionID)
	if errors.Is(err, ErrSessionNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Delete(s.sessionKey(sessionID)); err != nil {
			return fmt.Errorf("delete session: %w", err)
		}
		if err := txn.Delete(s.userKey(session.UserID, sessionID)); err != nil {
			return fmt.Errorf("delete user mapping: %w", err)
		}
		return nil
	})
}

// ListByUser returns the user's sessions, oldest first.
func (s *BadgerSessionStore) ListByUser(ctx context.Context, userID string) ([]*Session, error) {
	var sessionIDs []string

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(s.userPrefix(userID))
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			if err := it.Item().Value(func(val []byte) error {
				sessionIDs = append(sessionIDs, string(val))
				return nil
			}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list user sessions: %w", err)
	}

	sessions := make([]*Session, 0, len(sessionIDs))
	for _, id := range sessionIDs {
		session, err := s.Get(ctx, id)
		if errors.Is(err, ErrSessionNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		if session.UserID != userID {
			continue
		}
		sessions = append(sessions, session)
	}
	sortSessions(sessions)
	return sessions, nil
}

// List returns every stored session, oldest first.
func (s *BadgerSessionStore) List(_ context.Context) ([]*Session, error) {
	var sessions []*Session

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(s.namespace + sessionKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var session Session
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &session)
			}); err != nil {
				return fmt.Errorf("decode session %s: %w", it.Item().Key(), err)
			}
			sessions = append(sessions, &session)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan sessions: %w", err)
	}

	sortSessions(sessions)
	return sessions, nil
}

// Count returns the total number of sessions in the store.
func (s *BadgerSessionStore) Count(_ context.Context) (int, error) {
	count := 0

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(s.namespace + sessionKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			count++
		}
		return nil
	})

	return count, err
}

// BadgerProfileStore implements ProfileStore on BadgerDB. Profiles do not expire.
type BadgerProfileStore struct {
	db *badger.DB
}

// NewBadgerProfileStore creates a profile store.
func NewBadgerProfileStore(db *badger.DB) *BadgerProfileStore {
	return &BadgerProfileStore{db: db}
}

// Get retrieves a user's archived profile.
func (s *BadgerProfileStore) Get(_ context.Context, userID string) (*UserBehaviorProfile, error) {
	var profile UserBehaviorProfile

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(profileKeyPrefix + userID))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrProfileNotFound
		}
		if err != nil {
			return fmt.Errorf("get profile: %w", err)
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &profile)
		})
	})
	if err != nil {
		return nil, err
	}
	normalizeProfile(&profile)
	return &profile, nil
}

// Put stores a user's archived profile.
func (s *BadgerProfileStore) Put(_ context.Context, profile *UserBehaviorProfile) error {
	data, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("marshal profile: %w", err)
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(profileKeyPrefix+profile.UserID), data)
	})
}

// normalizeProfile restores empty maps and slices dropped by JSON null.
func normalizeProfile(p *UserBehaviorProfile) {
	if p.PreferredBrands == nil {
		p.PreferredBrands = make(map[string]float64)
	}
	if p.PreferredVehicleTypes == nil {
		p.PreferredVehicleTypes = make(map[string]float64)
	}
	if p.FeaturePreferences == nil {
		p.FeaturePreferences = make(map[string]float64)
	}
	if p.InteractionPatterns == nil {
		p.InteractionPatterns = make(map[string]int)
	}
	if p.ViewedVehicles == nil {
		p.ViewedVehicles = []string{}
	}
	if p.SavedVehicles == nil {
		p.SavedVehicles = []string{}
	}
	if p.RecentSearches == nil {
		p.RecentSearches = []string{}
	}
}
