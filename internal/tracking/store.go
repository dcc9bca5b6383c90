// Otto - Vehicle Comparison and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/otto

package tracking

import (
	"context"
	"sort"
	"sync"
)

// SessionStore persists sessions. Implementations return copies; callers
// write changes back with Put.
type SessionStore interface {
	Get(ctx context.Context, sessionID string) (*Session, error)
	Put(ctx context.Context, session *Session) error
	Delete(ctx context.Context, sessionID string) error
	ListByUser(ctx context.Context, userID string) ([]*Session, error)
	List(ctx context.Context) ([]*Session, error)
	Count(ctx context.Context) (int, error)
}

// ProfileStore persists each user's archived profile baseline: the folded
// totals of every session that has ended.
type ProfileStore interface {
	Get(ctx context.Context, userID string) (*UserBehaviorProfile, error)
	Put(ctx context.Context, profile *UserBehaviorProfile) error
}

// MemorySessionStore keeps sessions in process memory.
type MemorySessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	byUser   map[string]map[string]struct{}
}

// NewMemorySessionStore creates an empty in-memory session store.
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{
		sessions: make(map[string]*Session),
		byUser:   make(map[string]map[string]struct{}),
	}
}

// Get returns a copy of the session.
func (m *MemorySessionStore) Get(_ context.Context, sessionID string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s.Clone(), nil
}

// Put stores a copy of session.
func (m *MemorySessionStore) Put(_ context.Context, session *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.sessions[session.SessionID] = session.Clone()
	ids, ok := m.byUser[session.UserID]
	if !ok {
		ids = make(map[string]struct{})
		m.byUser[session.UserID] = ids
	}
	ids[session.SessionID] = struct{}{}
	return nil
}

// Delete removes a session. Deleting a missing session is not an error.
func (m *MemorySessionStore) Delete(_ context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[sessionID]
	if !ok {
		return nil
	}
	delete(m.sessions, sessionID)
	if ids := m.byUser[s.UserID]; ids != nil {
		delete(ids, sessionID)
		if len(ids) == 0 {
			delete(m.byUser, s.UserID)
		}
	}
	return nil
}

// ListByUser returns the user's sessions, oldest first.
func (m *MemorySessionStore) ListByUser(_ context.Context, userID string) ([]*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*Session, 0, len(m.byUser[userID]))
	for id := range m.byUser[userID] {
		out = append(out, m.sessions[id].Clone())
	}
	sortSessions(out)
	return out, nil
}

// List returns every stored session, oldest first.
func (m *MemorySessionStore) List(_ context.Context) ([]*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		out = append(out, s.Clone())
	}
	sortSessions(out)
	return out, nil
}

// Count returns the number of stored sessions.
func (m *MemorySessionStore) Count(_ context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions), nil
}

// MemoryProfileStore keeps archived profiles in process memory.
type MemoryProfileStore struct {
	mu       sync.RWMutex
	profiles map[string]*UserBehaviorProfile
}

// NewMemoryProfileStore creates an empty in-memory profile store.
func NewMemoryProfileStore() *MemoryProfileStore {
	return &MemoryProfileStore{profiles: make(map[string]*UserBehaviorProfile)}
}

// Get returns a copy of the user's profile.
func (m *MemoryProfileStore) Get(_ context.Context, userID string) (*UserBehaviorProfile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	p, ok := m.profiles[userID]
	if !ok {
		return nil, ErrProfileNotFound
	}
	return p.Clone(), nil
}

// Put stores a copy of profile.
func (m *MemoryProfileStore) Put(_ context.Context, profile *UserBehaviorProfile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.profiles[profile.UserID] = profile.Clone()
	return nil
}

func sortSessions(sessions []*Session) {
	sort.Slice(sessions, func(i, j int) bool {
		if !sessions[i].StartTime.Equal(sessions[j].StartTime) {
			return sessions[i].StartTime.Before(sessions[j].StartTime)
		}
		return sessions[i].SessionID < sessions[j].SessionID
	})
}
