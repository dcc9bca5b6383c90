// Otto - Vehicle Comparison and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/otto

package tracking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/otto/internal/events"
	"github.com/tomtom215/otto/internal/metrics"
	"github.com/tomtom215/otto/internal/vehicle"
)

const lockStripes = 64

// Config controls session lifetime and profile caching.
type Config struct {
	// SessionTimeout is the idle time after which a session expires.
	SessionTimeout time.Duration

	// ProfileUpdateInterval is how long a built profile is served from cache.
	ProfileUpdateInterval time.Duration

	// Retention is how long ended sessions stay in the archive for stats.
	// Zero keeps them until the archive store drops them itself.
	Retention time.Duration
}

// DefaultConfig returns the production defaults.
func DefaultConfig() Config {
	return Config{
		SessionTimeout:        30 * time.Minute,
		ProfileUpdateInterval: 5 * time.Minute,
		Retention:             7 * 24 * time.Hour,
	}
}

// Publisher publishes domain events. events.Bus implements it.
type Publisher interface {
	Publish(ctx context.Context, topic string, payload any) error
}

// Observer is notified of every accepted interaction.
type Observer interface {
	Observe(userID string, in Interaction)
}

type cachedProfile struct {
	profile *UserBehaviorProfile
	builtAt time.Time
}

// Tracker records interactions into sessions and builds behavior profiles.
// It is safe for concurrent use; read-modify-write on a user's sessions is
// serialized by a striped lock keyed on user id.
type Tracker struct {
	cfg       Config
	sessions  SessionStore
	archive   SessionStore
	profiles  ProfileStore
	vehicles  vehicle.DataProvider
	publisher Publisher
	observers []Observer
	logger    zerolog.Logger
	now       func() time.Time

	locks [lockStripes]sync.Mutex

	cacheMu sync.RWMutex
	cache   map[string]cachedProfile
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithStores replaces the in-memory session and profile stores.
func WithStores(sessions SessionStore, profiles ProfileStore) Option {
	return func(t *Tracker) {
		t.sessions = sessions
		t.profiles = profiles
	}
}

// WithArchive sets the store ended sessions are moved to.
func WithArchive(archive SessionStore) Option {
	return func(t *Tracker) { t.archive = archive }
}

// WithVehicles sets the provider used to resolve brand, type, price and
// features for profile preferences.
func WithVehicles(p vehicle.DataProvider) Option {
	return func(t *Tracker) { t.vehicles = p }
}

// WithPublisher publishes each accepted interaction.
func WithPublisher(p Publisher) Option {
	return func(t *Tracker) { t.publisher = p }
}

// WithObservers registers observers such as ActivitySignals and PeerIndex.
func WithObservers(obs ...Observer) Option {
	return func(t *Tracker) { t.observers = append(t.observers, obs...) }
}

// WithLogger sets the logger.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func WithLogger(logger zerolog.Logger) Option {
	return func(t *Tracker) { t.logger = logger }
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) { t.now = now }
}

// NewTracker creates a tracker. Without options it keeps everything in memory.
func NewTracker(cfg Config, opts ...Option) *Tracker {
	def := DefaultConfig()
	if cfg.SessionTimeout <= 0 {
		cfg.SessionTimeout = def.SessionTimeout
	}
	if cfg.ProfileUpdateInterval <= 0 {
		cfg.ProfileUpdateInterval = def.ProfileUpdateInterval
	}

	t := &Tracker{
		cfg:    cfg,
		logger: zerolog.Nop(),
		now:    time.Now,
		cache:  make(map[string]cachedProfile),
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.sessions == nil {
		t.sessions = NewMemorySessionStore()
	}
	if t.profiles == nil {
		t.profiles = NewMemoryProfileStore()
	}
	if t.archive == nil {
		t.archive = NewMemorySessionStore()
	}
	return t
}

// TrackInteraction records ev and reports whether it was accepted.
// Malformed events are dropped without creating any state. Failures are
// logged, never returned.
func (t *Tracker) TrackInteraction(ctx context.Context, ev InteractionEvent) bool {
	in, err := t.validate(&ev)
	if err != nil {
		t.logger.Debug().Err(err).Str("user_id", ev.UserID).Str("interaction_type", ev.Type).Msg("Ignoring malformed interaction")
		metrics.RecordInteraction(ev.Type, false)
		return false
	}
	userID := strings.TrimSpace(ev.UserID)

	session, err := t.record(ctx, userID, strings.TrimSpace(ev.SessionID), in)
	if err != nil {
		t.logger.Debug().Err(err).Str("user_id", userID).Msg("Failed to record interaction")
		metrics.RecordInteraction(string(in.Type), false)
		return false
	}
	metrics.RecordInteraction(string(in.Type), true)

	for _, o := range t.observers {
		o.Observe(userID, *in)
	}

	if t.publisher != nil {
		err := t.publisher.Publish(ctx, events.TopicInteractionTracked, events.InteractionTracked{
			UserID:          userID,
			SessionID:       session,
			InteractionType: string(in.Type),
			VehicleIDs:      in.VehicleIDs,
			SearchQuery:     in.SearchQuery,
			Timestamp:       in.Timestamp,
		})
		if err != nil {
			t.logger.Debug().Err(err).Str("user_id", userID).Msg("Failed to publish interaction")
		}
	}
	return true
}

// TrackComparison records a compare interaction for a completed comparison.
func (t *Tracker) TrackComparison(ctx context.Context, userID string, vehicleIDs []string, comparisonID string, processingTime time.Duration) bool {
	return t.TrackInteraction(ctx, InteractionEvent{
		UserID:     userID,
		Type:       string(InteractionCompare),
		VehicleIDs: vehicleIDs,
		Metadata: map[string]any{
			"comparison_id":   comparisonID,
			"processing_time": processingTime.Seconds(),
			"vehicle_count":   len(vehicleIDs),
		},
	})
}

func (t *Tracker) validate(ev *InteractionEvent) (*Interaction, error) {
	if strings.TrimSpace(ev.UserID) == "" {
		return nil, errors.New("user_id is required")
	}
	typ, ok := ParseInteractionType(strings.ToLower(strings.TrimSpace(ev.Type)))
	if !ok {
		return nil, fmt.Errorf("unknown interaction type %q", ev.Type)
	}

	ts := t.now().UTC()
	if ev.Timestamp != "" {
		parsed, err := time.Parse(time.RFC3339, ev.Timestamp)
		if err != nil {
			return nil, fmt.Errorf("malformed timestamp: %w", err)
		}
		ts = parsed.UTC()
	}

	ids := make([]string, 0, len(ev.VehicleIDs))
	for _, id := range ev.VehicleIDs {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}

	return &Interaction{
		Type:        typ,
		VehicleIDs:  ids,
		SearchQuery: strings.TrimSpace(ev.SearchQuery),
		Timestamp:   ts,
		Metadata:    ev.Metadata,
	}, nil
}

func (t *Tracker) lock(userID string) func() {
	mu := &t.locks[stripe(userID, lockStripes)]
	mu.Lock()
	return mu.Unlock
}

// record appends in to the user's active session, creating one if needed,
// and returns the session id.
func (t *Tracker) record(ctx context.Context, userID, sessionID string, in *Interaction) (string, error) {
	unlock := t.lock(userID)
	defer unlock()

	now := t.now()
	session, err := t.activeSession(ctx, userID, sessionID, now)
	if err != nil {
		return "", err
	}
	if session == nil {
		if sessionID == "" {
			sessionID = fmt.Sprintf("session_%s_%d", userID, now.UnixMilli())
		}
		session = &Session{
			UserID:    userID,
			SessionID: sessionID,
			StartTime: now,
		}
		t.logger.Debug().Str("user_id", userID).Str("session_id", sessionID).Msg("Started session")
	}

	session.apply(in)
	session.LastActivity = now

	if err := t.sessions.Put(ctx, session); err != nil {
		return "", fmt.Errorf("store session: %w", err)
	}
	t.invalidateProfile(userID)
	return session.SessionID, nil
}

// activeSession returns the session to append to, folding any expired
// sessions it meets. The caller holds the user's lock.
func (t *Tracker) activeSession(ctx context.Context, userID, sessionID string, now time.Time) (*Session, error) {
	sessions, err := t.sessions.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}

	var latest *Session
	for _, s := range sessions {
		if s.Expired(now, t.cfg.SessionTimeout) {
			if err := t.endLocked(ctx, s); err != nil {
				return nil, err
			}
			continue
		}
		if sessionID != "" && s.SessionID == sessionID {
			return s, nil
		}
		if latest == nil || s.LastActivity.After(latest.LastActivity) {
			latest = s
		}
	}

	// An explicit session id that is not active for this user starts a new
	// session under that id.
	if sessionID != "" {
		if existing, err := t.sessions.Get(ctx, sessionID); err == nil && existing.UserID != userID {
			return nil, fmt.Errorf("session %s belongs to another user", sessionID)
		}
		return nil, nil
	}
	return latest, nil
}

// GetSession returns an active session. Expired sessions are folded into
// their owner's profile and reported as ErrSessionNotFound.
func (t *Tracker) GetSession(ctx context.Context, sessionID string) (*Session, error) {
	session, err := t.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !session.Expired(t.now(), t.cfg.SessionTimeout) {
		return session, nil
	}

	unlock := t.lock(session.UserID)
	defer unlock()

	// Re-read under the lock; a concurrent interaction may have refreshed it.
	session, err = t.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !session.Expired(t.now(), t.cfg.SessionTimeout) {
		return session, nil
	}
	if err := t.endLocked(ctx, session); err != nil {
		t.logger.Debug().Err(err).Str("session_id", sessionID).Msg("Failed to end expired session")
	}
	return nil, ErrSessionNotFound
}

// EndSession folds a session into its owner's profile and removes it.
func (t *Tracker) EndSession(ctx context.Context, sessionID string) error {
	session, err := t.sessions.Get(ctx, sessionID)
	if err != nil {
		return err
	}

	unlock := t.lock(session.UserID)
	defer unlock()

	session, err = t.sessions.Get(ctx, sessionID)
	if err != nil {
		return err
	}
	return t.endLocked(ctx, session)
}

// endLocked archives s and removes it from the active store.
// The caller holds the owner's lock.
func (t *Tracker) endLocked(ctx context.Context, s *Session) error {
	baseline, err := t.baseline(ctx, s.UserID)
	if err != nil {
		return err
	}
	foldSession(baseline, s, t.lookupVehicles(ctx, engagedVehicles(s)))

	if err := t.profiles.Put(ctx, baseline); err != nil {
		return fmt.Errorf("store profile: %w", err)
	}
	if err := t.archive.Put(ctx, s); err != nil {
		t.logger.Debug().Err(err).Str("session_id", s.SessionID).Msg("Failed to archive session")
	}
	if err := t.sessions.Delete(ctx, s.SessionID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}

	t.invalidateProfile(s.UserID)
	t.logger.Debug().
		Str("user_id", s.UserID).
		Str("session_id", s.SessionID).
		Int("interactions", len(s.Interactions)).
		Msg("Ended session")
	return nil
}

// baseline returns the archived profile, or an empty one for new users.
func (t *Tracker) baseline(ctx context.Context, userID string) (*UserBehaviorProfile, error) {
	p, err := t.profiles.Get(ctx, userID)
	if errors.Is(err, ErrProfileNotFound) {
		return NewProfile(userID), nil
	}
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}
	return p, nil
}

// lookupVehicles resolves ids for preference aggregation. Lookup failures
// degrade to totals-only aggregation.
func (t *Tracker) lookupVehicles(ctx context.Context, ids []string) map[string]vehicle.Record {
	out := make(map[string]vehicle.Record, len(ids))
	if t.vehicles == nil || len(ids) == 0 {
		return out
	}
	records, err := t.vehicles.GetVehiclesByIDs(ctx, ids)
	if err != nil {
		t.logger.Debug().Err(err).Int("vehicles", len(ids)).Msg("Vehicle lookup failed; profile preferences skipped")
		return out
	}
	for _, rec := range records {
		out[rec.ID] = rec
	}
	return out
}

// GetUserProfile returns the user's behavior profile: the archived baseline
// plus every active session. Profiles are cached for ProfileUpdateInterval
// and rebuilt after any new interaction.
func (t *Tracker) GetUserProfile(ctx context.Context, userID string) (*UserBehaviorProfile, error) {
	now := t.now()

	t.cacheMu.RLock()
	cached, ok := t.cache[userID]
	t.cacheMu.RUnlock()
	if ok && now.Sub(cached.builtAt) < t.cfg.ProfileUpdateInterval {
		return cached.profile.Clone(), nil
	}

	unlock := t.lock(userID)
	defer unlock()

	start := time.Now()
	profile, err := t.buildLocked(ctx, userID, now)
	if err != nil {
		return nil, err
	}
	metrics.RecordProfileBuild(time.Since(start))

	t.cacheMu.Lock()
	t.cache[userID] = cachedProfile{profile: profile, builtAt: now}
	t.cacheMu.Unlock()

	return profile.Clone(), nil
}

func (t *Tracker) buildLocked(ctx context.Context, userID string, now time.Time) (*UserBehaviorProfile, error) {
	sessions, err := t.sessions.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}

	active := sessions[:0]
	for _, s := range sessions {
		if s.Expired(now, t.cfg.SessionTimeout) {
			if err := t.endLocked(ctx, s); err != nil {
				return nil, err
			}
			continue
		}
		active = append(active, s)
	}

	profile, err := t.profiles.Get(ctx, userID)
	switch {
	case errors.Is(err, ErrProfileNotFound):
		if len(active) == 0 {
			return nil, ErrProfileNotFound
		}
		profile = NewProfile(userID)
	case err != nil:
		return nil, fmt.Errorf("load profile: %w", err)
	}

	records := t.lookupVehicles(ctx, engagedVehicles(active...))
	for _, s := range active {
		foldSession(profile, s, records)
	}
	return profile, nil
}

func (t *Tracker) invalidateProfile(userID string) {
	t.cacheMu.Lock()
	delete(t.cache, userID)
	t.cacheMu.Unlock()
}

// CleanupExpiredSessions ends every expired session and prunes archived
// sessions older than the retention window. It returns the number of
// sessions ended.
func (t *Tracker) CleanupExpiredSessions(ctx context.Context) (int, error) {
	sessions, err := t.sessions.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("list sessions: %w", err)
	}

	ended := 0
	var errs []error
	for _, s := range sessions {
		if !s.Expired(t.now(), t.cfg.SessionTimeout) {
			continue
		}
		if ok, err := t.endIfExpired(ctx, s.SessionID); err != nil {
			errs = append(errs, err)
		} else if ok {
			ended++
		}
	}

	if t.cfg.Retention > 0 {
		if err := t.pruneArchive(ctx); err != nil {
			errs = append(errs, err)
		}
	}

	if count, err := t.sessions.Count(ctx); err == nil {
		metrics.SetActiveSessions(count)
	}
	metrics.RecordSessionsExpired(ended)

	if ended > 0 {
		t.logger.Info().Int("sessions", ended).Msg("Expired idle sessions")
	}
	return ended, errors.Join(errs...)
}

func (t *Tracker) endIfExpired(ctx context.Context, sessionID string) (bool, error) {
	session, err := t.sessions.Get(ctx, sessionID)
	if errors.Is(err, ErrSessionNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	unlock := t.lock(session.UserID)
	defer unlock()

	session, err = t.sessions.Get(ctx, sessionID)
	if errors.Is(err, ErrSessionNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if !session.Expired(t.now(), t.cfg.SessionTimeout) {
		return false, nil
	}
	if err := t.endLocked(ctx, session); err != nil {
		return false, err
	}
	return true, nil
}

func (t *Tracker) pruneArchive(ctx context.Context) error {
	archived, err := t.archive.List(ctx)
	if err != nil {
		return fmt.Errorf("list archive: %w", err)
	}
	cutoff := t.now().Add(-t.cfg.Retention)
	for _, s := range archived {
		if s.LastActivity.Before(cutoff) {
			if err := t.archive.Delete(ctx, s.SessionID); err != nil {
				return fmt.Errorf("prune archive: %w", err)
			}
		}
	}
	return nil
}

// ActiveSessions returns the number of sessions in the active store,
// including expired sessions not yet swept.
func (t *Tracker) ActiveSessions(ctx context.Context) (int, error) {
	return t.sessions.Count(ctx)
}
