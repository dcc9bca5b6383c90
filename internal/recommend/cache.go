// Otto - Vehicle Comparison and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/otto

package recommend

import (
	"context"
	"crypto/md5" //nolint:gosec // cache key digest, not a security boundary
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/tomtom215/otto/internal/metrics"
)

const cacheKeyPrefix = "rec:"

// CacheStore holds recommendation results keyed by CacheKey.
type CacheStore interface {
	// Get returns a copy of the live entry or ErrCacheMiss.
	Get(ctx context.Context, key string) (*Result, error)

	// Set stores result under key for ttl.
	Set(ctx context.Context, key string, result *Result, ttl time.Duration) error

	// InvalidateUser drops every entry belonging to userID.
	InvalidateUser(ctx context.Context, userID string) error
}

// CacheKey is deterministic over user, type, limit, context vehicles and query.
// Keys start with the user's prefix so per-user invalidation can match on it.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func CacheKey(req Request) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s|%s|%d|%s|%s", req.UserID, req.Type, req.Limit, strings.Join(req.ContextVehicleIDs, ","), req.SearchQuery)
	sum := md5.Sum([]byte(b.String())) //nolint:gosec // see import
	return userKeyPrefix(req.UserID) + hex.EncodeToString(sum[:])
}

// userKeyPrefix hex-encodes the user id, which keeps glob characters out of
// SCAN patterns and stops "alice" from matching "alice:x".
func userKeyPrefix(userID string) string {
	return cacheKeyPrefix + hex.EncodeToString([]byte(userID)) + ":"
}

// memoryEntry holds a cached recommendation response.
type memoryEntry struct {
	result    *Result
	userID    string
	expiresAt time.Time
	seq       uint64
}

// MemoryCache is a bounded in-process CacheStore. When it grows past
// maxEntries it drops the evictCount oldest entries. Expired entries are
// removed lazily on read.
type MemoryCache struct {
	mu         sync.RWMutex
	entries    map[string]memoryEntry
	maxEntries int
	evictCount int
	seq        uint64
	now        func() time.Time
}

// NewMemoryCache creates a memory cache.
func NewMemoryCache(maxEntries, evictCount int) *MemoryCache {
	if maxEntries <= 0 {
		maxEntries = 1000
	}
	if evictCount <= 0 || evictCount > maxEntries {
		evictCount = maxEntries / 5
		if evictCount == 0 {
			evictCount = 1
		}
	}
	return &MemoryCache{
		entries:    make(map[string]memoryEntry),
		maxEntries: maxEntries,
		evictCount: evictCount,
		now:        time.Now,
	}
}

// Get implements CacheStore.
func (c *MemoryCache) Get(_ context.Context, key string) (*Result, error) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		return nil, ErrCacheMiss
	}
	if !c.now().Before(entry.expiresAt) {
		c.mu.Lock()
		if current, still := c.entries[key]; still && current.seq == entry.seq {
			delete(c.entries, key)
		}
		c.mu.Unlock()
		return nil, ErrCacheMiss
	}
	return entry.result.Clone(), nil
}

// Set implements CacheStore.
func (c *MemoryCache) Set(_ context.Context, key string, result *Result, ttl time.Duration) error {
	if result == nil {
		return fmt.Errorf("cache: nil result")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.seq++
	c.entries[key] = memoryEntry{
		result:    result.Clone(),
		userID:    result.UserID,
		expiresAt: c.now().Add(ttl),
		seq:       c.seq,
	}

	if len(c.entries) > c.maxEntries {
		c.evictOldestLocked()
	}
	return nil
}

// evictOldestLocked removes the evictCount least recently written entries.
func (c *MemoryCache) evictOldestLocked() {
	type aged struct {
		key string
		seq uint64
	}
	all := make([]aged, 0, len(c.entries))
	for k, e := range c.entries {
		all = append(all, aged{key: k, seq: e.seq})
	}
	sort.Slice(all, func(i, j int) bool { return all[i].seq < all[j].seq })

	n := c.evictCount
	if n > len(all) {
		n = len(all)
	}
	for _, a := range all[:n] {
		delete(c.entries, a.key)
	}
	metrics.RecordCacheEviction("recommend", n)
}

// InvalidateUser implements CacheStore.
func (c *MemoryCache) InvalidateUser(_ context.Context, userID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for k, e := range c.entries {
		if e.userID == userID {
			delete(c.entries, k)
		}
	}
	return nil
}

// Len returns the number of entries, including expired ones not yet read.
func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
