// Otto - Vehicle Comparison and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/otto

package tracking

import (
	"context"
	"sort"
	"sync"

	"github.com/tomtom215/otto/internal/vehicle"
)

const (
	peerSaveWeight = 1.0
	peerViewWeight = 0.5
	maxPeerItems   = 500
)

// PeerIndex finds users whose viewed and saved vehicles overlap, for
// collaborative filtering. Similarity is the Jaccard index of the two
// users' engaged vehicle sets.
type PeerIndex struct {
	mu    sync.RWMutex
	liked map[string]map[string]float64 // user -> vehicle -> weight
}

// NewPeerIndex creates an empty index.
func NewPeerIndex() *PeerIndex {
	return &PeerIndex{liked: make(map[string]map[string]float64)}
}

// Observe implements Observer.
func (p *PeerIndex) Observe(userID string, in Interaction) {
	if in.Type != InteractionView && in.Type != InteractionSave && in.Type != InteractionUnsave {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	items, ok := p.liked[userID]
	if !ok {
		items = make(map[string]float64)
		p.liked[userID] = items
	}
	for _, id := range in.VehicleIDs {
		_, known := items[id]
		if !known && len(items) >= maxPeerItems {
			continue
		}
		switch in.Type {
		case InteractionView:
			if !known {
				items[id] = peerViewWeight
			}
		case InteractionSave:
			items[id] = peerSaveWeight
		case InteractionUnsave:
			if known {
				items[id] = peerViewWeight
			}
		}
	}
}

// SimilarUsers implements vehicle.PeerSimilarityProvider. Users are ranked by
// similarity, ties broken by user id.
func (p *PeerIndex) SimilarUsers(_ context.Context, userID string, limit int) ([]vehicle.PeerUser, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	mine := p.liked[userID]
	if len(mine) == 0 {
		return []vehicle.PeerUser{}, nil
	}

	peers := make([]vehicle.PeerUser, 0)
	for other, theirs := range p.liked {
		if other == userID {
			continue
		}
		sim := jaccard(mine, theirs)
		if sim <= 0 {
			continue
		}
		peers = append(peers, vehicle.PeerUser{
			UserID:     other,
			Similarity: sim,
			Liked:      cloneWeights(theirs),
		})
	}

	sort.Slice(peers, func(i, j int) bool {
		if peers[i].Similarity != peers[j].Similarity {
			return peers[i].Similarity > peers[j].Similarity
		}
		return peers[i].UserID < peers[j].UserID
	})
	if limit > 0 && len(peers) > limit {
		peers = peers[:limit]
	}
	return peers, nil
}

func jaccard(a, b map[string]float64) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	inter := 0
	for k := range a {
		if _, ok := b[k]; ok {
			inter++
		}
	}
	union := len(a) + len(b) - inter
	return float64(inter) / float64(union)
}
