// Otto - Vehicle Comparison and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/otto

package recommend

import (
	"hash/fnv"
)

// assignGroup buckets userID into one of groups. The assignment depends only
// on the user id and the number of groups.
func assignGroup(userID string, groups []GroupWeights) GroupWeights {
	h := fnv.New32a()
	_, _ = h.Write([]byte(userID))
	return groups[int(h.Sum32()%uint32(len(groups)))]
}
