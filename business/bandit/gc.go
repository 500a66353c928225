package bandit

import (
	"sort"
	"time"
)

// evictClosed trims the in-memory context arena down to max entries by
// dropping closed contexts, oldest activity first. Open contexts are never
// evicted here: their posterior state may not be checkpointed yet.
// Caller holds the arena lock.
func evictClosed(contexts map[string]*contextEntry, max int) int {
	if max <= 0 || len(contexts) <= max {
		return 0
	}

	type entryInfo struct {
		contextID string
		lastUsed  time.Time
	}

	closed := make([]entryInfo, 0, len(contexts))
	for id, e := range contexts {
		if e.handle.Closed() {
			closed = append(closed, entryInfo{contextID: id, lastUsed: e.lastUsed})
		}
	}

	sort.Slice(closed, func(i, j int) bool {
		return closed[i].lastUsed.Before(closed[j].lastUsed)
	})

	toDrop := len(contexts) - max
	dropped := 0
	for i := 0; i < len(closed) && dropped < toDrop; i++ {
		delete(contexts, closed[i].contextID)
		dropped++
	}
	return dropped
}
