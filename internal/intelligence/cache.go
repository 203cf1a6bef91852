// Package intelligence reduces classified messages into per-conversation
// insights, prioritized workflow suggestions, and navigational groupings.
package intelligence

import (
	"sync"

	"github.com/fluxstudio/conversation-intelligence/internal/model"
)

// ClassificationCache stores one classification result per message ID.
// Merges are additive: existing keys survive unless a new entry targets the
// same key, in which case it overwrites. There is no eviction; growth is
// bounded by the number of distinct messages classified in the session.
//
// The cache is safe for concurrent use so classification requests completing
// in parallel can merge their results without coordination.
type ClassificationCache struct {
	mu      sync.RWMutex
	entries map[string]model.MessageClassification
}

// NewClassificationCache creates an empty cache.
func NewClassificationCache() *ClassificationCache {
	return &ClassificationCache{
		entries: make(map[string]model.MessageClassification),
	}
}

// Merge folds new entries into the cache, overwriting per key. Entries with
// an empty message ID are ignored.
func (c *ClassificationCache) Merge(entries map[string]model.MessageClassification) {
	if len(entries) == 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for id, cls := range entries {
		if id == "" {
			continue
		}
		cls.MessageID = id
		c.entries[id] = cls
	}
}

// Put stores a single classification result.
func (c *ClassificationCache) Put(cls model.MessageClassification) {
	if cls.MessageID == "" {
		return
	}

	c.mu.Lock()
	c.entries[cls.MessageID] = cls
	c.mu.Unlock()
}

// Get returns the classification for a message ID, if present.
func (c *ClassificationCache) Get(messageID string) (model.MessageClassification, bool) {
	c.mu.RLock()
	cls, ok := c.entries[messageID]
	c.mu.RUnlock()
	return cls, ok
}

// Has reports whether a classification exists for the message ID.
func (c *ClassificationCache) Has(messageID string) bool {
	_, ok := c.Get(messageID)
	return ok
}

// Snapshot returns a point-in-time copy of the cache contents. Aggregation
// reads a snapshot so a pass sees a consistent view even while new results
// merge in.
func (c *ClassificationCache) Snapshot() map[string]model.MessageClassification {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make(map[string]model.MessageClassification, len(c.entries))
	for id, cls := range c.entries {
		out[id] = cls
	}
	return out
}

// Len returns the number of cached classifications.
func (c *ClassificationCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
