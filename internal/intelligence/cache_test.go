package intelligence

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fluxstudio/conversation-intelligence/internal/model"
)

func TestClassificationCache_MergeAndGet(t *testing.T) {
	cache := NewClassificationCache()

	cache.Merge(map[string]model.MessageClassification{
		"m1": {Urgency: model.UrgencyHigh, Category: model.CategoryQuestion},
	})

	cls, ok := cache.Get("m1")
	require.True(t, ok)
	assert.Equal(t, "m1", cls.MessageID)
	assert.Equal(t, model.UrgencyHigh, cls.Urgency)

	_, ok = cache.Get("missing")
	assert.False(t, ok)
}

func TestClassificationCache_MergeIsIdempotent(t *testing.T) {
	cache := NewClassificationCache()
	entry := map[string]model.MessageClassification{
		"m1": {Urgency: model.UrgencyCritical, Intent: model.IntentActionRequired},
	}

	cache.Merge(entry)
	first := cache.Snapshot()

	cache.Merge(entry)
	second := cache.Snapshot()

	assert.Equal(t, first, second)
	assert.Equal(t, 1, cache.Len())
}

func TestClassificationCache_MergeIsAdditive(t *testing.T) {
	cache := NewClassificationCache()

	cache.Merge(map[string]model.MessageClassification{
		"m1": {Urgency: model.UrgencyLow},
	})
	cache.Merge(map[string]model.MessageClassification{
		"m2": {Urgency: model.UrgencyHigh},
	})

	assert.Equal(t, 2, cache.Len())
	assert.True(t, cache.Has("m1"))
	assert.True(t, cache.Has("m2"))
}

func TestClassificationCache_SameKeyOverwrites(t *testing.T) {
	cache := NewClassificationCache()

	cache.Merge(map[string]model.MessageClassification{
		"m1": {Urgency: model.UrgencyLow},
	})
	cache.Merge(map[string]model.MessageClassification{
		"m1": {Urgency: model.UrgencyCritical},
	})

	cls, ok := cache.Get("m1")
	require.True(t, ok)
	assert.Equal(t, model.UrgencyCritical, cls.Urgency)
	assert.Equal(t, 1, cache.Len())
}

func TestClassificationCache_SnapshotIsIsolated(t *testing.T) {
	cache := NewClassificationCache()
	cache.Put(model.MessageClassification{MessageID: "m1", Urgency: model.UrgencyLow})

	snap := cache.Snapshot()
	cache.Put(model.MessageClassification{MessageID: "m2", Urgency: model.UrgencyHigh})

	assert.Len(t, snap, 1)
	assert.Equal(t, 2, cache.Len())
}

func TestClassificationCache_ConcurrentMerges(t *testing.T) {
	cache := NewClassificationCache()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			cache.Put(model.MessageClassification{
				MessageID: fmt.Sprintf("m%d", i),
				Urgency:   model.UrgencyMedium,
			})
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 50, cache.Len())
}

func TestClassificationCache_IgnoresEmptyIDs(t *testing.T) {
	cache := NewClassificationCache()

	cache.Merge(map[string]model.MessageClassification{
		"": {Urgency: model.UrgencyHigh},
	})
	cache.Put(model.MessageClassification{Urgency: model.UrgencyHigh})

	assert.Equal(t, 0, cache.Len())
}
