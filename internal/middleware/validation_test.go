package middleware

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fluxstudio/conversation-intelligence/internal/model"
)

func TestValidateFilterCategory(t *testing.T) {
	for _, valid := range []string{"all", "urgent", "pending", "stale"} {
		category, err := ValidateFilterCategory(valid)
		require.NoError(t, err, valid)
		assert.Equal(t, model.FilterCategory(valid), category)
	}

	_, err := ValidateFilterCategory("bogus")
	assert.Error(t, err)
}

func TestValidateSearchText(t *testing.T) {
	assert.NoError(t, ValidateSearchText("brand redesign"))
	assert.NoError(t, ValidateSearchText(""))
	assert.Error(t, ValidateSearchText(strings.Repeat("x", 300)))
	assert.Error(t, ValidateSearchText("\xff\xfe"))
}

func TestValidateSnapshot(t *testing.T) {
	t.Run("nil request", func(t *testing.T) {
		assert.Error(t, ValidateSnapshot(nil))
	})

	t.Run("within limits", func(t *testing.T) {
		req := &model.SyncRequest{
			Conversations: []model.Conversation{{ID: "c1"}},
			Messages: map[string][]model.Message{
				"c1": {{ID: "m1", ConversationID: "c1"}},
			},
		}
		assert.NoError(t, ValidateSnapshot(req))
	})

	t.Run("too many conversations", func(t *testing.T) {
		req := &model.SyncRequest{
			Conversations: make([]model.Conversation, maxSnapshotConversations+1),
		}
		assert.Error(t, ValidateSnapshot(req))
	})
}
