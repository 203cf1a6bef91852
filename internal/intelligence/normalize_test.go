package intelligence

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fluxstudio/conversation-intelligence/internal/model"
)

func TestNormalizeConversations(t *testing.T) {
	convs := []model.Conversation{
		{ID: "c1", Name: "Valid"},
		{Name: "No ID"},
		{
			ID: "c2",
			Participants: []model.Participant{
				{ID: "p1", Name: "Alice"},
				{}, // neither id nor name
				{Name: "Bob"},
			},
		},
	}

	out, skipped := NormalizeConversations(convs)

	require.Len(t, out, 2)
	assert.Equal(t, 2, skipped) // one conversation, one participant
	assert.Len(t, out[1].Participants, 2)
}

func TestNormalizeMessages(t *testing.T) {
	base := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)
	msgs := []model.Message{
		{ID: "m2", ConversationID: "c1", CreatedAt: base.Add(time.Hour)},
		{ID: "", ConversationID: "c1", CreatedAt: base},
		{ID: "m3", ConversationID: "", CreatedAt: base},
		{ID: "m1", ConversationID: "c1", CreatedAt: base},
	}

	out, skipped := NormalizeMessages(msgs)

	require.Len(t, out, 2)
	assert.Equal(t, 2, skipped)
	// sorted ascending by createdAt
	assert.Equal(t, "m1", out[0].ID)
	assert.Equal(t, "m2", out[1].ID)
}

func TestNormalizeMessages_Empty(t *testing.T) {
	out, skipped := NormalizeMessages(nil)
	assert.Empty(t, out)
	assert.Zero(t, skipped)
}
