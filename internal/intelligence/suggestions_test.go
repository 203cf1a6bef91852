package intelligence

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fluxstudio/conversation-intelligence/internal/model"
)

var sugNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func namedConv(id, name string) model.Conversation {
	return model.Conversation{ID: id, Name: name}
}

func TestGenerateSuggestions_Escalation(t *testing.T) {
	convs := []model.Conversation{namedConv("c1", "Brand Redesign")}
	insights := map[string]model.ConversationInsight{
		"c1": {ConversationID: "c1", UrgentMessageCount: 3, LastActivity: sugNow},
	}

	suggestions := GenerateSuggestions(convs, insights, sugNow)

	require.Len(t, suggestions, 1)
	assert.Equal(t, "escalation-c1", suggestions[0].ID)
	assert.Equal(t, model.SuggestionEscalation, suggestions[0].Type)
	assert.Equal(t, model.PriorityHigh, suggestions[0].Priority)
	assert.Equal(t, "c1", suggestions[0].ConversationID)
}

func TestGenerateSuggestions_StaleScenario(t *testing.T) {
	// 4 days idle with pending actions: exactly one low-priority stale
	// follow-up, no escalation.
	convs := []model.Conversation{namedConv("c1", "Mobile App Design")}
	insights := map[string]model.ConversationInsight{
		"c1": {
			ConversationID:     "c1",
			PendingActionCount: 2,
			LastActivity:       sugNow.Add(-4 * 24 * time.Hour),
		},
	}

	suggestions := GenerateSuggestions(convs, insights, sugNow)

	require.Len(t, suggestions, 1)
	assert.Equal(t, model.SuggestionFollowUp, suggestions[0].Type)
	assert.Equal(t, model.PriorityLow, suggestions[0].Priority)
	assert.Equal(t, "follow-up-stale-c1", suggestions[0].ID)
	assert.Equal(t, true, suggestions[0].ActionData["stale"])
}

func TestGenerateSuggestions_RecentPendingIsNotStale(t *testing.T) {
	convs := []model.Conversation{namedConv("c1", "Mobile App Design")}
	insights := map[string]model.ConversationInsight{
		"c1": {
			ConversationID:     "c1",
			PendingActionCount: 2,
			LastActivity:       sugNow.Add(-24 * time.Hour),
		},
	}

	suggestions := GenerateSuggestions(convs, insights, sugNow)
	assert.Empty(t, suggestions)
}

func TestGenerateSuggestions_AllFourRules(t *testing.T) {
	convs := []model.Conversation{namedConv("c1", "Everything At Once")}
	insights := map[string]model.ConversationInsight{
		"c1": {
			ConversationID:          "c1",
			UrgentMessageCount:      1,
			ApprovalRequestCount:    1,
			UnansweredQuestionCount: 1,
			PendingActionCount:      1,
			LastActivity:            sugNow.Add(-5 * 24 * time.Hour),
		},
	}

	suggestions := GenerateSuggestions(convs, insights, sugNow)

	require.Len(t, suggestions, 4)
	assert.Equal(t, model.PriorityHigh, suggestions[0].Priority)
	assert.Equal(t, model.PriorityHigh, suggestions[1].Priority)
	assert.Equal(t, model.PriorityMedium, suggestions[2].Priority)
	assert.Equal(t, model.PriorityLow, suggestions[3].Priority)
}

func TestGenerateSuggestions_OrderingIsNonIncreasing(t *testing.T) {
	convs := []model.Conversation{
		namedConv("c1", "Low Only"),
		namedConv("c2", "High And Medium"),
		namedConv("c3", "High Only"),
	}
	insights := map[string]model.ConversationInsight{
		"c1": {ConversationID: "c1", PendingActionCount: 1, LastActivity: sugNow.Add(-4 * 24 * time.Hour)},
		"c2": {ConversationID: "c2", UrgentMessageCount: 1, UnansweredQuestionCount: 1, LastActivity: sugNow},
		"c3": {ConversationID: "c3", UrgentMessageCount: 2, LastActivity: sugNow},
	}

	suggestions := GenerateSuggestions(convs, insights, sugNow)

	require.Len(t, suggestions, 4)
	for i := 1; i < len(suggestions); i++ {
		assert.LessOrEqual(t,
			priorityRank[suggestions[i-1].Priority],
			priorityRank[suggestions[i].Priority],
			"priority must be non-increasing at index %d", i,
		)
	}
}

func TestGenerateSuggestions_TiesKeepInsertionOrder(t *testing.T) {
	convs := []model.Conversation{
		namedConv("c1", "First"),
		namedConv("c2", "Second"),
		namedConv("c3", "Third"),
	}
	insights := map[string]model.ConversationInsight{
		"c1": {ConversationID: "c1", UrgentMessageCount: 1, LastActivity: sugNow},
		"c2": {ConversationID: "c2", UrgentMessageCount: 1, LastActivity: sugNow},
		"c3": {ConversationID: "c3", UrgentMessageCount: 1, LastActivity: sugNow},
	}

	suggestions := GenerateSuggestions(convs, insights, sugNow)

	require.Len(t, suggestions, 3)
	assert.Equal(t, "c1", suggestions[0].ConversationID)
	assert.Equal(t, "c2", suggestions[1].ConversationID)
	assert.Equal(t, "c3", suggestions[2].ConversationID)
}

func TestGenerateSuggestions_DeterministicIDs(t *testing.T) {
	convs := []model.Conversation{namedConv("c1", "Repeat")}
	insights := map[string]model.ConversationInsight{
		"c1": {ConversationID: "c1", ApprovalRequestCount: 1, LastActivity: sugNow},
	}

	first := GenerateSuggestions(convs, insights, sugNow)
	second := GenerateSuggestions(convs, insights, sugNow)

	require.Len(t, first, 1)
	assert.Equal(t, first, second)
	assert.Equal(t, "approval-needed-c1", first[0].ID)
}

func TestGenerateSuggestions_SkipsConversationsWithoutInsight(t *testing.T) {
	convs := []model.Conversation{namedConv("c1", "No Insight")}

	suggestions := GenerateSuggestions(convs, map[string]model.ConversationInsight{}, sugNow)
	assert.Empty(t, suggestions)
}
