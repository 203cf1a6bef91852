package intelligence

import (
	"fmt"
	"sort"
	"time"

	"github.com/fluxstudio/conversation-intelligence/internal/model"
)

var priorityRank = map[model.Priority]int{
	model.PriorityHigh:   0,
	model.PriorityMedium: 1,
	model.PriorityLow:    2,
}

// GenerateSuggestions derives workflow suggestions from the insight set,
// ordered by priority (high, medium, low). The sort is stable: ties keep
// the order in which conversations appear in the input slice, which is the
// insertion order of the insight set. Consumers rely on that ordering for
// "top N" views.
//
// Each conversation contributes at most four suggestions. IDs are derived
// from the suggestion type and conversation ID so regeneration across
// passes never produces duplicates.
func GenerateSuggestions(convs []model.Conversation, insights map[string]model.ConversationInsight, now time.Time) []model.WorkflowSuggestion {
	var suggestions []model.WorkflowSuggestion

	for _, conv := range convs {
		insight, ok := insights[conv.ID]
		if !ok {
			continue
		}

		if insight.UrgentMessageCount > 0 {
			suggestions = append(suggestions, model.WorkflowSuggestion{
				ID:             fmt.Sprintf("escalation-%s", conv.ID),
				Type:           model.SuggestionEscalation,
				Priority:       model.PriorityHigh,
				Title:          "Urgent messages need attention",
				Description:    fmt.Sprintf("%q has %d urgent message(s)", conv.Name, insight.UrgentMessageCount),
				ConversationID: conv.ID,
				ActionData: map[string]any{
					"urgent_count": insight.UrgentMessageCount,
				},
			})
		}

		if insight.ApprovalRequestCount > 0 {
			suggestions = append(suggestions, model.WorkflowSuggestion{
				ID:             fmt.Sprintf("approval-needed-%s", conv.ID),
				Type:           model.SuggestionApprovalNeeded,
				Priority:       model.PriorityHigh,
				Title:          "Approval requested",
				Description:    fmt.Sprintf("%q has %d approval request(s) waiting", conv.Name, insight.ApprovalRequestCount),
				ConversationID: conv.ID,
				ActionData: map[string]any{
					"approval_count": insight.ApprovalRequestCount,
				},
			})
		}

		if insight.UnansweredQuestionCount > 0 {
			suggestions = append(suggestions, model.WorkflowSuggestion{
				ID:             fmt.Sprintf("follow-up-%s", conv.ID),
				Type:           model.SuggestionFollowUp,
				Priority:       model.PriorityMedium,
				Title:          "Unanswered questions",
				Description:    fmt.Sprintf("%q has %d question(s) without a reply", conv.Name, insight.UnansweredQuestionCount),
				ConversationID: conv.ID,
				ActionData: map[string]any{
					"question_count": insight.UnansweredQuestionCount,
				},
			})
		}

		if now.Sub(insight.LastActivity) > staleAfter && insight.PendingActionCount > 0 {
			suggestions = append(suggestions, model.WorkflowSuggestion{
				ID:             fmt.Sprintf("follow-up-stale-%s", conv.ID),
				Type:           model.SuggestionFollowUp,
				Priority:       model.PriorityLow,
				Title:          "Stale conversation",
				Description:    fmt.Sprintf("%q has %d pending action(s) and no activity for over 3 days", conv.Name, insight.PendingActionCount),
				ConversationID: conv.ID,
				ActionData: map[string]any{
					"pending_count": insight.PendingActionCount,
					"stale":         true,
				},
			})
		}
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		return priorityRank[suggestions[i].Priority] < priorityRank[suggestions[j].Priority]
	})

	return suggestions
}
