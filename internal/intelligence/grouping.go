package intelligence

import (
	"strings"
	"time"

	"github.com/fluxstudio/conversation-intelligence/internal/model"
)

// GroupConversations filters the conversation list by the given filter and
// assigns every surviving conversation to exactly one navigation bucket,
// plus the non-exclusive project and client indexes.
//
// Buckets are evaluated in strict precedence order, first match wins:
// urgent, pending, pinned, today, yesterday, thisWeek, older.
func GroupConversations(
	convs []model.Conversation,
	insights map[string]model.ConversationInsight,
	filter model.ConversationFilter,
	now time.Time,
) *model.GroupingResult {
	result := &model.GroupingResult{
		ByProject: make(map[string][]model.Conversation),
		ByClient:  make(map[string][]model.Conversation),
	}

	startOfToday := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	startOfYesterday := startOfToday.Add(-24 * time.Hour)
	weekAgo := now.Add(-7 * 24 * time.Hour)

	for _, conv := range convs {
		insight := insights[conv.ID]
		activity := lastActivity(conv, insight)

		if !matchesSearch(conv, filter.SearchText) {
			continue
		}
		if !matchesCategory(insight, activity, filter.Category, now) {
			continue
		}

		switch {
		case insight.UrgentMessageCount > 0:
			result.Urgent = append(result.Urgent, conv)
		case insight.PendingActionCount > 0:
			result.Pending = append(result.Pending, conv)
		case conv.Metadata.IsPinned:
			result.Pinned = append(result.Pinned, conv)
		case !activity.Before(startOfToday):
			result.Today = append(result.Today, conv)
		case !activity.Before(startOfYesterday):
			result.Yesterday = append(result.Yesterday, conv)
		case !activity.Before(weekAgo):
			result.ThisWeek = append(result.ThisWeek, conv)
		default:
			result.Older = append(result.Older, conv)
		}

		if conv.Type == model.ConversationTypeProject && conv.ProjectID != "" {
			result.ByProject[conv.ProjectID] = append(result.ByProject[conv.ProjectID], conv)
		}

		for _, p := range conv.Participants {
			key := p.Key()
			if key == "" || !isClient(p) {
				continue
			}
			result.ByClient[key] = append(result.ByClient[key], conv)
		}
	}

	return result
}

// lastActivity prefers the insight's computed value (which folds in message
// timestamps) and falls back to the conversation record when no insight
// exists yet.
func lastActivity(conv model.Conversation, insight model.ConversationInsight) time.Time {
	if !insight.LastActivity.IsZero() {
		return insight.LastActivity
	}
	return conv.LastActivity
}

func matchesSearch(conv model.Conversation, search string) bool {
	if search == "" {
		return true
	}

	needle := strings.ToLower(search)
	if strings.Contains(strings.ToLower(conv.Name), needle) {
		return true
	}
	for _, p := range conv.Participants {
		if strings.Contains(strings.ToLower(p.Name), needle) {
			return true
		}
	}
	return false
}

func matchesCategory(insight model.ConversationInsight, activity time.Time, category model.FilterCategory, now time.Time) bool {
	switch category {
	case model.FilterUrgent:
		return insight.UrgentMessageCount > 0
	case model.FilterPending:
		return insight.PendingActionCount > 0
	case model.FilterStale:
		return now.Sub(activity) > staleAfter
	default:
		return true
	}
}

// isClient reports whether the participant represents a client. The
// name-substring heuristic is a fallback used only when userType is absent;
// it is a known precision limitation (it also matches "director").
func isClient(p model.Participant) bool {
	if p.UserType != "" {
		return p.UserType == model.UserTypeClient
	}

	name := strings.ToLower(p.Name)
	return strings.Contains(name, "client") || strings.Contains(name, "director")
}
