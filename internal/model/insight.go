package model

import (
	"time"
)

// Sentiment is the aggregate sentiment of a conversation.
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNeutral  Sentiment = "neutral"
	SentimentNegative Sentiment = "negative"
)

// ActivityLevel is the recent message volume of a conversation.
type ActivityLevel string

const (
	ActivityHigh   ActivityLevel = "high"
	ActivityMedium ActivityLevel = "medium"
	ActivityLow    ActivityLevel = "low"
)

// ConversationInsight is the derived per-conversation summary. Every field
// is a pure function of the conversation, its messages, and the
// classification cache at computation time.
type ConversationInsight struct {
	ConversationID          string        `json:"conversation_id"`
	UrgentMessageCount      int           `json:"urgent_message_count"`
	PendingActionCount      int           `json:"pending_action_count"`
	UnansweredQuestionCount int           `json:"unanswered_question_count"`
	ApprovalRequestCount    int           `json:"approval_request_count"`
	OverallSentiment        Sentiment     `json:"overall_sentiment"`
	ActivityLevel           ActivityLevel `json:"activity_level"`
	AverageResponseHours    float64       `json:"average_response_hours"`
	LastActivity            time.Time     `json:"last_activity"`
}

// SuggestionType identifies the kind of workflow suggestion.
type SuggestionType string

const (
	SuggestionEscalation     SuggestionType = "escalation"
	SuggestionApprovalNeeded SuggestionType = "approval-needed"
	SuggestionFollowUp       SuggestionType = "follow-up"
	SuggestionDeadline       SuggestionType = "deadline-reminder"
)

// WorkflowSuggestion is an actionable, prioritized recommendation derived
// from one conversation's insight. Suggestions are regenerated wholesale on
// every aggregation pass; IDs are deterministic so recomputation never
// produces duplicates.
type WorkflowSuggestion struct {
	ID             string         `json:"id"`
	Type           SuggestionType `json:"type"`
	Priority       Priority       `json:"priority"`
	Title          string         `json:"title"`
	Description    string         `json:"description"`
	ConversationID string         `json:"conversation_id"`
	ActionData     map[string]any `json:"action_data,omitempty"`
}

// FilterCategory selects which conversations a grouped view keeps.
type FilterCategory string

const (
	FilterAll     FilterCategory = "all"
	FilterUrgent  FilterCategory = "urgent"
	FilterPending FilterCategory = "pending"
	FilterStale   FilterCategory = "stale"
)

// ConversationFilter is the filter input for grouped conversation views.
type ConversationFilter struct {
	SearchText string         `json:"search_text"`
	Category   FilterCategory `json:"category"`
}

// GroupingResult holds the mutually exclusive navigation buckets plus the
// non-exclusive project and client indexes over the same filtered set.
type GroupingResult struct {
	Urgent    []Conversation `json:"urgent"`
	Pending   []Conversation `json:"pending"`
	Pinned    []Conversation `json:"pinned"`
	Today     []Conversation `json:"today"`
	Yesterday []Conversation `json:"yesterday"`
	ThisWeek  []Conversation `json:"this_week"`
	Older     []Conversation `json:"older"`

	ByProject map[string][]Conversation `json:"by_project"`
	ByClient  map[string][]Conversation `json:"by_client"`
}
