package model

import (
	"time"
)

// EventType represents the type of intelligence event published for
// downstream consumers.
type EventType string

const (
	// EventTypeInsightsUpdated fires after an aggregation pass completes.
	EventTypeInsightsUpdated EventType = "insights_updated"
	// EventTypeConversationSelected fires when a consumer reports that a
	// user selected a conversation from the grouped view.
	EventTypeConversationSelected EventType = "conversation_selected"
	// EventTypeActionTriggered fires when a consumer reports that a user
	// acted on a workflow suggestion.
	EventTypeActionTriggered EventType = "action_triggered"
)

// IntelligenceEvent is published to the intelligence stream whenever the
// engine recomputes results or a consumer callback fires.
type IntelligenceEvent struct {
	ID             string         `json:"id"`
	TenantID       string         `json:"tenant_id"`
	Type           EventType      `json:"type"`
	ConversationID string         `json:"conversation_id,omitempty"`
	ActionType     string         `json:"action_type,omitempty"`
	Payload        map[string]any `json:"payload,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
}
