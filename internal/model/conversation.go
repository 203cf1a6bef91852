// Package model defines data structures for the conversation intelligence engine.
package model

import (
	"time"
)

// ConversationType identifies the kind of conversation thread.
type ConversationType string

const (
	ConversationTypeProject ConversationType = "project"
	ConversationTypeDirect  ConversationType = "direct"
	ConversationTypeTeam    ConversationType = "team"
	ConversationTypeSupport ConversationType = "support"
)

// Priority is a coarse conversation priority set by the messaging subsystem.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// UserType identifies the kind of participant.
type UserType string

const (
	UserTypeClient     UserType = "client"
	UserTypeDesigner   UserType = "designer"
	UserTypeTeamMember UserType = "team-member"
)

// Participant is a member of a conversation. Identity key is ID; when the
// messaging subsystem supplies no ID, Name is used as a degraded fallback key.
type Participant struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	UserType UserType `json:"user_type,omitempty"`
	IsOnline bool     `json:"is_online"`
	Avatar   string   `json:"avatar,omitempty"`
}

// Key returns the identity key for the participant, or "" when it has
// neither an ID nor a name.
func (p Participant) Key() string {
	if p.ID != "" {
		return p.ID
	}
	return p.Name
}

// ConversationMetadata carries user-managed flags on a conversation.
type ConversationMetadata struct {
	IsPinned   bool     `json:"is_pinned"`
	Priority   Priority `json:"priority,omitempty"`
	Tags       []string `json:"tags,omitempty"`
	IsArchived bool     `json:"is_archived"`
	IsMuted    bool     `json:"is_muted"`
}

// Conversation is a conversation thread as supplied by the messaging
// subsystem. The engine never mutates it.
type Conversation struct {
	ID           string               `json:"id"`
	TenantID     string               `json:"tenant_id,omitempty"`
	Name         string               `json:"name"`
	Type         ConversationType     `json:"type"`
	Participants []Participant        `json:"participants"`
	LastMessage  *Message             `json:"last_message,omitempty"`
	LastActivity time.Time            `json:"last_activity"`
	ProjectID    string               `json:"project_id,omitempty"`
	TeamID       string               `json:"team_id,omitempty"`
	UnreadCount  int                  `json:"unread_count"`
	Metadata     ConversationMetadata `json:"metadata"`
}

// SyncRequest is the snapshot pushed by the messaging subsystem: the
// conversations to analyze plus their messages keyed by conversation ID.
type SyncRequest struct {
	Conversations []Conversation       `json:"conversations"`
	Messages      map[string][]Message `json:"messages"`
}

// SyncResponse reports what a snapshot sync accepted.
type SyncResponse struct {
	Conversations int `json:"conversations"`
	Messages      int `json:"messages"`
	Skipped       int `json:"skipped"`
}
