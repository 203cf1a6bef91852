// Package service provides business logic for the intelligence engine.
package service

import (
	"sync"

	"github.com/fluxstudio/conversation-intelligence/internal/model"
)

// snapshot is the last conversation/message set synced for a tenant.
type snapshot struct {
	conversations []model.Conversation
	messages      map[string][]model.Message
}

// ConversationStore holds the conversation snapshots pushed by the
// messaging subsystem, one per tenant. The engine reads from it and never
// writes conversation or message records back.
type ConversationStore struct {
	mu        sync.RWMutex
	snapshots map[string]*snapshot
}

// NewConversationStore creates an empty store.
func NewConversationStore() *ConversationStore {
	return &ConversationStore{
		snapshots: make(map[string]*snapshot),
	}
}

// Replace swaps in a new snapshot for the tenant.
func (s *ConversationStore) Replace(tenantID string, convs []model.Conversation, messages map[string][]model.Message) {
	s.mu.Lock()
	s.snapshots[tenantID] = &snapshot{
		conversations: convs,
		messages:      messages,
	}
	s.mu.Unlock()
}

// Get returns the current snapshot for the tenant. The returned slices must
// be treated as read-only.
func (s *ConversationStore) Get(tenantID string) ([]model.Conversation, map[string][]model.Message) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap, ok := s.snapshots[tenantID]
	if !ok {
		return nil, nil
	}
	return snap.conversations, snap.messages
}
