package model

import (
	"time"
)

// MessageType identifies the content kind of a message.
type MessageType string

const (
	MessageTypeText   MessageType = "text"
	MessageTypeFile   MessageType = "file"
	MessageTypeSystem MessageType = "system"
)

// MessageStatus is the delivery status reported by the messaging subsystem.
type MessageStatus string

const (
	MessageStatusSent      MessageStatus = "sent"
	MessageStatusDelivered MessageStatus = "delivered"
	MessageStatusRead      MessageStatus = "read"
)

// Message is an immutable conversation message owned by the messaging
// subsystem.
type Message struct {
	ID             string        `json:"id"`
	ConversationID string        `json:"conversation_id"`
	Author         Participant   `json:"author"`
	Content        string        `json:"content"`
	CreatedAt      time.Time     `json:"created_at"`
	Type           MessageType   `json:"type,omitempty"`
	Status         MessageStatus `json:"status,omitempty"`
}
