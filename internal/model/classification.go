package model

// Urgency is the classifier's urgency label for a message.
type Urgency string

const (
	UrgencyCritical Urgency = "critical"
	UrgencyHigh     Urgency = "high"
	UrgencyMedium   Urgency = "medium"
	UrgencyLow      Urgency = "low"
)

// Intent is the classifier's intent label for a message.
type Intent string

const (
	IntentActionRequired Intent = "action-required"
	IntentInformational  Intent = "informational"
	IntentSocial         Intent = "social"
)

// Category is the classifier's topical label for a message.
type Category string

const (
	CategoryQuestion        Category = "question"
	CategoryApprovalRequest Category = "approval-request"
	CategoryFeedback        Category = "feedback"
	CategoryUpdate          Category = "update"
	CategoryGeneral         Category = "general"
)

// Emotion is a sentiment tag attached to a message.
type Emotion string

const (
	EmotionPositive  Emotion = "positive"
	EmotionExcited   Emotion = "excited"
	EmotionNegative  Emotion = "negative"
	EmotionConcerned Emotion = "concerned"
	EmotionNeutral   Emotion = "neutral"
)

// MessageClassification is the per-message label set produced by the
// classifier. At most one classification exists per message ID; once
// present it is treated as immutable (re-classification overwrites the
// record wholesale).
type MessageClassification struct {
	MessageID string    `json:"message_id"`
	Urgency   Urgency   `json:"urgency"`
	Intent    Intent    `json:"intent"`
	Category  Category  `json:"category"`
	Emotions  []Emotion `json:"emotions,omitempty"`
}

// IsUrgent reports whether the classification marks the message urgent.
func (c MessageClassification) IsUrgent() bool {
	return c.Urgency == UrgencyCritical || c.Urgency == UrgencyHigh
}

// NeedsAction reports whether the message carries a pending action item.
func (c MessageClassification) NeedsAction() bool {
	return c.Intent == IntentActionRequired || c.Category == CategoryApprovalRequest
}
