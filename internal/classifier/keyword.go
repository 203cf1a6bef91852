package classifier

import (
	"context"
	"strings"

	"github.com/fluxstudio/conversation-intelligence/internal/model"
)

// KeywordClassifier is a deterministic keyword-based classifier. It is the
// fallback when no LLM provider is configured and the default in tests.
type KeywordClassifier struct{}

// NewKeywordClassifier creates a keyword classifier.
func NewKeywordClassifier() *KeywordClassifier {
	return &KeywordClassifier{}
}

// Name returns the provider name.
func (c *KeywordClassifier) Name() string {
	return "keyword"
}

var (
	urgentWords   = []string{"urgent", "asap", "immediately", "critical", "emergency", "deadline"}
	actionWords   = []string{"please", "need you to", "can you", "could you", "must", "required"}
	approvalWords = []string{"approve", "approval", "sign off", "sign-off", "confirm", "authorize"}
	positiveWords = []string{"great", "love", "awesome", "perfect", "thanks", "excellent"}
	negativeWords = []string{"problem", "issue", "wrong", "worried", "concern", "unhappy", "delay"}
)

// Classify labels a message from its content alone. It never fails.
func (c *KeywordClassifier) Classify(_ context.Context, msg model.Message, _ model.Conversation) (model.MessageClassification, error) {
	content := strings.ToLower(msg.Content)

	cls := model.MessageClassification{
		MessageID: msg.ID,
		Urgency:   model.UrgencyLow,
		Intent:    model.IntentInformational,
		Category:  model.CategoryGeneral,
	}

	if containsAny(content, urgentWords) {
		cls.Urgency = model.UrgencyHigh
	}
	if containsAny(content, actionWords) {
		cls.Intent = model.IntentActionRequired
		if cls.Urgency == model.UrgencyLow {
			cls.Urgency = model.UrgencyMedium
		}
	}

	switch {
	case containsAny(content, approvalWords):
		cls.Category = model.CategoryApprovalRequest
	case strings.Contains(content, "?"):
		cls.Category = model.CategoryQuestion
	}

	if containsAny(content, positiveWords) {
		cls.Emotions = append(cls.Emotions, model.EmotionPositive)
	}
	if containsAny(content, negativeWords) {
		cls.Emotions = append(cls.Emotions, model.EmotionConcerned)
	}
	if len(cls.Emotions) == 0 {
		cls.Emotions = []model.Emotion{model.EmotionNeutral}
	}

	return cls, nil
}

func containsAny(content string, words []string) bool {
	for _, w := range words {
		if strings.Contains(content, w) {
			return true
		}
	}
	return false
}
