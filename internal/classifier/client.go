// Package classifier provides message classification clients.
package classifier

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fluxstudio/conversation-intelligence/internal/model"
)

// Client is the interface for message classifiers. Implementations may
// fail per message; callers treat a failure as "no classification" for
// that message only.
type Client interface {
	// Classify assigns urgency/intent/category/emotion labels to a single
	// message in the context of its conversation.
	Classify(ctx context.Context, msg model.Message, conv model.Conversation) (model.MessageClassification, error)

	// Name returns the provider name.
	Name() string
}

// Provider is the type of classification provider.
type Provider string

const (
	ProviderAnthropic Provider = "anthropic"
	ProviderOpenAI    Provider = "openai"
	ProviderKeyword   Provider = "keyword"
)

// NewClient creates a classifier for the given provider. The keyword
// classifier needs no API key and is the fallback when none is configured.
func NewClient(provider Provider, apiKey string) (Client, error) {
	switch provider {
	case ProviderAnthropic:
		return NewAnthropicClassifier(apiKey)
	case ProviderOpenAI:
		return NewOpenAIClassifier(apiKey)
	case ProviderKeyword:
		return NewKeywordClassifier(), nil
	default:
		return nil, fmt.Errorf("unknown classifier provider: %s", provider)
	}
}

// classificationPrompt asks the model for a strict JSON object matching the
// MessageClassification shape.
func classificationPrompt(msg model.Message, conv model.Conversation) string {
	return fmt.Sprintf(`Classify the following message from the conversation %q (type: %s).

Message from %s:
%s

Return ONLY a JSON object with this structure:
{
  "urgency": "critical|high|medium|low",
  "intent": "action-required|informational|social",
  "category": "question|approval-request|feedback|update|general",
  "emotions": ["positive","excited","negative","concerned","neutral"]
}

Pick the single best urgency, intent, and category. Include only the
emotions actually expressed.`, conv.Name, conv.Type, msg.Author.Name, msg.Content)
}

// classificationResponse mirrors the JSON the model is asked to return.
type classificationResponse struct {
	Urgency  string   `json:"urgency"`
	Intent   string   `json:"intent"`
	Category string   `json:"category"`
	Emotions []string `json:"emotions"`
}

// parseClassification decodes a model response, tolerating surrounding
// prose and code fences, and maps the labels onto the known enums. Unknown
// labels fall back to the neutral defaults.
func parseClassification(messageID, raw string) (model.MessageClassification, error) {
	raw = strings.TrimSpace(raw)
	if start := strings.Index(raw, "{"); start >= 0 {
		if end := strings.LastIndex(raw, "}"); end > start {
			raw = raw[start : end+1]
		}
	}

	var resp classificationResponse
	if err := json.Unmarshal([]byte(raw), &resp); err != nil {
		return model.MessageClassification{}, fmt.Errorf("failed to parse classification response: %w", err)
	}

	cls := model.MessageClassification{
		MessageID: messageID,
		Urgency:   parseUrgency(resp.Urgency),
		Intent:    parseIntent(resp.Intent),
		Category:  parseCategory(resp.Category),
	}
	for _, e := range resp.Emotions {
		if emotion, ok := parseEmotion(e); ok {
			cls.Emotions = append(cls.Emotions, emotion)
		}
	}

	return cls, nil
}

func parseUrgency(s string) model.Urgency {
	switch model.Urgency(strings.ToLower(strings.TrimSpace(s))) {
	case model.UrgencyCritical:
		return model.UrgencyCritical
	case model.UrgencyHigh:
		return model.UrgencyHigh
	case model.UrgencyMedium:
		return model.UrgencyMedium
	default:
		return model.UrgencyLow
	}
}

func parseIntent(s string) model.Intent {
	switch model.Intent(strings.ToLower(strings.TrimSpace(s))) {
	case model.IntentActionRequired:
		return model.IntentActionRequired
	case model.IntentSocial:
		return model.IntentSocial
	default:
		return model.IntentInformational
	}
}

func parseCategory(s string) model.Category {
	switch model.Category(strings.ToLower(strings.TrimSpace(s))) {
	case model.CategoryQuestion:
		return model.CategoryQuestion
	case model.CategoryApprovalRequest:
		return model.CategoryApprovalRequest
	case model.CategoryFeedback:
		return model.CategoryFeedback
	case model.CategoryUpdate:
		return model.CategoryUpdate
	default:
		return model.CategoryGeneral
	}
}

func parseEmotion(s string) (model.Emotion, bool) {
	switch model.Emotion(strings.ToLower(strings.TrimSpace(s))) {
	case model.EmotionPositive:
		return model.EmotionPositive, true
	case model.EmotionExcited:
		return model.EmotionExcited, true
	case model.EmotionNegative:
		return model.EmotionNegative, true
	case model.EmotionConcerned:
		return model.EmotionConcerned, true
	case model.EmotionNeutral:
		return model.EmotionNeutral, true
	default:
		return "", false
	}
}
