package classifier

import (
	"context"
	"errors"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/fluxstudio/conversation-intelligence/internal/model"
)

const anthropicModel = "claude-3-5-haiku-20241022"

// AnthropicClassifier classifies messages via the Anthropic API.
type AnthropicClassifier struct {
	client *anthropic.Client
}

// NewAnthropicClassifier creates a new Anthropic-backed classifier.
func NewAnthropicClassifier(apiKey string) (*AnthropicClassifier, error) {
	if apiKey == "" {
		return nil, errors.New("Anthropic API key is required")
	}

	return &AnthropicClassifier{
		client: anthropic.NewClient(option.WithAPIKey(apiKey)),
	}, nil
}

// Name returns the provider name.
func (c *AnthropicClassifier) Name() string {
	return "anthropic"
}

// Classify assigns labels to a single message.
func (c *AnthropicClassifier) Classify(ctx context.Context, msg model.Message, conv model.Conversation) (model.MessageClassification, error) {
	resp, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.F(anthropicModel),
		MaxTokens: anthropic.F(int64(256)),
		Messages: anthropic.F([]anthropic.MessageParam{
			{
				Role: anthropic.F(anthropic.MessageParamRoleUser),
				Content: anthropic.F([]anthropic.ContentBlockParamUnion{
					anthropic.TextBlockParam{
						Type: anthropic.F(anthropic.TextBlockParamTypeText),
						Text: anthropic.F(classificationPrompt(msg, conv)),
					},
				}),
			},
		}),
	})
	if err != nil {
		return model.MessageClassification{}, err
	}

	var content string
	for _, block := range resp.Content {
		if block.Type == anthropic.ContentBlockTypeText {
			content += block.Text
		}
	}

	return parseClassification(msg.ID, content)
}
