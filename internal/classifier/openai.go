package classifier

import (
	"context"
	"errors"

	"github.com/sashabaranov/go-openai"

	"github.com/fluxstudio/conversation-intelligence/internal/model"
)

const openAIModel = "gpt-4o-mini"

// OpenAIClassifier classifies messages via the OpenAI API.
type OpenAIClassifier struct {
	client *openai.Client
}

// NewOpenAIClassifier creates a new OpenAI-backed classifier.
func NewOpenAIClassifier(apiKey string) (*OpenAIClassifier, error) {
	if apiKey == "" {
		return nil, errors.New("OpenAI API key is required")
	}

	return &OpenAIClassifier{
		client: openai.NewClient(apiKey),
	}, nil
}

// Name returns the provider name.
func (c *OpenAIClassifier) Name() string {
	return "openai"
}

// Classify assigns labels to a single message.
func (c *OpenAIClassifier) Classify(ctx context.Context, msg model.Message, conv model.Conversation) (model.MessageClassification, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     openAIModel,
		MaxTokens: 256,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: classificationPrompt(msg, conv),
			},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return model.MessageClassification{}, err
	}

	if len(resp.Choices) == 0 {
		return model.MessageClassification{}, errors.New("empty completion response")
	}

	return parseClassification(msg.ID, resp.Choices[0].Message.Content)
}
