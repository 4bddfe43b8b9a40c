package llm

import (
	"context"
	"fmt"

	"github.com/sashabaranov/go-openai"
)

// OpenAIClient implements Client for OpenAI chat completions
type OpenAIClient struct {
	client *openai.Client
	config *Config
}

// NewOpenAIClient creates a new OpenAI client
func NewOpenAIClient(config *Config, apiKey string) (*OpenAIClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	clientConfig := openai.DefaultConfig(apiKey)
	if config.BaseURL != "" {
		clientConfig.BaseURL = config.BaseURL
	}

	return &OpenAIClient{
		client: openai.NewClientWithConfig(clientConfig),
		config: config,
	}, nil
}

// GenerateContent sends prompt as a chat completion and returns the first choice
func (c *OpenAIClient) GenerateContent(ctx context.Context, prompt string) (string, error) {
	var messages []openai.ChatCompletionMessage
	if c.config.System != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: c.config.System,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: prompt,
	})

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.config.GetModel(),
		Messages:    messages,
		MaxTokens:   c.config.GetMaxTokens(),
		Temperature: c.config.Temperature,
	})
	if err != nil {
		return "", &ExternalCallError{Provider: ProviderOpenAI, Cause: err}
	}

	if len(resp.Choices) == 0 {
		return "", callFailed(ProviderOpenAI, "no choices in response")
	}

	content := resp.Choices[0].Message.Content
	if content == "" {
		return "", callFailed(ProviderOpenAI, "empty message in response")
	}
	return content, nil
}

// GetModel returns the model name
func (c *OpenAIClient) GetModel() string {
	return c.config.GetModel()
}

// Close is a no-op; the HTTP client needs no teardown
func (c *OpenAIClient) Close() error {
	return nil
}
