package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// AnthropicClient implements Client for the Anthropic Messages API
type AnthropicClient struct {
	client *anthropic.Client
	config *Config
}

// NewAnthropicClient creates a new Anthropic client
func NewAnthropicClient(config *Config, apiKey string) (*AnthropicClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}
	if config.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(config.BaseURL))
	}
	client := anthropic.NewClient(opts...)

	return &AnthropicClient{
		client: &client,
		config: config,
	}, nil
}

// GenerateContent sends prompt to the Messages API and joins the text blocks of the reply
func (c *AnthropicClient) GenerateContent(ctx context.Context, prompt string) (string, error) {
	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(c.config.GetModel()),
		MaxTokens: int64(c.config.GetMaxTokens()),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	}
	if c.config.System != "" {
		params.System = []anthropic.TextBlockParam{{Text: c.config.System}}
	}
	if c.config.Temperature > 0 {
		params.Temperature = anthropic.Float(float64(c.config.Temperature))
	}

	resp, err := c.client.Messages.New(ctx, params)
	if err != nil {
		return "", &ExternalCallError{Provider: ProviderAnthropic, Cause: err}
	}

	var parts []string
	for _, block := range resp.Content {
		if block.Type == "text" {
			parts = append(parts, block.Text)
		}
	}
	if len(parts) == 0 {
		return "", callFailed(ProviderAnthropic, "no text content in response")
	}

	return strings.Join(parts, ""), nil
}

// GetModel returns the model name
func (c *AnthropicClient) GetModel() string {
	return c.config.GetModel()
}

// Close is a no-op; the HTTP client needs no teardown
func (c *AnthropicClient) Close() error {
	return nil
}
