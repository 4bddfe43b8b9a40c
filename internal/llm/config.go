// Package llm provides the model backends that produce digest text.
// Every provider satisfies the same Client interface, so the producer does
// not care which API answered.
package llm

import (
	"fmt"
	"strings"
)

// Provider represents an LLM provider
type Provider string

// Provider constants define supported LLM providers
const (
	// ProviderAnthropic is the Anthropic Messages API
	ProviderAnthropic Provider = "anthropic"
	// ProviderOpenAI is the OpenAI chat completions API
	ProviderOpenAI Provider = "openai"
	// ProviderGemini is the Google Gemini API
	ProviderGemini Provider = "gemini"
)

// DefaultMaxTokens caps the length of a generated digest
const DefaultMaxTokens = 4096

var defaultModels = map[Provider]string{
	ProviderAnthropic: "claude-sonnet-4-20250514",
	ProviderOpenAI:    "gpt-4o",
	ProviderGemini:    "gemini-2.5-flash",
}

var apiKeyEnv = map[Provider]string{
	ProviderAnthropic: "ANTHROPIC_API_KEY",
	ProviderOpenAI:    "OPENAI_API_KEY",
	ProviderGemini:    "GEMINI_API_KEY",
}

// Providers lists the supported providers in a stable order
func Providers() []Provider {
	return []Provider{ProviderAnthropic, ProviderOpenAI, ProviderGemini}
}

// ParseProvider converts a name such as "OpenAI" into a Provider
func ParseProvider(name string) (Provider, error) {
	p := Provider(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range Providers() {
		if p == known {
			return p, nil
		}
	}
	return "", fmt.Errorf("unknown provider %q (supported: %s)", name, ProviderNames())
}

// ProviderNames lists the supported providers for help and error text
func ProviderNames() string {
	names := make([]string, 0, len(defaultModels))
	for _, p := range Providers() {
		names = append(names, string(p))
	}
	return strings.Join(names, ", ")
}

// DefaultModel returns the model used when none is configured
func (p Provider) DefaultModel() string {
	return defaultModels[p]
}

// APIKeyEnv returns the environment variable holding the provider's credential
func (p Provider) APIKeyEnv() string {
	return apiKeyEnv[p]
}

// Config holds the model configuration for one backend
type Config struct {
	Provider    Provider
	Model       string
	BaseURL     string // Optional API endpoint override
	System      string // Optional system instruction
	MaxTokens   int
	Temperature float32 // Zero leaves the provider default
}

// DefaultConfig returns the default configuration (Anthropic)
func DefaultConfig() *Config {
	return &Config{
		Provider:  ProviderAnthropic,
		MaxTokens: DefaultMaxTokens,
	}
}

// GetModel returns the configured model, falling back to the provider default
func (c *Config) GetModel() string {
	if c.Model != "" {
		return c.Model
	}
	return c.Provider.DefaultModel()
}

// GetMaxTokens returns the configured token cap or DefaultMaxTokens
func (c *Config) GetMaxTokens() int {
	if c.MaxTokens > 0 {
		return c.MaxTokens
	}
	return DefaultMaxTokens
}
