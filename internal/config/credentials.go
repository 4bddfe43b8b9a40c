package config

import (
	"fmt"
	"os"

	"github.com/jonathan/digest-agent/internal/llm"
)

// MissingCredentialError is returned when no API key is available for the selected provider.
type MissingCredentialError struct {
	Provider string
	EnvVar   string
}

func (e *MissingCredentialError) Error() string {
	return fmt.Sprintf("missing API key for provider %s: set %s or api_key in the config file", e.Provider, e.EnvVar)
}

// ResolveAPIKey returns the API key for the configured provider.
// An explicit api_key wins over the provider's environment variable.
func (c *Config) ResolveAPIKey() (string, error) {
	provider, err := llm.ParseProvider(c.Provider)
	if err != nil {
		return "", err
	}
	if c.APIKey != "" {
		return c.APIKey, nil
	}
	envVar := provider.APIKeyEnv()
	if key := os.Getenv(envVar); key != "" {
		return key, nil
	}
	return "", &MissingCredentialError{Provider: string(provider), EnvVar: envVar}
}
