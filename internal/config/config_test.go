package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/digest-agent/internal/llm"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfig_ValidJSON(t *testing.T) {
	path := writeConfig(t, "config.json", `{
		"provider": "openai",
		"model": "gpt-4o-mini",
		"max_tokens": 2048,
		"data_dir": "/var/digest",
		"history_limit": 10,
		"record_failures": true
	}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "openai", cfg.Provider)
	assert.Equal(t, "gpt-4o-mini", cfg.Model)
	assert.Equal(t, 2048, cfg.MaxTokens)
	assert.Equal(t, "/var/digest", cfg.DataDir)
	assert.Equal(t, 10, cfg.HistoryLimit)
	assert.True(t, cfg.RecordFailures)
}

func TestLoadConfig_ValidYAML(t *testing.T) {
	path := writeConfig(t, "config.yaml", `
provider: gemini
temperature: 0.4
request_timeout: 45s
output_path: site/index.html
page_title: Morning Brief
schedule: "30 7 * * *"
run_on_start: true
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "gemini", cfg.Provider)
	assert.InDelta(t, 0.4, cfg.Temperature, 0.0001)
	assert.Equal(t, "45s", cfg.RequestTimeout)
	assert.Equal(t, "site/index.html", cfg.OutputPath)
	assert.Equal(t, "Morning Brief", cfg.PageTitle)
	assert.Equal(t, "30 7 * * *", cfg.Schedule)
	assert.True(t, cfg.RunOnStart)
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	path := writeConfig(t, "config.json", `{ invalid json }`)

	cfg, err := LoadConfig(path)
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to parse config JSON")
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "config.yml", "provider: [unterminated")

	cfg, err := LoadConfig(path)
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to parse config YAML")
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.json")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	cfg, err := LoadConfig("")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "config path is empty")
}

func TestDefaults_AreValid(t *testing.T) {
	cfg := Defaults()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "anthropic", cfg.Provider)
	assert.Equal(t, 50, cfg.HistoryLimit)
	assert.Equal(t, "docs/index.html", cfg.OutputPath)
	assert.Equal(t, filepath.Join("data", "results.json"), cfg.LatestPath())
	assert.Equal(t, filepath.Join("data", "history.json"), cfg.HistoryPath())

	timeout, err := cfg.Timeout()
	require.NoError(t, err)
	assert.Equal(t, 2*time.Minute, timeout)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"unknown provider", func(c *Config) { c.Provider = "mistral" }, "unknown provider"},
		{"negative max tokens", func(c *Config) { c.MaxTokens = -1 }, "MaxTokens"},
		{"temperature too high", func(c *Config) { c.Temperature = 3 }, "Temperature"},
		{"negative history limit", func(c *Config) { c.HistoryLimit = -5 }, "HistoryLimit"},
		{"history limit above cap", func(c *Config) { c.HistoryLimit = 51 }, "HistoryLimit"},
		{"bad base url", func(c *Config) { c.BaseURL = "not a url" }, "BaseURL"},
		{"max items below min", func(c *Config) { c.MinItems, c.MaxItems = 5, 3 }, "MaxItems"},
		{"bad timeout", func(c *Config) { c.RequestTimeout = "soon" }, "invalid request_timeout"},
		{"negative timeout", func(c *Config) { c.RequestTimeout = "-1s" }, "must be non-negative"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), "config error")
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidate_NormalizesProvider(t *testing.T) {
	t.Setenv(EnvProvider, " OpenAI ")

	cfg := Defaults()
	cfg.ApplyEnv()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "openai", cfg.Provider)

	llmCfg, err := cfg.LLMConfig()
	require.NoError(t, err)
	assert.Equal(t, llm.ProviderOpenAI, llmCfg.Provider)
}

func TestValidatePromptFile(t *testing.T) {
	cfg := Defaults()
	cfg.PromptFile = "/nonexistent/prompt.txt"

	// Only commands that build a prompt check the file
	require.NoError(t, cfg.Validate())

	err := cfg.ValidatePromptFile()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "prompt file not found")

	cfg.PromptFile = writeConfig(t, "prompt.txt", "News for {{.Date}}")
	assert.NoError(t, cfg.ValidatePromptFile())

	cfg.PromptFile = ""
	assert.NoError(t, cfg.ValidatePromptFile())
}

func TestApplyEnv(t *testing.T) {
	t.Setenv(EnvProvider, "openai")
	t.Setenv(EnvModel, "gpt-4o-mini")
	t.Setenv(EnvDataDir, "/tmp/digest")
	t.Setenv(EnvOutput, "/tmp/site/index.html")

	cfg := Config{Provider: "anthropic", DataDir: "data", PageTitle: "kept"}
	cfg.ApplyEnv()

	assert.Equal(t, "openai", cfg.Provider)
	assert.Equal(t, "gpt-4o-mini", cfg.Model)
	assert.Equal(t, "/tmp/digest", cfg.DataDir)
	assert.Equal(t, "/tmp/site/index.html", cfg.OutputPath)
	assert.Equal(t, "kept", cfg.PageTitle)
}

func TestApplyEnv_UnsetKeepsValues(t *testing.T) {
	t.Setenv(EnvProvider, "")
	t.Setenv(EnvDataDir, "")

	cfg := Config{Provider: "gemini", DataDir: "custom"}
	cfg.ApplyEnv()

	assert.Equal(t, "gemini", cfg.Provider)
	assert.Equal(t, "custom", cfg.DataDir)
}

func TestMergeWithDefaults(t *testing.T) {
	cfg := &Config{
		Provider:     "openai",
		HistoryLimit: 10,
		RunOnStart:   true,
	}

	merged := cfg.MergeWithDefaults(Defaults())

	assert.Equal(t, "openai", merged.Provider)
	assert.Equal(t, 10, merged.HistoryLimit)
	assert.True(t, merged.RunOnStart)
	assert.Equal(t, DefaultDataDir, merged.DataDir)
	assert.Equal(t, DefaultLatestFile, merged.LatestFile)
	assert.Equal(t, DefaultSchedule, merged.Schedule)
	assert.Equal(t, llm.DefaultMaxTokens, merged.MaxTokens)

	// Original is not modified
	assert.Empty(t, cfg.DataDir)
}

func TestLLMConfig(t *testing.T) {
	cfg := Defaults()
	cfg.Provider = "Gemini"
	cfg.Model = "gemini-2.5-pro"
	cfg.Temperature = 0.2

	llmCfg, err := cfg.LLMConfig()
	require.NoError(t, err)
	assert.Equal(t, llm.ProviderGemini, llmCfg.Provider)
	assert.Equal(t, "gemini-2.5-pro", llmCfg.GetModel())
	assert.Equal(t, llm.DefaultMaxTokens, llmCfg.GetMaxTokens())
	assert.InDelta(t, 0.2, llmCfg.Temperature, 0.0001)

	cfg.Provider = "mistral"
	_, err = cfg.LLMConfig()
	assert.Error(t, err)
}

func TestResolveAPIKey(t *testing.T) {
	t.Run("explicit key wins", func(t *testing.T) {
		t.Setenv("ANTHROPIC_API_KEY", "from-env")
		cfg := Config{Provider: "anthropic", APIKey: "from-config"}

		key, err := cfg.ResolveAPIKey()
		require.NoError(t, err)
		assert.Equal(t, "from-config", key)
	})

	t.Run("falls back to provider env var", func(t *testing.T) {
		t.Setenv("OPENAI_API_KEY", "sk-env")
		cfg := Config{Provider: "openai"}

		key, err := cfg.ResolveAPIKey()
		require.NoError(t, err)
		assert.Equal(t, "sk-env", key)
	})

	t.Run("missing credential", func(t *testing.T) {
		t.Setenv("GEMINI_API_KEY", "")
		cfg := Config{Provider: "gemini"}

		_, err := cfg.ResolveAPIKey()
		require.Error(t, err)

		var credErr *MissingCredentialError
		require.True(t, errors.As(err, &credErr))
		assert.Equal(t, "gemini", credErr.Provider)
		assert.Equal(t, "GEMINI_API_KEY", credErr.EnvVar)
		assert.Contains(t, err.Error(), "GEMINI_API_KEY")
	})
}
