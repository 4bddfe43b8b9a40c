// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/jonathan/digest-agent/internal/llm"
	"github.com/jonathan/digest-agent/internal/rendering"
	"github.com/jonathan/digest-agent/internal/store"
)

// Environment variables that override file values.
const (
	EnvProvider = "DIGEST_PROVIDER"
	EnvModel    = "DIGEST_MODEL"
	EnvDataDir  = "DIGEST_DATA_DIR"
	EnvOutput   = "DIGEST_OUTPUT"
)

// Defaults
const (
	DefaultRequestTimeout = "2m"
	DefaultDataDir        = "data"
	DefaultLatestFile     = "results.json"
	DefaultHistoryFile    = "history.json"
	DefaultOutputPath     = "docs/index.html"
	DefaultSchedule       = "0 */6 * * *"
)

// Config represents the CLI configuration that can be loaded from a JSON or YAML file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Model backend
	Provider       string  `json:"provider,omitempty" yaml:"provider,omitempty"`
	Model          string  `json:"model,omitempty" yaml:"model,omitempty"`
	APIKey         string  `json:"api_key,omitempty" yaml:"api_key,omitempty"`
	BaseURL        string  `json:"base_url,omitempty" yaml:"base_url,omitempty" validate:"omitempty,url"`
	MaxTokens      int     `json:"max_tokens,omitempty" yaml:"max_tokens,omitempty" validate:"gte=0"`
	Temperature    float32 `json:"temperature,omitempty" yaml:"temperature,omitempty" validate:"gte=0,lte=2"`
	RequestTimeout string  `json:"request_timeout,omitempty" yaml:"request_timeout,omitempty"` // Go duration, e.g. "90s"

	// Prompt
	PromptFile string `json:"prompt_file,omitempty" yaml:"prompt_file,omitempty"` // Overrides the embedded prompt template
	MinItems   int    `json:"min_items,omitempty" yaml:"min_items,omitempty" validate:"gte=0"`
	MaxItems   int    `json:"max_items,omitempty" yaml:"max_items,omitempty" validate:"omitempty,gtefield=MinItems"`

	// Storage
	DataDir      string `json:"data_dir,omitempty" yaml:"data_dir,omitempty"`
	LatestFile   string `json:"latest_file,omitempty" yaml:"latest_file,omitempty"`
	HistoryFile  string `json:"history_file,omitempty" yaml:"history_file,omitempty"`
	HistoryLimit int    `json:"history_limit,omitempty" yaml:"history_limit,omitempty" validate:"gte=0,lte=50"`

	// Rendering
	OutputPath string `json:"output_path,omitempty" yaml:"output_path,omitempty"`
	PageTitle  string `json:"page_title,omitempty" yaml:"page_title,omitempty"`

	// Behavior
	Schedule       string `json:"schedule,omitempty" yaml:"schedule,omitempty"`
	RunOnStart     bool   `json:"run_on_start,omitempty" yaml:"run_on_start,omitempty"`
	RecordFailures bool   `json:"record_failures,omitempty" yaml:"record_failures,omitempty"`
	Verbose        bool   `json:"verbose,omitempty" yaml:"verbose,omitempty"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Provider:       string(llm.ProviderAnthropic),
		MaxTokens:      llm.DefaultMaxTokens,
		RequestTimeout: DefaultRequestTimeout,
		DataDir:        DefaultDataDir,
		LatestFile:     DefaultLatestFile,
		HistoryFile:    DefaultHistoryFile,
		HistoryLimit:   store.DefaultHistoryLimit,
		OutputPath:     DefaultOutputPath,
		PageTitle:      rendering.DefaultTitle,
		Schedule:       DefaultSchedule,
	}
}

// LoadConfig loads configuration from a JSON or YAML file.
// The format is chosen by extension; .yaml and .yml are YAML, anything else is JSON.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config YAML: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}
	}

	return &cfg, nil
}

// ApplyEnv overrides fields from DIGEST_* environment variables when they are set.
func (c *Config) ApplyEnv() {
	if v := os.Getenv(EnvProvider); v != "" {
		c.Provider = v
	}
	if v := os.Getenv(EnvModel); v != "" {
		c.Model = v
	}
	if v := os.Getenv(EnvDataDir); v != "" {
		c.DataDir = v
	}
	if v := os.Getenv(EnvOutput); v != "" {
		c.OutputPath = v
	}
}

// Validate checks that the configuration has valid values and rewrites the
// provider to its canonical lower-case name.
// Note: This doesn't check credentials or the prompt file since only the
// commands that call a model backend need them; see ResolveAPIKey and
// ValidatePromptFile.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	if c.Provider != "" {
		provider, err := llm.ParseProvider(c.Provider)
		if err != nil {
			return fmt.Errorf("config error: %w", err)
		}
		c.Provider = string(provider)
	}

	if _, err := c.Timeout(); err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	return nil
}

// ValidatePromptFile checks that a configured prompt template exists
func (c *Config) ValidatePromptFile() error {
	if c.PromptFile == "" {
		return nil
	}
	if _, err := os.Stat(c.PromptFile); os.IsNotExist(err) {
		return fmt.Errorf("config error: prompt file not found: %s", c.PromptFile)
	}
	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.Provider == "" {
		result.Provider = defaults.Provider
	}
	if result.Model == "" {
		result.Model = defaults.Model
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.BaseURL == "" {
		result.BaseURL = defaults.BaseURL
	}
	if result.RequestTimeout == "" {
		result.RequestTimeout = defaults.RequestTimeout
	}
	if result.PromptFile == "" {
		result.PromptFile = defaults.PromptFile
	}
	if result.DataDir == "" {
		result.DataDir = defaults.DataDir
	}
	if result.LatestFile == "" {
		result.LatestFile = defaults.LatestFile
	}
	if result.HistoryFile == "" {
		result.HistoryFile = defaults.HistoryFile
	}
	if result.OutputPath == "" {
		result.OutputPath = defaults.OutputPath
	}
	if result.PageTitle == "" {
		result.PageTitle = defaults.PageTitle
	}
	if result.Schedule == "" {
		result.Schedule = defaults.Schedule
	}

	// Numeric fields: use default if zero
	if result.MaxTokens == 0 {
		result.MaxTokens = defaults.MaxTokens
	}
	if result.Temperature == 0 {
		result.Temperature = defaults.Temperature
	}
	if result.MinItems == 0 {
		result.MinItems = defaults.MinItems
	}
	if result.MaxItems == 0 {
		result.MaxItems = defaults.MaxItems
	}
	if result.HistoryLimit == 0 {
		result.HistoryLimit = defaults.HistoryLimit
	}

	// Bool fields: cannot distinguish unset from false, so we OR them
	result.RunOnStart = result.RunOnStart || defaults.RunOnStart
	result.RecordFailures = result.RecordFailures || defaults.RecordFailures
	result.Verbose = result.Verbose || defaults.Verbose

	return result
}

// Timeout parses RequestTimeout. An empty value means no timeout.
func (c *Config) Timeout() (time.Duration, error) {
	if c.RequestTimeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.RequestTimeout)
	if err != nil {
		return 0, fmt.Errorf("invalid request_timeout %q: %w", c.RequestTimeout, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("invalid request_timeout %q: must be non-negative", c.RequestTimeout)
	}
	return d, nil
}

// LatestPath returns the Latest-Result file path.
func (c *Config) LatestPath() string {
	return filepath.Join(c.DataDir, c.LatestFile)
}

// HistoryPath returns the History file path.
func (c *Config) HistoryPath() string {
	return filepath.Join(c.DataDir, c.HistoryFile)
}

// LLMConfig builds the backend configuration.
func (c *Config) LLMConfig() (*llm.Config, error) {
	provider, err := llm.ParseProvider(c.Provider)
	if err != nil {
		return nil, err
	}
	return &llm.Config{
		Provider:    provider,
		Model:       c.Model,
		BaseURL:     c.BaseURL,
		MaxTokens:   c.MaxTokens,
		Temperature: c.Temperature,
	}, nil
}
