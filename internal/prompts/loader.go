// Package prompts provides a loader for the prompt templates sent to the model.
// Prompts are stored as JSON files and embedded at compile time.
package prompts

import (
	"embed"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"
)

//go:embed *.json
var promptFiles embed.FS

// DigestFile is the embedded file holding the digest prompts
const DigestFile = "digest.json"

// DigestKey is the key of the daily digest request prompt
const DigestKey = "daily-digest"

// SystemKey is the key of the system instruction sent alongside the digest prompt
const SystemKey = "system"

// cache stores parsed prompt files to avoid repeated JSON parsing
var (
	cache   = make(map[string]map[string]string)
	cacheMu sync.RWMutex
)

// Get retrieves a prompt by filename and key.
// The filename should not include the path (e.g., "digest.json").
func Get(filename, key string) (string, error) {
	prompts, err := loadFile(filename)
	if err != nil {
		return "", err
	}

	prompt, exists := prompts[key]
	if !exists {
		return "", fmt.Errorf("prompt key %q not found in %s", key, filename)
	}

	return prompt, nil
}

// Format replaces placeholders in the form {{.Key}} with values from data.
func Format(template string, data map[string]string) string {
	result := template
	for key, value := range data {
		placeholder := fmt.Sprintf("{{.%s}}", key)
		result = strings.ReplaceAll(result, placeholder, value)
	}
	return result
}

// SystemPrompt returns the embedded system instruction
func SystemPrompt() (string, error) {
	return Get(DigestFile, SystemKey)
}

// DigestOptions fills the placeholders of the digest prompt
type DigestOptions struct {
	Date     time.Time
	MinItems int
	MaxItems int
}

// DigestPrompt renders the digest request. A non-empty templatePath replaces
// the embedded template with the contents of that file.
func DigestPrompt(templatePath string, opts DigestOptions) (string, error) {
	var template string
	if templatePath != "" {
		content, err := os.ReadFile(templatePath)
		if err != nil {
			return "", fmt.Errorf("failed to read prompt template %s: %w", templatePath, err)
		}
		template = string(content)
	} else {
		var err error
		template, err = Get(DigestFile, DigestKey)
		if err != nil {
			return "", err
		}
	}

	if opts.Date.IsZero() {
		opts.Date = time.Now()
	}
	if opts.MinItems <= 0 {
		opts.MinItems = 3
	}
	if opts.MaxItems < opts.MinItems {
		opts.MaxItems = opts.MinItems + 2
	}

	return Format(template, map[string]string{
		"Date":     opts.Date.Format("2006-01-02"),
		"MinItems": strconv.Itoa(opts.MinItems),
		"MaxItems": strconv.Itoa(opts.MaxItems),
	}), nil
}

// loadFile loads and caches a prompt file.
func loadFile(filename string) (map[string]string, error) {
	cacheMu.RLock()
	if prompts, exists := cache[filename]; exists {
		cacheMu.RUnlock()
		return prompts, nil
	}
	cacheMu.RUnlock()

	data, err := promptFiles.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read prompt file %s: %w", filename, err)
	}

	var prompts map[string]string
	if err := json.Unmarshal(data, &prompts); err != nil {
		return nil, fmt.Errorf("failed to parse prompt file %s: %w", filename, err)
	}

	cacheMu.Lock()
	cache[filename] = prompts
	cacheMu.Unlock()

	return prompts, nil
}

// clearCache drops parsed prompt files
func clearCache() {
	cacheMu.Lock()
	cache = make(map[string]map[string]string)
	cacheMu.Unlock()
}
