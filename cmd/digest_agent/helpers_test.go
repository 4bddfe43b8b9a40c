package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/jonathan/digest-agent/internal/config"
)

const digestReply = "```json\n" + `{
  "date": "2025-03-01",
  "summary": "Agent frameworks and open-weight models dominated the week.",
  "news": [
    {"title": "Open-weight model tops coding benchmark", "source": "Example Labs",
     "url": "https://example.com/a", "summary": "s1", "impact": "i1"},
    {"title": "Managed agent runtime enters preview", "source": "Example Cloud",
     "summary": "s2", "impact": "i2"}
  ],
  "trends": ["agents", "open weights"]
}` + "\n```"

// useConfig installs a test configuration rooted in a temp dir and
// restores the previous one when the test ends
func useConfig(t *testing.T, mutate func(*config.Config)) *config.Config {
	t.Helper()
	dir := t.TempDir()

	c := config.Defaults()
	c.DataDir = filepath.Join(dir, "data")
	c.OutputPath = filepath.Join(dir, "docs", "index.html")
	if mutate != nil {
		mutate(&c)
	}

	prevCfg, prevLogger := cfg, logger
	cfg, logger = c, zaptest.NewLogger(t)
	t.Cleanup(func() { cfg, logger = prevCfg, prevLogger })
	return &cfg
}

// newTestCommand returns a bare command writing its output to buf
func newTestCommand(buf *bytes.Buffer) *cobra.Command {
	cmd := &cobra.Command{}
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	return cmd
}

// newOpenAIServer fakes the chat completions endpoint with a fixed reply
func newOpenAIServer(t *testing.T, status int, content string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if status != http.StatusOK {
			_, _ = w.Write([]byte(`{"error": {"message": "upstream unavailable", "type": "server_error"}}`))
			return
		}
		body := map[string]any{
			"id":     "chatcmpl-test",
			"object": "chat.completion",
			"model":  "gpt-4o",
			"choices": []map[string]any{{
				"index":         0,
				"message":       map[string]string{"role": "assistant", "content": content},
				"finish_reason": "stop",
			}},
		}
		_ = json.NewEncoder(w).Encode(body)
	}))
	t.Cleanup(server.Close)
	return server
}

// useOpenAI points the configuration at a fake OpenAI server
func useOpenAI(server *httptest.Server) func(*config.Config) {
	return func(c *config.Config) {
		c.Provider = "openai"
		c.APIKey = "sk-test"
		c.BaseURL = server.URL + "/v1"
		c.RequestTimeout = "10s"
	}
}

// copyFile copies a fixture to dst, creating parent directories
func copyFile(t *testing.T, src, dst string) {
	t.Helper()
	data, err := os.ReadFile(src)
	require.NoError(t, err)
	require.NoError(t, os.MkdirAll(filepath.Dir(dst), 0755))
	require.NoError(t, os.WriteFile(dst, data, 0644))
}
