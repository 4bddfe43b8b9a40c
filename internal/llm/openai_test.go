package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOpenAITestClient(t *testing.T, handler http.HandlerFunc) *OpenAIClient {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewOpenAIClient(&Config{
		Provider:    ProviderOpenAI,
		BaseURL:     server.URL + "/v1",
		MaxTokens:   2048,
		Temperature: 0.3,
	}, "test-key")
	require.NoError(t, err)
	return client
}

func TestOpenAIClient_GenerateContent(t *testing.T) {
	var captured map[string]any
	client := newOpenAITestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&captured))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "chatcmpl-1",
			"object": "chat.completion",
			"created": 1739520000,
			"model": "gpt-4o",
			"choices": [{"index": 0, "message": {"role": "assistant", "content": "{\"summary\": \"ok\"}"}, "finish_reason": "stop"}],
			"usage": {"prompt_tokens": 10, "completion_tokens": 5, "total_tokens": 15}
		}`))
	})

	text, err := client.GenerateContent(context.Background(), "give me news")
	require.NoError(t, err)
	assert.Equal(t, `{"summary": "ok"}`, text)

	assert.Equal(t, "gpt-4o", captured["model"])
	assert.EqualValues(t, 2048, captured["max_tokens"])
	messages, ok := captured["messages"].([]any)
	require.True(t, ok)
	require.Len(t, messages, 1)
	first := messages[0].(map[string]any)
	assert.Equal(t, "user", first["role"])
	assert.Equal(t, "give me news", first["content"])
}

func TestOpenAIClient_SystemPrompt(t *testing.T) {
	var captured struct {
		Messages []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id": "c", "object": "chat.completion", "model": "gpt-4o",
			"choices": [{"index": 0, "message": {"role": "assistant", "content": "{}"}, "finish_reason": "stop"}]}`))
	}))
	defer server.Close()

	client, err := NewOpenAIClient(&Config{
		Provider: ProviderOpenAI,
		BaseURL:  server.URL,
		System:   "be terse",
	}, "test-key")
	require.NoError(t, err)

	_, err = client.GenerateContent(context.Background(), "prompt")
	require.NoError(t, err)
	require.Len(t, captured.Messages, 2)
	assert.Equal(t, "system", captured.Messages[0].Role)
	assert.Equal(t, "be terse", captured.Messages[0].Content)
	assert.Equal(t, "user", captured.Messages[1].Role)
}

func TestOpenAIClient_APIError(t *testing.T) {
	client := newOpenAITestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error": {"message": "server exploded", "type": "server_error"}}`))
	})

	_, err := client.GenerateContent(context.Background(), "prompt")
	require.Error(t, err)

	var callErr *ExternalCallError
	require.True(t, errors.As(err, &callErr))
	assert.Equal(t, ProviderOpenAI, callErr.Provider)
	assert.Contains(t, err.Error(), "server exploded")
}

func TestOpenAIClient_NoChoices(t *testing.T) {
	client := newOpenAITestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id": "chatcmpl-1", "object": "chat.completion", "model": "gpt-4o", "choices": []}`))
	})

	_, err := client.GenerateContent(context.Background(), "prompt")
	var callErr *ExternalCallError
	require.ErrorAs(t, err, &callErr)
	assert.Contains(t, err.Error(), "no choices")
}
