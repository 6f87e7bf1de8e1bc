package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func TestNewOpenAIClient_RequiresKey(t *testing.T) {
	_, err := NewOpenAIClient(Config{}, zerolog.Nop())
	assert.Error(t, err)
}

func TestNewOpenAIClient_DefaultModel(t *testing.T) {
	c, err := NewOpenAIClient(Config{APIKey: "sk-test"}, zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, DefaultModel, c.Model())
}

func TestComplete(t *testing.T) {
	var got map[string]any
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "chatcmpl-1",
			"object": "chat.completion",
			"model": "gpt-4o-mini",
			"choices": [{"index": 0, "message": {"role": "assistant", "content": "{\"title\":\"t\"}"}, "finish_reason": "stop"}],
			"usage": {"prompt_tokens": 100, "completion_tokens": 50, "total_tokens": 150}
		}`))
	})

	c, err := NewOpenAIClient(Config{APIKey: "sk-test", BaseURL: srv.URL}, zerolog.Nop())
	require.NoError(t, err)

	out, err := c.Complete(context.Background(), "persona", "prompt", Params{Temperature: 0.7, MaxTokens: 1200})
	require.NoError(t, err)

	assert.Equal(t, `{"title":"t"}`, out.Content)
	assert.Equal(t, 150, out.TotalTokens)
	assert.Equal(t, "gpt-4o-mini", got["model"])
	assert.EqualValues(t, 1200, got["max_tokens"])

	msgs, ok := got["messages"].([]any)
	require.True(t, ok)
	require.Len(t, msgs, 2)
	assert.Equal(t, "system", msgs[0].(map[string]any)["role"])
	assert.Equal(t, "prompt", msgs[1].(map[string]any)["content"])
}

func TestComplete_NoChoices(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"x","object":"chat.completion","choices":[],"usage":{"total_tokens":0}}`))
	})

	c, err := NewOpenAIClient(Config{APIKey: "sk-test", BaseURL: srv.URL}, zerolog.Nop())
	require.NoError(t, err)

	_, err = c.Complete(context.Background(), "s", "u", Params{})
	assert.ErrorIs(t, err, ErrNoChoices)
}

func TestComplete_ProviderError(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"bad key","type":"invalid_request_error"}}`))
	})

	c, err := NewOpenAIClient(Config{APIKey: "sk-test", BaseURL: srv.URL}, zerolog.Nop())
	require.NoError(t, err)

	_, err = c.Complete(context.Background(), "s", "u", Params{})
	assert.Error(t, err)
}
