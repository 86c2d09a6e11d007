package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type chatCapture struct {
	path string
	auth string
	body map[string]any
}

func chatServer(t *testing.T, status int, reply string) (*httptest.Server, *chatCapture) {
	t.Helper()
	got := &chatCapture{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got.path = r.URL.Path
		got.auth = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&got.body)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(reply))
	}))
	t.Cleanup(srv.Close)
	return srv, got
}

func chatCompletion(content, finish string) string {
	b, _ := json.Marshal(map[string]any{
		"id":      "chatcmpl-1",
		"object":  "chat.completion",
		"created": 1700000000,
		"model":   "gpt-4o-mini-2024-07-18",
		"choices": []map[string]any{{
			"index":         0,
			"message":       map[string]any{"role": "assistant", "content": content},
			"finish_reason": finish,
		}},
		"usage": map[string]any{"prompt_tokens": 21, "completion_tokens": 6, "total_tokens": 27},
	})
	return string(b)
}

func TestOpenAI_Generate(t *testing.T) {
	srv, got := chatServer(t, http.StatusOK, chatCompletion(`{"label":"bad","score":2}`, "stop"))
	p, err := NewOpenAI(OpenAIConfig{APIKey: "sk-test", Model: "gpt-4o-mini", BaseURL: srv.URL + "/v1"})
	require.NoError(t, err)

	resp, err := p.Generate(context.Background(), Request{
		System:      "Judge it.",
		Prompt:      "Three hours of sleep.",
		Schema:      verdictSchema,
		MaxTokens:   64,
		Temperature: 0.2,
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"label":"bad","score":2}`, string(resp.Content))
	assert.Equal(t, 27, resp.Usage.Total())
	assert.Equal(t, "gpt-4o-mini-2024-07-18", resp.Model)

	assert.Equal(t, "/v1/chat/completions", got.path)
	assert.Equal(t, "Bearer sk-test", got.auth)
	assert.Equal(t, "gpt-4o-mini", got.body["model"])
	msgs, _ := got.body["messages"].([]any)
	require.Len(t, msgs, 2)
	assert.Equal(t, "system", msgs[0].(map[string]any)["role"])
	assert.Equal(t, "Three hours of sleep.", msgs[1].(map[string]any)["content"])

	format, _ := got.body["response_format"].(map[string]any)
	assert.Equal(t, "json_schema", format["type"])
}

func TestOpenAI_Errors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		kind   Kind
	}{
		{"rate limited", http.StatusTooManyRequests, `{"error":{"message":"slow down","type":"rate_limit_error"}}`, KindRateLimited},
		{"bad request", http.StatusBadRequest, `{"error":{"message":"bad schema","type":"invalid_request_error"}}`, KindRejected},
		{"gateway down", http.StatusBadGateway, `<html>bad gateway</html>`, KindUnavailable},
		{"no choices", http.StatusOK, `{"id":"x","object":"chat.completion","model":"gpt-4o-mini","choices":[]}`, KindInvalidOutput},
		{"truncated", http.StatusOK, chatCompletion(`{"label":"o`, "length"), KindTruncated},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _ := chatServer(t, tt.status, tt.body)
			p, err := NewOpenAI(OpenAIConfig{APIKey: "sk-test", Model: "gpt-4o-mini", BaseURL: srv.URL + "/v1"})
			require.NoError(t, err)

			_, err = p.Generate(context.Background(), Request{Prompt: "x", Schema: verdictSchema, MaxTokens: 8})
			var e *Error
			require.ErrorAs(t, err, &e)
			assert.Equal(t, tt.kind, e.Kind)
			assert.Equal(t, "openai", e.Provider)
		})
	}
}

func TestOpenRouter_Generate(t *testing.T) {
	srv, got := chatServer(t, http.StatusOK, chatCompletion(`{"label":"ok"}`, "stop"))
	p, err := NewOpenRouter(OpenRouterConfig{APIKey: "sk-or-test", Model: "google/gemini-2.5-flash", BaseURL: srv.URL})
	require.NoError(t, err)
	assert.Equal(t, "google/gemini-2.5-flash", p.ModelID())

	_, err = p.Generate(context.Background(), Request{Prompt: "x", Schema: verdictSchema, MaxTokens: 8})
	require.NoError(t, err)
	assert.Equal(t, "/chat/completions", got.path)
	assert.Equal(t, "google/gemini-2.5-flash", got.body["model"])
}

func TestNewOpenRouter_RequiresKey(t *testing.T) {
	_, err := NewOpenRouter(OpenRouterConfig{Model: "x"})
	assert.ErrorContains(t, err, "openrouter")
}
