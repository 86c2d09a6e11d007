package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func geminiServer(t *testing.T, status int, reply string) (Provider, *map[string]any) {
	t.Helper()
	var body map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "models/gemini-2.5-flash:generateContent"), r.URL.Path)
		_ = json.NewDecoder(r.Body).Decode(&body)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(reply))
	}))
	t.Cleanup(srv.Close)

	p, err := NewGemini(context.Background(), GeminiConfig{APIKey: "g-test", Model: "gemini-flash", BaseURL: srv.URL + "/"})
	require.NoError(t, err)
	return p, &body
}

func TestGemini_Generate(t *testing.T) {
	p, body := geminiServer(t, http.StatusOK, `{
		"candidates": [{
			"content": {"role": "model", "parts": [{"text": "{\"label\":\"ok\"}"}]},
			"finishReason": "STOP"
		}],
		"usageMetadata": {"promptTokenCount": 11, "candidatesTokenCount": 4, "totalTokenCount": 15},
		"modelVersion": "gemini-2.5-flash-001"
	}`)
	assert.Equal(t, "gemini-2.5-flash", p.ModelID())

	resp, err := p.Generate(context.Background(), Request{
		System:    "Judge it.",
		Prompt:    "All good.",
		Schema:    verdictSchema,
		MaxTokens: 32,
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"label":"ok"}`, string(resp.Content))
	assert.Equal(t, Usage{InputTokens: 11, OutputTokens: 4}, resp.Usage)
	assert.Equal(t, "gemini-2.5-flash-001", resp.Model)

	gen, _ := (*body)["generationConfig"].(map[string]any)
	assert.Equal(t, "application/json", gen["responseMimeType"])
	assert.Contains(t, gen, "responseSchema")
	assert.Contains(t, *body, "systemInstruction")
}

func TestGemini_Errors(t *testing.T) {
	t.Run("quota", func(t *testing.T) {
		p, _ := geminiServer(t, http.StatusTooManyRequests,
			`{"error":{"code":429,"message":"quota exceeded","status":"RESOURCE_EXHAUSTED"}}`)
		_, err := p.Generate(context.Background(), Request{Prompt: "x", MaxTokens: 8})
		assert.True(t, IsKind(err, KindRateLimited), "got %v", err)
	})

	t.Run("truncated", func(t *testing.T) {
		p, _ := geminiServer(t, http.StatusOK, `{
			"candidates": [{"content": {"parts": [{"text": "{\"label\""}]}, "finishReason": "MAX_TOKENS"}]
		}`)
		_, err := p.Generate(context.Background(), Request{Prompt: "x", Schema: verdictSchema, MaxTokens: 8})
		assert.True(t, IsKind(err, KindTruncated), "got %v", err)
	})

	t.Run("empty", func(t *testing.T) {
		p, _ := geminiServer(t, http.StatusOK, `{"candidates": []}`)
		_, err := p.Generate(context.Background(), Request{Prompt: "x", MaxTokens: 8})
		assert.True(t, IsKind(err, KindInvalidOutput), "got %v", err)
	})
}

func TestToGenaiSchema(t *testing.T) {
	s := toGenaiSchema(verdictSchema.Definition)
	assert.Equal(t, genai.TypeObject, s.Type)
	assert.Equal(t, []string{"label"}, s.Required)
	assert.Equal(t, []string{"label", "score"}, s.PropertyOrdering)
	require.Contains(t, s.Properties, "label")
	assert.Equal(t, []string{"ok", "bad"}, s.Properties["label"].Enum)
	assert.Equal(t, genai.TypeInteger, s.Properties["score"].Type)

	arr := toGenaiSchema(map[string]any{"type": "array", "items": map[string]any{"type": "number"}})
	assert.Equal(t, genai.TypeArray, arr.Type)
	assert.Equal(t, genai.TypeNumber, arr.Items.Type)
}
