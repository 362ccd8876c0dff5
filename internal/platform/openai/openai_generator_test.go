package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marchen/vocabforge/internal/config"
	"github.com/marchen/vocabforge/internal/domain"
	"github.com/marchen/vocabforge/internal/generation"
)

// completionWith wraps content in a minimal Chat Completions response body.
func completionWith(content string) map[string]any {
	return map[string]any{
		"id":      "chatcmpl-test",
		"object":  "chat.completion",
		"created": 1700000000,
		"model":   "gpt-4o-mini",
		"choices": []map[string]any{
			{
				"index":         0,
				"finish_reason": "stop",
				"message": map[string]any{
					"role":    "assistant",
					"content": content,
				},
			},
		},
	}
}

func newTestGenerator(t *testing.T, handler http.HandlerFunc) *Generator {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	gen, err := NewGenerator(config.LLMConfig{
		Provider:       "openai",
		APIKey:         "test-key",
		Model:          "gpt-4o-mini",
		BaseURL:        server.URL,
		RequestTimeout: 5 * time.Second,
	}, nil)
	require.NoError(t, err)
	return gen
}

func TestNewGenerator_Validation(t *testing.T) {
	t.Parallel()

	_, err := NewGenerator(config.LLMConfig{Model: "gpt-4o-mini"}, nil)
	assert.ErrorIs(t, err, generation.ErrInvalidConfig)

	_, err = NewGenerator(config.LLMConfig{APIKey: "key"}, nil)
	assert.ErrorIs(t, err, generation.ErrInvalidConfig)
}

func TestGenerator_WordProfile(t *testing.T) {
	t.Parallel()

	profileJSON, err := json.Marshal(map[string]any{
		"phonetic":       "/əˈbeɪt/",
		"pronunciation":  "a·bate",
		"part_of_speech": []string{"verb"},
		"translations":   []string{"减轻", "减弱"},
		"common_phrases": []map[string]string{{"text": "abate a storm", "translation": "平息风暴"}},
		"etymology":      "from Old French abatre",
		"examples": []map[string]string{
			{"sentence": "The storm abated.", "translation": "风暴减弱了。"},
			{"sentence": "His anger abated.", "translation": "他的怒气平息了。"},
		},
	})
	require.NoError(t, err)

	gen := newTestGenerator(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req struct {
			Model    string `json:"model"`
			Messages []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "gpt-4o-mini", req.Model)
		require.Len(t, req.Messages, 2)
		assert.Equal(t, "system", req.Messages[0].Role)
		assert.Contains(t, req.Messages[1].Content, `"abate"`)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(completionWith(string(profileJSON)))
	})

	profile, err := gen.WordProfile(context.Background(), "abate")
	require.NoError(t, err)
	assert.Equal(t, "/əˈbeɪt/", profile.Phonetic)
	assert.Equal(t, []string{"verb"}, profile.PartsOfSpeech)
	assert.Len(t, profile.Examples, 2)
}

func TestGenerator_Essay(t *testing.T) {
	t.Parallel()

	essayJSON := `{"title": "The Quiet Storm", "english_content": "The storm began to abate.", "chinese_translation": "风暴开始减弱。"}`

	gen := newTestGenerator(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(completionWith(essayJSON))
	})

	essay, err := gen.Essay(context.Background(), []string{"abate"}, domain.EssayTypeStory)
	require.NoError(t, err)
	assert.Equal(t, "The Quiet Storm", essay.Title)
	assert.Equal(t, "The storm began to abate.", essay.EnglishText)
	assert.Equal(t, "风暴开始减弱。", essay.Translation)
}

func TestGenerator_Essay_FencedResponse(t *testing.T) {
	t.Parallel()

	fenced := "```json\n{\"title\": \"T\", \"english_content\": \"E\", \"chinese_translation\": \"C\"}\n```"
	gen := newTestGenerator(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(completionWith(fenced))
	})

	essay, err := gen.Essay(context.Background(), []string{"abate"}, domain.EssayTypeStory)
	require.NoError(t, err)
	assert.Equal(t, "T", essay.Title)
}

func TestGenerator_ErrorMapping(t *testing.T) {
	t.Parallel()

	t.Run("upstream http error", func(t *testing.T) {
		t.Parallel()

		gen := newTestGenerator(t, func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, `{"error": {"message": "overloaded"}}`, http.StatusServiceUnavailable)
		})

		_, err := gen.WordProfile(context.Background(), "abate")
		assert.ErrorIs(t, err, generation.ErrUpstream)
	})

	t.Run("malformed payload", func(t *testing.T) {
		t.Parallel()

		gen := newTestGenerator(t, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(completionWith("this is not JSON"))
		})

		_, err := gen.WordProfile(context.Background(), "abate")
		assert.ErrorIs(t, err, generation.ErrMalformedResponse)
	})

	t.Run("timeout", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-r.Context().Done():
			case <-time.After(5 * time.Second):
			}
		}))
		t.Cleanup(server.Close)

		gen, err := NewGenerator(config.LLMConfig{
			APIKey:         "test-key",
			Model:          "gpt-4o-mini",
			BaseURL:        server.URL,
			RequestTimeout: 50 * time.Millisecond,
		}, nil)
		require.NoError(t, err)

		_, err = gen.WordProfile(context.Background(), "abate")
		assert.ErrorIs(t, err, generation.ErrTimeout)
	})
}
