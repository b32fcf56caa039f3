package openai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"image-extractor/api/internal/ocr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngine_Extract(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"` + "```json\\n{\\\"a\\\": 1}\\n```" + `"}}]}`))
	}))
	defer srv.Close()

	e := New("sk-test", "gpt-4o-mini", srv.URL+"/v1/")
	out, err := e.Extract(context.Background(), ocr.ExtractInput{
		Prompt: "Extract all fields.",
		Image:  []byte{1, 2, 3},
		MIME:   "image/png",
	})
	require.NoError(t, err)
	assert.Equal(t, "```json\n{\"a\": 1}\n```", out)

	assert.Equal(t, "gpt-4o-mini", got["model"])
	msgs := got["messages"].([]any)
	require.Len(t, msgs, 1)
	content := msgs[0].(map[string]any)["content"].([]any)
	require.Len(t, content, 2)
	assert.Equal(t, "Extract all fields.", content[0].(map[string]any)["text"])
	imageURL := content[1].(map[string]any)["image_url"].(map[string]any)
	assert.Equal(t, "data:image/png;base64,AQID", imageURL["url"])
}

func TestEngine_ExtractErrors(t *testing.T) {
	t.Run("missing key", func(t *testing.T) {
		_, err := New("", "gpt-4o-mini", "").Extract(context.Background(), ocr.ExtractInput{})
		assert.Error(t, err)
	})

	t.Run("upstream status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "rate limited", http.StatusTooManyRequests)
		}))
		defer srv.Close()

		_, err := New("sk-test", "m", srv.URL).Extract(context.Background(), ocr.ExtractInput{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "429")
	})

	t.Run("no choices", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"choices":[]}`))
		}))
		defer srv.Close()

		_, err := New("sk-test", "m", srv.URL).Extract(context.Background(), ocr.ExtractInput{})
		assert.True(t, errors.Is(err, ocr.ErrEmptyResponse))
	})
}

func TestNew_DefaultBaseURL(t *testing.T) {
	e := New(" key ", " model ", "")
	assert.Equal(t, DefaultBaseURL, e.BaseURL)
	assert.Equal(t, "key", e.APIKey)
	assert.Equal(t, "model", e.GetModel())
	assert.Equal(t, "gpt", e.Name())
}
