package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"image-extractor/api/internal/ocr"
	"image-extractor/api/internal/util"
)

const DefaultBaseURL = "https://api.openai.com/v1"

type Engine struct {
	APIKey  string
	Model   string
	BaseURL string
	httpc   *http.Client
}

// New builds a chat-completions engine. The HTTP client carries no timeout;
// deadlines come from the caller's context.
func New(key, model, baseURL string) *Engine {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultBaseURL
	}
	return &Engine{
		APIKey:  strings.TrimSpace(key),
		Model:   strings.TrimSpace(model),
		BaseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{},
	}
}

func (e *Engine) Name() string     { return "gpt" }
func (e *Engine) GetModel() string { return e.Model }

func (e *Engine) Extract(ctx context.Context, in ocr.ExtractInput) (string, error) {
	if e.APIKey == "" {
		return "", fmt.Errorf("OPENAI_API_KEY is empty")
	}

	body := map[string]any{
		"model": e.Model,
		"messages": []any{
			map[string]any{
				"role": "user",
				"content": []any{
					map[string]any{"type": "text", "text": in.Prompt},
					map[string]any{"type": "image_url", "image_url": map[string]any{
						"url":    util.MakeDataURL(in.MIME, in.Image),
						"detail": "high",
					}},
				},
			},
		},
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("openai extract: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.BaseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("openai extract: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+e.APIKey)

	resp, err := e.httpc.Do(req)
	if err != nil {
		return "", fmt.Errorf("openai extract: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		x, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
		return "", fmt.Errorf("openai extract %d: %s", resp.StatusCode, strings.TrimSpace(string(x)))
	}

	var raw struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return "", fmt.Errorf("openai extract: decode response: %w", err)
	}
	if len(raw.Choices) == 0 || raw.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("openai extract: %w", ocr.ErrEmptyResponse)
	}
	return raw.Choices[0].Message.Content, nil
}
