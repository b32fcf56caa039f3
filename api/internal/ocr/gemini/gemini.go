package gemini

import (
	"context"
	"fmt"
	"strings"

	"image-extractor/api/internal/ocr"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// Engine holds one process-wide Gemini client; it is opened at startup and
// closed on shutdown.
type Engine struct {
	Model string

	cl *genai.Client
	m  *genai.GenerativeModel
}

func New(ctx context.Context, apiKey, model string) (*Engine, error) {
	model = strings.TrimSpace(model)
	if model == "" {
		return nil, fmt.Errorf("gemini: model is empty")
	}
	cl, err := genai.NewClient(ctx, option.WithAPIKey(strings.TrimSpace(apiKey)))
	if err != nil {
		return nil, fmt.Errorf("gemini: new client: %w", err)
	}
	m := cl.GenerativeModel(model)
	if m == nil {
		_ = cl.Close()
		return nil, fmt.Errorf("gemini: model is nil")
	}
	return &Engine{Model: model, cl: cl, m: m}, nil
}

func (e *Engine) Name() string     { return "gemini" }
func (e *Engine) GetModel() string { return e.Model }

func (e *Engine) Close() error {
	if e.cl == nil {
		return nil
	}
	return e.cl.Close()
}

// Extract sends the instruction and the image in a single user turn.
func (e *Engine) Extract(ctx context.Context, in ocr.ExtractInput) (string, error) {
	parts := []genai.Part{
		genai.Text(in.Prompt),
		&genai.Blob{MIMEType: in.MIME, Data: in.Image},
	}

	resp, err := e.m.GenerateContent(ctx, parts...)
	if err != nil {
		return "", fmt.Errorf("gemini extract: %w", err)
	}
	txt := responseText(resp)
	if txt == "" {
		return "", fmt.Errorf("gemini extract: %w", ocr.ErrEmptyResponse)
	}
	return txt, nil
}

// responseText concatenates the text parts of the first candidate.
func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	c := resp.Candidates[0]
	if c == nil || c.Content == nil {
		return ""
	}
	var b strings.Builder
	for _, p := range c.Content.Parts {
		if t, ok := p.(genai.Text); ok {
			b.WriteString(string(t))
		}
	}
	return b.String()
}
