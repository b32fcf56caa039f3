package ocr

import (
	"context"
	"errors"
	"fmt"
)

// ErrEmptyResponse is returned when the model produced no text at all.
var ErrEmptyResponse = errors.New("model returned no text")

// ExtractInput is one image plus the instruction sent with it.
type ExtractInput struct {
	Prompt string
	Image  []byte
	MIME   string // image/jpeg | image/png
}

// Engine is a vision-language model client. Extract returns the model's
// free-form text; it does not interpret it.
type Engine interface {
	Name() string
	GetModel() string
	Extract(ctx context.Context, in ExtractInput) (string, error)
}

type Engines struct {
	Gemini Engine
	OpenAI Engine
}

func (e *Engines) GetEngine(llmName string) (Engine, error) {
	var eng Engine
	switch llmName {
	case "gemini":
		eng = e.Gemini
	case "gpt", "openai":
		eng = e.OpenAI
	default:
		return nil, fmt.Errorf("unknown llm_name %q; use 'gemini' or 'openai'", llmName)
	}
	if eng == nil {
		return nil, fmt.Errorf("engine %q is not configured", llmName)
	}
	return eng, nil
}
