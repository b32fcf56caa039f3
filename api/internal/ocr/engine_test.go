package ocr

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type namedEngine string

func (n namedEngine) Name() string     { return string(n) }
func (n namedEngine) GetModel() string { return "test-model" }
func (n namedEngine) Extract(context.Context, ExtractInput) (string, error) {
	return "", nil
}

func TestEngines_GetEngine(t *testing.T) {
	engs := &Engines{Gemini: namedEngine("gemini"), OpenAI: namedEngine("openai")}

	for name, want := range map[string]string{
		"gemini": "gemini",
		"gpt":    "openai",
		"openai": "openai",
	} {
		eng, err := engs.GetEngine(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, eng.Name())
	}

	for _, name := range []string{"", "yandex"} {
		_, err := engs.GetEngine(name)
		assert.Error(t, err, name)
	}

	_, err := (&Engines{Gemini: namedEngine("gemini")}).GetEngine("openai")
	assert.Error(t, err)
}
