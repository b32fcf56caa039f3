package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

type Config struct {
	Port string

	UploadDir         string
	MaxUploadSize     int64
	AllowedExtensions []string

	Provider     string
	GeminiAPIKey string
	GeminiModel  string
	OpenAIAPIKey string
	OpenAIModel  string
	OpenAIURL    string

	PromptFile   string
	ModelTimeout time.Duration

	LogLevel string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "5000")

	v.SetDefault("UPLOAD_DIR", "uploads")
	v.SetDefault("MAX_UPLOAD_SIZE", 5*1024*1024) // 5MB
	v.SetDefault("ALLOWED_EXTENSIONS", "jpg,jpeg,png")

	v.SetDefault("LLM_PROVIDER", ProviderGemini)
	// без реального ключа запросы падают уже на стороне провайдера
	v.SetDefault("GEMINI_API_KEY", "YOUR_API_KEY")
	v.SetDefault("GEMINI_MODEL", "gemini-1.5-pro")
	v.SetDefault("OPENAI_API_KEY", "")
	v.SetDefault("OPENAI_MODEL", "gpt-4o-mini")
	v.SetDefault("OPENAI_BASE_URL", "https://api.openai.com/v1")

	v.SetDefault("PROMPT_FILE", "")
	v.SetDefault("MODEL_TIMEOUT", "0s")

	v.SetDefault("LOG_LEVEL", "info")
}

// Load reads the configuration from the process environment.
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	cfg := &Config{
		Port: strings.TrimSpace(v.GetString("PORT")),

		UploadDir:         strings.TrimSpace(v.GetString("UPLOAD_DIR")),
		MaxUploadSize:     v.GetInt64("MAX_UPLOAD_SIZE"),
		AllowedExtensions: splitList(v.GetString("ALLOWED_EXTENSIONS")),

		Provider:     normalizeProvider(v.GetString("LLM_PROVIDER")),
		GeminiAPIKey: strings.TrimSpace(v.GetString("GEMINI_API_KEY")),
		GeminiModel:  strings.TrimSpace(v.GetString("GEMINI_MODEL")),
		OpenAIAPIKey: strings.TrimSpace(v.GetString("OPENAI_API_KEY")),
		OpenAIModel:  strings.TrimSpace(v.GetString("OPENAI_MODEL")),
		OpenAIURL:    strings.TrimRight(strings.TrimSpace(v.GetString("OPENAI_BASE_URL")), "/"),

		PromptFile:   strings.TrimSpace(v.GetString("PROMPT_FILE")),
		ModelTimeout: v.GetDuration("MODEL_TIMEOUT"),

		LogLevel: strings.ToLower(strings.TrimSpace(v.GetString("LOG_LEVEL"))),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("PORT is empty")
	}
	if c.UploadDir == "" {
		return fmt.Errorf("UPLOAD_DIR is empty")
	}
	if c.MaxUploadSize <= 0 {
		return fmt.Errorf("MAX_UPLOAD_SIZE must be positive, got %d", c.MaxUploadSize)
	}
	if len(c.AllowedExtensions) == 0 {
		return fmt.Errorf("ALLOWED_EXTENSIONS is empty")
	}
	if c.ModelTimeout < 0 {
		return fmt.Errorf("MODEL_TIMEOUT must not be negative")
	}
	switch c.Provider {
	case ProviderGemini:
	case ProviderOpenAI:
		if c.OpenAIAPIKey == "" {
			return fmt.Errorf("missing required env OPENAI_API_KEY for provider %q", c.Provider)
		}
	default:
		return fmt.Errorf("unknown LLM_PROVIDER %q; use 'gemini' or 'openai'", c.Provider)
	}
	return nil
}

// gpt остаётся синонимом openai, как в ocr.Engines.
func normalizeProvider(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "gpt" {
		return ProviderOpenAI
	}
	return s
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.ToLower(strings.TrimSpace(p)); p != "" {
			out = append(out, strings.TrimPrefix(p, "."))
		}
	}
	return out
}
