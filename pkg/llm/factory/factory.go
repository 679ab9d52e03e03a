package factory

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"maritime-assistant-be/pkg/llm"
	"maritime-assistant-be/pkg/llm/gemini"
	"maritime-assistant-be/pkg/llm/ollama"
	"maritime-assistant-be/pkg/llm/openai"
)

type Config struct {
	Provider string // "openai", "gemini", "ollama"
	APIKey   string
	Model    string
	BaseURL  string
	Timeout  time.Duration
	// MaxRetries is forwarded to providers that support retrying.
	MaxRetries int
}

var ErrUnsupportedProvider = errors.New("unsupported LLM provider")

// NewLLMProvider builds the configured backend. A hosted provider without an
// API key yields (nil, nil): the assistant then runs on deterministic tools only.
func NewLLMProvider(ctx context.Context, cfg Config) (llm.LLMProvider, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case "", "none":
		return nil, nil
	case "openai":
		p, err := openai.NewProvider(openai.Config{
			APIKey:     cfg.APIKey,
			BaseURL:    cfg.BaseURL,
			Model:      cfg.Model,
			Timeout:    cfg.Timeout,
			MaxRetries: cfg.MaxRetries,
		})
		return orUnconfigured(p, err)
	case "gemini":
		p, err := gemini.NewProvider(ctx, cfg.APIKey, cfg.Model)
		return orUnconfigured(p, err)
	case "ollama":
		return ollama.NewOllamaProvider(cfg.BaseURL, cfg.Model, cfg.Timeout), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedProvider, cfg.Provider)
	}
}

func orUnconfigured[P llm.LLMProvider](p P, err error) (llm.LLMProvider, error) {
	if errors.Is(err, llm.ErrNotConfigured) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}
