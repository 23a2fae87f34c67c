package llm

import (
	"context"
	"fmt"

	"hangul-quiz/internal/config"
	"hangul-quiz/internal/domain"
)

// NewTextGenerator builds the generator selected by cfg.Provider.
func NewTextGenerator(ctx context.Context, cfg config.LLMConfig) (domain.TextGenerator, error) {
	opts := Options{Temperature: cfg.Temperature}

	var (
		gen domain.TextGenerator
		err error
	)
	switch cfg.Provider {
	case config.ProviderOpenAI:
		gen, err = asGenerator(NewOpenAIGenerator(cfg.OpenAI.APIKey, cfg.OpenAI.Model, cfg.OpenAI.BaseURL, opts))
	case config.ProviderAnthropic:
		gen, err = asGenerator(NewAnthropicGenerator(cfg.Anthropic.APIKey, cfg.Anthropic.Model, cfg.Anthropic.BaseURL, opts))
	case config.ProviderGemini:
		gen, err = asGenerator(NewGeminiGenerator(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model, cfg.Gemini.BaseURL, opts))
	case config.ProviderOllama:
		gen, err = asGenerator(NewOllamaGenerator(cfg.Ollama.BaseURL, cfg.Ollama.Model, cfg.Timeout, opts))
	default:
		err = fmt.Errorf("unsupported llm provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, err
	}
	return gen, nil
}

// asGenerator keeps a failed constructor from leaking a typed nil interface.
func asGenerator[T domain.TextGenerator](g T, err error) (domain.TextGenerator, error) {
	if err != nil {
		return nil, err
	}
	return g, nil
}
