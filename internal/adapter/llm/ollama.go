package llm

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
)

// OllamaGenerator completes prompts with a local model through langchaingo.
// Reasoning blocks are stripped from the output.
type OllamaGenerator struct {
	model llms.Model
	name  string
	opts  Options
}

// NewOllamaGenerator connects to the Ollama server at serverURL.
func NewOllamaGenerator(serverURL, model string, timeout time.Duration, opts Options) (*OllamaGenerator, error) {
	httpClient := &http.Client{Timeout: timeout}
	llm, err := ollama.New(
		ollama.WithServerURL(serverURL),
		ollama.WithModel(model),
		ollama.WithHTTPClient(httpClient),
	)
	if err != nil {
		return nil, fmt.Errorf("create ollama client: %w", err)
	}
	return NewOllamaGeneratorWithModel(llm, model, opts), nil
}

// NewOllamaGeneratorWithModel wraps an existing langchaingo model.
func NewOllamaGeneratorWithModel(model llms.Model, name string, opts Options) *OllamaGenerator {
	return &OllamaGenerator{model: model, name: name, opts: opts}
}

func (g *OllamaGenerator) Name() string {
	return "ollama:" + g.name
}

func (g *OllamaGenerator) Complete(ctx context.Context, prompt string) (string, error) {
	out, err := llms.GenerateFromSinglePrompt(ctx, g.model, prompt,
		llms.WithTemperature(g.opts.Temperature),
		llms.WithMaxTokens(g.opts.maxTokens()),
	)
	if err != nil {
		return "", fmt.Errorf("ollama request failed: %w", err)
	}
	return StripThinking(out), nil
}
