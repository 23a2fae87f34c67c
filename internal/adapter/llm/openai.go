package llm

import (
	"context"
	"errors"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

var openaiModels = map[string]string{
	"gpt-4o":      "gpt-4o",
	"gpt-4o-mini": "gpt-4o-mini",
}

// OpenAIGenerator completes prompts with the OpenAI chat API, the default
// provider for question generation.
type OpenAIGenerator struct {
	client *openai.Client
	model  string
	opts   Options
}

// NewOpenAIGenerator creates an OpenAI-backed generator. baseURL may point to
// any OpenAI-compatible endpoint.
func NewOpenAIGenerator(apiKey, model, baseURL string, opts Options) (*OpenAIGenerator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("openai API key is required")
	}

	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	if model == "" {
		model = "gpt-4o-mini"
	}

	return &OpenAIGenerator{
		client: openai.NewClientWithConfig(config),
		model:  resolveModel(model, openaiModels),
		opts:   opts,
	}, nil
}

func (g *OpenAIGenerator) Name() string {
	return "openai:" + g.model
}

func (g *OpenAIGenerator) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature:         float32(g.opts.Temperature),
		MaxCompletionTokens: g.opts.maxTokens(),
	})
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) {
			return "", fmt.Errorf("openai request failed with status %d: %w", apiErr.HTTPStatusCode, err)
		}
		return "", fmt.Errorf("openai request failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}
