package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

var anthropicModels = map[string]string{
	"claude-sonnet": "claude-sonnet-4-20250514",
	"claude-haiku":  "claude-haiku-4-5-20251001",
}

// AnthropicGenerator completes prompts with the Anthropic messages API.
type AnthropicGenerator struct {
	client *anthropic.Client
	model  string
	opts   Options
}

func NewAnthropicGenerator(apiKey, model, baseURL string, opts Options) (*AnthropicGenerator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("anthropic API key is required")
	}

	reqOpts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(baseURL))
	}
	if model == "" {
		model = "claude-haiku"
	}

	client := anthropic.NewClient(reqOpts...)
	return &AnthropicGenerator{
		client: &client,
		model:  resolveModel(model, anthropicModels),
		opts:   opts,
	}, nil
}

func (g *AnthropicGenerator) Name() string {
	return "anthropic:" + g.model
}

func (g *AnthropicGenerator) Complete(ctx context.Context, prompt string) (string, error) {
	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(g.model),
		MaxTokens: int64(g.opts.maxTokens()),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	}
	if g.opts.Temperature > 0 {
		params.Temperature = anthropic.Float(g.opts.Temperature)
	}

	msg, err := g.client.Messages.New(ctx, params)
	if err != nil {
		var apiErr *anthropic.Error
		if errors.As(err, &apiErr) {
			return "", fmt.Errorf("anthropic request failed with status %d: %w", apiErr.StatusCode, err)
		}
		return "", fmt.Errorf("anthropic request failed: %w", err)
	}

	var sb strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	return sb.String(), nil
}
