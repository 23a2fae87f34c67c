package llm

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

var geminiModels = map[string]string{
	"gemini-flash": "gemini-2.0-flash",
	"gemini-pro":   "gemini-2.0-pro",
}

// GeminiGenerator completes prompts with the Google Gemini API.
type GeminiGenerator struct {
	client *genai.Client
	model  string
	opts   Options
}

func NewGeminiGenerator(ctx context.Context, apiKey, model, baseURL string, opts Options) (*GeminiGenerator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}

	cc := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	if baseURL != "" {
		cc.HTTPOptions.BaseURL = baseURL
	}
	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("create Gemini client: %w", err)
	}
	if model == "" {
		model = "gemini-flash"
	}

	return &GeminiGenerator{
		client: client,
		model:  resolveModel(model, geminiModels),
		opts:   opts,
	}, nil
}

func (g *GeminiGenerator) Name() string {
	return "gemini:" + g.model
}

func (g *GeminiGenerator) Complete(ctx context.Context, prompt string) (string, error) {
	config := &genai.GenerateContentConfig{
		MaxOutputTokens:  int32(g.opts.maxTokens()),
		ResponseMIMEType: "application/json",
	}
	if g.opts.Temperature > 0 {
		temp := float32(g.opts.Temperature)
		config.Temperature = &temp
	}

	result, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), config)
	if err != nil {
		return "", fmt.Errorf("gemini request failed: %w", err)
	}
	return result.Text(), nil
}
