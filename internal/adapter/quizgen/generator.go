package quizgen

import (
	"context"
	"encoding/json"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"hangul-quiz/internal/domain"

	"go.uber.org/zap"
)

// Request describes one generation call.
type Request struct {
	Mode     domain.GenerationMode
	PerLevel int
	Prompt   string
}

// Generator turns a completion provider's text into a decoded JSON payload.
type Generator struct {
	provider domain.TextGenerator
	timeout  time.Duration
	logger   *zap.Logger
}

// NewGenerator creates a Generator. A zero timeout leaves the caller's deadline in charge.
func NewGenerator(provider domain.TextGenerator, timeout time.Duration, logger *zap.Logger) *Generator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Generator{provider: provider, timeout: timeout, logger: logger}
}

// Provider reports which completion provider is in use.
func (g *Generator) Provider() string {
	return g.provider.Name()
}

// Generate asks the provider for a question set and returns the decoded
// payload. The payload is not validated here.
func (g *Generator) Generate(ctx context.Context, req Request) (any, error) {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	prompt := BuildPrompt(req.Mode, req.PerLevel, req.Prompt)
	g.logger.Info("requesting question generation",
		zap.String("provider", g.provider.Name()),
		zap.String("mode", string(req.Mode)),
		zap.Int("per_level", req.PerLevel),
		zap.Bool("custom_prompt", req.Prompt != ""))

	start := time.Now()
	raw, err := g.provider.Complete(ctx, prompt)
	if err != nil {
		g.logger.Error("completion provider failed", zap.String("provider", g.provider.Name()), zap.Error(err))
		return nil, &domain.GenerationError{Reason: "provider request failed", Err: err}
	}
	g.logger.Debug("completion received",
		zap.Duration("elapsed", time.Since(start)),
		zap.Int("length", len(raw)))

	payload, err := ParsePayload(raw)
	if err != nil {
		g.logger.Error("generated text is not usable", zap.Error(err), zap.String("head", head(raw, 400)))
		return nil, err
	}
	return payload, nil
}

var (
	fenceOpen  = regexp.MustCompile("(?i)^```(?:json)?\\s*")
	fenceClose = regexp.MustCompile("\\s*```$")
)

// ParsePayload decodes raw completion text as JSON. If the first attempt
// fails, a surrounding ```json fence is stripped and decoding is retried.
// Empty text and text that fails both attempts yield a *domain.GenerationError.
func ParsePayload(raw string) (any, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, &domain.GenerationError{Reason: "empty response"}
	}

	var payload any
	if err := json.Unmarshal([]byte(raw), &payload); err == nil {
		return payload, nil
	}

	cleaned := strings.TrimSpace(raw)
	cleaned = fenceOpen.ReplaceAllString(cleaned, "")
	cleaned = fenceClose.ReplaceAllString(cleaned, "")
	if err := json.Unmarshal([]byte(cleaned), &payload); err != nil {
		return nil, &domain.GenerationError{Reason: "invalid JSON", Err: err}
	}
	return payload, nil
}

// head returns at most n bytes of s without splitting a rune.
func head(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
