// Package llm adapts the supported completion providers to domain.TextGenerator.
package llm

import (
	"strings"
)

const (
	// defaultMaxTokens bounds one generation; three levels of ten questions fit comfortably.
	defaultMaxTokens = 8192

	thinkOpen  = "<think>"
	thinkClose = "</think>"
)

// Options are the sampling settings shared by all providers.
type Options struct {
	Temperature float64
	MaxTokens   int
}

func (o Options) maxTokens() int {
	if o.MaxTokens <= 0 {
		return defaultMaxTokens
	}
	return o.MaxTokens
}

// StripThinking removes <think>...</think> blocks emitted by reasoning models.
func StripThinking(s string) string {
	for {
		start := strings.Index(s, thinkOpen)
		if start == -1 {
			break
		}
		end := strings.Index(s[start:], thinkClose)
		if end == -1 {
			// 닫히지 않은 블록은 뒤를 통째로 버린다
			s = s[:start]
			break
		}
		s = s[:start] + s[start+end+len(thinkClose):]
	}
	return strings.TrimSpace(s)
}

// resolveModel maps a friendly model name to a provider model ID.
func resolveModel(name string, models map[string]string) string {
	if id, ok := models[name]; ok {
		return id
	}
	return name
}
