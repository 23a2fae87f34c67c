package validation

import (
	"regexp"
	"strings"

	"hangul-quiz/internal/domain"
)

// speakerPrefix matches a 1-3 character speaker tag such as "A:" or "민수：" at a line start.
var speakerPrefix = regexp.MustCompile(`(?m)^\s*[\p{L}\p{N}_]{1,3}\s*[:：]`)

// IsDialogue reports whether sentence looks like a short dialogue: at least two
// non-empty lines, or a speaker prefix at the start of some line.
func IsDialogue(sentence string) bool {
	lines := 0
	for _, line := range strings.Split(strings.ReplaceAll(sentence, "\r\n", "\n"), "\n") {
		if strings.TrimSpace(line) != "" {
			lines++
		}
	}
	if lines >= 2 {
		return true
	}
	return speakerPrefix.MatchString(sentence)
}

// ValidatePayload checks a decoded JSON payload (map[string]any / []any / string as
// produced by encoding/json) against the question shape rules for mode. expect gives
// the minimum item count per level; missing or non-positive entries default to 1.
// It returns the first violation as a *domain.ShapeError and never modifies payload.
func ValidatePayload(payload any, mode domain.GenerationMode, expect map[domain.Level]int) error {
	root, ok := payload.(map[string]any)
	if !ok {
		return domain.NewShapeError("root not object")
	}

	for _, level := range domain.Levels {
		items, ok := root[string(level)].([]any)
		if !ok {
			return shapeError("missing array: "+string(level), level)
		}
		min := expect[level]
		if min <= 0 {
			min = 1
		}
		if len(items) < min {
			return shapeError("too few items: "+string(level), level)
		}
		for _, item := range items {
			if err := validateItem(item, mode, level); err != nil {
				return err
			}
		}
	}
	return nil
}

func validateItem(item any, mode domain.GenerationMode, level domain.Level) error {
	obj, ok := item.(map[string]any)
	if !ok {
		return shapeError("item not object", level)
	}

	sentence, ok := obj["sentence"].(string)
	if !ok || strings.TrimSpace(sentence) == "" || !sentenceMatchesMode(sentence, mode) {
		return shapeError("sentence invalid", level)
	}

	answer, ok := obj["answer"].(string)
	if !ok || strings.TrimSpace(answer) == "" {
		return shapeError("answer invalid", level)
	}

	options, ok := obj["options"].([]any)
	if !ok || len(options) != domain.DistractorCount {
		return shapeError("options must be 3", level)
	}
	for _, o := range options {
		s, ok := o.(string)
		if !ok || strings.TrimSpace(s) == "" {
			return shapeError("options item invalid", level)
		}
	}
	return nil
}

func sentenceMatchesMode(sentence string, mode domain.GenerationMode) bool {
	if mode == domain.ModeDialogue {
		return IsDialogue(sentence)
	}
	return strings.Contains(sentence, domain.BlankMarker)
}

func shapeError(reason string, level domain.Level) *domain.ShapeError {
	return &domain.ShapeError{Reason: reason, Level: level}
}

// ExpectPerLevel builds an expectation map asking for n items on every level.
func ExpectPerLevel(n int) map[domain.Level]int {
	expect := make(map[domain.Level]int, len(domain.Levels))
	for _, l := range domain.Levels {
		expect[l] = n
	}
	return expect
}
