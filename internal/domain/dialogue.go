package domain

import (
	"regexp"
	"strings"
)

var (
	lineBreak      = regexp.MustCompile(`\r?\n`)
	slashSeparator = regexp.MustCompile(`\s/\s`)
	sentenceEnd    = regexp.MustCompile(`[.!?…]\s+`)
)

// SplitDialogue splits a dialogue sentence into two display lines. It tries line
// breaks, then " / " separators, then sentence punctuation, and finally cuts the
// text in half.
func SplitDialogue(sentence string) (string, string) {
	s := strings.TrimSpace(sentence)
	if s == "" {
		return "", ""
	}

	if parts := nonEmpty(lineBreak.Split(s, -1)); len(parts) >= 2 {
		return parts[0], parts[1]
	}
	if parts := nonEmpty(slashSeparator.Split(s, -1)); len(parts) >= 2 {
		return parts[0], parts[1]
	}
	if loc := sentenceEnd.FindStringIndex(s); loc != nil {
		// keep the punctuation with the first line
		cut := loc[0] + len(strings.TrimRight(s[loc[0]:loc[1]], " \t\r\n"))
		first, rest := strings.TrimSpace(s[:cut]), strings.TrimSpace(s[loc[1]:])
		if rest != "" {
			second := rest
			if next := sentenceEnd.FindStringIndex(rest); next != nil {
				second = strings.TrimSpace(rest[:next[0]+len(strings.TrimRight(rest[next[0]:next[1]], " \t\r\n"))])
			}
			return first, second
		}
	}

	runes := []rune(s)
	mid := len(runes) / 2
	return strings.TrimSpace(string(runes[:mid])), strings.TrimSpace(string(runes[mid:]))
}

func nonEmpty(parts []string) []string {
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
