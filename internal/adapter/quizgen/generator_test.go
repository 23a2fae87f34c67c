package quizgen

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"hangul-quiz/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockTextGenerator is a mock implementation of domain.TextGenerator
type MockTextGenerator struct {
	CompleteFunc func(ctx context.Context, prompt string) (string, error)
}

func (m *MockTextGenerator) Complete(ctx context.Context, prompt string) (string, error) {
	return m.CompleteFunc(ctx, prompt)
}

func (m *MockTextGenerator) Name() string {
	return "mock"
}

const payloadJSON = `{"beginner":[{"sentence":"나는 ____ 먹는다","answer":"밥","options":["빵","국","물"]}],"intermediate":[],"advanced":[]}`

func requireGenerationError(t *testing.T, err error, reason string) {
	t.Helper()
	var ge *domain.GenerationError
	require.True(t, errors.As(err, &ge), "expected GenerationError, got %v", err)
	assert.Equal(t, reason, ge.Reason)
}

func TestParsePayload(t *testing.T) {
	t.Run("plain json", func(t *testing.T) {
		payload, err := ParsePayload(payloadJSON)
		require.NoError(t, err)
		root, ok := payload.(map[string]any)
		require.True(t, ok)
		assert.Len(t, root["beginner"], 1)
	})

	t.Run("fenced json", func(t *testing.T) {
		payload, err := ParsePayload("```json\n" + payloadJSON + "\n```")
		require.NoError(t, err)
		assert.IsType(t, map[string]any{}, payload)
	})

	t.Run("fence with uppercase tag and padding", func(t *testing.T) {
		_, err := ParsePayload("  ```JSON " + payloadJSON + "```\n")
		assert.NoError(t, err)
	})

	t.Run("bare fence", func(t *testing.T) {
		_, err := ParsePayload("```\n" + payloadJSON + "\n```")
		assert.NoError(t, err)
	})

	t.Run("empty", func(t *testing.T) {
		_, err := ParsePayload(" \n\t")
		requireGenerationError(t, err, "empty response")
	})

	t.Run("prose", func(t *testing.T) {
		_, err := ParsePayload("여기 문제가 있습니다: {\"beginner\": []")
		requireGenerationError(t, err, "invalid JSON")
	})
}

func TestGenerator_Generate(t *testing.T) {
	var gotPrompt string
	provider := &MockTextGenerator{
		CompleteFunc: func(ctx context.Context, prompt string) (string, error) {
			gotPrompt = prompt
			_, hasDeadline := ctx.Deadline()
			assert.True(t, hasDeadline)
			return "```json\n" + payloadJSON + "\n```", nil
		},
	}
	g := NewGenerator(provider, time.Minute, nil)

	payload, err := g.Generate(context.Background(), Request{Mode: domain.ModeFillBlank, PerLevel: 7})
	require.NoError(t, err)
	assert.NotNil(t, payload)
	assert.Contains(t, gotPrompt, "문제 객체 7개씩")
	assert.Contains(t, gotPrompt, "____")
	assert.Equal(t, "mock", g.Provider())
}

func TestGenerator_UsesCustomPrompt(t *testing.T) {
	var gotPrompt string
	provider := &MockTextGenerator{
		CompleteFunc: func(_ context.Context, prompt string) (string, error) {
			gotPrompt = prompt
			return payloadJSON, nil
		},
	}

	_, err := NewGenerator(provider, 0, nil).Generate(context.Background(), Request{PerLevel: 10, Prompt: "동물 주제로 만들어 줘"})
	require.NoError(t, err)
	assert.Equal(t, "동물 주제로 만들어 줘", gotPrompt)
}

func TestGenerator_ProviderFailure(t *testing.T) {
	cause := errors.New("upstream 503")
	provider := &MockTextGenerator{
		CompleteFunc: func(context.Context, string) (string, error) { return "", cause },
	}

	_, err := NewGenerator(provider, 0, nil).Generate(context.Background(), Request{PerLevel: 1})
	requireGenerationError(t, err, "provider request failed")
	assert.ErrorIs(t, err, cause)
}

func TestGenerator_EmptyCompletion(t *testing.T) {
	provider := &MockTextGenerator{
		CompleteFunc: func(context.Context, string) (string, error) { return "", nil },
	}

	_, err := NewGenerator(provider, 0, nil).Generate(context.Background(), Request{PerLevel: 1})
	requireGenerationError(t, err, "empty response")
}

func TestBuildPrompt(t *testing.T) {
	dialogue := BuildPrompt(domain.ModeDialogue, 3, "")
	assert.Contains(t, dialogue, "문제 객체 3개씩")
	assert.Contains(t, dialogue, "A:")
	assert.False(t, strings.Contains(dialogue, "%!"), "format verbs must be filled")

	fill := BuildPrompt(domain.ModeFillBlank, 10, "")
	assert.Contains(t, fill, "문제 객체 10개씩")
	assert.False(t, strings.Contains(fill, "%!"))
}

func TestHead(t *testing.T) {
	assert.Equal(t, "abc", head("abc", 10))
	assert.Equal(t, "ab", head("abcdef", 2))

	// each syllable is 3 bytes
	korean := "안녕하세요"
	for n := 0; n <= len(korean); n++ {
		got := head(korean, n)
		assert.True(t, utf8.ValidString(got), "n=%d", n)
		assert.LessOrEqual(t, len(got), n)
	}
	assert.Equal(t, "안녕", head(korean, 7))
	assert.Equal(t, "", head(korean, 2))
}
