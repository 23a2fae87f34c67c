package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func q(sentence, answer string, options ...string) Question {
	return Question{Sentence: sentence, Answer: answer, Options: options}
}

// incomingFromBank turns every level of b into candidates.
func incomingFromBank(b Bank) IncomingBank {
	in := make(IncomingBank, len(Levels))
	for _, l := range Levels {
		qs := b.Level(l)
		if qs == nil {
			continue
		}
		cs := make([]Candidate, 0, len(qs))
		for _, q := range qs {
			opts := make([]string, len(q.Options))
			copy(opts, q.Options)
			cs = append(cs, Candidate{
				Sentence:    q.Sentence,
				Answer:      q.Answer,
				Options:     opts,
				HasSentence: true,
				HasAnswer:   true,
				HasOptions:  q.Options != nil,
			})
		}
		in[l] = cs
	}
	return in
}

func sampleBank() Bank {
	return Bank{
		Beginner: []Question{
			q("나는 ____ 먹는다", "밥", "빵", "국", "물"),
			q("학교에 ____", "간다", "먹는다", "잔다", "본다"),
		},
		Intermediate: []Question{
			q("비가 와서 우산을 ____", "썼다", "벗었다", "먹었다", "팔았다"),
		},
		Advanced: []Question{
			q("경제 성장률이 ____", "둔화되었다", "소화되었다", "정화되었다", "강화되었다"),
		},
	}
}

func TestMerge_DropsRecordWithTooFewDistractors(t *testing.T) {
	base := sampleBank()
	incoming := IncomingBank{
		LevelBeginner: {{
			Sentence: "나는 ____ 먹는다", Answer: "밥",
			Options:     []string{"밥", "빵", "국", "밥"},
			HasSentence: true, HasAnswer: true, HasOptions: true,
		}},
	}

	merged := Merge(base, incoming)

	assert.Equal(t, base.Beginner, merged.Beginner)
}

func TestMerge_NormalizesAndOverwritesBySentence(t *testing.T) {
	base := sampleBank()
	incoming := incomingFromBank(Bank{
		Beginner: []Question{
			q("  나는 ____ 먹는다 ", " 라면 ", " 빵", "국 ", "물", "", "라면"),
			q("새 문장 ____", "답", "가", "나", "다"),
		},
	})

	merged := Merge(base, incoming)

	require.Len(t, merged.Beginner, 3)
	// the overwritten record keeps its original position
	assert.Equal(t, q("나는 ____ 먹는다", "라면", "빵", "국", "물"), merged.Beginner[0])
	assert.Equal(t, base.Beginner[1], merged.Beginner[1])
	assert.Equal(t, q("새 문장 ____", "답", "가", "나", "다"), merged.Beginner[2])
	assert.Equal(t, base.Intermediate, merged.Intermediate)
	assert.Equal(t, base.Advanced, merged.Advanced)
}

func TestMerge_DropsRecordWithMoreThanThreeDistractors(t *testing.T) {
	incoming := incomingFromBank(Bank{
		Beginner: []Question{q("문장 ____", "답", "가", "나", "다", "라")},
	})

	merged := Merge(EmptyBank(), incoming)

	assert.Empty(t, merged.Beginner)
}

func TestMerge_DuplicateInSameBatchKeepsLast(t *testing.T) {
	incoming := incomingFromBank(Bank{
		Advanced: []Question{
			q("같은 문장 ____", "첫째", "가", "나", "다"),
			q("다른 문장 ____", "답", "가", "나", "다"),
			q("같은 문장 ____", "둘째", "라", "마", "바"),
		},
	})

	merged := Merge(EmptyBank(), incoming)

	require.Len(t, merged.Advanced, 2)
	assert.Equal(t, "둘째", merged.Advanced[0].Answer)
	assert.Equal(t, "다른 문장 ____", merged.Advanced[1].Sentence)
}

func TestMerge_IsIdempotentOnItself(t *testing.T) {
	bank := sampleBank()

	merged := Merge(bank, incomingFromBank(bank))

	for _, l := range Levels {
		assert.ElementsMatch(t, bank.Level(l), merged.Level(l), "level %s", l)
	}
}

func TestMerge_ReplaceYieldsValidatedIncomingOnly(t *testing.T) {
	incoming := incomingFromBank(Bank{
		Beginner: []Question{
			q("가 ____", "답", "하나", "둘", "셋"),
			q("나 ____", "답", "답", "하나", "둘"),
		},
		Intermediate: []Question{q("다 ____", "답", "하나", "둘", "셋")},
		Advanced:     []Question{},
	})

	merged := Merge(EmptyBank(), incoming)

	assert.Equal(t, []Question{q("가 ____", "답", "하나", "둘", "셋")}, merged.Beginner)
	assert.Equal(t, []Question{q("다 ____", "답", "하나", "둘", "셋")}, merged.Intermediate)
	assert.Empty(t, merged.Advanced)
}

func TestMerge_DoesNotMutateBase(t *testing.T) {
	base := sampleBank()
	snapshot := base.Clone()

	merged := Merge(base, incomingFromBank(Bank{
		Beginner: []Question{q("나는 ____ 먹는다", "죽", "빵", "국", "물")},
	}))
	merged.Intermediate[0].Options[0] = "changed"

	assert.Equal(t, snapshot, base)
}

func TestMerge_OutputInvariant(t *testing.T) {
	var payload map[string]any
	raw := `{
		"beginner": [
			{"sentence": " 하나 ____ ", "answer": " 답 ", "options": [" 가", "나 ", "다", "답"]},
			{"sentence": "둘 ____", "answer": "답", "options": "not an array"},
			{"sentence": "셋 ____", "options": ["가", "나", "다"]},
			{"sentence": 42, "answer": "답", "options": ["가", "나", "다"]},
			"not an object",
			{"sentence": "넷 ____", "answer": "답", "options": ["가", 7, "나", "다"]}
		],
		"intermediate": "not an array"
	}`
	require.NoError(t, json.Unmarshal([]byte(raw), &payload))

	merged := Merge(EmptyBank(), IncomingFromPayload(payload))

	require.Len(t, merged.Beginner, 2)
	for _, rec := range merged.Beginner {
		assert.Len(t, rec.Options, DistractorCount)
		assert.NotContains(t, rec.Options, rec.Answer)
		seen := map[string]bool{}
		for _, o := range rec.Options {
			assert.False(t, seen[o], "duplicate option %q", o)
			seen[o] = true
			assert.NotEmpty(t, o)
		}
	}
	assert.Equal(t, q("하나 ____", "답", "가", "나", "다"), merged.Beginner[0])
	assert.Empty(t, merged.Intermediate)
}

func TestBank_CloneAndCounts(t *testing.T) {
	bank := sampleBank()
	clone := bank.Clone()
	clone.Beginner[0].Options[0] = "x"

	assert.NotEqual(t, "x", bank.Beginner[0].Options[0])
	assert.Equal(t, LevelCounts{Beginner: 2, Intermediate: 1, Advanced: 1}, bank.Counts())
	assert.Equal(t, 4, bank.Total())
	assert.False(t, bank.IsEmpty())
	assert.True(t, Bank{}.IsEmpty())
	assert.NotNil(t, Bank{}.Clone().Advanced)
}

func TestParseLevel(t *testing.T) {
	for _, l := range Levels {
		got, err := ParseLevel(string(l))
		assert.NoError(t, err)
		assert.Equal(t, l, got)
	}
	_, err := ParseLevel("expert")
	assert.Error(t, err)
}

func TestAsDomainError(t *testing.T) {
	de := AsDomainError(NewShapeError("options must be 3"))
	require.NotNil(t, de)
	assert.Equal(t, CodeInvalidShape, de.Code)
	assert.Equal(t, "options must be 3", de.Context["reason"])

	de = AsDomainError(&GenerationError{Reason: "empty response"})
	require.NotNil(t, de)
	assert.Equal(t, CodeGeneration, de.Code)

	de = AsDomainError(&StorageError{Op: "read", Path: "x.json"})
	require.NotNil(t, de)
	assert.Equal(t, CodeStorage, de.Code)

	assert.Equal(t, CodeNoQuestions, AsDomainError(ErrNoQuestions).Code)
	assert.Nil(t, AsDomainError(assert.AnError))
}
