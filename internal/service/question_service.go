package service

import (
	"context"
	"errors"
	"math/rand/v2"
	"time"

	"hangul-quiz/internal/adapter/quizgen"
	"hangul-quiz/internal/domain"
	"hangul-quiz/internal/dto"
	"hangul-quiz/internal/logger"
	"hangul-quiz/internal/metrics"
	"hangul-quiz/internal/session"
	"hangul-quiz/internal/validation"

	"go.uber.org/zap"
)

// learningQuota is how many cards each level contributes to a learning set
// before leftovers are used to fill it up.
var learningQuota = map[domain.Level]int{
	domain.LevelBeginner:     4,
	domain.LevelIntermediate: 3,
	domain.LevelAdvanced:     3,
}

// QuestionGenerator produces a decoded, not yet validated, question payload.
type QuestionGenerator interface {
	Generate(ctx context.Context, req quizgen.Request) (any, error)
	Provider() string
}

// GenerateRequest describes one generate-and-merge run.
type GenerateRequest struct {
	Mode     domain.GenerationMode
	Replace  bool
	PerLevel int
	Prompt   string
}

// GenerateResult reports the bank after a generate-and-merge run.
type GenerateResult struct {
	Replaced bool
	Counts   domain.LevelCounts
}

// QuestionService defines the question bank operations behind the HTTP API and the CLI.
type QuestionService interface {
	GetQuestions(ctx context.Context, level *domain.Level, noCache bool) (domain.Bank, error)
	Generate(ctx context.Context, req GenerateRequest) (*GenerateResult, error)
	Import(ctx context.Context, payload any, mode domain.GenerationMode, replace bool) (*GenerateResult, error)
	LearningSet(ctx context.Context, size int) (*dto.LearningSetResponse, error)
	Debug(ctx context.Context) *dto.DebugResponse
}

type questionService struct {
	bank      domain.BankRepository
	generator QuestionGenerator
	metrics   *metrics.Metrics
	newRand   func() *rand.Rand
}

// NewQuestionService creates a QuestionService. generator may be nil for
// callers that never generate; m may be nil to disable metrics.
func NewQuestionService(bank domain.BankRepository, generator QuestionGenerator, m *metrics.Metrics) QuestionService {
	return &questionService{
		bank:      bank,
		generator: generator,
		metrics:   m,
		newRand:   func() *rand.Rand { return session.NewRand(rand.Uint64()) },
	}
}

// GetQuestions returns the whole bank, or only the given level with the other
// levels left nil.
func (s *questionService) GetQuestions(ctx context.Context, level *domain.Level, noCache bool) (domain.Bank, error) {
	bank, err := s.bank.Load(ctx, noCache)
	if err != nil {
		return domain.Bank{}, err
	}
	s.recordBankSize(bank)
	if level == nil {
		return bank, nil
	}
	var only domain.Bank
	only.SetLevel(*level, bank.Level(*level))
	return only, nil
}

// Generate asks the completion provider for a fresh question set, validates
// it, and merges it into the stored bank.
func (s *questionService) Generate(ctx context.Context, req GenerateRequest) (*GenerateResult, error) {
	if s.generator == nil {
		return nil, domain.NewInternalError("No question generator configured", nil)
	}

	start := time.Now()
	payload, err := s.generator.Generate(ctx, quizgen.Request{
		Mode:     req.Mode,
		PerLevel: req.PerLevel,
		Prompt:   req.Prompt,
	})
	elapsed := time.Since(start).Seconds()
	if err != nil {
		s.metrics.ObserveGeneration(string(req.Mode), "generation_error", s.generator.Provider(), elapsed)
		return nil, err
	}

	if err := validation.ValidatePayload(payload, req.Mode, validation.ExpectPerLevel(req.PerLevel)); err != nil {
		s.metrics.ObserveGeneration(string(req.Mode), "invalid_shape", s.generator.Provider(), elapsed)
		logger.Get().Warn("Generated payload rejected",
			zap.String("mode", string(req.Mode)),
			zap.Error(err),
		)
		return nil, err
	}

	result, err := s.mergeAndSave(ctx, payload.(map[string]any), req.Replace)
	if err != nil {
		s.metrics.ObserveGeneration(string(req.Mode), "storage_error", s.generator.Provider(), elapsed)
		return nil, err
	}
	s.metrics.ObserveGeneration(string(req.Mode), "ok", s.generator.Provider(), elapsed)
	return result, nil
}

// Import validates an already decoded payload and merges it into the bank
// without calling the completion provider.
func (s *questionService) Import(ctx context.Context, payload any, mode domain.GenerationMode, replace bool) (*GenerateResult, error) {
	if err := validation.ValidatePayload(payload, mode, nil); err != nil {
		return nil, err
	}
	return s.mergeAndSave(ctx, payload.(map[string]any), replace)
}

func (s *questionService) mergeAndSave(ctx context.Context, payload map[string]any, replace bool) (*GenerateResult, error) {
	base := domain.EmptyBank()
	if !replace {
		current, err := s.bank.Load(ctx, true)
		var storageErr *domain.StorageError
		switch {
		case errors.As(err, &storageErr):
			logger.Get().Warn("Stored bank unavailable, merging into an empty bank",
				zap.String("path", storageErr.Path),
				zap.Error(err),
			)
		case err != nil:
			return nil, err
		default:
			base = current
		}
	}

	merged := domain.Merge(base, domain.IncomingFromPayload(payload))
	if err := s.bank.Save(ctx, merged); err != nil {
		return nil, err
	}
	s.recordBankSize(merged)

	counts := merged.Counts()
	logger.Get().Info("Question bank updated",
		zap.Bool("replaced", replace),
		zap.Int("beginner", counts.Beginner),
		zap.Int("intermediate", counts.Intermediate),
		zap.Int("advanced", counts.Advanced),
	)
	return &GenerateResult{Replaced: replace, Counts: counts}, nil
}

// LearningSet picks up to size study cards: 4 beginner, 3 intermediate and
// 3 advanced when available, topped up from the shuffled leftovers.
func (s *questionService) LearningSet(ctx context.Context, size int) (*dto.LearningSetResponse, error) {
	bank, err := s.bank.Load(ctx, false)
	if err != nil {
		return nil, err
	}
	if bank.IsEmpty() {
		return nil, domain.ErrNoQuestions
	}

	rng := s.newRand()
	type card struct {
		level domain.Level
		q     domain.Question
	}
	var picked, leftovers []card
	for _, l := range domain.Levels {
		qs := bank.Level(l)
		session.Shuffle(rng, qs)
		for i, q := range qs {
			if i < learningQuota[l] {
				picked = append(picked, card{l, q})
			} else {
				leftovers = append(leftovers, card{l, q})
			}
		}
	}
	session.Shuffle(rng, leftovers)
	for len(picked) < size && len(leftovers) > 0 {
		picked = append(picked, leftovers[0])
		leftovers = leftovers[1:]
	}
	if len(picked) > size {
		picked = picked[:size]
	}

	items := make([]dto.LearningItem, 0, len(picked))
	for _, c := range picked {
		first, second := domain.SplitDialogue(c.q.Sentence)
		items = append(items, dto.LearningItem{
			Level:      c.level,
			LevelName:  c.level.KoreanName(),
			Sentence:   c.q.Sentence,
			FirstLine:  first,
			SecondLine: second,
			Answer:     c.q.Answer,
			Options:    c.q.Options,
		})
	}
	return &dto.LearningSetResponse{Items: items, Count: len(items)}, nil
}

// Debug reports where the bank is stored and whether the file exists.
func (s *questionService) Debug(_ context.Context) *dto.DebugResponse {
	return &dto.DebugResponse{QuestionsPath: s.bank.Path(), Exists: s.bank.Exists()}
}

func (s *questionService) recordBankSize(bank domain.Bank) {
	for _, l := range domain.Levels {
		s.metrics.SetBankSize(string(l), len(bank.Level(l)))
	}
}
