package service

import (
	"context"
	"errors"
	"math/rand/v2"

	"hangul-quiz/internal/domain"
	"hangul-quiz/internal/dto"
	"hangul-quiz/internal/logger"
	"hangul-quiz/internal/metrics"
	"hangul-quiz/internal/session"
	"hangul-quiz/internal/util"

	"go.uber.org/zap"
)

// SessionStore keeps level test state between requests.
type SessionStore interface {
	Get(ctx context.Context, id string) (session.State, error)
	Save(ctx context.Context, state session.State) error
	Delete(ctx context.Context, id string) error
}

// SessionService defines the level test operations.
type SessionService interface {
	Start(ctx context.Context) (*dto.LevelTestResponse, error)
	Get(ctx context.Context, id string) (*dto.LevelTestResponse, error)
	Answer(ctx context.Context, id string, choice int) (*dto.AnswerResponse, error)
	Next(ctx context.Context, id string) (*dto.LevelTestResponse, error)
	Restart(ctx context.Context, id string) (*dto.LevelTestResponse, error)
	Result(ctx context.Context, id string) (*dto.LevelTestResultResponse, error)
}

type sessionService struct {
	bank    domain.BankRepository
	store   SessionStore
	metrics *metrics.Metrics
	newRand func() *rand.Rand
	newID   func() string
}

// NewSessionService creates a SessionService over the shared bank and a session store.
func NewSessionService(bank domain.BankRepository, store SessionStore, m *metrics.Metrics) SessionService {
	return &sessionService{
		bank:    bank,
		store:   store,
		metrics: m,
		newRand: func() *rand.Rand { return session.NewRand(rand.Uint64()) },
		newID:   util.NewULID,
	}
}

// Start begins a new level test over a shuffled copy of the current bank.
func (s *sessionService) Start(ctx context.Context) (*dto.LevelTestResponse, error) {
	bank, err := s.bank.Load(ctx, false)
	if err != nil {
		return nil, err
	}
	engine, err := session.New(bank, s.newRand())
	if err != nil {
		return nil, err
	}
	engine.SetID(s.newID())

	if err := s.store.Save(ctx, engine.State()); err != nil {
		return nil, err
	}
	s.metrics.SessionStarted()
	logger.Get().Info("Level test started",
		zap.String("session_id", engine.State().ID),
		zap.Int("bank_size", bank.Total()),
	)

	view := toLevelTestResponse(engine)
	return &view, nil
}

// Get returns the current view of a session.
func (s *sessionService) Get(ctx context.Context, id string) (*dto.LevelTestResponse, error) {
	engine, err := s.restore(ctx, id)
	if err != nil {
		return nil, err
	}
	view := toLevelTestResponse(engine)
	return &view, nil
}

// Answer records a choice for the current question.
func (s *sessionService) Answer(ctx context.Context, id string, choice int) (*dto.AnswerResponse, error) {
	engine, err := s.restore(ctx, id)
	if err != nil {
		return nil, err
	}
	if engine.Completed() {
		return nil, domain.NewInvalidInputError("Level test is already completed")
	}

	correct, err := engine.Answer(choice)
	if err != nil {
		return nil, err
	}
	if err := s.store.Save(ctx, engine.State()); err != nil {
		return nil, err
	}

	q, _ := engine.CurrentQuestion()
	return &dto.AnswerResponse{
		Correct: correct,
		Answer:  q.Answer,
		Session: toLevelTestResponse(engine),
	}, nil
}

// Next advances to the following question once the current one is answered.
func (s *sessionService) Next(ctx context.Context, id string) (*dto.LevelTestResponse, error) {
	engine, err := s.restore(ctx, id)
	if err != nil {
		return nil, err
	}

	wasCompleted := engine.Completed()
	engine.Next()
	if err := s.store.Save(ctx, engine.State()); err != nil {
		return nil, err
	}

	if !wasCompleted && engine.Completed() {
		summary, _ := engine.Summary()
		s.metrics.SessionCompleted(string(summary.FinalLevel))
		logger.Get().Info("Level test completed",
			zap.String("session_id", id),
			zap.Int("total_correct", summary.TotalCorrect),
			zap.String("final_level", string(summary.FinalLevel)),
		)
	}

	view := toLevelTestResponse(engine)
	return &view, nil
}

// Restart begins the session again with a fresh shuffle, keeping its id.
func (s *sessionService) Restart(ctx context.Context, id string) (*dto.LevelTestResponse, error) {
	engine, err := s.restore(ctx, id)
	if err != nil {
		return nil, err
	}
	bank, err := s.bank.Load(ctx, false)
	if err != nil {
		return nil, err
	}
	if err := engine.Restart(bank); err != nil {
		return nil, err
	}
	if err := s.store.Save(ctx, engine.State()); err != nil {
		return nil, err
	}
	s.metrics.SessionStarted()

	view := toLevelTestResponse(engine)
	return &view, nil
}

// Result returns the summary of a completed session.
func (s *sessionService) Result(ctx context.Context, id string) (*dto.LevelTestResultResponse, error) {
	engine, err := s.restore(ctx, id)
	if err != nil {
		return nil, err
	}
	summary, err := engine.Summary()
	if errors.Is(err, session.ErrNotCompleted) {
		return nil, domain.NewSessionIncompleteError(id)
	}
	if err != nil {
		return nil, err
	}
	return &dto.LevelTestResultResponse{
		ID:             id,
		TotalCorrect:   summary.TotalCorrect,
		Total:          summary.Total,
		Correct:        summary.Correct,
		FinalLevel:     summary.FinalLevel,
		FinalLevelName: summary.FinalLevel.KoreanName(),
	}, nil
}

func (s *sessionService) restore(ctx context.Context, id string) (*session.Engine, error) {
	state, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	engine, err := session.Restore(state, s.newRand())
	if err != nil {
		logger.Get().Warn("Dropping unusable level test session",
			zap.String("session_id", id),
			zap.Error(err))
		if delErr := s.store.Delete(ctx, id); delErr != nil {
			logger.Get().Error("Failed to delete session", zap.String("session_id", id), zap.Error(delErr))
		}
		return nil, domain.NewSessionNotFoundError(id)
	}
	return engine, nil
}

func toLevelTestResponse(engine *session.Engine) dto.LevelTestResponse {
	st := engine.State()
	view := dto.LevelTestResponse{
		ID:           st.ID,
		Status:       string(st.Status),
		Asked:        st.Asked,
		Total:        session.Length,
		CurrentLevel: st.CurrentLevel,
		LevelName:    st.CurrentLevel.KoreanName(),
		Selected:     st.Selected,
		LastCorrect:  st.LastCorrect,
		Correct:      st.Correct,
		TotalCorrect: st.TotalCorrect,
	}
	if engine.Completed() {
		return view
	}
	if q, ok := engine.CurrentQuestion(); ok {
		view.Question = &dto.LevelTestQuestion{Sentence: q.Sentence, Options: engine.Options()}
		if engine.Answered() {
			view.Question.CorrectAnswer = q.Answer
		}
	}
	return view
}
