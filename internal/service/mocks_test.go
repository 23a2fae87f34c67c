package service

import (
	"context"
	"sync"

	"hangul-quiz/internal/adapter/quizgen"
	"hangul-quiz/internal/domain"
	"hangul-quiz/internal/session"

	"github.com/stretchr/testify/mock"
)

// --- MockBankRepository ---
type MockBankRepository struct {
	mock.Mock
}

func (m *MockBankRepository) Load(ctx context.Context, force bool) (domain.Bank, error) {
	args := m.Called(ctx, force)
	return args.Get(0).(domain.Bank), args.Error(1)
}

func (m *MockBankRepository) Save(ctx context.Context, bank domain.Bank) error {
	args := m.Called(ctx, bank)
	return args.Error(0)
}

func (m *MockBankRepository) Path() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockBankRepository) Exists() bool {
	args := m.Called()
	return args.Bool(0)
}

// --- MockQuestionGenerator ---
type MockQuestionGenerator struct {
	GenerateFunc func(ctx context.Context, req quizgen.Request) (any, error)
}

func (m *MockQuestionGenerator) Generate(ctx context.Context, req quizgen.Request) (any, error) {
	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, req)
	}
	panic("MockQuestionGenerator.GenerateFunc not implemented")
}

func (m *MockQuestionGenerator) Provider() string {
	return "mock"
}

// memoryStore is a map-backed SessionStore.
type memoryStore struct {
	mu     sync.Mutex
	states map[string]session.State
	saves  int
}

func newMemoryStore() *memoryStore {
	return &memoryStore{states: make(map[string]session.State)}
}

func (s *memoryStore) Get(_ context.Context, id string) (session.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.states[id]
	if !ok {
		return session.State{}, domain.NewSessionNotFoundError(id)
	}
	return st, nil
}

func (s *memoryStore) Save(_ context.Context, st session.State) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.states[st.ID] = st
	s.saves++
	return nil
}

func (s *memoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.states, id)
	return nil
}

func question(sentence, answer string) domain.Question {
	return domain.Question{
		Sentence: sentence,
		Answer:   answer,
		Options:  []string{answer + "-a", answer + "-b", answer + "-c"},
	}
}

func sampleBank(perLevel int) domain.Bank {
	bank := domain.EmptyBank()
	for _, l := range domain.Levels {
		qs := make([]domain.Question, 0, perLevel)
		for i := 0; i < perLevel; i++ {
			name := string(l) + string(rune('A'+i))
			qs = append(qs, question(name+" ____ 입니다.", name))
		}
		bank.SetLevel(l, qs)
	}
	return bank
}

// payloadFor builds a decoded generation payload with n valid items per level.
func payloadFor(n int, sentencePrefix string) map[string]any {
	out := map[string]any{}
	for _, l := range domain.Levels {
		items := make([]any, 0, n)
		for i := 0; i < n; i++ {
			name := sentencePrefix + string(l) + string(rune('A'+i))
			items = append(items, map[string]any{
				"sentence": name + " ____ 했어요.",
				"answer":   name,
				"options":  []any{name + "1", name + "2", name + "3"},
			})
		}
		out[string(l)] = items
	}
	return out
}
