// Package session implements the adaptive level test: a fixed-length run of
// questions that promotes the learner through the levels as correct answers
// accumulate. The engine is a plain state machine with no I/O; callers persist
// State between requests.
package session

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"hangul-quiz/internal/domain"
)

const (
	// Length is the number of questions in one level test.
	Length = 10
	// PromotionThreshold is the number of correct answers at a level needed to move up.
	PromotionThreshold = 3
)

// Status is the lifecycle stage of a session.
type Status string

const (
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
)

// ErrNotCompleted is returned by Summary while the session is still running.
var ErrNotCompleted = errors.New("session not completed")

// ErrCorruptState is returned by Restore when saved state does not describe a
// position the engine can reach.
var ErrCorruptState = errors.New("session state is inconsistent")

// State is the serializable working data of one session.
type State struct {
	ID           string             `json:"id"`
	Status       Status             `json:"status"`
	Bank         domain.Bank        `json:"bank"`
	CurrentLevel domain.Level       `json:"current_level"`
	Cursors      domain.LevelCounts `json:"cursors"`
	Correct      domain.LevelCounts `json:"correct"`
	Asked        int                `json:"asked"`
	TotalCorrect int                `json:"total_correct"`
	// Options is the shuffled choice list of the current question.
	Options     []string  `json:"options"`
	Selected    *int      `json:"selected,omitempty"`
	LastCorrect *bool     `json:"last_correct,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Summary is the read-only result of a completed session.
type Summary struct {
	TotalCorrect int                `json:"total_correct"`
	Total        int                `json:"total"`
	Correct      domain.LevelCounts `json:"correct"`
	FinalLevel   domain.Level       `json:"final_level"`
}

// Engine drives a single session. It is not safe for concurrent use.
type Engine struct {
	state State
	rng   *rand.Rand
	now   func() time.Time
}

// New starts a session over a private, shuffled copy of bank. It fails with
// domain.ErrNoQuestions when every level is empty.
func New(bank domain.Bank, rng *rand.Rand) (*Engine, error) {
	e := &Engine{rng: rng, now: time.Now}
	if err := e.reset(bank); err != nil {
		return nil, err
	}
	e.state.CreatedAt = e.state.UpdatedAt
	return e, nil
}

// Restore resumes a session from previously saved state. Cursors must address
// a question of their level and the selection must address a shown option.
func Restore(state State, rng *rand.Rand) (*Engine, error) {
	if err := state.check(); err != nil {
		return nil, err
	}
	return &Engine{state: state, rng: rng, now: time.Now}, nil
}

func (s State) check() error {
	if _, err := domain.ParseLevel(string(s.CurrentLevel)); err != nil {
		return fmt.Errorf("%w: %v", ErrCorruptState, err)
	}
	if s.Status != StatusInProgress && s.Status != StatusCompleted {
		return fmt.Errorf("%w: unknown status %q", ErrCorruptState, s.Status)
	}
	if s.Asked < 0 || s.Asked > Length {
		return fmt.Errorf("%w: asked %d", ErrCorruptState, s.Asked)
	}
	for _, l := range domain.Levels {
		cursor, n := s.Cursors.Get(l), len(s.Bank.Level(l))
		if cursor < 0 || (n > 0 && cursor >= n) {
			return fmt.Errorf("%w: cursor %d of %s", ErrCorruptState, cursor, l)
		}
	}
	if s.Selected != nil && (*s.Selected < 0 || *s.Selected >= len(s.Options)) {
		return fmt.Errorf("%w: selection %d", ErrCorruptState, *s.Selected)
	}
	return nil
}

// State returns the current state. The returned value shares the bank with the engine.
func (e *Engine) State() State {
	return e.state
}

// SetID assigns the session id.
func (e *Engine) SetID(id string) {
	e.state.ID = id
}

// Completed reports whether the session has reached its final question.
func (e *Engine) Completed() bool {
	return e.state.Status == StatusCompleted
}

// Answered reports whether the current question already has a selection.
func (e *Engine) Answered() bool {
	return e.state.Selected != nil
}

// CurrentQuestion returns the question at the cursor of the current level, or
// false when that level has no questions.
func (e *Engine) CurrentQuestion() (domain.Question, bool) {
	pool := e.state.Bank.Level(e.state.CurrentLevel)
	if len(pool) == 0 {
		return domain.Question{}, false
	}
	return pool[e.state.Cursors.Get(e.state.CurrentLevel)], true
}

// Options returns the shuffled choices for the current question. The order is
// fixed for as long as the question stays current.
func (e *Engine) Options() []string {
	out := make([]string, len(e.state.Options))
	copy(out, e.state.Options)
	return out
}

// Answer records the choice at index for the current question and reports
// whether it was correct. Repeated calls before Next, and calls after
// completion, change nothing and return the recorded result.
func (e *Engine) Answer(choice int) (bool, error) {
	if e.Completed() || e.state.Selected != nil {
		return e.state.LastCorrect != nil && *e.state.LastCorrect, nil
	}
	q, ok := e.CurrentQuestion()
	if !ok || choice < 0 || choice >= len(e.state.Options) {
		return false, domain.ErrInvalidChoice
	}

	correct := e.state.Options[choice] == q.Answer
	if correct {
		e.state.TotalCorrect++
		e.state.Correct.Inc(e.state.CurrentLevel)
	}
	e.state.Selected = &choice
	e.state.LastCorrect = &correct
	e.touch()
	return correct, nil
}

// Next moves to the following question, applying the promotion rule. It does
// nothing until the current question is answered, or once the session is
// completed. A level with no questions cannot be answered, so Next is allowed
// to move past it.
func (e *Engine) Next() {
	if e.Completed() {
		return
	}
	if _, ok := e.CurrentQuestion(); ok && e.state.Selected == nil {
		return
	}

	if e.state.Asked+1 >= Length {
		e.state.Asked = Length
		e.state.Status = StatusCompleted
		e.clearSelection()
		e.state.Options = nil
		e.touch()
		return
	}

	next := NextLevel(e.state.CurrentLevel, e.state.Correct)
	if n := len(e.state.Bank.Level(next)); n > 0 {
		cursor := e.state.Cursors.Get(next) + 1
		if cursor >= n {
			cursor = 0
		}
		e.state.Cursors.Set(next, cursor)
	}

	e.state.CurrentLevel = next
	e.state.Asked++
	e.clearSelection()
	e.prepareOptions()
	e.touch()
}

// Summary returns the final result once the session is completed.
func (e *Engine) Summary() (Summary, error) {
	if !e.Completed() {
		return Summary{}, ErrNotCompleted
	}
	return Summary{
		TotalCorrect: e.state.TotalCorrect,
		Total:        Length,
		Correct:      e.state.Correct,
		FinalLevel:   FinalLevel(e.state.Correct),
	}, nil
}

// Restart begins again with a fresh shuffle of bank, keeping the session id.
func (e *Engine) Restart(bank domain.Bank) error {
	return e.reset(bank)
}

func (e *Engine) reset(bank domain.Bank) error {
	if bank.IsEmpty() {
		return domain.ErrNoQuestions
	}

	shuffled := bank.Clone()
	for _, l := range domain.Levels {
		Shuffle(e.rng, shuffled.Level(l))
	}

	e.state = State{
		ID:           e.state.ID,
		Status:       StatusInProgress,
		Bank:         shuffled,
		CurrentLevel: domain.LevelBeginner,
		CreatedAt:    e.state.CreatedAt,
	}
	e.prepareOptions()
	e.touch()
	return nil
}

func (e *Engine) prepareOptions() {
	q, ok := e.CurrentQuestion()
	if !ok {
		e.state.Options = nil
		return
	}
	e.state.Options = choices(q)
	Shuffle(e.rng, e.state.Options)
}

func (e *Engine) clearSelection() {
	e.state.Selected = nil
	e.state.LastCorrect = nil
}

func (e *Engine) touch() {
	e.state.UpdatedAt = e.now()
}

// choices returns up to three distinct distractors followed by the answer.
func choices(q domain.Question) []string {
	out := make([]string, 0, domain.DistractorCount+1)
	seen := map[string]bool{q.Answer: true}
	for _, o := range q.Options {
		if seen[o] || len(out) == domain.DistractorCount {
			continue
		}
		seen[o] = true
		out = append(out, o)
	}
	return append(out, q.Answer)
}

// NextLevel applies the promotion rule to the current level and counts.
func NextLevel(current domain.Level, correct domain.LevelCounts) domain.Level {
	switch {
	case current == domain.LevelBeginner && correct.Beginner >= PromotionThreshold:
		return domain.LevelIntermediate
	case current == domain.LevelIntermediate && correct.Intermediate >= PromotionThreshold:
		return domain.LevelAdvanced
	default:
		return current
	}
}

// FinalLevel derives the learner's level from per-level correct counts.
func FinalLevel(correct domain.LevelCounts) domain.Level {
	switch {
	case correct.Advanced >= PromotionThreshold:
		return domain.LevelAdvanced
	case correct.Intermediate >= PromotionThreshold:
		return domain.LevelIntermediate
	default:
		return domain.LevelBeginner
	}
}

// Shuffle permutes s in place with a uniform Fisher-Yates shuffle drawn from rng.
// A nil rng uses the package-level source.
func Shuffle[T any](rng *rand.Rand, s []T) {
	swap := func(i, j int) { s[i], s[j] = s[j], s[i] }
	if rng == nil {
		rand.Shuffle(len(s), swap)
		return
	}
	rng.Shuffle(len(s), swap)
}

// NewRand returns a PCG-backed generator seeded from seed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}
