//go:build cucumber

package session

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/cucumber/godog"

	"hangul-quiz/internal/domain"
)

// TestLevelTestScenarios runs the level test feature scenarios.
func TestLevelTestScenarios(t *testing.T) {
	suite := godog.TestSuite{
		Name:                "level-test",
		ScenarioInitializer: InitializeLevelTestScenario,
		Options: &godog.Options{
			Format:    "pretty",
			Paths:     []string{filepath.Join("testdata", "level_test.feature")},
			Strict:    true,
			TestingT:  t,
			Randomize: 0,
		},
	}
	if suite.Run() != 0 {
		t.Fatalf("non-zero godog status")
	}
}

// InitializeLevelTestScenario wires steps for level test scenarios.
func InitializeLevelTestScenario(ctx *godog.ScenarioContext) {
	state := &levelTestScenarioState{}
	ctx.Before(func(ctx context.Context, _ *godog.Scenario) (context.Context, error) {
		state.engine = nil
		return ctx, nil
	})

	ctx.Step(`^a bank with (\d+) questions per level$`, state.givenBank)
	ctx.Step(`^I answer (\d+) questions correctly$`, state.answerCorrectly)
	ctx.Step(`^I answer (\d+) questions wrongly$`, state.answerWrongly)
	ctx.Step(`^I press next$`, state.pressNext)
	ctx.Step(`^the current level is "([^"]+)"$`, state.thenLevel)
	ctx.Step(`^the test is completed$`, state.thenCompleted)
	ctx.Step(`^the summary shows (\d+) correct out of (\d+)$`, state.thenSummary)
	ctx.Step(`^the final level is "([^"]+)"$`, state.thenFinalLevel)
}

type levelTestScenarioState struct {
	engine *Engine
}

func (s *levelTestScenarioState) givenBank(n int) error {
	bank := domain.EmptyBank()
	for _, l := range domain.Levels {
		qs := make([]domain.Question, n)
		for i := range qs {
			qs[i] = domain.Question{
				Sentence: fmt.Sprintf("%s %d ____", l, i),
				Answer:   fmt.Sprintf("%s-%d", l, i),
				Options:  []string{"가", "나", "다"},
			}
		}
		bank.SetLevel(l, qs)
	}
	e, err := New(bank, NewRand(1))
	if err != nil {
		return err
	}
	s.engine = e
	return nil
}

func (s *levelTestScenarioState) answer(n int, correct bool) error {
	for i := 0; i < n; i++ {
		q, ok := s.engine.CurrentQuestion()
		if !ok {
			return fmt.Errorf("no current question at step %d", i)
		}
		choice := -1
		for j, o := range s.engine.Options() {
			if (o == q.Answer) == correct {
				choice = j
				break
			}
		}
		if _, err := s.engine.Answer(choice); err != nil {
			return err
		}
		s.engine.Next()
	}
	return nil
}

func (s *levelTestScenarioState) answerCorrectly(n int) error {
	return s.answer(n, true)
}

func (s *levelTestScenarioState) answerWrongly(n int) error {
	return s.answer(n, false)
}

func (s *levelTestScenarioState) pressNext() error {
	s.engine.Next()
	return nil
}

func (s *levelTestScenarioState) thenLevel(level string) error {
	if got := s.engine.State().CurrentLevel; string(got) != level {
		return fmt.Errorf("expected level %s, got %s", level, got)
	}
	return nil
}

func (s *levelTestScenarioState) thenCompleted() error {
	if !s.engine.Completed() {
		return fmt.Errorf("expected completed session, asked %d", s.engine.State().Asked)
	}
	return nil
}

func (s *levelTestScenarioState) thenSummary(correct, total int) error {
	summary, err := s.engine.Summary()
	if err != nil {
		return err
	}
	if summary.TotalCorrect != correct || summary.Total != total {
		return fmt.Errorf("expected %d/%d, got %d/%d", correct, total, summary.TotalCorrect, summary.Total)
	}
	return nil
}

func (s *levelTestScenarioState) thenFinalLevel(level string) error {
	summary, err := s.engine.Summary()
	if err != nil {
		return err
	}
	if string(summary.FinalLevel) != level {
		return fmt.Errorf("expected final level %s, got %s", level, summary.FinalLevel)
	}
	return nil
}
