package handler_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"hangul-quiz/internal/adapter"
	"hangul-quiz/internal/adapter/quizgen"
	"hangul-quiz/internal/domain"
	"hangul-quiz/internal/handler"
	"hangul-quiz/internal/middleware"
	"hangul-quiz/internal/repository"
	"hangul-quiz/internal/service"
	"hangul-quiz/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// cannedGenerator answers every prompt with a fenced JSON question set.
type cannedGenerator struct {
	perLevel int
}

func (g cannedGenerator) Complete(context.Context, string) (string, error) {
	payload := map[string][]domain.Question{}
	for _, l := range domain.Levels {
		for i := 0; i < g.perLevel; i++ {
			answer := fmt.Sprintf("%s-정답-%d", l, i)
			payload[string(l)] = append(payload[string(l)], domain.Question{
				Sentence: fmt.Sprintf("%s 문장 %d: ____ 입니다.", l, i),
				Answer:   answer,
				Options:  []string{answer + "a", answer + "b", answer + "c"},
			})
		}
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}
	return "```json\n" + string(raw) + "\n```", nil
}

func (g cannedGenerator) Name() string { return "canned" }

func setupIntegrationApp(t *testing.T) *fiber.App {
	t.Helper()
	bank := repository.NewFileBankRepository(filepath.Join(t.TempDir(), "questions.json"), zap.NewNop())
	store := repository.NewSessionCacheRepository(adapter.NewMemoryCacheAdapter(), time.Hour)
	generator := quizgen.NewGenerator(cannedGenerator{perLevel: 5}, time.Second, zap.NewNop())

	validator := validation.NewValidator(30)
	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler()})
	handler.RegisterRoutes(app, handler.Routes{
		Questions:  handler.NewQuestionHandler(service.NewQuestionService(bank, generator, nil), validator, 5),
		Sessions:   handler.NewSessionHandler(service.NewSessionService(bank, store, nil)),
		Validation: middleware.NewValidationMiddleware(validator),
	})
	return app
}

func TestIntegration_GenerateThenLevelTest(t *testing.T) {
	app := setupIntegrationApp(t)

	// an empty bank cannot start a test
	resp, _ := doRequest(t, app, http.MethodPost, "/api/level-test", nil)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode, "missing bank file is a storage error")

	resp, decoded := doRequest(t, app, http.MethodPost, "/api/generate-questions/prompt", map[string]any{"replace": true})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, map[string]any{"beginner": 5.0, "intermediate": 5.0, "advanced": 5.0}, decoded["counts"])

	resp, decoded = doRequest(t, app, http.MethodGet, "/api/questions?level=advanced&nocache=1", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decoded["advanced"], 5)

	resp, decoded = doRequest(t, app, http.MethodPost, "/api/level-test", nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	id := decoded["id"].(string)

	for i := 0; i < 10; i++ {
		question := decoded["question"].(map[string]any)
		options := question["options"].([]any)
		sentence := question["sentence"].(string)
		level := strings.SplitN(sentence, " ", 2)[0]
		index := strings.TrimSuffix(strings.SplitN(sentence, "문장 ", 2)[1], ": ____ 입니다.")
		want := fmt.Sprintf("%s-정답-%s", level, index)

		choice := -1
		for j, o := range options {
			if o == want {
				choice = j
			}
		}
		require.NotEqual(t, -1, choice, "answer %q missing from %v", want, options)

		resp, answered := doRequest(t, app, http.MethodPost, "/api/level-test/"+id+"/answer", map[string]any{"choice": choice})
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, true, answered["correct"])

		if i < 9 {
			resp, _ = doRequest(t, app, http.MethodGet, "/api/level-test/"+id+"/result", nil)
			assert.Equal(t, http.StatusConflict, resp.StatusCode)
		}

		resp, decoded = doRequest(t, app, http.MethodPost, "/api/level-test/"+id+"/next", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}
	assert.Equal(t, "completed", decoded["status"])

	resp, decoded = doRequest(t, app, http.MethodGet, "/api/level-test/"+id+"/result", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 10.0, decoded["total_correct"])
	assert.Equal(t, "advanced", decoded["final_level"])
	assert.Equal(t, "고급", decoded["final_level_name"])

	resp, decoded = doRequest(t, app, http.MethodPost, "/api/level-test/"+id+"/restart", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, id, decoded["id"])
	assert.Equal(t, "in_progress", decoded["status"])
}

func TestIntegration_LearningSetAfterGenerate(t *testing.T) {
	app := setupIntegrationApp(t)

	resp, _ := doRequest(t, app, http.MethodPost, "/api/generate-questions/dialog", map[string]any{"perLevel": 1})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode, "fill-in-the-blank output is not a dialogue")

	resp, _ = doRequest(t, app, http.MethodPost, "/api/generate-questions/prompt", map[string]any{"perLevel": 5})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, decoded := doRequest(t, app, http.MethodGet, "/api/learning-set", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 10.0, decoded["count"])
}

func TestIntegration_UnknownSession(t *testing.T) {
	app := setupIntegrationApp(t)
	resp, decoded := doRequest(t, app, http.MethodGet, "/api/level-test/"+validID, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, string(domain.CodeSessionNotFound), decoded["code"])
}
