package handler

import (
	"hangul-quiz/internal/domain"
	"hangul-quiz/internal/dto"
	"hangul-quiz/internal/logger"
	"hangul-quiz/internal/middleware"
	"hangul-quiz/internal/service"
	"hangul-quiz/internal/validation"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// WelcomeMessage is served on the root path.
const WelcomeMessage = "Welcome to hangul-quiz Server!"

// QuestionHandler handles question bank HTTP requests
type QuestionHandler struct {
	service         service.QuestionService
	validator       *validation.Validator
	defaultPerLevel int
}

// NewQuestionHandler creates a new QuestionHandler instance
func NewQuestionHandler(service service.QuestionService, validator *validation.Validator, defaultPerLevel int) *QuestionHandler {
	if defaultPerLevel <= 0 {
		defaultPerLevel = 10
	}
	return &QuestionHandler{
		service:         service,
		validator:       validator,
		defaultPerLevel: defaultPerLevel,
	}
}

// Welcome godoc
// @Summary Welcome text
// @Tags meta
// @Produce plain
// @Success 200 {string} string
// @Router / [get]
func (h *QuestionHandler) Welcome(c *fiber.Ctx) error {
	return c.SendString(WelcomeMessage)
}

// Debug godoc
// @Summary Show question storage location
// @Tags meta
// @Produce json
// @Success 200 {object} dto.DebugResponse
// @Router /api/_debug [get]
func (h *QuestionHandler) Debug(c *fiber.Ctx) error {
	return c.JSON(h.service.Debug(c.UserContext()))
}

// GetQuestions godoc
// @Summary Get stored questions
// @Description Returns the whole bank, or only one level when level is given
// @Tags questions
// @Produce json
// @Param level query string false "beginner, intermediate or advanced"
// @Param nocache query string false "1 to bypass the cache"
// @Success 200 {object} domain.Bank
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /api/questions [get]
func (h *QuestionHandler) GetQuestions(c *fiber.Ctx) error {
	noCache := c.Query("nocache") == "1"

	level, hasLevel := c.Locals(middleware.LocalLevel).(domain.Level)
	if !hasLevel {
		bank, err := h.service.GetQuestions(c.UserContext(), nil, noCache)
		if err != nil {
			return err
		}
		return c.JSON(bank)
	}

	bank, err := h.service.GetQuestions(c.UserContext(), &level, noCache)
	if err != nil {
		return err
	}
	questions := bank.Level(level)
	if questions == nil {
		questions = []domain.Question{}
	}
	return c.JSON(fiber.Map{string(level): questions})
}

// GeneratePrompt godoc
// @Summary Generate fill-in-the-blank questions
// @Description Asks the completion provider for questions and merges them into the bank
// @Tags questions
// @Accept json
// @Produce json
// @Param request body dto.GenerateRequest true "Generation request"
// @Success 200 {object} dto.GenerateResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 422 {object} middleware.ErrorResponse
// @Failure 429 {object} middleware.ErrorResponse
// @Failure 502 {object} middleware.ErrorResponse
// @Router /api/generate-questions/prompt [post]
func (h *QuestionHandler) GeneratePrompt(c *fiber.Ctx) error {
	return h.generate(c, domain.ModeFillBlank)
}

// GenerateDialog godoc
// @Summary Generate dialogue questions
// @Description Asks the completion provider for two-line dialogues and merges them into the bank
// @Tags questions
// @Accept json
// @Produce json
// @Param request body dto.GenerateRequest true "Generation request"
// @Success 200 {object} dto.GenerateResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 422 {object} middleware.ErrorResponse
// @Failure 429 {object} middleware.ErrorResponse
// @Failure 502 {object} middleware.ErrorResponse
// @Router /api/generate-questions/dialog [post]
func (h *QuestionHandler) GenerateDialog(c *fiber.Ctx) error {
	return h.generate(c, domain.ModeDialogue)
}

func (h *QuestionHandler) generate(c *fiber.Ctx, mode domain.GenerationMode) error {
	var req dto.GenerateRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			logger.Get().Warn("Failed to parse generate request", zap.Error(err))
			return domain.NewInvalidInputError("Invalid request body")
		}
	}

	perLevel := h.defaultPerLevel
	if req.PerLevel != nil {
		perLevel = *req.PerLevel
	}
	if errs := h.validator.ValidateGenerateRequest(perLevel, req.Prompt); len(errs) > 0 {
		return errs
	}

	result, err := h.service.Generate(c.UserContext(), service.GenerateRequest{
		Mode:     mode,
		Replace:  req.Replace,
		PerLevel: perLevel,
		Prompt:   req.Prompt,
	})
	if err != nil {
		return err
	}

	return c.JSON(dto.GenerateResponse{
		OK:       true,
		Replaced: result.Replaced,
		Mode:     string(mode),
		Counts:   result.Counts,
	})
}

// GetLearningSet godoc
// @Summary Get a mixed-level learning set
// @Tags learning
// @Produce json
// @Param size query int false "Number of cards (default 10)"
// @Success 200 {object} dto.LearningSetResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 503 {object} middleware.ErrorResponse
// @Router /api/learning-set [get]
func (h *QuestionHandler) GetLearningSet(c *fiber.Ctx) error {
	size, _ := c.Locals(middleware.LocalLearningSize).(int)
	set, err := h.service.LearningSet(c.UserContext(), size)
	if err != nil {
		return err
	}
	return c.JSON(set)
}
