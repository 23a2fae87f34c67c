package handler

import (
	"hangul-quiz/internal/domain"
	"hangul-quiz/internal/dto"
	"hangul-quiz/internal/middleware"
	"hangul-quiz/internal/service"

	"github.com/gofiber/fiber/v2"
)

// SessionHandler handles level test HTTP requests
type SessionHandler struct {
	service service.SessionService
}

// NewSessionHandler creates a new SessionHandler instance
func NewSessionHandler(service service.SessionService) *SessionHandler {
	return &SessionHandler{service: service}
}

func sessionID(c *fiber.Ctx) string {
	if id, ok := c.Locals(middleware.LocalSessionID).(string); ok {
		return id
	}
	return c.Params("id")
}

// Start godoc
// @Summary Start a level test
// @Tags level-test
// @Produce json
// @Success 201 {object} dto.LevelTestResponse
// @Failure 503 {object} middleware.ErrorResponse
// @Router /api/level-test [post]
func (h *SessionHandler) Start(c *fiber.Ctx) error {
	view, err := h.service.Start(c.UserContext())
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(view)
}

// Get godoc
// @Summary Get a level test
// @Tags level-test
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} dto.LevelTestResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /api/level-test/{id} [get]
func (h *SessionHandler) Get(c *fiber.Ctx) error {
	view, err := h.service.Get(c.UserContext(), sessionID(c))
	if err != nil {
		return err
	}
	return c.JSON(view)
}

// Answer godoc
// @Summary Answer the current question
// @Tags level-test
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body dto.AnswerRequest true "Selected option index"
// @Success 200 {object} dto.AnswerResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /api/level-test/{id}/answer [post]
func (h *SessionHandler) Answer(c *fiber.Ctx) error {
	var req dto.AnswerRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("Invalid request body")
	}
	if req.Choice == nil {
		return domain.ValidationErrors{domain.NewMissingFieldError("choice")}
	}

	res, err := h.service.Answer(c.UserContext(), sessionID(c), *req.Choice)
	if err != nil {
		return err
	}
	return c.JSON(res)
}

// Next godoc
// @Summary Move to the next question
// @Tags level-test
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} dto.LevelTestResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /api/level-test/{id}/next [post]
func (h *SessionHandler) Next(c *fiber.Ctx) error {
	view, err := h.service.Next(c.UserContext(), sessionID(c))
	if err != nil {
		return err
	}
	return c.JSON(view)
}

// Restart godoc
// @Summary Restart a level test
// @Tags level-test
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} dto.LevelTestResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /api/level-test/{id}/restart [post]
func (h *SessionHandler) Restart(c *fiber.Ctx) error {
	view, err := h.service.Restart(c.UserContext(), sessionID(c))
	if err != nil {
		return err
	}
	return c.JSON(view)
}

// Result godoc
// @Summary Get the result of a completed level test
// @Tags level-test
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} dto.LevelTestResultResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Failure 409 {object} middleware.ErrorResponse
// @Router /api/level-test/{id}/result [get]
func (h *SessionHandler) Result(c *fiber.Ctx) error {
	res, err := h.service.Result(c.UserContext(), sessionID(c))
	if err != nil {
		return err
	}
	return c.JSON(res)
}
