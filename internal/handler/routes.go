package handler

import (
	"hangul-quiz/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

// Routes bundles everything RegisterRoutes needs.
type Routes struct {
	Questions   *QuestionHandler
	Sessions    *SessionHandler
	Validation  *middleware.ValidationMiddleware
	RateLimiter *middleware.RateLimiter
}

// RegisterRoutes mounts the public API on app.
func RegisterRoutes(app fiber.Router, r Routes) {
	app.Get("/", r.Questions.Welcome)

	api := app.Group("/api")
	api.Get("/_debug", r.Questions.Debug)
	api.Get("/questions", r.Validation.ValidateLevelQuery(), r.Questions.GetQuestions)
	api.Get("/learning-set", r.Validation.ValidateLearningSetParams(), r.Questions.GetLearningSet)

	generate := api.Group("/generate-questions")
	if r.RateLimiter != nil {
		generate.Use(r.RateLimiter.Handler())
	}
	generate.Post("/prompt", r.Questions.GeneratePrompt)
	generate.Post("/dialog", r.Questions.GenerateDialog)

	levelTest := api.Group("/level-test")
	levelTest.Post("/", r.Sessions.Start)
	byID := levelTest.Group("/:id", r.Validation.ValidateSessionID())
	byID.Get("/", r.Sessions.Get)
	byID.Post("/answer", r.Sessions.Answer)
	byID.Post("/next", r.Sessions.Next)
	byID.Post("/restart", r.Sessions.Restart)
	byID.Get("/result", r.Sessions.Result)
}
