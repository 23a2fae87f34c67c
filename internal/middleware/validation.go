package middleware

import (
	"strconv"

	"hangul-quiz/internal/domain"
	"hangul-quiz/internal/validation"

	"github.com/gofiber/fiber/v2"
)

const (
	LocalLevel        = "validated_level"
	LocalSessionID    = "validated_session_id"
	LocalLearningSize = "validated_size"

	defaultLearningSetSize = 10
)

// ValidationMiddleware provides request validation middleware
type ValidationMiddleware struct {
	validator *validation.Validator
}

// NewValidationMiddleware creates a new validation middleware instance
func NewValidationMiddleware(validator *validation.Validator) *ValidationMiddleware {
	return &ValidationMiddleware{validator: validator}
}

// ValidateLevelQuery checks the optional ?level= parameter. An unknown level is
// answered with INVALID_LEVEL; a valid one is stored as a domain.Level.
func (vm *ValidationMiddleware) ValidateLevelQuery() fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := c.Query("level")
		if errs := vm.validator.ValidateLevel(raw); len(errs) > 0 {
			return domain.NewInvalidLevelError(raw)
		}
		if raw != "" {
			c.Locals(LocalLevel, domain.Level(raw))
		}
		return c.Next()
	}
}

// ValidateSessionID validates the :id path parameter of level test routes.
func (vm *ValidationMiddleware) ValidateSessionID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if errs := vm.validator.ValidateSessionID(id); len(errs) > 0 {
			return errs
		}
		c.Locals(LocalSessionID, id)
		return c.Next()
	}
}

// ValidateLearningSetParams validates the optional ?size= parameter.
func (vm *ValidationMiddleware) ValidateLearningSetParams() fiber.Handler {
	return func(c *fiber.Ctx) error {
		size := defaultLearningSetSize
		if raw := c.Query("size"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil {
				return domain.ValidationErrors{domain.NewInvalidFormatError("size", raw)}
			}
			size = n
		}
		if errs := vm.validator.ValidateLearningSetSize(size); len(errs) > 0 {
			return errs
		}
		c.Locals(LocalLearningSize, size)
		return c.Next()
	}
}
