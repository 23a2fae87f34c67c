package validation

import (
	"regexp"
	"strings"

	"hangul-quiz/internal/domain"
)

// validULID matches Crockford base32 ULIDs.
var validULID = regexp.MustCompile(`^[0-9A-HJKMNP-TV-Z]{26}$`)

// Validator provides request validation functionality
type Validator struct {
	maxPerLevel int
}

// NewValidator creates a new validator instance. maxPerLevel bounds how many
// questions per level a single generation request may ask for.
func NewValidator(maxPerLevel int) *Validator {
	if maxPerLevel <= 0 {
		maxPerLevel = 30
	}
	return &Validator{maxPerLevel: maxPerLevel}
}

// ValidateLevel validates an optional level parameter. Empty means "all levels".
func (v *Validator) ValidateLevel(level string) domain.ValidationErrors {
	if level == "" {
		return nil
	}
	if _, err := domain.ParseLevel(level); err != nil {
		return domain.ValidationErrors{domain.NewInvalidFormatError("level", level)}
	}
	return nil
}

// ValidateGenerateRequest validates the body of a generation request.
func (v *Validator) ValidateGenerateRequest(perLevel int, prompt string) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if perLevel < 1 || perLevel > v.maxPerLevel {
		errors = append(errors, domain.NewOutOfRangeError("perLevel", perLevel, 1, v.maxPerLevel))
	}

	// A custom prompt is optional, but if given it must carry content
	if prompt != "" && strings.TrimSpace(prompt) == "" {
		errors = append(errors, domain.NewInvalidFormatError("prompt", prompt))
	}
	if len(prompt) > 8000 {
		errors = append(errors, domain.NewOutOfRangeError("prompt", len(prompt), 1, 8000))
	}

	return errors
}

// ValidateSessionID checks that id looks like a ULID.
func (v *Validator) ValidateSessionID(id string) domain.ValidationErrors {
	if strings.TrimSpace(id) == "" {
		return domain.ValidationErrors{domain.NewMissingFieldError("id")}
	}
	if !isValidULID(id) {
		return domain.ValidationErrors{domain.NewInvalidFormatError("id", id)}
	}
	return nil
}

// ValidateLearningSetSize validates the size of a learning set.
func (v *Validator) ValidateLearningSetSize(size int) domain.ValidationErrors {
	if size < 1 || size > 50 {
		return domain.ValidationErrors{domain.NewOutOfRangeError("size", size, 1, 50)}
	}
	return nil
}

// isValidULID checks if the string is a valid ULID format
func isValidULID(s string) bool {
	// ULID is 26 characters long, base32 encoded
	if len(s) != 26 {
		return false
	}
	return validULID.MatchString(s)
}
