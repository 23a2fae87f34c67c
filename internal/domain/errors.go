package domain

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrorCode represents a specific type of error in the domain
type ErrorCode string

const (
	// Common errors
	CodeInternal      ErrorCode = "INTERNAL_ERROR"
	CodeInvalidInput  ErrorCode = "INVALID_INPUT"
	CodeNotFound      ErrorCode = "NOT_FOUND"
	CodeValidation    ErrorCode = "VALIDATION_ERROR"
	CodeMissingField  ErrorCode = "MISSING_FIELD"
	CodeInvalidFormat ErrorCode = "INVALID_FORMAT"
	CodeOutOfRange    ErrorCode = "OUT_OF_RANGE"
	CodeRateLimited   ErrorCode = "RATE_LIMITED"

	// Question bank and level test errors
	CodeInvalidLevel      ErrorCode = "INVALID_LEVEL"
	CodeInvalidShape      ErrorCode = "INVALID_PAYLOAD_SHAPE"
	CodeStorage           ErrorCode = "STORAGE_ERROR"
	CodeGeneration        ErrorCode = "GENERATION_ERROR"
	CodeNoQuestions       ErrorCode = "NO_QUESTIONS"
	CodeSessionNotFound   ErrorCode = "SESSION_NOT_FOUND"
	CodeSessionIncomplete ErrorCode = "SESSION_INCOMPLETE"
	CodeInvalidChoice     ErrorCode = "INVALID_CHOICE"
)

// DomainError represents a domain-specific error
type DomainError struct {
	Code    ErrorCode              `json:"code"`
	Message string                 `json:"message"`
	Cause   error                  `json:"-"`
	Context map[string]interface{} `json:"context,omitempty"`
}

func (e *DomainError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Cause
}

// MarshalJSON implements the json.Marshaler interface
func (e *DomainError) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}{
		Code:    string(e.Code),
		Message: e.Message,
	})
}

// WithContext attaches a detail rendered to API clients.
func (e *DomainError) WithContext(key string, value interface{}) *DomainError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// NewError creates a new DomainError
func NewError(code ErrorCode, message string, cause error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// Helper functions for common errors
func NewNotFoundError(message string) *DomainError {
	return NewError(CodeNotFound, message, nil)
}

func NewInvalidInputError(message string) *DomainError {
	return NewError(CodeInvalidInput, message, nil)
}

func NewInternalError(message string, err error) *DomainError {
	return NewError(CodeInternal, message, err)
}

func NewInvalidLevelError(level string) *DomainError {
	return NewError(CodeInvalidLevel, "Invalid level", nil).WithContext("level", level)
}

func NewSessionNotFoundError(id string) *DomainError {
	return NewError(CodeSessionNotFound, fmt.Sprintf("Level test session not found: %s", id), nil)
}

func NewSessionIncompleteError(id string) *DomainError {
	return NewError(CodeSessionIncomplete, fmt.Sprintf("Level test session %s is still in progress", id), nil)
}

func NewRateLimitedError() *DomainError {
	return NewError(CodeRateLimited, "Too many requests", nil)
}

// ShapeError reports a generated or incoming payload failing structural validation.
type ShapeError struct {
	Reason string
	Level  Level
}

func (e *ShapeError) Error() string {
	return "invalid payload shape: " + e.Reason
}

// NewShapeError builds a ShapeError for the given reason.
func NewShapeError(reason string) *ShapeError {
	return &ShapeError{Reason: reason}
}

// StorageError reports a missing, unreadable or unparseable persisted bank.
type StorageError struct {
	Op   string
	Path string
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// GenerationError reports a completion that was empty or not parseable as JSON.
type GenerationError struct {
	Reason string
	Err    error
}

func (e *GenerationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("generation failed: %s: %v", e.Reason, e.Err)
	}
	return "generation failed: " + e.Reason
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

// ErrNoQuestions is returned when a quiz cannot start because the bank is empty.
var ErrNoQuestions = errors.New("no questions available")

// ErrInvalidChoice is returned when an answer index does not address a shown option.
var ErrInvalidChoice = errors.New("choice out of range")

// AsDomainError converts the typed errors of this package into a DomainError.
// Errors that are already DomainErrors are returned as is; anything else yields nil.
func AsDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var de *DomainError
	if errors.As(err, &de) {
		return de
	}
	var se *ShapeError
	if errors.As(err, &se) {
		return NewError(CodeInvalidShape, "Invalid payload shape", err).WithContext("reason", se.Reason)
	}
	var ge *GenerationError
	if errors.As(err, &ge) {
		return NewError(CodeGeneration, "Question generation failed", err).WithContext("reason", ge.Reason)
	}
	var ste *StorageError
	if errors.As(err, &ste) {
		return NewError(CodeStorage, "Failed to access question storage", err)
	}
	if errors.Is(err, ErrNoQuestions) {
		return NewError(CodeNoQuestions, "No questions available", err)
	}
	if errors.Is(err, ErrInvalidChoice) {
		return NewError(CodeInvalidChoice, "Choice is out of range", err)
	}
	return nil
}
