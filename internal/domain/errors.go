package domain

import (
	"encoding/json"
	"fmt"
)

// ErrorCode represents a specific type of error in the domain
type ErrorCode string

const (
	// Common errors
	CodeInternal     ErrorCode = "INTERNAL_ERROR"
	CodeNotFound     ErrorCode = "NOT_FOUND"
	CodeUnauthorized ErrorCode = "UNAUTHORIZED"
	CodeForbidden    ErrorCode = "FORBIDDEN"

	// Validation errors
	CodeValidation    ErrorCode = "VALIDATION_ERROR"
	CodeMissingField  ErrorCode = "MISSING_FIELD"
	CodeInvalidFormat ErrorCode = "INVALID_FORMAT"
	CodeOutOfRange    ErrorCode = "OUT_OF_RANGE"

	// Business-rule rejections. These are expected outcomes, surfaced with
	// structured detail so the caller can guide the user; they are never
	// treated as failures.
	CodeInductionInactive    ErrorCode = "INDUCTION_INACTIVE"
	CodeAlreadyCompleted     ErrorCode = "ALREADY_COMPLETED"
	CodeIncompleteSubmission ErrorCode = "INCOMPLETE_SUBMISSION"
	CodeVideoNotCompleted    ErrorCode = "VIDEO_NOT_COMPLETED"

	CodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	CodeEmailTaken         ErrorCode = "EMAIL_TAKEN"
)

// DomainError represents a domain-specific error
type DomainError struct {
	Code    ErrorCode              `json:"code"`
	Message string                 `json:"message"`
	Cause   error                  `json:"-"`
	Context map[string]interface{} `json:"-"`
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

// WithContext attaches structured detail for the caller.
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

func NewNotFoundError(message string) *DomainError {
	return NewError(CodeNotFound, message, nil)
}

func NewInternalError(message string, cause error) *DomainError {
	return NewError(CodeInternal, message, cause)
}

// NewUnauthorizedError is returned whenever a user touches a resource they
// do not own.
func NewUnauthorizedError() *DomainError {
	return NewError(CodeUnauthorized, "Unauthorized", nil)
}

func NewForbiddenError(message string) *DomainError {
	return NewError(CodeForbidden, message, nil)
}

func NewInductionInactiveError(inductionID string) *DomainError {
	return NewError(CodeInductionInactive, "Induction is not active", nil).
		WithContext("induction_id", inductionID)
}

func NewAlreadyCompletedError(submissionID string) *DomainError {
	return NewError(CodeAlreadyCompleted, "Submission already completed", nil).
		WithContext("submission_id", submissionID)
}

// NewVideoNotCompletedError rejects an answer batch for a chapter whose
// video has not been watched to the end.
func NewVideoNotCompletedError(chapterID string) *DomainError {
	return NewError(CodeVideoNotCompleted,
		"You must complete watching the video before answering questions.", nil).
		WithContext("chapter_id", chapterID).
		WithContext("video_completed", false)
}

// MissingAnswer identifies one unanswered snapshot question for the
// IncompleteSubmission payload.
type MissingAnswer struct {
	Chapter  string `json:"chapter"`
	Question string `json:"question"`
}

func NewIncompleteSubmissionError(allQuestionsAnswered, allVideosCompleted bool, missing []MissingAnswer) *DomainError {
	return NewError(CodeIncompleteSubmission,
		"Cannot complete submission. Please ensure all videos are watched and all questions are answered.", nil).
		WithContext("all_questions_answered", allQuestionsAnswered).
		WithContext("all_videos_completed", allVideosCompleted).
		WithContext("missing_answers", missing)
}

func NewInvalidCredentialsError() *DomainError {
	return NewError(CodeInvalidCredentials, "Invalid email or password", nil)
}

func NewEmailTakenError(email string) *DomainError {
	return NewError(CodeEmailTaken, fmt.Sprintf("Email already registered: %s", email), nil)
}

// ValidationError represents a single field-level validation failure.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is a collection of validation failures for one request.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "validation failed"
	}
	return e[0].Error()
}

func NewMissingFieldError(field string) ValidationError {
	return ValidationError{Field: field, Message: "is required"}
}

func NewInvalidFormatError(field string, value interface{}) ValidationError {
	return ValidationError{Field: field, Message: fmt.Sprintf("has invalid format: %v", value)}
}

func NewOutOfRangeError(field string, value, min, max interface{}) ValidationError {
	return ValidationError{Field: field, Message: fmt.Sprintf("value %v is out of range [%v, %v]", value, min, max)}
}
