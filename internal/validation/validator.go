package validation

import (
	"regexp"
	"strings"

	"github.com/sanjaykhatri/induction-backend/internal/domain"
	"github.com/sanjaykhatri/induction-backend/internal/dto"
)

// Validator provides request validation functionality
type Validator struct{}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateRegisterRequest validates the sign-up request.
func (v *Validator) ValidateRegisterRequest(req *dto.RegisterRequest) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(req.Name) == "" {
		errors = append(errors, domain.NewMissingFieldError("name"))
	} else if len(req.Name) > 255 {
		errors = append(errors, domain.NewOutOfRangeError("name", len(req.Name), 1, 255))
	}

	errors = append(errors, v.validateEmail(req.Email)...)

	if req.Password == "" {
		errors = append(errors, domain.NewMissingFieldError("password"))
	} else if len(req.Password) < 8 {
		errors = append(errors, domain.NewOutOfRangeError("password", len(req.Password), 8, 72))
	}

	return errors
}

// ValidateLoginRequest validates the login request.
func (v *Validator) ValidateLoginRequest(req *dto.LoginRequest) domain.ValidationErrors {
	var errors domain.ValidationErrors

	errors = append(errors, v.validateEmail(req.Email)...)
	if req.Password == "" {
		errors = append(errors, domain.NewMissingFieldError("password"))
	}

	return errors
}

// ValidateVideoProgressRequest validates a watch-progress report.
func (v *Validator) ValidateVideoProgressRequest(req *dto.VideoProgressRequest) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(req.SubmissionID) == "" {
		errors = append(errors, domain.NewMissingFieldError("submission_id"))
	} else if !isValidULID(req.SubmissionID) {
		errors = append(errors, domain.NewInvalidFormatError("submission_id", req.SubmissionID))
	}

	if req.ProgressPercentage < 0 || req.ProgressPercentage > 100 {
		errors = append(errors, domain.NewOutOfRangeError("progress_percentage", req.ProgressPercentage, 0, 100))
	}
	if req.WatchedSeconds < 0 {
		errors = append(errors, domain.NewOutOfRangeError("watched_seconds", req.WatchedSeconds, 0, "unbounded"))
	}
	if req.TotalSeconds != nil && *req.TotalSeconds < 0 {
		errors = append(errors, domain.NewOutOfRangeError("total_seconds", *req.TotalSeconds, 0, "unbounded"))
	}

	return errors
}

// ValidateMarkVideoCompletedRequest validates a force-complete report.
func (v *Validator) ValidateMarkVideoCompletedRequest(req *dto.MarkVideoCompletedRequest) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(req.SubmissionID) == "" {
		errors = append(errors, domain.NewMissingFieldError("submission_id"))
	} else if !isValidULID(req.SubmissionID) {
		errors = append(errors, domain.NewInvalidFormatError("submission_id", req.SubmissionID))
	}
	if req.TotalSeconds != nil && *req.TotalSeconds < 0 {
		errors = append(errors, domain.NewOutOfRangeError("total_seconds", *req.TotalSeconds, 0, "unbounded"))
	}

	return errors
}

// ValidateSubmitAnswersRequest validates a chapter answer batch.
func (v *Validator) ValidateSubmitAnswersRequest(req *dto.SubmitAnswersRequest) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(req.ChapterID) == "" {
		errors = append(errors, domain.NewMissingFieldError("chapter_id"))
	}
	if len(req.Answers) == 0 {
		errors = append(errors, domain.NewMissingFieldError("answers"))
	}
	for _, answer := range req.Answers {
		if strings.TrimSpace(answer.QuestionID) == "" {
			errors = append(errors, domain.NewMissingFieldError("answers.question_id"))
			break
		}
		if answer.AnswerPayload.IsEmpty() {
			errors = append(errors, domain.NewMissingFieldError("answers.answer_payload"))
			break
		}
	}

	return errors
}

// ValidateCreateAdminRequest validates an admin account creation.
func (v *Validator) ValidateCreateAdminRequest(req *dto.CreateAdminRequest) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(req.Name) == "" {
		errors = append(errors, domain.NewMissingFieldError("name"))
	}
	errors = append(errors, v.validateEmail(req.Email)...)
	if req.Password == "" {
		errors = append(errors, domain.NewMissingFieldError("password"))
	} else if len(req.Password) < 8 {
		errors = append(errors, domain.NewOutOfRangeError("password", len(req.Password), 8, 72))
	}
	if req.Role != string(domain.RoleAdmin) && req.Role != string(domain.RoleSuperAdmin) {
		errors = append(errors, domain.NewInvalidFormatError("role", req.Role))
	}

	return errors
}

func (v *Validator) validateEmail(email string) domain.ValidationErrors {
	var errors domain.ValidationErrors
	if strings.TrimSpace(email) == "" {
		errors = append(errors, domain.NewMissingFieldError("email"))
	} else if !isValidEmail(email) {
		errors = append(errors, domain.NewInvalidFormatError("email", email))
	}
	return errors
}

// Helper functions for validation

var (
	emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	ulidPattern  = regexp.MustCompile(`^[0-9A-HJKMNP-TV-Z]{26}$`)
)

func isValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// isValidULID checks if the string is a valid ULID format
func isValidULID(s string) bool {
	return len(s) == 26 && ulidPattern.MatchString(s)
}
