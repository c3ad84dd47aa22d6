package dto

import (
	"github.com/sanjaykhatri/induction-backend/internal/domain"
)

// SubmissionListFilters narrows the admin submission listing. These are
// query parameters.
type SubmissionListFilters struct {
	InductionID string `query:"induction_id"`
	Status      string `query:"status"`
	DateFrom    string `query:"date_from"` // Format: YYYY-MM-DD
	DateTo      string `query:"date_to"`   // Format: YYYY-MM-DD
	Page        int    `query:"page"`
	Limit       int    `query:"limit"`
}

// PaginationInfo defines pagination details for responses.
type PaginationInfo struct {
	TotalItems  int `json:"total_items"`
	Limit       int `json:"limit"`
	CurrentPage int `json:"current_page"`
	TotalPages  int `json:"total_pages"`
}

// SubmissionListResponse is the paginated admin submission listing.
type SubmissionListResponse struct {
	Submissions []SubmissionResponse `json:"submissions"`
	Pagination  PaginationInfo       `json:"pagination"`
}

// QuestionReview is one graded question within a submission review.
type QuestionReview struct {
	QuestionID      string                `json:"question_id"`
	ChapterID       string                `json:"chapter_id"`
	ChapterTitle    string                `json:"chapter_title"`
	QuestionText    string                `json:"question_text"`
	QuestionType    string                `json:"question_type"`
	QuestionOptions []domain.Option       `json:"question_options"`
	CorrectAnswer   []string              `json:"correct_answer"`
	UserAnswer      *domain.AnswerPayload `json:"user_answer"`
	IsCorrect       bool                  `json:"is_correct"`
	IsAnswered      bool                  `json:"is_answered"`
}

// ReviewStatistics aggregates grading over one submission.
type ReviewStatistics struct {
	TotalQuestions  int     `json:"total_questions"`
	CorrectAnswers  int     `json:"correct_answers"`
	WrongAnswers    int     `json:"wrong_answers"`
	Unanswered      int     `json:"unanswered"`
	ScorePercentage float64 `json:"score_percentage"`
}

// SubmissionReviewResponse is the admin view of one submission: every
// snapshot question graded against the recorded answer.
type SubmissionReviewResponse struct {
	Submission SubmissionResponse `json:"submission"`
	Statistics ReviewStatistics   `json:"statistics"`
	Questions  []QuestionReview   `json:"questions"`
}

// CreateAdminRequest represents the request body for creating an admin
// account.
type CreateAdminRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// UpdateAdminRequest represents the request body for updating an admin
// account. Absent fields keep their stored value.
type UpdateAdminRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
	Role     *string `json:"role"`
}
