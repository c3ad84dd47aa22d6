package dto

import (
	"time"

	"github.com/sanjaykhatri/induction-backend/internal/domain"
)

// SubmissionResponse represents a submission in the API response. The
// snapshot is returned verbatim so the client renders exactly what the
// user started with.
type SubmissionResponse struct {
	ID          string             `json:"id"`
	UserID      string             `json:"user_id"`
	InductionID string             `json:"induction_id"`
	Status      string             `json:"status"`
	Snapshot    domain.Snapshot    `json:"induction_snapshot"`
	User        *UserResponse      `json:"user,omitempty"`
	Induction   *InductionResponse `json:"induction,omitempty"`
	CompletedAt *time.Time         `json:"completed_at"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

// StartInductionResponse represents the outcome of starting an induction.
// HasNewChapters and Completed are only set on the already-completed
// paths; a fresh or resumed attempt returns just the submission.
type StartInductionResponse struct {
	Message        string             `json:"message,omitempty"`
	Submission     SubmissionResponse `json:"submission"`
	HasNewChapters bool               `json:"has_new_chapters,omitempty"`
	Completed      bool               `json:"completed,omitempty"`
}

// AnswerInput is one answer within a chapter submission batch.
type AnswerInput struct {
	QuestionID    string               `json:"question_id"`
	AnswerPayload domain.AnswerPayload `json:"answer_payload"`
}

// SubmitAnswersRequest represents the request body for submitting a
// chapter's answers.
type SubmitAnswersRequest struct {
	ChapterID string        `json:"chapter_id"`
	Answers   []AnswerInput `json:"answers"`
}

// ChapterRef is a minimal chapter reference used in resume points.
type ChapterRef struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	DisplayOrder int    `json:"display_order"`
}

// QuestionRef is a minimal question reference used in resume points.
type QuestionRef struct {
	ID           string `json:"id"`
	QuestionText string `json:"question_text"`
}

// SubmitAnswersResponse represents the outcome of an answer submission.
type SubmitAnswersResponse struct {
	Message               string      `json:"message"`
	AllQuestionsAnswered  bool        `json:"all_questions_answered"`
	Status                string      `json:"status"`
	LastUnansweredChapter *ChapterRef `json:"last_unanswered_chapter"`
}

// CompleteSubmissionResponse represents the outcome of an explicit
// completion attempt. A merge of new chapters is reported as a non-error
// outcome so the client can route the user back into the content.
type CompleteSubmissionResponse struct {
	Message        string             `json:"message"`
	Submission     SubmissionResponse `json:"submission"`
	HasNewChapters bool               `json:"has_new_chapters,omitempty"`
}

// LastUnansweredResponse represents the resume point of a submission.
type LastUnansweredResponse struct {
	LastUnansweredChapter  *ChapterRef  `json:"last_unanswered_chapter"`
	LastUnansweredQuestion *QuestionRef `json:"last_unanswered_question"`
}
