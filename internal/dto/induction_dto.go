package dto

import (
	"time"

	"github.com/sanjaykhatri/induction-backend/internal/domain"
)

// InductionResponse represents an induction in the API response.
type InductionResponse struct {
	ID           string            `json:"id"`
	Title        string            `json:"title"`
	Description  string            `json:"description,omitempty"`
	IsActive     bool              `json:"is_active"`
	DisplayOrder int               `json:"display_order"`
	Chapters     []ChapterResponse `json:"chapters,omitempty"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
}

// ChapterResponse represents a chapter in the API response. VideoURL is
// always resolved: uploaded files win over external URLs.
type ChapterResponse struct {
	ID             string             `json:"id"`
	InductionID    string             `json:"induction_id"`
	Title          string             `json:"title"`
	Description    string             `json:"description,omitempty"`
	VideoURL       string             `json:"video_url,omitempty"`
	VideoFilename  string             `json:"video_filename,omitempty"`
	VideoDuration  int                `json:"video_duration,omitempty"`
	DisplayOrder   int                `json:"display_order"`
	PassPercentage int                `json:"pass_percentage"`
	Questions      []QuestionResponse `json:"questions,omitempty"`
	CreatedAt      time.Time          `json:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at"`
}

// QuestionResponse represents a question in the API response.
// CorrectAnswer is populated only on admin-facing reads.
type QuestionResponse struct {
	ID            string          `json:"id"`
	ChapterID     string          `json:"chapter_id"`
	QuestionText  string          `json:"question_text"`
	Type          string          `json:"type"`
	Options       []domain.Option `json:"options"`
	CorrectAnswer []string        `json:"correct_answer,omitempty"`
	DisplayOrder  int             `json:"display_order"`
}

// CreateInductionRequest represents the request body for creating an induction.
type CreateInductionRequest struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	IsActive     *bool  `json:"is_active"`
	DisplayOrder int    `json:"display_order"`
}

// UpdateInductionRequest represents the request body for updating an
// induction. Absent fields keep their stored value.
type UpdateInductionRequest struct {
	Title        *string `json:"title"`
	Description  *string `json:"description"`
	IsActive     *bool   `json:"is_active"`
	DisplayOrder *int    `json:"display_order"`
}

// CreateChapterRequest represents the non-file fields of the chapter
// create form. The video file itself arrives as a multipart part.
type CreateChapterRequest struct {
	Title          string `json:"title" form:"title"`
	Description    string `json:"description" form:"description"`
	VideoURL       string `json:"video_url" form:"video_url"`
	DisplayOrder   int    `json:"display_order" form:"display_order"`
	PassPercentage *int   `json:"pass_percentage" form:"pass_percentage"`
}

// UpdateChapterRequest represents the chapter update form.
type UpdateChapterRequest struct {
	Title          *string `json:"title" form:"title"`
	Description    *string `json:"description" form:"description"`
	VideoURL       *string `json:"video_url" form:"video_url"`
	DisplayOrder   *int    `json:"display_order" form:"display_order"`
	PassPercentage *int    `json:"pass_percentage" form:"pass_percentage"`
}

// CreateQuestionRequest represents the request body for creating a question.
type CreateQuestionRequest struct {
	QuestionText  string          `json:"question_text"`
	Type          string          `json:"type"`
	Options       []domain.Option `json:"options"`
	CorrectAnswer []string        `json:"correct_answer"`
	DisplayOrder  int             `json:"display_order"`
}

// UpdateQuestionRequest represents the request body for updating a question.
type UpdateQuestionRequest struct {
	QuestionText  *string          `json:"question_text"`
	Type          *string          `json:"type"`
	Options       *[]domain.Option `json:"options"`
	CorrectAnswer *[]string        `json:"correct_answer"`
	DisplayOrder  *int             `json:"display_order"`
}

// ReorderRequest moves an induction, chapter or question to a new
// position.
type ReorderRequest struct {
	DisplayOrder int `json:"display_order"`
}

// ImportResult summarizes a CSV import.
type ImportResult struct {
	Message       string            `json:"message"`
	Induction     InductionResponse `json:"induction"`
	ChapterCount  int               `json:"chapter_count"`
	QuestionCount int               `json:"question_count"`
}
