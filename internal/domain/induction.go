package domain

import (
	"context"
	"time"
)

// DefaultPassPercentage is applied when a chapter does not set its own
// quiz threshold.
const DefaultPassPercentage = 70

// QuestionType is the closed set of quiz question kinds.
type QuestionType string

const (
	QuestionSingleChoice QuestionType = "single_choice"
	QuestionMultiChoice  QuestionType = "multi_choice"
	QuestionText         QuestionType = "text"
)

// Valid reports whether t is a known question type.
func (t QuestionType) Valid() bool {
	switch t {
	case QuestionSingleChoice, QuestionMultiChoice, QuestionText:
		return true
	}
	return false
}

// Option is one selectable choice of a choice question.
type Option struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// Induction is a course consisting of ordered chapters. Admins may mutate
// it at any time, including after users have started it; running attempts
// are anchored to their snapshot instead.
type Induction struct {
	ID           string
	Title        string
	Description  string
	IsActive     bool
	DisplayOrder int
	Chapters     []Chapter
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Validate validates the induction
func (i *Induction) Validate() error {
	if i.Title == "" {
		return ValidationErrors{NewMissingFieldError("title")}
	}
	return nil
}

// Chapter is a video + quiz unit within an induction. The video is either
// an external URL or an uploaded file referenced by VideoPath.
type Chapter struct {
	ID             string
	InductionID    string
	Title          string
	Description    string
	VideoURL       string
	VideoPath      string
	VideoFilename  string
	VideoDuration  int
	DisplayOrder   int
	PassPercentage int
	Questions      []Question
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Validate validates the chapter
func (c *Chapter) Validate() error {
	var errs ValidationErrors
	if c.InductionID == "" {
		errs = append(errs, NewMissingFieldError("induction_id"))
	}
	if c.Title == "" {
		errs = append(errs, NewMissingFieldError("title"))
	}
	if c.PassPercentage < 0 || c.PassPercentage > 100 {
		errs = append(errs, NewOutOfRangeError("pass_percentage", c.PassPercentage, 0, 100))
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Question belongs to one chapter. CorrectAnswer is always normalized to
// an array of strings: one element for single_choice and text, N elements
// for multi_choice. It is visible only to admin-facing reads.
type Question struct {
	ID            string
	ChapterID     string
	QuestionText  string
	Type          QuestionType
	Options       []Option
	CorrectAnswer []string
	DisplayOrder  int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Validate validates the question
func (q *Question) Validate() error {
	var errs ValidationErrors
	if q.ChapterID == "" {
		errs = append(errs, NewMissingFieldError("chapter_id"))
	}
	if q.QuestionText == "" {
		errs = append(errs, NewMissingFieldError("question_text"))
	}
	if !q.Type.Valid() {
		errs = append(errs, NewInvalidFormatError("type", q.Type))
	}
	if q.Type != QuestionText && len(q.Options) == 0 {
		errs = append(errs, NewMissingFieldError("options"))
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// InductionRepository defines the interface for induction, chapter and
// question persistence. Reads that feed the snapshot builder and the
// reconciliation engine return chapters and questions ordered by
// display_order.
type InductionRepository interface {
	CreateInduction(ctx context.Context, induction *Induction) error
	GetInductionByID(ctx context.Context, id string) (*Induction, error)
	// GetInductionWithContent loads the induction plus its chapters and
	// questions, both ordered by display_order.
	GetInductionWithContent(ctx context.Context, id string) (*Induction, error)
	ListInductions(ctx context.Context) ([]Induction, error)
	ListActiveInductions(ctx context.Context) ([]Induction, error)
	UpdateInduction(ctx context.Context, induction *Induction) error
	DeleteInduction(ctx context.Context, id string) error

	CreateChapter(ctx context.Context, chapter *Chapter) error
	GetChapterByID(ctx context.Context, id string) (*Chapter, error)
	ListChaptersByInduction(ctx context.Context, inductionID string) ([]Chapter, error)
	// ListChapterIDs returns the ids of the induction's current live
	// chapters; used by new-chapter detection.
	ListChapterIDs(ctx context.Context, inductionID string) ([]string, error)
	// ListChaptersWithQuestions loads the given chapters with their
	// questions, ordered by display_order; used to build snapshot
	// fragments during reconciliation.
	ListChaptersWithQuestions(ctx context.Context, chapterIDs []string) ([]Chapter, error)
	UpdateChapter(ctx context.Context, chapter *Chapter) error
	DeleteChapter(ctx context.Context, id string) error

	CreateQuestion(ctx context.Context, question *Question) error
	GetQuestionByID(ctx context.Context, id string) (*Question, error)
	ListQuestionsByChapter(ctx context.Context, chapterID string) ([]Question, error)
	UpdateQuestion(ctx context.Context, question *Question) error
	DeleteQuestion(ctx context.Context, id string) error
}
