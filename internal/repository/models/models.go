package models

import (
	"database/sql"
	"time"
)

// User is the users table row.
type User struct {
	ID           string       `db:"id"`
	Name         string       `db:"name"`
	Email        string       `db:"email"`
	PasswordHash string       `db:"password_hash"`
	Role         string       `db:"role"`
	CreatedAt    time.Time    `db:"created_at"`
	UpdatedAt    time.Time    `db:"updated_at"`
	DeletedAt    sql.NullTime `db:"deleted_at"`
}

// Induction is the inductions table row.
type Induction struct {
	ID           string         `db:"id"`
	Title        string         `db:"title"`
	Description  sql.NullString `db:"description"`
	IsActive     bool           `db:"is_active"`
	DisplayOrder int            `db:"display_order"`
	CreatedAt    time.Time      `db:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at"`
}

// Chapter is the chapters table row. A chapter's video is either an
// external URL or an uploaded file (path + original filename + duration).
type Chapter struct {
	ID             string         `db:"id"`
	InductionID    string         `db:"induction_id"`
	Title          string         `db:"title"`
	Description    sql.NullString `db:"description"`
	VideoURL       sql.NullString `db:"video_url"`
	VideoPath      sql.NullString `db:"video_path"`
	VideoFilename  sql.NullString `db:"video_filename"`
	VideoDuration  sql.NullInt64  `db:"video_duration"`
	DisplayOrder   int            `db:"display_order"`
	PassPercentage int            `db:"pass_percentage"`
	CreatedAt      time.Time      `db:"created_at"`
	UpdatedAt      time.Time      `db:"updated_at"`
}

// Question is the questions table row.
type Question struct {
	ID            string      `db:"id"`
	ChapterID     string      `db:"chapter_id"`
	QuestionText  string      `db:"question_text"`
	Type          string      `db:"type"`
	Options       OptionList  `db:"options"`
	CorrectAnswer StringSlice `db:"correct_answer"`
	DisplayOrder  int         `db:"display_order"`
	CreatedAt     time.Time   `db:"created_at"`
	UpdatedAt     time.Time   `db:"updated_at"`
}

// Submission is the submissions table row.
type Submission struct {
	ID                string           `db:"id"`
	UserID            string           `db:"user_id"`
	InductionID       string           `db:"induction_id"`
	Status            string           `db:"status"`
	InductionSnapshot SnapshotDocument `db:"induction_snapshot"`
	CompletedAt       sql.NullTime     `db:"completed_at"`
	CreatedAt         time.Time        `db:"created_at"`
	UpdatedAt         time.Time        `db:"updated_at"`
}

// Answer is the answers table row, unique per (submission, question).
type Answer struct {
	ID            string          `db:"id"`
	SubmissionID  string          `db:"submission_id"`
	QuestionID    string          `db:"question_id"`
	AnswerPayload PayloadDocument `db:"answer_payload"`
	CreatedAt     time.Time       `db:"created_at"`
	UpdatedAt     time.Time       `db:"updated_at"`
}

// VideoCompletion is the video_completions table row, unique per
// (user, chapter, submission).
type VideoCompletion struct {
	ID                 string        `db:"id"`
	UserID             string        `db:"user_id"`
	ChapterID          string        `db:"chapter_id"`
	SubmissionID       string        `db:"submission_id"`
	IsCompleted        bool          `db:"is_completed"`
	ProgressPercentage float64       `db:"progress_percentage"`
	WatchedSeconds     int           `db:"watched_seconds"`
	TotalSeconds       sql.NullInt64 `db:"total_seconds"`
	CompletedAt        sql.NullTime  `db:"completed_at"`
	CreatedAt          time.Time     `db:"created_at"`
	UpdatedAt          time.Time     `db:"updated_at"`
}
