package dto

import "time"

// VideoProgressRequest represents a watch-progress report for a chapter.
type VideoProgressRequest struct {
	SubmissionID       string  `json:"submission_id"`
	ProgressPercentage float64 `json:"progress_percentage"`
	WatchedSeconds     int     `json:"watched_seconds"`
	TotalSeconds       *int    `json:"total_seconds"`
}

// MarkVideoCompletedRequest force-marks a chapter's video as watched.
type MarkVideoCompletedRequest struct {
	SubmissionID string `json:"submission_id"`
	TotalSeconds *int   `json:"total_seconds"`
}

// VideoCompletionResponse represents a watch-progress record.
type VideoCompletionResponse struct {
	ID                 string     `json:"id"`
	UserID             string     `json:"user_id"`
	ChapterID          string     `json:"chapter_id"`
	SubmissionID       string     `json:"submission_id"`
	IsCompleted        bool       `json:"is_completed"`
	ProgressPercentage float64    `json:"progress_percentage"`
	WatchedSeconds     int        `json:"watched_seconds"`
	TotalSeconds       *int       `json:"total_seconds"`
	CompletedAt        *time.Time `json:"completed_at"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

// CheckCompletionResponse reports whether a chapter's video is watched.
// Absence of a record reads as not started, never an error.
type CheckCompletionResponse struct {
	IsCompleted        bool                     `json:"is_completed"`
	ProgressPercentage float64                  `json:"progress_percentage"`
	Completion         *VideoCompletionResponse `json:"completion"`
}
