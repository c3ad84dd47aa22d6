package dto

import "time"

// ProgressChapter is one chapter's watch state within a progress rollup.
type ProgressChapter struct {
	ID                 string     `json:"id"`
	Title              string     `json:"title"`
	Description        string     `json:"description,omitempty"`
	VideoURL           string     `json:"video_url,omitempty"`
	IsCompleted        bool       `json:"is_completed"`
	ProgressPercentage float64    `json:"progress_percentage"`
	CompletedAt        *time.Time `json:"completed_at"`
	QuestionsCount     int        `json:"questions_count,omitempty"`
}

// ProgressRollup aggregates chapter completion for one submission.
type ProgressRollup struct {
	TotalChapters        int     `json:"total_chapters"`
	CompletedChapters    int     `json:"completed_chapters"`
	CompletionPercentage float64 `json:"completion_percentage"`
}

// UserProgressEntry is one induction attempt in the user's progress
// listing.
type UserProgressEntry struct {
	SubmissionID string            `json:"submission_id"`
	InductionID  string            `json:"induction_id"`
	Induction    InductionResponse `json:"induction"`
	Status       string            `json:"status"`
	Chapters     []ProgressChapter `json:"chapters"`
	Progress     ProgressRollup    `json:"progress"`
	CompletedAt  *time.Time        `json:"completed_at"`
	StartedAt    time.Time         `json:"started_at"`
}

// SubmissionProgressResponse is the per-submission progress detail.
type SubmissionProgressResponse struct {
	Submission SubmissionResponse `json:"submission"`
	Chapters   []ProgressChapter  `json:"chapters"`
	Progress   ProgressRollup     `json:"progress"`
}
