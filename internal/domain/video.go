package domain

import (
	"context"
	"time"
)

// VideoCompletion tracks per-(user, chapter, submission) watch progress.
// Records are created and updated only by progress-reporting calls and
// never deleted except by cascade.
type VideoCompletion struct {
	ID                 string
	UserID             string
	ChapterID          string
	SubmissionID       string
	IsCompleted        bool
	ProgressPercentage float64
	WatchedSeconds     int
	TotalSeconds       *int
	CompletedAt        *time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// VideoCompletionRepository defines the interface for watch-progress
// persistence. Upsert must be atomic on the (user, chapter, submission)
// uniqueness key: last writer wins, no duplicate rows.
type VideoCompletionRepository interface {
	Upsert(ctx context.Context, completion *VideoCompletion) (*VideoCompletion, error)
	// Get returns nil when no record exists; absence means not started,
	// never an error.
	Get(ctx context.Context, userID, chapterID, submissionID string) (*VideoCompletion, error)
	// CompletedChapterIDs returns the set of chapter ids with a completed
	// record for the submission.
	CompletedChapterIDs(ctx context.Context, submissionID string) (map[string]struct{}, error)
}
