package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/sanjaykhatri/induction-backend/internal/domain"
	"github.com/sanjaykhatri/induction-backend/internal/repository/models"
	"github.com/sanjaykhatri/induction-backend/internal/util"

	"github.com/jmoiron/sqlx"
)

// sqlxVideoCompletionRepository implements domain.VideoCompletionRepository using sqlx.
type sqlxVideoCompletionRepository struct {
	db *sqlx.DB
}

// NewSQLXVideoCompletionRepository creates a new instance of sqlxVideoCompletionRepository.
func NewSQLXVideoCompletionRepository(db *sqlx.DB) domain.VideoCompletionRepository {
	return &sqlxVideoCompletionRepository{db: db}
}

func toDomainVideoCompletion(m *models.VideoCompletion) *domain.VideoCompletion {
	if m == nil {
		return nil
	}
	var totalSeconds *int
	if m.TotalSeconds.Valid {
		v := int(m.TotalSeconds.Int64)
		totalSeconds = &v
	}
	var completedAt *time.Time
	if m.CompletedAt.Valid {
		t := m.CompletedAt.Time
		completedAt = &t
	}
	return &domain.VideoCompletion{
		ID:                 m.ID,
		UserID:             m.UserID,
		ChapterID:          m.ChapterID,
		SubmissionID:       m.SubmissionID,
		IsCompleted:        m.IsCompleted,
		ProgressPercentage: m.ProgressPercentage,
		WatchedSeconds:     m.WatchedSeconds,
		TotalSeconds:       totalSeconds,
		CompletedAt:        completedAt,
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
	}
}

// Upsert writes the watch progress for one (user, chapter, submission)
// key and returns the row as stored. Every reported field overwrites the
// prior record: the last report wins, including one that moves a chapter
// back out of the completed state.
func (r *sqlxVideoCompletionRepository) Upsert(ctx context.Context, completion *domain.VideoCompletion) (*domain.VideoCompletion, error) {
	now := time.Now()
	completion.CreatedAt = now
	completion.UpdatedAt = now

	query := `INSERT INTO video_completions (id, user_id, chapter_id, submission_id, is_completed,
	                                         progress_percentage, watched_seconds, total_seconds,
	                                         completed_at, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	          ON CONFLICT (user_id, chapter_id, submission_id)
	          DO UPDATE SET is_completed = EXCLUDED.is_completed,
	                        progress_percentage = EXCLUDED.progress_percentage,
	                        watched_seconds = EXCLUDED.watched_seconds,
	                        total_seconds = EXCLUDED.total_seconds,
	                        completed_at = EXCLUDED.completed_at,
	                        updated_at = EXCLUDED.updated_at
	          RETURNING *`

	var row models.VideoCompletion
	err := GetExecutor(ctx, r.db).GetContext(ctx, &row, query,
		completion.ID, completion.UserID, completion.ChapterID, completion.SubmissionID,
		completion.IsCompleted, completion.ProgressPercentage, completion.WatchedSeconds,
		util.IntPtrToNullInt64(completion.TotalSeconds),
		util.TimePtrToNullTime(completion.CompletedAt),
		completion.CreatedAt, completion.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert video completion: %w", err)
	}
	return toDomainVideoCompletion(&row), nil
}

func (r *sqlxVideoCompletionRepository) Get(ctx context.Context, userID, chapterID, submissionID string) (*domain.VideoCompletion, error) {
	var row models.VideoCompletion
	query := `SELECT * FROM video_completions WHERE user_id = $1 AND chapter_id = $2 AND submission_id = $3`
	err := GetExecutor(ctx, r.db).GetContext(ctx, &row, query, userID, chapterID, submissionID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get video completion: %w", err)
	}
	return toDomainVideoCompletion(&row), nil
}

func (r *sqlxVideoCompletionRepository) CompletedChapterIDs(ctx context.Context, submissionID string) (map[string]struct{}, error) {
	var ids []string
	query := `SELECT chapter_id FROM video_completions WHERE submission_id = $1 AND is_completed = TRUE`
	if err := GetExecutor(ctx, r.db).SelectContext(ctx, &ids, query, submissionID); err != nil {
		return nil, fmt.Errorf("failed to list completed chapters: %w", err)
	}
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set, nil
}
