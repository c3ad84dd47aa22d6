package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sanjaykhatri/induction-backend/internal/domain"
	"github.com/sanjaykhatri/induction-backend/internal/repository/models"
	"github.com/sanjaykhatri/induction-backend/internal/util"

	"github.com/jmoiron/sqlx"
)

// sqlxSubmissionRepository implements domain.SubmissionRepository using sqlx.
type sqlxSubmissionRepository struct {
	db *sqlx.DB
}

// NewSQLXSubmissionRepository creates a new instance of sqlxSubmissionRepository.
func NewSQLXSubmissionRepository(db *sqlx.DB) domain.SubmissionRepository {
	return &sqlxSubmissionRepository{db: db}
}

func toDomainSubmission(m *models.Submission) *domain.Submission {
	if m == nil {
		return nil
	}
	var completedAt *time.Time
	if m.CompletedAt.Valid {
		t := m.CompletedAt.Time
		completedAt = &t
	}
	return &domain.Submission{
		ID:          m.ID,
		UserID:      m.UserID,
		InductionID: m.InductionID,
		Status:      domain.SubmissionStatus(m.Status),
		Snapshot:    domain.Snapshot(m.InductionSnapshot),
		CompletedAt: completedAt,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func (r *sqlxSubmissionRepository) CreateSubmission(ctx context.Context, submission *domain.Submission) error {
	now := time.Now()
	submission.CreatedAt = now
	submission.UpdatedAt = now

	query := `INSERT INTO submissions (id, user_id, induction_id, status, induction_snapshot, completed_at, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := GetExecutor(ctx, r.db).ExecContext(ctx, query,
		submission.ID, submission.UserID, submission.InductionID, string(submission.Status),
		models.SnapshotDocument(submission.Snapshot),
		util.TimePtrToNullTime(submission.CompletedAt),
		submission.CreatedAt, submission.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create submission: %w", err)
	}
	return nil
}

func (r *sqlxSubmissionRepository) GetSubmissionByID(ctx context.Context, id string) (*domain.Submission, error) {
	var submission models.Submission
	query := `SELECT * FROM submissions WHERE id = $1`
	err := GetExecutor(ctx, r.db).GetContext(ctx, &submission, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get submission: %w", err)
	}
	return toDomainSubmission(&submission), nil
}

func (r *sqlxSubmissionRepository) GetSubmissionByStatus(ctx context.Context, userID, inductionID string, statuses []domain.SubmissionStatus) (*domain.Submission, error) {
	if len(statuses) == 0 {
		return nil, nil
	}
	statusStrings := make([]string, len(statuses))
	for i, s := range statuses {
		statusStrings[i] = string(s)
	}

	query, args, err := sqlx.In(
		`SELECT * FROM submissions WHERE user_id = ? AND induction_id = ? AND status IN (?) ORDER BY created_at DESC LIMIT 1`,
		userID, inductionID, statusStrings,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to build status filter: %w", err)
	}
	query = r.db.Rebind(query)

	var submission models.Submission
	err = GetExecutor(ctx, r.db).GetContext(ctx, &submission, query, args...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get submission by status: %w", err)
	}
	return toDomainSubmission(&submission), nil
}

func (r *sqlxSubmissionRepository) UpdateStatus(ctx context.Context, id string, status domain.SubmissionStatus, completedAt *time.Time) error {
	query := `UPDATE submissions SET status = $1, completed_at = $2, updated_at = $3 WHERE id = $4`
	result, err := GetExecutor(ctx, r.db).ExecContext(ctx, query,
		string(status), util.TimePtrToNullTime(completedAt), time.Now(), id,
	)
	if err != nil {
		return fmt.Errorf("failed to update submission status: %w", err)
	}
	return requireRowAffected(result, "submission", id)
}

func (r *sqlxSubmissionRepository) UpdateSnapshot(ctx context.Context, id string, snapshot domain.Snapshot, status domain.SubmissionStatus) error {
	query := `UPDATE submissions SET induction_snapshot = $1, status = $2, updated_at = $3 WHERE id = $4`
	result, err := GetExecutor(ctx, r.db).ExecContext(ctx, query,
		models.SnapshotDocument(snapshot), string(status), time.Now(), id,
	)
	if err != nil {
		return fmt.Errorf("failed to update submission snapshot: %w", err)
	}
	return requireRowAffected(result, "submission", id)
}

func (r *sqlxSubmissionRepository) ListSubmissions(ctx context.Context, filters domain.SubmissionFilters, limit, offset int) ([]domain.Submission, int, error) {
	where, args := buildSubmissionFilter(filters)

	countQuery := `SELECT COUNT(*) FROM submissions` + where
	var total int
	if err := GetExecutor(ctx, r.db).GetContext(ctx, &total, r.db.Rebind(countQuery), args...); err != nil {
		return nil, 0, fmt.Errorf("failed to count submissions: %w", err)
	}

	listQuery := `SELECT * FROM submissions` + where + ` ORDER BY created_at DESC LIMIT ? OFFSET ?`
	listArgs := append(append([]interface{}{}, args...), limit, offset)

	var rows []models.Submission
	if err := GetExecutor(ctx, r.db).SelectContext(ctx, &rows, r.db.Rebind(listQuery), listArgs...); err != nil {
		return nil, 0, fmt.Errorf("failed to list submissions: %w", err)
	}

	submissions := make([]domain.Submission, 0, len(rows))
	for i := range rows {
		submissions = append(submissions, *toDomainSubmission(&rows[i]))
	}
	return submissions, total, nil
}

func buildSubmissionFilter(filters domain.SubmissionFilters) (string, []interface{}) {
	var clauses []string
	var args []interface{}
	if filters.InductionID != "" {
		clauses = append(clauses, "induction_id = ?")
		args = append(args, filters.InductionID)
	}
	if filters.Status != "" {
		clauses = append(clauses, "status = ?")
		args = append(args, string(filters.Status))
	}
	if filters.DateFrom != nil {
		clauses = append(clauses, "created_at >= ?")
		args = append(args, *filters.DateFrom)
	}
	if filters.DateTo != nil {
		clauses = append(clauses, "created_at <= ?")
		args = append(args, *filters.DateTo)
	}
	if len(clauses) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

func (r *sqlxSubmissionRepository) ListSubmissionsByUser(ctx context.Context, userID string) ([]domain.Submission, error) {
	var rows []models.Submission
	query := `SELECT * FROM submissions WHERE user_id = $1 ORDER BY created_at DESC`
	if err := GetExecutor(ctx, r.db).SelectContext(ctx, &rows, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list submissions by user: %w", err)
	}
	submissions := make([]domain.Submission, 0, len(rows))
	for i := range rows {
		submissions = append(submissions, *toDomainSubmission(&rows[i]))
	}
	return submissions, nil
}

// UpsertAnswer writes the latest answer per (submission, question). The
// ON CONFLICT arm keeps the write atomic under concurrent resubmission.
func (r *sqlxSubmissionRepository) UpsertAnswer(ctx context.Context, answer *domain.Answer) error {
	now := time.Now()
	answer.CreatedAt = now
	answer.UpdatedAt = now

	query := `INSERT INTO answers (id, submission_id, question_id, answer_payload, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6)
	          ON CONFLICT (submission_id, question_id)
	          DO UPDATE SET answer_payload = EXCLUDED.answer_payload, updated_at = EXCLUDED.updated_at`
	_, err := GetExecutor(ctx, r.db).ExecContext(ctx, query,
		answer.ID, answer.SubmissionID, answer.QuestionID,
		models.PayloadDocument(answer.Payload), answer.CreatedAt, answer.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert answer: %w", err)
	}
	return nil
}

func (r *sqlxSubmissionRepository) GetAnswers(ctx context.Context, submissionID string) (map[string]domain.AnswerPayload, error) {
	var rows []models.Answer
	query := `SELECT * FROM answers WHERE submission_id = $1`
	if err := GetExecutor(ctx, r.db).SelectContext(ctx, &rows, query, submissionID); err != nil {
		return nil, fmt.Errorf("failed to get answers: %w", err)
	}
	answers := make(map[string]domain.AnswerPayload, len(rows))
	for i := range rows {
		answers[rows[i].QuestionID] = domain.AnswerPayload(rows[i].AnswerPayload)
	}
	return answers, nil
}
