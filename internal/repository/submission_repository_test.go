package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/sanjaykhatri/induction-backend/internal/domain"
	"github.com/sanjaykhatri/induction-backend/internal/repository/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func submissionColumns() []string {
	return []string{"id", "user_id", "induction_id", "status", "induction_snapshot", "completed_at", "created_at", "updated_at"}
}

const snapshotJSON = `{
	"induction": {"id": "ind-1", "title": "Safety Onboarding", "description": ""},
	"chapters": [
		{
			"id": "ch-1",
			"title": "Fire Safety",
			"description": "",
			"video_url": "https://videos.example.com/fire.mp4",
			"video_path": null,
			"video_filename": null,
			"video_duration": 300,
			"display_order": 1,
			"pass_percentage": 70,
			"questions": [
				{
					"id": "q-1",
					"question_text": "Where is the extinguisher?",
					"type": "single_choice",
					"options": [{"id": "1", "label": "Hallway"}, {"id": "2", "label": "Roof"}],
					"correct_answer": ["1"],
					"display_order": 1
				}
			]
		}
	]
}`

// --- Tests for Converter Functions ---

func TestToDomainSubmission(t *testing.T) {
	now := time.Now().Truncate(time.Second)
	modelSubmission := &models.Submission{
		ID:          "sub-1",
		UserID:      "user-1",
		InductionID: "ind-1",
		Status:      "in_progress",
		InductionSnapshot: models.SnapshotDocument{
			Induction: domain.SnapshotInduction{ID: "ind-1", Title: "Safety Onboarding"},
		},
		CompletedAt: sql.NullTime{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	domainSubmission := toDomainSubmission(modelSubmission)
	assert.NotNil(t, domainSubmission)
	assert.Equal(t, modelSubmission.ID, domainSubmission.ID)
	assert.Equal(t, modelSubmission.UserID, domainSubmission.UserID)
	assert.Equal(t, modelSubmission.InductionID, domainSubmission.InductionID)
	assert.Equal(t, domain.StatusInProgress, domainSubmission.Status)
	assert.Equal(t, "ind-1", domainSubmission.Snapshot.Induction.ID)
	assert.Nil(t, domainSubmission.CompletedAt)

	// Test with CompletedAt being valid
	completedTime := now.Add(-time.Hour)
	modelSubmission.CompletedAt = sql.NullTime{Time: completedTime, Valid: true}
	modelSubmission.Status = "completed"
	domainSubmission = toDomainSubmission(modelSubmission)
	assert.NotNil(t, domainSubmission)
	assert.Equal(t, domain.StatusCompleted, domainSubmission.Status)
	assert.NotNil(t, domainSubmission.CompletedAt)
	assert.True(t, completedTime.Equal(*domainSubmission.CompletedAt))

	// Test nil input
	assert.Nil(t, toDomainSubmission(nil))
}

// --- Tests for Repository Methods ---

func TestSQLXSubmissionRepository_GetSubmissionByID_Success(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewSQLXSubmissionRepository(db)
	defer db.Close()

	now := time.Now()
	rows := sqlmock.NewRows(submissionColumns()).
		AddRow("sub-1", "user-1", "ind-1", "in_progress", []byte(snapshotJSON), nil, now, now)

	mock.ExpectQuery(`SELECT \* FROM submissions WHERE id = \$1`).
		WithArgs("sub-1").
		WillReturnRows(rows)

	submission, err := repo.GetSubmissionByID(context.Background(), "sub-1")

	assert.NoError(t, err)
	assert.NotNil(t, submission)
	assert.Equal(t, domain.StatusInProgress, submission.Status)
	assert.Len(t, submission.Snapshot.Chapters, 1)
	assert.Equal(t, "Fire Safety", submission.Snapshot.Chapters[0].Title)
	assert.Len(t, submission.Snapshot.Chapters[0].Questions, 1)
	assert.Equal(t, []string{"1"}, submission.Snapshot.Chapters[0].Questions[0].CorrectAnswer)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLXSubmissionRepository_GetSubmissionByID_NotFound(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewSQLXSubmissionRepository(db)
	defer db.Close()

	mock.ExpectQuery(`SELECT \* FROM submissions WHERE id = \$1`).
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	submission, err := repo.GetSubmissionByID(context.Background(), "missing")

	assert.NoError(t, err)
	assert.Nil(t, submission)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLXSubmissionRepository_GetSubmissionByStatus(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewSQLXSubmissionRepository(db)
	defer db.Close()

	now := time.Now()
	rows := sqlmock.NewRows(submissionColumns()).
		AddRow("sub-1", "user-1", "ind-1", "pending", []byte(snapshotJSON), nil, now, now)

	mock.ExpectQuery(`SELECT \* FROM submissions WHERE user_id = \$1 AND induction_id = \$2 AND status IN \(\$3, \$4\) ORDER BY created_at DESC LIMIT 1`).
		WithArgs("user-1", "ind-1", "in_progress", "pending").
		WillReturnRows(rows)

	submission, err := repo.GetSubmissionByStatus(context.Background(), "user-1", "ind-1",
		[]domain.SubmissionStatus{domain.StatusInProgress, domain.StatusPending})

	assert.NoError(t, err)
	assert.NotNil(t, submission)
	assert.Equal(t, domain.StatusPending, submission.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLXSubmissionRepository_UpdateStatus_Success(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewSQLXSubmissionRepository(db)
	defer db.Close()

	completedAt := time.Now()

	mock.ExpectExec(`UPDATE submissions SET status = \$1, completed_at = \$2, updated_at = \$3 WHERE id = \$4`).
		WithArgs("completed", sqlmock.AnyArg(), sqlmock.AnyArg(), "sub-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpdateStatus(context.Background(), "sub-1", domain.StatusCompleted, &completedAt)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLXSubmissionRepository_UpdateStatus_NotFound(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewSQLXSubmissionRepository(db)
	defer db.Close()

	mock.ExpectExec(`UPDATE submissions SET status = \$1, completed_at = \$2, updated_at = \$3 WHERE id = \$4`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateStatus(context.Background(), "missing", domain.StatusPending, nil)

	var domainErr *domain.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.CodeNotFound, domainErr.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLXSubmissionRepository_ListSubmissions_WithFilters(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewSQLXSubmissionRepository(db)
	defer db.Close()

	now := time.Now()

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM submissions WHERE induction_id = \$1 AND status = \$2`).
		WithArgs("ind-1", "pending").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	listRows := sqlmock.NewRows(submissionColumns()).
		AddRow("sub-1", "user-1", "ind-1", "pending", []byte(snapshotJSON), nil, now, now)
	mock.ExpectQuery(`SELECT \* FROM submissions WHERE induction_id = \$1 AND status = \$2 ORDER BY created_at DESC LIMIT \$3 OFFSET \$4`).
		WithArgs("ind-1", "pending", 20, 0).
		WillReturnRows(listRows)

	submissions, total, err := repo.ListSubmissions(context.Background(),
		domain.SubmissionFilters{InductionID: "ind-1", Status: domain.StatusPending}, 20, 0)

	assert.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Len(t, submissions, 1)
	assert.Equal(t, "sub-1", submissions[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBuildSubmissionFilter(t *testing.T) {
	where, args := buildSubmissionFilter(domain.SubmissionFilters{})
	assert.Equal(t, "", where)
	assert.Nil(t, args)

	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	where, args = buildSubmissionFilter(domain.SubmissionFilters{
		InductionID: "ind-1",
		Status:      domain.StatusCompleted,
		DateFrom:    &from,
		DateTo:      &to,
	})
	assert.Equal(t, " WHERE induction_id = ? AND status = ? AND created_at >= ? AND created_at <= ?", where)
	assert.Equal(t, []interface{}{"ind-1", "completed", from, to}, args)
}

func TestSQLXSubmissionRepository_UpsertAnswer(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewSQLXSubmissionRepository(db)
	defer db.Close()

	answer := &domain.Answer{
		ID:           "ans-1",
		SubmissionID: "sub-1",
		QuestionID:   "q-1",
		Payload:      domain.NewScalarAnswer("1"),
	}

	mock.ExpectExec(`INSERT INTO answers .+ ON CONFLICT \(submission_id, question_id\)`).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := repo.UpsertAnswer(context.Background(), answer)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLXSubmissionRepository_GetAnswers(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewSQLXSubmissionRepository(db)
	defer db.Close()

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "submission_id", "question_id", "answer_payload", "created_at", "updated_at"}).
		AddRow("ans-1", "sub-1", "q-1", []byte(`"1"`), now, now).
		AddRow("ans-2", "sub-1", "q-2", []byte(`["1","2"]`), now, now)

	mock.ExpectQuery(`SELECT \* FROM answers WHERE submission_id = \$1`).
		WithArgs("sub-1").
		WillReturnRows(rows)

	answers, err := repo.GetAnswers(context.Background(), "sub-1")

	assert.NoError(t, err)
	assert.Len(t, answers, 2)
	assert.Equal(t, "1", answers["q-1"].First())
	assert.Equal(t, []string{"1", "2"}, answers["q-2"].Values())
	assert.NoError(t, mock.ExpectationsWereMet())
}
