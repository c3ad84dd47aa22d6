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

// sqlxInductionRepository implements domain.InductionRepository using sqlx.
type sqlxInductionRepository struct {
	db *sqlx.DB
}

// NewSQLXInductionRepository creates a new instance of sqlxInductionRepository.
func NewSQLXInductionRepository(db *sqlx.DB) domain.InductionRepository {
	return &sqlxInductionRepository{db: db}
}

func toDomainInduction(m *models.Induction) *domain.Induction {
	if m == nil {
		return nil
	}
	return &domain.Induction{
		ID:           m.ID,
		Title:        m.Title,
		Description:  m.Description.String,
		IsActive:     m.IsActive,
		DisplayOrder: m.DisplayOrder,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func toDomainChapter(m *models.Chapter) *domain.Chapter {
	if m == nil {
		return nil
	}
	return &domain.Chapter{
		ID:             m.ID,
		InductionID:    m.InductionID,
		Title:          m.Title,
		Description:    m.Description.String,
		VideoURL:       m.VideoURL.String,
		VideoPath:      m.VideoPath.String,
		VideoFilename:  m.VideoFilename.String,
		VideoDuration:  int(m.VideoDuration.Int64),
		DisplayOrder:   m.DisplayOrder,
		PassPercentage: m.PassPercentage,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

func toDomainQuestion(m *models.Question) *domain.Question {
	if m == nil {
		return nil
	}
	return &domain.Question{
		ID:            m.ID,
		ChapterID:     m.ChapterID,
		QuestionText:  m.QuestionText,
		Type:          domain.QuestionType(m.Type),
		Options:       []domain.Option(m.Options),
		CorrectAnswer: []string(m.CorrectAnswer),
		DisplayOrder:  m.DisplayOrder,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func (r *sqlxInductionRepository) CreateInduction(ctx context.Context, induction *domain.Induction) error {
	now := time.Now()
	induction.CreatedAt = now
	induction.UpdatedAt = now

	query := `INSERT INTO inductions (id, title, description, is_active, display_order, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := GetExecutor(ctx, r.db).ExecContext(ctx, query,
		induction.ID, induction.Title, util.StringToNullString(induction.Description),
		induction.IsActive, induction.DisplayOrder, induction.CreatedAt, induction.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create induction: %w", err)
	}
	return nil
}

func (r *sqlxInductionRepository) GetInductionByID(ctx context.Context, id string) (*domain.Induction, error) {
	var induction models.Induction
	query := `SELECT * FROM inductions WHERE id = $1`
	err := GetExecutor(ctx, r.db).GetContext(ctx, &induction, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get induction: %w", err)
	}
	return toDomainInduction(&induction), nil
}

func (r *sqlxInductionRepository) GetInductionWithContent(ctx context.Context, id string) (*domain.Induction, error) {
	induction, err := r.GetInductionByID(ctx, id)
	if err != nil || induction == nil {
		return induction, err
	}

	chapters, err := r.ListChaptersByInduction(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(chapters) == 0 {
		induction.Chapters = chapters
		return induction, nil
	}

	chapterIDs := make([]string, len(chapters))
	for i, c := range chapters {
		chapterIDs[i] = c.ID
	}
	if err := r.attachQuestions(ctx, chapters, chapterIDs); err != nil {
		return nil, err
	}
	induction.Chapters = chapters
	return induction, nil
}

// attachQuestions loads the questions for the given chapter ids in one
// query and distributes them onto the chapter slice in display_order.
func (r *sqlxInductionRepository) attachQuestions(ctx context.Context, chapters []domain.Chapter, chapterIDs []string) error {
	query, args, err := sqlx.In(`SELECT * FROM questions WHERE chapter_id IN (?) ORDER BY display_order, created_at`, chapterIDs)
	if err != nil {
		return fmt.Errorf("failed to build question filter: %w", err)
	}
	query = r.db.Rebind(query)

	var rows []models.Question
	if err := GetExecutor(ctx, r.db).SelectContext(ctx, &rows, query, args...); err != nil {
		return fmt.Errorf("failed to list questions: %w", err)
	}

	byChapter := make(map[string][]domain.Question, len(chapters))
	for i := range rows {
		q := toDomainQuestion(&rows[i])
		byChapter[q.ChapterID] = append(byChapter[q.ChapterID], *q)
	}
	for i := range chapters {
		chapters[i].Questions = byChapter[chapters[i].ID]
	}
	return nil
}

func (r *sqlxInductionRepository) ListInductions(ctx context.Context) ([]domain.Induction, error) {
	return r.listInductions(ctx, `SELECT * FROM inductions ORDER BY display_order, created_at`)
}

func (r *sqlxInductionRepository) ListActiveInductions(ctx context.Context) ([]domain.Induction, error) {
	return r.listInductions(ctx, `SELECT * FROM inductions WHERE is_active = TRUE ORDER BY display_order, created_at`)
}

func (r *sqlxInductionRepository) listInductions(ctx context.Context, query string) ([]domain.Induction, error) {
	var rows []models.Induction
	if err := GetExecutor(ctx, r.db).SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("failed to list inductions: %w", err)
	}
	inductions := make([]domain.Induction, 0, len(rows))
	for i := range rows {
		inductions = append(inductions, *toDomainInduction(&rows[i]))
	}
	return inductions, nil
}

func (r *sqlxInductionRepository) UpdateInduction(ctx context.Context, induction *domain.Induction) error {
	induction.UpdatedAt = time.Now()
	query := `UPDATE inductions SET title = $1, description = $2, is_active = $3, display_order = $4, updated_at = $5
	          WHERE id = $6`
	result, err := GetExecutor(ctx, r.db).ExecContext(ctx, query,
		induction.Title, util.StringToNullString(induction.Description),
		induction.IsActive, induction.DisplayOrder, induction.UpdatedAt, induction.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update induction: %w", err)
	}
	return requireRowAffected(result, "induction", induction.ID)
}

func (r *sqlxInductionRepository) DeleteInduction(ctx context.Context, id string) error {
	result, err := GetExecutor(ctx, r.db).ExecContext(ctx, `DELETE FROM inductions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete induction: %w", err)
	}
	return requireRowAffected(result, "induction", id)
}

func (r *sqlxInductionRepository) CreateChapter(ctx context.Context, chapter *domain.Chapter) error {
	now := time.Now()
	chapter.CreatedAt = now
	chapter.UpdatedAt = now

	query := `INSERT INTO chapters (id, induction_id, title, description, video_url, video_path, video_filename,
	                                video_duration, display_order, pass_percentage, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := GetExecutor(ctx, r.db).ExecContext(ctx, query,
		chapter.ID, chapter.InductionID, chapter.Title,
		util.StringToNullString(chapter.Description),
		util.StringToNullString(chapter.VideoURL),
		util.StringToNullString(chapter.VideoPath),
		util.StringToNullString(chapter.VideoFilename),
		nullableInt(chapter.VideoDuration),
		chapter.DisplayOrder, chapter.PassPercentage,
		chapter.CreatedAt, chapter.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create chapter: %w", err)
	}
	return nil
}

func (r *sqlxInductionRepository) GetChapterByID(ctx context.Context, id string) (*domain.Chapter, error) {
	var chapter models.Chapter
	query := `SELECT * FROM chapters WHERE id = $1`
	err := GetExecutor(ctx, r.db).GetContext(ctx, &chapter, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get chapter: %w", err)
	}
	return toDomainChapter(&chapter), nil
}

func (r *sqlxInductionRepository) ListChaptersByInduction(ctx context.Context, inductionID string) ([]domain.Chapter, error) {
	var rows []models.Chapter
	query := `SELECT * FROM chapters WHERE induction_id = $1 ORDER BY display_order, created_at`
	if err := GetExecutor(ctx, r.db).SelectContext(ctx, &rows, query, inductionID); err != nil {
		return nil, fmt.Errorf("failed to list chapters: %w", err)
	}
	chapters := make([]domain.Chapter, 0, len(rows))
	for i := range rows {
		chapters = append(chapters, *toDomainChapter(&rows[i]))
	}
	return chapters, nil
}

func (r *sqlxInductionRepository) ListChapterIDs(ctx context.Context, inductionID string) ([]string, error) {
	var ids []string
	query := `SELECT id FROM chapters WHERE induction_id = $1 ORDER BY display_order, created_at`
	if err := GetExecutor(ctx, r.db).SelectContext(ctx, &ids, query, inductionID); err != nil {
		return nil, fmt.Errorf("failed to list chapter ids: %w", err)
	}
	return ids, nil
}

func (r *sqlxInductionRepository) ListChaptersWithQuestions(ctx context.Context, chapterIDs []string) ([]domain.Chapter, error) {
	if len(chapterIDs) == 0 {
		return nil, nil
	}
	query, args, err := sqlx.In(`SELECT * FROM chapters WHERE id IN (?) ORDER BY display_order, created_at`, chapterIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to build chapter filter: %w", err)
	}
	query = r.db.Rebind(query)

	var rows []models.Chapter
	if err := GetExecutor(ctx, r.db).SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list chapters: %w", err)
	}
	chapters := make([]domain.Chapter, 0, len(rows))
	ids := make([]string, 0, len(rows))
	for i := range rows {
		chapters = append(chapters, *toDomainChapter(&rows[i]))
		ids = append(ids, rows[i].ID)
	}
	if len(chapters) == 0 {
		return chapters, nil
	}
	if err := r.attachQuestions(ctx, chapters, ids); err != nil {
		return nil, err
	}
	return chapters, nil
}

func (r *sqlxInductionRepository) UpdateChapter(ctx context.Context, chapter *domain.Chapter) error {
	chapter.UpdatedAt = time.Now()
	query := `UPDATE chapters SET title = $1, description = $2, video_url = $3, video_path = $4,
	                              video_filename = $5, video_duration = $6, display_order = $7,
	                              pass_percentage = $8, updated_at = $9
	          WHERE id = $10`
	result, err := GetExecutor(ctx, r.db).ExecContext(ctx, query,
		chapter.Title,
		util.StringToNullString(chapter.Description),
		util.StringToNullString(chapter.VideoURL),
		util.StringToNullString(chapter.VideoPath),
		util.StringToNullString(chapter.VideoFilename),
		nullableInt(chapter.VideoDuration),
		chapter.DisplayOrder, chapter.PassPercentage,
		chapter.UpdatedAt, chapter.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update chapter: %w", err)
	}
	return requireRowAffected(result, "chapter", chapter.ID)
}

// DeleteChapter removes the chapter; questions and video completions go
// with it via FK cascade.
func (r *sqlxInductionRepository) DeleteChapter(ctx context.Context, id string) error {
	result, err := GetExecutor(ctx, r.db).ExecContext(ctx, `DELETE FROM chapters WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete chapter: %w", err)
	}
	return requireRowAffected(result, "chapter", id)
}

func (r *sqlxInductionRepository) CreateQuestion(ctx context.Context, question *domain.Question) error {
	now := time.Now()
	question.CreatedAt = now
	question.UpdatedAt = now

	query := `INSERT INTO questions (id, chapter_id, question_text, type, options, correct_answer, display_order, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := GetExecutor(ctx, r.db).ExecContext(ctx, query,
		question.ID, question.ChapterID, question.QuestionText, string(question.Type),
		models.OptionList(question.Options), models.StringSlice(question.CorrectAnswer),
		question.DisplayOrder, question.CreatedAt, question.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create question: %w", err)
	}
	return nil
}

func (r *sqlxInductionRepository) GetQuestionByID(ctx context.Context, id string) (*domain.Question, error) {
	var question models.Question
	query := `SELECT * FROM questions WHERE id = $1`
	err := GetExecutor(ctx, r.db).GetContext(ctx, &question, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get question: %w", err)
	}
	return toDomainQuestion(&question), nil
}

func (r *sqlxInductionRepository) ListQuestionsByChapter(ctx context.Context, chapterID string) ([]domain.Question, error) {
	var rows []models.Question
	query := `SELECT * FROM questions WHERE chapter_id = $1 ORDER BY display_order, created_at`
	if err := GetExecutor(ctx, r.db).SelectContext(ctx, &rows, query, chapterID); err != nil {
		return nil, fmt.Errorf("failed to list questions: %w", err)
	}
	questions := make([]domain.Question, 0, len(rows))
	for i := range rows {
		questions = append(questions, *toDomainQuestion(&rows[i]))
	}
	return questions, nil
}

func (r *sqlxInductionRepository) UpdateQuestion(ctx context.Context, question *domain.Question) error {
	question.UpdatedAt = time.Now()
	query := `UPDATE questions SET question_text = $1, type = $2, options = $3, correct_answer = $4,
	                               display_order = $5, updated_at = $6
	          WHERE id = $7`
	result, err := GetExecutor(ctx, r.db).ExecContext(ctx, query,
		question.QuestionText, string(question.Type),
		models.OptionList(question.Options), models.StringSlice(question.CorrectAnswer),
		question.DisplayOrder, question.UpdatedAt, question.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update question: %w", err)
	}
	return requireRowAffected(result, "question", question.ID)
}

func (r *sqlxInductionRepository) DeleteQuestion(ctx context.Context, id string) error {
	result, err := GetExecutor(ctx, r.db).ExecContext(ctx, `DELETE FROM questions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete question: %w", err)
	}
	return requireRowAffected(result, "question", id)
}

func nullableInt(v int) sql.NullInt64 {
	if v <= 0 {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(v), Valid: true}
}

func requireRowAffected(result sql.Result, entity, id string) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if rows == 0 {
		return domain.NewNotFoundError(fmt.Sprintf("%s not found: %s", entity, id))
	}
	return nil
}
