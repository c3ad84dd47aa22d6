package service

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/sanjaykhatri/induction-backend/internal/domain"
	"github.com/sanjaykhatri/induction-backend/internal/dto"
	"github.com/sanjaykhatri/induction-backend/internal/logger"
	"github.com/sanjaykhatri/induction-backend/internal/util"

	"go.uber.org/zap"
)

// ImportService builds a whole induction from one CSV upload. Each row
// carries induction, chapter and question columns; the induction comes
// from the first row, chapters are grouped by title + display order, and
// every row contributes one question. The import runs in one transaction:
// a malformed row discards everything.
type ImportService interface {
	ImportCSV(ctx context.Context, file io.Reader) (*dto.ImportResult, error)
}

type importServiceImpl struct {
	repo      domain.InductionRepository
	txManager domain.TransactionManager
}

// NewImportService creates a new instance of ImportService.
func NewImportService(repo domain.InductionRepository, txManager domain.TransactionManager) ImportService {
	return &importServiceImpl{repo: repo, txManager: txManager}
}

var requiredImportColumns = []string{
	"induction_title",
	"chapter_title",
	"question_text",
	"question_type",
}

func (s *importServiceImpl) ImportCSV(ctx context.Context, file io.Reader) (*dto.ImportResult, error) {
	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, domain.ValidationErrors{domain.NewMissingFieldError("csv header")}
	}
	for i := range header {
		header[i] = strings.ToLower(strings.TrimSpace(header[i]))
	}
	for _, col := range requiredImportColumns {
		if !contains(header, col) {
			return nil, domain.ValidationErrors{domain.NewMissingFieldError(col)}
		}
	}

	var rows []map[string]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, domain.ValidationErrors{domain.NewInvalidFormatError("csv row", err.Error())}
		}
		if len(record) == 1 && strings.TrimSpace(record[0]) == "" {
			continue
		}
		row := make(map[string]string, len(header))
		for i, col := range header {
			if i < len(record) {
				row[col] = strings.TrimSpace(record[i])
			}
		}
		rows = append(rows, row)
	}
	if len(rows) == 0 {
		return nil, domain.ValidationErrors{domain.NewMissingFieldError("csv rows")}
	}

	var induction *domain.Induction
	chapterCount, questionCount := 0, 0

	err = s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		first := rows[0]
		induction = &domain.Induction{
			ID:           util.NewULID(),
			Title:        first["induction_title"],
			Description:  first["induction_description"],
			IsActive:     parseBoolDefault(first["induction_is_active"], true),
			DisplayOrder: parseIntDefault(first["induction_display_order"], 0),
		}
		if err := induction.Validate(); err != nil {
			return err
		}
		if err := s.repo.CreateInduction(txCtx, induction); err != nil {
			return err
		}

		chapterByKey := make(map[string]*domain.Chapter)
		for _, row := range rows {
			chapterKey := row["chapter_title"] + "|" + row["chapter_display_order"]
			chapter, ok := chapterByKey[chapterKey]
			if !ok {
				chapter = &domain.Chapter{
					ID:             util.NewULID(),
					InductionID:    induction.ID,
					Title:          row["chapter_title"],
					Description:    row["chapter_description"],
					VideoURL:       row["chapter_video_url"],
					DisplayOrder:   parseIntDefault(row["chapter_display_order"], 0),
					PassPercentage: parseIntDefault(row["pass_percentage"], domain.DefaultPassPercentage),
				}
				if err := chapter.Validate(); err != nil {
					return err
				}
				if err := s.repo.CreateChapter(txCtx, chapter); err != nil {
					return err
				}
				chapterByKey[chapterKey] = chapter
				chapterCount++
			}

			questionType := row["question_type"]
			if questionType == "" {
				questionType = string(domain.QuestionText)
			}
			options := parseImportOptions(row["question_options"])
			question := &domain.Question{
				ID:            util.NewULID(),
				ChapterID:     chapter.ID,
				QuestionText:  row["question_text"],
				Type:          domain.QuestionType(questionType),
				Options:       options,
				CorrectAnswer: parseImportAnswers(row["question_correct_answer"], options),
				DisplayOrder:  parseIntDefault(row["question_display_order"], 0),
			}
			if err := question.Validate(); err != nil {
				return err
			}
			if err := s.repo.CreateQuestion(txCtx, question); err != nil {
				return err
			}
			questionCount++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Get().Info("Induction imported",
		zap.String("induction_id", induction.ID),
		zap.Int("chapters", chapterCount),
		zap.Int("questions", questionCount))

	return &dto.ImportResult{
		Message: "Import successful",
		Induction: dto.InductionResponse{
			ID:           induction.ID,
			Title:        induction.Title,
			Description:  induction.Description,
			IsActive:     induction.IsActive,
			DisplayOrder: induction.DisplayOrder,
			CreatedAt:    induction.CreatedAt,
			UpdatedAt:    induction.UpdatedAt,
		},
		ChapterCount:  chapterCount,
		QuestionCount: questionCount,
	}, nil
}

// parseImportOptions accepts a JSON array or pipe-separated labels and
// normalizes both to {id, label} options with 1-based ids.
func parseImportOptions(raw string) []domain.Option {
	if raw == "" {
		return nil
	}

	var asJSON []interface{}
	if err := json.Unmarshal([]byte(raw), &asJSON); err == nil {
		options := make([]domain.Option, 0, len(asJSON))
		for idx, item := range asJSON {
			switch v := item.(type) {
			case map[string]interface{}:
				id, _ := v["id"].(string)
				label, _ := v["label"].(string)
				if id != "" && label != "" {
					options = append(options, domain.Option{ID: id, Label: label})
					continue
				}
				options = append(options, domain.Option{ID: strconv.Itoa(idx + 1), Label: fmt.Sprint(item)})
			case string:
				options = append(options, domain.Option{ID: strconv.Itoa(idx + 1), Label: v})
			default:
				options = append(options, domain.Option{ID: strconv.Itoa(idx + 1), Label: fmt.Sprint(item)})
			}
		}
		return options
	}

	parts := splitNonEmpty(raw, "|")
	options := make([]domain.Option, 0, len(parts))
	for idx, label := range parts {
		options = append(options, domain.Option{ID: strconv.Itoa(idx + 1), Label: label})
	}
	return options
}

// parseImportAnswers maps pipe-separated answers to option ids where the
// answer text matches an option label (case-insensitive); unmatched
// answers pass through as-is for text questions.
func parseImportAnswers(raw string, options []domain.Option) []string {
	parts := splitNonEmpty(raw, "|")
	if len(parts) == 0 {
		return nil
	}
	labelToID := make(map[string]string, len(options))
	for _, opt := range options {
		labelToID[strings.ToLower(opt.Label)] = opt.ID
	}
	answers := make([]string, 0, len(parts))
	for _, part := range parts {
		if id, ok := labelToID[strings.ToLower(part)]; ok {
			answers = append(answers, id)
		} else {
			answers = append(answers, part)
		}
	}
	return answers
}

func splitNonEmpty(raw, sep string) []string {
	var out []string
	for _, part := range strings.Split(raw, sep) {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

func parseIntDefault(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}

func parseBoolDefault(raw string, fallback bool) bool {
	if raw == "" {
		return fallback
	}
	return raw != "0" && !strings.EqualFold(raw, "false")
}

func contains(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}
