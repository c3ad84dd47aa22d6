package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"time"

	"github.com/sanjaykhatri/induction-backend/internal/cache"
	"github.com/sanjaykhatri/induction-backend/internal/config"
	"github.com/sanjaykhatri/induction-backend/internal/domain"
	"github.com/sanjaykhatri/induction-backend/internal/dto"
	"github.com/sanjaykhatri/induction-backend/internal/logger"
	"github.com/sanjaykhatri/induction-backend/internal/util"

	"go.uber.org/zap"
)

// VideoUpload is an uploaded chapter video file.
type VideoUpload struct {
	Filename string
	Content  io.Reader
}

// InductionService covers the user-facing active listing and the admin
// authoring surface for inductions, chapters and questions.
type InductionService interface {
	ListActive(ctx context.Context) ([]dto.InductionResponse, error)

	ListInductions(ctx context.Context) ([]dto.InductionResponse, error)
	GetInduction(ctx context.Context, id string) (*dto.InductionResponse, error)
	CreateInduction(ctx context.Context, req *dto.CreateInductionRequest) (*dto.InductionResponse, error)
	UpdateInduction(ctx context.Context, id string, req *dto.UpdateInductionRequest) (*dto.InductionResponse, error)
	DeleteInduction(ctx context.Context, id string) error
	ReorderInduction(ctx context.Context, id string, displayOrder int) error

	ListChapters(ctx context.Context, inductionID string) ([]dto.ChapterResponse, error)
	CreateChapter(ctx context.Context, inductionID string, req *dto.CreateChapterRequest, video *VideoUpload) (*dto.ChapterResponse, error)
	UpdateChapter(ctx context.Context, chapterID string, req *dto.UpdateChapterRequest, video *VideoUpload) (*dto.ChapterResponse, error)
	DeleteChapter(ctx context.Context, chapterID string) error
	ReorderChapter(ctx context.Context, chapterID string, displayOrder int) error

	ListQuestions(ctx context.Context, chapterID string) ([]dto.QuestionResponse, error)
	CreateQuestion(ctx context.Context, chapterID string, req *dto.CreateQuestionRequest) (*dto.QuestionResponse, error)
	UpdateQuestion(ctx context.Context, questionID string, req *dto.UpdateQuestionRequest) (*dto.QuestionResponse, error)
	DeleteQuestion(ctx context.Context, questionID string) error
	ReorderQuestion(ctx context.Context, questionID string, displayOrder int) error

	// ResolveVideoURL maps a stored video file key to its public URL.
	ResolveVideoURL(path string) string
}

type inductionServiceImpl struct {
	repo      domain.InductionRepository
	fileStore domain.FileStore
	cache     domain.Cache
	cacheTTL  time.Duration
}

// NewInductionService creates a new instance of InductionService.
func NewInductionService(repo domain.InductionRepository, fileStore domain.FileStore, cacheClient domain.Cache, cacheCfg config.CacheConfig) InductionService {
	return &inductionServiceImpl{
		repo:      repo,
		fileStore: fileStore,
		cache:     cacheClient,
		cacheTTL:  cacheCfg.ActiveInductionsTTL,
	}
}

func (s *inductionServiceImpl) ResolveVideoURL(path string) string {
	if path == "" {
		return ""
	}
	return s.fileStore.PublicURL(path)
}

// ListActive serves the induction catalog from cache when possible. A
// cache failure falls through to the database.
func (s *inductionServiceImpl) ListActive(ctx context.Context) ([]dto.InductionResponse, error) {
	key := cache.ActiveInductionsKey()
	if cached, err := s.cache.Get(ctx, key); err == nil {
		var inductions []dto.InductionResponse
		if err := json.Unmarshal([]byte(cached), &inductions); err == nil {
			return inductions, nil
		}
		logger.Get().Warn("Discarding malformed cache entry", zap.String("key", key))
	} else if err != domain.ErrCacheMiss {
		logger.Get().Warn("Cache read failed", zap.String("key", key), zap.Error(err))
	}

	active, err := s.repo.ListActiveInductions(ctx)
	if err != nil {
		return nil, domain.NewInternalError("failed to list active inductions", err)
	}

	inductions := make([]dto.InductionResponse, 0, len(active))
	for i := range active {
		inductions = append(inductions, s.toInductionResponse(&active[i]))
	}

	if payload, err := json.Marshal(inductions); err == nil {
		if err := s.cache.Set(ctx, key, string(payload), s.cacheTTL); err != nil {
			logger.Get().Warn("Cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return inductions, nil
}

func (s *inductionServiceImpl) invalidateActiveList(ctx context.Context) {
	if err := s.cache.Delete(ctx, cache.ActiveInductionsKey()); err != nil {
		logger.Get().Warn("Cache invalidation failed", zap.Error(err))
	}
}

func (s *inductionServiceImpl) ListInductions(ctx context.Context) ([]dto.InductionResponse, error) {
	all, err := s.repo.ListInductions(ctx)
	if err != nil {
		return nil, domain.NewInternalError("failed to list inductions", err)
	}
	inductions := make([]dto.InductionResponse, 0, len(all))
	for i := range all {
		inductions = append(inductions, s.toInductionResponse(&all[i]))
	}
	return inductions, nil
}

func (s *inductionServiceImpl) GetInduction(ctx context.Context, id string) (*dto.InductionResponse, error) {
	induction, err := s.repo.GetInductionWithContent(ctx, id)
	if err != nil {
		return nil, domain.NewInternalError("failed to get induction", err)
	}
	if induction == nil {
		return nil, domain.NewNotFoundError("induction not found")
	}
	resp := s.toInductionResponse(induction)
	return &resp, nil
}

func (s *inductionServiceImpl) CreateInduction(ctx context.Context, req *dto.CreateInductionRequest) (*dto.InductionResponse, error) {
	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}
	induction := &domain.Induction{
		ID:           util.NewULID(),
		Title:        req.Title,
		Description:  req.Description,
		IsActive:     isActive,
		DisplayOrder: req.DisplayOrder,
	}
	if err := induction.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.CreateInduction(ctx, induction); err != nil {
		return nil, domain.NewInternalError("failed to create induction", err)
	}
	s.invalidateActiveList(ctx)
	resp := s.toInductionResponse(induction)
	return &resp, nil
}

func (s *inductionServiceImpl) UpdateInduction(ctx context.Context, id string, req *dto.UpdateInductionRequest) (*dto.InductionResponse, error) {
	induction, err := s.repo.GetInductionByID(ctx, id)
	if err != nil {
		return nil, domain.NewInternalError("failed to get induction", err)
	}
	if induction == nil {
		return nil, domain.NewNotFoundError("induction not found")
	}

	if req.Title != nil {
		induction.Title = *req.Title
	}
	if req.Description != nil {
		induction.Description = *req.Description
	}
	if req.IsActive != nil {
		induction.IsActive = *req.IsActive
	}
	if req.DisplayOrder != nil {
		induction.DisplayOrder = *req.DisplayOrder
	}
	if err := induction.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateInduction(ctx, induction); err != nil {
		return nil, err
	}
	s.invalidateActiveList(ctx)
	resp := s.toInductionResponse(induction)
	return &resp, nil
}

func (s *inductionServiceImpl) DeleteInduction(ctx context.Context, id string) error {
	if err := s.repo.DeleteInduction(ctx, id); err != nil {
		return err
	}
	s.invalidateActiveList(ctx)
	return nil
}

func (s *inductionServiceImpl) ReorderInduction(ctx context.Context, id string, displayOrder int) error {
	induction, err := s.repo.GetInductionByID(ctx, id)
	if err != nil {
		return domain.NewInternalError("failed to get induction", err)
	}
	if induction == nil {
		return domain.NewNotFoundError("induction not found")
	}
	induction.DisplayOrder = displayOrder
	if err := s.repo.UpdateInduction(ctx, induction); err != nil {
		return err
	}
	s.invalidateActiveList(ctx)
	return nil
}

func (s *inductionServiceImpl) ListChapters(ctx context.Context, inductionID string) ([]dto.ChapterResponse, error) {
	induction, err := s.repo.GetInductionWithContent(ctx, inductionID)
	if err != nil {
		return nil, domain.NewInternalError("failed to list chapters", err)
	}
	if induction == nil {
		return nil, domain.NewNotFoundError("induction not found")
	}
	chapters := make([]dto.ChapterResponse, 0, len(induction.Chapters))
	for i := range induction.Chapters {
		chapters = append(chapters, s.toChapterResponse(&induction.Chapters[i], true))
	}
	return chapters, nil
}

func (s *inductionServiceImpl) CreateChapter(ctx context.Context, inductionID string, req *dto.CreateChapterRequest, video *VideoUpload) (*dto.ChapterResponse, error) {
	induction, err := s.repo.GetInductionByID(ctx, inductionID)
	if err != nil {
		return nil, domain.NewInternalError("failed to get induction", err)
	}
	if induction == nil {
		return nil, domain.NewNotFoundError("induction not found")
	}

	passPercentage := domain.DefaultPassPercentage
	if req.PassPercentage != nil {
		passPercentage = *req.PassPercentage
	}
	chapter := &domain.Chapter{
		ID:             util.NewULID(),
		InductionID:    inductionID,
		Title:          req.Title,
		Description:    req.Description,
		VideoURL:       req.VideoURL,
		DisplayOrder:   req.DisplayOrder,
		PassPercentage: passPercentage,
	}

	if video != nil {
		if err := s.storeVideo(ctx, chapter, video); err != nil {
			return nil, err
		}
	} else if req.VideoURL == "" {
		return nil, domain.ValidationErrors{domain.NewMissingFieldError("video_url")}
	}

	if err := chapter.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.CreateChapter(ctx, chapter); err != nil {
		return nil, domain.NewInternalError("failed to create chapter", err)
	}
	resp := s.toChapterResponse(chapter, true)
	return &resp, nil
}

func (s *inductionServiceImpl) UpdateChapter(ctx context.Context, chapterID string, req *dto.UpdateChapterRequest, video *VideoUpload) (*dto.ChapterResponse, error) {
	chapter, err := s.repo.GetChapterByID(ctx, chapterID)
	if err != nil {
		return nil, domain.NewInternalError("failed to get chapter", err)
	}
	if chapter == nil {
		return nil, domain.NewNotFoundError("chapter not found")
	}

	if req.Title != nil {
		chapter.Title = *req.Title
	}
	if req.Description != nil {
		chapter.Description = *req.Description
	}
	if req.VideoURL != nil {
		chapter.VideoURL = *req.VideoURL
	}
	if req.DisplayOrder != nil {
		chapter.DisplayOrder = *req.DisplayOrder
	}
	if req.PassPercentage != nil {
		chapter.PassPercentage = *req.PassPercentage
	}

	if video != nil {
		if chapter.VideoPath != "" {
			if err := s.fileStore.Delete(ctx, chapter.VideoPath); err != nil {
				logger.Get().Warn("Failed to delete replaced video",
					zap.String("chapter_id", chapterID), zap.Error(err))
			}
		}
		if err := s.storeVideo(ctx, chapter, video); err != nil {
			return nil, err
		}
	}

	if err := chapter.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateChapter(ctx, chapter); err != nil {
		return nil, err
	}
	resp := s.toChapterResponse(chapter, true)
	return &resp, nil
}

// storeVideo persists the uploaded file and points the chapter at it. An
// uploaded file always supersedes an external URL.
func (s *inductionServiceImpl) storeVideo(ctx context.Context, chapter *domain.Chapter, video *VideoUpload) error {
	key := fmt.Sprintf("videos/%d_%s", time.Now().Unix(), sanitizeFilename(video.Filename))
	stored, err := s.fileStore.Put(ctx, key, video.Content)
	if err != nil {
		return domain.NewInternalError("failed to store video", err)
	}
	chapter.VideoPath = stored
	chapter.VideoFilename = video.Filename
	chapter.VideoURL = ""
	return nil
}

func (s *inductionServiceImpl) DeleteChapter(ctx context.Context, chapterID string) error {
	chapter, err := s.repo.GetChapterByID(ctx, chapterID)
	if err != nil {
		return domain.NewInternalError("failed to get chapter", err)
	}
	if chapter == nil {
		return domain.NewNotFoundError("chapter not found")
	}
	if err := s.repo.DeleteChapter(ctx, chapterID); err != nil {
		return err
	}
	if chapter.VideoPath != "" {
		if err := s.fileStore.Delete(ctx, chapter.VideoPath); err != nil {
			logger.Get().Warn("Failed to delete chapter video",
				zap.String("chapter_id", chapterID), zap.Error(err))
		}
	}
	return nil
}

func (s *inductionServiceImpl) ReorderChapter(ctx context.Context, chapterID string, displayOrder int) error {
	chapter, err := s.repo.GetChapterByID(ctx, chapterID)
	if err != nil {
		return domain.NewInternalError("failed to get chapter", err)
	}
	if chapter == nil {
		return domain.NewNotFoundError("chapter not found")
	}
	chapter.DisplayOrder = displayOrder
	return s.repo.UpdateChapter(ctx, chapter)
}

func (s *inductionServiceImpl) ListQuestions(ctx context.Context, chapterID string) ([]dto.QuestionResponse, error) {
	list, err := s.repo.ListQuestionsByChapter(ctx, chapterID)
	if err != nil {
		return nil, domain.NewInternalError("failed to list questions", err)
	}
	questions := make([]dto.QuestionResponse, 0, len(list))
	for i := range list {
		questions = append(questions, toQuestionResponse(&list[i], true))
	}
	return questions, nil
}

func (s *inductionServiceImpl) CreateQuestion(ctx context.Context, chapterID string, req *dto.CreateQuestionRequest) (*dto.QuestionResponse, error) {
	chapter, err := s.repo.GetChapterByID(ctx, chapterID)
	if err != nil {
		return nil, domain.NewInternalError("failed to get chapter", err)
	}
	if chapter == nil {
		return nil, domain.NewNotFoundError("chapter not found")
	}

	question := &domain.Question{
		ID:            util.NewULID(),
		ChapterID:     chapterID,
		QuestionText:  req.QuestionText,
		Type:          domain.QuestionType(req.Type),
		Options:       req.Options,
		CorrectAnswer: req.CorrectAnswer,
		DisplayOrder:  req.DisplayOrder,
	}
	if err := question.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.CreateQuestion(ctx, question); err != nil {
		return nil, domain.NewInternalError("failed to create question", err)
	}
	resp := toQuestionResponse(question, true)
	return &resp, nil
}

func (s *inductionServiceImpl) UpdateQuestion(ctx context.Context, questionID string, req *dto.UpdateQuestionRequest) (*dto.QuestionResponse, error) {
	question, err := s.repo.GetQuestionByID(ctx, questionID)
	if err != nil {
		return nil, domain.NewInternalError("failed to get question", err)
	}
	if question == nil {
		return nil, domain.NewNotFoundError("question not found")
	}

	if req.QuestionText != nil {
		question.QuestionText = *req.QuestionText
	}
	if req.Type != nil {
		question.Type = domain.QuestionType(*req.Type)
	}
	if req.Options != nil {
		question.Options = *req.Options
	}
	if req.CorrectAnswer != nil {
		question.CorrectAnswer = *req.CorrectAnswer
	}
	if req.DisplayOrder != nil {
		question.DisplayOrder = *req.DisplayOrder
	}
	if err := question.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateQuestion(ctx, question); err != nil {
		return nil, err
	}
	resp := toQuestionResponse(question, true)
	return &resp, nil
}

func (s *inductionServiceImpl) DeleteQuestion(ctx context.Context, questionID string) error {
	return s.repo.DeleteQuestion(ctx, questionID)
}

func (s *inductionServiceImpl) ReorderQuestion(ctx context.Context, questionID string, displayOrder int) error {
	question, err := s.repo.GetQuestionByID(ctx, questionID)
	if err != nil {
		return domain.NewInternalError("failed to get question", err)
	}
	if question == nil {
		return domain.NewNotFoundError("question not found")
	}
	question.DisplayOrder = displayOrder
	return s.repo.UpdateQuestion(ctx, question)
}

func (s *inductionServiceImpl) toInductionResponse(induction *domain.Induction) dto.InductionResponse {
	resp := dto.InductionResponse{
		ID:           induction.ID,
		Title:        induction.Title,
		Description:  induction.Description,
		IsActive:     induction.IsActive,
		DisplayOrder: induction.DisplayOrder,
		CreatedAt:    induction.CreatedAt,
		UpdatedAt:    induction.UpdatedAt,
	}
	for i := range induction.Chapters {
		resp.Chapters = append(resp.Chapters, s.toChapterResponse(&induction.Chapters[i], true))
	}
	return resp
}

func (s *inductionServiceImpl) toChapterResponse(chapter *domain.Chapter, includeAnswers bool) dto.ChapterResponse {
	videoURL := chapter.VideoURL
	if chapter.VideoPath != "" {
		videoURL = s.fileStore.PublicURL(chapter.VideoPath)
	}
	resp := dto.ChapterResponse{
		ID:             chapter.ID,
		InductionID:    chapter.InductionID,
		Title:          chapter.Title,
		Description:    chapter.Description,
		VideoURL:       videoURL,
		VideoFilename:  chapter.VideoFilename,
		VideoDuration:  chapter.VideoDuration,
		DisplayOrder:   chapter.DisplayOrder,
		PassPercentage: chapter.PassPercentage,
		CreatedAt:      chapter.CreatedAt,
		UpdatedAt:      chapter.UpdatedAt,
	}
	for i := range chapter.Questions {
		resp.Questions = append(resp.Questions, toQuestionResponse(&chapter.Questions[i], includeAnswers))
	}
	return resp
}

func toQuestionResponse(question *domain.Question, includeAnswers bool) dto.QuestionResponse {
	resp := dto.QuestionResponse{
		ID:           question.ID,
		ChapterID:    question.ChapterID,
		QuestionText: question.QuestionText,
		Type:         string(question.Type),
		Options:      question.Options,
		DisplayOrder: question.DisplayOrder,
	}
	if includeAnswers {
		resp.CorrectAnswer = question.CorrectAnswer
	}
	return resp
}

var unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9._-]`)

func sanitizeFilename(name string) string {
	return unsafeFilenameChars.ReplaceAllString(filepath.Base(name), "_")
}
