package service

import (
	"context"
	"time"

	"github.com/sanjaykhatri/induction-backend/internal/domain"
	"github.com/sanjaykhatri/induction-backend/internal/dto"
	"github.com/sanjaykhatri/induction-backend/internal/util"
)

// VideoService tracks per-chapter watch progress within a submission.
type VideoService interface {
	// ReportProgress upserts the watch record. Crossing 100% marks the
	// chapter completed and stamps completed_at.
	ReportProgress(ctx context.Context, userID, chapterID string, req *dto.VideoProgressRequest) (*dto.VideoCompletionResponse, error)
	// MarkCompleted force-completes the chapter regardless of reported
	// progress.
	MarkCompleted(ctx context.Context, userID, chapterID string, req *dto.MarkVideoCompletedRequest) (*dto.VideoCompletionResponse, error)
	// CheckCompletion reads the watch state; absence means not started.
	CheckCompletion(ctx context.Context, userID, chapterID, submissionID string) (*dto.CheckCompletionResponse, error)
}

type videoServiceImpl struct {
	videoRepo      domain.VideoCompletionRepository
	submissionRepo domain.SubmissionRepository
	inductionRepo  domain.InductionRepository
}

// NewVideoService creates a new instance of VideoService.
func NewVideoService(videoRepo domain.VideoCompletionRepository, submissionRepo domain.SubmissionRepository, inductionRepo domain.InductionRepository) VideoService {
	return &videoServiceImpl{
		videoRepo:      videoRepo,
		submissionRepo: submissionRepo,
		inductionRepo:  inductionRepo,
	}
}

func (s *videoServiceImpl) ReportProgress(ctx context.Context, userID, chapterID string, req *dto.VideoProgressRequest) (*dto.VideoCompletionResponse, error) {
	if err := s.checkOwnership(ctx, userID, chapterID, req.SubmissionID); err != nil {
		return nil, err
	}

	isCompleted := req.ProgressPercentage >= 100
	var completedAt *time.Time
	if isCompleted {
		now := time.Now()
		completedAt = &now
	}

	completion := &domain.VideoCompletion{
		ID:                 util.NewULID(),
		UserID:             userID,
		ChapterID:          chapterID,
		SubmissionID:       req.SubmissionID,
		IsCompleted:        isCompleted,
		ProgressPercentage: req.ProgressPercentage,
		WatchedSeconds:     req.WatchedSeconds,
		TotalSeconds:       req.TotalSeconds,
		CompletedAt:        completedAt,
	}
	stored, err := s.videoRepo.Upsert(ctx, completion)
	if err != nil {
		return nil, domain.NewInternalError("failed to record video progress", err)
	}
	return toVideoCompletionResponse(stored), nil
}

func (s *videoServiceImpl) MarkCompleted(ctx context.Context, userID, chapterID string, req *dto.MarkVideoCompletedRequest) (*dto.VideoCompletionResponse, error) {
	if err := s.checkOwnership(ctx, userID, chapterID, req.SubmissionID); err != nil {
		return nil, err
	}

	watchedSeconds := 0
	if req.TotalSeconds != nil {
		watchedSeconds = *req.TotalSeconds
	}
	now := time.Now()

	completion := &domain.VideoCompletion{
		ID:                 util.NewULID(),
		UserID:             userID,
		ChapterID:          chapterID,
		SubmissionID:       req.SubmissionID,
		IsCompleted:        true,
		ProgressPercentage: 100,
		WatchedSeconds:     watchedSeconds,
		TotalSeconds:       req.TotalSeconds,
		CompletedAt:        &now,
	}
	stored, err := s.videoRepo.Upsert(ctx, completion)
	if err != nil {
		return nil, domain.NewInternalError("failed to mark video completed", err)
	}
	return toVideoCompletionResponse(stored), nil
}

func (s *videoServiceImpl) CheckCompletion(ctx context.Context, userID, chapterID, submissionID string) (*dto.CheckCompletionResponse, error) {
	if err := s.checkOwnership(ctx, userID, chapterID, submissionID); err != nil {
		return nil, err
	}

	completion, err := s.videoRepo.Get(ctx, userID, chapterID, submissionID)
	if err != nil {
		return nil, domain.NewInternalError("failed to check video completion", err)
	}
	resp := &dto.CheckCompletionResponse{}
	if completion != nil {
		resp.IsCompleted = completion.IsCompleted
		resp.ProgressPercentage = completion.ProgressPercentage
		resp.Completion = toVideoCompletionResponse(completion)
	}
	return resp, nil
}

func (s *videoServiceImpl) checkOwnership(ctx context.Context, userID, chapterID, submissionID string) error {
	chapter, err := s.inductionRepo.GetChapterByID(ctx, chapterID)
	if err != nil {
		return domain.NewInternalError("failed to get chapter", err)
	}
	if chapter == nil {
		return domain.NewNotFoundError("chapter not found")
	}

	submission, err := s.submissionRepo.GetSubmissionByID(ctx, submissionID)
	if err != nil {
		return domain.NewInternalError("failed to get submission", err)
	}
	if submission == nil {
		return domain.NewNotFoundError("submission not found")
	}
	if submission.UserID != userID {
		return domain.NewUnauthorizedError()
	}
	return nil
}

func toVideoCompletionResponse(completion *domain.VideoCompletion) *dto.VideoCompletionResponse {
	return &dto.VideoCompletionResponse{
		ID:                 completion.ID,
		UserID:             completion.UserID,
		ChapterID:          completion.ChapterID,
		SubmissionID:       completion.SubmissionID,
		IsCompleted:        completion.IsCompleted,
		ProgressPercentage: completion.ProgressPercentage,
		WatchedSeconds:     completion.WatchedSeconds,
		TotalSeconds:       completion.TotalSeconds,
		CompletedAt:        completion.CompletedAt,
		CreatedAt:          completion.CreatedAt,
		UpdatedAt:          completion.UpdatedAt,
	}
}
