package service

import (
	"context"

	"github.com/sanjaykhatri/induction-backend/internal/domain"
	"github.com/sanjaykhatri/induction-backend/internal/dto"
	"github.com/sanjaykhatri/induction-backend/internal/util"
)

// ProgressService produces the per-user progress rollups: chapter watch
// state and simple completion percentages over each attempt's snapshot.
type ProgressService interface {
	ListUserProgress(ctx context.Context, userID string) ([]dto.UserProgressEntry, error)
	GetSubmissionProgress(ctx context.Context, userID, submissionID string) (*dto.SubmissionProgressResponse, error)
}

type progressServiceImpl struct {
	submissionRepo domain.SubmissionRepository
	videoRepo      domain.VideoCompletionRepository
	inductionRepo  domain.InductionRepository
	userRepo       domain.UserRepository
}

// NewProgressService creates a new instance of ProgressService.
func NewProgressService(
	submissionRepo domain.SubmissionRepository,
	videoRepo domain.VideoCompletionRepository,
	inductionRepo domain.InductionRepository,
	userRepo domain.UserRepository,
) ProgressService {
	return &progressServiceImpl{
		submissionRepo: submissionRepo,
		videoRepo:      videoRepo,
		inductionRepo:  inductionRepo,
		userRepo:       userRepo,
	}
}

func (s *progressServiceImpl) ListUserProgress(ctx context.Context, userID string) ([]dto.UserProgressEntry, error) {
	submissions, err := s.submissionRepo.ListSubmissionsByUser(ctx, userID)
	if err != nil {
		return nil, domain.NewInternalError("failed to list submissions", err)
	}

	entries := make([]dto.UserProgressEntry, 0, len(submissions))
	for i := range submissions {
		submission := &submissions[i]
		if len(submission.Snapshot.Chapters) == 0 {
			continue
		}

		chapters, completedChapters, err := s.chapterProgress(ctx, submission, false)
		if err != nil {
			return nil, err
		}
		totalChapters := len(submission.Snapshot.Chapters)

		entries = append(entries, dto.UserProgressEntry{
			SubmissionID: submission.ID,
			InductionID:  submission.InductionID,
			Induction: dto.InductionResponse{
				ID:          submission.Snapshot.Induction.ID,
				Title:       submission.Snapshot.Induction.Title,
				Description: submission.Snapshot.Induction.Description,
			},
			Status:   string(submission.Status),
			Chapters: chapters,
			Progress: dto.ProgressRollup{
				TotalChapters:        totalChapters,
				CompletedChapters:    completedChapters,
				CompletionPercentage: util.Percentage(completedChapters, totalChapters),
			},
			CompletedAt: submission.CompletedAt,
			StartedAt:   submission.CreatedAt,
		})
	}
	return entries, nil
}

func (s *progressServiceImpl) GetSubmissionProgress(ctx context.Context, userID, submissionID string) (*dto.SubmissionProgressResponse, error) {
	submission, err := s.submissionRepo.GetSubmissionByID(ctx, submissionID)
	if err != nil {
		return nil, domain.NewInternalError("failed to get submission", err)
	}
	if submission == nil {
		return nil, domain.NewNotFoundError("submission not found")
	}
	if submission.UserID != userID {
		return nil, domain.NewUnauthorizedError()
	}

	chapters, completedChapters, err := s.chapterProgress(ctx, submission, true)
	if err != nil {
		return nil, err
	}
	totalChapters := len(submission.Snapshot.Chapters)

	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, domain.NewInternalError("failed to load user", err)
	}
	induction, err := s.inductionRepo.GetInductionByID(ctx, submission.InductionID)
	if err != nil {
		return nil, domain.NewInternalError("failed to load induction", err)
	}

	resp := &dto.SubmissionProgressResponse{
		Submission: dto.SubmissionResponse{
			ID:          submission.ID,
			UserID:      submission.UserID,
			InductionID: submission.InductionID,
			Status:      string(submission.Status),
			Snapshot:    submission.Snapshot,
			CompletedAt: submission.CompletedAt,
			CreatedAt:   submission.CreatedAt,
			UpdatedAt:   submission.UpdatedAt,
		},
		Chapters: chapters,
		Progress: dto.ProgressRollup{
			TotalChapters:        totalChapters,
			CompletedChapters:    completedChapters,
			CompletionPercentage: util.Percentage(completedChapters, totalChapters),
		},
	}
	if user != nil {
		u := ToUserResponse(user)
		resp.Submission.User = &u
	}
	if induction != nil {
		resp.Submission.Induction = &dto.InductionResponse{
			ID:           induction.ID,
			Title:        induction.Title,
			Description:  induction.Description,
			IsActive:     induction.IsActive,
			DisplayOrder: induction.DisplayOrder,
			CreatedAt:    induction.CreatedAt,
			UpdatedAt:    induction.UpdatedAt,
		}
	}
	return resp, nil
}

// chapterProgress walks the snapshot chapters and joins each with its
// watch record. Absence of a record reads as zero progress.
func (s *progressServiceImpl) chapterProgress(ctx context.Context, submission *domain.Submission, detailed bool) ([]dto.ProgressChapter, int, error) {
	chapters := make([]dto.ProgressChapter, 0, len(submission.Snapshot.Chapters))
	completedCount := 0

	for i := range submission.Snapshot.Chapters {
		chapter := &submission.Snapshot.Chapters[i]
		completion, err := s.videoRepo.Get(ctx, submission.UserID, chapter.ID, submission.ID)
		if err != nil {
			return nil, 0, domain.NewInternalError("failed to load video completion", err)
		}

		entry := dto.ProgressChapter{
			ID:          chapter.ID,
			Title:       chapter.Title,
			Description: chapter.Description,
		}
		if completion != nil {
			entry.IsCompleted = completion.IsCompleted
			entry.ProgressPercentage = completion.ProgressPercentage
			entry.CompletedAt = completion.CompletedAt
		}
		if entry.IsCompleted {
			completedCount++
		}
		if detailed {
			if chapter.VideoURL != nil {
				entry.VideoURL = *chapter.VideoURL
			}
			entry.QuestionsCount = len(chapter.Questions)
		}
		chapters = append(chapters, entry)
	}
	return chapters, completedCount, nil
}
