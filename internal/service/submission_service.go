package service

import (
	"context"
	"time"

	"github.com/sanjaykhatri/induction-backend/internal/domain"
	"github.com/sanjaykhatri/induction-backend/internal/dto"
	"github.com/sanjaykhatri/induction-backend/internal/logger"
	"github.com/sanjaykhatri/induction-backend/internal/util"

	"go.uber.org/zap"
)

// SubmissionService owns the submission state machine: starting an
// induction, recording answers, explicit completion, resume points and
// the admin review surface. All user-facing operations verify ownership
// before touching the submission.
type SubmissionService interface {
	Start(ctx context.Context, userID, inductionID string) (*dto.StartInductionResponse, error)
	Get(ctx context.Context, userID, submissionID string) (*dto.SubmissionResponse, error)
	// GetCompleted returns the user's completed submission for the
	// induction, for read-only review.
	GetCompleted(ctx context.Context, userID, inductionID string) (*dto.SubmissionResponse, error)
	SubmitAnswers(ctx context.Context, userID, submissionID string, req *dto.SubmitAnswersRequest) (*dto.SubmitAnswersResponse, error)
	Complete(ctx context.Context, userID, submissionID string) (*dto.CompleteSubmissionResponse, error)
	GetLastUnanswered(ctx context.Context, userID, submissionID string) (*dto.LastUnansweredResponse, error)

	ListSubmissions(ctx context.Context, filters dto.SubmissionListFilters) (*dto.SubmissionListResponse, error)
	Review(ctx context.Context, submissionID string) (*dto.SubmissionReviewResponse, error)
}

type submissionServiceImpl struct {
	submissionRepo domain.SubmissionRepository
	inductionRepo  domain.InductionRepository
	videoRepo      domain.VideoCompletionRepository
	userRepo       domain.UserRepository
	notifier       domain.Notifier
	resolveVideo   domain.VideoURLResolver
}

// NewSubmissionService creates a new instance of SubmissionService.
func NewSubmissionService(
	submissionRepo domain.SubmissionRepository,
	inductionRepo domain.InductionRepository,
	videoRepo domain.VideoCompletionRepository,
	userRepo domain.UserRepository,
	notifier domain.Notifier,
	resolveVideo domain.VideoURLResolver,
) SubmissionService {
	return &submissionServiceImpl{
		submissionRepo: submissionRepo,
		inductionRepo:  inductionRepo,
		videoRepo:      videoRepo,
		userRepo:       userRepo,
		notifier:       notifier,
		resolveVideo:   resolveVideo,
	}
}

func (s *submissionServiceImpl) Start(ctx context.Context, userID, inductionID string) (*dto.StartInductionResponse, error) {
	induction, err := s.inductionRepo.GetInductionByID(ctx, inductionID)
	if err != nil {
		return nil, domain.NewInternalError("failed to get induction", err)
	}
	if induction == nil {
		return nil, domain.NewNotFoundError("induction not found")
	}
	if !induction.IsActive {
		return nil, domain.NewInductionInactiveError(inductionID)
	}

	completed, err := s.submissionRepo.GetSubmissionByStatus(ctx, userID, inductionID,
		[]domain.SubmissionStatus{domain.StatusCompleted})
	if err != nil {
		return nil, domain.NewInternalError("failed to look up submission", err)
	}
	if completed != nil {
		hasNew, err := s.reconcile(ctx, completed)
		if err != nil {
			return nil, err
		}
		resp, err := s.toSubmissionResponse(ctx, completed, true)
		if err != nil {
			return nil, err
		}
		if hasNew {
			return &dto.StartInductionResponse{
				Message:        "New chapters have been added to this induction. Please complete them.",
				Submission:     *resp,
				HasNewChapters: true,
			}, nil
		}
		return &dto.StartInductionResponse{
			Message:    "You have already completed this induction.",
			Submission: *resp,
			Completed:  true,
		}, nil
	}

	existing, err := s.submissionRepo.GetSubmissionByStatus(ctx, userID, inductionID,
		[]domain.SubmissionStatus{domain.StatusInProgress, domain.StatusPending})
	if err != nil {
		return nil, domain.NewInternalError("failed to look up submission", err)
	}
	if existing != nil {
		resp, err := s.toSubmissionResponse(ctx, existing, true)
		if err != nil {
			return nil, err
		}
		return &dto.StartInductionResponse{Submission: *resp}, nil
	}

	withContent, err := s.inductionRepo.GetInductionWithContent(ctx, inductionID)
	if err != nil {
		return nil, domain.NewInternalError("failed to load induction content", err)
	}

	submission := &domain.Submission{
		ID:          util.NewULID(),
		UserID:      userID,
		InductionID: inductionID,
		Status:      domain.StatusInProgress,
		Snapshot:    domain.BuildSnapshot(withContent, s.resolveVideo),
	}
	if err := s.submissionRepo.CreateSubmission(ctx, submission); err != nil {
		return nil, domain.NewInternalError("failed to create submission", err)
	}

	logger.Get().Info("Submission started",
		zap.String("submission_id", submission.ID),
		zap.String("induction_id", inductionID))

	resp, err := s.toSubmissionResponse(ctx, submission, true)
	if err != nil {
		return nil, err
	}
	return &dto.StartInductionResponse{Submission: *resp}, nil
}

func (s *submissionServiceImpl) Get(ctx context.Context, userID, submissionID string) (*dto.SubmissionResponse, error) {
	submission, err := s.loadOwned(ctx, userID, submissionID)
	if err != nil {
		return nil, err
	}
	if err := s.enrichSnapshot(ctx, &submission.Snapshot); err != nil {
		return nil, err
	}
	return s.toSubmissionResponse(ctx, submission, true)
}

func (s *submissionServiceImpl) GetCompleted(ctx context.Context, userID, inductionID string) (*dto.SubmissionResponse, error) {
	completed, err := s.submissionRepo.GetSubmissionByStatus(ctx, userID, inductionID,
		[]domain.SubmissionStatus{domain.StatusCompleted})
	if err != nil {
		return nil, domain.NewInternalError("failed to look up submission", err)
	}
	if completed == nil {
		return nil, domain.NewNotFoundError("No completed submission found")
	}
	return s.toSubmissionResponse(ctx, completed, true)
}

func (s *submissionServiceImpl) SubmitAnswers(ctx context.Context, userID, submissionID string, req *dto.SubmitAnswersRequest) (*dto.SubmitAnswersResponse, error) {
	submission, err := s.loadOwned(ctx, userID, submissionID)
	if err != nil {
		return nil, err
	}
	if submission.Status == domain.StatusCompleted {
		return nil, domain.NewAlreadyCompletedError(submissionID)
	}

	// The chapter's video gates the whole batch: nothing is stored when
	// it has not been watched to the end.
	gate, err := s.videoRepo.Get(ctx, userID, req.ChapterID, submissionID)
	if err != nil {
		return nil, domain.NewInternalError("failed to check video completion", err)
	}
	if gate == nil || !gate.IsCompleted {
		return nil, domain.NewVideoNotCompletedError(req.ChapterID)
	}

	// Only questions captured in the snapshot are answerable; anything
	// else in the batch is a client error, not a row to store.
	known := submission.Snapshot.QuestionIDSet()
	for _, input := range req.Answers {
		if _, ok := known[input.QuestionID]; !ok {
			return nil, domain.ValidationErrors{
				domain.NewInvalidFormatError("answers.question_id", input.QuestionID),
			}
		}
	}

	for _, input := range req.Answers {
		answer := &domain.Answer{
			ID:           util.NewULID(),
			SubmissionID: submissionID,
			QuestionID:   input.QuestionID,
			Payload:      input.AnswerPayload,
		}
		if err := s.submissionRepo.UpsertAnswer(ctx, answer); err != nil {
			return nil, domain.NewInternalError("failed to store answer", err)
		}
	}

	answers, err := s.submissionRepo.GetAnswers(ctx, submissionID)
	if err != nil {
		return nil, domain.NewInternalError("failed to load answers", err)
	}

	// First-unanswered scan over the whole snapshot. Only answer presence
	// is checked here; the per-chapter video gate applies to submission,
	// not to this report.
	allQuestionsAnswered := true
	var firstUnanswered *dto.ChapterRef
	for i := range submission.Snapshot.Chapters {
		chapter := &submission.Snapshot.Chapters[i]
		for _, question := range chapter.Questions {
			if _, ok := answers[question.ID]; !ok {
				allQuestionsAnswered = false
				if firstUnanswered == nil {
					firstUnanswered = &dto.ChapterRef{
						ID:           chapter.ID,
						Title:        chapter.Title,
						DisplayOrder: chapter.DisplayOrder,
					}
				}
			}
		}
	}

	newStatus := domain.StatusPending
	var completedAt *time.Time

	if allQuestionsAnswered {
		allVideosCompleted, err := s.allVideosCompleted(ctx, submission)
		if err != nil {
			return nil, err
		}
		if allVideosCompleted {
			newChapters, err := s.detectNewChapters(ctx, submission)
			if err != nil {
				return nil, err
			}
			if len(newChapters) == 0 {
				newStatus = domain.StatusCompleted
				now := time.Now()
				completedAt = &now
			}
		}
	}

	if err := s.submissionRepo.UpdateStatus(ctx, submissionID, newStatus, completedAt); err != nil {
		return nil, domain.NewInternalError("failed to update submission status", err)
	}
	submission.Status = newStatus
	submission.CompletedAt = completedAt

	if newStatus == domain.StatusCompleted {
		s.notifyCompletion(submission)
	}

	return &dto.SubmitAnswersResponse{
		Message:               "Answers submitted successfully",
		AllQuestionsAnswered:  allQuestionsAnswered,
		Status:                string(newStatus),
		LastUnansweredChapter: firstUnanswered,
	}, nil
}

func (s *submissionServiceImpl) Complete(ctx context.Context, userID, submissionID string) (*dto.CompleteSubmissionResponse, error) {
	submission, err := s.loadOwned(ctx, userID, submissionID)
	if err != nil {
		return nil, err
	}

	hasNew, err := s.reconcile(ctx, submission)
	if err != nil {
		return nil, err
	}
	if hasNew {
		// Reported as a non-error outcome so the client can route the
		// user back into the new content.
		resp, err := s.toSubmissionResponse(ctx, submission, true)
		if err != nil {
			return nil, err
		}
		return &dto.CompleteSubmissionResponse{
			Message:        "New chapters have been added. Please complete them before finalizing.",
			Submission:     *resp,
			HasNewChapters: true,
		}, nil
	}

	if submission.Status == domain.StatusCompleted {
		return nil, domain.NewAlreadyCompletedError(submissionID)
	}

	answers, err := s.submissionRepo.GetAnswers(ctx, submissionID)
	if err != nil {
		return nil, domain.NewInternalError("failed to load answers", err)
	}

	allQuestionsAnswered := true
	var missing []domain.MissingAnswer
	for i := range submission.Snapshot.Chapters {
		chapter := &submission.Snapshot.Chapters[i]
		for _, question := range chapter.Questions {
			if _, ok := answers[question.ID]; !ok {
				allQuestionsAnswered = false
				missing = append(missing, domain.MissingAnswer{
					Chapter:  chapter.Title,
					Question: question.QuestionText,
				})
			}
		}
	}

	allVideosCompleted, err := s.allVideosCompleted(ctx, submission)
	if err != nil {
		return nil, err
	}

	if !allQuestionsAnswered || !allVideosCompleted {
		return nil, domain.NewIncompleteSubmissionError(allQuestionsAnswered, allVideosCompleted, missing)
	}

	now := time.Now()
	if err := s.submissionRepo.UpdateStatus(ctx, submissionID, domain.StatusCompleted, &now); err != nil {
		return nil, domain.NewInternalError("failed to complete submission", err)
	}
	submission.Status = domain.StatusCompleted
	submission.CompletedAt = &now

	s.notifyCompletion(submission)

	resp, err := s.toSubmissionResponse(ctx, submission, true)
	if err != nil {
		return nil, err
	}
	return &dto.CompleteSubmissionResponse{
		Message:    "Submission completed successfully",
		Submission: *resp,
	}, nil
}

func (s *submissionServiceImpl) GetLastUnanswered(ctx context.Context, userID, submissionID string) (*dto.LastUnansweredResponse, error) {
	submission, err := s.loadOwned(ctx, userID, submissionID)
	if err != nil {
		return nil, err
	}

	answers, err := s.submissionRepo.GetAnswers(ctx, submissionID)
	if err != nil {
		return nil, domain.NewInternalError("failed to load answers", err)
	}
	completedVideos, err := s.videoRepo.CompletedChapterIDs(ctx, submissionID)
	if err != nil {
		return nil, domain.NewInternalError("failed to load video completions", err)
	}

	resp := &dto.LastUnansweredResponse{}
	for i := range submission.Snapshot.Chapters {
		chapter := &submission.Snapshot.Chapters[i]

		// An unwatched video is the resume point, question unset.
		if _, ok := completedVideos[chapter.ID]; !ok {
			resp.LastUnansweredChapter = &dto.ChapterRef{
				ID:           chapter.ID,
				Title:        chapter.Title,
				DisplayOrder: chapter.DisplayOrder,
			}
			return resp, nil
		}

		for _, question := range chapter.Questions {
			if _, ok := answers[question.ID]; !ok {
				resp.LastUnansweredChapter = &dto.ChapterRef{
					ID:           chapter.ID,
					Title:        chapter.Title,
					DisplayOrder: chapter.DisplayOrder,
				}
				resp.LastUnansweredQuestion = &dto.QuestionRef{
					ID:           question.ID,
					QuestionText: question.QuestionText,
				}
				return resp, nil
			}
		}
	}
	return resp, nil
}

// reconcile folds chapters added to the live induction since the snapshot
// was taken into the submission. A completed submission is demoted to
// pending; a regression is never silently hidden.
func (s *submissionServiceImpl) reconcile(ctx context.Context, submission *domain.Submission) (bool, error) {
	newChapterIDs, err := s.detectNewChapters(ctx, submission)
	if err != nil {
		return false, err
	}
	if len(newChapterIDs) == 0 {
		return false, nil
	}

	chapters, err := s.inductionRepo.ListChaptersWithQuestions(ctx, newChapterIDs)
	if err != nil {
		return false, domain.NewInternalError("failed to load new chapters", err)
	}
	fragments := make([]domain.SnapshotChapter, 0, len(chapters))
	for i := range chapters {
		fragments = append(fragments, domain.BuildChapterSnapshot(&chapters[i], s.resolveVideo))
	}

	merged := submission.Snapshot.MergeChapters(fragments)
	newStatus := submission.Status
	if newStatus == domain.StatusCompleted {
		newStatus = domain.StatusPending
	}

	if err := s.submissionRepo.UpdateSnapshot(ctx, submission.ID, merged, newStatus); err != nil {
		return false, domain.NewInternalError("failed to persist reconciled snapshot", err)
	}
	submission.Snapshot = merged
	submission.Status = newStatus

	logger.Get().Info("Merged new chapters into submission",
		zap.String("submission_id", submission.ID),
		zap.Int("new_chapters", len(newChapterIDs)))
	return true, nil
}

func (s *submissionServiceImpl) detectNewChapters(ctx context.Context, submission *domain.Submission) ([]string, error) {
	liveIDs, err := s.inductionRepo.ListChapterIDs(ctx, submission.InductionID)
	if err != nil {
		return nil, domain.NewInternalError("failed to list live chapters", err)
	}
	return submission.Snapshot.NewChapterIDs(liveIDs), nil
}

func (s *submissionServiceImpl) allVideosCompleted(ctx context.Context, submission *domain.Submission) (bool, error) {
	completed, err := s.videoRepo.CompletedChapterIDs(ctx, submission.ID)
	if err != nil {
		return false, domain.NewInternalError("failed to load video completions", err)
	}
	for _, chapter := range submission.Snapshot.Chapters {
		if _, ok := completed[chapter.ID]; !ok {
			return false, nil
		}
	}
	return true, nil
}

// notifyCompletion dispatches the completion email without blocking the
// transition. Delivery failure leaves the submission completed.
func (s *submissionServiceImpl) notifyCompletion(submission *domain.Submission) {
	notification := &domain.CompletionNotification{
		SubmissionID:   submission.ID,
		InductionTitle: submission.Snapshot.Induction.Title,
	}
	user, err := s.userRepo.GetUserByID(context.Background(), submission.UserID)
	if err == nil && user != nil {
		notification.UserName = user.Name
		notification.UserEmail = user.Email
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := s.notifier.SubmissionCompleted(ctx, notification); err != nil {
			logger.Get().Error("Completion notification failed",
				zap.String("submission_id", notification.SubmissionID),
				zap.Error(err))
		}
	}()
}

// enrichSnapshot backfills correct answers missing from older snapshots
// with the live question's current value.
func (s *submissionServiceImpl) enrichSnapshot(ctx context.Context, snapshot *domain.Snapshot) error {
	for i := range snapshot.Chapters {
		for j := range snapshot.Chapters[i].Questions {
			question := &snapshot.Chapters[i].Questions[j]
			if len(question.CorrectAnswer) > 0 {
				continue
			}
			live, err := s.inductionRepo.GetQuestionByID(ctx, question.ID)
			if err != nil {
				return domain.NewInternalError("failed to load question", err)
			}
			if live != nil && len(live.CorrectAnswer) > 0 {
				question.CorrectAnswer = live.CorrectAnswer
			}
		}
	}
	return nil
}

func (s *submissionServiceImpl) loadOwned(ctx context.Context, userID, submissionID string) (*domain.Submission, error) {
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
	return submission, nil
}

func (s *submissionServiceImpl) ListSubmissions(ctx context.Context, filters dto.SubmissionListFilters) (*dto.SubmissionListResponse, error) {
	domainFilters := domain.SubmissionFilters{
		InductionID: filters.InductionID,
		Status:      domain.SubmissionStatus(filters.Status),
	}
	if filters.DateFrom != "" {
		from, err := time.Parse("2006-01-02", filters.DateFrom)
		if err != nil {
			return nil, domain.ValidationErrors{domain.NewInvalidFormatError("date_from", filters.DateFrom)}
		}
		domainFilters.DateFrom = &from
	}
	if filters.DateTo != "" {
		to, err := time.Parse("2006-01-02", filters.DateTo)
		if err != nil {
			return nil, domain.ValidationErrors{domain.NewInvalidFormatError("date_to", filters.DateTo)}
		}
		endOfDay := to.Add(24*time.Hour - time.Second)
		domainFilters.DateTo = &endOfDay
	}

	page := filters.Page
	if page < 1 {
		page = 1
	}
	limit := filters.Limit
	if limit < 1 || limit > 100 {
		limit = 20
	}

	submissions, total, err := s.submissionRepo.ListSubmissions(ctx, domainFilters, limit, (page-1)*limit)
	if err != nil {
		return nil, domain.NewInternalError("failed to list submissions", err)
	}

	responses := make([]dto.SubmissionResponse, 0, len(submissions))
	for i := range submissions {
		resp, err := s.toSubmissionResponse(ctx, &submissions[i], true)
		if err != nil {
			return nil, err
		}
		responses = append(responses, *resp)
	}

	totalPages := (total + limit - 1) / limit
	return &dto.SubmissionListResponse{
		Submissions: responses,
		Pagination: dto.PaginationInfo{
			TotalItems:  total,
			Limit:       limit,
			CurrentPage: page,
			TotalPages:  totalPages,
		},
	}, nil
}

func (s *submissionServiceImpl) Review(ctx context.Context, submissionID string) (*dto.SubmissionReviewResponse, error) {
	submission, err := s.submissionRepo.GetSubmissionByID(ctx, submissionID)
	if err != nil {
		return nil, domain.NewInternalError("failed to get submission", err)
	}
	if submission == nil {
		return nil, domain.NewNotFoundError("submission not found")
	}

	if err := s.enrichSnapshot(ctx, &submission.Snapshot); err != nil {
		return nil, err
	}
	answers, err := s.submissionRepo.GetAnswers(ctx, submissionID)
	if err != nil {
		return nil, domain.NewInternalError("failed to load answers", err)
	}

	var reviews []dto.QuestionReview
	totalQuestions, correct, wrong, unanswered := 0, 0, 0, 0

	for i := range submission.Snapshot.Chapters {
		chapter := &submission.Snapshot.Chapters[i]
		for _, question := range chapter.Questions {
			totalQuestions++
			review := dto.QuestionReview{
				QuestionID:      question.ID,
				ChapterID:       chapter.ID,
				ChapterTitle:    chapter.Title,
				QuestionText:    question.QuestionText,
				QuestionType:    string(question.Type),
				QuestionOptions: question.Options,
				CorrectAnswer:   question.CorrectAnswer,
			}
			if payload, ok := answers[question.ID]; ok {
				review.IsAnswered = true
				p := payload
				review.UserAnswer = &p
				review.IsCorrect = domain.IsCorrect(question, payload)
				if review.IsCorrect {
					correct++
				} else {
					wrong++
				}
			} else {
				unanswered++
			}
			reviews = append(reviews, review)
		}
	}

	resp, err := s.toSubmissionResponse(ctx, submission, true)
	if err != nil {
		return nil, err
	}
	return &dto.SubmissionReviewResponse{
		Submission: *resp,
		Statistics: dto.ReviewStatistics{
			TotalQuestions:  totalQuestions,
			CorrectAnswers:  correct,
			WrongAnswers:    wrong,
			Unanswered:      unanswered,
			ScorePercentage: util.Percentage(correct, totalQuestions),
		},
		Questions: reviews,
	}, nil
}

// toSubmissionResponse maps a submission for the wire, optionally
// embedding the owning user and the live induction.
func (s *submissionServiceImpl) toSubmissionResponse(ctx context.Context, submission *domain.Submission, embed bool) (*dto.SubmissionResponse, error) {
	resp := &dto.SubmissionResponse{
		ID:          submission.ID,
		UserID:      submission.UserID,
		InductionID: submission.InductionID,
		Status:      string(submission.Status),
		Snapshot:    submission.Snapshot,
		CompletedAt: submission.CompletedAt,
		CreatedAt:   submission.CreatedAt,
		UpdatedAt:   submission.UpdatedAt,
	}
	if !embed {
		return resp, nil
	}

	user, err := s.userRepo.GetUserByID(ctx, submission.UserID)
	if err != nil {
		return nil, domain.NewInternalError("failed to load submission user", err)
	}
	if user != nil {
		u := ToUserResponse(user)
		resp.User = &u
	}

	induction, err := s.inductionRepo.GetInductionByID(ctx, submission.InductionID)
	if err != nil {
		return nil, domain.NewInternalError("failed to load submission induction", err)
	}
	if induction != nil {
		resp.Induction = &dto.InductionResponse{
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
