package service

import (
	"context"
	"testing"
	"time"

	"github.com/sanjaykhatri/induction-backend/internal/domain"
	"github.com/sanjaykhatri/induction-backend/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const (
	testUserID       = "01HUSER0000000000000000000"
	testInductionID  = "01HINDN0000000000000000000"
	testSubmissionID = "01HSUBM0000000000000000000"
)

func testResolver(path string) string { return "https://cdn.example.com/" + path }

type submissionMocks struct {
	submissionRepo *MockSubmissionRepository
	inductionRepo  *MockInductionRepository
	videoRepo      *MockVideoCompletionRepository
	userRepo       *MockUserRepository
	notifier       *MockNotifier
}

func newSubmissionService(t *testing.T) (SubmissionService, *submissionMocks) {
	t.Helper()
	m := &submissionMocks{
		submissionRepo: new(MockSubmissionRepository),
		inductionRepo:  new(MockInductionRepository),
		videoRepo:      new(MockVideoCompletionRepository),
		userRepo:       new(MockUserRepository),
		notifier:       new(MockNotifier),
	}
	svc := NewSubmissionService(m.submissionRepo, m.inductionRepo, m.videoRepo, m.userRepo, m.notifier, testResolver)
	return svc, m
}

func activeInduction() *domain.Induction {
	return &domain.Induction{
		ID:       testInductionID,
		Title:    "Workplace Safety",
		IsActive: true,
		Chapters: []domain.Chapter{
			{
				ID:           "ch-1",
				InductionID:  testInductionID,
				Title:        "Fire Safety",
				VideoURL:     "https://videos.example.com/fire",
				DisplayOrder: 1,
				Questions: []domain.Question{
					{
						ID:            "q-1",
						ChapterID:     "ch-1",
						QuestionText:  "Where is the extinguisher?",
						Type:          domain.QuestionSingleChoice,
						Options:       []domain.Option{{ID: "1", Label: "Hallway"}, {ID: "2", Label: "Roof"}},
						CorrectAnswer: []string{"1"},
						DisplayOrder:  1,
					},
				},
			},
		},
	}
}

func snapshotSubmission(status domain.SubmissionStatus) *domain.Submission {
	return &domain.Submission{
		ID:          testSubmissionID,
		UserID:      testUserID,
		InductionID: testInductionID,
		Status:      status,
		Snapshot:    domain.BuildSnapshot(activeInduction(), testResolver),
	}
}

func expectEmbeds(m *submissionMocks) {
	m.userRepo.On("GetUserByID", mock.Anything, testUserID).
		Return(&domain.User{ID: testUserID, Name: "Jordan", Email: "jordan@example.com", Role: domain.RoleUser}, nil)
	m.inductionRepo.On("GetInductionByID", mock.Anything, testInductionID).
		Return(activeInduction(), nil)
}

func TestStartCreatesSnapshotSubmission(t *testing.T) {
	svc, m := newSubmissionService(t)

	m.inductionRepo.On("GetInductionByID", mock.Anything, testInductionID).Return(activeInduction(), nil)
	m.submissionRepo.On("GetSubmissionByStatus", mock.Anything, testUserID, testInductionID,
		[]domain.SubmissionStatus{domain.StatusCompleted}).Return(nil, nil)
	m.submissionRepo.On("GetSubmissionByStatus", mock.Anything, testUserID, testInductionID,
		[]domain.SubmissionStatus{domain.StatusInProgress, domain.StatusPending}).Return(nil, nil)
	m.inductionRepo.On("GetInductionWithContent", mock.Anything, testInductionID).Return(activeInduction(), nil)
	m.userRepo.On("GetUserByID", mock.Anything, testUserID).
		Return(&domain.User{ID: testUserID, Name: "Jordan", Email: "jordan@example.com", Role: domain.RoleUser}, nil)

	var created *domain.Submission
	m.submissionRepo.On("CreateSubmission", mock.Anything, mock.AnythingOfType("*domain.Submission")).
		Run(func(args mock.Arguments) { created = args.Get(1).(*domain.Submission) }).
		Return(nil)

	resp, err := svc.Start(context.Background(), testUserID, testInductionID)
	require.NoError(t, err)

	require.NotNil(t, created)
	assert.Equal(t, domain.StatusInProgress, created.Status)
	assert.Len(t, created.Snapshot.Chapters, 1)
	assert.Equal(t, []string{"1"}, created.Snapshot.Chapters[0].Questions[0].CorrectAnswer,
		"snapshot must carry correct answers for self-contained grading")

	assert.False(t, resp.HasNewChapters)
	assert.False(t, resp.Completed)
	assert.Equal(t, string(domain.StatusInProgress), resp.Submission.Status)
}

func TestStartReturnsExistingActiveSubmission(t *testing.T) {
	svc, m := newSubmissionService(t)

	existing := snapshotSubmission(domain.StatusPending)
	m.inductionRepo.On("GetInductionByID", mock.Anything, testInductionID).Return(activeInduction(), nil)
	m.submissionRepo.On("GetSubmissionByStatus", mock.Anything, testUserID, testInductionID,
		[]domain.SubmissionStatus{domain.StatusCompleted}).Return(nil, nil)
	m.submissionRepo.On("GetSubmissionByStatus", mock.Anything, testUserID, testInductionID,
		[]domain.SubmissionStatus{domain.StatusInProgress, domain.StatusPending}).Return(existing, nil)
	m.userRepo.On("GetUserByID", mock.Anything, testUserID).
		Return(&domain.User{ID: testUserID, Name: "Jordan", Role: domain.RoleUser}, nil)

	resp, err := svc.Start(context.Background(), testUserID, testInductionID)
	require.NoError(t, err)

	assert.Equal(t, testSubmissionID, resp.Submission.ID)
	m.submissionRepo.AssertNotCalled(t, "CreateSubmission", mock.Anything, mock.Anything)
}

func TestStartRejectsInactiveInduction(t *testing.T) {
	svc, m := newSubmissionService(t)

	inactive := activeInduction()
	inactive.IsActive = false
	m.inductionRepo.On("GetInductionByID", mock.Anything, testInductionID).Return(inactive, nil)

	_, err := svc.Start(context.Background(), testUserID, testInductionID)
	require.Error(t, err)

	domainErr, ok := err.(*domain.DomainError)
	require.True(t, ok)
	assert.Equal(t, domain.CodeInductionInactive, domainErr.Code)
}

func TestStartDemotesCompletedSubmissionWhenChaptersAdded(t *testing.T) {
	svc, m := newSubmissionService(t)

	completed := snapshotSubmission(domain.StatusCompleted)
	newChapter := domain.Chapter{
		ID:           "ch-2",
		InductionID:  testInductionID,
		Title:        "First Aid",
		VideoURL:     "https://videos.example.com/firstaid",
		DisplayOrder: 2,
	}

	m.inductionRepo.On("GetInductionByID", mock.Anything, testInductionID).Return(activeInduction(), nil)
	m.submissionRepo.On("GetSubmissionByStatus", mock.Anything, testUserID, testInductionID,
		[]domain.SubmissionStatus{domain.StatusCompleted}).Return(completed, nil)
	m.inductionRepo.On("ListChapterIDs", mock.Anything, testInductionID).Return([]string{"ch-1", "ch-2"}, nil)
	m.inductionRepo.On("ListChaptersWithQuestions", mock.Anything, []string{"ch-2"}).
		Return([]domain.Chapter{newChapter}, nil)
	m.submissionRepo.On("UpdateSnapshot", mock.Anything, testSubmissionID, mock.AnythingOfType("domain.Snapshot"), domain.StatusPending).
		Return(nil)
	m.userRepo.On("GetUserByID", mock.Anything, testUserID).
		Return(&domain.User{ID: testUserID, Name: "Jordan", Role: domain.RoleUser}, nil)

	resp, err := svc.Start(context.Background(), testUserID, testInductionID)
	require.NoError(t, err)

	assert.True(t, resp.HasNewChapters)
	assert.False(t, resp.Completed)
	assert.Equal(t, string(domain.StatusPending), resp.Submission.Status)
	assert.Len(t, resp.Submission.Snapshot.Chapters, 2)
	m.submissionRepo.AssertExpectations(t)
}

func TestStartCompletedSubmissionWithoutNewChapters(t *testing.T) {
	svc, m := newSubmissionService(t)

	completed := snapshotSubmission(domain.StatusCompleted)
	m.inductionRepo.On("GetInductionByID", mock.Anything, testInductionID).Return(activeInduction(), nil)
	m.submissionRepo.On("GetSubmissionByStatus", mock.Anything, testUserID, testInductionID,
		[]domain.SubmissionStatus{domain.StatusCompleted}).Return(completed, nil)
	m.inductionRepo.On("ListChapterIDs", mock.Anything, testInductionID).Return([]string{"ch-1"}, nil)
	m.userRepo.On("GetUserByID", mock.Anything, testUserID).
		Return(&domain.User{ID: testUserID, Name: "Jordan", Role: domain.RoleUser}, nil)

	resp, err := svc.Start(context.Background(), testUserID, testInductionID)
	require.NoError(t, err)

	assert.True(t, resp.Completed)
	assert.False(t, resp.HasNewChapters)
	m.submissionRepo.AssertNotCalled(t, "UpdateSnapshot", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSubmitAnswersRequiresWatchedVideo(t *testing.T) {
	svc, m := newSubmissionService(t)

	m.submissionRepo.On("GetSubmissionByID", mock.Anything, testSubmissionID).
		Return(snapshotSubmission(domain.StatusInProgress), nil)
	m.videoRepo.On("Get", mock.Anything, testUserID, "ch-1", testSubmissionID).Return(nil, nil)

	_, err := svc.SubmitAnswers(context.Background(), testUserID, testSubmissionID, &dto.SubmitAnswersRequest{
		ChapterID: "ch-1",
		Answers:   []dto.AnswerInput{{QuestionID: "q-1", AnswerPayload: domain.NewScalarAnswer("1")}},
	})
	require.Error(t, err)

	domainErr, ok := err.(*domain.DomainError)
	require.True(t, ok)
	assert.Equal(t, domain.CodeVideoNotCompleted, domainErr.Code)
	m.submissionRepo.AssertNotCalled(t, "UpsertAnswer", mock.Anything, mock.Anything)
}

func TestSubmitAnswersRejectsCompletedSubmission(t *testing.T) {
	svc, m := newSubmissionService(t)

	m.submissionRepo.On("GetSubmissionByID", mock.Anything, testSubmissionID).
		Return(snapshotSubmission(domain.StatusCompleted), nil)

	_, err := svc.SubmitAnswers(context.Background(), testUserID, testSubmissionID, &dto.SubmitAnswersRequest{
		ChapterID: "ch-1",
		Answers:   []dto.AnswerInput{{QuestionID: "q-1", AnswerPayload: domain.NewScalarAnswer("1")}},
	})
	require.Error(t, err)

	domainErr, ok := err.(*domain.DomainError)
	require.True(t, ok)
	assert.Equal(t, domain.CodeAlreadyCompleted, domainErr.Code)
}

func TestSubmitAnswersRejectsUnknownQuestion(t *testing.T) {
	svc, m := newSubmissionService(t)

	watched := &domain.VideoCompletion{IsCompleted: true}
	m.submissionRepo.On("GetSubmissionByID", mock.Anything, testSubmissionID).
		Return(snapshotSubmission(domain.StatusInProgress), nil)
	m.videoRepo.On("Get", mock.Anything, testUserID, "ch-1", testSubmissionID).Return(watched, nil)

	_, err := svc.SubmitAnswers(context.Background(), testUserID, testSubmissionID, &dto.SubmitAnswersRequest{
		ChapterID: "ch-1",
		Answers: []dto.AnswerInput{
			{QuestionID: "q-1", AnswerPayload: domain.NewScalarAnswer("1")},
			{QuestionID: "q-404", AnswerPayload: domain.NewScalarAnswer("2")},
		},
	})
	require.Error(t, err)

	var validationErrs domain.ValidationErrors
	require.ErrorAs(t, err, &validationErrs)
	assert.Equal(t, "answers.question_id", validationErrs[0].Field)
	m.submissionRepo.AssertNotCalled(t, "UpsertAnswer", mock.Anything, mock.Anything)
}

func TestSubmitAnswersCompletesAndNotifiesOnce(t *testing.T) {
	svc, m := newSubmissionService(t)

	watched := &domain.VideoCompletion{IsCompleted: true}
	m.submissionRepo.On("GetSubmissionByID", mock.Anything, testSubmissionID).
		Return(snapshotSubmission(domain.StatusInProgress), nil)
	m.videoRepo.On("Get", mock.Anything, testUserID, "ch-1", testSubmissionID).Return(watched, nil)
	m.submissionRepo.On("UpsertAnswer", mock.Anything, mock.AnythingOfType("*domain.Answer")).Return(nil)
	m.submissionRepo.On("GetAnswers", mock.Anything, testSubmissionID).
		Return(map[string]domain.AnswerPayload{"q-1": domain.NewScalarAnswer("1")}, nil)
	m.videoRepo.On("CompletedChapterIDs", mock.Anything, testSubmissionID).
		Return(map[string]struct{}{"ch-1": {}}, nil)
	m.inductionRepo.On("ListChapterIDs", mock.Anything, testInductionID).Return([]string{"ch-1"}, nil)
	m.submissionRepo.On("UpdateStatus", mock.Anything, testSubmissionID, domain.StatusCompleted, mock.Anything).Return(nil)
	m.userRepo.On("GetUserByID", mock.Anything, testUserID).
		Return(&domain.User{ID: testUserID, Name: "Jordan", Email: "jordan@example.com", Role: domain.RoleUser}, nil)

	notified := make(chan *domain.CompletionNotification, 1)
	m.notifier.On("SubmissionCompleted", mock.Anything, mock.AnythingOfType("*domain.CompletionNotification")).
		Run(func(args mock.Arguments) { notified <- args.Get(1).(*domain.CompletionNotification) }).
		Return(nil)

	resp, err := svc.SubmitAnswers(context.Background(), testUserID, testSubmissionID, &dto.SubmitAnswersRequest{
		ChapterID: "ch-1",
		Answers:   []dto.AnswerInput{{QuestionID: "q-1", AnswerPayload: domain.NewScalarAnswer("1")}},
	})
	require.NoError(t, err)

	assert.True(t, resp.AllQuestionsAnswered)
	assert.Equal(t, string(domain.StatusCompleted), resp.Status)
	assert.Nil(t, resp.LastUnansweredChapter)

	select {
	case n := <-notified:
		assert.Equal(t, testSubmissionID, n.SubmissionID)
		assert.Equal(t, "jordan@example.com", n.UserEmail)
		assert.Equal(t, "Workplace Safety", n.InductionTitle)
	case <-time.After(2 * time.Second):
		t.Fatal("completion notification was never dispatched")
	}
	m.notifier.AssertNumberOfCalls(t, "SubmissionCompleted", 1)
}

func TestSubmitAnswersStaysPendingWhenQuestionsRemain(t *testing.T) {
	svc, m := newSubmissionService(t)

	submission := snapshotSubmission(domain.StatusInProgress)
	submission.Snapshot.Chapters[0].Questions = append(submission.Snapshot.Chapters[0].Questions,
		domain.SnapshotQuestion{ID: "q-2", QuestionText: "Second question", Type: domain.QuestionText, CorrectAnswer: []string{"yes"}})

	m.submissionRepo.On("GetSubmissionByID", mock.Anything, testSubmissionID).Return(submission, nil)
	m.videoRepo.On("Get", mock.Anything, testUserID, "ch-1", testSubmissionID).
		Return(&domain.VideoCompletion{IsCompleted: true}, nil)
	m.submissionRepo.On("UpsertAnswer", mock.Anything, mock.AnythingOfType("*domain.Answer")).Return(nil)
	m.submissionRepo.On("GetAnswers", mock.Anything, testSubmissionID).
		Return(map[string]domain.AnswerPayload{"q-1": domain.NewScalarAnswer("1")}, nil)
	m.submissionRepo.On("UpdateStatus", mock.Anything, testSubmissionID, domain.StatusPending, (*time.Time)(nil)).Return(nil)

	resp, err := svc.SubmitAnswers(context.Background(), testUserID, testSubmissionID, &dto.SubmitAnswersRequest{
		ChapterID: "ch-1",
		Answers:   []dto.AnswerInput{{QuestionID: "q-1", AnswerPayload: domain.NewScalarAnswer("1")}},
	})
	require.NoError(t, err)

	assert.False(t, resp.AllQuestionsAnswered)
	assert.Equal(t, string(domain.StatusPending), resp.Status)
	require.NotNil(t, resp.LastUnansweredChapter)
	assert.Equal(t, "ch-1", resp.LastUnansweredChapter.ID)
	m.notifier.AssertNotCalled(t, "SubmissionCompleted", mock.Anything, mock.Anything)
}

func TestCompleteRejectsIncompleteSubmission(t *testing.T) {
	svc, m := newSubmissionService(t)

	m.submissionRepo.On("GetSubmissionByID", mock.Anything, testSubmissionID).
		Return(snapshotSubmission(domain.StatusPending), nil)
	m.inductionRepo.On("ListChapterIDs", mock.Anything, testInductionID).Return([]string{"ch-1"}, nil)
	m.submissionRepo.On("GetAnswers", mock.Anything, testSubmissionID).
		Return(map[string]domain.AnswerPayload{}, nil)
	m.videoRepo.On("CompletedChapterIDs", mock.Anything, testSubmissionID).
		Return(map[string]struct{}{}, nil)

	_, err := svc.Complete(context.Background(), testUserID, testSubmissionID)
	require.Error(t, err)

	domainErr, ok := err.(*domain.DomainError)
	require.True(t, ok)
	assert.Equal(t, domain.CodeIncompleteSubmission, domainErr.Code)
	assert.Equal(t, false, domainErr.Context["all_questions_answered"])
	assert.Equal(t, false, domainErr.Context["all_videos_completed"])
}

func TestCompleteReportsNewChaptersAsOutcome(t *testing.T) {
	svc, m := newSubmissionService(t)

	submission := snapshotSubmission(domain.StatusPending)
	newChapter := domain.Chapter{ID: "ch-2", InductionID: testInductionID, Title: "First Aid", VideoURL: "https://v", DisplayOrder: 2}

	m.submissionRepo.On("GetSubmissionByID", mock.Anything, testSubmissionID).Return(submission, nil)
	m.inductionRepo.On("ListChapterIDs", mock.Anything, testInductionID).Return([]string{"ch-1", "ch-2"}, nil)
	m.inductionRepo.On("ListChaptersWithQuestions", mock.Anything, []string{"ch-2"}).
		Return([]domain.Chapter{newChapter}, nil)
	m.submissionRepo.On("UpdateSnapshot", mock.Anything, testSubmissionID, mock.AnythingOfType("domain.Snapshot"), domain.StatusPending).Return(nil)
	expectEmbeds(m)

	resp, err := svc.Complete(context.Background(), testUserID, testSubmissionID)
	require.NoError(t, err)

	assert.True(t, resp.HasNewChapters)
	assert.Len(t, resp.Submission.Snapshot.Chapters, 2)
	m.submissionRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCompleteFinalizesSubmission(t *testing.T) {
	svc, m := newSubmissionService(t)

	m.submissionRepo.On("GetSubmissionByID", mock.Anything, testSubmissionID).
		Return(snapshotSubmission(domain.StatusPending), nil)
	m.inductionRepo.On("ListChapterIDs", mock.Anything, testInductionID).Return([]string{"ch-1"}, nil)
	m.submissionRepo.On("GetAnswers", mock.Anything, testSubmissionID).
		Return(map[string]domain.AnswerPayload{"q-1": domain.NewScalarAnswer("1")}, nil)
	m.videoRepo.On("CompletedChapterIDs", mock.Anything, testSubmissionID).
		Return(map[string]struct{}{"ch-1": {}}, nil)
	m.submissionRepo.On("UpdateStatus", mock.Anything, testSubmissionID, domain.StatusCompleted, mock.Anything).Return(nil)
	expectEmbeds(m)

	notified := make(chan struct{}, 1)
	m.notifier.On("SubmissionCompleted", mock.Anything, mock.Anything).
		Run(func(mock.Arguments) { notified <- struct{}{} }).
		Return(nil)

	resp, err := svc.Complete(context.Background(), testUserID, testSubmissionID)
	require.NoError(t, err)

	assert.False(t, resp.HasNewChapters)
	assert.Equal(t, string(domain.StatusCompleted), resp.Submission.Status)
	require.NotNil(t, resp.Submission.CompletedAt)

	select {
	case <-notified:
	case <-time.After(2 * time.Second):
		t.Fatal("completion notification was never dispatched")
	}
}

func TestGetLastUnansweredStopsAtUnwatchedVideo(t *testing.T) {
	svc, m := newSubmissionService(t)

	submission := snapshotSubmission(domain.StatusInProgress)
	submission.Snapshot = submission.Snapshot.MergeChapters([]domain.SnapshotChapter{
		{ID: "ch-2", Title: "First Aid", DisplayOrder: 2,
			Questions: []domain.SnapshotQuestion{{ID: "q-2", QuestionText: "Q2"}}},
	})

	m.submissionRepo.On("GetSubmissionByID", mock.Anything, testSubmissionID).Return(submission, nil)
	m.submissionRepo.On("GetAnswers", mock.Anything, testSubmissionID).
		Return(map[string]domain.AnswerPayload{"q-1": domain.NewScalarAnswer("1")}, nil)
	// First chapter watched, second not.
	m.videoRepo.On("CompletedChapterIDs", mock.Anything, testSubmissionID).
		Return(map[string]struct{}{"ch-1": {}}, nil)

	resp, err := svc.GetLastUnanswered(context.Background(), testUserID, testSubmissionID)
	require.NoError(t, err)

	require.NotNil(t, resp.LastUnansweredChapter)
	assert.Equal(t, "ch-2", resp.LastUnansweredChapter.ID)
	assert.Nil(t, resp.LastUnansweredQuestion, "an unwatched video is reported without a question")
}

func TestGetLastUnansweredFindsOpenQuestion(t *testing.T) {
	svc, m := newSubmissionService(t)

	m.submissionRepo.On("GetSubmissionByID", mock.Anything, testSubmissionID).
		Return(snapshotSubmission(domain.StatusInProgress), nil)
	m.submissionRepo.On("GetAnswers", mock.Anything, testSubmissionID).
		Return(map[string]domain.AnswerPayload{}, nil)
	m.videoRepo.On("CompletedChapterIDs", mock.Anything, testSubmissionID).
		Return(map[string]struct{}{"ch-1": {}}, nil)

	resp, err := svc.GetLastUnanswered(context.Background(), testUserID, testSubmissionID)
	require.NoError(t, err)

	require.NotNil(t, resp.LastUnansweredChapter)
	assert.Equal(t, "ch-1", resp.LastUnansweredChapter.ID)
	require.NotNil(t, resp.LastUnansweredQuestion)
	assert.Equal(t, "q-1", resp.LastUnansweredQuestion.ID)
}

func TestGetRejectsForeignSubmission(t *testing.T) {
	svc, m := newSubmissionService(t)

	foreign := snapshotSubmission(domain.StatusInProgress)
	foreign.UserID = "01HOTHER000000000000000000"
	m.submissionRepo.On("GetSubmissionByID", mock.Anything, testSubmissionID).Return(foreign, nil)

	_, err := svc.Get(context.Background(), testUserID, testSubmissionID)
	require.Error(t, err)

	domainErr, ok := err.(*domain.DomainError)
	require.True(t, ok)
	assert.Equal(t, domain.CodeUnauthorized, domainErr.Code)
}

func TestReviewGradesAgainstSnapshot(t *testing.T) {
	svc, m := newSubmissionService(t)

	submission := snapshotSubmission(domain.StatusCompleted)
	submission.Snapshot.Chapters[0].Questions = append(submission.Snapshot.Chapters[0].Questions,
		domain.SnapshotQuestion{ID: "q-2", QuestionText: "Q2", Type: domain.QuestionText, CorrectAnswer: []string{"yes"}},
		domain.SnapshotQuestion{ID: "q-3", QuestionText: "Q3", Type: domain.QuestionText, CorrectAnswer: []string{"no"}},
	)

	m.submissionRepo.On("GetSubmissionByID", mock.Anything, testSubmissionID).Return(submission, nil)
	m.submissionRepo.On("GetAnswers", mock.Anything, testSubmissionID).
		Return(map[string]domain.AnswerPayload{
			"q-1": domain.NewScalarAnswer("1"),   // correct
			"q-2": domain.NewScalarAnswer("nope"), // wrong
		}, nil)
	expectEmbeds(m)

	resp, err := svc.Review(context.Background(), testSubmissionID)
	require.NoError(t, err)

	assert.Equal(t, 3, resp.Statistics.TotalQuestions)
	assert.Equal(t, 1, resp.Statistics.CorrectAnswers)
	assert.Equal(t, 1, resp.Statistics.WrongAnswers)
	assert.Equal(t, 1, resp.Statistics.Unanswered)
	require.Len(t, resp.Questions, 3)
	assert.True(t, resp.Questions[0].IsCorrect)
	assert.False(t, resp.Questions[1].IsCorrect)
	assert.False(t, resp.Questions[2].IsAnswered)
}
