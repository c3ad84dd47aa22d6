package service

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/sanjaykhatri/induction-backend/internal/cache"
	"github.com/sanjaykhatri/induction-backend/internal/config"
	"github.com/sanjaykhatri/induction-backend/internal/domain"
	"github.com/sanjaykhatri/induction-backend/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type inductionMocks struct {
	repo      *MockInductionRepository
	fileStore *MockFileStore
	cache     *MockCache
}

func newInductionService(t *testing.T) (InductionService, *inductionMocks) {
	t.Helper()
	m := &inductionMocks{
		repo:      new(MockInductionRepository),
		fileStore: new(MockFileStore),
		cache:     new(MockCache),
	}
	svc := NewInductionService(m.repo, m.fileStore, m.cache, config.CacheConfig{ActiveInductionsTTL: time.Minute})
	return svc, m
}

func TestListActiveCacheMiss(t *testing.T) {
	svc, m := newInductionService(t)
	key := cache.ActiveInductionsKey()

	m.cache.On("Get", mock.Anything, key).Return("", domain.ErrCacheMiss).Once()
	m.repo.On("ListActiveInductions", mock.Anything).Return([]domain.Induction{
		{ID: "ind-1", Title: "Safety Onboarding", IsActive: true, DisplayOrder: 1},
		{ID: "ind-2", Title: "IT Systems", IsActive: true, DisplayOrder: 2},
	}, nil).Once()
	m.cache.On("Set", mock.Anything, key, mock.Anything, time.Minute).Return(nil).Once()

	inductions, err := svc.ListActive(context.Background())
	require.NoError(t, err)
	require.Len(t, inductions, 2)
	assert.Equal(t, "Safety Onboarding", inductions[0].Title)

	m.cache.AssertExpectations(t)
	m.repo.AssertExpectations(t)
}

func TestListActiveCacheHit(t *testing.T) {
	svc, m := newInductionService(t)
	key := cache.ActiveInductionsKey()

	cached, err := json.Marshal([]dto.InductionResponse{{ID: "ind-1", Title: "Safety Onboarding", IsActive: true}})
	require.NoError(t, err)
	m.cache.On("Get", mock.Anything, key).Return(string(cached), nil).Once()

	inductions, err := svc.ListActive(context.Background())
	require.NoError(t, err)
	require.Len(t, inductions, 1)
	assert.Equal(t, "ind-1", inductions[0].ID)

	m.repo.AssertNotCalled(t, "ListActiveInductions", mock.Anything)
}

func TestListActiveDiscardsMalformedCacheEntry(t *testing.T) {
	svc, m := newInductionService(t)
	key := cache.ActiveInductionsKey()

	m.cache.On("Get", mock.Anything, key).Return("not json", nil).Once()
	m.repo.On("ListActiveInductions", mock.Anything).Return([]domain.Induction{}, nil).Once()
	m.cache.On("Set", mock.Anything, key, mock.Anything, time.Minute).Return(nil).Once()

	inductions, err := svc.ListActive(context.Background())
	require.NoError(t, err)
	assert.Empty(t, inductions)
	m.repo.AssertExpectations(t)
}

func TestCreateInductionInvalidatesActiveList(t *testing.T) {
	svc, m := newInductionService(t)

	m.repo.On("CreateInduction", mock.Anything, mock.AnythingOfType("*domain.Induction")).Return(nil).Once()
	m.cache.On("Delete", mock.Anything, cache.ActiveInductionsKey()).Return(nil).Once()

	resp, err := svc.CreateInduction(context.Background(), &dto.CreateInductionRequest{
		Title:        "New Hire Orientation",
		DisplayOrder: 3,
	})
	require.NoError(t, err)
	assert.True(t, resp.IsActive)
	assert.NotEmpty(t, resp.ID)

	m.cache.AssertExpectations(t)
}

func TestCreateInductionRequiresTitle(t *testing.T) {
	svc, m := newInductionService(t)

	_, err := svc.CreateInduction(context.Background(), &dto.CreateInductionRequest{})
	require.Error(t, err)

	var validationErrs domain.ValidationErrors
	assert.ErrorAs(t, err, &validationErrs)
	m.repo.AssertNotCalled(t, "CreateInduction", mock.Anything, mock.Anything)
}

func TestCreateChapterStoresUploadedVideo(t *testing.T) {
	svc, m := newInductionService(t)

	m.repo.On("GetInductionByID", mock.Anything, "ind-1").
		Return(&domain.Induction{ID: "ind-1", Title: "Safety Onboarding"}, nil).Once()

	m.fileStore.On("Put", mock.Anything, mock.MatchedBy(func(key string) bool {
		return strings.HasPrefix(key, "videos/") && strings.HasSuffix(key, "intro.mp4")
	}), mock.Anything).Return("videos/123_intro.mp4", nil).Once()
	m.fileStore.On("PublicURL", "videos/123_intro.mp4").Return("http://localhost:8090/media/videos/123_intro.mp4")

	var created *domain.Chapter
	m.repo.On("CreateChapter", mock.Anything, mock.AnythingOfType("*domain.Chapter")).
		Run(func(args mock.Arguments) { created = args.Get(1).(*domain.Chapter) }).
		Return(nil).Once()

	resp, err := svc.CreateChapter(context.Background(), "ind-1", &dto.CreateChapterRequest{
		Title:        "Fire Safety",
		VideoURL:     "https://videos.example.com/ignored.mp4",
		DisplayOrder: 1,
	}, &VideoUpload{Filename: "intro.mp4", Content: strings.NewReader("data")})
	require.NoError(t, err)

	require.NotNil(t, created)
	// An uploaded file replaces any external URL.
	assert.Equal(t, "videos/123_intro.mp4", created.VideoPath)
	assert.Equal(t, "intro.mp4", created.VideoFilename)
	assert.Empty(t, created.VideoURL)
	assert.Equal(t, domain.DefaultPassPercentage, created.PassPercentage)
	assert.Equal(t, "http://localhost:8090/media/videos/123_intro.mp4", resp.VideoURL)
}

func TestDeleteChapterRemovesStoredVideo(t *testing.T) {
	svc, m := newInductionService(t)

	m.repo.On("GetChapterByID", mock.Anything, "ch-1").
		Return(&domain.Chapter{ID: "ch-1", InductionID: "ind-1", Title: "Fire Safety", VideoPath: "videos/123_intro.mp4"}, nil).Once()
	m.repo.On("DeleteChapter", mock.Anything, "ch-1").Return(nil).Once()
	m.fileStore.On("Delete", mock.Anything, "videos/123_intro.mp4").Return(nil).Once()

	require.NoError(t, svc.DeleteChapter(context.Background(), "ch-1"))
	m.fileStore.AssertExpectations(t)
}
