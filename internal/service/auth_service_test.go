package service

import (
	"context"
	"testing"
	"time"

	"github.com/sanjaykhatri/induction-backend/internal/config"
	"github.com/sanjaykhatri/induction-backend/internal/domain"
	"github.com/sanjaykhatri/induction-backend/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		SecretKey:       "test-secret-key",
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 7 * 24 * time.Hour,
	}
}

// newAuthService builds the service with a cache that reports every
// revocation lookup as a miss.
func newAuthService(t *testing.T, userRepo *MockUserRepository) (AuthService, *MockCache) {
	t.Helper()
	cacheClient := new(MockCache)
	cacheClient.On("Get", mock.Anything, mock.Anything).Return("", domain.ErrCacheMiss).Maybe()
	svc, err := NewAuthService(userRepo, cacheClient, testJWTConfig())
	require.NoError(t, err)
	return svc, cacheClient
}

func hashed(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func TestRegisterCreatesRegularUser(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc, _ := newAuthService(t, userRepo)

	userRepo.On("GetUserByEmail", mock.Anything, "new@example.com").Return(nil, nil)

	var created *domain.User
	userRepo.On("CreateUser", mock.Anything, mock.AnythingOfType("*domain.User")).
		Run(func(args mock.Arguments) { created = args.Get(1).(*domain.User) }).
		Return(nil)

	resp, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Name:     "New Employee",
		Email:    "new@example.com",
		Password: "password123",
	})
	require.NoError(t, err)

	require.NotNil(t, created)
	assert.Equal(t, domain.RoleUser, created.Role)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.PasswordHash), []byte("password123")))

	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "new@example.com", resp.User.Email)
}

func TestRegisterRejectsTakenEmail(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc, _ := newAuthService(t, userRepo)

	userRepo.On("GetUserByEmail", mock.Anything, "taken@example.com").
		Return(&domain.User{ID: "u-1", Email: "taken@example.com"}, nil)

	_, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Name:     "Someone",
		Email:    "taken@example.com",
		Password: "password123",
	})
	require.Error(t, err)

	domainErr, ok := err.(*domain.DomainError)
	require.True(t, ok)
	assert.Equal(t, domain.CodeEmailTaken, domainErr.Code)
	userRepo.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything)
}

func TestLoginRedirectsAdminAccounts(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc, _ := newAuthService(t, userRepo)

	userRepo.On("GetUserByEmail", mock.Anything, "admin@example.com").
		Return(&domain.User{
			ID:           "u-1",
			Email:        "admin@example.com",
			PasswordHash: hashed(t, "admin123"),
			Role:         domain.RoleAdmin,
		}, nil)

	_, err := svc.Login(context.Background(), &dto.LoginRequest{Email: "admin@example.com", Password: "admin123"})
	require.Error(t, err)

	domainErr, ok := err.(*domain.DomainError)
	require.True(t, ok)
	assert.Equal(t, domain.CodeForbidden, domainErr.Code)
}

func TestAdminLoginRejectsRegularUsers(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc, _ := newAuthService(t, userRepo)

	userRepo.On("GetUserByEmail", mock.Anything, "user@example.com").
		Return(&domain.User{
			ID:           "u-1",
			Email:        "user@example.com",
			PasswordHash: hashed(t, "password123"),
			Role:         domain.RoleUser,
		}, nil)

	_, err := svc.AdminLogin(context.Background(), &dto.LoginRequest{Email: "user@example.com", Password: "password123"})
	require.Error(t, err)

	domainErr, ok := err.(*domain.DomainError)
	require.True(t, ok)
	assert.Equal(t, domain.CodeForbidden, domainErr.Code)
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc, _ := newAuthService(t, userRepo)

	userRepo.On("GetUserByEmail", mock.Anything, "user@example.com").
		Return(&domain.User{
			ID:           "u-1",
			Email:        "user@example.com",
			PasswordHash: hashed(t, "password123"),
			Role:         domain.RoleUser,
		}, nil)

	_, err := svc.Login(context.Background(), &dto.LoginRequest{Email: "user@example.com", Password: "wrong"})
	require.Error(t, err)

	domainErr, ok := err.(*domain.DomainError)
	require.True(t, ok)
	assert.Equal(t, domain.CodeInvalidCredentials, domainErr.Code)
}

func TestJWTRoundTrip(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc, _ := newAuthService(t, userRepo)

	user := &domain.User{ID: "u-1", Role: domain.RoleSuperAdmin}
	token, err := svc.CreateJWT(context.Background(), user, time.Minute, "access")
	require.NoError(t, err)

	claims, err := svc.ValidateJWT(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.UserID)
	assert.Equal(t, string(domain.RoleSuperAdmin), claims.Role)
	assert.Equal(t, "access", claims.TokenType)
}

func TestValidateJWTRejectsExpiredToken(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc, _ := newAuthService(t, userRepo)

	token, err := svc.CreateJWT(context.Background(), &domain.User{ID: "u-1", Role: domain.RoleUser}, -time.Minute, "access")
	require.NoError(t, err)

	_, err = svc.ValidateJWT(context.Background(), token)
	assert.Error(t, err)
}

func TestLogoutRevokesToken(t *testing.T) {
	userRepo := new(MockUserRepository)
	cacheClient := new(MockCache)
	svc, err := NewAuthService(userRepo, cacheClient, testJWTConfig())
	require.NoError(t, err)

	token, err := svc.CreateJWT(context.Background(), &domain.User{ID: "u-1", Role: domain.RoleUser}, time.Minute, "access")
	require.NoError(t, err)

	// Not yet revoked.
	cacheClient.On("Get", mock.Anything, mock.Anything).Return("", domain.ErrCacheMiss).Once()

	var revokedKey string
	cacheClient.On("Set", mock.Anything, mock.Anything, "revoked", mock.Anything).
		Run(func(args mock.Arguments) { revokedKey = args.String(1) }).
		Return(nil).Once()

	require.NoError(t, svc.Logout(context.Background(), token))
	require.NotEmpty(t, revokedKey)

	// The same token no longer validates.
	cacheClient.On("Get", mock.Anything, revokedKey).Return("revoked", nil).Once()
	_, err = svc.ValidateJWT(context.Background(), token)
	assert.Error(t, err)

	cacheClient.AssertExpectations(t)
}
