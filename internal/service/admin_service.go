package service

import (
	"context"

	"github.com/sanjaykhatri/induction-backend/internal/domain"
	"github.com/sanjaykhatri/induction-backend/internal/dto"
	"github.com/sanjaykhatri/induction-backend/internal/logger"
	"github.com/sanjaykhatri/induction-backend/internal/util"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// AdminService manages admin accounts. Only super admins reach these
// operations; the route guard enforces that.
type AdminService interface {
	ListAdmins(ctx context.Context) ([]dto.UserResponse, error)
	CreateAdmin(ctx context.Context, req *dto.CreateAdminRequest) (*dto.UserResponse, error)
	UpdateAdmin(ctx context.Context, adminID string, req *dto.UpdateAdminRequest) (*dto.UserResponse, error)
	RemoveAdmin(ctx context.Context, adminID string) error
}

type adminServiceImpl struct {
	userRepo domain.UserRepository
}

// NewAdminService creates a new instance of AdminService.
func NewAdminService(userRepo domain.UserRepository) AdminService {
	return &adminServiceImpl{userRepo: userRepo}
}

func (s *adminServiceImpl) ListAdmins(ctx context.Context) ([]dto.UserResponse, error) {
	users, err := s.userRepo.ListUsersByRoles(ctx, []domain.Role{domain.RoleAdmin, domain.RoleSuperAdmin})
	if err != nil {
		return nil, err
	}
	responses := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, ToUserResponse(&users[i]))
	}
	return responses, nil
}

func (s *adminServiceImpl) CreateAdmin(ctx context.Context, req *dto.CreateAdminRequest) (*dto.UserResponse, error) {
	existing, err := s.userRepo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.NewEmailTakenError(req.Email)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, domain.NewInternalError("hash password", err)
	}

	admin := &domain.User{
		ID:           util.NewULID(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hashed),
		Role:         domain.Role(req.Role),
	}
	if err := admin.Validate(); err != nil {
		return nil, err
	}
	if err := s.userRepo.CreateUser(ctx, admin); err != nil {
		return nil, err
	}

	logger.Get().Info("Admin account created",
		zap.String("admin_id", admin.ID),
		zap.String("role", string(admin.Role)))
	resp := ToUserResponse(admin)
	return &resp, nil
}

func (s *adminServiceImpl) UpdateAdmin(ctx context.Context, adminID string, req *dto.UpdateAdminRequest) (*dto.UserResponse, error) {
	admin, err := s.loadAdmin(ctx, adminID)
	if err != nil {
		return nil, err
	}

	if req.Email != nil && *req.Email != admin.Email {
		existing, err := s.userRepo.GetUserByEmail(ctx, *req.Email)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, domain.NewEmailTakenError(*req.Email)
		}
		admin.Email = *req.Email
	}
	if req.Name != nil {
		admin.Name = *req.Name
	}
	if req.Role != nil {
		admin.Role = domain.Role(*req.Role)
	}
	if req.Password != nil && *req.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, domain.NewInternalError("hash password", err)
		}
		admin.PasswordHash = string(hashed)
	}

	if err := admin.Validate(); err != nil {
		return nil, err
	}
	if err := s.userRepo.UpdateUser(ctx, admin); err != nil {
		return nil, err
	}
	resp := ToUserResponse(admin)
	return &resp, nil
}

// RemoveAdmin revokes admin access by downgrading the account to a
// regular user. The account and its submissions are kept.
func (s *adminServiceImpl) RemoveAdmin(ctx context.Context, adminID string) error {
	admin, err := s.loadAdmin(ctx, adminID)
	if err != nil {
		return err
	}

	admin.Role = domain.RoleUser
	if err := s.userRepo.UpdateUser(ctx, admin); err != nil {
		return err
	}

	logger.Get().Info("Admin access revoked", zap.String("admin_id", adminID))
	return nil
}

func (s *adminServiceImpl) loadAdmin(ctx context.Context, adminID string) (*domain.User, error) {
	admin, err := s.userRepo.GetUserByID(ctx, adminID)
	if err != nil {
		return nil, err
	}
	if admin == nil || !admin.Role.CanManageCourses() {
		return nil, domain.NewNotFoundError("admin not found")
	}
	return admin, nil
}
