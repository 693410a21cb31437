package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"taskboard-api/internal/auth"
	"taskboard-api/internal/config"
	"taskboard-api/internal/domain"
	"taskboard-api/internal/dto"
	"taskboard-api/internal/metrics"
	"taskboard-api/internal/repository"
	"taskboard-api/internal/response"
)

// AuthService defines the interface for account and session business logic
type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*domain.User, error)
	GetUser(ctx context.Context, id uuid.UUID) (*dto.UserResponse, error)
	ListUsers(ctx context.Context) ([]dto.UserResponse, error)
	IsAdmin(ctx context.Context, userID uuid.UUID) (bool, error)
	EnsureAdminUser(ctx context.Context) error
}

// authServiceImpl is the implementation of AuthService
type authServiceImpl struct {
	userRepo repository.UserRepository
	adminCfg config.AdminConfig
	metrics  *metrics.Metrics
	logger   *zap.Logger
}

// NewAuthService creates a new instance of AuthService
func NewAuthService(userRepo repository.UserRepository, adminCfg config.AdminConfig, m *metrics.Metrics, logger *zap.Logger) AuthService {
	return &authServiceImpl{
		userRepo: userRepo,
		adminCfg: adminCfg,
		metrics:  m,
		logger:   logger,
	}
}

// Register creates a new member account
func (s *authServiceImpl) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, error) {
	existing, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		s.logger.Error("Failed to look up email", zap.Error(err))
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to register user", err.Error())
	}
	if existing != nil {
		return nil, response.NewAlreadyExistsError("An account with this email already exists", "")
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to register user", err.Error())
	}

	user := &domain.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         domain.UserRoleMember,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to register user", err.Error())
	}

	s.metrics.IncrementUserRegistered()
	s.logger.Info("User registered",
		zap.String("user_id", user.ID.String()),
		zap.String("email", user.Email),
	)

	resp := dto.NewUserResponse(user)
	return &resp, nil
}

// Login verifies credentials and returns the account. Unknown email and
// wrong password are indistinguishable to the caller.
func (s *authServiceImpl) Login(ctx context.Context, req *dto.LoginRequest) (*domain.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		s.logger.Error("Failed to look up email", zap.Error(err))
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to log in", err.Error())
	}
	if user == nil || !auth.CheckPassword(user.PasswordHash, req.Password) {
		return nil, response.NewUnauthorizedError("Invalid credentials", "")
	}
	return user, nil
}

// GetUser returns one user by ID
func (s *authServiceImpl) GetUser(ctx context.Context, id uuid.UUID) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFoundError("User not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to get user", err.Error())
	}

	resp := dto.NewUserResponse(user)
	return &resp, nil
}

// ListUsers returns all registered users
func (s *authServiceImpl) ListUsers(ctx context.Context) ([]dto.UserResponse, error) {
	users, err := s.userRepo.FindAll(ctx)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to list users", err.Error())
	}

	responses := make([]dto.UserResponse, 0, len(users))
	for _, user := range users {
		responses = append(responses, dto.NewUserResponse(user))
	}
	return responses, nil
}

// IsAdmin reports whether the user holds the administrator role
func (s *authServiceImpl) IsAdmin(ctx context.Context, userID uuid.UUID) (bool, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, response.NewUnauthorizedError("Account no longer exists", "")
		}
		return false, response.NewAppError(response.ErrCodeInternal, "Failed to check role", err.Error())
	}
	return user.IsAdmin(), nil
}

// EnsureAdminUser creates the bootstrap administrator account if missing.
// An existing account under the admin email is promoted to the admin role.
func (s *authServiceImpl) EnsureAdminUser(ctx context.Context) error {
	existing, err := s.userRepo.FindByEmail(ctx, s.adminCfg.Email)
	if err != nil {
		return err
	}

	if existing == nil {
		admin := &domain.User{
			Name:         s.adminCfg.Name,
			Email:        s.adminCfg.Email,
			PasswordHash: s.adminCfg.PasswordHash,
			Role:         domain.UserRoleAdmin,
		}
		if err := s.userRepo.Create(ctx, admin); err != nil {
			return err
		}
		s.logger.Info("Bootstrap admin account created", zap.String("email", admin.Email))
		return nil
	}

	if !existing.IsAdmin() {
		existing.Role = domain.UserRoleAdmin
		if err := s.userRepo.Update(ctx, existing); err != nil {
			return err
		}
		s.logger.Warn("Promoted existing account to admin", zap.String("email", existing.Email))
	}
	return nil
}
