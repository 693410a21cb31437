package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"taskboard-api/internal/auth"
	"taskboard-api/internal/config"
	"taskboard-api/internal/domain"
	"taskboard-api/internal/dto"
	"taskboard-api/internal/metrics"
	"taskboard-api/internal/response"
)

func newTestMetrics() *metrics.Metrics {
	return metrics.NewWithRegistry(prometheus.NewRegistry(), zap.NewNop())
}

func testAdminConfig() config.AdminConfig {
	return config.AdminConfig{
		Name:  "Administrador",
		Email: "admin@edusqa.com",
		// bcrypt hash of "admin"
		PasswordHash: "$2a$10$XOPbrlUPQdwdJUpSrIF6X.LbE14qsMmKGhM1A8W9iqaG3vv1BD7WC",
	}
}

func assertAppErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	var appErr *response.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, code, appErr.Code)
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a member account", func(t *testing.T) {
		var created *domain.User
		userRepo := &MockUserRepository{
			CreateFunc: func(ctx context.Context, user *domain.User) error {
				user.ID = uuid.New()
				created = user
				return nil
			},
		}
		svc := NewAuthService(userRepo, testAdminConfig(), newTestMetrics(), zap.NewNop())

		resp, err := svc.Register(ctx, &dto.RegisterRequest{
			Name:     "Ana",
			Email:    "ana@example.com",
			Password: "secret123",
		})
		require.NoError(t, err)

		assert.Equal(t, "Ana", resp.Name)
		assert.Equal(t, "ana@example.com", resp.Email)
		assert.Equal(t, string(domain.UserRoleMember), resp.Role)

		require.NotNil(t, created)
		assert.NotEqual(t, "secret123", created.PasswordHash)
		assert.True(t, auth.CheckPassword(created.PasswordHash, "secret123"))
	})

	t.Run("rejects a duplicate email", func(t *testing.T) {
		userRepo := &MockUserRepository{
			FindByEmailFunc: func(ctx context.Context, email string) (*domain.User, error) {
				return &domain.User{Email: email}, nil
			},
		}
		svc := NewAuthService(userRepo, testAdminConfig(), newTestMetrics(), zap.NewNop())

		_, err := svc.Register(ctx, &dto.RegisterRequest{
			Name:     "Ana",
			Email:    "ana@example.com",
			Password: "secret123",
		})
		assertAppErrorCode(t, err, response.ErrCodeAlreadyExists)
	})
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()

	hash, err := auth.HashPassword("correct-horse")
	require.NoError(t, err)

	account := &domain.User{
		Name:         "Ana",
		Email:        "ana@example.com",
		PasswordHash: hash,
		Role:         domain.UserRoleMember,
	}
	account.ID = uuid.New()

	userRepo := &MockUserRepository{
		FindByEmailFunc: func(ctx context.Context, email string) (*domain.User, error) {
			if email == account.Email {
				return account, nil
			}
			return nil, nil
		},
	}
	svc := NewAuthService(userRepo, testAdminConfig(), newTestMetrics(), zap.NewNop())

	t.Run("accepts valid credentials", func(t *testing.T) {
		user, err := svc.Login(ctx, &dto.LoginRequest{Email: "ana@example.com", Password: "correct-horse"})
		require.NoError(t, err)
		assert.Equal(t, account.ID, user.ID)
	})

	t.Run("rejects a wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, &dto.LoginRequest{Email: "ana@example.com", Password: "wrong"})
		assertAppErrorCode(t, err, response.ErrCodeUnauthorized)
	})

	t.Run("rejects an unknown email the same way", func(t *testing.T) {
		_, err := svc.Login(ctx, &dto.LoginRequest{Email: "nobody@example.com", Password: "correct-horse"})
		assertAppErrorCode(t, err, response.ErrCodeUnauthorized)
	})
}

func TestAuthService_IsAdmin(t *testing.T) {
	ctx := context.Background()

	t.Run("reports the role", func(t *testing.T) {
		admin := &domain.User{Role: domain.UserRoleAdmin}
		admin.ID = uuid.New()
		userRepo := &MockUserRepository{
			FindByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.User, error) {
				return admin, nil
			},
		}
		svc := NewAuthService(userRepo, testAdminConfig(), newTestMetrics(), zap.NewNop())

		isAdmin, err := svc.IsAdmin(ctx, admin.ID)
		require.NoError(t, err)
		assert.True(t, isAdmin)
	})

	t.Run("deleted account is unauthorized", func(t *testing.T) {
		userRepo := &MockUserRepository{
			FindByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.User, error) {
				return nil, gorm.ErrRecordNotFound
			},
		}
		svc := NewAuthService(userRepo, testAdminConfig(), newTestMetrics(), zap.NewNop())

		_, err := svc.IsAdmin(ctx, uuid.New())
		assertAppErrorCode(t, err, response.ErrCodeUnauthorized)
	})
}

func TestAuthService_EnsureAdminUser(t *testing.T) {
	ctx := context.Background()
	adminCfg := testAdminConfig()

	t.Run("creates the bootstrap account when missing", func(t *testing.T) {
		var created *domain.User
		userRepo := &MockUserRepository{
			CreateFunc: func(ctx context.Context, user *domain.User) error {
				created = user
				return nil
			},
		}
		svc := NewAuthService(userRepo, adminCfg, newTestMetrics(), zap.NewNop())

		require.NoError(t, svc.EnsureAdminUser(ctx))
		require.NotNil(t, created)
		assert.Equal(t, adminCfg.Email, created.Email)
		assert.Equal(t, adminCfg.PasswordHash, created.PasswordHash)
		assert.Equal(t, domain.UserRoleAdmin, created.Role)
	})

	t.Run("promotes an existing account", func(t *testing.T) {
		existing := &domain.User{
			Name:  "Someone",
			Email: adminCfg.Email,
			Role:  domain.UserRoleMember,
		}
		existing.ID = uuid.New()

		var updated *domain.User
		userRepo := &MockUserRepository{
			FindByEmailFunc: func(ctx context.Context, email string) (*domain.User, error) {
				return existing, nil
			},
			UpdateFunc: func(ctx context.Context, user *domain.User) error {
				updated = user
				return nil
			},
		}
		svc := NewAuthService(userRepo, adminCfg, newTestMetrics(), zap.NewNop())

		require.NoError(t, svc.EnsureAdminUser(ctx))
		require.NotNil(t, updated)
		assert.Equal(t, domain.UserRoleAdmin, updated.Role)
	})

	t.Run("leaves an existing admin alone", func(t *testing.T) {
		existing := &domain.User{Email: adminCfg.Email, Role: domain.UserRoleAdmin}
		userRepo := &MockUserRepository{
			FindByEmailFunc: func(ctx context.Context, email string) (*domain.User, error) {
				return existing, nil
			},
			UpdateFunc: func(ctx context.Context, user *domain.User) error {
				t.Fatal("unexpected update")
				return nil
			},
			CreateFunc: func(ctx context.Context, user *domain.User) error {
				t.Fatal("unexpected create")
				return nil
			},
		}
		svc := NewAuthService(userRepo, adminCfg, newTestMetrics(), zap.NewNop())

		require.NoError(t, svc.EnsureAdminUser(ctx))
	})
}
