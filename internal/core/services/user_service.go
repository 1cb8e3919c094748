package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/finledger/ledger_backend/internal/apperrors"
	"github.com/finledger/ledger_backend/internal/core/domain"
	portsrepo "github.com/finledger/ledger_backend/internal/core/ports/repositories"
	portssvc "github.com/finledger/ledger_backend/internal/core/ports/services"
	"github.com/finledger/ledger_backend/internal/dto"
	"github.com/finledger/ledger_backend/internal/utils"
	"github.com/google/uuid"
)

// ErrInvalidCredentials is returned by Authenticate for both unknown usernames
// and wrong passwords, so callers cannot probe for account existence.
var ErrInvalidCredentials = errors.New("invalid username or password")

// userServiceImpl implements the UserSvcFacade interface.
type userServiceImpl struct {
	BaseService
	userRepo portsrepo.UserRepositoryFacade
	audit    portssvc.AuditSvcFacade
}

// UserServiceOption is a functional option for configuring the user service.
type UserServiceOption func(*userServiceImpl)

// WithUserAuditService adds the audit service dependency.
func WithUserAuditService(audit portssvc.AuditSvcFacade) UserServiceOption {
	return func(s *userServiceImpl) {
		s.audit = audit
	}
}

// NewUserService creates a new user service with the provided options.
func NewUserService(repo portsrepo.UserRepositoryFacade, options ...UserServiceOption) portssvc.UserSvcFacade {
	svc := &userServiceImpl{userRepo: repo}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.UserSvcFacade = (*userServiceImpl)(nil)

func (s *userServiceImpl) Register(ctx context.Context, req dto.RegisterRequest) (*domain.User, error) {
	if existing, err := s.userRepo.FindUserByUsername(ctx, req.Username); err == nil && existing != nil {
		s.LogWarn(ctx, "Registration rejected, username taken", slog.String("username", req.Username))
		return nil, fmt.Errorf("username %q: %w", req.Username, apperrors.ErrDuplicate)
	} else if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check username availability: %w", err)
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		s.LogError(ctx, err, "Failed to hash password")
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	role := domain.UserRole(req.Role)
	if role == "" {
		role = domain.RoleClient
	}

	now := time.Now()
	user := domain.User{
		UserID:       uuid.NewString(),
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         role,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		s.LogError(ctx, err, "Failed to save user", slog.String("username", req.Username))
		return nil, err
	}

	if s.audit != nil {
		s.audit.LogAction(ctx, "USER_REGISTERED", &user.UserID,
			fmt.Sprintf("User registered: %s (%s)", user.Username, user.Role))
	}

	s.LogInfo(ctx, "User registered", slog.String("user_id", user.UserID), slog.String("role", string(user.Role)))
	return &user, nil
}

func (s *userServiceImpl) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.auditLoginFailure(ctx, username)
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		s.auditLoginFailure(ctx, username)
		return nil, ErrInvalidCredentials
	}

	if s.audit != nil {
		s.audit.LogAction(ctx, "USER_LOGIN", &user.UserID,
			fmt.Sprintf("User logged in: %s (%s)", user.Username, user.Role))
	}
	return user, nil
}

func (s *userServiceImpl) auditLoginFailure(ctx context.Context, username string) {
	if s.audit != nil {
		s.audit.LogAction(ctx, "LOGIN_FAILED", nil,
			fmt.Sprintf("Failed login attempt for username: %s", username))
	}
}

func (s *userServiceImpl) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find user by ID", slog.String("user_id", userID))
		}
		return nil, err
	}
	return user, nil
}

func (s *userServiceImpl) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByUsername(ctx, username)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find user by username", slog.String("username", username))
		}
		return nil, err
	}
	return user, nil
}

func (s *userServiceImpl) ListUsers(ctx context.Context, params dto.ListUsersParams) ([]domain.User, error) {
	users, err := s.userRepo.FindUsers(ctx, params.Limit, params.Offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list users")
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

func (s *userServiceImpl) UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest, updatedBy string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.Role != nil {
		user.Role = domain.UserRole(*req.Role)
	}
	user.LastUpdatedAt = time.Now()
	user.LastUpdatedBy = updatedBy

	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		s.LogError(ctx, err, "Failed to update user", slog.String("user_id", userID))
		return nil, err
	}

	if s.audit != nil {
		s.audit.LogAction(ctx, "USER_UPDATED", &updatedBy,
			fmt.Sprintf("User updated: %s", user.Username))
	}
	return user, nil
}

func (s *userServiceImpl) DeleteUser(ctx context.Context, userID string, deletedBy string) error {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := s.userRepo.MarkUserDeleted(ctx, userID, deletedBy, time.Now()); err != nil {
		s.LogError(ctx, err, "Failed to delete user", slog.String("user_id", userID))
		return err
	}

	if s.audit != nil {
		s.audit.LogAction(ctx, "USER_DELETED", &deletedBy,
			fmt.Sprintf("User deleted: %s", user.Username))
	}
	s.LogInfo(ctx, "User deleted", slog.String("user_id", userID))
	return nil
}
