package services

import (
	"context"

	"github.com/finledger/ledger_backend/internal/core/domain"
	"github.com/finledger/ledger_backend/internal/dto"
)

// UserReaderSvc defines read operations for user accounts.
type UserReaderSvc interface {
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)
	ListUsers(ctx context.Context, params dto.ListUsersParams) ([]domain.User, error)
}

// UserWriterSvc defines write operations for user accounts.
type UserWriterSvc interface {
	// Register creates an account with a bcrypt-hashed password.
	Register(ctx context.Context, req dto.RegisterRequest) (*domain.User, error)
	UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest, updatedBy string) (*domain.User, error)
	DeleteUser(ctx context.Context, userID string, deletedBy string) error
}

// AuthenticatorSvc verifies credentials; used by the login handler.
type AuthenticatorSvc interface {
	// Authenticate returns the user when the username/password pair is valid.
	// Failures are indistinguishable (not found vs wrong password) to callers.
	Authenticate(ctx context.Context, username, password string) (*domain.User, error)
}

// UserSvcFacade combines all user service interfaces.
type UserSvcFacade interface {
	UserReaderSvc
	UserWriterSvc
	AuthenticatorSvc
}
