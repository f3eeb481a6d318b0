package services

import (
	"context"

	"github.com/corefin/corefin/internal/core/domain"
	"github.com/corefin/corefin/internal/dto"
)

// UserSvcFacade defines user management operations
type UserSvcFacade interface {
	// CreateUser registers a new user with hashed credentials.
	CreateUser(ctx context.Context, req dto.CreateUserRequest) (*domain.User, error)

	// GetUserByID retrieves a specific user.
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)

	// ListUsers retrieves a paginated list of users.
	ListUsers(ctx context.Context, limit int, offset int) ([]domain.User, error)

	// VerifyCredentials checks a username/password pair and returns the user.
	VerifyCredentials(ctx context.Context, username, password string) (*domain.User, error)
}

// AuthSvcFacade defines the authentication surface.
type AuthSvcFacade interface {
	// Login verifies credentials and issues a signed token.
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
}
