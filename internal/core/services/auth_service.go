package services

import (
	"context"
	"fmt"
	"time"

	portssvc "github.com/corefin/corefin/internal/core/ports/services"
	"github.com/corefin/corefin/internal/dto"
	"github.com/corefin/corefin/internal/platform/config"
	"github.com/corefin/corefin/internal/utils"
)

// authService issues signed access tokens for verified credentials.
type authService struct {
	BaseService
	cfg     *config.Config
	userSvc portssvc.UserSvcFacade
}

// NewAuthService creates a new auth service.
func NewAuthService(cfg *config.Config, userSvc portssvc.UserSvcFacade) portssvc.AuthSvcFacade {
	return &authService{cfg: cfg, userSvc: userSvc}
}

var _ portssvc.AuthSvcFacade = (*authService)(nil)

// Login verifies credentials and returns a signed JWT.
func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.userSvc.VerifyCredentials(ctx, req.Username, req.Password)
	if err != nil {
		return nil, err
	}

	expiresAt := time.Now().Add(s.cfg.JWTExpiryDuration)
	token, err := utils.GenerateJWT(user.UserID, s.cfg.JWTSecret, s.cfg.JWTExpiryDuration, s.cfg.JWTIssuer)
	if err != nil {
		s.LogError(ctx, err, "Failed to generate access token")
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	return &dto.LoginResponse{
		UserID:      user.UserID,
		Name:        user.Name,
		AccessToken: token,
		ExpiresAt:   expiresAt,
	}, nil
}
