package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/corefin/corefin/internal/apperrors"
	"github.com/corefin/corefin/internal/core/domain"
	portsrepo "github.com/corefin/corefin/internal/core/ports/repositories"
	portssvc "github.com/corefin/corefin/internal/core/ports/services"
	"github.com/corefin/corefin/internal/dto"
	"github.com/corefin/corefin/internal/middleware"
)

// companyService handles business logic related to companies and memberships.
type companyService struct {
	companyRepo portsrepo.CompanyRepositoryFacade
}

// NewCompanyService creates a new company service.
func NewCompanyService(cr portsrepo.CompanyRepositoryFacade) portssvc.CompanySvcFacade {
	return &companyService{companyRepo: cr}
}

// ctxLogger returns the request-scoped logger, or the default one outside a
// request.
func ctxLogger(ctx context.Context) *slog.Logger {
	if logger := middleware.GetLoggerFromCtx(ctx); logger != nil {
		return logger
	}
	return slog.Default()
}

var _ portssvc.CompanySvcFacade = (*companyService)(nil)

// CreateCompany creates a new company and makes the creator the initial admin.
func (s *companyService) CreateCompany(ctx context.Context, req dto.CreateCompanyRequest, creatorUserID string) (*domain.Company, error) {
	logger := ctxLogger(ctx)

	now := time.Now()
	newCompanyID := uuid.NewString()
	functionalCurrency := req.FunctionalCurrency

	company := domain.Company{
		CompanyID:          newCompanyID,
		Name:               req.Name,
		Description:        req.Description,
		FunctionalCurrency: &functionalCurrency,
		IsActive:           true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.companyRepo.SaveCompany(ctx, company); err != nil {
		logger.Error("Failed to save company in repository", slog.String("error", err.Error()), slog.String("company_name", req.Name))
		return nil, fmt.Errorf("failed to create company: %w", err)
	}

	membership := domain.UserCompany{
		UserID:    creatorUserID,
		CompanyID: newCompanyID,
		Role:      domain.RoleAdmin,
		JoinedAt:  now,
	}
	if err := s.companyRepo.AddUserToCompany(ctx, membership); err != nil {
		logger.Error("Failed to add creator as admin to new company", slog.String("error", err.Error()), slog.String("company_id", newCompanyID), slog.String("user_id", creatorUserID))
		return nil, fmt.Errorf("failed to add creator to company %s: %w", newCompanyID, err)
	}

	logger.Info("Company created successfully", slog.String("company_id", newCompanyID), slog.String("creator_user_id", creatorUserID))
	return &company, nil
}

// GetCompanyByID retrieves a company the user is a member of.
func (s *companyService) GetCompanyByID(ctx context.Context, companyID string, userID string) (*domain.Company, error) {
	logger := ctxLogger(ctx)

	if err := s.AuthorizeUserAction(ctx, userID, companyID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	company, err := s.companyRepo.FindCompanyByID(ctx, companyID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find company by ID in repository", slog.String("error", err.Error()), slog.String("company_id", companyID))
		}
		return nil, err
	}
	return company, nil
}

// ListUserCompanies retrieves the list of companies a given user belongs to.
func (s *companyService) ListUserCompanies(ctx context.Context, userID string) ([]domain.Company, error) {
	logger := ctxLogger(ctx)

	companies, err := s.companyRepo.ListCompaniesByUserID(ctx, userID)
	if err != nil {
		logger.Error("Failed to list companies for user from repository", slog.String("error", err.Error()), slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to list companies for user %s: %w", userID, err)
	}

	if companies == nil {
		return []domain.Company{}, nil
	}
	return companies, nil
}

// GetFunctionalCurrency returns the company's functional currency. A company
// that never had one configured is indistinguishable from a missing company.
func (s *companyService) GetFunctionalCurrency(ctx context.Context, companyID string) (string, error) {
	company, err := s.companyRepo.FindCompanyByID(ctx, companyID)
	if err != nil {
		return "", err
	}
	if company.FunctionalCurrency == nil {
		return "", fmt.Errorf("%w: company %s has no functional currency configured", apperrors.ErrNotFound, companyID)
	}
	return *company.FunctionalCurrency, nil
}

// AuthorizeUserAction checks if a user has the required role (or higher) within a company.
// Returns apperrors.ErrNotFound if the user is not a member, apperrors.ErrForbidden
// if the membership lacks the required role, nil if authorized.
func (s *companyService) AuthorizeUserAction(ctx context.Context, userID, companyID string, requiredRole domain.UserCompanyRole) error {
	logger := ctxLogger(ctx)

	membership, err := s.companyRepo.FindUserCompanyRole(ctx, userID, companyID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Authorization failed: user not a member of company", slog.String("user_id", userID), slog.String("company_id", companyID))
			// Return NotFound to avoid revealing company existence
			return apperrors.ErrNotFound
		}
		logger.Error("Failed to check user company role in repository", slog.String("error", err.Error()), slog.String("user_id", userID), slog.String("company_id", companyID))
		return fmt.Errorf("failed to check authorization: %w", err)
	}

	if roleRank(membership.Role) >= roleRank(requiredRole) {
		return nil
	}

	logger.Warn("Authorization failed: user lacks required role", slog.String("user_id", userID), slog.String("company_id", companyID), slog.String("user_role", string(membership.Role)), slog.String("required_role", string(requiredRole)))
	return apperrors.ErrForbidden
}

// roleRank orders roles so higher roles imply lower ones.
func roleRank(r domain.UserCompanyRole) int {
	switch r {
	case domain.RoleAdmin:
		return 3
	case domain.RoleMember:
		return 2
	case domain.RoleReadOnly:
		return 1
	default:
		return 0
	}
}
