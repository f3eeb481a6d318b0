package services

import (
	"context"

	"github.com/corefin/corefin/internal/core/domain"
	"github.com/corefin/corefin/internal/dto"
)

// CompanyReaderSvc defines read operations for company data
type CompanyReaderSvc interface {
	// GetCompanyByID retrieves a specific company, authorized for the user.
	GetCompanyByID(ctx context.Context, companyID string, userID string) (*domain.Company, error)

	// ListUserCompanies retrieves all companies the user belongs to.
	ListUserCompanies(ctx context.Context, userID string) ([]domain.Company, error)

	// GetFunctionalCurrency returns the company's functional currency.
	// A company without one configured is treated as not found.
	GetFunctionalCurrency(ctx context.Context, companyID string) (string, error)
}

// CompanyWriterSvc defines write operations for company data
type CompanyWriterSvc interface {
	// CreateCompany persists a new company and makes the creator its admin.
	CreateCompany(ctx context.Context, req dto.CreateCompanyRequest, creatorUserID string) (*domain.Company, error)
}

// CompanyAuthorizerSvc checks whether a user may act within a company.
type CompanyAuthorizerSvc interface {
	// AuthorizeUserAction verifies the user holds at least the required role.
	AuthorizeUserAction(ctx context.Context, userID, companyID string, requiredRole domain.UserCompanyRole) error
}

// CompanySvcFacade combines all company-related service interfaces
type CompanySvcFacade interface {
	CompanyReaderSvc
	CompanyWriterSvc
	CompanyAuthorizerSvc
}
