package services

import (
	"context"

	"github.com/corefin/corefin/internal/core/domain"
	"github.com/corefin/corefin/internal/dto"
	"github.com/corefin/corefin/internal/utils/accounting"
)

// AccountReaderSvc defines read operations for account data
type AccountReaderSvc interface {
	// GetAccountByID retrieves a specific account.
	GetAccountByID(ctx context.Context, companyID string, accountID string, userID string) (*domain.Account, error)

	// GetAccountByIDs retrieves multiple accounts keyed by id.
	GetAccountByIDs(ctx context.Context, companyID string, accountIDs []string, userID string) (map[string]domain.Account, error)

	// ListAccounts retrieves a paginated list of accounts for a company.
	ListAccounts(ctx context.Context, companyID string, userID string, params dto.ListAccountsParams) (*dto.ListAccountsResponse, error)
}

// AccountWriterSvc defines write operations for account data
type AccountWriterSvc interface {
	// CreateAccount persists a new account after validation.
	CreateAccount(ctx context.Context, companyID string, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error)

	// UpdateAccount updates an existing account's details.
	UpdateAccount(ctx context.Context, companyID string, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error)

	// DeactivateAccount marks an account as inactive.
	DeactivateAccount(ctx context.Context, companyID string, accountID string, userID string) error
}

// AccountHierarchySvc defines hierarchy and chart-validation operations
type AccountHierarchySvc interface {
	// GetAccountHierarchy builds the account forest for a company.
	GetAccountHierarchy(ctx context.Context, companyID string, userID string) ([]*accounting.AccountNode, error)

	// GetAccountAncestors walks the parent chain of an account upward.
	GetAccountAncestors(ctx context.Context, companyID string, accountID string, userID string) ([]domain.Account, error)

	// GetAccountDescendants returns every account below the given one.
	GetAccountDescendants(ctx context.Context, companyID string, accountID string, userID string) ([]domain.Account, error)

	// ValidateChart runs every account-level and hierarchy check over the
	// company's chart and returns all violations.
	ValidateChart(ctx context.Context, companyID string, userID string) (*dto.ChartValidationResponse, error)
}

// AccountSvcFacade combines all account-related service interfaces
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
	AccountHierarchySvc
}
