package dto

import (
	"time"

	"github.com/corefin/corefin/internal/core/domain"
)

// --- Account DTOs ---

// CreateAccountRequest defines data for creating a new account.
type CreateAccountRequest struct {
	AccountNumber         string                  `json:"accountNumber" binding:"required,accountnumber"`
	Name                  string                  `json:"name" binding:"required"`
	AccountType           domain.AccountType      `json:"accountType" binding:"required,oneof=ASSET LIABILITY EQUITY REVENUE EXPENSE"`
	AccountCategory       domain.AccountCategory  `json:"accountCategory" binding:"required"`
	NormalBalance         domain.NormalBalance    `json:"normalBalance" binding:"required,oneof=DEBIT CREDIT"`
	ParentAccountID       string                  `json:"parentAccountID"`
	IsPostable            *bool                   `json:"isPostable"` // Defaults to true
	IsCashFlowRelevant    bool                    `json:"isCashFlowRelevant"`
	CashFlowCategory      domain.CashFlowCategory `json:"cashFlowCategory" binding:"omitempty,oneof=OPERATING INVESTING FINANCING NON_CASH"`
	IsIntercompany        bool                    `json:"isIntercompany"`
	IntercompanyPartnerID string                  `json:"intercompanyPartnerID"`
	CurrencyRestriction   string                  `json:"currencyRestriction" binding:"omitempty,iso4217"`
	IsRetainedEarnings    bool                    `json:"isRetainedEarnings"`
	Description           string                  `json:"description"`
}

// UpdateAccountRequest defines data for updating an account. Nil fields are
// left unchanged.
type UpdateAccountRequest struct {
	Name                *string                  `json:"name"`
	AccountCategory     *domain.AccountCategory  `json:"accountCategory"`
	ParentAccountID     *string                  `json:"parentAccountID"`
	IsPostable          *bool                    `json:"isPostable"`
	IsCashFlowRelevant  *bool                    `json:"isCashFlowRelevant"`
	CashFlowCategory    *domain.CashFlowCategory `json:"cashFlowCategory" binding:"omitempty,oneof=OPERATING INVESTING FINANCING NON_CASH"`
	CurrencyRestriction *string                  `json:"currencyRestriction" binding:"omitempty,iso4217"`
	Description         *string                  `json:"description"`
}

// ListAccountsParams carries filters for listing accounts.
type ListAccountsParams struct {
	AccountType     *domain.AccountType `form:"accountType" binding:"omitempty,oneof=ASSET LIABILITY EQUITY REVENUE EXPENSE"`
	IncludeInactive bool                `form:"includeInactive"`
	Limit           int                 `form:"limit,default=100" binding:"omitempty,min=1,max=500"`
	Offset          int                 `form:"offset" binding:"omitempty,min=0"`
}

// AccountResponse defines data returned for an account.
type AccountResponse struct {
	AccountID             string                  `json:"accountID"`
	CompanyID             string                  `json:"companyID"`
	AccountNumber         string                  `json:"accountNumber"`
	Name                  string                  `json:"name"`
	AccountType           domain.AccountType      `json:"accountType"`
	AccountCategory       domain.AccountCategory  `json:"accountCategory"`
	NormalBalance         domain.NormalBalance    `json:"normalBalance"`
	ParentAccountID       string                  `json:"parentAccountID,omitempty"`
	HierarchyLevel        int                     `json:"hierarchyLevel"`
	IsPostable            bool                    `json:"isPostable"`
	IsCashFlowRelevant    bool                    `json:"isCashFlowRelevant"`
	CashFlowCategory      domain.CashFlowCategory `json:"cashFlowCategory,omitempty"`
	IsIntercompany        bool                    `json:"isIntercompany"`
	IntercompanyPartnerID string                  `json:"intercompanyPartnerID,omitempty"`
	CurrencyRestriction   string                  `json:"currencyRestriction,omitempty"`
	IsRetainedEarnings    bool                    `json:"isRetainedEarnings"`
	IsActive              bool                    `json:"isActive"`
	Description           string                  `json:"description"`
	CreatedAt             time.Time               `json:"createdAt"`
	LastUpdatedAt         time.Time               `json:"lastUpdatedAt"`
}

// ToAccountResponse converts domain.Account to DTO.
func ToAccountResponse(a *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:             a.AccountID,
		CompanyID:             a.CompanyID,
		AccountNumber:         a.AccountNumber,
		Name:                  a.Name,
		AccountType:           a.AccountType,
		AccountCategory:       a.AccountCategory,
		NormalBalance:         a.NormalBalance,
		ParentAccountID:       a.ParentAccountID,
		HierarchyLevel:        a.HierarchyLevel,
		IsPostable:            a.IsPostable,
		IsCashFlowRelevant:    a.IsCashFlowRelevant,
		CashFlowCategory:      a.CashFlowCategory,
		IsIntercompany:        a.IsIntercompany,
		IntercompanyPartnerID: a.IntercompanyPartnerID,
		CurrencyRestriction:   a.CurrencyRestriction,
		IsRetainedEarnings:    a.IsRetainedEarnings,
		IsActive:              a.IsActive,
		Description:           a.Description,
		CreatedAt:             a.CreatedAt,
		LastUpdatedAt:         a.LastUpdatedAt,
	}
}

// ListAccountsResponse wraps a paginated list of accounts.
type ListAccountsResponse struct {
	Accounts []AccountResponse `json:"accounts"`
	Total    int               `json:"total"`
	Limit    int               `json:"limit"`
	Offset   int               `json:"offset"`
}

// ToListAccountsResponse converts a slice of domain.Account to DTO.
func ToListAccountsResponse(as []domain.Account, total, limit, offset int) *ListAccountsResponse {
	list := make([]AccountResponse, len(as))
	for i, a := range as {
		list[i] = ToAccountResponse(&a)
	}
	return &ListAccountsResponse{Accounts: list, Total: total, Limit: limit, Offset: offset}
}

// AccountNodeResponse is one node of the account hierarchy tree.
type AccountNodeResponse struct {
	Account  AccountResponse       `json:"account"`
	Children []AccountNodeResponse `json:"children,omitempty"`
}

// ChartViolation describes a single validation failure in a chart of accounts.
type ChartViolation struct {
	AccountID string `json:"accountID"`
	Code      string `json:"code"`
	Message   string `json:"message"`
}

// ChartValidationResponse reports the outcome of a full chart validation.
type ChartValidationResponse struct {
	Valid      bool             `json:"valid"`
	Violations []ChartViolation `json:"violations"`
}
