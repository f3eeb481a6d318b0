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
	"github.com/corefin/corefin/internal/utils/accounting"
)

var (
	ErrAccountNotFound = errors.New("account not found")
	ErrAccountInactive = errors.New("account is inactive")
)

// accountService handles chart-of-accounts business logic.
type accountService struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewAccountService creates a new account service.
func NewAccountService(ar portsrepo.AccountRepositoryFacade, opts ...AccountServiceOption) portssvc.AccountSvcFacade {
	svc := &accountService{accountRepo: ar}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

// AccountServiceOption configures the account service.
type AccountServiceOption func(*accountService)

// WithCompanyAuthorizerForAccount sets the authorizer used for role checks.
func WithCompanyAuthorizerForAccount(authorizer portssvc.CompanyAuthorizerSvc) AccountServiceOption {
	return func(s *accountService) {
		s.CompanyAuthorizer = authorizer
	}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// CreateAccount validates and persists a new account.
func (s *accountService) CreateAccount(ctx context.Context, companyID string, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error) {
	if err := s.AuthorizeUser(ctx, creatorUserID, companyID, domain.RoleMember); err != nil {
		return nil, err
	}

	if existing, err := s.accountRepo.FindAccountByNumber(ctx, companyID, req.AccountNumber); err == nil && existing != nil {
		return nil, fmt.Errorf("%w: account number %s already in use", apperrors.ErrDuplicate, req.AccountNumber)
	} else if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check account number uniqueness: %w", err)
	}

	now := time.Now()
	isPostable := true
	if req.IsPostable != nil {
		isPostable = *req.IsPostable
	}

	account := domain.Account{
		AccountID:             uuid.NewString(),
		CompanyID:             companyID,
		AccountNumber:         req.AccountNumber,
		Name:                  req.Name,
		AccountType:           req.AccountType,
		AccountCategory:       req.AccountCategory,
		NormalBalance:         req.NormalBalance,
		ParentAccountID:       req.ParentAccountID,
		HierarchyLevel:        1,
		IsPostable:            isPostable,
		IsCashFlowRelevant:    req.IsCashFlowRelevant,
		CashFlowCategory:      req.CashFlowCategory,
		IsIntercompany:        req.IsIntercompany,
		IntercompanyPartnerID: req.IntercompanyPartnerID,
		CurrencyRestriction:   req.CurrencyRestriction,
		IsRetainedEarnings:    req.IsRetainedEarnings,
		IsActive:              true,
		Description:           req.Description,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if req.ParentAccountID != "" {
		parent, err := s.resolveParent(ctx, companyID, account.AccountID, req.ParentAccountID, account.AccountType)
		if err != nil {
			return nil, err
		}
		account.HierarchyLevel = parent.HierarchyLevel + 1
	}

	if violations := accounting.ValidateAccount(account); len(violations) > 0 {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, errors.Join(violations...))
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		s.LogError(ctx, err, "Failed to save account", slog.String("company_id", companyID), slog.String("account_number", req.AccountNumber))
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	s.LogInfo(ctx, "Account created", slog.String("account_id", account.AccountID), slog.String("account_number", account.AccountNumber), slog.String("company_id", companyID))
	return &account, nil
}

// resolveParent loads and checks the parent account for a child being created
// or re-parented.
func (s *accountService) resolveParent(ctx context.Context, companyID, accountID, parentID string, childType domain.AccountType) (*domain.Account, error) {
	parent, err := s.accountRepo.FindAccountByID(ctx, parentID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, &domain.ParentAccountNotFoundError{AccountID: accountID, ParentAccountID: parentID})
		}
		return nil, fmt.Errorf("failed to load parent account %s: %w", parentID, err)
	}
	if parent.CompanyID != companyID {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, &domain.ParentAccountNotFoundError{AccountID: accountID, ParentAccountID: parentID})
	}
	if parent.AccountType != childType {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, &domain.AccountTypeMismatchError{
			AccountID:  accountID,
			ParentID:   parentID,
			ChildType:  childType,
			ParentType: parent.AccountType,
		})
	}
	return parent, nil
}

// GetAccountByID retrieves a single account scoped to a company.
func (s *accountService) GetAccountByID(ctx context.Context, companyID string, accountID string, userID string) (*domain.Account, error) {
	if err := s.AuthorizeUser(ctx, userID, companyID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find account by ID", slog.String("account_id", accountID))
		}
		return nil, err
	}
	if account.CompanyID != companyID {
		return nil, apperrors.ErrNotFound
	}
	return account, nil
}

// GetAccountByIDs retrieves multiple accounts keyed by id, all scoped to the company.
func (s *accountService) GetAccountByIDs(ctx context.Context, companyID string, accountIDs []string, userID string) (map[string]domain.Account, error) {
	if err := s.AuthorizeUser(ctx, userID, companyID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, accountIDs)
	if err != nil {
		s.LogError(ctx, err, "Failed to find accounts by IDs", slog.Int("count", len(accountIDs)))
		return nil, fmt.Errorf("failed to find accounts: %w", err)
	}
	for id, a := range accounts {
		if a.CompanyID != companyID {
			delete(accounts, id)
		}
	}
	return accounts, nil
}

// ListAccounts retrieves a filtered, paginated account list.
func (s *accountService) ListAccounts(ctx context.Context, companyID string, userID string, params dto.ListAccountsParams) (*dto.ListAccountsResponse, error) {
	if err := s.AuthorizeUser(ctx, userID, companyID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	limit := params.Limit
	if limit <= 0 {
		limit = 100
	}

	accounts, err := s.accountRepo.FindAccountsByCompany(ctx, companyID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts", slog.String("company_id", companyID))
		return nil, fmt.Errorf("failed to list accounts for company %s: %w", companyID, err)
	}

	filtered := make([]domain.Account, 0, len(accounts))
	for _, a := range accounts {
		if params.AccountType != nil && a.AccountType != *params.AccountType {
			continue
		}
		if !params.IncludeInactive && !a.IsActive {
			continue
		}
		filtered = append(filtered, a)
	}

	total := len(filtered)
	start := params.Offset
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}

	return dto.ToListAccountsResponse(filtered[start:end], total, limit, params.Offset), nil
}

// UpdateAccount applies partial updates to an account and revalidates it.
func (s *accountService) UpdateAccount(ctx context.Context, companyID string, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error) {
	if err := s.AuthorizeUser(ctx, userID, companyID, domain.RoleMember); err != nil {
		return nil, err
	}

	account, err := s.GetAccountByID(ctx, companyID, accountID, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		account.Name = *req.Name
	}
	if req.AccountCategory != nil {
		account.AccountCategory = *req.AccountCategory
	}
	if req.IsPostable != nil {
		account.IsPostable = *req.IsPostable
	}
	if req.IsCashFlowRelevant != nil {
		account.IsCashFlowRelevant = *req.IsCashFlowRelevant
	}
	if req.CashFlowCategory != nil {
		account.CashFlowCategory = *req.CashFlowCategory
	}
	if req.CurrencyRestriction != nil {
		account.CurrencyRestriction = *req.CurrencyRestriction
	}
	if req.Description != nil {
		account.Description = *req.Description
	}
	if req.ParentAccountID != nil && *req.ParentAccountID != account.ParentAccountID {
		account.ParentAccountID = *req.ParentAccountID
		account.HierarchyLevel = 1
		if *req.ParentAccountID != "" {
			parent, err := s.resolveParent(ctx, companyID, accountID, *req.ParentAccountID, account.AccountType)
			if err != nil {
				return nil, err
			}
			account.HierarchyLevel = parent.HierarchyLevel + 1
		}
	}

	if violations := accounting.ValidateAccount(*account); len(violations) > 0 {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, errors.Join(violations...))
	}

	account.LastUpdatedAt = time.Now()
	account.LastUpdatedBy = userID

	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		s.LogError(ctx, err, "Failed to update account", slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to update account %s: %w", accountID, err)
	}

	s.LogInfo(ctx, "Account updated", slog.String("account_id", accountID))
	return account, nil
}

// DeactivateAccount marks an account inactive. Accounts with posted activity
// stay in the chart; deactivation only blocks new postings.
func (s *accountService) DeactivateAccount(ctx context.Context, companyID string, accountID string, userID string) error {
	if err := s.AuthorizeUser(ctx, userID, companyID, domain.RoleMember); err != nil {
		return err
	}

	if _, err := s.GetAccountByID(ctx, companyID, accountID, userID); err != nil {
		return err
	}

	if err := s.accountRepo.DeactivateAccount(ctx, accountID, userID, time.Now()); err != nil {
		s.LogError(ctx, err, "Failed to deactivate account", slog.String("account_id", accountID))
		return fmt.Errorf("failed to deactivate account %s: %w", accountID, err)
	}

	s.LogInfo(ctx, "Account deactivated", slog.String("account_id", accountID))
	return nil
}

// GetAccountHierarchy builds the account forest for a company.
func (s *accountService) GetAccountHierarchy(ctx context.Context, companyID string, userID string) ([]*accounting.AccountNode, error) {
	if err := s.AuthorizeUser(ctx, userID, companyID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	accounts, err := s.accountRepo.FindAccountsByCompany(ctx, companyID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load chart of accounts", slog.String("company_id", companyID))
		return nil, fmt.Errorf("failed to load chart for company %s: %w", companyID, err)
	}

	return accounting.NewHierarchyIndex(accounts).Tree(), nil
}

// GetAccountAncestors walks the parent chain upward from an account.
func (s *accountService) GetAccountAncestors(ctx context.Context, companyID string, accountID string, userID string) ([]domain.Account, error) {
	idx, err := s.loadIndex(ctx, companyID, userID)
	if err != nil {
		return nil, err
	}
	if _, ok := idx.Account(accountID); !ok {
		return nil, apperrors.ErrNotFound
	}
	return idx.Ancestors(accountID), nil
}

// GetAccountDescendants returns every account below the given one.
func (s *accountService) GetAccountDescendants(ctx context.Context, companyID string, accountID string, userID string) ([]domain.Account, error) {
	idx, err := s.loadIndex(ctx, companyID, userID)
	if err != nil {
		return nil, err
	}
	if _, ok := idx.Account(accountID); !ok {
		return nil, apperrors.ErrNotFound
	}
	return idx.Descendants(accountID), nil
}

func (s *accountService) loadIndex(ctx context.Context, companyID, userID string) (*accounting.HierarchyIndex, error) {
	if err := s.AuthorizeUser(ctx, userID, companyID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	accounts, err := s.accountRepo.FindAccountsByCompany(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to load chart for company %s: %w", companyID, err)
	}
	return accounting.NewHierarchyIndex(accounts), nil
}

// ValidateChart runs every account and hierarchy check over the company's
// chart and reports all violations rather than stopping at the first.
func (s *accountService) ValidateChart(ctx context.Context, companyID string, userID string) (*dto.ChartValidationResponse, error) {
	if err := s.AuthorizeUser(ctx, userID, companyID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	accounts, err := s.accountRepo.FindAccountsByCompany(ctx, companyID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load chart of accounts", slog.String("company_id", companyID))
		return nil, fmt.Errorf("failed to load chart for company %s: %w", companyID, err)
	}

	violations := accounting.ValidateChart(accounts)
	resp := &dto.ChartValidationResponse{
		Valid:      len(violations) == 0,
		Violations: make([]dto.ChartViolation, len(violations)),
	}
	for i, v := range violations {
		resp.Violations[i] = toChartViolation(v)
	}

	s.LogInfo(ctx, "Chart validated", slog.String("company_id", companyID), slog.Int("violations", len(violations)))
	return resp, nil
}

// toChartViolation flattens a typed validation error into its transport shape.
func toChartViolation(err error) dto.ChartViolation {
	v := dto.ChartViolation{Message: err.Error()}

	var parentErr *domain.ParentAccountNotFoundError
	var typeErr *domain.AccountTypeMismatchError
	var cycleErr *domain.CircularReferenceError
	var rangeErr *domain.AccountNumberRangeError
	var balanceErr *domain.NormalBalanceError
	var partnerMissingErr *domain.IntercompanyPartnerMissingError
	var partnerUnexpectedErr *domain.UnexpectedIntercompanyPartnerError
	var cashFlowErr *domain.CashFlowCategoryOnIncomeStatementError
	var categoryErr *domain.AccountCategoryError

	switch {
	case errors.As(err, &parentErr):
		v.AccountID = parentErr.AccountID
		v.Code = "PARENT_NOT_FOUND"
	case errors.As(err, &typeErr):
		v.AccountID = typeErr.AccountID
		v.Code = "ACCOUNT_TYPE_MISMATCH"
	case errors.As(err, &cycleErr):
		v.AccountID = cycleErr.AccountID
		v.Code = "CIRCULAR_REFERENCE"
	case errors.As(err, &rangeErr):
		v.AccountID = rangeErr.AccountID
		v.Code = "ACCOUNT_NUMBER_RANGE"
	case errors.As(err, &balanceErr):
		v.AccountID = balanceErr.AccountID
		v.Code = "NORMAL_BALANCE"
	case errors.As(err, &partnerMissingErr):
		v.AccountID = partnerMissingErr.AccountID
		v.Code = "INTERCOMPANY_PARTNER_MISSING"
	case errors.As(err, &partnerUnexpectedErr):
		v.AccountID = partnerUnexpectedErr.AccountID
		v.Code = "UNEXPECTED_INTERCOMPANY_PARTNER"
	case errors.As(err, &cashFlowErr):
		v.AccountID = cashFlowErr.AccountID
		v.Code = "CASH_FLOW_CATEGORY_INVALID"
	case errors.As(err, &categoryErr):
		v.AccountID = categoryErr.AccountID
		v.Code = "ACCOUNT_CATEGORY_INVALID"
	default:
		v.Code = "INVALID"
	}
	return v
}
