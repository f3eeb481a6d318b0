package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/corefin/corefin/internal/apperrors"
	"github.com/corefin/corefin/internal/core/domain"
	portsrepo "github.com/corefin/corefin/internal/core/ports/repositories"
	"github.com/corefin/corefin/internal/models"
	"github.com/corefin/corefin/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// accountColumns is the canonical column list used by every account SELECT.
const accountColumns = `
	account_id, company_id, account_number, name, account_type, account_category,
	normal_balance, parent_account_id, hierarchy_level, is_postable,
	is_cash_flow_relevant, cash_flow_category, is_intercompany,
	intercompany_partner_id, currency_restriction, is_retained_earnings,
	is_active, description, created_at, created_by, last_updated_at, last_updated_by`

type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for chart-of-accounts data.
func newPgxAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepositoryWithTx {
	return &PgxAccountRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxAccountRepository implements portsrepo.AccountRepositoryWithTx
var _ portsrepo.AccountRepositoryWithTx = (*PgxAccountRepository)(nil)

// scanAccount scans a single account row into a model, normalizing NULL
// optional columns to empty strings.
func scanAccount(row pgx.Row) (models.Account, error) {
	var m models.Account
	var parentID, cashFlowCategory, partnerID, currencyRestriction sql.NullString

	err := row.Scan(
		&m.AccountID,
		&m.CompanyID,
		&m.AccountNumber,
		&m.Name,
		&m.AccountType,
		&m.AccountCategory,
		&m.NormalBalance,
		&parentID,
		&m.HierarchyLevel,
		&m.IsPostable,
		&m.IsCashFlowRelevant,
		&cashFlowCategory,
		&m.IsIntercompany,
		&partnerID,
		&currencyRestriction,
		&m.IsRetainedEarnings,
		&m.IsActive,
		&m.Description,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return models.Account{}, err
	}

	m.ParentAccountID = parentID.String
	m.CashFlowCategory = domain.CashFlowCategory(cashFlowCategory.String)
	m.IntercompanyPartnerID = partnerID.String
	m.CurrencyRestriction = currencyRestriction.String
	return m, nil
}

func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	modelAcc := mapping.ToModelAccount(account)

	query := `
		INSERT INTO accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22);
	`
	_, err := r.Pool.Exec(ctx, query,
		modelAcc.AccountID,
		modelAcc.CompanyID,
		modelAcc.AccountNumber,
		modelAcc.Name,
		modelAcc.AccountType,
		modelAcc.AccountCategory,
		modelAcc.NormalBalance,
		nullString(modelAcc.ParentAccountID),
		modelAcc.HierarchyLevel,
		modelAcc.IsPostable,
		modelAcc.IsCashFlowRelevant,
		nullString(string(modelAcc.CashFlowCategory)),
		modelAcc.IsIntercompany,
		nullString(modelAcc.IntercompanyPartnerID),
		nullString(modelAcc.CurrencyRestriction),
		modelAcc.IsRetainedEarnings,
		modelAcc.IsActive,
		modelAcc.Description,
		modelAcc.CreatedAt,
		modelAcc.CreatedBy,
		modelAcc.LastUpdatedAt,
		modelAcc.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique violation
			return fmt.Errorf("%w: account number %s already exists in company %s", apperrors.ErrDuplicate, modelAcc.AccountNumber, modelAcc.CompanyID)
		}
		return fmt.Errorf("failed to save account %s: %w", modelAcc.AccountID, err)
	}
	return nil
}

func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE account_id = $1;
	`
	m, err := scanAccount(r.Pool.QueryRow(ctx, query, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find account by ID %s: %w", accountID, err)
	}

	domainAcc := mapping.ToDomainAccount(m)
	return &domainAcc, nil
}

func (r *PgxAccountRepository) FindAccountByNumber(ctx context.Context, companyID string, accountNumber string) (*domain.Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE company_id = $1 AND account_number = $2;
	`
	m, err := scanAccount(r.Pool.QueryRow(ctx, query, companyID, accountNumber))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find account by number %s in company %s: %w", accountNumber, companyID, err)
	}

	domainAcc := mapping.ToDomainAccount(m)
	return &domainAcc, nil
}

func (r *PgxAccountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	if len(accountIDs) == 0 {
		return map[string]domain.Account{}, nil
	}

	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE account_id = ANY($1);
	`
	rows, err := r.Pool.Query(ctx, query, accountIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts by IDs: %w", err)
	}
	defer rows.Close()

	found := make(map[string]domain.Account, len(accountIDs))
	for rows.Next() {
		m, scanErr := scanAccount(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan account row: %w", scanErr)
		}
		found[m.AccountID] = mapping.ToDomainAccount(m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account rows: %w", err)
	}

	if len(found) != len(accountIDs) {
		missing := make([]string, 0)
		for _, id := range accountIDs {
			if _, ok := found[id]; !ok {
				missing = append(missing, id)
			}
		}
		if len(missing) > 0 {
			return nil, fmt.Errorf("%w: accounts not found: %v", apperrors.ErrNotFound, missing)
		}
	}

	return found, nil
}

func (r *PgxAccountRepository) FindAccountsByCompany(ctx context.Context, companyID string) ([]domain.Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE company_id = $1
		ORDER BY account_number ASC;
	`
	rows, err := r.Pool.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts for company %s: %w", companyID, err)
	}
	defer rows.Close()

	modelAccounts := make([]models.Account, 0)
	for rows.Next() {
		m, scanErr := scanAccount(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan account row for company %s: %w", companyID, scanErr)
		}
		modelAccounts = append(modelAccounts, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account rows for company %s: %w", companyID, err)
	}

	return mapping.ToDomainAccountSlice(modelAccounts), nil
}

func (r *PgxAccountRepository) ListAccounts(ctx context.Context, companyID string, limit int, offset int) ([]domain.Account, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE company_id = $1
		ORDER BY account_number ASC
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.Pool.Query(ctx, query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts for company %s: %w", companyID, err)
	}
	defer rows.Close()

	modelAccounts := make([]models.Account, 0, limit)
	for rows.Next() {
		m, scanErr := scanAccount(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan account row for company %s: %w", companyID, scanErr)
		}
		modelAccounts = append(modelAccounts, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account rows for company %s: %w", companyID, err)
	}

	return mapping.ToDomainAccountSlice(modelAccounts), nil
}

func (r *PgxAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	modelAcc := mapping.ToModelAccount(account)

	query := `
		UPDATE accounts
		SET name = $2,
		    account_category = $3,
		    normal_balance = $4,
		    parent_account_id = $5,
		    hierarchy_level = $6,
		    is_postable = $7,
		    is_cash_flow_relevant = $8,
		    cash_flow_category = $9,
		    is_intercompany = $10,
		    intercompany_partner_id = $11,
		    currency_restriction = $12,
		    is_retained_earnings = $13,
		    is_active = $14,
		    description = $15,
		    last_updated_at = $16,
		    last_updated_by = $17
		WHERE account_id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		modelAcc.AccountID,
		modelAcc.Name,
		modelAcc.AccountCategory,
		modelAcc.NormalBalance,
		nullString(modelAcc.ParentAccountID),
		modelAcc.HierarchyLevel,
		modelAcc.IsPostable,
		modelAcc.IsCashFlowRelevant,
		nullString(string(modelAcc.CashFlowCategory)),
		modelAcc.IsIntercompany,
		nullString(modelAcc.IntercompanyPartnerID),
		nullString(modelAcc.CurrencyRestriction),
		modelAcc.IsRetainedEarnings,
		modelAcc.IsActive,
		modelAcc.Description,
		modelAcc.LastUpdatedAt,
		modelAcc.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update account %s: %w", modelAcc.AccountID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxAccountRepository) DeactivateAccount(ctx context.Context, accountID string, userID string, now time.Time) error {
	query := `
		UPDATE accounts
		SET is_active = FALSE,
		    last_updated_at = $2,
		    last_updated_by = $3
		WHERE account_id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, accountID, now, userID)
	if err != nil {
		return fmt.Errorf("failed to deactivate account %s: %w", accountID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
