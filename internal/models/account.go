package models

import "github.com/corefin/corefin/internal/core/domain"

// Account is the persisted row for a chart-of-accounts entry.
// Nullable foreign keys and optional attributes are stored as empty
// strings and mapped to/from domain pointers where needed.
type Account struct {
	AccountID             string                  `db:"account_id"`
	CompanyID             string                  `db:"company_id"`
	AccountNumber         string                  `db:"account_number"`
	Name                  string                  `db:"name"`
	AccountType           domain.AccountType      `db:"account_type"`
	AccountCategory       domain.AccountCategory  `db:"account_category"`
	NormalBalance         domain.NormalBalance    `db:"normal_balance"`
	ParentAccountID       string                  `db:"parent_account_id"` // Nullable
	HierarchyLevel        int                     `db:"hierarchy_level"`
	IsPostable            bool                    `db:"is_postable"`
	IsCashFlowRelevant    bool                    `db:"is_cash_flow_relevant"`
	CashFlowCategory      domain.CashFlowCategory `db:"cash_flow_category"` // Nullable
	IsIntercompany        bool                    `db:"is_intercompany"`
	IntercompanyPartnerID string                  `db:"intercompany_partner_id"` // Nullable
	CurrencyRestriction   string                  `db:"currency_restriction"`    // Nullable
	IsRetainedEarnings    bool                    `db:"is_retained_earnings"`
	IsActive              bool                    `db:"is_active"`
	Description           string                  `db:"description"`
	AuditFields
}
