package domain

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// NormalBalance is the side on which an account type naturally increases.
type NormalBalance string

const (
	DebitBalance  NormalBalance = "DEBIT"
	CreditBalance NormalBalance = "CREDIT"
)

// AccountCategory is the finer-grained classification within an account type.
type AccountCategory string

const (
	// Asset categories
	CategoryCurrentAsset    AccountCategory = "CURRENT_ASSET"
	CategoryNonCurrentAsset AccountCategory = "NON_CURRENT_ASSET"
	CategoryFixedAsset      AccountCategory = "FIXED_ASSET"
	CategoryIntangibleAsset AccountCategory = "INTANGIBLE_ASSET"
	// Liability categories
	CategoryCurrentLiability    AccountCategory = "CURRENT_LIABILITY"
	CategoryNonCurrentLiability AccountCategory = "NON_CURRENT_LIABILITY"
	// Equity categories
	CategoryContributedCapital     AccountCategory = "CONTRIBUTED_CAPITAL"
	CategoryRetainedEarnings       AccountCategory = "RETAINED_EARNINGS"
	CategoryTreasuryStock          AccountCategory = "TREASURY_STOCK"
	CategoryAccumulatedOCI         AccountCategory = "ACCUMULATED_OCI"
	CategoryNonControllingInterest AccountCategory = "NON_CONTROLLING_INTEREST"
	// Revenue categories
	CategoryOperatingRevenue AccountCategory = "OPERATING_REVENUE"
	CategoryOtherRevenue     AccountCategory = "OTHER_REVENUE"
	// Expense categories
	CategoryOperatingExpense         AccountCategory = "OPERATING_EXPENSE"
	CategoryDepreciationAmortization AccountCategory = "DEPRECIATION_AMORTIZATION"
	CategoryInterestExpense          AccountCategory = "INTEREST_EXPENSE"
	CategoryTaxExpense               AccountCategory = "TAX_EXPENSE"
	CategoryOtherExpense             AccountCategory = "OTHER_EXPENSE"
)

// CashFlowCategory classifies a balance-sheet account for the cash flow
// statement. Only legal on Asset/Liability/Equity accounts.
type CashFlowCategory string

const (
	CashFlowOperating CashFlowCategory = "OPERATING"
	CashFlowInvesting CashFlowCategory = "INVESTING"
	CashFlowFinancing CashFlowCategory = "FINANCING"
	CashFlowNonCash   CashFlowCategory = "NON_CASH"
)

// categoriesByType maps each account type to its legal categories.
var categoriesByType = map[AccountType][]AccountCategory{
	Asset:     {CategoryCurrentAsset, CategoryNonCurrentAsset, CategoryFixedAsset, CategoryIntangibleAsset},
	Liability: {CategoryCurrentLiability, CategoryNonCurrentLiability},
	Equity:    {CategoryContributedCapital, CategoryRetainedEarnings, CategoryTreasuryStock, CategoryAccumulatedOCI, CategoryNonControllingInterest},
	Revenue:   {CategoryOperatingRevenue, CategoryOtherRevenue},
	Expense:   {CategoryOperatingExpense, CategoryDepreciationAmortization, CategoryInterestExpense, CategoryTaxExpense, CategoryOtherExpense},
}

// CategoriesForType returns the categories legal for the given account type.
func CategoriesForType(t AccountType) []AccountCategory {
	return categoriesByType[t]
}

// IsCategoryLegalForType reports whether category belongs to the set legal
// for the account type.
func IsCategoryLegalForType(t AccountType, category AccountCategory) bool {
	for _, c := range categoriesByType[t] {
		if c == category {
			return true
		}
	}
	return false
}

// CanonicalNormalBalance returns the normal balance expected for an account
// type. A declared balance on the opposite side marks an intentional
// contra-account; validation reports it but never auto-corrects.
func CanonicalNormalBalance(t AccountType) NormalBalance {
	switch t {
	case Asset, Expense:
		return DebitBalance
	case Liability, Equity, Revenue:
		return CreditBalance
	}
	return ""
}

// Account represents a general-ledger account within the core domain.
// This is the primary representation used by services; optional string
// fields use "" for absent, optional enums use the zero value.
type Account struct {
	AccountID     string      `json:"accountID"` // Primary Key (e.g., UUID)
	CompanyID     string      `json:"companyID"` // FK -> companies.company_id (NON-NULL)
	AccountNumber string      `json:"accountNumber"` // 4-digit string, 1000-9999
	Name          string      `json:"name"`
	AccountType   AccountType `json:"accountType"`

	AccountCategory AccountCategory `json:"accountCategory"`
	NormalBalance   NormalBalance   `json:"normalBalance"`

	ParentAccountID string `json:"parentAccountID"` // "" when the account is a root
	HierarchyLevel  int    `json:"hierarchyLevel"`  // >= 1
	IsPostable      bool   `json:"isPostable"`

	IsCashFlowRelevant bool             `json:"isCashFlowRelevant"`
	CashFlowCategory   CashFlowCategory `json:"cashFlowCategory,omitempty"` // "" when not set

	IsIntercompany        bool   `json:"isIntercompany"`
	IntercompanyPartnerID string `json:"intercompanyPartnerID,omitempty"` // company id, "" when not set

	CurrencyRestriction string `json:"currencyRestriction,omitempty"` // ISO code, "" when unrestricted
	IsRetainedEarnings  bool   `json:"isRetainedEarnings"`
	IsActive            bool   `json:"isActive"`
	Description         string `json:"description"`
	AuditFields
}

// IsBalanceSheetAccount reports whether the account appears on the balance
// sheet (as opposed to the income statement).
func (a Account) IsBalanceSheetAccount() bool {
	switch a.AccountType {
	case Asset, Liability, Equity:
		return true
	case Revenue, Expense:
		return false
	}
	return false
}

// IsContra reports whether the declared normal balance differs from the
// canonical balance for the account type.
func (a Account) IsContra() bool {
	return a.NormalBalance != CanonicalNormalBalance(a.AccountType)
}
