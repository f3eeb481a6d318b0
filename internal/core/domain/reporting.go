package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Derived report types. Reports are views over the ledger at a point in
// time: generated fresh per request, never persisted as authoritative state.

// BalanceSheetSection names one of the five balance sheet groupings.
type BalanceSheetSection string

const (
	SectionCurrentAssets         BalanceSheetSection = "CURRENT_ASSETS"
	SectionNonCurrentAssets      BalanceSheetSection = "NON_CURRENT_ASSETS"
	SectionCurrentLiabilities    BalanceSheetSection = "CURRENT_LIABILITIES"
	SectionNonCurrentLiabilities BalanceSheetSection = "NON_CURRENT_LIABILITIES"
	SectionEquity                BalanceSheetSection = "EQUITY"
)

// BalanceSheetLine is one account's balance within a section.
type BalanceSheetLine struct {
	AccountID     string          `json:"accountID"`
	AccountNumber string          `json:"accountNumber"`
	Name          string          `json:"name"`
	Balance       decimal.Decimal `json:"balance"`

	ComparativeBalance *decimal.Decimal `json:"comparativeBalance,omitempty"`
	Variance           *decimal.Decimal `json:"variance,omitempty"`
	VariancePercent    *decimal.Decimal `json:"variancePercent,omitempty"` // nil when the comparative balance is zero
}

// BalanceSheetSectionReport aggregates the lines of one section.
type BalanceSheetSectionReport struct {
	Section          BalanceSheetSection `json:"section"`
	Lines            []BalanceSheetLine  `json:"lines"`
	Total            decimal.Decimal     `json:"total"`
	ComparativeTotal *decimal.Decimal    `json:"comparativeTotal,omitempty"`
}

// BalanceSheetReport is the full statement. TotalAssets always equals
// TotalLiabilitiesAndEquity; generation fails otherwise.
type BalanceSheetReport struct {
	CompanyID       string     `json:"companyID"`
	Currency        string     `json:"currency"`
	AsOfDate        time.Time  `json:"asOfDate"`
	ComparativeDate *time.Time `json:"comparativeDate,omitempty"`

	CurrentAssets         BalanceSheetSectionReport `json:"currentAssets"`
	NonCurrentAssets      BalanceSheetSectionReport `json:"nonCurrentAssets"`
	CurrentLiabilities    BalanceSheetSectionReport `json:"currentLiabilities"`
	NonCurrentLiabilities BalanceSheetSectionReport `json:"nonCurrentLiabilities"`
	Equity                BalanceSheetSectionReport `json:"equity"`

	// CurrentPeriodEarnings is revenue minus expense accumulated as of the
	// report date, folded into total equity so the statement balances before
	// closing entries are posted.
	CurrentPeriodEarnings decimal.Decimal `json:"currentPeriodEarnings"`

	TotalAssets               decimal.Decimal `json:"totalAssets"`
	TotalLiabilities          decimal.Decimal `json:"totalLiabilities"`
	TotalEquity               decimal.Decimal `json:"totalEquity"`
	TotalLiabilitiesAndEquity decimal.Decimal `json:"totalLiabilitiesAndEquity"`
}

// CashFlowLineItem is one account's contribution to a cash flow section,
// already signed as a cash effect (positive = inflow).
type CashFlowLineItem struct {
	AccountID     string          `json:"accountID"`
	AccountNumber string          `json:"accountNumber"`
	Name          string          `json:"name"`
	Amount        decimal.Decimal `json:"amount"`
}

// CashFlowStatementReport is the indirect-method cash flow statement.
type CashFlowStatementReport struct {
	CompanyID   string    `json:"companyID"`
	Currency    string    `json:"currency"`
	PeriodStart time.Time `json:"periodStart"`
	PeriodEnd   time.Time `json:"periodEnd"`

	NetIncome              decimal.Decimal    `json:"netIncome"`
	NonCashAdjustments     []CashFlowLineItem `json:"nonCashAdjustments"` // depreciation/amortization add-backs
	TotalNonCashAdjustment decimal.Decimal    `json:"totalNonCashAdjustment"`
	WorkingCapitalChanges  []CashFlowLineItem `json:"workingCapitalChanges"`
	NetWorkingCapitalDelta decimal.Decimal    `json:"netWorkingCapitalDelta"`
	NetCashFromOperating   decimal.Decimal    `json:"netCashFromOperating"`

	InvestingActivities  []CashFlowLineItem `json:"investingActivities"`
	NetCashFromInvesting decimal.Decimal    `json:"netCashFromInvesting"`

	FinancingActivities  []CashFlowLineItem `json:"financingActivities"`
	NetCashFromFinancing decimal.Decimal    `json:"netCashFromFinancing"`

	ExchangeRateEffect decimal.Decimal `json:"exchangeRateEffect"` // zero for single-currency books
	NetChangeInCash    decimal.Decimal `json:"netChangeInCash"`

	BeginningCash decimal.Decimal `json:"beginningCash"` // computed independently from the ledger
	EndingCash    decimal.Decimal `json:"endingCash"`
	IsReconciled  bool            `json:"isReconciled"`

	// Supplemental disclosures
	InterestPaid decimal.Decimal `json:"interestPaid"`
	TaxesPaid    decimal.Decimal `json:"taxesPaid"`
}

// Reconcile returns a typed error when the statement's beginning cash plus
// net change does not reproduce ending cash. The mismatch is advisory at
// generation time; callers that require the identity assert it through this.
func (r *CashFlowStatementReport) Reconcile() error {
	if r.IsReconciled {
		return nil
	}
	return &CashFlowReconciliationError{
		BeginningCash: r.BeginningCash,
		NetChange:     r.NetChangeInCash,
		EndingCash:    r.EndingCash,
	}
}

// EquityComponent names one of the six standard equity columns.
type EquityComponent string

const (
	ComponentCommonStock      EquityComponent = "COMMON_STOCK"
	ComponentAPIC             EquityComponent = "ADDITIONAL_PAID_IN_CAPITAL"
	ComponentRetainedEarnings EquityComponent = "RETAINED_EARNINGS"
	ComponentTreasuryStock    EquityComponent = "TREASURY_STOCK"
	ComponentAOCI             EquityComponent = "ACCUMULATED_OCI"
	ComponentNCI              EquityComponent = "NON_CONTROLLING_INTEREST"
)

// EquityComponents lists the columns in presentation order.
var EquityComponents = []EquityComponent{
	ComponentCommonStock,
	ComponentAPIC,
	ComponentRetainedEarnings,
	ComponentTreasuryStock,
	ComponentAOCI,
	ComponentNCI,
}

// EquityMovement names one of the eight standard movement rows.
type EquityMovement string

const (
	MovementOpeningBalance   EquityMovement = "OPENING_BALANCE"
	MovementNetIncome        EquityMovement = "NET_INCOME"
	MovementOCI              EquityMovement = "OTHER_COMPREHENSIVE_INCOME"
	MovementDividends        EquityMovement = "DIVIDENDS"
	MovementStockIssuance    EquityMovement = "STOCK_ISSUANCE"
	MovementStockRepurchase  EquityMovement = "STOCK_REPURCHASE"
	MovementOtherAdjustments EquityMovement = "OTHER_ADJUSTMENTS"
	MovementClosingBalance   EquityMovement = "CLOSING_BALANCE"
)

// EquityMovements lists the rows in presentation order.
var EquityMovements = []EquityMovement{
	MovementOpeningBalance,
	MovementNetIncome,
	MovementOCI,
	MovementDividends,
	MovementStockIssuance,
	MovementStockRepurchase,
	MovementOtherAdjustments,
	MovementClosingBalance,
}

// EquityComponentColumn carries every movement amount for one component.
// Closing is a pro-forma balance: opening plus all movements, reflecting net
// income even before a formal closing entry is posted.
type EquityComponentColumn struct {
	Component        EquityComponent `json:"component"`
	OpeningBalance   decimal.Decimal `json:"openingBalance"`
	NetIncome        decimal.Decimal `json:"netIncome"`
	OCI              decimal.Decimal `json:"oci"`
	Dividends        decimal.Decimal `json:"dividends"`
	StockIssuance    decimal.Decimal `json:"stockIssuance"`
	StockRepurchase  decimal.Decimal `json:"stockRepurchase"`
	OtherAdjustments decimal.Decimal `json:"otherAdjustments"`
	ClosingBalance   decimal.Decimal `json:"closingBalance"`
}

// Amount returns the column's value for a movement row.
func (c EquityComponentColumn) Amount(m EquityMovement) decimal.Decimal {
	switch m {
	case MovementOpeningBalance:
		return c.OpeningBalance
	case MovementNetIncome:
		return c.NetIncome
	case MovementOCI:
		return c.OCI
	case MovementDividends:
		return c.Dividends
	case MovementStockIssuance:
		return c.StockIssuance
	case MovementStockRepurchase:
		return c.StockRepurchase
	case MovementOtherAdjustments:
		return c.OtherAdjustments
	case MovementClosingBalance:
		return c.ClosingBalance
	}
	return decimal.Zero
}

// EquityStatementRow is a display row: one movement across all components
// plus the cross-sum total.
type EquityStatementRow struct {
	Movement EquityMovement                      `json:"movement"`
	Amounts  map[EquityComponent]decimal.Decimal `json:"amounts"`
	Total    decimal.Decimal                     `json:"total"`
}

// EquityStatementReport is the statement of changes in equity.
type EquityStatementReport struct {
	CompanyID      string    `json:"companyID"`
	Currency       string    `json:"currency"`
	PeriodStart    time.Time `json:"periodStart"`
	PeriodEnd      time.Time `json:"periodEnd"`
	IsConsolidated bool      `json:"isConsolidated"`

	Columns []EquityComponentColumn `json:"columns"`
	Rows    []EquityStatementRow    `json:"rows"`

	TotalOpeningBalance decimal.Decimal `json:"totalOpeningBalance"`
	TotalClosingBalance decimal.Decimal `json:"totalClosingBalance"`
}
