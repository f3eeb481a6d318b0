package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Typed, data-carrying domain errors. Financial-integrity failures are always
// returned to the caller, never logged and swallowed.

// EntryStatusError reports an illegal lifecycle transition attempt.
type EntryStatusError struct {
	EntryID  string
	Current  EntryStatus
	Required EntryStatus
}

func (e *EntryStatusError) Error() string {
	return fmt.Sprintf("journal entry %s is %s, required status %s", e.EntryID, e.Current, e.Required)
}

// EntryAlreadyReversedError reports a second reversal attempt on an entry
// that already has a reversing entry linked.
type EntryAlreadyReversedError struct {
	EntryID          string
	ReversingEntryID string
}

func (e *EntryAlreadyReversedError) Error() string {
	return fmt.Sprintf("journal entry %s is already reversed by entry %s", e.EntryID, e.ReversingEntryID)
}

// UnbalancedEntryError reports that an entry's functional-currency debits do
// not equal its credits. Carries both sums for diagnostics.
type UnbalancedEntryError struct {
	EntryID     string
	DebitTotal  decimal.Decimal
	CreditTotal decimal.Decimal
}

func (e *UnbalancedEntryError) Error() string {
	return fmt.Sprintf("journal entry %s does not balance: debits %s, credits %s",
		e.EntryID, e.DebitTotal.String(), e.CreditTotal.String())
}

// ParentAccountNotFoundError reports a dangling parent reference.
type ParentAccountNotFoundError struct {
	AccountID       string
	ParentAccountID string
}

func (e *ParentAccountNotFoundError) Error() string {
	return fmt.Sprintf("account %s references missing parent %s", e.AccountID, e.ParentAccountID)
}

// AccountTypeMismatchError reports a child whose type differs from its
// parent's type.
type AccountTypeMismatchError struct {
	AccountID  string
	ParentID   string
	ChildType  AccountType
	ParentType AccountType
}

func (e *AccountTypeMismatchError) Error() string {
	return fmt.Sprintf("account %s has type %s but parent %s has type %s",
		e.AccountID, e.ChildType, e.ParentID, e.ParentType)
}

// CircularReferenceError reports a cycle in the account hierarchy. Chain is
// the walked ancestor id chain, ending at the repeated id.
type CircularReferenceError struct {
	AccountID string
	Chain     []string
}

func (e *CircularReferenceError) Error() string {
	return fmt.Sprintf("circular parent reference starting at account %s: %s",
		e.AccountID, strings.Join(e.Chain, " -> "))
}

// AccountNumberRangeError reports an account number whose leading digit does
// not match the declared account type. ExpectedType is nil for the exempt
// 8xxx/9xxx ranges (which never produce this error).
type AccountNumberRangeError struct {
	AccountID     string
	AccountNumber string
	DeclaredType  AccountType
	ExpectedType  *AccountType
}

func (e *AccountNumberRangeError) Error() string {
	if e.ExpectedType == nil {
		return fmt.Sprintf("account %s number %q is invalid for type %s", e.AccountID, e.AccountNumber, e.DeclaredType)
	}
	return fmt.Sprintf("account %s number %q implies type %s but account is declared %s",
		e.AccountID, e.AccountNumber, *e.ExpectedType, e.DeclaredType)
}

// NormalBalanceError reports a declared normal balance that differs from the
// canonical one for the account type. Expected for intentional
// contra-accounts; the caller decides whether to whitelist.
type NormalBalanceError struct {
	AccountID string
	Declared  NormalBalance
	Expected  NormalBalance
}

func (e *NormalBalanceError) Error() string {
	return fmt.Sprintf("account %s declares normal balance %s, canonical balance is %s",
		e.AccountID, e.Declared, e.Expected)
}

// IntercompanyPartnerMissingError reports an intercompany account with no
// partner company id.
type IntercompanyPartnerMissingError struct {
	AccountID string
}

func (e *IntercompanyPartnerMissingError) Error() string {
	return fmt.Sprintf("intercompany account %s has no partner company", e.AccountID)
}

// UnexpectedIntercompanyPartnerError reports a partner company id on an
// account not flagged intercompany.
type UnexpectedIntercompanyPartnerError struct {
	AccountID string
	PartnerID string
}

func (e *UnexpectedIntercompanyPartnerError) Error() string {
	return fmt.Sprintf("account %s is not intercompany but has partner company %s", e.AccountID, e.PartnerID)
}

// CashFlowCategoryOnIncomeStatementError reports a cash flow category set on
// a Revenue/Expense account; the category is only legal on balance-sheet
// accounts.
type CashFlowCategoryOnIncomeStatementError struct {
	AccountID   string
	AccountType AccountType
	Category    CashFlowCategory
}

func (e *CashFlowCategoryOnIncomeStatementError) Error() string {
	return fmt.Sprintf("account %s (%s) carries cash flow category %s, only balance sheet accounts may",
		e.AccountID, e.AccountType, e.Category)
}

// AccountCategoryError reports a category outside the set legal for the
// account's type.
type AccountCategoryError struct {
	AccountID   string
	AccountType AccountType
	Category    AccountCategory
}

func (e *AccountCategoryError) Error() string {
	return fmt.Sprintf("account %s category %s is not legal for type %s", e.AccountID, e.Category, e.AccountType)
}

// InvalidPeriodError reports a period whose start falls after its end.
type InvalidPeriodError struct {
	Start time.Time
	End   time.Time
}

func (e *InvalidPeriodError) Error() string {
	return fmt.Sprintf("invalid period: start %s is after end %s",
		e.Start.Format("2006-01-02"), e.End.Format("2006-01-02"))
}

// BalanceSheetNotBalancedError reports a violation of the fundamental
// accounting identity. Carries both totals for diagnostics.
type BalanceSheetNotBalancedError struct {
	TotalAssets               decimal.Decimal
	TotalLiabilitiesAndEquity decimal.Decimal
}

func (e *BalanceSheetNotBalancedError) Error() string {
	return fmt.Sprintf("balance sheet does not balance: assets %s, liabilities and equity %s",
		e.TotalAssets.String(), e.TotalLiabilitiesAndEquity.String())
}

// CashFlowReconciliationError reports that beginning cash plus the net change
// does not reproduce ending cash.
type CashFlowReconciliationError struct {
	BeginningCash decimal.Decimal
	NetChange     decimal.Decimal
	EndingCash    decimal.Decimal
}

func (e *CashFlowReconciliationError) Error() string {
	return fmt.Sprintf("cash flow does not reconcile: beginning %s + net change %s != ending %s",
		e.BeginningCash.String(), e.NetChange.String(), e.EndingCash.String())
}
