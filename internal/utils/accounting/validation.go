package accounting

import (
	"github.com/corefin/corefin/internal/core/domain"
)

// typeForLeadingDigit maps the leading digit of a 4-digit account number to
// the account type it implies. 8xxx and 9xxx are exempt from the range check.
var typeForLeadingDigit = map[byte]domain.AccountType{
	'1': domain.Asset,
	'2': domain.Liability,
	'3': domain.Equity,
	'4': domain.Revenue,
	'5': domain.Expense,
	'6': domain.Expense,
	'7': domain.Expense,
}

// ValidateAccount runs the account-level checks, independent of hierarchy,
// and collects all failures rather than stopping at the first:
//   - number-range: the leading digit implies a type; mismatch is an error,
//     8xxx/9xxx numbers accept any declared type,
//   - category legality for the declared type,
//   - normal balance vs. the canonical balance for the type; contra-accounts
//     are expected to fail this and the caller handles them (whitelist or
//     manual review), the check never auto-corrects,
//   - intercompany flag and partner id must agree in both directions,
//   - cash flow category is only legal on balance-sheet accounts.
func ValidateAccount(a domain.Account) []error {
	var errs []error

	if !validAccountNumber(a.AccountNumber) {
		errs = append(errs, &domain.AccountNumberRangeError{
			AccountID:     a.AccountID,
			AccountNumber: a.AccountNumber,
			DeclaredType:  a.AccountType,
		})
	} else if expected, checked := typeForLeadingDigit[a.AccountNumber[0]]; checked && expected != a.AccountType {
		errs = append(errs, &domain.AccountNumberRangeError{
			AccountID:     a.AccountID,
			AccountNumber: a.AccountNumber,
			DeclaredType:  a.AccountType,
			ExpectedType:  &expected,
		})
	}

	if !domain.IsCategoryLegalForType(a.AccountType, a.AccountCategory) {
		errs = append(errs, &domain.AccountCategoryError{
			AccountID:   a.AccountID,
			AccountType: a.AccountType,
			Category:    a.AccountCategory,
		})
	}

	if expected := domain.CanonicalNormalBalance(a.AccountType); expected != "" && a.NormalBalance != expected {
		errs = append(errs, &domain.NormalBalanceError{
			AccountID: a.AccountID,
			Declared:  a.NormalBalance,
			Expected:  expected,
		})
	}

	if a.IsIntercompany && a.IntercompanyPartnerID == "" {
		errs = append(errs, &domain.IntercompanyPartnerMissingError{AccountID: a.AccountID})
	}
	if !a.IsIntercompany && a.IntercompanyPartnerID != "" {
		errs = append(errs, &domain.UnexpectedIntercompanyPartnerError{
			AccountID: a.AccountID,
			PartnerID: a.IntercompanyPartnerID,
		})
	}

	if a.CashFlowCategory != "" && !a.IsBalanceSheetAccount() {
		errs = append(errs, &domain.CashFlowCategoryOnIncomeStatementError{
			AccountID:   a.AccountID,
			AccountType: a.AccountType,
			Category:    a.CashFlowCategory,
		})
	}

	return errs
}

// ValidateChart validates a full chart of accounts: every account-level
// check plus the hierarchy passes, all violations accumulated.
func ValidateChart(accounts []domain.Account) []error {
	var errs []error
	for _, a := range accounts {
		errs = append(errs, ValidateAccount(a)...)
	}
	errs = append(errs, ValidateHierarchy(accounts)...)
	return errs
}

// ValidAccountNumber reports whether n is a well-formed 4-digit account
// number. Request binding uses this before any type-range check runs.
func ValidAccountNumber(n string) bool {
	return validAccountNumber(n)
}

// validAccountNumber reports whether n is a 4-digit string in 1000-9999.
func validAccountNumber(n string) bool {
	if len(n) != 4 {
		return false
	}
	for i := 0; i < 4; i++ {
		if n[i] < '0' || n[i] > '9' {
			return false
		}
	}
	return n[0] != '0'
}
