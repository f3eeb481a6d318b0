package accounting

import (
	"fmt"

	"github.com/corefin/corefin/internal/core/domain"
	"github.com/shopspring/decimal"
)

// EntryTotals sums the functional-currency debit and credit amounts across
// the lines of a single journal entry.
func EntryTotals(lines []domain.JournalEntryLine) (debits, credits decimal.Decimal) {
	debits = decimal.Zero
	credits = decimal.Zero
	for _, line := range lines {
		debits = debits.Add(line.FunctionalDebitAmount())
		credits = credits.Add(line.FunctionalCreditAmount())
	}
	return debits, credits
}

// ValidateEntryBalance enforces the double-entry invariant: for a journal
// entry, the sum of functional-currency debits must equal the sum of
// functional-currency credits. This is checked at the entry level, not per
// line, and must pass before a transition into Posted is accepted.
func ValidateEntryBalance(entryID string, lines []domain.JournalEntryLine) error {
	debits, credits := EntryTotals(lines)
	if !debits.Equal(credits) {
		return &domain.UnbalancedEntryError{
			EntryID:     entryID,
			DebitTotal:  debits,
			CreditTotal: credits,
		}
	}
	return nil
}

// ValidateLineShape checks the structural invariants of a single line:
// exactly one of debit/credit populated, positive amounts, and functional
// equivalents present on the populated side.
func ValidateLineShape(line domain.JournalEntryLine) error {
	switch {
	case line.Debit != nil && line.Credit != nil:
		return fmt.Errorf("line %d: debit and credit are mutually exclusive", line.LineNumber)
	case line.Debit == nil && line.Credit == nil:
		return fmt.Errorf("line %d: exactly one of debit or credit must be set", line.LineNumber)
	}
	if line.Debit != nil {
		if line.Debit.Amount.LessThanOrEqual(decimal.Zero) {
			return fmt.Errorf("line %d: debit amount must be positive", line.LineNumber)
		}
		if line.FunctionalDebit == nil {
			return fmt.Errorf("line %d: functional debit amount missing", line.LineNumber)
		}
	}
	if line.Credit != nil {
		if line.Credit.Amount.LessThanOrEqual(decimal.Zero) {
			return fmt.Errorf("line %d: credit amount must be positive", line.LineNumber)
		}
		if line.FunctionalCredit == nil {
			return fmt.Errorf("line %d: functional credit amount missing", line.LineNumber)
		}
	}
	return nil
}

// SignedBalance converts raw debit/credit totals into a signed balance from
// the account's point of view: debits minus credits for debit-normal
// accounts, credits minus debits for credit-normal accounts.
func SignedBalance(debits, credits decimal.Decimal, normal domain.NormalBalance) decimal.Decimal {
	if normal == domain.DebitBalance {
		return debits.Sub(credits)
	}
	return credits.Sub(debits)
}
