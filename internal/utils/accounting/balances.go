package accounting

import (
	"time"

	"github.com/corefin/corefin/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Ledger balance calculator. All functions are pure: given an immutable
// snapshot of entries with lines, they deterministically produce a signed
// functional-currency balance for one account. Entries that are not Posted,
// or that lack a posting date, never affect a balance regardless of status.

// includable reports whether an entry contributes to balances at all.
func includable(e domain.JournalEntry) bool {
	return e.Status == domain.Posted && e.PostingDate != nil
}

// accumulate sums the functional debit/credit lines for accountID across the
// ledger entries selected by the date predicate.
func accumulate(accountID string, ledger []domain.LedgerEntry, include func(postingDate time.Time) bool) (debits, credits decimal.Decimal) {
	debits = decimal.Zero
	credits = decimal.Zero
	for _, le := range ledger {
		if !includable(le.Entry) {
			continue
		}
		if !include(domain.DateOnly(*le.Entry.PostingDate)) {
			continue
		}
		for _, line := range le.Lines {
			if line.AccountID != accountID {
				continue
			}
			debits = debits.Add(line.FunctionalDebitAmount())
			credits = credits.Add(line.FunctionalCreditAmount())
		}
	}
	return debits, credits
}

// CalculateBalance computes the cumulative balance of an account as of a
// date: all posted activity with postingDate <= asOf, signed by the
// account's normal balance.
func CalculateBalance(accountID string, normal domain.NormalBalance, ledger []domain.LedgerEntry, asOf time.Time) decimal.Decimal {
	boundary := domain.DateOnly(asOf)
	debits, credits := accumulate(accountID, ledger, func(d time.Time) bool {
		return !d.After(boundary)
	})
	return SignedBalance(debits, credits, normal)
}

// CalculatePeriodBalance computes the account's activity within
// [start, end], both boundaries inclusive. This is movement for the period,
// not a cumulative balance.
func CalculatePeriodBalance(accountID string, normal domain.NormalBalance, ledger []domain.LedgerEntry, start, end time.Time) decimal.Decimal {
	from := domain.DateOnly(start)
	to := domain.DateOnly(end)
	debits, credits := accumulate(accountID, ledger, func(d time.Time) bool {
		return !d.Before(from) && !d.After(to)
	})
	return SignedBalance(debits, credits, normal)
}

// CalculateYTDBalance computes activity from the fiscal-year start through
// asOf, inclusive.
func CalculateYTDBalance(accountID string, normal domain.NormalBalance, ledger []domain.LedgerEntry, fiscalYearStart, asOf time.Time) decimal.Decimal {
	return CalculatePeriodBalance(accountID, normal, ledger, fiscalYearStart, asOf)
}

// CalculateBeginningBalance computes the cumulative balance strictly before
// periodStart, i.e. as of the preceding calendar day.
func CalculateBeginningBalance(accountID string, normal domain.NormalBalance, ledger []domain.LedgerEntry, periodStart time.Time) decimal.Decimal {
	return CalculateBalance(accountID, normal, ledger, domain.DayBefore(periodStart))
}
