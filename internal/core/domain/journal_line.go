package domain

import (
	"github.com/shopspring/decimal"
)

// JournalEntryLine is a single line within a journal entry, affecting one
// account. Exactly one of Debit/Credit is populated; the functional-currency
// equivalents are what balance calculations and reports consume.
type JournalEntryLine struct {
	LineID     string `json:"lineID"` // Primary Key (e.g., UUID)
	EntryID    string `json:"entryID"`
	LineNumber int    `json:"lineNumber"`
	AccountID  string `json:"accountID"`

	Debit  *MonetaryAmount `json:"debit,omitempty"`  // transaction currency; nil when the line is a credit
	Credit *MonetaryAmount `json:"credit,omitempty"` // transaction currency; nil when the line is a debit

	FunctionalDebit  *MonetaryAmount `json:"functionalDebit,omitempty"`
	FunctionalCredit *MonetaryAmount `json:"functionalCredit,omitempty"`
	ExchangeRate     decimal.Decimal `json:"exchangeRate"` // transaction -> functional; 1 for same-currency lines

	Description string `json:"description,omitempty"`
	AuditFields
}

// IsDebit reports whether the line carries a debit amount.
func (l JournalEntryLine) IsDebit() bool {
	return l.Debit != nil
}

// IsCredit reports whether the line carries a credit amount.
func (l JournalEntryLine) IsCredit() bool {
	return l.Credit != nil
}

// FunctionalDebitAmount returns the functional-currency debit, or zero when
// the line is a credit.
func (l JournalEntryLine) FunctionalDebitAmount() decimal.Decimal {
	if l.FunctionalDebit != nil {
		return l.FunctionalDebit.Amount
	}
	return decimal.Zero
}

// FunctionalCreditAmount returns the functional-currency credit, or zero when
// the line is a debit.
func (l JournalEntryLine) FunctionalCreditAmount() decimal.Decimal {
	if l.FunctionalCredit != nil {
		return l.FunctionalCredit.Amount
	}
	return decimal.Zero
}

// LedgerEntry pairs a journal entry with its lines. The reporting engine
// consumes immutable snapshots of these.
type LedgerEntry struct {
	Entry JournalEntry       `json:"entry"`
	Lines []JournalEntryLine `json:"lines"`
}
