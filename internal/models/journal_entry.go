package models

import (
	"time"

	"github.com/corefin/corefin/internal/core/domain"
	"github.com/shopspring/decimal"
)

// JournalEntry is the persisted header row of a journal entry.
type JournalEntry struct {
	EntryID          string             `db:"entry_id"`
	CompanyID        string             `db:"company_id"`
	EntryNumber      string             `db:"entry_number"`
	ReferenceNumber  string             `db:"reference_number"` // Nullable
	TransactionDate  time.Time          `db:"transaction_date"`
	PostingDate      *time.Time         `db:"posting_date"` // Set on posting
	DocumentDate     *time.Time         `db:"document_date"`
	FiscalYear       int                `db:"fiscal_year"`
	FiscalPeriod     int                `db:"fiscal_period"`
	EntryType        domain.EntryType   `db:"entry_type"`
	SourceModule     string             `db:"source_module"` // Nullable
	Description      string             `db:"description"`
	Status           domain.EntryStatus `db:"status"`
	IsReversing      bool               `db:"is_reversing"`
	ReversedEntryID  *string            `db:"reversed_entry_id"`  // Set on the reversal
	ReversingEntryID *string            `db:"reversing_entry_id"` // Set on the original
	PostedAt         *time.Time         `db:"posted_at"`
	PostedBy         string             `db:"posted_by"` // Nullable
	AuditFields
}

// JournalEntryLine is the persisted row for a single debit or credit.
// Exactly one of the debit/credit amount pairs is non-null per row.
type JournalEntryLine struct {
	LineID             string              `db:"line_id"`
	EntryID            string              `db:"entry_id"`
	LineNumber         int                 `db:"line_number"`
	AccountID          string              `db:"account_id"`
	DebitAmount        decimal.NullDecimal `db:"debit_amount"`
	DebitCurrency      string              `db:"debit_currency"`
	CreditAmount       decimal.NullDecimal `db:"credit_amount"`
	CreditCurrency     string              `db:"credit_currency"`
	FunctionalDebit    decimal.NullDecimal `db:"functional_debit"`
	FunctionalCredit   decimal.NullDecimal `db:"functional_credit"`
	FunctionalCurrency string              `db:"functional_currency"`
	ExchangeRate       decimal.Decimal     `db:"exchange_rate"`
	Description        string              `db:"description"` // Nullable
	AuditFields
}
