package mapping

import (
	"github.com/corefin/corefin/internal/core/domain"
	"github.com/corefin/corefin/internal/models"
	"github.com/shopspring/decimal"
)

// ToModelJournalEntry converts a domain JournalEntry header to its model form.
// Lines are mapped separately.
func ToModelJournalEntry(d domain.JournalEntry) models.JournalEntry {
	return models.JournalEntry{
		EntryID:          d.EntryID,
		CompanyID:        d.CompanyID,
		EntryNumber:      d.EntryNumber,
		ReferenceNumber:  d.ReferenceNumber,
		TransactionDate:  d.TransactionDate,
		PostingDate:      d.PostingDate,
		DocumentDate:     d.DocumentDate,
		FiscalYear:       d.FiscalPeriod.Year,
		FiscalPeriod:     d.FiscalPeriod.Period,
		EntryType:        d.EntryType,
		SourceModule:     d.SourceModule,
		Description:      d.Description,
		Status:           d.Status,
		IsReversing:      d.IsReversing,
		ReversedEntryID:  d.ReversedEntryID,
		ReversingEntryID: d.ReversingEntryID,
		PostedAt:         d.PostedAt,
		PostedBy:         d.PostedBy,
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainJournalEntry converts a model JournalEntry to its domain form.
// The Lines slice is left nil; callers attach lines when they load them.
func ToDomainJournalEntry(m models.JournalEntry) domain.JournalEntry {
	return domain.JournalEntry{
		EntryID:          m.EntryID,
		CompanyID:        m.CompanyID,
		EntryNumber:      m.EntryNumber,
		ReferenceNumber:  m.ReferenceNumber,
		TransactionDate:  m.TransactionDate,
		PostingDate:      m.PostingDate,
		DocumentDate:     m.DocumentDate,
		FiscalPeriod:     domain.FiscalPeriod{Year: m.FiscalYear, Period: m.FiscalPeriod},
		EntryType:        m.EntryType,
		SourceModule:     m.SourceModule,
		Description:      m.Description,
		Status:           m.Status,
		IsReversing:      m.IsReversing,
		ReversedEntryID:  m.ReversedEntryID,
		ReversingEntryID: m.ReversingEntryID,
		PostedAt:         m.PostedAt,
		PostedBy:         m.PostedBy,
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainJournalEntrySlice converts model entries to domain entries
func ToDomainJournalEntrySlice(ms []models.JournalEntry) []domain.JournalEntry {
	ds := make([]domain.JournalEntry, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainJournalEntry(m)
	}
	return ds
}

// ToModelJournalEntryLine converts a domain line to its model form
func ToModelJournalEntryLine(d domain.JournalEntryLine) models.JournalEntryLine {
	m := models.JournalEntryLine{
		LineID:       d.LineID,
		EntryID:      d.EntryID,
		LineNumber:   d.LineNumber,
		AccountID:    d.AccountID,
		ExchangeRate: d.ExchangeRate,
		Description:  d.Description,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
	if d.Debit != nil {
		m.DebitAmount = decimal.NewNullDecimal(d.Debit.Amount)
		m.DebitCurrency = d.Debit.Currency
	}
	if d.Credit != nil {
		m.CreditAmount = decimal.NewNullDecimal(d.Credit.Amount)
		m.CreditCurrency = d.Credit.Currency
	}
	if d.FunctionalDebit != nil {
		m.FunctionalDebit = decimal.NewNullDecimal(d.FunctionalDebit.Amount)
		m.FunctionalCurrency = d.FunctionalDebit.Currency
	}
	if d.FunctionalCredit != nil {
		m.FunctionalCredit = decimal.NewNullDecimal(d.FunctionalCredit.Amount)
		m.FunctionalCurrency = d.FunctionalCredit.Currency
	}
	return m
}

// ToDomainJournalEntryLine converts a model line to its domain form
func ToDomainJournalEntryLine(m models.JournalEntryLine) domain.JournalEntryLine {
	d := domain.JournalEntryLine{
		LineID:       m.LineID,
		EntryID:      m.EntryID,
		LineNumber:   m.LineNumber,
		AccountID:    m.AccountID,
		ExchangeRate: m.ExchangeRate,
		Description:  m.Description,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
	if m.DebitAmount.Valid {
		d.Debit = &domain.MonetaryAmount{Amount: m.DebitAmount.Decimal, Currency: m.DebitCurrency}
	}
	if m.CreditAmount.Valid {
		d.Credit = &domain.MonetaryAmount{Amount: m.CreditAmount.Decimal, Currency: m.CreditCurrency}
	}
	if m.FunctionalDebit.Valid {
		d.FunctionalDebit = &domain.MonetaryAmount{Amount: m.FunctionalDebit.Decimal, Currency: m.FunctionalCurrency}
	}
	if m.FunctionalCredit.Valid {
		d.FunctionalCredit = &domain.MonetaryAmount{Amount: m.FunctionalCredit.Decimal, Currency: m.FunctionalCurrency}
	}
	return d
}

// ToDomainJournalEntryLineSlice converts model lines to domain lines
func ToDomainJournalEntryLineSlice(ms []models.JournalEntryLine) []domain.JournalEntryLine {
	ds := make([]domain.JournalEntryLine, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainJournalEntryLine(m)
	}
	return ds
}
