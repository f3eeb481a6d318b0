package dto

import (
	"time"

	"github.com/corefin/corefin/internal/core/domain"
	"github.com/shopspring/decimal"
)

// --- Journal Entry DTOs ---

// CreateJournalLineRequest defines one line of a new entry. Exactly one of
// DebitAmount/CreditAmount must be set, and it must be positive.
type CreateJournalLineRequest struct {
	AccountID    string           `json:"accountID" binding:"required"`
	DebitAmount  *decimal.Decimal `json:"debitAmount"`
	CreditAmount *decimal.Decimal `json:"creditAmount"`
	Currency     string           `json:"currency" binding:"omitempty,iso4217"` // Defaults to the company's functional currency
	ExchangeRate *decimal.Decimal `json:"exchangeRate"`                         // Defaults to 1
	Description  string           `json:"description"`
}

// CreateJournalEntryRequest defines data for creating a new draft entry.
type CreateJournalEntryRequest struct {
	TransactionDate time.Time                  `json:"transactionDate" binding:"required"`
	DocumentDate    *time.Time                 `json:"documentDate"`
	EntryType       domain.EntryType           `json:"entryType" binding:"omitempty,oneof=STANDARD ADJUSTING CLOSING REVERSING"`
	ReferenceNumber string                     `json:"referenceNumber"`
	SourceModule    string                     `json:"sourceModule"`
	Description     string                     `json:"description"`
	Lines           []CreateJournalLineRequest `json:"lines" binding:"required,min=2,dive"`
}

// UpdateJournalEntryRequest replaces a draft entry's header and lines.
type UpdateJournalEntryRequest struct {
	TransactionDate time.Time                  `json:"transactionDate" binding:"required"`
	DocumentDate    *time.Time                 `json:"documentDate"`
	ReferenceNumber string                     `json:"referenceNumber"`
	Description     string                     `json:"description"`
	Lines           []CreateJournalLineRequest `json:"lines" binding:"required,min=2,dive"`
}

// PostEntryRequest optionally overrides the posting date.
type PostEntryRequest struct {
	PostingDate *time.Time `json:"postingDate"`
}

// ReverseEntryRequest optionally sets the reversal date.
type ReverseEntryRequest struct {
	ReversalDate *time.Time `json:"reversalDate"`
}

// ListEntriesParams carries filters and the pagination token for listing entries.
type ListEntriesParams struct {
	Statuses  []domain.EntryStatus `form:"status" binding:"omitempty,dive,oneof=DRAFT PENDING_APPROVAL APPROVED POSTED REVERSED"`
	Limit     int                  `form:"limit,default=50" binding:"omitempty,min=1,max=200"`
	NextToken string               `form:"nextToken"`
}

// JournalLineResponse defines the data returned for one entry line.
type JournalLineResponse struct {
	LineID           string           `json:"lineID"`
	LineNumber       int              `json:"lineNumber"`
	AccountID        string           `json:"accountID"`
	Debit            *decimal.Decimal `json:"debit,omitempty"`
	Credit           *decimal.Decimal `json:"credit,omitempty"`
	Currency         string           `json:"currency"`
	FunctionalDebit  *decimal.Decimal `json:"functionalDebit,omitempty"`
	FunctionalCredit *decimal.Decimal `json:"functionalCredit,omitempty"`
	ExchangeRate     decimal.Decimal  `json:"exchangeRate"`
	Description      string           `json:"description,omitempty"`
}

// JournalEntryResponse defines the data returned for an entry.
type JournalEntryResponse struct {
	EntryID          string                `json:"entryID"`
	CompanyID        string                `json:"companyID"`
	EntryNumber      string                `json:"entryNumber"`
	ReferenceNumber  string                `json:"referenceNumber,omitempty"`
	TransactionDate  time.Time             `json:"transactionDate"`
	PostingDate      *time.Time            `json:"postingDate,omitempty"`
	DocumentDate     *time.Time            `json:"documentDate,omitempty"`
	FiscalYear       int                   `json:"fiscalYear"`
	FiscalPeriod     int                   `json:"fiscalPeriod"`
	EntryType        domain.EntryType      `json:"entryType"`
	SourceModule     string                `json:"sourceModule,omitempty"`
	Description      string                `json:"description"`
	Status           domain.EntryStatus    `json:"status"`
	IsReversing      bool                  `json:"isReversing"`
	ReversedEntryID  *string               `json:"reversedEntryID,omitempty"`
	ReversingEntryID *string               `json:"reversingEntryID,omitempty"`
	PostedAt         *time.Time            `json:"postedAt,omitempty"`
	PostedBy         string                `json:"postedBy,omitempty"`
	CreatedAt        time.Time             `json:"createdAt"`
	CreatedBy        string                `json:"createdBy"`
	Lines            []JournalLineResponse `json:"lines,omitempty"`
}

// ToJournalLineResponse converts a domain line to DTO.
func ToJournalLineResponse(l *domain.JournalEntryLine) JournalLineResponse {
	resp := JournalLineResponse{
		LineID:       l.LineID,
		LineNumber:   l.LineNumber,
		AccountID:    l.AccountID,
		ExchangeRate: l.ExchangeRate,
		Description:  l.Description,
	}
	if l.Debit != nil {
		resp.Debit = &l.Debit.Amount
		resp.Currency = l.Debit.Currency
	}
	if l.Credit != nil {
		resp.Credit = &l.Credit.Amount
		resp.Currency = l.Credit.Currency
	}
	if l.FunctionalDebit != nil {
		resp.FunctionalDebit = &l.FunctionalDebit.Amount
	}
	if l.FunctionalCredit != nil {
		resp.FunctionalCredit = &l.FunctionalCredit.Amount
	}
	return resp
}

// ToJournalEntryResponse converts a domain entry, with any loaded lines, to DTO.
func ToJournalEntryResponse(e *domain.JournalEntry) JournalEntryResponse {
	resp := JournalEntryResponse{
		EntryID:          e.EntryID,
		CompanyID:        e.CompanyID,
		EntryNumber:      e.EntryNumber,
		ReferenceNumber:  e.ReferenceNumber,
		TransactionDate:  e.TransactionDate,
		PostingDate:      e.PostingDate,
		DocumentDate:     e.DocumentDate,
		FiscalYear:       e.FiscalPeriod.Year,
		FiscalPeriod:     e.FiscalPeriod.Period,
		EntryType:        e.EntryType,
		SourceModule:     e.SourceModule,
		Description:      e.Description,
		Status:           e.Status,
		IsReversing:      e.IsReversing,
		ReversedEntryID:  e.ReversedEntryID,
		ReversingEntryID: e.ReversingEntryID,
		PostedAt:         e.PostedAt,
		PostedBy:         e.PostedBy,
		CreatedAt:        e.CreatedAt,
		CreatedBy:        e.CreatedBy,
	}
	if len(e.Lines) > 0 {
		resp.Lines = make([]JournalLineResponse, len(e.Lines))
		for i, l := range e.Lines {
			resp.Lines[i] = ToJournalLineResponse(&l)
		}
	}
	return resp
}

// ListEntriesResponse wraps a paginated list of entries.
type ListEntriesResponse struct {
	Entries   []JournalEntryResponse `json:"entries"`
	NextToken string                 `json:"nextToken,omitempty"`
}

// ToListEntriesResponse converts domain entries plus the follow-up token to DTO.
func ToListEntriesResponse(es []domain.JournalEntry, nextToken string) *ListEntriesResponse {
	list := make([]JournalEntryResponse, len(es))
	for i, e := range es {
		list[i] = ToJournalEntryResponse(&e)
	}
	return &ListEntriesResponse{Entries: list, NextToken: nextToken}
}
