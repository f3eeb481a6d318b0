package services

import (
	"context"
	"time"

	"github.com/corefin/corefin/internal/core/domain"
	"github.com/corefin/corefin/internal/dto"
)

// JournalEntryReaderSvc defines read operations for journal entries
type JournalEntryReaderSvc interface {
	// GetEntryByID retrieves a specific entry with its lines.
	GetEntryByID(ctx context.Context, companyID string, entryID string, userID string) (*domain.JournalEntry, error)

	// ListEntries retrieves a paginated list of entries in a company.
	ListEntries(ctx context.Context, companyID string, userID string, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error)
}

// JournalEntryWriterSvc defines draft create/edit/delete operations
type JournalEntryWriterSvc interface {
	// CreateEntry persists a new draft entry with its lines.
	CreateEntry(ctx context.Context, companyID string, req dto.CreateJournalEntryRequest, creatorUserID string) (*domain.JournalEntry, error)

	// UpdateDraftEntry replaces a draft entry's header and lines.
	UpdateDraftEntry(ctx context.Context, companyID string, entryID string, req dto.UpdateJournalEntryRequest, userID string) (*domain.JournalEntry, error)

	// DeleteDraftEntry removes a draft entry.
	DeleteDraftEntry(ctx context.Context, companyID string, entryID string, userID string) error
}

// JournalEntryLifecycleSvc owns the status state machine:
// Draft -> PendingApproval -> Approved -> Posted -> Reversed, with a
// rejection back-edge PendingApproval -> Draft.
type JournalEntryLifecycleSvc interface {
	// SubmitEntry moves a draft into pending approval.
	SubmitEntry(ctx context.Context, companyID string, entryID string, userID string) (*domain.JournalEntry, error)

	// ApproveEntry approves a pending entry.
	ApproveEntry(ctx context.Context, companyID string, entryID string, userID string) (*domain.JournalEntry, error)

	// RejectEntry returns a pending entry to draft.
	RejectEntry(ctx context.Context, companyID string, entryID string, userID string) (*domain.JournalEntry, error)

	// PostEntry posts an approved entry, enforcing the double-entry balance
	// precondition. A nil postingDate defaults to today.
	PostEntry(ctx context.Context, companyID string, entryID string, postingDate *time.Time, userID string) (*domain.JournalEntry, error)

	// ReverseEntry creates and posts the reversing entry for a posted entry
	// and marks the original Reversed, atomically. At most one reversal per
	// entry is ever accepted.
	ReverseEntry(ctx context.Context, companyID string, entryID string, reversalDate *time.Time, userID string) (*domain.JournalEntry, error)
}

// JournalEntrySvcFacade combines all journal-entry service interfaces
type JournalEntrySvcFacade interface {
	JournalEntryReaderSvc
	JournalEntryWriterSvc
	JournalEntryLifecycleSvc
}
