package repositories

import (
	"context"
	"time"

	"github.com/corefin/corefin/internal/core/domain"
)

// JournalEntryReader defines read operations for journal entry data
type JournalEntryReader interface {
	// FindEntryByID retrieves a specific journal entry by its unique identifier.
	FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error)

	// FindLinesByEntryID retrieves all lines of a single entry, ordered by line number.
	FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalEntryLine, error)

	// ListEntriesByCompany retrieves a paginated list of entries for a company
	// using token-based pagination. Returns entries, a next-page token, and an error.
	ListEntriesByCompany(ctx context.Context, companyID string, limit int, nextToken *string, statuses []domain.EntryStatus) ([]domain.JournalEntry, *string, error)

	// FindPostedEntriesWithLines retrieves every posted entry with its lines
	// for a company. This is the ledger snapshot the reporting engine runs on.
	FindPostedEntriesWithLines(ctx context.Context, companyID string) ([]domain.LedgerEntry, error)

	// FindMaxEntryNumber returns the highest allocated entry number for a
	// company, or "" when no entry exists yet.
	FindMaxEntryNumber(ctx context.Context, companyID string) (string, error)
}

// JournalEntryWriter defines write operations for journal entry data
type JournalEntryWriter interface {
	// SaveEntry persists a new entry and its lines atomically.
	SaveEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalEntryLine) error

	// UpdateDraftEntry replaces a draft entry's header and lines atomically.
	UpdateDraftEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalEntryLine) error

	// DeleteDraftEntry removes a draft entry and its lines.
	DeleteDraftEntry(ctx context.Context, entryID string) error

	// UpdateEntryStatus transitions an entry from an expected status to the
	// next one. The update is conditional on the current status (optimistic
	// read-modify-write); apperrors.ErrConflict is returned when the entry is
	// no longer in the expected status.
	UpdateEntryStatus(ctx context.Context, entryID string, from, to domain.EntryStatus, userID string, now time.Time) error

	// MarkEntryPosted transitions an Approved entry to Posted, setting the
	// posting date and posting audit fields. Conditional on current status.
	MarkEntryPosted(ctx context.Context, entryID string, postingDate time.Time, postedBy string, now time.Time) error

	// SaveReversal persists the reversing entry with its lines and marks the
	// original entry Reversed with its reversing link, as one atomic unit.
	SaveReversal(ctx context.Context, originalEntryID string, reversal domain.JournalEntry, lines []domain.JournalEntryLine, userID string, now time.Time) error
}

// JournalEntryRepositoryFacade combines all journal-entry repository interfaces
type JournalEntryRepositoryFacade interface {
	JournalEntryReader
	JournalEntryWriter
}

// JournalEntryRepositoryWithTx extends the facade with transaction capabilities
type JournalEntryRepositoryWithTx interface {
	JournalEntryRepositoryFacade
	TransactionManager
}
