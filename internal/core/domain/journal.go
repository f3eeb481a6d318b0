package domain

import "time"

// EntryStatus indicates the lifecycle state of a journal entry.
type EntryStatus string

const (
	Draft           EntryStatus = "DRAFT"
	PendingApproval EntryStatus = "PENDING_APPROVAL"
	Approved        EntryStatus = "APPROVED"
	Posted          EntryStatus = "POSTED"
	Reversed        EntryStatus = "REVERSED"
)

// EntryType classifies the business origin of a journal entry.
type EntryType string

const (
	EntryStandard  EntryType = "STANDARD"
	EntryAdjusting EntryType = "ADJUSTING"
	EntryClosing   EntryType = "CLOSING"
	EntryReversing EntryType = "REVERSING"
)

// JournalEntry represents a single, balanced financial event composed of
// multiple lines. Only entries in Posted status with a posting date affect
// account balances.
type JournalEntry struct {
	EntryID         string `json:"entryID"` // Primary Key (e.g., UUID)
	CompanyID       string `json:"companyID"`
	EntryNumber     string `json:"entryNumber,omitempty"`     // company-scoped sequence, e.g. JE-0001
	ReferenceNumber string `json:"referenceNumber,omitempty"` // external document reference

	TransactionDate time.Time  `json:"transactionDate"`
	PostingDate     *time.Time `json:"postingDate,omitempty"` // nil until posted; nil excludes from balances
	DocumentDate    *time.Time `json:"documentDate,omitempty"`

	FiscalPeriod FiscalPeriod `json:"fiscalPeriod"`
	EntryType    EntryType    `json:"entryType"`
	SourceModule string       `json:"sourceModule"`
	Description  string       `json:"description"`
	Status       EntryStatus  `json:"status"`

	IsReversing      bool    `json:"isReversing"`
	ReversedEntryID  *string `json:"reversedEntryID,omitempty"`  // set on the reversal, points at the original
	ReversingEntryID *string `json:"reversingEntryID,omitempty"` // set on the original, points at the reversal

	PostedAt *time.Time `json:"postedAt,omitempty"`
	PostedBy string     `json:"postedBy,omitempty"`
	AuditFields

	// Lines are loaded separately; nil means not loaded.
	Lines []JournalEntryLine `json:"lines,omitempty"`
}

// IsEditable reports whether the entry may still be edited or deleted.
// Only drafts are editable.
func (e JournalEntry) IsEditable() bool {
	return e.Status == Draft
}

// CanSubmit checks the Draft -> PendingApproval transition.
func (e JournalEntry) CanSubmit() error {
	return e.requireStatus(Draft)
}

// CanApprove checks the PendingApproval -> Approved transition.
func (e JournalEntry) CanApprove() error {
	return e.requireStatus(PendingApproval)
}

// CanReject checks the PendingApproval -> Draft back-edge.
func (e JournalEntry) CanReject() error {
	return e.requireStatus(PendingApproval)
}

// CanPost checks the Approved -> Posted transition. The double-entry balance
// precondition is enforced separately, against the entry's lines.
func (e JournalEntry) CanPost() error {
	return e.requireStatus(Approved)
}

// CanReverse checks the Posted -> Reversed transition. An entry can be
// reversed at most once.
func (e JournalEntry) CanReverse() error {
	if err := e.requireStatus(Posted); err != nil {
		return err
	}
	if e.ReversingEntryID != nil {
		return &EntryAlreadyReversedError{EntryID: e.EntryID, ReversingEntryID: *e.ReversingEntryID}
	}
	return nil
}

func (e JournalEntry) requireStatus(required EntryStatus) error {
	if e.Status != required {
		return &EntryStatusError{EntryID: e.EntryID, Current: e.Status, Required: required}
	}
	return nil
}
