package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/corefin/corefin/internal/apperrors"
	"github.com/corefin/corefin/internal/core/domain"
	portsrepo "github.com/corefin/corefin/internal/core/ports/repositories"
	portssvc "github.com/corefin/corefin/internal/core/ports/services"
	"github.com/corefin/corefin/internal/dto"
	"github.com/corefin/corefin/internal/utils/accounting"
)

var (
	ErrEntryMinLines       = errors.New("journal entry must have at least two lines")
	ErrEntryMinAccounts    = errors.New("journal entry must affect at least two different accounts")
	ErrLineAmountShape     = errors.New("journal line must carry exactly one positive debit or credit")
	ErrEntryNotEditable    = errors.New("journal entry is not editable in its current status")
	ErrAccountNotPostable  = errors.New("account does not accept direct postings")
	ErrCurrencyRestriction = errors.New("line currency violates the account's currency restriction")
)

// journalEntryService owns the journal entry lifecycle. Posted entries are
// immutable; every correction goes through a reversal.
type journalEntryService struct {
	BaseService
	entryRepo  portsrepo.JournalEntryRepositoryWithTx
	accountSvc portssvc.AccountSvcFacade
	companySvc portssvc.CompanySvcFacade
}

// NewJournalEntryService creates a new journal entry service.
func NewJournalEntryService(er portsrepo.JournalEntryRepositoryWithTx, accountSvc portssvc.AccountSvcFacade, companySvc portssvc.CompanySvcFacade) portssvc.JournalEntrySvcFacade {
	return &journalEntryService{
		BaseService: BaseService{CompanyAuthorizer: companySvc},
		entryRepo:   er,
		accountSvc:  accountSvc,
		companySvc:  companySvc,
	}
}

var _ portssvc.JournalEntrySvcFacade = (*journalEntryService)(nil)

// CreateEntry validates and persists a new draft entry with its lines.
// Drafts may be unbalanced; balance is enforced at posting time.
func (s *journalEntryService) CreateEntry(ctx context.Context, companyID string, req dto.CreateJournalEntryRequest, creatorUserID string) (*domain.JournalEntry, error) {
	if err := s.AuthorizeUser(ctx, creatorUserID, companyID, domain.RoleMember); err != nil {
		return nil, err
	}

	functionalCurrency, err := s.companySvc.GetFunctionalCurrency(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve functional currency for company %s: %w", companyID, err)
	}

	now := time.Now()
	entryID := uuid.NewString()
	transactionDate := domain.DateOnly(req.TransactionDate)

	entryType := req.EntryType
	if entryType == "" {
		entryType = domain.EntryStandard
	}

	entry := domain.JournalEntry{
		EntryID:         entryID,
		CompanyID:       companyID,
		ReferenceNumber: req.ReferenceNumber,
		TransactionDate: transactionDate,
		DocumentDate:    normalizeDatePtr(req.DocumentDate),
		FiscalPeriod:    fiscalPeriodOf(transactionDate),
		EntryType:       entryType,
		SourceModule:    req.SourceModule,
		Description:     req.Description,
		Status:          domain.Draft,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	lines, err := s.buildLines(ctx, companyID, entryID, functionalCurrency, req.Lines, creatorUserID, now)
	if err != nil {
		return nil, err
	}
	entry.Lines = lines

	maxNumber, err := s.entryRepo.FindMaxEntryNumber(ctx, companyID)
	if err != nil {
		s.LogError(ctx, err, "Failed to find max entry number", slog.String("company_id", companyID))
		return nil, fmt.Errorf("failed to allocate entry number: %w", err)
	}
	entry.EntryNumber = accounting.NextEntryNumber(maxNumber)

	if err := s.entryRepo.SaveEntry(ctx, entry, lines); err != nil {
		s.LogError(ctx, err, "Failed to save journal entry", slog.String("entry_id", entryID))
		return nil, fmt.Errorf("failed to create journal entry: %w", err)
	}

	s.LogInfo(ctx, "Journal entry created", slog.String("entry_id", entryID), slog.String("entry_number", entry.EntryNumber), slog.String("company_id", companyID))
	return &entry, nil
}

// buildLines validates the line requests and expands them to domain lines with
// functional-currency amounts.
func (s *journalEntryService) buildLines(ctx context.Context, companyID, entryID, functionalCurrency string, reqs []dto.CreateJournalLineRequest, userID string, now time.Time) ([]domain.JournalEntryLine, error) {
	if len(reqs) < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrEntryMinLines, len(reqs))
	}

	accountIDs := make([]string, 0, len(reqs))
	for _, r := range reqs {
		accountIDs = append(accountIDs, r.AccountID)
	}
	accounts, err := s.accountSvc.GetAccountByIDs(ctx, companyID, accountIDs, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load line accounts: %w", err)
	}

	distinct := make(map[string]bool, len(reqs))
	lines := make([]domain.JournalEntryLine, 0, len(reqs))
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     userID,
		LastUpdatedAt: now,
		LastUpdatedBy: userID,
	}

	for i, r := range reqs {
		account, ok := accounts[r.AccountID]
		if !ok {
			return nil, fmt.Errorf("%w: account %s", apperrors.ErrValidation, r.AccountID)
		}
		if !account.IsActive {
			return nil, fmt.Errorf("%w: account %s (%s)", ErrAccountInactive, account.AccountNumber, r.AccountID)
		}
		if !account.IsPostable {
			return nil, fmt.Errorf("%w: account %s (%s)", ErrAccountNotPostable, account.AccountNumber, r.AccountID)
		}

		currency := r.Currency
		if currency == "" {
			currency = functionalCurrency
		}
		if account.CurrencyRestriction != "" && account.CurrencyRestriction != currency {
			return nil, fmt.Errorf("%w: account %s only accepts %s, got %s",
				ErrCurrencyRestriction, account.AccountNumber, account.CurrencyRestriction, currency)
		}

		rate := decimal.NewFromInt(1)
		if r.ExchangeRate != nil {
			rate = *r.ExchangeRate
		}
		if currency == functionalCurrency && !rate.Equal(decimal.NewFromInt(1)) {
			return nil, fmt.Errorf("%w: same-currency line has exchange rate %s", apperrors.ErrValidation, rate.String())
		}

		line := domain.JournalEntryLine{
			LineID:       uuid.NewString(),
			EntryID:      entryID,
			LineNumber:   i + 1,
			AccountID:    r.AccountID,
			ExchangeRate: rate,
			Description:  r.Description,
			AuditFields:  audit,
		}

		switch {
		case r.DebitAmount != nil && r.CreditAmount == nil:
			line.Debit = &domain.MonetaryAmount{Amount: *r.DebitAmount, Currency: currency}
			line.FunctionalDebit = &domain.MonetaryAmount{Amount: r.DebitAmount.Mul(rate), Currency: functionalCurrency}
		case r.CreditAmount != nil && r.DebitAmount == nil:
			line.Credit = &domain.MonetaryAmount{Amount: *r.CreditAmount, Currency: currency}
			line.FunctionalCredit = &domain.MonetaryAmount{Amount: r.CreditAmount.Mul(rate), Currency: functionalCurrency}
		default:
			return nil, fmt.Errorf("%w: line %d", ErrLineAmountShape, i+1)
		}

		if err := accounting.ValidateLineShape(line); err != nil {
			return nil, fmt.Errorf("%w: line %d: %w", ErrLineAmountShape, i+1, err)
		}

		distinct[r.AccountID] = true
		lines = append(lines, line)
	}

	if len(distinct) < 2 {
		return nil, ErrEntryMinAccounts
	}
	return lines, nil
}

// GetEntryByID retrieves an entry with its lines, scoped to a company.
func (s *journalEntryService) GetEntryByID(ctx context.Context, companyID string, entryID string, userID string) (*domain.JournalEntry, error) {
	if err := s.AuthorizeUser(ctx, userID, companyID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	return s.loadEntry(ctx, companyID, entryID)
}

// loadEntry fetches the entry and its lines without an authorization check.
func (s *journalEntryService) loadEntry(ctx context.Context, companyID, entryID string) (*domain.JournalEntry, error) {
	entry, err := s.entryRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find journal entry", slog.String("entry_id", entryID))
		}
		return nil, err
	}
	if entry.CompanyID != companyID {
		return nil, apperrors.ErrNotFound
	}

	lines, err := s.entryRepo.FindLinesByEntryID(ctx, entryID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load entry lines", slog.String("entry_id", entryID))
		return nil, fmt.Errorf("failed to load lines for entry %s: %w", entryID, err)
	}
	entry.Lines = lines
	return entry, nil
}

// ListEntries retrieves a paginated entry list with optional status filters.
func (s *journalEntryService) ListEntries(ctx context.Context, companyID string, userID string, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error) {
	if err := s.AuthorizeUser(ctx, userID, companyID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	limit := params.Limit
	if limit <= 0 {
		limit = 50
	}
	var nextToken *string
	if params.NextToken != "" {
		nextToken = &params.NextToken
	}

	entries, next, err := s.entryRepo.ListEntriesByCompany(ctx, companyID, limit, nextToken, params.Statuses)
	if err != nil {
		s.LogError(ctx, err, "Failed to list journal entries", slog.String("company_id", companyID))
		return nil, fmt.Errorf("failed to list entries for company %s: %w", companyID, err)
	}

	token := ""
	if next != nil {
		token = *next
	}
	return dto.ToListEntriesResponse(entries, token), nil
}

// UpdateDraftEntry replaces a draft's header and lines. Non-draft entries
// reject the update.
func (s *journalEntryService) UpdateDraftEntry(ctx context.Context, companyID string, entryID string, req dto.UpdateJournalEntryRequest, userID string) (*domain.JournalEntry, error) {
	if err := s.AuthorizeUser(ctx, userID, companyID, domain.RoleMember); err != nil {
		return nil, err
	}

	entry, err := s.loadEntry(ctx, companyID, entryID)
	if err != nil {
		return nil, err
	}
	if !entry.IsEditable() {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrConflict, &domain.EntryStatusError{EntryID: entryID, Current: entry.Status, Required: domain.Draft})
	}

	functionalCurrency, err := s.companySvc.GetFunctionalCurrency(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve functional currency for company %s: %w", companyID, err)
	}

	now := time.Now()
	transactionDate := domain.DateOnly(req.TransactionDate)

	entry.TransactionDate = transactionDate
	entry.DocumentDate = normalizeDatePtr(req.DocumentDate)
	entry.FiscalPeriod = fiscalPeriodOf(transactionDate)
	entry.ReferenceNumber = req.ReferenceNumber
	entry.Description = req.Description
	entry.LastUpdatedAt = now
	entry.LastUpdatedBy = userID

	lines, err := s.buildLines(ctx, companyID, entryID, functionalCurrency, req.Lines, userID, now)
	if err != nil {
		return nil, err
	}
	entry.Lines = lines

	if err := s.entryRepo.UpdateDraftEntry(ctx, *entry, lines); err != nil {
		s.LogError(ctx, err, "Failed to update draft entry", slog.String("entry_id", entryID))
		return nil, fmt.Errorf("failed to update entry %s: %w", entryID, err)
	}

	s.LogInfo(ctx, "Draft entry updated", slog.String("entry_id", entryID))
	return entry, nil
}

// DeleteDraftEntry removes a draft entry. Only drafts may be deleted.
func (s *journalEntryService) DeleteDraftEntry(ctx context.Context, companyID string, entryID string, userID string) error {
	if err := s.AuthorizeUser(ctx, userID, companyID, domain.RoleMember); err != nil {
		return err
	}

	entry, err := s.loadEntry(ctx, companyID, entryID)
	if err != nil {
		return err
	}
	if !entry.IsEditable() {
		return fmt.Errorf("%w: %w", apperrors.ErrConflict, &domain.EntryStatusError{EntryID: entryID, Current: entry.Status, Required: domain.Draft})
	}

	if err := s.entryRepo.DeleteDraftEntry(ctx, entryID); err != nil {
		s.LogError(ctx, err, "Failed to delete draft entry", slog.String("entry_id", entryID))
		return fmt.Errorf("failed to delete entry %s: %w", entryID, err)
	}

	s.LogInfo(ctx, "Draft entry deleted", slog.String("entry_id", entryID))
	return nil
}

// SubmitEntry moves Draft -> PendingApproval.
func (s *journalEntryService) SubmitEntry(ctx context.Context, companyID string, entryID string, userID string) (*domain.JournalEntry, error) {
	return s.transition(ctx, companyID, entryID, userID, domain.Draft, domain.PendingApproval,
		func(e *domain.JournalEntry) error { return e.CanSubmit() })
}

// ApproveEntry moves PendingApproval -> Approved.
func (s *journalEntryService) ApproveEntry(ctx context.Context, companyID string, entryID string, userID string) (*domain.JournalEntry, error) {
	return s.transition(ctx, companyID, entryID, userID, domain.PendingApproval, domain.Approved,
		func(e *domain.JournalEntry) error { return e.CanApprove() })
}

// RejectEntry moves PendingApproval back to Draft.
func (s *journalEntryService) RejectEntry(ctx context.Context, companyID string, entryID string, userID string) (*domain.JournalEntry, error) {
	return s.transition(ctx, companyID, entryID, userID, domain.PendingApproval, domain.Draft,
		func(e *domain.JournalEntry) error { return e.CanReject() })
}

// transition performs one guarded status move with a conditional update.
func (s *journalEntryService) transition(ctx context.Context, companyID, entryID, userID string, from, to domain.EntryStatus, guard func(*domain.JournalEntry) error) (*domain.JournalEntry, error) {
	if err := s.AuthorizeUser(ctx, userID, companyID, domain.RoleMember); err != nil {
		return nil, err
	}

	entry, err := s.loadEntry(ctx, companyID, entryID)
	if err != nil {
		return nil, err
	}
	if err := guard(entry); err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrConflict, err)
	}

	now := time.Now()
	if err := s.entryRepo.UpdateEntryStatus(ctx, entryID, from, to, userID, now); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return nil, fmt.Errorf("%w: entry %s changed status concurrently", apperrors.ErrConflict, entryID)
		}
		s.LogError(ctx, err, "Failed to transition entry status", slog.String("entry_id", entryID), slog.String("to", string(to)))
		return nil, fmt.Errorf("failed to transition entry %s to %s: %w", entryID, to, err)
	}

	entry.Status = to
	entry.LastUpdatedAt = now
	entry.LastUpdatedBy = userID
	s.LogInfo(ctx, "Journal entry status changed", slog.String("entry_id", entryID), slog.String("from", string(from)), slog.String("to", string(to)))
	return entry, nil
}

// PostEntry posts an approved entry. This is the single gate at which the
// double-entry balance invariant is enforced; an unbalanced entry never
// reaches the ledger.
func (s *journalEntryService) PostEntry(ctx context.Context, companyID string, entryID string, postingDate *time.Time, userID string) (*domain.JournalEntry, error) {
	if err := s.AuthorizeUser(ctx, userID, companyID, domain.RoleMember); err != nil {
		return nil, err
	}

	entry, err := s.loadEntry(ctx, companyID, entryID)
	if err != nil {
		return nil, err
	}
	if err := entry.CanPost(); err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrConflict, err)
	}
	if err := accounting.ValidateEntryBalance(entryID, entry.Lines); err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, err)
	}

	now := time.Now()
	date := domain.DateOnly(now)
	if postingDate != nil {
		date = domain.DateOnly(*postingDate)
	}

	if err := s.entryRepo.MarkEntryPosted(ctx, entryID, date, userID, now); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return nil, fmt.Errorf("%w: entry %s changed status concurrently", apperrors.ErrConflict, entryID)
		}
		s.LogError(ctx, err, "Failed to post journal entry", slog.String("entry_id", entryID))
		return nil, fmt.Errorf("failed to post entry %s: %w", entryID, err)
	}

	entry.Status = domain.Posted
	entry.PostingDate = &date
	entry.PostedAt = &now
	entry.PostedBy = userID
	entry.LastUpdatedAt = now
	entry.LastUpdatedBy = userID

	s.LogInfo(ctx, "Journal entry posted", slog.String("entry_id", entryID), slog.String("posting_date", date.Format("2006-01-02")))
	return entry, nil
}

// ReverseEntry creates the mirror entry for a posted entry, posts it, and
// marks the original Reversed, all atomically. The reversal swaps every
// debit and credit; reversing a reversal is rejected because the reversal
// entry itself carries a reversed-entry link.
func (s *journalEntryService) ReverseEntry(ctx context.Context, companyID string, entryID string, reversalDate *time.Time, userID string) (*domain.JournalEntry, error) {
	if err := s.AuthorizeUser(ctx, userID, companyID, domain.RoleMember); err != nil {
		return nil, err
	}

	original, err := s.loadEntry(ctx, companyID, entryID)
	if err != nil {
		return nil, err
	}
	if err := original.CanReverse(); err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrConflict, err)
	}

	now := time.Now()
	date := domain.DateOnly(now)
	if reversalDate != nil {
		date = domain.DateOnly(*reversalDate)
	}

	reversalID := uuid.NewString()
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     userID,
		LastUpdatedAt: now,
		LastUpdatedBy: userID,
	}

	maxNumber, err := s.entryRepo.FindMaxEntryNumber(ctx, companyID)
	if err != nil {
		s.LogError(ctx, err, "Failed to find max entry number", slog.String("company_id", companyID))
		return nil, fmt.Errorf("failed to allocate entry number: %w", err)
	}

	originalID := original.EntryID
	reversal := domain.JournalEntry{
		EntryID:         reversalID,
		CompanyID:       companyID,
		EntryNumber:     accounting.NextEntryNumber(maxNumber),
		ReferenceNumber: original.ReferenceNumber,
		TransactionDate: date,
		PostingDate:     &date,
		FiscalPeriod:    fiscalPeriodOf(date),
		EntryType:       domain.EntryReversing,
		SourceModule:    original.SourceModule,
		Description:     fmt.Sprintf("Reversal of %s: %s", original.EntryNumber, original.Description),
		Status:          domain.Posted,
		IsReversing:     true,
		ReversedEntryID: &originalID,
		PostedAt:        &now,
		PostedBy:        userID,
		AuditFields:     audit,
	}

	lines := make([]domain.JournalEntryLine, len(original.Lines))
	for i, l := range original.Lines {
		lines[i] = domain.JournalEntryLine{
			LineID:           uuid.NewString(),
			EntryID:          reversalID,
			LineNumber:       l.LineNumber,
			AccountID:        l.AccountID,
			Debit:            cloneAmount(l.Credit),
			Credit:           cloneAmount(l.Debit),
			FunctionalDebit:  cloneAmount(l.FunctionalCredit),
			FunctionalCredit: cloneAmount(l.FunctionalDebit),
			ExchangeRate:     l.ExchangeRate,
			Description:      l.Description,
			AuditFields:      audit,
		}
	}
	reversal.Lines = lines

	if err := s.entryRepo.SaveReversal(ctx, originalID, reversal, lines, userID, now); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return nil, fmt.Errorf("%w: entry %s was reversed concurrently", apperrors.ErrConflict, originalID)
		}
		s.LogError(ctx, err, "Failed to save reversal", slog.String("entry_id", originalID), slog.String("reversal_id", reversalID))
		return nil, fmt.Errorf("failed to reverse entry %s: %w", originalID, err)
	}

	s.LogInfo(ctx, "Journal entry reversed", slog.String("entry_id", originalID), slog.String("reversal_id", reversalID))
	return &reversal, nil
}

// cloneAmount copies a monetary amount so the reversal's lines do not alias
// the original entry's amounts.
func cloneAmount(a *domain.MonetaryAmount) *domain.MonetaryAmount {
	if a == nil {
		return nil
	}
	c := *a
	return &c
}

// fiscalPeriodOf derives the fiscal period from a date on a calendar-year basis.
func fiscalPeriodOf(d time.Time) domain.FiscalPeriod {
	return domain.FiscalPeriod{Year: d.Year(), Period: int(d.Month())}
}

// normalizeDatePtr truncates an optional date to UTC midnight.
func normalizeDatePtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	d := domain.DateOnly(*t)
	return &d
}
