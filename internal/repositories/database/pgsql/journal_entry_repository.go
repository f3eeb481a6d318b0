package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/corefin/corefin/internal/apperrors"
	"github.com/corefin/corefin/internal/core/domain"
	portsrepo "github.com/corefin/corefin/internal/core/ports/repositories"
	"github.com/corefin/corefin/internal/models"
	"github.com/corefin/corefin/internal/utils/mapping"
	"github.com/corefin/corefin/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// entryColumns is the canonical column list used by every entry header SELECT.
const entryColumns = `
	entry_id, company_id, entry_number, reference_number, transaction_date,
	posting_date, document_date, fiscal_year, fiscal_period, entry_type,
	source_module, description, status, is_reversing, reversed_entry_id,
	reversing_entry_id, posted_at, posted_by,
	created_at, created_by, last_updated_at, last_updated_by`

// lineColumns is the canonical column list used by every line SELECT.
const lineColumns = `
	line_id, entry_id, line_number, account_id, debit_amount, debit_currency,
	credit_amount, credit_currency, functional_debit, functional_credit,
	functional_currency, exchange_rate, description,
	created_at, created_by, last_updated_at, last_updated_by`

const insertLineQuery = `
	INSERT INTO journal_entry_lines (` + lineColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17);
`

type PgxJournalEntryRepository struct {
	BaseRepository
}

// newPgxJournalEntryRepository creates a new repository for journal entry data.
func newPgxJournalEntryRepository(pool *pgxpool.Pool) portsrepo.JournalEntryRepositoryWithTx {
	return &PgxJournalEntryRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxJournalEntryRepository implements portsrepo.JournalEntryRepositoryWithTx
var _ portsrepo.JournalEntryRepositoryWithTx = (*PgxJournalEntryRepository)(nil)

// scanEntry scans a single entry header row, normalizing NULL optional
// columns to empty strings.
func scanEntry(row pgx.Row) (models.JournalEntry, error) {
	var m models.JournalEntry
	var referenceNumber, sourceModule, postedBy sql.NullString

	err := row.Scan(
		&m.EntryID,
		&m.CompanyID,
		&m.EntryNumber,
		&referenceNumber,
		&m.TransactionDate,
		&m.PostingDate,
		&m.DocumentDate,
		&m.FiscalYear,
		&m.FiscalPeriod,
		&m.EntryType,
		&sourceModule,
		&m.Description,
		&m.Status,
		&m.IsReversing,
		&m.ReversedEntryID,
		&m.ReversingEntryID,
		&m.PostedAt,
		&postedBy,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return models.JournalEntry{}, err
	}

	m.ReferenceNumber = referenceNumber.String
	m.SourceModule = sourceModule.String
	m.PostedBy = postedBy.String
	return m, nil
}

// scanLine scans a single line row.
func scanLine(row pgx.Row) (models.JournalEntryLine, error) {
	var m models.JournalEntryLine
	var debitCurrency, creditCurrency, description sql.NullString

	err := row.Scan(
		&m.LineID,
		&m.EntryID,
		&m.LineNumber,
		&m.AccountID,
		&m.DebitAmount,
		&debitCurrency,
		&m.CreditAmount,
		&creditCurrency,
		&m.FunctionalDebit,
		&m.FunctionalCredit,
		&m.FunctionalCurrency,
		&m.ExchangeRate,
		&description,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return models.JournalEntryLine{}, err
	}

	m.DebitCurrency = debitCurrency.String
	m.CreditCurrency = creditCurrency.String
	m.Description = description.String
	return m, nil
}

// queueInsertEntry adds the header INSERT for an entry to a batch.
func queueInsertEntry(batch *pgx.Batch, m models.JournalEntry) {
	query := `
		INSERT INTO journal_entries (` + entryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22);
	`
	batch.Queue(query,
		m.EntryID,
		m.CompanyID,
		m.EntryNumber,
		nullString(m.ReferenceNumber),
		m.TransactionDate,
		m.PostingDate,
		m.DocumentDate,
		m.FiscalYear,
		m.FiscalPeriod,
		m.EntryType,
		nullString(m.SourceModule),
		m.Description,
		m.Status,
		m.IsReversing,
		m.ReversedEntryID,
		m.ReversingEntryID,
		m.PostedAt,
		nullString(m.PostedBy),
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
}

// queueInsertLines adds the line INSERTs for an entry to a batch.
func queueInsertLines(batch *pgx.Batch, lines []domain.JournalEntryLine) {
	for _, line := range lines {
		m := mapping.ToModelJournalEntryLine(line)
		batch.Queue(insertLineQuery,
			m.LineID,
			m.EntryID,
			m.LineNumber,
			m.AccountID,
			m.DebitAmount,
			nullString(m.DebitCurrency),
			m.CreditAmount,
			nullString(m.CreditCurrency),
			m.FunctionalDebit,
			m.FunctionalCredit,
			m.FunctionalCurrency,
			m.ExchangeRate,
			nullString(m.Description),
			m.CreatedAt,
			m.CreatedBy,
			m.LastUpdatedAt,
			m.LastUpdatedBy,
		)
	}
}

// sendBatch executes a batch within a transaction and surfaces the first error.
func sendBatch(ctx context.Context, tx pgx.Tx, batch *pgx.Batch) error {
	results := tx.SendBatch(ctx, batch)
	defer results.Close()

	for i := 0; i < batch.Len(); i++ {
		if _, err := results.Exec(); err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique violation
				return fmt.Errorf("%w: %s", apperrors.ErrDuplicate, pgErr.Detail)
			}
			return err
		}
	}
	return nil
}

func (r *PgxJournalEntryRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalEntryLine) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	batch := &pgx.Batch{}
	queueInsertEntry(batch, mapping.ToModelJournalEntry(entry))
	queueInsertLines(batch, lines)

	if err := sendBatch(ctx, tx, batch); err != nil {
		return fmt.Errorf("failed to save entry %s: %w", entry.EntryID, err)
	}

	return r.Commit(ctx, tx)
}

func (r *PgxJournalEntryRepository) UpdateDraftEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalEntryLine) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelJournalEntry(entry)
	headerQuery := `
		UPDATE journal_entries
		SET reference_number = $2,
		    transaction_date = $3,
		    document_date = $4,
		    fiscal_year = $5,
		    fiscal_period = $6,
		    entry_type = $7,
		    description = $8,
		    last_updated_at = $9,
		    last_updated_by = $10
		WHERE entry_id = $1 AND status = $11;
	`
	cmdTag, err := tx.Exec(ctx, headerQuery,
		m.EntryID,
		nullString(m.ReferenceNumber),
		m.TransactionDate,
		m.DocumentDate,
		m.FiscalYear,
		m.FiscalPeriod,
		m.EntryType,
		m.Description,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		domain.Draft,
	)
	if err != nil {
		return fmt.Errorf("failed to update draft entry %s: %w", m.EntryID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		// The entry moved out of Draft (or never existed) since it was read
		return fmt.Errorf("%w: entry %s is not an editable draft", apperrors.ErrConflict, m.EntryID)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM journal_entry_lines WHERE entry_id = $1;`, m.EntryID); err != nil {
		return fmt.Errorf("failed to delete lines of entry %s: %w", m.EntryID, err)
	}

	batch := &pgx.Batch{}
	queueInsertLines(batch, lines)
	if err := sendBatch(ctx, tx, batch); err != nil {
		return fmt.Errorf("failed to insert lines of entry %s: %w", m.EntryID, err)
	}

	return r.Commit(ctx, tx)
}

func (r *PgxJournalEntryRepository) DeleteDraftEntry(ctx context.Context, entryID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if _, err := tx.Exec(ctx, `DELETE FROM journal_entry_lines WHERE entry_id = $1;`, entryID); err != nil {
		return fmt.Errorf("failed to delete lines of entry %s: %w", entryID, err)
	}

	cmdTag, err := tx.Exec(ctx, `DELETE FROM journal_entries WHERE entry_id = $1 AND status = $2;`, entryID, domain.Draft)
	if err != nil {
		return fmt.Errorf("failed to delete draft entry %s: %w", entryID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: entry %s is not a deletable draft", apperrors.ErrConflict, entryID)
	}

	return r.Commit(ctx, tx)
}

func (r *PgxJournalEntryRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	query := `
		SELECT ` + entryColumns + `
		FROM journal_entries
		WHERE entry_id = $1;
	`
	m, err := scanEntry(r.Pool.QueryRow(ctx, query, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find entry by ID %s: %w", entryID, err)
	}

	domainEntry := mapping.ToDomainJournalEntry(m)
	return &domainEntry, nil
}

func (r *PgxJournalEntryRepository) FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalEntryLine, error) {
	query := `
		SELECT ` + lineColumns + `
		FROM journal_entry_lines
		WHERE entry_id = $1
		ORDER BY line_number ASC;
	`
	rows, err := r.Pool.Query(ctx, query, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to query lines for entry %s: %w", entryID, err)
	}
	defer rows.Close()

	modelLines := make([]models.JournalEntryLine, 0)
	for rows.Next() {
		m, scanErr := scanLine(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan line row for entry %s: %w", entryID, scanErr)
		}
		modelLines = append(modelLines, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating line rows for entry %s: %w", entryID, err)
	}

	return mapping.ToDomainJournalEntryLineSlice(modelLines), nil
}

func (r *PgxJournalEntryRepository) ListEntriesByCompany(ctx context.Context, companyID string, limit int, nextToken *string, statuses []domain.EntryStatus) ([]domain.JournalEntry, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	// Fetch one extra row to determine whether a next page exists.
	fetchLimit := limit + 1

	baseQuery := `
		SELECT ` + entryColumns + `
		FROM journal_entries
	`
	filterClause := `WHERE company_id = $1`
	args := []interface{}{companyID}

	if len(statuses) > 0 {
		args = append(args, statuses)
		filterClause += ` AND status = ANY($` + strconv.Itoa(len(args)) + `)`
	}

	// Ordering must be stable for cursor pagination; created_at breaks
	// transaction_date ties.
	orderByClause := `ORDER BY transaction_date DESC, created_at DESC`

	if nextToken != nil && *nextToken != "" {
		lastDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}

		args = append(args, lastDate, lastCreatedAt)
		filterClause += ` AND (transaction_date, created_at) < ($` + strconv.Itoa(len(args)-1) + `, $` + strconv.Itoa(len(args)) + `)`
	}

	args = append(args, fetchLimit)
	query := baseQuery + " " + filterClause + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)) + ";"

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query entries for company %s: %w", companyID, err)
	}
	defer rows.Close()

	modelEntries := make([]models.JournalEntry, 0, fetchLimit)
	for rows.Next() {
		m, scanErr := scanEntry(rows)
		if scanErr != nil {
			return nil, nil, fmt.Errorf("failed to scan entry row for company %s: %w", companyID, scanErr)
		}
		modelEntries = append(modelEntries, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating entry rows for company %s: %w", companyID, err)
	}

	var nextTokenVal *string
	results := modelEntries
	if len(modelEntries) > limit {
		// Token points at the last item included in this page; the next
		// query resumes after it.
		lastEntry := modelEntries[limit-1]
		token := pagination.EncodeToken(lastEntry.TransactionDate, lastEntry.CreatedAt)
		nextTokenVal = &token
		results = modelEntries[:limit]
	}

	return mapping.ToDomainJournalEntrySlice(results), nextTokenVal, nil
}

func (r *PgxJournalEntryRepository) FindPostedEntriesWithLines(ctx context.Context, companyID string) ([]domain.LedgerEntry, error) {
	entriesQuery := `
		SELECT ` + entryColumns + `
		FROM journal_entries
		WHERE company_id = $1 AND status = $2
		ORDER BY posting_date ASC, created_at ASC;
	`
	rows, err := r.Pool.Query(ctx, entriesQuery, companyID, domain.Posted)
	if err != nil {
		return nil, fmt.Errorf("failed to query posted entries for company %s: %w", companyID, err)
	}

	modelEntries := make([]models.JournalEntry, 0)
	for rows.Next() {
		m, scanErr := scanEntry(rows)
		if scanErr != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan posted entry row for company %s: %w", companyID, scanErr)
		}
		modelEntries = append(modelEntries, m)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("error iterating posted entry rows for company %s: %w", companyID, err)
	}
	rows.Close()

	if len(modelEntries) == 0 {
		return []domain.LedgerEntry{}, nil
	}

	linesQuery := `
		SELECT ` + lineColumns + `
		FROM journal_entry_lines l
		WHERE l.entry_id IN (
			SELECT entry_id FROM journal_entries WHERE company_id = $1 AND status = $2
		)
		ORDER BY l.entry_id, l.line_number ASC;
	`
	lineRows, err := r.Pool.Query(ctx, linesQuery, companyID, domain.Posted)
	if err != nil {
		return nil, fmt.Errorf("failed to query posted lines for company %s: %w", companyID, err)
	}
	defer lineRows.Close()

	linesByEntry := make(map[string][]domain.JournalEntryLine, len(modelEntries))
	for lineRows.Next() {
		m, scanErr := scanLine(lineRows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan posted line row for company %s: %w", companyID, scanErr)
		}
		linesByEntry[m.EntryID] = append(linesByEntry[m.EntryID], mapping.ToDomainJournalEntryLine(m))
	}
	if err := lineRows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating posted line rows for company %s: %w", companyID, err)
	}

	ledger := make([]domain.LedgerEntry, len(modelEntries))
	for i, m := range modelEntries {
		entry := mapping.ToDomainJournalEntry(m)
		ledger[i] = domain.LedgerEntry{
			Entry: entry,
			Lines: linesByEntry[entry.EntryID],
		}
	}

	return ledger, nil
}

func (r *PgxJournalEntryRepository) FindMaxEntryNumber(ctx context.Context, companyID string) (string, error) {
	query := `
		SELECT MAX(entry_number)
		FROM journal_entries
		WHERE company_id = $1;
	`
	var maxNumber sql.NullString
	if err := r.Pool.QueryRow(ctx, query, companyID).Scan(&maxNumber); err != nil {
		return "", fmt.Errorf("failed to find max entry number for company %s: %w", companyID, err)
	}
	return maxNumber.String, nil
}

func (r *PgxJournalEntryRepository) UpdateEntryStatus(ctx context.Context, entryID string, from, to domain.EntryStatus, userID string, now time.Time) error {
	query := `
		UPDATE journal_entries
		SET status = $3,
		    last_updated_at = $4,
		    last_updated_by = $5
		WHERE entry_id = $1 AND status = $2;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, entryID, from, to, now, userID)
	if err != nil {
		return fmt.Errorf("failed to update status of entry %s: %w", entryID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: entry %s is no longer in status %s", apperrors.ErrConflict, entryID, from)
	}
	return nil
}

func (r *PgxJournalEntryRepository) MarkEntryPosted(ctx context.Context, entryID string, postingDate time.Time, postedBy string, now time.Time) error {
	query := `
		UPDATE journal_entries
		SET status = $3,
		    posting_date = $4,
		    posted_at = $5,
		    posted_by = $6,
		    last_updated_at = $5,
		    last_updated_by = $6
		WHERE entry_id = $1 AND status = $2;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, entryID, domain.Approved, domain.Posted, postingDate, now, postedBy)
	if err != nil {
		return fmt.Errorf("failed to post entry %s: %w", entryID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: entry %s is no longer approved", apperrors.ErrConflict, entryID)
	}
	return nil
}

func (r *PgxJournalEntryRepository) SaveReversal(ctx context.Context, originalEntryID string, reversal domain.JournalEntry, lines []domain.JournalEntryLine, userID string, now time.Time) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	// Mark the original first; a concurrent reversal loses here before the
	// reversing entry is ever written.
	markQuery := `
		UPDATE journal_entries
		SET status = $3,
		    reversing_entry_id = $4,
		    last_updated_at = $5,
		    last_updated_by = $6
		WHERE entry_id = $1 AND status = $2 AND reversing_entry_id IS NULL;
	`
	cmdTag, err := tx.Exec(ctx, markQuery, originalEntryID, domain.Posted, domain.Reversed, reversal.EntryID, now, userID)
	if err != nil {
		return fmt.Errorf("failed to mark entry %s reversed: %w", originalEntryID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: entry %s is not a reversible posted entry", apperrors.ErrConflict, originalEntryID)
	}

	batch := &pgx.Batch{}
	queueInsertEntry(batch, mapping.ToModelJournalEntry(reversal))
	queueInsertLines(batch, lines)
	if err := sendBatch(ctx, tx, batch); err != nil {
		return fmt.Errorf("failed to save reversing entry %s: %w", reversal.EntryID, err)
	}

	return r.Commit(ctx, tx)
}
