package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/praxio/fundledger/internal/apperrors"
	"github.com/praxio/fundledger/internal/core/domain"
	portsrepo "github.com/praxio/fundledger/internal/core/ports/repositories"
	"github.com/praxio/fundledger/internal/models"
	"github.com/praxio/fundledger/internal/utils/mapping"
	"github.com/praxio/fundledger/internal/utils/pagination"
)

type PgxJournalRepository struct {
	BaseRepository
}

// newPgxJournalRepository creates a new repository for journal entry data.
func newPgxJournalRepository(pool *pgxpool.Pool) portsrepo.JournalRepositoryFacade {
	return &PgxJournalRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxJournalRepository implements portsrepo.JournalRepositoryFacade
var _ portsrepo.JournalRepositoryFacade = (*PgxJournalRepository)(nil)

const entryColumns = `
	entry_id, entry_number, entry_date, description, reference, source_type, source_id,
	status, total_debit_amount, total_credit_amount, fund_id,
	posted_by, posted_at, reversal_entry_id, reversed_by, reversed_at, reversal_reason,
	created_at, created_by, last_updated_at, last_updated_by
`

// nextEntryNumber allocates the next entry number for a date within the
// given transaction. The per-date counter row is upserted atomically, so
// concurrent inserts for one date serialize on the row lock and numbers
// never collide or repeat.
func (r *PgxJournalRepository) nextEntryNumber(ctx context.Context, tx pgx.Tx, entryDate time.Time) (string, error) {
	query := `
		INSERT INTO entry_number_counters (entry_date, counter)
		VALUES ($1, 1)
		ON CONFLICT (entry_date)
		DO UPDATE SET counter = entry_number_counters.counter + 1
		RETURNING counter;
	`
	var counter int
	if err := tx.QueryRow(ctx, query, entryDate.UTC().Truncate(24*time.Hour)).Scan(&counter); err != nil {
		return "", fmt.Errorf("failed to advance entry number counter: %w", err)
	}
	return fmt.Sprintf("JE-%s-%04d", entryDate.UTC().Format("20060102"), counter), nil
}

// insertEntry writes a journal_entries row within the transaction.
func (r *PgxJournalRepository) insertEntry(ctx context.Context, tx pgx.Tx, modelEntry models.JournalEntry) error {
	query := `
		INSERT INTO journal_entries (` + entryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21);
	`
	_, err := tx.Exec(ctx, query,
		modelEntry.EntryID,
		modelEntry.EntryNumber,
		modelEntry.EntryDate,
		modelEntry.Description,
		nullableString(modelEntry.Reference),
		modelEntry.SourceType,
		nullableString(modelEntry.SourceID),
		modelEntry.Status,
		modelEntry.TotalDebit,
		modelEntry.TotalCredit,
		nullableString(modelEntry.FundID),
		nullableString(modelEntry.PostedBy),
		modelEntry.PostedAt,
		nullableString(modelEntry.ReversalEntryID),
		nullableString(modelEntry.ReversedBy),
		modelEntry.ReversedAt,
		nullableString(modelEntry.ReversalReason),
		modelEntry.CreatedAt,
		modelEntry.CreatedBy,
		modelEntry.LastUpdatedAt,
		modelEntry.LastUpdatedBy,
	)
	return err
}

// insertLines batches the journal_entry_lines inserts within the
// transaction.
func (r *PgxJournalRepository) insertLines(ctx context.Context, tx pgx.Tx, lines []domain.JournalEntryLineItem) error {
	batch := &pgx.Batch{}
	lineQuery := `
		INSERT INTO journal_entry_lines (
			line_item_id, entry_id, line_number, gl_account_id, debit_amount, credit_amount,
			description, reference, fund_id, investor_id, investment_id,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	for _, line := range lines {
		modelLine := mapping.ToModelLineItem(line)
		batch.Queue(lineQuery,
			modelLine.LineItemID,
			modelLine.EntryID,
			modelLine.LineNumber,
			modelLine.GLAccountID,
			modelLine.DebitAmount,
			modelLine.CreditAmount,
			nullableString(modelLine.Description),
			nullableString(modelLine.Reference),
			nullableString(modelLine.FundID),
			nullableString(modelLine.InvestorID),
			nullableString(modelLine.InvestmentID),
			modelLine.CreatedAt,
			modelLine.CreatedBy,
			modelLine.LastUpdatedAt,
			modelLine.LastUpdatedBy,
		)
	}
	br := tx.SendBatch(ctx, batch)
	return br.Close()
}

// SaveEntry persists a new entry with its line items and assigns the next
// entry number for the entry date, all in one transaction.
func (r *PgxJournalRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalEntryLineItem) (domain.JournalEntry, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return domain.JournalEntry{}, err
	}
	defer r.Rollback(ctx, tx)

	entryNumber, err := r.nextEntryNumber(ctx, tx, entry.EntryDate)
	if err != nil {
		return domain.JournalEntry{}, apperrors.NewAppError(500, "failed to assign entry number", err)
	}
	entry.EntryNumber = entryNumber

	modelEntry := mapping.ToModelJournalEntry(entry)
	if err := r.insertEntry(ctx, tx, modelEntry); err != nil {
		if isUniqueViolation(err) {
			return domain.JournalEntry{}, apperrors.ErrDuplicate
		}
		return domain.JournalEntry{}, apperrors.NewAppError(500, "failed to insert entry "+entry.EntryID, err)
	}

	if err := r.insertLines(ctx, tx, lines); err != nil {
		return domain.JournalEntry{}, apperrors.NewAppError(500, "failed to insert line items for entry "+entry.EntryID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return domain.JournalEntry{}, err
	}
	return entry, nil
}

// MarkEntryPosted transitions a draft entry to posted. The status guard
// in the WHERE clause makes concurrent posts race safely; the loser sees
// zero rows.
func (r *PgxJournalRepository) MarkEntryPosted(ctx context.Context, entryID string, postedBy string, postedAt time.Time) error {
	query := `
		UPDATE journal_entries
		SET status = 'POSTED', posted_by = $2, posted_at = $3, last_updated_at = $3, last_updated_by = $2
		WHERE entry_id = $1 AND status = 'DRAFT';
	`
	tag, err := r.Pool.Exec(ctx, query, entryID, postedBy, postedAt)
	if err != nil {
		return apperrors.NewAppError(500, "failed to mark entry posted "+entryID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrConflict
	}
	return nil
}

// ReverseEntry persists the reversal entry with its line items, assigns
// its entry number, and links the original, all in one transaction.
func (r *PgxJournalRepository) ReverseEntry(ctx context.Context, original domain.JournalEntry, reversal domain.JournalEntry, lines []domain.JournalEntryLineItem) (domain.JournalEntry, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return domain.JournalEntry{}, err
	}
	defer r.Rollback(ctx, tx)

	entryNumber, err := r.nextEntryNumber(ctx, tx, reversal.EntryDate)
	if err != nil {
		return domain.JournalEntry{}, apperrors.NewAppError(500, "failed to assign reversal entry number", err)
	}
	reversal.EntryNumber = entryNumber

	modelReversal := mapping.ToModelJournalEntry(reversal)
	if err := r.insertEntry(ctx, tx, modelReversal); err != nil {
		return domain.JournalEntry{}, apperrors.NewAppError(500, "failed to insert reversal entry "+reversal.EntryID, err)
	}

	if err := r.insertLines(ctx, tx, lines); err != nil {
		return domain.JournalEntry{}, apperrors.NewAppError(500, "failed to insert reversal line items for entry "+reversal.EntryID, err)
	}

	// Link the original. The status guard keeps double reversals out even
	// under concurrent requests.
	linkQuery := `
		UPDATE journal_entries
		SET status = 'REVERSED', reversal_entry_id = $2, reversed_by = $3, reversed_at = $4,
		    reversal_reason = $5, last_updated_at = $4, last_updated_by = $3
		WHERE entry_id = $1 AND status = 'POSTED';
	`
	tag, err := tx.Exec(ctx, linkQuery,
		original.EntryID,
		reversal.EntryID,
		original.ReversedBy,
		original.ReversedAt,
		original.ReversalReason,
	)
	if err != nil {
		return domain.JournalEntry{}, apperrors.NewAppError(500, "failed to link reversal for entry "+original.EntryID, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.JournalEntry{}, apperrors.ErrConflict
	}

	if err := r.Commit(ctx, tx); err != nil {
		return domain.JournalEntry{}, err
	}
	return reversal, nil
}

// FindEntryByID retrieves an entry without its line items.
func (r *PgxJournalRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE entry_id = $1;`
	row := r.Pool.QueryRow(ctx, query, entryID)
	modelEntry, err := scanEntry(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find entry by ID "+entryID, err)
	}
	domainEntry := mapping.ToDomainJournalEntry(modelEntry)
	return &domainEntry, nil
}

// FindLineItemsByEntryID retrieves the line items of an entry joined with
// account metadata for display.
func (r *PgxJournalRepository) FindLineItemsByEntryID(ctx context.Context, entryID string) ([]domain.JournalEntryLineItem, error) {
	query := `
		SELECT l.line_item_id, l.entry_id, l.line_number, l.gl_account_id, l.debit_amount, l.credit_amount,
		       l.description, l.reference, l.fund_id, l.investor_id, l.investment_id,
		       l.created_at, l.created_by, l.last_updated_at, l.last_updated_by,
		       a.account_number, a.name
		FROM journal_entry_lines l
		JOIN gl_accounts a ON l.gl_account_id = a.account_id
		WHERE l.entry_id = $1
		ORDER BY l.line_number;
	`
	rows, err := r.Pool.Query(ctx, query, entryID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query line items for entry "+entryID, err)
	}
	defer rows.Close()

	lines := []domain.JournalEntryLineItem{}
	for rows.Next() {
		var m models.JournalEntryLineItem
		var description, reference, fundID, investorID, investmentID sql.NullString
		var accountNumber, accountName string
		err := rows.Scan(
			&m.LineItemID,
			&m.EntryID,
			&m.LineNumber,
			&m.GLAccountID,
			&m.DebitAmount,
			&m.CreditAmount,
			&description,
			&reference,
			&fundID,
			&investorID,
			&investmentID,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
			&accountNumber,
			&accountName,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan line item row for entry "+entryID, err)
		}
		m.Description = fromNullString(description)
		m.Reference = fromNullString(reference)
		m.FundID = fromNullString(fundID)
		m.InvestorID = fromNullString(investorID)
		m.InvestmentID = fromNullString(investmentID)

		line := mapping.ToDomainLineItem(m)
		line.AccountNumber = accountNumber
		line.AccountName = accountName
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating line item rows for entry "+entryID, err)
	}
	return lines, nil
}

// FindEntriesBySource retrieves entries produced from a given source
// document.
func (r *PgxJournalRepository) FindEntriesBySource(ctx context.Context, sourceSystem string, sourceID string) ([]domain.JournalEntry, error) {
	// The source system lives on the mapping, not the entry; the entry
	// records the originating document ID. Source IDs are expected to be
	// unique per system, so matching on source_id alone is sufficient.
	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE source_id = $1 ORDER BY created_at;`
	rows, err := r.Pool.Query(ctx, query, sourceID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query entries for source "+sourceSystem+"/"+sourceID, err)
	}
	defer rows.Close()

	entries := []domain.JournalEntry{}
	for rows.Next() {
		modelEntry, err := scanEntry(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan entry row", err)
		}
		entries = append(entries, mapping.ToDomainJournalEntry(modelEntry))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating entry rows", err)
	}
	return entries, nil
}

// ListEntries retrieves entries newest first using token-based pagination.
func (r *PgxJournalRepository) ListEntries(ctx context.Context, fundID *string, status *domain.EntryStatus, limit int, nextToken *string) ([]domain.JournalEntry, string, error) {
	if limit <= 0 {
		limit = 20
	}
	// Fetch one extra row to know whether another page exists.
	fetchLimit := limit + 1

	baseQuery := `
		SELECT ` + entryColumns + `
		FROM journal_entries
		WHERE ($1::text IS NULL OR fund_id = $1)
		  AND ($2::text IS NULL OR status = $2)
	`
	orderByClause := `ORDER BY entry_date DESC, created_at DESC`

	var statusArg *string
	if status != nil {
		s := string(*status)
		statusArg = &s
	}
	args := []interface{}{fundID, statusArg}

	query := baseQuery
	if nextToken != nil && *nextToken != "" {
		lastEntryDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, "", apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		query += ` AND (entry_date, created_at) < ($3, $4)`
		args = append(args, lastEntryDate, lastCreatedAt)
	}
	query += " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
	args = append(args, fetchLimit)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, "", apperrors.NewAppError(500, "failed to query entries", err)
	}
	defer rows.Close()

	entries := []domain.JournalEntry{}
	for rows.Next() {
		modelEntry, err := scanEntry(rows)
		if err != nil {
			return nil, "", apperrors.NewAppError(500, "failed to scan entry row", err)
		}
		entries = append(entries, mapping.ToDomainJournalEntry(modelEntry))
	}
	if err := rows.Err(); err != nil {
		return nil, "", apperrors.NewAppError(500, "error iterating entry rows", err)
	}

	nextPageToken := ""
	if len(entries) > limit {
		entries = entries[:limit]
		last := entries[len(entries)-1]
		nextPageToken = pagination.EncodeToken(last.EntryDate, last.CreatedAt)
	}
	return entries, nextPageToken, nil
}

// scanEntry scans one journal_entries row in entryColumns order.
func scanEntry(row pgx.Row) (models.JournalEntry, error) {
	var m models.JournalEntry
	var reference, sourceID, fundID, postedBy, reversalEntryID, reversedBy, reversalReason sql.NullString
	err := row.Scan(
		&m.EntryID,
		&m.EntryNumber,
		&m.EntryDate,
		&m.Description,
		&reference,
		&m.SourceType,
		&sourceID,
		&m.Status,
		&m.TotalDebit,
		&m.TotalCredit,
		&fundID,
		&postedBy,
		&m.PostedAt,
		&reversalEntryID,
		&reversedBy,
		&m.ReversedAt,
		&reversalReason,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return models.JournalEntry{}, err
	}
	m.Reference = fromNullString(reference)
	m.SourceID = fromNullString(sourceID)
	m.FundID = fromNullString(fundID)
	m.PostedBy = fromNullString(postedBy)
	m.ReversalEntryID = fromNullString(reversalEntryID)
	m.ReversedBy = fromNullString(reversedBy)
	m.ReversalReason = fromNullString(reversalReason)
	return m, nil
}
