package pgsql

import (
	"context"
	"errors"
	"hash/fnv"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/omcerp/fuel_accounting_app/internal/apperrors"
	"github.com/omcerp/fuel_accounting_app/internal/core/domain"
	portsrepo "github.com/omcerp/fuel_accounting_app/internal/core/ports/repositories"
	"github.com/omcerp/fuel_accounting_app/internal/models"
	"github.com/omcerp/fuel_accounting_app/internal/utils/mapping"
	"github.com/omcerp/fuel_accounting_app/internal/utils/pagination"
	"github.com/shopspring/decimal"
)

const uniqueViolationCode = "23505"

// sourceUniqueConstraint guards the (template_code, source_document_id)
// idempotency pair; see migrations.
const sourceUniqueConstraint = "ux_journal_entries_template_source"

type PgxEntryRepository struct {
	BaseRepository
}

func newPgxEntryRepository(pool *pgxpool.Pool) portsrepo.EntryRepositoryFacade {
	return &PgxEntryRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.EntryRepositoryFacade = (*PgxEntryRepository)(nil)

const entryColumns = `
	entry_id, entry_number, entry_date, description, reference,
	source_document, source_document_id, template_code,
	total_debit, total_credit, status, posted_by, posted_at,
	reversal_reference, reversal_of, created_at, created_by`

const insertEntryQuery = `
	INSERT INTO journal_entries (
		entry_id, entry_number, entry_date, description, reference,
		source_document, source_document_id, template_code,
		total_debit, total_credit, status, posted_by, posted_at,
		reversal_reference, reversal_of, created_at, created_by
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17);`

const insertLineQuery = `
	INSERT INTO journal_lines (
		line_id, entry_id, account_code, debit, credit,
		description, reference, cost_center, project_code
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);`

// SaveEntry writes the entry header and lines in one transaction, assigning
// the per template/day entry number from the current day count. An advisory
// lock on the (template, day) pair serialises number assignment across
// concurrent transactions; the unique index on entry_number remains as the
// backstop.
func (r *PgxEntryRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry) (*domain.JournalEntry, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	saved, err := r.insertEntryInTx(ctx, tx, entry)
	if err != nil {
		return nil, err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return saved, nil
}

// insertEntryInTx assigns the entry number and inserts header plus lines
// using the supplied transaction.
func (r *PgxEntryRepository) insertEntryInTx(ctx context.Context, tx pgx.Tx, entry domain.JournalEntry) (*domain.JournalEntry, error) {
	// Held until commit/rollback, so two inserts for the same template and
	// day compute their sequence one after the other.
	lockQuery := `SELECT pg_advisory_xact_lock($1);`
	if _, err := tx.Exec(ctx, lockQuery, entryNumberLockKey(entry.TemplateCode, entry.EntryDate)); err != nil {
		return nil, apperrors.NewAppError(500, "failed to acquire entry number lock for template "+entry.TemplateCode, err)
	}

	var seq int
	seqQuery := `
		SELECT COUNT(*) + 1
		FROM journal_entries
		WHERE template_code = $1 AND entry_date::date = $2::date;`
	if err := tx.QueryRow(ctx, seqQuery, entry.TemplateCode, entry.EntryDate).Scan(&seq); err != nil {
		return nil, apperrors.NewAppError(500, "failed to compute entry sequence for template "+entry.TemplateCode, err)
	}
	entry.EntryNumber = domain.FormatEntryNumber(entry.TemplateCode, entry.EntryDate, seq)

	modelEntry := mapping.ToModelEntry(entry)
	_, err := tx.Exec(ctx, insertEntryQuery,
		modelEntry.EntryID,
		modelEntry.EntryNumber,
		modelEntry.EntryDate,
		modelEntry.Description,
		modelEntry.Reference,
		modelEntry.SourceDocument,
		modelEntry.SourceDocumentID,
		modelEntry.TemplateCode,
		modelEntry.TotalDebit,
		modelEntry.TotalCredit,
		modelEntry.Status,
		modelEntry.PostedBy,
		modelEntry.PostedAt,
		modelEntry.ReversalReference,
		modelEntry.ReversalOf,
		modelEntry.CreatedAt,
		modelEntry.CreatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode && pgErr.ConstraintName == sourceUniqueConstraint {
			return nil, apperrors.ErrDuplicate
		}
		return nil, apperrors.NewAppError(500, "failed to insert journal entry "+modelEntry.EntryID, err)
	}

	batch := &pgx.Batch{}
	for _, line := range entry.Lines {
		modelLine := mapping.ToModelLine(line)
		batch.Queue(insertLineQuery,
			modelLine.LineID,
			modelEntry.EntryID,
			modelLine.AccountCode,
			modelLine.Debit,
			modelLine.Credit,
			modelLine.Description,
			modelLine.Reference,
			modelLine.CostCenter,
			modelLine.ProjectCode,
		)
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to insert lines for journal entry "+modelEntry.EntryID, err)
	}

	return &entry, nil
}

// FindEntryByID retrieves an entry with its lines.
func (r *PgxEntryRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE entry_id = $1;`
	entry, err := r.scanEntry(r.Pool.QueryRow(ctx, query, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find journal entry "+entryID, err)
	}

	lines, err := r.findLines(ctx, entry.EntryID)
	if err != nil {
		return nil, err
	}
	entry.Lines = lines
	return entry, nil
}

// FindEntryBySource retrieves the entry created for the given idempotency
// pair, with its lines.
func (r *PgxEntryRepository) FindEntryBySource(ctx context.Context, templateCode, sourceDocumentID string) (*domain.JournalEntry, error) {
	query := `SELECT ` + entryColumns + `
		FROM journal_entries
		WHERE template_code = $1 AND source_document_id = $2;`
	entry, err := r.scanEntry(r.Pool.QueryRow(ctx, query, templateCode, sourceDocumentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find journal entry for source "+sourceDocumentID, err)
	}

	lines, err := r.findLines(ctx, entry.EntryID)
	if err != nil {
		return nil, err
	}
	entry.Lines = lines
	return entry, nil
}

// ListEntries retrieves a paginated list of entry headers using token-based
// pagination over (entry_date, created_at) descending.
func (r *PgxEntryRepository) ListEntries(ctx context.Context, filter portsrepo.ListEntriesFilter) ([]domain.JournalEntry, *string, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE entry_date >= $1 AND entry_date <= $2`
	args := []interface{}{filter.From, filter.To}

	if filter.TemplateCode != nil && *filter.TemplateCode != "" {
		args = append(args, *filter.TemplateCode)
		query += ` AND template_code = $` + strconv.Itoa(len(args))
	}
	if filter.Status != nil && *filter.Status != "" {
		args = append(args, string(*filter.Status))
		query += ` AND status = $` + strconv.Itoa(len(args))
	}

	if filter.NextToken != nil && *filter.NextToken != "" {
		lastDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*filter.NextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		args = append(args, lastDate, lastCreatedAt)
		query += ` AND (entry_date, created_at) < ($` + strconv.Itoa(len(args)-1) + `, $` + strconv.Itoa(len(args)) + `)`
	}

	args = append(args, fetchLimit)
	query += ` ORDER BY entry_date DESC, created_at DESC LIMIT $` + strconv.Itoa(len(args)) + `;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query journal entries", err)
	}
	defer rows.Close()

	entries := make([]domain.JournalEntry, 0, fetchLimit)
	for rows.Next() {
		entry, scanErr := r.scanEntry(rows)
		if scanErr != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan journal entry row", scanErr)
		}
		entries = append(entries, *entry)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating journal entry rows", err)
	}

	var nextTokenVal *string
	if len(entries) > limit {
		last := entries[limit-1]
		token := pagination.EncodeToken(last.EntryDate, last.CreatedAt)
		nextTokenVal = &token
		entries = entries[:limit]
	}
	return entries, nextTokenVal, nil
}

// MarkPosted flips a DRAFT entry to POSTED. The status predicate in the
// UPDATE is the compare-and-swap: zero rows affected means the entry either
// does not exist or has already left DRAFT.
func (r *PgxEntryRepository) MarkPosted(ctx context.Context, entryID, approverID string, postedAt time.Time) error {
	query := `
		UPDATE journal_entries
		SET status = $2, posted_by = $3, posted_at = $4
		WHERE entry_id = $1 AND status = $5;`
	cmdTag, err := r.Pool.Exec(ctx, query, entryID, models.Posted, approverID, postedAt, models.Draft)
	if err != nil {
		return apperrors.NewAppError(500, "failed to post journal entry "+entryID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		var status string
		checkErr := r.Pool.QueryRow(ctx, `SELECT status FROM journal_entries WHERE entry_id = $1;`, entryID).Scan(&status)
		if errors.Is(checkErr, pgx.ErrNoRows) {
			return apperrors.ErrNotFound
		}
		if checkErr != nil {
			return apperrors.NewAppError(500, "failed to check status of journal entry "+entryID, checkErr)
		}
		return apperrors.ErrConflict
	}
	return nil
}

// SaveReversal inserts the reversing entry and stamps the original REVERSED
// in one transaction. The original is status-gated on POSTED so two
// concurrent reversals cannot both succeed.
func (r *PgxEntryRepository) SaveReversal(ctx context.Context, reversal domain.JournalEntry, originalEntryID string) (*domain.JournalEntry, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	casQuery := `
		UPDATE journal_entries
		SET status = $2, reversal_reference = $3
		WHERE entry_id = $1 AND status = $4;`
	cmdTag, err := tx.Exec(ctx, casQuery, originalEntryID, models.Reversed, reversal.EntryID, models.Posted)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to mark journal entry reversed "+originalEntryID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return nil, apperrors.ErrConflict
	}

	saved, err := r.insertEntryInTx(ctx, tx, reversal)
	if err != nil {
		return nil, err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return saved, nil
}

// Summarize aggregates entries in [from, to] by template and status.
func (r *PgxEntryRepository) Summarize(ctx context.Context, from, to time.Time, templateCode *string) (*domain.EntrySummary, error) {
	query := `
		SELECT template_code, status, COUNT(*), COALESCE(SUM(total_debit), 0)
		FROM journal_entries
		WHERE entry_date >= $1 AND entry_date <= $2`
	args := []interface{}{from, to}
	if templateCode != nil && *templateCode != "" {
		args = append(args, *templateCode)
		query += ` AND template_code = $` + strconv.Itoa(len(args))
	}
	query += ` GROUP BY template_code, status;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to summarize journal entries", err)
	}
	defer rows.Close()

	summary := &domain.EntrySummary{
		ByTemplate: map[string]domain.TemplateSummary{},
		ByStatus:   map[string]int{},
	}
	for rows.Next() {
		var tpl, status string
		var count int
		var amount decimal.Decimal
		if err := rows.Scan(&tpl, &status, &count, &amount); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan summary row", err)
		}
		tplSummary := summary.ByTemplate[tpl]
		tplSummary.Count += count
		tplSummary.Amount = tplSummary.Amount.Add(amount)
		summary.ByTemplate[tpl] = tplSummary
		summary.ByStatus[status] += count
		summary.TotalEntries += count
		summary.TotalAmount = summary.TotalAmount.Add(amount)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating summary rows", err)
	}
	return summary, nil
}

// scanEntry scans one header row in entryColumns order.
func (r *PgxEntryRepository) scanEntry(row pgx.Row) (*domain.JournalEntry, error) {
	var m models.JournalEntry
	err := row.Scan(
		&m.EntryID,
		&m.EntryNumber,
		&m.EntryDate,
		&m.Description,
		&m.Reference,
		&m.SourceDocument,
		&m.SourceDocumentID,
		&m.TemplateCode,
		&m.TotalDebit,
		&m.TotalCredit,
		&m.Status,
		&m.PostedBy,
		&m.PostedAt,
		&m.ReversalReference,
		&m.ReversalOf,
		&m.CreatedAt,
		&m.CreatedBy,
	)
	if err != nil {
		return nil, err
	}
	entry := mapping.ToDomainEntry(m)
	return &entry, nil
}

// findLines retrieves the lines of one entry in insert order.
func (r *PgxEntryRepository) findLines(ctx context.Context, entryID string) ([]domain.JournalLine, error) {
	query := `
		SELECT line_id, entry_id, account_code, debit, credit,
		       description, reference, cost_center, project_code
		FROM journal_lines
		WHERE entry_id = $1
		ORDER BY line_seq;`
	rows, err := r.Pool.Query(ctx, query, entryID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query lines for journal entry "+entryID, err)
	}
	defer rows.Close()

	lines := []models.JournalLine{}
	for rows.Next() {
		var l models.JournalLine
		if err := rows.Scan(
			&l.LineID,
			&l.EntryID,
			&l.AccountCode,
			&l.Debit,
			&l.Credit,
			&l.Description,
			&l.Reference,
			&l.CostCenter,
			&l.ProjectCode,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan line row for journal entry "+entryID, err)
		}
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating line rows for journal entry "+entryID, err)
	}
	return mapping.ToDomainLineSlice(lines), nil
}

// entryNumberLockKey derives the advisory lock key for one (template, day)
// numbering domain. The key only has to be stable and well distributed; a
// collision costs serialisation, not correctness.
func entryNumberLockKey(templateCode string, date time.Time) int64 {
	h := fnv.New64a()
	h.Write([]byte(templateCode))
	h.Write([]byte{0})
	h.Write([]byte(date.UTC().Format("20060102")))
	return int64(h.Sum64())
}
