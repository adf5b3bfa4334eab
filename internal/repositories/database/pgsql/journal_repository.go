package pgsql

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/amanahfin/waqf_ledger/internal/apperrors"
	"github.com/amanahfin/waqf_ledger/internal/core/domain"
	portsrepo "github.com/amanahfin/waqf_ledger/internal/core/ports/repositories"
	"github.com/amanahfin/waqf_ledger/internal/models"
	"github.com/amanahfin/waqf_ledger/internal/utils/mapping"
)

type PgxJournalRepository struct {
	BaseRepository
}

// newPgxJournalRepository creates a new repository for journal data.
func newPgxJournalRepository(pool *pgxpool.Pool) *PgxJournalRepository {
	return &PgxJournalRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.JournalRepositoryFacade = (*PgxJournalRepository)(nil)

// SaveEntry inserts one balanced entry with its lines in a single transaction.
func (r *PgxJournalRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalLine) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := r.insertEntriesInTx(ctx, tx, []domain.JournalEntry{entry}, lines); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// insertEntriesInTx writes journal entries and their lines within an existing
// transaction. Used by SaveEntry and by the distribution execution path.
func (r *PgxJournalRepository) insertEntriesInTx(ctx context.Context, tx pgx.Tx, entries []domain.JournalEntry, lines []domain.JournalLine) error {
	batch := &pgx.Batch{}

	entryQuery := `
		INSERT INTO journal_entries (journal_id, fiscal_period_id, entry_date, description, currency_code, reference_type, reference_id, status, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	for _, entry := range entries {
		m := mapping.ToModelJournalEntry(entry)
		batch.Queue(entryQuery,
			m.JournalID, m.FiscalPeriodID, m.EntryDate, m.Description, m.CurrencyCode,
			m.ReferenceType, m.ReferenceID, m.Status,
			m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
		)
	}

	lineQuery := `
		INSERT INTO journal_lines (line_id, journal_id, account_id, amount, currency_code, side, notes, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	for _, line := range lines {
		m := mapping.ToModelJournalLine(line)
		batch.Queue(lineQuery,
			m.LineID, m.JournalID, m.AccountID, m.Amount, m.CurrencyCode,
			m.Side, m.Notes,
			m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
		)
	}

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to insert journal entries", err)
	}
	return nil
}

// FindEntriesByReference retrieves the entries grouped under one reference with
// their lines, oldest entry first.
func (r *PgxJournalRepository) FindEntriesByReference(ctx context.Context, referenceType, referenceID string) ([]domain.JournalEntry, map[string][]domain.JournalLine, error) {
	entryQuery := `
		SELECT journal_id, fiscal_period_id, entry_date, description, currency_code, reference_type, reference_id, status, created_at, created_by, last_updated_at, last_updated_by
		FROM journal_entries
		WHERE reference_type = $1 AND reference_id = $2
		ORDER BY created_at, journal_id;
	`
	rows, err := r.Pool.Query(ctx, entryQuery, referenceType, referenceID)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query journal entries", err)
	}
	defer rows.Close()

	var entries []domain.JournalEntry
	var journalIDs []string
	for rows.Next() {
		var m models.JournalEntry
		if err := rows.Scan(
			&m.JournalID, &m.FiscalPeriodID, &m.EntryDate, &m.Description, &m.CurrencyCode,
			&m.ReferenceType, &m.ReferenceID, &m.Status,
			&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
		); err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan journal entry row", err)
		}
		entries = append(entries, mapping.ToDomainJournalEntry(m))
		journalIDs = append(journalIDs, m.JournalID)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed reading journal entry rows", err)
	}

	linesByJournal := make(map[string][]domain.JournalLine, len(journalIDs))
	if len(journalIDs) == 0 {
		return entries, linesByJournal, nil
	}

	lineQuery := `
		SELECT line_id, journal_id, account_id, amount, currency_code, side, notes, created_at, created_by, last_updated_at, last_updated_by
		FROM journal_lines
		WHERE journal_id = ANY($1)
		ORDER BY journal_id, side DESC, line_id;
	`
	lineRows, err := r.Pool.Query(ctx, lineQuery, journalIDs)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query journal lines", err)
	}
	defer lineRows.Close()

	for lineRows.Next() {
		var m models.JournalLine
		if err := lineRows.Scan(
			&m.LineID, &m.JournalID, &m.AccountID, &m.Amount, &m.CurrencyCode,
			&m.Side, &m.Notes,
			&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
		); err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan journal line row", err)
		}
		linesByJournal[m.JournalID] = append(linesByJournal[m.JournalID], mapping.ToDomainJournalLine(m))
	}
	if err := lineRows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed reading journal line rows", err)
	}

	return entries, linesByJournal, nil
}

const periodLedgerQuery = `
	SELECT
		COALESCE(SUM(CASE WHEN a.account_type = 'INCOME' AND l.side = 'CREDIT' THEN l.amount
		                  WHEN a.account_type = 'INCOME' AND l.side = 'DEBIT' THEN -l.amount
		                  ELSE 0 END), 0) AS total_revenue,
		COALESCE(SUM(CASE WHEN a.account_type = 'EXPENSE' AND l.side = 'DEBIT' THEN l.amount
		                  WHEN a.account_type = 'EXPENSE' AND l.side = 'CREDIT' THEN -l.amount
		                  ELSE 0 END), 0) AS total_expenses,
		COALESCE(SUM(CASE WHEN l.account_id = $2 AND l.side = 'CREDIT' THEN l.amount
		                  WHEN l.account_id = $2 AND l.side = 'DEBIT' THEN -l.amount
		                  ELSE 0 END), 0) AS corpus_deductions,
		COALESCE(MAX(e.currency_code), '') AS currency_code
	FROM journal_lines l
	JOIN journal_entries e ON e.journal_id = l.journal_id
	JOIN accounts a ON a.account_id = l.account_id
	WHERE e.fiscal_period_id = $1 AND e.status = 'POSTED';
`

// SumPeriodLedger aggregates posted journal lines for one fiscal period into the
// totals period closing needs. Revenue is the credit balance of INCOME accounts,
// expenses the debit balance of EXPENSE accounts, and corpus deductions the credit
// balance of the configured corpus account.
func (r *PgxJournalRepository) SumPeriodLedger(ctx context.Context, fiscalPeriodID, corpusAccountID string) (*domain.PeriodLedgerSummary, error) {
	return scanPeriodLedger(r.Pool.QueryRow(ctx, periodLedgerQuery, fiscalPeriodID, corpusAccountID), fiscalPeriodID)
}

// sumPeriodLedgerInTx runs the same aggregation inside an open transaction. The
// fiscal period repository uses it to compute closing numbers after the period
// lock is held, so no execution can commit between summation and close.
func (r *PgxJournalRepository) sumPeriodLedgerInTx(ctx context.Context, tx pgx.Tx, fiscalPeriodID, corpusAccountID string) (*domain.PeriodLedgerSummary, error) {
	return scanPeriodLedger(tx.QueryRow(ctx, periodLedgerQuery, fiscalPeriodID, corpusAccountID), fiscalPeriodID)
}

func scanPeriodLedger(row pgx.Row, fiscalPeriodID string) (*domain.PeriodLedgerSummary, error) {
	var revenue, expenses, corpus int64
	var currencyCode string
	if err := row.Scan(&revenue, &expenses, &corpus, &currencyCode); err != nil {
		return nil, apperrors.NewAppError(500, "failed to aggregate period ledger "+fiscalPeriodID, err)
	}
	return &domain.PeriodLedgerSummary{
		TotalRevenue:     domain.NewMoney(revenue, currencyCode),
		TotalExpenses:    domain.NewMoney(expenses, currencyCode),
		CorpusDeductions: domain.NewMoney(corpus, currencyCode),
	}, nil
}
