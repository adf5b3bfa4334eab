package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/amanahfin/waqf_ledger/internal/apperrors"
	"github.com/amanahfin/waqf_ledger/internal/core/domain"
	portsrepo "github.com/amanahfin/waqf_ledger/internal/core/ports/repositories"
	"github.com/amanahfin/waqf_ledger/internal/models"
	"github.com/amanahfin/waqf_ledger/internal/utils/mapping"
)

type PgxFiscalPeriodRepository struct {
	BaseRepository
	journalRepo *PgxJournalRepository
}

// newPgxFiscalPeriodRepository creates a new repository for fiscal period data.
// It composes the journal repository so ClosePeriod can aggregate the period
// ledger inside its own transaction.
func newPgxFiscalPeriodRepository(pool *pgxpool.Pool, journalRepo *PgxJournalRepository) portsrepo.FiscalPeriodRepositoryFacade {
	return &PgxFiscalPeriodRepository{
		BaseRepository: BaseRepository{Pool: pool},
		journalRepo:    journalRepo,
	}
}

var _ portsrepo.FiscalPeriodRepositoryFacade = (*PgxFiscalPeriodRepository)(nil)

const periodColumns = `period_id, name, start_date, end_date, is_closed, opening_corpus, closing_corpus, currency_code, created_at, created_by, last_updated_at, last_updated_by`

func scanPeriod(row pgx.Row) (*models.FiscalPeriod, error) {
	var m models.FiscalPeriod
	err := row.Scan(
		&m.PeriodID,
		&m.Name,
		&m.StartDate,
		&m.EndDate,
		&m.IsClosed,
		&m.OpeningCorpus,
		&m.ClosingCorpus,
		&m.CurrencyCode,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// SavePeriod inserts a new fiscal period.
func (r *PgxFiscalPeriodRepository) SavePeriod(ctx context.Context, period domain.FiscalPeriod) error {
	m := mapping.ToModelFiscalPeriod(period)

	query := `
		INSERT INTO fiscal_periods (` + periodColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.PeriodID, m.Name, m.StartDate, m.EndDate, m.IsClosed,
		m.OpeningCorpus, m.ClosingCorpus, m.CurrencyCode,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: fiscal period %s", apperrors.ErrDuplicate, period.PeriodID)
		}
		return apperrors.NewAppError(500, "failed to insert fiscal period "+period.PeriodID, err)
	}
	return nil
}

// FindPeriodByID retrieves a fiscal period by ID.
func (r *PgxFiscalPeriodRepository) FindPeriodByID(ctx context.Context, periodID string) (*domain.FiscalPeriod, error) {
	query := `SELECT ` + periodColumns + ` FROM fiscal_periods WHERE period_id = $1;`
	m, err := scanPeriod(r.Pool.QueryRow(ctx, query, periodID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: fiscal period %s", apperrors.ErrNotFound, periodID)
		}
		return nil, apperrors.NewAppError(500, "failed to query fiscal period "+periodID, err)
	}
	period := mapping.ToDomainFiscalPeriod(*m)
	return &period, nil
}

// ListPeriods retrieves all fiscal periods ordered by start date.
func (r *PgxFiscalPeriodRepository) ListPeriods(ctx context.Context) ([]domain.FiscalPeriod, error) {
	query := `SELECT ` + periodColumns + ` FROM fiscal_periods ORDER BY start_date;`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list fiscal periods", err)
	}
	defer rows.Close()

	var periods []domain.FiscalPeriod
	for rows.Next() {
		m, err := scanPeriod(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan fiscal period row", err)
		}
		periods = append(periods, mapping.ToDomainFiscalPeriod(*m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed reading fiscal period rows", err)
	}
	return periods, nil
}

// ClosePeriod aggregates the period ledger, marks the period closed and inserts
// the successor, all in one transaction under the same period-scoped advisory
// lock SaveExecution takes. Summation happens after the lock is held, so a close
// can never commit numbers that miss a concurrently committing execution.
func (r *PgxFiscalPeriodRepository) ClosePeriod(ctx context.Context, periodID string, corpusAccountID string, closeFn portsrepo.PeriodCloser) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	var locked bool
	if err := tx.QueryRow(ctx, `SELECT pg_try_advisory_xact_lock(hashtext($1));`, periodID).Scan(&locked); err != nil {
		return apperrors.NewAppError(500, "failed to acquire period lock", err)
	}
	if !locked {
		return fmt.Errorf("%w: fiscal period %s is busy", apperrors.ErrExecutionInProgress, periodID)
	}

	summary, err := r.journalRepo.sumPeriodLedgerInTx(ctx, tx, periodID, corpusAccountID)
	if err != nil {
		return err
	}
	current, next := closeFn(*summary)

	mc := mapping.ToModelFiscalPeriod(current)
	closeQuery := `
		UPDATE fiscal_periods
		SET is_closed = TRUE, closing_corpus = $2, last_updated_at = $3, last_updated_by = $4
		WHERE period_id = $1 AND is_closed = FALSE;
	`
	tag, err := tx.Exec(ctx, closeQuery, mc.PeriodID, mc.ClosingCorpus, mc.LastUpdatedAt, mc.LastUpdatedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to close fiscal period "+current.PeriodID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: fiscal period %s", apperrors.ErrPeriodClosed, current.PeriodID)
	}

	mn := mapping.ToModelFiscalPeriod(next)
	insertQuery := `
		INSERT INTO fiscal_periods (` + periodColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err = tx.Exec(ctx, insertQuery,
		mn.PeriodID, mn.Name, mn.StartDate, mn.EndDate, mn.IsClosed,
		mn.OpeningCorpus, mn.ClosingCorpus, mn.CurrencyCode,
		mn.CreatedAt, mn.CreatedBy, mn.LastUpdatedAt, mn.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert successor period "+next.PeriodID, err)
	}

	return r.Commit(ctx, tx)
}
