package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/amanahfin/waqf_ledger/internal/apperrors"
	"github.com/amanahfin/waqf_ledger/internal/core/domain"
	portsrepo "github.com/amanahfin/waqf_ledger/internal/core/ports/repositories"
	"github.com/amanahfin/waqf_ledger/internal/models"
	"github.com/amanahfin/waqf_ledger/internal/utils/mapping"
)

type PgxDistributionRepository struct {
	BaseRepository
	journalRepo  *PgxJournalRepository
	transferRepo *PgxTransferRepository
}

// newPgxDistributionRepository creates a new repository for distribution data. It
// composes the journal and transfer repositories so an execution can persist all
// its records inside one transaction.
func newPgxDistributionRepository(pool *pgxpool.Pool, journalRepo *PgxJournalRepository, transferRepo *PgxTransferRepository) portsrepo.DistributionRepositoryFacade {
	return &PgxDistributionRepository{
		BaseRepository: BaseRepository{Pool: pool},
		journalRepo:    journalRepo,
		transferRepo:   transferRepo,
	}
}

var _ portsrepo.DistributionRepositoryFacade = (*PgxDistributionRepository)(nil)

const distributionColumns = `distribution_id, fiscal_period_id, gross_amount, currency_code, policy_kind, custodian_pct, charity_pct, corpus_pct, development_pct, wives_fraction_num, wives_fraction_den, status, failure_reason, no_heirs_fallback, approved_by, created_at, created_by, last_updated_at, last_updated_by`

func scanDistribution(row pgx.Row) (*models.Distribution, error) {
	var m models.Distribution
	err := row.Scan(
		&m.DistributionID, &m.FiscalPeriodID, &m.GrossAmount, &m.CurrencyCode,
		&m.PolicyKind, &m.CustodianPct, &m.CharityPct, &m.CorpusPct, &m.DevelopmentPct,
		&m.WivesFractionNum, &m.WivesFractionDen,
		&m.Status, &m.FailureReason, &m.NoHeirsFallback, &m.ApprovedBy,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// SaveDistribution inserts a new distribution request.
func (r *PgxDistributionRepository) SaveDistribution(ctx context.Context, distribution domain.DistributionRequest) error {
	m := mapping.ToModelDistribution(distribution)

	query := `
		INSERT INTO distributions (` + distributionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.DistributionID, m.FiscalPeriodID, m.GrossAmount, m.CurrencyCode,
		m.PolicyKind, m.CustodianPct, m.CharityPct, m.CorpusPct, m.DevelopmentPct,
		m.WivesFractionNum, m.WivesFractionDen,
		m.Status, m.FailureReason, m.NoHeirsFallback, m.ApprovedBy,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: distribution %s", apperrors.ErrDuplicate, distribution.DistributionID)
		}
		return apperrors.NewAppError(500, "failed to insert distribution "+distribution.DistributionID, err)
	}
	return nil
}

// FindDistributionByID retrieves a distribution request by ID.
func (r *PgxDistributionRepository) FindDistributionByID(ctx context.Context, distributionID string) (*domain.DistributionRequest, error) {
	query := `SELECT ` + distributionColumns + ` FROM distributions WHERE distribution_id = $1;`
	m, err := scanDistribution(r.Pool.QueryRow(ctx, query, distributionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: distribution %s", apperrors.ErrNotFound, distributionID)
		}
		return nil, apperrors.NewAppError(500, "failed to query distribution "+distributionID, err)
	}
	distribution := mapping.ToDomainDistribution(*m)
	return &distribution, nil
}

// ListDistributionsByPeriod retrieves all distribution requests for a fiscal
// period, newest first.
func (r *PgxDistributionRepository) ListDistributionsByPeriod(ctx context.Context, fiscalPeriodID string) ([]domain.DistributionRequest, error) {
	query := `SELECT ` + distributionColumns + ` FROM distributions WHERE fiscal_period_id = $1 ORDER BY created_at DESC;`
	rows, err := r.Pool.Query(ctx, query, fiscalPeriodID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list distributions for period "+fiscalPeriodID, err)
	}
	defer rows.Close()

	var distributions []domain.DistributionRequest
	for rows.Next() {
		m, err := scanDistribution(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan distribution row", err)
		}
		distributions = append(distributions, mapping.ToDomainDistribution(*m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed reading distribution rows", err)
	}
	return distributions, nil
}

// FindSimulation retrieves the persisted deduction and allocation rows for a
// distribution. Before execution these are the disposable preview; afterwards they
// are the frozen execution records. Allocation lines come back ordered by
// ascending beneficiary ID.
func (r *PgxDistributionRepository) FindSimulation(ctx context.Context, distributionID string) (*domain.SimulationResult, error) {
	distribution, err := r.FindDistributionByID(ctx, distributionID)
	if err != nil {
		return nil, err
	}

	deductionQuery := `
		SELECT line_id, distribution_id, label, percent, amount, currency_code, is_preview
		FROM deduction_lines
		WHERE distribution_id = $1
		ORDER BY seq;
	`
	rows, err := r.Pool.Query(ctx, deductionQuery, distributionID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query deduction lines", err)
	}
	defer rows.Close()

	result := domain.SimulationResult{NoHeirsFallback: distribution.NoHeirsFallback}
	deducted := int64(0)
	for rows.Next() {
		var m models.DeductionLine
		if err := rows.Scan(&m.LineID, &m.DistributionID, &m.Label, &m.Percent, &m.Amount, &m.CurrencyCode, &m.IsPreview); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan deduction line row", err)
		}
		result.Deductions = append(result.Deductions, mapping.ToDomainDeductionLine(m))
		deducted += m.Amount
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed reading deduction line rows", err)
	}

	lineQuery := `
		SELECT line_id, distribution_id, beneficiary_id, amount, currency_code, share_fraction, is_preview
		FROM allocation_lines
		WHERE distribution_id = $1
		ORDER BY beneficiary_id ASC;
	`
	lineRows, err := r.Pool.Query(ctx, lineQuery, distributionID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query allocation lines", err)
	}
	defer lineRows.Close()

	lineCount := 0
	for lineRows.Next() {
		var m models.AllocationLine
		if err := lineRows.Scan(&m.LineID, &m.DistributionID, &m.BeneficiaryID, &m.Amount, &m.CurrencyCode, &m.ShareFraction, &m.IsPreview); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan allocation line row", err)
		}
		result.Lines = append(result.Lines, mapping.ToDomainAllocationLine(m))
		lineCount++
	}
	if err := lineRows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed reading allocation line rows", err)
	}

	if len(result.Deductions) == 0 && lineCount == 0 {
		return nil, fmt.Errorf("%w: no simulation for distribution %s", apperrors.ErrNotFound, distributionID)
	}

	result.HeirsPool = domain.NewMoney(distribution.GrossAmount.Amount-deducted, distribution.GrossAmount.CurrencyCode)
	return &result, nil
}

// SaveSimulation replaces the disposable preview rows for a distribution and moves
// it to SIMULATED, all in one transaction. The status flip is guarded against the
// simulatable statuses so a concurrent approval or execution that landed after the
// caller's status check wins; the whole transaction then rolls back with
// apperrors.ErrConflict.
func (r *PgxDistributionRepository) SaveSimulation(ctx context.Context, distribution domain.DistributionRequest, result domain.SimulationResult) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if _, err := tx.Exec(ctx, `DELETE FROM deduction_lines WHERE distribution_id = $1 AND is_preview;`, distribution.DistributionID); err != nil {
		return apperrors.NewAppError(500, "failed to clear preview deduction lines", err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM allocation_lines WHERE distribution_id = $1 AND is_preview;`, distribution.DistributionID); err != nil {
		return apperrors.NewAppError(500, "failed to clear preview allocation lines", err)
	}

	if err := r.insertSimulationRowsInTx(ctx, tx, result, true); err != nil {
		return err
	}

	updateQuery := `
		UPDATE distributions
		SET status = $2, no_heirs_fallback = $3, failure_reason = '', last_updated_at = $4, last_updated_by = $5
		WHERE distribution_id = $1 AND status IN ('DRAFT', 'SIMULATED', 'FAILED');
	`
	tag, err := tx.Exec(ctx, updateQuery,
		distribution.DistributionID,
		string(domain.DistributionSimulated),
		result.NoHeirsFallback,
		time.Now().UTC(),
		distribution.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to mark distribution simulated", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: distribution %s is no longer simulatable", apperrors.ErrConflict, distribution.DistributionID)
	}

	return r.Commit(ctx, tx)
}

func (r *PgxDistributionRepository) insertSimulationRowsInTx(ctx context.Context, tx pgx.Tx, result domain.SimulationResult, isPreview bool) error {
	batch := &pgx.Batch{}

	deductionQuery := `
		INSERT INTO deduction_lines (line_id, distribution_id, label, percent, amount, currency_code, is_preview)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	for _, deduction := range result.Deductions {
		m := mapping.ToModelDeductionLine(deduction, isPreview)
		batch.Queue(deductionQuery, m.LineID, m.DistributionID, m.Label, m.Percent, m.Amount, m.CurrencyCode, m.IsPreview)
	}

	lineQuery := `
		INSERT INTO allocation_lines (line_id, distribution_id, beneficiary_id, amount, currency_code, share_fraction, is_preview)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	for _, line := range result.Lines {
		m := mapping.ToModelAllocationLine(line, isPreview)
		batch.Queue(lineQuery, m.LineID, m.DistributionID, m.BeneficiaryID, m.Amount, m.CurrencyCode, m.ShareFraction, m.IsPreview)
	}

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to insert simulation rows", err)
	}
	return nil
}

// TransitionStatus moves a distribution between statuses only if it currently
// holds the expected one. The guarded update is the arbiter for concurrent
// execution attempts: exactly one caller sees rowsAffected == 1.
func (r *PgxDistributionRepository) TransitionStatus(ctx context.Context, distributionID string, from, to domain.DistributionStatus, failureReason string, updatedBy string, updatedAt time.Time) (bool, error) {
	query := `
		UPDATE distributions
		SET status = $3, failure_reason = $4, last_updated_at = $5, last_updated_by = $6
		WHERE distribution_id = $1 AND status = $2;
	`
	tag, err := r.Pool.Exec(ctx, query, distributionID, string(from), string(to), failureReason, updatedAt, updatedBy)
	if err != nil {
		return false, apperrors.NewAppError(500, "failed to transition distribution "+distributionID, err)
	}
	return tag.RowsAffected() == 1, nil
}

// MarkApproved transitions SIMULATED -> APPROVED recording the approver.
func (r *PgxDistributionRepository) MarkApproved(ctx context.Context, distributionID string, approvedBy string, updatedAt time.Time) (bool, error) {
	query := `
		UPDATE distributions
		SET status = $2, approved_by = $3, last_updated_at = $4, last_updated_by = $3
		WHERE distribution_id = $1 AND status = $5;
	`
	tag, err := r.Pool.Exec(ctx, query,
		distributionID,
		string(domain.DistributionApproved),
		approvedBy,
		updatedAt,
		string(domain.DistributionSimulated),
	)
	if err != nil {
		return false, apperrors.NewAppError(500, "failed to approve distribution "+distributionID, err)
	}
	return tag.RowsAffected() == 1, nil
}

// SaveExecution persists a full execution atomically under the fiscal-period
// advisory lock: frozen deduction and allocation rows, the journal entries and
// the settlement batch, then the EXECUTING -> EXECUTED flip. Either all of it
// lands or none of it does.
func (r *PgxDistributionRepository) SaveExecution(ctx context.Context, record portsrepo.ExecutionRecord) error {
	distribution := record.Distribution

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	var locked bool
	if err := tx.QueryRow(ctx, `SELECT pg_try_advisory_xact_lock(hashtext($1));`, distribution.FiscalPeriodID).Scan(&locked); err != nil {
		return apperrors.NewAppError(500, "failed to acquire period lock", err)
	}
	if !locked {
		return fmt.Errorf("%w: fiscal period %s is busy", apperrors.ErrExecutionInProgress, distribution.FiscalPeriodID)
	}

	var isClosed bool
	err = tx.QueryRow(ctx, `SELECT is_closed FROM fiscal_periods WHERE period_id = $1;`, distribution.FiscalPeriodID).Scan(&isClosed)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("%w: fiscal period %s", apperrors.ErrNotFound, distribution.FiscalPeriodID)
		}
		return apperrors.NewAppError(500, "failed to check fiscal period", err)
	}
	if isClosed {
		return fmt.Errorf("%w: fiscal period %s", apperrors.ErrPeriodClosed, distribution.FiscalPeriodID)
	}

	var executedCount int
	countQuery := `
		SELECT COUNT(*)
		FROM distributions
		WHERE fiscal_period_id = $1 AND distribution_id <> $2 AND status IN ('EXECUTED', 'PUBLISHED');
	`
	if err := tx.QueryRow(ctx, countQuery, distribution.FiscalPeriodID, distribution.DistributionID).Scan(&executedCount); err != nil {
		return apperrors.NewAppError(500, "failed to check for executed distributions", err)
	}
	if executedCount > 0 {
		return fmt.Errorf("%w: fiscal period %s already has an executed distribution", apperrors.ErrDuplicate, distribution.FiscalPeriodID)
	}

	// Replace the preview with the frozen execution rows.
	if _, err := tx.Exec(ctx, `DELETE FROM deduction_lines WHERE distribution_id = $1;`, distribution.DistributionID); err != nil {
		return apperrors.NewAppError(500, "failed to clear deduction lines", err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM allocation_lines WHERE distribution_id = $1;`, distribution.DistributionID); err != nil {
		return apperrors.NewAppError(500, "failed to clear allocation lines", err)
	}
	simulation := domain.SimulationResult{Deductions: record.Deductions, Lines: record.Lines}
	if err := r.insertSimulationRowsInTx(ctx, tx, simulation, false); err != nil {
		return err
	}

	if err := r.journalRepo.insertEntriesInTx(ctx, tx, record.Entries, record.EntryLines); err != nil {
		return err
	}
	if err := r.transferRepo.insertBatchInTx(ctx, tx, record.Batch, record.BatchLines, record.Warnings); err != nil {
		return err
	}

	flipQuery := `
		UPDATE distributions
		SET status = $2, no_heirs_fallback = $3, failure_reason = '', last_updated_at = $4, last_updated_by = $5
		WHERE distribution_id = $1 AND status = $6;
	`
	tag, err := tx.Exec(ctx, flipQuery,
		distribution.DistributionID,
		string(domain.DistributionExecuted),
		distribution.NoHeirsFallback,
		distribution.LastUpdatedAt,
		distribution.LastUpdatedBy,
		string(domain.DistributionExecuting),
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to mark distribution executed", err)
	}
	if tag.RowsAffected() == 0 {
		// The request left EXECUTING under our feet, abort everything.
		return fmt.Errorf("%w: distribution %s is no longer executing", apperrors.ErrExecutionInProgress, distribution.DistributionID)
	}

	return r.Commit(ctx, tx)
}
