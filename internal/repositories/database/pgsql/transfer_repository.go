package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/amanahfin/waqf_ledger/internal/apperrors"
	"github.com/amanahfin/waqf_ledger/internal/core/domain"
	portsrepo "github.com/amanahfin/waqf_ledger/internal/core/ports/repositories"
	"github.com/amanahfin/waqf_ledger/internal/models"
	"github.com/amanahfin/waqf_ledger/internal/utils/mapping"
)

type PgxTransferRepository struct {
	BaseRepository
}

// newPgxTransferRepository creates a new repository for settlement batch data.
func newPgxTransferRepository(pool *pgxpool.Pool) *PgxTransferRepository {
	return &PgxTransferRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.TransferRepositoryFacade = (*PgxTransferRepository)(nil)

// insertBatchInTx writes a transfer batch with its lines and warnings within an
// existing transaction. Only the distribution execution path creates batches.
func (r *PgxTransferRepository) insertBatchInTx(ctx context.Context, tx pgx.Tx, batch domain.TransferBatch, lines []domain.TransferLine, warnings []domain.TransferWarning) error {
	mb := mapping.ToModelTransferBatch(batch)
	batchQuery := `
		INSERT INTO transfer_batches (batch_id, distribution_id, total_amount, total_count, currency_code, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	if _, err := tx.Exec(ctx, batchQuery,
		mb.BatchID, mb.DistributionID, mb.TotalAmount, mb.TotalCount, mb.CurrencyCode,
		mb.CreatedAt, mb.CreatedBy, mb.LastUpdatedAt, mb.LastUpdatedBy,
	); err != nil {
		return apperrors.NewAppError(500, "failed to insert transfer batch "+batch.BatchID, err)
	}

	pgBatch := &pgx.Batch{}
	lineQuery := `
		INSERT INTO transfer_lines (line_id, batch_id, beneficiary_id, iban, amount, currency_code, reference)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	for _, line := range lines {
		m := mapping.ToModelTransferLine(line)
		pgBatch.Queue(lineQuery, m.LineID, m.BatchID, m.BeneficiaryID, m.IBAN, m.Amount, m.CurrencyCode, m.Reference)
	}
	warningQuery := `
		INSERT INTO transfer_warnings (batch_id, beneficiary_id, reason)
		VALUES ($1, $2, $3);
	`
	for _, w := range warnings {
		pgBatch.Queue(warningQuery, w.BatchID, w.BeneficiaryID, w.Reason)
	}

	br := tx.SendBatch(ctx, pgBatch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to insert transfer batch children for "+batch.BatchID, err)
	}
	return nil
}

// FindBatchByDistributionID retrieves the batch, its lines and warnings for an
// executed distribution.
func (r *PgxTransferRepository) FindBatchByDistributionID(ctx context.Context, distributionID string) (*domain.TransferBatch, []domain.TransferLine, []domain.TransferWarning, error) {
	batchQuery := `
		SELECT batch_id, distribution_id, total_amount, total_count, currency_code, created_at, created_by, last_updated_at, last_updated_by
		FROM transfer_batches
		WHERE distribution_id = $1;
	`
	var mb models.TransferBatch
	err := r.Pool.QueryRow(ctx, batchQuery, distributionID).Scan(
		&mb.BatchID, &mb.DistributionID, &mb.TotalAmount, &mb.TotalCount, &mb.CurrencyCode,
		&mb.CreatedAt, &mb.CreatedBy, &mb.LastUpdatedAt, &mb.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, nil, fmt.Errorf("%w: no transfer batch for distribution %s", apperrors.ErrNotFound, distributionID)
		}
		return nil, nil, nil, apperrors.NewAppError(500, "failed to query transfer batch", err)
	}
	batch := mapping.ToDomainTransferBatch(mb)

	lineQuery := `
		SELECT line_id, batch_id, beneficiary_id, iban, amount, currency_code, reference
		FROM transfer_lines
		WHERE batch_id = $1
		ORDER BY reference;
	`
	rows, err := r.Pool.Query(ctx, lineQuery, batch.BatchID)
	if err != nil {
		return nil, nil, nil, apperrors.NewAppError(500, "failed to query transfer lines", err)
	}
	defer rows.Close()

	var lines []domain.TransferLine
	for rows.Next() {
		var m models.TransferLine
		if err := rows.Scan(&m.LineID, &m.BatchID, &m.BeneficiaryID, &m.IBAN, &m.Amount, &m.CurrencyCode, &m.Reference); err != nil {
			return nil, nil, nil, apperrors.NewAppError(500, "failed to scan transfer line row", err)
		}
		lines = append(lines, mapping.ToDomainTransferLine(m))
	}
	if err := rows.Err(); err != nil {
		return nil, nil, nil, apperrors.NewAppError(500, "failed reading transfer line rows", err)
	}

	warningQuery := `
		SELECT batch_id, beneficiary_id, reason
		FROM transfer_warnings
		WHERE batch_id = $1
		ORDER BY beneficiary_id;
	`
	warningRows, err := r.Pool.Query(ctx, warningQuery, batch.BatchID)
	if err != nil {
		return nil, nil, nil, apperrors.NewAppError(500, "failed to query transfer warnings", err)
	}
	defer warningRows.Close()

	var warnings []domain.TransferWarning
	for warningRows.Next() {
		var w domain.TransferWarning
		if err := warningRows.Scan(&w.BatchID, &w.BeneficiaryID, &w.Reason); err != nil {
			return nil, nil, nil, apperrors.NewAppError(500, "failed to scan transfer warning row", err)
		}
		warnings = append(warnings, w)
	}
	if err := warningRows.Err(); err != nil {
		return nil, nil, nil, apperrors.NewAppError(500, "failed reading transfer warning rows", err)
	}

	return &batch, lines, warnings, nil
}
