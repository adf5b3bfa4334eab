package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/amanahfin/waqf_ledger/internal/apperrors"
	"github.com/amanahfin/waqf_ledger/internal/core/domain"
	portsrepo "github.com/amanahfin/waqf_ledger/internal/core/ports/repositories"
	"github.com/amanahfin/waqf_ledger/internal/models"
	"github.com/amanahfin/waqf_ledger/internal/utils/mapping"
)

type PgxBeneficiaryRepository struct {
	pool *pgxpool.Pool
}

// newPgxBeneficiaryRepository creates a new repository for roster data.
func newPgxBeneficiaryRepository(pool *pgxpool.Pool) portsrepo.BeneficiaryRepositoryFacade {
	return &PgxBeneficiaryRepository{pool: pool}
}

var _ portsrepo.BeneficiaryRepositoryFacade = (*PgxBeneficiaryRepository)(nil)

// SaveBeneficiary inserts a new roster entry.
func (r *PgxBeneficiaryRepository) SaveBeneficiary(ctx context.Context, beneficiary domain.BeneficiaryShare) error {
	m := mapping.ToModelBeneficiary(beneficiary)

	query := `
		INSERT INTO beneficiaries (beneficiary_id, name, relationship, weight, eligible, bank_identifier, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.pool.Exec(ctx, query,
		m.BeneficiaryID,
		m.Name,
		m.Relationship,
		m.Weight,
		m.Eligible,
		m.BankIdentifier,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: beneficiary %s", apperrors.ErrDuplicate, beneficiary.BeneficiaryID)
		}
		return apperrors.NewAppError(500, "failed to insert beneficiary "+beneficiary.BeneficiaryID, err)
	}
	return nil
}

// SetEligibility flips a beneficiary's eligibility flag.
func (r *PgxBeneficiaryRepository) SetEligibility(ctx context.Context, beneficiaryID string, eligible bool, updatedBy string) error {
	query := `
		UPDATE beneficiaries
		SET eligible = $2, last_updated_at = $3, last_updated_by = $4
		WHERE beneficiary_id = $1;
	`
	tag, err := r.pool.Exec(ctx, query, beneficiaryID, eligible, time.Now().UTC(), updatedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update beneficiary "+beneficiaryID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: beneficiary %s", apperrors.ErrNotFound, beneficiaryID)
	}
	return nil
}

// GetEligibleBeneficiaries returns the eligible roster ordered by ascending
// beneficiary ID. The ordering is relied on by the rounding logic downstream.
func (r *PgxBeneficiaryRepository) GetEligibleBeneficiaries(ctx context.Context, fiscalPeriodID string) ([]domain.BeneficiaryShare, error) {
	query := `
		SELECT beneficiary_id, name, relationship, weight, eligible, bank_identifier, created_at, created_by, last_updated_at, last_updated_by
		FROM beneficiaries
		WHERE eligible = TRUE
		ORDER BY beneficiary_id ASC;
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query eligible beneficiaries", err)
	}
	defer rows.Close()

	var roster []domain.BeneficiaryShare
	for rows.Next() {
		var m models.Beneficiary
		if err := rows.Scan(
			&m.BeneficiaryID,
			&m.Name,
			&m.Relationship,
			&m.Weight,
			&m.Eligible,
			&m.BankIdentifier,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan beneficiary row", err)
		}
		roster = append(roster, mapping.ToDomainBeneficiary(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed reading beneficiary rows", err)
	}
	return roster, nil
}

// FindBeneficiariesByIDs retrieves roster entries keyed by beneficiary ID.
func (r *PgxBeneficiaryRepository) FindBeneficiariesByIDs(ctx context.Context, beneficiaryIDs []string) (map[string]domain.BeneficiaryShare, error) {
	if len(beneficiaryIDs) == 0 {
		return map[string]domain.BeneficiaryShare{}, nil
	}
	query := `
		SELECT beneficiary_id, name, relationship, weight, eligible, bank_identifier, created_at, created_by, last_updated_at, last_updated_by
		FROM beneficiaries
		WHERE beneficiary_id = ANY($1);
	`
	rows, err := r.pool.Query(ctx, query, beneficiaryIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query beneficiaries", err)
	}
	defer rows.Close()

	result := make(map[string]domain.BeneficiaryShare, len(beneficiaryIDs))
	for rows.Next() {
		var m models.Beneficiary
		if err := rows.Scan(
			&m.BeneficiaryID,
			&m.Name,
			&m.Relationship,
			&m.Weight,
			&m.Eligible,
			&m.BankIdentifier,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan beneficiary row", err)
		}
		result[m.BeneficiaryID] = mapping.ToDomainBeneficiary(m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed reading beneficiary rows", err)
	}
	return result, nil
}
