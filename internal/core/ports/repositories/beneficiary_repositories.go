package repositories

import (
	"context"

	"github.com/amanahfin/waqf_ledger/internal/core/domain"
)

// RosterProvider supplies the beneficiary roster for a distribution run. Beneficiary
// identity and eligibility are owned by an external collaborator; this port is the
// engine's read-only view of it.
type RosterProvider interface {
	// GetEligibleBeneficiaries returns the eligible roster entries for a fiscal
	// period, ordered by ascending beneficiary ID. The ordering is load-bearing:
	// largest-remainder rounding breaks ties by position.
	GetEligibleBeneficiaries(ctx context.Context, fiscalPeriodID string) ([]domain.BeneficiaryShare, error)

	// FindBeneficiariesByIDs retrieves roster entries keyed by beneficiary ID,
	// regardless of eligibility.
	FindBeneficiariesByIDs(ctx context.Context, beneficiaryIDs []string) (map[string]domain.BeneficiaryShare, error)
}

// BeneficiaryWriter defines write operations for roster maintenance.
type BeneficiaryWriter interface {
	// SaveBeneficiary inserts a new roster entry.
	SaveBeneficiary(ctx context.Context, beneficiary domain.BeneficiaryShare) error

	// SetEligibility flips a beneficiary's eligibility flag without deleting the
	// roster entry.
	SetEligibility(ctx context.Context, beneficiaryID string, eligible bool, updatedBy string) error
}

// BeneficiaryRepositoryFacade combines roster read and write interfaces.
type BeneficiaryRepositoryFacade interface {
	RosterProvider
	BeneficiaryWriter
}
