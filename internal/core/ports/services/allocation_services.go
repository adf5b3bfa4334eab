package services

import (
	"context"

	"github.com/amanahfin/waqf_ledger/internal/core/domain"
)

// DeductionOutcome is the result of applying the deduction pipeline to a gross
// amount: the ordered deductions and the residual heirs' pool.
type DeductionOutcome struct {
	Deductions []domain.Deduction
	HeirsPool  domain.Money
}

// DeductionSvcFacade applies the ordered percentage deductions of a policy to
// gross revenue.
type DeductionSvcFacade interface {
	// Apply computes each deduction against the original gross amount and returns
	// the residual heirs' pool. Fails with apperrors.ErrInvalidPolicy on bad
	// percentages.
	Apply(ctx context.Context, gross domain.Money, policy domain.DistributionPolicy) (*DeductionOutcome, error)
}

// AllocationOutcome is the result of allocating the heirs' pool across a roster.
type AllocationOutcome struct {
	Lines           []domain.AllocationLine
	NoHeirsFallback bool
}

// AllocationSvcFacade allocates the heirs' pool across the beneficiary roster
// according to the policy kind.
type AllocationSvcFacade interface {
	// Allocate produces per-beneficiary allocation lines summing exactly to the
	// pool. The roster must already be filtered to eligible beneficiaries and
	// ordered by ascending beneficiary ID.
	Allocate(ctx context.Context, pool domain.Money, roster []domain.BeneficiaryShare, policy domain.DistributionPolicy) (*AllocationOutcome, error)
}
