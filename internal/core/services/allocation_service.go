package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/amanahfin/waqf_ledger/internal/apperrors"
	"github.com/amanahfin/waqf_ledger/internal/core/domain"
	portssvc "github.com/amanahfin/waqf_ledger/internal/core/ports/services"
	"github.com/amanahfin/waqf_ledger/internal/middleware"
)

var (
	ErrAllocationMismatch = errors.New("allocation lines do not sum to the heirs pool")
	ErrNoFallbackCharity  = errors.New("no fallback charity beneficiary configured")
)

// allocationService allocates the heirs' pool across the beneficiary roster. One
// calculation function per policy kind, selected by an explicit switch.
type allocationService struct {
	fallbackBeneficiaryID string // receives the whole pool when no heirs are eligible
}

// NewAllocationService creates a new AllocationSvcFacade.
func NewAllocationService(fallbackBeneficiaryID string) portssvc.AllocationSvcFacade {
	return &allocationService{fallbackBeneficiaryID: fallbackBeneficiaryID}
}

var _ portssvc.AllocationSvcFacade = (*allocationService)(nil)

// Allocate produces allocation lines summing exactly to pool. The post-condition
// is checked unconditionally: a mismatch is a fatal error for the run, never
// rounded away.
func (s *allocationService) Allocate(ctx context.Context, pool domain.Money, roster []domain.BeneficiaryShare, policy domain.DistributionPolicy) (*portssvc.AllocationOutcome, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if pool.IsNegative() {
		return nil, fmt.Errorf("%w: heirs pool is negative (%d)", apperrors.ErrValidation, pool.Amount)
	}

	// Ascending beneficiary ID is the documented tie-break order for
	// largest-remainder rounding, so the roster order must be deterministic here
	// regardless of what the provider returned.
	eligible := make([]domain.BeneficiaryShare, 0, len(roster))
	for _, b := range roster {
		if b.Eligible {
			eligible = append(eligible, b)
		}
	}
	sort.Slice(eligible, func(i, j int) bool {
		return eligible[i].BeneficiaryID < eligible[j].BeneficiaryID
	})

	var (
		outcome *portssvc.AllocationOutcome
		err     error
	)
	switch policy.Kind {
	case domain.PolicyEqual:
		outcome, err = s.allocateEqual(pool, eligible)
	case domain.PolicyNeedWeighted, domain.PolicyCustom:
		outcome, err = s.allocateWeighted(pool, eligible)
	case domain.PolicyShariah:
		outcome, err = s.allocateShariah(pool, eligible, policy)
	default:
		return nil, fmt.Errorf("%w: unknown policy kind %q", apperrors.ErrInvalidPolicy, policy.Kind)
	}
	if err != nil {
		return nil, err
	}

	total := int64(0)
	for _, line := range outcome.Lines {
		total += line.Amount.Amount
	}
	if total != pool.Amount {
		logger.Error("Allocation does not reconcile with heirs pool",
			slog.Int64("pool", pool.Amount),
			slog.Int64("allocated", total),
			slog.String("policy", string(policy.Kind)),
			slog.Int("roster_size", len(eligible)),
		)
		return nil, fmt.Errorf("%w: pool %d, allocated %d", ErrAllocationMismatch, pool.Amount, total)
	}

	return outcome, nil
}

// allocateEqual gives every eligible beneficiary weight 1.
func (s *allocationService) allocateEqual(pool domain.Money, roster []domain.BeneficiaryShare) (*portssvc.AllocationOutcome, error) {
	if len(roster) == 0 {
		return s.fallbackOutcome(pool)
	}
	weights := make([]decimal.Decimal, len(roster))
	for i := range weights {
		weights[i] = decimal.NewFromInt(1)
	}
	return s.linesFromWeights(pool, roster, weights)
}

// allocateWeighted uses the externally supplied weight per beneficiary. Weight 0 is
// a valid zero-amount allocation, not an exclusion, but at least one weight must be
// positive.
func (s *allocationService) allocateWeighted(pool domain.Money, roster []domain.BeneficiaryShare) (*portssvc.AllocationOutcome, error) {
	if len(roster) == 0 {
		return s.fallbackOutcome(pool)
	}
	weights := make([]decimal.Decimal, len(roster))
	anyPositive := false
	for i, b := range roster {
		if b.Weight.IsNegative() {
			return nil, fmt.Errorf("%w: beneficiary %s has negative weight %s", apperrors.ErrInvalidRoster, b.BeneficiaryID, b.Weight.String())
		}
		if b.Weight.IsPositive() {
			anyPositive = true
		}
		weights[i] = b.Weight
	}
	if !anyPositive {
		return nil, fmt.Errorf("%w: all beneficiary weights are zero", apperrors.ErrInvalidRoster)
	}
	return s.linesFromWeights(pool, roster, weights)
}

// allocateShariah derives weights from relationship classes. Wives collectively
// receive the policy's fixed fraction of the pool split equally, computed before
// the residual goes to descendants at son:daughter = 2:1. With no wives the
// fraction folds back into the descendants' pool; with no descendants the wives
// split the whole pool; with neither, the pool routes to the fallback charity.
func (s *allocationService) allocateShariah(pool domain.Money, roster []domain.BeneficiaryShare, policy domain.DistributionPolicy) (*portssvc.AllocationOutcome, error) {
	var wives, descendants []domain.BeneficiaryShare
	for _, b := range roster {
		switch b.Relationship {
		case domain.Spouse:
			wives = append(wives, b)
		case domain.Son, domain.Daughter:
			descendants = append(descendants, b)
		}
		// Custodians and others hold no shariah share; the custodian is
		// compensated through the deduction pipeline instead.
	}

	if len(wives) == 0 && len(descendants) == 0 {
		return s.fallbackOutcome(pool)
	}

	num, den := policy.WivesFraction()
	fracNum := decimal.NewFromInt(num)
	fracDen := decimal.NewFromInt(den)

	lines := make([]domain.AllocationLine, 0, len(wives)+len(descendants))

	wivesShare := domain.NewMoney(0, pool.CurrencyCode)
	if len(wives) > 0 {
		if len(descendants) > 0 {
			wivesShare = pool.MulFraction(num, den)
		} else {
			// No descendants: the residual has nowhere else to go, so the wives
			// split the entire pool equally.
			wivesShare = pool
		}
		weights := make([]decimal.Decimal, len(wives))
		for i := range weights {
			weights[i] = decimal.NewFromInt(1)
		}
		amounts, err := wivesShare.AllocateProportionally(weights)
		if err != nil {
			return nil, err
		}
		wifeCount := decimal.NewFromInt(int64(len(wives)))
		wifeFraction := fracNum.Div(fracDen).Div(wifeCount)
		if len(descendants) == 0 {
			wifeFraction = decimal.NewFromInt(1).Div(wifeCount)
		}
		for i, w := range wives {
			lines = append(lines, domain.AllocationLine{
				BeneficiaryID: w.BeneficiaryID,
				Amount:        amounts[i],
				ShareFraction: wifeFraction,
			})
		}
	}

	if len(descendants) > 0 {
		residual, err := pool.Sub(wivesShare)
		if err != nil {
			return nil, err
		}
		weights := make([]decimal.Decimal, len(descendants))
		sumWeights := decimal.Zero
		for i, d := range descendants {
			if d.Relationship == domain.Son {
				weights[i] = decimal.NewFromInt(2)
			} else {
				weights[i] = decimal.NewFromInt(1)
			}
			sumWeights = sumWeights.Add(weights[i])
		}
		amounts, err := residual.AllocateProportionally(weights)
		if err != nil {
			return nil, err
		}
		residualFraction := decimal.NewFromInt(1)
		if len(wives) > 0 {
			residualFraction = fracDen.Sub(fracNum).Div(fracDen)
		}
		for i, d := range descendants {
			lines = append(lines, domain.AllocationLine{
				BeneficiaryID: d.BeneficiaryID,
				Amount:        amounts[i],
				ShareFraction: residualFraction.Mul(weights[i]).Div(sumWeights),
			})
		}
	}

	// Lines were appended wives-first; restore ascending beneficiary ID order so
	// downstream snapshots compare deterministically.
	sort.Slice(lines, func(i, j int) bool {
		return lines[i].BeneficiaryID < lines[j].BeneficiaryID
	})

	return &portssvc.AllocationOutcome{Lines: lines}, nil
}

// linesFromWeights allocates pool by the given weights and derives each line's
// share fraction from its weight.
func (s *allocationService) linesFromWeights(pool domain.Money, roster []domain.BeneficiaryShare, weights []decimal.Decimal) (*portssvc.AllocationOutcome, error) {
	amounts, err := pool.AllocateProportionally(weights)
	if err != nil {
		return nil, err
	}
	sumWeights := decimal.Zero
	for _, w := range weights {
		sumWeights = sumWeights.Add(w)
	}
	lines := make([]domain.AllocationLine, len(roster))
	for i, b := range roster {
		lines[i] = domain.AllocationLine{
			BeneficiaryID: b.BeneficiaryID,
			Amount:        amounts[i],
			ShareFraction: weights[i].Div(sumWeights),
		}
	}
	return &portssvc.AllocationOutcome{Lines: lines}, nil
}

// fallbackOutcome routes the whole pool to the configured fallback charity when no
// eligible heirs exist, flagging the run for audit.
func (s *allocationService) fallbackOutcome(pool domain.Money) (*portssvc.AllocationOutcome, error) {
	if s.fallbackBeneficiaryID == "" {
		return nil, fmt.Errorf("%w: roster has no eligible heirs", ErrNoFallbackCharity)
	}
	return &portssvc.AllocationOutcome{
		Lines: []domain.AllocationLine{{
			BeneficiaryID: s.fallbackBeneficiaryID,
			Amount:        pool,
			ShareFraction: decimal.NewFromInt(1),
		}},
		NoHeirsFallback: true,
	}, nil
}
