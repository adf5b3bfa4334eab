package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/amanahfin/waqf_ledger/internal/core/domain"
	portssvc "github.com/amanahfin/waqf_ledger/internal/core/ports/services"
	"github.com/amanahfin/waqf_ledger/internal/middleware"
)

var (
	ErrGrossNotPositive  = errors.New("gross amount must be positive")
	ErrDeductionOverflow = errors.New("deductions exceed gross amount")
)

// deductionService applies the ordered percentage deductions of a distribution
// policy to gross revenue.
type deductionService struct{}

// NewDeductionService creates a new DeductionSvcFacade.
func NewDeductionService() portssvc.DeductionSvcFacade {
	return &deductionService{}
}

var _ portssvc.DeductionSvcFacade = (*deductionService)(nil)

// Apply computes the four deductions sequentially against the original gross
// amount (never compounded against running residuals) and derives the heirs' pool
// as gross minus the deduction sum, so rounding drift cannot accumulate.
func (s *deductionService) Apply(ctx context.Context, gross domain.Money, policy domain.DistributionPolicy) (*portssvc.DeductionOutcome, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if gross.Amount <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrGrossNotPositive, gross.Amount)
	}
	if err := policy.Validate(); err != nil {
		return nil, err
	}

	steps := []struct {
		label   string
		percent decimal.Decimal
	}{
		{domain.DeductionCustodianFee, policy.CustodianPct},
		{domain.DeductionCharity, policy.CharityPct},
		{domain.DeductionCorpusRetention, policy.CorpusPct},
		{domain.DeductionDevelopment, policy.DevelopmentPct},
	}

	deductions := make([]domain.Deduction, 0, len(steps))
	totalDeducted := int64(0)
	for _, step := range steps {
		amount := gross.PercentageOf(step.percent)
		deductions = append(deductions, domain.Deduction{
			Label:   step.label,
			Percent: step.percent,
			Amount:  amount,
		})
		totalDeducted += amount.Amount
	}

	heirsPool := domain.NewMoney(gross.Amount-totalDeducted, gross.CurrencyCode)
	if heirsPool.IsNegative() {
		// Unreachable while Validate caps the percentage sum at 100; kept as an
		// invariant guard because this path moves real money.
		logger.Error("Deductions exceeded gross amount",
			slog.Int64("gross", gross.Amount),
			slog.Int64("deducted", totalDeducted),
		)
		return nil, fmt.Errorf("%w: gross %d, deducted %d", ErrDeductionOverflow, gross.Amount, totalDeducted)
	}

	return &portssvc.DeductionOutcome{Deductions: deductions, HeirsPool: heirsPool}, nil
}
