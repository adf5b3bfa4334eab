package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amanahfin/waqf_ledger/internal/apperrors"
	"github.com/amanahfin/waqf_ledger/internal/core/domain"
	"github.com/amanahfin/waqf_ledger/internal/core/services"
)

const fallbackCharityID = "charity-fallback"

func share(id string, rel domain.RelationshipClass, weight string) domain.BeneficiaryShare {
	return domain.BeneficiaryShare{
		BeneficiaryID: id,
		Relationship:  rel,
		Weight:        d(weight),
		Eligible:      true,
	}
}

func lineTotal(lines []domain.AllocationLine) int64 {
	total := int64(0)
	for _, l := range lines {
		total += l.Amount.Amount
	}
	return total
}

func TestAllocateEqual(t *testing.T) {
	svc := services.NewAllocationService(fallbackCharityID)
	ctx := context.Background()
	policy := domain.DistributionPolicy{Kind: domain.PolicyEqual}

	t.Run("Splits evenly with remainder to lowest IDs", func(t *testing.T) {
		pool := domain.NewMoney(100, "SAR")
		roster := []domain.BeneficiaryShare{
			share("ben-c", domain.Other, "0"),
			share("ben-a", domain.Other, "0"),
			share("ben-b", domain.Other, "0"),
		}

		outcome, err := svc.Allocate(ctx, pool, roster, policy)
		require.NoError(t, err)
		require.Len(t, outcome.Lines, 3)
		assert.False(t, outcome.NoHeirsFallback)

		// Sorted ascending; ben-a takes the leftover minor unit.
		assert.Equal(t, "ben-a", outcome.Lines[0].BeneficiaryID)
		assert.Equal(t, int64(34), outcome.Lines[0].Amount.Amount)
		assert.Equal(t, "ben-b", outcome.Lines[1].BeneficiaryID)
		assert.Equal(t, int64(33), outcome.Lines[1].Amount.Amount)
		assert.Equal(t, "ben-c", outcome.Lines[2].BeneficiaryID)
		assert.Equal(t, int64(33), outcome.Lines[2].Amount.Amount)
		assert.Equal(t, pool.Amount, lineTotal(outcome.Lines))
	})

	t.Run("Ineligible entries are skipped", func(t *testing.T) {
		roster := []domain.BeneficiaryShare{
			share("ben-a", domain.Other, "0"),
			{BeneficiaryID: "ben-b", Relationship: domain.Other, Weight: d("0"), Eligible: false},
		}
		outcome, err := svc.Allocate(ctx, domain.NewMoney(100, "SAR"), roster, policy)
		require.NoError(t, err)
		require.Len(t, outcome.Lines, 1)
		assert.Equal(t, "ben-a", outcome.Lines[0].BeneficiaryID)
		assert.Equal(t, int64(100), outcome.Lines[0].Amount.Amount)
	})
}

func TestAllocateNeedWeighted(t *testing.T) {
	svc := services.NewAllocationService(fallbackCharityID)
	ctx := context.Background()
	policy := domain.DistributionPolicy{Kind: domain.PolicyNeedWeighted}

	t.Run("Allocates by weight ratio", func(t *testing.T) {
		pool := domain.NewMoney(50_000, "SAR")
		roster := []domain.BeneficiaryShare{
			share("ben-a", domain.Other, "2"),
			share("ben-b", domain.Other, "2"),
			share("ben-c", domain.Other, "1"),
		}

		outcome, err := svc.Allocate(ctx, pool, roster, policy)
		require.NoError(t, err)
		require.Len(t, outcome.Lines, 3)
		assert.Equal(t, int64(20_000), outcome.Lines[0].Amount.Amount)
		assert.Equal(t, int64(20_000), outcome.Lines[1].Amount.Amount)
		assert.Equal(t, int64(10_000), outcome.Lines[2].Amount.Amount)
		assert.Equal(t, pool.Amount, lineTotal(outcome.Lines))
	})

	t.Run("Zero weight yields a zero line not an exclusion", func(t *testing.T) {
		pool := domain.NewMoney(1_000, "SAR")
		roster := []domain.BeneficiaryShare{
			share("ben-a", domain.Other, "1"),
			share("ben-b", domain.Other, "0"),
		}

		outcome, err := svc.Allocate(ctx, pool, roster, policy)
		require.NoError(t, err)
		require.Len(t, outcome.Lines, 2)
		assert.Equal(t, int64(1_000), outcome.Lines[0].Amount.Amount)
		assert.Equal(t, int64(0), outcome.Lines[1].Amount.Amount)
	})

	t.Run("All-zero weights rejected", func(t *testing.T) {
		roster := []domain.BeneficiaryShare{
			share("ben-a", domain.Other, "0"),
			share("ben-b", domain.Other, "0"),
		}
		_, err := svc.Allocate(ctx, domain.NewMoney(1_000, "SAR"), roster, policy)
		assert.ErrorIs(t, err, apperrors.ErrInvalidRoster)
	})

	t.Run("Negative weight rejected", func(t *testing.T) {
		roster := []domain.BeneficiaryShare{share("ben-a", domain.Other, "-1")}
		_, err := svc.Allocate(ctx, domain.NewMoney(1_000, "SAR"), roster, policy)
		assert.ErrorIs(t, err, apperrors.ErrInvalidRoster)
	})
}

func TestAllocateShariah(t *testing.T) {
	svc := services.NewAllocationService(fallbackCharityID)
	ctx := context.Background()
	policy := domain.DistributionPolicy{Kind: domain.PolicyShariah}

	t.Run("Wife eighth then sons split residual", func(t *testing.T) {
		pool := domain.NewMoney(750_000, "SAR")
		roster := []domain.BeneficiaryShare{
			share("ben-son-1", domain.Son, "0"),
			share("ben-son-2", domain.Son, "0"),
			share("ben-wife", domain.Spouse, "0"),
		}

		outcome, err := svc.Allocate(ctx, pool, roster, policy)
		require.NoError(t, err)
		require.Len(t, outcome.Lines, 3)

		byID := map[string]int64{}
		for _, l := range outcome.Lines {
			byID[l.BeneficiaryID] = l.Amount.Amount
		}
		assert.Equal(t, int64(93_750), byID["ben-wife"]) // 1/8 of the pool
		assert.Equal(t, int64(328_125), byID["ben-son-1"])
		assert.Equal(t, int64(328_125), byID["ben-son-2"])
		assert.Equal(t, pool.Amount, lineTotal(outcome.Lines))
	})

	t.Run("Sons get double a daughter's share", func(t *testing.T) {
		pool := domain.NewMoney(300_000, "SAR")
		roster := []domain.BeneficiaryShare{
			share("ben-daughter", domain.Daughter, "0"),
			share("ben-son", domain.Son, "0"),
		}

		outcome, err := svc.Allocate(ctx, pool, roster, policy)
		require.NoError(t, err)
		byID := map[string]int64{}
		for _, l := range outcome.Lines {
			byID[l.BeneficiaryID] = l.Amount.Amount
		}
		assert.Equal(t, int64(200_000), byID["ben-son"])
		assert.Equal(t, int64(100_000), byID["ben-daughter"])
	})

	t.Run("Wives alone split the whole pool", func(t *testing.T) {
		pool := domain.NewMoney(100_000, "SAR")
		roster := []domain.BeneficiaryShare{
			share("ben-wife-1", domain.Spouse, "0"),
			share("ben-wife-2", domain.Spouse, "0"),
		}

		outcome, err := svc.Allocate(ctx, pool, roster, policy)
		require.NoError(t, err)
		require.Len(t, outcome.Lines, 2)
		assert.Equal(t, int64(50_000), outcome.Lines[0].Amount.Amount)
		assert.Equal(t, int64(50_000), outcome.Lines[1].Amount.Amount)
	})

	t.Run("Custodians hold no shariah share", func(t *testing.T) {
		pool := domain.NewMoney(100_000, "SAR")
		roster := []domain.BeneficiaryShare{
			share("ben-custodian", domain.Custodian, "0"),
			share("ben-son", domain.Son, "0"),
		}

		outcome, err := svc.Allocate(ctx, pool, roster, policy)
		require.NoError(t, err)
		require.Len(t, outcome.Lines, 1)
		assert.Equal(t, "ben-son", outcome.Lines[0].BeneficiaryID)
		assert.Equal(t, int64(100_000), outcome.Lines[0].Amount.Amount)
	})

	t.Run("Configured wives fraction overrides default", func(t *testing.T) {
		quarterPolicy := domain.DistributionPolicy{
			Kind:             domain.PolicyShariah,
			WivesFractionNum: 1,
			WivesFractionDen: 4,
		}
		pool := domain.NewMoney(400_000, "SAR")
		roster := []domain.BeneficiaryShare{
			share("ben-son", domain.Son, "0"),
			share("ben-wife", domain.Spouse, "0"),
		}

		outcome, err := svc.Allocate(ctx, pool, roster, quarterPolicy)
		require.NoError(t, err)
		byID := map[string]int64{}
		for _, l := range outcome.Lines {
			byID[l.BeneficiaryID] = l.Amount.Amount
		}
		assert.Equal(t, int64(100_000), byID["ben-wife"])
		assert.Equal(t, int64(300_000), byID["ben-son"])
	})
}

func TestAllocateFallback(t *testing.T) {
	ctx := context.Background()

	t.Run("Empty roster routes pool to fallback charity", func(t *testing.T) {
		svc := services.NewAllocationService(fallbackCharityID)
		pool := domain.NewMoney(250_000, "SAR")

		outcome, err := svc.Allocate(ctx, pool, nil, domain.DistributionPolicy{Kind: domain.PolicyEqual})
		require.NoError(t, err)
		assert.True(t, outcome.NoHeirsFallback)
		require.Len(t, outcome.Lines, 1)
		assert.Equal(t, fallbackCharityID, outcome.Lines[0].BeneficiaryID)
		assert.Equal(t, pool.Amount, outcome.Lines[0].Amount.Amount)
		assert.True(t, outcome.Lines[0].ShareFraction.Equal(d("1")))
	})

	t.Run("No fallback configured fails", func(t *testing.T) {
		svc := services.NewAllocationService("")
		_, err := svc.Allocate(ctx, domain.NewMoney(100, "SAR"), nil, domain.DistributionPolicy{Kind: domain.PolicyEqual})
		assert.ErrorIs(t, err, services.ErrNoFallbackCharity)
	})
}

func TestAllocateRejectsBadInputs(t *testing.T) {
	svc := services.NewAllocationService(fallbackCharityID)
	ctx := context.Background()

	_, err := svc.Allocate(ctx, domain.NewMoney(-1, "SAR"), nil, domain.DistributionPolicy{Kind: domain.PolicyEqual})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = svc.Allocate(ctx, domain.NewMoney(100, "SAR"),
		[]domain.BeneficiaryShare{share("ben-a", domain.Other, "1")},
		domain.DistributionPolicy{Kind: "LOTTERY"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidPolicy)
}

// TestDistributionArithmeticEndToEnd chains the deduction pipeline into the
// shariah allocation for the canonical worked example: 1,000,000.00 gross with
// 10/5/5/5 deductions leaves a 750,000.00 pool for one wife and two sons.
func TestDistributionArithmeticEndToEnd(t *testing.T) {
	ctx := context.Background()
	policy := domain.DistributionPolicy{
		Kind:           domain.PolicyShariah,
		CustodianPct:   d("10"),
		CharityPct:     d("5"),
		CorpusPct:      d("5"),
		DevelopmentPct: d("5"),
	}

	deducted, err := services.NewDeductionService().Apply(ctx, domain.NewMoney(100_000_000, "SAR"), policy)
	require.NoError(t, err)
	assert.Equal(t, int64(75_000_000), deducted.HeirsPool.Amount)

	roster := []domain.BeneficiaryShare{
		share("ben-son-1", domain.Son, "0"),
		share("ben-son-2", domain.Son, "0"),
		share("ben-wife", domain.Spouse, "0"),
	}
	allocated, err := services.NewAllocationService(fallbackCharityID).Allocate(ctx, deducted.HeirsPool, roster, policy)
	require.NoError(t, err)

	byID := map[string]int64{}
	for _, l := range allocated.Lines {
		byID[l.BeneficiaryID] = l.Amount.Amount
	}
	assert.Equal(t, int64(9_375_000), byID["ben-wife"])
	assert.Equal(t, int64(32_812_500), byID["ben-son-1"])
	assert.Equal(t, int64(32_812_500), byID["ben-son-2"])
	assert.Equal(t, deducted.HeirsPool.Amount, lineTotal(allocated.Lines))
}

func TestAllocateShareFractions(t *testing.T) {
	svc := services.NewAllocationService(fallbackCharityID)
	ctx := context.Background()

	roster := []domain.BeneficiaryShare{
		share("ben-a", domain.Other, "3"),
		share("ben-b", domain.Other, "1"),
	}
	outcome, err := svc.Allocate(ctx, domain.NewMoney(1_000, "SAR"), roster, domain.DistributionPolicy{Kind: domain.PolicyCustom})
	require.NoError(t, err)
	assert.True(t, outcome.Lines[0].ShareFraction.Equal(d("0.75")))
	assert.True(t, outcome.Lines[1].ShareFraction.Equal(d("0.25")))
}
