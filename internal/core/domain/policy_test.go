package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/amanahfin/waqf_ledger/internal/apperrors"
	"github.com/amanahfin/waqf_ledger/internal/core/domain"
)

func TestDistributionPolicyValidate(t *testing.T) {
	testCases := []struct {
		name    string
		policy  domain.DistributionPolicy
		wantErr bool
	}{
		{
			name: "Valid shariah policy",
			policy: domain.DistributionPolicy{
				Kind:           domain.PolicyShariah,
				CustodianPct:   d("10"),
				CharityPct:     d("5"),
				CorpusPct:      d("20"),
				DevelopmentPct: d("2.5"),
			},
		},
		{
			name:   "Valid equal policy with zero deductions",
			policy: domain.DistributionPolicy{Kind: domain.PolicyEqual},
		},
		{
			name: "Negative percentage",
			policy: domain.DistributionPolicy{
				Kind:         domain.PolicyEqual,
				CustodianPct: d("-1"),
			},
			wantErr: true,
		},
		{
			name: "Single percentage above 100",
			policy: domain.DistributionPolicy{
				Kind:       domain.PolicyEqual,
				CharityPct: d("100.01"),
			},
			wantErr: true,
		},
		{
			name: "Sum above 100",
			policy: domain.DistributionPolicy{
				Kind:           domain.PolicyEqual,
				CustodianPct:   d("40"),
				CharityPct:     d("40"),
				CorpusPct:      d("15"),
				DevelopmentPct: d("10"),
			},
			wantErr: true,
		},
		{
			name: "Sum exactly 100 is allowed",
			policy: domain.DistributionPolicy{
				Kind:           domain.PolicyEqual,
				CustodianPct:   d("40"),
				CharityPct:     d("40"),
				CorpusPct:      d("15"),
				DevelopmentPct: d("5"),
			},
		},
		{
			name:    "Unknown policy kind",
			policy:  domain.DistributionPolicy{Kind: "LOTTERY"},
			wantErr: true,
		},
		{
			name: "Wives fraction above one",
			policy: domain.DistributionPolicy{
				Kind:             domain.PolicyShariah,
				WivesFractionNum: 9,
				WivesFractionDen: 8,
			},
			wantErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.policy.Validate()
			if tc.wantErr {
				assert.ErrorIs(t, err, apperrors.ErrInvalidPolicy)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestWivesFractionDefault(t *testing.T) {
	num, den := domain.DistributionPolicy{Kind: domain.PolicyShariah}.WivesFraction()
	assert.Equal(t, int64(1), num)
	assert.Equal(t, int64(8), den)

	num, den = domain.DistributionPolicy{
		Kind:             domain.PolicyShariah,
		WivesFractionNum: 1,
		WivesFractionDen: 4,
	}.WivesFraction()
	assert.Equal(t, int64(1), num)
	assert.Equal(t, int64(4), den)
}
