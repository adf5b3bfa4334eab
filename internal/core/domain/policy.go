package domain

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/amanahfin/waqf_ledger/internal/apperrors"
)

// PolicyKind selects the share-allocation rule for a distribution.
type PolicyKind string

const (
	PolicyShariah      PolicyKind = "SHARIAH"
	PolicyEqual        PolicyKind = "EQUAL"
	PolicyNeedWeighted PolicyKind = "NEED_WEIGHTED"
	PolicyCustom       PolicyKind = "CUSTOM"
)

// DistributionPolicy parameterises a distribution run: the allocation rule plus the
// ordered deduction percentages applied to gross revenue before heir allocation.
type DistributionPolicy struct {
	Kind           PolicyKind      `json:"kind"`
	CustodianPct   decimal.Decimal `json:"custodianPct"`   // nazer fee
	CharityPct     decimal.Decimal `json:"charityPct"`
	CorpusPct      decimal.Decimal `json:"corpusPct"`      // retained principal
	DevelopmentPct decimal.Decimal `json:"developmentPct"` // maintenance/development
	// Wives collectively receive WivesFractionNum/WivesFractionDen of the heirs'
	// pool under the shariah policy. Defaults to 1/8.
	WivesFractionNum int64 `json:"wivesFractionNum"`
	WivesFractionDen int64 `json:"wivesFractionDen"`
}

// DefaultWivesFraction is the collective wives' share of the heirs' pool when the
// policy does not override it.
const (
	DefaultWivesFractionNum int64 = 1
	DefaultWivesFractionDen int64 = 8
)

// Validate checks the deduction percentages: each in [0,100], sum at most 100.
func (p DistributionPolicy) Validate() error {
	hundred := decimal.NewFromInt(100)
	sum := decimal.Zero
	for _, pct := range []struct {
		label string
		value decimal.Decimal
	}{
		{"custodian", p.CustodianPct},
		{"charity", p.CharityPct},
		{"corpus", p.CorpusPct},
		{"development", p.DevelopmentPct},
	} {
		if pct.value.IsNegative() {
			return fmt.Errorf("%w: %s percentage is negative (%s)", apperrors.ErrInvalidPolicy, pct.label, pct.value.String())
		}
		if pct.value.GreaterThan(hundred) {
			return fmt.Errorf("%w: %s percentage exceeds 100 (%s)", apperrors.ErrInvalidPolicy, pct.label, pct.value.String())
		}
		sum = sum.Add(pct.value)
	}
	if sum.GreaterThan(hundred) {
		return fmt.Errorf("%w: deduction percentages sum to %s, exceeding 100", apperrors.ErrInvalidPolicy, sum.String())
	}
	switch p.Kind {
	case PolicyShariah, PolicyEqual, PolicyNeedWeighted, PolicyCustom:
	default:
		return fmt.Errorf("%w: unknown policy kind %q", apperrors.ErrInvalidPolicy, p.Kind)
	}
	if p.WivesFractionDen != 0 && (p.WivesFractionNum < 0 || p.WivesFractionNum > p.WivesFractionDen) {
		return fmt.Errorf("%w: wives fraction %d/%d out of range", apperrors.ErrInvalidPolicy, p.WivesFractionNum, p.WivesFractionDen)
	}
	return nil
}

// WivesFraction returns the configured wives fraction, falling back to the default
// when the policy leaves it unset.
func (p DistributionPolicy) WivesFraction() (int64, int64) {
	if p.WivesFractionDen == 0 {
		return DefaultWivesFractionNum, DefaultWivesFractionDen
	}
	return p.WivesFractionNum, p.WivesFractionDen
}
