package dto

import (
	"github.com/shopspring/decimal"

	"github.com/amanahfin/waqf_ledger/internal/core/domain"
)

// CreateBeneficiaryRequest adds a beneficiary to the roster.
type CreateBeneficiaryRequest struct {
	Name           string          `json:"name" binding:"required"`
	Relationship   string          `json:"relationship" binding:"required,oneof=SPOUSE SON DAUGHTER CUSTODIAN OTHER"`
	Weight         decimal.Decimal `json:"weight"`
	BankIdentifier string          `json:"bankIdentifier"`
}

// BeneficiaryResponse describes one roster entry.
type BeneficiaryResponse struct {
	BeneficiaryID  string          `json:"beneficiaryID"`
	Name           string          `json:"name"`
	Relationship   string          `json:"relationship"`
	Weight         decimal.Decimal `json:"weight"`
	Eligible       bool            `json:"eligible"`
	BankIdentifier string          `json:"bankIdentifier,omitempty"`
}

// ToBeneficiaryResponse maps a roster entry to its response shape.
func ToBeneficiaryResponse(b domain.BeneficiaryShare) BeneficiaryResponse {
	return BeneficiaryResponse{
		BeneficiaryID:  b.BeneficiaryID,
		Name:           b.Name,
		Relationship:   string(b.Relationship),
		Weight:         b.Weight,
		Eligible:       b.Eligible,
		BankIdentifier: b.BankIdentifier,
	}
}

// SetEligibilityRequest toggles a beneficiary's eligibility.
type SetEligibilityRequest struct {
	Eligible *bool `json:"eligible" binding:"required"`
}
