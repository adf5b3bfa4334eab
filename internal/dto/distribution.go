package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/amanahfin/waqf_ledger/internal/core/domain"
)

// PolicyRequest carries the distribution policy parameters supplied by the caller.
type PolicyRequest struct {
	Kind             string          `json:"kind" binding:"required,oneof=SHARIAH EQUAL NEED_WEIGHTED CUSTOM"`
	CustodianPct     decimal.Decimal `json:"custodianPct"`
	CharityPct       decimal.Decimal `json:"charityPct"`
	CorpusPct        decimal.Decimal `json:"corpusPct"`
	DevelopmentPct   decimal.Decimal `json:"developmentPct"`
	WivesFractionNum int64           `json:"wivesFractionNum"`
	WivesFractionDen int64           `json:"wivesFractionDen"`
}

// ToDomain converts the request policy into the domain policy.
func (p PolicyRequest) ToDomain() domain.DistributionPolicy {
	return domain.DistributionPolicy{
		Kind:             domain.PolicyKind(p.Kind),
		CustodianPct:     p.CustodianPct,
		CharityPct:       p.CharityPct,
		CorpusPct:        p.CorpusPct,
		DevelopmentPct:   p.DevelopmentPct,
		WivesFractionNum: p.WivesFractionNum,
		WivesFractionDen: p.WivesFractionDen,
	}
}

// CreateDistributionRequest opens a new draft distribution for a fiscal period.
type CreateDistributionRequest struct {
	FiscalPeriodID string        `json:"fiscalPeriodID" binding:"required"`
	GrossAmount    int64         `json:"grossAmount" binding:"required,gt=0"` // minor units
	CurrencyCode   string        `json:"currencyCode" binding:"required,len=3"`
	Policy         PolicyRequest `json:"policy" binding:"required"`
}

// DeductionResponse is one deduction row of a simulation or execution.
type DeductionResponse struct {
	Label   string          `json:"label"`
	Percent decimal.Decimal `json:"percent"`
	Amount  int64           `json:"amount"`
}

// AllocationLineResponse is one beneficiary's share.
type AllocationLineResponse struct {
	BeneficiaryID string          `json:"beneficiaryID"`
	Amount        int64           `json:"amount"`
	ShareFraction decimal.Decimal `json:"shareFraction"`
}

// SimulationResponse is the non-binding preview returned by a simulation run.
type SimulationResponse struct {
	DistributionID  string                   `json:"distributionID"`
	GrossAmount     int64                    `json:"grossAmount"`
	CurrencyCode    string                   `json:"currencyCode"`
	Deductions      []DeductionResponse      `json:"deductions"`
	HeirsPool       int64                    `json:"heirsPool"`
	Lines           []AllocationLineResponse `json:"lines"`
	NoHeirsFallback bool                     `json:"noHeirsFallback"`
}

// DistributionResponse describes a distribution request.
type DistributionResponse struct {
	DistributionID  string    `json:"distributionID"`
	FiscalPeriodID  string    `json:"fiscalPeriodID"`
	GrossAmount     int64     `json:"grossAmount"`
	CurrencyCode    string    `json:"currencyCode"`
	PolicyKind      string    `json:"policyKind"`
	Status          string    `json:"status"`
	FailureReason   string    `json:"failureReason,omitempty"`
	NoHeirsFallback bool      `json:"noHeirsFallback"`
	ApprovedBy      string    `json:"approvedBy,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
}

// ToDistributionResponse maps a domain distribution to its response shape.
func ToDistributionResponse(d domain.DistributionRequest) DistributionResponse {
	return DistributionResponse{
		DistributionID:  d.DistributionID,
		FiscalPeriodID:  d.FiscalPeriodID,
		GrossAmount:     d.GrossAmount.Amount,
		CurrencyCode:    d.GrossAmount.CurrencyCode,
		PolicyKind:      string(d.Policy.Kind),
		Status:          string(d.Status),
		FailureReason:   d.FailureReason,
		NoHeirsFallback: d.NoHeirsFallback,
		ApprovedBy:      d.ApprovedBy,
		CreatedAt:       d.CreatedAt,
	}
}

// ToSimulationResponse maps a simulation result to its response shape.
func ToSimulationResponse(d domain.DistributionRequest, r domain.SimulationResult) SimulationResponse {
	resp := SimulationResponse{
		DistributionID:  d.DistributionID,
		GrossAmount:     d.GrossAmount.Amount,
		CurrencyCode:    d.GrossAmount.CurrencyCode,
		HeirsPool:       r.HeirsPool.Amount,
		NoHeirsFallback: r.NoHeirsFallback,
		Deductions:      make([]DeductionResponse, 0, len(r.Deductions)),
		Lines:           make([]AllocationLineResponse, 0, len(r.Lines)),
	}
	for _, ded := range r.Deductions {
		resp.Deductions = append(resp.Deductions, DeductionResponse{Label: ded.Label, Percent: ded.Percent, Amount: ded.Amount.Amount})
	}
	for _, line := range r.Lines {
		resp.Lines = append(resp.Lines, AllocationLineResponse{BeneficiaryID: line.BeneficiaryID, Amount: line.Amount.Amount, ShareFraction: line.ShareFraction})
	}
	return resp
}
