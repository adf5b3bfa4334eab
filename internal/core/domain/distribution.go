package domain

import "github.com/shopspring/decimal"

// DistributionStatus is the lifecycle state of a distribution request.
//
// DRAFT -> SIMULATED (repeatable) -> APPROVED -> EXECUTING -> EXECUTED | FAILED.
// PUBLISHED is a later, idempotent visibility flip on an executed distribution.
// CANCELLED is only reachable from DRAFT or SIMULATED.
type DistributionStatus string

const (
	DistributionDraft     DistributionStatus = "DRAFT"
	DistributionSimulated DistributionStatus = "SIMULATED"
	DistributionApproved  DistributionStatus = "APPROVED"
	DistributionExecuting DistributionStatus = "EXECUTING"
	DistributionExecuted  DistributionStatus = "EXECUTED"
	DistributionFailed    DistributionStatus = "FAILED"
	DistributionPublished DistributionStatus = "PUBLISHED"
	DistributionCancelled DistributionStatus = "CANCELLED"
)

// DistributionRequest is the unit of idempotency for revenue distribution: at most
// one request per fiscal period ever reaches EXECUTED.
type DistributionRequest struct {
	DistributionID  string             `json:"distributionID"` // Primary Key (UUID)
	FiscalPeriodID  string             `json:"fiscalPeriodID"`
	GrossAmount     Money              `json:"grossAmount"`
	Policy          DistributionPolicy `json:"policy"`
	Status          DistributionStatus `json:"status"`
	FailureReason   string             `json:"failureReason,omitempty"` // set when Status is FAILED
	NoHeirsFallback bool               `json:"noHeirsFallback"`         // heirs pool routed to the fallback charity
	ApprovedBy      string             `json:"approvedBy,omitempty"`
	AuditFields
}

// AllocationLine is one beneficiary's share of a distribution. Lines are immutable
// once the parent distribution reaches EXECUTED; cancellation is a status change on
// the parent, never row removal.
type AllocationLine struct {
	LineID         string          `json:"lineID"` // Primary Key (UUID)
	DistributionID string          `json:"distributionID"`
	BeneficiaryID  string          `json:"beneficiaryID"`
	Amount         Money           `json:"amount"`
	ShareFraction  decimal.Decimal `json:"shareFraction"` // fraction of the heirs' pool used for this line
}

// Deduction is one percentage-based charge taken from gross revenue before heir
// allocation.
type Deduction struct {
	LineID         string          `json:"lineID"` // Primary Key (UUID)
	DistributionID string          `json:"distributionID"`
	Label          string          `json:"label"` // custodian_fee, charity, corpus_retention, development
	Percent        decimal.Decimal `json:"percent"`
	Amount         Money           `json:"amount"`
}

// Deduction labels, in the order the pipeline applies them.
const (
	DeductionCustodianFee    = "custodian_fee"
	DeductionCharity         = "charity"
	DeductionCorpusRetention = "corpus_retention"
	DeductionDevelopment     = "development"
)

// SimulationResult is the outcome of running the deduction pipeline and share
// allocation for a distribution request. Simulations are non-binding previews and
// may be recomputed any number of times before approval.
type SimulationResult struct {
	Deductions      []Deduction      `json:"deductions"`
	HeirsPool       Money            `json:"heirsPool"`
	Lines           []AllocationLine `json:"lines"`
	NoHeirsFallback bool             `json:"noHeirsFallback"`
}

// SameNumbers reports whether two simulation results describe identical money
// movements: same deduction amounts per label and same per-beneficiary amounts, in
// order. Used for the staleness check between approval and execution.
func (r SimulationResult) SameNumbers(other SimulationResult) bool {
	if len(r.Deductions) != len(other.Deductions) || len(r.Lines) != len(other.Lines) {
		return false
	}
	if !r.HeirsPool.Equal(other.HeirsPool) {
		return false
	}
	for i := range r.Deductions {
		if r.Deductions[i].Label != other.Deductions[i].Label || !r.Deductions[i].Amount.Equal(other.Deductions[i].Amount) {
			return false
		}
	}
	for i := range r.Lines {
		if r.Lines[i].BeneficiaryID != other.Lines[i].BeneficiaryID || !r.Lines[i].Amount.Equal(other.Lines[i].Amount) {
			return false
		}
	}
	return true
}
