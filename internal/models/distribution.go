package models

import "github.com/shopspring/decimal"

// Distribution represents one distribution request row. Policy percentages are
// denormalised onto the row so an executed distribution keeps the exact policy it
// ran with.
type Distribution struct {
	DistributionID   string          `json:"distributionID"` // Primary Key (UUID)
	FiscalPeriodID   string          `json:"fiscalPeriodID"`
	GrossAmount      int64           `json:"grossAmount"` // minor units
	CurrencyCode     string          `json:"currencyCode"`
	PolicyKind       string          `json:"policyKind"`
	CustodianPct     decimal.Decimal `json:"custodianPct"`
	CharityPct       decimal.Decimal `json:"charityPct"`
	CorpusPct        decimal.Decimal `json:"corpusPct"`
	DevelopmentPct   decimal.Decimal `json:"developmentPct"`
	WivesFractionNum int64           `json:"wivesFractionNum"`
	WivesFractionDen int64           `json:"wivesFractionDen"`
	Status           string          `json:"status"`
	FailureReason    string          `json:"failureReason"`
	NoHeirsFallback  bool            `json:"noHeirsFallback"`
	ApprovedBy       string          `json:"approvedBy"`
	AuditFields
}

// AllocationLine represents one beneficiary share row of a distribution.
type AllocationLine struct {
	LineID         string          `json:"lineID"` // Primary Key (UUID)
	DistributionID string          `json:"distributionID"`
	BeneficiaryID  string          `json:"beneficiaryID"`
	Amount         int64           `json:"amount"`
	CurrencyCode   string          `json:"currencyCode"`
	ShareFraction  decimal.Decimal `json:"shareFraction"`
	IsPreview      bool            `json:"isPreview"` // simulation rows are disposable, execution rows are not
}

// DeductionLine represents one deduction row of a distribution.
type DeductionLine struct {
	LineID         string          `json:"lineID"` // Primary Key (UUID)
	DistributionID string          `json:"distributionID"`
	Label          string          `json:"label"`
	Percent        decimal.Decimal `json:"percent"`
	Amount         int64           `json:"amount"`
	CurrencyCode   string          `json:"currencyCode"`
	IsPreview      bool            `json:"isPreview"`
}
