package domain

// TransferBatch is the settlement batch produced for an executed distribution.
// Totals are recomputed from the included lines, never carried over from the
// allocation step.
type TransferBatch struct {
	BatchID        string `json:"batchID"` // Primary Key (UUID)
	DistributionID string `json:"distributionID"`
	TotalAmount    Money  `json:"totalAmount"`
	TotalCount     int    `json:"totalCount"`
	AuditFields
}

// TransferLine is one beneficiary payment inside a transfer batch.
type TransferLine struct {
	LineID        string `json:"lineID"` // Primary Key (UUID)
	BatchID       string `json:"batchID"`
	BeneficiaryID string `json:"beneficiaryID"`
	IBAN          string `json:"iban"`
	Amount        Money  `json:"amount"`
	Reference     string `json:"reference"`
}

// TransferWarning flags a beneficiary excluded from a batch. Exclusions are
// recoverable per-line warnings, never batch aborts.
type TransferWarning struct {
	BatchID       string `json:"batchID"`
	BeneficiaryID string `json:"beneficiaryID"`
	Reason        string `json:"reason"`
}

// WarningNoBankDetails marks a beneficiary dropped from a batch because their bank
// identifier was missing or failed validation.
const WarningNoBankDetails = "excluded_no_bank_details"
