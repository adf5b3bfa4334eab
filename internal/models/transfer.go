package models

// TransferBatch represents one settlement batch row.
type TransferBatch struct {
	BatchID        string `json:"batchID"` // Primary Key (UUID)
	DistributionID string `json:"distributionID"`
	TotalAmount    int64  `json:"totalAmount"` // minor units
	TotalCount     int    `json:"totalCount"`
	CurrencyCode   string `json:"currencyCode"`
	AuditFields
}

// TransferLine represents one beneficiary payment row of a batch.
type TransferLine struct {
	LineID        string `json:"lineID"` // Primary Key (UUID)
	BatchID       string `json:"batchID"`
	BeneficiaryID string `json:"beneficiaryID"`
	IBAN          string `json:"iban"`
	Amount        int64  `json:"amount"`
	CurrencyCode  string `json:"currencyCode"`
	Reference     string `json:"reference"`
}

// TransferWarning represents one exclusion row of a batch.
type TransferWarning struct {
	BatchID       string `json:"batchID"`
	BeneficiaryID string `json:"beneficiaryID"`
	Reason        string `json:"reason"`
}
