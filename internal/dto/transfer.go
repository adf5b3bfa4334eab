package dto

import "github.com/amanahfin/waqf_ledger/internal/core/domain"

// TransferLineResponse is one payment line of a settlement batch.
type TransferLineResponse struct {
	BeneficiaryID string `json:"beneficiaryID"`
	IBAN          string `json:"iban"`
	Amount        int64  `json:"amount"`
	Reference     string `json:"reference"`
}

// TransferWarningResponse flags a beneficiary excluded from the batch.
type TransferWarningResponse struct {
	BeneficiaryID string `json:"beneficiaryID"`
	Reason        string `json:"reason"`
}

// TransferBatchResponse describes a settlement batch with its lines and warnings.
type TransferBatchResponse struct {
	BatchID        string                    `json:"batchID"`
	DistributionID string                    `json:"distributionID"`
	TotalAmount    int64                     `json:"totalAmount"`
	TotalCount     int                       `json:"totalCount"`
	CurrencyCode   string                    `json:"currencyCode"`
	Lines          []TransferLineResponse    `json:"lines"`
	Warnings       []TransferWarningResponse `json:"warnings,omitempty"`
}

// ToTransferBatchResponse maps a batch and its children to the response shape.
func ToTransferBatchResponse(batch domain.TransferBatch, lines []domain.TransferLine, warnings []domain.TransferWarning) TransferBatchResponse {
	resp := TransferBatchResponse{
		BatchID:        batch.BatchID,
		DistributionID: batch.DistributionID,
		TotalAmount:    batch.TotalAmount.Amount,
		TotalCount:     batch.TotalCount,
		CurrencyCode:   batch.TotalAmount.CurrencyCode,
		Lines:          make([]TransferLineResponse, 0, len(lines)),
	}
	for _, line := range lines {
		resp.Lines = append(resp.Lines, TransferLineResponse{
			BeneficiaryID: line.BeneficiaryID,
			IBAN:          line.IBAN,
			Amount:        line.Amount.Amount,
			Reference:     line.Reference,
		})
	}
	for _, w := range warnings {
		resp.Warnings = append(resp.Warnings, TransferWarningResponse{BeneficiaryID: w.BeneficiaryID, Reason: w.Reason})
	}
	return resp
}
