package mapping

import (
	"github.com/amanahfin/waqf_ledger/internal/core/domain"
	"github.com/amanahfin/waqf_ledger/internal/models"
)

// ToModelTransferBatch converts a domain TransferBatch to its model shape.
func ToModelTransferBatch(d domain.TransferBatch) models.TransferBatch {
	return models.TransferBatch{
		BatchID:        d.BatchID,
		DistributionID: d.DistributionID,
		TotalAmount:    d.TotalAmount.Amount,
		TotalCount:     d.TotalCount,
		CurrencyCode:   d.TotalAmount.CurrencyCode,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainTransferBatch converts a model TransferBatch to its domain shape.
func ToDomainTransferBatch(m models.TransferBatch) domain.TransferBatch {
	return domain.TransferBatch{
		BatchID:        m.BatchID,
		DistributionID: m.DistributionID,
		TotalAmount:    domain.NewMoney(m.TotalAmount, m.CurrencyCode),
		TotalCount:     m.TotalCount,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelTransferLine converts a domain TransferLine to its model shape.
func ToModelTransferLine(d domain.TransferLine) models.TransferLine {
	return models.TransferLine{
		LineID:        d.LineID,
		BatchID:       d.BatchID,
		BeneficiaryID: d.BeneficiaryID,
		IBAN:          d.IBAN,
		Amount:        d.Amount.Amount,
		CurrencyCode:  d.Amount.CurrencyCode,
		Reference:     d.Reference,
	}
}

// ToDomainTransferLine converts a model TransferLine to its domain shape.
func ToDomainTransferLine(m models.TransferLine) domain.TransferLine {
	return domain.TransferLine{
		LineID:        m.LineID,
		BatchID:       m.BatchID,
		BeneficiaryID: m.BeneficiaryID,
		IBAN:          m.IBAN,
		Amount:        domain.NewMoney(m.Amount, m.CurrencyCode),
		Reference:     m.Reference,
	}
}
