package mapping

import (
	"github.com/amanahfin/waqf_ledger/internal/core/domain"
	"github.com/amanahfin/waqf_ledger/internal/models"
)

// ToModelDistribution converts a domain DistributionRequest to a model
// Distribution, denormalising the policy onto the row.
func ToModelDistribution(d domain.DistributionRequest) models.Distribution {
	return models.Distribution{
		DistributionID:   d.DistributionID,
		FiscalPeriodID:   d.FiscalPeriodID,
		GrossAmount:      d.GrossAmount.Amount,
		CurrencyCode:     d.GrossAmount.CurrencyCode,
		PolicyKind:       string(d.Policy.Kind),
		CustodianPct:     d.Policy.CustodianPct,
		CharityPct:       d.Policy.CharityPct,
		CorpusPct:        d.Policy.CorpusPct,
		DevelopmentPct:   d.Policy.DevelopmentPct,
		WivesFractionNum: d.Policy.WivesFractionNum,
		WivesFractionDen: d.Policy.WivesFractionDen,
		Status:           string(d.Status),
		FailureReason:    d.FailureReason,
		NoHeirsFallback:  d.NoHeirsFallback,
		ApprovedBy:       d.ApprovedBy,
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainDistribution converts a model Distribution to a domain
// DistributionRequest.
func ToDomainDistribution(m models.Distribution) domain.DistributionRequest {
	return domain.DistributionRequest{
		DistributionID: m.DistributionID,
		FiscalPeriodID: m.FiscalPeriodID,
		GrossAmount:    domain.NewMoney(m.GrossAmount, m.CurrencyCode),
		Policy: domain.DistributionPolicy{
			Kind:             domain.PolicyKind(m.PolicyKind),
			CustodianPct:     m.CustodianPct,
			CharityPct:       m.CharityPct,
			CorpusPct:        m.CorpusPct,
			DevelopmentPct:   m.DevelopmentPct,
			WivesFractionNum: m.WivesFractionNum,
			WivesFractionDen: m.WivesFractionDen,
		},
		Status:          domain.DistributionStatus(m.Status),
		FailureReason:   m.FailureReason,
		NoHeirsFallback: m.NoHeirsFallback,
		ApprovedBy:      m.ApprovedBy,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelAllocationLine converts a domain AllocationLine to its model shape.
func ToModelAllocationLine(d domain.AllocationLine, isPreview bool) models.AllocationLine {
	return models.AllocationLine{
		LineID:         d.LineID,
		DistributionID: d.DistributionID,
		BeneficiaryID:  d.BeneficiaryID,
		Amount:         d.Amount.Amount,
		CurrencyCode:   d.Amount.CurrencyCode,
		ShareFraction:  d.ShareFraction,
		IsPreview:      isPreview,
	}
}

// ToDomainAllocationLine converts a model AllocationLine to its domain shape.
func ToDomainAllocationLine(m models.AllocationLine) domain.AllocationLine {
	return domain.AllocationLine{
		LineID:         m.LineID,
		DistributionID: m.DistributionID,
		BeneficiaryID:  m.BeneficiaryID,
		Amount:         domain.NewMoney(m.Amount, m.CurrencyCode),
		ShareFraction:  m.ShareFraction,
	}
}

// ToModelDeductionLine converts a domain Deduction to its model shape.
func ToModelDeductionLine(d domain.Deduction, isPreview bool) models.DeductionLine {
	return models.DeductionLine{
		LineID:         d.LineID,
		DistributionID: d.DistributionID,
		Label:          d.Label,
		Percent:        d.Percent,
		Amount:         d.Amount.Amount,
		CurrencyCode:   d.Amount.CurrencyCode,
		IsPreview:      isPreview,
	}
}

// ToDomainDeductionLine converts a model DeductionLine to its domain shape.
func ToDomainDeductionLine(m models.DeductionLine) domain.Deduction {
	return domain.Deduction{
		LineID:         m.LineID,
		DistributionID: m.DistributionID,
		Label:          m.Label,
		Percent:        m.Percent,
		Amount:         domain.NewMoney(m.Amount, m.CurrencyCode),
	}
}
