package mapping

import (
	"github.com/amanahfin/waqf_ledger/internal/core/domain"
	"github.com/amanahfin/waqf_ledger/internal/models"
)

// ToModelBeneficiary converts a domain BeneficiaryShare to a model Beneficiary.
func ToModelBeneficiary(d domain.BeneficiaryShare) models.Beneficiary {
	return models.Beneficiary{
		BeneficiaryID:  d.BeneficiaryID,
		Name:           d.Name,
		Relationship:   string(d.Relationship),
		Weight:         d.Weight,
		Eligible:       d.Eligible,
		BankIdentifier: d.BankIdentifier,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainBeneficiary converts a model Beneficiary to a domain BeneficiaryShare.
func ToDomainBeneficiary(m models.Beneficiary) domain.BeneficiaryShare {
	return domain.BeneficiaryShare{
		BeneficiaryID:  m.BeneficiaryID,
		Name:           m.Name,
		Relationship:   domain.RelationshipClass(m.Relationship),
		Weight:         m.Weight,
		Eligible:       m.Eligible,
		BankIdentifier: m.BankIdentifier,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}
