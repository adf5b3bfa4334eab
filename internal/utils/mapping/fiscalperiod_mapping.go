package mapping

import (
	"github.com/amanahfin/waqf_ledger/internal/core/domain"
	"github.com/amanahfin/waqf_ledger/internal/models"
)

// ToModelFiscalPeriod converts a domain FiscalPeriod to a model FiscalPeriod.
func ToModelFiscalPeriod(d domain.FiscalPeriod) models.FiscalPeriod {
	return models.FiscalPeriod{
		PeriodID:      d.PeriodID,
		Name:          d.Name,
		StartDate:     d.StartDate,
		EndDate:       d.EndDate,
		IsClosed:      d.IsClosed,
		OpeningCorpus: d.OpeningCorpus.Amount,
		ClosingCorpus: d.ClosingCorpus.Amount,
		CurrencyCode:  d.OpeningCorpus.CurrencyCode,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainFiscalPeriod converts a model FiscalPeriod to a domain FiscalPeriod.
func ToDomainFiscalPeriod(m models.FiscalPeriod) domain.FiscalPeriod {
	return domain.FiscalPeriod{
		PeriodID:      m.PeriodID,
		Name:          m.Name,
		StartDate:     m.StartDate,
		EndDate:       m.EndDate,
		IsClosed:      m.IsClosed,
		OpeningCorpus: domain.NewMoney(m.OpeningCorpus, m.CurrencyCode),
		ClosingCorpus: domain.NewMoney(m.ClosingCorpus, m.CurrencyCode),
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}
