package mapping

import (
	"github.com/amanahfin/waqf_ledger/internal/core/domain"
	"github.com/amanahfin/waqf_ledger/internal/models"
)

// ToModelJournalEntry converts a domain JournalEntry to a model JournalEntry.
func ToModelJournalEntry(d domain.JournalEntry) models.JournalEntry {
	return models.JournalEntry{
		JournalID:      d.JournalID,
		FiscalPeriodID: d.FiscalPeriodID,
		EntryDate:      d.EntryDate,
		Description:    d.Description,
		CurrencyCode:   d.CurrencyCode,
		ReferenceType:  d.ReferenceType,
		ReferenceID:    d.ReferenceID,
		Status:         models.JournalStatus(d.Status),
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainJournalEntry converts a model JournalEntry to a domain JournalEntry.
func ToDomainJournalEntry(m models.JournalEntry) domain.JournalEntry {
	return domain.JournalEntry{
		JournalID:      m.JournalID,
		FiscalPeriodID: m.FiscalPeriodID,
		EntryDate:      m.EntryDate,
		Description:    m.Description,
		CurrencyCode:   m.CurrencyCode,
		ReferenceType:  m.ReferenceType,
		ReferenceID:    m.ReferenceID,
		Status:         domain.JournalStatus(m.Status),
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelJournalLine converts a domain JournalLine to a model JournalLine.
func ToModelJournalLine(d domain.JournalLine) models.JournalLine {
	return models.JournalLine{
		LineID:       d.LineID,
		JournalID:    d.JournalID,
		AccountID:    d.AccountID,
		Amount:       d.Amount.Amount,
		CurrencyCode: d.Amount.CurrencyCode,
		Side:         models.TransactionType(d.Side),
		Notes:        d.Notes,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainJournalLine converts a model JournalLine to a domain JournalLine.
func ToDomainJournalLine(m models.JournalLine) domain.JournalLine {
	return domain.JournalLine{
		LineID:      m.LineID,
		JournalID:   m.JournalID,
		AccountID:   m.AccountID,
		Amount:      domain.NewMoney(m.Amount, m.CurrencyCode),
		Side:        domain.TransactionType(m.Side),
		Notes:       m.Notes,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}
