package services

import (
	"context"
	"time"

	"github.com/amanahfin/waqf_ledger/internal/core/domain"
)

// TemplateProvider resolves the journal template configured for a business event.
// Templates are externally configured, versioned input; the engine never writes
// them.
type TemplateProvider interface {
	// GetJournalTemplate returns the template for an event, or
	// apperrors.ErrTemplateNotFound.
	GetJournalTemplate(ctx context.Context, eventName string) (*domain.JournalTemplate, error)
}

// BuiltEntry pairs a journal entry with its lines before persistence.
type BuiltEntry struct {
	Entry domain.JournalEntry
	Lines []domain.JournalLine
}

// JournalSvcFacade builds balanced journal entries from business events and
// reads posted entries back.
type JournalSvcFacade interface {
	// BuildEntry maps one money movement to a balanced journal entry using the
	// event's template: one debit line and one or more credit lines whose total
	// equals the debit. Fails with apperrors.ErrTemplateNotFound or, defensively,
	// apperrors.ErrUnbalancedEntry.
	BuildEntry(ctx context.Context, eventName string, fiscalPeriodID string, referenceType, referenceID string, amount domain.Money, entryDate time.Time, createdBy string) (*BuiltEntry, error)

	// RecordEvent builds the entry for a standalone business event (e.g. a
	// rental payment received) and persists it immediately.
	RecordEvent(ctx context.Context, eventName string, fiscalPeriodID string, referenceType, referenceID string, amount domain.Money, entryDate time.Time, createdBy string) (*BuiltEntry, error)

	// GetEntriesByReference retrieves the posted entries grouped under one
	// reference with their lines.
	GetEntriesByReference(ctx context.Context, referenceType, referenceID string) ([]domain.JournalEntry, map[string][]domain.JournalLine, error)
}
