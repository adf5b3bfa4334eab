package repositories

import (
	"context"

	"github.com/amanahfin/waqf_ledger/internal/core/domain"
)

// JournalReader defines read operations for journal entries.
type JournalReader interface {
	// FindEntriesByReference retrieves the journal entries grouped under one
	// reference (e.g. all entries of a distribution), with their lines.
	FindEntriesByReference(ctx context.Context, referenceType, referenceID string) ([]domain.JournalEntry, map[string][]domain.JournalLine, error)
}

// LedgerSummaryReader aggregates the ledger for period closing.
type LedgerSummaryReader interface {
	// SumPeriodLedger computes total revenue, total expenses and corpus deductions
	// for a fiscal period from posted journal lines. corpusAccountID identifies
	// the corpus retention account in the chart of accounts.
	SumPeriodLedger(ctx context.Context, fiscalPeriodID, corpusAccountID string) (*domain.PeriodLedgerSummary, error)
}

// JournalWriter defines write operations for standalone journal entries.
type JournalWriter interface {
	// SaveEntry inserts one balanced entry with its lines in a single
	// transaction. Execution-owned entries go through SaveExecution instead.
	SaveEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalLine) error
}

// JournalRepositoryFacade combines all journal repository interfaces.
type JournalRepositoryFacade interface {
	JournalReader
	JournalWriter
	LedgerSummaryReader
}
