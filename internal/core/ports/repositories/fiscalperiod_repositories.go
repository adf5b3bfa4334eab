package repositories

import (
	"context"

	"github.com/amanahfin/waqf_ledger/internal/core/domain"
)

// FiscalPeriodReader defines read operations for fiscal periods.
type FiscalPeriodReader interface {
	// FindPeriodByID retrieves a fiscal period by ID.
	FindPeriodByID(ctx context.Context, periodID string) (*domain.FiscalPeriod, error)

	// ListPeriods retrieves all fiscal periods ordered by start date.
	ListPeriods(ctx context.Context) ([]domain.FiscalPeriod, error)
}

// PeriodCloser derives the closed period and its successor from the ledger
// summary. It runs inside the closing transaction, after the period lock is
// held, so the summary can never go stale before the close commits.
type PeriodCloser func(summary domain.PeriodLedgerSummary) (current domain.FiscalPeriod, next domain.FiscalPeriod)

// FiscalPeriodWriter defines write operations for fiscal periods.
type FiscalPeriodWriter interface {
	// SavePeriod inserts a new fiscal period.
	SavePeriod(ctx context.Context, period domain.FiscalPeriod) error

	// ClosePeriod aggregates the period ledger and closes the period in one
	// transaction, under the same period-scoped advisory lock execution uses.
	// The aggregated summary is handed to closeFn; the current period it returns
	// is marked closed with its closing corpus and next is created alongside.
	// Returns apperrors.ErrPeriodClosed if the period is already closed and
	// apperrors.ErrExecutionInProgress when the lock is contended.
	ClosePeriod(ctx context.Context, periodID string, corpusAccountID string, closeFn PeriodCloser) error
}

// FiscalPeriodRepositoryFacade combines all fiscal period repository interfaces.
type FiscalPeriodRepositoryFacade interface {
	FiscalPeriodReader
	FiscalPeriodWriter
}
