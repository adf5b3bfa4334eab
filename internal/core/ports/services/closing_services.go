package services

import (
	"context"

	"github.com/amanahfin/waqf_ledger/internal/core/domain"
	"github.com/amanahfin/waqf_ledger/internal/dto"
)

// ClosingSvcFacade closes fiscal periods and rolls the corpus forward.
type ClosingSvcFacade interface {
	// CreatePeriod opens a new fiscal period.
	CreatePeriod(ctx context.Context, req dto.CreatePeriodRequest, creatorUserID string) (*domain.FiscalPeriod, error)

	// GetPeriod retrieves a fiscal period.
	GetPeriod(ctx context.Context, periodID string) (*domain.FiscalPeriod, error)

	// ListPeriods retrieves all fiscal periods ordered by start date.
	ListPeriods(ctx context.Context) ([]domain.FiscalPeriod, error)

	// GetPeriodSummary aggregates revenue, expenses and corpus deductions for a
	// period without closing it.
	GetPeriodSummary(ctx context.Context, periodID string) (*domain.PeriodLedgerSummary, error)

	// ClosePeriod computes the closing corpus from the period ledger, marks the
	// period closed and creates the successor period whose opening corpus equals
	// the closing corpus, all atomically under the period lock. Fails with
	// apperrors.ErrPeriodClosed when already closed.
	ClosePeriod(ctx context.Context, periodID string, userID string) (*domain.FiscalPeriod, *domain.FiscalPeriod, error)
}
