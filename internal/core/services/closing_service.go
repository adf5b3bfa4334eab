package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/amanahfin/waqf_ledger/internal/apperrors"
	"github.com/amanahfin/waqf_ledger/internal/core/domain"
	portsrepo "github.com/amanahfin/waqf_ledger/internal/core/ports/repositories"
	portssvc "github.com/amanahfin/waqf_ledger/internal/core/ports/services"
	"github.com/amanahfin/waqf_ledger/internal/dto"
	"github.com/amanahfin/waqf_ledger/internal/middleware"
)

// closingService computes closing balances for a fiscal period, rolls the corpus
// forward into the successor period, and marks the period immutable.
type closingService struct {
	periodRepo      portsrepo.FiscalPeriodRepositoryFacade
	journalRepo     portsrepo.JournalRepositoryFacade
	notifier        portssvc.Notifier
	corpusAccountID string
}

// NewClosingService creates a new ClosingSvcFacade.
func NewClosingService(periodRepo portsrepo.FiscalPeriodRepositoryFacade, journalRepo portsrepo.JournalRepositoryFacade, notifier portssvc.Notifier, corpusAccountID string) portssvc.ClosingSvcFacade {
	return &closingService{
		periodRepo:      periodRepo,
		journalRepo:     journalRepo,
		notifier:        notifier,
		corpusAccountID: corpusAccountID,
	}
}

var _ portssvc.ClosingSvcFacade = (*closingService)(nil)

// CreatePeriod opens a new fiscal period.
func (s *closingService) CreatePeriod(ctx context.Context, req dto.CreatePeriodRequest, creatorUserID string) (*domain.FiscalPeriod, error) {
	if !req.EndDate.After(req.StartDate) {
		return nil, fmt.Errorf("%w: period end must be after start", apperrors.ErrValidation)
	}
	now := time.Now().UTC()
	period := domain.FiscalPeriod{
		PeriodID:      uuid.NewString(),
		Name:          req.Name,
		StartDate:     req.StartDate,
		EndDate:       req.EndDate,
		OpeningCorpus: domain.NewMoney(req.OpeningCorpus, req.CurrencyCode),
		ClosingCorpus: domain.NewMoney(0, req.CurrencyCode),
		AuditFields:   domain.AuditFields{CreatedAt: now, CreatedBy: creatorUserID, LastUpdatedAt: now, LastUpdatedBy: creatorUserID},
	}
	if err := s.periodRepo.SavePeriod(ctx, period); err != nil {
		return nil, err
	}
	return &period, nil
}

// GetPeriod retrieves a fiscal period.
func (s *closingService) GetPeriod(ctx context.Context, periodID string) (*domain.FiscalPeriod, error) {
	return s.periodRepo.FindPeriodByID(ctx, periodID)
}

// ListPeriods retrieves all fiscal periods ordered by start date.
func (s *closingService) ListPeriods(ctx context.Context) ([]domain.FiscalPeriod, error) {
	return s.periodRepo.ListPeriods(ctx)
}

// GetPeriodSummary aggregates the period ledger without closing the period, a
// read-only preview of the numbers closing would commit.
func (s *closingService) GetPeriodSummary(ctx context.Context, periodID string) (*domain.PeriodLedgerSummary, error) {
	if _, err := s.periodRepo.FindPeriodByID(ctx, periodID); err != nil {
		return nil, err
	}
	return s.journalRepo.SumPeriodLedger(ctx, periodID, s.corpusAccountID)
}

// ClosePeriod derives the closing corpus from the period ledger and rolls it
// forward:
//
//	closing = opening + corpus deductions this period + retained net income
//
// where net income is period revenue minus period expenses (which already include
// every executed distribution's deductions and heir payments). The ledger is
// aggregated by the repository inside the closing transaction, after the period
// lock execution uses is held, so the committed numbers can never miss a
// concurrently committing distribution.
func (s *closingService) ClosePeriod(ctx context.Context, periodID string, userID string) (*domain.FiscalPeriod, *domain.FiscalPeriod, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	period, err := s.periodRepo.FindPeriodByID(ctx, periodID)
	if err != nil {
		return nil, nil, err
	}
	if period.IsClosed {
		return nil, nil, fmt.Errorf("%w: period %s", apperrors.ErrPeriodClosed, periodID)
	}

	now := time.Now().UTC()
	var current, next domain.FiscalPeriod
	var ledger domain.PeriodLedgerSummary
	closeFn := func(summary domain.PeriodLedgerSummary) (domain.FiscalPeriod, domain.FiscalPeriod) {
		ledger = summary
		netIncome := summary.TotalRevenue.Amount - summary.TotalExpenses.Amount
		closingCorpus := period.OpeningCorpus.Amount + summary.CorpusDeductions.Amount + netIncome

		current = *period
		current.IsClosed = true
		current.ClosingCorpus = domain.NewMoney(closingCorpus, period.OpeningCorpus.CurrencyCode)
		current.LastUpdatedAt = now
		current.LastUpdatedBy = userID

		nextStart := period.EndDate.AddDate(0, 0, 1)
		next = domain.FiscalPeriod{
			PeriodID:      uuid.NewString(),
			Name:          fmt.Sprintf("FY%d", nextStart.Year()),
			StartDate:     nextStart,
			EndDate:       nextStart.AddDate(1, 0, -1),
			OpeningCorpus: current.ClosingCorpus,
			ClosingCorpus: domain.NewMoney(0, period.OpeningCorpus.CurrencyCode),
			AuditFields:   domain.AuditFields{CreatedAt: now, CreatedBy: userID, LastUpdatedAt: now, LastUpdatedBy: userID},
		}
		return current, next
	}

	if err := s.periodRepo.ClosePeriod(ctx, periodID, s.corpusAccountID, closeFn); err != nil {
		return nil, nil, err
	}

	logger.Info("Fiscal period closed",
		slog.String("period_id", periodID),
		slog.Int64("revenue", ledger.TotalRevenue.Amount),
		slog.Int64("expenses", ledger.TotalExpenses.Amount),
		slog.Int64("corpus_deductions", ledger.CorpusDeductions.Amount),
		slog.Int64("closing_corpus", current.ClosingCorpus.Amount),
		slog.String("next_period_id", next.PeriodID),
	)
	s.notifier.Publish(ctx, domain.DomainEvent{
		EventID:     uuid.NewString(),
		Name:        domain.EventFiscalPeriodClosed,
		ReferenceID: periodID,
		PeriodID:    periodID,
		OccurredAt:  now,
	})
	return &current, &next, nil
}
