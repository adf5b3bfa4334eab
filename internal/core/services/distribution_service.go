package services

import (
	"context"
	"errors"
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

var (
	ErrNotSimulatable = errors.New("distribution cannot be simulated in its current state")
	ErrNotApprovable  = errors.New("distribution must be simulated before approval")
	ErrNotExecutable  = errors.New("distribution must be approved before execution")
	ErrNotPublishable = errors.New("distribution must be executed before publishing")
	ErrNotCancellable = errors.New("distribution can only be cancelled before execution starts")
)

// ReferenceTypeDistribution groups all journal entries of one distribution under
// its ID.
const ReferenceTypeDistribution = "DISTRIBUTION"

// Journal template event names for the money movements of a distribution.
const (
	EventHeirPayment = "distribution_heir_payment"
	eventPrefix      = "distribution_"
)

// distributionService coordinates simulate -> approve -> execute -> publish,
// guaranteeing at most one executed distribution per fiscal period.
type distributionService struct {
	distRepo      portsrepo.DistributionRepositoryFacade
	periodRepo    portsrepo.FiscalPeriodRepositoryFacade
	rosterRepo    portsrepo.BeneficiaryRepositoryFacade
	deductionSvc  portssvc.DeductionSvcFacade
	allocationSvc portssvc.AllocationSvcFacade
	journalSvc    portssvc.JournalSvcFacade
	transferSvc   portssvc.TransferSvcFacade
	notifier      portssvc.Notifier
}

// NewDistributionService creates a new DistributionSvcFacade.
func NewDistributionService(
	distRepo portsrepo.DistributionRepositoryFacade,
	periodRepo portsrepo.FiscalPeriodRepositoryFacade,
	rosterRepo portsrepo.BeneficiaryRepositoryFacade,
	deductionSvc portssvc.DeductionSvcFacade,
	allocationSvc portssvc.AllocationSvcFacade,
	journalSvc portssvc.JournalSvcFacade,
	transferSvc portssvc.TransferSvcFacade,
	notifier portssvc.Notifier,
) portssvc.DistributionSvcFacade {
	return &distributionService{
		distRepo:      distRepo,
		periodRepo:    periodRepo,
		rosterRepo:    rosterRepo,
		deductionSvc:  deductionSvc,
		allocationSvc: allocationSvc,
		journalSvc:    journalSvc,
		transferSvc:   transferSvc,
		notifier:      notifier,
	}
}

var _ portssvc.DistributionSvcFacade = (*distributionService)(nil)

// CreateDraft opens a new draft distribution request for an open fiscal period.
func (s *distributionService) CreateDraft(ctx context.Context, req dto.CreateDistributionRequest, creatorUserID string) (*domain.DistributionRequest, error) {
	policy := req.Policy.ToDomain()
	if err := policy.Validate(); err != nil {
		return nil, err
	}

	period, err := s.periodRepo.FindPeriodByID(ctx, req.FiscalPeriodID)
	if err != nil {
		return nil, err
	}
	if period.IsClosed {
		return nil, fmt.Errorf("%w: period %s", apperrors.ErrPeriodClosed, period.PeriodID)
	}

	now := time.Now().UTC()
	distribution := domain.DistributionRequest{
		DistributionID: uuid.NewString(),
		FiscalPeriodID: req.FiscalPeriodID,
		GrossAmount:    domain.NewMoney(req.GrossAmount, req.CurrencyCode),
		Policy:         policy,
		Status:         domain.DistributionDraft,
		AuditFields:    domain.AuditFields{CreatedAt: now, CreatedBy: creatorUserID, LastUpdatedAt: now, LastUpdatedBy: creatorUserID},
	}
	if err := s.distRepo.SaveDistribution(ctx, distribution); err != nil {
		return nil, err
	}
	return &distribution, nil
}

// Simulate runs the deduction pipeline and share allocation against the current
// roster and persists the result as a disposable preview. Safe to repeat; any
// number of concurrent simulations only ever rewrite the preview.
func (s *distributionService) Simulate(ctx context.Context, distributionID string, userID string) (*domain.SimulationResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	distribution, err := s.distRepo.FindDistributionByID(ctx, distributionID)
	if err != nil {
		return nil, err
	}
	switch distribution.Status {
	case domain.DistributionDraft, domain.DistributionSimulated, domain.DistributionFailed:
	default:
		return nil, fmt.Errorf("%w: status is %s", ErrNotSimulatable, distribution.Status)
	}

	period, err := s.periodRepo.FindPeriodByID(ctx, distribution.FiscalPeriodID)
	if err != nil {
		return nil, err
	}
	if period.IsClosed {
		return nil, fmt.Errorf("%w: period %s", apperrors.ErrPeriodClosed, period.PeriodID)
	}

	result, err := s.runSimulation(ctx, distribution)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	distribution.Status = domain.DistributionSimulated
	distribution.NoHeirsFallback = result.NoHeirsFallback
	distribution.LastUpdatedAt = now
	distribution.LastUpdatedBy = userID
	if err := s.distRepo.SaveSimulation(ctx, *distribution, *result); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return nil, fmt.Errorf("%w: distribution %s advanced concurrently", ErrNotSimulatable, distributionID)
		}
		return nil, err
	}

	logger.Info("Distribution simulated",
		slog.String("distribution_id", distributionID),
		slog.Int64("heirs_pool", result.HeirsPool.Amount),
		slog.Int("lines", len(result.Lines)),
		slog.Bool("no_heirs_fallback", result.NoHeirsFallback),
	)
	return result, nil
}

// Approve records the external approval decision: SIMULATED -> APPROVED.
func (s *distributionService) Approve(ctx context.Context, distributionID string, approverUserID string) error {
	won, err := s.distRepo.MarkApproved(ctx, distributionID, approverUserID, time.Now().UTC())
	if err != nil {
		return err
	}
	if !won {
		return ErrNotApprovable
	}
	return nil
}

// Execute performs the money-moving path for an approved request. The sequence is:
// staleness re-validation against the approved snapshot, a conditional
// APPROVED -> EXECUTING transition that arbitrates concurrent attempts, then one
// atomic period-locked persistence of journal entries, allocation lines and the
// transfer batch. Any failure past the EXECUTING transition lands the request in
// FAILED with the causing error recorded; it is never left in EXECUTING.
func (s *distributionService) Execute(ctx context.Context, distributionID string, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	distribution, err := s.distRepo.FindDistributionByID(ctx, distributionID)
	if err != nil {
		return err
	}
	if distribution.Status != domain.DistributionApproved {
		return fmt.Errorf("%w: status is %s", ErrNotExecutable, distribution.Status)
	}

	period, err := s.periodRepo.FindPeriodByID(ctx, distribution.FiscalPeriodID)
	if err != nil {
		return err
	}
	if period.IsClosed {
		return fmt.Errorf("%w: period %s", apperrors.ErrPeriodClosed, period.PeriodID)
	}

	approved, err := s.distRepo.FindSimulation(ctx, distributionID)
	if err != nil {
		return err
	}
	fresh, err := s.runSimulation(ctx, distribution)
	if err != nil {
		return err
	}
	if !fresh.SameNumbers(*approved) {
		staleErr := fmt.Errorf("%w: roster or rates changed since approval of distribution %s", apperrors.ErrStaleApproval, distributionID)
		logger.Warn("Stale approval detected",
			slog.String("distribution_id", distributionID),
			slog.Int64("approved_pool", approved.HeirsPool.Amount),
			slog.Int64("fresh_pool", fresh.HeirsPool.Amount),
			slog.Int("approved_lines", len(approved.Lines)),
			slog.Int("fresh_lines", len(fresh.Lines)),
		)
		if _, failErr := s.distRepo.TransitionStatus(ctx, distributionID, domain.DistributionApproved, domain.DistributionFailed, staleErr.Error(), userID, time.Now().UTC()); failErr != nil {
			logger.Error("Failed to record stale-approval failure", slog.String("error", failErr.Error()))
		}
		return staleErr
	}

	// Conditional transition: exactly one concurrent caller wins.
	won, err := s.distRepo.TransitionStatus(ctx, distributionID, domain.DistributionApproved, domain.DistributionExecuting, "", userID, time.Now().UTC())
	if err != nil {
		return err
	}
	if !won {
		return fmt.Errorf("%w: distribution %s", apperrors.ErrExecutionInProgress, distributionID)
	}

	record, err := s.buildExecutionRecord(ctx, *distribution, *fresh, userID)
	if err == nil {
		err = s.distRepo.SaveExecution(ctx, *record)
	}
	if err != nil {
		if errors.Is(err, apperrors.ErrExecutionInProgress) {
			// The period lock is held by a concurrent execution or closing.
			// Surrender EXECUTING so a later attempt can proceed.
			if _, revertErr := s.distRepo.TransitionStatus(ctx, distributionID, domain.DistributionExecuting, domain.DistributionApproved, "", userID, time.Now().UTC()); revertErr != nil {
				logger.Error("Failed to revert executing distribution", slog.String("error", revertErr.Error()))
			}
			return err
		}
		logger.Error("Distribution execution failed",
			slog.String("distribution_id", distributionID),
			slog.Int64("gross", distribution.GrossAmount.Amount),
			slog.Int64("heirs_pool", fresh.HeirsPool.Amount),
			slog.String("error", err.Error()),
		)
		if _, failErr := s.distRepo.TransitionStatus(ctx, distributionID, domain.DistributionExecuting, domain.DistributionFailed, err.Error(), userID, time.Now().UTC()); failErr != nil {
			logger.Error("Failed to record execution failure", slog.String("error", failErr.Error()))
		}
		return err
	}

	logger.Info("Distribution executed",
		slog.String("distribution_id", distributionID),
		slog.String("fiscal_period_id", distribution.FiscalPeriodID),
		slog.Int64("gross", distribution.GrossAmount.Amount),
	)
	s.notifier.Publish(ctx, domain.DomainEvent{
		EventID:     uuid.NewString(),
		Name:        domain.EventDistributionExecuted,
		ReferenceID: distributionID,
		PeriodID:    distribution.FiscalPeriodID,
		OccurredAt:  time.Now().UTC(),
	})
	return nil
}

// Publish flips the disclosure flag on an executed distribution. Re-publishing is
// a no-op success; money is never re-touched.
func (s *distributionService) Publish(ctx context.Context, distributionID string, userID string) error {
	distribution, err := s.distRepo.FindDistributionByID(ctx, distributionID)
	if err != nil {
		return err
	}
	if distribution.Status == domain.DistributionPublished {
		return nil
	}
	won, err := s.distRepo.TransitionStatus(ctx, distributionID, domain.DistributionExecuted, domain.DistributionPublished, "", userID, time.Now().UTC())
	if err != nil {
		return err
	}
	if !won {
		return fmt.Errorf("%w: status is %s", ErrNotPublishable, distribution.Status)
	}
	s.notifier.Publish(ctx, domain.DomainEvent{
		EventID:     uuid.NewString(),
		Name:        domain.EventDistributionPublished,
		ReferenceID: distributionID,
		PeriodID:    distribution.FiscalPeriodID,
		OccurredAt:  time.Now().UTC(),
	})
	return nil
}

// Cancel marks a pre-execution request cancelled. Cancellation is a status change,
// never row removal, preserving the audit trail.
func (s *distributionService) Cancel(ctx context.Context, distributionID string, userID string) error {
	now := time.Now().UTC()
	for _, from := range []domain.DistributionStatus{domain.DistributionDraft, domain.DistributionSimulated} {
		won, err := s.distRepo.TransitionStatus(ctx, distributionID, from, domain.DistributionCancelled, "", userID, now)
		if err != nil {
			return err
		}
		if won {
			return nil
		}
	}
	return ErrNotCancellable
}

// GetDistribution retrieves a distribution request.
func (s *distributionService) GetDistribution(ctx context.Context, distributionID string) (*domain.DistributionRequest, error) {
	return s.distRepo.FindDistributionByID(ctx, distributionID)
}

// GetSimulation retrieves the persisted simulation snapshot.
func (s *distributionService) GetSimulation(ctx context.Context, distributionID string) (*domain.SimulationResult, error) {
	return s.distRepo.FindSimulation(ctx, distributionID)
}

// ListByPeriod retrieves all distribution requests for a fiscal period.
func (s *distributionService) ListByPeriod(ctx context.Context, fiscalPeriodID string) ([]domain.DistributionRequest, error) {
	return s.distRepo.ListDistributionsByPeriod(ctx, fiscalPeriodID)
}

// runSimulation computes deductions and heir allocations from current inputs.
func (s *distributionService) runSimulation(ctx context.Context, distribution *domain.DistributionRequest) (*domain.SimulationResult, error) {
	deducted, err := s.deductionSvc.Apply(ctx, distribution.GrossAmount, distribution.Policy)
	if err != nil {
		return nil, err
	}
	roster, err := s.rosterRepo.GetEligibleBeneficiaries(ctx, distribution.FiscalPeriodID)
	if err != nil {
		return nil, err
	}
	allocated, err := s.allocationSvc.Allocate(ctx, deducted.HeirsPool, roster, distribution.Policy)
	if err != nil {
		return nil, err
	}

	result := &domain.SimulationResult{
		Deductions:      deducted.Deductions,
		HeirsPool:       deducted.HeirsPool,
		Lines:           allocated.Lines,
		NoHeirsFallback: allocated.NoHeirsFallback,
	}
	for i := range result.Deductions {
		result.Deductions[i].LineID = uuid.NewString()
		result.Deductions[i].DistributionID = distribution.DistributionID
	}
	for i := range result.Lines {
		result.Lines[i].LineID = uuid.NewString()
		result.Lines[i].DistributionID = distribution.DistributionID
	}
	return result, nil
}

// buildExecutionRecord assembles everything a successful execution persists: one
// balanced journal entry per money movement (each deduction, each heir payment)
// and the settlement batch, all grouped under the distribution reference.
func (s *distributionService) buildExecutionRecord(ctx context.Context, distribution domain.DistributionRequest, result domain.SimulationResult, userID string) (*portsrepo.ExecutionRecord, error) {
	now := time.Now().UTC()

	var entries []domain.JournalEntry
	var entryLines []domain.JournalLine
	for _, deduction := range result.Deductions {
		if deduction.Amount.IsZero() {
			continue
		}
		built, err := s.journalSvc.BuildEntry(ctx, eventPrefix+deduction.Label, distribution.FiscalPeriodID, ReferenceTypeDistribution, distribution.DistributionID, deduction.Amount, now, userID)
		if err != nil {
			return nil, err
		}
		entries = append(entries, built.Entry)
		entryLines = append(entryLines, built.Lines...)
	}
	beneficiaryIDs := make([]string, 0, len(result.Lines))
	for _, line := range result.Lines {
		beneficiaryIDs = append(beneficiaryIDs, line.BeneficiaryID)
		if line.Amount.IsZero() {
			continue
		}
		built, err := s.journalSvc.BuildEntry(ctx, EventHeirPayment, distribution.FiscalPeriodID, ReferenceTypeDistribution, distribution.DistributionID, line.Amount, now, userID)
		if err != nil {
			return nil, err
		}
		entries = append(entries, built.Entry)
		entryLines = append(entryLines, built.Lines...)
	}

	roster, err := s.rosterRepo.FindBeneficiariesByIDs(ctx, beneficiaryIDs)
	if err != nil {
		return nil, err
	}
	builtBatch, err := s.transferSvc.BuildBatch(ctx, distribution, result.Lines, roster, userID)
	if err != nil {
		return nil, err
	}

	distribution.Status = domain.DistributionExecuted
	distribution.NoHeirsFallback = result.NoHeirsFallback
	distribution.LastUpdatedAt = now
	distribution.LastUpdatedBy = userID

	return &portsrepo.ExecutionRecord{
		Distribution: distribution,
		Deductions:   result.Deductions,
		Lines:        result.Lines,
		Entries:      entries,
		EntryLines:   entryLines,
		Batch:        builtBatch.Batch,
		BatchLines:   builtBatch.Lines,
		Warnings:     builtBatch.Warnings,
	}, nil
}
