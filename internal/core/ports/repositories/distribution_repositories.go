package repositories

import (
	"context"
	"time"

	"github.com/amanahfin/waqf_ledger/internal/core/domain"
)

// ExecutionRecord bundles everything a successful execution must persist
// atomically: the allocation lines and deductions frozen at execution, the balanced
// journal entries for every money movement, and the settlement batch.
type ExecutionRecord struct {
	Distribution domain.DistributionRequest
	Deductions   []domain.Deduction
	Lines        []domain.AllocationLine
	Entries      []domain.JournalEntry
	EntryLines   []domain.JournalLine
	Batch        domain.TransferBatch
	BatchLines   []domain.TransferLine
	Warnings     []domain.TransferWarning
}

// DistributionReader defines read operations for distribution requests and their
// owned records.
type DistributionReader interface {
	// FindDistributionByID retrieves a distribution request by ID.
	FindDistributionByID(ctx context.Context, distributionID string) (*domain.DistributionRequest, error)

	// ListDistributionsByPeriod retrieves all distribution requests for a fiscal
	// period, newest first.
	ListDistributionsByPeriod(ctx context.Context, fiscalPeriodID string) ([]domain.DistributionRequest, error)

	// FindSimulation retrieves the persisted simulation snapshot (deductions plus
	// allocation lines) for a distribution, ordered by ascending beneficiary ID.
	FindSimulation(ctx context.Context, distributionID string) (*domain.SimulationResult, error)
}

// DistributionWriter defines write operations for distribution requests.
type DistributionWriter interface {
	// SaveDistribution inserts a new distribution request.
	SaveDistribution(ctx context.Context, distribution domain.DistributionRequest) error

	// SaveSimulation replaces the disposable simulation preview for a distribution
	// and moves it to SIMULATED. Previews may be recomputed any number of times
	// before approval; executed artifacts are never replaced. Returns
	// apperrors.ErrConflict when a concurrent approval or execution advanced the
	// status first, leaving that status and its rows untouched.
	SaveSimulation(ctx context.Context, distribution domain.DistributionRequest, result domain.SimulationResult) error

	// TransitionStatus moves a distribution from one status to another only if it
	// currently holds the expected status, reporting whether the transition won.
	// This conditional update is what arbitrates concurrent execution attempts.
	TransitionStatus(ctx context.Context, distributionID string, from, to domain.DistributionStatus, failureReason string, updatedBy string, updatedAt time.Time) (bool, error)

	// MarkApproved transitions SIMULATED -> APPROVED recording the approver.
	MarkApproved(ctx context.Context, distributionID string, approvedBy string, updatedAt time.Time) (bool, error)
}

// DistributionExecutor persists a full execution atomically under the fiscal-period
// lock. Implementations must guarantee that either every record in the
// ExecutionRecord is durably written and the request reaches EXECUTED, or nothing
// is written at all.
type DistributionExecutor interface {
	// SaveExecution writes the execution record in one transaction guarded by a
	// period-scoped advisory lock. Returns apperrors.ErrExecutionInProgress when
	// the lock is contended, apperrors.ErrPeriodClosed when the period closed in
	// the meantime, and apperrors.ErrDuplicate when another distribution already
	// executed for the period.
	SaveExecution(ctx context.Context, record ExecutionRecord) error
}

// DistributionRepositoryFacade combines all distribution repository interfaces.
type DistributionRepositoryFacade interface {
	DistributionReader
	DistributionWriter
	DistributionExecutor
}
