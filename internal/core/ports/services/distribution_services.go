package services

import (
	"context"

	"github.com/amanahfin/waqf_ledger/internal/core/domain"
	"github.com/amanahfin/waqf_ledger/internal/dto"
)

// DistributionSvcFacade orchestrates the distribution lifecycle:
// draft -> simulated -> approved -> executing -> executed | failed, plus the later
// idempotent published flip and pre-execution cancellation.
type DistributionSvcFacade interface {
	// CreateDraft opens a new draft distribution request for a fiscal period.
	CreateDraft(ctx context.Context, req dto.CreateDistributionRequest, creatorUserID string) (*domain.DistributionRequest, error)

	// Simulate runs the deduction pipeline and share allocation, persists the
	// result as a disposable preview, and moves the request to SIMULATED.
	// Repeatable any number of times before approval.
	Simulate(ctx context.Context, distributionID string, userID string) (*domain.SimulationResult, error)

	// Approve records the external approval decision, SIMULATED -> APPROVED.
	Approve(ctx context.Context, distributionID string, approverUserID string) error

	// Execute performs the money-moving path for an APPROVED request: staleness
	// re-validation, period-locked atomic persistence of journal entries,
	// allocation lines and the transfer batch, then EXECUTED.
	Execute(ctx context.Context, distributionID string, userID string) error

	// Publish flips the disclosure flag on an EXECUTED distribution. Idempotent;
	// never re-touches money.
	Publish(ctx context.Context, distributionID string, userID string) error

	// Cancel marks a DRAFT or SIMULATED request cancelled. Requests that have
	// entered execution always run to a terminal state.
	Cancel(ctx context.Context, distributionID string, userID string) error

	// GetDistribution retrieves a distribution request.
	GetDistribution(ctx context.Context, distributionID string) (*domain.DistributionRequest, error)

	// GetSimulation retrieves the persisted simulation snapshot.
	GetSimulation(ctx context.Context, distributionID string) (*domain.SimulationResult, error)

	// ListByPeriod retrieves all distribution requests for a fiscal period.
	ListByPeriod(ctx context.Context, fiscalPeriodID string) ([]domain.DistributionRequest, error)
}
