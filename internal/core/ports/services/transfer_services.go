package services

import (
	"context"

	"github.com/amanahfin/waqf_ledger/internal/core/domain"
)

// BuiltBatch pairs a transfer batch with its lines and per-line warnings before
// persistence.
type BuiltBatch struct {
	Batch    domain.TransferBatch
	Lines    []domain.TransferLine
	Warnings []domain.TransferWarning
}

// TransferSvcFacade turns executed per-beneficiary payments into a settlement
// batch and reads batches back.
type TransferSvcFacade interface {
	// BuildBatch validates each beneficiary's bank identifier and assembles the
	// batch. Beneficiaries with missing or invalid identifiers are excluded with
	// a warning, never aborting the batch; totals are recomputed from the
	// included lines.
	BuildBatch(ctx context.Context, distribution domain.DistributionRequest, lines []domain.AllocationLine, roster map[string]domain.BeneficiaryShare, createdBy string) (*BuiltBatch, error)

	// GetBatchByDistribution retrieves the persisted batch for a distribution.
	GetBatchByDistribution(ctx context.Context, distributionID string) (*domain.TransferBatch, []domain.TransferLine, []domain.TransferWarning, error)
}
