package repositories

import (
	"context"

	"github.com/amanahfin/waqf_ledger/internal/core/domain"
)

// TransferReader defines read operations for settlement batches.
type TransferReader interface {
	// FindBatchByDistributionID retrieves the transfer batch, its lines and any
	// per-line warnings for an executed distribution.
	FindBatchByDistributionID(ctx context.Context, distributionID string) (*domain.TransferBatch, []domain.TransferLine, []domain.TransferWarning, error)
}

// TransferRepositoryFacade combines all transfer repository interfaces.
type TransferRepositoryFacade interface {
	TransferReader
}
