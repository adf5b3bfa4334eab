package services

import (
	"context"

	"github.com/amanahfin/waqf_ledger/internal/core/domain"
)

// Notifier publishes domain events to downstream consumers. Publishing is
// fire-and-forget: the engine never waits for delivery, and a failed publish never
// fails the originating operation.
type Notifier interface {
	Publish(ctx context.Context, event domain.DomainEvent)
}
