package domain

import "time"

// Domain event names emitted by the engine. Delivery is fire-and-forget; the
// engine never waits on subscribers.
const (
	EventDistributionExecuted  = "distribution_executed"
	EventDistributionPublished = "distribution_published"
	EventFiscalPeriodClosed    = "fiscal_period_closed"
)

// DomainEvent is an outbound notification about a state change the engine has
// already durably recorded.
type DomainEvent struct {
	EventID     string    `json:"eventID"`
	Name        string    `json:"name"`
	ReferenceID string    `json:"referenceID"` // distribution or period ID
	PeriodID    string    `json:"periodID"`
	OccurredAt  time.Time `json:"occurredAt"`
}
