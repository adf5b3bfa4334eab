package domain

import "time"

// FiscalPeriod is one accounting cycle of the endowment. Once closed it is
// immutable: no distributions, journal entries or allocation lines may reference it
// again, and its closing corpus becomes the next period's opening corpus exactly
// once.
type FiscalPeriod struct {
	PeriodID      string    `json:"periodID"` // Primary Key (UUID)
	Name          string    `json:"name"`     // e.g. "1447H" or "FY2026"
	StartDate     time.Time `json:"startDate"`
	EndDate       time.Time `json:"endDate"`
	IsClosed      bool      `json:"isClosed"`
	OpeningCorpus Money     `json:"openingCorpus"`
	ClosingCorpus Money     `json:"closingCorpus"` // zero until the period closes
	AuditFields
}
