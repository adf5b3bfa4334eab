package models

import "time"

// FiscalPeriod represents one accounting cycle row.
type FiscalPeriod struct {
	PeriodID      string    `json:"periodID"` // Primary Key (UUID)
	Name          string    `json:"name"`
	StartDate     time.Time `json:"startDate"`
	EndDate       time.Time `json:"endDate"`
	IsClosed      bool      `json:"isClosed"`
	OpeningCorpus int64     `json:"openingCorpus"` // minor units
	ClosingCorpus int64     `json:"closingCorpus"`
	CurrencyCode  string    `json:"currencyCode"`
	AuditFields
}
