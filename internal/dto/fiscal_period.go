package dto

import (
	"time"

	"github.com/amanahfin/waqf_ledger/internal/core/domain"
)

// CreatePeriodRequest opens a new fiscal period.
type CreatePeriodRequest struct {
	Name          string    `json:"name" binding:"required"`
	StartDate     time.Time `json:"startDate" binding:"required"`
	EndDate       time.Time `json:"endDate" binding:"required"`
	CurrencyCode  string    `json:"currencyCode" binding:"required,len=3"`
	OpeningCorpus int64     `json:"openingCorpus" binding:"gte=0"` // minor units
}

// PeriodResponse describes a fiscal period.
type PeriodResponse struct {
	PeriodID      string    `json:"periodID"`
	Name          string    `json:"name"`
	StartDate     time.Time `json:"startDate"`
	EndDate       time.Time `json:"endDate"`
	IsClosed      bool      `json:"isClosed"`
	OpeningCorpus int64     `json:"openingCorpus"`
	ClosingCorpus int64     `json:"closingCorpus"`
	CurrencyCode  string    `json:"currencyCode"`
}

// ToPeriodResponse maps a domain fiscal period to its response shape.
func ToPeriodResponse(p domain.FiscalPeriod) PeriodResponse {
	return PeriodResponse{
		PeriodID:      p.PeriodID,
		Name:          p.Name,
		StartDate:     p.StartDate,
		EndDate:       p.EndDate,
		IsClosed:      p.IsClosed,
		OpeningCorpus: p.OpeningCorpus.Amount,
		ClosingCorpus: p.ClosingCorpus.Amount,
		CurrencyCode:  p.OpeningCorpus.CurrencyCode,
	}
}

// PeriodSummaryResponse reports the aggregated ledger totals of a fiscal period.
type PeriodSummaryResponse struct {
	PeriodID         string `json:"periodID"`
	TotalRevenue     int64  `json:"totalRevenue"`
	TotalExpenses    int64  `json:"totalExpenses"`
	CorpusDeductions int64  `json:"corpusDeductions"`
	NetIncome        int64  `json:"netIncome"`
	CurrencyCode     string `json:"currencyCode"`
}

// ToPeriodSummaryResponse maps a ledger summary to its response shape.
func ToPeriodSummaryResponse(periodID string, s domain.PeriodLedgerSummary) PeriodSummaryResponse {
	return PeriodSummaryResponse{
		PeriodID:         periodID,
		TotalRevenue:     s.TotalRevenue.Amount,
		TotalExpenses:    s.TotalExpenses.Amount,
		CorpusDeductions: s.CorpusDeductions.Amount,
		NetIncome:        s.TotalRevenue.Amount - s.TotalExpenses.Amount,
		CurrencyCode:     s.TotalRevenue.CurrencyCode,
	}
}

// ClosePeriodResponse reports the outcome of closing a fiscal period.
type ClosePeriodResponse struct {
	ClosedPeriod PeriodResponse `json:"closedPeriod"`
	NextPeriod   PeriodResponse `json:"nextPeriod"`
}
