package dto

import (
	"time"

	"github.com/amanahfin/waqf_ledger/internal/core/domain"
)

// RecordEventRequest posts a standalone business event to the ledger via its
// configured journal template.
type RecordEventRequest struct {
	EventName      string    `json:"eventName" binding:"required"`
	FiscalPeriodID string    `json:"fiscalPeriodID" binding:"required"`
	ReferenceType  string    `json:"referenceType" binding:"required"`
	ReferenceID    string    `json:"referenceID" binding:"required"`
	Amount         int64     `json:"amount" binding:"required,gt=0"` // minor units
	CurrencyCode   string    `json:"currencyCode" binding:"required,len=3"`
	EntryDate      time.Time `json:"entryDate" binding:"required"`
}

// JournalLineResponse is one debit or credit leg of an entry.
type JournalLineResponse struct {
	LineID    string `json:"lineID"`
	AccountID string `json:"accountID"`
	Amount    int64  `json:"amount"`
	Side      string `json:"side"`
	Notes     string `json:"notes,omitempty"`
}

// JournalEntryResponse describes a posted journal entry with its lines.
type JournalEntryResponse struct {
	JournalID      string                `json:"journalID"`
	FiscalPeriodID string                `json:"fiscalPeriodID"`
	EntryDate      time.Time             `json:"entryDate"`
	Description    string                `json:"description,omitempty"`
	CurrencyCode   string                `json:"currencyCode"`
	ReferenceType  string                `json:"referenceType"`
	ReferenceID    string                `json:"referenceID"`
	Status         string                `json:"status"`
	Lines          []JournalLineResponse `json:"lines"`
}

// ToJournalEntryResponse maps an entry and its lines to the response shape.
func ToJournalEntryResponse(entry domain.JournalEntry, lines []domain.JournalLine) JournalEntryResponse {
	resp := JournalEntryResponse{
		JournalID:      entry.JournalID,
		FiscalPeriodID: entry.FiscalPeriodID,
		EntryDate:      entry.EntryDate,
		Description:    entry.Description,
		CurrencyCode:   entry.CurrencyCode,
		ReferenceType:  entry.ReferenceType,
		ReferenceID:    entry.ReferenceID,
		Status:         string(entry.Status),
		Lines:          make([]JournalLineResponse, 0, len(lines)),
	}
	for _, line := range lines {
		resp.Lines = append(resp.Lines, JournalLineResponse{
			LineID:    line.LineID,
			AccountID: line.AccountID,
			Amount:    line.Amount.Amount,
			Side:      string(line.Side),
			Notes:     line.Notes,
		})
	}
	return resp
}
