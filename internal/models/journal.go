package models

import "time"

// JournalStatus indicates the state of a journal entry.
type JournalStatus string

const (
	Posted   JournalStatus = "POSTED"
	Reversed JournalStatus = "REVERSED"
)

// TransactionType is the side of a journal line.
type TransactionType string

const (
	Debit  TransactionType = "DEBIT"
	Credit TransactionType = "CREDIT"
)

// JournalEntry represents a single, balanced financial event composed of multiple
// journal lines.
type JournalEntry struct {
	JournalID      string        `json:"journalID"` // Primary Key (UUID)
	FiscalPeriodID string        `json:"fiscalPeriodID"`
	EntryDate      time.Time     `json:"entryDate"`
	Description    string        `json:"description"`
	CurrencyCode   string        `json:"currencyCode"`
	ReferenceType  string        `json:"referenceType"`
	ReferenceID    string        `json:"referenceID"`
	Status         JournalStatus `json:"status"`
	AuditFields
}

// JournalLine represents one debit or credit leg of a journal entry.
type JournalLine struct {
	LineID       string          `json:"lineID"` // Primary Key (UUID)
	JournalID    string          `json:"journalID"`
	AccountID    string          `json:"accountID"`
	Amount       int64           `json:"amount"` // minor units, always positive
	CurrencyCode string          `json:"currencyCode"`
	Side         TransactionType `json:"side"`
	Notes        string          `json:"notes"`
	AuditFields
}
