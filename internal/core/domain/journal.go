package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalStatus indicates the state of a journal entry.
type JournalStatus string

const (
	Posted   JournalStatus = "POSTED"
	Reversed JournalStatus = "REVERSED"
)

// TransactionType indicates whether a journal line is a Debit or a Credit.
type TransactionType string

const (
	Debit  TransactionType = "DEBIT"
	Credit TransactionType = "CREDIT"
)

// JournalEntry is a single balanced double-entry record. The sum of its debit
// lines always equals the sum of its credit lines, with no tolerance.
type JournalEntry struct {
	JournalID      string        `json:"journalID"` // Primary Key (UUID)
	FiscalPeriodID string        `json:"fiscalPeriodID"`
	EntryDate      time.Time     `json:"entryDate"`
	Description    string        `json:"description"`
	CurrencyCode   string        `json:"currencyCode"`
	ReferenceType  string        `json:"referenceType"` // e.g. DISTRIBUTION, RENTAL_PAYMENT
	ReferenceID    string        `json:"referenceID"`   // groups the per-movement entries of one distribution
	Status         JournalStatus `json:"status"`
	AuditFields
}

// JournalLine is a single debit or credit against one account within a journal
// entry. Amounts are always positive; the side carries the sign.
type JournalLine struct {
	LineID       string          `json:"lineID"` // Primary Key (UUID)
	JournalID    string          `json:"journalID"`
	AccountID    string          `json:"accountID"`
	Amount       Money           `json:"amount"`
	Side         TransactionType `json:"side"`
	Notes        string          `json:"notes"`
	AuditFields
}

// JournalTemplate maps a business event to the accounts its journal entry posts
// against. Credits may be split across accounts by percentage; the splits must sum
// to 100.
type JournalTemplate struct {
	EventName      string        `json:"eventName"`
	Description    string        `json:"description"`
	DebitAccountID string        `json:"debitAccountID"`
	Credits        []CreditSplit `json:"credits"`
}

// CreditSplit is one credit leg of a journal template.
type CreditSplit struct {
	AccountID string          `json:"accountID"`
	Percent   decimal.Decimal `json:"percent"` // share of the entry amount, sums to 100 across splits
}

// PeriodLedgerSummary aggregates the ledger for one fiscal period, used when
// closing the period.
type PeriodLedgerSummary struct {
	TotalRevenue     Money `json:"totalRevenue"`     // credits to income accounts
	TotalExpenses    Money `json:"totalExpenses"`    // debits to expense accounts
	CorpusDeductions Money `json:"corpusDeductions"` // credits to the corpus account
}
