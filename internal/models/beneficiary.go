package models

import "github.com/shopspring/decimal"

// Beneficiary represents one roster row.
type Beneficiary struct {
	BeneficiaryID  string          `json:"beneficiaryID"` // Primary Key (UUID)
	Name           string          `json:"name"`
	Relationship   string          `json:"relationship"`
	Weight         decimal.Decimal `json:"weight"`
	Eligible       bool            `json:"eligible"`
	BankIdentifier string          `json:"bankIdentifier"`
	AuditFields
}
