package dto

import "github.com/amanahfin/waqf_ledger/internal/core/domain"

// CreateAccountRequest adds an account to the chart of accounts.
type CreateAccountRequest struct {
	AccountID    string `json:"accountID"` // optional fixed code; generated when empty
	Name         string `json:"name" binding:"required"`
	AccountType  string `json:"accountType" binding:"required,oneof=ASSET LIABILITY EQUITY INCOME EXPENSE"`
	CurrencyCode string `json:"currencyCode" binding:"required,len=3"`
	Description  string `json:"description"`
}

// AccountResponse describes one chart-of-accounts entry.
type AccountResponse struct {
	AccountID    string `json:"accountID"`
	Name         string `json:"name"`
	AccountType  string `json:"accountType"`
	CurrencyCode string `json:"currencyCode"`
	Description  string `json:"description,omitempty"`
	IsActive     bool   `json:"isActive"`
}

// ToAccountResponse maps a domain account to its response shape.
func ToAccountResponse(a domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:    a.AccountID,
		Name:         a.Name,
		AccountType:  string(a.AccountType),
		CurrencyCode: a.CurrencyCode,
		Description:  a.Description,
		IsActive:     a.IsActive,
	}
}
