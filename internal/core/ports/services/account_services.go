package services

import (
	"context"

	"github.com/amanahfin/waqf_ledger/internal/core/domain"
	"github.com/amanahfin/waqf_ledger/internal/dto"
)

// AccountSvcFacade manages the chart of accounts the journal templates post
// against.
type AccountSvcFacade interface {
	// CreateAccount adds a new account.
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error)

	// GetAccountByID retrieves one account.
	GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// GetAccountsByIDs retrieves multiple accounts keyed by ID.
	GetAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error)

	// ListAccounts retrieves the full chart of accounts.
	ListAccounts(ctx context.Context) ([]domain.Account, error)
}

// BeneficiarySvcFacade manages the beneficiary roster.
type BeneficiarySvcFacade interface {
	// CreateBeneficiary adds a roster entry.
	CreateBeneficiary(ctx context.Context, req dto.CreateBeneficiaryRequest, creatorUserID string) (*domain.BeneficiaryShare, error)

	// ListEligible retrieves the eligible roster for a fiscal period, ordered by
	// ascending beneficiary ID.
	ListEligible(ctx context.Context, fiscalPeriodID string) ([]domain.BeneficiaryShare, error)

	// SetEligibility suspends or restores a beneficiary without deleting the
	// roster entry.
	SetEligibility(ctx context.Context, beneficiaryID string, eligible bool, userID string) error
}
