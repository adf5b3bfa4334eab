package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/amanahfin/waqf_ledger/internal/apperrors"
	"github.com/amanahfin/waqf_ledger/internal/core/domain"
	portsrepo "github.com/amanahfin/waqf_ledger/internal/core/ports/repositories"
	portssvc "github.com/amanahfin/waqf_ledger/internal/core/ports/services"
	"github.com/amanahfin/waqf_ledger/internal/dto"
)

// accountService manages the chart of accounts.
type accountService struct {
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewAccountService creates a new AccountSvcFacade.
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade) portssvc.AccountSvcFacade {
	return &accountService{accountRepo: accountRepo}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

func (s *accountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error) {
	accountID := req.AccountID
	if accountID == "" {
		accountID = uuid.NewString()
	}
	now := time.Now().UTC()
	account := domain.Account{
		AccountID:    accountID,
		Name:         req.Name,
		AccountType:  domain.AccountType(req.AccountType),
		CurrencyCode: req.CurrencyCode,
		Description:  req.Description,
		IsActive:     true,
		AuditFields:  domain.AuditFields{CreatedAt: now, CreatedBy: creatorUserID, LastUpdatedAt: now, LastUpdatedBy: creatorUserID},
	}
	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		return nil, err
	}
	return &account, nil
}

func (s *accountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	return s.accountRepo.FindAccountByID(ctx, accountID)
}

func (s *accountService) GetAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	return s.accountRepo.FindAccountsByIDs(ctx, accountIDs)
}

func (s *accountService) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	return s.accountRepo.ListAccounts(ctx)
}

// beneficiaryService manages the roster. Identity and eligibility decisions belong
// to the endowment administration; this service only records them.
type beneficiaryService struct {
	beneficiaryRepo portsrepo.BeneficiaryRepositoryFacade
}

// NewBeneficiaryService creates a new BeneficiarySvcFacade.
func NewBeneficiaryService(beneficiaryRepo portsrepo.BeneficiaryRepositoryFacade) portssvc.BeneficiarySvcFacade {
	return &beneficiaryService{beneficiaryRepo: beneficiaryRepo}
}

var _ portssvc.BeneficiarySvcFacade = (*beneficiaryService)(nil)

func (s *beneficiaryService) CreateBeneficiary(ctx context.Context, req dto.CreateBeneficiaryRequest, creatorUserID string) (*domain.BeneficiaryShare, error) {
	if req.Weight.IsNegative() {
		return nil, fmt.Errorf("%w: weight must not be negative", apperrors.ErrValidation)
	}
	now := time.Now().UTC()
	beneficiary := domain.BeneficiaryShare{
		BeneficiaryID:  uuid.NewString(),
		Name:           req.Name,
		Relationship:   domain.RelationshipClass(req.Relationship),
		Weight:         req.Weight,
		Eligible:       true,
		BankIdentifier: req.BankIdentifier,
		AuditFields:    domain.AuditFields{CreatedAt: now, CreatedBy: creatorUserID, LastUpdatedAt: now, LastUpdatedBy: creatorUserID},
	}
	if err := s.beneficiaryRepo.SaveBeneficiary(ctx, beneficiary); err != nil {
		return nil, err
	}
	return &beneficiary, nil
}

func (s *beneficiaryService) ListEligible(ctx context.Context, fiscalPeriodID string) ([]domain.BeneficiaryShare, error) {
	return s.beneficiaryRepo.GetEligibleBeneficiaries(ctx, fiscalPeriodID)
}

func (s *beneficiaryService) SetEligibility(ctx context.Context, beneficiaryID string, eligible bool, userID string) error {
	return s.beneficiaryRepo.SetEligibility(ctx, beneficiaryID, eligible, userID)
}
