package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/amanahfin/waqf_ledger/internal/apperrors"
	"github.com/amanahfin/waqf_ledger/internal/core/domain"
	"github.com/amanahfin/waqf_ledger/internal/core/services"
	"github.com/amanahfin/waqf_ledger/internal/dto"
)

func TestCreateAccount(t *testing.T) {
	ctx := context.Background()

	t.Run("Keeps configured account code", func(t *testing.T) {
		repo := new(MockAccountRepository)
		svc := services.NewAccountService(repo)
		repo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).Return(nil)

		account, err := svc.CreateAccount(ctx, dto.CreateAccountRequest{
			AccountID:    "1000",
			Name:         "Bank",
			AccountType:  "ASSET",
			CurrencyCode: "SAR",
		}, "user-1")

		require.NoError(t, err)
		assert.Equal(t, "1000", account.AccountID)
		assert.Equal(t, domain.Asset, account.AccountType)
		assert.True(t, account.IsActive)
		repo.AssertExpectations(t)
	})

	t.Run("Generates an ID when none given", func(t *testing.T) {
		repo := new(MockAccountRepository)
		svc := services.NewAccountService(repo)
		repo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).Return(nil)

		account, err := svc.CreateAccount(ctx, dto.CreateAccountRequest{
			Name:         "Rental Revenue",
			AccountType:  "INCOME",
			CurrencyCode: "SAR",
		}, "user-1")

		require.NoError(t, err)
		assert.NotEmpty(t, account.AccountID)
	})

	t.Run("Propagates duplicate code error", func(t *testing.T) {
		repo := new(MockAccountRepository)
		svc := services.NewAccountService(repo)
		repo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).Return(apperrors.ErrDuplicate)

		_, err := svc.CreateAccount(ctx, dto.CreateAccountRequest{
			AccountID:    "1000",
			Name:         "Bank",
			AccountType:  "ASSET",
			CurrencyCode: "SAR",
		}, "user-1")

		assert.ErrorIs(t, err, apperrors.ErrDuplicate)
	})
}

func TestCreateBeneficiary(t *testing.T) {
	ctx := context.Background()

	t.Run("Creates eligible roster entry", func(t *testing.T) {
		repo := new(MockBeneficiaryRepository)
		svc := services.NewBeneficiaryService(repo)
		repo.On("SaveBeneficiary", ctx, mock.AnythingOfType("domain.BeneficiaryShare")).Return(nil)

		beneficiary, err := svc.CreateBeneficiary(ctx, dto.CreateBeneficiaryRequest{
			Name:         "Fatimah",
			Relationship: "DAUGHTER",
			Weight:       d("1"),
		}, "user-1")

		require.NoError(t, err)
		assert.Equal(t, domain.Daughter, beneficiary.Relationship)
		assert.True(t, beneficiary.Eligible)
		assert.NotEmpty(t, beneficiary.BeneficiaryID)
		repo.AssertExpectations(t)
	})

	t.Run("Rejects negative weight", func(t *testing.T) {
		repo := new(MockBeneficiaryRepository)
		svc := services.NewBeneficiaryService(repo)

		_, err := svc.CreateBeneficiary(ctx, dto.CreateBeneficiaryRequest{
			Name:         "Unknown",
			Relationship: "OTHER",
			Weight:       d("-1"),
		}, "user-1")

		assert.ErrorIs(t, err, apperrors.ErrValidation)
		repo.AssertNotCalled(t, "SaveBeneficiary", mock.Anything, mock.Anything)
	})
}

func TestSetEligibility(t *testing.T) {
	ctx := context.Background()
	repo := new(MockBeneficiaryRepository)
	svc := services.NewBeneficiaryService(repo)
	repo.On("SetEligibility", ctx, "ben-a", false, "user-1").Return(nil)

	assert.NoError(t, svc.SetEligibility(ctx, "ben-a", false, "user-1"))
	repo.AssertExpectations(t)
}
