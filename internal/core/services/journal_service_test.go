package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/amanahfin/waqf_ledger/internal/apperrors"
	"github.com/amanahfin/waqf_ledger/internal/core/domain"
	portsrepo "github.com/amanahfin/waqf_ledger/internal/core/ports/repositories"
	portssvc "github.com/amanahfin/waqf_ledger/internal/core/ports/services"
	"github.com/amanahfin/waqf_ledger/internal/core/services"
)

// --- Mock TemplateProvider ---
type MockTemplateProvider struct {
	mock.Mock
}

var _ portssvc.TemplateProvider = (*MockTemplateProvider)(nil)

func (m *MockTemplateProvider) GetJournalTemplate(ctx context.Context, eventName string) (*domain.JournalTemplate, error) {
	args := m.Called(ctx, eventName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalTemplate), args.Error(1)
}

// --- Mock AccountRepository ---
type MockAccountRepository struct {
	mock.Mock
}

var _ portsrepo.AccountRepositoryFacade = (*MockAccountRepository)(nil)

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

// --- Mock JournalRepository ---
type MockJournalRepository struct {
	mock.Mock
}

var _ portsrepo.JournalRepositoryFacade = (*MockJournalRepository)(nil)

func (m *MockJournalRepository) FindEntriesByReference(ctx context.Context, referenceType, referenceID string) ([]domain.JournalEntry, map[string][]domain.JournalLine, error) {
	args := m.Called(ctx, referenceType, referenceID)
	var entries []domain.JournalEntry
	if args.Get(0) != nil {
		entries = args.Get(0).([]domain.JournalEntry)
	}
	var lines map[string][]domain.JournalLine
	if args.Get(1) != nil {
		lines = args.Get(1).(map[string][]domain.JournalLine)
	}
	return entries, lines, args.Error(2)
}

func (m *MockJournalRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalLine) error {
	args := m.Called(ctx, entry, lines)
	return args.Error(0)
}

func (m *MockJournalRepository) SumPeriodLedger(ctx context.Context, fiscalPeriodID, corpusAccountID string) (*domain.PeriodLedgerSummary, error) {
	args := m.Called(ctx, fiscalPeriodID, corpusAccountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PeriodLedgerSummary), args.Error(1)
}

// --- Test Suite Setup ---
type JournalServiceTestSuite struct {
	suite.Suite
	mockTemplates   *MockTemplateProvider
	mockAccountRepo *MockAccountRepository
	mockJournalRepo *MockJournalRepository
	service         portssvc.JournalSvcFacade
	ctx             context.Context
	periodID        string
	userID          string
	entryDate       time.Time
	bankAccount     domain.Account
	incomeAccount   domain.Account
	expenseAccount  domain.Account
}

func (suite *JournalServiceTestSuite) SetupTest() {
	suite.mockTemplates = new(MockTemplateProvider)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockJournalRepo = new(MockJournalRepository)
	suite.service = services.NewJournalService(suite.mockTemplates, suite.mockAccountRepo, suite.mockJournalRepo)

	suite.ctx = context.Background()
	suite.periodID = uuid.NewString()
	suite.userID = uuid.NewString()
	suite.entryDate = time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)

	suite.bankAccount = domain.Account{AccountID: "1000", AccountType: domain.Asset, CurrencyCode: "SAR", IsActive: true}
	suite.incomeAccount = domain.Account{AccountID: "4000", AccountType: domain.Income, CurrencyCode: "SAR", IsActive: true}
	suite.expenseAccount = domain.Account{AccountID: "5100", AccountType: domain.Expense, CurrencyCode: "SAR", IsActive: true}
}

func (suite *JournalServiceTestSuite) accountsByID(accounts ...domain.Account) map[string]domain.Account {
	out := make(map[string]domain.Account, len(accounts))
	for _, a := range accounts {
		out[a.AccountID] = a
	}
	return out
}

func (suite *JournalServiceTestSuite) TestBuildEntrySingleCredit() {
	template := &domain.JournalTemplate{
		EventName:      "rental_payment_received",
		Description:    "Rental payment received",
		DebitAccountID: "1000",
		Credits:        []domain.CreditSplit{{AccountID: "4000", Percent: d("100")}},
	}
	suite.mockTemplates.On("GetJournalTemplate", suite.ctx, "rental_payment_received").Return(template, nil)
	suite.mockAccountRepo.On("FindAccountsByIDs", suite.ctx, []string{"1000", "4000"}).
		Return(suite.accountsByID(suite.bankAccount, suite.incomeAccount), nil)

	amount := domain.NewMoney(500_000, "SAR")
	built, err := suite.service.BuildEntry(suite.ctx, "rental_payment_received", suite.periodID, "RENTAL_PAYMENT", "ref-1", amount, suite.entryDate, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(suite.periodID, built.Entry.FiscalPeriodID)
	suite.Equal("Rental payment received", built.Entry.Description)
	suite.Equal(domain.Posted, built.Entry.Status)
	suite.Require().Len(built.Lines, 2)

	suite.Equal("1000", built.Lines[0].AccountID)
	suite.Equal(domain.Debit, built.Lines[0].Side)
	suite.Equal(int64(500_000), built.Lines[0].Amount.Amount)
	suite.Equal("4000", built.Lines[1].AccountID)
	suite.Equal(domain.Credit, built.Lines[1].Side)
	suite.Equal(int64(500_000), built.Lines[1].Amount.Amount)

	suite.NoError(services.ValidateEntryBalance(built.Lines))
	suite.mockTemplates.AssertExpectations(suite.T())
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestBuildEntrySplitCreditsBalanceExactly() {
	other := domain.Account{AccountID: "4100", AccountType: domain.Income, CurrencyCode: "SAR", IsActive: true}
	template := &domain.JournalTemplate{
		EventName:      "rental_payment_received",
		DebitAccountID: "1000",
		Credits: []domain.CreditSplit{
			{AccountID: "4000", Percent: d("66.67")},
			{AccountID: "4100", Percent: d("33.33")},
		},
	}
	suite.mockTemplates.On("GetJournalTemplate", suite.ctx, "rental_payment_received").Return(template, nil)
	suite.mockAccountRepo.On("FindAccountsByIDs", suite.ctx, []string{"1000", "4000", "4100"}).
		Return(suite.accountsByID(suite.bankAccount, suite.incomeAccount, other), nil)

	amount := domain.NewMoney(1001, "SAR")
	built, err := suite.service.BuildEntry(suite.ctx, "rental_payment_received", suite.periodID, "RENTAL_PAYMENT", "ref-1", amount, suite.entryDate, suite.userID)

	suite.Require().NoError(err)
	suite.Require().Len(built.Lines, 3)
	creditTotal := built.Lines[1].Amount.Amount + built.Lines[2].Amount.Amount
	suite.Equal(int64(1001), creditTotal)
	suite.NoError(services.ValidateEntryBalance(built.Lines))
}

func (suite *JournalServiceTestSuite) TestBuildEntryTemplateNotFound() {
	suite.mockTemplates.On("GetJournalTemplate", suite.ctx, "unknown_event").
		Return(nil, apperrors.ErrTemplateNotFound)

	_, err := suite.service.BuildEntry(suite.ctx, "unknown_event", suite.periodID, "RENTAL_PAYMENT", "ref-1", domain.NewMoney(100, "SAR"), suite.entryDate, suite.userID)
	suite.ErrorIs(err, apperrors.ErrTemplateNotFound)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "FindAccountsByIDs", mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestBuildEntrySplitsMustSumTo100() {
	template := &domain.JournalTemplate{
		EventName:      "rental_payment_received",
		DebitAccountID: "1000",
		Credits: []domain.CreditSplit{
			{AccountID: "4000", Percent: d("60")},
			{AccountID: "4100", Percent: d("30")},
		},
	}
	suite.mockTemplates.On("GetJournalTemplate", suite.ctx, "rental_payment_received").Return(template, nil)

	_, err := suite.service.BuildEntry(suite.ctx, "rental_payment_received", suite.periodID, "RENTAL_PAYMENT", "ref-1", domain.NewMoney(100, "SAR"), suite.entryDate, suite.userID)
	suite.ErrorIs(err, services.ErrTemplateSplitInvalid)
}

func (suite *JournalServiceTestSuite) TestBuildEntryRejectsUnknownAccount() {
	template := &domain.JournalTemplate{
		EventName:      "rental_payment_received",
		DebitAccountID: "1000",
		Credits:        []domain.CreditSplit{{AccountID: "4000", Percent: d("100")}},
	}
	suite.mockTemplates.On("GetJournalTemplate", suite.ctx, "rental_payment_received").Return(template, nil)
	suite.mockAccountRepo.On("FindAccountsByIDs", suite.ctx, []string{"1000", "4000"}).
		Return(suite.accountsByID(suite.bankAccount), nil) // 4000 missing

	_, err := suite.service.BuildEntry(suite.ctx, "rental_payment_received", suite.periodID, "RENTAL_PAYMENT", "ref-1", domain.NewMoney(100, "SAR"), suite.entryDate, suite.userID)
	suite.ErrorIs(err, services.ErrTemplateAccountMissing)
}

func (suite *JournalServiceTestSuite) TestBuildEntryRejectsInactiveAccount() {
	inactive := suite.incomeAccount
	inactive.IsActive = false
	template := &domain.JournalTemplate{
		EventName:      "rental_payment_received",
		DebitAccountID: "1000",
		Credits:        []domain.CreditSplit{{AccountID: "4000", Percent: d("100")}},
	}
	suite.mockTemplates.On("GetJournalTemplate", suite.ctx, "rental_payment_received").Return(template, nil)
	suite.mockAccountRepo.On("FindAccountsByIDs", suite.ctx, []string{"1000", "4000"}).
		Return(suite.accountsByID(suite.bankAccount, inactive), nil)

	_, err := suite.service.BuildEntry(suite.ctx, "rental_payment_received", suite.periodID, "RENTAL_PAYMENT", "ref-1", domain.NewMoney(100, "SAR"), suite.entryDate, suite.userID)
	suite.ErrorIs(err, services.ErrTemplateAccountMissing)
}

func (suite *JournalServiceTestSuite) TestBuildEntryRejectsCurrencyMismatch() {
	usdAccount := suite.incomeAccount
	usdAccount.CurrencyCode = "USD"
	template := &domain.JournalTemplate{
		EventName:      "rental_payment_received",
		DebitAccountID: "1000",
		Credits:        []domain.CreditSplit{{AccountID: "4000", Percent: d("100")}},
	}
	suite.mockTemplates.On("GetJournalTemplate", suite.ctx, "rental_payment_received").Return(template, nil)
	suite.mockAccountRepo.On("FindAccountsByIDs", suite.ctx, []string{"1000", "4000"}).
		Return(suite.accountsByID(suite.bankAccount, usdAccount), nil)

	_, err := suite.service.BuildEntry(suite.ctx, "rental_payment_received", suite.periodID, "RENTAL_PAYMENT", "ref-1", domain.NewMoney(100, "SAR"), suite.entryDate, suite.userID)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *JournalServiceTestSuite) TestBuildEntryRejectsNonPositiveAmount() {
	_, err := suite.service.BuildEntry(suite.ctx, "rental_payment_received", suite.periodID, "RENTAL_PAYMENT", "ref-1", domain.NewMoney(0, "SAR"), suite.entryDate, suite.userID)
	suite.ErrorIs(err, services.ErrEntryAmountNotPositive)
	suite.mockTemplates.AssertNotCalled(suite.T(), "GetJournalTemplate", mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestRecordEventPersistsBuiltEntry() {
	template := &domain.JournalTemplate{
		EventName:      "rental_payment_received",
		DebitAccountID: "1000",
		Credits:        []domain.CreditSplit{{AccountID: "4000", Percent: d("100")}},
	}
	suite.mockTemplates.On("GetJournalTemplate", suite.ctx, "rental_payment_received").Return(template, nil)
	suite.mockAccountRepo.On("FindAccountsByIDs", suite.ctx, []string{"1000", "4000"}).
		Return(suite.accountsByID(suite.bankAccount, suite.incomeAccount), nil)
	suite.mockJournalRepo.On("SaveEntry", suite.ctx, mock.AnythingOfType("domain.JournalEntry"), mock.AnythingOfType("[]domain.JournalLine")).Return(nil)

	built, err := suite.service.RecordEvent(suite.ctx, "rental_payment_received", suite.periodID, "RENTAL_PAYMENT", "ref-1", domain.NewMoney(250_000, "SAR"), suite.entryDate, suite.userID)

	suite.Require().NoError(err)
	suite.Len(built.Lines, 2)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func TestJournalServiceTestSuite(t *testing.T) {
	suite.Run(t, new(JournalServiceTestSuite))
}

func TestValidateEntryBalance(t *testing.T) {
	line := func(amount int64, side domain.TransactionType) domain.JournalLine {
		return domain.JournalLine{LineID: uuid.NewString(), Amount: domain.NewMoney(amount, "SAR"), Side: side}
	}

	testCases := []struct {
		name    string
		lines   []domain.JournalLine
		wantErr bool
	}{
		{
			name:  "Balanced pair",
			lines: []domain.JournalLine{line(100, domain.Debit), line(100, domain.Credit)},
		},
		{
			name:  "Balanced split",
			lines: []domain.JournalLine{line(100, domain.Debit), line(60, domain.Credit), line(40, domain.Credit)},
		},
		{
			name:    "Unbalanced",
			lines:   []domain.JournalLine{line(100, domain.Debit), line(99, domain.Credit)},
			wantErr: true,
		},
		{
			name:    "Single line",
			lines:   []domain.JournalLine{line(100, domain.Debit)},
			wantErr: true,
		},
		{
			name:    "Non-positive line amount",
			lines:   []domain.JournalLine{line(0, domain.Debit), line(0, domain.Credit)},
			wantErr: true,
		},
		{
			name:    "Unknown side",
			lines:   []domain.JournalLine{line(100, domain.Debit), {LineID: "x", Amount: domain.NewMoney(100, "SAR"), Side: "SIDEWAYS"}},
			wantErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := services.ValidateEntryBalance(tc.lines)
			if tc.wantErr {
				assert.ErrorIs(t, err, apperrors.ErrUnbalancedEntry)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
