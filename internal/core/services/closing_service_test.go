package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/amanahfin/waqf_ledger/internal/apperrors"
	"github.com/amanahfin/waqf_ledger/internal/core/domain"
	portsrepo "github.com/amanahfin/waqf_ledger/internal/core/ports/repositories"
	portssvc "github.com/amanahfin/waqf_ledger/internal/core/ports/services"
	"github.com/amanahfin/waqf_ledger/internal/core/services"
	"github.com/amanahfin/waqf_ledger/internal/dto"
)

const corpusAccountID = "3000"

type ClosingServiceTestSuite struct {
	suite.Suite
	mockPeriodRepo  *MockPeriodRepository
	mockJournalRepo *MockJournalRepository
	mockNotifier    *MockNotifier
	service         portssvc.ClosingSvcFacade
	ctx             context.Context
	userID          string
	period          *domain.FiscalPeriod
}

func (suite *ClosingServiceTestSuite) SetupTest() {
	suite.mockPeriodRepo = new(MockPeriodRepository)
	suite.mockJournalRepo = new(MockJournalRepository)
	suite.mockNotifier = new(MockNotifier)
	suite.service = services.NewClosingService(suite.mockPeriodRepo, suite.mockJournalRepo, suite.mockNotifier, corpusAccountID)

	suite.ctx = context.Background()
	suite.userID = uuid.NewString()
	suite.period = &domain.FiscalPeriod{
		PeriodID:      uuid.NewString(),
		Name:          "FY2026",
		StartDate:     time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:       time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC),
		OpeningCorpus: domain.NewMoney(10_000_000, "SAR"),
	}
}

func (suite *ClosingServiceTestSuite) TestCreatePeriod() {
	suite.mockPeriodRepo.On("SavePeriod", suite.ctx, mock.AnythingOfType("domain.FiscalPeriod")).Return(nil)

	req := dto.CreatePeriodRequest{
		Name:          "FY2027",
		StartDate:     time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:       time.Date(2027, 12, 31, 0, 0, 0, 0, time.UTC),
		CurrencyCode:  "SAR",
		OpeningCorpus: 5_000_000,
	}
	period, err := suite.service.CreatePeriod(suite.ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal("FY2027", period.Name)
	suite.Equal(int64(5_000_000), period.OpeningCorpus.Amount)
	suite.False(period.IsClosed)
	suite.mockPeriodRepo.AssertExpectations(suite.T())
}

func (suite *ClosingServiceTestSuite) TestCreatePeriodRejectsInvertedDates() {
	req := dto.CreatePeriodRequest{
		Name:         "FY2027",
		StartDate:    time.Date(2027, 12, 31, 0, 0, 0, 0, time.UTC),
		EndDate:      time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC),
		CurrencyCode: "SAR",
	}
	_, err := suite.service.CreatePeriod(suite.ctx, req, suite.userID)

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockPeriodRepo.AssertNotCalled(suite.T(), "SavePeriod", mock.Anything, mock.Anything)
}

func (suite *ClosingServiceTestSuite) TestClosePeriodRollsCorpusForward() {
	// The repository aggregates the ledger under the period lock and hands the
	// summary to the close callback; only that summary drives the numbers.
	summary := domain.PeriodLedgerSummary{
		TotalRevenue:     domain.NewMoney(1_000_000, "SAR"),
		TotalExpenses:    domain.NewMoney(950_000, "SAR"), // includes the corpus appropriation expense
		CorpusDeductions: domain.NewMoney(200_000, "SAR"),
	}
	suite.mockPeriodRepo.On("FindPeriodByID", suite.ctx, suite.period.PeriodID).Return(suite.period, nil)
	suite.mockPeriodRepo.On("ClosePeriod", suite.ctx, suite.period.PeriodID, corpusAccountID, mock.Anything).
		Run(func(args mock.Arguments) {
			closeFn := args.Get(3).(portsrepo.PeriodCloser)
			closeFn(summary)
		}).Return(nil)
	suite.mockNotifier.On("Publish", suite.ctx, mock.MatchedBy(func(event domain.DomainEvent) bool {
		return event.Name == domain.EventFiscalPeriodClosed && event.PeriodID == suite.period.PeriodID
	})).Return()

	current, next, err := suite.service.ClosePeriod(suite.ctx, suite.period.PeriodID, suite.userID)

	suite.Require().NoError(err)
	suite.True(current.IsClosed)
	// closing = opening 10,000,000 + corpus deductions 200,000 + net income 50,000
	suite.Equal(int64(10_250_000), current.ClosingCorpus.Amount)

	suite.Equal(current.ClosingCorpus, next.OpeningCorpus)
	suite.Equal("FY2027", next.Name)
	suite.Equal(time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC), next.StartDate)
	suite.Equal(time.Date(2027, 12, 31, 0, 0, 0, 0, time.UTC), next.EndDate)
	suite.False(next.IsClosed)
	suite.Equal(int64(0), next.ClosingCorpus.Amount)

	suite.mockPeriodRepo.AssertExpectations(suite.T())
	suite.mockNotifier.AssertExpectations(suite.T())
}

func (suite *ClosingServiceTestSuite) TestClosePeriodNetLossShrinksCorpus() {
	summary := domain.PeriodLedgerSummary{
		TotalRevenue:     domain.NewMoney(100_000, "SAR"),
		TotalExpenses:    domain.NewMoney(400_000, "SAR"),
		CorpusDeductions: domain.NewMoney(0, "SAR"),
	}
	suite.mockPeriodRepo.On("FindPeriodByID", suite.ctx, suite.period.PeriodID).Return(suite.period, nil)
	suite.mockPeriodRepo.On("ClosePeriod", suite.ctx, suite.period.PeriodID, corpusAccountID, mock.Anything).
		Run(func(args mock.Arguments) {
			closeFn := args.Get(3).(portsrepo.PeriodCloser)
			closeFn(summary)
		}).Return(nil)
	suite.mockNotifier.On("Publish", suite.ctx, mock.AnythingOfType("domain.DomainEvent")).Return()

	current, _, err := suite.service.ClosePeriod(suite.ctx, suite.period.PeriodID, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(int64(9_700_000), current.ClosingCorpus.Amount)
}

func (suite *ClosingServiceTestSuite) TestClosePeriodAlreadyClosed() {
	closed := *suite.period
	closed.IsClosed = true
	suite.mockPeriodRepo.On("FindPeriodByID", suite.ctx, suite.period.PeriodID).Return(&closed, nil)

	_, _, err := suite.service.ClosePeriod(suite.ctx, suite.period.PeriodID, suite.userID)

	suite.ErrorIs(err, apperrors.ErrPeriodClosed)
	suite.mockPeriodRepo.AssertNotCalled(suite.T(), "ClosePeriod",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ClosingServiceTestSuite) TestClosePeriodLockContention() {
	suite.mockPeriodRepo.On("FindPeriodByID", suite.ctx, suite.period.PeriodID).Return(suite.period, nil)
	// An in-flight execution holds the period lock.
	suite.mockPeriodRepo.On("ClosePeriod", suite.ctx, suite.period.PeriodID, corpusAccountID, mock.Anything).
		Return(apperrors.ErrExecutionInProgress)

	_, _, err := suite.service.ClosePeriod(suite.ctx, suite.period.PeriodID, suite.userID)

	suite.ErrorIs(err, apperrors.ErrExecutionInProgress)
	suite.mockNotifier.AssertNotCalled(suite.T(), "Publish", mock.Anything, mock.Anything)
}

func (suite *ClosingServiceTestSuite) TestGetPeriodSummary() {
	summary := &domain.PeriodLedgerSummary{
		TotalRevenue:     domain.NewMoney(1_000_000, "SAR"),
		TotalExpenses:    domain.NewMoney(950_000, "SAR"),
		CorpusDeductions: domain.NewMoney(200_000, "SAR"),
	}
	suite.mockPeriodRepo.On("FindPeriodByID", suite.ctx, suite.period.PeriodID).Return(suite.period, nil)
	suite.mockJournalRepo.On("SumPeriodLedger", suite.ctx, suite.period.PeriodID, corpusAccountID).Return(summary, nil)

	got, err := suite.service.GetPeriodSummary(suite.ctx, suite.period.PeriodID)

	suite.Require().NoError(err)
	suite.Equal(int64(1_000_000), got.TotalRevenue.Amount)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *ClosingServiceTestSuite) TestGetPeriodSummaryUnknownPeriod() {
	suite.mockPeriodRepo.On("FindPeriodByID", suite.ctx, suite.period.PeriodID).Return(nil, apperrors.ErrNotFound)

	_, err := suite.service.GetPeriodSummary(suite.ctx, suite.period.PeriodID)

	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SumPeriodLedger",
		mock.Anything, mock.Anything, mock.Anything)
}

func TestClosingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ClosingServiceTestSuite))
}
