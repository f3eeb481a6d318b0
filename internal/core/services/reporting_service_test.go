package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/corefin/corefin/internal/apperrors"
	"github.com/corefin/corefin/internal/core/domain"
	portssvc "github.com/corefin/corefin/internal/core/ports/services"
	"github.com/corefin/corefin/internal/core/services"
	"github.com/corefin/corefin/internal/dto"
)

type ReportingServiceTestSuite struct {
	suite.Suite
	mockAccountRepo *MockAccountRepository
	mockEntryRepo   *MockJournalEntryRepository
	mockCompanySvc  *MockCompanyService
	service         portssvc.ReportingService
	ctx             context.Context
}

func (suite *ReportingServiceTestSuite) SetupTest() {
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockEntryRepo = new(MockJournalEntryRepository)
	suite.mockCompanySvc = new(MockCompanyService)
	suite.service = services.NewReportingService(suite.mockAccountRepo, suite.mockEntryRepo, suite.mockCompanySvc)
	suite.ctx = context.Background()
}

func (suite *ReportingServiceTestSuite) expectSnapshot(accounts []domain.Account, ledger []domain.LedgerEntry) {
	suite.mockCompanySvc.On("AuthorizeUserAction", suite.ctx, testUserID, testCompanyID, domain.RoleReadOnly).
		Return(nil).Once()
	suite.mockCompanySvc.On("GetFunctionalCurrency", suite.ctx, testCompanyID).Return("USD", nil).Once()
	suite.mockAccountRepo.On("FindAccountsByCompany", suite.ctx, testCompanyID).Return(accounts, nil).Once()
	suite.mockEntryRepo.On("FindPostedEntriesWithLines", suite.ctx, testCompanyID).Return(ledger, nil).Once()
}

func (suite *ReportingServiceTestSuite) TestGenerateBalanceSheet() {
	accounts, ledger := balanceSheetFixture()
	suite.expectSnapshot(accounts, ledger)

	report, err := suite.service.GenerateBalanceSheet(suite.ctx, testCompanyID,
		date(2025, time.January, 31), dto.BalanceSheetOptions{}, testUserID)
	suite.Require().NoError(err)

	suite.Equal("USD", report.Currency)
	suite.True(report.TotalAssets.Equal(decimal.NewFromInt(11300)))
	suite.True(report.TotalAssets.Equal(report.TotalLiabilitiesAndEquity))
	suite.mockEntryRepo.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestGenerateCashFlowStatement() {
	accounts, ledger := cashFlowFixture()
	suite.expectSnapshot(accounts, ledger)

	report, err := suite.service.GenerateCashFlowStatement(suite.ctx, testCompanyID,
		date(2025, time.February, 1), date(2025, time.February, 28), testUserID)
	suite.Require().NoError(err)

	suite.True(report.IsReconciled)
	suite.True(report.EndingCash.Equal(decimal.NewFromInt(13000)))
}

func (suite *ReportingServiceTestSuite) TestGenerateEquityStatement() {
	accounts, ledger := equityFixture()
	suite.expectSnapshot(accounts, ledger)

	report, err := suite.service.GenerateEquityStatement(suite.ctx, testCompanyID,
		date(2025, time.January, 1), date(2025, time.March, 31), dto.EquityStatementOptions{}, testUserID)
	suite.Require().NoError(err)

	suite.True(report.TotalClosingBalance.Equal(decimal.NewFromInt(30500)))
}

func (suite *ReportingServiceTestSuite) TestSnapshotRequiresMembership() {
	suite.mockCompanySvc.On("AuthorizeUserAction", suite.ctx, testUserID, testCompanyID, domain.RoleReadOnly).
		Return(apperrors.ErrNotFound).Once()

	_, err := suite.service.GenerateBalanceSheet(suite.ctx, testCompanyID,
		date(2025, time.January, 31), dto.BalanceSheetOptions{}, testUserID)
	suite.Require().ErrorIs(err, apperrors.ErrNotFound)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "FindAccountsByCompany", suite.ctx, testCompanyID)
}

func TestReportingServiceSuite(t *testing.T) {
	suite.Run(t, new(ReportingServiceTestSuite))
}
