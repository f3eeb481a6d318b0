package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/corefin/corefin/internal/apperrors"
	"github.com/corefin/corefin/internal/core/domain"
	portssvc "github.com/corefin/corefin/internal/core/ports/services"
	"github.com/corefin/corefin/internal/core/services"
	"github.com/corefin/corefin/internal/dto"
	"github.com/corefin/corefin/internal/utils/accounting"
)

// --- Mock JournalEntryRepository ---

type MockJournalEntryRepository struct {
	mock.Mock
}

func (m *MockJournalEntryRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalEntryRepository) FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalEntryLine, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalEntryLine), args.Error(1)
}

func (m *MockJournalEntryRepository) ListEntriesByCompany(ctx context.Context, companyID string, limit int, nextToken *string, statuses []domain.EntryStatus) ([]domain.JournalEntry, *string, error) {
	args := m.Called(ctx, companyID, limit, nextToken, statuses)
	var entries []domain.JournalEntry
	if args.Get(0) != nil {
		entries = args.Get(0).([]domain.JournalEntry)
	}
	var next *string
	if args.Get(1) != nil {
		next = args.Get(1).(*string)
	}
	return entries, next, args.Error(2)
}

func (m *MockJournalEntryRepository) FindPostedEntriesWithLines(ctx context.Context, companyID string) ([]domain.LedgerEntry, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerEntry), args.Error(1)
}

func (m *MockJournalEntryRepository) FindMaxEntryNumber(ctx context.Context, companyID string) (string, error) {
	args := m.Called(ctx, companyID)
	return args.String(0), args.Error(1)
}

func (m *MockJournalEntryRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalEntryLine) error {
	args := m.Called(ctx, entry, lines)
	return args.Error(0)
}

func (m *MockJournalEntryRepository) UpdateDraftEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalEntryLine) error {
	args := m.Called(ctx, entry, lines)
	return args.Error(0)
}

func (m *MockJournalEntryRepository) DeleteDraftEntry(ctx context.Context, entryID string) error {
	args := m.Called(ctx, entryID)
	return args.Error(0)
}

func (m *MockJournalEntryRepository) UpdateEntryStatus(ctx context.Context, entryID string, from, to domain.EntryStatus, userID string, now time.Time) error {
	args := m.Called(ctx, entryID, from, to, userID, now)
	return args.Error(0)
}

func (m *MockJournalEntryRepository) MarkEntryPosted(ctx context.Context, entryID string, postingDate time.Time, postedBy string, now time.Time) error {
	args := m.Called(ctx, entryID, postingDate, postedBy, now)
	return args.Error(0)
}

func (m *MockJournalEntryRepository) SaveReversal(ctx context.Context, originalEntryID string, reversal domain.JournalEntry, lines []domain.JournalEntryLine, userID string, now time.Time) error {
	args := m.Called(ctx, originalEntryID, reversal, lines, userID, now)
	return args.Error(0)
}

func (m *MockJournalEntryRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockJournalEntryRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockJournalEntryRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

// --- Mock AccountService ---

type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) GetAccountByID(ctx context.Context, companyID string, accountID string, userID string) (*domain.Account, error) {
	args := m.Called(ctx, companyID, accountID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) GetAccountByIDs(ctx context.Context, companyID string, accountIDs []string, userID string) (map[string]domain.Account, error) {
	args := m.Called(ctx, companyID, accountIDs, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountService) ListAccounts(ctx context.Context, companyID string, userID string, params dto.ListAccountsParams) (*dto.ListAccountsResponse, error) {
	args := m.Called(ctx, companyID, userID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListAccountsResponse), args.Error(1)
}

func (m *MockAccountService) CreateAccount(ctx context.Context, companyID string, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error) {
	args := m.Called(ctx, companyID, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) UpdateAccount(ctx context.Context, companyID string, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error) {
	args := m.Called(ctx, companyID, accountID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) DeactivateAccount(ctx context.Context, companyID string, accountID string, userID string) error {
	args := m.Called(ctx, companyID, accountID, userID)
	return args.Error(0)
}

func (m *MockAccountService) GetAccountHierarchy(ctx context.Context, companyID string, userID string) ([]*accounting.AccountNode, error) {
	args := m.Called(ctx, companyID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*accounting.AccountNode), args.Error(1)
}

func (m *MockAccountService) GetAccountAncestors(ctx context.Context, companyID string, accountID string, userID string) ([]domain.Account, error) {
	args := m.Called(ctx, companyID, accountID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountService) GetAccountDescendants(ctx context.Context, companyID string, accountID string, userID string) ([]domain.Account, error) {
	args := m.Called(ctx, companyID, accountID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountService) ValidateChart(ctx context.Context, companyID string, userID string) (*dto.ChartValidationResponse, error) {
	args := m.Called(ctx, companyID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ChartValidationResponse), args.Error(1)
}

// --- Mock CompanyService ---

type MockCompanyService struct {
	mock.Mock
}

func (m *MockCompanyService) GetCompanyByID(ctx context.Context, companyID string, userID string) (*domain.Company, error) {
	args := m.Called(ctx, companyID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Company), args.Error(1)
}

func (m *MockCompanyService) ListUserCompanies(ctx context.Context, userID string) ([]domain.Company, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Company), args.Error(1)
}

func (m *MockCompanyService) GetFunctionalCurrency(ctx context.Context, companyID string) (string, error) {
	args := m.Called(ctx, companyID)
	return args.String(0), args.Error(1)
}

func (m *MockCompanyService) CreateCompany(ctx context.Context, req dto.CreateCompanyRequest, creatorUserID string) (*domain.Company, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Company), args.Error(1)
}

func (m *MockCompanyService) AuthorizeUserAction(ctx context.Context, userID, companyID string, requiredRole domain.UserCompanyRole) error {
	args := m.Called(ctx, userID, companyID, requiredRole)
	return args.Error(0)
}

// --- Test Suite ---

type JournalEntryServiceTestSuite struct {
	suite.Suite
	mockRepo       *MockJournalEntryRepository
	mockAccountSvc *MockAccountService
	mockCompanySvc *MockCompanyService
	service        portssvc.JournalEntrySvcFacade
	ctx            context.Context
}

const (
	testCompanyID = "company-1"
	testUserID    = "user-1"
	testEntryID   = "entry-1"
)

func (suite *JournalEntryServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockJournalEntryRepository)
	suite.mockAccountSvc = new(MockAccountService)
	suite.mockCompanySvc = new(MockCompanyService)
	suite.service = services.NewJournalEntryService(suite.mockRepo, suite.mockAccountSvc, suite.mockCompanySvc)
	suite.ctx = context.Background()
}

func (suite *JournalEntryServiceTestSuite) authorize(role domain.UserCompanyRole) {
	suite.mockCompanySvc.On("AuthorizeUserAction", suite.ctx, testUserID, testCompanyID, role).Return(nil).Once()
}

func (suite *JournalEntryServiceTestSuite) lineAccounts() map[string]domain.Account {
	return map[string]domain.Account{
		"cash":    testAccount("cash", "1000", "Cash", domain.Asset, domain.CategoryCurrentAsset),
		"revenue": testAccount("revenue", "4000", "Service Revenue", domain.Revenue, domain.CategoryOperatingRevenue),
	}
}

func balancedLineRequests() []dto.CreateJournalLineRequest {
	hundred := decimal.NewFromInt(100)
	return []dto.CreateJournalLineRequest{
		{AccountID: "cash", DebitAmount: &hundred},
		{AccountID: "revenue", CreditAmount: &hundred},
	}
}

func draftEntry() *domain.JournalEntry {
	return &domain.JournalEntry{
		EntryID:         testEntryID,
		CompanyID:       testCompanyID,
		EntryNumber:     "JE-0003",
		TransactionDate: date(2025, time.March, 10),
		EntryType:       domain.EntryStandard,
		Status:          domain.Draft,
	}
}

func balancedDomainLines() []domain.JournalEntryLine {
	return []domain.JournalEntryLine{
		debitLine("cash", 100),
		creditLine("revenue", 100),
	}
}

func (suite *JournalEntryServiceTestSuite) expectLoadEntry(entry *domain.JournalEntry, lines []domain.JournalEntryLine) {
	suite.mockRepo.On("FindEntryByID", suite.ctx, entry.EntryID).Return(entry, nil).Once()
	suite.mockRepo.On("FindLinesByEntryID", suite.ctx, entry.EntryID).Return(lines, nil).Once()
}

// --- CreateEntry ---

func (suite *JournalEntryServiceTestSuite) TestCreateEntry_Success() {
	suite.authorize(domain.RoleMember)
	suite.mockCompanySvc.On("GetFunctionalCurrency", suite.ctx, testCompanyID).Return("USD", nil).Once()
	suite.mockAccountSvc.On("GetAccountByIDs", suite.ctx, testCompanyID, []string{"cash", "revenue"}, testUserID).
		Return(suite.lineAccounts(), nil).Once()
	suite.mockRepo.On("FindMaxEntryNumber", suite.ctx, testCompanyID).Return("JE-0007", nil).Once()
	suite.mockRepo.On("SaveEntry", suite.ctx, mock.AnythingOfType("domain.JournalEntry"), mock.AnythingOfType("[]domain.JournalEntryLine")).
		Return(nil).Once()

	req := dto.CreateJournalEntryRequest{
		TransactionDate: date(2025, time.March, 10),
		Description:     "Cash sale",
		Lines:           balancedLineRequests(),
	}

	entry, err := suite.service.CreateEntry(suite.ctx, testCompanyID, req, testUserID)
	suite.Require().NoError(err)
	suite.Require().NotNil(entry)

	suite.Equal(domain.Draft, entry.Status)
	suite.Equal(domain.EntryStandard, entry.EntryType)
	suite.Equal("JE-0008", entry.EntryNumber)
	suite.Equal(domain.FiscalPeriod{Year: 2025, Period: 3}, entry.FiscalPeriod)
	suite.Require().Len(entry.Lines, 2)
	suite.Equal(1, entry.Lines[0].LineNumber)
	suite.True(entry.Lines[0].FunctionalDebit.Amount.Equal(decimal.NewFromInt(100)))
	suite.Equal("USD", entry.Lines[0].FunctionalDebit.Currency)
	suite.True(entry.Lines[1].FunctionalCredit.Amount.Equal(decimal.NewFromInt(100)))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *JournalEntryServiceTestSuite) TestCreateEntry_ForeignCurrencyLine() {
	suite.authorize(domain.RoleMember)
	suite.mockCompanySvc.On("GetFunctionalCurrency", suite.ctx, testCompanyID).Return("USD", nil).Once()
	suite.mockAccountSvc.On("GetAccountByIDs", suite.ctx, testCompanyID, []string{"cash", "revenue"}, testUserID).
		Return(suite.lineAccounts(), nil).Once()
	suite.mockRepo.On("FindMaxEntryNumber", suite.ctx, testCompanyID).Return("", nil).Once()
	suite.mockRepo.On("SaveEntry", suite.ctx, mock.AnythingOfType("domain.JournalEntry"), mock.AnythingOfType("[]domain.JournalEntryLine")).
		Return(nil).Once()

	hundred := decimal.NewFromInt(100)
	ninety := decimal.NewFromInt(90)
	rate := decimal.RequireFromString("0.9")
	req := dto.CreateJournalEntryRequest{
		TransactionDate: date(2025, time.March, 10),
		Lines: []dto.CreateJournalLineRequest{
			{AccountID: "cash", DebitAmount: &hundred, Currency: "EUR", ExchangeRate: &rate},
			{AccountID: "revenue", CreditAmount: &ninety},
		},
	}

	entry, err := suite.service.CreateEntry(suite.ctx, testCompanyID, req, testUserID)
	suite.Require().NoError(err)

	suite.Equal("JE-0001", entry.EntryNumber)
	suite.Equal("EUR", entry.Lines[0].Debit.Currency)
	suite.Equal("USD", entry.Lines[0].FunctionalDebit.Currency)
	suite.True(entry.Lines[0].FunctionalDebit.Amount.Equal(decimal.NewFromInt(90)),
		"functional debit: %s", entry.Lines[0].FunctionalDebit.Amount)
}

func (suite *JournalEntryServiceTestSuite) TestCreateEntry_TooFewLines() {
	suite.authorize(domain.RoleMember)
	suite.mockCompanySvc.On("GetFunctionalCurrency", suite.ctx, testCompanyID).Return("USD", nil).Once()

	hundred := decimal.NewFromInt(100)
	req := dto.CreateJournalEntryRequest{
		TransactionDate: date(2025, time.March, 10),
		Lines:           []dto.CreateJournalLineRequest{{AccountID: "cash", DebitAmount: &hundred}},
	}

	_, err := suite.service.CreateEntry(suite.ctx, testCompanyID, req, testUserID)
	suite.Require().ErrorIs(err, services.ErrEntryMinLines)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveEntry", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalEntryServiceTestSuite) TestCreateEntry_SingleAccount() {
	suite.authorize(domain.RoleMember)
	suite.mockCompanySvc.On("GetFunctionalCurrency", suite.ctx, testCompanyID).Return("USD", nil).Once()
	accounts := suite.lineAccounts()
	suite.mockAccountSvc.On("GetAccountByIDs", suite.ctx, testCompanyID, []string{"cash", "cash"}, testUserID).
		Return(accounts, nil).Once()

	hundred := decimal.NewFromInt(100)
	req := dto.CreateJournalEntryRequest{
		TransactionDate: date(2025, time.March, 10),
		Lines: []dto.CreateJournalLineRequest{
			{AccountID: "cash", DebitAmount: &hundred},
			{AccountID: "cash", CreditAmount: &hundred},
		},
	}

	_, err := suite.service.CreateEntry(suite.ctx, testCompanyID, req, testUserID)
	suite.Require().ErrorIs(err, services.ErrEntryMinAccounts)
}

func (suite *JournalEntryServiceTestSuite) TestCreateEntry_InactiveAccount() {
	suite.authorize(domain.RoleMember)
	suite.mockCompanySvc.On("GetFunctionalCurrency", suite.ctx, testCompanyID).Return("USD", nil).Once()
	accounts := suite.lineAccounts()
	inactive := accounts["cash"]
	inactive.IsActive = false
	accounts["cash"] = inactive
	suite.mockAccountSvc.On("GetAccountByIDs", suite.ctx, testCompanyID, []string{"cash", "revenue"}, testUserID).
		Return(accounts, nil).Once()

	req := dto.CreateJournalEntryRequest{
		TransactionDate: date(2025, time.March, 10),
		Lines:           balancedLineRequests(),
	}

	_, err := suite.service.CreateEntry(suite.ctx, testCompanyID, req, testUserID)
	suite.Require().ErrorIs(err, services.ErrAccountInactive)
}

func (suite *JournalEntryServiceTestSuite) TestCreateEntry_NonPostableAccount() {
	suite.authorize(domain.RoleMember)
	suite.mockCompanySvc.On("GetFunctionalCurrency", suite.ctx, testCompanyID).Return("USD", nil).Once()
	accounts := suite.lineAccounts()
	summary := accounts["cash"]
	summary.IsPostable = false
	accounts["cash"] = summary
	suite.mockAccountSvc.On("GetAccountByIDs", suite.ctx, testCompanyID, []string{"cash", "revenue"}, testUserID).
		Return(accounts, nil).Once()

	req := dto.CreateJournalEntryRequest{
		TransactionDate: date(2025, time.March, 10),
		Lines:           balancedLineRequests(),
	}

	_, err := suite.service.CreateEntry(suite.ctx, testCompanyID, req, testUserID)
	suite.Require().ErrorIs(err, services.ErrAccountNotPostable)
}

func (suite *JournalEntryServiceTestSuite) TestCreateEntry_CurrencyRestriction() {
	suite.authorize(domain.RoleMember)
	suite.mockCompanySvc.On("GetFunctionalCurrency", suite.ctx, testCompanyID).Return("USD", nil).Once()
	accounts := suite.lineAccounts()
	restricted := accounts["cash"]
	restricted.CurrencyRestriction = "EUR"
	accounts["cash"] = restricted
	suite.mockAccountSvc.On("GetAccountByIDs", suite.ctx, testCompanyID, []string{"cash", "revenue"}, testUserID).
		Return(accounts, nil).Once()

	// The line defaults to the functional currency, which the account rejects.
	req := dto.CreateJournalEntryRequest{
		TransactionDate: date(2025, time.March, 10),
		Lines:           balancedLineRequests(),
	}

	_, err := suite.service.CreateEntry(suite.ctx, testCompanyID, req, testUserID)
	suite.Require().ErrorIs(err, services.ErrCurrencyRestriction)
}

func (suite *JournalEntryServiceTestSuite) TestCreateEntry_BothSidesSet() {
	suite.authorize(domain.RoleMember)
	suite.mockCompanySvc.On("GetFunctionalCurrency", suite.ctx, testCompanyID).Return("USD", nil).Once()
	suite.mockAccountSvc.On("GetAccountByIDs", suite.ctx, testCompanyID, []string{"cash", "revenue"}, testUserID).
		Return(suite.lineAccounts(), nil).Once()

	hundred := decimal.NewFromInt(100)
	req := dto.CreateJournalEntryRequest{
		TransactionDate: date(2025, time.March, 10),
		Lines: []dto.CreateJournalLineRequest{
			{AccountID: "cash", DebitAmount: &hundred, CreditAmount: &hundred},
			{AccountID: "revenue", CreditAmount: &hundred},
		},
	}

	_, err := suite.service.CreateEntry(suite.ctx, testCompanyID, req, testUserID)
	suite.Require().ErrorIs(err, services.ErrLineAmountShape)
}

func (suite *JournalEntryServiceTestSuite) TestCreateEntry_SameCurrencyRateRejected() {
	suite.authorize(domain.RoleMember)
	suite.mockCompanySvc.On("GetFunctionalCurrency", suite.ctx, testCompanyID).Return("USD", nil).Once()
	suite.mockAccountSvc.On("GetAccountByIDs", suite.ctx, testCompanyID, []string{"cash", "revenue"}, testUserID).
		Return(suite.lineAccounts(), nil).Once()

	hundred := decimal.NewFromInt(100)
	rate := decimal.RequireFromString("1.1")
	req := dto.CreateJournalEntryRequest{
		TransactionDate: date(2025, time.March, 10),
		Lines: []dto.CreateJournalLineRequest{
			{AccountID: "cash", DebitAmount: &hundred, Currency: "USD", ExchangeRate: &rate},
			{AccountID: "revenue", CreditAmount: &hundred},
		},
	}

	_, err := suite.service.CreateEntry(suite.ctx, testCompanyID, req, testUserID)
	suite.Require().ErrorIs(err, apperrors.ErrValidation)
}

func (suite *JournalEntryServiceTestSuite) TestCreateEntry_Unauthorized() {
	suite.mockCompanySvc.On("AuthorizeUserAction", suite.ctx, testUserID, testCompanyID, domain.RoleMember).
		Return(apperrors.ErrForbidden).Once()

	req := dto.CreateJournalEntryRequest{
		TransactionDate: date(2025, time.March, 10),
		Lines:           balancedLineRequests(),
	}

	_, err := suite.service.CreateEntry(suite.ctx, testCompanyID, req, testUserID)
	suite.Require().ErrorIs(err, apperrors.ErrForbidden)
	suite.mockCompanySvc.AssertNotCalled(suite.T(), "GetFunctionalCurrency", mock.Anything, mock.Anything)
}

// --- Retrieval ---

func (suite *JournalEntryServiceTestSuite) TestGetEntryByID_CompanyMismatch() {
	suite.authorize(domain.RoleReadOnly)
	other := draftEntry()
	other.CompanyID = "company-2"
	suite.mockRepo.On("FindEntryByID", suite.ctx, testEntryID).Return(other, nil).Once()

	_, err := suite.service.GetEntryByID(suite.ctx, testCompanyID, testEntryID, testUserID)
	suite.Require().ErrorIs(err, apperrors.ErrNotFound)
	suite.mockRepo.AssertNotCalled(suite.T(), "FindLinesByEntryID", mock.Anything, mock.Anything)
}

func (suite *JournalEntryServiceTestSuite) TestListEntries_PassesTokenThrough() {
	suite.authorize(domain.RoleReadOnly)
	next := "token-abc"
	entries := []domain.JournalEntry{*draftEntry()}
	suite.mockRepo.On("ListEntriesByCompany", suite.ctx, testCompanyID, 50, (*string)(nil), []domain.EntryStatus(nil)).
		Return(entries, &next, nil).Once()

	resp, err := suite.service.ListEntries(suite.ctx, testCompanyID, testUserID, dto.ListEntriesParams{})
	suite.Require().NoError(err)
	suite.Require().Len(resp.Entries, 1)
	suite.Equal("token-abc", resp.NextToken)
}

// --- Lifecycle transitions ---

func (suite *JournalEntryServiceTestSuite) TestSubmitEntry_Success() {
	suite.authorize(domain.RoleMember)
	suite.expectLoadEntry(draftEntry(), balancedDomainLines())
	suite.mockRepo.On("UpdateEntryStatus", suite.ctx, testEntryID, domain.Draft, domain.PendingApproval, testUserID, mock.AnythingOfType("time.Time")).
		Return(nil).Once()

	entry, err := suite.service.SubmitEntry(suite.ctx, testCompanyID, testEntryID, testUserID)
	suite.Require().NoError(err)
	suite.Equal(domain.PendingApproval, entry.Status)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *JournalEntryServiceTestSuite) TestApproveEntry_WrongStatus() {
	suite.authorize(domain.RoleMember)
	suite.expectLoadEntry(draftEntry(), balancedDomainLines())

	_, err := suite.service.ApproveEntry(suite.ctx, testCompanyID, testEntryID, testUserID)
	suite.Require().ErrorIs(err, apperrors.ErrConflict)

	var statusErr *domain.EntryStatusError
	suite.Require().ErrorAs(err, &statusErr)
	suite.Equal(domain.Draft, statusErr.Current)
	suite.Equal(domain.PendingApproval, statusErr.Required)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateEntryStatus",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalEntryServiceTestSuite) TestRejectEntry_ReturnsToDraft() {
	suite.authorize(domain.RoleMember)
	pending := draftEntry()
	pending.Status = domain.PendingApproval
	suite.expectLoadEntry(pending, balancedDomainLines())
	suite.mockRepo.On("UpdateEntryStatus", suite.ctx, testEntryID, domain.PendingApproval, domain.Draft, testUserID, mock.AnythingOfType("time.Time")).
		Return(nil).Once()

	entry, err := suite.service.RejectEntry(suite.ctx, testCompanyID, testEntryID, testUserID)
	suite.Require().NoError(err)
	suite.Equal(domain.Draft, entry.Status)
}

func (suite *JournalEntryServiceTestSuite) TestSubmitEntry_ConcurrentStatusChange() {
	suite.authorize(domain.RoleMember)
	suite.expectLoadEntry(draftEntry(), balancedDomainLines())
	suite.mockRepo.On("UpdateEntryStatus", suite.ctx, testEntryID, domain.Draft, domain.PendingApproval, testUserID, mock.AnythingOfType("time.Time")).
		Return(apperrors.ErrConflict).Once()

	_, err := suite.service.SubmitEntry(suite.ctx, testCompanyID, testEntryID, testUserID)
	suite.Require().ErrorIs(err, apperrors.ErrConflict)
}

// --- Editing and deleting drafts ---

func (suite *JournalEntryServiceTestSuite) TestDeleteDraftEntry_Success() {
	suite.authorize(domain.RoleMember)
	suite.expectLoadEntry(draftEntry(), balancedDomainLines())
	suite.mockRepo.On("DeleteDraftEntry", suite.ctx, testEntryID).Return(nil).Once()

	err := suite.service.DeleteDraftEntry(suite.ctx, testCompanyID, testEntryID, testUserID)
	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *JournalEntryServiceTestSuite) TestDeleteDraftEntry_RejectsPosted() {
	suite.authorize(domain.RoleMember)
	posted := draftEntry()
	posted.Status = domain.Posted
	suite.expectLoadEntry(posted, balancedDomainLines())

	err := suite.service.DeleteDraftEntry(suite.ctx, testCompanyID, testEntryID, testUserID)
	suite.Require().ErrorIs(err, apperrors.ErrConflict)
	suite.mockRepo.AssertNotCalled(suite.T(), "DeleteDraftEntry", mock.Anything, mock.Anything)
}

func (suite *JournalEntryServiceTestSuite) TestUpdateDraftEntry_RejectsNonDraft() {
	suite.authorize(domain.RoleMember)
	approved := draftEntry()
	approved.Status = domain.Approved
	suite.expectLoadEntry(approved, balancedDomainLines())

	req := dto.UpdateJournalEntryRequest{
		TransactionDate: date(2025, time.March, 12),
		Lines:           balancedLineRequests(),
	}

	_, err := suite.service.UpdateDraftEntry(suite.ctx, testCompanyID, testEntryID, req, testUserID)
	suite.Require().ErrorIs(err, apperrors.ErrConflict)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateDraftEntry", mock.Anything, mock.Anything, mock.Anything)
}

// --- Posting ---

func (suite *JournalEntryServiceTestSuite) TestPostEntry_Success() {
	suite.authorize(domain.RoleMember)
	approved := draftEntry()
	approved.Status = domain.Approved
	suite.expectLoadEntry(approved, balancedDomainLines())

	postingDate := date(2025, time.March, 15)
	suite.mockRepo.On("MarkEntryPosted", suite.ctx, testEntryID, postingDate, testUserID, mock.AnythingOfType("time.Time")).
		Return(nil).Once()

	entry, err := suite.service.PostEntry(suite.ctx, testCompanyID, testEntryID, &postingDate, testUserID)
	suite.Require().NoError(err)

	suite.Equal(domain.Posted, entry.Status)
	suite.Require().NotNil(entry.PostingDate)
	suite.True(entry.PostingDate.Equal(postingDate))
	suite.Equal(testUserID, entry.PostedBy)
	suite.NotNil(entry.PostedAt)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *JournalEntryServiceTestSuite) TestPostEntry_UnbalancedRejected() {
	suite.authorize(domain.RoleMember)
	approved := draftEntry()
	approved.Status = domain.Approved
	lines := []domain.JournalEntryLine{
		debitLine("cash", 100),
		creditLine("revenue", 90),
	}
	suite.expectLoadEntry(approved, lines)

	_, err := suite.service.PostEntry(suite.ctx, testCompanyID, testEntryID, nil, testUserID)
	suite.Require().ErrorIs(err, apperrors.ErrValidation)

	var unbalanced *domain.UnbalancedEntryError
	suite.Require().ErrorAs(err, &unbalanced)
	suite.mockRepo.AssertNotCalled(suite.T(), "MarkEntryPosted",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalEntryServiceTestSuite) TestPostEntry_RequiresApprovedStatus() {
	suite.authorize(domain.RoleMember)
	suite.expectLoadEntry(draftEntry(), balancedDomainLines())

	_, err := suite.service.PostEntry(suite.ctx, testCompanyID, testEntryID, nil, testUserID)
	suite.Require().ErrorIs(err, apperrors.ErrConflict)
}

// --- Reversal ---

func (suite *JournalEntryServiceTestSuite) TestReverseEntry_SwapsDebitsAndCredits() {
	suite.authorize(domain.RoleMember)
	pd := date(2025, time.March, 15)
	posted := draftEntry()
	posted.Status = domain.Posted
	posted.PostingDate = &pd
	suite.expectLoadEntry(posted, balancedDomainLines())
	suite.mockRepo.On("FindMaxEntryNumber", suite.ctx, testCompanyID).Return("JE-0003", nil).Once()
	suite.mockRepo.On("SaveReversal", suite.ctx, testEntryID, mock.AnythingOfType("domain.JournalEntry"), mock.AnythingOfType("[]domain.JournalEntryLine"), testUserID, mock.AnythingOfType("time.Time")).
		Return(nil).Once()

	reversalDate := date(2025, time.April, 1)
	reversal, err := suite.service.ReverseEntry(suite.ctx, testCompanyID, testEntryID, &reversalDate, testUserID)
	suite.Require().NoError(err)
	suite.Require().NotNil(reversal)

	suite.Equal(domain.Posted, reversal.Status)
	suite.Equal(domain.EntryReversing, reversal.EntryType)
	suite.True(reversal.IsReversing)
	suite.Require().NotNil(reversal.ReversedEntryID)
	suite.Equal(testEntryID, *reversal.ReversedEntryID)
	suite.Equal("JE-0004", reversal.EntryNumber)
	suite.Contains(reversal.Description, "Reversal of JE-0003")
	suite.Require().NotNil(reversal.PostingDate)
	suite.True(reversal.PostingDate.Equal(reversalDate))

	// The original debited cash and credited revenue; the mirror does the
	// opposite with identical amounts.
	suite.Require().Len(reversal.Lines, 2)
	suite.True(reversal.Lines[0].IsCredit())
	suite.True(reversal.Lines[0].Credit.Amount.Equal(decimal.NewFromInt(100)))
	suite.True(reversal.Lines[1].IsDebit())
	suite.True(reversal.Lines[1].Debit.Amount.Equal(decimal.NewFromInt(100)))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *JournalEntryServiceTestSuite) TestReverseEntry_LinesDoNotAliasOriginalAmounts() {
	suite.authorize(domain.RoleMember)
	pd := date(2025, time.March, 15)
	posted := draftEntry()
	posted.Status = domain.Posted
	posted.PostingDate = &pd
	originalLines := balancedDomainLines()
	suite.expectLoadEntry(posted, originalLines)
	suite.mockRepo.On("FindMaxEntryNumber", suite.ctx, testCompanyID).Return("JE-0003", nil).Once()
	suite.mockRepo.On("SaveReversal", suite.ctx, testEntryID, mock.AnythingOfType("domain.JournalEntry"), mock.AnythingOfType("[]domain.JournalEntryLine"), testUserID, mock.AnythingOfType("time.Time")).
		Return(nil).Once()

	reversal, err := suite.service.ReverseEntry(suite.ctx, testCompanyID, testEntryID, nil, testUserID)
	suite.Require().NoError(err)
	suite.Require().Len(reversal.Lines, 2)

	// The mirror carries copies, so changing the original afterwards must not
	// leak into the reversal.
	suite.NotSame(originalLines[0].Debit, reversal.Lines[0].Credit)
	originalLines[0].Debit.Amount = decimal.NewFromInt(999)
	suite.True(reversal.Lines[0].Credit.Amount.Equal(decimal.NewFromInt(100)))
}

func (suite *JournalEntryServiceTestSuite) TestReverseEntry_AlreadyReversed() {
	suite.authorize(domain.RoleMember)
	pd := date(2025, time.March, 15)
	reversingID := "entry-9"
	posted := draftEntry()
	posted.Status = domain.Posted
	posted.PostingDate = &pd
	posted.ReversingEntryID = &reversingID
	suite.expectLoadEntry(posted, balancedDomainLines())

	_, err := suite.service.ReverseEntry(suite.ctx, testCompanyID, testEntryID, nil, testUserID)
	suite.Require().ErrorIs(err, apperrors.ErrConflict)

	var alreadyReversed *domain.EntryAlreadyReversedError
	suite.Require().ErrorAs(err, &alreadyReversed)
	suite.Equal(reversingID, alreadyReversed.ReversingEntryID)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveReversal",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalEntryServiceTestSuite) TestReverseEntry_RejectsUnposted() {
	suite.authorize(domain.RoleMember)
	suite.expectLoadEntry(draftEntry(), balancedDomainLines())

	_, err := suite.service.ReverseEntry(suite.ctx, testCompanyID, testEntryID, nil, testUserID)
	suite.Require().ErrorIs(err, apperrors.ErrConflict)
}

func (suite *JournalEntryServiceTestSuite) TestReverseEntry_ConcurrentReversal() {
	suite.authorize(domain.RoleMember)
	pd := date(2025, time.March, 15)
	posted := draftEntry()
	posted.Status = domain.Posted
	posted.PostingDate = &pd
	suite.expectLoadEntry(posted, balancedDomainLines())
	suite.mockRepo.On("FindMaxEntryNumber", suite.ctx, testCompanyID).Return("JE-0003", nil).Once()
	suite.mockRepo.On("SaveReversal", suite.ctx, testEntryID, mock.AnythingOfType("domain.JournalEntry"), mock.AnythingOfType("[]domain.JournalEntryLine"), testUserID, mock.AnythingOfType("time.Time")).
		Return(apperrors.ErrConflict).Once()

	_, err := suite.service.ReverseEntry(suite.ctx, testCompanyID, testEntryID, nil, testUserID)
	suite.Require().ErrorIs(err, apperrors.ErrConflict)
}

func TestJournalEntryServiceSuite(t *testing.T) {
	suite.Run(t, new(JournalEntryServiceTestSuite))
}
