package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/corefin/corefin/internal/apperrors"
	"github.com/corefin/corefin/internal/core/domain"
	portssvc "github.com/corefin/corefin/internal/core/ports/services"
	"github.com/corefin/corefin/internal/core/services"
	"github.com/corefin/corefin/internal/dto"
)

// --- Mock AccountRepository ---

type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountByNumber(ctx context.Context, companyID string, accountNumber string) (*domain.Account, error) {
	args := m.Called(ctx, companyID, accountNumber)
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

func (m *MockAccountRepository) FindAccountsByCompany(ctx context.Context, companyID string) ([]domain.Account, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context, companyID string, limit int, offset int) ([]domain.Account, error) {
	args := m.Called(ctx, companyID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) DeactivateAccount(ctx context.Context, accountID string, userID string, now time.Time) error {
	args := m.Called(ctx, accountID, userID, now)
	return args.Error(0)
}

// --- Test Suite ---

type AccountServiceTestSuite struct {
	suite.Suite
	mockRepo *MockAccountRepository
	service  portssvc.AccountSvcFacade
	ctx      context.Context
}

func (suite *AccountServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockAccountRepository)
	// No authorizer configured: access is granted by default, which keeps
	// these tests focused on account semantics.
	suite.service = services.NewAccountService(suite.mockRepo)
	suite.ctx = context.Background()
}

func createAccountRequest() dto.CreateAccountRequest {
	return dto.CreateAccountRequest{
		AccountNumber:   "1000",
		Name:            "Cash",
		AccountType:     domain.Asset,
		AccountCategory: domain.CategoryCurrentAsset,
		NormalBalance:   domain.DebitBalance,
	}
}

// --- CreateAccount ---

func (suite *AccountServiceTestSuite) TestCreateAccount_Success() {
	suite.mockRepo.On("FindAccountByNumber", suite.ctx, testCompanyID, "1000").
		Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("SaveAccount", suite.ctx, mock.AnythingOfType("domain.Account")).Return(nil).Once()

	account, err := suite.service.CreateAccount(suite.ctx, testCompanyID, createAccountRequest(), testUserID)
	suite.Require().NoError(err)
	suite.Require().NotNil(account)

	suite.NotEmpty(account.AccountID)
	suite.Equal(testCompanyID, account.CompanyID)
	suite.Equal("1000", account.AccountNumber)
	suite.Equal(1, account.HierarchyLevel)
	suite.True(account.IsPostable)
	suite.True(account.IsActive)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestCreateAccount_DuplicateNumber() {
	existing := testAccount("acct-1", "1000", "Cash", domain.Asset, domain.CategoryCurrentAsset)
	suite.mockRepo.On("FindAccountByNumber", suite.ctx, testCompanyID, "1000").
		Return(&existing, nil).Once()

	_, err := suite.service.CreateAccount(suite.ctx, testCompanyID, createAccountRequest(), testUserID)
	suite.Require().ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_NumberOutsideTypeRange() {
	req := createAccountRequest()
	// 2xxx numbers belong to liabilities, not assets.
	req.AccountNumber = "2000"
	suite.mockRepo.On("FindAccountByNumber", suite.ctx, testCompanyID, "2000").
		Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.CreateAccount(suite.ctx, testCompanyID, req, testUserID)
	suite.Require().ErrorIs(err, apperrors.ErrValidation)

	var rangeErr *domain.AccountNumberRangeError
	suite.Require().ErrorAs(err, &rangeErr)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_IllegalCategoryForType() {
	req := createAccountRequest()
	req.AccountCategory = domain.CategoryCurrentLiability

	suite.mockRepo.On("FindAccountByNumber", suite.ctx, testCompanyID, "1000").
		Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.CreateAccount(suite.ctx, testCompanyID, req, testUserID)
	suite.Require().ErrorIs(err, apperrors.ErrValidation)

	var categoryErr *domain.AccountCategoryError
	suite.Require().ErrorAs(err, &categoryErr)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_ParentNotFound() {
	req := createAccountRequest()
	req.ParentAccountID = "missing-parent"

	suite.mockRepo.On("FindAccountByNumber", suite.ctx, testCompanyID, "1000").
		Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("FindAccountByID", suite.ctx, "missing-parent").
		Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.CreateAccount(suite.ctx, testCompanyID, req, testUserID)
	suite.Require().ErrorIs(err, apperrors.ErrValidation)

	var parentErr *domain.ParentAccountNotFoundError
	suite.Require().ErrorAs(err, &parentErr)
	suite.Equal("missing-parent", parentErr.ParentAccountID)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_ParentTypeMismatch() {
	req := createAccountRequest()
	req.ParentAccountID = "parent-1"

	parent := testAccount("parent-1", "2000", "Liabilities", domain.Liability, domain.CategoryCurrentLiability)
	suite.mockRepo.On("FindAccountByNumber", suite.ctx, testCompanyID, "1000").
		Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("FindAccountByID", suite.ctx, "parent-1").Return(&parent, nil).Once()

	_, err := suite.service.CreateAccount(suite.ctx, testCompanyID, req, testUserID)
	suite.Require().ErrorIs(err, apperrors.ErrValidation)

	var typeErr *domain.AccountTypeMismatchError
	suite.Require().ErrorAs(err, &typeErr)
	suite.Equal(domain.Asset, typeErr.ChildType)
	suite.Equal(domain.Liability, typeErr.ParentType)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_ChildInheritsParentLevel() {
	req := createAccountRequest()
	req.AccountNumber = "1010"
	req.ParentAccountID = "parent-1"

	parent := testAccount("parent-1", "1000", "Current Assets", domain.Asset, domain.CategoryCurrentAsset)
	parent.HierarchyLevel = 2
	suite.mockRepo.On("FindAccountByNumber", suite.ctx, testCompanyID, "1010").
		Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("FindAccountByID", suite.ctx, "parent-1").Return(&parent, nil).Once()
	suite.mockRepo.On("SaveAccount", suite.ctx, mock.AnythingOfType("domain.Account")).Return(nil).Once()

	account, err := suite.service.CreateAccount(suite.ctx, testCompanyID, req, testUserID)
	suite.Require().NoError(err)
	suite.Equal(3, account.HierarchyLevel)
}

// --- Retrieval ---

func (suite *AccountServiceTestSuite) TestGetAccountByID_CompanyScoped() {
	other := testAccount("acct-1", "1000", "Cash", domain.Asset, domain.CategoryCurrentAsset)
	other.CompanyID = "company-2"
	suite.mockRepo.On("FindAccountByID", suite.ctx, "acct-1").Return(&other, nil).Once()

	_, err := suite.service.GetAccountByID(suite.ctx, testCompanyID, "acct-1", testUserID)
	suite.Require().ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *AccountServiceTestSuite) TestGetAccountByIDs_DropsForeignAccounts() {
	mine := testAccount("acct-1", "1000", "Cash", domain.Asset, domain.CategoryCurrentAsset)
	foreign := testAccount("acct-2", "1100", "Cash", domain.Asset, domain.CategoryCurrentAsset)
	foreign.CompanyID = "company-2"
	suite.mockRepo.On("FindAccountsByIDs", suite.ctx, []string{"acct-1", "acct-2"}).
		Return(map[string]domain.Account{"acct-1": mine, "acct-2": foreign}, nil).Once()

	accounts, err := suite.service.GetAccountByIDs(suite.ctx, testCompanyID, []string{"acct-1", "acct-2"}, testUserID)
	suite.Require().NoError(err)
	suite.Len(accounts, 1)
	suite.Contains(accounts, "acct-1")
}

func (suite *AccountServiceTestSuite) TestListAccounts_FiltersTypeAndInactive() {
	accounts := []domain.Account{
		testAccount("acct-1", "1000", "Cash", domain.Asset, domain.CategoryCurrentAsset),
		testAccount("acct-2", "2000", "Accounts Payable", domain.Liability, domain.CategoryCurrentLiability),
	}
	inactive := testAccount("acct-3", "1100", "Old Cash", domain.Asset, domain.CategoryCurrentAsset)
	inactive.IsActive = false
	accounts = append(accounts, inactive)

	suite.mockRepo.On("FindAccountsByCompany", suite.ctx, testCompanyID).Return(accounts, nil).Twice()

	assetType := domain.Asset
	resp, err := suite.service.ListAccounts(suite.ctx, testCompanyID, testUserID,
		dto.ListAccountsParams{AccountType: &assetType})
	suite.Require().NoError(err)
	suite.Require().Len(resp.Accounts, 1)
	suite.Equal("acct-1", resp.Accounts[0].AccountID)

	withInactive, err := suite.service.ListAccounts(suite.ctx, testCompanyID, testUserID,
		dto.ListAccountsParams{AccountType: &assetType, IncludeInactive: true})
	suite.Require().NoError(err)
	suite.Len(withInactive.Accounts, 2)
}

// --- Updates ---

func (suite *AccountServiceTestSuite) TestUpdateAccount_RevalidatesCategory() {
	account := testAccount("acct-1", "1000", "Cash", domain.Asset, domain.CategoryCurrentAsset)
	suite.mockRepo.On("FindAccountByID", suite.ctx, "acct-1").Return(&account, nil).Once()

	illegal := domain.CategoryCurrentLiability
	_, err := suite.service.UpdateAccount(suite.ctx, testCompanyID, "acct-1",
		dto.UpdateAccountRequest{AccountCategory: &illegal}, testUserID)
	suite.Require().ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestDeactivateAccount_Success() {
	account := testAccount("acct-1", "1000", "Cash", domain.Asset, domain.CategoryCurrentAsset)
	suite.mockRepo.On("FindAccountByID", suite.ctx, "acct-1").Return(&account, nil).Once()
	suite.mockRepo.On("DeactivateAccount", suite.ctx, "acct-1", testUserID, mock.AnythingOfType("time.Time")).
		Return(nil).Once()

	err := suite.service.DeactivateAccount(suite.ctx, testCompanyID, "acct-1", testUserID)
	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

// --- Hierarchy and chart validation ---

func chartFixture() []domain.Account {
	root := testAccount("assets", "1000", "Assets", domain.Asset, domain.CategoryCurrentAsset)
	root.IsPostable = false

	cash := testAccount("cash", "1010", "Cash", domain.Asset, domain.CategoryCurrentAsset)
	cash.ParentAccountID = "assets"
	cash.HierarchyLevel = 2

	ar := testAccount("ar", "1020", "Accounts Receivable", domain.Asset, domain.CategoryCurrentAsset)
	ar.ParentAccountID = "assets"
	ar.HierarchyLevel = 2

	return []domain.Account{root, cash, ar}
}

func (suite *AccountServiceTestSuite) TestGetAccountHierarchy() {
	suite.mockRepo.On("FindAccountsByCompany", suite.ctx, testCompanyID).Return(chartFixture(), nil).Once()

	tree, err := suite.service.GetAccountHierarchy(suite.ctx, testCompanyID, testUserID)
	suite.Require().NoError(err)
	suite.Require().Len(tree, 1)
	suite.Equal("assets", tree[0].Account.AccountID)
	suite.Len(tree[0].Children, 2)
}

func (suite *AccountServiceTestSuite) TestGetAccountAncestors() {
	suite.mockRepo.On("FindAccountsByCompany", suite.ctx, testCompanyID).Return(chartFixture(), nil).Once()

	ancestors, err := suite.service.GetAccountAncestors(suite.ctx, testCompanyID, "cash", testUserID)
	suite.Require().NoError(err)
	suite.Require().Len(ancestors, 1)
	suite.Equal("assets", ancestors[0].AccountID)
}

func (suite *AccountServiceTestSuite) TestGetAccountDescendants_UnknownAccount() {
	suite.mockRepo.On("FindAccountsByCompany", suite.ctx, testCompanyID).Return(chartFixture(), nil).Once()

	_, err := suite.service.GetAccountDescendants(suite.ctx, testCompanyID, "missing", testUserID)
	suite.Require().ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *AccountServiceTestSuite) TestValidateChart_ReportsViolations() {
	chart := chartFixture()
	orphan := testAccount("orphan", "1030", "Orphan", domain.Asset, domain.CategoryCurrentAsset)
	orphan.ParentAccountID = "gone"
	orphan.HierarchyLevel = 2
	chart = append(chart, orphan)

	suite.mockRepo.On("FindAccountsByCompany", suite.ctx, testCompanyID).Return(chart, nil).Once()

	resp, err := suite.service.ValidateChart(suite.ctx, testCompanyID, testUserID)
	suite.Require().NoError(err)
	suite.False(resp.Valid)

	codes := make([]string, 0, len(resp.Violations))
	for _, v := range resp.Violations {
		codes = append(codes, v.Code)
	}
	suite.Contains(codes, "PARENT_NOT_FOUND")
}

func (suite *AccountServiceTestSuite) TestValidateChart_CleanChart() {
	suite.mockRepo.On("FindAccountsByCompany", suite.ctx, testCompanyID).Return(chartFixture(), nil).Once()

	resp, err := suite.service.ValidateChart(suite.ctx, testCompanyID, testUserID)
	suite.Require().NoError(err)
	suite.True(resp.Valid)
	suite.Empty(resp.Violations)
}

func TestAccountServiceSuite(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}
