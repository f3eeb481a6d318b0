package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/corefin/corefin/internal/apperrors"
	"github.com/corefin/corefin/internal/core/domain"
	portssvc "github.com/corefin/corefin/internal/core/ports/services"
	"github.com/corefin/corefin/internal/core/services"
	"github.com/corefin/corefin/internal/dto"
)

// --- Mock CompanyRepository ---

type MockCompanyRepository struct {
	mock.Mock
}

func (m *MockCompanyRepository) FindCompanyByID(ctx context.Context, companyID string) (*domain.Company, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Company), args.Error(1)
}

func (m *MockCompanyRepository) ListCompaniesByUserID(ctx context.Context, userID string) ([]domain.Company, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Company), args.Error(1)
}

func (m *MockCompanyRepository) SaveCompany(ctx context.Context, company domain.Company) error {
	args := m.Called(ctx, company)
	return args.Error(0)
}

func (m *MockCompanyRepository) AddUserToCompany(ctx context.Context, membership domain.UserCompany) error {
	args := m.Called(ctx, membership)
	return args.Error(0)
}

func (m *MockCompanyRepository) FindUserCompanyRole(ctx context.Context, userID, companyID string) (*domain.UserCompany, error) {
	args := m.Called(ctx, userID, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserCompany), args.Error(1)
}

// --- Test Suite ---

type CompanyServiceTestSuite struct {
	suite.Suite
	mockRepo *MockCompanyRepository
	service  portssvc.CompanySvcFacade
	ctx      context.Context
}

func (suite *CompanyServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockCompanyRepository)
	suite.service = services.NewCompanyService(suite.mockRepo)
	suite.ctx = context.Background()
}

func (suite *CompanyServiceTestSuite) membership(role domain.UserCompanyRole) *domain.UserCompany {
	return &domain.UserCompany{
		UserID:    testUserID,
		CompanyID: testCompanyID,
		Role:      role,
	}
}

func (suite *CompanyServiceTestSuite) TestCreateCompany_CreatorBecomesAdmin() {
	suite.mockRepo.On("SaveCompany", suite.ctx, mock.AnythingOfType("domain.Company")).Return(nil).Once()
	suite.mockRepo.On("AddUserToCompany", suite.ctx, mock.MatchedBy(func(m domain.UserCompany) bool {
		return m.UserID == testUserID && m.Role == domain.RoleAdmin
	})).Return(nil).Once()

	req := dto.CreateCompanyRequest{Name: "Acme", FunctionalCurrency: "USD"}
	company, err := suite.service.CreateCompany(suite.ctx, req, testUserID)
	suite.Require().NoError(err)
	suite.Require().NotNil(company)

	suite.NotEmpty(company.CompanyID)
	suite.True(company.IsActive)
	suite.Require().NotNil(company.FunctionalCurrency)
	suite.Equal("USD", *company.FunctionalCurrency)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CompanyServiceTestSuite) TestGetFunctionalCurrency() {
	usd := "USD"
	suite.mockRepo.On("FindCompanyByID", suite.ctx, testCompanyID).
		Return(&domain.Company{CompanyID: testCompanyID, FunctionalCurrency: &usd}, nil).Once()

	currency, err := suite.service.GetFunctionalCurrency(suite.ctx, testCompanyID)
	suite.Require().NoError(err)
	suite.Equal("USD", currency)
}

func (suite *CompanyServiceTestSuite) TestGetFunctionalCurrency_NotConfigured() {
	suite.mockRepo.On("FindCompanyByID", suite.ctx, testCompanyID).
		Return(&domain.Company{CompanyID: testCompanyID}, nil).Once()

	_, err := suite.service.GetFunctionalCurrency(suite.ctx, testCompanyID)
	suite.Require().ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *CompanyServiceTestSuite) TestAuthorizeUserAction_HigherRoleImpliesLower() {
	suite.mockRepo.On("FindUserCompanyRole", suite.ctx, testUserID, testCompanyID).
		Return(suite.membership(domain.RoleAdmin), nil).Times(3)

	suite.NoError(suite.service.AuthorizeUserAction(suite.ctx, testUserID, testCompanyID, domain.RoleReadOnly))
	suite.NoError(suite.service.AuthorizeUserAction(suite.ctx, testUserID, testCompanyID, domain.RoleMember))
	suite.NoError(suite.service.AuthorizeUserAction(suite.ctx, testUserID, testCompanyID, domain.RoleAdmin))
}

func (suite *CompanyServiceTestSuite) TestAuthorizeUserAction_InsufficientRole() {
	suite.mockRepo.On("FindUserCompanyRole", suite.ctx, testUserID, testCompanyID).
		Return(suite.membership(domain.RoleReadOnly), nil).Once()

	err := suite.service.AuthorizeUserAction(suite.ctx, testUserID, testCompanyID, domain.RoleMember)
	suite.Require().ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *CompanyServiceTestSuite) TestAuthorizeUserAction_RemovedMember() {
	suite.mockRepo.On("FindUserCompanyRole", suite.ctx, testUserID, testCompanyID).
		Return(suite.membership(domain.RoleRemoved), nil).Once()

	err := suite.service.AuthorizeUserAction(suite.ctx, testUserID, testCompanyID, domain.RoleReadOnly)
	suite.Require().ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *CompanyServiceTestSuite) TestAuthorizeUserAction_NonMemberLooksLikeMissingCompany() {
	suite.mockRepo.On("FindUserCompanyRole", suite.ctx, testUserID, testCompanyID).
		Return(nil, apperrors.ErrNotFound).Once()

	err := suite.service.AuthorizeUserAction(suite.ctx, testUserID, testCompanyID, domain.RoleReadOnly)
	suite.Require().ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *CompanyServiceTestSuite) TestListUserCompanies_EmptyNotNil() {
	suite.mockRepo.On("ListCompaniesByUserID", suite.ctx, testUserID).
		Return(nil, nil).Once()

	companies, err := suite.service.ListUserCompanies(suite.ctx, testUserID)
	suite.Require().NoError(err)
	suite.NotNil(companies)
	suite.Empty(companies)
}

func TestCompanyServiceSuite(t *testing.T) {
	suite.Run(t, new(CompanyServiceTestSuite))
}
