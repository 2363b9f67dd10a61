package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/atlasvoyage/travel_accounting_app/internal/apperrors"
	"github.com/atlasvoyage/travel_accounting_app/internal/core/domain"
	portssvc "github.com/atlasvoyage/travel_accounting_app/internal/core/ports/services"
	"github.com/atlasvoyage/travel_accounting_app/internal/core/services"
	"github.com/atlasvoyage/travel_accounting_app/internal/dto"
)

type AccountServiceTestSuite struct {
	suite.Suite
	mockAccountRepo *MockAccountRepository
	service         portssvc.AccountSvcFacade
	userID          string
}

func (suite *AccountServiceTestSuite) SetupTest() {
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.service = services.NewAccountService(suite.mockAccountRepo)
	suite.userID = uuid.NewString()
}

func (suite *AccountServiceTestSuite) TestCreateAccount_Success() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{Code: "1105", Name: "Petty Cash", AccountType: "ASSET"}

	suite.mockAccountRepo.On("FindAccountByCode", ctx, "1105").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockAccountRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).Return(nil).Once()

	account, err := suite.service.CreateAccount(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(account)
	suite.NotEmpty(account.AccountID)
	suite.Equal("1105", account.Code)
	suite.Equal(domain.Asset, account.AccountType)
	suite.True(account.IsActive)
	suite.True(account.Balance.IsZero())
	suite.Equal(suite.userID, account.CreatedBy)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestCreateAccount_DuplicateCode() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{Code: "1201", Name: "Accounts Receivable", AccountType: "ASSET"}
	existing := domain.Account{AccountID: uuid.NewString(), Code: "1201"}

	suite.mockAccountRepo.On("FindAccountByCode", ctx, "1201").Return(&existing, nil).Once()

	_, err := suite.service.CreateAccount(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "SaveAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_ParentNotFound() {
	ctx := context.Background()
	parentID := uuid.NewString()
	req := dto.CreateAccountRequest{Code: "1106", Name: "Deposits", AccountType: "ASSET", ParentAccountID: parentID}

	suite.mockAccountRepo.On("FindAccountByCode", ctx, "1106").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockAccountRepo.On("FindAccountByID", ctx, parentID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.CreateAccount(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Contains(err.Error(), parentID)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "SaveAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_ParentChainWalksToRoot() {
	ctx := context.Background()
	rootID := uuid.NewString()
	midID := uuid.NewString()
	req := dto.CreateAccountRequest{Code: "1107", Name: "Prepaid Suppliers", AccountType: "ASSET", ParentAccountID: midID}

	root := domain.Account{AccountID: rootID, Code: "1000", AccountType: domain.Asset}
	mid := domain.Account{AccountID: midID, Code: "1100", AccountType: domain.Asset, ParentAccountID: rootID}

	suite.mockAccountRepo.On("FindAccountByCode", ctx, "1107").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockAccountRepo.On("FindAccountByID", ctx, midID).Return(&mid, nil).Once()
	suite.mockAccountRepo.On("FindAccountByID", ctx, rootID).Return(&root, nil).Once()
	suite.mockAccountRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).Return(nil).Once()

	account, err := suite.service.CreateAccount(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(midID, account.ParentAccountID)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestCreateAccount_SelfReferencingParentChain() {
	ctx := context.Background()
	aID := uuid.NewString()
	bID := uuid.NewString()
	req := dto.CreateAccountRequest{Code: "1108", Name: "Looping", AccountType: "ASSET", ParentAccountID: aID}

	// a -> b -> a never terminates; the depth bound must reject it.
	a := domain.Account{AccountID: aID, ParentAccountID: bID}
	b := domain.Account{AccountID: bID, ParentAccountID: aID}

	suite.mockAccountRepo.On("FindAccountByCode", ctx, "1108").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockAccountRepo.On("FindAccountByID", ctx, aID).Return(&a, nil)
	suite.mockAccountRepo.On("FindAccountByID", ctx, bID).Return(&b, nil)

	_, err := suite.service.CreateAccount(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *AccountServiceTestSuite) TestGetAccountByCode_Missing() {
	ctx := context.Background()

	suite.mockAccountRepo.On("FindAccountByCode", ctx, "9999").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.GetAccountByCode(ctx, "9999")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrMissingAccount)
}

func (suite *AccountServiceTestSuite) TestListAccounts_DefaultsLimit() {
	ctx := context.Background()
	accounts := []domain.Account{
		{AccountID: uuid.NewString(), Code: "1101", Name: "Cash on Hand", AccountType: domain.Asset},
	}

	suite.mockAccountRepo.On("ListAccounts", ctx, 100, 0).Return(accounts, nil).Once()

	resp, err := suite.service.ListAccounts(ctx, dto.ListAccountsParams{})

	suite.Require().NoError(err)
	suite.Require().Len(resp.Accounts, 1)
	suite.Equal("1101", resp.Accounts[0].Code)
}

func TestAccountService(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}
