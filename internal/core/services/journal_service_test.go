package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/atlasvoyage/travel_accounting_app/internal/apperrors"
	"github.com/atlasvoyage/travel_accounting_app/internal/core/domain"
	portssvc "github.com/atlasvoyage/travel_accounting_app/internal/core/ports/services"
	"github.com/atlasvoyage/travel_accounting_app/internal/core/services"
)

type JournalServiceTestSuite struct {
	suite.Suite
	mockJournalRepo  *MockJournalRepository
	mockAccountRepo  *MockAccountRepository
	mockSequenceRepo *MockSequenceRepository
	service          portssvc.JournalSvcFacade
	receivable       domain.Account
	revenueHotel     domain.Account
	vatPayable       domain.Account
	commissionExp    domain.Account
	commissionPay    domain.Account
	userID           string
}

func (suite *JournalServiceTestSuite) SetupTest() {
	suite.mockJournalRepo = new(MockJournalRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockSequenceRepo = new(MockSequenceRepository)
	suite.service = services.NewJournalService(suite.mockJournalRepo, suite.mockAccountRepo, suite.mockSequenceRepo, "AED")

	suite.userID = uuid.NewString()
	suite.receivable = domain.Account{AccountID: uuid.NewString(), Code: "1201", AccountType: domain.Asset, IsActive: true}
	suite.revenueHotel = domain.Account{AccountID: uuid.NewString(), Code: "4102", AccountType: domain.Revenue, IsActive: true}
	suite.vatPayable = domain.Account{AccountID: uuid.NewString(), Code: "2301", AccountType: domain.Liability, IsActive: true}
	suite.commissionExp = domain.Account{AccountID: uuid.NewString(), Code: "6101", AccountType: domain.Expense, IsActive: true}
	suite.commissionPay = domain.Account{AccountID: uuid.NewString(), Code: "2401", AccountType: domain.Liability, IsActive: true}
}

func (suite *JournalServiceTestSuite) hotelBooking() *domain.Booking {
	return &domain.Booking{
		BookingID:     uuid.NewString(),
		BookingNumber: "BKG-2026-000042",
		ServiceType:   domain.ServiceHotel,
		IsUAE:         true,
		NetBeforeVAT:  decimal.NewFromInt(1000),
		VATAmount:     decimal.NewFromInt(50),
		CostBase:      decimal.NewFromInt(800),
	}
}

func (suite *JournalServiceTestSuite) TestCreateRevenueEntry_Success() {
	ctx := context.Background()
	booking := suite.hotelBooking()

	suite.mockJournalRepo.On("FindEntriesBySource", ctx, domain.SourceBooking, booking.BookingID).Return([]domain.JournalEntry{}, nil).Once()
	suite.mockAccountRepo.On("FindAccountByCode", ctx, "1201").Return(&suite.receivable, nil).Once()
	suite.mockAccountRepo.On("FindAccountByCode", ctx, "4102").Return(&suite.revenueHotel, nil).Once()
	suite.mockSequenceRepo.On("Next", ctx, "journal_entry", "").Return(int64(7), nil).Once()
	suite.mockJournalRepo.On("SaveEntry", ctx, mock.AnythingOfType("domain.JournalEntry")).Return(nil).Once()
	suite.mockJournalRepo.On("PostEntry", ctx, mock.AnythingOfType("string"), suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	entry, err := suite.service.CreateRevenueEntry(ctx, booking, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(entry)
	suite.Equal("JE-000007", entry.EntryNumber)
	suite.Equal(suite.receivable.AccountID, entry.DebitAccountID)
	suite.Equal(suite.revenueHotel.AccountID, entry.CreditAccountID)
	suite.True(entry.Amount.Equal(booking.NetBeforeVAT))
	suite.Equal(domain.TxnBookingRevenue, entry.TransactionType)
	suite.Equal(domain.EntryPosted, entry.Status)
	suite.Equal(booking.BookingNumber, entry.Reference)

	suite.mockJournalRepo.AssertExpectations(suite.T())
	suite.mockAccountRepo.AssertExpectations(suite.T())
	suite.mockSequenceRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestCreateRevenueEntry_IdempotentOnActiveEntry() {
	ctx := context.Background()
	booking := suite.hotelBooking()
	existing := domain.JournalEntry{
		EntryID:         uuid.NewString(),
		EntryNumber:     "JE-000003",
		TransactionType: domain.TxnBookingRevenue,
		SourceType:      domain.SourceBooking,
		SourceID:        booking.BookingID,
		Status:          domain.EntryPosted,
		Amount:          booking.NetBeforeVAT,
	}

	suite.mockJournalRepo.On("FindEntriesBySource", ctx, domain.SourceBooking, booking.BookingID).Return([]domain.JournalEntry{existing}, nil).Once()

	entry, err := suite.service.CreateRevenueEntry(ctx, booking, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(entry)
	suite.Equal(existing.EntryID, entry.EntryID)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveEntry", mock.Anything, mock.Anything)
	suite.mockSequenceRepo.AssertNotCalled(suite.T(), "Next", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestCreateRevenueEntry_ReversedEntryDoesNotBlockRecreation() {
	ctx := context.Background()
	booking := suite.hotelBooking()
	reversed := domain.JournalEntry{
		EntryID:           uuid.NewString(),
		TransactionType:   domain.TxnBookingRevenue,
		ReversedByEntryID: uuid.NewString(),
		Amount:            booking.NetBeforeVAT,
	}

	suite.mockJournalRepo.On("FindEntriesBySource", ctx, domain.SourceBooking, booking.BookingID).Return([]domain.JournalEntry{reversed}, nil).Once()
	suite.mockAccountRepo.On("FindAccountByCode", ctx, "1201").Return(&suite.receivable, nil).Once()
	suite.mockAccountRepo.On("FindAccountByCode", ctx, "4102").Return(&suite.revenueHotel, nil).Once()
	suite.mockSequenceRepo.On("Next", ctx, "journal_entry", "").Return(int64(9), nil).Once()
	suite.mockJournalRepo.On("SaveEntry", ctx, mock.AnythingOfType("domain.JournalEntry")).Return(nil).Once()
	suite.mockJournalRepo.On("PostEntry", ctx, mock.AnythingOfType("string"), suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	entry, err := suite.service.CreateRevenueEntry(ctx, booking, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(entry)
	suite.NotEqual(reversed.EntryID, entry.EntryID)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestCreateRevenueEntry_MissingReceivableAccount() {
	ctx := context.Background()
	booking := suite.hotelBooking()

	suite.mockJournalRepo.On("FindEntriesBySource", ctx, domain.SourceBooking, booking.BookingID).Return([]domain.JournalEntry{}, nil).Once()
	suite.mockAccountRepo.On("FindAccountByCode", ctx, "1201").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.CreateRevenueEntry(ctx, booking, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrMissingAccount)
	suite.Contains(err.Error(), "1201")
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveEntry", mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestCreateVATEntry_ZeroVATIsNoOp() {
	ctx := context.Background()
	booking := suite.hotelBooking()
	booking.VATAmount = decimal.Zero

	entry, err := suite.service.CreateVATEntry(ctx, booking, suite.userID)

	suite.Require().NoError(err)
	suite.Nil(entry)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "FindEntriesBySource", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestCreateVATEntry_UAERegimeType() {
	ctx := context.Background()
	booking := suite.hotelBooking()

	suite.mockJournalRepo.On("FindEntriesBySource", ctx, domain.SourceBooking, booking.BookingID).Return([]domain.JournalEntry{}, nil).Once()
	suite.mockAccountRepo.On("FindAccountByCode", ctx, "1201").Return(&suite.receivable, nil).Once()
	suite.mockAccountRepo.On("FindAccountByCode", ctx, "2301").Return(&suite.vatPayable, nil).Once()
	suite.mockSequenceRepo.On("Next", ctx, "journal_entry", "").Return(int64(11), nil).Once()
	suite.mockJournalRepo.On("SaveEntry", ctx, mock.AnythingOfType("domain.JournalEntry")).Return(nil).Once()
	suite.mockJournalRepo.On("PostEntry", ctx, mock.AnythingOfType("string"), suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	entry, err := suite.service.CreateVATEntry(ctx, booking, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(entry)
	suite.Equal(domain.TxnBookingVATUAE, entry.TransactionType)
	suite.True(entry.Amount.Equal(booking.VATAmount))
	suite.Equal(suite.vatPayable.AccountID, entry.CreditAccountID)
}

func (suite *JournalServiceTestSuite) TestCreateVATEntry_NonUAERegimeType() {
	ctx := context.Background()
	booking := suite.hotelBooking()
	booking.IsUAE = false

	suite.mockJournalRepo.On("FindEntriesBySource", ctx, domain.SourceBooking, booking.BookingID).Return([]domain.JournalEntry{}, nil).Once()
	suite.mockAccountRepo.On("FindAccountByCode", ctx, "1201").Return(&suite.receivable, nil).Once()
	suite.mockAccountRepo.On("FindAccountByCode", ctx, "2301").Return(&suite.vatPayable, nil).Once()
	suite.mockSequenceRepo.On("Next", ctx, "journal_entry", "").Return(int64(12), nil).Once()
	suite.mockJournalRepo.On("SaveEntry", ctx, mock.AnythingOfType("domain.JournalEntry")).Return(nil).Once()
	suite.mockJournalRepo.On("PostEntry", ctx, mock.AnythingOfType("string"), suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	entry, err := suite.service.CreateVATEntry(ctx, booking, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(entry)
	suite.Equal(domain.TxnBookingVATNonUAE, entry.TransactionType)
}

func (suite *JournalServiceTestSuite) TestCreateCommissionEntry_ZeroAmountIsNoOp() {
	ctx := context.Background()
	booking := suite.hotelBooking()
	booking.AgentCommissionAmount = decimal.Zero

	entry, err := suite.service.CreateCommissionEntry(ctx, booking, portssvc.CommissionAgent, suite.userID)

	suite.Require().NoError(err)
	suite.Nil(entry)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "FindEntriesBySource", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestCreateCommissionEntry_AgentSplit() {
	ctx := context.Background()
	booking := suite.hotelBooking()
	booking.AgentCommissionAmount = decimal.NewFromInt(30)

	suite.mockJournalRepo.On("FindEntriesBySource", ctx, domain.SourceBooking, booking.BookingID).Return([]domain.JournalEntry{}, nil).Once()
	suite.mockAccountRepo.On("FindAccountByCode", ctx, "6101").Return(&suite.commissionExp, nil).Once()
	suite.mockAccountRepo.On("FindAccountByCode", ctx, "2401").Return(&suite.commissionPay, nil).Once()
	suite.mockSequenceRepo.On("Next", ctx, "journal_entry", "").Return(int64(13), nil).Once()
	suite.mockJournalRepo.On("SaveEntry", ctx, mock.AnythingOfType("domain.JournalEntry")).Return(nil).Once()
	suite.mockJournalRepo.On("PostEntry", ctx, mock.AnythingOfType("string"), suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	entry, err := suite.service.CreateCommissionEntry(ctx, booking, portssvc.CommissionAgent, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(entry)
	suite.Equal(domain.TxnCommissionAgent, entry.TransactionType)
	suite.Equal(suite.commissionExp.AccountID, entry.DebitAccountID)
	suite.Equal(suite.commissionPay.AccountID, entry.CreditAccountID)
	suite.True(entry.Amount.Equal(booking.AgentCommissionAmount))
}

func (suite *JournalServiceTestSuite) TestPostJournalEntry_AlreadyPosted() {
	ctx := context.Background()
	entryID := uuid.NewString()
	posted := domain.JournalEntry{
		EntryID:     entryID,
		EntryNumber: "JE-000005",
		Amount:      decimal.NewFromInt(100),
		Status:      domain.EntryPosted,
	}

	suite.mockJournalRepo.On("FindEntryByID", ctx, entryID).Return(&posted, nil).Once()

	err := suite.service.PostJournalEntry(ctx, entryID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "PostEntry", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestPostJournalEntry_DraftIsPosted() {
	ctx := context.Background()
	entryID := uuid.NewString()
	draft := domain.JournalEntry{
		EntryID:     entryID,
		EntryNumber: "JE-000006",
		Amount:      decimal.NewFromInt(100),
		Status:      domain.EntryDraft,
	}

	suite.mockJournalRepo.On("FindEntryByID", ctx, entryID).Return(&draft, nil).Once()
	suite.mockJournalRepo.On("PostEntry", ctx, entryID, suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	err := suite.service.PostJournalEntry(ctx, entryID, suite.userID)

	suite.Require().NoError(err)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestCreateRefundEntries_NotARefundBooking() {
	ctx := context.Background()
	booking := suite.hotelBooking()

	_, err := suite.service.CreateRefundEntries(ctx, booking, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "FindEntriesBySource", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestCreateRefundEntries_ReversesActiveEntriesOnly() {
	ctx := context.Background()
	originalID := uuid.NewString()
	refund := suite.hotelBooking()
	refund.RefundOfBookingID = originalID

	activeRevenue := domain.JournalEntry{
		EntryID:         uuid.NewString(),
		EntryNumber:     "JE-000020",
		DebitAccountID:  suite.receivable.AccountID,
		CreditAccountID: suite.revenueHotel.AccountID,
		Amount:          decimal.NewFromInt(1000),
		TransactionType: domain.TxnBookingRevenue,
		SourceType:      domain.SourceBooking,
		SourceID:        originalID,
		Status:          domain.EntryPosted,
	}
	alreadyReversed := domain.JournalEntry{
		EntryID:           uuid.NewString(),
		TransactionType:   domain.TxnBookingCost,
		ReversedByEntryID: uuid.NewString(),
		Amount:            decimal.NewFromInt(800),
	}
	receiptEntry := domain.JournalEntry{
		EntryID:         uuid.NewString(),
		TransactionType: domain.TxnReceiptPayment,
		Amount:          decimal.NewFromInt(500),
	}

	suite.mockJournalRepo.On("FindEntriesBySource", ctx, domain.SourceBooking, originalID).Return([]domain.JournalEntry{activeRevenue, alreadyReversed, receiptEntry}, nil).Once()
	suite.mockSequenceRepo.On("Next", ctx, "journal_entry", "").Return(int64(21), nil).Once()
	suite.mockJournalRepo.On("SaveEntry", ctx, mock.AnythingOfType("domain.JournalEntry")).Return(nil).Once()
	suite.mockJournalRepo.On("PostEntry", ctx, mock.AnythingOfType("string"), suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockJournalRepo.On("MarkEntryReversed", ctx, activeRevenue.EntryID, mock.AnythingOfType("string"), suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	created, err := suite.service.CreateRefundEntries(ctx, refund, suite.userID)

	suite.Require().NoError(err)
	suite.Require().Len(created, 1)
	rev := created[0]
	suite.Equal(domain.TxnRefundRevenue, rev.TransactionType)
	suite.Equal(activeRevenue.EntryID, rev.ReversesEntryID)
	suite.Equal(activeRevenue.CreditAccountID, rev.DebitAccountID)
	suite.Equal(activeRevenue.DebitAccountID, rev.CreditAccountID)
	suite.True(rev.Amount.Equal(activeRevenue.Amount))
	suite.Equal(refund.BookingID, rev.SourceID)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestTrialBalance_SkipsParentAccounts() {
	ctx := context.Background()
	parent := domain.Account{AccountID: uuid.NewString(), Code: "1000", AccountType: domain.Asset,
		DebitBalance: decimal.NewFromInt(1050), CreditBalance: decimal.Zero}
	leafCash := domain.Account{AccountID: uuid.NewString(), Code: "1101", AccountType: domain.Asset, ParentAccountID: parent.AccountID,
		DebitBalance: decimal.NewFromInt(1050), CreditBalance: decimal.Zero}
	leafRevenue := domain.Account{AccountID: uuid.NewString(), Code: "4102", AccountType: domain.Revenue,
		DebitBalance: decimal.Zero, CreditBalance: decimal.NewFromInt(1050)}

	suite.mockAccountRepo.On("ListAccounts", ctx, 1000, 0).Return([]domain.Account{parent, leafCash, leafRevenue}, nil).Once()

	resp, err := suite.service.TrialBalance(ctx)

	suite.Require().NoError(err)
	suite.Require().NotNil(resp)
	suite.Len(resp.Rows, 2)
	suite.True(resp.TotalDebit.Equal(decimal.NewFromInt(1050)))
	suite.True(resp.TotalCredit.Equal(decimal.NewFromInt(1050)))
	suite.True(resp.IsBalanced)
}

func TestJournalService(t *testing.T) {
	suite.Run(t, new(JournalServiceTestSuite))
}
