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
	"github.com/atlasvoyage/travel_accounting_app/internal/dto"
)

type CancellationServiceTestSuite struct {
	suite.Suite
	mockBookingRepo  *MockBookingRepository
	mockInvoiceRepo  *MockInvoiceRepository
	mockSequenceRepo *MockSequenceRepository
	mockJournal      *MockJournalEngine
	mockNotifier     *MockNotifier
	service          portssvc.CancellationSvc
	userID           string
	booking          domain.Booking
}

func (suite *CancellationServiceTestSuite) SetupTest() {
	suite.mockBookingRepo = new(MockBookingRepository)
	suite.mockInvoiceRepo = new(MockInvoiceRepository)
	suite.mockSequenceRepo = new(MockSequenceRepository)
	suite.mockJournal = new(MockJournalEngine)
	suite.mockNotifier = new(MockNotifier)
	suite.service = services.NewCancellationService(
		suite.mockBookingRepo,
		suite.mockInvoiceRepo,
		suite.mockSequenceRepo,
		suite.mockJournal,
		suite.mockNotifier,
	)

	suite.userID = uuid.NewString()
	suite.booking = domain.Booking{
		BookingID:             uuid.NewString(),
		BookingNumber:         "BKG-2026-000001",
		ServiceType:           domain.ServiceHotel,
		CustomerID:            uuid.NewString(),
		SaleAmount:            decimal.NewFromInt(1050),
		SaleCurrency:          "AED",
		SaleBase:              decimal.NewFromInt(1050),
		CostAmount:            decimal.NewFromInt(800),
		CostCurrency:          "AED",
		CostBase:              decimal.NewFromInt(800),
		IsUAE:                 true,
		VATApplicable:         true,
		VATRate:               decimal.NewFromInt(5),
		NetBeforeVAT:          decimal.NewFromInt(1000),
		VATAmount:             decimal.NewFromInt(50),
		GrossProfit:           decimal.NewFromInt(200),
		NetProfit:             decimal.NewFromInt(200),
		AgentCommissionAmount: decimal.NewFromInt(20),
		Status:                domain.BookingConfirmed,
	}
}

func (suite *CancellationServiceTestSuite) expectTx() {
	suite.mockBookingRepo.On("Begin", mock.Anything).Return(nil, nil).Once()
	suite.mockBookingRepo.On("Rollback", mock.Anything, mock.Anything).Return(nil)
	suite.mockBookingRepo.On("Commit", mock.Anything, mock.Anything).Return(nil).Once()
}

func (suite *CancellationServiceTestSuite) TestCancelBooking_CreatesNegatedRefundMirror() {
	ctx := context.Background()
	req := dto.CancelBookingRequest{Reason: "customer request"}

	var savedRefund domain.Booking
	suite.mockBookingRepo.On("FindBookingByID", ctx, suite.booking.BookingID).Return(&suite.booking, nil).Once()
	suite.mockSequenceRepo.On("Next", ctx, "refund", mock.AnythingOfType("string")).Return(int64(1), nil).Once()
	suite.expectTx()
	suite.mockInvoiceRepo.On("FindInvoiceByBookingID", ctx, suite.booking.BookingID).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockBookingRepo.On("SaveBookingInTx", ctx, mock.Anything, mock.AnythingOfType("domain.Booking")).Run(func(args mock.Arguments) {
		savedRefund = args.Get(2).(domain.Booking)
	}).Return(nil).Once()
	suite.mockBookingRepo.On("UpdateBookingStatusInTx", ctx, mock.Anything, suite.booking.BookingID, domain.BookingCancelled, mock.AnythingOfType("string"), suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockJournal.On("CreateRefundEntries", ctx, mock.AnythingOfType("*domain.Booking"), suite.userID).Return([]domain.JournalEntry{}, nil).Once()
	suite.mockNotifier.On("Notify", ctx, "booking.cancelled", suite.booking.BookingID, mock.AnythingOfType("string")).Return(nil).Once()

	resp, err := suite.service.CancelBooking(ctx, suite.booking.BookingID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(resp)
	suite.Equal(suite.booking.BookingID, resp.BookingID)
	suite.Contains(resp.RefundBookingNumber, "REFUND-")

	// Every monetary field on the mirror is negated.
	suite.Equal(domain.BookingRefunded, savedRefund.Status)
	suite.Equal(suite.booking.BookingID, savedRefund.RefundOfBookingID)
	suite.True(savedRefund.SaleBase.Equal(decimal.NewFromInt(-1050)))
	suite.True(savedRefund.CostBase.Equal(decimal.NewFromInt(-800)))
	suite.True(savedRefund.NetBeforeVAT.Equal(decimal.NewFromInt(-1000)))
	suite.True(savedRefund.VATAmount.Equal(decimal.NewFromInt(-50)))
	suite.True(savedRefund.AgentCommissionAmount.Equal(decimal.NewFromInt(-20)))
	suite.True(savedRefund.VATRate.Equal(suite.booking.VATRate))

	suite.mockBookingRepo.AssertExpectations(suite.T())
	suite.mockJournal.AssertExpectations(suite.T())
}

func (suite *CancellationServiceTestSuite) TestCancelBooking_PaidInvoiceGetsCreditNote() {
	ctx := context.Background()
	req := dto.CancelBookingRequest{Reason: "flight cancelled by airline"}
	invoice := domain.Invoice{
		InvoiceID:     uuid.NewString(),
		InvoiceNumber: "INV-2026-000001",
		BookingID:     suite.booking.BookingID,
		Total:         decimal.NewFromInt(1050),
		PaidAmount:    decimal.NewFromInt(1050),
		Status:        domain.InvoicePaid,
	}

	var savedNote domain.CreditNote
	suite.mockBookingRepo.On("FindBookingByID", ctx, suite.booking.BookingID).Return(&suite.booking, nil).Once()
	suite.mockSequenceRepo.On("Next", ctx, "refund", mock.AnythingOfType("string")).Return(int64(2), nil).Once()
	suite.expectTx()
	suite.mockInvoiceRepo.On("FindInvoiceByBookingID", ctx, suite.booking.BookingID).Return(&invoice, nil).Once()
	suite.mockInvoiceRepo.On("FindInvoiceByIDForUpdate", ctx, mock.Anything, invoice.InvoiceID).Return(&invoice, nil).Once()
	suite.mockInvoiceRepo.On("SaveCreditNoteInTx", ctx, mock.Anything, mock.AnythingOfType("domain.CreditNote")).Run(func(args mock.Arguments) {
		savedNote = args.Get(2).(domain.CreditNote)
	}).Return(nil).Once()
	suite.mockInvoiceRepo.On("UpdateInvoiceStatusAndPaidInTx", ctx, mock.Anything, invoice.InvoiceID, domain.InvoiceCancelled, mock.Anything, suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockBookingRepo.On("SaveBookingInTx", ctx, mock.Anything, mock.AnythingOfType("domain.Booking")).Return(nil).Once()
	suite.mockBookingRepo.On("UpdateBookingStatusInTx", ctx, mock.Anything, suite.booking.BookingID, domain.BookingCancelled, mock.AnythingOfType("string"), suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockJournal.On("CreateRefundEntries", ctx, mock.AnythingOfType("*domain.Booking"), suite.userID).Return([]domain.JournalEntry{}, nil).Once()
	suite.mockNotifier.On("Notify", ctx, "booking.cancelled", suite.booking.BookingID, mock.AnythingOfType("string")).Return(nil).Once()

	_, err := suite.service.CancelBooking(ctx, suite.booking.BookingID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(invoice.InvoiceID, savedNote.InvoiceID)
	suite.True(savedNote.Amount.Equal(invoice.Total))
	suite.Equal(req.Reason, savedNote.Reason)
	suite.mockInvoiceRepo.AssertExpectations(suite.T())
}

func (suite *CancellationServiceTestSuite) TestCancelBooking_UnpaidInvoiceSkipsCreditNote() {
	ctx := context.Background()
	req := dto.CancelBookingRequest{Reason: "duplicate booking"}
	invoice := domain.Invoice{
		InvoiceID:     uuid.NewString(),
		InvoiceNumber: "INV-2026-000002",
		BookingID:     suite.booking.BookingID,
		Total:         decimal.NewFromInt(1050),
		Status:        domain.InvoiceUnpaid,
	}

	suite.mockBookingRepo.On("FindBookingByID", ctx, suite.booking.BookingID).Return(&suite.booking, nil).Once()
	suite.mockSequenceRepo.On("Next", ctx, "refund", mock.AnythingOfType("string")).Return(int64(3), nil).Once()
	suite.expectTx()
	suite.mockInvoiceRepo.On("FindInvoiceByBookingID", ctx, suite.booking.BookingID).Return(&invoice, nil).Once()
	suite.mockInvoiceRepo.On("FindInvoiceByIDForUpdate", ctx, mock.Anything, invoice.InvoiceID).Return(&invoice, nil).Once()
	suite.mockInvoiceRepo.On("UpdateInvoiceStatusAndPaidInTx", ctx, mock.Anything, invoice.InvoiceID, domain.InvoiceCancelled, mock.Anything, suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockBookingRepo.On("SaveBookingInTx", ctx, mock.Anything, mock.AnythingOfType("domain.Booking")).Return(nil).Once()
	suite.mockBookingRepo.On("UpdateBookingStatusInTx", ctx, mock.Anything, suite.booking.BookingID, domain.BookingCancelled, mock.AnythingOfType("string"), suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockJournal.On("CreateRefundEntries", ctx, mock.AnythingOfType("*domain.Booking"), suite.userID).Return([]domain.JournalEntry{}, nil).Once()
	suite.mockNotifier.On("Notify", ctx, "booking.cancelled", suite.booking.BookingID, mock.AnythingOfType("string")).Return(nil).Once()

	_, err := suite.service.CancelBooking(ctx, suite.booking.BookingID, req, suite.userID)

	suite.Require().NoError(err)
	suite.mockInvoiceRepo.AssertNotCalled(suite.T(), "SaveCreditNoteInTx", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *CancellationServiceTestSuite) TestCancelBooking_AlreadyCancelled() {
	ctx := context.Background()
	cancelled := suite.booking
	cancelled.Status = domain.BookingCancelled

	suite.mockBookingRepo.On("FindBookingByID", ctx, suite.booking.BookingID).Return(&cancelled, nil).Once()

	_, err := suite.service.CancelBooking(ctx, suite.booking.BookingID, dto.CancelBookingRequest{Reason: "x"}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockSequenceRepo.AssertNotCalled(suite.T(), "Next", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *CancellationServiceTestSuite) TestCancelBooking_RefundMirrorRejected() {
	ctx := context.Background()
	refund := suite.booking
	refund.Status = domain.BookingRefunded
	refund.RefundOfBookingID = uuid.NewString()

	suite.mockBookingRepo.On("FindBookingByID", ctx, suite.booking.BookingID).Return(&refund, nil).Once()

	_, err := suite.service.CancelBooking(ctx, suite.booking.BookingID, dto.CancelBookingRequest{Reason: "x"}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
}

func TestCancellationService(t *testing.T) {
	suite.Run(t, new(CancellationServiceTestSuite))
}
