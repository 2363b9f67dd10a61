package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/atlasvoyage/travel_accounting_app/internal/apperrors"
	"github.com/atlasvoyage/travel_accounting_app/internal/core/domain"
	portsrepo "github.com/atlasvoyage/travel_accounting_app/internal/core/ports/repositories"
	portssvc "github.com/atlasvoyage/travel_accounting_app/internal/core/ports/services"
	"github.com/atlasvoyage/travel_accounting_app/internal/dto"
	"github.com/atlasvoyage/travel_accounting_app/internal/middleware"
)

type cancellationService struct {
	bookingRepo  portsrepo.BookingRepositoryWithTx
	invoiceRepo  portsrepo.InvoiceRepositoryWithTx
	sequenceRepo portsrepo.SequenceRepositoryFacade
	journalSvc   portssvc.JournalEngineSvc
	notifier     portssvc.NotificationSink
}

// NewCancellationService creates a new cancellation service.
func NewCancellationService(
	bookingRepo portsrepo.BookingRepositoryWithTx,
	invoiceRepo portsrepo.InvoiceRepositoryWithTx,
	sequenceRepo portsrepo.SequenceRepositoryFacade,
	journalSvc portssvc.JournalEngineSvc,
	notifier portssvc.NotificationSink,
) portssvc.CancellationSvc {
	return &cancellationService{
		bookingRepo:  bookingRepo,
		invoiceRepo:  invoiceRepo,
		sequenceRepo: sequenceRepo,
		journalSvc:   journalSvc,
		notifier:     notifier,
	}
}

var _ portssvc.CancellationSvc = (*cancellationService)(nil)

// buildRefundBooking mirrors the original booking with every monetary field
// negated, including per-supplier cost lines.
func buildRefundBooking(original *domain.Booking, refundNumber string, reason string, userID string, now time.Time) *domain.Booking {
	refundID := uuid.NewString()
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     userID,
		LastUpdatedAt: now,
		LastUpdatedBy: userID,
	}

	refund := &domain.Booking{
		BookingID:     refundID,
		BookingNumber: refundNumber,
		ServiceType:   original.ServiceType,
		CustomerID:    original.CustomerID,
		EmployeeID:    original.EmployeeID,

		CostAmount:   original.CostAmount.Neg(),
		CostCurrency: original.CostCurrency,
		SaleAmount:   original.SaleAmount.Neg(),
		SaleCurrency: original.SaleCurrency,
		CostBase:     original.CostBase.Neg(),
		SaleBase:     original.SaleBase.Neg(),

		IsUAE:         original.IsUAE,
		VATApplicable: original.VATApplicable,
		VATRate:       original.VATRate,

		NetBeforeVAT: original.NetBeforeVAT.Neg(),
		VATAmount:    original.VATAmount.Neg(),
		GrossProfit:  original.GrossProfit.Neg(),
		NetProfit:    original.NetProfit.Neg(),

		AgentCommissionRate:   original.AgentCommissionRate,
		AgentCommissionAmount: original.AgentCommissionAmount.Neg(),
		CSCommissionRate:      original.CSCommissionRate,
		CSCommissionAmount:    original.CSCommissionAmount.Neg(),
		TotalCommission:       original.TotalCommission.Neg(),

		Status:            domain.BookingRefunded,
		Notes:             fmt.Sprintf("Refund of booking %s: %s", original.BookingNumber, reason),
		RefundOfBookingID: original.BookingID,
		AuditFields:       audit,
	}

	for _, line := range original.SupplierLines {
		refund.SupplierLines = append(refund.SupplierLines, domain.BookingSupplierLine{
			LineID:       uuid.NewString(),
			BookingID:    refundID,
			SupplierName: line.SupplierName,
			CostAmount:   line.CostAmount.Neg(),
			CostCurrency: line.CostCurrency,
			CostBase:     line.CostBase.Neg(),
			AuditFields:  audit,
		})
	}
	return refund
}

func (s *cancellationService) CancelBooking(ctx context.Context, bookingID string, req dto.CancelBookingRequest, userID string) (*dto.CancelBookingResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	booking, err := s.bookingRepo.FindBookingByID(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("failed to find booking %s: %w", bookingID, err)
	}
	if booking.Status == domain.BookingCancelled {
		return nil, fmt.Errorf("%w: booking %s is already cancelled", apperrors.ErrConflict, booking.BookingNumber)
	}
	if booking.Status == domain.BookingRefunded || booking.RefundOfBookingID != "" {
		return nil, fmt.Errorf("%w: booking %s is a refund booking and cannot be cancelled", apperrors.ErrConflict, booking.BookingNumber)
	}

	now := time.Now().UTC()
	seq, err := s.sequenceRepo.Next(ctx, seqRefund, yearPeriod(now))
	if err != nil {
		return nil, fmt.Errorf("failed to allocate refund number: %w", err)
	}
	refund := buildRefundBooking(booking, formatRefundNumber(now.Year(), seq), req.Reason, userID, now)

	tx, err := s.bookingRepo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = s.bookingRepo.Rollback(ctx, tx) }()

	invoice, err := s.invoiceRepo.FindInvoiceByBookingID(ctx, bookingID)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to find invoice for booking %s: %w", booking.BookingNumber, err)
	}
	if invoice != nil {
		locked, err := s.invoiceRepo.FindInvoiceByIDForUpdate(ctx, tx, invoice.InvoiceID)
		if err != nil {
			return nil, fmt.Errorf("failed to lock invoice %s: %w", invoice.InvoiceNumber, err)
		}

		// A paid invoice means collected money is owed back: record a
		// credit note before cancelling.
		if locked.Status == domain.InvoicePaid {
			note := domain.CreditNote{
				CreditNoteID: uuid.NewString(),
				InvoiceID:    locked.InvoiceID,
				BookingID:    booking.BookingID,
				Amount:       locked.Total,
				Reason:       req.Reason,
				AuditFields: domain.AuditFields{
					CreatedAt:     now,
					CreatedBy:     userID,
					LastUpdatedAt: now,
					LastUpdatedBy: userID,
				},
			}
			if err := s.invoiceRepo.SaveCreditNoteInTx(ctx, tx, note); err != nil {
				return nil, fmt.Errorf("failed to save credit note for invoice %s: %w", locked.InvoiceNumber, err)
			}
		}

		if err := s.invoiceRepo.UpdateInvoiceStatusAndPaidInTx(ctx, tx, locked.InvoiceID, domain.InvoiceCancelled, locked.PaidAmount, userID, now); err != nil {
			return nil, fmt.Errorf("failed to cancel invoice %s: %w", locked.InvoiceNumber, err)
		}
	}

	if err := s.bookingRepo.SaveBookingInTx(ctx, tx, *refund); err != nil {
		return nil, fmt.Errorf("failed to save refund booking: %w", err)
	}

	cancelNote := fmt.Sprintf("Cancelled: %s (refund %s)", req.Reason, refund.BookingNumber)
	if err := s.bookingRepo.UpdateBookingStatusInTx(ctx, tx, booking.BookingID, domain.BookingCancelled, cancelNote, userID, now); err != nil {
		return nil, fmt.Errorf("failed to cancel booking %s: %w", booking.BookingNumber, err)
	}

	if err := s.bookingRepo.Commit(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to commit cancellation: %w", err)
	}

	if _, err := s.journalSvc.CreateRefundEntries(ctx, refund, userID); err != nil {
		logger.Error("Reversal entry creation failed for refund booking",
			slog.String("refund_number", refund.BookingNumber), slog.String("error", err.Error()))
		return nil, fmt.Errorf("booking %s cancelled but reversal entries failed: %w", booking.BookingNumber, err)
	}

	logger.Info("Booking cancelled",
		slog.String("booking_number", booking.BookingNumber),
		slog.String("refund_number", refund.BookingNumber))
	if s.notifier != nil {
		if err := s.notifier.Notify(ctx, "booking.cancelled", booking.BookingID, fmt.Sprintf("Booking %s cancelled, refund %s", booking.BookingNumber, refund.BookingNumber)); err != nil {
			logger.Warn("Notification delivery failed", slog.String("error", err.Error()))
		}
	}

	return &dto.CancelBookingResponse{
		BookingID:           booking.BookingID,
		RefundBookingID:     refund.BookingID,
		RefundBookingNumber: refund.BookingNumber,
	}, nil
}
