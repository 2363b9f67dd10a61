package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/atlasvoyage/travel_accounting_app/internal/apperrors"
	"github.com/atlasvoyage/travel_accounting_app/internal/core/domain"
	portsrepo "github.com/atlasvoyage/travel_accounting_app/internal/core/ports/repositories"
	portssvc "github.com/atlasvoyage/travel_accounting_app/internal/core/ports/services"
	"github.com/atlasvoyage/travel_accounting_app/internal/dto"
	"github.com/atlasvoyage/travel_accounting_app/internal/middleware"
)

// reconEpsilon absorbs rounding noise when comparing paid totals against
// invoice totals.
var reconEpsilon = decimal.RequireFromString("0.01")

var validPaymentMethods = map[domain.PaymentMethod]bool{
	domain.PaymentCash:         true,
	domain.PaymentBankTransfer: true,
	domain.PaymentCard:         true,
	domain.PaymentCheque:       true,
}

type reconciliationService struct {
	receiptRepo  portsrepo.ReceiptRepositoryWithTx
	invoiceRepo  portsrepo.InvoiceRepositoryWithTx
	bookingRepo  portsrepo.BookingRepositoryWithTx
	sequenceRepo portsrepo.SequenceRepositoryFacade
	journalSvc   portssvc.JournalEngineSvc
}

// NewReconciliationService creates a new reconciliation service.
func NewReconciliationService(
	receiptRepo portsrepo.ReceiptRepositoryWithTx,
	invoiceRepo portsrepo.InvoiceRepositoryWithTx,
	bookingRepo portsrepo.BookingRepositoryWithTx,
	sequenceRepo portsrepo.SequenceRepositoryFacade,
	journalSvc portssvc.JournalEngineSvc,
) portssvc.ReconciliationSvc {
	return &reconciliationService{
		receiptRepo:  receiptRepo,
		invoiceRepo:  invoiceRepo,
		bookingRepo:  bookingRepo,
		sequenceRepo: sequenceRepo,
		journalSvc:   journalSvc,
	}
}

var _ portssvc.ReconciliationSvc = (*reconciliationService)(nil)

// deriveInvoiceStatus applies the epsilon status rule to a summed paid total.
func deriveInvoiceStatus(total, totalPaid decimal.Decimal) domain.InvoiceStatus {
	if total.Sub(totalPaid).Abs().LessThan(reconEpsilon) || totalPaid.GreaterThanOrEqual(total) {
		return domain.InvoicePaid
	}
	if totalPaid.GreaterThan(decimal.Zero) {
		return domain.InvoicePartiallyPaid
	}
	return domain.InvoiceUnpaid
}

func isFullyPaid(total, totalPaid decimal.Decimal) bool {
	return deriveInvoiceStatus(total, totalPaid) == domain.InvoicePaid
}

// applyInvoiceStatusInTx writes the derived status and cascades it to the
// booking: fully paid completes the booking, and removing the payment
// reverts a completed booking to confirmed.
func (s *reconciliationService) applyInvoiceStatusInTx(ctx context.Context, tx pgx.Tx, invoice *domain.Invoice, totalPaid decimal.Decimal, userID string, now time.Time) error {
	status := deriveInvoiceStatus(invoice.Total, totalPaid)
	if err := s.invoiceRepo.UpdateInvoiceStatusAndPaidInTx(ctx, tx, invoice.InvoiceID, status, totalPaid, userID, now); err != nil {
		return fmt.Errorf("failed to update invoice %s: %w", invoice.InvoiceNumber, err)
	}

	booking, err := s.bookingRepo.FindBookingByID(ctx, invoice.BookingID)
	if err != nil {
		return fmt.Errorf("failed to find booking for invoice %s: %w", invoice.InvoiceNumber, err)
	}

	switch {
	case status == domain.InvoicePaid && booking.Status == domain.BookingConfirmed:
		if err := s.bookingRepo.UpdateBookingStatusInTx(ctx, tx, booking.BookingID, domain.BookingComplete, "", userID, now); err != nil {
			return fmt.Errorf("failed to complete booking %s: %w", booking.BookingNumber, err)
		}
	case status != domain.InvoicePaid && booking.Status == domain.BookingComplete:
		if err := s.bookingRepo.UpdateBookingStatusInTx(ctx, tx, booking.BookingID, domain.BookingConfirmed, "", userID, now); err != nil {
			return fmt.Errorf("failed to revert booking %s: %w", booking.BookingNumber, err)
		}
	}
	return nil
}

// checkOverpayment rejects a candidate amount that exceeds the invoice's
// remaining balance, carrying the amounts for diagnostics.
func checkOverpayment(invoice *domain.Invoice, paidExcluding, candidate decimal.Decimal) error {
	if isFullyPaid(invoice.Total, paidExcluding) {
		return apperrors.NewAppError(400, fmt.Sprintf("invoice %s is already fully paid (total %s, paid %s)",
			invoice.InvoiceNumber, invoice.Total.String(), paidExcluding.String()), apperrors.ErrValidation)
	}
	remaining := invoice.Total.Sub(paidExcluding)
	// An excess of epsilon or more is an overpayment; shortfalls inside the
	// window still settle the invoice via deriveInvoiceStatus.
	if candidate.Sub(remaining).GreaterThanOrEqual(reconEpsilon) {
		return apperrors.NewAppError(400, fmt.Sprintf("amount %s exceeds remaining balance %s on invoice %s",
			candidate.String(), remaining.String(), invoice.InvoiceNumber), apperrors.ErrValidation)
	}
	return nil
}

func (s *reconciliationService) RecordReceipt(ctx context.Context, req dto.CreateReceiptRequest, userID string) (*domain.Receipt, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	method := domain.PaymentMethod(req.PaymentMethod)
	if !validPaymentMethods[method] {
		return nil, fmt.Errorf("%w: unknown payment method %q", apperrors.ErrValidation, req.PaymentMethod)
	}
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: receipt amount must be positive", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	receiptDate := now
	if req.ReceiptDate != nil {
		receiptDate = *req.ReceiptDate
	}

	seq, err := s.sequenceRepo.Next(ctx, seqReceipt, yearPeriod(now))
	if err != nil {
		return nil, fmt.Errorf("failed to allocate receipt number: %w", err)
	}

	receipt := &domain.Receipt{
		ReceiptID:           uuid.NewString(),
		ReceiptNumber:       formatReceiptNumber(now.Year(), seq),
		CustomerID:          req.CustomerID,
		InvoiceID:           req.InvoiceID,
		Amount:              req.Amount,
		PaymentMethod:       method,
		BankAccountCurrency: req.BankAccountCurrency,
		ReceiptDate:         receiptDate,
		Status:              domain.ReceiptActive,
		Notes:               req.Notes,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	tx, err := s.invoiceRepo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = s.invoiceRepo.Rollback(ctx, tx) }()

	if req.InvoiceID != "" {
		invoice, err := s.invoiceRepo.FindInvoiceByIDForUpdate(ctx, tx, req.InvoiceID)
		if err != nil {
			return nil, fmt.Errorf("failed to find invoice %s: %w", req.InvoiceID, err)
		}
		if invoice.Status == domain.InvoiceCancelled {
			return nil, fmt.Errorf("%w: invoice %s is cancelled", apperrors.ErrConflict, invoice.InvoiceNumber)
		}

		paidExcluding, err := s.receiptRepo.SumActiveReceiptsForInvoiceInTx(ctx, tx, req.InvoiceID, "")
		if err != nil {
			return nil, fmt.Errorf("failed to sum receipts for invoice %s: %w", invoice.InvoiceNumber, err)
		}
		if err := checkOverpayment(invoice, paidExcluding, req.Amount); err != nil {
			return nil, err
		}

		if err := s.receiptRepo.SaveReceiptInTx(ctx, tx, *receipt); err != nil {
			return nil, fmt.Errorf("failed to save receipt: %w", err)
		}
		if err := s.applyInvoiceStatusInTx(ctx, tx, invoice, paidExcluding.Add(req.Amount), userID, now); err != nil {
			return nil, err
		}
	} else {
		if err := s.receiptRepo.SaveReceiptInTx(ctx, tx, *receipt); err != nil {
			return nil, fmt.Errorf("failed to save receipt: %w", err)
		}
	}

	if err := s.invoiceRepo.Commit(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to commit receipt transaction: %w", err)
	}

	if _, err := s.journalSvc.CreateReceiptEntry(ctx, receipt, userID); err != nil {
		logger.Error("Cash entry creation failed for receipt",
			slog.String("receipt_number", receipt.ReceiptNumber), slog.String("error", err.Error()))
		return receipt, fmt.Errorf("receipt %s recorded but cash entry failed: %w", receipt.ReceiptNumber, err)
	}

	logger.Info("Receipt recorded", slog.String("receipt_number", receipt.ReceiptNumber))
	return receipt, nil
}

func (s *reconciliationService) UpdateReceipt(ctx context.Context, receiptID string, req dto.UpdateReceiptRequest, userID string) (*domain.Receipt, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	receipt, err := s.receiptRepo.FindReceiptByID(ctx, receiptID)
	if err != nil {
		return nil, fmt.Errorf("failed to find receipt %s: %w", receiptID, err)
	}
	if receipt.Status != domain.ReceiptActive {
		return nil, fmt.Errorf("%w: receipt %s is cancelled", apperrors.ErrConflict, receipt.ReceiptNumber)
	}

	entryAffected := false
	if req.Amount != nil {
		if req.Amount.LessThanOrEqual(decimal.Zero) {
			return nil, fmt.Errorf("%w: receipt amount must be positive", apperrors.ErrValidation)
		}
		if !req.Amount.Equal(receipt.Amount) {
			entryAffected = true
		}
	}
	if req.PaymentMethod != nil {
		method := domain.PaymentMethod(*req.PaymentMethod)
		if !validPaymentMethods[method] {
			return nil, fmt.Errorf("%w: unknown payment method %q", apperrors.ErrValidation, *req.PaymentMethod)
		}
		if method != receipt.PaymentMethod {
			entryAffected = true
		}
	}

	now := time.Now().UTC()
	if req.Amount != nil {
		receipt.Amount = *req.Amount
	}
	if req.PaymentMethod != nil {
		receipt.PaymentMethod = domain.PaymentMethod(*req.PaymentMethod)
	}
	if req.Notes != nil {
		receipt.Notes = *req.Notes
	}
	receipt.LastUpdatedAt = now
	receipt.LastUpdatedBy = userID

	tx, err := s.invoiceRepo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = s.invoiceRepo.Rollback(ctx, tx) }()

	if receipt.InvoiceID != "" {
		invoice, err := s.invoiceRepo.FindInvoiceByIDForUpdate(ctx, tx, receipt.InvoiceID)
		if err != nil {
			return nil, fmt.Errorf("failed to find invoice %s: %w", receipt.InvoiceID, err)
		}
		paidExcluding, err := s.receiptRepo.SumActiveReceiptsForInvoiceInTx(ctx, tx, receipt.InvoiceID, receipt.ReceiptID)
		if err != nil {
			return nil, fmt.Errorf("failed to sum receipts for invoice %s: %w", invoice.InvoiceNumber, err)
		}
		remaining := invoice.Total.Sub(paidExcluding)
		if receipt.Amount.Sub(remaining).GreaterThanOrEqual(reconEpsilon) {
			return nil, apperrors.NewAppError(400, fmt.Sprintf("amount %s exceeds remaining balance %s on invoice %s",
				receipt.Amount.String(), remaining.String(), invoice.InvoiceNumber), apperrors.ErrValidation)
		}

		if err := s.receiptRepo.UpdateReceiptInTx(ctx, tx, *receipt); err != nil {
			return nil, fmt.Errorf("failed to update receipt %s: %w", receipt.ReceiptNumber, err)
		}
		if err := s.applyInvoiceStatusInTx(ctx, tx, invoice, paidExcluding.Add(receipt.Amount), userID, now); err != nil {
			return nil, err
		}
	} else {
		if err := s.receiptRepo.UpdateReceiptInTx(ctx, tx, *receipt); err != nil {
			return nil, fmt.Errorf("failed to update receipt %s: %w", receipt.ReceiptNumber, err)
		}
	}

	if err := s.invoiceRepo.Commit(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to commit receipt update: %w", err)
	}

	// The cash entry is touched only once the amended receipt has committed;
	// a rejected update leaves the posted entry untouched. The old entry must
	// be reversed before the replacement is created, otherwise the
	// regeneration short-circuits on the still-active entry.
	if entryAffected {
		if err := s.journalSvc.ReverseReceiptEntry(ctx, receipt, userID); err != nil {
			logger.Error("Cash entry reversal failed for receipt",
				slog.String("receipt_number", receipt.ReceiptNumber), slog.String("error", err.Error()))
			return receipt, fmt.Errorf("receipt %s updated but cash entry failed: %w", receipt.ReceiptNumber, err)
		}
		if _, err := s.journalSvc.CreateReceiptEntry(ctx, receipt, userID); err != nil {
			logger.Error("Cash entry regeneration failed for receipt",
				slog.String("receipt_number", receipt.ReceiptNumber), slog.String("error", err.Error()))
			return receipt, fmt.Errorf("receipt %s updated but cash entry failed: %w", receipt.ReceiptNumber, err)
		}
	}

	logger.Info("Receipt updated", slog.String("receipt_number", receipt.ReceiptNumber))
	return receipt, nil
}

func (s *reconciliationService) CancelReceipt(ctx context.Context, receiptID string, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	receipt, err := s.receiptRepo.FindReceiptByID(ctx, receiptID)
	if err != nil {
		return fmt.Errorf("failed to find receipt %s: %w", receiptID, err)
	}
	if receipt.Status == domain.ReceiptCancelled {
		// The status flip and the cash reversal commit separately, so a
		// repeated cancellation retries the reversal instead of conflicting.
		// ReverseReceiptEntry is a no-op once no active entry remains.
		if err := s.journalSvc.ReverseReceiptEntry(ctx, receipt, userID); err != nil {
			return fmt.Errorf("receipt %s cancelled but cash entry reversal failed: %w", receipt.ReceiptNumber, err)
		}
		logger.Info("Receipt already cancelled, cash reversal verified", slog.String("receipt_number", receipt.ReceiptNumber))
		return nil
	}

	now := time.Now().UTC()
	receipt.Status = domain.ReceiptCancelled
	receipt.LastUpdatedAt = now
	receipt.LastUpdatedBy = userID

	tx, err := s.invoiceRepo.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = s.invoiceRepo.Rollback(ctx, tx) }()

	if err := s.receiptRepo.UpdateReceiptInTx(ctx, tx, *receipt); err != nil {
		return fmt.Errorf("failed to cancel receipt %s: %w", receipt.ReceiptNumber, err)
	}

	if receipt.InvoiceID != "" {
		invoice, err := s.invoiceRepo.FindInvoiceByIDForUpdate(ctx, tx, receipt.InvoiceID)
		if err != nil {
			return fmt.Errorf("failed to find invoice %s: %w", receipt.InvoiceID, err)
		}
		totalPaid, err := s.receiptRepo.SumActiveReceiptsForInvoiceInTx(ctx, tx, receipt.InvoiceID, receipt.ReceiptID)
		if err != nil {
			return fmt.Errorf("failed to sum receipts for invoice %s: %w", invoice.InvoiceNumber, err)
		}
		if err := s.applyInvoiceStatusInTx(ctx, tx, invoice, totalPaid, userID, now); err != nil {
			return err
		}
	}

	if err := s.invoiceRepo.Commit(ctx, tx); err != nil {
		return fmt.Errorf("failed to commit receipt cancellation: %w", err)
	}

	if err := s.journalSvc.ReverseReceiptEntry(ctx, receipt, userID); err != nil {
		logger.Error("Cash entry reversal failed for receipt",
			slog.String("receipt_number", receipt.ReceiptNumber), slog.String("error", err.Error()))
		return fmt.Errorf("receipt %s cancelled but cash entry reversal failed: %w", receipt.ReceiptNumber, err)
	}

	logger.Info("Receipt cancelled", slog.String("receipt_number", receipt.ReceiptNumber))
	return nil
}

func (s *reconciliationService) GetReceiptByID(ctx context.Context, receiptID string) (*domain.Receipt, error) {
	receipt, err := s.receiptRepo.FindReceiptByID(ctx, receiptID)
	if err != nil {
		return nil, fmt.Errorf("failed to get receipt %s: %w", receiptID, err)
	}
	return receipt, nil
}

func (s *reconciliationService) ListReceiptsForInvoice(ctx context.Context, invoiceID string) ([]domain.Receipt, error) {
	receipts, err := s.receiptRepo.ListReceiptsByInvoice(ctx, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list receipts for invoice %s: %w", invoiceID, err)
	}
	return receipts, nil
}

func (s *reconciliationService) GetInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to get invoice %s: %w", invoiceID, err)
	}
	return invoice, nil
}

func (s *reconciliationService) ListInvoices(ctx context.Context, params dto.ListInvoicesParams) (*dto.ListInvoicesResponse, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	invoices, err := s.invoiceRepo.ListInvoices(ctx, limit, params.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}

	resp := &dto.ListInvoicesResponse{Invoices: make([]dto.InvoiceResponse, len(invoices))}
	for i := range invoices {
		resp.Invoices[i] = dto.ToInvoiceResponse(&invoices[i])
	}
	return resp, nil
}
