package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/atlasvoyage/travel_accounting_app/internal/apperrors"
	"github.com/atlasvoyage/travel_accounting_app/internal/core/domain"
	portsrepo "github.com/atlasvoyage/travel_accounting_app/internal/core/ports/repositories"
	portssvc "github.com/atlasvoyage/travel_accounting_app/internal/core/ports/services"
	"github.com/atlasvoyage/travel_accounting_app/internal/dto"
	"github.com/atlasvoyage/travel_accounting_app/internal/middleware"
	"github.com/atlasvoyage/travel_accounting_app/internal/utils/finance"
)

var validServiceTypes = map[domain.ServiceType]bool{
	domain.ServiceFlight:   true,
	domain.ServiceHotel:    true,
	domain.ServiceVisa:     true,
	domain.ServicePackage:  true,
	domain.ServiceTransfer: true,
	domain.ServiceOther:    true,
}

type bookingService struct {
	bookingRepo    portsrepo.BookingRepositoryWithTx
	invoiceRepo    portsrepo.InvoiceRepositoryWithTx
	employeeRepo   portsrepo.EmployeeRepositoryFacade
	rateRepo       portsrepo.ExchangeRateRepositoryFacade
	sequenceRepo   portsrepo.SequenceRepositoryFacade
	journalSvc     portssvc.JournalEngineSvc
	notifier       portssvc.NotificationSink
	baseCurrency   string
	defaultVATRate decimal.Decimal
}

// NewBookingService creates a new booking service.
func NewBookingService(
	bookingRepo portsrepo.BookingRepositoryWithTx,
	invoiceRepo portsrepo.InvoiceRepositoryWithTx,
	employeeRepo portsrepo.EmployeeRepositoryFacade,
	rateRepo portsrepo.ExchangeRateRepositoryFacade,
	sequenceRepo portsrepo.SequenceRepositoryFacade,
	journalSvc portssvc.JournalEngineSvc,
	notifier portssvc.NotificationSink,
	baseCurrency string,
	defaultVATRate decimal.Decimal,
) portssvc.BookingSvcFacade {
	return &bookingService{
		bookingRepo:    bookingRepo,
		invoiceRepo:    invoiceRepo,
		employeeRepo:   employeeRepo,
		rateRepo:       rateRepo,
		sequenceRepo:   sequenceRepo,
		journalSvc:     journalSvc,
		notifier:       notifier,
		baseCurrency:   baseCurrency,
		defaultVATRate: defaultVATRate,
	}
}

var _ portssvc.BookingSvcFacade = (*bookingService)(nil)

// convertToBase converts an amount to the base currency using the latest
// stored rate. A missing rate is non-fatal: the amount passes through at
// rate 1 with a warning so a rate gap never blocks booking intake.
func (s *bookingService) convertToBase(ctx context.Context, amount decimal.Decimal, currency string) decimal.Decimal {
	if currency == "" || currency == s.baseCurrency {
		return finance.Round2(amount)
	}
	rate, err := s.rateRepo.FindLatestRateForCurrency(ctx, currency)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Warn("No exchange rate found, defaulting to 1",
			slog.String("currency", currency), slog.String("error", err.Error()))
		return finance.Round2(amount)
	}
	return finance.Round2(amount.Mul(rate.RateToBase))
}

// resolveAgentRate picks the booking's agent commission rate from the
// explicit request value or the assigned employee's default.
func (s *bookingService) resolveAgentRate(ctx context.Context, explicit *decimal.Decimal, employeeID string) decimal.Decimal {
	logger := middleware.GetLoggerFromCtx(ctx)

	var employeeDefault *decimal.Decimal
	if explicit == nil && employeeID != "" {
		employee, err := s.employeeRepo.FindEmployeeByID(ctx, employeeID)
		if err != nil {
			logger.Warn("Failed to load employee for commission default",
				slog.String("employee_id", employeeID), slog.String("error", err.Error()))
		} else {
			employeeDefault = employee.DefaultCommissionRate
		}
	}

	rate, source := finance.ResolveCommissionRate(explicit, employeeDefault)
	if source == finance.RateZeroFallback {
		logger.Warn("No agent commission rate resolved, using zero",
			slog.String("employee_id", employeeID))
	}
	return rate
}

// billedVAT reports whether a booking's VAT is billed to the customer on the
// invoice. Only the inclusive UAE regime bills VAT; the deferred regimes owe
// VAT on profit, which is the agency's liability.
func billedVAT(b *domain.Booking) bool {
	return b.IsUAE && b.ServiceType != domain.ServiceFlight
}

// applyFigures writes a calculated figure set onto the booking.
func applyFigures(b *domain.Booking, f finance.BookingFigures) {
	b.NetBeforeVAT = f.NetBeforeVAT
	b.VATAmount = f.VATAmount
	b.GrossProfit = f.GrossProfit
	b.NetProfit = f.NetProfit
	b.AgentCommissionAmount = f.AgentCommission
	b.CSCommissionAmount = f.CSCommission
	b.TotalCommission = f.TotalCommission
}

// generateBookingEntries creates and posts the full entry set. Per-entry
// failures are collected so one missing account does not abort the siblings.
func (s *bookingService) generateBookingEntries(ctx context.Context, booking *domain.Booking, userID string) error {
	var errs []error
	if _, err := s.journalSvc.CreateCostEntries(ctx, booking, userID); err != nil {
		errs = append(errs, err)
	}
	if _, err := s.journalSvc.CreateRevenueEntry(ctx, booking, userID); err != nil {
		errs = append(errs, err)
	}
	if _, err := s.journalSvc.CreateVATEntry(ctx, booking, userID); err != nil {
		errs = append(errs, err)
	}
	if _, err := s.journalSvc.CreateCommissionEntry(ctx, booking, portssvc.CommissionAgent, userID); err != nil {
		errs = append(errs, err)
	}
	if _, err := s.journalSvc.CreateCommissionEntry(ctx, booking, portssvc.CommissionCS, userID); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func (s *bookingService) notify(ctx context.Context, event, referenceID, message string) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Notify(ctx, event, referenceID, message); err != nil {
		middleware.GetLoggerFromCtx(ctx).Warn("Notification delivery failed",
			slog.String("event", event), slog.String("error", err.Error()))
	}
}

func (s *bookingService) CreateBooking(ctx context.Context, req dto.CreateBookingRequest, userID string) (*domain.Booking, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	serviceType := domain.ServiceType(req.ServiceType)
	if !validServiceTypes[serviceType] {
		return nil, fmt.Errorf("%w: unknown service type %q", apperrors.ErrValidation, req.ServiceType)
	}
	if req.SaleAmount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: sale amount must be positive", apperrors.ErrValidation)
	}

	vatRate := s.defaultVATRate
	if req.VATRate != nil {
		vatRate = *req.VATRate
	}

	agentRate := s.resolveAgentRate(ctx, req.AgentCommissionRate, req.EmployeeID)
	csRate := decimal.Zero
	if req.CSCommissionRate != nil {
		csRate = *req.CSCommissionRate
	}

	now := time.Now().UTC()
	bookingID := uuid.NewString()
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     userID,
		LastUpdatedAt: now,
		LastUpdatedBy: userID,
	}

	// Supplier lines override the header cost when present.
	saleBase := s.convertToBase(ctx, req.SaleAmount, req.SaleCurrency)
	var lines []domain.BookingSupplierLine
	costBase := s.convertToBase(ctx, req.CostAmount, req.CostCurrency)
	if len(req.SupplierLines) > 0 {
		costBase = decimal.Zero
		for _, lineReq := range req.SupplierLines {
			lineBase := s.convertToBase(ctx, lineReq.CostAmount, lineReq.CostCurrency)
			lines = append(lines, domain.BookingSupplierLine{
				LineID:       uuid.NewString(),
				BookingID:    bookingID,
				SupplierName: lineReq.SupplierName,
				CostAmount:   lineReq.CostAmount,
				CostCurrency: lineReq.CostCurrency,
				CostBase:     lineBase,
				AuditFields:  audit,
			})
			costBase = costBase.Add(lineBase)
		}
	}

	figures := finance.ComputeBookingFigures(saleBase, costBase, req.IsUAE, req.VATApplicable, vatRate, serviceType, agentRate, csRate)

	seq, err := s.sequenceRepo.Next(ctx, seqBooking, yearPeriod(now))
	if err != nil {
		return nil, fmt.Errorf("failed to allocate booking number: %w", err)
	}

	booking := &domain.Booking{
		BookingID:           bookingID,
		BookingNumber:       formatBookingNumber(now.Year(), seq),
		ServiceType:         serviceType,
		CustomerID:          req.CustomerID,
		EmployeeID:          req.EmployeeID,
		CostAmount:          req.CostAmount,
		CostCurrency:        req.CostCurrency,
		SaleAmount:          req.SaleAmount,
		SaleCurrency:        req.SaleCurrency,
		CostBase:            costBase,
		SaleBase:            saleBase,
		IsUAE:               req.IsUAE,
		VATApplicable:       req.VATApplicable,
		VATRate:             vatRate,
		AgentCommissionRate: agentRate,
		CSCommissionRate:    csRate,
		Status:              domain.BookingConfirmed,
		Notes:               req.Notes,
		SupplierLines:       lines,
		AuditFields:         audit,
	}
	applyFigures(booking, figures)

	if err := s.bookingRepo.SaveBooking(ctx, *booking); err != nil {
		return nil, fmt.Errorf("failed to save booking: %w", err)
	}

	if err := s.createInvoiceForBooking(ctx, booking, userID, now); err != nil {
		return nil, err
	}

	if err := s.generateBookingEntries(ctx, booking, userID); err != nil {
		logger.Error("Journal generation incomplete for booking",
			slog.String("booking_number", booking.BookingNumber), slog.String("error", err.Error()))
		return booking, fmt.Errorf("booking %s created but journal generation failed: %w", booking.BookingNumber, err)
	}

	logger.Info("Booking created", slog.String("booking_number", booking.BookingNumber))
	s.notify(ctx, "booking.created", booking.BookingID, fmt.Sprintf("Booking %s created", booking.BookingNumber))
	return booking, nil
}

func (s *bookingService) createInvoiceForBooking(ctx context.Context, booking *domain.Booking, userID string, now time.Time) error {
	subtotal := booking.SaleBase
	vatAmount := decimal.Zero
	if billedVAT(booking) {
		subtotal = booking.NetBeforeVAT
		vatAmount = booking.VATAmount
	}

	seq, err := s.sequenceRepo.Next(ctx, seqInvoice, yearPeriod(now))
	if err != nil {
		return fmt.Errorf("failed to allocate invoice number: %w", err)
	}

	invoice := domain.Invoice{
		InvoiceID:     uuid.NewString(),
		InvoiceNumber: formatInvoiceNumber(now.Year(), seq),
		BookingID:     booking.BookingID,
		CustomerID:    booking.CustomerID,
		Subtotal:      subtotal,
		VATAmount:     vatAmount,
		Total:         finance.Round2(subtotal.Add(vatAmount)),
		PaidAmount:    decimal.Zero,
		Status:        domain.InvoiceUnpaid,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.invoiceRepo.SaveInvoice(ctx, invoice); err != nil {
		return fmt.Errorf("failed to save invoice for booking %s: %w", booking.BookingNumber, err)
	}
	return nil
}

func (s *bookingService) UpdateBookingFinancials(ctx context.Context, bookingID string, req dto.UpdateBookingFinancialsRequest, userID string) (*domain.Booking, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	booking, err := s.bookingRepo.FindBookingByID(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("failed to find booking %s: %w", bookingID, err)
	}
	if booking.Status == domain.BookingCancelled || booking.Status == domain.BookingRefunded {
		return nil, fmt.Errorf("%w: booking %s is %s and cannot be edited", apperrors.ErrConflict, booking.BookingNumber, booking.Status)
	}

	commissionEdited := req.AgentCommissionRate != nil || req.CSCommissionRate != nil

	if req.CostAmount != nil {
		booking.CostAmount = *req.CostAmount
		if len(booking.SupplierLines) == 0 {
			booking.CostBase = s.convertToBase(ctx, *req.CostAmount, booking.CostCurrency)
		}
	}
	if req.SaleAmount != nil {
		booking.SaleAmount = *req.SaleAmount
		booking.SaleBase = s.convertToBase(ctx, *req.SaleAmount, booking.SaleCurrency)
	}
	if req.VATRate != nil {
		booking.VATRate = *req.VATRate
	}
	if req.AgentCommissionRate != nil {
		booking.AgentCommissionRate = *req.AgentCommissionRate
	}
	if req.CSCommissionRate != nil {
		booking.CSCommissionRate = *req.CSCommissionRate
	}

	figures := finance.ComputeBookingFigures(booking.SaleBase, booking.CostBase, booking.IsUAE, booking.VATApplicable, booking.VATRate, booking.ServiceType, booking.AgentCommissionRate, booking.CSCommissionRate)
	applyFigures(booking, figures)

	// A commission edit needs review before the booking can complete.
	if commissionEdited {
		booking.Status = domain.BookingPendingReview
	}

	now := time.Now().UTC()
	booking.LastUpdatedAt = now
	booking.LastUpdatedBy = userID

	if err := s.bookingRepo.UpdateBooking(ctx, *booking); err != nil {
		return nil, fmt.Errorf("failed to update booking %s: %w", booking.BookingNumber, err)
	}

	invoice, err := s.invoiceRepo.FindInvoiceByBookingID(ctx, bookingID)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to find invoice for booking %s: %w", booking.BookingNumber, err)
	}
	if invoice != nil {
		subtotal := booking.SaleBase
		vatAmount := decimal.Zero
		if billedVAT(booking) {
			subtotal = booking.NetBeforeVAT
			vatAmount = booking.VATAmount
		}
		total := finance.Round2(subtotal.Add(vatAmount))
		if err := s.invoiceRepo.UpdateInvoiceAmounts(ctx, invoice.InvoiceID, subtotal, vatAmount, total, userID, now); err != nil {
			return nil, fmt.Errorf("failed to update invoice amounts for booking %s: %w", booking.BookingNumber, err)
		}
	}

	if err := s.journalSvc.RegenerateBookingEntries(ctx, booking, userID); err != nil {
		logger.Error("Journal regeneration incomplete for booking",
			slog.String("booking_number", booking.BookingNumber), slog.String("error", err.Error()))
		return booking, fmt.Errorf("booking %s updated but journal regeneration failed: %w", booking.BookingNumber, err)
	}

	logger.Info("Booking financials updated", slog.String("booking_number", booking.BookingNumber))
	s.notify(ctx, "booking.updated", booking.BookingID, fmt.Sprintf("Booking %s financials updated", booking.BookingNumber))
	return booking, nil
}

func (s *bookingService) ConfirmBooking(ctx context.Context, bookingID string, userID string) (*domain.Booking, error) {
	booking, err := s.bookingRepo.FindBookingByID(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("failed to find booking %s: %w", bookingID, err)
	}
	if booking.Status != domain.BookingPendingReview {
		return nil, fmt.Errorf("%w: booking %s is %s, only PENDING_REVIEW bookings can be confirmed", apperrors.ErrConflict, booking.BookingNumber, booking.Status)
	}

	now := time.Now().UTC()
	if err := s.bookingRepo.UpdateBookingStatus(ctx, bookingID, domain.BookingConfirmed, "", userID, now); err != nil {
		return nil, fmt.Errorf("failed to confirm booking %s: %w", booking.BookingNumber, err)
	}
	booking.Status = domain.BookingConfirmed
	booking.LastUpdatedAt = now
	booking.LastUpdatedBy = userID
	return booking, nil
}

func (s *bookingService) GetBookingByID(ctx context.Context, bookingID string) (*domain.Booking, error) {
	booking, err := s.bookingRepo.FindBookingByID(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("failed to get booking %s: %w", bookingID, err)
	}
	return booking, nil
}

func (s *bookingService) ListBookings(ctx context.Context, params dto.ListBookingsParams) (*dto.ListBookingsResponse, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	bookings, nextToken, err := s.bookingRepo.ListBookings(ctx, limit, params.NextToken)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}

	resp := &dto.ListBookingsResponse{NextToken: nextToken}
	for i := range bookings {
		resp.Bookings = append(resp.Bookings, dto.ToBookingResponse(&bookings[i]))
	}
	return resp, nil
}

func (s *bookingService) GetBookingSummary(ctx context.Context) (*dto.BookingSummaryResponse, error) {
	summary, err := s.bookingRepo.SummarizeBookings(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize bookings: %w", err)
	}
	return &dto.BookingSummaryResponse{
		TotalCost:           summary.TotalCost,
		TotalRevenue:        summary.TotalRevenue,
		TotalProfit:         summary.TotalProfit,
		TotalVAT:            summary.TotalVAT,
		TotalCommission:     summary.TotalCommission,
		AverageProfitMargin: finance.ProfitMargin(summary.TotalProfit, summary.TotalRevenue),
		BookingCount:        summary.BookingCount,
	}, nil
}
