package services

import (
	"context"

	"github.com/atlasvoyage/travel_accounting_app/internal/core/domain"
	"github.com/atlasvoyage/travel_accounting_app/internal/dto"
)

// BookingReaderSvc defines read operations for bookings.
type BookingReaderSvc interface {
	// GetBookingByID retrieves a specific booking by its ID.
	GetBookingByID(ctx context.Context, bookingID string) (*domain.Booking, error)

	// ListBookings retrieves a paginated list of bookings.
	ListBookings(ctx context.Context, params dto.ListBookingsParams) (*dto.ListBookingsResponse, error)

	// GetBookingSummary aggregates totals and the average profit margin
	// across all bookings, refund mirrors included.
	GetBookingSummary(ctx context.Context) (*dto.BookingSummaryResponse, error)
}

// BookingWriterSvc defines booking lifecycle operations.
type BookingWriterSvc interface {
	// CreateBooking converts amounts to base currency, computes VAT,
	// commission and profit figures, persists the booking with its invoice,
	// and generates the full posted entry set.
	CreateBooking(ctx context.Context, req dto.CreateBookingRequest, userID string) (*domain.Booking, error)

	// UpdateBookingFinancials applies a financial edit to a confirmed
	// booking, recomputes its figures and regenerates its journal entries
	// through compensating reversals.
	UpdateBookingFinancials(ctx context.Context, bookingID string, req dto.UpdateBookingFinancialsRequest, userID string) (*domain.Booking, error)

	// ConfirmBooking transitions a booking PENDING_REVIEW -> CONFIRMED.
	ConfirmBooking(ctx context.Context, bookingID string, userID string) (*domain.Booking, error)
}

// BookingSvcFacade combines booking reader and writer operations.
type BookingSvcFacade interface {
	BookingReaderSvc
	BookingWriterSvc
}
