package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/atlasvoyage/travel_accounting_app/internal/core/domain"
)

// BookingReader defines read operations for bookings.
type BookingReader interface {
	// FindBookingByID retrieves a booking together with its supplier lines.
	FindBookingByID(ctx context.Context, bookingID string) (*domain.Booking, error)

	// ListBookings retrieves a paginated list of bookings using token-based pagination.
	ListBookings(ctx context.Context, limit int, nextToken *string) ([]domain.Booking, *string, error)

	// SummarizeBookings aggregates base-currency totals across all bookings.
	SummarizeBookings(ctx context.Context) (*domain.BookingSummary, error)
}

// BookingWriter defines write operations for bookings.
type BookingWriter interface {
	// SaveBooking persists a booking and its supplier lines in one transaction.
	SaveBooking(ctx context.Context, booking domain.Booking) error

	// UpdateBooking replaces a booking's stored financial and commission fields.
	UpdateBooking(ctx context.Context, booking domain.Booking) error

	// UpdateBookingStatus transitions a booking's status, optionally appending a note.
	UpdateBookingStatus(ctx context.Context, bookingID string, status domain.BookingStatus, note string, userID string, now time.Time) error
}

// BookingTxSupport defines booking writes that join a caller-owned transaction,
// used by cancellation and reconciliation to keep their sequences atomic.
type BookingTxSupport interface {
	SaveBookingInTx(ctx context.Context, tx pgx.Tx, booking domain.Booking) error
	UpdateBookingStatusInTx(ctx context.Context, tx pgx.Tx, bookingID string, status domain.BookingStatus, note string, userID string, now time.Time) error
}

// BookingRepositoryFacade combines all booking-related repository interfaces.
type BookingRepositoryFacade interface {
	BookingReader
	BookingWriter
	BookingTxSupport
}

// BookingRepositoryWithTx extends BookingRepositoryFacade with transaction capabilities.
type BookingRepositoryWithTx interface {
	BookingRepositoryFacade
	TransactionManager
}
