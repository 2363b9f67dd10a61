package services

import (
	"context"

	"github.com/atlasvoyage/travel_accounting_app/internal/dto"
)

// CancellationSvc handles booking cancellations and full refunds.
type CancellationSvc interface {
	// CancelBooking cancels a booking: the invoice is cancelled (with a
	// credit note when it was paid), a negated mirror booking is spawned
	// with status REFUNDED, the original entries are reversed and the
	// original booking is marked CANCELLED with a cross-reference note.
	CancelBooking(ctx context.Context, bookingID string, req dto.CancelBookingRequest, userID string) (*dto.CancelBookingResponse, error)
}
