package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/atlasvoyage/travel_accounting_app/internal/apperrors"
	portssvc "github.com/atlasvoyage/travel_accounting_app/internal/core/ports/services"
	"github.com/atlasvoyage/travel_accounting_app/internal/dto"
	"github.com/atlasvoyage/travel_accounting_app/internal/middleware"
)

// bookingHandler handles HTTP requests related to bookings, including
// cancellation.
type bookingHandler struct {
	bookingService      portssvc.BookingSvcFacade
	cancellationService portssvc.CancellationSvc
}

func newBookingHandler(bs portssvc.BookingSvcFacade, cs portssvc.CancellationSvc) *bookingHandler {
	return &bookingHandler{bookingService: bs, cancellationService: cs}
}

// registerBookingRoutes registers routes related to bookings.
func registerBookingRoutes(rg *gin.RouterGroup, bookingService portssvc.BookingSvcFacade, cancellationService portssvc.CancellationSvc) {
	h := newBookingHandler(bookingService, cancellationService)

	bookings := rg.Group("/bookings")
	{
		bookings.POST("", h.createBooking)
		bookings.GET("", h.listBookings)
		bookings.GET("/summary", h.bookingSummary)
		bookings.GET("/:bookingID", h.getBooking)
		bookings.PUT("/:bookingID/financials", h.updateFinancials)
		bookings.POST("/:bookingID/confirm", h.confirmBooking)
		bookings.POST("/:bookingID/cancel", h.cancelBooking)
	}
}

func (h *bookingHandler) createBooking(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createBooking", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	booking, err := h.bookingService.CreateBooking(c.Request.Context(), req, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error creating booking", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if errors.Is(err, apperrors.ErrMissingAccount) {
			logger.Error("Chart of accounts incomplete", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		// The booking may have been persisted with its journal generation
		// pending; report it with 201 so the client does not re-create.
		if booking != nil {
			logger.Error("Booking created but journal generation failed", slog.String("booking_id", booking.BookingID), slog.String("error", err.Error()))
			c.JSON(http.StatusCreated, dto.ToBookingResponse(booking))
			return
		}
		logger.Error("Failed to create booking", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create booking"})
		return
	}

	logger.Info("Booking created", slog.String("booking_id", booking.BookingID), slog.String("booking_number", booking.BookingNumber))
	c.JSON(http.StatusCreated, dto.ToBookingResponse(booking))
}

func (h *bookingHandler) getBooking(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	bookingID := c.Param("bookingID")

	booking, err := h.bookingService.GetBookingByID(c.Request.Context(), bookingID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
		} else {
			logger.Error("Failed to get booking", slog.String("booking_id", bookingID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve booking"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToBookingResponse(booking))
}

func (h *bookingHandler) bookingSummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	resp, err := h.bookingService.GetBookingSummary(c.Request.Context())
	if err != nil {
		logger.Error("Failed to summarize bookings", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to summarize bookings"})
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *bookingHandler) listBookings(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListBookingsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.bookingService.ListBookings(c.Request.Context(), params)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to list bookings", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list bookings"})
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *bookingHandler) updateFinancials(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	bookingID := c.Param("bookingID")

	var req dto.UpdateBookingFinancialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for updateFinancials", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	booking, err := h.bookingService.UpdateBookingFinancials(c.Request.Context(), bookingID, req, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
		} else if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrConflict) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to update booking financials", slog.String("booking_id", bookingID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update booking"})
		}
		return
	}

	logger.Info("Booking financials updated", slog.String("booking_id", bookingID))
	c.JSON(http.StatusOK, dto.ToBookingResponse(booking))
}

func (h *bookingHandler) confirmBooking(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	bookingID := c.Param("bookingID")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	booking, err := h.bookingService.ConfirmBooking(c.Request.Context(), bookingID, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
		} else if errors.Is(err, apperrors.ErrConflict) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to confirm booking", slog.String("booking_id", bookingID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to confirm booking"})
		}
		return
	}

	logger.Info("Booking confirmed", slog.String("booking_id", bookingID))
	c.JSON(http.StatusOK, dto.ToBookingResponse(booking))
}

func (h *bookingHandler) cancelBooking(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	bookingID := c.Param("bookingID")

	var req dto.CancelBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for cancelBooking", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	resp, err := h.cancellationService.CancelBooking(c.Request.Context(), bookingID, req, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
		} else if errors.Is(err, apperrors.ErrConflict) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to cancel booking", slog.String("booking_id", bookingID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to cancel booking"})
		}
		return
	}

	logger.Info("Booking cancelled", slog.String("booking_id", bookingID), slog.String("refund_booking_id", resp.RefundBookingID))
	c.JSON(http.StatusOK, resp)
}
