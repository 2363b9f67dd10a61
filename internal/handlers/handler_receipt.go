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

// receiptHandler handles HTTP requests related to customer receipts.
type receiptHandler struct {
	reconciliationService portssvc.ReconciliationSvc
}

func newReceiptHandler(rs portssvc.ReconciliationSvc) *receiptHandler {
	return &receiptHandler{reconciliationService: rs}
}

// registerReceiptRoutes registers routes related to receipts.
func registerReceiptRoutes(rg *gin.RouterGroup, reconciliationService portssvc.ReconciliationSvc) {
	h := newReceiptHandler(reconciliationService)

	receipts := rg.Group("/receipts")
	{
		receipts.POST("", h.recordReceipt)
		receipts.GET("/:receiptID", h.getReceipt)
		receipts.PUT("/:receiptID", h.updateReceipt)
		receipts.POST("/:receiptID/cancel", h.cancelReceipt)
	}
}

func (h *receiptHandler) recordReceipt(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for recordReceipt", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	receipt, err := h.reconciliationService.RecordReceipt(c.Request.Context(), req, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error recording receipt", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		if errors.Is(err, apperrors.ErrConflict) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		// The receipt may have been persisted with its cash entry pending.
		if receipt != nil {
			logger.Error("Receipt recorded but cash entry failed", slog.String("receipt_id", receipt.ReceiptID), slog.String("error", err.Error()))
			c.JSON(http.StatusCreated, dto.ToReceiptResponse(receipt))
			return
		}
		logger.Error("Failed to record receipt", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record receipt"})
		return
	}

	logger.Info("Receipt recorded", slog.String("receipt_id", receipt.ReceiptID), slog.String("receipt_number", receipt.ReceiptNumber))
	c.JSON(http.StatusCreated, dto.ToReceiptResponse(receipt))
}

func (h *receiptHandler) getReceipt(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	receiptID := c.Param("receiptID")

	receipt, err := h.reconciliationService.GetReceiptByID(c.Request.Context(), receiptID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Receipt not found"})
		} else {
			logger.Error("Failed to get receipt", slog.String("receipt_id", receiptID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve receipt"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToReceiptResponse(receipt))
}

func (h *receiptHandler) updateReceipt(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	receiptID := c.Param("receiptID")

	var req dto.UpdateReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for updateReceipt", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	receipt, err := h.reconciliationService.UpdateReceipt(c.Request.Context(), receiptID, req, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Receipt not found"})
		} else if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrConflict) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to update receipt", slog.String("receipt_id", receiptID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update receipt"})
		}
		return
	}

	logger.Info("Receipt updated", slog.String("receipt_id", receiptID))
	c.JSON(http.StatusOK, dto.ToReceiptResponse(receipt))
}

func (h *receiptHandler) cancelReceipt(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	receiptID := c.Param("receiptID")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.reconciliationService.CancelReceipt(c.Request.Context(), receiptID, userID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Receipt not found"})
		} else if errors.Is(err, apperrors.ErrConflict) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to cancel receipt", slog.String("receipt_id", receiptID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to cancel receipt"})
		}
		return
	}

	logger.Info("Receipt cancelled", slog.String("receipt_id", receiptID))
	c.Status(http.StatusNoContent)
}
