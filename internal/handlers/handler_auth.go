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

// authHandler handles authentication requests.
type authHandler struct {
	employeeService portssvc.EmployeeSvcFacade
}

func newAuthHandler(es portssvc.EmployeeSvcFacade) *authHandler {
	return &authHandler{employeeService: es}
}

// registerAuthRoutes registers the public authentication routes.
func registerAuthRoutes(r *gin.Engine, employeeService portssvc.EmployeeSvcFacade) {
	h := newAuthHandler(employeeService)

	auth := r.Group("/auth")
	{
		auth.POST("/login", h.login)
	}
}

func (h *authHandler) login(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for login", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	token, employee, err := h.employeeService.AuthenticateEmployee(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, apperrors.ErrForbidden) {
			logger.Warn("Authentication failed", slog.String("email", req.Email))
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		} else {
			logger.Error("Failed to authenticate employee", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to authenticate"})
		}
		return
	}

	logger.Info("Employee authenticated", slog.String("employee_id", employee.EmployeeID))
	c.JSON(http.StatusOK, dto.LoginResponse{
		Token:    token,
		Employee: dto.ToEmployeeResponse(employee),
	})
}
