package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/atlasvoyage/travel_accounting_app/internal/core/ports/services"
	"github.com/atlasvoyage/travel_accounting_app/internal/middleware"
	"github.com/atlasvoyage/travel_accounting_app/internal/platform/config"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	// Public authentication routes
	registerAuthRoutes(r, services.Employee)

	// API v1 routes behind the auth middleware
	setupAPIV1Routes(r, cfg, services)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret))

	registerAccountRoutes(v1, services.Account)
	registerBookingRoutes(v1, services.Booking, services.Cancellation)
	registerInvoiceRoutes(v1, services.Reconciliation)
	registerReceiptRoutes(v1, services.Reconciliation)
	registerJournalRoutes(v1, services.Journal)
	registerEmployeeRoutes(v1, services.Employee)
}
