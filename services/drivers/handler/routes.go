package handler

import (
	"github.com/labstack/echo/v4"
	"github.com/twende-app/twende/internal/pkg/middleware"
	"github.com/twende-app/twende/internal/pkg/models"
	"github.com/twende-app/twende/services/drivers"
	httpHandler "github.com/twende-app/twende/services/drivers/handler/http"
)

// Handler wires the driver HTTP handlers to the router.
type Handler struct {
	driversHTTP *httpHandler.DriversHandler
	cfg         *models.Config
}

// NewHandler creates a new combined handler
func NewHandler(driverUC drivers.DriverUC, cfg *models.Config) *Handler {
	return &Handler{
		driversHTTP: httpHandler.NewDriversHandler(driverUC),
		cfg:         cfg,
	}
}

// RegisterRoutes registers all driver HTTP routes
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	driversGroup := e.Group("/v1/drivers", middleware.JWTAuthMiddleware(h.cfg.JWT))

	driversGroup.GET("/earnings", h.driversHTTP.Earnings)
	driversGroup.GET("/stats", h.driversHTTP.Stats)
	driversGroup.PUT("/status", h.driversHTTP.SetPresence)
	driversGroup.GET("/status", h.driversHTTP.GetPresence)
}
