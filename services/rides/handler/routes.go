package handler

import (
	"github.com/labstack/echo/v4"
	"github.com/twende-app/twende/internal/pkg/middleware"
	"github.com/twende-app/twende/internal/pkg/models"
	"github.com/twende-app/twende/services/rides"
	httpHandler "github.com/twende-app/twende/services/rides/handler/http"
)

// Handler wires the rides HTTP handlers to the router.
type Handler struct {
	ridesHTTP *httpHandler.RidesHandler
	cfg       *models.Config
}

// NewHandler creates a new combined handler
func NewHandler(ridesUC rides.RideUC, cfg *models.Config) *Handler {
	return &Handler{
		ridesHTTP: httpHandler.NewRidesHandler(ridesUC),
		cfg:       cfg,
	}
}

// RegisterRoutes registers all ride HTTP routes
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	ridesGroup := e.Group("/v1/rides", middleware.JWTAuthMiddleware(h.cfg.JWT))

	ridesGroup.POST("", h.ridesHTTP.RequestRide)
	ridesGroup.POST("/estimate", h.ridesHTTP.EstimateFare)
	ridesGroup.GET("/active", h.ridesHTTP.ActiveRide)
	ridesGroup.GET("/history", h.ridesHTTP.RideHistory)
	ridesGroup.GET("/:rideID", h.ridesHTTP.GetRide)

	ridesGroup.POST("/:rideID/arrive", h.ridesHTTP.MarkArrived)
	ridesGroup.POST("/:rideID/start", h.ridesHTTP.StartTrip)
	ridesGroup.POST("/:rideID/complete", h.ridesHTTP.CompleteRide)
	ridesGroup.POST("/:rideID/cancel", h.ridesHTTP.CancelRide)

	ridesGroup.POST("/:rideID/rating", h.ridesHTTP.SubmitRating)
	ridesGroup.GET("/:rideID/rating", h.ridesHTTP.GetRating)
}
