package handler

import (
	"github.com/labstack/echo/v4"
	"github.com/twende-app/twende/internal/pkg/middleware"
	"github.com/twende-app/twende/internal/pkg/models"
	"github.com/twende-app/twende/services/match"
	httpHandler "github.com/twende-app/twende/services/match/handler/http"
)

// Handler wires the match HTTP handlers to the router.
type Handler struct {
	matchHTTP *httpHandler.MatchHandler
	cfg       *models.Config
}

// NewHandler creates a new combined handler
func NewHandler(matchUC match.MatchUC, cfg *models.Config) *Handler {
	return &Handler{
		matchHTTP: httpHandler.NewMatchHandler(matchUC),
		cfg:       cfg,
	}
}

// RegisterRoutes registers all match HTTP routes
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	matchGroup := e.Group("/v1/match", middleware.JWTAuthMiddleware(h.cfg.JWT))

	matchGroup.GET("/rides", h.matchHTTP.ListClaimable)
	matchGroup.POST("/rides/:rideID/claim", h.matchHTTP.ClaimRide)
	matchGroup.POST("/rides/:rideID/reject", h.matchHTTP.RejectRide)
}
