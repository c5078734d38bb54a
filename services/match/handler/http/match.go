package http

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/twende-app/twende/internal/pkg/middleware"
	"github.com/twende-app/twende/internal/pkg/models"
	nrpkg "github.com/twende-app/twende/internal/pkg/newrelic"
	"github.com/twende-app/twende/internal/utils"
	"github.com/twende-app/twende/services/match"
)

// MatchHandler handles HTTP requests for matching operations
type MatchHandler struct {
	matchUC match.MatchUC
}

// NewMatchHandler creates a new match HTTP handler
func NewMatchHandler(matchUC match.MatchUC) *MatchHandler {
	return &MatchHandler{matchUC: matchUC}
}

// driverFromContext extracts the authenticated driver. When the caller is
// not a driver it writes the rejection response and reports ok=false.
func (h *MatchHandler) driverFromContext(c echo.Context) (uuid.UUID, bool, error) {
	driverID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return uuid.Nil, false, utils.UnauthorizedResponse(c, "")
	}
	if role, ok := middleware.RoleFromContext(c); !ok || role != models.RoleDriver {
		return uuid.Nil, false, utils.ForbiddenResponse(c, "Only drivers can access the match pool")
	}
	return driverID, true, nil
}

// ListClaimable returns the open ride pool
func (h *MatchHandler) ListClaimable(c echo.Context) error {
	txn := nrpkg.FromEchoContext(c)
	nrpkg.SetTransactionName(txn, "Match.ListClaimable")

	if _, ok, err := h.driverFromContext(c); !ok {
		return err
	}

	limit := utils.QueryInt(c, "limit", 0)

	available, err := h.matchUC.ListClaimable(c.Request().Context(), limit)
	if err != nil {
		nrpkg.NoticeTransactionError(txn, err)
		return utils.DomainErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, http.StatusOK, "Available rides retrieved", available)
}

// ClaimRide handles a driver's claim attempt
func (h *MatchHandler) ClaimRide(c echo.Context) error {
	txn := nrpkg.FromEchoContext(c)
	nrpkg.SetTransactionName(txn, "Match.ClaimRide")

	driverID, ok, err := h.driverFromContext(c)
	if !ok {
		return err
	}

	rideID, err := uuid.Parse(c.Param("rideID"))
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid ride ID")
	}

	nrpkg.AddTransactionAttribute(txn, "ride.id", rideID.String())

	ride, err := h.matchUC.ClaimRide(c.Request().Context(), rideID, driverID)
	if err != nil {
		nrpkg.NoticeTransactionError(txn, err)
		return utils.DomainErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, http.StatusOK, "Ride claimed", ride)
}

// RejectRide handles a driver's pass on a ride
func (h *MatchHandler) RejectRide(c echo.Context) error {
	txn := nrpkg.FromEchoContext(c)
	nrpkg.SetTransactionName(txn, "Match.RejectRide")

	driverID, ok, err := h.driverFromContext(c)
	if !ok {
		return err
	}

	rideID, err := uuid.Parse(c.Param("rideID"))
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid ride ID")
	}

	if err := h.matchUC.RejectRide(c.Request().Context(), rideID, driverID); err != nil {
		nrpkg.NoticeTransactionError(txn, err)
		return utils.DomainErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, http.StatusOK, "Ride rejected", nil)
}
