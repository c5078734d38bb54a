package http

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/twende-app/twende/internal/pkg/logger"
	"github.com/twende-app/twende/internal/pkg/middleware"
	"github.com/twende-app/twende/internal/pkg/models"
	nrpkg "github.com/twende-app/twende/internal/pkg/newrelic"
	"github.com/twende-app/twende/internal/utils"
	"github.com/twende-app/twende/services/rides"
)

// RidesHandler handles HTTP requests for ride operations
type RidesHandler struct {
	rideUC rides.RideUC
}

// NewRidesHandler creates a new ride HTTP handler
func NewRidesHandler(rideUC rides.RideUC) *RidesHandler {
	return &RidesHandler{rideUC: rideUC}
}

func rideIDParam(c echo.Context) (uuid.UUID, error) {
	return uuid.Parse(c.Param("rideID"))
}

// RequestRide handles new ride requests from passengers
func (h *RidesHandler) RequestRide(c echo.Context) error {
	txn := nrpkg.FromEchoContext(c)
	nrpkg.SetTransactionName(txn, "Rides.RequestRide")

	passengerID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}
	if role, ok := middleware.RoleFromContext(c); !ok || role != models.RolePassenger {
		return utils.ForbiddenResponse(c, "Only passengers can request rides")
	}

	var req models.RideRequest
	if err := c.Bind(&req); err != nil {
		nrpkg.NoticeTransactionError(txn, err)
		return utils.BadRequestResponse(c, "Invalid request body: "+err.Error())
	}

	ride, err := h.rideUC.RequestRide(c.Request().Context(), passengerID, &req)
	if err != nil {
		nrpkg.NoticeTransactionError(txn, err)
		return utils.DomainErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, http.StatusCreated, "Ride requested successfully", ride)
}

// EstimateFare handles fare estimation requests
func (h *RidesHandler) EstimateFare(c echo.Context) error {
	txn := nrpkg.FromEchoContext(c)
	nrpkg.SetTransactionName(txn, "Rides.EstimateFare")

	var req models.RideRequest
	if err := c.Bind(&req); err != nil {
		nrpkg.NoticeTransactionError(txn, err)
		return utils.BadRequestResponse(c, "Invalid request body: "+err.Error())
	}

	estimate, err := h.rideUC.EstimateFare(c.Request().Context(), &req)
	if err != nil {
		nrpkg.NoticeTransactionError(txn, err)
		return utils.DomainErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, http.StatusOK, "Fare estimated", estimate)
}

// GetRide handles ride detail requests
func (h *RidesHandler) GetRide(c echo.Context) error {
	txn := nrpkg.FromEchoContext(c)
	nrpkg.SetTransactionName(txn, "Rides.GetRide")

	rideID, err := rideIDParam(c)
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid ride ID")
	}

	ride, err := h.rideUC.GetRide(c.Request().Context(), rideID)
	if err != nil {
		nrpkg.NoticeTransactionError(txn, err)
		return utils.DomainErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, http.StatusOK, "Ride retrieved", ride)
}

// ActiveRide returns the caller's current non-terminal ride
func (h *RidesHandler) ActiveRide(c echo.Context) error {
	txn := nrpkg.FromEchoContext(c)
	nrpkg.SetTransactionName(txn, "Rides.ActiveRide")

	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}
	role, ok := middleware.RoleFromContext(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}

	ride, err := h.rideUC.ActiveRide(c.Request().Context(), userID, role)
	if err != nil {
		nrpkg.NoticeTransactionError(txn, err)
		return utils.DomainErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, http.StatusOK, "Active ride retrieved", ride)
}

// RideHistory returns a page of the caller's past rides
func (h *RidesHandler) RideHistory(c echo.Context) error {
	txn := nrpkg.FromEchoContext(c)
	nrpkg.SetTransactionName(txn, "Rides.RideHistory")

	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}
	role, ok := middleware.RoleFromContext(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}

	page := utils.QueryInt(c, "page", 1)
	limit := utils.QueryInt(c, "limit", 20)

	history, err := h.rideUC.RideHistory(c.Request().Context(), userID, role, page, limit)
	if err != nil {
		nrpkg.NoticeTransactionError(txn, err)
		return utils.DomainErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, http.StatusOK, "Ride history retrieved", history)
}

// MarkArrived handles the driver's arrival notification
func (h *RidesHandler) MarkArrived(c echo.Context) error {
	return h.driverTransition(c, "Rides.MarkArrived", h.rideUC.MarkArrived)
}

// StartTrip handles the trip start request
func (h *RidesHandler) StartTrip(c echo.Context) error {
	return h.driverTransition(c, "Rides.StartTrip", h.rideUC.StartTrip)
}

// CompleteRide handles the trip completion request
func (h *RidesHandler) CompleteRide(c echo.Context) error {
	return h.driverTransition(c, "Rides.CompleteRide", h.rideUC.CompleteRide)
}

func (h *RidesHandler) driverTransition(c echo.Context, txnName string, op func(ctx context.Context, rideID, driverID uuid.UUID) (*models.Ride, error)) error {
	txn := nrpkg.FromEchoContext(c)
	nrpkg.SetTransactionName(txn, txnName)

	driverID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}
	if role, ok := middleware.RoleFromContext(c); !ok || role != models.RoleDriver {
		return utils.ForbiddenResponse(c, "Only drivers can perform this operation")
	}

	rideID, err := rideIDParam(c)
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid ride ID")
	}

	nrpkg.AddTransactionAttribute(txn, "ride.id", rideID.String())

	ride, err := op(c.Request().Context(), rideID, driverID)
	if err != nil {
		logger.WarnCtx(c.Request().Context(), "Ride transition rejected",
			logger.String("ride_id", rideID.String()),
			logger.String("driver_id", driverID.String()),
			logger.Err(err))
		nrpkg.NoticeTransactionError(txn, err)
		return utils.DomainErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, http.StatusOK, "Ride updated", ride)
}

// cancelRequest is the cancel payload
type cancelRequest struct {
	Reason *string `json:"reason,omitempty"`
}

// CancelRide handles a passenger's cancellation request
func (h *RidesHandler) CancelRide(c echo.Context) error {
	txn := nrpkg.FromEchoContext(c)
	nrpkg.SetTransactionName(txn, "Rides.CancelRide")

	actorID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}
	role, ok := middleware.RoleFromContext(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}

	rideID, err := rideIDParam(c)
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid ride ID")
	}

	var req cancelRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request body: "+err.Error())
	}

	ride, err := h.rideUC.CancelRide(c.Request().Context(), rideID, actorID, role, req.Reason)
	if err != nil {
		nrpkg.NoticeTransactionError(txn, err)
		return utils.DomainErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, http.StatusOK, "Ride cancelled", ride)
}

// ratingRequest is the rating submission payload
type ratingRequest struct {
	Value   int     `json:"value"`
	Comment *string `json:"comment,omitempty"`
}

// SubmitRating handles post-ride rating submissions
func (h *RidesHandler) SubmitRating(c echo.Context) error {
	txn := nrpkg.FromEchoContext(c)
	nrpkg.SetTransactionName(txn, "Rides.SubmitRating")

	raterID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}
	role, ok := middleware.RoleFromContext(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}

	rideID, err := rideIDParam(c)
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid ride ID")
	}

	var req ratingRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request body: "+err.Error())
	}

	rating, err := h.rideUC.SubmitRating(c.Request().Context(), &models.RatingRequest{
		RideID:  rideID,
		RaterID: raterID,
		Role:    role,
		Value:   req.Value,
		Comment: req.Comment,
	})
	if err != nil {
		nrpkg.NoticeTransactionError(txn, err)
		return utils.DomainErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, http.StatusOK, "Rating submitted", rating)
}

// GetRating returns the rating record for a ride
func (h *RidesHandler) GetRating(c echo.Context) error {
	txn := nrpkg.FromEchoContext(c)
	nrpkg.SetTransactionName(txn, "Rides.GetRating")

	rideID, err := rideIDParam(c)
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid ride ID")
	}

	rating, err := h.rideUC.GetRating(c.Request().Context(), rideID)
	if err != nil {
		nrpkg.NoticeTransactionError(txn, err)
		return utils.DomainErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, http.StatusOK, "Rating retrieved", rating)
}
