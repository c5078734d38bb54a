package http

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/twende-app/twende/internal/pkg/middleware"
	"github.com/twende-app/twende/internal/pkg/models"
	nrpkg "github.com/twende-app/twende/internal/pkg/newrelic"
	"github.com/twende-app/twende/internal/utils"
	"github.com/twende-app/twende/services/drivers"
)

// DriversHandler handles HTTP requests for driver reports and presence
type DriversHandler struct {
	driverUC drivers.DriverUC
}

// NewDriversHandler creates a new drivers HTTP handler
func NewDriversHandler(driverUC drivers.DriverUC) *DriversHandler {
	return &DriversHandler{driverUC: driverUC}
}

func (h *DriversHandler) driverFromContext(c echo.Context) (uuid.UUID, bool, error) {
	driverID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return uuid.Nil, false, utils.UnauthorizedResponse(c, "")
	}
	if role, ok := middleware.RoleFromContext(c); !ok || role != models.RoleDriver {
		return uuid.Nil, false, utils.ForbiddenResponse(c, "Only drivers can access driver reports")
	}
	return driverID, true, nil
}

// Earnings returns the driver's rolling-window earnings report
func (h *DriversHandler) Earnings(c echo.Context) error {
	txn := nrpkg.FromEchoContext(c)
	nrpkg.SetTransactionName(txn, "Drivers.Earnings")

	driverID, ok, err := h.driverFromContext(c)
	if !ok {
		return err
	}

	raw := c.QueryParam("period")
	if raw == "" {
		raw = string(models.PeriodToday)
	}
	period, ok := models.ParseEarningsPeriod(raw)
	if !ok {
		return utils.BadRequestResponse(c, "Period must be one of: today, week, month, year")
	}

	earnings, err := h.driverUC.Earnings(c.Request().Context(), driverID, period)
	if err != nil {
		nrpkg.NoticeTransactionError(txn, err)
		return utils.DomainErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, http.StatusOK, "Earnings retrieved", earnings)
}

// Stats returns the driver's full performance snapshot
func (h *DriversHandler) Stats(c echo.Context) error {
	txn := nrpkg.FromEchoContext(c)
	nrpkg.SetTransactionName(txn, "Drivers.Stats")

	driverID, ok, err := h.driverFromContext(c)
	if !ok {
		return err
	}

	stats, err := h.driverUC.Stats(c.Request().Context(), driverID)
	if err != nil {
		nrpkg.NoticeTransactionError(txn, err)
		return utils.DomainErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, http.StatusOK, "Stats retrieved", stats)
}

type presenceRequest struct {
	IsOnline *bool `json:"is_online,omitempty"`
}

// SetPresence updates the driver's online status. An explicit is_online
// sets it; an empty body toggles the current state.
func (h *DriversHandler) SetPresence(c echo.Context) error {
	txn := nrpkg.FromEchoContext(c)
	nrpkg.SetTransactionName(txn, "Drivers.SetPresence")

	driverID, ok, err := h.driverFromContext(c)
	if !ok {
		return err
	}

	var req presenceRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request body")
	}

	var presence *models.DriverPresence
	if req.IsOnline != nil {
		presence, err = h.driverUC.SetPresence(c.Request().Context(), driverID, *req.IsOnline)
	} else {
		presence, err = h.driverUC.TogglePresence(c.Request().Context(), driverID)
	}
	if err != nil {
		nrpkg.NoticeTransactionError(txn, err)
		return utils.DomainErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, http.StatusOK, "Presence updated", presence)
}

// GetPresence returns the driver's current online status
func (h *DriversHandler) GetPresence(c echo.Context) error {
	txn := nrpkg.FromEchoContext(c)
	nrpkg.SetTransactionName(txn, "Drivers.GetPresence")

	driverID, ok, err := h.driverFromContext(c)
	if !ok {
		return err
	}

	presence, err := h.driverUC.GetPresence(c.Request().Context(), driverID)
	if err != nil {
		nrpkg.NoticeTransactionError(txn, err)
		return utils.DomainErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, http.StatusOK, "Presence retrieved", presence)
}
