package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"medreminder/internal/application/dto"
	"medreminder/internal/application/service"
	"medreminder/internal/domain/constant"
	"medreminder/internal/pkg/logger"
)

// ConfirmationHandler serves reminder acknowledgements and history.
type ConfirmationHandler struct {
	confirmationService service.ConfirmationService
	log                 logger.Logger
}

// NewConfirmationHandler creates a new ConfirmationHandler.
func NewConfirmationHandler(confirmationService service.ConfirmationService, log logger.Logger) *ConfirmationHandler {
	return &ConfirmationHandler{confirmationService: confirmationService, log: log}
}

// Acknowledge handles POST /api/confirmations/:id/ack.
func (h *ConfirmationHandler) Acknowledge(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	var req dto.AcknowledgeRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	return h.acknowledge(c, userID, c.Param("id"), req.Status, req.Minutes)
}

// Confirm handles POST /api/confirm, which carries the id in the body.
func (h *ConfirmationHandler) Confirm(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	var req dto.ConfirmRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if req.ConfirmationID == "" {
		return badRequest(c, "confirmation_id is required")
	}
	return h.acknowledge(c, userID, req.ConfirmationID, req.Status, req.Minutes)
}

func (h *ConfirmationHandler) acknowledge(c echo.Context, userID, id, status string, minutes *int) error {
	st := constant.ConfirmationStatus(strings.ToLower(strings.TrimSpace(status)))
	resp, err := h.confirmationService.Acknowledge(c.Request().Context(), userID, id, st, minutes)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, resp)
}

// List handles GET /api/confirmations?date=YYYY-MM-DD&status=.
func (h *ConfirmationHandler) List(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	list, err := h.confirmationService.ListConfirmations(c.Request().Context(), userID, c.QueryParam("date"), c.QueryParam("status"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, list)
}

// Get handles GET /api/confirmations/:id.
func (h *ConfirmationHandler) Get(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	resp, err := h.confirmationService.GetConfirmation(c.Request().Context(), userID, c.Param("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, resp)
}
