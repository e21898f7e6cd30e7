package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"medreminder/internal/application/dto"
	"medreminder/internal/application/service"
	"medreminder/internal/pkg/logger"
)

// EndpointHandler manages where a user's reminders are delivered.
type EndpointHandler struct {
	userService    service.UserService
	vapidPublicKey string
	log            logger.Logger
}

// NewEndpointHandler creates a new EndpointHandler. vapidPublicKey may be empty
// when Web Push is not configured.
func NewEndpointHandler(userService service.UserService, vapidPublicKey string, log logger.Logger) *EndpointHandler {
	return &EndpointHandler{userService: userService, vapidPublicKey: vapidPublicKey, log: log}
}

// Put handles PUT /api/endpoint.
func (h *EndpointHandler) Put(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	var req dto.RegisterEndpointRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	resp, err := h.userService.RegisterEndpoint(c.Request().Context(), userID, req)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, resp)
}

// Get handles GET /api/endpoint.
func (h *EndpointHandler) Get(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	resp, err := h.userService.GetEndpoint(c.Request().Context(), userID)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, resp)
}

// Delete handles DELETE /api/endpoint.
func (h *EndpointHandler) Delete(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	if err := h.userService.ClearEndpoint(c.Request().Context(), userID); err != nil {
		return respondError(c, h.log, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// VAPIDPublicKey handles GET /api/vapid-public-key.
func (h *EndpointHandler) VAPIDPublicKey(c echo.Context) error {
	if h.vapidPublicKey == "" {
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "web push is not configured"})
	}
	return c.JSON(http.StatusOK, map[string]string{"publicKey": h.vapidPublicKey})
}
