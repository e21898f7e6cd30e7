package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"medreminder/internal/application/dto"
	"medreminder/internal/application/service"
	"medreminder/internal/pkg/logger"
)

// ScheduleHandler serves the schedule CRUD endpoints.
type ScheduleHandler struct {
	scheduleService service.ScheduleService
	log             logger.Logger
}

// NewScheduleHandler creates a new ScheduleHandler.
func NewScheduleHandler(scheduleService service.ScheduleService, log logger.Logger) *ScheduleHandler {
	return &ScheduleHandler{scheduleService: scheduleService, log: log}
}

// Create handles POST /api/schedules.
func (h *ScheduleHandler) Create(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	var req dto.CreateScheduleRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	resp, err := h.scheduleService.CreateSchedule(c.Request().Context(), userID, req)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusCreated, resp)
}

// List handles GET /api/schedules.
func (h *ScheduleHandler) List(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	list, err := h.scheduleService.ListSchedules(c.Request().Context(), userID)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, list)
}

// Get handles GET /api/schedules/:id.
func (h *ScheduleHandler) Get(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	resp, err := h.scheduleService.GetSchedule(c.Request().Context(), userID, c.Param("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, resp)
}

// Update handles PUT /api/schedules/:id.
func (h *ScheduleHandler) Update(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	var req dto.UpdateScheduleRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	resp, err := h.scheduleService.UpdateSchedule(c.Request().Context(), userID, c.Param("id"), req)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, resp)
}

// Delete handles DELETE /api/schedules/:id.
func (h *ScheduleHandler) Delete(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	if err := h.scheduleService.DeleteSchedule(c.Request().Context(), userID, c.Param("id")); err != nil {
		return respondError(c, h.log, err)
	}
	return c.NoContent(http.StatusNoContent)
}
