package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"medreminder/internal/interfaces/api/middleware"
	appErrors "medreminder/internal/pkg/errors"
	"medreminder/internal/pkg/logger"
)

// ErrorResponse is the body of every failed API call.
type ErrorResponse struct {
	Error string `json:"error"`
}

// statusFor maps the error taxonomy onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, appErrors.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, appErrors.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, appErrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, appErrors.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c echo.Context, log logger.Logger, err error) error {
	status := statusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		log.Error("Request failed", err)
		msg = http.StatusText(status)
	}
	return c.JSON(status, ErrorResponse{Error: msg})
}

func badRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, ErrorResponse{Error: msg})
}

// currentUser returns the authenticated caller, or an HTTP 401 error for the
// handler to return as is.
func currentUser(c echo.Context) (string, error) {
	id, err := middleware.UserID(c)
	if err != nil {
		return "", echo.NewHTTPError(http.StatusUnauthorized, appErrors.ErrUnauthorized.Error())
	}
	return id, nil
}
