package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
)

// APIResponse describes the standard envelope returned by the API.
type APIResponse struct {
	Status  string   `json:"status"`
	Message string   `json:"message,omitempty"`
	Data    any      `json:"data,omitempty"`
	Errors  []string `json:"errors,omitempty"`
}

// Success sends a successful response using the shared envelope format.
func Success(c echo.Context, status int, message string, data any) error {
	if status == 0 {
		status = http.StatusOK
	}
	return c.JSON(status, APIResponse{
		Status:  "success",
		Message: message,
		Data:    data,
	})
}

// Error sends an error response using the shared envelope format.
func Error(c echo.Context, status int, message string) error {
	if status == 0 {
		status = http.StatusInternalServerError
	}
	return c.JSON(status, APIResponse{
		Status:  "error",
		Message: message,
	})
}

// Invalid sends a 400 for a rejected request. Field failures from the
// request validator are listed under errors.
func Invalid(c echo.Context, err error) error {
	payload := APIResponse{Status: "error", Message: err.Error()}
	var verr *ValidationError
	if errors.As(err, &verr) {
		payload.Message = "request validation failed"
		payload.Errors = verr.Fields
	}
	return c.JSON(http.StatusBadRequest, payload)
}
