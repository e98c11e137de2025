package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/octobees/food-recommender/internal/service"
)

// Regions handles GET /regions with the district and village table.
func Regions(c echo.Context) error {
	return Success(c, http.StatusOK, "", map[string]any{
		"county":    service.County,
		"districts": service.Districts(),
	})
}
