package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/octobees/food-recommender/internal/service"
)

// Prober checks upstream providers.
type Prober interface {
	Probe(ctx context.Context) []service.ProbeResult
}

// HealthHandler serves liveness and provider probes.
type HealthHandler struct {
	prober Prober
}

func NewHealthHandler(prober Prober) *HealthHandler {
	return &HealthHandler{prober: prober}
}

// Live handles GET /healthz.
func (h *HealthHandler) Live(c echo.Context) error {
	return Success(c, http.StatusOK, "service healthy", map[string]any{"status": "ok"})
}

// Providers handles GET /healthz/providers; 503 when any probe fails.
func (h *HealthHandler) Providers(c echo.Context) error {
	results := h.prober.Probe(c.Request().Context())
	if !service.Healthy(results) {
		return c.JSON(http.StatusServiceUnavailable, APIResponse{
			Status:  "error",
			Message: "provider check failed",
			Data:    results,
		})
	}
	return Success(c, http.StatusOK, "providers reachable", results)
}
