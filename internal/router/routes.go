package router

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/octobees/food-recommender/internal/config"
	"github.com/octobees/food-recommender/internal/handler"
	middlewarepkg "github.com/octobees/food-recommender/internal/middleware"
)

// Handlers aggregates HTTP handlers used by the router.
type Handlers struct {
	Health    *handler.HealthHandler
	Recommend *handler.RecommendHandler
	Reviews   *handler.ReviewHandler
}

// Register wires all HTTP routes for the API.
func Register(e *echo.Echo, cfg *config.Config, handlers Handlers) {
	e.GET("/healthz", handlers.Health.Live)
	e.GET("/healthz/providers", handlers.Health.Providers)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/regions", handler.Regions)

	limited := middlewarepkg.RateLimiter(cfg.RateLimitRecommend, "/recommendations", "/recommendations/export")
	e.POST("/recommendations", handlers.Recommend.Recommend, limited)
	e.POST("/recommendations/export", handlers.Recommend.Export, limited)
	e.GET("/recommendations/:id", handlers.Recommend.GetRun)

	if handlers.Reviews != nil {
		e.GET("/venues/reviews", handlers.Reviews.List)
	}
}
