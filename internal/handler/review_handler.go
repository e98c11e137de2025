package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/octobees/food-recommender/internal/provider/naver"
)

// ReviewLister returns blog review snippets for a venue.
type ReviewLister interface {
	Reviews(ctx context.Context, venueName string) []naver.BlogPost
}

type ReviewHandler struct {
	svc ReviewLister
}

func NewReviewHandler(svc ReviewLister) *ReviewHandler {
	return &ReviewHandler{svc: svc}
}

// List handles GET /venues/reviews?name=.
func (h *ReviewHandler) List(c echo.Context) error {
	name := strings.TrimSpace(c.QueryParam("name"))
	if name == "" {
		return Error(c, http.StatusBadRequest, "name is required")
	}
	posts := h.svc.Reviews(c.Request().Context(), name)
	if len(posts) == 0 {
		return Success(c, http.StatusOK, "no reviews", posts)
	}
	return Success(c, http.StatusOK, "", posts)
}
