package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/octobees/food-recommender/internal/config"
	"github.com/octobees/food-recommender/internal/entity"
	"github.com/octobees/food-recommender/internal/handler"
	"github.com/octobees/food-recommender/internal/repository"
	"github.com/octobees/food-recommender/internal/service"
)

type nopRecommender struct{}

func (nopRecommender) Recommend(ctx context.Context, in service.RecommendInput) (*service.Recommendation, error) {
	return &service.Recommendation{Status: service.StatusNoCandidates, Venues: []entity.Venue{}}, nil
}

func (nopRecommender) Run(ctx context.Context, id uuid.UUID) (*entity.RecommendationRun, error) {
	return nil, repository.ErrRunNotFound
}

func TestRegister(t *testing.T) {
	e := echo.New()
	e.Validator = handler.NewRequestValidator()
	cfg := &config.Config{RateLimitRecommend: config.RateLimitConfig{Requests: 1, Interval: time.Minute}}

	Register(e, cfg, Handlers{
		Health:    handler.NewHealthHandler(service.NewHealthService()),
		Recommend: handler.NewRecommendHandler(nopRecommender{}),
	})

	want := map[string]bool{
		"GET /healthz":                 false,
		"GET /healthz/providers":       false,
		"GET /metrics":                 false,
		"GET /regions":                 false,
		"POST /recommendations":        false,
		"POST /recommendations/export": false,
		"GET /recommendations/:id":     false,
	}
	for _, r := range e.Routes() {
		key := r.Method + " " + r.Path
		if _, ok := want[key]; ok {
			want[key] = true
		}
		if r.Path == "/venues/reviews" {
			t.Fatalf("reviews route must be skipped without a handler")
		}
	}
	for route, seen := range want {
		if !seen {
			t.Fatalf("route %s not registered", route)
		}
	}

	body := `{"location":"철원군청","menu":"delivery","party":"solo","radius_km":2}`
	for i, expected := range []int{http.StatusOK, http.StatusTooManyRequests} {
		req := httptest.NewRequest(http.MethodPost, "/recommendations", strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		if rec.Code != expected {
			t.Fatalf("request %d: expected %d, got %d", i, expected, rec.Code)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/healthz/providers", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected providers ok with no probes, got %d", rec.Code)
	}
}
