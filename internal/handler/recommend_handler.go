package handler

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/octobees/food-recommender/internal/dto"
	"github.com/octobees/food-recommender/internal/entity"
	"github.com/octobees/food-recommender/internal/repository"
	"github.com/octobees/food-recommender/internal/service"
)

// Recommender is the pipeline behind the recommendation endpoints.
type Recommender interface {
	Recommend(ctx context.Context, in service.RecommendInput) (*service.Recommendation, error)
	Run(ctx context.Context, id uuid.UUID) (*entity.RecommendationRun, error)
}

// RecommendHandler serves recommendations as JSON or CSV.
type RecommendHandler struct {
	svc Recommender
	now func() time.Time
}

func NewRecommendHandler(svc Recommender) *RecommendHandler {
	return &RecommendHandler{svc: svc, now: time.Now}
}

// Recommend handles POST /recommendations.
func (h *RecommendHandler) Recommend(c echo.Context) error {
	res, err := h.run(c)
	if err != nil {
		return h.fail(c, err)
	}

	message := res.Message
	if res.Status == service.StatusOK {
		message = fmt.Sprintf("%d of %d candidates recommended", len(res.Venues), res.PositiveCount)
	}
	return Success(c, http.StatusOK, message, res)
}

// Export handles POST /recommendations/export and returns the picks as CSV.
func (h *RecommendHandler) Export(c echo.Context) error {
	res, err := h.run(c)
	if err != nil {
		return h.fail(c, err)
	}

	var buf bytes.Buffer
	if err := service.WriteCSV(&buf, res.Venues); err != nil {
		return Error(c, http.StatusInternalServerError, "failed to build export")
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, service.ExportFileName(h.now())))
	return c.Blob(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

// GetRun handles GET /recommendations/:id.
func (h *RecommendHandler) GetRun(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return Error(c, http.StatusBadRequest, "invalid run id")
	}

	run, err := h.svc.Run(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrRunNotFound) {
			return Error(c, http.StatusNotFound, "recommendation run not found")
		}
		return Error(c, http.StatusInternalServerError, "failed to load recommendation run")
	}
	return Success(c, http.StatusOK, "", run)
}

// errBadRequest marks run failures caused by the request itself.
type errBadRequest struct{ err error }

func (e errBadRequest) Error() string { return e.err.Error() }
func (e errBadRequest) Unwrap() error { return e.err }

// run binds, validates and executes a request.
func (h *RecommendHandler) run(c echo.Context) (*service.Recommendation, error) {
	var req dto.RecommendRequest
	if err := c.Bind(&req); err != nil {
		return nil, errBadRequest{errors.New("invalid payload")}
	}
	if err := c.Validate(&req); err != nil {
		return nil, errBadRequest{err}
	}

	in, err := h.toInput(req)
	if err != nil {
		return nil, errBadRequest{err}
	}

	return h.svc.Recommend(c.Request().Context(), in)
}

func (h *RecommendHandler) fail(c echo.Context, err error) error {
	var bad errBadRequest
	if errors.As(err, &bad) {
		return Invalid(c, bad.err)
	}
	return Error(c, http.StatusInternalServerError, "failed to build recommendation")
}

func (h *RecommendHandler) toInput(req dto.RecommendRequest) (service.RecommendInput, error) {
	location := strings.TrimSpace(req.Location)
	if location == "" {
		composed, err := service.ComposeAddress(req.District, req.Village, req.Detail)
		if err != nil {
			return service.RecommendInput{}, err
		}
		location = composed
	}

	at, err := h.targetTime(req.Date, req.Time)
	if err != nil {
		return service.RecommendInput{}, err
	}

	in := service.RecommendInput{
		Location: location,
		District: strings.TrimSpace(req.District),
		Menu:     entity.MenuType(req.Menu),
		At:       at,
		Age:      req.Age,
		Gender:   entity.Gender(req.Gender),
		Party:    entity.PartySize(req.Party),
		RadiusM:  int(req.RadiusKM * 1000),
	}
	if req.Weather != nil {
		in.Weather = &entity.Weather{
			Description: strings.TrimSpace(req.Weather.Description),
			TempC:       req.Weather.TempC,
		}
	}
	return in, nil
}

// targetTime combines date and time in KST, defaulting each part to now.
func (h *RecommendHandler) targetTime(date, clock string) (time.Time, error) {
	now := h.now().In(service.KST)
	day := now
	if date != "" {
		d, err := time.ParseInLocation("2006-01-02", date, service.KST)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid date %q", date)
		}
		day = d
	}
	hour, minute := now.Hour(), now.Minute()
	if clock != "" {
		t, err := time.Parse("15:04", clock)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid time %q", clock)
		}
		hour, minute = t.Hour(), t.Minute()
	}
	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, service.KST), nil
}
