package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/octobees/food-recommender/internal/entity"
	"github.com/octobees/food-recommender/internal/logging"
	"github.com/octobees/food-recommender/internal/metrics"
	"github.com/octobees/food-recommender/internal/provider"
	"github.com/octobees/food-recommender/internal/repository"
	"github.com/octobees/food-recommender/internal/service/scoring"
)

// Outcome statuses of a recommendation.
const (
	StatusOK           = "ok"
	StatusNoCandidates = "no_candidates"
	StatusNoMatches    = "no_matches"
)

// FallbackName labels the fallback centroid when the request named no
// district.
const FallbackName = "철원군청"

// KST is the zone request dates and times are read in.
var KST = time.FixedZone("KST", 9*60*60)

// Geocoder resolves free text to a coordinate and names the region around a
// coordinate.
type Geocoder interface {
	Resolve(ctx context.Context, query string) (entity.Place, error)
	RegionName(ctx context.Context, lat, lon float64) (string, error)
}

// VenueSearcher lists food venues around a coordinate. It never fails; an
// empty slice covers every error.
type VenueSearcher interface {
	SearchFood(ctx context.Context, lat, lon float64, radiusM int) []entity.Venue
}

// RecommendInput is one recommendation request after validation.
type RecommendInput struct {
	Location string
	// District names the fallback centroid when Location cannot be resolved.
	District string
	Menu     entity.MenuType
	At       time.Time
	// Weather overrides the forecaster when set.
	Weather *entity.Weather
	Age     int
	Gender  entity.Gender
	Party   entity.PartySize
	RadiusM int
}

// Recommendation is the pipeline result.
type Recommendation struct {
	RunID          string         `json:"run_id,omitempty"`
	Status         string         `json:"status"`
	Message        string         `json:"message,omitempty"`
	Query          string         `json:"query"`
	Center         entity.Place   `json:"center"`
	RegionName     string         `json:"region_name,omitempty"`
	Fallback       bool           `json:"fallback"`
	Notice         string         `json:"notice,omitempty"`
	Weather        entity.Weather `json:"weather"`
	RatingSource   string         `json:"rating_source"`
	CandidateCount int            `json:"candidate_count"`
	PositiveCount  int            `json:"positive_count"`
	Venues         []entity.Venue `json:"venues"`
}

// RecommendConfig carries the tunables of the pipeline.
type RecommendConfig struct {
	FallbackLat float64
	FallbackLon float64
	Workers     int
}

// RecommendService runs resolve, search, enrichment, scoring and ranking.
type RecommendService struct {
	geo        Geocoder
	search     VenueSearcher
	enricher   *Enricher
	forecaster Forecaster
	runs       repository.RunsRepository
	fallback   entity.Place
	workers    int
	now        func() time.Time
}

// NewRecommendService wires the pipeline. A nil runs repository disables the
// run log and a nil forecaster uses SyntheticForecaster.
func NewRecommendService(geo Geocoder, search VenueSearcher, enricher *Enricher, forecaster Forecaster, runs repository.RunsRepository, cfg RecommendConfig) *RecommendService {
	if forecaster == nil {
		forecaster = NewSyntheticForecaster(nil)
	}
	if runs == nil {
		runs = repository.NoopRunsRepository{}
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = 4
	}
	return &RecommendService{
		geo:        geo,
		search:     search,
		enricher:   enricher,
		forecaster: forecaster,
		runs:       runs,
		fallback:   entity.Place{Lat: cfg.FallbackLat, Lon: cfg.FallbackLon, Name: FallbackName},
		workers:    workers,
		now:        time.Now,
	}
}

// Recommend produces up to scoring.TopK venues. Provider failures degrade to
// their sentinels, so the only outcomes are a ranked list or an empty status.
func (s *RecommendService) Recommend(ctx context.Context, in RecommendInput) (*Recommendation, error) {
	start := s.now()
	defer func() {
		metrics.RecommendDuration.Observe(s.now().Sub(start).Seconds())
	}()

	log := logging.Ctx(ctx)
	query := strings.TrimSpace(in.Location)
	result := &Recommendation{
		Query:        query,
		RatingSource: s.enricher.RatingSourceName(),
		Venues:       []entity.Venue{},
	}

	result.Center, result.Fallback = s.resolve(ctx, query)
	if result.Fallback {
		result.Center.Name = fallbackName(in.District)
		result.Notice = "location not found; searching around " + result.Center.Name
	}

	region, err := s.geo.RegionName(ctx, result.Center.Lat, result.Center.Lon)
	if err != nil {
		log.Debug().Err(err).Msg("region lookup failed")
	}
	result.RegionName = region

	at := in.At
	if at.IsZero() {
		at = s.now().In(KST)
	}
	if in.Weather != nil {
		result.Weather = *in.Weather
	} else {
		result.Weather = s.forecaster.Forecast(at)
	}

	candidates := s.search.SearchFood(ctx, result.Center.Lat, result.Center.Lon, in.RadiusM)
	result.CandidateCount = len(candidates)
	metrics.RecommendCandidates.Observe(float64(len(candidates)))

	if len(candidates) == 0 {
		result.Status = StatusNoCandidates
		result.Message = "no candidates found within the search radius"
		s.record(ctx, in, result)
		return result, nil
	}

	dc := entity.DiningContext{
		Menu:    in.Menu,
		At:      at,
		Weather: result.Weather,
		Age:     in.Age,
		Gender:  in.Gender,
		Party:   in.Party,
	}
	s.scoreAll(ctx, candidates, dc)

	for _, v := range candidates {
		if v.Score > 0 {
			result.PositiveCount++
		}
	}
	result.Venues = scoring.Rank(candidates, scoring.TopK)

	if len(result.Venues) == 0 {
		result.Status = StatusNoMatches
		result.Message = "no venues match the requested conditions"
	} else {
		result.Status = StatusOK
	}

	log.Info().
		Str("query", query).
		Bool("fallback", result.Fallback).
		Int("candidates", result.CandidateCount).
		Int("positive", result.PositiveCount).
		Int("picks", len(result.Venues)).
		Msg("recommendation served")

	s.record(ctx, in, result)
	return result, nil
}

func (s *RecommendService) resolve(ctx context.Context, query string) (entity.Place, bool) {
	if query == "" {
		return s.fallback, true
	}
	place, err := s.geo.Resolve(ctx, query)
	if err == nil {
		return place, false
	}
	event := logging.Ctx(ctx).Warn()
	if provider.KindOf(err) == provider.KindNotFound {
		event = logging.Ctx(ctx).Info()
	}
	event.Err(err).Str("query", query).Msg("location unresolved, using fallback centroid")
	return s.fallback, true
}

func fallbackName(district string) string {
	if district = strings.TrimSpace(district); district != "" {
		return district + " 중심"
	}
	return FallbackName
}

// scoreAll enriches and scores every candidate in place. Each task writes
// only its own element.
func (s *RecommendService) scoreAll(ctx context.Context, venues []entity.Venue, dc entity.DiningContext) {
	var g errgroup.Group
	g.SetLimit(s.workers)
	for i := range venues {
		g.Go(func() error {
			v := &venues[i]
			v.MentionCount, v.Rating = s.enricher.Enrich(ctx, v.Name)
			v.Score, v.Reasons = scoring.Score(*v, dc)
			return nil
		})
	}
	_ = g.Wait()
}

func (s *RecommendService) record(ctx context.Context, in RecommendInput, result *Recommendation) {
	run := &entity.RecommendationRun{
		ID:         uuid.New(),
		Query:      result.Query,
		CenterName: result.Center.Name,
		CenterLat:  result.Center.Lat,
		CenterLon:  result.Center.Lon,
		Menu:       in.Menu,
		Party:      in.Party,
		RadiusM:    in.RadiusM,
		Venues:     result.Venues,
	}
	if err := s.runs.Save(ctx, run); err != nil {
		logging.Ctx(ctx).Warn().Err(err).Msg("run log write failed")
		return
	}
	if _, noop := s.runs.(repository.NoopRunsRepository); !noop {
		result.RunID = run.ID.String()
	}
}

// Run loads a stored recommendation.
func (s *RecommendService) Run(ctx context.Context, id uuid.UUID) (*entity.RecommendationRun, error) {
	return s.runs.Get(ctx, id)
}
