package service

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/octobees/food-recommender/internal/cache"
	"github.com/octobees/food-recommender/internal/logging"
	"github.com/octobees/food-recommender/internal/provider"
)

// MentionCounter returns the total number of blog posts matching a query.
type MentionCounter interface {
	BlogTotal(ctx context.Context, query string) (int, error)
}

// RatingSource returns a venue quality signal, conventionally in [0, 5].
type RatingSource interface {
	Rating(ctx context.Context, venueName string) (float64, error)
	// Name labels the source in responses, e.g. "synthetic".
	Name() string
}

// SyntheticRatings draws ratings uniformly from [3.0, 5.0). No provider in
// use exposes a measured rating, so responses label these as synthetic.
type SyntheticRatings struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewSyntheticRatings seeds from src, or from the runtime when src is nil.
func NewSyntheticRatings(src rand.Source) *SyntheticRatings {
	if src == nil {
		src = rand.NewPCG(rand.Uint64(), rand.Uint64())
	}
	return &SyntheticRatings{rnd: rand.New(src)}
}

func (s *SyntheticRatings) Rating(ctx context.Context, _ string) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return 3.0 + s.rnd.Float64()*2.0, nil
}

func (s *SyntheticRatings) Name() string { return "synthetic" }

// Enricher attaches mention counts and ratings to venues. Both lookups are
// best effort: failures yield 0 and never reach the caller.
type Enricher struct {
	mentions MentionCounter
	ratings  RatingSource
	cache    cache.MentionCache
	region   string
}

// NewEnricher wires the lookups. A nil cache disables caching.
func NewEnricher(mentions MentionCounter, ratings RatingSource, mentionCache cache.MentionCache, region string) *Enricher {
	if mentionCache == nil {
		mentionCache = cache.Noop{}
	}
	return &Enricher{
		mentions: mentions,
		ratings:  ratings,
		cache:    mentionCache,
		region:   strings.TrimSpace(region),
	}
}

// RatingSourceName reports which rating source is in use.
func (e *Enricher) RatingSourceName() string {
	if e.ratings == nil {
		return "none"
	}
	return e.ratings.Name()
}

// MentionQuery is the blog search query for a venue.
func (e *Enricher) MentionQuery(venueName string) string {
	if e.region == "" {
		return fmt.Sprintf("%s 맛집", venueName)
	}
	return fmt.Sprintf("%s %s 맛집", venueName, e.region)
}

// Enrich runs both lookups concurrently and waits for them.
func (e *Enricher) Enrich(ctx context.Context, venueName string) (mentions int, rating float64) {
	var g errgroup.Group
	g.Go(func() error {
		mentions = e.mentionCount(ctx, venueName)
		return nil
	})
	g.Go(func() error {
		rating = e.rating(ctx, venueName)
		return nil
	})
	_ = g.Wait()
	return mentions, rating
}

func (e *Enricher) mentionCount(ctx context.Context, venueName string) int {
	if e.mentions == nil {
		return 0
	}
	query := e.MentionQuery(venueName)
	if count, ok := e.cache.Get(ctx, query); ok {
		return count
	}

	count, err := e.mentions.BlogTotal(ctx, query)
	switch {
	case err == nil:
	case provider.KindOf(err) == provider.KindNotFound:
		count = 0
	default:
		logging.Ctx(ctx).Debug().Err(err).Str("venue", venueName).Msg("mention lookup failed")
		return 0
	}
	if count < 0 {
		count = 0
	}
	e.cache.Set(ctx, query, count)
	return count
}

func (e *Enricher) rating(ctx context.Context, venueName string) float64 {
	if e.ratings == nil {
		return 0
	}
	rating, err := e.ratings.Rating(ctx, venueName)
	if err != nil {
		logging.Ctx(ctx).Debug().Err(err).Str("venue", venueName).Msg("rating lookup failed")
		return 0
	}
	return rating
}
