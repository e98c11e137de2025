package service

import (
	"context"

	"github.com/octobees/food-recommender/internal/logging"
	"github.com/octobees/food-recommender/internal/provider/naver"
)

// ReviewCount is how many blog posts a review lookup returns.
const ReviewCount = 5

// PostSearcher returns the most relevant blog posts for a query.
type PostSearcher interface {
	Posts(ctx context.Context, query string, count int) ([]naver.BlogPost, error)
}

// ReviewService lists blog review snippets for a venue.
type ReviewService struct {
	posts    PostSearcher
	enricher *Enricher
}

func NewReviewService(posts PostSearcher, enricher *Enricher) *ReviewService {
	return &ReviewService{posts: posts, enricher: enricher}
}

// Reviews returns up to ReviewCount posts, or an empty slice when the lookup
// fails.
func (s *ReviewService) Reviews(ctx context.Context, venueName string) []naver.BlogPost {
	posts, err := s.posts.Posts(ctx, s.enricher.MentionQuery(venueName), ReviewCount)
	if err != nil {
		logging.Ctx(ctx).Debug().Err(err).Str("venue", venueName).Msg("review lookup failed")
		return []naver.BlogPost{}
	}
	return posts
}
