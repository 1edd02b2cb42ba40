package repository

import (
	"context"
	"fmt"
	"time"

	cache "github.com/patrickmn/go-cache"

	"github.com/yourusername/playoff-odds/internal/metrics"
	"github.com/yourusername/playoff-odds/internal/models"
)

// CachedRatingRepository serves repeated season reads from memory
type CachedRatingRepository struct {
	inner RatingRepository
	cache *cache.Cache
	ttl   time.Duration
}

// NewCachedRatingRepository wraps inner with a TTL cache
func NewCachedRatingRepository(inner RatingRepository, ttl time.Duration) *CachedRatingRepository {
	return &CachedRatingRepository{
		inner: inner,
		cache: cache.New(ttl, ttl*2),
		ttl:   ttl,
	}
}

func cacheKey(season int) string {
	return fmt.Sprintf("ratings:%d", season)
}

// SaveRatings writes through to the inner repository and refreshes the cache
func (c *CachedRatingRepository) SaveRatings(ctx context.Context, season int, ratings models.Ratings) error {
	if err := c.inner.SaveRatings(ctx, season, ratings); err != nil {
		c.cache.Delete(cacheKey(season))
		return err
	}
	c.cache.Set(cacheKey(season), ratings.Clone(), c.ttl)
	return nil
}

// GetRatings returns a copy so callers cannot mutate cached entries
func (c *CachedRatingRepository) GetRatings(ctx context.Context, season int) (models.Ratings, error) {
	if cached, found := c.cache.Get(cacheKey(season)); found {
		if ratings, ok := cached.(models.Ratings); ok {
			metrics.RecordRatingCacheLookup(true)
			return ratings.Clone(), nil
		}
	}
	metrics.RecordRatingCacheLookup(false)

	ratings, err := c.inner.GetRatings(ctx, season)
	if err != nil {
		return nil, err
	}
	c.cache.Set(cacheKey(season), ratings.Clone(), c.ttl)
	return ratings, nil
}

// Invalidate drops a season from the cache
func (c *CachedRatingRepository) Invalidate(season int) {
	c.cache.Delete(cacheKey(season))
}
