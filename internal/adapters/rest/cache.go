package rest

import (
	"crypto/md5"
	"fmt"
	"strings"
	"time"

	"listing-service/internal/core/domain"

	"github.com/karlseguin/ccache/v3"
	"golang.org/x/sync/singleflight"
)

const DefaultSearchCacheTTL = 5 * time.Minute

// searchCache keeps recent search results keyed by the canonical encoding
// of the filter request. singleflight guarantees at most one in-flight
// storage query per distinct filter key; entries stay fresh for the TTL
// window before the next identical search re-fetches.
type searchCache struct {
	cache *ccache.Cache[*domain.SearchResult]
	group singleflight.Group
	ttl   time.Duration
}

func NewSearchCache(ttl time.Duration) *searchCache {
	if ttl <= 0 {
		ttl = DefaultSearchCacheTTL
	}
	return &searchCache{
		cache: ccache.New(ccache.Configure[*domain.SearchResult]().MaxSize(1000)),
		ttl:   ttl,
	}
}

func (c *searchCache) GetOrFetch(filters domain.SearchFilters, fetch func() (*domain.SearchResult, error)) (*domain.SearchResult, error) {
	key := cacheKey(filters)

	if item := c.cache.Get(key); item != nil && !item.Expired() {
		return item.Value(), nil
	}

	v, err, _ := c.group.Do(key, func() (interface{}, error) {
		// Re-check: a concurrent caller may have filled the entry while
		// this one waited on the flight group.
		if item := c.cache.Get(key); item != nil && !item.Expired() {
			return item.Value(), nil
		}
		result, err := fetch()
		if err != nil {
			return nil, err
		}
		c.cache.Set(key, result, c.ttl)
		return result, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*domain.SearchResult), nil
}

func cacheKey(filters domain.SearchFilters) string {
	parts := []string{
		fmt.Sprintf("city:%s", strings.ToLower(filters.City)),
		fmt.Sprintf("priceMin:%s", floatPart(filters.PriceMin)),
		fmt.Sprintf("priceMax:%s", floatPart(filters.PriceMax)),
		fmt.Sprintf("bedrooms:%s", intPart(filters.Bedrooms)),
		fmt.Sprintf("bathrooms:%s", intPart(filters.Bathrooms)),
		fmt.Sprintf("areaMin:%s", floatPart(filters.AreaMin)),
		fmt.Sprintf("areaMax:%s", floatPart(filters.AreaMax)),
		fmt.Sprintf("type:%s", filters.PropertyType),
		fmt.Sprintf("amenities:%s", strings.Join(filters.Amenities, "+")),
		fmt.Sprintf("page:%d", filters.Page),
		fmt.Sprintf("limit:%d", filters.Limit),
		fmt.Sprintf("sort:%s", filters.Sort),
	}
	hash := md5.Sum([]byte(strings.Join(parts, "|")))
	return fmt.Sprintf("search:%x", hash)
}

func floatPart(v *float64) string {
	if v == nil {
		return ""
	}
	return fmt.Sprintf("%.2f", *v)
}

func intPart(v *int) string {
	if v == nil {
		return ""
	}
	return fmt.Sprintf("%d", *v)
}
