package amadeus

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/store"
	redisstore "github.com/eko/gocache/store/redis/v4"
	"github.com/wayplan/wayplan/pkg/redis_client"
	"github.com/wayplan/wayplan/pkg/travel"
)

const quoteCacheExpiration = 90 * time.Minute

// absentMarker records a pair/date the oracle had nothing bookable for, so
// repeat lookups don't burn the retry budget again.
const absentMarker = "N/A"

// quoteCache keeps resolved quotes in redis for the lifetime of a fare.
// When redis is not configured every operation is a no-op.
type quoteCache struct {
	cache *cache.Cache[string]
}

func newQuoteCache() *quoteCache {
	if redis_client.Client == nil {
		return &quoteCache{}
	}

	redisStore := redisstore.NewRedis(redis_client.Client, store.WithExpiration(quoteCacheExpiration))

	return &quoteCache{
		cache: cache.New[string](redisStore),
	}
}

func quoteCacheKey(originIATA string, destinationIATA string, date time.Time) string {
	return fmt.Sprintf("quote:%s:%s:%s", originIATA, destinationIATA, date.Format(travel.DateFormat))
}

func (q *quoteCache) get(ctx context.Context, originIATA string, destinationIATA string, date time.Time) (*travel.Quote, error, bool) {
	if q.cache == nil {
		return nil, nil, false
	}

	value, err := q.cache.Get(ctx, quoteCacheKey(originIATA, destinationIATA, date))
	if err != nil {
		return nil, nil, false
	}

	if value == absentMarker {
		return nil, travel.ErrNoQuote, true
	}

	var quote travel.Quote
	if err := json.Unmarshal([]byte(value), &quote); err != nil {
		return nil, nil, false
	}

	return &quote, nil, true
}

func (q *quoteCache) put(ctx context.Context, originIATA string, destinationIATA string, date time.Time, quote *travel.Quote) {
	if q.cache == nil {
		return
	}

	quoteJSON, err := json.Marshal(quote)
	if err != nil {
		return
	}

	q.cache.Set(ctx, quoteCacheKey(originIATA, destinationIATA, date), string(quoteJSON))
}

func (q *quoteCache) putAbsent(ctx context.Context, originIATA string, destinationIATA string, date time.Time) {
	if q.cache == nil {
		return
	}

	q.cache.Set(ctx, quoteCacheKey(originIATA, destinationIATA, date), absentMarker)
}
