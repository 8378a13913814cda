package oracle

import (
	"context"
	"time"

	cache "github.com/Code-Hex/go-generics-cache"
	"github.com/Code-Hex/go-generics-cache/policy/lru"
	"github.com/shopspring/decimal"

	"storage-price-estimator/internal/core/domain"
	ports "storage-price-estimator/internal/core/ports/output"
	"storage-price-estimator/internal/metrics"
)

type cacheKey struct {
	size        int64
	isPermanent bool
	basePrice   int64
	bytePrice   int64
	multiplier  string
}

func keyOf(req domain.PriceRequest) cacheKey {
	return cacheKey{
		size:        req.SizeBytes,
		isPermanent: req.IsPermanent,
		basePrice:   req.BasePrice,
		bytePrice:   req.BytePrice,
		multiplier:  req.PermanentMultiplier.String(),
	}
}

// CachedOracle memoizes answers of another oracle for ttl. Failed lookups are
// not cached.
type CachedOracle struct {
	next  ports.PriceOracle
	cache *cache.Cache[cacheKey, decimal.Decimal]
	ttl   time.Duration
}

func NewCachedOracle(next ports.PriceOracle, size int, ttl time.Duration) *CachedOracle {
	if size <= 0 {
		size = 1024
	}
	return &CachedOracle{
		next:  next,
		cache: cache.New(cache.AsLRU[cacheKey, decimal.Decimal](lru.WithCapacity(size))),
		ttl:   ttl,
	}
}

func (c *CachedOracle) Name() string {
	return c.next.Name()
}

func (c *CachedOracle) GetPrice(ctx context.Context, req domain.PriceRequest) (decimal.Decimal, error) {
	key := keyOf(req)
	if price, ok := c.cache.Get(key); ok {
		metrics.OracleCacheLookup(true)
		return price, nil
	}
	metrics.OracleCacheLookup(false)

	price, err := c.next.GetPrice(ctx, req)
	if err != nil {
		return decimal.Zero, err
	}
	c.cache.Set(key, price, cache.WithExpiration(c.ttl))
	return price, nil
}

func (c *CachedOracle) IsAvailable(ctx context.Context) bool {
	if hc, ok := c.next.(ports.HealthChecker); ok {
		return hc.IsAvailable(ctx)
	}
	return true
}
