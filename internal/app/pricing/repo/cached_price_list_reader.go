package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"github.com/light-bringer/rental-pricing-service/internal/app/pricing/contracts"
	"github.com/light-bringer/rental-pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/rental-pricing-service/internal/pkg/logger"
)

const (
	priceListCachePrefix = "pricing:active_price_list"

	// Upper bound on a shared miss, which no longer follows any caller's context.
	defaultCacheLoadTimeout = 5 * time.Second
)

// cachedPriceList is the Redis representation of a resolved price list.
type cachedPriceList struct {
	Params      domain.PriceListParams `json:"params"`
	Active      bool                   `json:"active"`
	PublishedAt *time.Time             `json:"published_at,omitempty"`
	CreatedAt   time.Time              `json:"created_at"`
	UpdatedAt   time.Time              `json:"updated_at"`
}

// CachedPriceListReader caches active price list resolution in Redis.
// Concurrent misses for the same pair share one underlying lookup.
// A nil Redis client turns it into a pass-through.
type CachedPriceListReader struct {
	next        contracts.ActivePriceListReader
	client      *redis.Client
	ttl         time.Duration
	loadTimeout time.Duration
	group       singleflight.Group

	// invalidations counts Invalidate calls. A load that spans one does not
	// write its result back, since it may have read the list being replaced.
	invalidations atomic.Uint64
}

var (
	_ contracts.ActivePriceListReader = (*CachedPriceListReader)(nil)
	_ contracts.PriceListCache        = (*CachedPriceListReader)(nil)
)

// NewCachedPriceListReader wraps next with a Redis cache.
func NewCachedPriceListReader(next contracts.ActivePriceListReader, client *redis.Client, ttl time.Duration) *CachedPriceListReader {
	return &CachedPriceListReader{next: next, client: client, ttl: ttl, loadTimeout: defaultCacheLoadTimeout}
}

// FindActive returns the cached price list for the pair, loading it on a miss.
// ErrNoActivePriceList is never cached.
func (c *CachedPriceListReader) FindActive(ctx context.Context, vehicleID, renterID string) (*domain.PriceList, error) {
	if c.client == nil {
		return c.next.FindActive(ctx, vehicleID, renterID)
	}

	key := priceListCacheKey(vehicleID, renterID)

	payload, err := c.client.Get(ctx, key).Bytes()
	if err == nil {
		pl, decodeErr := decodeCachedPriceList(payload)
		if decodeErr == nil {
			return pl, nil
		}
		logger.WarnContext(ctx, "pricing.cache_decode_failed", "key", key, "error", decodeErr)
	} else if !errors.Is(err, redis.Nil) {
		logger.WarnContext(ctx, "pricing.cache_unavailable", "key", key, "error", err)
		return c.next.FindActive(ctx, vehicleID, renterID)
	}

	// The load is shared by every waiter on the key, so one caller
	// cancelling must not fail the others.
	loadCtx := context.WithoutCancel(ctx)
	resultChan := c.group.DoChan(key, func() (interface{}, error) {
		ctx, cancel := context.WithTimeout(loadCtx, c.loadTimeout)
		defer cancel()
		return c.load(ctx, key, vehicleID, renterID)
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-resultChan:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*domain.PriceList), nil
	}
}

// Invalidate drops the cached entry for a pair.
func (c *CachedPriceListReader) Invalidate(ctx context.Context, vehicleID, renterID string) error {
	if c.client == nil {
		return nil
	}
	c.invalidations.Add(1)
	if err := c.client.Del(ctx, priceListCacheKey(vehicleID, renterID)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate price list cache: %w", err)
	}
	return nil
}

func (c *CachedPriceListReader) load(ctx context.Context, key, vehicleID, renterID string) (*domain.PriceList, error) {
	seen := c.invalidations.Load()
	pl, err := c.next.FindActive(ctx, vehicleID, renterID)
	if err != nil {
		return nil, err
	}
	if c.invalidations.Load() != seen {
		logger.Debug("pricing.cache_store_skipped", "key", key)
		return pl, nil
	}

	raw, err := json.Marshal(cachedPriceList{
		Params:      pl.Params(),
		Active:      pl.IsActive(),
		PublishedAt: pl.PublishedAt(),
		CreatedAt:   pl.CreatedAt(),
		UpdatedAt:   pl.UpdatedAt(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode price list for cache: %w", err)
	}

	if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		logger.WarnContext(ctx, "pricing.cache_store_failed", "key", key, "error", err)
	}

	return pl, nil
}

func decodeCachedPriceList(payload []byte) (*domain.PriceList, error) {
	var entry cachedPriceList
	if err := json.Unmarshal(payload, &entry); err != nil {
		return nil, err
	}
	return domain.ReconstructPriceList(entry.Params, entry.Active, entry.PublishedAt, entry.CreatedAt, entry.UpdatedAt)
}

func priceListCacheKey(vehicleID, renterID string) string {
	return strings.Join([]string{priceListCachePrefix, vehicleID, renterID}, ":")
}
