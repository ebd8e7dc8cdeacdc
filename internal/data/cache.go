package data

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"math"
	"time"

	"wheel-backtest/internal/model"

	"github.com/patrickmn/go-cache"
)

// SeriesCache memoizes weekly series by the raw rows they were built from, so
// repeated backtests over the same upload skip normalization and aggregation.
// Cached slices are shared; callers must treat them as read-only.
type SeriesCache struct {
	store *cache.Cache
}

// NewSeriesCache returns a cache whose entries expire after ttl.
func NewSeriesCache(ttl time.Duration) *SeriesCache {
	cleanup := ttl / 2
	if cleanup <= 0 {
		cleanup = time.Minute
	}
	return &SeriesCache{store: cache.New(ttl, cleanup)}
}

func (c *SeriesCache) Get(key string) ([]model.WeeklyObservation, bool) {
	if c == nil {
		return nil, false
	}
	v, ok := c.store.Get(key)
	if !ok {
		return nil, false
	}
	weeks, ok := v.([]model.WeeklyObservation)
	return weeks, ok
}

func (c *SeriesCache) Set(key string, weeks []model.WeeklyObservation) {
	if c == nil {
		return
	}
	c.store.SetDefault(key, weeks)
}

func (c *SeriesCache) Len() int {
	if c == nil {
		return 0
	}
	return c.store.ItemCount()
}

// CacheKey hashes rows in the order given. Rows are hashed as-is, so two
// permutations of the same upload get different keys but the same series.
func CacheKey(rows []model.PriceRow) string {
	h := sha256.New()
	var buf [8]byte
	for _, r := range rows {
		h.Write([]byte(r.Date))
		h.Write([]byte{0})
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(r.Price))
		h.Write(buf[:])
	}
	return hex.EncodeToString(h.Sum(nil))
}
