package redis

import (
	"context"
	"encoding/json"
	"sort"
	"strconv"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/stormiq/signals-api/internal/application/signals"
	"github.com/stormiq/signals-api/internal/domain"
)

// CachedSignalRepo decorates a signals.SignalRepo with a short-TTL
// Redis cache. Signal rows are recomputed at most once per pipeline
// run, so a few seconds of staleness is fine.
// - Read path: Redis -> DB fallback -> Redis set (best effort)
// - Redis being down never fails a request.
type CachedSignalRepo struct {
	inner signals.SignalRepo
	rdb   *goredis.Client
	ttl   time.Duration
}

func NewCachedSignalRepo(inner signals.SignalRepo, client *Client, ttl time.Duration) *CachedSignalRepo {
	var rdb *goredis.Client
	if client != nil {
		rdb = client.rdb
	}
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &CachedSignalRepo{inner: inner, rdb: rdb, ttl: ttl}
}

func signalsKey(windowMins int, tickers []string) string {
	if len(tickers) == 0 {
		return "signals:" + strconv.Itoa(windowMins)
	}
	sorted := append([]string(nil), tickers...)
	sort.Strings(sorted)
	return "signals:" + strconv.Itoa(windowMins) + ":" + strings.Join(sorted, ",")
}

func topKey(windowMins, limit int, ascending bool) string {
	dir := "gainers"
	if ascending {
		dir = "losers"
	}
	return "signals:top:" + dir + ":" + strconv.Itoa(windowMins) + ":" + strconv.Itoa(limit)
}

func (c *CachedSignalRepo) Signals(ctx context.Context, windowMins int, tickers []string) ([]domain.Signal, error) {
	key := signalsKey(windowMins, tickers)
	if rows, ok := getCached[[]domain.Signal](ctx, c.rdb, key); ok {
		return rows, nil
	}

	rows, err := c.inner.Signals(ctx, windowMins, tickers)
	if err != nil {
		return nil, err
	}
	setCached(ctx, c.rdb, key, rows, c.ttl)
	return rows, nil
}

func (c *CachedSignalRepo) TopByStrength(ctx context.Context, windowMins, limit int, ascending bool) ([]domain.Signal, error) {
	key := topKey(windowMins, limit, ascending)
	if rows, ok := getCached[[]domain.Signal](ctx, c.rdb, key); ok {
		return rows, nil
	}

	rows, err := c.inner.TopByStrength(ctx, windowMins, limit, ascending)
	if err != nil {
		return nil, err
	}
	setCached(ctx, c.rdb, key, rows, c.ttl)
	return rows, nil
}

func (c *CachedSignalRepo) Stocks(ctx context.Context) ([]domain.Stock, error) {
	const key = "signals:stocks"
	if rows, ok := getCached[[]domain.Stock](ctx, c.rdb, key); ok {
		return rows, nil
	}

	rows, err := c.inner.Stocks(ctx)
	if err != nil {
		return nil, err
	}
	setCached(ctx, c.rdb, key, rows, c.ttl)
	return rows, nil
}

func getCached[T any](ctx context.Context, rdb *goredis.Client, key string) (T, bool) {
	var zero T
	if rdb == nil {
		return zero, false
	}
	raw, err := rdb.Get(ctx, key).Bytes()
	if err != nil {
		// goredis.Nil or redis down: fall back to DB either way.
		return zero, false
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return zero, false
	}
	return v, true
}

func setCached(ctx context.Context, rdb *goredis.Client, key string, v any, ttl time.Duration) {
	if rdb == nil {
		return
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return
	}
	_ = rdb.Set(ctx, key, raw, ttl).Err()
}
