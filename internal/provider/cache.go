package provider

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/HasbiyallahuJafaru/E-KYC/internal/entity"
	"github.com/HasbiyallahuJafaru/E-KYC/internal/identity"
	"github.com/HasbiyallahuJafaru/E-KYC/internal/platform/metrics"
)

const (
	bvnKeyPrefix = "ekyc:lookup:bvn:"
	ninKeyPrefix = "ekyc:lookup:nin:"
	cacKeyPrefix = "ekyc:lookup:cac:"
)

// Cached decorates a provider with a Redis lookup cache. Registry and
// identity records change rarely; a short TTL keeps repeat verifications of
// the same subject from burning provider quota while bounding staleness.
//
// Cache failures degrade to the inner provider: a broken Redis must never
// fail a verification.
type Cached struct {
	inner   Provider
	client  *redis.Client
	ttl     time.Duration
	logger  *slog.Logger
	metrics *metrics.Metrics
}

func NewCached(inner Provider, client *redis.Client, ttl time.Duration, logger *slog.Logger, m *metrics.Metrics) *Cached {
	if ttl == 0 {
		ttl = 24 * time.Hour
	}
	return &Cached{inner: inner, client: client, ttl: ttl, logger: logger, metrics: m}
}

func (c *Cached) Name() string { return c.inner.Name() }

func (c *Cached) VerifyBVN(ctx context.Context, bvn string) (identity.Assertion, error) {
	return cached(c, ctx, bvnKeyPrefix+bvn, func() (identity.Assertion, error) {
		return c.inner.VerifyBVN(ctx, bvn)
	})
}

func (c *Cached) VerifyNIN(ctx context.Context, nin string) (identity.Assertion, error) {
	return cached(c, ctx, ninKeyPrefix+nin, func() (identity.Assertion, error) {
		return c.inner.VerifyNIN(ctx, nin)
	})
}

func (c *Cached) LookupEntity(ctx context.Context, regNumber string) (entity.RawRecord, error) {
	return cached(c, ctx, cacKeyPrefix+regNumber, func() (entity.RawRecord, error) {
		return c.inner.LookupEntity(ctx, regNumber)
	})
}

// cached reads through the cache for one lookup. Only successful provider
// responses are written back; failures must always retry the provider.
func cached[T any](c *Cached, ctx context.Context, key string, fetch func() (T, error)) (T, error) {
	var zero T

	raw, err := c.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var out T
		if err := json.Unmarshal(raw, &out); err == nil {
			c.metrics.CacheHit()
			return out, nil
		}
		// Corrupt entry: drop it and fall through to the provider.
		c.client.Del(ctx, key)
	case !errors.Is(err, redis.Nil):
		c.logger.WarnContext(ctx, "lookup cache unavailable, falling through",
			"error", err.Error())
	}
	c.metrics.CacheMiss()

	out, err := fetch()
	if err != nil {
		return zero, err
	}

	if encoded, err := json.Marshal(out); err == nil {
		if err := c.client.Set(ctx, key, encoded, c.ttl).Err(); err != nil {
			c.logger.WarnContext(ctx, "failed to write lookup cache",
				"error", err.Error())
		}
	}
	return out, nil
}
