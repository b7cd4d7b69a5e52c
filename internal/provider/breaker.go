package provider

import (
	"context"
	"log/slog"

	"github.com/HasbiyallahuJafaru/E-KYC/internal/entity"
	"github.com/HasbiyallahuJafaru/E-KYC/internal/identity"
	"github.com/HasbiyallahuJafaru/E-KYC/pkg/platform/circuit"
)

// Breaking decorates a provider with a circuit breaker. While the circuit is
// open, calls fail fast with an outage error instead of waiting out timeouts
// against a provider that is already down.
//
// Only infrastructure categories trip the breaker: a not-found record or a
// rejected payload says nothing about provider health.
type Breaking struct {
	inner   Provider
	breaker *circuit.Breaker
	logger  *slog.Logger
}

func NewBreaking(inner Provider, breaker *circuit.Breaker, logger *slog.Logger) *Breaking {
	return &Breaking{inner: inner, breaker: breaker, logger: logger}
}

func (b *Breaking) Name() string { return b.inner.Name() }

func (b *Breaking) VerifyBVN(ctx context.Context, bvn string) (identity.Assertion, error) {
	return guard(b, ctx, func(ctx context.Context) (identity.Assertion, error) {
		return b.inner.VerifyBVN(ctx, bvn)
	})
}

func (b *Breaking) VerifyNIN(ctx context.Context, nin string) (identity.Assertion, error) {
	return guard(b, ctx, func(ctx context.Context) (identity.Assertion, error) {
		return b.inner.VerifyNIN(ctx, nin)
	})
}

func (b *Breaking) LookupEntity(ctx context.Context, regNumber string) (entity.RawRecord, error) {
	return guard(b, ctx, func(ctx context.Context) (entity.RawRecord, error) {
		return b.inner.LookupEntity(ctx, regNumber)
	})
}

func guard[T any](b *Breaking, ctx context.Context, fn func(context.Context) (T, error)) (T, error) {
	var zero T
	if b.breaker.IsOpen() {
		return zero, NewError(ErrorOutage, b.inner.Name(), "provider circuit open", nil)
	}

	out, err := fn(ctx)
	if err == nil {
		if _, change := b.breaker.RecordSuccess(); change.Closed {
			b.logger.InfoContext(ctx, "provider circuit closed", "provider", b.inner.Name())
		}
		return out, nil
	}

	if tripsBreaker(err) {
		if _, change := b.breaker.RecordFailure(); change.Opened {
			b.logger.WarnContext(ctx, "provider circuit opened",
				"provider", b.inner.Name(),
				"category", string(Category(err)),
			)
		}
	}
	return zero, err
}

// tripsBreaker restricts breaker accounting to provider-health failures.
func tripsBreaker(err error) bool {
	switch Category(err) {
	case ErrorOutage, ErrorTimeout, ErrorRateLimited:
		return true
	default:
		return false
	}
}
