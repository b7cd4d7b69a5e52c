package provider

import (
	"context"
	"log/slog"
	"time"

	backoff "github.com/cenkalti/backoff/v4"

	"github.com/HasbiyallahuJafaru/E-KYC/internal/entity"
	"github.com/HasbiyallahuJafaru/E-KYC/internal/identity"
)

// maxRetries bounds transient-failure retries per call. 4xx-class rejections
// and missing records are never retried.
const maxRetries = 1

// Reliable decorates a provider with a per-call deadline and a single bounded
// retry on transient failures.
type Reliable struct {
	inner    Provider
	timeout  time.Duration
	interval time.Duration
	logger   *slog.Logger
}

func NewReliable(inner Provider, timeout time.Duration, logger *slog.Logger) *Reliable {
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &Reliable{
		inner:    inner,
		timeout:  timeout,
		interval: 500 * time.Millisecond,
		logger:   logger,
	}
}

func (r *Reliable) Name() string { return r.inner.Name() }

func (r *Reliable) VerifyBVN(ctx context.Context, bvn string) (identity.Assertion, error) {
	return call(r, ctx, "bvn", func(ctx context.Context) (identity.Assertion, error) {
		return r.inner.VerifyBVN(ctx, bvn)
	})
}

func (r *Reliable) VerifyNIN(ctx context.Context, nin string) (identity.Assertion, error) {
	return call(r, ctx, "nin", func(ctx context.Context) (identity.Assertion, error) {
		return r.inner.VerifyNIN(ctx, nin)
	})
}

func (r *Reliable) LookupEntity(ctx context.Context, regNumber string) (entity.RawRecord, error) {
	return call(r, ctx, "cac", func(ctx context.Context) (entity.RawRecord, error) {
		return r.inner.LookupEntity(ctx, regNumber)
	})
}

// call runs one provider operation under the configured deadline, retrying
// once on retryable categories with a constant backoff interval.
func call[T any](r *Reliable, ctx context.Context, lookup string, fn func(context.Context) (T, error)) (T, error) {
	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(r.interval), maxRetries),
		ctx,
	)

	attempt := 0
	return backoff.RetryWithData(func() (T, error) {
		attempt++
		callCtx, cancel := context.WithTimeout(ctx, r.timeout)
		defer cancel()

		out, err := fn(callCtx)
		if err == nil {
			return out, nil
		}
		if !IsRetryable(err) {
			return out, backoff.Permanent(err)
		}
		if attempt <= maxRetries {
			r.logger.WarnContext(ctx, "provider call failed, will retry",
				"provider", r.inner.Name(),
				"lookup", lookup,
				"attempt", attempt,
				"category", string(Category(err)),
			)
		}
		return out, err
	}, policy)
}
