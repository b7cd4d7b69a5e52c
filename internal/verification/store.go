package verification

import "context"

// Store persists verifications. Updates replace the whole record; the
// aggregate is small enough that partial writes are not worth the
// complexity.
type Store interface {
	Create(ctx context.Context, v Verification) error
	Update(ctx context.Context, v Verification) error
	Get(ctx context.Context, id string) (Verification, error)
}
