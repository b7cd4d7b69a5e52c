package audit

import (
	"context"
	"time"
)

// Store is the append-only sink for audit events.
type Store interface {
	Append(ctx context.Context, event Event) error
	ListByVerification(ctx context.Context, verificationID string) ([]Event, error)
}

// Publisher captures structured audit events. It is append-only and uses the
// storage layer for persistence so tests can swap sinks easily. A buffered
// publisher hands events to a Worker instead of appending inline, keeping
// persistence off the verification hot path.
type Publisher struct {
	store Store
	inbox chan<- Event
}

func NewPublisher(store Store) *Publisher {
	return &Publisher{store: store}
}

// NewBufferedPublisher returns a publisher that emits into a channel and the
// inbox a Worker should drain into the same store.
func NewBufferedPublisher(store Store, buffer int) (*Publisher, <-chan Event) {
	inbox := make(chan Event, buffer)
	return &Publisher{store: store, inbox: inbox}, inbox
}

func (p *Publisher) Emit(ctx context.Context, base Event) error {
	if base.Timestamp.IsZero() {
		base.Timestamp = time.Now().UTC()
	}
	if p.inbox != nil {
		select {
		case p.inbox <- base:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return p.store.Append(ctx, base)
}

func (p *Publisher) List(ctx context.Context, verificationID string) ([]Event, error) {
	return p.store.ListByVerification(ctx, verificationID)
}
