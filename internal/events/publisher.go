package events

import "context"

// Publisher delivers reservation events to downstream consumers. Publishing
// happens after the storage transaction commits; failures are logged by the
// caller and never fail the request.
type Publisher interface {
	Publish(ctx context.Context, event ReservationEvent) error
	Close() error
}

type nopPublisher struct{}

// NewNop returns a publisher that drops every event. Used in tests and when
// no brokers are configured.
func NewNop() Publisher {
	return nopPublisher{}
}

func (nopPublisher) Publish(context.Context, ReservationEvent) error { return nil }

func (nopPublisher) Close() error { return nil }
