package event

import "context"

// Publisher delivers domain events to an external sink (message
// broker, log, no-op).  Publishing is fire-and-forget from the
// caller's point of view: implementations report errors so they can be
// logged, but the booking services never propagate them.
type Publisher interface {
	Publish(ctx context.Context, ev Event) error
}

// NopPublisher discards every event.  It backs tests and deployments
// without a broker.
type NopPublisher struct{}

// Publish implements Publisher.
func (NopPublisher) Publish(context.Context, Event) error { return nil }
