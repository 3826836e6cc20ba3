package port

import "context"

// EventListenerPort is an incoming adapter that consumes events and drives
// a use case until its context is cancelled.
type EventListenerPort interface {
	Start(ctx context.Context) error
	Close() error
}
