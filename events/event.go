// Package events provides an in-process event bus so the route requester
// does not need to know who consumes its results.
package events

import (
	"context"
	"time"
)

// Event is the base interface all events implement.
type Event interface {
	// EventName returns a unique identifier for the event type.
	EventName() string
	// OccurredAt returns when the event occurred.
	OccurredAt() time.Time
}

// BaseEvent provides common fields for all events.
type BaseEvent struct {
	Timestamp time.Time `json:"timestamp"`
}

func (e BaseEvent) OccurredAt() time.Time {
	return e.Timestamp
}

func NewBaseEvent() BaseEvent {
	return BaseEvent{Timestamp: time.Now()}
}

// Handler processes events of a specific type.
type Handler interface {
	Handle(ctx context.Context, event Event) error
}

// HandlerFunc is an adapter to allow ordinary functions to be used as handlers.
type HandlerFunc func(ctx context.Context, event Event) error

func (f HandlerFunc) Handle(ctx context.Context, event Event) error {
	return f(ctx, event)
}

// Bus publishes events to subscribed handlers.
type Bus interface {
	// Publish runs the handlers asynchronously; errors are logged.
	Publish(ctx context.Context, event Event)
	// PublishSync runs the handlers in subscription order and returns the
	// first error.
	PublishSync(ctx context.Context, event Event) error
	// Subscribe registers a handler for the event name.
	Subscribe(eventName string, handler Handler)
}
