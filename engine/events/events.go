// Package events implements the fight-scoped publish/subscribe bus.
// Events published while handlers run are queued and dispatched after the
// current event, in order, so handlers never re-enter each other.
package events

import "github.com/nathoo/cardfight/types"

// All subscribes a handler to every event type.
const All = "*"

// Handler receives a published event.
type Handler func(types.Event)

type subscription struct {
	id        int
	eventType string
	handler   Handler
}

// Bus dispatches events to subscribers. It is not safe for concurrent use.
type Bus struct {
	subs        []subscription
	nextID      int
	queue       []types.Event
	dispatching bool
	closed      bool
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers h for eventType (or All) and returns a function that
// removes the subscription.
func (b *Bus) Subscribe(eventType string, h Handler) func() {
	b.nextID++
	id := b.nextID
	b.subs = append(b.subs, subscription{id: id, eventType: eventType, handler: h})
	return func() { b.unsubscribe(id) }
}

func (b *Bus) unsubscribe(id int) {
	for i, s := range b.subs {
		if s.id == id {
			b.subs = append(b.subs[:i], b.subs[i+1:]...)
			return
		}
	}
}

// Publish delivers e to every matching subscriber. Publishing on a closed
// bus is a no-op.
func (b *Bus) Publish(e types.Event) {
	if b.closed {
		return
	}
	b.queue = append(b.queue, e)
	if b.dispatching {
		return
	}

	b.dispatching = true
	defer func() { b.dispatching = false }()

	for len(b.queue) > 0 {
		next := b.queue[0]
		b.queue = b.queue[1:]
		// Snapshot so handlers may unsubscribe while dispatching.
		subs := append([]subscription(nil), b.subs...)
		for _, s := range subs {
			if s.eventType == next.Type || s.eventType == All {
				s.handler(next)
			}
		}
	}
}

// Close drops every subscription and pending event. Later publishes are ignored.
func (b *Bus) Close() {
	b.subs = nil
	b.queue = nil
	b.closed = true
}

// Recorder collects every event published on a bus, for result building and tracing.
type Recorder struct {
	events []types.Event
}

// Record subscribes a new Recorder to all events on b.
func Record(b *Bus) *Recorder {
	r := &Recorder{}
	b.Subscribe(All, func(e types.Event) { r.events = append(r.events, e) })
	return r
}

// Drain returns the events recorded since the last Drain and resets the buffer.
func (r *Recorder) Drain() []types.Event {
	out := r.events
	r.events = nil
	return out
}
