// Package events is the process-wide broadcast channel that lets the editor
// and preview surfaces agree on shared state without holding references to
// each other.
//
// Delivery is synchronous, fire-and-forget and unbuffered: a subscriber only
// sees events published while it is registered, and each publish reaches the
// subscribers that were registered when the publish started.
package events

import (
	"context"
	"fmt"
	"log"
	"sync"
)

// Topic names are part of the external contract.
const (
	TopicApply    = "rorkforge:apply"
	TopicNavigate = "rorkforge:navigate"
)

// Event is one delivery: the topic it was published on and its payload.
type Event struct {
	Topic string
	Data  any
}

type Handler func(Event)

// HandlerPanicError wraps a value recovered from a panicking handler.
type HandlerPanicError struct {
	Topic     string
	Recovered any
}

func (e *HandlerPanicError) Error() string {
	return fmt.Sprintf("events: handler for %s panicked: %v", e.Topic, e.Recovered)
}

type Option func(*Bus)

// WithErrorHandler registers fn to receive handler failures. Failures are
// always logged; fn is for callers that need to observe them.
func WithErrorHandler(fn func(error)) Option {
	return func(b *Bus) { b.onError = fn }
}

// Bus is a topic-based publish/subscribe channel.
//
// The subscriber lists are copy-on-write: Subscribe and Unsubscribe install a
// new slice, so a publish that already took its snapshot keeps delivering to
// exactly the handlers it started with, even if a handler registers or
// releases subscriptions while it runs.
type Bus struct {
	mu      sync.Mutex
	subs    map[string][]*Subscription
	onError func(error)
}

// NewBus creates an empty Bus.
func NewBus(opts ...Option) *Bus {
	b := &Bus{subs: make(map[string][]*Subscription)}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Subscription is the handle returned by Subscribe. Release it with
// Unsubscribe when the owning surface goes away, typically with defer.
type Subscription struct {
	bus     *Bus
	topic   string
	handler Handler
	once    sync.Once
}

// Topic returns the topic the subscription listens on.
func (s *Subscription) Topic() string {
	return s.topic
}

// Unsubscribe stops delivery to the handler. It is safe to call more than
// once and from inside a running handler.
func (s *Subscription) Unsubscribe() {
	if s == nil {
		return
	}
	s.once.Do(func() { s.bus.remove(s) })
}

// Subscribe registers h for topic. Events published before this call are
// never delivered to h.
func (b *Bus) Subscribe(topic string, h Handler) *Subscription {
	s := &Subscription{bus: b, topic: topic, handler: h}

	b.mu.Lock()
	defer b.mu.Unlock()
	cur := b.subs[topic]
	next := make([]*Subscription, len(cur), len(cur)+1)
	copy(next, cur)
	b.subs[topic] = append(next, s)
	return s
}

func (b *Bus) remove(s *Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()
	cur := b.subs[s.topic]
	next := make([]*Subscription, 0, len(cur))
	for _, existing := range cur {
		if existing != s {
			next = append(next, existing)
		}
	}
	if len(next) == 0 {
		delete(b.subs, s.topic)
		return
	}
	b.subs[s.topic] = next
}

// SubscriberCount returns the number of live subscriptions on topic.
func (b *Bus) SubscriberCount(topic string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs[topic])
}

// Publish delivers data to every handler registered on topic at the moment
// of the call, in registration order, and returns how many handlers were
// invoked. A panicking handler is recovered and reported; the remaining
// handlers still run.
func (b *Bus) Publish(topic string, data any) int {
	b.mu.Lock()
	snapshot := b.subs[topic]
	b.mu.Unlock()

	ev := Event{Topic: topic, Data: data}
	for _, s := range snapshot {
		b.deliver(s, ev)
	}
	return len(snapshot)
}

// Emit publishes an event and ignores ctx. It lets a Bus stand in wherever
// an emitter of the form Emit(ctx, event, data) is expected.
func (b *Bus) Emit(_ context.Context, event string, data any) {
	b.Publish(event, data)
}

func (b *Bus) deliver(s *Subscription, ev Event) {
	defer func() {
		if r := recover(); r != nil {
			b.fail(&HandlerPanicError{Topic: ev.Topic, Recovered: r})
		}
	}()
	s.handler(ev)
}

func (b *Bus) fail(err error) {
	log.Printf("[events] %v", err)
	if b.onError != nil {
		b.onError(err)
	}
}
