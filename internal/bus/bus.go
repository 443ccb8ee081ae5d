// Package bus is the in-process event channel between the engine and its
// external collaborators (game loop, analytics, live tuning). Dispatch is
// synchronous, at-most-once per emission, and a panicking subscriber never
// prevents the remaining subscribers from receiving the event.
package bus

import (
	"log"
	"sync"
	"time"
)

// #region topics

// Topic names an event stream.
type Topic string

const (
	TopicPatternGenerated Topic = "pattern-generated"
	TopicPatternApplied   Topic = "pattern-applied"
	TopicActionRecorded   Topic = "action-recorded"
	TopicSessionCompleted Topic = "session-completed"
	TopicInsightGenerated Topic = "insight-generated"
)

// #endregion topics

// #region event

// Event is one published notification.
type Event struct {
	Topic   Topic
	At      time.Time
	Payload any
}

// Handler consumes events for one subscription.
type Handler func(Event)

// #endregion event

// #region bus

// Bus is a minimal publish/subscribe channel. Construct one per engine;
// there is no ambient global instance.
type Bus struct {
	mu   sync.RWMutex
	subs map[Topic][]Handler
}

// New returns an empty bus.
func New() *Bus {
	return &Bus{subs: make(map[Topic][]Handler)}
}

// Subscribe registers a handler for a topic. Handlers run synchronously on
// the publisher's goroutine, in subscription order.
func (b *Bus) Subscribe(topic Topic, h Handler) {
	if h == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subs[topic] = append(b.subs[topic], h)
}

// Publish dispatches the payload to every current subscriber of the topic.
// A nil bus is a valid no-op publisher.
func (b *Bus) Publish(topic Topic, payload any) {
	if b == nil {
		return
	}
	b.mu.RLock()
	handlers := append([]Handler(nil), b.subs[topic]...)
	b.mu.RUnlock()

	ev := Event{Topic: topic, At: time.Now().UTC(), Payload: payload}
	for _, h := range handlers {
		dispatch(h, ev)
	}
}

// dispatch isolates subscriber panics so one bad handler cannot starve the rest.
func dispatch(h Handler, ev Event) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("bus: subscriber panic on %s: %v", ev.Topic, r)
		}
	}()
	h(ev)
}

// #endregion bus
