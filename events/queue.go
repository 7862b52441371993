package events

import (
	"sync"
	"time"

	"github.com/lixenwraith/genius/constants"
)

// EventQueue is a FIFO of game events
// Thread-Safety:
//   - Push: producers are the game loop; the mutex keeps stray producers safe
//   - Consume: single consumer (game loop), drains everything pending
type EventQueue struct {
	mu     sync.Mutex
	events []GameEvent
	now    func() time.Time
}

// NewEventQueue creates an empty queue stamping events with the wall clock
func NewEventQueue() *EventQueue {
	return &EventQueue{
		events: make([]GameEvent, 0, constants.EventQueueCapacity),
		now:    time.Now,
	}
}

// Push appends an event, stamping it if the timestamp is unset
func (eq *EventQueue) Push(event GameEvent) {
	if event.Timestamp.IsZero() {
		event.Timestamp = eq.now()
	}
	eq.mu.Lock()
	eq.events = append(eq.events, event)
	eq.mu.Unlock()
}

// Emit is shorthand for pushing a typed payload
func (eq *EventQueue) Emit(et EventType, payload any) {
	eq.Push(GameEvent{Type: et, Payload: payload})
}

// Consume returns all pending events in FIFO order and empties the queue
func (eq *EventQueue) Consume() []GameEvent {
	eq.mu.Lock()
	defer eq.mu.Unlock()

	if len(eq.events) == 0 {
		return nil
	}
	result := eq.events
	eq.events = make([]GameEvent, 0, constants.EventQueueCapacity)
	return result
}

// Len returns the number of pending events
func (eq *EventQueue) Len() int {
	eq.mu.Lock()
	defer eq.mu.Unlock()
	return len(eq.events)
}
