package core

import (
	"sync"
	"time"
)

// DefaultEventBuffer is the per-subscriber channel capacity.
const DefaultEventBuffer = 100

// Notifier fans events out to any number of subscribers.
// Publishing never blocks: a subscriber that falls behind its buffer
// loses events instead of stalling the mutation path.
type Notifier struct {
	mu     sync.Mutex
	subs   map[int]chan Event
	nextID int
	buffer int
	closed bool
}

// NewNotifier creates a notifier with the given per-subscriber buffer.
// Zero or negative means DefaultEventBuffer.
func NewNotifier(buffer int) *Notifier {
	if buffer <= 0 {
		buffer = DefaultEventBuffer
	}
	return &Notifier{
		subs:   make(map[int]chan Event),
		buffer: buffer,
	}
}

// Subscribe registers a new subscriber. The returned cancel function
// unregisters it and closes the channel.
func (n *Notifier) Subscribe() (<-chan Event, func()) {
	n.mu.Lock()
	defer n.mu.Unlock()

	id := n.nextID
	n.nextID++

	ch := make(chan Event, n.buffer)
	if n.closed {
		close(ch)
		return ch, func() {}
	}
	n.subs[id] = ch

	cancel := func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		if sub, ok := n.subs[id]; ok {
			delete(n.subs, id)
			close(sub)
		}
	}
	return ch, cancel
}

// Publish delivers the event to every subscriber without blocking.
// The timestamp is stamped here if the caller left it zero.
func (n *Notifier) Publish(e Event) {
	if e.Timestamp == 0 {
		e.Timestamp = time.Now().Unix()
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	for _, ch := range n.subs {
		select {
		case ch <- e:
		default:
			// Subscriber buffer full. Dropping keeps mutations non-blocking.
		}
	}
}

// Close unregisters all subscribers and closes their channels.
func (n *Notifier) Close() {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.closed {
		return
	}
	n.closed = true
	for id, ch := range n.subs {
		delete(n.subs, id)
		close(ch)
	}
}
