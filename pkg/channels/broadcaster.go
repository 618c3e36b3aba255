package channels

import (
	"sync"
)

// subscriber holds a subscriber channel and its delivery counters.
type subscriber[T any] struct {
	ch      chan T
	dropped int
}

// Broadcaster delivers published messages to a dynamic set of subscribers.
//
// Delivery never blocks the publisher: when a subscriber's buffer is full the
// oldest buffered message is evicted so the subscriber always ends up holding
// the most recent messages. This suits state snapshots, where only the latest
// value matters.
//
// Close closes every subscriber channel. Publishing after Close is a no-op.
type Broadcaster[T any] struct {
	mu     sync.Mutex
	subs   map[int]*subscriber[T]
	nextID int
	closed bool
}

// NewBroadcaster creates a new Broadcaster instance for messages of type T.
func NewBroadcaster[T any]() *Broadcaster[T] {
	return &Broadcaster[T]{
		subs: make(map[int]*subscriber[T]),
	}
}

// Subscribe registers a new subscriber with the given buffer size (minimum 1)
// and returns its channel together with a cancel function. Cancel removes the
// subscriber and closes its channel; it is safe to call more than once.
func (b *Broadcaster[T]) Subscribe(buffer int) (<-chan T, func()) {
	if buffer < 1 {
		buffer = 1
	}
	ch := make(chan T, buffer)

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		close(ch)
		return ch, func() {}
	}

	id := b.nextID
	b.nextID++
	b.subs[id] = &subscriber[T]{ch: ch}

	return ch, func() {
		b.mu.Lock()
		defer b.mu.Unlock()

		if sub, ok := b.subs[id]; ok {
			delete(b.subs, id)
			close(sub.ch)
		}
	}
}

// Publish sends msg to every current subscriber.
func (b *Broadcaster[T]) Publish(msg T) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	for _, sub := range b.subs {
		evicted, err := SendLatest(sub.ch, msg)
		if evicted || err != nil {
			sub.dropped++
		}
	}
}

// Close closes all subscriber channels.
func (b *Broadcaster[T]) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	b.closed = true
	for id, sub := range b.subs {
		close(sub.ch)
		delete(b.subs, id)
	}
}

// SubscriberStats reports delivery counters for one subscriber.
type SubscriberStats struct {
	Dropped int
}

// Stats returns delivery counters for the current subscribers.
func (b *Broadcaster[T]) Stats() []SubscriberStats {
	b.mu.Lock()
	defer b.mu.Unlock()

	stats := make([]SubscriberStats, 0, len(b.subs))
	for _, sub := range b.subs {
		stats = append(stats, SubscriberStats{Dropped: sub.dropped})
	}
	return stats
}
