package events

import (
	"context"
	"sync"
	"time"
)

// Channel is the name order changes are announced under, locally and on Redis.
const Channel = "orders-updated"

const (
	OrderCreated       = "order_created"
	OrderStatusChanged = "order_status_changed"
	OrdersReplaced     = "orders_replaced"
)

type Event struct {
	Type    string    `json:"type"`
	OrderID string    `json:"order_id,omitempty"`
	Status  string    `json:"status,omitempty"`
	Origin  string    `json:"origin,omitempty"`
	At      time.Time `json:"at"`
}

type Publisher interface {
	Publish(ctx context.Context, ev Event)
}

// Broker fans events out to the subscribers registered at publish time.
type Broker struct {
	mu     sync.RWMutex
	subs   map[int]chan Event
	next   int
	buffer int
}

func NewBroker(buffer int) *Broker {
	if buffer <= 0 {
		buffer = 16
	}
	return &Broker{subs: make(map[int]chan Event), buffer: buffer}
}

// Subscribe returns a channel of events and a function that unregisters it.
// The channel is closed by cancel.
func (b *Broker) Subscribe() (<-chan Event, func()) {
	ch := make(chan Event, b.buffer)

	b.mu.Lock()
	id := b.next
	b.next++
	b.subs[id] = ch
	b.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.subs, id)
			b.mu.Unlock()
			close(ch)
		})
	}
	return ch, cancel
}

// Publish never blocks. A subscriber with a full buffer already has a
// pending reload, so the event is dropped for it.
func (b *Broker) Publish(_ context.Context, ev Event) {
	if ev.At.IsZero() {
		ev.At = time.Now()
	}

	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, ch := range b.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}

func (b *Broker) Subscribers() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}

// MultiPublisher hands every event to each publisher in order.
type MultiPublisher []Publisher

func (m MultiPublisher) Publish(ctx context.Context, ev Event) {
	for _, p := range m {
		p.Publish(ctx, ev)
	}
}
