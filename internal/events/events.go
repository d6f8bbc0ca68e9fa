package events

import (
	"context"
	"sync"
)

const (
	TypeLoading   = "analysis.loading"
	TypeSucceeded = "analysis.succeeded"
	TypeFailed    = "analysis.failed"
	// TypeSnapshot carries the current state to a subscriber as it connects.
	TypeSnapshot = "analysis.snapshot"
)

// StateEvent announces one transition of the analysis controller.
type StateEvent struct {
	Seq    int64  `json:"seq"`
	Type   string `json:"type"`
	RunID  string `json:"run_id"`
	Status string `json:"status"`
	Ts     string `json:"ts"`
	Error  string `json:"error,omitempty"`
}

const subscriberBuffer = 16

type Broker struct {
	mu          sync.RWMutex
	subscribers map[chan StateEvent]struct{}
}

func NewBroker() *Broker {
	return &Broker{
		subscribers: map[chan StateEvent]struct{}{},
	}
}

// Subscribe registers a listener until ctx is done, then closes the channel.
func (b *Broker) Subscribe(ctx context.Context) <-chan StateEvent {
	ch := make(chan StateEvent, subscriberBuffer)

	b.mu.Lock()
	b.subscribers[ch] = struct{}{}
	b.mu.Unlock()

	go func() {
		<-ctx.Done()
		b.mu.Lock()
		delete(b.subscribers, ch)
		b.mu.Unlock()
		close(ch)
	}()

	return ch
}

// Publish fans the event out without blocking; slow subscribers miss events.
// Sends happen under the read lock so a subscriber cannot be closed mid-send.
func (b *Broker) Publish(event StateEvent) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for ch := range b.subscribers {
		select {
		case ch <- event:
		default:
		}
	}
}
