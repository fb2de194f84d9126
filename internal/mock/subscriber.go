package mock

import (
	"sync"
	"time"

	"github.com/miladsoleymani/topichub/core"
)

// Subscriber is a test double for core.Subscriber. It records every
// delivery in order and can be told to fail or panic.
type Subscriber struct {
	mu         sync.Mutex
	deliveries []Delivery

	// Err, when set, is returned from every OnMessage call.
	Err error
	// Panic, when set, makes OnMessage panic with this value.
	Panic any
}

// Delivery records one OnMessage invocation.
type Delivery struct {
	Topic   string
	Message *core.Message
}

func NewSubscriber() *Subscriber {
	return &Subscriber{}
}

func (s *Subscriber) OnMessage(topic string, msg *core.Message) error {
	s.mu.Lock()
	s.deliveries = append(s.deliveries, Delivery{Topic: topic, Message: msg})
	s.mu.Unlock()
	if s.Panic != nil {
		panic(s.Panic)
	}
	return s.Err
}

// Deliveries returns a copy of everything received so far, in order.
func (s *Subscriber) Deliveries() []Delivery {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Delivery, len(s.deliveries))
	copy(out, s.deliveries)
	return out
}

// Payloads returns the payloads received so far, in order.
func (s *Subscriber) Payloads() []any {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]any, len(s.deliveries))
	for i, d := range s.deliveries {
		out[i] = d.Message.Payload()
	}
	return out
}

// WaitFor polls until at least n deliveries arrived or the timeout expires.
// Delivery is asynchronous, so tests need a settling point.
func (s *Subscriber) WaitFor(n int, timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		s.mu.Lock()
		got := len(s.deliveries)
		s.mu.Unlock()
		if got >= n {
			return true
		}
		time.Sleep(time.Millisecond)
	}
	return false
}
