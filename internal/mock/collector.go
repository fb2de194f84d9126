package mock

import (
	"sync"
	"time"
)

// Collector is a test double for middleware.Collector.
type Collector struct {
	mu           sync.Mutex
	observations []Observation
}

// Observation records one MessageProcessed call.
type Observation struct {
	Topic    string
	Duration time.Duration
	Err      error
}

func NewCollector() *Collector {
	return &Collector{}
}

func (c *Collector) MessageProcessed(topic string, duration time.Duration, err error) {
	c.mu.Lock()
	c.observations = append(c.observations, Observation{Topic: topic, Duration: duration, Err: err})
	c.mu.Unlock()
}

// Observations returns a copy of everything recorded so far.
func (c *Collector) Observations() []Observation {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Observation, len(c.observations))
	copy(out, c.observations)
	return out
}
