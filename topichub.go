// Package topichub provides the top-level API for the topichub in-process
// broker. It re-exports core types for convenience, so users can write:
//
//	b := topichub.New()
//	b.Subscribe("orders", sub)
//	b.Publish("orders", topichub.NewMessage(order, nil))
package topichub

import (
	"github.com/miladsoleymani/topichub/core"
)

// Re-export core types at the package level for ergonomic usage.
type (
	Message            = core.Message
	Builder            = core.Builder
	Subscriber         = core.Subscriber
	SubscriberFunc     = core.SubscriberFunc
	Filter             = core.Filter
	FilterFunc         = core.FilterFunc
	FilteredSubscriber = core.FilteredSubscriber
	Subscription       = core.Subscription
	Broker             = core.Broker
	Publisher          = core.Publisher
	DeliveryError      = core.DeliveryError
	Option             = core.Option
)

// New creates a Broker with the given options.
func New(opts ...Option) *Broker {
	return core.NewBroker(opts...)
}

// NewMessage builds a frozen Message from a payload and optional headers.
func NewMessage(payload any, headers map[string]string) *Message {
	return core.NewMessage(payload, headers)
}

// NewBuilder starts a message Builder for producer-side header stamping.
func NewBuilder(payload any) *Builder {
	return core.NewBuilder(payload)
}

// NewPublisher creates a producer handle that stamps origin onto every
// message it publishes.
func NewPublisher(b *Broker, origin string) *Publisher {
	return core.NewPublisher(b, origin)
}
