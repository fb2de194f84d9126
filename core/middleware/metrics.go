package middleware

import (
	"time"

	"github.com/miladsoleymani/topichub/core"
)

// Collector is the interface that metrics backends must implement. This
// keeps the middleware decoupled from any specific metrics library.
type Collector interface {
	// MessageProcessed records that one delivery was handled. duration is
	// handling time and err is nil on success.
	MessageProcessed(topic string, duration time.Duration, err error)
}

// Metrics returns a decorator that reports handling metrics for the wrapped
// subscriber to the given collector.
func Metrics(collector Collector) Decorator {
	return func(next core.Subscriber) core.Subscriber {
		return core.SubscriberFunc(func(topic string, msg *core.Message) error {
			start := time.Now()
			err := next.OnMessage(topic, msg)
			collector.MessageProcessed(topic, time.Since(start), err)
			return err
		})
	}
}
