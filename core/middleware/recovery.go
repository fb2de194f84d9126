package middleware

import (
	"fmt"
	"runtime"

	"github.com/rs/zerolog"

	"github.com/miladsoleymani/topichub/core"
)

// Decorator wraps a Subscriber to add cross-cutting behavior. Decorators
// compose: Recovery(log)(Logging(log)(sub)) recovers outermost.
type Decorator func(core.Subscriber) core.Subscriber

// Recovery returns a decorator that recovers from panics in the wrapped
// subscriber, logs the stack trace, and returns the panic as an error. The
// topic worker already contains panics; use Recovery when the failure
// should be observed with this subscriber's own logger instead.
func Recovery(log zerolog.Logger) Decorator {
	return func(next core.Subscriber) core.Subscriber {
		return core.SubscriberFunc(func(topic string, msg *core.Message) (err error) {
			defer func() {
				if r := recover(); r != nil {
					buf := make([]byte, 4096)
					n := runtime.Stack(buf, false)
					log.Error().
						Str("topic", topic).
						Bytes("stack", buf[:n]).
						Msgf("panic recovered: %v", r)
					err = fmt.Errorf("topichub: panic recovered: %v", r)
				}
			}()
			return next.OnMessage(topic, msg)
		})
	}
}
