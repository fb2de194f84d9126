package middleware

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/miladsoleymani/topichub/core"
)

// Logging returns a decorator that logs each delivery with its topic,
// message id, handling duration, and outcome.
func Logging(log zerolog.Logger) Decorator {
	return func(next core.Subscriber) core.Subscriber {
		return core.SubscriberFunc(func(topic string, msg *core.Message) error {
			start := time.Now()
			err := next.OnMessage(topic, msg)
			elapsed := time.Since(start)

			evt := log.Info()
			if err != nil {
				evt = log.Error().Err(err)
			}
			evt.
				Str("topic", topic).
				Str("message_id", msg.ID().String()).
				Dur("elapsed", elapsed).
				Msg("delivery handled")
			return err
		})
	}
}
