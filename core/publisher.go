package core

// HeaderOrigin is the header a Publisher stamps with its identity before
// the message is frozen.
const HeaderOrigin = "origin"

// Publisher is a thin producer-side handle: a broker reference plus an
// identity. It exists so every message from one producer carries the same
// origin header without the producer repeating it.
type Publisher struct {
	broker *Broker
	origin string
}

// NewPublisher creates a Publisher that stamps origin onto everything it
// publishes.
func NewPublisher(b *Broker, origin string) *Publisher {
	return &Publisher{broker: b, origin: origin}
}

// Origin returns the identity stamped onto published messages.
func (p *Publisher) Origin() string { return p.origin }

// Publish stamps the origin header onto the builder, freezes it, and
// forwards the message to the broker. Stamping happens on the builder, not
// the built message; a frozen Message cannot be changed.
func (p *Publisher) Publish(topic string, b *Builder) error {
	if b == nil {
		return ErrNilMessage
	}
	b.WithHeader(HeaderOrigin, p.origin)
	return p.broker.Publish(topic, b.Build())
}
