package core

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	// ErrBrokerClosed is returned when operations are attempted on a closed broker.
	ErrBrokerClosed = errors.New("topichub: broker is closed")

	// ErrTopicInactive is returned when enqueueing onto a topic that has begun
	// shutting down. A topic never becomes active again.
	ErrTopicInactive = errors.New("topichub: topic is no longer accepting messages")

	// ErrQueueOverflow is reported when a bounded topic queue is full and a
	// message had to be dropped.
	ErrQueueOverflow = errors.New("topichub: topic queue is full")

	// ErrNilMessage is returned when publishing a nil message or builder.
	ErrNilMessage = errors.New("topichub: message is nil")
)

// errQueueClosed is the internal signal that a queue was closed under a
// waiter or pusher. Callers translate it into ErrTopicInactive or
// ErrBrokerClosed depending on which queue it came from.
var errQueueClosed = errors.New("topichub: queue is closed")

// DeliveryError describes a single failed subscriber invocation. It is never
// returned to the publisher; the topic worker reports it on the broker's
// error channel and moves on to the next subscriber.
type DeliveryError struct {
	Topic     string
	MessageID uuid.UUID
	Err       error
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("topichub: deliver message %s on topic %q: %v", e.MessageID, e.Topic, e.Err)
}

func (e *DeliveryError) Unwrap() error { return e.Err }
