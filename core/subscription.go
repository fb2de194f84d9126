package core

// Subscription identifies one registration of a Subscriber with a topic.
// It is returned by Broker.Subscribe and consumed by Broker.Unsubscribe.
// The zero value identifies nothing and unsubscribes nothing.
type Subscription struct {
	topic string
	id    uint64
}

// Topic returns the name of the topic this subscription belongs to.
func (s Subscription) Topic() string { return s.topic }

func (s Subscription) valid() bool { return s.id != 0 }
