package core

// Subscriber consumes messages fanned out by a topic's delivery worker.
// Implementations are invoked sequentially, one message at a time, and must
// not assume any ordering across topics. A returned error (or a panic) is
// contained by the worker: it is reported on the broker's error channel and
// never affects other subscribers or later messages.
type Subscriber interface {
	OnMessage(topic string, msg *Message) error
}

// SubscriberFunc adapts a plain function to the Subscriber interface.
//
//	b.Subscribe("orders", core.SubscriberFunc(func(topic string, msg *core.Message) error {
//	    fmt.Println(msg.Payload())
//	    return nil
//	}))
type SubscriberFunc func(topic string, msg *Message) error

func (f SubscriberFunc) OnMessage(topic string, msg *Message) error {
	return f(topic, msg)
}
