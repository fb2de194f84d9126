package core

import (
	"fmt"
	"sync"

	"github.com/rs/zerolog"
)

// Broker is the topic registry and the producer-facing surface. It maps
// names to topics, creating them lazily on first Subscribe or Publish, and
// owns the shared dispatch pool that keeps Publish from ever waiting on
// topic delivery.
//
// Brokers are independent instances; create as many as needed. All methods
// are safe for concurrent use. After Close, every registry operation fails
// with ErrBrokerClosed.
type Broker struct {
	opts options
	log  zerolog.Logger

	mu     sync.RWMutex
	topics map[string]*topic
	closed bool

	// workers counts every live topic worker, including workers of topics
	// already unregistered by RemoveTopic. Close waits on it before closing
	// errs; a worker may report until the moment it exits.
	workers sync.WaitGroup

	dispatch *pool
	errs     chan error
}

// NewBroker creates a Broker with the given options.
func NewBroker(fns ...Option) *Broker {
	opts := defaults()
	for _, fn := range fns {
		fn(&opts)
	}
	b := &Broker{
		opts:   opts,
		log:    opts.log.With().Str("component", "broker").Logger(),
		topics: make(map[string]*topic),
		errs:   make(chan error, opts.errorBuffer),
	}
	b.dispatch = newPool(opts.dispatchWorkers)
	return b
}

// Errors exposes asynchronous failures: subscriber delivery errors, enqueue
// races with topic removal, and bounded-queue overflow drops. Reading it is
// optional; when nobody drains it and the buffer fills, further reports are
// logged and dropped. The channel is closed by Close.
func (b *Broker) Errors() <-chan error { return b.errs }

// CreateTopic registers an empty topic under name. It reports true only
// when a topic was actually created; creating an existing topic is a no-op.
func (b *Broker) CreateTopic(name string) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return false, ErrBrokerClosed
	}
	if _, ok := b.topics[name]; ok {
		return false, nil
	}
	b.topics[name] = b.newTopicLocked(name)
	return true, nil
}

// RemoveTopic unregisters and shuts down the named topic, discarding its
// queued messages and dropping its subscribers without signaling them. The
// removed instance is terminal: a later Publish or Subscribe under the same
// name auto-creates a fresh, empty topic. Must not be called from a
// subscriber callback on the same topic; it waits for that topic's worker.
func (b *Broker) RemoveTopic(name string) (bool, error) {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return false, ErrBrokerClosed
	}
	t, ok := b.topics[name]
	if ok {
		delete(b.topics, name)
	}
	b.mu.Unlock()

	if !ok {
		return false, nil
	}
	t.close()
	b.log.Debug().Str("topic", name).Msg("topic removed")
	return true, nil
}

// Subscribe registers s with the named topic, creating the topic if needed.
// Concurrent Subscribe and Publish calls naming the same unknown topic
// produce exactly one topic.
func (b *Broker) Subscribe(topicName string, s Subscriber) (Subscription, error) {
	for {
		t, err := b.getOrCreate(topicName)
		if err != nil {
			return Subscription{}, err
		}
		id, err := t.addSubscriber(s)
		if err == nil {
			return Subscription{topic: topicName, id: id}, nil
		}
		// Lost a race with RemoveTopic: the instance we got is terminal
		// and already unregistered, so the next lookup creates a fresh one.
	}
}

// Unsubscribe removes the registration identified by sub. It reports false
// when the topic or the handle is already gone. Messages in flight at the
// moment of return may still reach the subscriber; anything enqueued after
// will not.
func (b *Broker) Unsubscribe(sub Subscription) (bool, error) {
	if !sub.valid() {
		return false, nil
	}
	b.mu.RLock()
	if b.closed {
		b.mu.RUnlock()
		return false, ErrBrokerClosed
	}
	t, ok := b.topics[sub.topic]
	b.mu.RUnlock()
	if !ok {
		return false, nil
	}
	return t.removeSubscriber(sub.id), nil
}

// Publish routes msg to the named topic, creating the topic if needed. It
// returns once the enqueue has been handed to the dispatch pool, before
// the message reaches the topic queue and well before any delivery.
// Delivery failures surface on Errors, never here.
func (b *Broker) Publish(topicName string, msg *Message) error {
	if msg == nil {
		return ErrNilMessage
	}
	t, err := b.getOrCreate(topicName)
	if err != nil {
		return err
	}
	if err := b.dispatch.submit(topicName, func() {
		if err := t.enqueue(msg); err != nil {
			// Dropped before it ever reached the queue; not a delivery
			// failure, so no DeliveryError wrapper.
			b.report(fmt.Errorf("topichub: enqueue message %s on topic %q: %w", msg.ID(), topicName, err))
		}
	}); err != nil {
		return ErrBrokerClosed
	}
	return nil
}

// SubscriberCount returns the number of registrations on the named topic,
// zero when the topic does not exist.
func (b *Broker) SubscriberCount(topicName string) (int, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		return 0, ErrBrokerClosed
	}
	t, ok := b.topics[topicName]
	if !ok {
		return 0, nil
	}
	return t.subscriberCount(), nil
}

// Close shuts down every topic and the dispatch pool, then closes the error
// channel. Queued and undispatched messages are discarded; a callback
// already running is allowed to finish. Idempotent.
func (b *Broker) Close() error {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return nil
	}
	b.closed = true
	topics := make([]*topic, 0, len(b.topics))
	for _, t := range b.topics {
		topics = append(topics, t)
	}
	b.topics = make(map[string]*topic)
	b.mu.Unlock()

	// Stop dispatch first so no new enqueues land on closing topics, then
	// stop the workers. Waiting on the broker-wide group also covers topics
	// a concurrent RemoveTopic has already taken out of the registry; only
	// after every reporter has exited is the error channel safe to close.
	b.dispatch.close()
	for _, t := range topics {
		t.close()
	}
	b.workers.Wait()
	close(b.errs)
	b.log.Debug().Msg("broker closed")
	return nil
}

func (b *Broker) getOrCreate(name string) (*topic, error) {
	b.mu.RLock()
	if b.closed {
		b.mu.RUnlock()
		return nil, ErrBrokerClosed
	}
	t, ok := b.topics[name]
	b.mu.RUnlock()
	if ok {
		return t, nil
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil, ErrBrokerClosed
	}
	if t, ok := b.topics[name]; ok {
		return t, nil
	}
	t = b.newTopicLocked(name)
	b.topics[name] = t
	b.log.Debug().Str("topic", name).Msg("topic created")
	return t, nil
}

func (b *Broker) newTopicLocked(name string) *topic {
	return newTopic(name, b.opts.queueCapacity, b.report, &b.workers, b.opts.log)
}

// report forwards an asynchronous failure to the observation channel
// without ever blocking a worker.
func (b *Broker) report(err error) {
	select {
	case b.errs <- err:
	default:
		b.log.Warn().Err(err).Msg("error channel full, report dropped")
	}
}
