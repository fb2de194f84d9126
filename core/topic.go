package core

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/rs/zerolog"
)

type topicState int

const (
	stateActive topicState = iota
	stateShuttingDown
	stateShutDown
)

type subscriberEntry struct {
	id  uint64
	sub Subscriber
}

// topic owns an ordered subscriber list, a FIFO inbox, and one delivery
// worker goroutine. The worker pops messages strictly in arrival order and
// fans each one out to a snapshot of the subscriber list taken when delivery
// of that message begins, so mid-delivery subscription changes only affect
// later messages. No lock is held across a subscriber callback.
type topic struct {
	name  string
	inbox *queue[*Message]

	mu     sync.RWMutex
	subs   []subscriberEntry
	nextID uint64
	state  topicState

	report  func(err error)
	log     zerolog.Logger
	wg      sync.WaitGroup
	workers *sync.WaitGroup
}

// workers is the broker-wide group counting every live topic worker; the
// broker waits on it before closing the error channel, so a worker removed
// from the registry mid-shutdown can still report safely.
func newTopic(name string, queueCapacity int, report func(error), workers *sync.WaitGroup, log zerolog.Logger) *topic {
	t := &topic{
		name:    name,
		inbox:   newQueue[*Message](queueCapacity),
		report:  report,
		workers: workers,
		log:     log.With().Str("topic", name).Logger(),
	}
	t.wg.Add(1)
	workers.Add(1)
	go t.run()
	return t
}

func (t *topic) addSubscriber(s Subscriber) (uint64, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state != stateActive {
		return 0, ErrTopicInactive
	}
	t.nextID++
	t.subs = append(t.subs, subscriberEntry{id: t.nextID, sub: s})
	return t.nextID, nil
}

// removeSubscriber is idempotent; an unknown id is a no-op.
func (t *topic) removeSubscriber(id uint64) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	for i, e := range t.subs {
		if e.id == id {
			t.subs = append(t.subs[:i], t.subs[i+1:]...)
			return true
		}
	}
	return false
}

func (t *topic) subscriberCount() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.subs)
}

// enqueue appends to the inbox and returns without waiting for delivery.
func (t *topic) enqueue(msg *Message) error {
	t.mu.RLock()
	if t.state != stateActive {
		t.mu.RUnlock()
		return ErrTopicInactive
	}
	t.mu.RUnlock()

	err := t.inbox.push(msg)
	if err == errQueueClosed {
		// close() won the race between the state check and the push
		return ErrTopicInactive
	}
	return err
}

func (t *topic) run() {
	defer t.workers.Done()
	defer t.wg.Done()
	for {
		msg, ok := t.inbox.pop()
		if !ok {
			return
		}
		t.fanOut(msg)
	}
}

func (t *topic) fanOut(msg *Message) {
	t.mu.RLock()
	snapshot := make([]subscriberEntry, len(t.subs))
	copy(snapshot, t.subs)
	t.mu.RUnlock()

	for _, e := range snapshot {
		if err := t.deliver(e.sub, msg); err != nil {
			t.log.Warn().
				Err(err).
				Str("message_id", msg.ID().String()).
				Msg("subscriber delivery failed")
			t.report(&DeliveryError{Topic: t.name, MessageID: msg.ID(), Err: err})
		}
	}
}

// deliver invokes one subscriber, converting a panic into an error so a
// misbehaving callback cannot take down the worker or starve the other
// subscribers.
func (t *topic) deliver(s Subscriber, msg *Message) (err error) {
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			t.log.Error().
				Str("message_id", msg.ID().String()).
				Bytes("stack", buf[:n]).
				Msgf("panic in subscriber: %v", r)
			err = fmt.Errorf("topichub: panic in subscriber: %v", r)
		}
	}()
	return s.OnMessage(t.name, msg)
}

// close transitions the topic to its terminal state: new enqueues are
// rejected immediately, still-queued messages are discarded, and the worker
// is allowed to finish the callback it is in before exiting. Idempotent.
func (t *topic) close() {
	t.mu.Lock()
	alreadyClosing := t.state != stateActive
	if !alreadyClosing {
		t.state = stateShuttingDown
	}
	t.mu.Unlock()

	if !alreadyClosing {
		t.inbox.close()
	}
	t.wg.Wait()

	t.mu.Lock()
	t.state = stateShutDown
	t.mu.Unlock()
}
