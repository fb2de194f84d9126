package core

import "sync"

// queue is an interruptible FIFO. It backs both topic inboxes and the
// dispatch pool's task feed. Unbounded by default; with a positive capacity
// it rejects pushes instead of growing, which the caller turns into a
// drop-and-report.
//
// pop blocks until an item arrives or the queue is closed. close drops
// everything still pending and wakes all waiters; there is no drain
// guarantee.
type queue[T any] struct {
	mu       sync.Mutex
	nonEmpty *sync.Cond
	items    []T
	capacity int
	closed   bool
}

func newQueue[T any](capacity int) *queue[T] {
	q := &queue[T]{capacity: capacity}
	q.nonEmpty = sync.NewCond(&q.mu)
	return q
}

func (q *queue[T]) push(v T) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return errQueueClosed
	}
	if q.capacity > 0 && len(q.items) >= q.capacity {
		return ErrQueueOverflow
	}
	q.items = append(q.items, v)
	q.nonEmpty.Signal()
	return nil
}

func (q *queue[T]) pop() (T, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for len(q.items) == 0 && !q.closed {
		q.nonEmpty.Wait()
	}
	if q.closed {
		var zero T
		return zero, false
	}
	v := q.items[0]
	q.items = q.items[1:]
	return v, true
}

func (q *queue[T]) close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return
	}
	q.closed = true
	q.items = nil
	q.nonEmpty.Broadcast()
}

func (q *queue[T]) len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}
