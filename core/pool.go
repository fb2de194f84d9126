package core

import (
	"hash/fnv"
	"sync"
)

// pool is the broker's shared dispatch resource: a fixed set of workers,
// each draining its own unbounded task queue. Publish hands the
// enqueue-onto-topic step to it so producers never wait on topic delivery.
//
// Tasks are partitioned by key (the topic name), so two submissions for the
// same topic always run on the same worker in submission order. Without
// that, two back-to-back publishes could reach the topic queue reversed.
// The pool is sized independently of the topic count.
type pool struct {
	queues []*queue[func()]
	wg     sync.WaitGroup
}

func newPool(workers int) *pool {
	p := &pool{queues: make([]*queue[func()], workers)}
	for i := range p.queues {
		q := newQueue[func()](0)
		p.queues[i] = q
		p.wg.Add(1)
		go p.run(q)
	}
	return p
}

func (p *pool) run(q *queue[func()]) {
	defer p.wg.Done()
	for {
		task, ok := q.pop()
		if !ok {
			return
		}
		task()
	}
}

// submit never blocks; the task queues are unbounded.
func (p *pool) submit(key string, task func()) error {
	h := fnv.New32a()
	h.Write([]byte(key))
	return p.queues[h.Sum32()%uint32(len(p.queues))].push(task)
}

// close discards unstarted tasks and waits for in-flight ones to finish.
func (p *pool) close() {
	for _, q := range p.queues {
		q.close()
	}
	p.wg.Wait()
}
