package core

import "github.com/rs/zerolog"

// Option configures a Broker.
type Option func(*options)

type options struct {
	// Dispatch
	dispatchWorkers int

	// Topics
	queueCapacity int

	// Observability
	errorBuffer int
	log         zerolog.Logger
}

func defaults() options {
	return options{
		dispatchWorkers: 4,
		queueCapacity:   0, // unbounded
		errorBuffer:     64,
		log:             zerolog.Nop(),
	}
}

// WithDispatchWorkers sets the size of the shared dispatch pool that
// decouples Publish callers from topic queues. Values below 1 are clamped.
func WithDispatchWorkers(n int) Option {
	return func(o *options) {
		if n < 1 {
			n = 1
		}
		o.dispatchWorkers = n
	}
}

// WithQueueCapacity bounds each topic's inbox. When the bound is reached
// further messages are dropped and reported on the error channel instead of
// blocking a dispatch worker. Zero (the default) means unbounded.
func WithQueueCapacity(n int) Option {
	return func(o *options) { o.queueCapacity = n }
}

// WithErrorBuffer sets the capacity of the error observation channel. When
// the buffer is full further reports are logged and dropped, never blocking
// a delivery worker.
func WithErrorBuffer(n int) Option {
	return func(o *options) {
		if n < 1 {
			n = 1
		}
		o.errorBuffer = n
	}
}

// WithLogger attaches a structured logger. The default discards everything.
func WithLogger(log zerolog.Logger) Option {
	return func(o *options) { o.log = log }
}
