package core

import (
	"maps"
	"time"

	"github.com/google/uuid"
)

// Message is the immutable envelope routed by the broker: a unique id, an
// opaque payload, a header mapping, and a creation timestamp. The broker
// never inspects or interprets the payload.
//
// Messages are frozen at construction. The only way to attach headers is
// through a Builder, before Build is called; there is no mutation path on a
// built Message.
type Message struct {
	id        uuid.UUID
	payload   any
	headers   map[string]string
	timestamp time.Time
}

// NewMessage builds a Message in one shot from a payload and an optional
// header mapping. The mapping is copied, so the caller's map stays free to
// reuse.
func NewMessage(payload any, headers map[string]string) *Message {
	b := NewBuilder(payload)
	b.WithHeaders(headers)
	return b.Build()
}

// ID returns the unique id assigned at construction.
func (m *Message) ID() uuid.UUID { return m.id }

// Payload returns the payload as supplied by the producer.
func (m *Message) Payload() any { return m.payload }

// Header returns a single header value, or "" if the key is absent.
func (m *Message) Header(key string) string { return m.headers[key] }

// Headers returns a copy of the header mapping.
func (m *Message) Headers() map[string]string {
	if m.headers == nil {
		return nil
	}
	return maps.Clone(m.headers)
}

// Timestamp returns the creation time.
func (m *Message) Timestamp() time.Time { return m.timestamp }

// Equal reports whether both messages carry the same id.
func (m *Message) Equal(other *Message) bool {
	return other != nil && m.id == other.id
}

// Builder accumulates a payload and headers for a Message that has not been
// frozen yet. Producer-side stamping (such as the origin header added by
// Publisher) happens here; once Build runs, the headers are copied into the
// Message and later changes to the Builder have no effect on it.
type Builder struct {
	payload any
	headers map[string]string
}

// NewBuilder starts a Builder for the given payload.
func NewBuilder(payload any) *Builder {
	return &Builder{payload: payload}
}

// WithHeader sets one header, overwriting any previous value for the key.
func (b *Builder) WithHeader(key, value string) *Builder {
	if b.headers == nil {
		b.headers = make(map[string]string)
	}
	b.headers[key] = value
	return b
}

// WithHeaders merges the given mapping into the builder's headers.
func (b *Builder) WithHeaders(headers map[string]string) *Builder {
	for k, v := range headers {
		b.WithHeader(k, v)
	}
	return b
}

// Build freezes the builder into a Message with a fresh id and the current
// timestamp. The header map is cloned, so the builder can be reused or
// mutated afterwards without affecting the built Message.
func (b *Builder) Build() *Message {
	return &Message{
		id:        uuid.New(),
		payload:   b.payload,
		headers:   maps.Clone(b.headers),
		timestamp: time.Now(),
	}
}
