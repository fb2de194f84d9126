package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/miladsoleymani/topichub/core"
)

func TestMessage_UniqueIDs(t *testing.T) {
	m1 := core.NewMessage("a", nil)
	m2 := core.NewMessage("a", nil)
	assert.NotEqual(t, m1.ID(), m2.ID())
	assert.False(t, m1.Equal(m2))
	assert.True(t, m1.Equal(m1))
	assert.False(t, m1.Equal(nil))
}

func TestMessage_HeadersFrozenAtBuild(t *testing.T) {
	src := map[string]string{"priority": "high"}
	msg := core.NewMessage("payload", src)

	// Mutating the source map after construction must not leak through.
	src["priority"] = "low"
	src["extra"] = "x"
	assert.Equal(t, "high", msg.Header("priority"))
	assert.Equal(t, "", msg.Header("extra"))

	// Mutating the returned copy must not change the message either.
	h := msg.Headers()
	h["priority"] = "low"
	assert.Equal(t, "high", msg.Header("priority"))
}

func TestBuilder_ReusableAfterBuild(t *testing.T) {
	b := core.NewBuilder("payload").WithHeader("k", "v1")
	m1 := b.Build()

	b.WithHeader("k", "v2")
	m2 := b.Build()

	assert.Equal(t, "v1", m1.Header("k"))
	assert.Equal(t, "v2", m2.Header("k"))
	assert.NotEqual(t, m1.ID(), m2.ID())
}

func TestBuilder_WithHeadersMerges(t *testing.T) {
	msg := core.NewBuilder(42).
		WithHeader("a", "1").
		WithHeaders(map[string]string{"b": "2", "a": "overridden"}).
		Build()

	require.Equal(t, 42, msg.Payload())
	assert.Equal(t, "overridden", msg.Header("a"))
	assert.Equal(t, "2", msg.Header("b"))
	assert.False(t, msg.Timestamp().IsZero())
}

func TestMessage_NilHeaders(t *testing.T) {
	msg := core.NewMessage("p", nil)
	assert.Nil(t, msg.Headers())
	assert.Equal(t, "", msg.Header("anything"))
}
