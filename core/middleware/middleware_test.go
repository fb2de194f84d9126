package middleware_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/miladsoleymani/topichub/core"
	"github.com/miladsoleymani/topichub/core/middleware"
	"github.com/miladsoleymani/topichub/internal/mock"
)

func TestLogging(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf)

	inner := mock.NewSubscriber()
	sub := middleware.Logging(log)(inner)

	msg := core.NewMessage("v", nil)
	require.NoError(t, sub.OnMessage("orders", msg))

	out := buf.String()
	assert.Contains(t, out, `"topic":"orders"`)
	assert.Contains(t, out, msg.ID().String())
	assert.Contains(t, out, `"level":"info"`)
	assert.Len(t, inner.Deliveries(), 1)
}

func TestLogging_Error(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf)

	inner := mock.NewSubscriber()
	inner.Err = errors.New("boom")
	sub := middleware.Logging(log)(inner)

	err := sub.OnMessage("orders", core.NewMessage("v", nil))
	assert.ErrorIs(t, err, inner.Err)
	assert.Contains(t, buf.String(), `"level":"error"`)
	assert.Contains(t, buf.String(), "boom")
}

func TestRecovery(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf)

	inner := mock.NewSubscriber()
	inner.Panic = "kaboom"
	sub := middleware.Recovery(log)(inner)

	err := sub.OnMessage("t", core.NewMessage("v", nil))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "kaboom")
	assert.Contains(t, buf.String(), "panic recovered")
}

func TestRecovery_PassThrough(t *testing.T) {
	inner := mock.NewSubscriber()
	sub := middleware.Recovery(zerolog.Nop())(inner)

	require.NoError(t, sub.OnMessage("t", core.NewMessage("v", nil)))
	assert.Len(t, inner.Deliveries(), 1)
}

func TestMetrics(t *testing.T) {
	collector := mock.NewCollector()

	inner := mock.NewSubscriber()
	sub := middleware.Metrics(collector)(inner)

	require.NoError(t, sub.OnMessage("orders", core.NewMessage("v", nil)))

	inner.Err = errors.New("boom")
	_ = sub.OnMessage("payments", core.NewMessage("v", nil))

	obs := collector.Observations()
	require.Len(t, obs, 2)
	assert.Equal(t, "orders", obs[0].Topic)
	assert.NoError(t, obs[0].Err)
	assert.Equal(t, "payments", obs[1].Topic)
	assert.ErrorIs(t, obs[1].Err, inner.Err)
}

func TestDecorators_Compose(t *testing.T) {
	var calls []string
	observe := func(name string) middleware.Decorator {
		return func(next core.Subscriber) core.Subscriber {
			return core.SubscriberFunc(func(topic string, msg *core.Message) error {
				calls = append(calls, name+":before")
				err := next.OnMessage(topic, msg)
				calls = append(calls, name+":after")
				return err
			})
		}
	}

	inner := core.SubscriberFunc(func(topic string, msg *core.Message) error {
		calls = append(calls, "subscriber")
		return nil
	})

	sub := observe("outer")(observe("inner")(inner))
	require.NoError(t, sub.OnMessage("t", core.NewMessage("v", nil)))
	assert.Equal(t, []string{"outer:before", "inner:before", "subscriber", "inner:after", "outer:after"}, calls)
}

func TestDecorators_ComposeWithFilter(t *testing.T) {
	collector := mock.NewCollector()
	inner := mock.NewSubscriber()

	// Filter outside metrics: suppressed messages are not measured.
	sub := core.NewFilteredSubscriber(
		middleware.Metrics(collector)(inner),
		core.HeaderEquals("priority", "high"),
	)

	sub.OnMessage("t", core.NewMessage(1, map[string]string{"priority": "low"}))
	sub.OnMessage("t", core.NewMessage(2, map[string]string{"priority": "high"}))

	assert.Len(t, collector.Observations(), 1)
	assert.Len(t, inner.Deliveries(), 1)
}
