package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/softgrid/tabula/pkg/core"
)

func TestNotifier_FanOut(t *testing.T) {
	n := core.NewNotifier(4)
	defer n.Close()

	a, cancelA := n.Subscribe()
	b, cancelB := n.Subscribe()
	defer cancelA()
	defer cancelB()

	n.Publish(core.Event{Type: core.EventKeyAdded, Key: "Greeting"})

	evA := <-a
	evB := <-b
	assert.Equal(t, core.EventKeyAdded, evA.Type)
	assert.Equal(t, "Greeting", evB.Key)
	assert.NotZero(t, evA.Timestamp)
}

func TestNotifier_SlowSubscriberDoesNotBlock(t *testing.T) {
	n := core.NewNotifier(2)
	defer n.Close()

	ch, cancel := n.Subscribe()
	defer cancel()

	// Nobody reads ch. Publishing past the buffer must not hang.
	for i := 0; i < 10; i++ {
		n.Publish(core.Event{Type: core.EventTextChanged, Key: "k"})
	}

	// The buffered events are still readable.
	require.Len(t, ch, 2)
}

func TestNotifier_CancelClosesChannel(t *testing.T) {
	n := core.NewNotifier(1)
	defer n.Close()

	ch, cancel := n.Subscribe()
	cancel()

	_, open := <-ch
	assert.False(t, open)

	// Publishing after cancel must not panic.
	n.Publish(core.Event{Type: core.EventKeyDeleted})
}
