package display

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNotifierDeliversToSubscribers(t *testing.T) {
	n := NewNotifier()
	ch, cancel := n.Subscribe("ev-1")
	defer cancel()

	n.Notify("ev-1")
	select {
	case <-ch:
	case <-time.After(time.Second):
		t.Fatal("no signal delivered")
	}
}

func TestNotifierScopesByEvent(t *testing.T) {
	n := NewNotifier()
	ch, cancel := n.Subscribe("ev-1")
	defer cancel()

	n.Notify("ev-other")
	select {
	case <-ch:
		t.Fatal("signal leaked across events")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestNotifierCancelStopsDelivery(t *testing.T) {
	n := NewNotifier()
	ch, cancel := n.Subscribe("ev-1")
	cancel()

	n.Notify("ev-1")
	select {
	case <-ch:
		t.Fatal("signal after cancel")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestNotifierCoalescesBursts(t *testing.T) {
	n := NewNotifier()
	ch, cancel := n.Subscribe("ev-1")
	defer cancel()

	// a burst never blocks the notifier
	for i := 0; i < 10; i++ {
		n.Notify("ev-1")
	}
	<-ch
	assert.Empty(t, ch)
}
