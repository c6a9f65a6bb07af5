package SSE

import "testing"

func TestBroadcastDeliversToDrainingClient(t *testing.T) {
	broadcaster := NewSSEBroadcaster()
	client := make(chan string, 1)
	broadcaster.Register(client)

	broadcaster.Broadcast(EventRefresh)

	select {
	case message := <-client:
		if message != EventRefresh {
			t.Errorf("expected %q, got %q", EventRefresh, message)
		}
	default:
		t.Fatalf("expected a delivered event")
	}

	broadcaster.Unregister(client)
	if _, ok := <-client; ok {
		t.Errorf("expected channel closed after unregister")
	}
}

func TestBroadcastDropsStalledClientOnce(t *testing.T) {
	broadcaster := NewSSEBroadcaster()
	client := make(chan string)
	broadcaster.Register(client)

	// Nobody drains: the broadcast times out, drops the client and closes
	// its channel.
	broadcaster.Broadcast(EventRefresh)

	if _, ok := <-client; ok {
		t.Fatalf("expected channel closed after drop")
	}

	// The handler's deferred unregister runs after the drop; it must not
	// close the channel a second time.
	broadcaster.Unregister(client)
}

func TestUnregisterTwiceIsHarmless(t *testing.T) {
	broadcaster := NewSSEBroadcaster()
	client := make(chan string)
	broadcaster.Register(client)
	broadcaster.Unregister(client)
	broadcaster.Unregister(client)
}
