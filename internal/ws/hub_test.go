package ws

import (
	"encoding/json"
	"testing"
)

func TestPublishQueuesEncodedEvent(t *testing.T) {
	h := NewHub()
	h.Publish(Event{Type: "measurement", Action: "created", Data: map[string]int{"id": 7}})

	select {
	case msg := <-h.Broadcast:
		var got Event
		if err := json.Unmarshal(msg, &got); err != nil {
			t.Fatalf("invalid json: %v", err)
		}
		if got.Type != "measurement" || got.Action != "created" || got.At.IsZero() {
			t.Fatalf("unexpected event: %+v", got)
		}
	default:
		t.Fatalf("expected queued message")
	}
}

func TestPublishDropsWhenQueueFull(t *testing.T) {
	h := NewHub()
	for i := 0; i < cap(h.Broadcast)+10; i++ {
		h.Publish(Event{Type: "measurement", Action: "created"})
	}
	if len(h.Broadcast) != cap(h.Broadcast) {
		t.Fatalf("expected full queue, got %d", len(h.Broadcast))
	}
}

func TestPublishOnNilHub(t *testing.T) {
	var h *Hub
	h.Publish(Event{Type: "measurement"})
}
