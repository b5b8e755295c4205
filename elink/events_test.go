package elink

import (
	"testing"

	"github.com/ablareau/elgw/at"
)

func TestEventQueueFIFO(t *testing.T) {
	q := newEventQueue(4)

	for i := 1; i <= 3; i++ {
		q.push(Event{Code: EventMsg, Param: i})
	}

	for i := 1; i <= 3; i++ {
		ev, ok := q.pop()
		if !ok {
			t.Fatalf("expected event %d, queue empty", i)
		}
		if ev.Param != i {
			t.Errorf("expected param %d, got %d", i, ev.Param)
		}
	}

	if _, ok := q.pop(); ok {
		t.Error("expected empty queue")
	}
}

func TestEventQueueEvictsOldest(t *testing.T) {
	q := newEventQueue(3)

	for i := 1; i <= 5; i++ {
		q.push(Event{Code: EventMsg, Param: i})
	}

	if q.len() != 3 {
		t.Fatalf("expected 3 queued events, got %d", q.len())
	}

	// Only the 3 most recent survive, in arrival order.
	for _, want := range []int{3, 4, 5} {
		ev, ok := q.pop()
		if !ok {
			t.Fatal("queue drained early")
		}
		if ev.Param != want {
			t.Errorf("expected param %d, got %d", want, ev.Param)
		}
	}
}

func TestEventFromWire(t *testing.T) {
	ev := eventFromWire(at.Event{Mnemonic: "CONNECT", Fields: []string{"0"}})
	if ev.Code != EventConnect {
		t.Errorf("expected EventConnect, got %v", ev.Code)
	}
	if ev.Param != 0 {
		t.Errorf("expected param 0, got %d", ev.Param)
	}

	ev = eventFromWire(at.Event{Mnemonic: "OVERRUN", Fields: []string{"0", "sensors/overflowing"}})
	if ev.Detail != "sensors/overflowing" {
		t.Errorf("expected detail preserved, got %q", ev.Detail)
	}

	ev = eventFromWire(at.Event{Mnemonic: "VENDOR_EXT"})
	if ev.Code != 0 {
		t.Errorf("unknown mnemonic should map to code 0, got %v", ev.Code)
	}
	if ev.Mnemonic != "VENDOR_EXT" {
		t.Errorf("mnemonic should be preserved, got %q", ev.Mnemonic)
	}
}
