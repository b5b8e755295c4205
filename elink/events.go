package elink

import (
	"strconv"

	"github.com/ablareau/elgw/at"
)

// EventCode identifies an asynchronous module event. The numeric values
// are fixed by the module firmware's event table.
type EventCode int

const (
	// EventMsg — parameter is the topic index; a message was received.
	EventMsg EventCode = 1
	// EventStartup — the module has entered the active state.
	EventStartup EventCode = 2
	// EventConLost — connection unexpectedly lost.
	EventConLost EventCode = 3
	// EventOverrun — receive buffer overrun (topic in detail).
	EventOverrun EventCode = 4
	// EventOTA — an OTA event occurred; query OTA state for details.
	EventOTA EventCode = 5
	// EventConnect — connection established (param 0) or failed (> 0).
	EventConnect EventCode = 6
	// EventConfmode — CONFMODE exited with success.
	EventConfmode EventCode = 7
	// EventSubAck / EventSubNack — subscription accepted or rejected;
	// parameter is the topic index.
	EventSubAck  EventCode = 8
	EventSubNack EventCode = 9

	// Shadow events; parameter is the shadow index.
	EventShadowInit       EventCode = 20
	EventShadowInitFailed EventCode = 21
	EventShadowDoc        EventCode = 22
	EventShadowUpdate     EventCode = 23
	EventShadowDelta      EventCode = 24
	EventShadowDelete     EventCode = 25
	EventShadowSubAck     EventCode = 26
	EventShadowSubNack    EventCode = 27
)

var eventMnemonics = map[EventCode]string{
	EventMsg:              "MSG",
	EventStartup:          "STARTUP",
	EventConLost:          "CONLOST",
	EventOverrun:          "OVERRUN",
	EventOTA:              "OTA",
	EventConnect:          "CONNECT",
	EventConfmode:         "CONFMODE",
	EventSubAck:           "SUBACK",
	EventSubNack:          "SUBNACK",
	EventShadowInit:       "SHADOW_INIT",
	EventShadowInitFailed: "SHADOW_INIT_FAILED",
	EventShadowDoc:        "SHADOW_DOC",
	EventShadowUpdate:     "SHADOW_UPDATE",
	EventShadowDelta:      "SHADOW_DELTA",
	EventShadowDelete:     "SHADOW_DELETE",
	EventShadowSubAck:     "SHADOW_SUBACK",
	EventShadowSubNack:    "SHADOW_SUBNACK",
}

var eventCodes = func() map[string]EventCode {
	m := make(map[string]EventCode, len(eventMnemonics))
	for code, name := range eventMnemonics {
		m[name] = code
	}
	return m
}()

func (c EventCode) String() string {
	if s, ok := eventMnemonics[c]; ok {
		return s
	}
	return "EVENT(" + strconv.Itoa(int(c)) + ")"
}

// Event is one asynchronous notification from the module, either pushed
// as an EVT line during a command cycle or pulled via the EVENT? query.
type Event struct {
	// Code is the numeric event identifier, zero if the mnemonic is not
	// in the known table.
	Code EventCode
	// Param is the event parameter (topic index, shadow index,
	// connection hint — meaning depends on Code).
	Param int
	// Mnemonic is the event type as it appeared on the wire.
	Mnemonic string
	// Detail is the optional trailing payload.
	Detail string
}

// eventFromWire builds an Event from a decoded EVT notification line:
// EVT <mnemonic> [param] [detail].
func eventFromWire(we at.Event) Event {
	ev := Event{Mnemonic: we.Mnemonic, Code: eventCodes[we.Mnemonic]}
	if len(we.Fields) > 0 {
		ev.Param, _ = strconv.Atoi(we.Fields[0])
	}
	if len(we.Fields) > 1 {
		ev.Detail = we.Fields[1]
	}
	return ev
}

// eventQueue is a bounded FIFO of unconsumed events. Push never blocks:
// when full, the oldest entry is evicted first. Not safe for concurrent
// use; it is touched only from the caller's synchronous flow, like the
// rest of the Session.
type eventQueue struct {
	items []Event
	cap   int
}

func newEventQueue(capacity int) *eventQueue {
	if capacity < 1 {
		capacity = 1
	}
	return &eventQueue{cap: capacity}
}

func (q *eventQueue) push(ev Event) {
	if len(q.items) == q.cap {
		copy(q.items, q.items[1:])
		q.items = q.items[:len(q.items)-1]
	}
	q.items = append(q.items, ev)
}

func (q *eventQueue) pop() (Event, bool) {
	if len(q.items) == 0 {
		return Event{}, false
	}
	ev := q.items[0]
	copy(q.items, q.items[1:])
	q.items = q.items[:len(q.items)-1]
	return ev, true
}

func (q *eventQueue) len() int { return len(q.items) }
