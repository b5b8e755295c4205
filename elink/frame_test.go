package elink

import (
	"errors"
	"testing"
	"time"
)

func TestFrameReaderAssemblesSplitDelimiter(t *testing.T) {
	transport := NewTestTransport()
	defer transport.Close()
	fr := newFrameReader(transport)

	// The delimiter arrives split across three physical reads.
	transport.SendData("OK 1")
	transport.SendData("\r")
	transport.SendData("\nEVT MSG 2\r\n")

	line, err := fr.next(time.Now().Add(time.Second))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if line != "OK 1" {
		t.Errorf("expected %q, got %q", "OK 1", line)
	}

	// The second line was buffered in the same chunk as the first
	// delimiter's tail.
	line, err = fr.next(time.Now().Add(time.Second))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if line != "EVT MSG 2" {
		t.Errorf("expected %q, got %q", "EVT MSG 2", line)
	}
}

func TestFrameReaderTimeoutDiscardsPartial(t *testing.T) {
	transport := NewTestTransport()
	defer transport.Close()
	fr := newFrameReader(transport)

	// A partial line with no delimiter before the deadline.
	transport.SendData("OK 1")

	_, err := fr.next(time.Now().Add(30 * time.Millisecond))
	if !errors.Is(err, ErrTimeout) {
		t.Fatalf("expected ErrTimeout, got %v", err)
	}

	// The partial line is gone: the next complete line comes out clean,
	// without the stale "OK 1" prefix.
	transport.SendData("READY\r\n")
	line, err := fr.next(time.Now().Add(time.Second))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if line != "READY" {
		t.Errorf("expected %q, got %q", "READY", line)
	}
}

func TestFrameReaderTransportError(t *testing.T) {
	transport := NewTestTransport()
	fr := newFrameReader(transport)
	transport.Close()

	_, err := fr.next(time.Now().Add(time.Second))
	var te *TransportError
	if !errors.As(err, &te) {
		t.Fatalf("expected *TransportError, got %v", err)
	}
}
