package elink

import (
	"context"
	"io"
	"strings"
	"sync"
	"time"
)

// TestTransport is a test helper that simulates the module side of the
// serial link using channels. Reads block until data is queued, like a
// real serial port, but return (0, nil) after a short idle interval so
// the frame reader can observe its deadline — the same contract a
// serial port with a read timeout provides.
//
// Exported for use in tests; it is not part of the runtime API.
type TestTransport struct {
	mu       sync.Mutex
	readChan chan []byte
	closed   bool
	idleTick time.Duration

	// Responder, when set, is invoked with each decoded command line
	// written to the transport; whatever it returns is queued as module
	// output. This turns the transport into a scripted module.
	Responder func(cmdLine string) string
}

// NewTestTransport creates a test transport with room for a few queued
// chunks.
func NewTestTransport() *TestTransport {
	return &TestTransport{
		readChan: make(chan []byte, 16),
		idleTick: 5 * time.Millisecond,
	}
}

// TestDialer wraps the transport so it can be handed to New.
type TestDialer struct {
	Transport Transport
}

func (d TestDialer) Dial(ctx context.Context) (Transport, error) {
	return d.Transport, nil
}

func (t *TestTransport) Write(p []byte) (n int, err error) {
	t.mu.Lock()
	responder := t.Responder
	closed := t.closed
	t.mu.Unlock()
	if closed {
		return 0, io.ErrClosedPipe
	}
	if responder != nil {
		line := strings.TrimSuffix(string(p), "\r\n")
		if out := responder(line); out != "" {
			t.SendData(out)
		}
	}
	return len(p), nil
}

func (t *TestTransport) Read(p []byte) (n int, err error) {
	select {
	case data, ok := <-t.readChan:
		if !ok {
			return 0, io.EOF
		}
		return copy(p, data), nil
	case <-time.After(t.idleTick):
		return 0, nil
	}
}

func (t *TestTransport) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return nil
	}
	t.closed = true
	close(t.readChan)
	return nil
}

// SendData queues raw bytes to be read by the transport, simulating
// output from the module. Chunk boundaries are preserved, so tests can
// split a line — or its delimiter — across multiple reads.
func (t *TestTransport) SendData(data string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.closed {
		t.readChan <- []byte(data)
	}
}
