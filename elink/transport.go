package elink

import (
	"context"
	"io"
	"time"
)

//go:generate go tool mockgen -source=transport.go -destination=mock_transport.go -package=elink

// Transport represents an established, bidirectional byte stream to an
// ExpressLink module.
//
// A Transport is assumed to be already connected and ready for use. It
// provides the low-level I/O primitives required to send AT commands and
// receive response lines. Typical implementations include serial ports,
// TCP connections to emulators, or in-memory fakes used for testing.
type Transport interface {
	io.ReadWriteCloser
}

// ReadDeadliner is optionally implemented by Transports whose reads can
// be bounded in time. The frame reader uses it to keep each physical
// read short so the per-call deadline is honored; without it, reads are
// expected to return regularly on their own (serial ports with a
// configured read timeout return n == 0 when idle).
type ReadDeadliner interface {
	SetReadTimeout(d time.Duration) error
}

// Dialer opens a Transport to an ExpressLink module.
//
// Dialer abstracts how the connection is created (serial port, TCP
// emulator, test double) and is used during Session construction only.
// Once a Transport is obtained, the Dialer is no longer needed.
type Dialer interface {
	// Dial creates and returns a connected Transport. It may perform
	// blocking operations and should respect cancellation and deadlines
	// provided by the context.
	Dial(ctx context.Context) (Transport, error)
}

// DialerFunc adapts a plain function to the Dialer interface.
type DialerFunc func(ctx context.Context) (Transport, error)

func (f DialerFunc) Dial(ctx context.Context) (Transport, error) { return f(ctx) }
