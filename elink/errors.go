package elink

import (
	"errors"
	"fmt"

	"github.com/ablareau/elgw/at"
)

var (
	// ErrNoDialer is returned when a Session is constructed without a
	// Dialer.
	//
	// This indicates a configuration error. A Dialer is required in
	// order to establish a connection to the module.
	ErrNoDialer = errors.New("no dialer configured")

	// ErrNotInitialized is returned when an operation is attempted on a
	// Session that has not been successfully initialized.
	ErrNotInitialized = errors.New("session not initialized")

	// ErrAlreadyClosed is returned when Close is called on a Session
	// that has already been closed, or when a command is issued after
	// Close.
	ErrAlreadyClosed = errors.New("session already closed")

	// ErrSelfTest is returned when the module does not answer the
	// liveness probe during initialization.
	ErrSelfTest = errors.New("module failed UART self-test")

	// ErrTimeout is returned when no synchronous response arrives
	// within the call's deadline. The command may have been executed by
	// the module anyway; the caller decides whether to retry.
	ErrTimeout = errors.New("response timeout")

	// ErrMalformed is returned when a received line violates the field
	// grammar. It indicates corruption on the link; the Session remains
	// usable and the caller may retry.
	ErrMalformed = at.ErrMalformed

	// ErrCommand is returned when the module answers a command with an
	// ERR response. The firmware code and detail are carried alongside
	// in the Response.
	ErrCommand = errors.New("command rejected")
)

// TransportError reports a broken or unavailable byte channel. It is
// fatal to the Session: the caller must close it and reconnect.
type TransportError struct {
	// Op is the I/O operation that failed ("write", "read").
	Op string
	// Err is the underlying transport error.
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }
