package elink

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.bug.st/serial"
)

// DefaultReadTimeout bounds a single physical serial read. Short enough
// that the frame reader can check its deadline regularly, long enough to
// avoid busy-polling an idle port.
const DefaultReadTimeout = 100 * time.Millisecond

// SerialDialer opens an ExpressLink module over a serial port using
// go.bug.st/serial. The module's UART contract is 115200 8N1 with no
// flow control; leave Mode nil to use it.
type SerialDialer struct {
	// PortName is the serial device, e.g. "/dev/ttyUSB0".
	PortName string
	// Mode overrides the default port parameters when non-nil.
	Mode *serial.Mode
	// ReadTimeout overrides DefaultReadTimeout when positive.
	ReadTimeout time.Duration
}

// Dial opens the configured serial port and returns it as a Transport.
func (d SerialDialer) Dial(ctx context.Context) (Transport, error) {
	if ctx == nil {
		return nil, errors.New("elink: context is nil")
	}
	if d.PortName == "" {
		return nil, errors.New("elink: serial port name is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	mode := d.Mode
	if mode == nil {
		mode = &serial.Mode{
			BaudRate: 115200,
			DataBits: 8,
			Parity:   serial.NoParity,
			StopBits: serial.OneStopBit,
		}
	}

	port, err := serial.Open(d.PortName, mode)
	if err != nil {
		return nil, fmt.Errorf("open serial port %s: %w", d.PortName, err)
	}

	timeout := d.ReadTimeout
	if timeout <= 0 {
		timeout = DefaultReadTimeout
	}
	if err := port.SetReadTimeout(timeout); err != nil {
		port.Close()
		return nil, fmt.Errorf("set read timeout on %s: %w", d.PortName, err)
	}

	return port, nil
}
