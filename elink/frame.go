package elink

import (
	"time"

	"github.com/ablareau/elgw/at"
)

// readChunk is the size of a single physical read. The module's line
// lengths are small; certificates arrive as continuation lines well
// under this.
const readChunk = 512

// maxFrame bounds the accumulation buffer. A line that never terminates
// within this many bytes indicates binary garbage on the link.
const maxFrame = 16 * 1024

// frameReader accumulates bytes from a Transport and hands out complete
// CRLF-terminated lines, delimiter stripped. Bytes left over after a
// line (including a delimiter split across reads) stay buffered for the
// next call.
type frameReader struct {
	t   Transport
	buf []byte
}

func newFrameReader(t Transport) *frameReader {
	return &frameReader{t: t}
}

// next returns the next complete line, waiting until deadline for the
// delimiter to arrive. A zero deadline means wait indefinitely. On
// deadline expiry any buffered partial line is discarded and the call
// fails with ErrTimeout. Transport failures fail with *TransportError.
func (r *frameReader) next(deadline time.Time) (string, error) {
	for {
		if advance, token, _ := at.Splitter(r.buf, false); advance > 0 {
			line := string(token)
			r.buf = append(r.buf[:0], r.buf[advance:]...)
			return line, nil
		}
		if len(r.buf) > maxFrame {
			r.buf = r.buf[:0]
			return "", ErrMalformed
		}

		if !deadline.IsZero() {
			remaining := time.Until(deadline)
			if remaining <= 0 {
				r.buf = r.buf[:0]
				return "", ErrTimeout
			}
			if rd, ok := r.t.(ReadDeadliner); ok {
				timeout := min(remaining, DefaultReadTimeout)
				if err := rd.SetReadTimeout(timeout); err != nil {
					return "", &TransportError{Op: "read", Err: err}
				}
			}
		}

		chunk := make([]byte, readChunk)
		n, err := r.t.Read(chunk)
		if n > 0 {
			r.buf = append(r.buf, chunk[:n]...)
		}
		if err != nil {
			return "", &TransportError{Op: "read", Err: err}
		}
	}
}
