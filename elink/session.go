package elink

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/ablareau/elgw/at"
)

// Session owns one connection to an ExpressLink module: the byte
// transport, the frame reader over it, and the queue of asynchronous
// events observed while commands are in flight.
//
// A Session performs no internal locking. Command execution is
// synchronous: one blocking write/read cycle per call, single-writer
// single-reader. Callers that share a Session across goroutines must
// serialize access externally (one lock per Session).
type Session struct {
	transport Transport
	frames    *frameReader
	events    *eventQueue
	config    Config
	closed    bool
}

// Response is the outcome of one completed command cycle.
type Response struct {
	// OK reports whether the module accepted the command.
	OK bool
	// Code is the firmware error code when OK is false.
	Code int
	// Fields are the ordered payload fields of the result line. For
	// failures the first field is the error code, the rest the detail.
	Fields []string
	// Lines are continuation lines announced by the result line
	// (multi-line payloads such as certificates or message bodies).
	Lines []string
}

// Field returns payload field i, or "" when absent.
func (r Response) Field(i int) string {
	if i < 0 || i >= len(r.Fields) {
		return ""
	}
	return r.Fields[i]
}

// New dials the module and verifies the UART link with the liveness
// probe, retrying a few times because a freshly reset module may drop
// the first bytes. The returned Session is ready for Execute.
func New(ctx context.Context, config Config) (*Session, error) {
	if err := config.validate(); err != nil {
		return nil, err
	}
	config.setDefaults()

	transport, err := config.Dialer.Dial(ctx)
	if err != nil {
		return nil, err
	}
	if transport == nil {
		return nil, ErrNotInitialized
	}

	s := &Session{
		transport: transport,
		frames:    newFrameReader(transport),
		events:    newEventQueue(config.EventQueueSize),
		config:    config,
	}

	initCtx := ctx
	if config.InitTimeout > 0 {
		var cancel context.CancelFunc
		initCtx, cancel = context.WithTimeout(ctx, config.InitTimeout)
		defer cancel()
	}
	if err := s.selfTest(initCtx); err != nil {
		transport.Close()
		return nil, fmt.Errorf("initialize module: %w", err)
	}

	return s, nil
}

// selfTest sends the bare "AT" probe and waits for an OK line. The
// probe bypasses the command encoder: it is the one line without the
// AT+ prefix.
func (s *Session) selfTest(ctx context.Context) error {
	var lastErr error = ErrSelfTest
	for attempt := 0; attempt < s.config.SelfTestRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, err := s.transport.Write([]byte(at.Ping + at.EOL)); err != nil {
			return &TransportError{Op: "write", Err: err}
		}
		resp, err := s.await(time.Now().Add(s.config.ATTimeout))
		if err == nil && resp.OK {
			return nil
		}
		if err == nil {
			lastErr = fmt.Errorf("unexpected response to %s probe", at.Ping)
			continue
		}
		lastErr = err
		var te *TransportError
		if errors.As(err, &te) {
			return err
		}
	}
	return fmt.Errorf("%w: %v", ErrSelfTest, lastErr)
}

// Execute runs one command cycle: encode and write the command, then
// read frames until the first synchronous result or the deadline.
// Asynchronous events seen in between are queued for NextEvent and
// survive regardless of the cycle's outcome.
//
// Exactly one of the outcomes concludes a call: a Response (success or
// firmware failure), ErrTimeout, ErrMalformed, or a *TransportError.
// After any of them the Session is ready for the next call, except a
// transport error, which is fatal to the connection.
func (s *Session) Execute(ctx context.Context, cmd at.Command) (Response, error) {
	if s.closed {
		return Response{}, ErrAlreadyClosed
	}
	if s.transport == nil {
		return Response{}, ErrNotInitialized
	}

	if _, ok := ctx.Deadline(); !ok && s.config.ATTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.config.ATTimeout)
		defer cancel()
	}
	deadline, _ := ctx.Deadline()

	if _, err := s.transport.Write(cmd.Encode()); err != nil {
		return Response{}, &TransportError{Op: "write", Err: fmt.Errorf("command %s: %w", cmd.Name, err)}
	}

	wire, err := s.await(deadline)
	if err != nil {
		return Response{}, fmt.Errorf("command %s: %w", cmd.Name, err)
	}

	resp := Response{OK: wire.OK, Code: wire.Code, Fields: wire.Fields}
	for i := 0; i < wire.More; i++ {
		line, err := s.frames.next(deadline)
		if err != nil {
			return Response{}, fmt.Errorf("command %s continuation: %w", cmd.Name, err)
		}
		resp.Lines = append(resp.Lines, at.Unescape(line))
	}
	return resp, nil
}

// await reads and classifies frames until a synchronous result line
// arrives, queueing events and discarding noise along the way.
func (s *Session) await(deadline time.Time) (at.Response, error) {
	for {
		line, err := s.frames.next(deadline)
		if err != nil {
			return at.Response{}, err
		}

		switch at.Classify(line) {
		case at.KindNoise:
			continue

		case at.KindEvent:
			wireEvent, err := at.ParseEvent(line)
			if err != nil {
				return at.Response{}, err
			}
			s.events.push(eventFromWire(wireEvent))

		case at.KindOK, at.KindErr:
			return at.ParseResponse(line)
		}
	}
}

// exec is Execute plus the usual failure mapping: a firmware ERR reply
// becomes an ErrCommand error carrying the code and detail.
func (s *Session) exec(ctx context.Context, name string, args ...string) (Response, error) {
	cmd, err := at.New(name, args...)
	if err != nil {
		return Response{}, err
	}
	resp, err := s.Execute(ctx, cmd)
	if err != nil {
		return Response{}, err
	}
	if !resp.OK {
		return resp, fmt.Errorf("%w: %s: ERR %d %s", ErrCommand, name, resp.Code, resp.Field(1))
	}
	return resp, nil
}

// NextEvent pops the oldest unconsumed asynchronous event, if any.
// It never blocks and performs no I/O.
func (s *Session) NextEvent() (Event, bool) {
	return s.events.pop()
}

// PendingEvents reports how many unconsumed events are queued.
func (s *Session) PendingEvents() int { return s.events.len() }

// PollEvent returns the oldest unconsumed event, falling back to the
// EVENT? query when the queue is empty. The module answers the query
// with an empty OK payload when no event is pending.
func (s *Session) PollEvent(ctx context.Context) (Event, bool, error) {
	if ev, ok := s.events.pop(); ok {
		return ev, true, nil
	}

	resp, err := s.exec(ctx, "EVENT?")
	if err != nil {
		return Event{}, false, err
	}
	if len(resp.Fields) == 0 {
		return Event{}, false, nil
	}
	// OK {event_id} {parameter} {mnemonic} [detail]
	ev := Event{Mnemonic: resp.Field(2), Detail: resp.Field(3)}
	if code, err := strconv.Atoi(resp.Field(0)); err == nil {
		ev.Code = EventCode(code)
	}
	if param, err := strconv.Atoi(resp.Field(1)); err == nil {
		ev.Param = param
	}
	return ev, true, nil
}

// Close shuts down the Session and releases the transport. After Close
// the Session cannot be reused.
func (s *Session) Close() error {
	if s.closed {
		return ErrAlreadyClosed
	}
	s.closed = true
	if s.transport != nil {
		return s.transport.Close()
	}
	return nil
}
