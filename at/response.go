package at

import (
	"fmt"
	"strconv"
	"strings"
)

// Response is the decoded form of a synchronous result line.
type Response struct {
	// OK reports whether the line carried the success marker.
	OK bool
	// Code is the firmware error code for ERR responses, 0 otherwise.
	Code int
	// Fields are the ordered payload fields, unquoted and unescaped.
	// For ERR responses the first field is the error code.
	Fields []string
	// More is the number of continuation lines announced by a numeric
	// suffix glued to the OK marker ("OK2 ..."). Zero if absent.
	More int
}

// Event is the decoded form of an asynchronous notification line.
type Event struct {
	// Mnemonic identifies the event type (MSG, CONLOST, ...).
	Mnemonic string
	// Fields are the ordered payload fields following the mnemonic.
	Fields []string
}

// Classify identifies the nature of a received line by its lexical
// prefix. It never fails; payload grammar violations surface later from
// ParseResponse or ParseEvent.
func Classify(line string) LineKind {
	switch {
	case hasMarker(line, OKMarker):
		return KindOK
	case hasMarker(line, ErrMarker):
		return KindErr
	case hasMarker(line, EventMarker):
		return KindEvent
	default:
		return KindNoise
	}
}

// hasMarker reports whether line starts with the marker followed by a
// field separator, a digit run (the OK continuation suffix), or nothing.
// Plain prefix matching would misread "ERRATA" as a failure line.
func hasMarker(line, marker string) bool {
	if !strings.HasPrefix(line, marker) {
		return false
	}
	rest := line[len(marker):]
	if marker == OKMarker {
		rest = strings.TrimLeft(rest, "0123456789")
	}
	return rest == "" || strings.HasPrefix(rest, FieldSep)
}

// ParseResponse decodes a synchronous result line previously classified
// as KindOK or KindErr. It fails with ErrMalformed if the payload
// violates the quoting grammar, and for ERR lines missing a numeric
// code.
func ParseResponse(line string) (Response, error) {
	line = Unescape(line)

	if strings.HasPrefix(line, OKMarker) {
		rest := line[len(OKMarker):]
		more := 0
		if n := len(rest) - len(strings.TrimLeft(rest, "0123456789")); n > 0 {
			more, _ = strconv.Atoi(rest[:n])
			rest = rest[n:]
		}
		fields, err := SplitFields(rest)
		if err != nil {
			return Response{}, fmt.Errorf("%w: %q", err, line)
		}
		return Response{OK: true, Fields: fields, More: more}, nil
	}

	rest := strings.TrimPrefix(line, ErrMarker)
	fields, err := SplitFields(rest)
	if err != nil {
		return Response{}, fmt.Errorf("%w: %q", err, line)
	}
	if len(fields) == 0 {
		return Response{}, fmt.Errorf("%w: missing error code in %q", ErrMalformed, line)
	}
	code, err := strconv.Atoi(fields[0])
	if err != nil {
		return Response{}, fmt.Errorf("%w: bad error code in %q", ErrMalformed, line)
	}
	return Response{OK: false, Code: code, Fields: fields}, nil
}

// ParseEvent decodes an asynchronous notification line previously
// classified as KindEvent.
func ParseEvent(line string) (Event, error) {
	rest := strings.TrimPrefix(Unescape(line), EventMarker)
	fields, err := SplitFields(rest)
	if err != nil {
		return Event{}, fmt.Errorf("%w: %q", err, line)
	}
	if len(fields) == 0 {
		return Event{}, fmt.Errorf("%w: event without type in %q", ErrMalformed, line)
	}
	return Event{Mnemonic: fields[0], Fields: fields[1:]}, nil
}
