package at

const (
	// Terminal Control
	EOL      = "\r\n"
	FieldSep = " "

	// Command framing
	Prefix = "AT+"
	// Ping is the bare liveness probe. It is the only line sent to the
	// module without the "AT+" prefix.
	Ping = "AT"

	// Response markers
	OKMarker  = "OK"
	ErrMarker = "ERR"
	// EventMarker prefixes unsolicited event notification lines.
	EventMarker = "EVT"
)

// LineKind is the classification of a single frame received from the module.
type LineKind int

const (
	KindNoise LineKind = iota // blank lines and unrecognized chatter
	KindOK                    // synchronous success (OK ...)
	KindErr                   // synchronous failure (ERR <code> ...)
	KindEvent                 // asynchronous notification (EVT ...)
)

func (k LineKind) String() string {
	switch k {
	case KindOK:
		return "ok"
	case KindErr:
		return "err"
	case KindEvent:
		return "event"
	default:
		return "noise"
	}
}
