package at

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnknownCommand is returned by New for a name outside the
	// module's command set.
	ErrUnknownCommand = errors.New("unknown command")

	// ErrBadArity is returned by New when the argument count does not
	// match the command's accepted range.
	ErrBadArity = errors.New("wrong number of arguments")
)

// arity is the accepted argument range for a command. Max < 0 means
// variadic.
type arity struct {
	Min, Max int
}

// commandSet lists every command the module firmware accepts, keyed by
// base name. Indexed commands (SEND1, SHADOW2, ...) and the ! / ?
// modifiers are normalized away before lookup.
var commandSet = map[string]arity{
	"CONNECT":       {0, 0},
	"DISCONNECT":    {0, 0},
	"SLEEP":         {1, 1},
	"RESET":         {0, 0},
	"FACTORY_RESET": {0, 0},
	"CONFMODE":      {0, 1},
	"CONF":          {1, 1},
	"EVENT":         {0, 0},
	"TIME":          {0, 0},
	"WHERE":         {0, 0},
	"SEND":          {1, 1},
	"GET":           {0, 0},
	"SUBSCRIBE":     {0, 0},
	"UNSUBSCRIBE":   {0, 0},
	"SHADOW":        {1, -1},
	"OTA":           {1, 2},
	"DIAG":          {1, -1},
}

// Command is an immutable command line before encoding: a name plus an
// ordered argument list. Construct one with New so the name and arity
// are checked up front rather than on the wire.
type Command struct {
	Name string
	Args []string
}

// New builds a Command after validating the name against the known
// command set and the argument count against the command's arity.
//
// The name may carry a numeric topic/shadow index suffix and a trailing
// "!" (asynchronous form) or "?" (query form), e.g. "SEND1",
// "CONNECT!", "CONF?".
func New(name string, args ...string) (Command, error) {
	base := name
	if n := len(base); n > 0 && (base[n-1] == '!' || base[n-1] == '?') {
		base = base[:n-1]
	}
	base = strings.TrimRight(base, "0123456789")

	ar, ok := commandSet[base]
	if !ok || base == "" {
		return Command{}, fmt.Errorf("%w: %q", ErrUnknownCommand, name)
	}
	// Query forms take no value arguments, except CONF? which names the
	// key being read.
	if strings.HasSuffix(name, "?") {
		if base == "CONF" {
			ar = arity{1, 1}
		} else {
			ar = arity{0, 0}
		}
	}
	if len(args) < ar.Min || (ar.Max >= 0 && len(args) > ar.Max) {
		return Command{}, fmt.Errorf("%w: %s takes %s, got %d",
			ErrBadArity, name, ar, len(args))
	}
	return Command{Name: name, Args: append([]string(nil), args...)}, nil
}

// MustNew is New for statically known commands; it panics on a
// validation error.
func MustNew(name string, args ...string) Command {
	cmd, err := New(name, args...)
	if err != nil {
		panic(err)
	}
	return cmd
}

func (a arity) String() string {
	switch {
	case a.Max < 0:
		return fmt.Sprintf("at least %d args", a.Min)
	case a.Min == a.Max:
		return fmt.Sprintf("%d args", a.Min)
	default:
		return fmt.Sprintf("%d to %d args", a.Min, a.Max)
	}
}

// Encode serializes the command as exactly one wire line:
// "AT+" name, each argument separated by a space and quoted as needed,
// delimiter-escaped, CRLF-terminated. Pure; no I/O.
func (c Command) Encode() []byte {
	var b strings.Builder
	b.WriteString(Prefix)
	b.WriteString(c.Name)
	if len(c.Args) > 0 {
		b.WriteString(FieldSep)
		b.WriteString(JoinFields(c.Args))
	}
	return []byte(Escape(b.String()) + EOL)
}

func (c Command) String() string {
	line := string(c.Encode())
	return strings.TrimSuffix(line, EOL)
}
