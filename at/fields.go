package at

import (
	"errors"
	"strings"
)

// ErrMalformed is returned when a line violates the field grammar,
// typically an unterminated quoted field. It usually indicates
// corruption on the serial link; the caller may retry the command.
var ErrMalformed = errors.New("malformed line")

// QuoteField renders a single payload field for the wire. Fields
// containing the separator, a quote, a backslash, or nothing at all are
// wrapped in double quotes with embedded quotes and backslashes
// backslash-escaped. All other fields pass through unchanged.
func QuoteField(s string) string {
	if s != "" && !strings.ContainsAny(s, " \t\"\\") {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '"', '\\':
			b.WriteByte('\\')
		}
		b.WriteByte(s[i])
	}
	b.WriteByte('"')
	return b.String()
}

// JoinFields renders an ordered field list as a single separator-joined
// payload, quoting each field as needed.
func JoinFields(fields []string) string {
	quoted := make([]string, len(fields))
	for i, f := range fields {
		quoted[i] = QuoteField(f)
	}
	return strings.Join(quoted, FieldSep)
}

// SplitFields splits a payload into its ordered fields. Separators
// inside quoted fields do not split; \" and \\ inside quotes unescape to
// the literal character. An unterminated quote fails with ErrMalformed.
func SplitFields(s string) ([]string, error) {
	var (
		fields  []string
		cur     strings.Builder
		inField bool
		quoted  bool
	)
	flush := func() {
		if inField {
			fields = append(fields, cur.String())
			cur.Reset()
			inField = false
		}
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case quoted:
			switch c {
			case '\\':
				if i+1 == len(s) {
					return nil, ErrMalformed
				}
				i++
				cur.WriteByte(s[i])
			case '"':
				quoted = false
			default:
				cur.WriteByte(c)
			}
		case c == '"':
			quoted = true
			inField = true
		case c == ' ' || c == '\t':
			flush()
		default:
			cur.WriteByte(c)
			inField = true
		}
	}
	if quoted {
		return nil, ErrMalformed
	}
	flush()
	return fields, nil
}
