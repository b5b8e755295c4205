package at

import "strings"

// Escape applies the module's delimiter escaping to a wire line:
// backslash, carriage return and line feed are replaced by the two-byte
// sequences \\ , \D and \A so that a logical line never contains a raw
// EOL. It is the last step of encoding a command line.
func Escape(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\\':
			b.WriteString(`\\`)
		case '\r':
			b.WriteString(`\D`)
		case '\n':
			b.WriteString(`\A`)
		default:
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

// Unescape reverses Escape. It is the first step of decoding a received
// line. Unknown escape sequences are preserved verbatim; a trailing lone
// backslash is kept as-is.
func Unescape(s string) string {
	if !strings.ContainsRune(s, '\\') {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] != '\\' || i+1 == len(s) {
			b.WriteByte(s[i])
			continue
		}
		switch s[i+1] {
		case '\\':
			b.WriteByte('\\')
		case 'D':
			b.WriteByte('\r')
		case 'A':
			b.WriteByte('\n')
		default:
			b.WriteByte(s[i])
			b.WriteByte(s[i+1])
		}
		i++
	}
	return b.String()
}
