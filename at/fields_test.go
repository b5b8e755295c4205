package at_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ablareau/elgw/at"
)

func TestEscapeRoundTrip(t *testing.T) {
	inputs := []string{
		"",
		"plain",
		"line with\r\nbreaks",
		`back\slash`,
		"\r", "\n", `\`,
		`mixed \D literal and` + "\r" + `real CR`,
	}
	for _, in := range inputs {
		assert.Equal(t, in, at.Unescape(at.Escape(in)), "input %q", in)
	}
}

func TestEscape(t *testing.T) {
	assert.Equal(t, `a\Db\Ac`, at.Escape("a\rb\nc"))
	assert.Equal(t, `\\D`, at.Escape(`\D`))
}

func TestUnescapeUnknownSequence(t *testing.T) {
	// Unknown escapes and a trailing backslash pass through verbatim.
	assert.Equal(t, `\x`, at.Unescape(`\x`))
	assert.Equal(t, `tail\`, at.Unescape(`tail\`))
}

func TestQuoteField(t *testing.T) {
	tests := []struct {
		in, out string
	}{
		{"plain", "plain"},
		{"topic/sub", "topic/sub"},
		{"two words", `"two words"`},
		{"", `""`},
		{`say "hi"`, `"say \"hi\""`},
		{`a\b`, `"a\\b"`},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.out, at.QuoteField(tt.in), "input %q", tt.in)
	}
}

func TestSplitFields(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		fields []string
	}{
		{"simple", "1 0 MSG", []string{"1", "0", "MSG"}},
		{"leading separator", " 5", []string{"5"}},
		{"quoted with separator", `"two words" x`, []string{"two words", "x"}},
		{"escaped quote", `"say \"hi\""`, []string{`say "hi"`}},
		{"escaped backslash", `"a\\b"`, []string{`a\b`}},
		{"empty field", `"" y`, []string{"", "y"}},
		{"collapsed separators", "a   b", []string{"a", "b"}},
		{"empty payload", "", nil},
		{"blank payload", "   ", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields, err := at.SplitFields(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.fields, fields)
		})
	}
}

func TestSplitFieldsMalformed(t *testing.T) {
	for _, in := range []string{`"unterminated`, `x "a b`, `"dangling escape\`} {
		_, err := at.SplitFields(in)
		assert.ErrorIs(t, err, at.ErrMalformed, "input %q", in)
	}
}

func TestJoinFieldsRoundTrip(t *testing.T) {
	fieldLists := [][]string{
		{"CONNECTED", "1"},
		{"two words", `with "quotes"`, ""},
		{`back\slash`, "plain"},
	}
	for _, fields := range fieldLists {
		got, err := at.SplitFields(at.JoinFields(fields))
		require.NoError(t, err)
		assert.Equal(t, fields, got)
	}
}
