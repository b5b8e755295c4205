package at_test

import (
	"bufio"
	"io"
	"strings"
	"testing"

	"github.com/ablareau/elgw/at"
)

func TestSplitter(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "Simple command response",
			input:    "OK 1 0\r\n",
			expected: []string{"OK 1 0"},
		},
		{
			name:     "Error response",
			input:    "ERR 2 parse error\r\n",
			expected: []string{"ERR 2 parse error"},
		},
		{
			name:     "Event mixed with response",
			input:    "EVT CONLOST 0\r\nOK\r\n",
			expected: []string{"EVT CONLOST 0", "OK"},
		},
		{
			name:     "Continuation lines",
			input:    "OK2 pem\r\n-----BEGIN CERTIFICATE-----\r\n-----END CERTIFICATE-----\r\n",
			expected: []string{"OK2 pem", "-----BEGIN CERTIFICATE-----", "-----END CERTIFICATE-----"},
		},
		{
			name:     "Empty lines handling",
			input:    "\r\n\r\nOK\r\n\r\n",
			expected: []string{"", "", "OK", ""},
		},
		{
			name:     "Multiple events",
			input:    "EVT MSG 1\r\nEVT MSG 2\r\nEVT STARTUP 0\r\n",
			expected: []string{"EVT MSG 1", "EVT MSG 2", "EVT STARTUP 0"},
		},
		// EOF scenarios - testing atEOF functionality
		{
			name:     "Incomplete line at EOF",
			input:    "OK 1",
			expected: []string{"OK 1"},
		},
		{
			name:     "Response cut off mid-stream at EOF",
			input:    "OK\r\nEVT MSG",
			expected: []string{"OK", "EVT MSG"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var tokens []string
			scanner := bufio.NewScanner(strings.NewReader(tt.input))
			scanner.Split(at.Splitter)

			for scanner.Scan() {
				tokens = append(tokens, scanner.Text())
			}

			if err := scanner.Err(); err != nil {
				t.Fatalf("Scanner error: %v", err)
			}

			if len(tokens) != len(tt.expected) {
				t.Fatalf("Expected %d tokens, got %d.\nExpected: %v\nGot: %v",
					len(tt.expected), len(tokens), tt.expected, tokens)
			}

			for i, expected := range tt.expected {
				if tokens[i] != expected {
					t.Errorf("Token %d: expected %q, got %q", i, expected, tokens[i])
				}
			}
		})
	}
}

// oneByteReader yields a single byte per Read so every delimiter is
// split across physical reads.
type oneByteReader struct {
	s string
	i int
}

func (r *oneByteReader) Read(p []byte) (int, error) {
	if r.i >= len(r.s) {
		return 0, io.EOF
	}
	p[0] = r.s[r.i]
	r.i++
	return 1, nil
}

func TestSplitterChunkedReads(t *testing.T) {
	input := "OK 1 0\r\nEVT MSG 3\r\nERR 2 oops\r\n"
	expected := []string{"OK 1 0", "EVT MSG 3", "ERR 2 oops"}

	scanner := bufio.NewScanner(&oneByteReader{s: input})
	scanner.Split(at.Splitter)

	var tokens []string
	for scanner.Scan() {
		tokens = append(tokens, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		t.Fatalf("Scanner error: %v", err)
	}

	if len(tokens) != len(expected) {
		t.Fatalf("Expected %v, got %v", expected, tokens)
	}
	for i := range expected {
		if tokens[i] != expected[i] {
			t.Errorf("Token %d: expected %q, got %q", i, expected[i], tokens[i])
		}
	}
}
