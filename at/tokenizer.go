package at

import (
	"bufio"
	"bytes"
)

// Splitter tokenizes the module's output stream into logical lines. It
// has the signature of bufio.SplitFunc so it can be used directly with
// bufio.Scanner, and it is also the extraction step of the session's
// frame reader.
//
// It splits on CRLF line endings and makes no assumption about how the
// delimiter is spread across physical reads: a line is only emitted once
// both delimiter bytes have arrived (or at EOF).
func Splitter(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}

	if i := bytes.Index(data, []byte(EOL)); i >= 0 {
		return i + len(EOL), data[0:i], nil
	}

	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}

var _ bufio.SplitFunc = Splitter
