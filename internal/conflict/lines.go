package conflict

import (
	"bytes"
	"os"
	"strings"
)

// Lines is an ordered sequence of lines. Each element keeps its own line
// terminator, so joining the elements reproduces the original bytes.
type Lines []string

// SplitLines splits data after every "\n". A final line without a
// terminator is kept as is.
func SplitLines(data []byte) Lines {
	if len(data) == 0 {
		return Lines{}
	}
	parts := strings.SplitAfter(string(data), "\n")
	if parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}
	return Lines(parts)
}

// ReadLines reads the file at path as Lines
func ReadLines(path string) (Lines, []byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}
	return SplitLines(data), data, nil
}

// Bytes joins the lines back into file content
func (l Lines) Bytes() []byte {
	var buf bytes.Buffer
	for _, line := range l {
		buf.WriteString(line)
	}
	return buf.Bytes()
}

// String joins the lines back into file content
func (l Lines) String() string {
	return string(l.Bytes())
}

// looksBinary reports whether data contains a NUL byte
func looksBinary(data []byte) bool {
	return bytes.IndexByte(data, 0) >= 0
}
