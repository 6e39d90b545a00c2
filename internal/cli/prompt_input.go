package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

// confirm prints message and reads a yes/no answer. An empty answer yields
// def; a read error counts as no.
func confirm(in io.Reader, out io.Writer, message string, def bool) bool {
	if out != nil {
		fmt.Fprint(out, message)
	}
	text, err := readPromptLine(in)
	if err != nil {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "":
		return def
	case "y", "yes":
		return true
	default:
		return false
	}
}

// readPromptLine reads until LF or CR so Enter works in cooked and raw terminal modes.
func readPromptLine(in io.Reader) (string, error) {
	if in == nil {
		return "", io.EOF
	}

	var (
		buf []byte
		one [1]byte
	)
	for {
		n, err := in.Read(one[:])
		if n > 0 {
			if one[0] == '\n' || one[0] == '\r' {
				return string(buf), nil
			}
			buf = append(buf, one[0])
		}
		if err != nil {
			if errors.Is(err, io.EOF) && len(buf) > 0 {
				return string(buf), nil
			}
			return string(buf), err
		}
	}
}
