package cli

import (
	"fmt"
	"io"
	"strings"
)

// promptYesNo prints message and reads a y/n answer. An empty answer yields
// defaultYes. When nothing can be read the error is returned with false.
func promptYesNo(in io.Reader, out io.Writer, message string, defaultYes bool) (bool, error) {
	text, err := promptLine(in, out, message)
	if err != nil {
		return false, err
	}

	text = strings.TrimSpace(strings.ToLower(text))
	if text == "" {
		return defaultYes, nil
	}
	return text == "y" || text == "yes", nil
}

// promptLine prints message and returns the next line of input.
func promptLine(in io.Reader, out io.Writer, message string) (string, error) {
	if out != nil && message != "" {
		fmt.Fprint(out, message)
	}
	return readPromptLine(in)
}

// readPromptLine reads until either LF or CR so Enter works in normal and raw terminal modes.
func readPromptLine(in io.Reader) (string, error) {
	if in == nil {
		return "", io.EOF
	}

	var buf []byte
	var one [1]byte

	for {
		n, err := in.Read(one[:])
		if n > 0 {
			switch one[0] {
			case '\n', '\r':
				return string(buf), nil
			default:
				buf = append(buf, one[0])
			}
		}

		if err != nil {
			if err == io.EOF && len(buf) > 0 {
				return string(buf), nil
			}
			return string(buf), err
		}
	}
}
