package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
)

var (
	// ErrEndOfInput reports a read attempted after the input stream was
	// exhausted or closed.
	ErrEndOfInput = errors.New("conprog: end of console input")

	// ErrOutputClosed reports a write attempted on a closed output stream.
	ErrOutputClosed = errors.New("conprog: console output closed")
)

// Console is the minimal I/O capability interpreters execute effects
// against. Implementations decide where lines actually go: a terminal,
// a test script, a network session.
type Console interface {
	// WriteLine appends message plus a line terminator to the output.
	WriteLine(message string) error

	// ReadLine blocks until one line is available and returns it with the
	// terminator stripped. Returns ErrEndOfInput (possibly wrapped) when
	// the input is exhausted.
	ReadLine() (string, error)
}

// Stdio is a Console over a reader/writer pair, line-buffered on the read
// side. The zero value is not usable; construct with NewStdio or Std.
type Stdio struct {
	in  *bufio.Reader
	out io.Writer
}

// NewStdio returns a Console reading lines from in and writing lines to out.
func NewStdio(in io.Reader, out io.Writer) *Stdio {
	return &Stdio{
		in:  bufio.NewReader(in),
		out: out,
	}
}

// Std returns a Console over the process's standard input and output.
func Std() *Stdio {
	return NewStdio(os.Stdin, os.Stdout)
}

func (s *Stdio) WriteLine(message string) error {
	if _, err := fmt.Fprintln(s.out, message); err != nil {
		return fmt.Errorf("%w: %v", ErrOutputClosed, err)
	}
	return nil
}

func (s *Stdio) ReadLine() (string, error) {
	line, err := s.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) {
			// A final unterminated line still counts as one line.
			if line != "" {
				return trimLineEnding(line), nil
			}
			return "", ErrEndOfInput
		}
		return "", fmt.Errorf("conprog: console read: %w", err)
	}
	return trimLineEnding(line), nil
}

func trimLineEnding(line string) string {
	n := len(line)
	if n > 0 && line[n-1] == '\n' {
		line = line[:n-1]
		n--
	}
	if n > 0 && line[n-1] == '\r' {
		line = line[:n-1]
	}
	return line
}
