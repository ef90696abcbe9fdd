package engine

import (
	"errors"
	"os"
)

var (
	ErrInterrupt = errors.New("interrupted")
	ErrClosed    = errors.New("engine closed")
)

// Completer supplies completion candidates for the text before the cursor
type Completer interface {
	Complete(line string, pos int) []string
}

// Engine reads edited lines from a terminal.
//
// ReadLine blocks until the user submits a line. Implementations return io.EOF
// at end of input and ErrInterrupt when editing was interrupted.
type Engine interface {
	ReadLine(prompt string) (string, error)

	// AddHistory appends a line to the scrollback
	AddHistory(line string) error
	// ResetHistory replaces the scrollback with lines, oldest first
	ResetHistory(lines []string) error
	// SetHistoryLimit bounds the scrollback
	SetHistoryLimit(n int)

	SetStreams(in, out *os.File)
	SetCompleter(c Completer)

	// Close releases terminal state. A later ReadLine may reopen it.
	Close() error
}
