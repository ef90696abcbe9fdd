package tty

import (
	"errors"
	"fmt"

	"golang.org/x/term"
)

var (
	ErrNotTerminal = errors.New("descriptor is not a terminal")
	ErrUnsupported = errors.New("not supported on this platform")
)

// IsTTY reports whether fd refers to a terminal
func IsTTY(fd uintptr) bool {
	return term.IsTerminal(int(fd))
}

// WindowSize returns the terminal dimensions of fd
func WindowSize(fd uintptr) (rows, cols int, err error) {
	if !IsTTY(fd) {
		return 0, 0, fmt.Errorf("window size of fd %d: %w", fd, ErrNotTerminal)
	}

	cols, rows, err = term.GetSize(int(fd))
	if err != nil {
		return 0, 0, fmt.Errorf("window size of fd %d: %w", fd, err)
	}
	return rows, cols, nil
}
