package engine

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/ergochat/readline"
)

// Readline is an Engine backed by ergochat/readline.
//
// The readline instance is created lazily on the first read and recreated
// whenever streams, history limit or completer change, so configuration
// calls never touch the terminal.
type Readline struct {
	mu        sync.Mutex
	inst      *readline.Instance
	in        *os.File
	out       *os.File
	limit     int
	completer Completer
	history   []string
}

// NewReadline creates an engine reading from stdin and writing to stdout
func NewReadline() *Readline {
	return &Readline{
		in:    os.Stdin,
		out:   os.Stdout,
		limit: 1000,
	}
}

// ReadLine displays prompt and blocks until a line is submitted
func (r *Readline) ReadLine(prompt string) (string, error) {
	inst, err := r.instance()
	if err != nil {
		return "", err
	}

	inst.SetPrompt(prompt)
	line, err := inst.Readline()
	switch {
	case err == nil:
		return line, nil
	case errors.Is(err, readline.ErrInterrupt):
		return "", ErrInterrupt
	case errors.Is(err, io.EOF):
		return "", io.EOF
	default:
		return "", fmt.Errorf("readline: %w", err)
	}
}

// AddHistory appends line to the scrollback
func (r *Readline) AddHistory(line string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.history = append(r.history, line)
	if over := len(r.history) - r.limit; over > 0 {
		r.history = append([]string(nil), r.history[over:]...)
	}

	if r.inst == nil {
		return nil
	}
	return r.inst.SaveToHistory(line)
}

// ResetHistory replaces the scrollback
func (r *Readline) ResetHistory(lines []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.history = append([]string(nil), lines...)
	return r.discardLocked()
}

// SetHistoryLimit bounds the scrollback
func (r *Readline) SetHistoryLimit(n int) {
	if n <= 0 {
		n = 1000
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.limit = n
	if over := len(r.history) - n; over > 0 {
		r.history = append([]string(nil), r.history[over:]...)
	}
	_ = r.discardLocked()
}

// SetStreams rebinds input and output. Nil selects the standard streams.
func (r *Readline) SetStreams(in, out *os.File) {
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stdout
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.in, r.out = in, out
	_ = r.discardLocked()
}

// SetCompleter installs the completion source
func (r *Readline) SetCompleter(c Completer) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.completer = c
	_ = r.discardLocked()
}

// Close releases the readline instance
func (r *Readline) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.discardLocked()
}

func (r *Readline) instance() (*readline.Instance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.inst != nil {
		return r.inst, nil
	}

	cfg := &readline.Config{
		HistoryLimit:           r.limit,
		DisableAutoSaveHistory: true,
		// The instance must not close the session's streams.
		Stdin:  io.NopCloser(r.in),
		Stdout: r.out,
	}
	if r.completer != nil {
		cfg.AutoComplete = suffixCompleter{r.completer}
	}

	inst, err := readline.NewFromConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to start readline: %w", err)
	}

	for _, line := range r.history {
		if err := inst.SaveToHistory(line); err != nil {
			inst.Close()
			return nil, fmt.Errorf("failed to restore history: %w", err)
		}
	}

	r.inst = inst
	return inst, nil
}

func (r *Readline) discardLocked() error {
	if r.inst == nil {
		return nil
	}
	err := r.inst.Close()
	r.inst = nil
	return err
}

// suffixCompleter adapts a Completer to readline's AutoCompleter, which
// expects the remainders of candidates that extend the word before the cursor.
type suffixCompleter struct {
	c Completer
}

func (s suffixCompleter) Do(line []rune, pos int) ([][]rune, int) {
	return completions(s.c, line, pos)
}

func completions(c Completer, line []rune, pos int) ([][]rune, int) {
	if pos < 0 || pos > len(line) {
		pos = len(line)
	}

	start := pos
	for start > 0 && line[start-1] != ' ' {
		start--
	}
	word := string(line[start:pos])

	var out [][]rune
	for _, candidate := range c.Complete(string(line), pos) {
		if !strings.HasPrefix(candidate, word) {
			continue
		}
		out = append(out, []rune(candidate[len(word):]))
	}
	return out, len([]rune(word))
}
