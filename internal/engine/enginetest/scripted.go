package enginetest

import (
	"io"
	"os"
	"sync"

	"github.com/GriffinCanCode/termline/internal/engine"
)

// Step is one scripted read result
type Step struct {
	Line string
	Err  error
	// Before runs inside ReadLine before the result is returned
	Before func()
}

// Line scripts a submitted line
func Line(s string) Step { return Step{Line: s} }

// EOF scripts end of input
func EOF() Step { return Step{Err: io.EOF} }

// Interrupt scripts an interrupted edit
func Interrupt() Step { return Step{Err: engine.ErrInterrupt} }

// Scripted is an engine.Engine that replays steps
type Scripted struct {
	mu        sync.Mutex
	steps     []Step
	reads     int
	prompts   []string
	history   []string
	limit     int
	in        *os.File
	out       *os.File
	completer engine.Completer
	closes    int
}

var _ engine.Engine = (*Scripted)(nil)

// New creates a scripted engine
func New(steps ...Step) *Scripted {
	return &Scripted{steps: steps}
}

// Push appends steps to the script
func (s *Scripted) Push(steps ...Step) {
	s.mu.Lock()
	s.steps = append(s.steps, steps...)
	s.mu.Unlock()
}

func (s *Scripted) ReadLine(prompt string) (string, error) {
	s.mu.Lock()
	s.reads++
	s.prompts = append(s.prompts, prompt)
	if len(s.steps) == 0 {
		s.mu.Unlock()
		return "", io.EOF
	}
	step := s.steps[0]
	s.steps = s.steps[1:]
	s.mu.Unlock()

	if step.Before != nil {
		step.Before()
	}
	return step.Line, step.Err
}

func (s *Scripted) AddHistory(line string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = append(s.history, line)
	return nil
}

func (s *Scripted) ResetHistory(lines []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = append([]string(nil), lines...)
	return nil
}

func (s *Scripted) SetHistoryLimit(n int) {
	s.mu.Lock()
	s.limit = n
	s.mu.Unlock()
}

func (s *Scripted) SetStreams(in, out *os.File) {
	s.mu.Lock()
	s.in, s.out = in, out
	s.mu.Unlock()
}

func (s *Scripted) SetCompleter(c engine.Completer) {
	s.mu.Lock()
	s.completer = c
	s.mu.Unlock()
}

func (s *Scripted) Close() error {
	s.mu.Lock()
	s.closes++
	s.mu.Unlock()
	return nil
}

// Complete asks the installed completer, as a Tab press would
func (s *Scripted) Complete(line string, pos int) []string {
	s.mu.Lock()
	c := s.completer
	s.mu.Unlock()

	if c == nil {
		return nil
	}
	return c.Complete(line, pos)
}

// Reads returns how many times ReadLine was called
func (s *Scripted) Reads() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reads
}

// Prompts returns the prompts passed to ReadLine
func (s *Scripted) Prompts() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.prompts...)
}

// History returns the scrollback
func (s *Scripted) History() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.history...)
}

// Limit returns the last history limit set
func (s *Scripted) Limit() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.limit
}

// Streams returns the bound streams
func (s *Scripted) Streams() (in, out *os.File) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.in, s.out
}

// Closes returns how many times Close was called
func (s *Scripted) Closes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closes
}
