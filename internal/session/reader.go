package session

import (
	"errors"
	"io"

	"github.com/GriffinCanCode/termline/internal/engine"
	"github.com/GriffinCanCode/termline/internal/tty"
	"go.uber.org/zap"
)

// ReadLine reads a line using the session prompt
func (s *Session) ReadLine() (string, bool) {
	return s.ReadLineWithPrompt("")
}

// ReadLineWithPrompt blocks until the user submits a line. An empty prompt
// selects the session prompt.
//
// It reports false without calling the engine when the session is not
// initialized, closed or paused. End of input closes the session and fires
// the close handler once. An interrupted edit is routed like an interrupt
// signal and leaves the session open.
func (s *Session) ReadLineWithPrompt(prompt string) (string, bool) {
	if !s.initialized.Load() || s.closed.Load() || s.paused.Load() {
		return "", false
	}
	if prompt == "" {
		prompt = s.prompt
	}

	timer := s.metrics.StartRead()
	line, err := s.engine.ReadLine(prompt)
	timer.Stop()

	switch {
	case errors.Is(err, engine.ErrInterrupt):
		s.logger.Debug("Read interrupted")
		s.bridge.Interrupt()
		return "", false
	case err != nil:
		if !errors.Is(err, io.EOF) {
			s.logger.Warn("Read failed, closing session", zap.Error(err))
		}
		s.metrics.RecordEOF()
		if s.closed.CompareAndSwap(false, true) {
			s.handlers.Close()
		}
		return "", false
	}

	s.addHistory(line)
	s.metrics.RecordLine()
	s.handlers.Line(line)
	return line, true
}

// InputAvailable reports whether a read would find input waiting. It never
// blocks and reports false when not initialized or closed.
func (s *Session) InputAvailable() bool {
	if !s.initialized.Load() || s.closed.Load() {
		return false
	}

	ready, err := tty.InputReady(s.input.Fd())
	if err != nil {
		s.logger.Debug("Input poll failed", zap.Error(err))
		return false
	}
	return ready
}

// WindowSize returns the dimensions of the output terminal
func (s *Session) WindowSize() (rows, cols int, err error) {
	return tty.WindowSize(s.output.Fd())
}

// IsTTY reports whether fd refers to a terminal
func (s *Session) IsTTY(fd uintptr) bool {
	return tty.IsTTY(fd)
}

// Interactive reports whether both streams are terminals
func (s *Session) Interactive() bool {
	return tty.IsTTY(s.input.Fd()) && tty.IsTTY(s.output.Fd())
}
