package session

import (
	"bufio"
	"fmt"
	"os"
	"sync"
	"sync/atomic"

	"github.com/GriffinCanCode/termline/internal/callbacks"
	"github.com/GriffinCanCode/termline/internal/engine"
	"github.com/GriffinCanCode/termline/internal/history"
	"github.com/GriffinCanCode/termline/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/termline/internal/logging"
	"github.com/GriffinCanCode/termline/internal/shared/id"
	"github.com/GriffinCanCode/termline/internal/signals"
	"go.uber.org/zap"
)

// DefaultPrompt is shown when no prompt is set
const DefaultPrompt = "> "

// Status is the result of Initialize
type Status int

const (
	StatusReady Status = iota
	StatusAlreadyInitialized
)

// String returns the string representation of the status
func (s Status) String() string {
	switch s {
	case StatusReady:
		return "ready"
	case StatusAlreadyInitialized:
		return "already-initialized"
	default:
		return "unknown"
	}
}

// Options configures a Session
type Options struct {
	// HistoryCapacity applied on Initialize. Non-positive selects 1000.
	HistoryCapacity int
	// QueueInterruptsWhilePaused holds one interrupt received while paused
	// and delivers it on Resume instead of dropping it.
	QueueInterruptsWhilePaused bool

	Signals  signals.Set
	Notifier signals.Notifier
	Logger   *logging.Logger
	Metrics  *monitoring.Metrics
}

// Session is an interactive terminal input session
type Session struct {
	id       id.SessionID
	engine   engine.Engine
	handlers *callbacks.Registry
	bridge   *signals.Bridge
	history  *history.Store
	capacity int

	baseLogger *logging.Logger
	logger     *logging.Logger
	metrics    *monitoring.Metrics

	// Read by the signal dispatcher goroutine
	initialized atomic.Bool
	paused      atomic.Bool
	closed      atomic.Bool

	prompt string
	input  *os.File
	output *os.File

	// Handlers may write from the signal dispatcher goroutine
	writeMu sync.Mutex
	writer  *bufio.Writer
}

// New creates an uninitialized session reading through eng
func New(eng engine.Engine, opts Options) *Session {
	if opts.HistoryCapacity <= 0 {
		opts.HistoryCapacity = history.DefaultCapacity
	}
	if opts.Logger == nil {
		opts.Logger = logging.NewNop()
	}

	s := &Session{
		engine:     eng,
		handlers:   callbacks.NewRegistry(),
		history:    history.New(opts.HistoryCapacity),
		capacity:   opts.HistoryCapacity,
		baseLogger: opts.Logger.Named("session"),
		metrics:    opts.Metrics,
		prompt:     DefaultPrompt,
		input:      os.Stdin,
		output:     os.Stdout,
		writer:     bufio.NewWriter(os.Stdout),
	}
	s.logger = s.baseLogger

	s.bridge = signals.New(s.handlers, s.paused.Load, signals.Options{
		Set:              opts.Signals,
		Notifier:         opts.Notifier,
		QueueWhilePaused: opts.QueueInterruptsWhilePaused,
		Logger:           s.baseLogger.Named("signals"),
		Metrics:          opts.Metrics,
	})

	eng.SetStreams(s.input, s.output)
	eng.SetCompleter(sessionCompleter{s})

	return s
}

// ID returns the identifier of the current lifecycle. Empty before the
// first Initialize.
func (s *Session) ID() id.SessionID {
	return s.id
}

// Initialize prepares the session for reading. A second call before
// Cleanup changes nothing and reports StatusAlreadyInitialized.
func (s *Session) Initialize() Status {
	if s.initialized.Load() {
		return StatusAlreadyInitialized
	}

	s.id = id.NewSessionID()
	s.logger = s.baseLogger.With(zap.String("session_id", s.id.String()))

	s.prompt = DefaultPrompt
	s.history.SetCapacity(s.capacity)
	s.engine.SetHistoryLimit(s.history.Capacity())

	s.paused.Store(false)
	s.closed.Store(false)
	s.bridge.Install()
	s.initialized.Store(true)

	s.metrics.IncSessionsActive()
	s.metrics.SetHistoryEntries(s.history.Len())
	s.logger.Info("Session initialized", zap.Int("history_capacity", s.history.Capacity()))

	return StatusReady
}

// Cleanup releases the prompt, restores default signal dispositions and
// marks the session closed. It does nothing when not initialized.
// Registered handlers are kept.
func (s *Session) Cleanup() {
	if !s.initialized.Load() {
		return
	}

	s.prompt = DefaultPrompt
	s.bridge.Restore()
	if err := s.engine.Close(); err != nil {
		s.logger.Warn("Failed to release terminal", zap.Error(err))
	}

	s.initialized.Store(false)
	s.closed.Store(true)

	s.metrics.DecSessionsActive()
	s.logger.Info("Session cleaned up")
}

// Close fires the close handler if the session was not already closed,
// then cleans up.
func (s *Session) Close() {
	if s.closed.CompareAndSwap(false, true) {
		s.handlers.Close()
	}
	s.Cleanup()
}

// Pause suppresses reads and interrupt delivery
func (s *Session) Pause() {
	s.paused.Store(true)
}

// Resume re-enables reads. An interrupt held while paused is delivered.
func (s *Session) Resume() {
	s.paused.Store(false)
	s.bridge.Flush()
}

func (s *Session) IsPaused() bool      { return s.paused.Load() }
func (s *Session) IsClosed() bool      { return s.closed.Load() }
func (s *Session) IsInitialized() bool { return s.initialized.Load() }

// SetPrompt replaces the prompt. Empty text restores DefaultPrompt.
func (s *Session) SetPrompt(text string) {
	if text == "" {
		text = DefaultPrompt
	}
	s.prompt = text
}

// Prompt returns the current prompt, never empty
func (s *Session) Prompt() string {
	return s.prompt
}

// SetInput rebinds the input stream. Nil selects os.Stdin.
func (s *Session) SetInput(f *os.File) {
	if f == nil {
		f = os.Stdin
	}
	s.input = f
	s.engine.SetStreams(s.input, s.output)
}

// SetOutput rebinds the output stream. Nil selects os.Stdout.
func (s *Session) SetOutput(f *os.File) {
	if f == nil {
		f = os.Stdout
	}
	s.output = f
	s.writeMu.Lock()
	s.writer = bufio.NewWriter(f)
	s.writeMu.Unlock()
	s.engine.SetStreams(s.input, s.output)
}

// Write writes text to the output stream and flushes it. Empty text is a no-op.
func (s *Session) Write(text string) error {
	if text == "" {
		return nil
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if _, err := s.writer.WriteString(text); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	if err := s.writer.Flush(); err != nil {
		return fmt.Errorf("flush: %w", err)
	}
	return nil
}

func (s *Session) SetCompletionHandler(h callbacks.CompletionHandler) { s.handlers.SetCompletion(h) }
func (s *Session) SetLineHandler(h callbacks.LineHandler)             { s.handlers.SetLine(h) }
func (s *Session) SetCloseHandler(h callbacks.CloseHandler)           { s.handlers.SetClose(h) }
func (s *Session) SetInterruptHandler(h callbacks.InterruptHandler)   { s.handlers.SetInterrupt(h) }
func (s *Session) SetSuspendHandler(h callbacks.SuspendHandler)       { s.handlers.SetSuspend(h) }
func (s *Session) SetContinueHandler(h callbacks.ContinueHandler)     { s.handlers.SetContinue(h) }

type sessionCompleter struct {
	s *Session
}

func (c sessionCompleter) Complete(line string, pos int) []string {
	c.s.metrics.RecordCompletion()
	return c.s.handlers.Complete(line, pos)
}
