package signals

import (
	"os"
	"sync"
	"sync/atomic"

	"github.com/GriffinCanCode/termline/internal/callbacks"
	"github.com/GriffinCanCode/termline/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/termline/internal/logging"
	"go.uber.org/zap"
)

// Options configures a Bridge
type Options struct {
	Set      Set
	Notifier Notifier
	// QueueWhilePaused holds one interrupt received while paused for Flush
	QueueWhilePaused bool
	Logger           *logging.Logger
	Metrics          *monitoring.Metrics
}

// Bridge forwards signals to the handlers in a callbacks.Registry
type Bridge struct {
	handlers *callbacks.Registry
	paused   func() bool
	set      Set
	os       Notifier
	queue    bool
	pending  atomic.Bool
	logger   *logging.Logger
	metrics  *monitoring.Metrics

	// Set while the dispatcher runs a handler
	dispatching atomic.Bool

	mu        sync.Mutex
	installed bool
	ch        chan os.Signal
	done      chan struct{}
	wg        sync.WaitGroup
}

// New creates a bridge. paused reports the session's paused state and is
// called from the dispatcher goroutine.
func New(handlers *callbacks.Registry, paused func() bool, opts Options) *Bridge {
	if opts.Notifier == nil {
		opts.Notifier = OSNotifier{}
	}
	if opts.Set == (Set{}) {
		opts.Set = DefaultSet()
	}
	if opts.Logger == nil {
		opts.Logger = logging.NewNop()
	}

	return &Bridge{
		handlers: handlers,
		paused:   paused,
		set:      opts.Set,
		os:       opts.Notifier,
		queue:    opts.QueueWhilePaused,
		logger:   opts.Logger,
		metrics:  opts.Metrics,
	}
}

// Install starts routing signals. Calling it while installed does nothing.
func (b *Bridge) Install() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.installed {
		return
	}

	b.ch = make(chan os.Signal, 8)
	b.done = make(chan struct{})
	b.pending.Store(false)
	b.os.Notify(b.ch, b.set.list()...)
	b.installed = true

	b.wg.Add(1)
	go b.run(b.ch, b.done)
}

// Restore stops routing, restores default dispositions and waits for the
// dispatcher to exit. Calling it while not installed does nothing. Called from
// a handler running on the dispatcher, it does not wait; the dispatcher exits
// once the handler returns.
func (b *Bridge) Restore() {
	b.mu.Lock()
	if !b.installed {
		b.mu.Unlock()
		return
	}
	b.installed = false
	b.os.Stop(b.ch)
	b.os.Reset(b.set.list()...)
	done := b.done
	b.mu.Unlock()

	close(done)
	if b.dispatching.Load() {
		return
	}
	b.wg.Wait()
}

// Installed reports whether signals are being routed
func (b *Bridge) Installed() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.installed
}

// Pending reports whether an interrupt is held for Flush
func (b *Bridge) Pending() bool {
	return b.pending.Load()
}

// Flush delivers a held interrupt. Reports whether one was held.
func (b *Bridge) Flush() bool {
	if !b.pending.CompareAndSwap(true, false) {
		return false
	}
	b.Interrupt()
	return true
}

func (b *Bridge) run(ch <-chan os.Signal, done <-chan struct{}) {
	defer b.wg.Done()

	for {
		select {
		case <-done:
			return
		case sig := <-ch:
			b.dispatching.Store(true)
			b.Deliver(sig)
			b.dispatching.Store(false)
		}
	}
}

// Deliver applies the bridge rules to sig on the calling goroutine
func (b *Bridge) Deliver(sig os.Signal) {
	if sig == nil {
		return
	}

	switch sig {
	case b.set.Interrupt:
		b.Interrupt()
	case b.set.Suspend:
		b.suspend()
	case b.set.Continue:
		b.resume()
	}
}

// Interrupt applies the interrupt rule as if the interrupt signal had arrived
func (b *Bridge) Interrupt() {
	if b.paused() {
		if b.queue {
			b.pending.Store(true)
			b.record("interrupt", monitoring.OutcomeQueued)
			return
		}
		b.record("interrupt", monitoring.OutcomeSwallowed)
		return
	}

	b.record("interrupt", outcome(b.handlers.Interrupt()))
}

func (b *Bridge) suspend() {
	phase := phaseNotifyHost
	for phase != phaseDone {
		phase = b.stepSuspend(phase)
	}
}

func (b *Bridge) stepSuspend(phase suspendPhase) suspendPhase {
	switch phase {
	case phaseNotifyHost:
		b.record("suspend", outcome(b.handlers.Suspend()))
		return phaseRestoreDefault
	case phaseRestoreDefault:
		b.os.Reset(b.set.Suspend)
		return phaseReRaise
	case phaseReRaise:
		if err := b.os.Raise(b.set.Suspend); err != nil {
			b.logger.Warn("Failed to re-raise suspend signal", zap.Error(err))
		}
		return phaseDone
	default:
		return phaseDone
	}
}

func (b *Bridge) resume() {
	b.mu.Lock()
	if b.installed && b.set.Suspend != nil {
		b.os.Notify(b.ch, b.set.Suspend)
	}
	b.mu.Unlock()

	b.record("continue", outcome(b.handlers.Continue()))
}

func (b *Bridge) record(signal, result string) {
	b.logger.Debug("Signal handled", zap.String("signal", signal), zap.String("outcome", result))
	b.metrics.RecordSignal(signal, result)
}

func outcome(handled bool) string {
	if handled {
		return monitoring.OutcomeDispatched
	}
	return monitoring.OutcomeUnhandled
}
