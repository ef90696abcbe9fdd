package session

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/GriffinCanCode/termline/internal/callbacks"
	"github.com/GriffinCanCode/termline/internal/engine"
	"github.com/GriffinCanCode/termline/internal/engine/enginetest"
	"github.com/GriffinCanCode/termline/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/termline/internal/signals"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingNotifier stands in for the process signal table
type recordingNotifier struct {
	mu     sync.Mutex
	ch     chan<- os.Signal
	stops  int
	resets int
}

func (n *recordingNotifier) Notify(c chan<- os.Signal, sig ...os.Signal) {
	n.mu.Lock()
	n.ch = c
	n.mu.Unlock()
}

func (n *recordingNotifier) Stop(c chan<- os.Signal) {
	n.mu.Lock()
	n.stops++
	n.mu.Unlock()
}

func (n *recordingNotifier) Reset(sig ...os.Signal) {
	n.mu.Lock()
	n.resets++
	n.mu.Unlock()
}

func (n *recordingNotifier) Raise(sig os.Signal) error { return nil }

func (n *recordingNotifier) Send(sig os.Signal) {
	n.mu.Lock()
	ch := n.ch
	n.mu.Unlock()
	ch <- sig
}

type fixture struct {
	session  *Session
	engine   *enginetest.Scripted
	notifier *recordingNotifier
	metrics  *monitoring.Metrics
}

func newFixture(t *testing.T, opts Options, steps ...enginetest.Step) *fixture {
	t.Helper()

	f := &fixture{
		engine:   enginetest.New(steps...),
		notifier: &recordingNotifier{},
		metrics:  monitoring.NewMetrics(prometheus.NewRegistry()),
	}
	opts.Notifier = f.notifier
	opts.Signals = signals.Set{Interrupt: os.Interrupt}
	opts.Metrics = f.metrics

	f.session = New(f.engine, opts)
	t.Cleanup(f.session.Cleanup)
	return f
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "ready", StatusReady.String())
	assert.Equal(t, "already-initialized", StatusAlreadyInitialized.String())
	assert.Equal(t, "unknown", Status(9).String())
}

func TestInitializeIsIdempotent(t *testing.T) {
	f := newFixture(t, Options{})
	s := f.session

	require.Equal(t, StatusReady, s.Initialize())
	firstID := s.ID()

	var interrupts int
	s.SetInterruptHandler(callbacks.EventFunc(func() { interrupts++ }))
	s.SetPrompt("$ ")
	s.AddHistory("a")

	assert.Equal(t, StatusAlreadyInitialized, s.Initialize())
	assert.Equal(t, "$ ", s.Prompt())
	assert.Equal(t, 1, s.HistoryLength())
	assert.Equal(t, firstID, s.ID())

	s.bridge.Interrupt()
	assert.Equal(t, 1, interrupts)
}

func TestInitialState(t *testing.T) {
	f := newFixture(t, Options{})
	s := f.session

	assert.False(t, s.IsInitialized())
	assert.False(t, s.IsClosed())
	assert.False(t, s.IsPaused())
	assert.Equal(t, DefaultPrompt, s.Prompt())
	assert.Empty(t, s.ID())

	require.Equal(t, StatusReady, s.Initialize())
	assert.True(t, s.IsInitialized())
	assert.Contains(t, s.ID().String(), "sess_")
	assert.Equal(t, 1000, f.engine.Limit())
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.SessionsActive))
}

func TestCleanup(t *testing.T) {
	f := newFixture(t, Options{}, enginetest.Line("never"))
	s := f.session

	s.Initialize()
	s.SetPrompt("$ ")
	s.Cleanup()
	s.Cleanup()

	assert.True(t, s.IsClosed())
	assert.False(t, s.IsInitialized())
	assert.Equal(t, DefaultPrompt, s.Prompt())
	assert.Equal(t, 1, f.engine.Closes())
	assert.Equal(t, 1, f.notifier.stops)
	assert.Equal(t, 1, f.notifier.resets)
	assert.Equal(t, 0.0, testutil.ToFloat64(f.metrics.SessionsActive))

	line, ok := s.ReadLine()
	assert.False(t, ok)
	assert.Empty(t, line)
	assert.Equal(t, 0, f.engine.Reads())
}

func TestCleanupBeforeInitialize(t *testing.T) {
	f := newFixture(t, Options{})

	f.session.Cleanup()

	assert.False(t, f.session.IsClosed())
	assert.Equal(t, 0, f.engine.Closes())
}

func TestInitializeAfterCleanupReopens(t *testing.T) {
	f := newFixture(t, Options{}, enginetest.EOF(), enginetest.Line("again"))
	s := f.session

	s.Initialize()
	_, ok := s.ReadLine()
	require.False(t, ok)
	require.True(t, s.IsClosed())

	s.Cleanup()
	require.Equal(t, StatusReady, s.Initialize())
	assert.False(t, s.IsClosed())

	line, ok := s.ReadLine()
	assert.True(t, ok)
	assert.Equal(t, "again", line)
}

func TestCallbacksSurviveCleanup(t *testing.T) {
	f := newFixture(t, Options{})
	s := f.session

	var lines []string
	s.SetLineHandler(callbacks.LineFunc(func(line string) { lines = append(lines, line) }))

	s.Initialize()
	s.Cleanup()
	f.engine.Push(enginetest.Line("kept"))
	s.Initialize()
	s.ReadLine()

	assert.Equal(t, []string{"kept"}, lines)
}

func TestSetPrompt(t *testing.T) {
	f := newFixture(t, Options{})
	s := f.session

	s.SetPrompt("db> ")
	assert.Equal(t, "db> ", s.Prompt())

	s.SetPrompt("")
	assert.Equal(t, "> ", s.Prompt())
}

func TestReadLinePrompts(t *testing.T) {
	f := newFixture(t, Options{}, enginetest.Line("a"), enginetest.Line("b"), enginetest.Line("c"))
	s := f.session
	s.Initialize()
	s.SetPrompt("$ ")

	s.ReadLine()
	s.ReadLineWithPrompt("x> ")
	s.ReadLineWithPrompt("")

	assert.Equal(t, []string{"$ ", "x> ", "$ "}, f.engine.Prompts())
}

func TestReadLineHistory(t *testing.T) {
	f := newFixture(t, Options{}, enginetest.Line("ls"), enginetest.Line(""))
	s := f.session
	s.Initialize()

	line, ok := s.ReadLine()
	require.True(t, ok)
	assert.Equal(t, "ls", line)

	line, ok = s.ReadLine()
	require.True(t, ok)
	assert.Equal(t, "", line)

	assert.Equal(t, 1, s.HistoryLength())
	assert.Equal(t, []string{"ls"}, f.engine.History())
	assert.Equal(t, 2.0, testutil.ToFloat64(f.metrics.LinesRead))
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.HistoryEntries))
}

func TestReadLineEOF(t *testing.T) {
	f := newFixture(t, Options{}, enginetest.EOF())
	s := f.session

	var closes int
	s.SetCloseHandler(callbacks.EventFunc(func() { closes++ }))
	s.Initialize()

	_, ok := s.ReadLine()
	assert.False(t, ok)
	assert.True(t, s.IsClosed())
	assert.Equal(t, 1, closes)

	_, ok = s.ReadLine()
	assert.False(t, ok)
	assert.Equal(t, 1, f.engine.Reads())

	s.Close()
	assert.Equal(t, 1, closes)
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.EOFs))
}

func TestReadLineEngineFailureCloses(t *testing.T) {
	f := newFixture(t, Options{}, enginetest.Step{Err: errors.New("terminal gone")})
	s := f.session

	var closes int
	s.SetCloseHandler(callbacks.EventFunc(func() { closes++ }))
	s.Initialize()

	_, ok := s.ReadLine()
	assert.False(t, ok)
	assert.True(t, s.IsClosed())
	assert.Equal(t, 1, closes)
}

func TestReadLineInterrupted(t *testing.T) {
	f := newFixture(t, Options{}, enginetest.Interrupt(), enginetest.Line("next"))
	s := f.session

	var interrupts, closes int
	s.SetInterruptHandler(callbacks.EventFunc(func() { interrupts++ }))
	s.SetCloseHandler(callbacks.EventFunc(func() { closes++ }))
	s.Initialize()

	_, ok := s.ReadLine()
	assert.False(t, ok)
	assert.False(t, s.IsClosed())
	assert.Equal(t, 1, interrupts)
	assert.Equal(t, 0, closes)

	line, ok := s.ReadLine()
	assert.True(t, ok)
	assert.Equal(t, "next", line)
}

func TestReadLineInterruptedWhilePaused(t *testing.T) {
	f := newFixture(t, Options{})
	s := f.session
	f.engine.Push(enginetest.Step{Err: engine.ErrInterrupt, Before: s.Pause})

	var interrupts int
	s.SetInterruptHandler(callbacks.EventFunc(func() { interrupts++ }))
	s.Initialize()

	_, ok := s.ReadLine()
	assert.False(t, ok)
	assert.Equal(t, 0, interrupts)
}

func TestReadLineNotInitialized(t *testing.T) {
	f := newFixture(t, Options{}, enginetest.Line("x"))

	_, ok := f.session.ReadLine()
	assert.False(t, ok)
	assert.False(t, f.session.IsClosed())
	assert.Equal(t, 0, f.engine.Reads())
}

func TestPauseResume(t *testing.T) {
	f := newFixture(t, Options{}, enginetest.Line("after"))
	s := f.session
	s.Initialize()

	s.Pause()
	assert.True(t, s.IsPaused())

	_, ok := s.ReadLine()
	assert.False(t, ok)
	assert.False(t, s.IsClosed())
	assert.Equal(t, 0, f.engine.Reads())

	s.Resume()
	assert.False(t, s.IsPaused())

	line, ok := s.ReadLine()
	assert.True(t, ok)
	assert.Equal(t, "after", line)
}

func TestInputAvailableWhenInactive(t *testing.T) {
	f := newFixture(t, Options{})
	s := f.session

	assert.False(t, s.InputAvailable())

	s.Initialize()
	s.Cleanup()
	assert.False(t, s.InputAvailable())
}

func TestLineHandlerSeesEveryLine(t *testing.T) {
	f := newFixture(t, Options{}, enginetest.Line("a"), enginetest.Line(""), enginetest.EOF())
	s := f.session

	var lines []string
	s.SetLineHandler(callbacks.LineFunc(func(line string) { lines = append(lines, line) }))
	s.Initialize()

	for {
		if _, ok := s.ReadLine(); !ok {
			break
		}
	}

	assert.Equal(t, []string{"a", ""}, lines)
}

func TestHistoryOperations(t *testing.T) {
	f := newFixture(t, Options{})
	s := f.session
	s.Initialize()

	s.AddHistory("")
	assert.Equal(t, 0, s.HistoryLength())

	s.AddHistory("x")
	line, ok := s.History(0)
	require.True(t, ok)
	assert.Equal(t, "x", line)

	_, ok = s.History(s.HistoryLength())
	assert.False(t, ok)

	s.ClearHistory()
	assert.Equal(t, 0, s.HistoryLength())
	assert.Empty(t, f.engine.History())
}

func TestHistoryCapacityEvictsOldest(t *testing.T) {
	f := newFixture(t, Options{})
	s := f.session
	s.Initialize()

	s.SetHistoryCapacity(2)
	s.AddHistory("a")
	s.AddHistory("b")
	s.AddHistory("c")

	assert.Equal(t, 2, s.HistoryLength())
	first, _ := s.History(0)
	second, _ := s.History(1)
	assert.Equal(t, "b", first)
	assert.Equal(t, "c", second)
	assert.Equal(t, 2, f.engine.Limit())
}

func TestHistoryCapacityShrinkSyncsEngine(t *testing.T) {
	f := newFixture(t, Options{})
	s := f.session
	s.Initialize()

	for _, line := range []string{"a", "b", "c"} {
		s.AddHistory(line)
	}
	s.SetHistoryCapacity(1)

	assert.Equal(t, []string{"c"}, f.engine.History())

	s.SetHistoryCapacity(0)
	assert.Equal(t, 1000, f.engine.Limit())
}

func TestConfiguredCapacityAppliedOnInitialize(t *testing.T) {
	f := newFixture(t, Options{HistoryCapacity: 5})
	s := f.session

	s.Initialize()
	s.SetHistoryCapacity(2)
	s.Cleanup()
	s.Initialize()

	assert.Equal(t, 5, f.engine.Limit())
}

func TestWrite(t *testing.T) {
	f := newFixture(t, Options{})
	s := f.session

	path := filepath.Join(t.TempDir(), "out")
	out, err := os.Create(path)
	require.NoError(t, err)
	defer out.Close()

	s.SetOutput(out)

	require.NoError(t, s.Write(""))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Empty(t, data)

	require.NoError(t, s.Write("hello\n"))
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hello\n", string(data))

	_, bound := f.engine.Streams()
	assert.Equal(t, out, bound)
}

func TestSetStreamsDefault(t *testing.T) {
	f := newFixture(t, Options{})
	s := f.session

	r, w, err := os.Pipe()
	require.NoError(t, err)
	defer r.Close()
	defer w.Close()

	s.SetInput(r)
	s.SetOutput(w)
	in, out := f.engine.Streams()
	assert.Equal(t, r, in)
	assert.Equal(t, w, out)

	s.SetInput(nil)
	s.SetOutput(nil)
	in, out = f.engine.Streams()
	assert.Equal(t, os.Stdin, in)
	assert.Equal(t, os.Stdout, out)
}

func TestCloseFiresOnce(t *testing.T) {
	f := newFixture(t, Options{})
	s := f.session

	var closes int
	s.SetCloseHandler(callbacks.EventFunc(func() { closes++ }))
	s.Initialize()

	s.Close()
	s.Close()

	assert.Equal(t, 1, closes)
	assert.True(t, s.IsClosed())
	assert.False(t, s.IsInitialized())
}

func TestCloseWithoutInitialize(t *testing.T) {
	f := newFixture(t, Options{})

	var closes int
	f.session.SetCloseHandler(callbacks.EventFunc(func() { closes++ }))
	f.session.Close()

	assert.Equal(t, 1, closes)
	assert.True(t, f.session.IsClosed())
}

func TestCompletionCandidatesReachEngine(t *testing.T) {
	f := newFixture(t, Options{})
	s := f.session

	assert.Nil(t, f.engine.Complete("he", 2))

	s.SetCompletionHandler(callbacks.CompletionFunc(func(line string, pos int) []string {
		return []string{"help", "history"}
	}))

	assert.Equal(t, []string{"help", "history"}, f.engine.Complete("he", 2))
	assert.Equal(t, 2.0, testutil.ToFloat64(f.metrics.Completions))
}

func TestInterruptSignal(t *testing.T) {
	f := newFixture(t, Options{})
	s := f.session

	var interrupts atomic.Int32
	s.SetInterruptHandler(callbacks.EventFunc(func() { interrupts.Add(1) }))
	s.Initialize()

	f.notifier.Send(os.Interrupt)
	assert.Eventually(t, func() bool { return interrupts.Load() == 1 }, time.Second, 5*time.Millisecond)

	s.Pause()
	f.notifier.Send(os.Interrupt)
	swallowed := f.metrics.Signals.WithLabelValues("interrupt", monitoring.OutcomeSwallowed)
	assert.Eventually(t, func() bool { return testutil.ToFloat64(swallowed) == 1 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, int32(1), interrupts.Load())
	assert.False(t, s.IsClosed())

	s.Resume()
	assert.Equal(t, int32(1), interrupts.Load())
}

func TestQueuedInterruptDeliveredOnResume(t *testing.T) {
	f := newFixture(t, Options{QueueInterruptsWhilePaused: true})
	s := f.session

	var interrupts atomic.Int32
	s.SetInterruptHandler(callbacks.EventFunc(func() { interrupts.Add(1) }))
	s.Initialize()

	s.Pause()
	f.notifier.Send(os.Interrupt)
	queued := f.metrics.Signals.WithLabelValues("interrupt", monitoring.OutcomeQueued)
	assert.Eventually(t, func() bool { return testutil.ToFloat64(queued) == 1 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, int32(0), interrupts.Load())

	s.Resume()
	assert.Equal(t, int32(1), interrupts.Load())
}

func TestCloseFromInterruptHandler(t *testing.T) {
	f := newFixture(t, Options{})
	s := f.session

	var closes atomic.Int32
	returned := make(chan struct{})
	s.SetCloseHandler(callbacks.EventFunc(func() { closes.Add(1) }))
	s.SetInterruptHandler(callbacks.EventFunc(func() {
		s.Close()
		close(returned)
	}))
	s.Initialize()

	f.notifier.Send(os.Interrupt)

	select {
	case <-returned:
	case <-time.After(2 * time.Second):
		t.Fatal("Close from the interrupt handler did not return")
	}
	assert.True(t, s.IsClosed())
	assert.False(t, s.IsInitialized())
	assert.Equal(t, int32(1), closes.Load())
	assert.Equal(t, 1, f.engine.Closes())
}
