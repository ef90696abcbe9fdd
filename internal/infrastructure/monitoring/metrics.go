package monitoring

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Signal outcomes
const (
	OutcomeDispatched = "dispatched"
	OutcomeSwallowed  = "swallowed"
	OutcomeQueued     = "queued"
	OutcomeUnhandled  = "unhandled"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	LinesRead    prometheus.Counter
	EOFs         prometheus.Counter
	ReadDuration prometheus.Histogram

	Signals     *prometheus.CounterVec
	Completions prometheus.Counter

	HistoryEntries prometheus.Gauge
	SessionsActive prometheus.Gauge

	// Snapshot for the host's stats command
	snapshot Snapshot

	mu sync.RWMutex
}

// Snapshot holds current metric values for display
type Snapshot struct {
	LinesRead   int64
	EOFs        int64
	Signals     int64
	Completions int64
}

// NewMetrics creates a new metrics collector registered with reg
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		LinesRead: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "termline_lines_read_total",
				Help: "Total number of lines returned by reads",
			},
		),
		EOFs: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "termline_eof_total",
				Help: "Total number of reads that observed end of input",
			},
		),
		ReadDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "termline_read_duration_seconds",
				Help:    "Time spent blocked waiting for a line",
				Buckets: []float64{.01, .05, .1, .5, 1, 5, 10, 30, 60, 300},
			},
		),
		Signals: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "termline_signals_total",
				Help: "Total number of signals handled by the bridge",
			},
			[]string{"signal", "outcome"},
		),
		Completions: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "termline_completions_total",
				Help: "Total number of completion requests",
			},
		),
		HistoryEntries: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "termline_history_entries",
				Help: "Number of entries in the input history",
			},
		),
		SessionsActive: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "termline_sessions_active",
				Help: "Number of initialized sessions",
			},
		),
	}
}

// RecordLine records a line returned to the host
func (m *Metrics) RecordLine() {
	if m == nil {
		return
	}
	m.LinesRead.Inc()

	m.mu.Lock()
	m.snapshot.LinesRead++
	m.mu.Unlock()
}

// RecordEOF records end of input
func (m *Metrics) RecordEOF() {
	if m == nil {
		return
	}
	m.EOFs.Inc()

	m.mu.Lock()
	m.snapshot.EOFs++
	m.mu.Unlock()
}

// RecordSignal records a signal bridge decision
func (m *Metrics) RecordSignal(signal, outcome string) {
	if m == nil {
		return
	}
	m.Signals.WithLabelValues(signal, outcome).Inc()

	m.mu.Lock()
	m.snapshot.Signals++
	m.mu.Unlock()
}

// RecordCompletion records a completion request
func (m *Metrics) RecordCompletion() {
	if m == nil {
		return
	}
	m.Completions.Inc()

	m.mu.Lock()
	m.snapshot.Completions++
	m.mu.Unlock()
}

// SetHistoryEntries sets the history length gauge
func (m *Metrics) SetHistoryEntries(count int) {
	if m == nil {
		return
	}
	m.HistoryEntries.Set(float64(count))
}

// IncSessionsActive increments the active sessions gauge
func (m *Metrics) IncSessionsActive() {
	if m == nil {
		return
	}
	m.SessionsActive.Inc()
}

// DecSessionsActive decrements the active sessions gauge
func (m *Metrics) DecSessionsActive() {
	if m == nil {
		return
	}
	m.SessionsActive.Dec()
}

// Snapshot returns current values
func (m *Metrics) Snapshot() Snapshot {
	if m == nil {
		return Snapshot{}
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.snapshot
}

// ReadTimer measures how long a read blocked
type ReadTimer struct {
	start   time.Time
	metrics *Metrics
}

// StartRead starts timing a read
func (m *Metrics) StartRead() *ReadTimer {
	return &ReadTimer{
		start:   time.Now(),
		metrics: m,
	}
}

// Stop records the elapsed time
func (t *ReadTimer) Stop() time.Duration {
	elapsed := time.Since(t.start)
	if t.metrics != nil {
		t.metrics.ReadDuration.Observe(elapsed.Seconds())
	}
	return elapsed
}
