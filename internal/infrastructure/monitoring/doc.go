/*
Package monitoring provides Prometheus metrics for terminal sessions.

# Overview

Metrics are registered against a caller-supplied registerer so that several
sessions (and tests) can each own an isolated registry.

# Metrics

- termline_lines_read_total: lines returned by reads
- termline_eof_total: reads that ended the session
- termline_read_duration_seconds: time spent blocked in the engine
- termline_signals_total{signal,outcome}: signal bridge decisions
- termline_completions_total: completion requests
- termline_history_entries: current history length
- termline_sessions_active: initialized sessions

# Usage

	reg := prometheus.NewRegistry()
	metrics := monitoring.NewMetrics(reg)

	timer := metrics.StartRead()
	// ... blocking read ...
	timer.Stop()

	router := monitoring.Router(reg)
	router.Run(":9090")

All recording methods are safe on a nil *Metrics.
*/
package monitoring
