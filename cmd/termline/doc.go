// Package main is an interactive shell built on the termline session.
//
// It reads commands through a readline-backed session, keeps a bounded
// history, routes terminal signals to handlers and optionally serves
// Prometheus metrics.
//
// Configuration:
//   - Environment variables (TERMLINE_PROMPT, TERMLINE_HISTORY_SIZE, LOG_LEVEL, METRICS_ADDR)
//   - A TOML or YAML file given with -config, used instead of the environment
//   - CLI flags (override either)
//
// Usage:
//
//	./termline -prompt 'db> ' -history 500
//	./termline -config termline.toml -metrics-addr :9090
//	./termline -dev
//
// Signals:
//   - SIGINT: reported, the session stays open
//   - SIGTSTP: reported, then the process stops
//   - SIGCONT: reported after resuming
package main
