// Package config provides 12-factor configuration management for termline.
//
// Configuration is loaded from environment variables with sensible defaults,
// or from a TOML or YAML file. CLI flags in the host override either source.
//
// Configuration Sections:
//   - Session: prompt, history capacity, interrupt queuing while paused
//   - Logging: log level and output format
//   - Metrics: optional Prometheus endpoint address
//
// Example Usage:
//
//	cfg := config.LoadOrDefault()
//	fmt.Printf("history capacity %d\n", cfg.Session.HistorySize)
//
// Environment Variables:
//   - TERMLINE_PROMPT, TERMLINE_HISTORY_SIZE, TERMLINE_QUEUE_INTERRUPTS
//   - LOG_LEVEL, LOG_DEV
//   - METRICS_ADDR
package config
