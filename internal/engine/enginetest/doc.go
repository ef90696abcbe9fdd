// Package enginetest provides a scripted engine.Engine for tests and for
// environments without a terminal.
//
// A Scripted engine replays a fixed sequence of read results and records
// every interaction so tests can assert on prompts, scrollback and stream
// bindings. Once the script is exhausted every read returns io.EOF.
package enginetest
