// Package engine defines the line editing engine a session reads through and
// provides the production implementation backed by ergochat/readline.
//
// The engine owns raw mode, cursor movement, keybindings and in-line history
// scrollback. Sessions treat it as opaque: they hand it a prompt, block until
// it returns a line or an error, and keep its scrollback in step with their
// own history log.
//
// Errors:
//   - io.EOF: end of input (Ctrl-D on an empty line, closed stream)
//   - ErrInterrupt: the user pressed the interrupt key while editing
//   - ErrClosed: the engine was used after Close
//
// The enginetest sub-package provides a scripted engine for tests and for
// environments without a terminal.
package engine
