// Package callbacks holds the host-supplied event handlers of a session.
//
// There is one slot per event kind: completion, line, close, interrupt,
// suspend and continue. Registering a handler overwrites whatever the slot
// held before; registering nil clears it. The registry never takes ownership
// of a handler and never clears slots on its own.
//
// Handlers for interrupt, suspend and continue are invoked from the signal
// dispatcher goroutine, so slots are guarded for concurrent reads.
package callbacks
