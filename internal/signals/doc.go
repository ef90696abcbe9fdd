// Package signals bridges job-control signals to session callbacks.
//
// The Go runtime owns the real OS signal handlers; it forwards interrupt,
// suspend and continue signals into a buffered channel, which is the only
// work done in signal context. A dispatcher goroutine drains the channel and
// applies the session rules in normal execution context:
//
//   - Interrupt: runs the interrupt handler unless the session is paused.
//     While paused the signal is dropped, or held as a single pending
//     interrupt when QueueWhilePaused is set and delivered by Flush.
//   - Suspend: NotifyHost -> RestoreDefault -> ReRaise. The host hears about
//     the suspend first, then the default disposition is restored and the
//     signal re-raised so the process really stops under job control.
//   - Continue: re-routes the suspend signal (its disposition was reset for
//     the re-raise), then runs the continue handler.
//
// Interrupt, suspend and continue handlers therefore run on the dispatcher
// goroutine, not on the goroutine driving the session.
package signals
