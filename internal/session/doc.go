// Package session manages one interactive terminal input session.
//
// A Session owns the lifecycle flags (initialized, paused, closed), the
// prompt, the input and output streams and the history log, and drives a
// line editing engine. It wires the signal bridge on Initialize and
// restores default signal dispositions on Cleanup.
//
// Lifecycle:
//
//	s := session.New(engine.NewReadline(), session.Options{})
//	s.Initialize()
//	defer s.Close()
//
//	for {
//		line, ok := s.ReadLine()
//		if !ok {
//			break
//		}
//		...
//	}
//
// Reads return no line, without touching the engine, when the session is
// not initialized, paused or closed. End of input closes the session and
// fires the close handler exactly once; only a new Initialize after
// Cleanup reopens it.
//
// A Session is driven from a single goroutine. The signal dispatcher is the
// only other goroutine that looks at it, and it reads only the paused flag
// and the handler registry.
package session
