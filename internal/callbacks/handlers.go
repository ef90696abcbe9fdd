package callbacks

// CompletionHandler returns candidate completions for line with the cursor at pos
type CompletionHandler interface {
	Complete(line string, pos int) []string
}

// LineHandler is notified of every line returned by a read
type LineHandler interface {
	OnLine(line string)
}

// CloseHandler is notified once when the session closes
type CloseHandler interface {
	OnClose()
}

// InterruptHandler is notified of interrupt signals
type InterruptHandler interface {
	OnInterrupt()
}

// SuspendHandler is notified before the process suspends
type SuspendHandler interface {
	OnSuspend()
}

// ContinueHandler is notified after the process resumes from a suspend
type ContinueHandler interface {
	OnContinue()
}

// CompletionFunc adapts a function to CompletionHandler
type CompletionFunc func(line string, pos int) []string

// Complete calls f
func (f CompletionFunc) Complete(line string, pos int) []string { return f(line, pos) }

// LineFunc adapts a function to LineHandler
type LineFunc func(line string)

// OnLine calls f
func (f LineFunc) OnLine(line string) { f(line) }

// EventFunc adapts a function to any of the argument-less handlers
type EventFunc func()

func (f EventFunc) OnClose()     { f() }
func (f EventFunc) OnInterrupt() { f() }
func (f EventFunc) OnSuspend()   { f() }
func (f EventFunc) OnContinue()  { f() }
