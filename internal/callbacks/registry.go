package callbacks

import "sync"

// Registry holds one handler per event kind
type Registry struct {
	mu         sync.RWMutex
	completion CompletionHandler
	line       LineHandler
	close      CloseHandler
	interrupt  InterruptHandler
	suspend    SuspendHandler
	cont       ContinueHandler
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{}
}

func (r *Registry) SetCompletion(h CompletionHandler) {
	r.mu.Lock()
	r.completion = h
	r.mu.Unlock()
}

func (r *Registry) SetLine(h LineHandler) {
	r.mu.Lock()
	r.line = h
	r.mu.Unlock()
}

func (r *Registry) SetClose(h CloseHandler) {
	r.mu.Lock()
	r.close = h
	r.mu.Unlock()
}

func (r *Registry) SetInterrupt(h InterruptHandler) {
	r.mu.Lock()
	r.interrupt = h
	r.mu.Unlock()
}

func (r *Registry) SetSuspend(h SuspendHandler) {
	r.mu.Lock()
	r.suspend = h
	r.mu.Unlock()
}

func (r *Registry) SetContinue(h ContinueHandler) {
	r.mu.Lock()
	r.cont = h
	r.mu.Unlock()
}

// Complete asks the completion handler for candidates.
// Without a handler there are no candidates.
func (r *Registry) Complete(line string, pos int) []string {
	r.mu.RLock()
	h := r.completion
	r.mu.RUnlock()

	if h == nil {
		return nil
	}
	return h.Complete(line, pos)
}

// Line notifies the line handler. Reports whether one was registered.
func (r *Registry) Line(line string) bool {
	r.mu.RLock()
	h := r.line
	r.mu.RUnlock()

	if h == nil {
		return false
	}
	h.OnLine(line)
	return true
}

// Close notifies the close handler. Reports whether one was registered.
func (r *Registry) Close() bool {
	r.mu.RLock()
	h := r.close
	r.mu.RUnlock()

	if h == nil {
		return false
	}
	h.OnClose()
	return true
}

// Interrupt notifies the interrupt handler. Reports whether one was registered.
func (r *Registry) Interrupt() bool {
	r.mu.RLock()
	h := r.interrupt
	r.mu.RUnlock()

	if h == nil {
		return false
	}
	h.OnInterrupt()
	return true
}

// Suspend notifies the suspend handler. Reports whether one was registered.
func (r *Registry) Suspend() bool {
	r.mu.RLock()
	h := r.suspend
	r.mu.RUnlock()

	if h == nil {
		return false
	}
	h.OnSuspend()
	return true
}

// Continue notifies the continue handler. Reports whether one was registered.
func (r *Registry) Continue() bool {
	r.mu.RLock()
	h := r.cont
	r.mu.RUnlock()

	if h == nil {
		return false
	}
	h.OnContinue()
	return true
}
