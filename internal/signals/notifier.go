package signals

import (
	"errors"
	"os"
	"os/signal"
)

var ErrUnsupported = errors.New("signal not supported on this platform")

// Set names the signals the bridge routes. Nil members are not routed.
type Set struct {
	Interrupt os.Signal
	Suspend   os.Signal
	Continue  os.Signal
}

func (s Set) list() []os.Signal {
	var out []os.Signal
	for _, sig := range []os.Signal{s.Interrupt, s.Suspend, s.Continue} {
		if sig != nil {
			out = append(out, sig)
		}
	}
	return out
}

// Notifier is the process signal table
type Notifier interface {
	Notify(c chan<- os.Signal, sig ...os.Signal)
	Stop(c chan<- os.Signal)
	// Reset restores the default disposition of sig
	Reset(sig ...os.Signal)
	// Raise sends sig to the current process
	Raise(sig os.Signal) error
}

// OSNotifier routes through os/signal
type OSNotifier struct{}

func (OSNotifier) Notify(c chan<- os.Signal, sig ...os.Signal) { signal.Notify(c, sig...) }
func (OSNotifier) Stop(c chan<- os.Signal)                     { signal.Stop(c) }
func (OSNotifier) Reset(sig ...os.Signal)                      { signal.Reset(sig...) }
func (OSNotifier) Raise(sig os.Signal) error                   { return raise(sig) }
