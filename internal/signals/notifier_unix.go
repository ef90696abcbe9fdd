//go:build unix

package signals

import (
	"fmt"
	"os"
	"syscall"

	"golang.org/x/sys/unix"
)

// DefaultSet routes SIGINT, SIGTSTP and SIGCONT
func DefaultSet() Set {
	return Set{
		Interrupt: syscall.SIGINT,
		Suspend:   syscall.SIGTSTP,
		Continue:  syscall.SIGCONT,
	}
}

func raise(sig os.Signal) error {
	s, ok := sig.(syscall.Signal)
	if !ok {
		return fmt.Errorf("%w: %v", ErrUnsupported, sig)
	}
	return unix.Kill(unix.Getpid(), s)
}
