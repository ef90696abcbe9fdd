//go:build !unix

package signals

import (
	"fmt"
	"os"
)

// DefaultSet routes only os.Interrupt; there is no job control here
func DefaultSet() Set {
	return Set{Interrupt: os.Interrupt}
}

func raise(sig os.Signal) error {
	return fmt.Errorf("%w: %v", ErrUnsupported, sig)
}
