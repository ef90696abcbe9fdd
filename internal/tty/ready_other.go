//go:build !unix

package tty

// InputReady is not available without poll(2)
func InputReady(fd uintptr) (bool, error) {
	return false, ErrUnsupported
}
