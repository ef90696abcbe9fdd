//go:build unix

package tty

import (
	"errors"
	"fmt"

	"golang.org/x/sys/unix"
)

// InputReady reports whether a read on fd would return without blocking
func InputReady(fd uintptr) (bool, error) {
	fds := []unix.PollFd{{Fd: int32(fd), Events: unix.POLLIN}}

	for {
		n, err := unix.Poll(fds, 0)
		if errors.Is(err, unix.EINTR) {
			continue
		}
		if err != nil {
			return false, fmt.Errorf("poll fd %d: %w", fd, err)
		}
		return n > 0 && fds[0].Revents&(unix.POLLIN|unix.POLLHUP) != 0, nil
	}
}
