package hook

import (
	"golang.org/x/sys/unix"

	"github.com/joeycumines/go-fibernet/fdreg"
	"github.com/joeycumines/go-fibernet/ioruntime"
)

// Read is the do-IO-wrapped analogue of the original's hooked read:
// retries through DoIO until data is available, fd is closed by the
// peer, or its read timeout elapses.
func Read(fd int, p []byte) (int, error) {
	return DoIO(fd, ioruntime.EventRead, fdreg.TimeoutRead, func() (int, error) {
		return unix.Read(fd, p)
	})
}

// Write is Read's write-side counterpart (the original's hooked write).
func Write(fd int, p []byte) (int, error) {
	return DoIO(fd, ioruntime.EventWrite, fdreg.TimeoutWrite, func() (int, error) {
		return unix.Write(fd, p)
	})
}

// Recvfrom is the do-IO-wrapped analogue of the original's hooked
// recvfrom, for datagram sockets.
func Recvfrom(fd int, p []byte, flags int) (int, unix.Sockaddr, error) {
	var from unix.Sockaddr
	n, err := DoIO(fd, ioruntime.EventRead, fdreg.TimeoutRead, func() (int, error) {
		n, sa, e := unix.Recvfrom(fd, p, flags)
		if e != nil {
			return 0, e
		}
		from = sa
		return n, nil
	})
	return n, from, err
}

// Sendto is Recvfrom's write-side counterpart (the original's hooked
// sendto).
func Sendto(fd int, p []byte, flags int, to unix.Sockaddr) error {
	_, err := DoIO(fd, ioruntime.EventWrite, fdreg.TimeoutWrite, func() (int, error) {
		return 0, unix.Sendto(fd, p, flags, to)
	})
	return err
}
