package netaddr

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// UnixAddress is a Unix-domain socket address, the Go analogue of
// UnixAddress.
type UnixAddress struct {
	path string
}

// NewUnix constructs a UnixAddress for path (may be abstract, i.e.
// start with a NUL byte, on Linux).
func NewUnix(path string) *UnixAddress { return &UnixAddress{path: path} }

func (a *UnixAddress) Family() int { return unix.AF_UNIX }

func (a *UnixAddress) Sockaddr() unix.Sockaddr {
	return &unix.SockaddrUnix{Name: a.path}
}

func (a *UnixAddress) String() string { return fmt.Sprintf("unix:%s", a.path) }

// Path returns the socket path.
func (a *UnixAddress) Path() string { return a.path }

// UnknownAddress wraps a unix.Sockaddr this package doesn't otherwise
// model, the Go analogue of UnknownAddress.
type UnknownAddress struct {
	family int
	raw    unix.Sockaddr
}

// NewUnknown constructs an UnknownAddress wrapping raw.
func NewUnknown(raw unix.Sockaddr) *UnknownAddress {
	return &UnknownAddress{raw: raw}
}

func (a *UnknownAddress) Family() int          { return a.family }
func (a *UnknownAddress) Sockaddr() unix.Sockaddr { return a.raw }
func (a *UnknownAddress) String() string       { return fmt.Sprintf("unknown(%T)", a.raw) }
