package tcpserver

import (
	"time"

	"golang.org/x/sys/unix"

	"github.com/joeycumines/go-fibernet/fdreg"
	"github.com/joeycumines/go-fibernet/hook"
	"github.com/joeycumines/go-fibernet/netaddr"
)

// Conn is an accepted client connection, the Go analogue of the
// Socket a TcpServer::handleClient receives, minus the original's
// protocol-agnostic send/recv helpers it doesn't need here — this
// implements io.ReadWriter directly so it plugs straight into
// httpcodec.Session.
type Conn struct {
	fd         int
	remote     netaddr.Address
	local      netaddr.Address
}

func newConn(fd int, remote, local netaddr.Address) *Conn {
	return &Conn{fd: fd, remote: remote, local: local}
}

// Read implements io.Reader via hook.Read, parking the calling fiber
// until data arrives or the fd's read timeout (SetRecvTimeout) fires.
func (c *Conn) Read(p []byte) (int, error) {
	return hook.Read(c.fd, p)
}

// Write implements io.Writer via hook.Write.
func (c *Conn) Write(p []byte) (int, error) {
	return hook.Write(c.fd, p)
}

// Close releases the underlying fd, the Go analogue of Socket::close.
func (c *Conn) Close() error {
	return hook.Close(c.fd)
}

// RemoteAddr returns the peer address.
func (c *Conn) RemoteAddr() netaddr.Address { return c.remote }

// LocalAddr returns the local address this connection was accepted on.
func (c *Conn) LocalAddr() netaddr.Address { return c.local }

// SetRecvTimeout sets the read deadline the hook layer's do-IO loop
// enforces, the Go analogue of Socket::setRecvTimeout /
// TcpServer::m_recvTimeout.
func (c *Conn) SetRecvTimeout(d time.Duration) {
	fdreg.Default().GetOrCreate(c.fd).SetTimeout(fdreg.TimeoutRead, d)
}

// Fd returns the underlying file descriptor.
func (c *Conn) Fd() int { return c.fd }

func localAddr(fd int) netaddr.Address {
	sa, err := unix.Getsockname(fd)
	if err != nil {
		return nil
	}
	a, err := netaddr.FromSockaddr(sa)
	if err != nil {
		return nil
	}
	return a
}
