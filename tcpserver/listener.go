package tcpserver

import (
	"fmt"

	"golang.org/x/sys/unix"

	"github.com/joeycumines/go-fibernet/fdreg"
	"github.com/joeycumines/go-fibernet/hook"
	"github.com/joeycumines/go-fibernet/netaddr"
	"github.com/joeycumines/go-fibernet/rtconfig"
)

// listener is a bound, listening TCP socket, the Go analogue of one
// entry in TcpServer::m_socks.
type listener struct {
	fd   int
	addr netaddr.Address
}

// bindListener creates, binds, and listens a TCP socket for addr, the
// Go analogue of Socket::CreateTCP + Socket::bind + Socket::listen.
func bindListener(addr netaddr.Address) (*listener, error) {
	fd, err := unix.Socket(addr.Family(), unix.SOCK_STREAM|unix.SOCK_NONBLOCK|unix.SOCK_CLOEXEC, 0)
	if err != nil {
		return nil, fmt.Errorf("tcpserver: socket: %w", err)
	}
	if err := unix.SetsockoptInt(fd, unix.SOL_SOCKET, unix.SO_REUSEADDR, 1); err != nil {
		_ = unix.Close(fd)
		return nil, fmt.Errorf("tcpserver: setsockopt SO_REUSEADDR: %w", err)
	}
	if err := unix.Bind(fd, addr.Sockaddr()); err != nil {
		_ = unix.Close(fd)
		return nil, fmt.Errorf("tcpserver: bind %s: %w", addr, err)
	}
	if err := unix.Listen(fd, rtconfig.TCPAcceptBacklog.Get()); err != nil {
		_ = unix.Close(fd)
		return nil, fmt.Errorf("tcpserver: listen %s: %w", addr, err)
	}
	fdreg.Default().GetOrCreate(fd)
	return &listener{fd: fd, addr: addr}, nil
}

// accept blocks (parking the calling fiber) until a client connects,
// the Go analogue of Socket::accept.
func (l *listener) accept() (*Conn, error) {
	fd, sa, err := hook.Accept(l.fd)
	if err != nil {
		return nil, err
	}
	remote, err := netaddr.FromSockaddr(sa)
	if err != nil {
		remote = nil
	}
	return newConn(fd, remote, localAddr(fd)), nil
}

func (l *listener) close() error {
	return hook.Close(l.fd)
}
