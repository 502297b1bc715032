package tcpserver

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/joeycumines/go-catrate"

	"github.com/joeycumines/go-fibernet/ioruntime"
	"github.com/joeycumines/go-fibernet/netaddr"
	"github.com/joeycumines/go-fibernet/rtconfig"
	"github.com/joeycumines/go-fibernet/runtimelog"
	"github.com/joeycumines/go-fibernet/scheduler"
)

// HandleFunc processes one accepted connection, the Go analogue of
// TcpServer::handleClient — a pluggable function field rather than a
// virtual method override, since Go embedding doesn't dispatch
// virtually (the same idiom scheduler.Scheduler uses for IdleFunc).
type HandleFunc func(*Conn)

// Server is an accept/serve shell atop an ioruntime.Manager, the Go
// analogue of TcpServer.
type Server struct {
	// Name identifies the server in logs, the Go analogue of
	// TcpServer::m_name (default "apexstorm/1.0.0" there).
	Name string
	// RecvTimeout is applied to every accepted Conn via
	// SetRecvTimeout, the Go analogue of TcpServer::m_recvTimeout
	// (sourced from tcp_server.read_timeout in the original's config).
	RecvTimeout time.Duration
	// Handle processes each accepted connection. Required before Start.
	Handle HandleFunc
	// ConnLimiter, if set, rate-limits accepted connections per remote
	// address (categorized by its String() form) — the original has no
	// connection admission control; this supplements it with go-catrate.
	ConnLimiter *catrate.Limiter

	worker       *ioruntime.Manager
	acceptWorker *ioruntime.Manager

	mu        sync.Mutex
	listeners []*listener

	stopped atomic.Bool
}

// New constructs a Server, the Go analogue of TcpServer's constructor.
// worker runs handleClient jobs; acceptWorker runs the per-listener
// accept loops. Both default to ioruntime.Default() when nil, the Go
// analogue of IOManager::GetThis() defaults in the original.
func New(worker, acceptWorker *ioruntime.Manager) *Server {
	if worker == nil {
		worker = ioruntime.Default()
	}
	if acceptWorker == nil {
		acceptWorker = ioruntime.Default()
	}
	s := &Server{
		Name:        "fibernet/1.0.0",
		RecvTimeout: rtconfig.TCPConnectTimeout.Get(),
		worker:       worker,
		acceptWorker: acceptWorker,
	}
	s.stopped.Store(true)
	return s
}

// Bind binds and listens addr, the Go analogue of TcpServer::bind
// (single-address overload).
func (s *Server) Bind(addr netaddr.Address) error {
	l, err := bindListener(addr)
	if err != nil {
		runtimelog.Default().Error("tcpserver: bind failed", "server", s.Name, "addr", addr.String(), "err", err)
		return err
	}
	s.mu.Lock()
	s.listeners = append(s.listeners, l)
	s.mu.Unlock()
	runtimelog.Default().Info("tcpserver: bind success", "server", s.Name, "addr", addr.String())
	return nil
}

// BindAll binds every address in addrs, the Go analogue of
// TcpServer::bind(addrs, fails). On any failure, every listener bound
// so far by this call is closed and fails lists every address that
// could not be bound (not merely the first), matching the original's
// all-or-nothing semantics.
func (s *Server) BindAll(addrs []netaddr.Address) (fails []netaddr.Address, err error) {
	var bound []*listener
	for _, addr := range addrs {
		l, bindErr := bindListener(addr)
		if bindErr != nil {
			fails = append(fails, addr)
			err = bindErr
			continue
		}
		bound = append(bound, l)
	}
	if len(fails) > 0 {
		for _, l := range bound {
			_ = l.close()
		}
		return fails, err
	}
	s.mu.Lock()
	s.listeners = append(s.listeners, bound...)
	s.mu.Unlock()
	return nil, nil
}

// Start launches one accept loop per bound listener, the Go analogue
// of TcpServer::start.
func (s *Server) Start() error {
	if s.Handle == nil {
		return fmt.Errorf("tcpserver: Handle must be set before Start")
	}
	if !s.stopped.CompareAndSwap(true, false) {
		return nil
	}
	s.mu.Lock()
	listeners := append([]*listener(nil), s.listeners...)
	s.mu.Unlock()
	for _, l := range listeners {
		l := l
		s.acceptWorker.Schedule(func() { s.startAccept(l) }, scheduler.AnyThread)
	}
	return nil
}

// Stop halts accept loops and closes every listener, the Go analogue
// of TcpServer::stop.
func (s *Server) Stop() {
	s.stopped.Store(true)
	s.mu.Lock()
	listeners := append([]*listener(nil), s.listeners...)
	s.mu.Unlock()
	s.acceptWorker.Schedule(func() {
		for _, l := range listeners {
			_ = l.close()
		}
	}, scheduler.AnyThread)
}

// Addrs returns the bound address of each listener, re-read via
// getsockname so a port of 0 (pick-any) resolves to the actual bound
// port.
func (s *Server) Addrs() []netaddr.Address {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]netaddr.Address, 0, len(s.listeners))
	for _, l := range s.listeners {
		if a := localAddr(l.fd); a != nil {
			out = append(out, a)
			continue
		}
		out = append(out, l.addr)
	}
	return out
}

// IsStop reports whether Stop has been called (or Start never has),
// the Go analogue of TcpServer::isStop.
func (s *Server) IsStop() bool { return s.stopped.Load() }

func (s *Server) startAccept(l *listener) {
	for !s.stopped.Load() {
		conn, err := l.accept()
		if err != nil {
			if !s.stopped.Load() {
				runtimelog.Default().Error("tcpserver: accept failed", "server", s.Name, "err", err)
			}
			continue
		}
		if s.ConnLimiter != nil && conn.RemoteAddr() != nil {
			if _, ok := s.ConnLimiter.Allow(conn.RemoteAddr().String()); !ok {
				_ = conn.Close()
				continue
			}
		}
		if s.RecvTimeout > 0 {
			conn.SetRecvTimeout(s.RecvTimeout)
		}
		s.worker.Schedule(func() { s.handleClient(conn) }, scheduler.AnyThread)
	}
}

func (s *Server) handleClient(conn *Conn) {
	defer conn.Close()
	s.Handle(conn)
}
