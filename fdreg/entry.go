package fdreg

import (
	"sync"
	"time"

	"golang.org/x/sys/unix"
)

// Entry is the per-fd metadata record, the Go analogue of FdCtx.
type Entry struct {
	mu sync.RWMutex

	fd int

	isInit       bool
	isSocket     bool
	sysNonblock  bool
	userNonblock bool
	isClosed     bool

	recvTimeout time.Duration
	sendTimeout time.Duration
}

// newEntry constructs and initializes an Entry for fd, inspecting it via
// fstat/fcntl the way FdCtx's constructor does.
func newEntry(fd int) *Entry {
	e := &Entry{fd: fd}
	e.init()
	return e
}

// init mirrors FdCtx::init: fstat to learn whether fd is a socket, and,
// for sockets not already in non-blocking mode, put them there (the
// hook layer always drives sockets itself via epoll readiness, never
// blocking the OS thread).
func (e *Entry) init() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.isInit {
		return
	}

	var st unix.Stat_t
	if err := unix.Fstat(e.fd, &st); err != nil {
		e.isInit = true
		return
	}

	e.isSocket = st.Mode&unix.S_IFMT == unix.S_IFSOCK

	if e.isSocket {
		flags, err := unix.FcntlInt(uintptr(e.fd), unix.F_GETFL, 0)
		if err == nil && flags&unix.O_NONBLOCK == 0 {
			_, _ = unix.FcntlInt(uintptr(e.fd), unix.F_SETFL, flags|unix.O_NONBLOCK)
		}
		e.sysNonblock = true
	}

	e.isInit = true
}

// FD returns the underlying file descriptor number.
func (e *Entry) FD() int { return e.fd }

// IsInit reports whether init has completed (always true once returned
// from Registry.Get/GetOrCreate).
func (e *Entry) IsInit() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.isInit
}

// IsSocket reports whether fd identifies a socket (as opposed to a
// regular file, pipe, or other descriptor kind).
func (e *Entry) IsSocket() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.isSocket
}

// IsClosed reports whether Close has been recorded against this Entry.
func (e *Entry) IsClosed() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.isClosed
}

// MarkClosed records that fd has been closed; the hook layer calls this
// from its Close wrapper so later operations on a stale Entry fail
// fast rather than touching a reused fd number.
func (e *Entry) MarkClosed() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.isClosed = true
}

// SetUserNonblock records that the application itself requested
// non-blocking mode via Fcntl/Ioctl, distinct from the always-on
// system non-blocking mode (SysNonblock) the hook layer maintains
// underneath it.
func (e *Entry) SetUserNonblock(v bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.userNonblock = v
}

// UserNonblock reports the flag set by SetUserNonblock.
func (e *Entry) UserNonblock() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.userNonblock
}

// SysNonblock reports whether the hook layer has put fd into
// non-blocking mode at the OS level.
func (e *Entry) SysNonblock() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.sysNonblock
}

// Timeout kind constants, matching SO_RCVTIMEO/SO_SNDTIMEO's role in
// the original's FdCtx::setTimeout(int type, ...).
const (
	TimeoutRead = unix.SO_RCVTIMEO
	TimeoutWrite = unix.SO_SNDTIMEO
)

// SetTimeout records a read (TimeoutRead) or write (TimeoutWrite)
// deadline duration for this fd, consulted by the hook layer's do-IO
// retry loop.
func (e *Entry) SetTimeout(kind int, d time.Duration) {
	e.mu.Lock()
	defer e.mu.Unlock()
	switch kind {
	case TimeoutRead:
		e.recvTimeout = d
	case TimeoutWrite:
		e.sendTimeout = d
	}
}

// Timeout returns the duration previously set via SetTimeout for kind,
// or 0 if none was set.
func (e *Entry) Timeout(kind int) time.Duration {
	e.mu.RLock()
	defer e.mu.RUnlock()
	switch kind {
	case TimeoutRead:
		return e.recvTimeout
	case TimeoutWrite:
		return e.sendTimeout
	default:
		return 0
	}
}
