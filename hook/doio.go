package hook

import (
	"errors"
	"sync/atomic"

	"golang.org/x/sys/unix"

	"github.com/joeycumines/go-fibernet/fdreg"
	"github.com/joeycumines/go-fibernet/fiber"
	"github.com/joeycumines/go-fibernet/ioruntime"
)

// ErrNoIOManager is returned by DoIO when called from a goroutine that
// hasn't adopted an ioruntime.Manager (see ioruntime.Adopt): there is
// nowhere to register the event or the timeout timer.
var ErrNoIOManager = errors.New("hook: no ioruntime.Manager adopted on this goroutine")

func isTemporary(err error) bool {
	return errors.Is(err, unix.EAGAIN) || errors.Is(err, unix.EWOULDBLOCK)
}

// DoIO is the shared retry loop every blocking-shaped wrapper in this
// package builds on: try op; if it returns a temporary (EAGAIN-like)
// error, register the current fiber against fd for event (arming a
// timeout timer first, if the fd's registered timeout for timeoutKind
// is nonzero), yield, and retry once resumed.
//
// This directly mirrors the do_io template the original's HOOK_FUN
// macro expands to (a register-event/yield/retry loop around read,
// write, recv, send, ...), generalized here to any syscall-shaped
// closure rather than one per libc function. As in the original, the
// hook machinery is bypassed entirely (op runs once, its result passed
// straight through) when there's no Manager adopted on this goroutine,
// when the fd was put in non-blocking mode by the application itself
// (UserNonblock), or when the fd isn't a socket at all — only sockets
// ever get parked on an epoll readiness event. A closed fd fails fast
// with EBADF rather than retrying op against a possibly-reused fd
// number, checked both up front and again on every loop iteration
// (since hook.Close may cancel a pending wait and mark the fd closed
// while this loop is still parked).
//
// Unlike the original, a timeout here does not leave the caller to
// separately getsockopt(SO_ERROR) after a racing cancellation: DoIO
// itself tracks whether its own timer fired and returns ETIMEDOUT
// directly, so the timed-out-vs-ready race around the fd's state
// can't be observed by the caller at all.
func DoIO(fd int, event ioruntime.Event, timeoutKind int, op func() (int, error)) (int, error) {
	iom := ioruntime.GetThis()
	if iom == nil {
		return op()
	}

	entry := fdreg.Default().GetOrCreate(fd)
	if entry.UserNonblock() || !entry.IsSocket() {
		return op()
	}

	for {
		if entry.IsClosed() {
			return 0, unix.EBADF
		}

		n, err := op()
		if err == nil || !isTemporary(err) {
			return n, err
		}

		var timedOut atomic.Bool
		var tm timerCanceler
		if timeout := entry.Timeout(timeoutKind); timeout > 0 {
			tm = iom.Timers.AddTimer(uint64(timeout.Milliseconds()), func() {
				timedOut.Store(true)
				iom.CancelEvent(fd, event)
			}, false)
		}

		if err := iom.AddEvent(fd, event, nil); err != nil {
			if tm != nil {
				tm.Cancel()
			}
			return 0, err
		}

		fiber.YieldToHold()

		if tm != nil {
			tm.Cancel()
		}
		if timedOut.Load() {
			return 0, unix.ETIMEDOUT
		}
	}
}

// timerCanceler is the subset of *timer.Timer DoIO needs; declared
// locally so this file doesn't need to import the timer package just
// for a type name.
type timerCanceler interface {
	Cancel() bool
}
