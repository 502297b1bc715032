package hook

import (
	"errors"
	"sync/atomic"
	"time"

	"golang.org/x/sys/unix"

	"github.com/joeycumines/go-fibernet/fdreg"
	"github.com/joeycumines/go-fibernet/fiber"
	"github.com/joeycumines/go-fibernet/ioruntime"
	"github.com/joeycumines/go-fibernet/rtconfig"
)

// ConnectWithTimeout connects fd (already non-blocking) to sa, waiting
// at most timeout for the connection to complete (0 falls back to the
// fd's registered write timeout, then to rtconfig.TCPConnectTimeout;
// the wait is unbounded only if all three are 0). It is
// grounded on Socket::connect's use of ::connect_with_timeout plus
// Socket::cancelRead/getError's getsockopt(SO_ERROR) pattern in
// socket.cpp.
//
// Unlike that pattern, the timeout-vs-completion race is resolved
// before ever touching SO_ERROR: DoIO's sibling logic here records
// whether its own timer fired and returns ETIMEDOUT straight away,
// so a connection that completes (or fails) in the same instant the
// deadline expires can never be misreported via a stale SO_ERROR read
// on a cancelled or since-reused fd.
func ConnectWithTimeout(fd int, sa unix.Sockaddr, timeout time.Duration) error {
	err := unix.Connect(fd, sa)
	if err == nil {
		return nil
	}
	if !errors.Is(err, unix.EINPROGRESS) {
		return err
	}

	iom := ioruntime.GetThis()
	if iom == nil {
		return err
	}

	entry := fdreg.Default().GetOrCreate(fd)
	if timeout <= 0 {
		timeout = entry.Timeout(fdreg.TimeoutWrite)
	}
	if timeout <= 0 {
		timeout = rtconfig.TCPConnectTimeout.Get()
	}

	var timedOut atomic.Bool
	var tm timerCanceler
	if timeout > 0 {
		tm = iom.Timers.AddTimer(uint64(timeout.Milliseconds()), func() {
			timedOut.Store(true)
			iom.CancelEvent(fd, ioruntime.EventWrite)
		}, false)
	}

	if err := iom.AddEvent(fd, ioruntime.EventWrite, nil); err != nil {
		if tm != nil {
			tm.Cancel()
		}
		return err
	}

	fiber.YieldToHold()

	if tm != nil {
		tm.Cancel()
	}
	if timedOut.Load() {
		return unix.ETIMEDOUT
	}

	soErr, gerr := unix.GetsockoptInt(fd, unix.SOL_SOCKET, unix.SO_ERROR)
	if gerr != nil {
		return gerr
	}
	if soErr != 0 {
		return unix.Errno(soErr)
	}
	return nil
}
