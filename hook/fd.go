package hook

import (
	"time"

	"golang.org/x/sys/unix"

	"github.com/joeycumines/go-fibernet/fdreg"
	"github.com/joeycumines/go-fibernet/ioruntime"
)

// Close marks fd's fdreg.Entry closed, cancels any pending read/write
// events registered against it on the adopted ioruntime.Manager (so a
// fiber parked in DoIO on this fd wakes rather than leaking), drops the
// Entry, and closes the OS descriptor. Grounded on the original's
// hooked close, which tears down the FdCtx and any pending
// IOManager event before calling through to the real close().
func Close(fd int) error {
	if entry, ok := fdreg.Default().Get(fd); ok {
		entry.MarkClosed()
	}
	if iom := ioruntime.GetThis(); iom != nil {
		iom.CancelAll(fd)
	}
	fdreg.Default().Del(fd)
	return unix.Close(fd)
}

// Fcntl passes cmd/arg through to the real fcntl(2), additionally
// recording F_SETFL's O_NONBLOCK bit on fd's fdreg.Entry as the
// application's own non-blocking preference (distinct from the
// always-on system non-blocking mode the hook layer maintains
// underneath it), mirroring FdCtx::setUserNonblock. For an fd the hook
// layer put in non-blocking mode (SysNonblock), F_SETFL keeps
// O_NONBLOCK set at the OS level whatever arg says.
func Fcntl(fd int, cmd int, arg int) (int, error) {
	if cmd != unix.F_SETFL {
		return unix.FcntlInt(uintptr(fd), cmd, arg)
	}
	entry := fdreg.Default().GetOrCreate(fd)
	sysArg := arg
	if entry.SysNonblock() {
		sysArg |= unix.O_NONBLOCK
	}
	r, err := unix.FcntlInt(uintptr(fd), cmd, sysArg)
	if err == nil {
		entry.SetUserNonblock(arg&unix.O_NONBLOCK != 0)
	}
	return r, err
}

// IoctlSetInt passes req/value through to the real ioctl(2).
func IoctlSetInt(fd int, req uint, value int) error {
	return unix.IoctlSetInt(fd, req, value)
}

// SetsockoptTimeval intercepts SO_RCVTIMEO/SO_SNDTIMEO, recording the
// duration on fd's fdreg.Entry instead of the kernel: every socket this
// package manages is always non-blocking at the syscall level, so the
// hook layer's own DoIO retry loop is what has to honour the timeout,
// not the kernel. Any other (level, opt) pair passes through unchanged,
// matching how the original's hooked setsockopt only special-cases
// those two options.
func SetsockoptTimeval(fd int, level, opt int, tv *unix.Timeval) error {
	if level == unix.SOL_SOCKET && (opt == unix.SO_RCVTIMEO || opt == unix.SO_SNDTIMEO) {
		d := time.Duration(tv.Sec)*time.Second + time.Duration(tv.Usec)*time.Microsecond
		kind := fdreg.TimeoutRead
		if opt == unix.SO_SNDTIMEO {
			kind = fdreg.TimeoutWrite
		}
		fdreg.Default().GetOrCreate(fd).SetTimeout(kind, d)
		return nil
	}
	return unix.SetsockoptTimeval(fd, level, opt, tv)
}
