// Package hook provides the fiber-aware syscall wrappers a cooperative
// server needs: Sleep, ConnectWithTimeout, Accept, the read/write
// family, Close, Fcntl, IoctlSetInt, and SetsockoptTimeval. Accept and
// the read/write family retry their underlying syscall through a
// try/register-event/yield/retry loop (DoIO) instead of blocking the OS
// thread; ConnectWithTimeout parks the fiber on a write event and Sleep
// on a timer; Close, Fcntl, IoctlSetInt and SetsockoptTimeval make their
// syscall once and update the fd's fdreg.Entry. These stand in for the
// original's extern "C" sleep/connect/accept/... overrides, implemented
// there via dlsym(RTLD_NEXT, ...) libc interposition (hook.cpp/hook.h).
//
// Go has no equivalent to LD_PRELOAD-style symbol interposition (no
// dlsym, and the stdlib's net/os syscalls aren't swappable per-call),
// so this package is deliberately an explicit API: callers running
// inside a fiber, with an ioruntime.Manager reachable via
// ioruntime.GetThis, call hook.Read/hook.Write/... instead of the
// stdlib equivalents. There is no hook_enable/disable toggle: the
// original's was solely about choosing between the hooked and
// raw-dlsym'd libc symbol, a distinction that doesn't exist once
// there's no interposition to toggle.
package hook
