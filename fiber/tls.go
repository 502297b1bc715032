package fiber

import (
	"sync"

	"github.com/joeycumines/go-fibernet/threadid"
)

// Thread-locals, emulated as maps keyed by the calling goroutine's id
// (see threadid and Design Notes §9: "thread-locals as process-wide
// state"). Exactly one goroutine is ever "live" per logical thread at a
// time in this port (SwapIn/SwapOut block the non-running side), so a
// goroutine-id key is equivalent to the OS thread-local the original
// uses.
var (
	currentMu    sync.Mutex
	current      = map[uint64]*Fiber{}
	bootstrapMu  sync.Mutex
	bootstrapSet = map[uint64]*Fiber{}
)

func registerCurrent(f *Fiber) {
	currentMu.Lock()
	current[threadid.Current()] = f
	currentMu.Unlock()
}

// ThisFiber returns the current fiber for the calling goroutine,
// lazily creating a stackless bootstrap fiber (state Exec) if none
// exists yet, the Go analogue of Fiber::GetThis.
func ThisFiber() *Fiber {
	gid := threadid.Current()

	currentMu.Lock()
	f, ok := current[gid]
	currentMu.Unlock()
	if ok {
		return f
	}

	bootstrapMu.Lock()
	defer bootstrapMu.Unlock()
	if f, ok := bootstrapSet[gid]; ok {
		registerCurrent(f)
		return f
	}

	f = &Fiber{
		id:        idCounter.Add(1),
		bootstrap: true,
	}
	f.state.store(StateExec)
	bootstrapSet[gid] = f
	registerCurrent(f)
	return f
}

// IsBootstrap reports whether f is a lazily-created per-thread bootstrap
// fiber rather than a user-created one.
func (f *Fiber) IsBootstrap() bool { return f.bootstrap }

// YieldToHold parks the current fiber (state Hold) and swaps back to
// whichever goroutine most recently swapped it in. Some external event
// (a timer, an fd becoming ready) must re-schedule it for it to resume.
func YieldToHold() {
	f := ThisFiber()
	f.state.store(StateHold)
	f.SwapOut()
}

// YieldToReady parks the current fiber (state Ready) and swaps back;
// unlike YieldToHold, a Ready fiber is expected to be re-queued by the
// scheduler run loop as soon as it observes the state change.
func YieldToReady() {
	f := ThisFiber()
	f.state.store(StateReady)
	f.SwapOut()
}

// forgetThread removes the thread-local entries for the calling
// goroutine. Workers call this on exit so a later, unrelated goroutine
// that happens to reuse the same goroutine id (impossible in practice,
// since ids are never reused by the Go runtime within a process, but
// cheap to guard) starts clean.
func forgetThread() {
	gid := threadid.Current()
	currentMu.Lock()
	delete(current, gid)
	currentMu.Unlock()
	bootstrapMu.Lock()
	delete(bootstrapSet, gid)
	bootstrapMu.Unlock()
}

// ForgetCurrentThread is exported for schedulers (and tests) that retire
// the calling goroutine's thread-local state explicitly.
func ForgetCurrentThread() { forgetThread() }
