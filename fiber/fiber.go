package fiber

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/joeycumines/go-fibernet/rtconfig"
	"github.com/joeycumines/go-fibernet/rtutil"
	"github.com/joeycumines/go-fibernet/runtimelog"
	"github.com/joeycumines/go-fibernet/threadid"
)

// DefaultStackSize matches the 128 KiB default for fiber.stack_size; Create
// uses it when both its stackSize argument and rtconfig.FiberStackSize
// are zero.
const DefaultStackSize = 128 * 1024

var idCounter atomic.Uint64
var totalFibers atomic.Int64

// Fiber is a stackful-coroutine-shaped cooperative task; see the package
// doc for how SwapIn/SwapOut are realized over goroutines and channels.
type Fiber struct {
	id         uint64
	stackSize  uint32
	state      atomicState
	useCaller  bool
	entryMu    sync.Mutex
	entry      func()
	resumeCh   chan struct{}
	backCh     chan struct{}
	startOnce  sync.Once
	panicValue any

	// bootstrap marks the stackless per-thread fiber lazily created by
	// ThisFiber; it is never spawned or swapped, only ever returned as
	// the default "current fiber" for a thread that hasn't run one yet.
	bootstrap bool
}

// Create allocates a new Fiber wrapping entry. stackSize of 0 selects
// rtconfig.FiberStackSize (DefaultStackSize if that is also 0); it is
// recorded for API parity with the original but does not bound a real
// stack, since the underlying execution unit is a goroutine.
func Create(entry func(), stackSize uint32, useCaller bool) *Fiber {
	if stackSize == 0 {
		stackSize = rtconfig.FiberStackSize.Get()
	}
	if stackSize == 0 {
		stackSize = DefaultStackSize
	}
	f := &Fiber{
		id:        idCounter.Add(1),
		stackSize: stackSize,
		useCaller: useCaller,
		entry:     entry,
		resumeCh:  make(chan struct{}),
		backCh:    make(chan struct{}),
	}
	f.state.store(StateInit)
	totalFibers.Add(1)
	return f
}

// ID returns the fiber's monotonically assigned identifier.
func (f *Fiber) ID() uint64 { return f.id }

// State returns the fiber's current lifecycle state.
func (f *Fiber) State() State { return f.state.load() }

// PanicValue returns the value recovered from a panicking entry closure,
// or nil if the fiber has not entered StateExcept.
func (f *Fiber) PanicValue() any { return f.panicValue }

// UsesCallerThread reports whether this fiber was created with
// use_caller=true (selecting the bootstrap-paired trampoline).
func (f *Fiber) UsesCallerThread() bool { return f.useCaller }

// TotalFibers returns the number of Fiber values created so far, the Go
// analogue of a static Fiber::TotalFibers counter.
func TotalFibers() int64 { return totalFibers.Load() }

// Reset rebinds entry to a fresh closure, reusing this Fiber's goroutine
// and channels. Requires state is one of {Init, Term, Except}.
func (f *Fiber) Reset(entry func()) {
	switch f.state.load() {
	case StateInit, StateTerm, StateExcept:
	default:
		panic(fmt.Sprintf("fiber: Reset called on fiber %d in state %s", f.id, f.state.load()))
	}
	f.entryMu.Lock()
	f.entry = entry
	f.entryMu.Unlock()
	f.panicValue = nil
	f.state.store(StateInit)
}

// ensureStarted lazily spawns the dedicated goroutine hosting this
// fiber's execution context. It runs exactly once per Fiber value: Reset
// reuses the same goroutine/channel pair, just as the original reuses
// the same stack allocation.
func (f *Fiber) ensureStarted() {
	f.startOnce.Do(func() {
		go f.loop()
	})
}

// loop is the fiber's dedicated goroutine body: the Go realization of
// the original's MainFunc/CallerMainFunc trampoline. It blocks on
// resumeCh between activations, runs the bound entry closure once per
// activation (which may itself block mid-flight inside yieldAndPark,
// below, and be resumed many times before returning), and reports
// completion via backCh.
func (f *Fiber) loop() {
	for range f.resumeCh {
		registerCurrent(f)

		func() {
			defer func() {
				if r := recover(); r != nil {
					f.panicValue = r
					f.state.store(StateExcept)
					runtimelog.Default().Error("fiber panic",
						"fiber_id", f.id, "panic", r, "stack", rtutil.CaptureStack())
				}
			}()

			f.entryMu.Lock()
			entry := f.entry
			f.entryMu.Unlock()

			entry()

			if f.state.load() == StateExec {
				f.state.store(StateTerm)
			}
		}()

		f.entry = nil
		f.backCh <- struct{}{}
	}
}

// SwapIn transitions the fiber to Exec and runs it on its dedicated
// goroutine until the next yield or completion, blocking the caller for
// the duration. Requires the fiber's state is not already Exec.
func (f *Fiber) SwapIn() {
	if f.state.load() == StateExec {
		panic(fmt.Sprintf("fiber: SwapIn called on fiber %d already in Exec", f.id))
	}
	f.ensureStarted()
	f.state.store(StateExec)
	registerCurrent(f)
	f.resumeCh <- struct{}{}
	<-f.backCh
}

// SwapOut is the inverse of SwapIn. It is called from inside the fiber's
// own entry closure, on its dedicated goroutine: it hands control back to
// whichever goroutine called SwapIn, then blocks until the next SwapIn
// resumes this exact point in the call stack.
//
// Because a goroutine cannot be suspended and resumed mid-stack other
// than by blocking on a channel, yield points in this port are
// necessarily calls to SwapOut (via YieldToHold/YieldToReady): the do-IO
// retry loop in the hook layer is exactly this shape (try, SwapOut,
// retry).
func (f *Fiber) SwapOut() {
	f.backCh <- struct{}{}
	<-f.resumeCh
	f.state.store(StateExec)
	registerCurrent(f)
}

// Call is SwapIn paired with the thread's bootstrap fiber instead of a
// scheduler main fiber; in this port the distinction is cosmetic (both
// paths are the same channel handoff), kept for API parity with §6.
func (f *Fiber) Call() { f.SwapIn() }

// Back is SwapOut paired with the thread's bootstrap fiber; see Call.
func (f *Fiber) Back() { f.SwapOut() }
