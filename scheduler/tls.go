package scheduler

import (
	"sync"

	"github.com/joeycumines/go-fibernet/fiber"
	"github.com/joeycumines/go-fibernet/threadid"
)

var (
	currentMu sync.Mutex
	current   = map[uint64]*Scheduler{}
)

func registerScheduler(s *Scheduler) {
	currentMu.Lock()
	current[threadid.Current()] = s
	currentMu.Unlock()
}

// GetThis returns the Scheduler owning the calling goroutine's worker
// loop, or nil if the calling goroutine is not one of a Scheduler's
// workers (or a fiber body that called Adopt).
//
// Because a Fiber's body runs on its own dedicated goroutine rather
// than its worker's (see the fiber package doc), a pre-built *fiber.Fiber
// scheduled via Schedule must call Adopt with its Scheduler itself, as
// its first action, for GetThis to resolve correctly from inside it
// (until it does, GetThis returns nil there).
// Callback tasks (Schedule(func(){...}, thread)) get this for free: the
// wrapping fiber created to run them calls Adopt before invoking the
// callback.
func GetThis() *Scheduler {
	currentMu.Lock()
	defer currentMu.Unlock()
	return current[threadid.Current()]
}

// Adopt associates the calling goroutine with s, so a later GetThis call
// on the same goroutine resolves to s. See GetThis for why a fiber body
// must call this explicitly.
func Adopt(s *Scheduler) { registerScheduler(s) }

// GetMainFiber returns the current goroutine's bootstrap fiber, the Go
// analogue of the original's per-thread scheduling fiber: the implicit
// execution context a worker's run loop (or the caller thread, for a
// use_caller Scheduler) executes in between fiber swaps.
func GetMainFiber() *fiber.Fiber { return fiber.ThisFiber() }
