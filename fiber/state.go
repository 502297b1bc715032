package fiber

import "sync/atomic"

// State is the lifecycle state of a Fiber.
type State uint32

const (
	// StateInit is the state of a freshly created or reset Fiber.
	StateInit State = iota
	// StateHold is a parked Fiber: yielded voluntarily, woken by an external event.
	StateHold
	// StateExec is the single Fiber currently running on its owning goroutine.
	StateExec
	// StateTerm is a Fiber that returned normally from its entry closure.
	StateTerm
	// StateReady is a Fiber that yielded and wants to be re-queued immediately.
	StateReady
	// StateExcept is a Fiber whose entry closure panicked.
	StateExcept
)

// String returns a human-readable representation of the state.
func (s State) String() string {
	switch s {
	case StateInit:
		return "Init"
	case StateHold:
		return "Hold"
	case StateExec:
		return "Exec"
	case StateTerm:
		return "Term"
	case StateReady:
		return "Ready"
	case StateExcept:
		return "Except"
	default:
		return "Unknown"
	}
}

// atomicState wraps State in an atomic word, loaded and stored on the
// hot swap_in/swap_out/yield paths.
type atomicState struct {
	v atomic.Uint32
}

func (s *atomicState) load() State { return State(s.v.Load()) }

func (s *atomicState) store(v State) { s.v.Store(uint32(v)) }

func (s *atomicState) cas(from, to State) bool {
	return s.v.CompareAndSwap(uint32(from), uint32(to))
}
