package ioruntime

import (
	"sync"

	"github.com/joeycumines/go-fibernet/fiber"
	"github.com/joeycumines/go-fibernet/scheduler"
)

// Event is an epoll-backed readiness condition, the Go analogue of the
// original's IOManager::Event enum.
type Event uint32

const (
	EventNone Event = 0

	// EventRead mirrors EPOLLIN.
	EventRead Event = 1 << 0
	// EventWrite mirrors EPOLLOUT.
	EventWrite Event = 1 << 2
	// EventError and EventHangup are never requested, only observed:
	// epoll reports them unconditionally, and this package treats either
	// as "both read and write are now ready" so a blocked hook-layer
	// do-IO loop gets woken to observe the error via the next syscall.
	EventError  Event = 1 << 3
	EventHangup Event = 1 << 4
)

// eventContext is one half (read or write) of an fdContext, the Go
// analogue of IOManager::FdContext::EventContext: whatever should run
// when this fd becomes ready for this event - either resume an
// already-suspended Fiber, or run a plain callback.
type eventContext struct {
	fiber *fiber.Fiber
	cb    func()
}

func (c *eventContext) reset() {
	c.fiber = nil
	c.cb = nil
}

// schedule dispatches this context's work onto s, preferring the fiber
// form (resuming a parked fiber) over the callback form.
func (c eventContext) schedule(s *scheduler.Scheduler) {
	if c.fiber != nil {
		s.Schedule(c.fiber, scheduler.AnyThread)
		return
	}
	if c.cb != nil {
		s.Schedule(c.cb, scheduler.AnyThread)
	}
}

// fdContext tracks the registered events and pending continuations for
// one file descriptor.
type fdContext struct {
	mu     sync.Mutex
	fd     int
	events Event
	read   eventContext
	write  eventContext
}

func (c *fdContext) contextFor(event Event) *eventContext {
	switch event {
	case EventRead:
		return &c.read
	case EventWrite:
		return &c.write
	default:
		return nil
	}
}
