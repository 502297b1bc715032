package ioruntime

import (
	"errors"
	"sync"

	"golang.org/x/sys/unix"

	"github.com/joeycumines/go-fibernet/fiber"
	"github.com/joeycumines/go-fibernet/rtutil"
	"github.com/joeycumines/go-fibernet/runtimelog"
	"github.com/joeycumines/go-fibernet/scheduler"
	"github.com/joeycumines/go-fibernet/timer"
)

// Standard errors.
var (
	ErrEventAlreadyRegistered = errors.New("ioruntime: event already registered for fd")
	ErrEventNotRegistered     = errors.New("ioruntime: event not registered for fd")
	ErrManagerClosed          = errors.New("ioruntime: manager closed")
)

const maxEpollEvents = 256

// Manager is a scheduler.Scheduler whose idle hook is an epoll_wait
// loop instead of a parked fiber: epoll readiness and expired timers
// are turned back into ordinary scheduled tasks. It is the Go analogue
// of the original's IOManager, which inherits from both Scheduler and
// (indirectly, via composition in this port) TimerManager.
type Manager struct {
	*scheduler.Scheduler
	Timers *timer.Manager

	epfd   int
	wakeFd int

	mu         sync.RWMutex
	fdContexts map[int]*fdContext
	pending    int64

	eventBuf [maxEpollEvents]unix.EpollEvent

	closed bool
}

// New constructs and starts epoll plumbing for a Manager with the given
// worker count; call Start to begin running it.
func New(threads int, useCaller bool, name string) (*Manager, error) {
	epfd, err := unix.EpollCreate1(unix.EPOLL_CLOEXEC)
	if err != nil {
		return nil, err
	}
	wakeFd, err := unix.Eventfd(0, unix.EFD_CLOEXEC|unix.EFD_NONBLOCK)
	if err != nil {
		_ = unix.Close(epfd)
		return nil, err
	}

	m := &Manager{
		epfd:       epfd,
		wakeFd:     wakeFd,
		fdContexts: make(map[int]*fdContext),
	}
	m.Timers = timer.New(func() { m.wakeEpoll() })
	m.Scheduler = scheduler.New(threads, useCaller, name)
	m.Scheduler.IdleFunc = m.idle
	m.Scheduler.TickleFunc = m.tickle
	m.Scheduler.StoppingExtra = m.stoppingExtra

	if err := unix.EpollCtl(epfd, unix.EPOLL_CTL_ADD, wakeFd, &unix.EpollEvent{
		Events: unix.EPOLLIN,
		Fd:     int32(wakeFd),
	}); err != nil {
		_ = unix.Close(epfd)
		_ = unix.Close(wakeFd)
		return nil, err
	}

	return m, nil
}

var defaultManager = rtutil.NewOnce(func() *Manager {
	m, err := New(1, true, "io")
	if err != nil {
		panic(err)
	}
	return m
})

// Default returns the process-wide Manager, started lazily on first use.
func Default() *Manager {
	m := defaultManager.Get()
	m.Scheduler.Start()
	return m
}

// Schedule shadows scheduler.Scheduler.Schedule purely to adopt this
// Manager (see Adopt) for plain-callback tasks, so GetThis resolves
// from inside them. Pre-built *fiber.Fiber tasks must call
// ioruntime.Adopt(m) themselves, same caveat as the scheduler package.
func (m *Manager) Schedule(fc any, thread int) {
	if cb, ok := fc.(func()); ok {
		m.Scheduler.Schedule(func() {
			Adopt(m)
			cb()
		}, thread)
		return
	}
	m.Scheduler.Schedule(fc, thread)
}

// ScheduleBatch shadows scheduler.Scheduler.ScheduleBatch purely to
// adopt this Manager for each plain-callback task in fcs, the batch
// analogue of Schedule.
func (m *Manager) ScheduleBatch(fcs []any, thread int) {
	wrapped := make([]any, len(fcs))
	for i, fc := range fcs {
		if cb, ok := fc.(func()); ok {
			cb := cb
			wrapped[i] = func() {
				Adopt(m)
				cb()
			}
			continue
		}
		wrapped[i] = fc
	}
	m.Scheduler.ScheduleBatch(wrapped, thread)
}

// Close releases the epoll and wake-eventfd file descriptors. Call
// after Stop.
func (m *Manager) Close() error {
	m.mu.Lock()
	m.closed = true
	m.mu.Unlock()
	err1 := unix.Close(m.epfd)
	err2 := unix.Close(m.wakeFd)
	if err1 != nil {
		return err1
	}
	return err2
}

// AddEvent registers cb (or, if cb is nil, the calling fiber, to be
// resumed via fiber.YieldToHold's caller) to run when fd becomes ready
// for event. Returns ErrEventAlreadyRegistered if that (fd, event) pair
// is already registered.
func (m *Manager) AddEvent(fd int, event Event, cb func()) error {
	ctx := m.getOrCreateFdContext(fd)

	ctx.mu.Lock()
	defer ctx.mu.Unlock()

	if ctx.events&event != 0 {
		return ErrEventAlreadyRegistered
	}

	op := unix.EPOLL_CTL_MOD
	if ctx.events == EventNone {
		op = unix.EPOLL_CTL_ADD
	}

	newEvents := ctx.events | event
	epollEv := &unix.EpollEvent{Events: eventsToEpoll(newEvents), Fd: int32(fd)}
	if err := unix.EpollCtl(m.epfd, op, fd, epollEv); err != nil {
		return err
	}

	ec := ctx.contextFor(event)
	ec.cb = cb
	if cb == nil {
		ec.fiber = fiber.ThisFiber()
	}
	ctx.events = newEvents
	m.mu.Lock()
	m.pending++
	m.mu.Unlock()
	return nil
}

// DelEvent unregisters event on fd without triggering its continuation.
func (m *Manager) DelEvent(fd int, event Event) bool {
	ctx := m.getFdContext(fd)
	if ctx == nil {
		return false
	}
	ctx.mu.Lock()
	defer ctx.mu.Unlock()
	if ctx.events&event == 0 {
		return false
	}
	m.unregisterLocked(ctx, event)
	ctx.contextFor(event).reset()
	return true
}

// CancelEvent unregisters event on fd and, if it was registered,
// immediately schedules its continuation (as if fd had become ready),
// the Go analogue of the original's cancelEvent.
func (m *Manager) CancelEvent(fd int, event Event) bool {
	ctx := m.getFdContext(fd)
	if ctx == nil {
		return false
	}
	ctx.mu.Lock()
	if ctx.events&event == 0 {
		ctx.mu.Unlock()
		return false
	}
	m.unregisterLocked(ctx, event)
	ec := *ctx.contextFor(event)
	ctx.contextFor(event).reset()
	ctx.mu.Unlock()

	ec.schedule(m.Scheduler)
	return true
}

// CancelAll cancels both the read and write events on fd, if any.
func (m *Manager) CancelAll(fd int) bool {
	r := m.CancelEvent(fd, EventRead)
	w := m.CancelEvent(fd, EventWrite)
	return r || w
}

func (m *Manager) unregisterLocked(ctx *fdContext, event Event) {
	remaining := ctx.events &^ event
	if remaining == EventNone {
		_ = unix.EpollCtl(m.epfd, unix.EPOLL_CTL_DEL, ctx.fd, nil)
		m.mu.Lock()
		delete(m.fdContexts, ctx.fd)
		m.mu.Unlock()
	} else {
		ev := &unix.EpollEvent{Events: eventsToEpoll(remaining), Fd: int32(ctx.fd)}
		_ = unix.EpollCtl(m.epfd, unix.EPOLL_CTL_MOD, ctx.fd, ev)
	}
	ctx.events = remaining
	m.mu.Lock()
	m.pending--
	m.mu.Unlock()
}

func (m *Manager) getFdContext(fd int) *fdContext {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.fdContexts[fd]
}

func (m *Manager) getOrCreateFdContext(fd int) *fdContext {
	m.mu.RLock()
	ctx, ok := m.fdContexts[fd]
	m.mu.RUnlock()
	if ok {
		return ctx
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if ctx, ok := m.fdContexts[fd]; ok {
		return ctx
	}
	ctx = &fdContext{fd: fd}
	m.fdContexts[fd] = ctx
	return ctx
}

func eventsToEpoll(events Event) uint32 {
	out := uint32(unix.EPOLLET)
	if events&EventRead != 0 {
		out |= unix.EPOLLIN
	}
	if events&EventWrite != 0 {
		out |= unix.EPOLLOUT
	}
	return out
}

func epollToEvents(raw uint32) Event {
	var out Event
	if raw&unix.EPOLLIN != 0 {
		out |= EventRead
	}
	if raw&unix.EPOLLOUT != 0 {
		out |= EventWrite
	}
	if raw&unix.EPOLLERR != 0 {
		out |= EventError
	}
	if raw&unix.EPOLLHUP != 0 {
		out |= EventHangup
	}
	return out
}

func (m *Manager) wakeEpoll() {
	var buf [8]byte
	buf[0] = 1
	_, _ = unix.Write(m.wakeFd, buf[:])
}

func (m *Manager) tickle() {
	m.wakeEpoll()
}

func (m *Manager) stoppingExtra() bool {
	m.mu.RLock()
	pending := m.pending
	m.mu.RUnlock()
	return pending == 0 && !m.Timers.HasTimer()
}

func (m *Manager) drainWakeFd() {
	var buf [8]byte
	for {
		_, err := unix.Read(m.wakeFd, buf[:])
		if err != nil {
			break
		}
	}
}

func (m *Manager) computeTimeoutMs() int {
	d, ok := m.Timers.NextTimeout()
	if !ok {
		return -1
	}
	ms := d.Milliseconds()
	if ms < 0 {
		ms = 0
	}
	if ms > 1<<31-1 {
		ms = 1<<31 - 1
	}
	return int(ms)
}

// idle is the scheduler.Scheduler.IdleFunc override: block in
// epoll_wait (bounded by the next timer deadline), dispatch whatever
// becomes ready or expires as scheduled tasks, then yield back to the
// worker's run loop so it can actually execute them before idling again.
func (m *Manager) idle() {
	Adopt(m)
	for !m.Scheduler.Stopping() {
		timeoutMs := m.computeTimeoutMs()

		n, err := unix.EpollWait(m.epfd, m.eventBuf[:], timeoutMs)
		if err != nil {
			if err == unix.EINTR {
				continue
			}
			runtimelog.Default().Error("ioruntime: epoll_wait failed", "err", err)
			continue
		}

		for i := 0; i < n; i++ {
			fd := int(m.eventBuf[i].Fd)
			if fd == m.wakeFd {
				m.drainWakeFd()
				continue
			}
			m.dispatchReady(fd, m.eventBuf[i].Events)
		}

		if expired := m.Timers.CollectExpired(); len(expired) > 0 {
			batch := make([]any, len(expired))
			for i, cb := range expired {
				batch[i] = cb
			}
			m.ScheduleBatch(batch, scheduler.AnyThread)
		}

		fiber.YieldToHold()
	}
}

func (m *Manager) dispatchReady(fd int, rawEvents uint32) {
	ctx := m.getFdContext(fd)
	if ctx == nil {
		return
	}

	ready := epollToEvents(rawEvents)
	// An error or hangup makes both directions "ready": the woken
	// continuation is expected to observe the condition via its own
	// next read/write/connect syscall, matching the original's
	// behaviour of triggering both contexts on EPOLLERR/EPOLLHUP.
	if ready&(EventError|EventHangup) != 0 {
		ready |= EventRead | EventWrite
	}

	ctx.mu.Lock()
	var toRun []eventContext
	for _, ev := range [...]Event{EventRead, EventWrite} {
		if ready&ev == 0 || ctx.events&ev == 0 {
			continue
		}
		ec := *ctx.contextFor(ev)
		ctx.contextFor(ev).reset()
		toRun = append(toRun, ec)
		m.unregisterLocked(ctx, ev)
	}
	ctx.mu.Unlock()

	for _, ec := range toRun {
		ec.schedule(m.Scheduler)
	}
}
