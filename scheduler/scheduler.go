package scheduler

import (
	"sync"
	"sync/atomic"

	"github.com/joeycumines/go-fibernet/fiber"
	"github.com/joeycumines/go-fibernet/rtconfig"
	"github.com/joeycumines/go-fibernet/runtimelog"
)

// AnyThread is the task affinity value meaning "any idle worker".
const AnyThread = -1

type task struct {
	fiber *fiber.Fiber
	cb    func()
	thread int
}

func (t task) empty() bool { return t.fiber == nil && t.cb == nil }

// Scheduler is a fixed-size pool of worker goroutines draining a shared
// FIFO task queue, each task either a pre-built Fiber or a plain
// callback wrapped in one at dispatch time.
type Scheduler struct {
	name      string
	threadCount int
	useCaller bool

	mu    sync.Mutex
	tasks []task

	rootFiber *fiber.Fiber

	activeThreadCount atomic.Int64
	idleThreadCount   atomic.Int64

	autoStop  atomic.Bool
	stopFlag  atomic.Bool

	tickleCh chan struct{}

	wg        sync.WaitGroup
	startOnce sync.Once
	stopOnce  sync.Once

	// IdleFunc, TickleFunc, and StoppingExtra let a composing type (e.g.
	// ioruntime.Manager) stand in for the original's virtual
	// idle()/tickle()/stopping() overrides, without Go's lack of
	// virtual-by-default methods getting in the way: Scheduler calls
	// these instead of its own built-ins when set, and StoppingExtra is
	// ANDed with the base queue-drained check rather than replacing it
	// outright (an IOManager is never "stopping" while fds are still
	// registered, even with an empty task queue).
	IdleFunc      func()
	TickleFunc    func()
	StoppingExtra func() bool
}

// New constructs a Scheduler with the given worker count, matching the
// original's Scheduler(threads, use_caller, name) constructor. threads
// <= 0 selects rtconfig.SchedulerThreads, and 1 if that is also <= 0.
// useCaller reserves one "thread" to be the
// goroutine that calls Stop, rather than a dedicated spawned goroutine;
// that goroutine only runs scheduler work while blocked inside Stop.
func New(threads int, useCaller bool, name string) *Scheduler {
	if threads <= 0 {
		threads = rtconfig.SchedulerThreads.Get()
		if threads <= 0 {
			threads = 1
		}
	}
	s := &Scheduler{
		name:        name,
		threadCount: threads,
		useCaller:   useCaller,
		tickleCh:    make(chan struct{}, 1),
	}
	s.stopFlag.Store(true)
	if useCaller {
		s.rootFiber = fiber.Create(func() { s.run(threads - 1) }, 0, true)
	}
	return s
}

// Name returns the pool's display name.
func (s *Scheduler) Name() string { return s.name }

// ActiveThreadCount returns the number of workers currently executing a
// task (as opposed to idling).
func (s *Scheduler) ActiveThreadCount() int64 { return s.activeThreadCount.Load() }

// IdleThreadCount returns the number of workers currently parked in idle.
func (s *Scheduler) IdleThreadCount() int64 { return s.idleThreadCount.Load() }

// Start spawns the scheduler's worker goroutines. A Scheduler created
// with useCaller=true reserves one fewer goroutine, since that worker
// slot is run inline by Stop on the calling goroutine.
func (s *Scheduler) Start() {
	s.startOnce.Do(func() {
		s.stopFlag.Store(false)
		n := s.threadCount
		if s.useCaller {
			n--
		}
		for i := 0; i < n; i++ {
			idx := i
			s.wg.Add(1)
			go func() {
				defer s.wg.Done()
				s.run(idx)
			}()
		}
	})
}

// Stop requests the scheduler wind down: no new tasks may be scheduled
// (schedule after Stop is a no-op once draining completes), and Stop
// blocks until every worker has observed Stopping() and returned. If
// the Scheduler uses the caller thread, that worker's share of the work
// runs synchronously inside this call.
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		s.autoStop.Store(true)
		s.stopFlag.Store(true)
		s.tickle()
		if s.useCaller && s.rootFiber != nil {
			s.rootFiber.SwapIn()
		}
		s.wg.Wait()
	})
}

// Schedule enqueues fc (a *fiber.Fiber or a func()) for execution,
// optionally pinned to a specific worker index via thread (AnyThread
// for no affinity), waking an idle worker if the queue was empty.
func (s *Scheduler) Schedule(fc any, thread int) {
	s.mu.Lock()
	needTickle := s.scheduleNoLock(fc, thread)
	s.mu.Unlock()
	if needTickle {
		s.tickle()
	}
}

// ScheduleBatch enqueues every entry in fcs (each a *fiber.Fiber or a
// func()) under a single lock acquisition, tickling at most once for
// the whole batch — the Go analogue of the original's
// schedule_batch(iter), which enqueues a range before a single
// tickle() rather than one per element.
func (s *Scheduler) ScheduleBatch(fcs []any, thread int) {
	if len(fcs) == 0 {
		return
	}
	s.mu.Lock()
	needTickle := len(s.tasks) == 0
	for _, fc := range fcs {
		s.scheduleNoLock(fc, thread)
	}
	s.mu.Unlock()
	if needTickle {
		s.tickle()
	}
}

func (s *Scheduler) scheduleNoLock(fc any, thread int) bool {
	needTickle := len(s.tasks) == 0
	var t task
	switch v := fc.(type) {
	case *fiber.Fiber:
		t = task{fiber: v, thread: thread}
	case func():
		t = task{cb: v, thread: thread}
	default:
		panic("scheduler: Schedule requires a *fiber.Fiber or func()")
	}
	if !t.empty() {
		s.tasks = append(s.tasks, t)
	}
	return needTickle
}

// Stopping reports whether the scheduler has been asked to stop and has
// drained all pending and in-flight work.
func (s *Scheduler) Stopping() bool {
	if !s.autoStop.Load() || !s.stopFlag.Load() {
		return false
	}
	s.mu.Lock()
	empty := len(s.tasks) == 0
	s.mu.Unlock()
	if !empty || s.activeThreadCount.Load() != 0 {
		return false
	}
	if s.StoppingExtra != nil {
		return s.StoppingExtra()
	}
	return true
}

// tickle signals idle workers that work has arrived: it calls TickleFunc
// when set, otherwise leaves one token in the built-in tickle channel
// (buffered by one, dropped if a token is already waiting), matching the
// original's tickle() being a hint rather than a guaranteed wakeup.
func (s *Scheduler) tickle() {
	if s.TickleFunc != nil {
		s.TickleFunc()
		return
	}
	select {
	case s.tickleCh <- struct{}{}:
	default:
	}
}

// TickleChan exposes the built-in tickle channel so a TickleFunc
// override (e.g. ioruntime's, which also has to wake an epoll_wait) can
// still satisfy workers parked via the default idle loop.
func (s *Scheduler) TickleChan() <-chan struct{} { return s.tickleCh }

// popTask removes and returns the first queued task usable by workerIdx
// (affinity AnyThread or a match), in FIFO order among eligible tasks.
func (s *Scheduler) popTask(workerIdx int) (task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, t := range s.tasks {
		if t.thread == AnyThread || t.thread == workerIdx {
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			return t, true
		}
	}
	return task{}, false
}

// run is the worker goroutine body: pop-and-run until Stopping(),
// parking in idle between polls. workerIdx identifies this worker for
// Schedule's thread-affinity parameter.
func (s *Scheduler) run(workerIdx int) {
	registerScheduler(s)
	defer fiber.ForgetCurrentThread()

	runIdle := s.idle
	if s.IdleFunc != nil {
		runIdle = s.IdleFunc
	}
	idleFiber := fiber.Create(runIdle, 0, false)

	for {
		t, ok := s.popTask(workerIdx)
		if ok {
			s.activeThreadCount.Add(1)
			s.runTask(t)
			s.activeThreadCount.Add(-1)
			continue
		}

		if idleFiber.State() == fiber.StateTerm || idleFiber.State() == fiber.StateExcept {
			if s.Stopping() {
				return
			}
			idleFiber = fiber.Create(runIdle, 0, false)
		}

		s.idleThreadCount.Add(1)
		idleFiber.SwapIn()
		s.idleThreadCount.Add(-1)

		if s.Stopping() {
			return
		}
	}
}

func (s *Scheduler) runTask(t task) {
	defer func() {
		if r := recover(); r != nil {
			runtimelog.Default().Error("scheduler: task panicked", "scheduler", s.name, "panic", r)
		}
	}()
	if t.fiber != nil {
		if t.fiber.State() != fiber.StateExec {
			t.fiber.SwapIn()
		}
		return
	}
	cb := t.cb
	fiber.Create(func() {
		Adopt(s)
		cb()
	}, 0, false).SwapIn()
}

// idle is the default idle hook: until Stopping() reports true, it
// consumes a pending tickle if there is one and otherwise yields back to
// the run loop (fiber.YieldToHold), which polls the queue again. It never
// blocks, so an idle worker keeps its goroutine busy. It runs as a Fiber
// (see run) so it can yield mid-loop.
func (s *Scheduler) idle() {
	for !s.Stopping() {
		select {
		case <-s.tickleCh:
		default:
			fiber.YieldToHold()
		}
	}
}
