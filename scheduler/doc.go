// Package scheduler implements an N-M cooperative fiber scheduler: a
// fixed pool of worker goroutines pulling work off a shared FIFO queue
// of fiber.Fiber values (or plain callbacks, wrapped in a fiber on the
// fly), with optional per-task thread affinity and pluggable idle/tickle
// hooks.
//
// It is grounded on the original scheduler.h's Scheduler class: the
// mutex-guarded task list, FiberAndThread affinity wrapper, tickle/idle
// virtual hooks, and use_caller thread participation. Mid-function
// suspension is realized the same way fiber is: a goroutine per worker,
// with idle() itself implemented as a Fiber that yields back to the run
// loop (fiber.YieldToHold). The built-in idle never blocks: a worker with
// no work keeps cycling between its run loop and idle until work arrives
// or Stop is called. A composing type that needs blocking idle, such as
// ioruntime.Manager, supplies its own IdleFunc.
package scheduler
