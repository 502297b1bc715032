// Package fiber implements stackful-coroutine-shaped cooperative tasks.
//
// Go cannot make ucontext-style context switches, so a Fiber is realized
// as a dedicated goroutine parked on a pair of unbuffered rendezvous
// channels. SwapIn/SwapOut perform a blocking handoff between the calling
// goroutine (the scheduler's worker, or a thread's bootstrap fiber) and
// the fiber's goroutine, so that at any instant exactly one side is
// runnable — the same exclusivity a real stack switch would give.
package fiber
