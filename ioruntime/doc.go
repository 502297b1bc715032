// Package ioruntime implements an epoll-based fiber scheduler: a
// scheduler.Scheduler whose idle hook blocks in epoll_wait (woken early
// by a tickled eventfd or an expiring timer.Manager deadline) instead of
// parking unconditionally, dispatching ready fds and expired timers back
// onto the scheduler as ordinary tasks.
//
// It is grounded on the original's IOManager (iomanager.h): FdContext's
// read/write EventContext pair becomes fdContext here, addEvent/delEvent/
// cancelEvent/cancelAll keep their names and semantics, and the epoll
// plumbing itself (EpollCreate1/EpollCtl/EpollWait, IOEvents bitmask) is
// adapted from a single-loop epoll reactor's poller (poller_linux.go) and
// its eventfd-based wake mechanism (wakeup_linux.go), generalized to the
// N-worker Scheduler this package composes.
package ioruntime
