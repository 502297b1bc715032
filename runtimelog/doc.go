// Package runtimelog is a thin facade over the logiface generic structured
// logging core, wired to the stumpy JSON backend by default. It exists so
// the fiber, scheduler, ioruntime, rtconfig, and tcpserver packages can log a
// message plus a flat list of key/value pairs without each one learning
// logiface's generic Builder[E] chain directly.
package runtimelog
