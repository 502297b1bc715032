// Package threadid provides a fast-ish probe for the identity of the
// calling goroutine, standing in for the OS thread-id probe the
// original's gettid() wrapper provides.
//
// Go exposes no public goroutine-id API, so this package parses the
// header line of runtime.Stack, the same technique every goroutine-id
// shim in the ecosystem resorts to absent cgo. It is deliberately the
// one place in this repo that pays that cost, so every other package
// that needs a "current logical thread" key (fiber's thread-locals,
// scheduler worker identification) can call threadid.Current().
package threadid
