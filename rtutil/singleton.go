package rtutil

import "sync"

// Once lazily constructs and caches a single process-wide instance of T,
// mirroring the original's Singleton<T> helper: each subsystem in this
// repo that uses it (the default logger, the default fd registry, the
// default IO manager) wants exactly one shared instance created on first
// use.
type Once[T any] struct {
	once sync.Once
	new  func() T
	val  T
}

// NewOnce returns a Once that constructs its value with newFn on first Get.
func NewOnce[T any](newFn func() T) *Once[T] {
	return &Once[T]{new: newFn}
}

// Get returns the singleton instance, constructing it on first call.
func (o *Once[T]) Get() T {
	o.once.Do(func() {
		o.val = o.new()
	})
	return o.val
}
