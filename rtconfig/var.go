package rtconfig

import (
	"fmt"
	"reflect"
	"sync"

	"gopkg.in/yaml.v3"
)

// Listener is notified with a Var's old and new value whenever Set (or a
// YAML load) changes it.
type Listener[T any] func(oldVal, newVal T)

// Var is a named, typed, hot-reloadable configuration value, the generic
// equivalent of the original ConfigVar<T> template.
type Var[T any] struct {
	name        string
	description string

	mu        sync.RWMutex
	val       T
	listeners map[uint64]Listener[T]
	nextID    uint64
}

// Name returns the lower-cased, dotted configuration key.
func (v *Var[T]) Name() string { return v.name }

// Description returns the human-readable description given at registration.
func (v *Var[T]) Description() string { return v.description }

// Get returns the current value.
func (v *Var[T]) Get() T {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.val
}

// String renders the current value with fmt's default verb, for display
// and debugging (the toString equivalent).
func (v *Var[T]) String() string {
	return fmt.Sprintf("%v", v.Get())
}

// Set assigns a new value, notifying listeners (outside the lock, so a
// listener may itself call Get/Set without deadlocking) if it differs
// from the previous one by reflect.DeepEqual.
func (v *Var[T]) Set(newVal T) {
	v.mu.Lock()
	old := v.val
	changed := !reflect.DeepEqual(old, newVal)
	if changed {
		v.val = newVal
	}
	var cbs []Listener[T]
	if changed {
		cbs = make([]Listener[T], 0, len(v.listeners))
		for _, cb := range v.listeners {
			cbs = append(cbs, cb)
		}
	}
	v.mu.Unlock()

	for _, cb := range cbs {
		cb(old, newVal)
	}
}

// AddListener registers cb to be called on every value change, returning
// a key usable with RemoveListener.
func (v *Var[T]) AddListener(cb Listener[T]) uint64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.nextID++
	id := v.nextID
	if v.listeners == nil {
		v.listeners = make(map[uint64]Listener[T])
	}
	v.listeners[id] = cb
	return id
}

// RemoveListener unregisters a listener previously added by AddListener.
func (v *Var[T]) RemoveListener(key uint64) {
	v.mu.Lock()
	defer v.mu.Unlock()
	delete(v.listeners, key)
}

// ClearListeners removes all registered listeners.
func (v *Var[T]) ClearListeners() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.listeners = nil
}

// loadYAML decodes node into T and applies it via Set, satisfying varBase.
func (v *Var[T]) loadYAML(node *yaml.Node) error {
	var nv T
	if err := node.Decode(&nv); err != nil {
		return err
	}
	v.Set(nv)
	return nil
}
