package fdreg

import (
	"sync"

	"github.com/joeycumines/go-fibernet/rtutil"
)

// Registry is a process-wide collection of Entry values keyed by fd
// number, the Go analogue of FdManager (a map rather than the
// original's fd-indexed vector, so closing and reopening fd numbers at
// the OS level never collides with stale slots).
type Registry struct {
	mu   sync.RWMutex
	data map[int]*Entry
}

// New constructs an empty Registry.
func New() *Registry {
	return &Registry{data: make(map[int]*Entry)}
}

var defaultRegistry = rtutil.NewOnce(New)

// Default returns the process-wide Registry, the Go analogue of the
// original's FdMgr Singleton<FdManager>.
func Default() *Registry { return defaultRegistry.Get() }

// Get returns the Entry for fd if one exists, without creating it.
func (r *Registry) Get(fd int) (*Entry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.data[fd]
	return e, ok
}

// GetOrCreate returns the Entry for fd, creating (and fstat-ing) one if
// it doesn't already exist. This is the auto_create=true path of the
// original's FdManager::get.
func (r *Registry) GetOrCreate(fd int) *Entry {
	r.mu.RLock()
	e, ok := r.data[fd]
	r.mu.RUnlock()
	if ok {
		return e
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.data[fd]; ok {
		return e
	}
	e = newEntry(fd)
	r.data[fd] = e
	return e
}

// Del removes fd's Entry from the registry, if present.
func (r *Registry) Del(fd int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.data, fd)
}
