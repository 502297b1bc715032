package ioruntime

import (
	"sync"

	"github.com/joeycumines/go-fibernet/threadid"
)

var (
	currentMu sync.Mutex
	current   = map[uint64]*Manager{}
)

// Adopt associates the calling goroutine with m, so a later GetThis call
// on the same goroutine resolves to m. See scheduler.GetThis for why a
// pre-built fiber body must call this explicitly; Manager.Schedule does
// it automatically for plain-callback tasks.
func Adopt(m *Manager) {
	currentMu.Lock()
	current[threadid.Current()] = m
	currentMu.Unlock()
}

// GetThis returns the Manager adopted by the calling goroutine, or nil.
func GetThis() *Manager {
	currentMu.Lock()
	defer currentMu.Unlock()
	return current[threadid.Current()]
}
