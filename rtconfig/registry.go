package rtconfig

import (
	"fmt"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// validNameChars mirrors the original's VALID_CHAR set: lower-case
// letters, digits, '.', and '_'. Names outside this set still register
// and load, but trigger a logged warning (LoadYAML), matching the
// original's ListAllMember behaviour of warning-but-proceeding.
const validNameChars = "abcdefghijklmnopqrstuvwxyz._0123456789"

type varBase interface {
	Name() string
	loadYAML(node *yaml.Node) error
}

var (
	registryMu sync.RWMutex
	registry   = map[string]varBase{}
)

func normalizeName(name string) string { return strings.ToLower(name) }

func hasInvalidChars(name string) bool {
	return strings.IndexFunc(name, func(r rune) bool {
		return !strings.ContainsRune(validNameChars, r)
	}) >= 0
}

// Register declares a configuration variable with the given name and
// default value. A second Register call for the same name returns the
// existing Var if T matches, or panics (a programmer error: two packages
// disagreeing on a config key's type) otherwise.
func Register[T any](name string, defaultValue T, description string) *Var[T] {
	name = normalizeName(name)

	registryMu.Lock()
	defer registryMu.Unlock()

	if existing, ok := registry[name]; ok {
		v, ok := existing.(*Var[T])
		if !ok {
			panic(fmt.Sprintf("rtconfig: %q already registered with a different type", name))
		}
		return v
	}

	v := &Var[T]{
		name:        name,
		description: description,
		val:         defaultValue,
		listeners:   map[uint64]Listener[T]{},
	}
	registry[name] = v
	return v
}

// Lookup returns the registered Var for name (case-insensitive) asserted
// to type T, and whether it was found with a matching type.
func Lookup[T any](name string) (*Var[T], bool) {
	registryMu.RLock()
	existing, ok := registry[normalizeName(name)]
	registryMu.RUnlock()
	if !ok {
		return nil, false
	}
	v, ok := existing.(*Var[T])
	return v, ok
}

// Names returns every registered configuration key.
func Names() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	out := make([]string, 0, len(registry))
	for name := range registry {
		out = append(out, name)
	}
	return out
}
