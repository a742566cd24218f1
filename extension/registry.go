// registry.go holds the extensions that registered themselves from init().
// Commands are added to the root in registration order.

package extension

import (
	"fmt"
	"slices"
	"sync"
)

var (
	mu         sync.RWMutex
	registered []Extension
)

// Register adds e. A second extension with the same name panics, as
// database/sql.Register does for drivers.
func Register(e Extension) {
	mu.Lock()
	defer mu.Unlock()

	if slices.ContainsFunc(registered, func(x Extension) bool { return x.Name() == e.Name() }) {
		panic(fmt.Sprintf("extension %q registered twice", e.Name()))
	}
	registered = append(registered, e)
}

// All returns the registered extensions in registration order.
func All() []Extension {
	mu.RLock()
	defer mu.RUnlock()
	return slices.Clone(registered)
}

// StandaloneCommands collects the command names every Standalone
// extension declares.
func StandaloneCommands() []string {
	var names []string
	for _, e := range All() {
		if s, ok := e.(Standalone); ok {
			names = append(names, s.StandaloneCommands()...)
		}
	}
	return names
}
