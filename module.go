package vmcore

import "fmt"

// ModuleLoader is the external collaborator named in §6: `load(name)
// -> main_fn`, `unload()`. The spec treats its implementation as out
// of scope, deferring to a real loader that maps a module path to an
// executable image; this package supplies a minimal in-memory
// implementation sufficient to run the VM end-to-end, a name-to-entry
// registry rather than anything that touches the filesystem.
type ModuleLoader interface {
	// Load resolves name to the module's main entry point.
	Load(name string) (EntryFunc, error)
	// Unload releases whatever Load acquired. Called exactly once,
	// after the loaded module's main thread has terminated.
	Unload()
}

// InMemoryModuleLoader is a ModuleLoader backed by a plain
// name-to-EntryFunc registry, for embedding the VM in a single Go
// binary without a real dynamic-loading step. The tests register their
// modules this way; cmd/vmrun uses the default, empty loader and
// registers none.
type InMemoryModuleLoader struct {
	modules map[string]EntryFunc
}

// NewInMemoryModuleLoader returns an empty loader; register modules
// with Register before calling Start.
func NewInMemoryModuleLoader() *InMemoryModuleLoader {
	return &InMemoryModuleLoader{modules: make(map[string]EntryFunc)}
}

// Register adds a module under the given name.
func (l *InMemoryModuleLoader) Register(name string, entry EntryFunc) {
	l.modules[name] = entry
}

func (l *InMemoryModuleLoader) Load(name string) (EntryFunc, error) {
	entry, ok := l.modules[name]
	if !ok {
		return nil, fmt.Errorf("vmcore: no module registered under %q", name)
	}
	return entry, nil
}

func (l *InMemoryModuleLoader) Unload() {}
