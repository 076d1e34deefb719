package nsconf

import "sync"

var (
	defaultMu      sync.Mutex
	defaultManager *Manager
)

// Default returns the process-wide manager, creating it on first use.
// Library modules that declare their namespaces at init time share this
// instance. Applications wanting explicit lifecycle control should
// construct their own Manager with NewManager and inject it instead.
func Default() *Manager {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultManager == nil {
		defaultManager = NewManager()
	}
	return defaultManager
}

// ResetDefault discards the process-wide manager so the next Default call
// builds a fresh one. Intended for test isolation.
func ResetDefault() {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultManager = nil
}

// GetConfig returns the named namespace from the process-wide manager,
// creating it if absent; seed properties are declared only on creation.
func GetConfig(fqname string, seed map[string]PropertyOptions) (*Namespace, error) {
	return Default().GetOrCreate(fqname, seed)
}

// GetNearest returns the namespace for fqname, or its nearest registered
// dotted-prefix ancestor, ending at the reserved default namespace.
func GetNearest(fqname string) (*Namespace, error) {
	return Default().GetExisting(fqname, true)
}

// GetRecord returns the record named by a fully qualified
// "namespace.dotted.path.property" string from the process-wide manager.
func GetRecord(fqpath string, orNearest bool) (*Record, error) {
	return Default().GetRecord(fqpath, orNearest, nil)
}

// Bind wraps the record named by fqpath in a Resolver using the
// process-wide manager.
func Bind(fqpath string, orNearest bool) (*Resolver, error) {
	return NewResolver(Default(), fqpath, orNearest, nil)
}
