package nsconf

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

// Manager is the registry mapping dotted namespace names to namespaces.
// At most one Namespace object exists per name at any time; the reserved
// default namespace exists from construction.
//
// An application normally owns exactly one Manager (see Default for the
// process-wide instance) and injects it where needed. The registry lock
// is held only across lookup and insert, never across resolution or user
// callbacks.
type Manager struct {
	mu         sync.RWMutex
	namespaces map[string]*Namespace
	log        zerolog.Logger
}

// NewManager constructs an empty registry containing only the reserved
// default namespace. Logging is disabled until SetLogger is called.
func NewManager() *Manager {
	m := &Manager{
		namespaces: make(map[string]*Namespace),
		log:        zerolog.Nop(),
	}
	m.namespaces[DefaultNamespace] = newNamespace(DefaultNamespace, m.log)
	return m
}

// SetLogger attaches a logger used for debug events. Namespaces created
// afterwards inherit it.
func (m *Manager) SetLogger(log zerolog.Logger) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.log = log
}

// GetOrCreate returns the namespace with the given name, constructing it
// if absent. Seed properties are declared only when this call creates the
// namespace: if it already existed the seed is silently discarded, so the
// first creator wins. Fails with ErrBadNamespaceName on an invalid name.
func (m *Manager) GetOrCreate(fqname string, seed map[string]PropertyOptions) (*Namespace, error) {
	if !ValidNamespaceName(fqname) {
		return nil, fmt.Errorf("%w: %q", ErrBadNamespaceName, fqname)
	}

	m.mu.Lock()
	ns, exists := m.namespaces[fqname]
	if !exists {
		ns = newNamespace(fqname, m.log)
		m.namespaces[fqname] = ns
		m.log.Debug().Str("namespace", fqname).Msg("namespace created")
	}
	m.mu.Unlock()

	if !exists && len(seed) > 0 {
		if err := ns.DeclareAll(seed); err != nil {
			return nil, err
		}
	}
	return ns, nil
}

// GetExisting returns the namespace with the given name. With orNearest
// the dotted name is walked from most specific to least specific
// (a.b.c, a.b, a) ending at the reserved default namespace, and the first
// registered namespace wins; the walk follows strict dotted prefixes
// only, so a.bc is never an ancestor of a.b.c. Without orNearest an exact
// match is required. Fails with ErrNamespaceNotFound when the lookup is
// exhausted.
func (m *Manager) GetExisting(fqname string, orNearest bool) (*Namespace, error) {
	if !ValidNamespaceName(fqname) {
		return nil, fmt.Errorf("%w: %q", ErrBadNamespaceName, fqname)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	if ns, ok := m.namespaces[fqname]; ok {
		return ns, nil
	}
	if !orNearest {
		return nil, fmt.Errorf("%w: %q", ErrNamespaceNotFound, fqname)
	}

	for _, name := range ancestry(fqname)[1:] {
		if ns, ok := m.namespaces[name]; ok {
			return ns, nil
		}
	}
	if ns, ok := m.namespaces[DefaultNamespace]; ok {
		return ns, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrNamespaceNotFound, fqname)
}

// Has reports whether a namespace with the given name is registered.
func (m *Manager) Has(fqname string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.namespaces[fqname]
	return ok
}

// Parents returns the registered ancestors of fqname, most specific
// first, always ending with the reserved default namespace. The name
// itself is included when registered.
func (m *Manager) Parents(fqname string) []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]string, 0, 4)
	for _, name := range ancestry(fqname) {
		if _, ok := m.namespaces[name]; ok {
			out = append(out, name)
		}
	}
	return append(out, DefaultNamespace)
}

// Namespaces returns the registered namespace names, sorted.
func (m *Manager) Namespaces() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]string, 0, len(m.namespaces))
	for name := range m.namespaces {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Reset drops every namespace and reinstates the empty default namespace.
// Intended for test isolation.
func (m *Manager) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.namespaces = make(map[string]*Namespace)
	m.namespaces[DefaultNamespace] = newNamespace(DefaultNamespace, m.log)
}

// GetRecord returns the record named by a fully qualified
// "namespace.dotted.path.property" string, split at the last separator.
// The namespace portion is created if absent, with seed properties
// declared on creation. With orNearest a record missing from the exact
// namespace is searched for through the registered parent namespaces
// before failing with ErrPropertyNotFound.
func (m *Manager) GetRecord(fqpath string, orNearest bool, seed map[string]PropertyOptions) (*Record, error) {
	i := strings.LastIndex(fqpath, NamespaceSeparator)
	if i < 0 {
		return nil, fmt.Errorf("%w: %q is not fully qualified", ErrBadPropertyName, fqpath)
	}
	nsName, propName := fqpath[:i], fqpath[i+1:]

	if !ValidNamespaceName(nsName) {
		return nil, fmt.Errorf("%w: %q", ErrBadNamespaceName, nsName)
	}
	if !ValidPropertyName(propName) {
		return nil, fmt.Errorf("%w: %q", ErrBadPropertyName, propName)
	}

	ns, err := m.GetOrCreate(nsName, seed)
	if err != nil {
		return nil, err
	}
	if ns.Has(propName) {
		return ns.Get(propName)
	}

	if orNearest {
		for _, parent := range m.Parents(nsName) {
			pns, err := m.GetExisting(parent, false)
			if err != nil {
				continue
			}
			if pns.Has(propName) {
				return pns.Get(propName)
			}
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrPropertyNotFound, fqpath)
}

// ancestry returns fqname followed by its strict dotted prefixes, most
// specific first. The reserved default namespace is not included.
func ancestry(fqname string) []string {
	out := make([]string, 0, strings.Count(fqname, NamespaceSeparator)+1)
	name := fqname
	for {
		out = append(out, name)
		i := strings.LastIndex(name, NamespaceSeparator)
		if i < 0 {
			return out
		}
		name = name[:i]
	}
}
