package nsconf

import (
	"fmt"
	"sync"

	"github.com/rs/zerolog"
)

// Namespace is an ordered collection of property records addressed by a
// dotted name. Library modules declare their properties here without
// knowing how the application will supply values; declaration is
// idempotent so independently initialized modules can safely share a
// namespace.
type Namespace struct {
	mu      sync.RWMutex
	name    string
	records map[string]*Record
	order   []string
	log     zerolog.Logger
}

func newNamespace(name string, log zerolog.Logger) *Namespace {
	return &Namespace{
		name:    name,
		records: make(map[string]*Record),
		log:     log,
	}
}

// Name returns the namespace's fully qualified dotted name.
func (ns *Namespace) Name() string {
	return ns.name
}

// Declare adds a property record with the given options. If a record with
// that name already exists it is returned unchanged and opts are
// discarded. Fails with ErrBadPropertyName if the name does not match the
// property-name pattern.
func (ns *Namespace) Declare(name string, opts PropertyOptions) (*Record, error) {
	if !ValidPropertyName(name) {
		return nil, fmt.Errorf("%w: %q", ErrBadPropertyName, name)
	}

	ns.mu.Lock()
	defer ns.mu.Unlock()

	if rec, exists := ns.records[name]; exists {
		return rec, nil
	}

	rec := newRecord(name, opts)
	ns.records[name] = rec
	ns.order = append(ns.order, name)
	ns.log.Debug().Str("namespace", ns.name).Str("property", name).Msg("property declared")
	return rec, nil
}

// DeclareAll declares several properties in one go. Every name is
// validated before any record is stored, so either all new properties are
// added or none are. Names that already exist keep their records
// untouched.
func (ns *Namespace) DeclareAll(props map[string]PropertyOptions) error {
	ns.mu.Lock()
	defer ns.mu.Unlock()

	pending := make(map[string]*Record, len(props))
	for name, opts := range props {
		if !ValidPropertyName(name) {
			return fmt.Errorf("%w: %q", ErrBadPropertyName, name)
		}
		if _, exists := ns.records[name]; exists {
			continue
		}
		pending[name] = newRecord(name, opts)
	}

	for name, rec := range pending {
		ns.records[name] = rec
		ns.order = append(ns.order, name)
	}
	return nil
}

// Get returns the record with the given name, failing with
// ErrPropertyNotFound if it has not been declared.
func (ns *Namespace) Get(name string) (*Record, error) {
	if !ValidPropertyName(name) {
		return nil, fmt.Errorf("%w: %q", ErrBadPropertyName, name)
	}

	ns.mu.RLock()
	defer ns.mu.RUnlock()

	rec, exists := ns.records[name]
	if !exists {
		return nil, fmt.Errorf("%w: %s%s%s", ErrPropertyNotFound, ns.name, NamespaceSeparator, name)
	}
	return rec, nil
}

// Has reports whether a record with the given name has been declared.
func (ns *Namespace) Has(name string) bool {
	ns.mu.RLock()
	defer ns.mu.RUnlock()
	_, exists := ns.records[name]
	return exists
}

// List returns the declared property names in declaration order.
func (ns *Namespace) List() []string {
	ns.mu.RLock()
	defer ns.mu.RUnlock()

	out := make([]string, len(ns.order))
	copy(out, ns.order)
	return out
}
