package nsconf

import "errors"

// Errors returned by the registry, namespaces, records and resolvers.
// They are wrapped with the offending name when surfaced, so test for a
// category with errors.Is.
var (
	// ErrBadPropertyName indicates a property name that fails the
	// property-name pattern at declaration or lookup time.
	ErrBadPropertyName = errors.New("invalid property name")
	// ErrBadNamespaceName indicates a namespace name that fails the
	// namespace-name pattern.
	ErrBadNamespaceName = errors.New("invalid namespace name")
	// ErrNamespaceNotFound indicates an exhausted exact or nearest-ancestor
	// namespace lookup.
	ErrNamespaceNotFound = errors.New("namespace not found")
	// ErrPropertyNotFound indicates a property absent from the namespace
	// (and, for nearest lookups, from all of its registered ancestors).
	ErrPropertyNotFound = errors.New("property not found")
	// ErrValidationFailed indicates a candidate value rejected by the
	// record's validator. Resolution does not fall through to lower
	// precedence sources on validation failure.
	ErrValidationFailed = errors.New("value validation failed")
	// ErrNoValueAvailable indicates that resolution found no bound source
	// with a present value and the record carries no default.
	ErrNoValueAvailable = errors.New("no value available")
	// ErrNotResolved indicates a value read from a record that has never
	// been set and was declared without a default.
	ErrNotResolved = errors.New("value not resolved")
	// ErrConfigFileNotFound indicates a dict-source configuration file
	// that does not exist.
	ErrConfigFileNotFound = errors.New("config file not found")
)
