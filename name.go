package nsconf

import "regexp"

// NamespaceSeparator joins the segments of a dotted namespace name.
const NamespaceSeparator = "."

// DefaultNamespace is the reserved name of the fallback namespace every
// manager holds from construction. It deliberately fails the namespace
// name pattern so it can never collide with a caller-chosen name.
const DefaultNamespace = "__DEFAULT"

var (
	propertyNamePattern  = regexp.MustCompile(`^[A-Za-z][_a-zA-Z0-9]*$`)
	namespaceNamePattern = regexp.MustCompile(`^[A-Za-z][_a-zA-Z0-9]*(\.[A-Za-z][_a-zA-Z0-9]*)*$`)
)

// ValidPropertyName reports whether name is usable as a property name.
// Names starting with an underscore are considered internal to a module
// and are rejected.
func ValidPropertyName(name string) bool {
	return propertyNamePattern.MatchString(name)
}

// ValidNamespaceName reports whether name is usable as a namespace name.
// The reserved DefaultNamespace name is always accepted.
func ValidNamespaceName(name string) bool {
	return name == DefaultNamespace || namespaceNamePattern.MatchString(name)
}
