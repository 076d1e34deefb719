package nsconf

import (
	"fmt"
	"reflect"
	"sync"
)

// FormatFunc converts a raw source value into the form the declaring
// module expects. It receives the property name and the raw value exactly
// as found in the source (env and cfg sources always supply strings).
type FormatFunc func(name string, raw any) any

// ValidateFunc reports whether a candidate value is acceptable for the
// named property. Returning false rejects the value.
type ValidateFunc func(name string, value any) bool

// CallbackFunc is invoked after the named property's value has changed.
type CallbackFunc func(name string, value any)

// PropertyOptions enumerates the recognized options for declaring a
// property. A nil Default means the property has no fallback value; a
// record without a default stays unset until it is resolved or assigned.
type PropertyOptions struct {
	Default  any
	Validate ValidateFunc
	Callback CallbackFunc
}

// Record is one configurable property: a name, a current value, an
// optional default, and optional validation and change-callback hooks.
// An unset value is not the same as a value of nil.
//
// A record's value is only ever mutated through Set (directly or via a
// Resolver): validation always runs before the mutation and the callback
// runs after it, never when the value is unchanged.
type Record struct {
	mu       sync.Mutex
	name     string
	value    any
	hasValue bool
	def      any
	hasDef   bool
	validate ValidateFunc
	callback CallbackFunc
}

func newRecord(name string, opts PropertyOptions) *Record {
	r := &Record{
		name:     name,
		validate: opts.Validate,
		callback: opts.Callback,
	}
	if opts.Default != nil {
		r.def = opts.Default
		r.hasDef = true
		r.value = opts.Default
		r.hasValue = true
	}
	return r
}

// Name returns the property name.
func (r *Record) Name() string {
	return r.name
}

// Value returns the current value. It fails with ErrNotResolved if the
// property has never been set and was declared without a default.
func (r *Record) Value() (any, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.hasValue {
		return nil, fmt.Errorf("%w: %s", ErrNotResolved, r.name)
	}
	return r.value, nil
}

// HasValue reports whether the record currently holds a value.
func (r *Record) HasValue() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.hasValue
}

// Default returns the declared default value and whether one exists.
func (r *Record) Default() (any, bool) {
	return r.def, r.hasDef
}

// Set commits a new value. The validator, if any, runs first and a false
// result fails the call with ErrValidationFailed leaving the record
// unchanged. The callback fires only when the committed value differs
// from the current one (or the record previously had no value).
//
// The whole value+callback transition happens under the record lock, so
// concurrent Set calls observe it atomically. Callbacks must not call
// back into the same record.
func (r *Record) Set(value any) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.validate != nil && !r.validate(r.name, value) {
		return fmt.Errorf("%w: %s rejected value %v", ErrValidationFailed, r.name, value)
	}

	if r.hasValue && reflect.DeepEqual(r.value, value) {
		return nil
	}

	r.value = value
	r.hasValue = true
	if r.callback != nil {
		r.callback(r.name, value)
	}
	return nil
}
