package nsconf

import (
	"fmt"

	"github.com/go-ini/ini"
)

// Resolver is the application-side binding for one property record. It
// accumulates per-source aliases and resolves the record's value with
// fixed precedence: command-line argument, environment variable, config
// parser, dictionary, then the default value.
//
// The resolver holds a non-owning reference to its record; several
// resolvers may be bound to the same record and Resolve may be called
// from any goroutine. Only the record's value+callback transition is
// atomic — the resolver's own binding state is not guarded, so configure
// aliases before sharing a resolver across goroutines.
type Resolver struct {
	record *Record

	args      map[string]any
	argKey    string
	argSet    bool
	argFormat FormatFunc

	envNames  []string
	envSet    bool
	envFormat FormatFunc

	cfg        *ini.File
	cfgSection string
	cfgKey     string
	cfgSet     bool
	cfgFormat  FormatFunc

	dict       map[string]any
	dictKeys   []string
	dictSet    bool
	dictFormat FormatFunc

	def    any
	hasDef bool
}

// NewResolver wraps the record named by the fully qualified fqpath in a
// Resolver. The namespace portion is created if it does not exist, with
// seed properties declared on creation; with orNearest a record missing
// from the exact namespace is searched for in the registered parent
// namespaces.
func NewResolver(m *Manager, fqpath string, orNearest bool, seed map[string]PropertyOptions) (*Resolver, error) {
	rec, err := m.GetRecord(fqpath, orNearest, seed)
	if err != nil {
		return nil, err
	}
	return &Resolver{record: rec}, nil
}

// NewRecordResolver wraps an already-obtained record.
func NewRecordResolver(rec *Record) *Resolver {
	return &Resolver{record: rec}
}

// Record returns the bound property record.
func (r *Resolver) Record() *Record {
	return r.record
}

// SetArgAlias binds the resolver to a key in a map of already-parsed
// command-line values. Calling it again replaces the prior binding.
func (r *Resolver) SetArgAlias(args map[string]any, key string, format FormatFunc) *Resolver {
	r.args, r.argKey, r.argFormat = args, key, format
	r.argSet = true
	return r
}

// SetEnvAlias binds the resolver to one or more candidate environment
// variable names, tried in the given order; the first present name wins.
// Environment values are strings before formatting. Calling it again
// replaces the prior binding.
func (r *Resolver) SetEnvAlias(names []string, format FormatFunc) *Resolver {
	r.envNames, r.envFormat = names, format
	r.envSet = true
	return r
}

// SetCfgAlias binds the resolver to a (section, key) pair in a parsed
// INI-style configuration. Config values are strings before formatting.
// Calling it again replaces the prior binding.
func (r *Resolver) SetCfgAlias(cfg *ini.File, section, key string, format FormatFunc) *Resolver {
	r.cfg, r.cfgSection, r.cfgKey, r.cfgFormat = cfg, section, key, format
	r.cfgSet = true
	return r
}

// SetDictAlias binds the resolver to an ordered key path in a nested
// dictionary (as produced by LoadDictFile, or any map[string]any).
// Calling it again replaces the prior binding.
func (r *Resolver) SetDictAlias(dict map[string]any, keys []string, format FormatFunc) *Resolver {
	r.dict, r.dictKeys, r.dictFormat = dict, keys, format
	r.dictSet = true
	return r
}

// SetDefault gives the resolver its own fallback value, taking precedence
// over the record's declared default during resolution.
func (r *Resolver) SetDefault(value any) *Resolver {
	r.def, r.hasDef = value, true
	return r
}

// Resolve evaluates the bound sources in precedence order and commits the
// winning value to the record.
//
// For each source category in fixed order (arg, env, cfg, dict) the
// underlying source is probed for presence; an absent value is not an
// error, the next category is tried. The first present raw value is
// passed through that category's format function (if any), validated by
// the record, and committed; a rejected value fails the whole call with
// ErrValidationFailed without falling through. When no source supplies a
// value the default applies, and with no default the call fails with
// ErrNoValueAvailable.
//
// Resolution is idempotent while the underlying sources are unchanged:
// a second call yields the same value and fires no callback. On any error
// the record is left unchanged.
func (r *Resolver) Resolve() (any, error) {
	if raw, ok := r.lookupArg(); ok {
		return r.commit(raw, r.argFormat)
	}
	if raw, ok := r.lookupEnv(); ok {
		return r.commit(raw, r.envFormat)
	}
	if raw, ok := r.lookupCfg(); ok {
		return r.commit(raw, r.cfgFormat)
	}
	if raw, ok := r.lookupDict(); ok {
		return r.commit(raw, r.dictFormat)
	}
	if r.hasDef {
		return r.commit(r.def, nil)
	}
	if def, ok := r.record.Default(); ok {
		return r.commit(def, nil)
	}
	return nil, fmt.Errorf("%w: %s", ErrNoValueAvailable, r.record.Name())
}

// Value returns the record's current value without resolving, failing
// with ErrNotResolved if the record is unset and has no default.
func (r *Resolver) Value() (any, error) {
	return r.record.Value()
}

// SetValue assigns the record's value directly, going through the same
// validation and change-callback path as resolution.
func (r *Resolver) SetValue(value any) error {
	return r.record.Set(value)
}

// commit formats, validates and stores the winning raw value.
func (r *Resolver) commit(raw any, format FormatFunc) (any, error) {
	value := raw
	if format != nil {
		value = format(r.record.Name(), raw)
	}
	if err := r.record.Set(value); err != nil {
		return nil, err
	}
	return value, nil
}
