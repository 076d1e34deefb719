package nsconf

import "os"

// Source lookups are tri-state in effect: a category that is unbound or
// whose underlying source has no value for the alias reports absence, and
// only genuinely present values reach formatting and validation.

func (r *Resolver) lookupArg() (any, bool) {
	if !r.argSet || r.args == nil {
		return nil, false
	}
	value, ok := r.args[r.argKey]
	return value, ok
}

func (r *Resolver) lookupEnv() (any, bool) {
	if !r.envSet {
		return nil, false
	}
	for _, name := range r.envNames {
		if value, ok := os.LookupEnv(name); ok {
			return value, true
		}
	}
	return nil, false
}

func (r *Resolver) lookupCfg() (any, bool) {
	if !r.cfgSet || r.cfg == nil {
		return nil, false
	}
	section := r.cfg.Section(r.cfgSection)
	if !section.HasKey(r.cfgKey) {
		return nil, false
	}
	return section.Key(r.cfgKey).String(), true
}

func (r *Resolver) lookupDict() (any, bool) {
	if !r.dictSet || r.dict == nil {
		return nil, false
	}
	return getNestedValue(r.dict, r.dictKeys)
}

// getNestedValue walks an ordered key path through nested maps. A missing
// key or a non-map intermediate value means the path is absent.
func getNestedValue(nested map[string]any, keys []string) (any, bool) {
	if len(keys) == 0 {
		return nil, false
	}
	var current any = nested
	for _, key := range keys {
		currentMap, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		value, exists := currentMap[key]
		if !exists {
			return nil, false
		}
		current = value
	}
	return current, true
}
