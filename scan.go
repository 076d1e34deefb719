package nsconf

import (
	"fmt"
	"reflect"

	"github.com/mitchellh/mapstructure"
)

// Scan decodes the namespace's current property values into the target,
// which must be a non-nil pointer to a struct or map. Records without a
// value are skipped. Fields are matched through the "config" struct tag
// with weakly typed conversion, so string values resolved from env or cfg
// sources decode into numeric, boolean, duration and comma-separated
// slice fields.
func (ns *Namespace) Scan(target any) error {
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return fmt.Errorf("scan target must be a non-nil pointer, got %T", target)
	}

	ns.mu.RLock()
	values := make(map[string]any, len(ns.records))
	for name, rec := range ns.records {
		if v, err := rec.Value(); err == nil {
			values[name] = v
		}
	}
	ns.mu.RUnlock()

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		TagName:          "config",
		WeaklyTypedInput: true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	})
	if err != nil {
		return fmt.Errorf("failed to create mapstructure decoder: %w", err)
	}

	if err := decoder.Decode(values); err != nil {
		return fmt.Errorf("failed to scan namespace %q into %T: %w", ns.name, target, err)
	}
	return nil
}
