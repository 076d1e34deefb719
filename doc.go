// Package nsconf provides hierarchical configuration resolution for Go
// applications: library modules declare configuration properties in dotted
// namespaces without knowing how values will be supplied, and the
// application binds competing sources to those properties with a
// deterministic precedence order.
//
// Features:
//   - Dotted namespaces with nearest-ancestor fallback lookup
//   - Property records with defaults, validators and change callbacks
//   - Per-property source bindings: parsed argument maps, environment
//     variables (with candidate-name lists), INI-style config parsers,
//     and nested dictionaries with ordered key paths
//   - Per-source format functions for value transformation
//   - Thread-safe registry and atomic per-record value transitions
//   - Nested-dict loading from JSON, TOML and YAML files
//   - Struct scanning of resolved values via mapstructure
//
// Module side, typically at init time:
//
//	ns, err := nsconf.GetConfig("myapp.db", map[string]nsconf.PropertyOptions{
//	    "port": {
//	        Default:  5432,
//	        Validate: func(name string, v any) bool { p, ok := v.(int); return ok && p > 0 },
//	    },
//	})
//
// Application side, before the module runs:
//
//	r, err := nsconf.Bind("myapp.db.port", true)
//	if err != nil {
//	    log.Fatal().Err(err).Send()
//	}
//	port, err := r.
//	    SetArgAlias(parsedArgs, "db-port", atoi).
//	    SetEnvAlias([]string{"MYAPP_DB_PORT", "DB_PORT"}, atoi).
//	    Resolve()
//
// Resolution Precedence (highest to lowest):
//  1. Command-line argument (a map of already-parsed values)
//  2. Environment variable (first present candidate name wins)
//  3. Config parser (section, key)
//  4. Dictionary (ordered nested key path)
//  5. Default value
//
// Thread Safety:
// Registry and namespace operations are individually atomic, as is a
// single record's value+callback transition. Callers needing consistency
// across several related properties must serialize their own Resolve
// calls.
package nsconf
