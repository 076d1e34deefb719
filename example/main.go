// Demonstrates the module/application split: a library module declares
// its properties in a namespace, the application later binds sources and
// resolves them.
package main

import (
	"strconv"

	"github.com/go-ini/ini"
	"github.com/rs/zerolog/log"

	"github.com/nsconf/nsconf"
	"github.com/nsconf/nsconf/logconf"
)

// atoi converts string-typed source values into ints.
func atoi(name string, raw any) any {
	if s, ok := raw.(string); ok {
		if n, err := strconv.Atoi(s); err == nil {
			return n
		}
	}
	return raw
}

// declareModuleConfig is what a library module does at startup: declare
// its configurable properties without knowing where values come from.
func declareModuleConfig(m *nsconf.Manager) error {
	_, err := m.GetOrCreate("demo.db", map[string]nsconf.PropertyOptions{
		"port": {
			Default: 5432,
			Validate: func(name string, v any) bool {
				p, ok := v.(int)
				return ok && p > 0 && p < 65536
			},
			Callback: func(name string, v any) {
				log.Info().Str("property", name).Interface("value", v).Msg("config changed")
			},
		},
		"host": {Default: "localhost"},
	})
	return err
}

func main() {
	if err := logconf.Setup("", 1, 0); err != nil {
		log.Fatal().Err(err).Msg("logging setup failed")
	}

	mgr := nsconf.NewManager()
	if err := declareModuleConfig(mgr); err != nil {
		log.Fatal().Err(err).Msg("module config declaration failed")
	}

	// The application side: pre-parsed arguments, an INI document and a
	// nested dictionary all compete for the same property.
	args := map[string]any{"db-port": 6432}

	iniCfg, err := ini.Load([]byte("[database]\nport = 7432\n"))
	if err != nil {
		log.Fatal().Err(err).Msg("ini parse failed")
	}

	dict := map[string]any{
		"database": map[string]any{"port": 8432},
	}

	r, err := nsconf.NewResolver(mgr, "demo.db.port", true, nil)
	if err != nil {
		log.Fatal().Err(err).Msg("binding failed")
	}
	r.SetArgAlias(args, "db-port", nil).
		SetEnvAlias([]string{"DEMO_DB_PORT", "DB_PORT"}, atoi).
		SetCfgAlias(iniCfg, "database", "port", atoi).
		SetDictAlias(dict, []string{"database", "port"}, nil)

	port, err := r.Resolve()
	if err != nil {
		log.Fatal().Err(err).Msg("resolution failed")
	}
	log.Info().Interface("port", port).Msg("resolved db port")

	// Remove the argument and resolve again: the next source in
	// precedence order wins.
	delete(args, "db-port")
	port, err = r.Resolve()
	if err != nil {
		log.Fatal().Err(err).Msg("resolution failed")
	}
	log.Info().Interface("port", port).Msg("resolved db port without argument")
}
