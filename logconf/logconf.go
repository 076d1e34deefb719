// Package logconf bootstraps the logging backend from a JSON logging
// configuration document. It is a pure file-read plus dictionary-transform
// utility: the documents it produces and consumes are plain nested maps,
// so they can also be fed to a configuration dict source.
package logconf

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"dario.cat/mergo"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Log levels use the conventional numeric scale: more severe levels have
// higher values and adjacent levels are 10 apart.
const (
	LevelDebug    = 10
	LevelInfo     = 20
	LevelWarning  = 30
	LevelError    = 40
	LevelCritical = 50

	// DefaultLogLevel applies when a document carries no root level.
	DefaultLogLevel = LevelWarning
)

// ErrConfigNotFound indicates a logging configuration file that does not
// exist (or is a directory).
var ErrConfigNotFound = errors.New("logging configuration file does not exist")

// DefaultConfig returns the built-in logging configuration document:
// debug-level JSON output to stderr.
func DefaultConfig() map[string]any {
	return map[string]any{
		"root": map[string]any{
			"level":  LevelDebug,
			"writer": "json",
		},
	}
}

// LoadJSONConfig loads a JSON-formatted logging configuration document.
// It fails with ErrConfigNotFound when the file is absent; read and
// decode errors are propagated wrapped, never masked.
func LoadJSONConfig(path string) (map[string]any, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("failed to stat logging configuration file '%s': %w", path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read logging configuration file '%s': %w", path, err)
	}

	cfg := make(map[string]any)
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse logging configuration file '%s': %w", path, err)
	}
	return cfg, nil
}

// MergeConfig overlays a document on top of the built-in defaults and
// returns the result; neither input is modified.
func MergeConfig(cfg map[string]any) (map[string]any, error) {
	out := DefaultConfig()
	if err := mergo.Merge(&out, cfg, mergo.WithOverride); err != nil {
		return nil, fmt.Errorf("failed to merge logging configuration: %w", err)
	}
	return out, nil
}

// AdjustLogLevel returns a copy of the document with the root log level
// shifted by the verbosity and quiet counts: every quiet step raises the
// level by 10 and every verbosity step lowers it by 10, clamped at 0.
// Both the "root" and "" sections are adjusted when present. The input
// document is not modified.
func AdjustLogLevel(cfg map[string]any, verbosity, quiet int) map[string]any {
	out := make(map[string]any, len(cfg))
	for k, v := range cfg {
		out[k] = v
	}

	delta := 10 * (quiet - verbosity)
	if delta == 0 {
		return out
	}

	for _, name := range []string{"root", ""} {
		orig, ok := out[name].(map[string]any)
		if !ok {
			continue
		}
		section := make(map[string]any, len(orig))
		for k, v := range orig {
			section[k] = v
		}
		level := numericLevel(section["level"], DefaultLogLevel) + delta
		if level < 0 {
			level = 0
		}
		section["level"] = level
		out[name] = section
	}
	return out
}

// Init applies a logging configuration document to the zerolog backend.
// The root section's numeric level selects the global zerolog level and
// its "writer" entry chooses between "json" and "console" output; the
// configured logger replaces the zerolog global logger.
func Init(cfg map[string]any) error {
	level := DefaultLogLevel
	writer := "json"
	if root, ok := cfg["root"].(map[string]any); ok {
		level = numericLevel(root["level"], DefaultLogLevel)
		if w, ok := root["writer"].(string); ok {
			writer = w
		}
	}

	var out io.Writer
	switch writer {
	case "json":
		out = os.Stderr
	case "console":
		out = zerolog.ConsoleWriter{Out: os.Stderr}
	default:
		return fmt.Errorf("unknown log writer %q", writer)
	}

	zerolog.SetGlobalLevel(zerologLevel(level))
	log.Logger = zerolog.New(out).With().Timestamp().Logger()
	return nil
}

// Setup is the one-call bootstrap: load the document at path (the
// built-in defaults when path is empty), overlay it on the defaults,
// apply the verbosity/quiet offset and initialize the backend.
func Setup(path string, verbosity, quiet int) error {
	cfg := DefaultConfig()
	if path != "" {
		loaded, err := LoadJSONConfig(path)
		if err != nil {
			return err
		}
		if cfg, err = MergeConfig(loaded); err != nil {
			return err
		}
	}
	return Init(AdjustLogLevel(cfg, verbosity, quiet))
}

// numericLevel coerces the level entry of a decoded document. JSON
// decoding yields float64 for numbers.
func numericLevel(v any, fallback int) int {
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return int(i)
		}
	}
	return fallback
}

// zerologLevel maps a numeric level onto the nearest zerolog level.
func zerologLevel(level int) zerolog.Level {
	switch {
	case level <= 0:
		return zerolog.TraceLevel
	case level <= LevelDebug:
		return zerolog.DebugLevel
	case level <= LevelInfo:
		return zerolog.InfoLevel
	case level <= LevelWarning:
		return zerolog.WarnLevel
	case level <= LevelError:
		return zerolog.ErrorLevel
	default:
		return zerolog.FatalLevel
	}
}
