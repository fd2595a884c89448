package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/alecthomas/kong"
)

// resolve is a [kong.ConfigurationLoader] that reads TOML config files.
//
// It can be used with [kong.Configuration] like this:
//
//	kong.Configuration(resolve, "/path/to/config.toml")
//
// Top-level keys name flags. Hyphens in flag names may be written as
// underscores, and a table groups keys under a flag prefix:
//
//	log-level = "debug"
//	log_pretty = false
//
//	[pprof]
//	mode = "cpu"
//
// This configuration will be applied to Kong flags:
//
//	--log-level=debug
//	--no-log-pretty
//	--pprof-mode=cpu
//
// Command-line flags override config file values.
func resolve(r io.Reader) (kong.Resolver, error) {
	var doc map[string]any

	if _, err := toml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, err
	}

	c := make(config, len(doc))
	c.flatten("", doc)

	return c, nil
}

// config implements [kong.Resolver] for TOML configs. Keys are flag names
// with hyphens.
type config map[string]any

// flatten stores every leaf of doc under its hyphen-joined key path.
func (c config) flatten(prefix string, doc map[string]any) {
	for k, v := range doc {
		key := prefix + strings.ReplaceAll(k, "_", "-")

		if table, ok := v.(map[string]any); ok {
			c.flatten(key+"-", table)

			continue
		}

		c[key] = native(v)
	}
}

// native converts a decoded TOML value to the form Kong maps from. Numbers
// become strings and arrays become comma-separated lists.
func native(v any) any {
	switch x := v.(type) {
	case int64:
		return strconv.FormatInt(x, 10)

	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)

	case []any:
		out := make([]string, 0, len(x))
		for _, e := range x {
			out = append(out, fmt.Sprint(native(e)))
		}

		return strings.Join(out, ",")

	default:
		return v
	}
}

// Validate implements [kong.Resolver].
func (config) Validate(*kong.Application) error { return nil }

// Resolve implements [kong.Resolver].
func (c config) Resolve(
	_ *kong.Context,
	_ *kong.Path,
	flag *kong.Flag,
) (any, error) {
	if value, ok := c[flag.Name]; ok {
		return value, nil
	}

	// Not found - return nil to let Kong use defaults
	return nil, nil
}
