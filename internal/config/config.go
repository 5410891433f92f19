// Package config loads optional YAML settings as a kong resolver.
//
// Keys match long flag names with either "-" or "_" separators:
//
//	timezone: Europe/Berlin
//	window: 30
//	debug: false
//
// A value is only used when the flag was not given on the command line and
// none of the flag's environment variables are set.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"gopkg.in/yaml.v3"
)

// YAML is a kong.ConfigurationLoader for YAML config files.
func YAML(r io.Reader) (kong.Resolver, error) {
	values := map[string]any{}
	if err := yaml.NewDecoder(r).Decode(&values); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	normalized := make(map[string]any, len(values))
	for k, v := range values {
		normalized[normalizeKey(k)] = v
	}

	var f kong.ResolverFunc = func(context *kong.Context, parent *kong.Path, flag *kong.Flag) (any, error) {
		for _, env := range flag.Envs {
			if _, ok := os.LookupEnv(env); ok {
				return nil, nil
			}
		}
		raw, ok := normalized[normalizeKey(flag.Name)]
		if !ok || raw == nil {
			return nil, nil
		}
		return stringify(raw)
	}
	return f, nil
}

func normalizeKey(k string) string {
	return strings.ToLower(strings.ReplaceAll(k, "_", "-"))
}

// stringify flattens YAML scalars so kong's mappers parse them like
// command-line tokens
func stringify(v any) (any, error) {
	switch v := v.(type) {
	case string:
		return v, nil
	case bool, int, int64, uint64, float64:
		return fmt.Sprint(v), nil
	case []any:
		parts := make([]string, len(v))
		for i, item := range v {
			parts[i] = fmt.Sprint(item)
		}
		return strings.Join(parts, ","), nil
	default:
		return nil, fmt.Errorf("unsupported config value %v (%T)", v, v)
	}
}
