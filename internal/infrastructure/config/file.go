package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/pelletier/go-toml/v2"
)

// LoadFile reads a YAML or TOML file and exports its keys as environment
// variables that are not already set. Nested tables join with "_", so
//
//	rate_limit:
//	  rps: 10
//
// becomes RATE_LIMIT_RPS=10.
func LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file %s: %w", path, err)
	}

	values, err := parseFile(path, data)
	if err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	for key, value := range flatten("", values) {
		if _, set := os.LookupEnv(key); set {
			continue
		}
		if err := os.Setenv(key, value); err != nil {
			return fmt.Errorf("set %s: %w", key, err)
		}
	}
	return nil
}

func parseFile(path string, data []byte) (map[string]interface{}, error) {
	values := map[string]interface{}{}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &values); err != nil {
			return nil, err
		}
	case ".toml":
		if err := toml.Unmarshal(data, &values); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported config format %q (use .yaml, .yml or .toml)", filepath.Ext(path))
	}

	return values, nil
}

func flatten(prefix string, values map[string]interface{}) map[string]string {
	out := make(map[string]string)
	for k, v := range values {
		key := strings.ToUpper(strings.ReplaceAll(k, "-", "_"))
		if prefix != "" {
			key = prefix + "_" + key
		}

		switch val := v.(type) {
		case map[string]interface{}:
			for nk, nv := range flatten(key, val) {
				out[nk] = nv
			}
		case nil:
		default:
			out[key] = fmt.Sprint(val)
		}
	}
	return out
}
