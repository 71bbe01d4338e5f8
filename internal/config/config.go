// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Type is the in-memory representation of the loaded configuration.
//
// Fields:
//   - Source: absolute path of the YAML file loaded.
//   - Namespace: optional dot-prefixed keyspace used to prefer namespaced
//     lookups (e.g. "diff.key").
//   - Data: raw key/value tree unmarshaled from YAML.
//
// Note: Data is intentionally kept as map[string]any to allow flexible shapes.
// Callers should use typed getters (GetString, GetInt) for convenience.
type Type struct {
	Source    string
	Namespace string
	Data      map[string]interface{}
}

// Config holds the global, lazily-initialized configuration instance.
var Config Type

// init attempts to load configuration at process start. Errors are ignored so
// the application can still run without a config file; callers of getters will
// trigger a lazy reload when needed.
func init() {
	_, _ = Load()
}

// GetInt returns the integer value for the given dotted key path. A single
// defaultValue may be provided and is returned when the key is missing.
// YAML numbers may decode as int, int64, or float64; common cases are handled.
func GetInt(key string, defaultValue ...int) (int, error) {
	if len(Config.Data) == 0 {
		_, _ = Load()
	}

	val, err := Config.get(key)
	if err != nil {
		if len(defaultValue) == 1 {
			return defaultValue[0], nil
		}
		return 0, err
	}

	// YAML numbers may be unmarshaled as int/float64 depending on content.
	switch v := val.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		return int(v), nil
	default:
		return 0, errors.New("value is not an int")
	}
}

// GetString returns the string value for the given dotted key path. If the key
// is not found and a single defaultValue is provided, the default is returned.
// Returns an error if the value exists but is not a string.
func GetString(key string, defaultValue ...string) (string, error) {
	if len(Config.Data) == 0 {
		_, _ = Load()
	}

	val, err := Config.get(key)
	if err != nil {
		if len(defaultValue) == 1 {
			return defaultValue[0], nil
		}
		return "", err
	}

	s, ok := val.(string)
	if !ok {
		return "", errors.New("value is not a string")
	}

	return s, nil
}

// GetStringSlice returns the string slice value for the given dotted key path.
// If the key is not found and a single default slice is provided, that default
// is returned. Returns an error if the value exists but is not a string slice.
func GetStringSlice(key string, defaultValue ...[]string) ([]string, error) {
	if len(Config.Data) == 0 {
		_, _ = Load()
	}

	val, err := Config.get(key)
	if err != nil {
		if len(defaultValue) == 1 {
			return defaultValue[0], nil
		}
		return nil, err
	}

	switch v := val.(type) {
	case []string:
		return v, nil
	case []interface{}:
		result := make([]string, len(v))
		for i, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, errors.New("slice element is not a string")
			}
			result[i] = s
		}
		return result, nil
	default:
		return nil, errors.New("value is not a slice")
	}
}

// Load reads the YAML configuration file and populates the global Config.
// Passing a namespace sets Config.Namespace so namespaced keys are preferred
// by the getters.
//
// Returns the loaded Type or an error if the file could not be located or
// parsed.
func Load(namespace ...string) (Type, error) {
	ns := ""
	if len(namespace) == 1 {
		ns = namespace[0]
	}

	path, err := configFile()
	if err != nil {
		return Type{}, err
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return Type{}, err
	}

	var data map[string]interface{}
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return Type{}, err
	}

	Config = Type{
		Source:    path,
		Namespace: ns,
		Data:      data,
	}

	return Config, nil
}

// configFile resolves the configuration file path.
// Precedence:
//  1. NDJDIFF_CFG_FILE, if set and non-empty
//  2. os.UserConfigDir()/ndjdiff/ndjdiff.yaml
func configFile() (string, error) {
	if p, ok := os.LookupEnv("NDJDIFF_CFG_FILE"); ok && p != "" {
		return p, nil
	}

	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(dir, "ndjdiff", "ndjdiff.yaml"), nil
}

// get traverses the configuration tree using a dotted key path (e.g.
// "diff.key"). If Namespace is set, a namespaced candidate key is attempted
// first (Namespace + "." + kspec), then the unnamespaced key. Returns the raw
// value (any) if found.
func (cfg *Type) get(kspec string) (any, error) {
	if len(cfg.Data) == 0 {
		_, _ = Load(cfg.Namespace)
	}

	candidateKeys := []string{kspec}
	if cfg.Namespace != "" {
		candidateKeys = []string{cfg.Namespace + "." + kspec, kspec}
	}

	for _, key := range candidateKeys {
		keys := strings.Split(key, ".")
		var current interface{} = cfg.Data

		success := true
		for _, k := range keys {
			m, ok := current.(map[string]interface{})
			if !ok {
				success = false
				break
			}
			current, ok = m[k]
			if !ok {
				success = false
				break
			}
		}

		if success {
			return current, nil
		}
	}

	return nil, errors.New("key not found: " + kspec)
}
