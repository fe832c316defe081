// Package settings assembles key/value settings for result sinks from
// environment variables, a file, a JSON string and key=value pairs.
package settings

import (
	"encoding/json"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// ParseKV parses a key=value pair, attempting type inference for the value
func ParseKV(kvPair string) (string, any, error) {
	key, valueStr, ok := strings.Cut(kvPair, "=")
	if !ok {
		return "", nil, fmt.Errorf("invalid format, expected key=value: %s", kvPair)
	}

	key = strings.TrimSpace(key)
	if key == "" {
		return "", nil, fmt.Errorf("empty key in key=value pair")
	}

	return key, inferValue(strings.TrimSpace(valueStr)), nil
}

// inferValue tries int, then float, then an explicit true/false, so that
// "1" stays numeric.
func inferValue(s string) any {
	if intVal, err := strconv.Atoi(s); err == nil {
		return intVal
	}
	if floatVal, err := strconv.ParseFloat(s, 64); err == nil {
		return floatVal
	}
	if s == "true" || s == "false" {
		return s == "true"
	}
	return s
}

// ParseJSON parses a JSON object
func ParseJSON(jsonStr string) (map[string]any, error) {
	var result map[string]any
	if err := json.Unmarshal([]byte(jsonStr), &result); err != nil {
		return nil, fmt.Errorf("invalid JSON object: %w", err)
	}
	return result, nil
}

// ParseFile reads a JSON or, by .toml extension, TOML settings file
func ParseFile(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read settings file: %w", err)
	}

	var result map[string]any
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		if err := toml.Unmarshal(data, &result); err != nil {
			return nil, fmt.Errorf("invalid TOML in file: %w", err)
		}
		return result, nil
	}

	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("invalid JSON object in file: %w", err)
	}
	return result, nil
}

// FromEnv reads PREFIX (a JSON object) and PREFIX_<KEY> variables. Keys are
// lower-cased; PREFIX_<KEY> values win over the JSON object.
func FromEnv(prefix string) map[string]any {
	result := make(map[string]any)

	if jsonStr := os.Getenv(prefix); jsonStr != "" {
		if parsed, err := ParseJSON(jsonStr); err == nil {
			maps.Copy(result, parsed)
		}
	}

	envPrefix := prefix + "_"
	for _, env := range os.Environ() {
		name, value, ok := strings.Cut(env, "=")
		if !ok || !strings.HasPrefix(name, envPrefix) || value == "" {
			continue
		}
		key := strings.ToLower(strings.TrimPrefix(name, envPrefix))
		result[key] = inferValue(strings.TrimSpace(value))
	}

	if len(result) == 0 {
		return nil
	}
	return result
}

// Merge merges setting maps, later maps override earlier ones
func Merge(sources ...map[string]any) map[string]any {
	result := make(map[string]any)
	for _, src := range sources {
		maps.Copy(result, src)
	}
	return result
}

// Build builds settings from all sources. Precedence, lowest first:
// environment, file, JSON string, key=value pairs.
func Build(envPrefix, jsonStr string, kvPairs []string, filePath string) (map[string]any, error) {
	sources := []map[string]any{FromEnv(envPrefix)}

	if filePath != "" {
		fileSettings, err := ParseFile(filePath)
		if err != nil {
			return nil, err
		}
		sources = append(sources, fileSettings)
	}

	if jsonStr != "" {
		jsonSettings, err := ParseJSON(jsonStr)
		if err != nil {
			return nil, err
		}
		sources = append(sources, jsonSettings)
	}

	if len(kvPairs) > 0 {
		kvSettings := make(map[string]any)
		for _, kv := range kvPairs {
			key, value, err := ParseKV(kv)
			if err != nil {
				return nil, err
			}
			kvSettings[key] = value
		}
		sources = append(sources, kvSettings)
	}

	return Merge(sources...), nil
}

// String returns a string setting.
func String(m map[string]any, key string) (string, bool) {
	s, ok := m[key].(string)
	return s, ok && s != ""
}

// StringOr returns a string setting or def.
func StringOr(m map[string]any, key, def string) string {
	if s, ok := String(m, key); ok {
		return s
	}
	return def
}

// Bool returns a boolean setting, accepting strings like "false".
func Bool(m map[string]any, key string, def bool) bool {
	switch v := m[key].(type) {
	case bool:
		return v
	case string:
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

// Int returns an integer setting, accepting JSON numbers.
func Int(m map[string]any, key string, def int) int {
	switch v := m[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	}
	return def
}
