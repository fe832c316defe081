package config

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

// EnvPrefix is prepended to setting keys when reading the environment.
const EnvPrefix = "INPUT_"

// FromEnv reads settings from INPUT_<KEY> variables. Both the hyphenated
// spelling and an underscore spelling are accepted, hyphenated wins.
func FromEnv() Values {
	return FromLookup(os.LookupEnv)
}

// FromLookup reads settings through an environment lookup function.
func FromLookup(lookup func(string) (string, bool)) Values {
	v := Values{}
	for _, key := range Keys {
		if val, ok := lookup(EnvPrefix + strings.ReplaceAll(key, "-", "_")); ok {
			v[key] = val
		}
		if val, ok := lookup(EnvPrefix + key); ok {
			v[key] = val
		}
	}
	return v
}

// FromFile reads settings from a TOML file whose keys are the lower-case
// setting keys, for example:
//
//	test-name = "Test 1"
//	command = "make test"
//	timeout = 0.5
//	max-score = 10
func FromFile(path string) (Values, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: invalid TOML in %s: %w", ErrInvalid, path, err)
	}

	v := Values{}
	for name, val := range raw {
		key := strings.ToUpper(strings.ReplaceAll(name, "_", "-"))
		if !slices.Contains(Keys, key) {
			return nil, fmt.Errorf("%w: unknown setting %q in %s", ErrInvalid, name, path)
		}
		switch val.(type) {
		case string, int64, float64:
			v[key] = fmt.Sprint(val)
		default:
			return nil, fmt.Errorf("%w: setting %q in %s must be a string or number", ErrInvalid, name, path)
		}
	}
	return v, nil
}

// LoadEnvFile loads a dotenv file into the process environment. Variables
// that are already set keep their value.
func LoadEnvFile(path string) error {
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load env file %s: %w", path, err)
	}
	return nil
}
