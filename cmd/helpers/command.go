package helpers

import (
	"fmt"

	flagconfig "github.com/zinc-sig/specter/cmd/config"
	"github.com/zinc-sig/specter/internal/config"
)

// LoadTestConfig resolves the test settings. Precedence, lowest first:
// config file, dotenv file, INPUT_* environment, flags.
func LoadTestConfig(flags *flagconfig.TestFlags) (*config.TestConfig, error) {
	values := config.Values{}

	if flags.ConfigFile != "" {
		fileValues, err := config.FromFile(flags.ConfigFile)
		if err != nil {
			return nil, err
		}
		values.Merge(fileValues)
	}

	if flags.EnvFile != "" {
		if err := config.LoadEnvFile(flags.EnvFile); err != nil {
			return nil, err
		}
	}
	values.Merge(config.FromEnv())

	values.Merge(config.Values{
		config.KeyTestName:     flags.Name,
		config.KeyCommand:      flags.Command,
		config.KeySetupCommand: flags.SetupCommand,
		config.KeyTimeout:      flags.Timeout,
		config.KeyMaxScore:     flags.MaxScore,
	})

	cfg, err := config.Build(values)
	if err != nil {
		return nil, fmt.Errorf("failed to load test configuration: %w", err)
	}
	return cfg, nil
}
