package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Setting keys, as spelled by the pipeline that invokes the judge.
const (
	KeyTestName     = "TEST-NAME"
	KeyCommand      = "COMMAND"
	KeySetupCommand = "SETUP-COMMAND"
	KeyTimeout      = "TIMEOUT"
	KeyMaxScore     = "MAX-SCORE"
)

// Keys lists every recognised setting key.
var Keys = []string{KeyTestName, KeyCommand, KeySetupCommand, KeyTimeout, KeyMaxScore}

// ErrInvalid marks configuration errors.
var ErrInvalid = errors.New("invalid configuration")

// TestConfig describes the single test to judge.
type TestConfig struct {
	Name         string        `json:"name"`
	Command      string        `json:"command"`
	SetupCommand string        `json:"setup_command,omitempty"`
	Timeout      time.Duration `json:"timeout"`
	MaxScore     int           `json:"max_score"`
}

// HasSetup reports whether a setup command is configured.
func (c *TestConfig) HasSetup() bool {
	return strings.TrimSpace(c.SetupCommand) != ""
}

// Values holds raw setting values keyed by setting key. Later sources are
// merged over earlier ones with Merge.
type Values map[string]string

// Merge copies every non-empty value of other into v.
func (v Values) Merge(other Values) Values {
	for k, val := range other {
		if val != "" {
			v[k] = val
		}
	}
	return v
}

// Build validates raw values and converts them into a TestConfig.
func Build(v Values) (*TestConfig, error) {
	cfg := &TestConfig{
		Name:         strings.TrimSpace(v[KeyTestName]),
		Command:      v[KeyCommand],
		SetupCommand: v[KeySetupCommand],
	}

	if cfg.Name == "" {
		return nil, fmt.Errorf("%w: required setting %s not set", ErrInvalid, KeyTestName)
	}
	if strings.TrimSpace(cfg.Command) == "" {
		return nil, fmt.Errorf("%w: required setting %s not set", ErrInvalid, KeyCommand)
	}

	timeoutStr := strings.TrimSpace(v[KeyTimeout])
	if timeoutStr == "" {
		return nil, fmt.Errorf("%w: required setting %s not set", ErrInvalid, KeyTimeout)
	}
	timeout, err := ParseMinutes(timeoutStr)
	if err != nil {
		return nil, err
	}
	cfg.Timeout = timeout

	if s := strings.TrimSpace(v[KeyMaxScore]); s != "" {
		score, err := strconv.Atoi(s)
		if err != nil {
			return nil, fmt.Errorf("%w: %s must be an integer: %q", ErrInvalid, KeyMaxScore, s)
		}
		if score < 0 {
			return nil, fmt.Errorf("%w: %s must not be negative", ErrInvalid, KeyMaxScore)
		}
		cfg.MaxScore = score
	}

	return cfg, nil
}

var nanosPerMinute = decimal.NewFromInt(int64(time.Minute))

// ParseMinutes converts a fractional number of minutes into a duration.
// Zero is allowed and means the command times out immediately.
func ParseMinutes(s string) (time.Duration, error) {
	minutes, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be a number of minutes: %q", ErrInvalid, KeyTimeout, s)
	}
	if minutes.IsNegative() {
		return 0, fmt.Errorf("%w: %s must not be negative", ErrInvalid, KeyTimeout)
	}

	nanos := minutes.Mul(nanosPerMinute).Round(0)
	if nanos.GreaterThan(decimal.NewFromInt(int64(maxDuration))) {
		return 0, fmt.Errorf("%w: %s is too large: %s", ErrInvalid, KeyTimeout, s)
	}
	return time.Duration(nanos.IntPart()), nil
}

const maxDuration = time.Duration(1<<63 - 1)
